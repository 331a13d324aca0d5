package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/greenleaf-co/plantshop/internal/catalog"
	"github.com/greenleaf-co/plantshop/internal/models"
)

type stubCatalog struct {
	categoriesErr error
}

func (s stubCatalog) FetchCategories(ctx context.Context) ([]models.Category, error) {
	if s.categoriesErr != nil {
		return nil, s.categoriesErr
	}
	return []models.Category{
		{ID: "1", Name: "Fruit Tree"},
		{ID: "2", Name: "Flowering Tree"},
	}, nil
}

func (s stubCatalog) FetchPlants(ctx context.Context, filter catalog.Filter) ([]models.Plant, error) {
	switch filter.CategoryID {
	case "":
		return []models.Plant{
			{Name: "Mango", Image: "https://img.example/mango.png", Description: "Juicy **summer** fruit <script>x()</script>", Category: "Fruit Tree", Price: 12.5},
			{Name: "Gulmohar", Image: "https://img.example/gulmohar.png", Description: "Red blossoms", Category: "Flowering Tree", Price: 20},
		}, nil
	case "2":
		return []models.Plant{
			{Name: "Gulmohar", Category: "Flowering Tree", Price: 20},
		}, nil
	default:
		return nil, catalog.ErrCatalogUnavailable
	}
}

type storefrontClient struct {
	t      *testing.T
	srv    *httptest.Server
	client *http.Client
}

func newStorefront(t *testing.T, c stubCatalog) *storefrontClient {
	t.Helper()

	h, err := New(c, Options{})
	require.NoError(t, err)

	srv := httptest.NewServer(h.Routes())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &storefrontClient{t: t, srv: srv, client: &http.Client{Jar: jar}}
}

func (s *storefrontClient) get(path string) *goquery.Document {
	s.t.Helper()
	resp, err := s.client.Get(s.srv.URL + path)
	require.NoError(s.t, err)
	defer resp.Body.Close()
	require.Equal(s.t, http.StatusOK, resp.StatusCode)

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(s.t, err)
	return doc
}

// post submits a form and follows the redirect back to the page
func (s *storefrontClient) post(path string, form url.Values) (*goquery.Document, int) {
	s.t.Helper()
	resp, err := s.client.PostForm(s.srv.URL+path, form)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(s.t, err)
	return doc, resp.StatusCode
}

func cartNames(doc *goquery.Document) []string {
	var names []string
	doc.Find("[data-cart-row] .name").Each(func(_ int, sel *goquery.Selection) {
		names = append(names, strings.TrimSpace(sel.Text()))
	})
	return names
}

func TestIndexRendersCatalogAndEmptyCart(t *testing.T) {
	s := newStorefront(t, stubCatalog{})
	doc := s.get("/")

	require.Equal(t, 2, doc.Find("[data-region='categories'] [data-category]").Length())
	require.Equal(t, "Choose Your Trees", strings.TrimSpace(doc.Find("[data-region='grid-title']").Text()))
	require.Equal(t, 0, doc.Find("[data-region='grid-loading']").Length())

	cards := doc.Find("[data-card]")
	require.Equal(t, 2, cards.Length())
	first := cards.First()
	require.Equal(t, "Mango", strings.TrimSpace(first.Find("h3").Text()))
	require.Equal(t, "$12.50", strings.TrimSpace(first.Find(".price").Text()))
	require.Equal(t, "https://img.example/mango.png", first.Find("img").AttrOr("src", ""))
	require.Equal(t, `Do you want to add "Mango" to the cart?`, first.Find("form[data-confirm]").AttrOr("data-confirm", ""))

	placeholder := doc.Find("[data-cart-placeholder]")
	require.Equal(t, 1, placeholder.Length())
	require.Equal(t, "No items yet.", strings.TrimSpace(placeholder.Text()))
	require.Equal(t, "$0.00", strings.TrimSpace(doc.Find("[data-region='cart-total']").Text()))
	require.Equal(t, 0, doc.Find("[data-region='modal']").Length())
}

func TestAddToCartHonorsConfirmation(t *testing.T) {
	s := newStorefront(t, stubCatalog{})
	s.get("/")

	doc, code := s.post("/cards/0/add", url.Values{"confirm": {"no"}})
	require.Equal(t, http.StatusOK, code)
	require.Empty(t, cartNames(doc), "declined confirmation must not change the cart")
	require.Equal(t, "$0.00", strings.TrimSpace(doc.Find("[data-region='cart-total']").Text()))

	doc, _ = s.post("/cards/0/add", url.Values{"confirm": {"yes"}})
	doc, _ = s.post("/cards/1/add", url.Values{"confirm": {"yes"}})
	doc, _ = s.post("/cards/0/add", url.Values{"confirm": {"yes"}})
	require.Equal(t, []string{"Mango", "Gulmohar", "Mango"}, cartNames(doc))
	require.Equal(t, "$45.00", strings.TrimSpace(doc.Find("[data-region='cart-total']").Text()))
	require.Equal(t, 0, doc.Find("[data-cart-placeholder]").Length())

	doc, _ = s.post("/cart/1/remove", nil)
	require.Equal(t, []string{"Mango", "Mango"}, cartNames(doc))
	require.Equal(t, "$25.00", strings.TrimSpace(doc.Find("[data-region='cart-total']").Text()))
	require.Equal(t, "/cart/1/remove", doc.Find("[data-cart-row='1'] form").AttrOr("action", ""))

	_, code = s.post("/cart/7/remove", nil)
	require.Equal(t, http.StatusNotFound, code)
}

func TestDetailModal(t *testing.T) {
	s := newStorefront(t, stubCatalog{})
	s.get("/")

	doc, _ := s.post("/cards/0/open", nil)
	modal := doc.Find("[data-region='modal']")
	require.Equal(t, 1, modal.Length())
	require.Equal(t, "Mango", strings.TrimSpace(modal.Find("h2").Text()))
	require.Equal(t, 1, modal.Find("[data-description] strong").Length(), "markdown emphasis should render")
	require.Equal(t, 0, modal.Find("[data-description] script").Length(), "scripts must be sanitized")
	require.Equal(t, "Price: $12.50", strings.TrimSpace(modal.Find(".price").Text()))

	doc, _ = s.post("/detail/add", url.Values{"confirm": {"yes"}})
	require.Equal(t, []string{"Mango"}, cartNames(doc))
	require.Equal(t, 1, doc.Find("[data-region='modal']").Length(), "modal stays open after adding")

	doc, _ = s.post("/detail/close", nil)
	require.Equal(t, 0, doc.Find("[data-region='modal']").Length())

	_, code := s.post("/detail/add", url.Values{"confirm": {"yes"}})
	require.Equal(t, http.StatusConflict, code)
}

func TestSelectCategory(t *testing.T) {
	s := newStorefront(t, stubCatalog{})
	s.get("/")

	doc, _ := s.post("/categories/2", nil)
	require.Equal(t, 1, doc.Find("[data-card]").Length())
	require.Equal(t, "active", strings.TrimPrefix(doc.Find("[data-category='2']").AttrOr("class", ""), "category "))

	doc, _ = s.post("/categories/9", nil)
	require.Equal(t, "Failed to load trees", strings.TrimSpace(doc.Find("[data-region='grid-title']").Text()))
	require.Equal(t, 0, doc.Find("[data-card]").Length())

	doc, _ = s.post("/plants", nil)
	require.Equal(t, 2, doc.Find("[data-card]").Length())
}

func TestCategoryFailureShowsMessage(t *testing.T) {
	s := newStorefront(t, stubCatalog{categoriesErr: errors.New("offline")})
	doc := s.get("/")

	require.Equal(t, "Failed to load categories", strings.TrimSpace(doc.Find("[data-region='category-status']").Text()))
	require.Equal(t, 0, doc.Find("[data-category]").Length())
	require.Equal(t, 2, doc.Find("[data-card]").Length(), "plant grid loads independently")
}

func TestVisitorsHaveSeparateCarts(t *testing.T) {
	h, err := New(stubCatalog{}, Options{})
	require.NoError(t, err)
	srv := httptest.NewServer(h.Routes())
	defer srv.Close()

	alice := &storefrontClient{t: t, srv: srv}
	bob := &storefrontClient{t: t, srv: srv}
	for _, c := range []*storefrontClient{alice, bob} {
		jar, err := cookiejar.New(nil)
		require.NoError(t, err)
		c.client = &http.Client{Jar: jar}
		c.get("/")
	}

	alice.post("/cards/0/add", url.Values{"confirm": {"yes"}})
	doc := bob.get("/")
	require.Empty(t, cartNames(doc))
}

func TestInvalidIndex(t *testing.T) {
	s := newStorefront(t, stubCatalog{})
	s.get("/")

	_, code := s.post("/cards/abc/open", nil)
	require.Equal(t, http.StatusBadRequest, code)

	_, code = s.post("/cards/99/open", nil)
	require.Equal(t, http.StatusNotFound, code)
}

func TestHealthcheck(t *testing.T) {
	h, err := New(stubCatalog{}, Options{})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "OK", rec.Body.String())
}

func TestReplayedCookieLoadsCatalog(t *testing.T) {
	first := newStorefront(t, stubCatalog{})
	first.get("/")
	srvURL, err := url.Parse(first.srv.URL)
	require.NoError(t, err)
	cookies := first.client.Jar.Cookies(srvURL)
	require.Len(t, cookies, 1)

	// a restarted server knows nothing about the old session id
	restarted := newStorefront(t, stubCatalog{})
	restartedURL, err := url.Parse(restarted.srv.URL)
	require.NoError(t, err)
	restarted.client.Jar.SetCookies(restartedURL, cookies)

	doc, code := restarted.post("/cards/0/add", url.Values{"confirm": {"yes"}})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, []string{"Mango"}, cartNames(doc))

	doc = restarted.get("/")
	require.Equal(t, 2, doc.Find("[data-region='categories'] [data-category]").Length())
	require.Equal(t, 2, doc.Find("[data-card]").Length())
	require.Equal(t, "Choose Your Trees", strings.TrimSpace(doc.Find("[data-region='grid-title']").Text()))

	restartedCookies := restarted.client.Jar.Cookies(restartedURL)
	require.Len(t, restartedCookies, 1)
	require.Equal(t, cookies[0].Value, restartedCookies[0].Value, "the replayed session id is kept")
}

func TestFirstRequestMayBeCategorySelection(t *testing.T) {
	s := newStorefront(t, stubCatalog{})

	doc, code := s.post("/categories/2", nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, 2, doc.Find("[data-category]").Length())
	require.Equal(t, 1, doc.Find("[data-card]").Length())
	require.Equal(t, "active", strings.TrimPrefix(doc.Find("[data-category='2']").AttrOr("class", ""), "category "))
}

func TestStaticAssets(t *testing.T) {
	h, err := New(stubCatalog{}, Options{})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/site.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/css")
}
