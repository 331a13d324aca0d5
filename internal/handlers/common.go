package handlers

import (
	"embed"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/greenleaf-co/plantshop/internal/cart"
	"github.com/greenleaf-co/plantshop/internal/format"
	"github.com/greenleaf-co/plantshop/internal/models"
	"github.com/greenleaf-co/plantshop/internal/storage"
	"github.com/greenleaf-co/plantshop/internal/storefront"
)

// SessionCookie identifies a visitor's storefront session
const SessionCookie = "plantshop_session"

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// visitor is one browser's storefront plus the answer of its last confirm dialog
type visitor struct {
	*storefront.Session
	answer *cart.Preset
}

// Options bounds the in-memory visitor sessions; zero values disable a bound
type Options struct {
	SessionTTL  time.Duration
	MaxSessions int
}

type Handler struct {
	sessions *storage.SessionStore[*visitor]
	catalog  storefront.Catalog
	tmpl     *template.Template
	static   http.Handler
}

func New(c storefront.Catalog, opts Options) (*Handler, error) {
	tmpl, err := template.New("_root").Funcs(template.FuncMap{
		"description": format.DescriptionHTML,
		"confirmPrompt": func(name string) string {
			return cart.Prompt(models.Plant{Name: name})
		},
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}

	return &Handler{
		sessions: storage.New[*visitor](opts.SessionTTL, opts.MaxSessions),
		catalog:  c,
		tmpl:     tmpl,
		static:   http.StripPrefix("/static/", http.FileServer(http.FS(static))),
	}, nil
}

// Routes returns the storefront router
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	})

	r.Handle("/static/*", h.static)

	r.Get("/", h.HandleIndex)
	r.Post("/plants", h.HandleAllPlants)
	r.Post("/categories/{id}", h.HandleSelectCategory)
	r.Post("/cards/{index}/open", h.HandleOpenCard)
	r.Post("/cards/{index}/add", h.HandleAddCard)
	r.Post("/detail/close", h.HandleCloseDetail)
	r.Post("/detail/add", h.HandleAddDetail)
	r.Post("/cart/{index}/remove", h.HandleRemoveFromCart)

	return r
}

// Response helpers
func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

func (h *Handler) redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Session helpers
func (h *Handler) newVisitor() *visitor {
	answer := &cart.Preset{}
	return &visitor{
		Session: storefront.NewSession(h.catalog, answer),
		answer:  answer,
	}
}

// visitorFor returns the caller's session, creating one (and its cookie) when
// the cookie is missing or names no live session. The initial catalog load
// runs on whichever request reaches the session first.
func (h *Handler) visitorFor(w http.ResponseWriter, r *http.Request) *visitor {
	id := ""
	if c, err := r.Cookie(SessionCookie); err == nil {
		id = c.Value
	}
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}

	v, created := h.sessions.GetOrCreate(id, h.newVisitor)
	if created {
		slog.Info("New storefront session", "session_id", id, "sessions", h.sessions.Len())
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	v.Start(r.Context())
	return v
}
