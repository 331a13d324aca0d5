// Package shell is a line-oriented terminal storefront over the same
// grid, detail and cart components the web storefront uses.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/greenleaf-co/plantshop/internal/cart"
	"github.com/greenleaf-co/plantshop/internal/format"
	"github.com/greenleaf-co/plantshop/internal/storefront"
	"github.com/greenleaf-co/plantshop/internal/surface"
)

const helpText = `Commands:
  list              show the plant grid
  categories        show categories
  category <n>      show plants of category n
  all               show all plants
  open <n>          show details of plant n
  close             close the detail view
  add [n]           add plant n (or the open plant) to the cart
  remove <n>        remove cart line n
  cart              show the cart
  help              show this help
  quit              leave the shop`

// Shell runs an interactive storefront session on a terminal
type Shell struct {
	in      *bufio.Reader
	out     io.Writer
	session *storefront.Session
}

// New creates a shell reading commands and confirmations from in
func New(c storefront.Catalog, in io.Reader, out io.Writer) *Shell {
	s := &Shell{
		in:  bufio.NewReader(in),
		out: out,
	}
	s.session = storefront.NewSession(c, cart.ConfirmFunc(s.confirm))
	return s
}

// Session exposes the underlying storefront
func (s *Shell) Session() *storefront.Session {
	return s.session
}

// Run loads the catalog and processes commands until quit, EOF or ctx ends
func (s *Shell) Run(ctx context.Context) error {
	s.session.Start(ctx)

	v := s.session.View()
	printCategories(s.out, v)
	printGrid(s.out, v)
	fmt.Fprintln(s.out, "Type \"help\" for commands.")

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out, "\nShop closed.")
			return nil
		default:
		}

		fmt.Fprint(s.out, "> ")
		line, err := s.readLine()
		if errors.Is(err, io.EOF) && line == "" {
			return nil
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read command: %w", err)
		}

		quit, cmdErr := s.Exec(ctx, line)
		if cmdErr != nil {
			fmt.Fprintf(s.out, "error: %v\n", cmdErr)
		}
		if quit {
			return nil
		}
	}
}

// Exec runs one command line. It reports whether the shell should stop.
func (s *Shell) Exec(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		fmt.Fprintln(s.out, helpText)
	case "list", "ls":
		printGrid(s.out, s.session.View())
	case "categories", "cats":
		printCategories(s.out, s.session.View())
	case "category", "cat":
		n, err := position(args)
		if err != nil {
			return false, err
		}
		buttons := s.session.Loader.Categories()
		if n >= len(buttons) {
			return false, fmt.Errorf("no category %d", n+1)
		}
		s.session.Loader.SelectCategory(ctx, buttons[n].ID)
		printGrid(s.out, s.session.View())
	case "all":
		s.session.Loader.LoadAllPlants(ctx)
		printGrid(s.out, s.session.View())
	case "open":
		n, err := position(args)
		if err != nil {
			return false, err
		}
		if err := s.session.Update(func() error {
			return s.session.Grid.Activate(n, storefront.AffordanceName)
		}); err != nil {
			return false, err
		}
		printModal(s.out, s.session.View())
	case "close":
		if err := s.session.Update(func() error {
			if !s.session.Detail.Open() {
				return storefront.ErrDetailClosed
			}
			s.session.Detail.Hide()
			return nil
		}); err != nil {
			return false, err
		}
	case "add":
		err := s.session.Update(func() error {
			if len(args) == 0 {
				return s.session.Detail.AddToCart()
			}
			n, err := position(args)
			if err != nil {
				return err
			}
			return s.session.Grid.Activate(n, storefront.AffordanceAddToCart)
		})
		if err != nil {
			return false, err
		}
		printCart(s.out, s.session.View())
	case "remove", "rm":
		n, err := position(args)
		if err != nil {
			return false, err
		}
		if err := s.session.Update(func() error {
			return s.session.Cart.Remove(n)
		}); err != nil {
			return false, err
		}
		printCart(s.out, s.session.View())
	case "cart":
		printCart(s.out, s.session.View())
	default:
		return false, fmt.Errorf("unknown command %q (try \"help\")", cmd)
	}
	return false, nil
}

func (s *Shell) confirm(prompt string) bool {
	fmt.Fprintf(s.out, "%s [y/N]: ", prompt)
	answer, _ := s.readLine()
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func (s *Shell) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	return strings.TrimRight(line, "\r\n"), err
}

// position parses a 1-based list position into a 0-based index
func position(args []string) (int, error) {
	if len(args) != 1 {
		return 0, errors.New("expected one number")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid number %q", args[0])
	}
	return n - 1, nil
}

func printCategories(w io.Writer, v surface.View) {
	fmt.Fprintln(w, "Categories")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	if v.CategoryStatus != "" {
		fmt.Fprintln(w, v.CategoryStatus)
	}
	for i, c := range v.Categories {
		marker := " "
		if c.Active {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %2d. %s\n", marker, i+1, c.Name)
	}
	fmt.Fprintln(w)
}

func printGrid(w io.Writer, v surface.View) {
	fmt.Fprintln(w, v.GridTitle)
	fmt.Fprintln(w, strings.Repeat("=", 80))
	for _, c := range v.Cards {
		fmt.Fprintf(w, "%2d. %-30s %10s  [%s]\n", c.Index+1, c.Name, c.Price, c.Category)
		fmt.Fprintf(w, "    %s\n", c.Summary)
	}
	fmt.Fprintln(w)
}

func printModal(w io.Writer, v surface.View) {
	if !v.ModalOpen {
		return
	}
	m := v.Modal
	fmt.Fprintln(w, strings.Repeat("-", 80))
	fmt.Fprintln(w, m.Name)
	fmt.Fprintln(w, format.Plain(m.Description))
	fmt.Fprintf(w, "Category: %s\n", m.Category)
	fmt.Fprintf(w, "Price: %s\n", m.Price)
	fmt.Fprintln(w, strings.Repeat("-", 80))
}

func printCart(w io.Writer, v surface.View) {
	fmt.Fprintln(w, "Your Cart")
	if v.Cart.Placeholder != "" {
		fmt.Fprintf(w, "  %s\n", v.Cart.Placeholder)
	}
	for _, row := range v.Cart.Rows {
		fmt.Fprintf(w, "  %2d. %-30s %10s\n", row.Index+1, row.Name, row.Price)
	}
	fmt.Fprintf(w, "Total: %s\n", v.Cart.Total)
}
