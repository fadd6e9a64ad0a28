// Package console is the counter-side text menu. It drives the same
// services as the HTTP API with a single cart session.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/brenosouzaaa/sistema-pizzaria/bootstrap"
)

// SessionID is the cart session used by the counter.
const SessionID = "console"

type Console struct {
	app *bootstrap.App
	in  *bufio.Scanner
	out io.Writer
}

func New(app *bootstrap.App, in io.Reader, out io.Writer) *Console {
	return &Console{app: app, in: bufio.NewScanner(in), out: out}
}

// Run shows the main menu until the operator exits or input ends.
func (c *Console) Run(ctx context.Context) error {
	for {
		c.println("\n===== PIZZARIA - MAIN MENU =====")
		c.println("1) Customers")
		c.println("2) Products")
		c.println("3) Cart")
		c.println("4) Checkout")
		c.println("5) Reports")
		c.println("6) Exit")

		op, err := c.ask("Choose: ")
		if err != nil {
			return endOfInput(err)
		}

		switch op {
		case "1":
			err = c.customersMenu(ctx)
		case "2":
			err = c.productsMenu(ctx)
		case "3":
			err = c.cartMenu(ctx)
		case "4":
			err = c.checkout(ctx)
		case "5":
			err = c.reportsMenu(ctx)
		case "6":
			c.println("Shutting down.")
			return nil
		default:
			c.println("Invalid option.")
		}
		if err != nil {
			return endOfInput(err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

func (c *Console) ask(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// askYes treats y, yes, s and sim as a yes.
func (c *Console) askYes(prompt string) (bool, error) {
	answer, err := c.ask(prompt)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes", "s", "sim":
		return true, nil
	}
	return false, nil
}

func (c *Console) println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

func (c *Console) printError(err error) {
	c.printf("Error: %v\n", err)
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
