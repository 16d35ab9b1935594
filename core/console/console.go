// Package console implements plugin.Input on top of a line oriented terminal.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dmitrymomot/sitecert/core/plugin"
)

const DefaultPageSize = 10

var _ plugin.Input = (*Console)(nil)

// Console reads answers from in and writes prompts to out.
type Console struct {
	mu       sync.Mutex
	in       *bufio.Reader
	out      io.Writer
	pageSize int
}

type Option func(*Console)

// WithPageSize sets how many choices are shown before pausing.
// Zero or negative disables paging.
func WithPageSize(n int) Option {
	return func(c *Console) { c.pageSize = n }
}

func New(in io.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{
		in:       bufio.NewReader(in),
		out:      out,
		pageSize: DefaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ChoiceList prints the choices, pausing after every page until the user
// presses enter.
func (c *Console) ChoiceList(ctx context.Context, title string, choices []plugin.Choice) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if title != "" {
		fmt.Fprintf(c.out, "\n %s\n\n", title)
	}
	for i, ch := range choices {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintf(c.out, " %s: %s\n", ch.Command, ch.Label)

		last := i == len(choices)-1
		if c.pageSize > 0 && (i+1)%c.pageSize == 0 && !last {
			fmt.Fprint(c.out, " Press enter to continue...")
			if _, err := c.readLine(); err != nil {
				return err
			}
		}
	}
	fmt.Fprintln(c.out)
	return nil
}

// PromptString prints message and returns the answer without its line ending.
func (c *Console) PromptString(ctx context.Context, message string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprintf(c.out, " %s: ", message)
	return c.readLine()
}

// Show prints a labelled value.
func (c *Console) Show(label, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, " %s: %s\n", label, value)
}

func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
