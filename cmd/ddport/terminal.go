package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/JonMunkholm/ddport/internal/core"
)

// terminal answers flow commands from line-based input. Prompts are written
// to out so stdout stays free for the donated data.
type terminal struct {
	in     *bufio.Reader
	out    io.Writer
	locale string
}

func newTerminal(in io.Reader, out io.Writer, locale string) *terminal {
	return &terminal{in: bufio.NewReader(in), out: out, locale: locale}
}

// Respond implements core.Responder.
func (t *terminal) Respond(ctx context.Context, cmd core.Command) (core.Response, error) {
	switch c := cmd.(type) {
	case core.Page:
		fmt.Fprintf(t.out, "\n== %s: %s ==\n", c.Platform, c.Header.Text(t.locale))
		return t.page(c.Prompt)
	case core.Exit:
		fmt.Fprintf(t.out, "%s (exit %d)\n", c.Info, c.Code)
	case core.EndPage:
		fmt.Fprintln(t.out, "Done.")
	}
	return core.Void(), nil
}

func (t *terminal) page(p core.Prompt) (core.Response, error) {
	switch p := p.(type) {
	case core.FilePrompt:
		fmt.Fprintln(t.out, p.Description.Text(t.locale))
		path, err := t.ask("Path to the zip (empty to skip): ")
		if err != nil {
			return core.Response{}, err
		}
		if path == "" {
			return core.Void(), nil
		}
		return core.String(path), nil

	case core.RetryPrompt:
		fmt.Fprintln(t.out, p.Description.Text(t.locale))
		answer, err := t.ask(fmt.Sprintf("[y] %s  [n] %s: ", p.Ok.Text(t.locale), p.Cancel.Text(t.locale)))
		if err != nil {
			return core.Response{}, err
		}
		return core.Bool(isYes(answer)), nil

	case core.ConsentPrompt:
		fmt.Fprintln(t.out, p.Description.Text(t.locale))
		for _, tbl := range p.Tables {
			fmt.Fprintf(t.out, "  - %s: %d rows\n", tbl.Title.Text(t.locale), tbl.Len())
		}
		if len(p.Tables) == 0 {
			fmt.Fprintln(t.out, "  (no data found)")
		}

		answer, err := t.ask("Donate this data? [y/N]: ")
		if err != nil {
			return core.Response{}, err
		}
		if !isYes(answer) {
			return core.Bool(false), nil
		}
		return core.Donate(p)
	}
	return core.Void(), nil
}

// ask prints prompt and reads one line. End of input counts as an empty
// answer so piped input can end the flow early.
func (t *terminal) ask(prompt string) (string, error) {
	fmt.Fprint(t.out, prompt)
	line, err := t.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func isYes(s string) bool {
	switch strings.ToLower(s) {
	case "y", "yes", "j", "ja":
		return true
	}
	return false
}
