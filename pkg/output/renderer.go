package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dotsync/dotsync/pkg/errors"
	"github.com/dotsync/dotsync/pkg/logging"
	"github.com/dotsync/dotsync/pkg/output/styles"
	"github.com/dotsync/dotsync/pkg/reconcile"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Renderer writes styled output to a single writer.
type Renderer struct {
	writer io.Writer
	lg     *lipgloss.Renderer
	home   string
}

// NewRenderer creates a Renderer for w. Colour is disabled when noColor is
// set, NO_COLOR is present in the environment or w is not a terminal.
func NewRenderer(w io.Writer, noColor bool) *Renderer {
	log := logging.GetLogger("output")

	lg := lipgloss.NewRenderer(w)
	_, envNoColor := os.LookupEnv("NO_COLOR")
	if noColor || envNoColor || !IsTerminal(w) {
		lg.SetColorProfile(termenv.Ascii)
	}

	log.Debug().
		Bool("noColor", noColor).
		Bool("NO_COLOR_env", envNoColor).
		Str("colorProfile", fmt.Sprintf("%v", lg.ColorProfile())).
		Msg("Created renderer")

	return &Renderer{writer: w, lg: lg}
}

// WithHome makes the renderer abbreviate paths under home to ~.
func (r *Renderer) WithHome(home string) *Renderer {
	r.home = home
	return r
}

// IsTerminal reports whether w is a terminal file.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (r *Renderer) style(name string) lipgloss.Style {
	return styles.GetStyle(name).Renderer(r.lg)
}

// tilde abbreviates p when it lives under the renderer's home.
func (r *Renderer) tilde(p string) string {
	if r.home == "" {
		return p
	}
	if p == r.home {
		return "~"
	}
	if rest, ok := strings.CutPrefix(p, r.home+string(os.PathSeparator)); ok {
		return "~" + string(os.PathSeparator) + rest
	}
	return p
}

// Summary writes one line per linked pair followed by a total.
func (r *Renderer) Summary(root string, outcomes []reconcile.Outcome) error {
	var b strings.Builder

	b.WriteString(r.style("Header").Render("Repository"))
	b.WriteString(" ")
	b.WriteString(r.style("FilePath").Render(r.tilde(root)))
	b.WriteString("\n")

	for _, o := range outcomes {
		line := fmt.Sprintf("%s -> %s %s",
			r.style("FilePath").Render(r.tilde(o.Destination)),
			r.tilde(o.Source),
			r.style("Muted").Render(describe(o)),
		)
		b.WriteString(r.style("Indent").Render(line))
		b.WriteString("\n")
	}

	b.WriteString(r.style("Success").Render(fmt.Sprintf("Linked %d %s", len(outcomes), plural(len(outcomes), "entry", "entries"))))
	b.WriteString("\n")

	_, err := io.WriteString(r.writer, b.String())
	return err
}

func describe(o reconcile.Outcome) string {
	switch o.Previous {
	case reconcile.Absent:
		return fmt.Sprintf("(%s, new)", o.Kind)
	case reconcile.Link:
		return fmt.Sprintf("(%s, relinked)", o.Kind)
	default:
		return fmt.Sprintf("(%s, replaced existing)", o.Kind)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// Error writes err on a single styled line, then any structured details
// sorted by key.
func (r *Renderer) Error(err error) {
	if err == nil {
		return
	}

	var b strings.Builder
	b.WriteString(r.style("Error").Render("Error:"))
	b.WriteString(" ")
	b.WriteString(err.Error())
	b.WriteString("\n")

	details := errors.AllDetails(err)
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		line := fmt.Sprintf("%s: %v", k, details[k])
		b.WriteString(r.style("Indent").Render(r.style("Muted").Render(line)))
		b.WriteString("\n")
	}

	_, _ = io.WriteString(r.writer, b.String())
}
