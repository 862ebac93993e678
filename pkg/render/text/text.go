// Package text is the plain-text/CLI renderer from spec.md §4.9: a
// line-oriented sink that writes a summary block after RunFinished.
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/blackcoderx/falcon/pkg/aggregate"
	"github.com/blackcoderx/falcon/pkg/compare"
	"github.com/blackcoderx/falcon/pkg/engine"
)

// DiffView selects how a differing body is rendered in the summary,
// matching spec.md §6's --diff-view {unified|side-by-side} flag.
type DiffView string

const (
	UnifiedView    DiffView = "unified"
	SideBySideView DiffView = "side-by-side"
)

// Renderer writes incremental route lines to w as events arrive and a
// glamour-rendered markdown summary once the run finishes.
type Renderer struct {
	w        io.Writer
	plain    bool
	diffView DiffView
}

// New builds a Renderer. plain writes the summary markdown as-is, without
// glamour's terminal styling. view chooses the body-diff
// presentation; an empty value defaults to unified.
func New(w io.Writer, plain bool, view DiffView) *Renderer {
	if view == "" {
		view = UnifiedView
	}
	return &Renderer{w: w, plain: plain, diffView: view}
}

// Event prints one line per RouteFinished event, matching the live,
// line-oriented feedback spec.md §4.9 asks of the plain-text sink.
func (r *Renderer) Event(ev aggregate.Event) {
	if ev.Kind != aggregate.RouteFinished {
		return
	}
	fmt.Fprintf(r.w, "[row %d] %s: %s\n", ev.Row, ev.Route, classLabel(ev.Class))
}

// Summary renders the final counters and every result that differs or
// errored (identical and skipped results are left out) as markdown through
// glamour, mirroring the teacher's terminal-markdown
// rendering style.
func (r *Renderer) Summary(sum aggregate.Summary, results []engine.RowRouteResult) error {
	md := buildSummaryMarkdown(sum, results, r.diffView)

	if r.plain {
		_, err := io.WriteString(r.w, md)
		return err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		_, werr := io.WriteString(r.w, md)
		return werr
	}

	out, err := renderer.Render(md)
	if err != nil {
		_, werr := io.WriteString(r.w, md)
		return werr
	}
	_, err = io.WriteString(r.w, out)
	return err
}

func buildSummaryMarkdown(sum aggregate.Summary, results []engine.RowRouteResult, view DiffView) string {
	var b strings.Builder

	b.WriteString("# Run summary\n\n")
	fmt.Fprintf(&b, "- total: %d\n", sum.Overall.Total)
	fmt.Fprintf(&b, "- passed: %d\n", sum.Overall.Passed)
	fmt.Fprintf(&b, "- differs: %d\n", sum.Overall.Differs)
	fmt.Fprintf(&b, "- error: %d\n", sum.Overall.Error)
	fmt.Fprintf(&b, "- skipped: %d\n\n", sum.Overall.Skipped)

	b.WriteString("## Routes\n\n")
	for route, c := range sum.ByRoute {
		fmt.Fprintf(&b, "- **%s**: total=%d passed=%d differs=%d error=%d skipped=%d\n",
			route, c.Total, c.Passed, c.Differs, c.Error, c.Skipped)
	}

	b.WriteString("\n## Differences\n\n")
	any := false
	for _, r := range results {
		if r.Result.Class == compare.ClassIdentical || r.Result.Class == compare.ClassSkipped {
			continue
		}
		any = true
		fmt.Fprintf(&b, "### row %d — %s (%s)\n\n", r.Row, r.Route, classLabel(r.Result.Class))
		if r.Result.Class == compare.ClassError {
			for env, cause := range r.Result.Errors {
				fmt.Fprintf(&b, "- `%s`: %s\n", env, cause)
			}
		}
		for _, d := range r.Result.Diffs {
			fmt.Fprintf(&b, "- field `%s` differs\n", d.Field)
			for _, c := range d.Changes {
				if view == SideBySideView && c.ValueA != "" && c.ValueB != "" {
					writeSideBySide(&b, c)
				} else if c.UnifiedDiff != "" {
					fmt.Fprintf(&b, "```diff\n%s\n```\n", c.UnifiedDiff)
				} else {
					fmt.Fprintf(&b, "  - `%s`=%q vs `%s`=%q\n", c.EnvA, c.ValueA, c.EnvB, c.ValueB)
				}
			}
		}
		b.WriteString("\n")
	}
	if !any {
		b.WriteString("No differences.\n")
	}

	return b.String()
}

// writeSideBySide renders two bodies as a two-column markdown table, one
// line per row, for --diff-view side-by-side.
func writeSideBySide(b *strings.Builder, c compare.PairChange) {
	linesA := strings.Split(c.ValueA, "\n")
	linesB := strings.Split(c.ValueB, "\n")

	fmt.Fprintf(b, "| %s | %s |\n|---|---|\n", c.EnvA, c.EnvB)
	max := len(linesA)
	if len(linesB) > max {
		max = len(linesB)
	}
	for i := 0; i < max; i++ {
		var la, lb string
		if i < len(linesA) {
			la = linesA[i]
		}
		if i < len(linesB) {
			lb = linesB[i]
		}
		fmt.Fprintf(b, "| `%s` | `%s` |\n", escapeCell(la), escapeCell(lb))
	}
	b.WriteString("\n")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

func classLabel(c compare.Class) string {
	switch c {
	case compare.ClassIdentical:
		return "identical"
	case compare.ClassDiffers:
		return "differs"
	case compare.ClassError:
		return "error"
	case compare.ClassSkipped:
		return "skipped"
	default:
		return string(c)
	}
}
