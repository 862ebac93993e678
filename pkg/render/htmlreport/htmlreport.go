// Package htmlreport is the self-contained HTML report sink from
// spec.md §4.9: one document written after RunFinished.
package htmlreport

import (
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/blackcoderx/falcon/pkg/aggregate"
	"github.com/blackcoderx/falcon/pkg/compare"
	"github.com/blackcoderx/falcon/pkg/engine"
)

// Write renders sum and results into a single self-contained HTML document
// at path, using an atomic write so a crash mid-write can't leave a
// truncated report behind.
func Write(path string, sum aggregate.Summary, results []engine.RowRouteResult) error {
	doc := render(sum, results)
	return atomicWrite(path, []byte(doc))
}

func atomicWrite(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("htmlreport: %w", err)
	}
	return os.Rename(tmp, path)
}

func render(sum aggregate.Summary, results []engine.RowRouteResult) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\">")
	b.WriteString("<title>HTTP diff report</title><style>")
	b.WriteString(`
body { font-family: -apple-system, sans-serif; margin: 2rem; background: #1e1e2e; color: #cdd6f4; }
h1, h2 { color: #f38ba8; }
table { border-collapse: collapse; width: 100%; margin-bottom: 2rem; }
td, th { border: 1px solid #45475a; padding: 0.4rem 0.8rem; text-align: left; }
.identical { color: #a6e3a1; }
.differs { color: #f9e2af; }
.error { color: #f38ba8; }
.skipped { color: #6c7086; }
pre { background: #181825; padding: 1rem; overflow-x: auto; }
`)
	b.WriteString("</style></head><body>")

	b.WriteString("<h1>HTTP diff report</h1>")
	fmt.Fprintf(&b, "<p>total=%d passed=%d differs=%d error=%d skipped=%d</p>",
		sum.Overall.Total, sum.Overall.Passed, sum.Overall.Differs, sum.Overall.Error, sum.Overall.Skipped)

	b.WriteString("<h2>Routes</h2><table><tr><th>Route</th><th>Total</th><th>Passed</th><th>Differs</th><th>Error</th><th>Skipped</th></tr>")
	for route, c := range sum.ByRoute {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td></tr>",
			html.EscapeString(route), c.Total, c.Passed, c.Differs, c.Error, c.Skipped)
	}
	b.WriteString("</table>")

	b.WriteString("<h2>Results</h2>")
	for _, r := range results {
		class := classLabel(r.Result.Class)
		fmt.Fprintf(&b, "<h3 class=\"%s\">row %d — %s (%s)</h3>", class, r.Row, html.EscapeString(r.Route), class)

		if r.Result.Class == compare.ClassError {
			b.WriteString("<ul>")
			for env, cause := range r.Result.Errors {
				fmt.Fprintf(&b, "<li><code>%s</code>: %s</li>", html.EscapeString(env), html.EscapeString(cause))
			}
			b.WriteString("</ul>")
		}

		for _, d := range r.Result.Diffs {
			fmt.Fprintf(&b, "<p>field <code>%s</code> differs</p>", html.EscapeString(d.Field))
			for _, c := range d.Changes {
				if c.UnifiedDiff != "" {
					fmt.Fprintf(&b, "<pre>%s</pre>", html.EscapeString(c.UnifiedDiff))
				} else {
					fmt.Fprintf(&b, "<p><code>%s</code>=%s vs <code>%s</code>=%s</p>",
						html.EscapeString(c.EnvA), html.EscapeString(fmt.Sprintf("%q", c.ValueA)),
						html.EscapeString(c.EnvB), html.EscapeString(fmt.Sprintf("%q", c.ValueB)))
				}
			}
		}
	}

	b.WriteString("</body></html>")
	return b.String()
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
