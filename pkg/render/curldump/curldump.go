// Package curldump is the curl-command dump sink from spec.md §4.9:
// writing the equivalent request invocations for reproducibility,
// regardless of comparison outcome.
package curldump

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/blackcoderx/falcon/pkg/engine"
	"github.com/blackcoderx/falcon/pkg/httpclient"
)

// Write renders every logged request as a curl command and writes them to
// path, each preceded by a comment line naming its row, route and
// environment, sorted for stable output across runs with the same requests.
func Write(path string, requests []engine.LoggedRequest) error {
	lines := buildLines(requests)
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644)
}

// CopyToClipboard places every rendered curl command, in the same form
// Write produces, on the system clipboard (the CLI's --copy flag).
func CopyToClipboard(requests []engine.LoggedRequest) error {
	lines := buildLines(requests)
	return clipboard.WriteAll(strings.Join(lines, "\n"))
}

func buildLines(requests []engine.LoggedRequest) []string {
	sorted := make([]engine.LoggedRequest, len(requests))
	copy(sorted, requests)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Row != sorted[j].Row {
			return sorted[i].Row < sorted[j].Row
		}
		if sorted[i].Route != sorted[j].Route {
			return sorted[i].Route < sorted[j].Route
		}
		return sorted[i].Environment < sorted[j].Environment
	})

	lines := make([]string, 0, len(sorted))
	for _, r := range sorted {
		lines = append(lines, fmt.Sprintf("# row %d — %s (%s)\n%s", r.Row, r.Route, r.Environment, ToCurl(r.Request)))
	}
	return lines
}

// ToCurl renders one request as a shell-quoted curl invocation.
func ToCurl(req httpclient.Request) string {
	var b strings.Builder
	b.WriteString("curl -sS")

	if req.Method != "" && req.Method != "GET" {
		fmt.Fprintf(&b, " -X %s", shellQuote(req.Method))
	}

	names := make([]string, 0, len(req.Headers))
	for name := range req.Headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, " -H %s", shellQuote(fmt.Sprintf("%s: %s", name, req.Headers[name])))
	}

	if len(req.Body) > 0 {
		fmt.Fprintf(&b, " -d %s", shellQuote(string(req.Body)))
	}

	fmt.Fprintf(&b, " %s", shellQuote(req.URL))
	return b.String()
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
