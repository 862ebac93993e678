// Package template implements the purely textual {name} substitutor
// described in spec.md §4.1. It never URL-encodes or JSON-escapes; callers
// decide when that's needed (see pkg/engine's path-segment encoding).
package template

import (
	"fmt"
	"strings"
)

// UnresolvedPlaceholderError reports a {name} with no value in context.
type UnresolvedPlaceholderError struct {
	Name string
}

func (e *UnresolvedPlaceholderError) Error() string {
	return fmt.Sprintf("unresolved placeholder {%s}", e.Name)
}

func isIdentByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b == '_', b >= '0' && b <= '9':
		return true
	default:
		return false
	}
}

// Substitute expands every {identifier} in tmpl using ctx, where identifier
// is letters/digits/underscore. "{{" and "}}" emit literal braces. Returns
// an *UnresolvedPlaceholderError if any referenced identifier is absent
// from ctx.
func Substitute(tmpl string, ctx map[string]string) (string, error) {
	var out strings.Builder
	out.Grow(len(tmpl))

	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]

		if c == '{' {
			if i+1 < len(tmpl) && tmpl[i+1] == '{' {
				out.WriteByte('{')
				i++
				continue
			}

			end := strings.IndexByte(tmpl[i+1:], '}')
			if end == -1 {
				out.WriteByte(c)
				continue
			}
			name := tmpl[i+1 : i+1+end]

			if name != "" && isValidIdentifier(name) {
				val, ok := ctx[name]
				if !ok {
					return "", &UnresolvedPlaceholderError{Name: name}
				}
				out.WriteString(val)
				i += end + 1
				continue
			}

			out.WriteByte(c)
			continue
		}

		if c == '}' {
			if i+1 < len(tmpl) && tmpl[i+1] == '}' {
				out.WriteByte('}')
				i++
				continue
			}
			out.WriteByte(c)
			continue
		}

		out.WriteByte(c)
	}

	return out.String(), nil
}

func isValidIdentifier(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isIdentByte(s[i]) {
			return false
		}
	}
	return true
}
