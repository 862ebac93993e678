// Package importer turns Postman collections and OpenAPI documents into
// [[routes]] TOML fragments, so an existing API surface can seed a config
// instead of being hand-written route by route. This supplements spec.md's
// core scope using the teacher's own spec-ingestion parsers, repointed from
// building AI-agent context to emitting engine config.
package importer

import (
	"fmt"
	"strings"
)

// Route is the importer's intermediate representation of one discovered
// endpoint, independent of source format.
type Route struct {
	Name   string
	Method string
	Path   string
}

// ToTOML renders routes as a sequence of [[routes]] tables, ready to append
// to a config file.
func ToTOML(routes []Route) string {
	var b strings.Builder
	for _, r := range routes {
		fmt.Fprintf(&b, "[[routes]]\nname = %q\nmethod = %q\npath = %q\n\n", r.Name, r.Method, r.Path)
	}
	return b.String()
}

func routeName(method, path string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, path)
	for strings.Contains(slug, "__") {
		slug = strings.ReplaceAll(slug, "__", "_")
	}
	slug = strings.Trim(slug, "_")
	return strings.ToLower(method) + "_" + slug
}
