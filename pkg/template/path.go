package template

import "net/url"

// SubstitutePath behaves like Substitute but URL-encodes each resolved
// value before inserting it, per spec.md §6's recommended policy ("URL-encode
// path placeholders, do not encode header or body placeholders"). Engine
// callers use this for a route's path template and Substitute for headers
// and bodies.
func SubstitutePath(tmpl string, ctx map[string]string) (string, error) {
	encoded := make(map[string]string, len(ctx))
	for k, v := range ctx {
		encoded[k] = url.PathEscape(v)
	}
	return Substitute(tmpl, encoded)
}
