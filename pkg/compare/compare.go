// Package compare implements spec.md §4.7: classifying a set of per-
// environment responses for one (row, route) as identical, differs, or
// error, and producing a structured diff when they differ.
package compare

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/blackcoderx/falcon/pkg/config"
	"github.com/blackcoderx/falcon/pkg/httpclient"
)

// Class is the closed set of comparison outcomes from spec.md §4.7.
type Class string

const (
	ClassIdentical Class = "identical"
	ClassDiffers   Class = "differs"
	ClassError     Class = "error"
	ClassSkipped   Class = "skipped"
)

// EnvResult is one environment's outcome for a (row, route) pair: either a
// response, or the error that kept one from being produced.
type EnvResult struct {
	Environment string
	Response    *httpclient.Response
	Err         error
}

// FieldDiff is one changed field (status, a header, or the body) and the
// environment pairs whose values disagree.
type FieldDiff struct {
	Field   string
	Changes []PairChange
}

// PairChange records that two environments disagree on one field.
type PairChange struct {
	EnvA, EnvB     string
	ValueA, ValueB string
	UnifiedDiff    string
}

// Result is the comparator's output for one (row, route).
type Result struct {
	Class Class
	Diffs []FieldDiff
	// Errors carries the per-environment error list. It is always set when
	// Class is ClassError, and is also set alongside identical/differs when
	// Options.IncludeErrors set erroring environments aside.
	Errors map[string]string
}

// Options configures how the comparator treats headers and per-environment
// transport failures.
type Options struct {
	IncludeHeaders bool
	IgnoreHeaders  []string
	// IncludeErrors controls the CLI's --include-errors behavior: when
	// false (the default, and spec.md §4.7's plain reading), any
	// environment error forces the whole (row, route) to class `error`.
	// When true, erroring environments are set aside instead, and the
	// surviving environments are still compared against each other — the
	// error list is retained on the result for reporting either way.
	IncludeErrors bool
}

// Compare classifies results for one (row, route) per spec.md §4.7.
func Compare(results []EnvResult, opts Options) Result {
	errs := map[string]string{}
	survivors := make([]EnvResult, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			errs[r.Environment] = r.Err.Error()
			continue
		}
		survivors = append(survivors, r)
	}

	if len(errs) > 0 && !opts.IncludeErrors {
		return Result{Class: ClassError, Errors: errs}
	}
	if len(survivors) < 2 {
		if len(errs) > 0 {
			return Result{Class: ClassError, Errors: errs}
		}
		return Result{Class: ClassIdentical}
	}

	results = survivors
	var diffs []FieldDiff

	if d := compareStatus(results); d != nil {
		diffs = append(diffs, *d)
	}
	if opts.IncludeHeaders {
		if d := compareHeaders(results, opts.IgnoreHeaders); d != nil {
			diffs = append(diffs, *d)
		}
	}
	if d := compareBodies(results); d != nil {
		diffs = append(diffs, *d)
	}

	var surviving map[string]string
	if len(errs) > 0 {
		surviving = errs
	}

	if len(diffs) == 0 {
		return Result{Class: ClassIdentical, Errors: surviving}
	}
	return Result{Class: ClassDiffers, Diffs: diffs, Errors: surviving}
}

func compareStatus(results []EnvResult) *FieldDiff {
	var changes []PairChange
	for i := 0; i < len(results); i++ {
		for j := i + 1; j < len(results); j++ {
			a, b := results[i], results[j]
			if a.Response.StatusCode != b.Response.StatusCode {
				changes = append(changes, PairChange{
					EnvA: a.Environment, EnvB: b.Environment,
					ValueA: fmt.Sprint(a.Response.StatusCode), ValueB: fmt.Sprint(b.Response.StatusCode),
				})
			}
		}
	}
	if len(changes) == 0 {
		return nil
	}
	return &FieldDiff{Field: "status", Changes: changes}
}

func compareHeaders(results []EnvResult, ignore []string) *FieldDiff {
	ignoreSet := buildIgnoreSet(ignore)

	var changes []PairChange
	for i := 0; i < len(results); i++ {
		for j := i + 1; j < len(results); j++ {
			a, b := results[i], results[j]
			for name, aVals := range a.Response.Headers {
				if ignoreSet[strings.ToLower(name)] {
					continue
				}
				bVals, ok := findHeader(b.Response.Headers, name)
				if !ok || strings.Join(aVals, ",") != strings.Join(bVals, ",") {
					changes = append(changes, PairChange{
						EnvA: a.Environment, EnvB: b.Environment,
						ValueA: fmt.Sprintf("%s: %s", name, strings.Join(aVals, ",")),
						ValueB: fmt.Sprintf("%s: %s", name, strings.Join(bVals, ",")),
					})
				}
			}
		}
	}
	if len(changes) == 0 {
		return nil
	}
	return &FieldDiff{Field: "headers", Changes: changes}
}

func buildIgnoreSet(ignore []string) map[string]bool {
	if len(ignore) == 0 {
		ignore = config.DefaultIgnoreHeaders
	}
	set := make(map[string]bool, len(ignore))
	for _, h := range ignore {
		set[strings.ToLower(h)] = true
	}
	return set
}

func findHeader(headers map[string][]string, name string) ([]string, bool) {
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return nil, false
}

func compareBodies(results []EnvResult) *FieldDiff {
	var changes []PairChange
	for i := 0; i < len(results); i++ {
		for j := i + 1; j < len(results); j++ {
			a, b := results[i], results[j]
			same, textA, textB, unified := compareBodyPair(a.Response, b.Response)
			if !same {
				changes = append(changes, PairChange{
					EnvA: a.Environment, EnvB: b.Environment,
					ValueA: textA, ValueB: textB,
					UnifiedDiff: unified,
				})
			}
		}
	}
	if len(changes) == 0 {
		return nil
	}
	return &FieldDiff{Field: "body", Changes: changes}
}

// compareBodyPair implements spec.md §4.7's per-content-type body
// comparison: canonicalized JSON diff, textual line diff, or binary
// length+hash compare. textA/textB hold the two full bodies compared (for
// a renderer's --diff-view side-by-side mode); unified holds the same
// comparison already rendered as a unified diff.
func compareBodyPair(a, b *httpclient.Response) (same bool, textA, textB, unified string) {
	if a.IsJSON() || b.IsJSON() {
		ca, errA := canonicalizeJSON(a.Body)
		cb, errB := canonicalizeJSON(b.Body)
		if errA != nil || errB != nil {
			if errA == nil && errB == nil {
				return true, "", "", ""
			}
			msg := fmt.Sprintf("JSON parse mismatch: a-valid=%v b-valid=%v", errA == nil, errB == nil)
			return false, string(a.Body), string(b.Body), msg
		}
		if ca == cb {
			return true, "", "", ""
		}
		return false, ca, cb, udiff.Unified("a", "b", ca, cb)
	}

	if a.Text != "" || b.Text != "" {
		if a.Text == b.Text {
			return true, "", "", ""
		}
		return false, a.Text, b.Text, udiff.Unified("a", "b", a.Text, b.Text)
	}

	if len(a.Body) == len(b.Body) && hashBody(a.Body) == hashBody(b.Body) {
		return true, "", "", ""
	}
	msg := fmt.Sprintf("binary mismatch: len(a)=%d hash(a)=%s len(b)=%d hash(b)=%s",
		len(a.Body), hashBody(a.Body), len(b.Body), hashBody(b.Body))
	return false, "", "", msg
}

func hashBody(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

// canonicalizeJSON sorts object keys and normalizes whitespace so that two
// JSON documents differing only in formatting compare equal (spec.md §8
// property 7).
func canonicalizeJSON(body []byte) (string, error) {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return "", err
	}
	v = sortKeys(v)
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func sortKeys(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		ordered := make(orderedMap, len(keys))
		for i, k := range keys {
			ordered[i] = orderedEntry{Key: k, Value: sortKeys(t[k])}
		}
		return ordered
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = sortKeys(e)
		}
		return out
	default:
		return t
	}
}

// orderedMap/orderedEntry give us a stable, sorted-key JSON encoding
// without pulling in a third map implementation: encoding/json always
// marshals map[string]interface{} with sorted keys already, but we need an
// explicit structure to force MarshalIndent to honor our own ordering of
// nested values too.
type orderedEntry struct {
	Key   string
	Value interface{}
}

type orderedMap []orderedEntry

func (m orderedMap) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range m {
		if i > 0 {
			b.WriteByte(',')
		}
		keyJSON, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		valJSON, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		b.Write(keyJSON)
		b.WriteByte(':')
		b.Write(valJSON)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}
