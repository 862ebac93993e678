// Package extract implements spec.md §4.3: pulling a named value out of a
// response and depositing it into the run's variable context for later
// routes to consume.
package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"github.com/blackcoderx/falcon/pkg/config"
	"github.com/blackcoderx/falcon/pkg/httpclient"
)

// MissingRequiredExtraction is returned when a required extract rule finds
// nothing to extract, whether or not it has a default_value configured.
type MissingRequiredExtraction struct {
	Route string
	Name  string
	Cause string
}

func (e *MissingRequiredExtraction) Error() string {
	return fmt.Sprintf("route %q: required extraction %q failed: %s", e.Route, e.Name, e.Cause)
}

// Warning reports a non-fatal extraction problem: a rule that is not
// required found nothing. The run continues; the variable takes the rule's
// default_value if it has one, and is otherwise absent from the context.
type Warning struct {
	Route string
	Name  string
	Cause string
}

func (w *Warning) Error() string {
	return fmt.Sprintf("route %q: extraction %q produced nothing: %s", w.Route, w.Name, w.Cause)
}

// Result is what Run produces for one rule: either a value that should be
// written into the context, or a warning to surface without failing the
// route. Defaulted distinguishes a fallback value (Value is set, Warning is
// also set to report the fallback) from a bare warning with nothing to write
// (Value empty, Warning set).
type Result struct {
	Name      string
	Value     string
	Warning   *Warning
	Defaulted bool
}

// Run evaluates every extract rule on route against resp, in declaration
// order. A required rule always fails the route on extraction failure, even
// if it also declares a default_value (spec.md §4.3): defaults only ever
// apply to required=false rules.
func Run(routeName string, rules []config.ExtractRule, resp *httpclient.Response) ([]Result, error) {
	results := make([]Result, 0, len(rules))
	for _, rule := range rules {
		value, err := extractOne(rule, resp)
		if err == nil {
			results = append(results, Result{Name: rule.Name, Value: value})
			continue
		}

		if rule.Required {
			return results, &MissingRequiredExtraction{Route: routeName, Name: rule.Name, Cause: err.Error()}
		}

		if rule.DefaultValue != "" {
			results = append(results, Result{
				Name:      rule.Name,
				Value:     rule.DefaultValue,
				Defaulted: true,
				Warning:   &Warning{Route: routeName, Name: rule.Name, Cause: err.Error()},
			})
			continue
		}

		results = append(results, Result{
			Name:    rule.Name,
			Warning: &Warning{Route: routeName, Name: rule.Name, Cause: err.Error()},
		})
	}
	return results, nil
}

func extractOne(rule config.ExtractRule, resp *httpclient.Response) (string, error) {
	switch rule.Type {
	case config.ExtractJSONPath:
		return extractJSONPath(resp, rule.Source)
	case config.ExtractRegex:
		return extractRegex(resp, rule.Source)
	case config.ExtractHeader:
		return extractHeader(resp, rule.Source)
	case config.ExtractStatusCode:
		return strconv.Itoa(resp.StatusCode), nil
	default:
		return "", fmt.Errorf("unknown extract type %q", rule.Type)
	}
}

func extractHeader(resp *httpclient.Response, name string) (string, error) {
	v, ok := resp.HeaderValue(name)
	if !ok {
		return "", fmt.Errorf("header %q not present", name)
	}
	return v, nil
}

func extractRegex(resp *httpclient.Response, pattern string) (string, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", fmt.Errorf("invalid regex %q: %w", pattern, err)
	}
	m := re.FindStringSubmatch(resp.Text)
	if m == nil {
		return "", fmt.Errorf("regex %q did not match response body", pattern)
	}
	if len(m) > 1 {
		return m[1], nil
	}
	return m[0], nil
}

func extractJSONPath(resp *httpclient.Response, path string) (string, error) {
	var doc interface{}
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return "", fmt.Errorf("response body is not valid JSON: %w", err)
	}

	segments, err := parsePath(path)
	if err != nil {
		return "", err
	}

	cur := doc
	for _, seg := range segments {
		next, ok := seg.apply(cur)
		if !ok {
			return "", fmt.Errorf("json_path %q: no value at %s", path, seg.describe())
		}
		cur = next
	}

	return stringify(cur), nil
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	}
}
