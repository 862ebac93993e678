package importer

import (
	"fmt"
	"strings"

	postman "github.com/rbretecher/go-postman-collection"
)

// FromPostman extracts routes from a Postman Collection v2.1 document,
// grounded on the teacher's PostmanParser.processItems recursion over
// folders and items.
func FromPostman(content []byte) ([]Route, error) {
	collection, err := postman.ParseCollection(strings.NewReader(string(content)))
	if err != nil {
		return nil, fmt.Errorf("importer: failed to parse postman collection: %w", err)
	}

	var routes []Route
	collectPostmanItems(collection.Items, &routes)
	return routes, nil
}

func collectPostmanItems(items []*postman.Items, routes *[]Route) {
	for _, item := range items {
		if item.IsGroup() {
			collectPostmanItems(item.Items, routes)
			continue
		}
		if item.Request == nil {
			continue
		}

		method := string(item.Request.Method)
		path := ""
		if item.Request.URL != nil {
			path = item.Request.URL.Raw
		}

		*routes = append(*routes, Route{
			Name:   routeName(method, path),
			Method: method,
			Path:   path,
		})
	}
}
