package importer

import (
	"fmt"

	"github.com/pb33f/libopenapi"
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"
)

// FromOpenAPI extracts routes from an OpenAPI 3.x document, grounded on the
// teacher's OpenAPIParser.Parse path/operation walk.
func FromOpenAPI(content []byte) ([]Route, error) {
	document, err := libopenapi.NewDocument(content)
	if err != nil {
		return nil, fmt.Errorf("importer: failed to parse openapi document: %w", err)
	}

	model, err := document.BuildV3Model()
	if err != nil {
		return nil, fmt.Errorf("importer: failed to build openapi v3 model: %w", err)
	}

	var routes []Route
	for pair := model.Model.Paths.PathItems.First(); pair != nil; pair = pair.Next() {
		path := pair.Key()
		item := pair.Value()

		ops := map[string]*v3.Operation{
			"GET":    item.Get,
			"POST":   item.Post,
			"PUT":    item.Put,
			"DELETE": item.Delete,
			"PATCH":  item.Patch,
		}
		for method, op := range ops {
			if op == nil {
				continue
			}
			routes = append(routes, Route{
				Name:   routeName(method, path),
				Method: method,
				Path:   path,
			})
		}
	}

	return routes, nil
}
