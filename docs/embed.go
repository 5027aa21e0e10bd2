// Package docs embeds the OpenAPI document shipped with the server.
package docs

import _ "embed"

// OpenAPISpec is the raw OpenAPI 3.0 document for the gallery API.
//
//go:embed api/openapi.yaml
var OpenAPISpec []byte
