// Package swagger embeds the OpenAPI document of the users API.
package swagger

import _ "embed"

// Spec is the OpenAPI 2.0 document served at /swagger.json.
//
//go:embed users.swagger.json
var Spec []byte
