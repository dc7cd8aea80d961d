// Package schemas embeds the JSON Schema documents shipped with the module.
package schemas

import _ "embed"

// Profile is the JSON Schema for profile import and export documents.
//
//go:embed profile.schema.json
var Profile string
