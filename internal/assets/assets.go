// Package assets holds content embedded into the promptdeck binary.
package assets

import (
	_ "embed"
)

//go:embed schemas/settings.schema.json
var settingsSchema []byte

// SettingsSchema returns the JSON Schema a root's settings document must
// satisfy after a hook registration merge.
func SettingsSchema() []byte {
	return settingsSchema
}
