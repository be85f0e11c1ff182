package installer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/promptdeck/promptdeck/internal/assets"
	"github.com/promptdeck/promptdeck/internal/catalog"
)

// SettingsFileName is the settings document at the top of each root that
// holds hook registrations under the "hooks" key.
const SettingsFileName = "settings.json"

// hookEntryName extracts the stable key field of a hook registration.
type hookEntryName struct {
	Name string `json:"name"`
}

// buildHookRegistration renders the registration entry for a hook asset:
// its name and version plus every declared metadata field the engine
// does not interpret (events, matchers, whatever the author shipped).
func buildHookRegistration(a *catalog.Asset) ([]byte, error) {
	entry := make(map[string]interface{}, len(a.Metadata)+2)
	for k, v := range a.Metadata {
		entry[k] = v
	}
	entry["name"] = a.Name
	if a.Version != "" {
		entry["version"] = a.Version
	}
	return json.Marshal(entry)
}

// mergeHookEntry inserts or replaces one registration in the settings
// document. Every field and entry the engine does not understand is
// carried through as raw JSON, so settings schemas can evolve
// independently of this tool. A doc that cannot be parsed aborts the
// merge with KindSettingsCorrupt rather than being overwritten.
func mergeHookEntry(doc []byte, entry []byte, path string) ([]byte, error) {
	top, hooks, err := splitSettings(doc, path)
	if err != nil {
		return nil, err
	}

	var named hookEntryName
	if err := json.Unmarshal(entry, &named); err != nil {
		return nil, &OperationFailure{Kind: KindIO, Path: path, Err: err}
	}

	replaced := false
	for i, raw := range hooks {
		var existing hookEntryName
		if err := json.Unmarshal(raw, &existing); err != nil {
			continue // unrecognized entries are left untouched
		}
		if existing.Name == named.Name {
			hooks[i] = json.RawMessage(entry)
			replaced = true
			break
		}
	}
	if !replaced {
		hooks = append(hooks, json.RawMessage(entry))
	}

	return joinSettings(top, hooks, path)
}

// removeHookEntry drops the registration with the given name, leaving
// every unrelated entry untouched. The second return reports whether an
// entry was actually removed.
func removeHookEntry(doc []byte, name string, path string) ([]byte, bool, error) {
	top, hooks, err := splitSettings(doc, path)
	if err != nil {
		return nil, false, err
	}

	kept := hooks[:0]
	removed := false
	for _, raw := range hooks {
		var existing hookEntryName
		if err := json.Unmarshal(raw, &existing); err == nil && existing.Name == name {
			removed = true
			continue
		}
		kept = append(kept, raw)
	}
	if !removed {
		return doc, false, nil
	}

	merged, err := joinSettings(top, kept, path)
	return merged, true, err
}

// splitSettings parses the document into its unknown-preserving top
// level and the hooks list. An empty or absent document yields an empty
// starting point.
func splitSettings(doc []byte, path string) (map[string]json.RawMessage, []json.RawMessage, error) {
	top := make(map[string]json.RawMessage)
	if len(strings.TrimSpace(string(doc))) > 0 {
		if err := json.Unmarshal(doc, &top); err != nil {
			return nil, nil, &OperationFailure{Kind: KindSettingsCorrupt, Path: path, Err: err}
		}
	}

	var hooks []json.RawMessage
	if raw, ok := top["hooks"]; ok {
		if err := json.Unmarshal(raw, &hooks); err != nil {
			return nil, nil, &OperationFailure{Kind: KindSettingsCorrupt, Path: path,
				Err: fmt.Errorf("hooks key is not a list: %w", err)}
		}
	}
	return top, hooks, nil
}

func joinSettings(top map[string]json.RawMessage, hooks []json.RawMessage, path string) ([]byte, error) {
	hooksRaw, err := json.Marshal(hooks)
	if err != nil {
		return nil, &OperationFailure{Kind: KindIO, Path: path, Err: err}
	}
	top["hooks"] = hooksRaw

	merged, err := json.MarshalIndent(top, "", "  ")
	if err != nil {
		return nil, &OperationFailure{Kind: KindIO, Path: path, Err: err}
	}
	merged = append(merged, '\n')

	if err := validateSettings(merged); err != nil {
		return nil, &OperationFailure{Kind: KindSettingsCorrupt, Path: path, Err: err}
	}
	return merged, nil
}

// validateSettings checks a merged document against the embedded schema
// before it is allowed anywhere near the atomic move.
func validateSettings(doc []byte) error {
	schema := gojsonschema.NewBytesLoader(assets.SettingsSchema())
	document := gojsonschema.NewBytesLoader(doc)

	result, err := gojsonschema.Validate(schema, document)
	if err != nil {
		return fmt.Errorf("validating settings document: %w", err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return fmt.Errorf("merged settings document is invalid: %s", strings.Join(details, "; "))
	}
	return nil
}
