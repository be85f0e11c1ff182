package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/promptdeck/promptdeck/pkg/logger"
)

// extractor produces an Asset from a raw path. Each metadata format has
// its own implementation; the category selects which one runs.
type extractor interface {
	Extract(path string, ignore []string) (*Asset, error)
}

var extractors = map[Category]extractor{
	CategoryCommand:  frontmatterExtractor{category: CategoryCommand},
	CategoryAgent:    frontmatterExtractor{category: CategoryAgent},
	CategoryMode:     frontmatterExtractor{category: CategoryMode},
	CategorySkill:    skillExtractor{},
	CategoryHook:     hookExtractor{},
	CategoryWorkflow: workflowExtractor{},
}

// Extract parses the metadata format appropriate to category and
// normalizes it into an Asset. Unknown declared fields are preserved in
// Asset.Metadata and never cause failure.
func Extract(path string, category Category, ignore []string) (*Asset, error) {
	ex, ok := extractors[category]
	if !ok {
		return nil, fmt.Errorf("no extractor for category %q", category)
	}
	return ex.Extract(path, ignore)
}

// declared is the common shape of declared metadata across formats.
// Fields the engine does not interpret land in Rest.
type declared struct {
	Name        string                 `yaml:"name" json:"name"`
	Version     string                 `yaml:"version" json:"version"`
	Description string                 `yaml:"description" json:"description"`
	Requires    []string               `yaml:"requires" json:"requires"`
	Rest        map[string]interface{} `yaml:",inline" json:"-"`
}

func (d *declared) toAsset(path string, category Category, ignore []string) (*Asset, error) {
	if strings.TrimSpace(d.Name) == "" {
		return nil, &ExtractionError{Path: path, Reason: ReasonMissingName,
			Detail: "declared metadata has no name"}
	}
	a := &Asset{
		Name:        strings.TrimSpace(d.Name),
		Category:    category,
		SourcePath:  path,
		Version:     strings.TrimSpace(d.Version),
		Description: d.Description,
		Metadata:    d.Rest,
		ignore:      ignore,
	}
	for _, raw := range d.Requires {
		ref, err := ParseRef(raw)
		if err != nil {
			// Bad dependency entries degrade to a warning; the asset
			// itself is still installable.
			logger.Warn("skipping malformed dependency reference",
				logger.String("asset", a.Name), logger.String("ref", raw))
			continue
		}
		a.Dependencies = append(a.Dependencies, ref)
	}
	return a, nil
}

// frontmatterExtractor reads a Markdown file whose head is a YAML
// frontmatter block delimited by "---" lines.
type frontmatterExtractor struct {
	category Category
}

func (f frontmatterExtractor) Extract(path string, ignore []string) (*Asset, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from catalog discovery
	if err != nil {
		return nil, &ExtractionError{Path: path, Reason: ReasonUnreadable, Err: err}
	}
	block, err := frontmatterBlock(data)
	if err != nil {
		return nil, &ExtractionError{Path: path, Reason: ReasonParseFailure, Detail: err.Error()}
	}
	var d declared
	if err := yaml.Unmarshal(block, &d); err != nil {
		// yaml.v3 errors already carry "line N" positions.
		return nil, &ExtractionError{Path: path, Reason: ReasonParseFailure,
			Detail: err.Error(), Err: err}
	}
	return d.toAsset(path, f.category, ignore)
}

// frontmatterBlock returns the bytes between the leading "---" line and
// the next "---" line.
func frontmatterBlock(data []byte) ([]byte, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return nil, errors.New("no frontmatter block (file must start with ---)")
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return []byte(strings.Join(lines[1:i], "\n")), nil
		}
	}
	return nil, errors.New("unterminated frontmatter block (missing closing ---)")
}

// skillExtractor reads a directory asset whose metadata lives in the
// frontmatter of a SKILL.md file at the directory top level.
type skillExtractor struct{}

func (skillExtractor) Extract(path string, ignore []string) (*Asset, error) {
	manifest := filepath.Join(path, "SKILL.md")
	data, err := os.ReadFile(manifest) // #nosec G304
	if err != nil {
		return nil, &ExtractionError{Path: path, Reason: ReasonUnreadable,
			Detail: "skill directory has no readable SKILL.md", Err: err}
	}
	block, err := frontmatterBlock(data)
	if err != nil {
		return nil, &ExtractionError{Path: manifest, Reason: ReasonParseFailure, Detail: err.Error()}
	}
	var d declared
	if err := yaml.Unmarshal(block, &d); err != nil {
		return nil, &ExtractionError{Path: manifest, Reason: ReasonParseFailure,
			Detail: err.Error(), Err: err}
	}
	return d.toAsset(path, CategorySkill, ignore)
}

// hookExtractor reads a directory asset whose metadata lives in a
// hook.json sidecar.
type hookExtractor struct{}

func (hookExtractor) Extract(path string, ignore []string) (*Asset, error) {
	manifest := filepath.Join(path, "hook.json")
	data, err := os.ReadFile(manifest) // #nosec G304
	if err != nil {
		return nil, &ExtractionError{Path: path, Reason: ReasonUnreadable,
			Detail: "hook directory has no readable hook.json", Err: err}
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		detail := err.Error()
		var syn *json.SyntaxError
		if errors.As(err, &syn) {
			detail = fmt.Sprintf("%s (offset %d)", err.Error(), syn.Offset)
		}
		return nil, &ExtractionError{Path: manifest, Reason: ReasonParseFailure,
			Detail: detail, Err: err}
	}

	d := declared{Rest: map[string]interface{}{}}
	for k, v := range raw {
		switch k {
		case "name":
			d.Name, _ = v.(string)
		case "version":
			d.Version, _ = v.(string)
		case "description":
			d.Description, _ = v.(string)
		case "requires":
			if list, ok := v.([]interface{}); ok {
				for _, item := range list {
					if s, ok := item.(string); ok {
						d.Requires = append(d.Requires, s)
					}
				}
			}
		default:
			d.Rest[k] = v
		}
	}
	return d.toAsset(path, CategoryHook, ignore)
}

// workflowExtractor reads a standalone YAML document with top-level
// name/version/description/requires keys.
type workflowExtractor struct{}

func (workflowExtractor) Extract(path string, ignore []string) (*Asset, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, &ExtractionError{Path: path, Reason: ReasonUnreadable, Err: err}
	}
	var d declared
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, &ExtractionError{Path: path, Reason: ReasonParseFailure,
			Detail: err.Error(), Err: err}
	}
	return d.toAsset(path, CategoryWorkflow, ignore)
}
