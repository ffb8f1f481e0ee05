// pkg/registry/schema.go
package registry

// TemplatePack is the exported document form of a set of query templates. The
// catalog tool writes it for documentation and reads it for extra templates.
type TemplatePack struct {
	Version     string        `json:"version" yaml:"version"`
	LastUpdated string        `json:"lastUpdated" yaml:"last_updated"`
	Templates   []TemplateDoc `json:"templates" yaml:"templates"`
}

type TemplateDoc struct {
	ID               string            `json:"id" yaml:"id"`
	Category         string            `json:"category" yaml:"category"`
	Pattern          string            `json:"pattern" yaml:"pattern"`
	QueryTemplate    string            `json:"queryTemplate" yaml:"query_template"`
	RequiredEntities []string          `json:"requiredEntities,omitempty" yaml:"required_entities,omitempty"`
	OptionalEntities []string          `json:"optionalEntities,omitempty" yaml:"optional_entities,omitempty"`
	Priority         int               `json:"priority" yaml:"priority"`
	ResultType       string            `json:"resultType" yaml:"result_type"`
	Examples         []string          `json:"examples" yaml:"examples"`
	Description      string            `json:"description,omitempty" yaml:"description,omitempty"`
	Tags             []string          `json:"tags,omitempty" yaml:"tags,omitempty"`
	Intent           string            `json:"intent,omitempty" yaml:"intent,omitempty"`
	CaptureEntities  map[string]string `json:"captureEntities,omitempty" yaml:"capture_entities,omitempty"`
}
