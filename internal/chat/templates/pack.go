package templates

import (
	"fmt"
	"strings"
	"time"

	"obcms-chat-workers/pkg/registry"
)

// LoadPackFile reads extra definitions from a YAML or JSON template pack.
func LoadPackFile(path string) ([]Definition, error) {
	pack, err := registry.LoadPack(path)
	if err != nil {
		return nil, err
	}

	defs := make([]Definition, 0, len(pack.Templates))
	for i, doc := range pack.Templates {
		if doc.ID == "" {
			return nil, fmt.Errorf("%w: %s: template #%d has no id", ErrInvalidTemplate, path, i+1)
		}
		defs = append(defs, FromDoc(doc))
	}
	return defs, nil
}

func FromDoc(doc registry.TemplateDoc) Definition {
	return Definition{
		ID:               doc.ID,
		Category:         doc.Category,
		Pattern:          doc.Pattern,
		QueryTemplate:    doc.QueryTemplate,
		RequiredEntities: doc.RequiredEntities,
		OptionalEntities: doc.OptionalEntities,
		Priority:         doc.Priority,
		ResultType:       ResultType(doc.ResultType),
		Examples:         doc.Examples,
		Description:      doc.Description,
		Tags:             doc.Tags,
		Intent:           doc.Intent,
		CaptureEntities:  doc.CaptureEntities,
	}
}

// ToDoc exports a compiled template. The pattern is written without the
// case-insensitive flag Compile adds.
func ToDoc(t *QueryTemplate) registry.TemplateDoc {
	return registry.TemplateDoc{
		ID:               t.ID,
		Category:         t.Category,
		Pattern:          strings.TrimPrefix(t.Pattern.String(), "(?i)"),
		QueryTemplate:    t.QueryTemplate,
		RequiredEntities: t.RequiredEntities,
		OptionalEntities: t.OptionalEntities,
		Priority:         t.Priority,
		ResultType:       string(t.ResultType),
		Examples:         t.Examples,
		Description:      t.Description,
		Tags:             t.Tags,
		Intent:           t.Intent,
		CaptureEntities:  t.CaptureEntities,
	}
}

// Export renders the registry as a pack document.
func (r *Registry) Export(version string, now time.Time) *registry.TemplatePack {
	pack := &registry.TemplatePack{
		Version:     version,
		LastUpdated: now.UTC().Format(time.RFC3339),
		Templates:   make([]registry.TemplateDoc, 0, len(r.templates)),
	}
	for _, t := range r.templates {
		pack.Templates = append(pack.Templates, ToDoc(t))
	}
	return pack
}
