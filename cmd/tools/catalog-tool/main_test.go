package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"obcms-chat-workers/internal/chat/templates/catalog"
	"obcms-chat-workers/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)

	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()
	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestHelp_EndsWithSingleNewline(t *testing.T) {
	out := captureStdout(t, help)
	assert.Contains(t, out, "Usage: catalog-tool <command> [flags]")
	assert.Contains(t, out, "validate  Compile a template pack")
	assert.Regexp(t, `command\.\n$`, out)
	assert.NotRegexp(t, `\n\n$`, out)
}

func TestExportCatalog_Category(t *testing.T) {
	out := filepath.Join(t.TempDir(), "temporal.yaml")
	n, err := exportCatalog(out, "1.0.0", "temporal")
	require.NoError(t, err)

	reg, err := catalog.NewRegistry()
	require.NoError(t, err)
	assert.Equal(t, len(reg.GetTemplatesByCategory("temporal")), n)

	pack, err := registry.LoadPack(out)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", pack.Version)
	require.Len(t, pack.Templates, n)
	for _, doc := range pack.Templates {
		assert.Equal(t, "temporal", doc.Category)
	}

	_, err = exportCatalog(filepath.Join(t.TempDir(), "x.yaml"), "1.0.0", "staff")
	assert.EqualError(t, err, "unknown category: staff")
}

func TestValidatePack_ShippedExample(t *testing.T) {
	path := filepath.Join("..", "..", "..", "configs", "templates", "extra.example.yaml")
	captureStdout(t, func() {
		assert.NoError(t, validatePack(path))
	})
}

func TestValidatePack_RejectsBuiltInCollision(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dup.yaml")
	require.NoError(t, registry.SavePack(path, &registry.TemplatePack{
		Version: "1",
		Templates: []registry.TemplateDoc{{
			ID:            "list_all_provinces",
			Category:      "geographic",
			Pattern:       `\bprovinces\b`,
			QueryTemplate: "Province.objects.all()",
			Priority:      5,
			ResultType:    "list",
			Examples:      []string{"provinces"},
		}},
	}))
	assert.Error(t, validatePack(path))
}
