// cmd/tools/catalog-tool/main.go
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"obcms-chat-workers/internal/chat/entity"
	"obcms-chat-workers/internal/chat/executor"
	"obcms-chat-workers/internal/chat/placeholder"
	"obcms-chat-workers/internal/chat/templates"
	"obcms-chat-workers/internal/chat/templates/catalog"
	"obcms-chat-workers/pkg/registry"
)

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	statsCmd := flag.NewFlagSet("stats", flag.ExitOnError)

	// Export command flags
	exportOut := exportCmd.String("out", "configs/templates/builtin.yaml", "Output file (.yaml, .yml or .json)")
	exportVersion := exportCmd.String("version", "1.0.0", "Pack version")
	exportCategory := exportCmd.String("category", "", "Only export this category")

	// Validate command flags
	validatePath := validateCmd.String("path", "", "Template pack to validate against the built-in catalog")

	// Stats command flags
	statsPack := statsCmd.String("pack", "", "Optional extra pack to include")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		n, err := exportCatalog(*exportOut, *exportVersion, *exportCategory)
		if err != nil {
			fmt.Printf("Error exporting catalog: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported %d templates to %s\n", n, *exportOut)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		if *validatePath == "" {
			fmt.Println("Error: path is required for validate.")
			validateCmd.Usage()
			os.Exit(1)
		}
		if err := validatePack(*validatePath); err != nil {
			fmt.Printf("Pack validation failed:\n%v\n", err)
			os.Exit(1)
		}

	case "stats":
		statsCmd.Parse(os.Args[2:])
		if err := printStats(*statsPack); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

	case "help":
		fallthrough
	default:
		help()
	}
}

func exportCatalog(out, version, category string) (int, error) {
	reg, err := catalog.NewRegistry()
	if err != nil {
		return 0, fmt.Errorf("built-in catalog does not compile: %w", err)
	}

	pack := reg.Export(version, time.Now())
	if category != "" {
		kept := pack.Templates[:0]
		for _, doc := range pack.Templates {
			if doc.Category == category {
				kept = append(kept, doc)
			}
		}
		if len(kept) == 0 {
			return 0, fmt.Errorf("unknown category: %s", category)
		}
		pack.Templates = kept
	}

	if err := registry.SavePack(out, pack); err != nil {
		return 0, err
	}
	return len(pack.Templates), nil
}

// validatePack compiles the pack together with the built-in catalog, so id
// collisions with built-in templates are reported too. Each pack query is then
// filled with no entities and compiled to SQL.
func validatePack(path string) error {
	defs, err := templates.LoadPackFile(path)
	if err != nil {
		return err
	}
	if len(defs) == 0 {
		return fmt.Errorf("pack contains no templates")
	}

	reg, err := catalog.NewRegistry(defs)
	if err != nil {
		return err
	}

	builder := executor.NewBuilder(nil, 0)
	var errs []error
	for _, d := range defs {
		t, _ := reg.GetTemplateByID(d.ID)
		query := placeholder.Substitute(t.QueryTemplate, entity.Set{})
		q, err := executor.Parse(query)
		if err == nil {
			_, err = builder.Build(q)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", d.ID, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	fmt.Printf("Pack validation passed. %d templates added, %d in total.\n", len(defs), reg.Len())
	return nil
}

func printStats(pack string) error {
	var extra [][]templates.Definition
	if pack != "" {
		defs, err := templates.LoadPackFile(pack)
		if err != nil {
			return err
		}
		extra = append(extra, defs)
	}

	reg, err := catalog.NewRegistry(extra...)
	if err != nil {
		return err
	}
	stats := reg.Stats()

	fmt.Printf("Templates: %d\n", stats.Total)
	fmt.Printf("Average priority: %.2f\n\n", stats.AveragePriority)
	for _, c := range reg.Categories() {
		fmt.Printf("  %-16s %d\n", c, stats.Categories[c])
	}

	tags := make([]string, 0, len(stats.Tags))
	for t := range stats.Tags {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	data, err := json.Marshal(tags)
	if err != nil {
		return err
	}
	fmt.Printf("\nTags: %s\n", data)
	return nil
}

func help() {
	fmt.Print(`
Usage: catalog-tool <command> [flags]

Commands:
  export    Write the built-in template catalog as a pack file
  validate  Compile a template pack together with the built-in catalog
  stats     Show template counts per category
  help      Show this help message

Examples:
  catalog-tool export -out configs/templates/builtin.yaml -version 1.2.0
  catalog-tool export -category geographic -out geographic.json
  catalog-tool validate -path configs/templates/extra.yaml
  catalog-tool stats -pack configs/templates/extra.yaml

Use 'catalog-tool <command> -h' for more information about a command.
`)
}
