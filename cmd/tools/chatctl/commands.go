package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"obcms-chat-workers/internal/chat/catalogindex"
	"obcms-chat-workers/internal/chat/entity"
	"obcms-chat-workers/internal/chat/executor"
	"obcms-chat-workers/internal/chat/matcher"
	"obcms-chat-workers/internal/chat/pipeline"
	"obcms-chat-workers/internal/chat/templates"
	"obcms-chat-workers/internal/chat/templates/catalog"
	"obcms-chat-workers/internal/common/config"
	"obcms-chat-workers/internal/common/database"
	"obcms-chat-workers/internal/common/logger"
)

var (
	category     string
	intent       string
	entitiesJSON string
	packPath     string
	maxResults   int
	runQuery     bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <text>",
	Short: "Extract entities from a question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ents := entity.NewExtractor(entity.WithLogger(newLogger())).Extract(cmd.Context(), args[0])
		return printJSON(map[string]interface{}{
			"entities": ents,
			"summary":  entity.Summary(ents),
			"warnings": entity.Validate(ents),
		})
	},
}

var matchCmd = &cobra.Command{
	Use:   "match <question>",
	Short: "Pick a template and generate its query",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newMatcher()
		if err != nil {
			return err
		}
		supplied, err := parseEntities()
		if err != nil {
			return err
		}
		svc := pipeline.New(entity.NewExtractor(), m, nil, newLogger())
		ents := svc.Entities(cmd.Context(), args[0], supplied)
		return printJSON(m.MatchAndGenerate(cmd.Context(), args[0], ents, intent, category))
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest <partial>",
	Short: "List template examples starting with the given text",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newMatcher()
		if err != nil {
			return err
		}
		partial := ""
		if len(args) == 1 {
			partial = args[0]
		}
		return printJSON(m.GetTemplateSuggestions(partial, category, maxResults))
	},
}

var compileCmd = &cobra.Command{
	Use:   "compile <query>",
	Short: "Check a generated query and show the SQL it compiles to",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := executor.Parse(args[0])
		if err != nil {
			return err
		}
		st, err := executor.NewBuilder(nil, 0).Build(q)
		if err != nil {
			return err
		}
		return printJSON(map[string]interface{}{
			"model":    st.Model,
			"terminal": st.Terminal,
			"sql":      st.SQL,
			"args":     st.Args,
		})
	},
}

var execCmd = &cobra.Command{
	Use:   "exec <query>",
	Short: "Run a generated query against PostgreSQL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		exec, closeDB, err := newExecutor(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeDB()

		res := exec.Execute(cmd.Context(), args[0])
		if err := printJSON(res); err != nil {
			return err
		}
		if !res.Success {
			return fmt.Errorf("%s", res.ErrorCode)
		}
		return nil
	},
}

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Run the whole pipeline for a question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newMatcher()
		if err != nil {
			return err
		}
		supplied, err := parseEntities()
		if err != nil {
			return err
		}

		log := newLogger()
		var exec *executor.Executor
		if runQuery {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			var closeDB func()
			exec, closeDB, err = newExecutor(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeDB()
		}

		svc := pipeline.New(entity.NewExtractor(entity.WithLogger(log)), m, exec, log)
		return printJSON(svc.Answer(cmd.Context(), pipeline.Request{
			Query:    args[0],
			Entities: supplied,
			Intent:   intent,
			Category: category,
			Execute:  runQuery,
		}))
	},
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Push the template catalog into Elasticsearch",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		reg, err := buildRegistry()
		if err != nil {
			return err
		}
		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()
		if err := es.Ping(ctx); err != nil {
			return err
		}

		idx := catalogindex.New(es.Client, cfg.Chat.Index.Name, newLogger())
		if err := idx.EnsureIndex(ctx); err != nil {
			return err
		}
		n, err := idx.IndexAll(ctx, reg)
		if err != nil {
			return err
		}
		fmt.Printf("Indexed %d templates into %s\n", n, idx.Name())
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{matchCmd, suggestCmd, askCmd} {
		c.Flags().StringVar(&category, "category", "", "Restrict to one template category")
		c.Flags().StringVar(&packPath, "pack", "", "Extra template pack to load")
	}
	indexCmd.Flags().StringVar(&packPath, "pack", "", "Extra template pack to load")
	for _, c := range []*cobra.Command{matchCmd, askCmd} {
		c.Flags().StringVar(&intent, "intent", "", "Intent hint")
		c.Flags().StringVar(&entitiesJSON, "entities", "", `Entities as JSON, e.g. '{"sector":"fishing"}'`)
	}
	suggestCmd.Flags().IntVar(&maxResults, "max", 5, "Maximum suggestions")
	askCmd.Flags().BoolVar(&runQuery, "execute", false, "Run the generated query against PostgreSQL")
}

func newLogger() logger.Logger {
	return logger.NewStructured(logLevel, "console")
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

func buildRegistry() (*templates.Registry, error) {
	if packPath == "" {
		return catalog.NewRegistry()
	}
	return catalog.WithPacks(packPath).Get()
}

func newMatcher() (*matcher.Matcher, error) {
	reg, err := buildRegistry()
	if err != nil {
		return nil, err
	}
	return matcher.New(reg, newLogger()), nil
}

func newExecutor(ctx context.Context, cfg *config.Config) (*executor.Executor, func(), error) {
	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		return nil, nil, err
	}
	if err := pg.Ping(ctx); err != nil {
		_ = pg.Close()
		return nil, nil, err
	}
	exec := executor.New(pg.DB, executor.Config{
		MaxResults: cfg.Chat.Executor.MaxResults,
		Timeout:    config.GetDuration(cfg.Chat.Executor.TimeoutMs),
	}, newLogger())
	return exec, func() { _ = pg.Close() }, nil
}

func parseEntities() (entity.Set, error) {
	if entitiesJSON == "" {
		return nil, nil
	}
	var set entity.Set
	if err := json.Unmarshal([]byte(entitiesJSON), &set); err != nil {
		return nil, fmt.Errorf("invalid --entities: %w", err)
	}
	return set, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
