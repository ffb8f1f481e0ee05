// Package catalogindex keeps a searchable Elasticsearch copy of the template
// catalog. The matcher never reads it; it serves documentation and "did you
// mean" hints when no template matches.
package catalogindex

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"obcms-chat-workers/internal/chat/templates"
	"obcms-chat-workers/internal/common/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultIndex = "chat-query-templates"

	// bulkWorkers bounds concurrent per-category bulk requests.
	bulkWorkers = 4
)

var (
	ErrIndexUnavailable = errors.New("INDEX_UNAVAILABLE")
	ErrBulkFailed       = errors.New("BULK_INDEX_FAILED")
	ErrSearchFailed     = errors.New("SEARCH_QUERY_FAILED")
)

const mapping = `{
  "mappings": {
    "properties": {
      "id":                {"type": "keyword"},
      "category":          {"type": "keyword"},
      "description":       {"type": "text"},
      "examples":          {"type": "text"},
      "tags":              {"type": "keyword"},
      "intent":            {"type": "keyword"},
      "result_type":       {"type": "keyword"},
      "required_entities": {"type": "keyword"},
      "priority":          {"type": "integer"}
    }
  }
}`

// Source is the part of a registry the index reads.
type Source interface {
	Categories() []string
	GetTemplatesByCategory(category string) []*templates.QueryTemplate
}

// Document is the indexed form of a template.
type Document struct {
	ID               string   `json:"id"`
	Category         string   `json:"category"`
	Description      string   `json:"description,omitempty"`
	Examples         []string `json:"examples"`
	Tags             []string `json:"tags,omitempty"`
	Intent           string   `json:"intent"`
	ResultType       string   `json:"result_type"`
	RequiredEntities []string `json:"required_entities,omitempty"`
	Priority         int      `json:"priority"`
}

func NewDocument(t *templates.QueryTemplate) Document {
	return Document{
		ID:               t.ID,
		Category:         t.Category,
		Description:      t.Description,
		Examples:         t.Examples,
		Tags:             t.Tags,
		Intent:           t.Intent,
		ResultType:       string(t.ResultType),
		RequiredEntities: t.RequiredEntities,
		Priority:         t.Priority,
	}
}

// Hit is one search result.
type Hit struct {
	TemplateID  string  `json:"templateId"`
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
	Example     string  `json:"example,omitempty"`
	Score       float64 `json:"score"`
}

type Index struct {
	client *elasticsearch.Client
	name   string
	logger logger.Logger
}

func New(client *elasticsearch.Client, name string, log logger.Logger) *Index {
	if name == "" {
		name = DefaultIndex
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Index{
		client: client,
		name:   name,
		logger: log.WithFields(map[string]interface{}{"component": "catalogindex", "index": name}),
	}
}

func (i *Index) Name() string {
	return i.name
}

// EnsureIndex creates the index with its mapping unless it already exists.
func (i *Index) EnsureIndex(ctx context.Context) error {
	res, err := esapi.IndicesExistsRequest{Index: []string{i.name}}.Do(ctx, i.client)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}
	res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
	default:
		return fmt.Errorf("%w: exists check returned %s", ErrIndexUnavailable, res.Status())
	}

	res, err = esapi.IndicesCreateRequest{Index: i.name, Body: strings.NewReader(mapping)}.Do(ctx, i.client)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("%w: create returned %s", ErrIndexUnavailable, res.String())
	}

	i.logger.Info("catalog index created", nil)
	return nil
}

// IndexAll writes every template of src, one bulk request per category.
func (i *Index) IndexAll(ctx context.Context, src Source) (int, error) {
	categories := src.Categories()
	counts := make([]int, len(categories))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkWorkers)
	for n, category := range categories {
		n, category := n, category
		g.Go(func() error {
			docs := src.GetTemplatesByCategory(category)
			if err := i.bulk(gctx, docs); err != nil {
				return fmt.Errorf("category %s: %w", category, err)
			}
			counts[n] = len(docs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	total := 0
	for _, c := range counts {
		total += c
	}
	i.logger.Info("catalog indexed", map[string]interface{}{
		"templates":  total,
		"categories": len(categories),
	})
	return total, nil
}

func (i *Index) bulk(ctx context.Context, docs []*templates.QueryTemplate) error {
	if len(docs) == 0 {
		return nil
	}

	var body bytes.Buffer
	enc := json.NewEncoder(&body)
	for _, t := range docs {
		meta := map[string]interface{}{"index": map[string]interface{}{"_id": t.ID}}
		if err := enc.Encode(meta); err != nil {
			return err
		}
		if err := enc.Encode(NewDocument(t)); err != nil {
			return err
		}
	}

	res, err := esapi.BulkRequest{Index: i.name, Body: &body, Refresh: "true"}.Do(ctx, i.client)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBulkFailed, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("%w: %s", ErrBulkFailed, res.String())
	}

	var out struct {
		Errors bool `json:"errors"`
		Items  []map[string]struct {
			ID    string          `json:"_id"`
			Error json.RawMessage `json:"error"`
		} `json:"items"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrBulkFailed, err)
	}
	if out.Errors {
		var failed []string
		for _, item := range out.Items {
			for _, r := range item {
				if len(r.Error) > 0 {
					failed = append(failed, r.ID)
				}
			}
		}
		return fmt.Errorf("%w: rejected %s", ErrBulkFailed, strings.Join(failed, ", "))
	}
	return nil
}

// Search returns the templates whose examples, description or tags best match
// text.
func (i *Index) Search(ctx context.Context, text string, size int) ([]Hit, error) {
	if strings.TrimSpace(text) == "" {
		return []Hit{}, nil
	}
	if size <= 0 {
		size = 5
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     text,
				"fields":    []string{"examples^3", "description^2", "tags", "category"},
				"type":      "best_fields",
				"fuzziness": "AUTO",
			},
		},
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	res, err := esapi.SearchRequest{
		Index: []string{i.name},
		Body:  bytes.NewReader(body),
		Size:  &size,
	}.Do(ctx, i.client)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("%w: %s: %s", ErrSearchFailed, res.Status(), msg)
	}

	var out struct {
		Hits struct {
			Hits []struct {
				Score  float64  `json:"_score"`
				Source Document `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrSearchFailed, err)
	}

	hits := make([]Hit, 0, len(out.Hits.Hits))
	for _, h := range out.Hits.Hits {
		hit := Hit{
			TemplateID:  h.Source.ID,
			Category:    h.Source.Category,
			Description: h.Source.Description,
			Score:       h.Score,
		}
		if len(h.Source.Examples) > 0 {
			hit.Example = h.Source.Examples[0]
		}
		hits = append(hits, hit)
	}
	return hits, nil
}
