package catalogindex

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"obcms-chat-workers/internal/chat/templates/catalog"
	"obcms-chat-workers/internal/common/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeES answers the handful of endpoints the index uses.
type fakeES struct {
	mu       sync.Mutex
	exists   bool
	created  string
	indexed  map[string]Document
	bulkFail bool
	search   string
	lastBody map[string]interface{}
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.Method == http.MethodHead && r.URL.Path == "/"+DefaultIndex:
		if f.exists {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)

	case r.Method == http.MethodPut && r.URL.Path == "/"+DefaultIndex:
		body, _ := io.ReadAll(r.Body)
		f.created = string(body)
		f.exists = true
		_, _ = io.WriteString(w, `{"acknowledged":true,"index":"`+DefaultIndex+`"}`)

	case strings.HasSuffix(r.URL.Path, "/_bulk"):
		if f.bulkFail {
			_, _ = io.WriteString(w, `{"errors":true,"items":[{"index":{"_id":"broken","status":400,"error":{"type":"mapper_parsing_exception"}}}]}`)
			return
		}
		scanner := bufio.NewScanner(r.Body)
		scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
		for scanner.Scan() {
			if !scanner.Scan() {
				break
			}
			var doc Document
			if err := json.Unmarshal(scanner.Bytes(), &doc); err == nil {
				f.indexed[doc.ID] = doc
			}
		}
		_, _ = io.WriteString(w, `{"took":1,"errors":false,"items":[]}`)

	case strings.HasSuffix(r.URL.Path, "/_search"):
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.lastBody = body
		if f.search == "" {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, `{"error":"boom"}`)
			return
		}
		_, _ = io.WriteString(w, f.search)

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTestIndex(t *testing.T, fake *fakeES) *Index {
	t.Helper()
	if fake.indexed == nil {
		fake.indexed = map[string]Document{}
	}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return New(client, "", logger.NewTestLogger(t))
}

func TestEnsureIndex_CreatesOnce(t *testing.T) {
	fake := &fakeES{}
	idx := newTestIndex(t, fake)

	require.NoError(t, idx.EnsureIndex(context.Background()))
	assert.Contains(t, fake.created, `"examples"`)

	fake.created = ""
	require.NoError(t, idx.EnsureIndex(context.Background()))
	assert.Empty(t, fake.created, "existing index is left alone")
}

func TestIndexAll_IndexesWholeCatalog(t *testing.T) {
	reg, err := catalog.NewRegistry()
	require.NoError(t, err)

	fake := &fakeES{exists: true}
	idx := newTestIndex(t, fake)

	n, err := idx.IndexAll(context.Background(), reg)
	require.NoError(t, err)
	assert.Equal(t, reg.Len(), n)
	assert.Len(t, fake.indexed, reg.Len())

	doc, ok := fake.indexed["list_all_provinces"]
	require.True(t, ok)
	assert.Equal(t, "geographic", doc.Category)
	assert.Equal(t, 10, doc.Priority)
	assert.NotEmpty(t, doc.Examples)
}

func TestIndexAll_ReportsRejectedDocuments(t *testing.T) {
	reg, err := catalog.NewRegistry()
	require.NoError(t, err)

	idx := newTestIndex(t, &fakeES{exists: true, bulkFail: true})

	_, err = idx.IndexAll(context.Background(), reg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBulkFailed))
	assert.Contains(t, err.Error(), "broken")
}

func TestSearch(t *testing.T) {
	fake := &fakeES{search: `{"hits":{"total":{"value":2},"hits":[
		{"_score":4.2,"_source":{"id":"count_communities_by_location","category":"communities","examples":["How many communities in Region IX?"],"priority":9}},
		{"_score":1.5,"_source":{"id":"list_all_provinces","category":"geographic","description":"All provinces","examples":[]}}
	]}}`}
	idx := newTestIndex(t, fake)

	hits, err := idx.Search(context.Background(), "comunities in region", 3)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, Hit{
		TemplateID: "count_communities_by_location",
		Category:   "communities",
		Example:    "How many communities in Region IX?",
		Score:      4.2,
	}, hits[0])
	assert.Equal(t, "", hits[1].Example)

	mm := fake.lastBody["query"].(map[string]interface{})["multi_match"].(map[string]interface{})
	assert.Equal(t, "comunities in region", mm["query"])
	assert.Equal(t, "AUTO", mm["fuzziness"])
}

func TestSearch_EmptyTextSkipsRequest(t *testing.T) {
	fake := &fakeES{}
	idx := newTestIndex(t, fake)

	hits, err := idx.Search(context.Background(), "  ", 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
	assert.Nil(t, fake.lastBody)
}

func TestSearch_ServerError(t *testing.T) {
	idx := newTestIndex(t, &fakeES{})

	_, err := idx.Search(context.Background(), "provinces", 5)
	assert.ErrorIs(t, err, ErrSearchFailed)
}
