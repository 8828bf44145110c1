package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// Config describes how to reach the cluster
type Config struct {
	Addresses       []string
	Username        string
	Password        string
	MaxRetries      int
	AllowedPatterns []string
	Transport       http.RoundTripper
}

// IndexDefinition is the domain configuration an index is created from
type IndexDefinition struct {
	Settings map[string]any `json:"settings,omitempty"`
	Mappings map[string]any `json:"mappings,omitempty"`
}

// Document is one unit to index
type Document struct {
	ID     string
	Source any
}

// Hit is one typed search result
type Hit struct {
	ID     string
	Score  float64
	Source json.RawMessage
}

// Index wraps the go-elasticsearch client
type Index struct {
	client          *elasticsearch.Client
	allowedPatterns []string
}

// New creates an Index client from the configuration
func New(cfg Config) (*Index, error) {
	if len(cfg.Addresses) == 0 {
		return nil, fmt.Errorf("at least one cluster address is required")
	}

	esCfg := elasticsearch.Config{
		Addresses:  cfg.Addresses,
		MaxRetries: cfg.MaxRetries,
		Transport:  cfg.Transport,
	}
	if cfg.Username != "" {
		esCfg.Username = cfg.Username
		esCfg.Password = cfg.Password
	}

	client, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch.NewClient: %w", err)
	}

	return &Index{client: client, allowedPatterns: cfg.AllowedPatterns}, nil
}

// IsIndexAllowed returns true if the index matches any of the allowed
// patterns. If no patterns are configured, all indices are allowed.
func (x *Index) IsIndexAllowed(index string) bool {
	if len(x.allowedPatterns) == 0 {
		return true
	}
	for _, pattern := range x.allowedPatterns {
		matched, err := filepath.Match(pattern, index)
		if err == nil && matched {
			return true
		}
		prefix := strings.TrimSuffix(pattern, "*")
		if prefix != pattern && strings.HasPrefix(index, prefix) {
			return true
		}
	}
	return false
}

// Ping verifies the cluster is reachable
func (x *Index) Ping(ctx context.Context) error {
	res, err := x.client.Ping(x.client.Ping.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("ping error: %s", res.Status())
	}
	return nil
}

// CreateIndex creates an index with the given settings and mappings
func (x *Index) CreateIndex(ctx context.Context, name string, def IndexDefinition) error {
	if !x.IsIndexAllowed(name) {
		return fmt.Errorf("access to index %q is not permitted", name)
	}

	body, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("marshal index definition: %w", err)
	}

	res, err := x.client.Indices.Create(
		name,
		x.client.Indices.Create.WithContext(ctx),
		x.client.Indices.Create.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return responseError("create index", res)
	}
	return nil
}

// BulkIndex writes documents to the index in one bulk request
func (x *Index) BulkIndex(ctx context.Context, index string, docs []Document) error {
	if !x.IsIndexAllowed(index) {
		return fmt.Errorf("access to index %q is not permitted", index)
	}
	if len(docs) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for _, doc := range docs {
		action := map[string]any{"index": map[string]any{"_index": index}}
		if doc.ID != "" {
			action["index"].(map[string]any)["_id"] = doc.ID
		}
		if err := json.NewEncoder(&buf).Encode(action); err != nil {
			return fmt.Errorf("encode bulk action: %w", err)
		}
		if err := json.NewEncoder(&buf).Encode(doc.Source); err != nil {
			return fmt.Errorf("encode document: %w", err)
		}
	}

	res, err := x.client.Bulk(
		bytes.NewReader(buf.Bytes()),
		x.client.Bulk.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return responseError("bulk index", res)
	}

	var report struct {
		Errors bool `json:"errors"`
		Items  []map[string]struct {
			Status int `json:"status"`
			Error  struct {
				Type   string `json:"type"`
				Reason string `json:"reason"`
			} `json:"error"`
		} `json:"items"`
	}
	if err := json.NewDecoder(res.Body).Decode(&report); err != nil {
		return fmt.Errorf("decode bulk response: %w", err)
	}
	if report.Errors {
		for _, item := range report.Items {
			for _, op := range item {
				if op.Status >= 300 {
					return fmt.Errorf("bulk index item failed: %s: %s", op.Error.Type, op.Error.Reason)
				}
			}
		}
		return fmt.Errorf("bulk index reported errors")
	}
	return nil
}

// Match runs a match query against one field and returns typed hits
func (x *Index) Match(ctx context.Context, index, field, query string, size int) ([]Hit, error) {
	if !x.IsIndexAllowed(index) {
		return nil, fmt.Errorf("access to index %q is not permitted", index)
	}
	if size <= 0 {
		size = 10
	}

	body, err := json.Marshal(map[string]any{
		"size": size,
		"query": map[string]any{
			"match": map[string]any{field: query},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	opts := []func(*esapi.SearchRequest){
		x.client.Search.WithContext(ctx),
		x.client.Search.WithIndex(index),
		x.client.Search.WithBody(bytes.NewReader(body)),
	}

	res, err := x.client.Search(opts...)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, responseError("search", res)
	}

	var raw struct {
		Hits struct {
			Hits []struct {
				ID     string          `json:"_id"`
				Score  float64         `json:"_score"`
				Source json.RawMessage `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	hits := make([]Hit, len(raw.Hits.Hits))
	for i, h := range raw.Hits.Hits {
		hits[i] = Hit{ID: h.ID, Score: h.Score, Source: h.Source}
	}
	return hits, nil
}

func responseError(op string, res *esapi.Response) error {
	var payload struct {
		Error struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err == nil && payload.Error.Type != "" {
		return fmt.Errorf("%s error [%s]: %s: %s", op, res.Status(), payload.Error.Type, payload.Error.Reason)
	}
	return fmt.Errorf("%s error: %s", op, res.Status())
}
