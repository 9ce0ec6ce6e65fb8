package search

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/elastic/go-elasticsearch/v7"
	"github.com/elastic/go-elasticsearch/v7/esapi"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"example.com/volunteerhub/config"
	"example.com/volunteerhub/internal/models"
)

// ElasticClient indexes events for text search. Indexing is best-effort:
// the registration and create-event flows never fail on search errors.
type ElasticClient struct {
	client  *elasticsearch.Client
	config  config.ElasticConfig
	enabled bool
}

// NewElasticClient creates a new Elasticsearch client
func NewElasticClient(cfg config.ElasticConfig) (*ElasticClient, error) {
	if !cfg.Enabled {
		return &ElasticClient{enabled: false}, nil
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.URL},
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Elasticsearch client")
	}

	return &ElasticClient{client: client, config: cfg, enabled: true}, nil
}

// Enabled reports whether search is available.
func (c *ElasticClient) Enabled() bool {
	return c != nil && c.enabled
}

// IndexEvent indexes an event document.
func (c *ElasticClient) IndexEvent(ctx context.Context, event *models.Event) error {
	if !c.Enabled() {
		return nil
	}

	doc := map[string]interface{}{
		"id":              event.ID.String(),
		"name":            event.Name,
		"description":     event.Description,
		"date":            event.Date,
		"address":         event.Address,
		"organization_id": event.OrganizationID.String(),
	}
	if event.HasCoordinates() {
		doc["lat"] = *event.Lat
		doc["lng"] = *event.Lng
	}

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "failed to marshal event document")
	}

	req := esapi.IndexRequest{
		Index:      config.FormatIndex(c.config, c.config.Index),
		DocumentID: event.ID.String(),
		Body:       bytes.NewReader(docJSON),
		Refresh:    "true",
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return errors.Wrap(err, "failed to execute Elasticsearch index request")
	}
	defer res.Body.Close()

	if res.IsError() {
		var e map[string]interface{}
		if err := json.NewDecoder(res.Body).Decode(&e); err != nil {
			return errors.Wrap(err, "failed to parse Elasticsearch error response")
		}
		return errors.Errorf("Elasticsearch index error: %v", e)
	}

	log.Debug().Str("event_id", event.ID.String()).Msg("Event indexed")
	return nil
}

// SearchEvents runs a multi-match text query over indexed events and returns
// the raw documents.
func (c *ElasticClient) SearchEvents(ctx context.Context, text string) ([]map[string]interface{}, error) {
	if !c.Enabled() {
		return nil, errors.New("search is disabled")
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  text,
				"fields": []string{"name", "description", "address"},
			},
		},
	}

	queryJSON, err := json.Marshal(query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal search query")
	}

	req := esapi.SearchRequest{
		Index: []string{config.FormatIndex(c.config, c.config.Index)},
		Body:  bytes.NewReader(queryJSON),
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute Elasticsearch search request")
	}
	defer res.Body.Close()

	if res.IsError() {
		var e map[string]interface{}
		if err := json.NewDecoder(res.Body).Decode(&e); err != nil {
			return nil, errors.Wrap(err, "failed to parse Elasticsearch error response")
		}
		return nil, errors.Errorf("Elasticsearch search error: %v", e)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, errors.Wrap(err, "failed to parse Elasticsearch search response")
	}

	hits, ok := result["hits"].(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected search result format")
	}
	hitsArray, ok := hits["hits"].([]interface{})
	if !ok {
		return nil, errors.New("unexpected hits format")
	}

	var docs []map[string]interface{}
	for _, hit := range hitsArray {
		hitMap, ok := hit.(map[string]interface{})
		if !ok {
			continue
		}
		source, ok := hitMap["_source"].(map[string]interface{})
		if !ok {
			continue
		}
		docs = append(docs, source)
	}

	return docs, nil
}
