package history

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/naekun/naebot/pkg/entities"
)

const roundMapping = `{
	"mappings": {
		"properties": {
			"id": { "type": "keyword" },
			"user_id": { "type": "keyword" },
			"player_hand": { "type": "keyword" },
			"bot_hand": { "type": "keyword" },
			"outcome": { "type": "keyword" },
			"streak": { "type": "integer" },
			"played_at": { "type": "date" }
		}
	}
}`

// ElasticsearchConfig holds connection options for the round index
type ElasticsearchConfig struct {
	URL         string
	Username    string
	Password    string
	IndexPrefix string
}

// ElasticsearchIndexer writes janken rounds to a single Elasticsearch index
type ElasticsearchIndexer struct {
	client *elasticsearch.Client
	index  string
}

// NewElasticsearchIndexer connects to Elasticsearch and creates the round index if missing
func NewElasticsearchIndexer(ctx context.Context, config ElasticsearchConfig) (*ElasticsearchIndexer, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{config.URL},
	}

	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating Elasticsearch client: %w", err)
	}

	prefix := config.IndexPrefix
	if prefix == "" {
		prefix = "naebot"
	}

	indexer := &ElasticsearchIndexer{
		client: client,
		index:  prefix + "_janken_rounds",
	}

	if err := indexer.ensureIndex(ctx); err != nil {
		return nil, err
	}

	return indexer, nil
}

// Index returns the name of the round index
func (r *ElasticsearchIndexer) Index() string {
	return r.index
}

func (r *ElasticsearchIndexer) ensureIndex(ctx context.Context) error {
	res, err := r.client.Indices.Exists([]string{r.index}, r.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("error checking if round index exists: %w", err)
	}
	res.Body.Close()

	if res.StatusCode != 404 {
		if res.IsError() {
			return fmt.Errorf("error checking if round index exists: %s", res.String())
		}
		return nil
	}

	res, err = r.client.Indices.Create(
		r.index,
		r.client.Indices.Create.WithBody(bytes.NewReader([]byte(roundMapping))),
		r.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("error creating round index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error creating round index: %s", res.String())
	}

	return nil
}

// RecordRound indexes the round under its ID, so retries overwrite instead of duplicating
func (r *ElasticsearchIndexer) RecordRound(ctx context.Context, round *entities.Round) error {
	jsonData, err := json.Marshal(round)
	if err != nil {
		return fmt.Errorf("error marshaling round: %w", err)
	}

	res, err := r.client.Index(
		r.index,
		bytes.NewReader(jsonData),
		r.client.Index.WithDocumentID(round.ID),
		r.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("error indexing round: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing round: %s", res.String())
	}

	return nil
}

// PruneBefore deletes rounds played before cutoff
func (r *ElasticsearchIndexer) PruneBefore(ctx context.Context, cutoff time.Time) (int, error) {
	query := fmt.Sprintf(`{
		"query": {
			"range": {
				"played_at": { "lt": %q }
			}
		}
	}`, cutoff.UTC().Format(time.RFC3339))

	res, err := r.client.DeleteByQuery(
		[]string{r.index},
		bytes.NewReader([]byte(query)),
		r.client.DeleteByQuery.WithContext(ctx),
	)
	if err != nil {
		return 0, fmt.Errorf("error pruning rounds: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, fmt.Errorf("error pruning rounds: %s", res.String())
	}

	var result struct {
		Deleted int `json:"deleted"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("error parsing prune response: %w", err)
	}

	return result.Deleted, nil
}
