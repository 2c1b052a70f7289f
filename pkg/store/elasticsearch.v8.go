package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/mkale/taxkeep/pkg/domain"
	"github.com/mkale/taxkeep/pkg/logger"

	"github.com/cenkalti/backoff/v4"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
)

// from https://github.com/elastic/go-elasticsearch/blob/master/_examples/bulk/indexer.go

const (
	esIndex         = "taxkeep"
	esExcludedIndex = "taxkeep-excluded"
	esFlush         = 2048
	esPageSize      = 10000

	envEsAddr = "ELASTICSEARCH_SERVICE_HOST"
	envEsPort = "ELASTICSEARCH_SERVICE_PORT"
)

type ElasticsearchV8 struct {
	addresses []string
}

func NewElasticsearchV8(urls ...string) Store {
	if len(urls) == 0 {
		address := os.Getenv(envEsAddr)
		port := os.Getenv(envEsPort)
		if port == "" {
			port = "9200" // default port
		}
		if address == "" {
			address = "localhost" // default address
		}
		urls = []string{fmt.Sprintf("http://%s:%s", address, port)}
	}

	return &ElasticsearchV8{addresses: urls}
}

func (e *ElasticsearchV8) client() (*elasticsearch.Client, error) {
	retryBackoff := backoff.NewExponentialBackOff()

	return elasticsearch.NewClient(elasticsearch.Config{
		Addresses: e.addresses,

		// Retry on 429 TooManyRequests statuses
		RetryOnStatus: []int{502, 503, 504, 429},

		RetryBackoff: func(i int) time.Duration {
			if i == 1 {
				retryBackoff.Reset()
			}
			return retryBackoff.NextBackOff()
		},

		MaxRetries: 5,
	})
}

// Write bulk-indexes transactions. The document ID is the fingerprint and
// the action is "create", so a concurrent import writing the same
// real-world transaction gets a conflict instead of a silent duplicate.
func (e *ElasticsearchV8) Write(txns []*domain.Transaction) error {
	log := logger.New()

	es, err := e.client()
	if err != nil {
		return err
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         esIndex,
		FlushBytes:    esFlush,
		Client:        es,
		NumWorkers:    4,
		FlushInterval: 10 * time.Second,
	})
	if err != nil {
		return err
	}

	_, err = es.Indices.Create(esIndex)
	if err != nil {
		log.Debug().Err(err).Str("index", esIndex).Msg("attempted to make index")
	}

	var conflicts int64
	for _, t := range txns {
		data, err := t.JSON()
		if err != nil {
			return err
		}

		docID := t.Fingerprint
		if docID == "" {
			docID = t.ID
		}

		err = bi.Add(
			context.Background(),
			esutil.BulkIndexerItem{
				Action:     "create",
				DocumentID: docID,
				Body:       bytes.NewReader(data),

				OnSuccess: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem) {},

				OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
					if err != nil {
						log.Error().Err(err).Msg("failed to index transaction")
						return
					}
					if strings.Contains(res.Error.Type, "version_conflict") {
						atomic.AddInt64(&conflicts, 1)
						log.Warn().Str("doc", item.DocumentID).Msg("fingerprint already indexed")
						return
					}
					log.Error().Str("type", res.Error.Type).Str("reason", res.Error.Reason).Msg("failed to index transaction")
				},
			},
		)

		if err != nil {
			return err
		}
	}

	err = bi.Close(context.Background())
	if err != nil {
		return err
	}

	biStats := bi.Stats()
	if n := atomic.LoadInt64(&conflicts); n > 0 {
		return fmt.Errorf("%w: %d conflicting docs", ErrFingerprintExists, n)
	}
	if biStats.NumFailed > 0 {
		log.Error().Int64("flushed", int64(biStats.NumFlushed)).Int64("failed", int64(biStats.NumFailed)).Msg("indexing finished with errors")
		return fmt.Errorf("failed indexing %d docs", int64(biStats.NumFailed))
	}
	log.Info().Int64("flushed", int64(biStats.NumFlushed)).Msg("indexed documents")

	return nil
}

func (e *ElasticsearchV8) Between(from, to time.Time) ([]*domain.Transaction, error) {
	query := map[string]interface{}{
		"size": esPageSize,
		"query": map[string]interface{}{
			"range": map[string]interface{}{
				"date": map[string]interface{}{
					"gte": from.UTC().Format(time.RFC3339),
					"lte": to.UTC().Format(time.RFC3339),
				},
			},
		},
	}

	hits, err := e.search(esIndex, query)
	if err != nil {
		return nil, err
	}

	txns := []*domain.Transaction{}
	for _, h := range hits {
		t := &domain.Transaction{}
		if err := json.Unmarshal(h.Source, t); err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, nil
}

func (e *ElasticsearchV8) Excluded() (map[string]bool, error) {
	query := map[string]interface{}{
		"size":  esPageSize,
		"query": map[string]interface{}{"match_all": map[string]interface{}{}},
	}

	hits, err := e.search(esExcludedIndex, query)
	if err != nil {
		return nil, err
	}

	out := map[string]bool{}
	for _, h := range hits {
		out[h.ID] = true
	}
	return out, nil
}

func (e *ElasticsearchV8) Delete(id string) error {
	query := map[string]interface{}{
		"size": 1,
		"query": map[string]interface{}{
			"term": map[string]interface{}{"id": id},
		},
	}

	hits, err := e.search(esIndex, query)
	if err != nil {
		return err
	}
	if len(hits) == 0 {
		return fmt.Errorf("no transaction with id %s", id)
	}

	es, err := e.client()
	if err != nil {
		return err
	}

	res, err := es.Delete(esIndex, hits[0].ID)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("delete %s: %s", id, res.String())
	}

	t := &domain.Transaction{}
	if err := json.Unmarshal(hits[0].Source, t); err != nil {
		return err
	}
	if t.Fingerprint == "" {
		return nil
	}

	// record the exclusion so an import can never re-admit the row
	exc, err := es.Index(esExcludedIndex, strings.NewReader(`{}`),
		es.Index.WithDocumentID(t.Fingerprint))
	if err != nil {
		return err
	}
	defer exc.Body.Close()
	if exc.IsError() {
		return fmt.Errorf("record exclusion for %s: %s", id, exc.String())
	}
	return nil
}

type esHit struct {
	ID     string          `json:"_id"`
	Source json.RawMessage `json:"_source"`
}

type esSearchReply struct {
	Hits struct {
		Hits []esHit `json:"hits"`
	} `json:"hits"`
}

func (e *ElasticsearchV8) search(index string, query map[string]interface{}) ([]esHit, error) {
	es, err := e.client()
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	res, err := es.Search(
		es.Search.WithContext(context.Background()),
		es.Search.WithIndex(index),
		es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == 404 {
		// index not created yet: nothing stored
		return nil, nil
	}
	if res.IsError() {
		return nil, fmt.Errorf("search %s: %s", index, res.String())
	}

	reply := &esSearchReply{}
	if err := json.NewDecoder(res.Body).Decode(reply); err != nil {
		return nil, err
	}
	return reply.Hits.Hits, nil
}
