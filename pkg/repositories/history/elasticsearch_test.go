package history

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/naekun/naebot/pkg/entities"
	"github.com/stretchr/testify/suite"
)

// fakeElasticsearch answers the handful of endpoints the indexer uses
type fakeElasticsearch struct {
	mu          sync.Mutex
	indexExists bool
	created     int
	documents   map[string][]byte
	lastQuery   string
	failIndex   bool
}

func (f *fakeElasticsearch) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	body, _ := io.ReadAll(req.Body)
	path := strings.Trim(req.URL.Path, "/")
	parts := strings.Split(path, "/")

	switch {
	case req.Method == http.MethodHead && len(parts) == 1:
		if !f.indexExists {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)

	case req.Method == http.MethodPut && len(parts) == 1:
		f.indexExists = true
		f.created++
		w.Write([]byte(`{"acknowledged": true}`))

	case req.Method == http.MethodPut && len(parts) == 3 && parts[1] == "_doc":
		if f.failIndex {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": {"type": "mapper_parsing_exception"}}`))
			return
		}
		f.documents[parts[2]] = body
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"result": "created"}`))

	case req.Method == http.MethodPost && len(parts) == 2 && parts[1] == "_delete_by_query":
		f.lastQuery = string(body)
		w.Write([]byte(`{"deleted": 3}`))

	default:
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{}`))
	}
}

type ElasticsearchIndexerTestSuite struct {
	suite.Suite
	ctx    context.Context
	fake   *fakeElasticsearch
	server *httptest.Server
}

func TestElasticsearchIndexerSuite(t *testing.T) {
	suite.Run(t, new(ElasticsearchIndexerTestSuite))
}

func (s *ElasticsearchIndexerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.fake = &fakeElasticsearch{documents: make(map[string][]byte)}
	s.server = httptest.NewServer(s.fake)
}

func (s *ElasticsearchIndexerTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *ElasticsearchIndexerTestSuite) newIndexer() *ElasticsearchIndexer {
	indexer, err := NewElasticsearchIndexer(s.ctx, ElasticsearchConfig{
		URL:         s.server.URL,
		IndexPrefix: "test",
	})
	s.Require().NoError(err)
	return indexer
}

func (s *ElasticsearchIndexerTestSuite) TestCreatesMissingIndex() {
	indexer := s.newIndexer()

	s.Equal("test_janken_rounds", indexer.Index())
	s.Equal(1, s.fake.created)
}

func (s *ElasticsearchIndexerTestSuite) TestExistingIndexIsKept() {
	s.fake.indexExists = true

	s.newIndexer()

	s.Equal(0, s.fake.created)
}

func (s *ElasticsearchIndexerTestSuite) TestRecordRound() {
	indexer := s.newIndexer()
	round := &entities.Round{
		ID:         "round-1",
		UserID:     "123",
		PlayerHand: entities.Rock,
		BotHand:    entities.Scissors,
		Outcome:    entities.OutcomeWin,
		Streak:     2,
		PlayedAt:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	s.Require().NoError(indexer.RecordRound(s.ctx, round))

	stored, ok := s.fake.documents["round-1"]
	s.Require().True(ok)
	var decoded entities.Round
	s.Require().NoError(json.Unmarshal(stored, &decoded))
	s.Equal(*round, decoded)
}

func (s *ElasticsearchIndexerTestSuite) TestRecordRoundError() {
	indexer := s.newIndexer()
	s.fake.failIndex = true

	err := indexer.RecordRound(s.ctx, &entities.Round{ID: "round-2"})

	s.Error(err)
}

func (s *ElasticsearchIndexerTestSuite) TestPruneBefore() {
	indexer := s.newIndexer()
	cutoff := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	deleted, err := indexer.PruneBefore(s.ctx, cutoff)

	s.Require().NoError(err)
	s.Equal(3, deleted)
	s.Contains(s.fake.lastQuery, `"2024-01-01T00:00:00Z"`)
	s.Contains(s.fake.lastQuery, `"played_at"`)
}

func TestNopRecorder(t *testing.T) {
	var recorder Recorder = Nop{}
	if err := recorder.RecordRound(context.Background(), &entities.Round{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n, err := recorder.PruneBefore(context.Background(), time.Now()); err != nil || n != 0 {
		t.Fatalf("unexpected prune result %d, %v", n, err)
	}
}
