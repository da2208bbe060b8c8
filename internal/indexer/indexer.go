// Package indexer maintains a per-analysis full-text index over recovered
// message records, so investigators can query bodies with contact, direction
// and time filters.
package indexer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/ufdrinsight/ufdrinsight/internal/model"
)

const (
	runtimeIndexVersionKey = "ufdrinsight_index_version"
	runtimeIndexVersion    = "1"
)

// SearchHit is a single index hit mapped back to the domain model.
type SearchHit struct {
	Message *model.Message `json:"message"`
	Snippet string         `json:"snippet"`
	Score   float64        `json:"score"`
}

// Index wraps a Bleve index with concurrency control.
type Index struct {
	mu   sync.RWMutex
	idx  bleve.Index
	path string
}

// Open opens an existing index at the given path or creates a new one with
// the message mapping.
func Open(path string) (*Index, error) {
	parent := filepath.Dir(path)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return nil, fmt.Errorf("create index parent dir: %w", err)
	}

	var (
		idx bleve.Index
		err error
	)
	if _, statErr := os.Stat(path); statErr == nil {
		idx, err = bleve.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open bleve index: %w", err)
		}
	} else if errors.Is(statErr, os.ErrNotExist) {
		idx, err = bleve.New(path, buildMapping())
		if err != nil {
			return nil, fmt.Errorf("create bleve index: %w", err)
		}
		if err := idx.SetInternal([]byte(runtimeIndexVersionKey), []byte(runtimeIndexVersion)); err != nil {
			return nil, fmt.Errorf("stamp index version: %w", err)
		}
	} else {
		return nil, fmt.Errorf("stat index: %w", statErr)
	}

	return &Index{idx: idx, path: path}, nil
}

// Close closes the underlying Bleve index.
func (i *Index) Close() error {
	if i == nil {
		return nil
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.idx == nil {
		return nil
	}
	return i.idx.Close()
}

// Path returns the index directory.
func (i *Index) Path() string { return i.path }

// IndexMessages indexes a batch of messages using Bleve batches.
func (i *Index) IndexMessages(messages []model.Message) error {
	if len(messages) == 0 {
		return nil
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.idx == nil {
		return errors.New("index not initialized")
	}

	batch := i.idx.NewBatch()
	const batchSize = 250
	for seq := range messages {
		doc, err := newDocument(seq, &messages[seq])
		if err != nil {
			return err
		}
		if err := batch.Index(doc.ID, doc); err != nil {
			return fmt.Errorf("batch index: %w", err)
		}
		if (seq+1)%batchSize == 0 {
			if err := i.idx.Batch(batch); err != nil {
				return fmt.Errorf("flush batch: %w", err)
			}
			batch = i.idx.NewBatch()
		}
	}

	if batch.Size() > 0 {
		if err := i.idx.Batch(batch); err != nil {
			return fmt.Errorf("flush final batch: %w", err)
		}
	}
	return nil
}

// Query describes one search over an analysis index. Zero start/end leave
// the time range unbounded on that side.
type Query struct {
	Text       string
	Contacts   []string
	Directions []string
	StartUnix  int64
	EndUnix    int64
	Offset     int
	Limit      int
}

// Search executes a search applying the optional filters and returns hits
// plus the total match count.
func (i *Index) Search(q Query) ([]*SearchHit, int, error) {
	queryObj := buildQuery(q)
	if queryObj == nil {
		return []*SearchHit{}, 0, nil
	}

	i.mu.RLock()
	idx := i.idx
	i.mu.RUnlock()
	if idx == nil {
		return nil, 0, errors.New("index not initialized")
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 200 {
		limit = 200
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	req := bleve.NewSearchRequestOptions(queryObj, limit, offset, false)
	req.Highlight = bleve.NewHighlightWithStyle("html")
	req.Fields = []string{"message_json"}

	result, err := idx.Search(req)
	if err != nil {
		return nil, 0, fmt.Errorf("bleve search: %w", err)
	}

	hits := make([]*SearchHit, 0, len(result.Hits))
	for _, hit := range result.Hits {
		messageJSON, ok := hit.Fields["message_json"].(string)
		if !ok || messageJSON == "" {
			continue
		}
		var msg model.Message
		if err := json.Unmarshal([]byte(messageJSON), &msg); err != nil {
			return nil, 0, fmt.Errorf("decode message: %w", err)
		}
		snippet := ""
		if frags, ok := hit.Fragments["body"]; ok && len(frags) > 0 {
			snippet = strings.Join(frags, " … ")
		}
		hits = append(hits, &SearchHit{Message: &msg, Snippet: snippet, Score: hit.Score})
	}
	return hits, int(result.Total), nil
}

// Document representation stored inside Bleve.
type document struct {
	ID          string `json:"id"`
	Contact     string `json:"contact"`
	Direction   string `json:"direction"`
	Unix        int64  `json:"unix"`
	Body        string `json:"body"`
	MessageJSON string `json:"message_json"`
}

func newDocument(seq int, msg *model.Message) (*document, error) {
	messageJSON, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal message: %w", err)
	}
	return &document{
		ID:          fmt.Sprintf("%d", seq),
		Contact:     msg.ContactName,
		Direction:   msg.Direction,
		Unix:        msg.Timestamp.Unix(),
		Body:        msg.Body,
		MessageJSON: string(messageJSON),
	}, nil
}

func buildMapping() *mapping.IndexMappingImpl {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = "standard"

	docMapping := mapping.NewDocumentMapping()

	bodyField := mapping.NewTextFieldMapping()
	bodyField.Analyzer = "standard"
	bodyField.Store = false
	docMapping.AddFieldMappingsAt("body", bodyField)

	contactField := mapping.NewTextFieldMapping()
	contactField.Analyzer = "keyword"
	contactField.Store = true
	contactField.IncludeInAll = false
	docMapping.AddFieldMappingsAt("contact", contactField)

	directionField := mapping.NewTextFieldMapping()
	directionField.Analyzer = "keyword"
	directionField.Store = true
	directionField.IncludeInAll = false
	docMapping.AddFieldMappingsAt("direction", directionField)

	unixField := mapping.NewNumericFieldMapping()
	unixField.Store = true
	docMapping.AddFieldMappingsAt("unix", unixField)

	messageField := mapping.NewTextFieldMapping()
	messageField.Analyzer = "keyword"
	messageField.Store = true
	messageField.Index = false
	docMapping.AddFieldMappingsAt("message_json", messageField)

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

func buildQuery(q Query) query.Query {
	var must []query.Query
	if content := buildContentQuery(q.Text); content != nil {
		must = append(must, content)
	}
	if f := buildTermsFilter("contact", q.Contacts); f != nil {
		must = append(must, f)
	}
	if f := buildTermsFilter("direction", q.Directions); f != nil {
		must = append(must, f)
	}
	if q.StartUnix > 0 || q.EndUnix > 0 {
		var minPtr, maxPtr *float64
		if q.StartUnix > 0 {
			min := float64(q.StartUnix)
			minPtr = &min
		}
		if q.EndUnix > 0 {
			max := float64(q.EndUnix)
			maxPtr = &max
		}
		rangeQuery := query.NewNumericRangeQuery(minPtr, maxPtr)
		rangeQuery.SetField("unix")
		must = append(must, rangeQuery)
	}

	switch len(must) {
	case 0:
		return nil
	case 1:
		return must[0]
	default:
		return query.NewConjunctionQuery(must)
	}
}

// buildContentQuery converts user input into a query: advanced syntax passes
// through as a query-string query, otherwise whitespace-separated keywords
// become a conjunction of match queries over the body field.
func buildContentQuery(input string) query.Query {
	s := strings.TrimSpace(input)
	if s == "" {
		return nil
	}

	upper := strings.ToUpper(s)
	advanced := strings.ContainsAny(s, "\"'*()") ||
		strings.Contains(upper, " AND ") ||
		strings.Contains(upper, " OR ") ||
		strings.Contains(upper, " NEAR ") ||
		strings.HasPrefix(upper, "NOT ")
	if advanced {
		return query.NewQueryStringQuery(s)
	}

	tokens := strings.Fields(s)
	conj := make([]query.Query, 0, len(tokens))
	for _, token := range tokens {
		mq := query.NewMatchQuery(token)
		mq.SetField("body")
		conj = append(conj, mq)
	}
	switch len(conj) {
	case 0:
		return nil
	case 1:
		return conj[0]
	default:
		return query.NewConjunctionQuery(conj)
	}
}

func buildTermsFilter(field string, values []string) query.Query {
	sanitized := make([]query.Query, 0, len(values))
	for _, val := range values {
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			continue
		}
		tq := query.NewTermQuery(trimmed)
		tq.SetField(field)
		sanitized = append(sanitized, tq)
	}
	switch len(sanitized) {
	case 0:
		return nil
	case 1:
		return sanitized[0]
	default:
		return query.NewDisjunctionQuery(sanitized)
	}
}
