package stats

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/naekun/naebot/pkg/entities"
)

// FileRepository keeps every record in memory and rewrites one JSON document
// after each update. The document is a flat object keyed by user ID; key order
// is preserved across load and save.
type FileRepository struct {
	path    string
	mu      sync.RWMutex
	records map[string]*entities.StatsRecord
	order   []string
}

// NewFileRepository loads the document at path. A missing file is an empty store.
func NewFileRepository(path string) (*FileRepository, error) {
	r := &FileRepository{
		path:    path,
		records: make(map[string]*entities.StatsRecord),
	}

	if err := r.load(); err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}

	return r, nil
}

// GetOrCreate returns a copy of the user's record or a zero record
func (r *FileRepository) GetOrCreate(ctx context.Context, userID string) (*entities.StatsRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record := entities.StatsRecord{}
	if existing, ok := r.records[userID]; ok {
		record = *existing
	}
	return &record, nil
}

// Update mutates the user's record and rewrites the document. When the write
// fails the in-memory store is rolled back so it keeps matching the file.
func (r *FileRepository) Update(ctx context.Context, userID string, fn func(*entities.StatsRecord)) (*entities.StatsRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous, existed := r.records[userID]

	next := entities.StatsRecord{}
	if existed {
		next = *previous
	}
	fn(&next)

	r.records[userID] = &next
	if !existed {
		r.order = append(r.order, userID)
	}

	if err := r.save(); err != nil {
		if existed {
			r.records[userID] = previous
		} else {
			delete(r.records, userID)
			r.order = r.order[:len(r.order)-1]
		}
		return nil, err
	}

	result := next
	return &result, nil
}

// All returns copies of every record in document order
func (r *FileRepository) All(ctx context.Context) ([]*entities.UserStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*entities.UserStats, 0, len(r.order))
	for _, userID := range r.order {
		all = append(all, &entities.UserStats{
			UserID: userID,
			Record: *r.records[userID],
		})
	}
	return all, nil
}

// Close is a no-op; every update is already on disk
func (r *FileRepository) Close() error {
	return nil
}

// Helper functions

func (r *FileRepository) load() error {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	records, order, err := decodeDocument(data)
	if err != nil {
		return err
	}

	r.records = records
	r.order = order
	return nil
}

func (r *FileRepository) save() error {
	data, err := encodeDocument(r.records, r.order)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	if err := writeFileAtomic(r.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write stats file: %w", err)
	}

	return nil
}

// decodeDocument reads the stats document, keeping the key order and upgrading
// every record to the current schema
func decodeDocument(data []byte) (map[string]*entities.StatsRecord, []string, error) {
	records := make(map[string]*entities.StatsRecord)
	var order []string

	if len(bytes.TrimSpace(data)) == 0 {
		return records, order, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read stats document: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("stats document must be a JSON object")
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read user id: %w", err)
		}
		userID, ok := keyTok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("unexpected token %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, fmt.Errorf("failed to read record for %s: %w", userID, err)
		}
		record, err := UpgradeRecord(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("user %s: %w", userID, err)
		}

		if _, dup := records[userID]; !dup {
			order = append(order, userID)
		}
		records[userID] = &record
	}

	if _, err := dec.Token(); err != nil {
		return nil, nil, fmt.Errorf("failed to read end of stats document: %w", err)
	}

	return records, order, nil
}

// encodeDocument writes records in the given order as an indented JSON object
func encodeDocument(records map[string]*entities.StatsRecord, order []string) ([]byte, error) {
	var compact bytes.Buffer
	compact.WriteByte('{')
	for i, userID := range order {
		if i > 0 {
			compact.WriteByte(',')
		}
		key, err := json.Marshal(userID)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(records[userID])
		if err != nil {
			return nil, err
		}
		compact.Write(key)
		compact.WriteByte(':')
		compact.Write(value)
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// writeFileAtomic replaces path with data via a synced temp file and rename
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
