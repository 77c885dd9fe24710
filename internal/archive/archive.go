// Package archive provides SQLite-backed long-term storage for style and
// voice samples. Banks in the working state are capped and evict old
// samples; the archive keeps every sample ever captured and supports
// vector search over them.
// Uses ncruces/go-sqlite3/driver which provides a database/sql interface.
package archive

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	_ "github.com/asg017/sqlite-vec-go-bindings/ncruces"
	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"

	"github.com/superhappyfuntimellc/Olivetti/pkg/hashvec"
	"github.com/superhappyfuntimellc/Olivetti/pkg/lane"
)

// Record is one archived sample.
type Record struct {
	ID        string    `json:"id"`
	Lane      lane.Lane `json:"lane"`
	Source    string    `json:"source"` // "style" or "voice"
	Text      string    `json:"text"`
	CreatedAt int64     `json:"createdAt"`
}

// Match is a search hit with its cosine distance to the query.
type Match struct {
	Record
	Distance float64 `json:"distance"`
}

const schema = `
CREATE TABLE IF NOT EXISTS samples (
    id TEXT NOT NULL UNIQUE,
    lane TEXT NOT NULL,
    source TEXT NOT NULL,
    text TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_samples_lane ON samples(lane);

CREATE VIRTUAL TABLE IF NOT EXISTS vec_samples USING vec0(
    embedding float[512]
);
`

// Archive is the SQLite-backed sample archive.
// Thread-safe for concurrent callers.
type Archive struct {
	mu sync.RWMutex
	db *sql.DB
}

// New creates an in-memory archive.
func New() (*Archive, error) {
	return Open(":memory:")
}

// Open creates an archive with a specific data source name.
// Use ":memory:" for in-memory or a file path for persistent storage.
func Open(dsn string) (*Archive, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Archive{db: db}, nil
}

// Close closes the database connection.
func (a *Archive) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// Add appends a sample to the archive, computing its embedding.
// A zero ID or CreatedAt is filled in.
func (a *Archive) Add(rec *Record) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if rec.ID == "" {
		rec.ID = "arc_" + uuid.NewString()
	}
	if rec.CreatedAt == 0 {
		rec.CreatedAt = time.Now().UnixMilli()
	}

	res, err := a.db.Exec(`
		INSERT INTO samples (id, lane, source, text, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, rec.ID, string(rec.Lane), rec.Source, rec.Text, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert sample: %w", err)
	}

	rowid, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sample rowid: %w", err)
	}

	vec := hashvec.Vectorize(rec.Text, hashvec.DefaultDims)
	_, err = a.db.Exec(`
		INSERT INTO vec_samples (rowid, embedding) VALUES (?, ?)
	`, rowid, serialize(vec))
	if err != nil {
		return fmt.Errorf("insert embedding: %w", err)
	}
	return nil
}

// Similar returns the k archived samples closest to the query text.
func (a *Archive) Similar(query string, k int) ([]Match, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if k <= 0 {
		return nil, nil
	}

	vec := hashvec.Vectorize(query, hashvec.DefaultDims)
	rows, err := a.db.Query(`
		SELECT s.id, s.lane, s.source, s.text, s.created_at, v.distance
		FROM vec_samples v
		JOIN samples s ON s.rowid = v.rowid
		WHERE v.embedding MATCH ? AND v.k = ?
		ORDER BY v.distance
	`, serialize(vec), k)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var m Match
		var l string
		if err := rows.Scan(&m.ID, &l, &m.Source, &m.Text, &m.CreatedAt, &m.Distance); err != nil {
			return nil, err
		}
		m.Lane = lane.Lane(l)
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// ByLane returns the most recent archived samples for a lane.
func (a *Archive) ByLane(l lane.Lane, limit int) ([]Record, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	rows, err := a.db.Query(`
		SELECT id, lane, source, text, created_at
		FROM samples WHERE lane = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, string(l), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		var r Record
		var ls string
		if err := rows.Scan(&r.ID, &ls, &r.Source, &r.Text, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Lane = lane.Lane(ls)
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// Count returns the total number of archived samples.
func (a *Archive) Count() (int, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var count int
	err := a.db.QueryRow("SELECT COUNT(*) FROM samples").Scan(&count)
	return count, err
}

// serialize encodes a vector in the little-endian float32 layout
// sqlite-vec expects for float[] columns.
func serialize(vec []float32) []byte {
	buf := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}
