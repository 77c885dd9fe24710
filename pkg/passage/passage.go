// Package passage maintains an approximate nearest-neighbor index over
// draft paragraphs, used to find passages similar to a query across
// every project. Retrieval inside briefs stays exact; this index serves
// the interactive find operation where scale matters more than ties.
package passage

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"strings"
	"sync"

	"github.com/fogfish/hnsw"
	"github.com/fogfish/hnsw/vector"
	"github.com/hack-pad/hackpadfs"
	kvector "github.com/kshard/vector"

	"github.com/superhappyfuntimellc/Olivetti/pkg/hashvec"
)

// Entry is one indexed paragraph.
type Entry struct {
	ProjectID string `json:"projectId"`
	Text      string `json:"text"`
}

// snapshot is the gob-persisted form of an index.
type snapshot struct {
	Entries []Entry
	Nodes   hnsw.Nodes[vector.VF32]
}

// Index holds the HNSW graph and the paragraph table it points into.
type Index struct {
	mu      sync.RWMutex
	graph   *hnsw.HNSW[vector.VF32]
	entries []Entry
	fs      hackpadfs.FS
	path    string
}

// NewIndex creates a passage index persisted at path.
// If a saved index exists there, it is loaded; otherwise the index
// starts empty.
func NewIndex(fsys hackpadfs.FS, path string) (*Index, error) {
	idx := &Index{fs: fsys, path: path}
	if err := idx.load(); err != nil {
		idx.graph = hnsw.New[vector.VF32](vector.SurfaceVF32(kvector.Cosine()))
		idx.entries = nil
	}
	return idx, nil
}

// AddDraft splits a project draft into paragraphs and indexes each one.
// Blank paragraphs are skipped.
func (idx *Index) AddDraft(projectID, draft string) int {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	added := 0
	for _, para := range strings.Split(draft, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		key := uint32(len(idx.entries))
		idx.entries = append(idx.entries, Entry{ProjectID: projectID, Text: para})
		idx.graph.Insert(vector.VF32{
			Key: key,
			Vec: hashvec.Vectorize(para, hashvec.DefaultDims),
		})
		added++
	}
	return added
}

// Search returns up to k indexed paragraphs nearest to the query text.
func (idx *Index) Search(query string, k int) []Entry {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if k <= 0 || len(idx.entries) == 0 {
		return nil
	}

	ef := k * 2
	if ef < 100 {
		ef = 100
	}
	q := vector.VF32{Vec: hashvec.Vectorize(query, hashvec.DefaultDims)}
	results := idx.graph.Search(q, k, ef)

	out := make([]Entry, 0, len(results))
	for _, r := range results {
		if int(r.Key) < len(idx.entries) {
			out = append(out, idx.entries[r.Key])
		}
	}
	return out
}

// Len returns the number of indexed paragraphs.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

// Save persists the index and its paragraph table.
func (idx *Index) Save() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	snap := snapshot{
		Entries: idx.entries,
		Nodes:   idx.graph.Nodes(),
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snap); err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}
	if err := hackpadfs.WriteFullFile(idx.fs, idx.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write index file: %w", err)
	}
	return nil
}

func (idx *Index) load() error {
	content, err := hackpadfs.ReadFile(idx.fs, idx.path)
	if err != nil {
		return err
	}

	var snap snapshot
	if err := gob.NewDecoder(bytes.NewReader(content)).Decode(&snap); err != nil {
		return fmt.Errorf("failed to decode index: %w", err)
	}

	idx.entries = snap.Entries
	idx.graph = hnsw.FromNodes[vector.VF32](
		vector.SurfaceVF32(kvector.Cosine()),
		snap.Nodes,
	)
	return nil
}
