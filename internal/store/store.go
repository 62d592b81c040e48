// Package store keeps generated documents on local disk behind an in-memory
// index. Artifacts survive until evicted by the configured caps or the
// directory is cleaned externally; there is no durable metadata.
package store

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mhutchins/docpress/internal/render"
)

const maxFilenameBase = 64

// Artifact is a generated document plus its metadata. Artifacts are never
// mutated after creation.
type Artifact struct {
	ID        string              `json:"id"`
	Filename  string              `json:"filename"`
	Type      render.DocumentType `json:"-"`
	Size      int64               `json:"size_bytes"`
	CreatedAt time.Time           `json:"created"`

	path string // absolute location on disk
}

// Limits cap what the store will retain. Exceeding MaxArtifactBytes rejects
// the put; exceeding MaxArtifacts or MaxTotalBytes evicts oldest artifacts.
type Limits struct {
	MaxArtifactBytes int64
	MaxArtifacts     int
	MaxTotalBytes    int64
}

// Store is a disk-backed artifact store safe for concurrent use. An artifact
// becomes visible to readers only after its bytes are fully on disk.
type Store struct {
	dir    string
	limits Limits
	logger *slog.Logger

	mu         sync.Mutex
	byID       map[string]*Artifact
	byName     map[string]*Artifact
	reserved   map[string]struct{} // filenames claimed by in-flight puts
	order      []*Artifact         // creation order, oldest first
	totalBytes int64
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string, limits Limits, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}
	return &Store{
		dir:      dir,
		limits:   limits,
		logger:   logger,
		byID:     make(map[string]*Artifact),
		byName:   make(map[string]*Artifact),
		reserved: make(map[string]struct{}),
	}, nil
}

// Put persists the document bytes and returns the new artifact. The filename
// is derived from the title; collisions with existing artifacts are resolved
// by a numeric suffix. Existing artifacts are never overwritten.
func (s *Store) Put(data []byte, docType render.DocumentType, title string) (*Artifact, error) {
	size := int64(len(data))
	if s.limits.MaxArtifactBytes > 0 && size > s.limits.MaxArtifactBytes {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrTooLarge, size, s.limits.MaxArtifactBytes)
	}

	filename := s.reserveFilename(title, docType)

	path := filepath.Join(s.dir, filename)
	if err := writeFileAtomic(path, data); err != nil {
		s.release(filename)
		return nil, fmt.Errorf("writing artifact: %w", err)
	}

	art := &Artifact{
		ID:        uuid.NewString(),
		Filename:  filename,
		Type:      docType,
		Size:      size,
		CreatedAt: time.Now().UTC(),
		path:      path,
	}

	s.mu.Lock()
	delete(s.reserved, filename)
	s.byID[art.ID] = art
	s.byName[art.Filename] = art
	s.order = append(s.order, art)
	s.totalBytes += size
	evicted := s.evictLocked()
	s.mu.Unlock()

	for _, old := range evicted {
		if err := os.Remove(old.path); err != nil && !os.IsNotExist(err) {
			s.logger.Error("failed to remove evicted artifact", "filename", old.Filename, "error", err)
		}
		s.logger.Info("evicted artifact", "id", old.ID, "filename", old.Filename, "size", old.Size)
	}

	return art, nil
}

// Get retrieves an artifact and its bytes by exact id.
func (s *Store) Get(id string) (*Artifact, []byte, error) {
	s.mu.Lock()
	art, ok := s.byID[id]
	s.mu.Unlock()
	if !ok {
		return nil, nil, ErrNotFound
	}
	return s.read(art)
}

// GetByFilename retrieves an artifact and its bytes by exact filename.
func (s *Store) GetByFilename(filename string) (*Artifact, []byte, error) {
	s.mu.Lock()
	art, ok := s.byName[filename]
	s.mu.Unlock()
	if !ok {
		return nil, nil, ErrNotFound
	}
	return s.read(art)
}

// Open returns a streaming reader for an artifact looked up by filename,
// falling back to id lookup for callers holding only the id.
func (s *Store) Open(name string) (io.ReadCloser, *Artifact, error) {
	s.mu.Lock()
	art, ok := s.byName[name]
	if !ok {
		art, ok = s.byID[name]
	}
	s.mu.Unlock()
	if !ok {
		return nil, nil, ErrNotFound
	}

	f, err := os.Open(art.path)
	if os.IsNotExist(err) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	return f, art, nil
}

// List returns all stored artifacts, oldest first.
func (s *Store) List() []*Artifact {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Artifact, len(s.order))
	copy(out, s.order)
	return out
}

// Count reports the number of stored artifacts.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// TotalBytes reports the byte total of stored artifacts.
func (s *Store) TotalBytes() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalBytes
}

func (s *Store) read(art *Artifact) (*Artifact, []byte, error) {
	data, err := os.ReadFile(art.path)
	if os.IsNotExist(err) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	return art, data, nil
}

// reserveFilename claims a collision-free filename for an in-flight put.
func (s *Store) reserveFilename(title string, docType render.DocumentType) string {
	base := sanitizeTitle(title)
	ext := docType.Ext()

	s.mu.Lock()
	defer s.mu.Unlock()

	name := base + ext
	for n := 2; s.taken(name); n++ {
		if n > 1000 {
			// Pathological collision run; fall back to a unique suffix
			name = base + "-" + uuid.NewString()[:8] + ext
			break
		}
		name = fmt.Sprintf("%s-%d%s", base, n, ext)
	}
	s.reserved[name] = struct{}{}
	return name
}

func (s *Store) taken(name string) bool {
	if _, ok := s.byName[name]; ok {
		return true
	}
	_, ok := s.reserved[name]
	return ok
}

func (s *Store) release(name string) {
	s.mu.Lock()
	delete(s.reserved, name)
	s.mu.Unlock()
}

// evictLocked drops oldest artifacts until the caps are satisfied. Caller
// holds the lock; removal of the files happens afterwards.
func (s *Store) evictLocked() []*Artifact {
	var evicted []*Artifact
	for len(s.order) > 0 {
		overCount := s.limits.MaxArtifacts > 0 && len(s.order) > s.limits.MaxArtifacts
		overBytes := s.limits.MaxTotalBytes > 0 && s.totalBytes > s.limits.MaxTotalBytes
		if !overCount && !overBytes {
			break
		}
		old := s.order[0]
		s.order = s.order[1:]
		delete(s.byID, old.ID)
		delete(s.byName, old.Filename)
		s.totalBytes -= old.Size
		evicted = append(evicted, old)
	}
	return evicted
}

// sanitizeTitle derives a path-safe filename base from a document title.
// Anything outside letters, digits, dot, dash, and underscore is dropped;
// spaces become dashes.
func sanitizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '_', r == '.':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('-')
		}
	}
	base := strings.Trim(b.String(), ".-")
	for strings.Contains(base, "..") {
		base = strings.ReplaceAll(base, "..", ".")
	}
	if base == "" {
		base = "document"
	}
	if len(base) > maxFilenameBase {
		base = base[:maxFilenameBase]
	}
	return base
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it into place, so readers never observe a partial artifact.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
