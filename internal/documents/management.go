package documents

import (
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/juju/clock"
	"github.com/juju/errors"
	"go.uber.org/zap"

	"itam-service/internal/models"
)

// ManagementService keeps the registry of generated files in one output
// directory.
type ManagementService struct {
	dir   string
	clock clock.Clock
	log   *zap.Logger

	mu   sync.RWMutex
	docs map[string]models.GeneratedDocument
}

// NewManagementService creates dir when missing and indexes the files
// already in it.
func NewManagementService(dir string, clk clock.Clock, log *zap.Logger) (*ManagementService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Annotatef(err, "creating documents directory %s", dir)
	}
	m := &ManagementService{
		dir:   dir,
		clock: clk,
		log:   log,
		docs:  make(map[string]models.GeneratedDocument),
	}
	if _, err := m.Rescan(); err != nil {
		return nil, err
	}
	return m, nil
}

// Dir is the output directory.
func (m *ManagementService) Dir() string {
	return m.dir
}

// Register records a file written under the output directory.
func (m *ManagementService) Register(docType models.DocumentType, number, path string) (models.GeneratedDocument, error) {
	info, err := os.Stat(path)
	if err != nil {
		return models.GeneratedDocument{}, errors.Annotatef(err, "registering %s", path)
	}
	doc := models.GeneratedDocument{
		ID:             uuid.NewString(),
		Type:           docType,
		BusinessNumber: number,
		FileName:       filepath.Base(path),
		Path:           path,
		Size:           info.Size(),
		CreatedAt:      m.clock.Now(),
	}
	m.mu.Lock()
	// a file rendered again under the same name keeps its entry
	for id, d := range m.docs {
		if d.FileName == doc.FileName {
			doc.ID = id
			break
		}
	}
	m.docs[doc.ID] = doc
	m.mu.Unlock()
	m.log.Debug("document registered", zap.String("id", doc.ID), zap.String("file", doc.FileName))
	return doc, nil
}

// List returns registered documents newest first, only those of docType
// when it is set.
func (m *ManagementService) List(docType models.DocumentType) []models.GeneratedDocument {
	m.mu.RLock()
	out := make([]models.GeneratedDocument, 0, len(m.docs))
	for _, d := range m.docs {
		if docType == "" || d.Type == docType {
			out = append(out, d)
		}
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].FileName < out[j].FileName
	})
	return out
}

func (m *ManagementService) Get(id string) (models.GeneratedDocument, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.docs[id]
	return d, ok
}

// Delete removes the document and its file. A file that is already gone
// is not an error.
func (m *ManagementService) Delete(id string) bool {
	m.mu.Lock()
	d, ok := m.docs[id]
	if ok {
		delete(m.docs, id)
	}
	m.mu.Unlock()
	if !ok {
		return false
	}
	if err := os.Remove(d.Path); err != nil && !os.IsNotExist(err) {
		m.log.Warn("document file not removed", zap.String("path", d.Path), zap.Error(err))
	}
	m.log.Info("document deleted", zap.String("id", id), zap.String("file", d.FileName))
	return true
}

// Cleanup deletes documents created more than maxAge ago and returns how
// many went.
func (m *ManagementService) Cleanup(maxAge time.Duration) int {
	cutoff := m.clock.Now().Add(-maxAge)
	var expired []string
	m.mu.RLock()
	for id, d := range m.docs {
		if d.CreatedAt.Before(cutoff) {
			expired = append(expired, id)
		}
	}
	m.mu.RUnlock()

	removed := 0
	for _, id := range expired {
		if m.Delete(id) {
			removed++
		}
	}
	if removed > 0 {
		m.log.Info("old documents cleaned up", zap.Int("removed", removed), zap.Duration("max_age", maxAge))
	}
	return removed
}

// Rescan rebuilds the registry from the files in the output directory.
// Files whose names were not produced by this package are ignored.
func (m *ManagementService) Rescan() (int, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return 0, errors.Annotatef(err, "reading %s", m.dir)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	known := make(map[string]models.GeneratedDocument, len(m.docs))
	for _, d := range m.docs {
		known[d.FileName] = d
	}
	docs := make(map[string]models.GeneratedDocument)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if d, ok := known[e.Name()]; ok {
			docs[d.ID] = d
			continue
		}
		docType, number, at, ok := parseFileName(e.Name())
		if !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		d := models.GeneratedDocument{
			ID:             uuid.NewString(),
			Type:           docType,
			BusinessNumber: number,
			FileName:       e.Name(),
			Path:           filepath.Join(m.dir, e.Name()),
			Size:           info.Size(),
			CreatedAt:      at,
		}
		docs[d.ID] = d
	}
	m.docs = docs
	return len(docs), nil
}
