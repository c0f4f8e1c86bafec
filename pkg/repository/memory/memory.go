package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/vulntrend/pkg/domain/model"
	"github.com/secmon-lab/vulntrend/pkg/repository"
)

// ArtifactStore keeps written artifacts in memory for tests.
type ArtifactStore struct {
	mu     sync.RWMutex
	tables map[string]*model.Table
	jsons  map[string][]byte
}

func New() *ArtifactStore {
	return &ArtifactStore{
		tables: make(map[string]*model.Table),
		jsons:  make(map[string][]byte),
	}
}

func (x *ArtifactStore) WriteTable(ctx context.Context, name string, tbl *model.Table) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.tables[name] = tbl
	return nil
}

func (x *ArtifactStore) WriteJSON(ctx context.Context, name string, v any) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	raw, err := json.Marshal(v)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal JSON artifact", goerr.V("name", name))
	}
	x.jsons[name] = raw
	return nil
}

func (x *ArtifactStore) Location(name string) string {
	return "memory://" + name
}

// Table returns a written table artifact by name.
func (x *ArtifactStore) Table(name string) (*model.Table, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	tbl, ok := x.tables[name]
	if !ok {
		return nil, goerr.Wrap(repository.ErrNotFound, "table artifact not found", goerr.V("name", name))
	}
	return tbl, nil
}

// JSON unmarshals a written JSON artifact by name into v.
func (x *ArtifactStore) JSON(name string, v any) error {
	x.mu.RLock()
	defer x.mu.RUnlock()

	raw, ok := x.jsons[name]
	if !ok {
		return goerr.Wrap(repository.ErrNotFound, "JSON artifact not found", goerr.V("name", name))
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return goerr.Wrap(err, "failed to unmarshal JSON artifact", goerr.V("name", name))
	}
	return nil
}

// TableNames lists written table artifacts.
func (x *ArtifactStore) TableNames() []string {
	x.mu.RLock()
	defer x.mu.RUnlock()

	var names []string
	for name := range x.tables {
		names = append(names, name)
	}
	return names
}
