package local

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/vulntrend/pkg/domain/interfaces"
	"github.com/secmon-lab/vulntrend/pkg/domain/model"
	"github.com/secmon-lab/vulntrend/pkg/utils/safe"
)

// New creates an artifact store writing into dir. The directory is created
// on first write; re-running overwrites prior artifacts.
func New(dir string) interfaces.ArtifactStore {
	return &artifactStore{dir: dir}
}

type artifactStore struct {
	dir string
}

func (x *artifactStore) create(name string) (*os.File, error) {
	if err := os.MkdirAll(x.dir, 0755); err != nil {
		return nil, goerr.Wrap(err, "failed to create artifact directory", goerr.V("dir", x.dir))
	}

	fd, err := os.Create(filepath.Clean(x.Location(name)))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create artifact file", goerr.V("name", name))
	}
	return fd, nil
}

func (x *artifactStore) WriteTable(ctx context.Context, name string, tbl *model.Table) error {
	fd, err := x.create(name)
	if err != nil {
		return err
	}
	defer safe.Close(fd)

	if err := tbl.WriteCSV(fd); err != nil {
		return goerr.Wrap(err, "failed to write table artifact", goerr.V("name", name))
	}
	return nil
}

func (x *artifactStore) WriteJSON(ctx context.Context, name string, v any) error {
	fd, err := x.create(name)
	if err != nil {
		return err
	}
	defer safe.Close(fd)

	enc := json.NewEncoder(fd)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return goerr.Wrap(err, "failed to write JSON artifact", goerr.V("name", name))
	}
	return nil
}

func (x *artifactStore) Location(name string) string {
	return filepath.Join(x.dir, name)
}
