package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	iofs "io/fs"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// DataFileName is the per-extension data file of the JSON backend.
const DataFileName = "data.json"

// JSONPersister stores settings as one flat JSON object in DataFileName.
type JSONPersister struct {
	fs billy.Filesystem
}

func NewJSONPersister(fsys billy.Filesystem) *JSONPersister {
	return &JSONPersister{fs: fsys}
}

// NewJSONFilePersister keeps data.json inside dir on the local disk.
func NewJSONFilePersister(dir string) *JSONPersister {
	return NewJSONPersister(osfs.New(dir))
}

// LoadData reads data.json. Values that are not JSON strings (null, numbers,
// nested objects) count as absent.
func (p *JSONPersister) LoadData(ctx context.Context) (map[string]string, error) {
	raw, err := util.ReadFile(p.fs, DataFileName)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", DataFileName, err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode %s: %w", DataFileName, err)
	}

	data := make(map[string]string, len(fields))
	for k, v := range fields {
		if string(v) == "null" {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			continue
		}
		data[k] = s
	}
	return data, nil
}

// SaveData writes the object to a temporary file and renames it over
// data.json so a crash never leaves a truncated file behind.
func (p *JSONPersister) SaveData(ctx context.Context, data map[string]string) error {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", DataFileName, err)
	}

	tmp := DataFileName + ".tmp"
	if err := util.WriteFile(p.fs, tmp, b, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := p.fs.Rename(tmp, DataFileName); err != nil {
		return fmt.Errorf("replace %s: %w", DataFileName, err)
	}
	return nil
}

func (p *JSONPersister) Close() error {
	return nil
}
