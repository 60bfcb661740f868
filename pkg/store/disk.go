package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"
)

// snapshotKey is the single diskv key the document is stored under.
const snapshotKey = "snapshot"

// Disk is a Gateway backed by a diskv directory.
type Disk struct {
	d        *diskv.Diskv
	basePath string
}

var _ Gateway = (*Disk)(nil)

// Open prepares a Disk gateway rooted at cfg.BasePath(). A nil cfg is
// resolved with LoadConfig.
func Open(cfg Config) (*Disk, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &Disk{d: diskv.New(diskv.Options{
		BasePath:  basePath,
		Transform: func(string) []string { return []string{} },
		TempDir:   filepath.Join(basePath, ".tmp"),
		// No cache: another process may rewrite the snapshot while we watch it.
		CacheSizeMax: 0,
	}), basePath: basePath}, nil
}

// Path returns the file the snapshot is written to.
func (p *Disk) Path() string {
	return filepath.Join(p.basePath, snapshotKey)
}

func (p *Disk) Load(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	if !p.d.Has(snapshotKey) {
		return Seed()
	}
	val, err := p.d.Read(snapshotKey)
	if err != nil {
		return Snapshot{}, fmt.Errorf("store: read snapshot: %w", err)
	}
	s, err := decode(val)
	if err != nil {
		return Snapshot{}, err
	}
	return withSeedBookmarks(s)
}

func (p *Disk) Save(ctx context.Context, s Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	val, err := encode(s)
	if err != nil {
		return err
	}
	if err := p.d.Write(snapshotKey, val); err != nil {
		return fmt.Errorf("store: write snapshot: %w", err)
	}
	return nil
}

func encode(s Snapshot) ([]byte, error) {
	s = s.Clone()
	s.normalize()
	val, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("store: encode snapshot: %w", err)
	}
	return val, nil
}

func decode(val []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(val, &s); err != nil {
		return Snapshot{}, fmt.Errorf("store: decode snapshot: %w", err)
	}
	s.normalize()
	return s, nil
}
