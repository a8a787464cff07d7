package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ethanolivertroy/crosswalk/internal/model"
)

// Format is the on-disk encoding of a framework file
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat resolves "yaml", "yml" or "json"
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown data format %q", s)
}

// Extension returns the file extension including the dot
func (f Format) Extension() string {
	if f == FormatJSON {
		return ".json"
	}
	return ".yaml"
}

var readExtensions = []string{".yaml", ".yml", ".json"}

// FileStore keeps one file per framework in a directory, named by the
// framework slug (nist-800-53.yaml). Writes go through a temp file and
// rename so readers never see a partial file.
type FileStore struct {
	dir    string
	format Format
	logger *zap.Logger
	mu     sync.Mutex
}

// NewFileStore creates a store rooted at dir. New files are written in
// format; existing files are read in whichever supported format they use.
func NewFileStore(dir string, format Format, logger *zap.Logger) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	if format == "" {
		format = FormatYAML
	}
	return &FileStore{dir: dir, format: format, logger: logger}
}

// Dir returns the store's directory
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) Frameworks(ctx context.Context) ([]model.Framework, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading data dir: %w", err)
	}

	seen := make(map[model.Framework]bool)
	var fws []model.Framework
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if !isReadExtension(ext) {
			continue
		}
		fw, ok := model.FrameworkFromSlug(strings.TrimSuffix(e.Name(), ext))
		if !ok {
			s.logger.Debug("ignoring unrecognized data file", zap.String("file", e.Name()))
			continue
		}
		if !seen[fw] {
			seen[fw] = true
			fws = append(fws, fw)
		}
	}
	model.SortFrameworks(fws)
	return fws, nil
}

func (s *FileStore) Load(ctx context.Context, fw model.Framework) ([]model.ControlRecord, error) {
	if err := checkFramework(fw); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.find(fw)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var records []model.ControlRecord
	if filepath.Ext(path) == ".json" {
		err = json.Unmarshal(data, &records)
	} else {
		err = yaml.Unmarshal(data, &records)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	s.logger.Debug("loaded framework file",
		zap.String("framework", string(fw)),
		zap.String("path", path),
		zap.Int("records", len(records)),
	)
	return stamp(fw, records), nil
}

func (s *FileStore) Save(ctx context.Context, fw model.Framework, records []model.ControlRecord) error {
	if err := checkFramework(fw); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	out := stamp(fw, model.CloneRecords(records))
	if out == nil {
		out = []model.ControlRecord{}
	}

	var (
		data []byte
		err  error
	)
	if s.format == FormatJSON {
		data, err = json.MarshalIndent(out, "", "  ")
	} else {
		data, err = yaml.Marshal(out)
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", fw, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	path := filepath.Join(s.dir, fw.Slug()+s.format.Extension())
	if err := writeAtomic(path, data); err != nil {
		return err
	}

	// drop copies in other formats so Load cannot pick up a stale file
	for _, ext := range readExtensions {
		if ext == s.format.Extension() {
			continue
		}
		stale := filepath.Join(s.dir, fw.Slug()+ext)
		if err := os.Remove(stale); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("removing %s: %w", stale, err)
		}
	}

	s.logger.Debug("saved framework file", zap.String("path", path), zap.Int("records", len(out)))
	return nil
}

// find returns the framework's file, preferring the store's own format
func (s *FileStore) find(fw model.Framework) (string, error) {
	exts := append([]string{s.format.Extension()}, readExtensions...)
	for _, ext := range exts {
		path := filepath.Join(s.dir, fw.Slug()+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%s in %s: %w", fw, s.dir, ErrNotFound)
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("syncing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	return nil
}

func isReadExtension(ext string) bool {
	for _, e := range readExtensions {
		if e == ext {
			return true
		}
	}
	return false
}
