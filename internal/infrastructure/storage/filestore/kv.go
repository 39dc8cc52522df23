package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/you/localhub/domain"
	"gopkg.in/yaml.v3"
)

const fileVersion = "1.0"

type entry struct {
	Value   string    `yaml:"value"`
	Expires time.Time `yaml:"expires,omitempty"`
}

type document struct {
	Version   string           `yaml:"version"`
	Timestamp time.Time        `yaml:"timestamp"`
	Entries   map[string]entry `yaml:"entries"`
}

// KV is a key-value store persisted as a single YAML document on local disk.
// Every write rewrites the whole file.
type KV struct {
	path string

	lock    sync.Mutex
	loaded  bool
	entries map[string]entry
}

// NewKV creates a store at path; a leading "~/" is expanded to the home directory
func NewKV(path string) (*KV, error) {
	expanded, err := expandPath(path)
	if err != nil {
		return nil, err
	}
	return &KV{path: expanded, entries: make(map[string]entry)}, nil
}

// Path returns the resolved file location
func (k *KV) Path() string {
	return k.path
}

func expandPath(path string) (string, error) {
	if path == "" {
		return "", errors.New("filestore: empty path")
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("filestore: resolve home dir: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}
	return filepath.Clean(path), nil
}

// Get implements domain.KeyValueStore
func (k *KV) Get(_ context.Context, key string) ([]byte, bool, error) {
	k.lock.Lock()
	defer k.lock.Unlock()

	if err := k.load(); err != nil {
		return nil, false, err
	}
	e, ok := k.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !e.Expires.IsZero() && time.Now().After(e.Expires) {
		delete(k.entries, key)
		return nil, false, k.commit()
	}
	return []byte(e.Value), true, nil
}

// Set implements domain.KeyValueStore
func (k *KV) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	k.lock.Lock()
	defer k.lock.Unlock()

	if err := k.load(); err != nil {
		return err
	}
	e := entry{Value: string(value)}
	if ttl > 0 {
		e.Expires = time.Now().Add(ttl).UTC()
	}
	k.entries[key] = e
	return k.commit()
}

// Del implements domain.KeyValueStore
func (k *KV) Del(_ context.Context, key string) error {
	k.lock.Lock()
	defer k.lock.Unlock()

	if err := k.load(); err != nil {
		return err
	}
	if _, ok := k.entries[key]; !ok {
		return nil
	}
	delete(k.entries, key)
	return k.commit()
}

func (k *KV) load() error {
	if k.loaded {
		return nil
	}

	data, err := os.ReadFile(k.path)
	if errors.Is(err, os.ErrNotExist) {
		k.loaded = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("filestore: read %s: %w", k.path, err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("filestore: parse %s: %w", k.path, err)
	}
	if doc.Entries != nil {
		k.entries = doc.Entries
	}
	k.loaded = true

	logrus.WithFields(logrus.Fields{
		"path":    k.path,
		"entries": len(k.entries),
	}).Debugln("Loaded local store")
	return nil
}

// commit writes to a temp file and renames it over the old one
func (k *KV) commit() error {
	doc := document{
		Version:   fileVersion,
		Timestamp: time.Now().UTC(),
		Entries:   k.entries,
	}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("filestore: encode: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(k.path), 0o700); err != nil {
		return fmt.Errorf("filestore: create dir: %w", err)
	}
	tmp := k.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("filestore: write: %w", err)
	}
	if err := os.Rename(tmp, k.path); err != nil {
		return fmt.Errorf("filestore: replace: %w", err)
	}
	return nil
}

var _ domain.KeyValueStore = (*KV)(nil)
