/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	"github.com/PivotLLM/Preceptor/global"
	"github.com/PivotLLM/Preceptor/logging"
)

// Backend persists named JSON documents. The store keeps two of them:
// personas.json and presets.json.
type Backend interface {
	// Name identifies the backend in stats and logs
	Name() string
	// Load reads a document into v. Returns false if the document doesn't
	// exist yet, which is not an error.
	Load(name string, v interface{}) (bool, error)
	// Save writes a document atomically
	Save(name string, v interface{}) error
	// WithLock runs fn while holding the write lock for a document.
	// Read-modify-write sequences must run inside fn.
	WithLock(name string, fn func() error) error
	// Size returns the stored size of a document in bytes, 0 if absent
	Size(name string) int64
}

// fileBackend stores documents as JSON files in the data directory.
type fileBackend struct {
	dataDir   string
	fileLock  bool     // guard writes with .lock sibling files
	pathMutex sync.Map // per-document locking within this process
}

func newFileBackend(dataDir string, fileLock bool) *fileBackend {
	return &fileBackend{
		dataDir:  dataDir,
		fileLock: fileLock,
	}
}

func (b *fileBackend) Name() string {
	return "file"
}

func (b *fileBackend) docPath(name string) string {
	return filepath.Join(b.dataDir, name)
}

func (b *fileBackend) Load(name string, v interface{}) (bool, error) {
	filePath := b.docPath(name)

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, &global.StorageError{Op: "read", Path: filePath, Err: err}
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, &global.StorageError{Op: "parse", Path: filePath, Err: err}
	}

	return true, nil
}

func (b *fileBackend) Save(name string, v interface{}) error {
	filePath := b.docPath(name)

	if err := global.AtomicWriteJSON(filePath, v); err != nil {
		return &global.StorageError{Op: "write", Path: filePath, Err: err}
	}

	return nil
}

// WithLock serializes writers within this process and, when file locking is
// enabled, across processes via a .lock sibling file.
func (b *fileBackend) WithLock(name string, fn func() error) error {
	value, _ := b.pathMutex.LoadOrStore(name, &sync.Mutex{})
	mutex := value.(*sync.Mutex)
	mutex.Lock()
	defer mutex.Unlock()

	if b.fileLock {
		lockPath := b.docPath(name) + global.LockSuffix

		// Ensure directory exists
		if err := os.MkdirAll(b.dataDir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}

		lock := flock.New(lockPath)
		if err := lock.Lock(); err != nil {
			return fmt.Errorf("failed to acquire lock: %w", err)
		}
		defer lock.Unlock()
	}

	return fn()
}

func (b *fileBackend) Size(name string) int64 {
	return global.FileSize(b.docPath(name))
}

// memoryBackend stores documents as marshaled bytes. Used when the data
// directory is not writable; contents are lost when the process exits.
type memoryBackend struct {
	mu         sync.Mutex
	docs       map[string][]byte
	writeLocks sync.Map // per-document locking, mirrors fileBackend
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{
		docs: make(map[string][]byte),
	}
}

func (b *memoryBackend) Name() string {
	return "memory"
}

func (b *memoryBackend) Load(name string, v interface{}) (bool, error) {
	b.mu.Lock()
	data, ok := b.docs[name]
	b.mu.Unlock()

	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, &global.StorageError{Op: "parse", Path: name, Err: err}
	}

	return true, nil
}

func (b *memoryBackend) Save(name string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &global.StorageError{Op: "marshal", Path: name, Err: err}
	}

	b.mu.Lock()
	b.docs[name] = data
	b.mu.Unlock()

	return nil
}

func (b *memoryBackend) WithLock(name string, fn func() error) error {
	value, _ := b.writeLocks.LoadOrStore(name, &sync.Mutex{})
	mutex := value.(*sync.Mutex)
	mutex.Lock()
	defer mutex.Unlock()

	return fn()
}

func (b *memoryBackend) Size(name string) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	return int64(len(b.docs[name]))
}

// probeBackend checks whether the data directory is writable and returns a
// file backend if so, falling back to an in-memory backend otherwise. The
// fallback keeps the server usable on read-only filesystems.
func probeBackend(dataDir string, fileLock bool, logger *logging.Logger) Backend {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		if logger != nil {
			logger.Warnf("Data directory %s is not writable, using in-memory storage: %v", dataDir, err)
		}
		return newMemoryBackend()
	}

	probePath := filepath.Join(dataDir, ".probe")
	if err := os.WriteFile(probePath, []byte("probe"), 0644); err != nil {
		if logger != nil {
			logger.Warnf("Data directory %s is not writable, using in-memory storage: %v", dataDir, err)
		}
		return newMemoryBackend()
	}
	_ = os.Remove(probePath)

	return newFileBackend(dataDir, fileLock)
}
