package storage

import (
	"context"
	"errors"
	"path"
	"sync"
	"time"
)

// MemoryArchive keeps archived files in process memory. It backs report
// exports when object storage is disabled and in tests.
type MemoryArchive struct {
	// BaseURL prefixes the download links; defaults to "memory://archive"
	BaseURL string
	prefix  string

	mu      sync.RWMutex
	objects map[string]memoryObject
}

type memoryObject struct {
	data        []byte
	contentType string
}

// NewMemoryArchive creates an empty archive that stores keys under prefix
func NewMemoryArchive(prefix string) *MemoryArchive {
	return &MemoryArchive{
		BaseURL: "memory://archive",
		prefix:  prefix,
		objects: make(map[string]memoryObject),
	}
}

// Put stores a copy of data under name and returns the object key
func (a *MemoryArchive) Put(_ context.Context, name string, data []byte, contentType string) (string, error) {
	if name == "" {
		return "", errors.New("object name is required")
	}
	key := name
	if a.prefix != "" {
		key = path.Join(a.prefix, name)
	}
	a.mu.Lock()
	a.objects[key] = memoryObject{data: append([]byte(nil), data...), contentType: contentType}
	a.mu.Unlock()
	return key, nil
}

// DownloadURL returns a pseudo link for a stored key
func (a *MemoryArchive) DownloadURL(_ context.Context, key string) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, errors.New("object key is required")
	}
	a.mu.RLock()
	_, ok := a.objects[key]
	a.mu.RUnlock()
	if !ok {
		return "", time.Time{}, errors.New("object not found")
	}
	return a.BaseURL + "/" + key, time.Now().Add(defaultPresignExpiration), nil
}

// Get returns the stored bytes and content type of a key
func (a *MemoryArchive) Get(key string) ([]byte, string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	obj, ok := a.objects[key]
	if !ok {
		return nil, "", false
	}
	return obj.data, obj.contentType, true
}
