package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MemoryBlobSource is an in-memory BlobSource used for local runs and tests.
type MemoryBlobSource struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryBlobSource() *MemoryBlobSource {
	return &MemoryBlobSource{blobs: make(map[string][]byte)}
}

// Put stores blob bytes under a "<container>/<name>" path.
func (s *MemoryBlobSource) Put(path string, data []byte) {
	container, name := SplitBlobPath(path)
	s.mu.Lock()
	s.blobs[container+"/"+name] = data
	s.mu.Unlock()
}

func (s *MemoryBlobSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	container, name := SplitBlobPath(path)
	s.mu.RLock()
	data, ok := s.blobs[container+"/"+name]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBlobNotFound, path)
	}
	return data, nil
}

func (s *MemoryBlobSource) List(ctx context.Context, container string) ([]BlobInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var blobs []BlobInfo
	prefix := container + "/"
	for path, data := range s.blobs {
		if strings.HasPrefix(path, prefix) {
			blobs = append(blobs, BlobInfo{
				Name:      strings.TrimPrefix(path, prefix),
				SizeBytes: int64(len(data)),
			})
		}
	}
	sort.Slice(blobs, func(i, j int) bool { return blobs[i].Name < blobs[j].Name })
	return blobs, nil
}
