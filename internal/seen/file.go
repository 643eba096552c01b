package seen

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// FileStore keeps the seen-set as a pretty-printed JSON array of URL
// strings, read wholesale at startup and written wholesale on Save.
type FileStore struct {
	filePath string
	mu       sync.RWMutex
	urls     map[string]struct{}
	order    []string // preserves insertion order for stable files
}

func NewFileStore(filePath string) *FileStore {
	return &FileStore{
		filePath: filePath,
		urls:     make(map[string]struct{}),
	}
}

func (fs *FileStore) Load() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := os.ReadFile(fs.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			// Missing file means empty set, not an error.
			return nil
		}
		return fmt.Errorf("failed to read seen store: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var urls []string
	if err := json.Unmarshal(data, &urls); err != nil {
		return fmt.Errorf("failed to unmarshal seen store: %w", err)
	}

	for _, u := range urls {
		if _, dup := fs.urls[u]; !dup {
			fs.urls[u] = struct{}{}
			fs.order = append(fs.order, u)
		}
	}
	return nil
}

func (fs *FileStore) Contains(url string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	_, ok := fs.urls[url]
	return ok
}

func (fs *FileStore) Add(urls ...string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	for _, u := range urls {
		if u == "" {
			continue
		}
		if _, dup := fs.urls[u]; !dup {
			fs.urls[u] = struct{}{}
			fs.order = append(fs.order, u)
		}
	}
	return nil
}

func (fs *FileStore) Save() error {
	fs.mu.RLock()
	urls := make([]string, len(fs.order))
	copy(urls, fs.order)
	fs.mu.RUnlock()

	data, err := json.MarshalIndent(urls, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal seen store: %w", err)
	}
	if err := os.WriteFile(fs.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write seen store: %w", err)
	}
	return nil
}

func (fs *FileStore) Close() error { return nil }

// Len reports how many URLs are tracked.
func (fs *FileStore) Len() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return len(fs.urls)
}
