package backend

import (
	"sort"
	"sync"
)

// Constructor opens a store at path. Stores that need no path ignore it.
type Constructor func(path string) (KVStore, error)

// Global registry of storage backends
var (
	registryMu   sync.RWMutex
	constructors = make(map[string]Constructor)
)

// Register registers a backend constructor under name.
// Backends should call this in their init() function.
func Register(name string, constructor Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	constructors[name] = constructor
}

// Names returns the registered backend names, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether a backend with the given name exists.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := constructors[name]
	return ok
}

// Open opens the named backend at path.
func Open(name, path string) (KVStore, error) {
	registryMu.RLock()
	constructor, ok := constructors[name]
	registryMu.RUnlock()
	if !ok {
		return nil, &UnknownBackendError{Name: name}
	}
	return constructor(path)
}

// ClearRegistry removes all registered constructors.
// This is primarily used for testing.
func ClearRegistry() {
	registryMu.Lock()
	defer registryMu.Unlock()
	constructors = make(map[string]Constructor)
}

// UnknownBackendError is returned by Open for an unregistered name.
type UnknownBackendError struct {
	Name string
}

func (e *UnknownBackendError) Error() string {
	return "unknown storage backend: " + e.Name
}
