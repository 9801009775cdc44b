package codec

import (
	"fmt"
	"sort"
	"sync"
)

// Interface for decoupling the envelope serialization and deserialization
type Serializer interface {
	Name() string
	Marshal(v interface{}) ([]byte, error)
	Unmarshal(data []byte, v interface{}) error
}

var (
	registryMu sync.RWMutex
	registry   = map[string]func() Serializer{}
)

// Register makes a serializer available to ByName, codecs excluded by build tags never register
func Register(name string, factory func() Serializer) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, ok := registry[name]; ok {
		panic(fmt.Sprintf("codec already registered: %s", name))
	}
	registry[name] = factory
}

// ByName returns a new instance of the named serializer
func ByName(name string) (Serializer, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown codec: %s", name)
	}
	return factory(), nil
}

// Names lists the registered serializers
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
