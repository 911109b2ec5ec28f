package layer

import (
	"fmt"
	"sort"

	"k8s.io/klog/v2"
)

// Factory constructs a fresh, unconfigured layer instance.
type Factory func() Layer

// registry maps layer type names to factories. It is populated from
// package init functions and read-only afterwards.
var registry = map[string]Factory{}

// Register makes a layer type available to the host's factory under
// the given name. It panics on duplicate registration, which indicates
// a programming error.
func Register(name string, factory Factory) {
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("layer: duplicate registration of %q", name))
	}
	registry[name] = factory
	klog.V(2).InfoS("registered layer type", "type", name)
}

// New instantiates a layer by its registered type name.
func New(name string) (Layer, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLayer, name)
	}
	return factory(), nil
}

// Names returns the registered layer type names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
