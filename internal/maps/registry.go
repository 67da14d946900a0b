package maps

import (
	"fmt"
	"sort"

	"github.com/san-kum/chaosmap/internal/dynamo"
)

// Default is the map used when none is named.
const Default = "logistic"

type Registry struct {
	maps map[string]dynamo.Recurrence
}

func NewRegistry() *Registry {
	r := &Registry{
		maps: make(map[string]dynamo.Recurrence),
	}

	r.maps["logistic"] = Logistic
	r.maps["tent"] = Tent
	r.maps["sine"] = Sine

	return r
}

// Register adds or replaces a named recurrence.
func (r *Registry) Register(name string, f dynamo.Recurrence) {
	r.maps[name] = f
}

func (r *Registry) Get(name string) (dynamo.Recurrence, error) {
	if name == "" {
		name = Default
	}
	f, ok := r.maps[name]
	if !ok {
		return nil, fmt.Errorf("unknown map: %s (available: %v)", name, r.Names())
	}
	return f, nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.maps))
	for name := range r.maps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
