package scene

import (
	"fmt"
	"sort"
)

// DefaultSeed lays out the random sphere field when no seed is given
const DefaultSeed = 42

var builtins = map[string]func() *Scene{
	"first":   NewFirstScene,
	"spheres": func() *Scene { return NewRandomSpheresScene(DefaultSeed) },
	"ground":  NewGroundScene,
}

// Create returns a fresh instance of a built-in scene
func Create(name string) (*Scene, error) {
	factory, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return factory(), nil
}

// Names lists the built-in scenes in sorted order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
