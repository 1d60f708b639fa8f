package material

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// ErrUnknownMaterial is returned when a material name is not in a Library
var ErrUnknownMaterial = errors.New("unknown material")

// Library maps material names to shared material instances
type Library map[string]Material

// DefaultLibrary returns the named materials available to scene files
func DefaultLibrary() Library {
	return Library{
		"material_ground": NewLambertian(core.NewVec3(0.8, 0.8, 0.0)),
		"material_center": NewLambertian(core.NewVec3(0.7, 0.3, 0.3)),
		"material_left":   NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0),
		"material_right":  NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.0),
		"material_glass":  NewDielectric(1.5),
		"material_fuzz":   NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3),
	}
}

// Lookup returns the material registered under name
func (l Library) Lookup(name string) (Material, error) {
	m, ok := l[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMaterial, name)
	}
	return m, nil
}

// Names returns the registered material names in sorted order
func (l Library) Names() []string {
	names := make([]string, 0, len(l))
	for name := range l {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
