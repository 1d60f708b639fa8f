package material

import (
	"errors"
	"testing"
)

func TestDefaultLibrary_Lookup(t *testing.T) {
	lib := DefaultLibrary()

	for _, name := range []string{"material_ground", "material_center", "material_left", "material_right"} {
		if _, err := lib.Lookup(name); err != nil {
			t.Errorf("Expected %s to resolve, got %v", name, err)
		}
	}

	if _, ok := lib["material_left"].(*Metal); !ok {
		t.Errorf("Expected material_left to be metal, got %T", lib["material_left"])
	}

	_, err := lib.Lookup("material_missing")
	if !errors.Is(err, ErrUnknownMaterial) {
		t.Errorf("Expected ErrUnknownMaterial, got %v", err)
	}
}

func TestLibrary_Names(t *testing.T) {
	lib := Library{"b": NewDielectric(1.5), "a": NewDielectric(1.3)}
	names := lib.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Expected sorted names [a b], got %v", names)
	}
}
