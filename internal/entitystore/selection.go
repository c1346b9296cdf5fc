package entitystore

// Mode distinguishes the two states the selection pointer can be in. The
// form layer keys off it: Creating renders blank fields, Editing
// pre-populates from the selected entity.
type Mode int

const (
	// Creating means no entity is selected.
	Creating Mode = iota
	// Editing means one entity is selected for editing.
	Editing
)

// Selection is the explicit sum of "nothing selected" and "this entity
// selected", replacing a nullable reference.
type Selection[T any] struct {
	mode   Mode
	entity T
}

// Mode returns which side of the sum the selection is on.
func (s Selection[T]) Mode() Mode { return s.mode }

// Entity returns the selected entity. The boolean is false in Creating mode
// and the zero value must not be used.
func (s Selection[T]) Entity() (T, bool) {
	if s.mode != Editing {
		var zero T
		return zero, false
	}
	return s.entity, true
}
