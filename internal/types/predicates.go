package types

// IsInteger reports whether t is the integer type.
func IsInteger(t Type) bool {
	_, ok := t.(*Basic)
	return ok
}

// IsPointer reports whether t is a pointer type.
func IsPointer(t Type) bool {
	_, ok := t.(*Pointer)
	return ok
}

// Elem returns the pointee type of t, or nil if t is not a pointer.
func Elem(t Type) Type {
	if p, ok := t.(*Pointer); ok {
		return p.base
	}
	return nil
}
