// Package types implements the type algebra for the C subset occ
// compiles: int, pointer-to, and function-returning types.
package types

// Type is the interface implemented by all types.
type Type interface {
	// String returns a human-readable representation of the type.
	String() string

	// aType is a marker method to restrict implementations to this package.
	aType()
}

// typ is a base struct for all type implementations.
type typ struct{}

func (typ) aType() {}

// Basic represents the integer type.
type Basic struct {
	typ
	name string
}

// Name returns the name of the basic type.
func (b *Basic) Name() string { return b.name }

// String implements Type.
func (b *Basic) String() string { return b.name }

// Int is the shared integer type. Every integer occurrence in a
// program references this singleton.
var Int Type = &Basic{name: "int"}

// Pointer represents a pointer type: *Base.
type Pointer struct {
	typ
	base Type
}

// PointerTo returns a new pointer type with the given base type.
// The base must be non-nil.
func PointerTo(base Type) *Pointer {
	if base == nil {
		panic("types: PointerTo with nil base")
	}
	return &Pointer{base: base}
}

// Base returns the pointee type.
func (p *Pointer) Base() Type { return p.base }

// String implements Type.
func (p *Pointer) String() string { return "*" + p.base.String() }

// Func represents the type of a function returning Result.
// Functions in this subset take no parameters.
type Func struct {
	typ
	result Type
}

// FuncFor returns a new function type with the given result type.
func FuncFor(result Type) *Func {
	return &Func{result: result}
}

// Result returns the function's return type.
func (f *Func) Result() Type { return f.result }

// String implements Type.
func (f *Func) String() string { return "func() " + f.result.String() }
