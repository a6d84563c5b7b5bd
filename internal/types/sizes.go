package types

// WordSize is the size in bytes of a machine word on the target
// (x86-64). Integers, pointers, and stack slots all occupy one word,
// so pointer arithmetic scales by it.
const WordSize = 8

// Sizeof returns the size of type t in bytes. Every type in this
// subset fits in a single machine word.
func Sizeof(t Type) int {
	return WordSize
}
