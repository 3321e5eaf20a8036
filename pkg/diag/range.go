// Package diag contains the byte ranges shared by the lexer front ends.
package diag

// Ranger wraps the Range method.
type Ranger interface {
	// Range returns the range associated with the value.
	Range() Ranging
}

// Ranging represents a range [From, To) of byte offsets within a source
// text. Structs can embed Ranging to satisfy the [Ranger] interface.
type Ranging struct {
	From int
	To   int
}

// Range returns the Ranging itself.
func (r Ranging) Range() Ranging { return r }

// Len returns the number of bytes covered.
func (r Ranging) Len() int { return r.To - r.From }

// Contains reports whether the byte at offset p falls within r. An empty
// Ranging contains nothing.
func (r Ranging) Contains(p int) bool { return r.From <= p && p < r.To }

// Text returns the part of src covered by r.
func (r Ranging) Text(src string) string { return src[r.From:r.To] }

// Shift returns r moved by delta bytes.
func (r Ranging) Shift(delta int) Ranging {
	return Ranging{r.From + delta, r.To + delta}
}
