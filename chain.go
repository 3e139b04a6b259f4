package dumper

import "slices"

// Step is one transformation in a [Chain]. The first step of a chain receives
// the raw value being rendered. Every later step receives the string produced
// by the step before it.
type Step func(any) string

// Chain is an ordered list of steps registered for one type or one field.
// Steps run in insertion order. A chain stored in a [Config] is never empty.
type Chain []Step

// Append returns a new chain with step added at the end. The receiver is
// left untouched, even when it has spare capacity.
func (c Chain) Append(step Step) Chain {
	out := slices.Clone(c)
	return append(out, step)
}

// Apply runs the chain against raw and returns the final string followed by
// a line terminator. The chain must not be empty.
func (c Chain) Apply(raw any) string {
	result := c[0](raw)
	for _, step := range c[1:] {
		result = step(result)
	}
	return result + "\n"
}
