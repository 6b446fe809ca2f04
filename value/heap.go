package value

// Heap owns every Object a VM run allocates, threading them onto a single
// intrusive list the way clox's vm.objects does. Nothing in this repo
// walks the list to free memory yet (Go's own collector reclaims the
// backing structs once unreachable) but the chain is kept so a future mark
// pass has the same traversal clox's does.
type Heap struct {
	head *Object
}

func NewHeap() *Heap {
	return &Heap{}
}

func (h *Heap) register(o *Object) *Object {
	o.Next = h.head
	h.head = o
	return o
}

// Objects returns the head of the intrusive allocation list, most recent
// first.
func (h *Heap) Objects() *Object {
	return h.head
}

// NewStringCopy allocates a string object holding a copy of s: the right
// constructor when s is a slice straight out of the source text (a string
// literal's lexeme with the surrounding quotes trimmed), mirroring clox's
// copy_string.
func (h *Heap) NewStringCopy(s string) *Object {
	return h.register(&Object{Kind: ObjString, Chars: s})
}

// NewStringAdopt allocates a string object taking ownership of s: the
// right constructor when s was already built fresh by the caller (e.g. the
// result of string concatenation) and doesn't need a defensive copy,
// mirroring clox's from_string. Go strings are immutable regardless, so
// the two constructors behave identically here; the split is kept because
// callers reason about intent differently (borrowed source text vs. a
// freshly produced buffer) even when the implementation can't tell them
// apart.
func (h *Heap) NewStringAdopt(s string) *Object {
	return h.register(&Object{Kind: ObjString, Chars: s})
}
