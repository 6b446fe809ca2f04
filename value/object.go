package value

// ObjKind tags the kind of heap object an Object describes, mirroring
// clox's obj_type enum.
type ObjKind byte

const (
	ObjString ObjKind = iota
	ObjFunction
	ObjInstance
)

// Object is the single heap-allocated object representation. Next links it
// into the Heap's intrusive list, the hook a future garbage collector would
// walk to free everything the VM ever allocated; nothing in this repo
// collects yet, so the list only ever grows. Only the fields matching Kind
// are meaningful, the same "tagged struct" shape Value itself uses rather
// than Go's usual interface-per-variant approach, since there is no
// per-kind behaviour here beyond printing.
type Object struct {
	Kind ObjKind
	Next *Object

	// ObjString payload. Go strings are already immutable length-prefixed
	// byte spans, so unlike clox there is no separate "own the backing
	// array" step; Chars is just stored by value either way.
	Chars string

	// ObjFunction payload, reserved: the value taxonomy can produce and
	// print a function object, but no bytecode in this repo calls one.
	FnName  string
	FnArity int

	// ObjInstance payload, reserved the same way: classes and instances
	// are part of the value model but never executed.
	ClassName string
}

func printObj(o *Object) string {
	switch o.Kind {
	case ObjString:
		return o.Chars
	case ObjFunction:
		return "<fn " + o.FnName + ">"
	case ObjInstance:
		return "<instance " + o.ClassName + ">"
	default:
		return "<obj>"
	}
}
