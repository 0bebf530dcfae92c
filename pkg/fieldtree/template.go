package fieldtree

// Template is the declarative, ordered description a tree is built from. Each
// entry is either an empty leaf awaiting a value, a leaf carrying a scalar
// default, or a nested branch. Templates are plain values: build one once,
// share it freely, and hand it to New for every form instantiation — the
// resulting trees never alias template state.
type Template []Entry

// Entry is a single named slot in a Template.
type Entry struct {
	Name     string
	Children Template

	value string
	set   bool
	leaf  bool
}

// Field declares an empty leaf. It flattens to an empty value unless a caller
// sets one.
func Field(name string) Entry {
	return Entry{Name: name, leaf: true}
}

// Value declares a leaf carrying a scalar default.
func Value(name, value string) Entry {
	return Entry{Name: name, leaf: true, value: value, set: true}
}

// Branch declares a nested section with ordered children.
func Branch(name string, children ...Entry) Entry {
	return Entry{Name: name, Children: Template(children)}
}

// Leaf reports whether the entry declares a leaf slot.
func (e Entry) Leaf() bool {
	return e.leaf
}

// Default returns the declared scalar default and whether one was set.
func (e Entry) Default() (string, bool) {
	return e.value, e.set
}
