package fieldtree

// node is a tagged variant: a leaf holding an optional scalar, or a branch
// holding ordered children. Children are owned exclusively by their parent, so
// the structure is a strict tree.
type node struct {
	name     string
	leaf     bool
	value    string
	set      bool
	children []*node
}

func (n *node) child(name string) (*node, int) {
	for i, c := range n.children {
		if c.name == name {
			return c, i
		}
	}
	return nil, -1
}

// FlatField is one (key, value) pair of a flattened tree. Key uses the
// bracketed wire form; Value is the leaf scalar, empty when the leaf was never
// given a value.
type FlatField struct {
	Key   string
	Value string
}

// Leaf describes one leaf slot for hosts that render visible inputs: the
// dotted path (label and error lookup key), the bracketed wire key (input
// name), the current value and whether one has been set.
type Leaf struct {
	Path  string
	Key   string
	Value string
	Set   bool
}

// Tree is an ordered, nested field structure. Branch children keep insertion
// order at every level; that order is part of the contract because it drives
// the order fields are flattened, signed and rendered.
type Tree struct {
	root node
}

// New builds a tree mirroring the template's shape, preserving key order at
// every level. Duplicate names within a level follow mapping semantics: the
// last declaration wins, keeping the first declaration's position, so a
// branch never holds two same-named children. Field names are not checked
// against any gateway schema: the caller's template is the schema, which
// keeps the tree forward-compatible with gateway fields this package has
// never heard of.
func New(tpl Template) *Tree {
	t := &Tree{}
	t.root.children = buildNodes(tpl)
	return t
}

func buildNodes(tpl Template) []*node {
	nodes := make([]*node, 0, len(tpl))
	index := make(map[string]int, len(tpl))
	for _, entry := range tpl {
		if entry.Name == "" {
			continue
		}
		n := &node{name: entry.Name}
		if entry.leaf {
			n.leaf = true
			n.value = entry.value
			n.set = entry.set
		} else {
			n.children = buildNodes(entry.Children)
		}
		if at, dup := index[entry.Name]; dup {
			nodes[at] = n
			continue
		}
		index[entry.Name] = len(nodes)
		nodes = append(nodes, n)
	}
	return nodes
}

// Clone returns a deep copy sharing no nodes with the receiver.
func (t *Tree) Clone() *Tree {
	out := &Tree{}
	out.root.children = cloneNodes(t.root.children)
	return out
}

func cloneNodes(nodes []*node) []*node {
	if nodes == nil {
		return nil
	}
	out := make([]*node, len(nodes))
	for i, n := range nodes {
		clone := *n
		clone.children = cloneNodes(n.children)
		out[i] = &clone
	}
	return out
}

// Empty reports whether the tree has no nodes at all.
func (t *Tree) Empty() bool {
	return len(t.root.children) == 0
}

// RemoveSection deletes the node addressed by path along with its whole
// subtree. Every segment must resolve: removing a path that does not exist —
// including removing the same path twice — fails with ErrPathNotFound. A
// parent left empty by the removal stays in place.
func (t *Tree) RemoveSection(path string) error {
	segments, err := ParsePath(path)
	if err != nil {
		return err
	}

	parent := &t.root
	for _, segment := range segments[:len(segments)-1] {
		next, _ := parent.child(segment)
		if next == nil {
			return pathErr("remove", path, ErrPathNotFound)
		}
		if next.leaf {
			return pathErr("remove", path, ErrInvalidPath)
		}
		parent = next
	}

	last := segments[len(segments)-1]
	if _, i := parent.child(last); i >= 0 {
		parent.children = append(parent.children[:i], parent.children[i+1:]...)
		return nil
	}
	return pathErr("remove", path, ErrPathNotFound)
}

// SetValue assigns a scalar to the leaf addressed by path. Missing
// intermediates are created as branches and a missing final segment becomes a
// new leaf, so callers may set fields the original template never declared.
// Descending through an existing leaf, or addressing an existing branch as the
// target, fails with ErrInvalidPath: a branch is never silently collapsed into
// a scalar.
func (t *Tree) SetValue(path, value string) error {
	segments, err := ParsePath(path)
	if err != nil {
		return err
	}
	return t.forceSet("set", path, segments, value)
}

func (t *Tree) forceSet(op, path string, segments []string, value string) error {
	parent := &t.root
	for _, segment := range segments[:len(segments)-1] {
		next, _ := parent.child(segment)
		if next == nil {
			next = &node{name: segment}
			parent.children = append(parent.children, next)
		} else if next.leaf {
			return pathErr(op, path, ErrInvalidPath)
		}
		parent = next
	}

	last := segments[len(segments)-1]
	target, _ := parent.child(last)
	if target == nil {
		target = &node{name: last, leaf: true}
		parent.children = append(parent.children, target)
	} else if !target.leaf {
		return pathErr(op, path, ErrInvalidPath)
	}
	target.value = value
	target.set = true
	return nil
}

// MergeProtected force-sets every populated leaf of protected into the
// receiver, creating paths as needed. Callers apply it strictly after all
// public mutation and strictly before flattening, so a protected value always
// wins over anything set through SetValue. Protected leaves that were never
// given a value are skipped rather than emitted as empty fields. A shape
// conflict between the two trees fails with ErrInvalidPath.
func (t *Tree) MergeProtected(protected *Tree) error {
	if protected == nil {
		return nil
	}
	return t.mergeNodes(protected.root.children, nil)
}

func (t *Tree) mergeNodes(nodes []*node, prefix []string) error {
	for _, n := range nodes {
		segments := append(prefix[:len(prefix):len(prefix)], n.name)
		if n.leaf {
			if !n.set {
				continue
			}
			if err := t.forceSet("merge", JoinDotted(segments), segments, n.value); err != nil {
				return err
			}
			continue
		}
		if err := t.mergeNodes(n.children, segments); err != nil {
			return err
		}
	}
	return nil
}

// Flatten renders the tree as the ordered (key, value) sequence handed to the
// signer: a depth-first pre-order walk respecting each branch's insertion
// order, keys in bracketed wire form, unset leaves emitted with an empty
// value. Flattening does not mutate the tree, so repeated calls on an
// unchanged tree yield identical output.
func (t *Tree) Flatten() []FlatField {
	var out []FlatField
	walkLeaves(t.root.children, nil, func(segments []string, n *node) {
		out = append(out, FlatField{Key: JoinBracketed(segments), Value: n.value})
	})
	return out
}

// Leaves lists every leaf slot in flatten order, with both path forms, for
// hosts that build visible inputs.
func (t *Tree) Leaves() []Leaf {
	var out []Leaf
	walkLeaves(t.root.children, nil, func(segments []string, n *node) {
		out = append(out, Leaf{
			Path:  JoinDotted(segments),
			Key:   JoinBracketed(segments),
			Value: n.value,
			Set:   n.set,
		})
	})
	return out
}

func walkLeaves(nodes []*node, prefix []string, visit func([]string, *node)) {
	for _, n := range nodes {
		segments := append(prefix[:len(prefix):len(prefix)], n.name)
		if n.leaf {
			visit(segments, n)
			continue
		}
		walkLeaves(n.children, segments, visit)
	}
}
