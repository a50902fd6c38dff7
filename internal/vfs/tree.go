package vfs

import (
	"github.com/vvka-141/vfsh/pkg/vfsh"
)

// Node is a point in the virtual tree. Its identity is the path from the root;
// it stores only its children, in first-seen order.
type Node struct {
	names    []string
	children map[string]*Node
}

func newNode() *Node {
	return &Node{children: make(map[string]*Node)}
}

// Child returns the named child, if present.
func (n *Node) Child(name string) (*Node, bool) {
	child, ok := n.children[name]
	return child, ok
}

// Names returns the child names in insertion order.
func (n *Node) Names() []string {
	names := make([]string, len(n.names))
	copy(names, n.names)
	return names
}

// Len returns the number of children.
func (n *Node) Len() int {
	return len(n.names)
}

// Walk visits every descendant depth-first in insertion order. Direct
// children are reported at depth 0.
func (n *Node) Walk(fn func(name string, depth int)) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(name string, depth int), depth int) {
	for _, name := range n.names {
		fn(name, depth)
		n.children[name].walk(fn, depth+1)
	}
}

// Count returns the number of descendants of n.
func (n *Node) Count() int {
	total := 0
	n.Walk(func(string, int) { total++ })
	return total
}

func (n *Node) ensure(name string) *Node {
	if child, ok := n.children[name]; ok {
		return child
	}
	child := newNode()
	n.children[name] = child
	n.names = append(n.names, name)
	return child
}

func (n *Node) detach(name string) bool {
	if _, ok := n.children[name]; !ok {
		return false
	}
	delete(n.children, name)
	for i, existing := range n.names {
		if existing == name {
			n.names = append(n.names[:i], n.names[i+1:]...)
			break
		}
	}
	return true
}

// Tree is the mutable virtual filesystem. It is not safe for concurrent use;
// a single session owns it.
type Tree struct {
	root *Node
}

// Build creates a tree holding every path in entries. Every segment of every
// entry becomes a node, so the result is the union of the entry paths
// regardless of their order. Empty and "." segments are skipped.
func Build(entries []string) *Tree {
	t := &Tree{root: newNode()}
	for _, entry := range entries {
		current := t.root
		for _, segment := range Segments(entry) {
			current = current.ensure(segment)
		}
	}
	return t
}

// Root returns the node for "/".
func (t *Tree) Root() *Node {
	return t.root
}

// Lookup walks the segments of p from the root. p is treated as absolute.
// A missing segment at any depth yields a *PathError wrapping vfsh.ErrNotFound.
func (t *Tree) Lookup(p string) (*Node, error) {
	current := t.root
	for _, segment := range Segments(p) {
		child, ok := current.Child(segment)
		if !ok {
			return nil, notFound(OpLookup, p)
		}
		current = child
	}
	return current, nil
}

// Exists reports whether p resolves to a node.
func (t *Tree) Exists(p string) bool {
	_, err := t.Lookup(p)
	return err == nil
}

// NearestExisting returns the longest prefix of p that still resolves,
// falling back to the root.
func (t *Tree) NearestExisting(p string) string {
	current := t.root
	var kept []string
	for _, segment := range Segments(p) {
		child, ok := current.Child(segment)
		if !ok {
			break
		}
		kept = append(kept, segment)
		current = child
	}
	return Join(kept)
}

// Remove detaches the subtree at p. p is always resolved from the root with
// SplitRaw, ignoring any working directory. Nothing is removed unless the
// whole path resolves. Removing the root fails with vfsh.ErrRootRemoval.
func (t *Tree) Remove(p string) error {
	segments := SplitRaw(p)
	if len(segments) == 1 && segments[0] == "" {
		return &PathError{Op: OpRemove, Path: p, Err: vfsh.ErrRootRemoval}
	}

	parent := t.root
	for _, segment := range segments[:len(segments)-1] {
		child, ok := parent.Child(segment)
		if !ok {
			return notFound(OpRemove, p)
		}
		parent = child
	}

	if !parent.detach(segments[len(segments)-1]) {
		return notFound(OpRemove, p)
	}
	return nil
}
