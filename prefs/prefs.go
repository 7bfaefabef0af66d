// Package prefs presents an INI document as a hierarchical preferences
// store: named nodes forming a tree, string values with defaulted lookup,
// and file-backed persistence.
package prefs

import (
	"errors"
	"io/fs"
	"strings"

	ini "github.com/KimNorgaard/go-ini"
)

// Preferences is a preferences tree over an INI document, optionally
// backed by a file.
type Preferences struct {
	path  string
	opts  []ini.Option
	doc   *ini.Document
	dirty bool
}

// Open loads the preferences file at path, or starts an empty tree when
// the file does not exist yet.
func Open(path string, opts ...ini.Option) (*Preferences, error) {
	doc, err := ini.LoadFile(path, opts...)
	if err != nil {
		var ioErr *ini.IOError
		if errors.As(err, &ioErr) && errors.Is(ioErr.Err, fs.ErrNotExist) {
			doc, err = ini.NewDocument(opts...)
		}
		if err != nil {
			return nil, err
		}
	}
	return &Preferences{path: path, opts: opts, doc: doc}, nil
}

// Wrap presents an existing document as an unbacked preferences tree;
// Flush is a no-op for it.
func Wrap(doc *ini.Document) *Preferences {
	return &Preferences{doc: doc}
}

// Document exposes the underlying document.
func (p *Preferences) Document() *ini.Document { return p.doc }

// Root returns the root node.
func (p *Preferences) Root() *Node {
	return &Node{p: p, store: p.doc}
}

// Node resolves a node by path segments, creating missing nodes on the
// way.
func (p *Preferences) Node(path ...string) *Node {
	n := p.Root()
	for _, name := range path {
		n = n.Node(name)
	}
	return n
}

// Flush writes the tree back to its file if anything changed since the
// last load or flush.
func (p *Preferences) Flush() error {
	if p.path == "" || !p.dirty {
		return nil
	}
	if err := ini.WriteFile(p.path, p.doc, p.opts...); err != nil {
		return err
	}
	p.dirty = false
	return nil
}

// Sync flushes pending changes and reloads the tree from its file.
func (p *Preferences) Sync() error {
	if err := p.Flush(); err != nil {
		return err
	}
	if p.path == "" {
		return nil
	}
	doc, err := ini.LoadFile(p.path, p.opts...)
	if err != nil {
		return err
	}
	p.doc = doc
	return nil
}

// Node is one level of the preferences tree. It wraps a document or
// section scope.
type Node struct {
	p     *Preferences
	store ini.Store
	path  []string
}

// Path returns the node's slash-separated path from the root.
func (n *Node) Path() string {
	return "/" + strings.Join(n.path, "/")
}

// Node returns the named child, creating it if absent.
func (n *Node) Node(name string) *Node {
	sec := n.store.Section(name)
	if sec == nil {
		sec = n.store.NewSection(name)
		n.p.dirty = true
	}
	return &Node{p: n.p, store: sec, path: append(append([]string(nil), n.path...), name)}
}

// ChildrenNames returns the names of the node's children.
func (n *Node) ChildrenNames() []string { return n.store.SectionNames() }

// Keys returns the node's own keys.
func (n *Node) Keys() []string { return n.store.Keys() }

// Get returns the value of key, or def when absent.
func (n *Node) Get(key, def string) string {
	if v, ok := n.store.Get(key); ok {
		return v
	}
	return def
}

// Put stores a single value under key.
func (n *Node) Put(key, value string) {
	n.store.Set(key, value)
	n.p.dirty = true
}

// Remove deletes key from the node.
func (n *Node) Remove(key string) {
	if n.store.Remove(key) {
		n.p.dirty = true
	}
}

// RemoveNode deletes the named child subtree.
func (n *Node) RemoveNode(name string) {
	if n.store.RemoveSection(name) {
		n.p.dirty = true
	}
}
