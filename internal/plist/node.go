// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// node.go — the ordered plist value tree. Scalars keep the exact text they
// were read with so untouched nodes are written back unchanged.

// Package plist parses and prints the plist dialect used by save files.
package plist

import (
	"strconv"
)

// Kind identifies the type of a Node.
type Kind uint8

const (
	KindDict Kind = iota
	KindString
	KindInteger
	KindReal
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindDict:
		return "dict"
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindBool:
		return "bool"
	}
	return "unknown"
}

// Node is one plist value.
type Node struct {
	Kind Kind
	// Text is the raw element text for string, integer and real nodes.
	Text string
	Bool bool
	Dict *Dict
}

// String returns a string node.
func String(s string) *Node { return &Node{Kind: KindString, Text: s} }

// Integer returns an integer node.
func Integer(v int64) *Node { return &Node{Kind: KindInteger, Text: strconv.FormatInt(v, 10)} }

// Real returns a real node.
func Real(v float64) *Node {
	return &Node{Kind: KindReal, Text: strconv.FormatFloat(v, 'f', -1, 64)}
}

// Bool returns a boolean node.
func Bool(v bool) *Node { return &Node{Kind: KindBool, Bool: v} }

// DictNode wraps d in a node.
func DictNode(d *Dict) *Node { return &Node{Kind: KindDict, Dict: d} }

// AsString returns the text of a string node.
func (n *Node) AsString() (string, bool) {
	if n == nil || n.Kind != KindString {
		return "", false
	}
	return n.Text, true
}

// AsInt parses an integer node. Reals with an integral value are accepted.
func (n *Node) AsInt() (int64, bool) {
	if n == nil {
		return 0, false
	}
	switch n.Kind {
	case KindInteger, KindString:
		v, err := strconv.ParseInt(n.Text, 10, 64)
		return v, err == nil
	case KindReal:
		f, err := strconv.ParseFloat(n.Text, 64)
		if err != nil || f != float64(int64(f)) {
			return 0, false
		}
		return int64(f), true
	}
	return 0, false
}

// AsFloat parses a real or integer node.
func (n *Node) AsFloat() (float64, bool) {
	if n == nil || (n.Kind != KindReal && n.Kind != KindInteger) {
		return 0, false
	}
	f, err := strconv.ParseFloat(n.Text, 64)
	return f, err == nil
}

// AsBool returns the value of a boolean node.
func (n *Node) AsBool() (bool, bool) {
	if n == nil || n.Kind != KindBool {
		return false, false
	}
	return n.Bool, true
}

// AsDict returns the dictionary of a dict node.
func (n *Node) AsDict() (*Dict, bool) {
	if n == nil || n.Kind != KindDict {
		return nil, false
	}
	return n.Dict, true
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	if n.Dict != nil {
		c.Dict = n.Dict.Clone()
	}
	return &c
}

// Equal reports whether two nodes hold the same kind and raw content.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Kind != o.Kind {
		return false
	}
	switch n.Kind {
	case KindDict:
		return n.Dict.Equal(o.Dict)
	case KindBool:
		return n.Bool == o.Bool
	}
	return n.Text == o.Text
}

// Dict is an insertion-ordered string-keyed dictionary.
type Dict struct {
	keys []string
	vals map[string]*Node
}

// NewDict returns an empty dictionary.
func NewDict() *Dict {
	return &Dict{vals: make(map[string]*Node)}
}

// Len returns the number of entries.
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Keys returns the keys in insertion order. The slice must not be modified.
func (d *Dict) Keys() []string {
	if d == nil {
		return nil
	}
	return d.keys
}

// Get returns the node stored under key.
func (d *Dict) Get(key string) (*Node, bool) {
	if d == nil {
		return nil, false
	}
	n, ok := d.vals[key]
	return n, ok
}

// Set stores n under key, keeping the original position of an existing key.
func (d *Dict) Set(key string, n *Node) {
	if _, ok := d.vals[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.vals[key] = n
}

// Delete removes key if present.
func (d *Dict) Delete(key string) {
	if _, ok := d.vals[key]; !ok {
		return
	}
	delete(d.vals, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
}

// Clone returns a deep copy of d.
func (d *Dict) Clone() *Dict {
	if d == nil {
		return nil
	}
	c := &Dict{keys: append([]string(nil), d.keys...), vals: make(map[string]*Node, len(d.vals))}
	for k, v := range d.vals {
		c.vals[k] = v.Clone()
	}
	return c
}

// Equal reports whether both dictionaries hold equal nodes under the same keys
// in the same order.
func (d *Dict) Equal(o *Dict) bool {
	if d.Len() != o.Len() {
		return false
	}
	for i, k := range d.Keys() {
		if o.keys[i] != k || !d.vals[k].Equal(o.vals[k]) {
			return false
		}
	}
	return true
}
