// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// parse.go — plist text to Document using an ordered XML DOM.

package plist

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"
)

// ErrBadPlist is returned when the text is not a well-formed plist of the
// expected shape.
var ErrBadPlist = errors.New("plist: malformed document")

// Attr is one attribute of the <plist> root element.
type Attr struct {
	Key   string
	Value string
}

// DefaultAttrs are written when a Document carries no root attributes.
var DefaultAttrs = []Attr{{"version", "1.0"}, {"gjver", "2.0"}}

// Document is a parsed plist: the root element attributes and the root dict.
type Document struct {
	Attrs []Attr
	Root  *Dict
}

// NewDocument returns an empty document with the default root attributes.
func NewDocument() *Document {
	return &Document{Attrs: append([]Attr(nil), DefaultAttrs...), Root: NewDict()}
}

// Parse reads shorthand or standard plist text.
func Parse(text string) (*Document, error) {
	xml := etree.NewDocument()
	xml.ReadSettings.Permissive = true
	if err := xml.ReadFromString(ToStandard(text)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPlist, err)
	}
	root := xml.Root()
	if root == nil || root.Tag != "plist" {
		return nil, fmt.Errorf("%w: missing <plist> root", ErrBadPlist)
	}

	doc := &Document{}
	for _, a := range root.Attr {
		doc.Attrs = append(doc.Attrs, Attr{Key: a.FullKey(), Value: a.Value})
	}

	children := root.ChildElements()
	if len(children) == 0 {
		doc.Root = NewDict()
		return doc, nil
	}
	if children[0].Tag != "dict" {
		return nil, fmt.Errorf("%w: root value is <%s>, want <dict>", ErrBadPlist, children[0].Tag)
	}
	d, err := parseDict(children[0])
	if err != nil {
		return nil, err
	}
	doc.Root = d
	return doc, nil
}

// ParseDict reads text whose root element is a bare <dict> or <d>.
func ParseDict(text string) (*Dict, error) {
	xml := etree.NewDocument()
	xml.ReadSettings.Permissive = true
	if err := xml.ReadFromString(ToStandard(text)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPlist, err)
	}
	root := xml.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: empty document", ErrBadPlist)
	}
	if root.Tag == "plist" {
		els := root.ChildElements()
		if len(els) == 0 {
			return NewDict(), nil
		}
		root = els[0]
	}
	if root.Tag != "dict" {
		return nil, fmt.Errorf("%w: root value is <%s>, want <dict>", ErrBadPlist, root.Tag)
	}
	return parseDict(root)
}

func parseDict(el *etree.Element) (*Dict, error) {
	d := NewDict()
	children := el.ChildElements()
	for i := 0; i < len(children); i += 2 {
		k := children[i]
		if k.Tag != "key" {
			return nil, fmt.Errorf("%w: expected <key>, got <%s>", ErrBadPlist, k.Tag)
		}
		if i+1 >= len(children) {
			return nil, fmt.Errorf("%w: key %q has no value", ErrBadPlist, k.Text())
		}
		v, err := parseValue(children[i+1])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k.Text(), err)
		}
		d.Set(k.Text(), v)
	}
	return d, nil
}

func parseValue(el *etree.Element) (*Node, error) {
	switch el.Tag {
	case "dict":
		d, err := parseDict(el)
		if err != nil {
			return nil, err
		}
		return DictNode(d), nil
	case "string":
		return &Node{Kind: KindString, Text: el.Text()}, nil
	case "integer":
		return &Node{Kind: KindInteger, Text: el.Text()}, nil
	case "real":
		return &Node{Kind: KindReal, Text: el.Text()}, nil
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	}
	return nil, fmt.Errorf("%w: unsupported element <%s>", ErrBadPlist, el.Tag)
}
