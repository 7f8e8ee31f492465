// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// document.go — SaveDocument: the decoded local-levels plist as an ordered
// list of levels plus the untouched LLM_02/LLM_03 header nodes, with the
// whole-document decode and encode pipeline.

package gdsave

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AndrewDonelson/gdsave/internal/cipher"
	"github.com/AndrewDonelson/gdsave/internal/plist"
)

// Top-level document keys.
const (
	keyLevels  = "LLM_01"
	keyHeaderA = "LLM_02"
	keyHeaderB = "LLM_03"
	keyIsArray = "_isArr"
)

// SaveDocument is a decoded save file. Levels[0] is the most recently
// created level.
type SaveDocument struct {
	Levels []*Level

	attrs []plist.Attr
	// root keeps every top-level key in document order, including the
	// LLM_02 and LLM_03 header nodes, which are written back unchanged.
	root *plist.Dict
}

// NewSaveDocument returns an empty document.
func NewSaveDocument() *SaveDocument {
	return &SaveDocument{attrs: append([]plist.Attr(nil), plist.DefaultAttrs...), root: plist.NewDict()}
}

// DecodeSaveDocument decodes raw save file bytes.
func DecodeSaveDocument(raw []byte) (*SaveDocument, error) {
	text, err := cipher.DecodeDocument(raw)
	if err != nil {
		return nil, classify("decode document", err)
	}
	return ParseSaveDocument(string(text))
}

// ParseSaveDocument reads decoded plist text. Level records stay encoded
// until each level is decoded.
func ParseSaveDocument(text string) (*SaveDocument, error) {
	p, err := plist.Parse(text)
	if err != nil {
		return nil, classify("parse document", err)
	}
	doc := &SaveDocument{attrs: p.Attrs, root: p.Root}

	n, ok := p.Root.Get(keyLevels)
	if !ok {
		return doc, nil
	}
	list, ok := n.AsDict()
	if !ok {
		return nil, fmt.Errorf("parse document: %w: %s is a %s, want dict", ErrBadFormat, keyLevels, n.Kind)
	}
	for _, k := range list.Keys() {
		if k == keyIsArray {
			continue
		}
		v, _ := list.Get(k)
		ld, ok := v.AsDict()
		if !ok {
			return nil, fmt.Errorf("parse document: %w: level %s is a %s, want dict", ErrBadFormat, k, v.Kind)
		}
		l, err := levelFromDict(ld)
		if err != nil {
			return nil, fmt.Errorf("parse document: level %s: %w", k, err)
		}
		doc.Levels = append(doc.Levels, l)
	}
	// The level list is rebuilt on write.
	doc.root.Set(keyLevels, plist.DictNode(plist.NewDict()))
	return doc, nil
}

// Text renders the document as shorthand plist text.
func (d *SaveDocument) Text() (string, error) {
	list := plist.NewDict()
	list.Set(keyIsArray, plist.Bool(true))
	for i, l := range d.Levels {
		ld, err := l.toDict()
		if err != nil {
			return "", fmt.Errorf("level %d: %w", i, err)
		}
		list.Set("k_"+strconv.Itoa(i), plist.DictNode(ld))
	}

	root := plist.NewDict()
	if _, ok := d.root.Get(keyLevels); !ok {
		root.Set(keyLevels, plist.DictNode(list))
	}
	for _, k := range d.root.Keys() {
		if k == keyLevels {
			root.Set(k, plist.DictNode(list))
			continue
		}
		n, _ := d.root.Get(k)
		root.Set(k, n)
	}
	return plist.Write(&plist.Document{Attrs: d.attrs, Root: root}), nil
}

// Encode renders and encodes the document as save file bytes.
func (d *SaveDocument) Encode() ([]byte, error) {
	text, err := d.Text()
	if err != nil {
		return nil, err
	}
	raw, err := cipher.EncodeDocument([]byte(text))
	if err != nil {
		return nil, classify("encode document", err)
	}
	return raw, nil
}

// ────────────────────────────────────────────────────────────────────────────
// Level list
// ────────────────────────────────────────────────────────────────────────────

// Len returns the number of levels.
func (d *SaveDocument) Len() int { return len(d.Levels) }

// AddLevel inserts l at the front, where the game lists its newest level.
func (d *SaveDocument) AddLevel(l *Level) {
	d.Levels = append([]*Level{l}, d.Levels...)
}

// Level returns the level at index i.
func (d *SaveDocument) Level(i int) (*Level, error) {
	if i < 0 || i >= len(d.Levels) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrLevelNotFound, i, len(d.Levels))
	}
	return d.Levels[i], nil
}

// RemoveLevel deletes and returns the level at index i.
func (d *SaveDocument) RemoveLevel(i int) (*Level, error) {
	l, err := d.Level(i)
	if err != nil {
		return nil, err
	}
	d.Levels = append(d.Levels[:i], d.Levels[i+1:]...)
	return l, nil
}

// FindLevel returns the first level whose title matches, ignoring case.
func (d *SaveDocument) FindLevel(title string) (*Level, int, error) {
	for i, l := range d.Levels {
		if strings.EqualFold(l.Title, title) {
			return l, i, nil
		}
	}
	return nil, -1, fmt.Errorf("%w: %q", ErrLevelNotFound, title)
}

// HeaderKeys returns the top-level keys other than the level list, in
// document order.
func (d *SaveDocument) HeaderKeys() []string {
	var out []string
	for _, k := range d.root.Keys() {
		if k != keyLevels {
			out = append(out, k)
		}
	}
	return out
}
