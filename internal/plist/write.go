// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// write.go — Document to shorthand plist text. The root dict keeps the
// standard <dict> tag; everything below it uses shorthand tags.

package plist

import "strings"

const xmlDecl = `<?xml version="1.0"?>`

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Write renders doc as a complete shorthand plist.
func Write(doc *Document) string {
	attrs := doc.Attrs
	if len(attrs) == 0 {
		attrs = DefaultAttrs
	}
	var b strings.Builder
	b.WriteString(xmlDecl)
	b.WriteString("<plist")
	for _, a := range attrs {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(textEscaper.Replace(a.Value))
		b.WriteByte('"')
	}
	b.WriteString("><dict>")
	b.WriteString(WriteEntries(doc.Root))
	b.WriteString("</dict></plist>")
	return b.String()
}

// WriteEntries renders the key/value pairs of d in shorthand form without the
// enclosing dict tags.
func WriteEntries(d *Dict) string {
	var b strings.Builder
	writeEntries(&b, d)
	return ToShorthand(b.String())
}

// WriteStandard renders d as a standard-tag <dict> element.
func WriteStandard(d *Dict) string {
	var b strings.Builder
	writeValue(&b, DictNode(d))
	return b.String()
}

func writeEntries(b *strings.Builder, d *Dict) {
	for _, k := range d.Keys() {
		v, _ := d.Get(k)
		b.WriteString("<key>")
		b.WriteString(textEscaper.Replace(k))
		b.WriteString("</key>")
		writeValue(b, v)
	}
}

func writeValue(b *strings.Builder, n *Node) {
	switch n.Kind {
	case KindDict:
		if n.Dict.Len() == 0 {
			b.WriteString("<dict />")
			return
		}
		b.WriteString("<dict>")
		writeEntries(b, n.Dict)
		b.WriteString("</dict>")
	case KindString:
		b.WriteString("<string>")
		b.WriteString(textEscaper.Replace(n.Text))
		b.WriteString("</string>")
	case KindInteger:
		b.WriteString("<integer>")
		b.WriteString(n.Text)
		b.WriteString("</integer>")
	case KindReal:
		b.WriteString("<real>")
		b.WriteString(n.Text)
		b.WriteString("</real>")
	case KindBool:
		if n.Bool {
			b.WriteString("<true />")
		} else {
			b.WriteString("<false />")
		}
	}
}
