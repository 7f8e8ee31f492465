// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// tags.go — translation between the game's shorthand plist tags (<k>, <s>,
// <d />, ...) and standard plist tag names, done as one multi-pattern pass.

package plist

import "strings"

// TagPair maps one shorthand tag to its standard plist spelling.
type TagPair struct {
	Shorthand string
	Standard  string
}

// Tags is the closed correspondence table. No entry is a prefix of another
// entry that could match at the same offset.
var Tags = []TagPair{
	{"<k>", "<key>"},
	{"</k>", "</key>"},
	{"<i>", "<integer>"},
	{"</i>", "</integer>"},
	{"<d>", "<dict>"},
	{"</d>", "</dict>"},
	{"<d />", "<dict />"},
	{"<d/>", "<dict/>"},
	{"<t/>", "<true/>"},
	{"<f/>", "<false/>"},
	{"<t />", "<true />"},
	{"<f />", "<false />"},
	{"<s>", "<string>"},
	{"</s>", "</string>"},
	{"<r>", "<real>"},
	{"</r>", "</real>"},
}

var (
	toStandard  = newReplacer(func(p TagPair) (string, string) { return p.Shorthand, p.Standard })
	toShorthand = newReplacer(func(p TagPair) (string, string) { return p.Standard, p.Shorthand })
)

func newReplacer(dir func(TagPair) (string, string)) *strings.Replacer {
	args := make([]string, 0, len(Tags)*2)
	for _, p := range Tags {
		from, to := dir(p)
		args = append(args, from, to)
	}
	return strings.NewReplacer(args...)
}

// ToStandard rewrites shorthand tags to standard plist tags.
func ToStandard(text string) string { return toStandard.Replace(text) }

// ToShorthand rewrites standard plist tags to the shorthand form.
func ToShorthand(text string) string { return toShorthand.Replace(text) }
