// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// level.go — Level and its lazy Encrypted → Decrypted state, LevelData (the
// decoded header segment and objects), parallel order-preserving object
// decode, and group analysis helpers.

package gdsave

import (
	"fmt"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"github.com/AndrewDonelson/gdsave/internal/cipher"
	"github.com/AndrewDonelson/gdsave/internal/plist"
	"golang.org/x/sync/errgroup"
)

// DefaultLevelHeader is the header segment of a freshly created level.
const DefaultLevelHeader = "kS38,1_40_2_125_3_255_11_255_12_255_13_255_4_-1_6_1000_7_1_15_1_18_0_8_1|" +
	"1_0_2_102_3_255_11_255_12_255_13_255_4_-1_6_1001_7_1_15_1_18_0_8_1|" +
	"1_0_2_102_3_255_11_255_12_255_13_255_4_-1_6_1009_7_1_15_1_18_0_8_1|" +
	"1_255_2_255_3_255_11_255_12_255_13_255_4_-1_6_1002_5_1_7_1_15_1_18_0_8_1|" +
	"1_40_2_125_3_255_11_255_12_255_13_255_4_-1_6_1013_7_1_15_1_18_0_8_1|" +
	"1_40_2_125_3_255_11_255_12_255_13_255_4_-1_6_1014_7_1_15_1_18_0_8_1|" +
	"1_0_2_125_3_255_11_255_12_255_13_255_4_-1_6_1005_5_1_7_1_15_1_18_0_8_1|" +
	"1_0_2_200_3_255_11_255_12_255_13_255_4_-1_6_1006_5_1_7_1_15_1_18_0_8_1|" +
	",kA13,0,kA15,0,kA16,0,kA14,,kA6,0,kA7,0,kA25,0,kA17,0,kA18,0,kS39,0,kA2,0,kA3,0," +
	"kA8,0,kA4,0,kA9,0,kA10,0,kA22,0,kA23,0,kA24,0,kA27,1,kA40,1,kA41,1,kA42,1,kA28,0," +
	"kA29,0,kA31,1,kA32,1,kA36,0,kA43,0,kA44,0,kA45,1,kA46,0,kA33,1,kA34,1,kA35,0," +
	"kA37,1,kA38,1,kA39,1,kA19,0,kA26,0,kA20,0,kA21,0,kA11,0"

// Level dictionary keys.
const (
	keyTitle       = "k2"
	keyDescription = "k3"
	keyRecord      = "k4"
	keyAuthor      = "k5"
	keySong        = "k45"
)

// decodeChunk is the number of object records parsed per worker task.
const decodeChunk = 512

// MaxGroup is the highest assignable group id.
const MaxGroup = 9999

// LevelState tells whether a level's objects have been decoded.
type LevelState uint8

const (
	// StateEmpty is a level without object data.
	StateEmpty LevelState = iota
	// StateEncrypted holds the encoded record as read from the document.
	StateEncrypted
	// StateDecrypted holds decoded LevelData.
	StateDecrypted
)

func (s LevelState) String() string {
	switch s {
	case StateEncrypted:
		return "encrypted"
	case StateDecrypted:
		return "decrypted"
	}
	return "empty"
}

// ────────────────────────────────────────────────────────────────────────────
// LevelData
// ────────────────────────────────────────────────────────────────────────────

// LevelData is a decoded level record: the opaque header segment and the
// objects in authoring order.
type LevelData struct {
	Header  string
	Objects []*GDObject
}

// ParseLevelData splits decoded record text into the header and objects.
// Objects are parsed on up to workers goroutines; workers <= 0 uses
// GOMAXPROCS.
func ParseLevelData(text string, workers int) (*LevelData, error) {
	header, records := splitRecords(text)
	return parseRecords(header, records, workers)
}

// splitRecords cuts decoded record text at ';'. Segments of one character or
// less after trimming are filler, not objects.
func splitRecords(text string) (string, []string) {
	segs := strings.Split(text, ";")
	records := make([]string, 0, len(segs)-1)
	for _, s := range segs[1:] {
		if s = strings.TrimSpace(s); len(s) > 1 {
			records = append(records, s)
		}
	}
	return segs[0], records
}

// parseRecords parses object records in chunks across at most workers
// goroutines. Output order matches input order.
func parseRecords(header string, records []string, workers int) (*LevelData, error) {
	data := &LevelData{Header: header}
	if len(records) == 0 {
		return data, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	objs := make([]*GDObject, len(records))
	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < len(records); start += decodeChunk {
		start := start
		end := min(start+decodeChunk, len(records))
		g.Go(func() error {
			for i := start; i < end; i++ {
				o, err := ParseObject(records[i])
				if err != nil {
					return fmt.Errorf("object %d: %w", i, err)
				}
				objs[i] = o
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	data.Objects = objs
	return data, nil
}

// Clone returns a deep copy.
func (d *LevelData) Clone() *LevelData {
	c := &LevelData{Header: d.Header, Objects: make([]*GDObject, len(d.Objects))}
	for i, o := range d.Objects {
		c.Objects[i] = o.Clone()
	}
	return c
}

func (d *LevelData) Serialize() string {
	b := make([]byte, 0, len(d.Header)+1+len(d.Objects)*64)
	b = append(b, d.Header...)
	b = append(b, ';')
	for _, o := range d.Objects {
		b = o.AppendRecord(b)
	}
	return string(b)
}

// Encode returns the compressed, base64 encoded record stored under k4.
func (d *LevelData) Encode() (string, error) {
	rec, err := cipher.EncodeLevel(d.Serialize())
	if err != nil {
		return "", classify("encode level", err)
	}
	return rec, nil
}

// AddObject appends o.
func (d *LevelData) AddObject(o *GDObject) { d.Objects = append(d.Objects, o) }

// UsedGroups returns the sorted ids of groups containing at least one object.
func (d *LevelData) UsedGroups() []int16 {
	set := map[int16]struct{}{}
	for _, o := range d.Objects {
		for _, g := range o.Config.Groups {
			set[g] = struct{}{}
		}
	}
	return sortedGroups(set)
}

// UnusedGroups returns the sorted ids in 1..MaxGroup that contain no object.
func (d *LevelData) UnusedGroups() []int16 {
	used := map[int16]struct{}{}
	for _, g := range d.UsedGroups() {
		used[g] = struct{}{}
	}
	out := make([]int16, 0, MaxGroup-len(used))
	for g := int16(1); g <= MaxGroup; g++ {
		if _, ok := used[g]; !ok {
			out = append(out, g)
		}
	}
	return out
}

// ArgumentGroups returns the sorted ids of groups referenced by object
// properties, such as trigger targets.
func (d *LevelData) ArgumentGroups() []int16 {
	set := map[int16]struct{}{}
	for _, o := range d.Objects {
		for _, p := range o.props {
			switch v := p.Value.(type) {
			case GroupRef:
				set[int16(v)] = struct{}{}
			case GroupList:
				for _, g := range v {
					set[g] = struct{}{}
				}
			case ProbabilityList:
				for _, e := range v {
					set[e.Group] = struct{}{}
				}
			}
		}
	}
	return sortedGroups(set)
}

func sortedGroups(set map[int16]struct{}) []int16 {
	out := make([]int16, 0, len(set))
	for g := range set {
		out = append(out, g)
	}
	slices.Sort(out)
	return out
}

// ────────────────────────────────────────────────────────────────────────────
// Level
// ────────────────────────────────────────────────────────────────────────────

// Level is one entry of the save document.
type Level struct {
	Title  string
	Author string
	// Description is stored base64 encoded, as in the document.
	Description string
	Song        int64

	state  LevelState
	record string
	data   *LevelData
	// dict keeps every key of the level dictionary in document order. Known
	// keys are refreshed from the fields on write.
	dict *plist.Dict
}

// NewLevel returns an empty decoded level with the default header and the
// default level properties. description is plain text.
func NewLevel(title, author, description string, song int64) *Level {
	l := &Level{
		Title:  title,
		Author: author,
		Song:   song,
		state:  StateDecrypted,
		data:   &LevelData{Header: DefaultLevelHeader},
		dict:   defaultLevelDict(),
	}
	l.SetDescription(description)
	return l
}

func defaultLevelDict() *plist.Dict {
	ki6 := plist.NewDict()
	for i := 0; i < 15; i++ {
		ki6.Set(strconv.Itoa(i), plist.String("0"))
	}
	d := plist.NewDict()
	d.Set("kCEK", plist.Integer(4))
	d.Set("k18", plist.Integer(1))
	d.Set("k101", plist.String(strings.Repeat("0,", 19)+"0"))
	d.Set("k11", plist.Integer(4598))
	d.Set("k13", plist.Bool(true))
	d.Set("k21", plist.Integer(2))
	d.Set("k16", plist.Integer(1))
	d.Set("k27", plist.Integer(4598))
	d.Set("k50", plist.Integer(45))
	d.Set("k47", plist.Bool(true))
	d.Set("kI1", plist.Real(100))
	d.Set("kI2", plist.Real(100))
	d.Set("kI3", plist.Real(1))
	d.Set("kI6", plist.DictNode(ki6))
	return d
}

// levelFromDict reads a level dictionary. The record stays encoded.
func levelFromDict(d *plist.Dict) (*Level, error) {
	l := &Level{dict: d.Clone()}
	for _, k := range d.Keys() {
		n, _ := d.Get(k)
		switch k {
		case keyTitle, keyDescription, keyAuthor, keyRecord:
			s, ok := n.AsString()
			if !ok {
				return nil, fmt.Errorf("%w: level key %s is a %s, want string", ErrBadFormat, k, n.Kind)
			}
			switch k {
			case keyTitle:
				l.Title = s
			case keyDescription:
				l.Description = s
			case keyAuthor:
				l.Author = s
			case keyRecord:
				l.record = s
				l.state = StateEncrypted
				l.dict.Set(keyRecord, plist.String(""))
			}
		case keySong:
			v, ok := n.AsInt()
			if !ok {
				return nil, fmt.Errorf("%w: level key %s is not an integer", ErrBadFormat, k)
			}
			l.Song = v
		}
	}
	return l, nil
}

// toDict renders the level dictionary, encoding decoded object data. Empty
// or zero fields are written only when the key was present on load.
func (l *Level) toDict() (*plist.Dict, error) {
	d := l.dict.Clone()
	if d == nil {
		d = plist.NewDict()
	}
	present := func(k string) bool {
		_, ok := d.Get(k)
		return ok
	}
	setString := func(k, v string) {
		if v == "" && !present(k) {
			return
		}
		d.Set(k, plist.String(v))
	}
	setString(keyTitle, l.Title)
	setString(keyDescription, l.Description)
	rec, err := l.EncodedRecord()
	if err != nil {
		return nil, err
	}
	if l.state == StateEmpty {
		d.Delete(keyRecord)
	} else {
		d.Set(keyRecord, plist.String(rec))
	}
	setString(keyAuthor, l.Author)
	if l.Song != 0 || present(keySong) {
		d.Set(keySong, plist.Integer(l.Song))
	}
	return d, nil
}

// State returns the decode state.
func (l *Level) State() LevelState { return l.state }

// EncodedRecord returns the k4 record. Decoded levels are re-encoded from
// their current data; the level's state is not changed.
func (l *Level) EncodedRecord() (string, error) {
	switch l.state {
	case StateEncrypted:
		return l.record, nil
	case StateDecrypted:
		return l.data.Encode()
	}
	return "", nil
}

// Decode decodes the object data on first use and returns it. Later calls
// return the same LevelData.
func (l *Level) Decode() (*LevelData, error) {
	return l.decode(0)
}

func (l *Level) decode(workers int) (*LevelData, error) {
	switch l.state {
	case StateDecrypted:
		return l.data, nil
	case StateEmpty:
		return nil, ErrNoLevelData
	}
	data, err := decodeRecord(l.record, workers)
	if err != nil {
		return nil, err
	}
	l.setDecoded(data)
	return data, nil
}

func decodeRecord(record string, workers int) (*LevelData, error) {
	p, err := unpackRecord(record)
	if err != nil {
		return nil, err
	}
	return p.parse(workers)
}

// unpackRecord decodes a k4 record into its header and raw object records.
func unpackRecord(record string) (levelPayload, error) {
	text, err := cipher.DecodeLevel(record)
	if err != nil {
		return levelPayload{}, classify("decode level", err)
	}
	header, records := splitRecords(text)
	return levelPayload{Header: header, Records: records}, nil
}

func (l *Level) setDecoded(d *LevelData) {
	l.data = d
	l.record = ""
	l.state = StateDecrypted
}

// SetData replaces the level's objects and marks it decoded.
func (l *Level) SetData(d *LevelData) { l.setDecoded(d) }

// AddObject appends o to a decoded level. Encoded levels are decoded first.
func (l *Level) AddObject(o *GDObject) error {
	if l.state == StateEmpty {
		l.setDecoded(&LevelData{Header: DefaultLevelHeader})
	}
	d, err := l.Decode()
	if err != nil {
		return err
	}
	d.AddObject(o)
	return nil
}

// SetDescription stores text as the base64 encoded description.
func (l *Level) SetDescription(text string) {
	if text == "" {
		l.Description = ""
		return
	}
	l.Description = string(cipher.EncodeBase64([]byte(text)))
}

// DecodedDescription returns the plain description text.
func (l *Level) DecodedDescription() (string, error) {
	if l.Description == "" {
		return "", nil
	}
	b, err := cipher.DecodeBase64([]byte(l.Description))
	if err != nil {
		return "", classify("level description", err)
	}
	return string(b), nil
}

// ExtraKeys returns the level dictionary keys other than title, description,
// record, author and song, in document order.
func (l *Level) ExtraKeys() []string {
	var out []string
	for _, k := range l.dict.Keys() {
		switch k {
		case keyTitle, keyDescription, keyRecord, keyAuthor, keySong:
			continue
		}
		out = append(out, k)
	}
	return out
}

// String summarises the level on one line.
func (l *Level) String() string {
	title := l.Title
	if title == "" {
		title = "<No title>"
	}
	desc, err := l.DecodedDescription()
	if err != nil || l.Description == "" {
		desc = "<No description>"
	}
	author := l.Author
	if author == "" {
		author = "<Unknown author>"
	}
	var info string
	switch l.state {
	case StateEncrypted:
		info = strconv.Itoa(len(l.record)) + " Bytes"
	case StateDecrypted:
		info = strconv.Itoa(len(l.data.Objects)) + " Objects"
	default:
		info = "Empty"
	}
	return fmt.Sprintf("\"%s\" (%s) by %s using song %d; %s", title, desc, author, l.Song, info)
}
