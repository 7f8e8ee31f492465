// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// proptable.go — the static property table: object record key to
// description and declared value kind. Built once at package init and
// read-only afterwards.

package gdsave

import (
	"fmt"
	"slices"
	"strconv"
)

// StartPosOffset is added to the number of "kA"-prefixed keys so they occupy
// a key space disjoint from ordinary properties.
const StartPosOffset = 10000

// UnknownKey is what ParseKey returns for record keys that are neither
// decimal nor two-letter prefixed. The bag never stores it.
const UnknownKey uint16 = 65535

// PropertyDescriptor describes one object record key.
type PropertyDescriptor struct {
	Key         uint16
	Description string
	Kind        ValueKind
}

// Property keys referenced by name elsewhere in the package.
const (
	PropObjectID      uint16 = 1
	PropX             uint16 = 2
	PropY             uint16 = 3
	PropFlipX         uint16 = 4
	PropFlipY         uint16 = 5
	PropAngle         uint16 = 6
	PropRed           uint16 = 7
	PropGreen         uint16 = 8
	PropBlue          uint16 = 9
	PropDuration      uint16 = 10
	PropTouchable     uint16 = 11
	PropEditorLayer1  uint16 = 20
	PropMainColour    uint16 = 21
	PropDetailColour  uint16 = 22
	PropTargetColour  uint16 = 23
	PropZLayer        uint16 = 24
	PropZOrder        uint16 = 25
	PropMoveX         uint16 = 28
	PropMoveY         uint16 = 29
	PropEasing        uint16 = 30
	PropText          uint16 = 31
	PropGroupParent   uint16 = 34
	PropOpacity       uint16 = 35
	PropTargetGroup   uint16 = 51
	PropActivateGroup uint16 = 56
	PropGroups        uint16 = 57
	PropEditorLayer2  uint16 = 61
	PropSpawnable     uint16 = 62
	PropSpawnDelay    uint16 = 63
	PropDontFade      uint16 = 64
	PropDontEnter     uint16 = 67
	PropSecondGroup   uint16 = 71
	PropItem          uint16 = 80
	PropEasingRate    uint16 = 85
	PropMultiTrigger  uint16 = 87
	PropSecondItem    uint16 = 95
	PropScaleX        uint16 = 128
	PropScaleY        uint16 = 129
	PropProbabilities uint16 = 152
	PropCenterGroup   uint16 = 395
	PropEnterChannel  uint16 = 343
	PropMaterial      uint16 = 446
	PropMaterialCtl   uint16 = 534
)

var propertyList = []PropertyDescriptor{
	{PropObjectID, "Object id", KindInt},
	{PropX, "X position", KindFloat},
	{PropY, "Y position", KindFloat},
	{PropFlipX, "Flip horizontally", KindBool},
	{PropFlipY, "Flip vertically", KindBool},
	{PropAngle, "Rotation", KindFloat},
	{PropRed, "Red", KindInt},
	{PropGreen, "Green", KindInt},
	{PropBlue, "Blue", KindInt},
	{PropDuration, "Duration / group trigger chance", KindFloat},
	{PropTouchable, "Touch triggered", KindBool},
	{12, "Secret coin id", KindInt},
	{13, "Portal preview", KindBool},
	{14, "Tint ground", KindBool},
	{15, "Using player colour 1", KindBool},
	{16, "Using player colour 2", KindBool},
	{17, "Blending enabled", KindBool},
	{PropEditorLayer1, "Editor layer 1", KindInt},
	{PropMainColour, "Main colour channel", KindColour},
	{PropDetailColour, "Detail colour channel", KindColour},
	{PropTargetColour, "Target colour channel", KindColour},
	{PropZLayer, "Z layer", KindZLayer},
	{PropZOrder, "Z order", KindInt},
	{PropMoveX, "Move units X", KindInt},
	{PropMoveY, "Move units Y", KindInt},
	{PropEasing, "Move easing", KindEasing},
	{PropText, "Base64 encoded text", KindText},
	{32, "Scale", KindFloat},
	{PropGroupParent, "Group parent", KindBool},
	{PropOpacity, "Opacity", KindFloat},
	{41, "Main HSV enabled", KindBool},
	{42, "Detail HSV enabled", KindBool},
	{43, "Main HSV", KindText},
	{44, "Detail HSV", KindText},
	{45, "Pulse fade in time", KindFloat},
	{46, "Pulse hold time", KindFloat},
	{47, "Pulse fade out time", KindFloat},
	{48, "Pulse mode", KindInt},
	{49, "Copy colour specs", KindText},
	{50, "Copy colour from channel", KindColour},
	{PropTargetGroup, "Target group id", KindGroup},
	{52, "Pulse target type", KindInt},
	{54, "Teleport portal distance", KindFloat},
	{PropActivateGroup, "Activate group", KindBool},
	{PropGroups, "Groups", KindGroupList},
	{58, "Follow player X", KindBool},
	{59, "Follow player Y", KindBool},
	{60, "Copy opacity", KindBool},
	{PropEditorLayer2, "Editor layer 2", KindInt},
	{PropSpawnable, "Spawn triggered", KindBool},
	{PropSpawnDelay, "Spawn delay", KindFloat},
	{PropDontFade, "Don't fade", KindBool},
	{65, "Pulse main colour only", KindBool},
	{66, "Pulse detail colour only", KindBool},
	{PropDontEnter, "Don't enter", KindBool},
	{68, "Rotate degrees", KindInt},
	{69, "Rotate times 360", KindInt},
	{70, "Lock object rotation", KindBool},
	{PropSecondGroup, "Secondary group id", KindGroup},
	{72, "X axis follow modifier", KindFloat},
	{73, "Y axis follow modifier", KindFloat},
	{75, "Shake strength", KindFloat},
	{76, "Animation id", KindInt},
	{77, "Count", KindInt},
	{78, "Subtract count", KindBool},
	{79, "Pickup mode", KindInt},
	{PropItem, "Target item id", KindItem},
	{81, "Hold mode", KindBool},
	{82, "Toggle mode", KindInt},
	{84, "Shake interval", KindFloat},
	{PropEasingRate, "Easing rate", KindFloat},
	{86, "Exclusive pulse mode", KindBool},
	{PropMultiTrigger, "Multi triggerable", KindBool},
	{88, "Comparison mode", KindInt},
	{89, "Dual mode", KindBool},
	{90, "Follow speed", KindFloat},
	{91, "Follow delay", KindFloat},
	{92, "Follow Y offset", KindFloat},
	{93, "Trigger on exit", KindBool},
	{94, "Dynamic block", KindBool},
	{PropSecondItem, "Second item id", KindItem},
	{96, "No glow", KindBool},
	{97, "Custom rotation speed", KindFloat},
	{98, "Disable rotation", KindBool},
	{99, "Multi activate", KindBool},
	{100, "Use target", KindBool},
	{101, "Target position axes", KindInt},
	{102, "Disable preview", KindBool},
	{103, "High detail", KindBool},
	{104, "Multi activate count", KindBool},
	{105, "Max speed", KindFloat},
	{106, "Randomize start", KindBool},
	{107, "Animation speed", KindFloat},
	{108, "Linked group id", KindInt},
	{111, "Free mode", KindBool},
	{112, "Edit free camera settings", KindBool},
	{113, "Free camera easing", KindFloat},
	{114, "Free camera padding", KindFloat},
	{115, "Target order", KindInt},
	{116, "No effects", KindBool},
	{117, "Reverse", KindBool},
	{120, "Time warp amount", KindFloat},
	{121, "No touch", KindBool},
	{PropScaleX, "X scale", KindFloat},
	{PropScaleY, "Y scale", KindFloat},
	{134, "Passable", KindBool},
	{135, "Hidden", KindBool},
	{136, "Non-stick X", KindBool},
	{137, "Ice block", KindBool},
	{138, "Controlling player 1", KindBool},
	{141, "Follow camera X movement", KindBool},
	{142, "Follow camera Y movement", KindBool},
	{143, "X movement multiplier", KindFloat},
	{144, "Y movement multiplier", KindFloat},
	{148, "Gravity", KindFloat},
	{150, "New X scale", KindFloat},
	{151, "New Y scale", KindFloat},
	{PropProbabilities, "Random probabilities list", KindProbabilities},
	{153, "Divide by value X", KindBool},
	{154, "Divide by value Y", KindBool},
	{193, "Grip slope", KindBool},
	{200, "Controlling player 2", KindBool},
	{201, "Controlling target player", KindBool},
	{279, "Area parent", KindBool},
	{284, "Single player touch", KindBool},
	{289, "Non-stick Y", KindBool},
	{PropEnterChannel, "Enter effect channel", KindInt},
	{356, "Scale stick", KindBool},
	{369, "Center effect", KindBool},
	{371, "Camera zoom", KindFloat},
	{372, "No audio scale", KindBool},
	{393, "Small step", KindBool},
	{394, "Directional move mode", KindBool},
	{PropCenterGroup, "Center group id", KindGroup},
	{396, "Directional mode distance", KindInt},
	{397, "Dynamic move", KindBool},
	{404, "Silent move", KindBool},
	{445, "Claim touch", KindBool},
	{PropMaterial, "Material id", KindInt},
	{460, "No end effects", KindBool},
	{461, "Instant end", KindBool},
	{467, "No end sound effects", KindBool},
	{476, "First item type", KindInt},
	{477, "Second item type", KindInt},
	{478, "Target item type", KindInt},
	{479, "Modifier", KindFloat},
	{480, "Left operator", KindInt},
	{481, "Right operator", KindInt},
	{482, "Compare operator", KindInt},
	{483, "Second modifier", KindFloat},
	{484, "Tolerance", KindFloat},
	{485, "Left round mode", KindInt},
	{486, "Right round mode", KindInt},
	{488, "Kerning", KindInt},
	{491, "Set persistent item", KindBool},
	{492, "Target all persistent items", KindBool},
	{493, "Reset item to 0", KindBool},
	{494, "Is timer", KindBool},
	{495, "Extra sticky", KindBool},
	{496, "Don't boost Y", KindBool},
	{507, "No particles", KindBool},
	{509, "Don't boost X", KindBool},
	{511, "Extended collision", KindBool},
	{PropMaterialCtl, "Material control id", KindInt},
	{578, "Left sign mode", KindInt},
	{579, "Right sign mode", KindInt},
	{StartPosOffset + 2, "Starting gamemode", KindInt},
	{StartPosOffset + 3, "Starting in mini mode", KindBool},
	{StartPosOffset + 4, "Starting speed", KindInt},
	{StartPosOffset + 8, "Starting in dual mode", KindBool},
	{StartPosOffset + 9, "Start position spawn group", KindInt},
	{StartPosOffset + 10, "Start position flags", KindInt},
	{StartPosOffset + 11, "Start position label", KindText},
	{StartPosOffset + 19, "Start position target order", KindInt},
	{StartPosOffset + 21, "Start position disabled", KindBool},
	{StartPosOffset + 26, "Start position target channel", KindInt},
	{StartPosOffset + 28, "Starting in mirror mode", KindBool},
	{StartPosOffset + 29, "Rotate gameplay", KindBool},
	{StartPosOffset + 31, "Reverse gameplay", KindBool},
	{StartPosOffset + 35, "Reset camera", KindBool},
}

var propertyTable = func() map[uint16]PropertyDescriptor {
	m := make(map[uint16]PropertyDescriptor, len(propertyList))
	for _, p := range propertyList {
		if _, dup := m[p.Key]; dup {
			panic(fmt.Sprintf("gdsave: duplicate property key %d", p.Key))
		}
		m[p.Key] = p
	}
	slices.SortFunc(propertyList, func(a, b PropertyDescriptor) int { return int(a.Key) - int(b.Key) })
	return m
}()

// LookupProperty returns the descriptor for key, or ErrUnknownKey.
func LookupProperty(key uint16) (PropertyDescriptor, error) {
	p, ok := propertyTable[key]
	if !ok {
		return PropertyDescriptor{}, fmt.Errorf("%w: %d", ErrUnknownKey, key)
	}
	return p, nil
}

// PropertyKind returns the declared kind of key, KindText when unknown.
func PropertyKind(key uint16) ValueKind {
	if p, ok := propertyTable[key]; ok {
		return p.Kind
	}
	return KindText
}

// Properties returns every descriptor in ascending key order.
func Properties() []PropertyDescriptor {
	return slices.Clone(propertyList)
}

// ParseKey converts a record key to its numeric form: decimal keys as is,
// two-letter prefixed keys ("kA4") offset by StartPosOffset, anything else
// UnknownKey.
func ParseKey(s string) uint16 {
	if n, err := strconv.ParseUint(s, 10, 16); err == nil {
		return uint16(n)
	}
	if len(s) > 2 && isAlpha(s[0]) && isAlpha(s[1]) {
		if n, err := strconv.ParseUint(s[2:], 10, 16); err == nil && n+StartPosOffset < uint64(UnknownKey) {
			return uint16(n + StartPosOffset)
		}
	}
	return UnknownKey
}

// CanonicalKey parses s and reports whether FormatKey gives s back. Record
// keys that fail ("zz", "kS38", "10004") are kept verbatim by ParseObject.
func CanonicalKey(s string) (uint16, bool) {
	k := ParseKey(s)
	return k, k != UnknownKey && FormatKey(k) == s
}

// FormatKey is the inverse of ParseKey for keys other than UnknownKey.
func FormatKey(key uint16) string {
	if key >= StartPosOffset {
		return "kA" + strconv.Itoa(int(key)-StartPosOffset)
	}
	return strconv.Itoa(int(key))
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
