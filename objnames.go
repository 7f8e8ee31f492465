// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// objnames.go — display names for common object ids.

package gdsave

import "strconv"

// Object ids with dedicated constructors.
const (
	ObjDefaultBlock int32 = 1
	ObjStartPos     int32 = 31
	ObjMoveTrigger  int32 = 901
	ObjTextObject   int32 = 914
	ObjSpawnTrigger int32 = 1268
)

var objectNames = map[int32]string{
	1:    "Default block",
	2:    "Waffle block floor",
	3:    "Waffle block corner",
	4:    "Waffle block inner corner",
	5:    "Waffle block filler",
	6:    "Waffle block no bottom",
	7:    "Waffle block straight",
	8:    "Spike",
	9:    "Ground spikes",
	10:   "Normal gravity portal",
	11:   "Flipped gravity portal",
	12:   "Cube portal",
	13:   "Ship portal",
	15:   "Pulse pole tall",
	16:   "Pulse pole medium",
	17:   "Pulse pole short",
	18:   "Transparent spikes huge",
	19:   "Transparent spikes big",
	20:   "Transparent spikes medium",
	21:   "Transparent spikes small",
	22:   "No block transition object",
	23:   "Blocks from top transition object",
	24:   "Blocks from bottom transition object",
	25:   "Blocks from left transition object",
	26:   "Blocks from right transition object",
	27:   "Scale in transition object",
	28:   "Scale out transition object",
	31:   "Start pos",
	32:   "Enable player trail",
	33:   "Disable player trail",
	34:   "Solid startpos",
	35:   "Yellow pad",
	36:   "Yellow orb",
	39:   "Small spike",
	40:   "Half block default",
	41:   "Chain tall",
	45:   "Mirror portal reverse",
	46:   "Mirror portal normal",
	47:   "Ball portal",
	48:   "Transparent clouds big",
	49:   "Transparent clouds small",
	50:   "Pulse circle",
	51:   "Pulse ring",
	52:   "Pulse heart",
	53:   "Pulse diamond",
	54:   "Pulse star",
	55:   "Random direction transition object",
	56:   "Away to left transition object",
	57:   "Away to right transition object",
	58:   "Away from middle transition object",
	59:   "Away to middle transition object",
	60:   "Pulse music note",
	61:   "Ground spikes wavy",
	62:   "Wavy block floor",
	67:   "Blue pad",
	83:   "Waffle block",
	84:   "Blue orb",
	88:   "Buzzsaw big",
	89:   "Buzzsaw medium",
	98:   "Buzzsaw small",
	99:   "Size portal normal",
	101:  "Size portal small",
	111:  "UFO portal",
	140:  "Pink pad",
	141:  "Pink orb",
	200:  "Speed portal 0.5x",
	201:  "Speed portal 1x",
	202:  "Speed portal 2x",
	203:  "Speed portal 3x",
	286:  "Dual portal double",
	287:  "Dual portal single",
	899:  "Trigger Colour",
	901:  "Trigger Move",
	914:  "Text object",
	1006: "Trigger Pulse",
	1007: "Trigger Alpha",
	1049: "Trigger Toggle",
	1268: "Trigger Spawn",
	1347: "Trigger Follow",
	1520: "Trigger Shake",
	1585: "Trigger Animate",
	1611: "Trigger Count",
	1615: "Counter",
	1616: "Trigger Stop",
	1812: "Trigger On death",
	1815: "Trigger Collision",
	1816: "Collision block",
	1818: "BG effect on",
	1819: "BG effect off",
	1912: "Trigger Random",
	1913: "Trigger Camera zoom",
	1915: "Don't fade + don't enter transition object",
	1917: "Trigger Reverse gameplay",
	1932: "Trigger Player control",
	1934: "Trigger Song",
	1935: "Trigger Time warp",
	2016: "Camera guide",
	2066: "Trigger Gravity",
	2068: "Trigger Advanced random",
	2900: "Trigger Rotate gameplay",
	3600: "Trigger End",
	3606: "BG speed config",
	3608: "Trigger Spawn particle",
	3609: "Trigger Instant collision",
	3612: "MG speed config",
	3615: "Trigger Time event",
	3617: "Trigger Time control",
	3618: "Trigger Reset group",
	3619: "Trigger Item edit",
	3620: "Trigger Item compare",
	3640: "Collision state block",
	3641: "Trigger Persistent item",
	3643: "Toggle block",
	3662: "Trigger Link visible",
}

// ObjectName returns the display name of id, or "Object <id>".
func ObjectName(id int32) string {
	if n, ok := objectNames[id]; ok {
		return n
	}
	return "Object " + strconv.Itoa(int(id))
}
