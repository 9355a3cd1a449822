// Package catalog holds the static lookup tables used to render boards for
// people: object type names, job icon ids and the in-game color palette.
package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/wtw0212/ff14-stratboard-decode/pkg/stgy"
)

var typeNames = map[uint16]string{
	0x01: "Line AOE", 0x04: "Checkered Circle", 0x08: "Checkered Square",
	0x09: "General Marker", 0x0A: "Circle AOE", 0x0B: "Fan AOE", 0x0C: "Line",
	0x0D: "Gaze", 0x0E: "Stack", 0x0F: "Line Stack", 0x10: "Proximity",
	0x11: "Donut AOE", 0x12: "Gladiator", 0x1B: "Paladin", 0x1D: "Warrior",
	0x20: "White Mage", 0x23: "Scholar", 0x26: "Dark Knight", 0x27: "Astrologian",
	0x2B: "Gunbreaker", 0x2E: "Sage", 0x2F: "Tank", 0x32: "Healer", 0x35: "DPS",
	0x3C: "Small Enemy", 0x3E: "Medium Enemy", 0x40: "Large Enemy",
	0x41: "Attack 1", 0x42: "Attack 2", 0x43: "Attack 3", 0x44: "Attack 4",
	0x45: "Attack 5", 0x46: "Bind 1", 0x47: "Bind 2", 0x48: "Bind 3",
	0x4F: "Waymark A", 0x50: "Waymark B", 0x51: "Waymark C", 0x52: "Waymark D",
	0x53: "Waymark 1", 0x54: "Waymark 2", 0x55: "Waymark 3", 0x56: "Waymark 4",
	0x57: "Circle Sign", 0x58: "X Sign", 0x59: "Triangle Sign", 0x5A: "Square Sign",
	0x5E: "Up Arrow", 0x64: "Text", 0x67: "Rotate",
	0x6A: "Stack Multi", 0x6B: "Proximity Player", 0x6C: "Tankbuster",
	0x6D: "Radial KB", 0x6E: "Linear KB", 0x6F: "Tower", 0x70: "Target",
	0x71: "Enhancement", 0x72: "Enfeeblement", 0x73: "Attack 6", 0x74: "Attack 7",
	0x75: "Attack 8", 0x7C: "Grey Circle", 0x7D: "Grey Square",
	0x7E: "Moving AOE", 0x7F: "1P AOE", 0x80: "2P AOE", 0x81: "3P AOE", 0x82: "4P AOE",
	0x83: "Red Lock", 0x84: "Blue Lock", 0x85: "Purple Lock", 0x86: "Green Lock",
	0x87: "HL Circle", 0x88: "HL X", 0x89: "HL Square", 0x8A: "HL Triangle",
	0x8B: "Rotate CW", 0x8C: "Rotate CCW",
}

// Job and role icon ids, keyed by upper-case name with underscores.
var typeIDs = map[string]uint16{
	"GLADIATOR": 18, "PUGILIST": 19, "MARAUDER": 20, "LANCER": 21, "ARCHER": 22,
	"CONJURER": 23, "THAUMATURGE": 24, "ARCANIST": 25, "ROGUE": 26,
	"PALADIN": 27, "MONK": 28, "WARRIOR": 29, "DRAGOON": 30, "BARD": 31,
	"WHITE_MAGE": 32, "BLACK_MAGE": 33, "SUMMONER": 34, "SCHOLAR": 35, "NINJA": 36,
	"MACHINIST": 37, "DARK_KNIGHT": 38, "ASTROLOGIAN": 39, "SAMURAI": 40,
	"RED_MAGE": 41, "BLUE_MAGE": 42, "GUNBREAKER": 43, "DANCER": 44, "REAPER": 45,
	"SAGE": 46, "VIPER": 101, "PICTOMANCER": 102,
	"TANK": 47, "TANK_1": 48, "TANK_2": 49,
	"HEALER": 50, "HEALER_1": 51, "HEALER_2": 52,
	"DPS": 53, "DPS_1": 54, "DPS_2": 55, "DPS_3": 56, "DPS_4": 57,
	"MELEE_DPS": 118, "RANGED_DPS": 119, "PHYSICAL_RANGED_DPS": 120, "MAGICAL_RANGED_DPS": 121,
	"PURE_HEALER": 122, "BARRIER_HEALER": 123,
	"TEXT": 0x64,
}

// TypeName returns the display name of a type id.
func TypeName(id uint16) string {
	if name, ok := typeNames[id]; ok {
		return name
	}
	return fmt.Sprintf("Type 0x%02x", id)
}

// LookupType resolves a job or role name such as "white mage" or a numeric
// id ("0x2F", "47").
func LookupType(name string) (uint16, error) {
	key := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
	if id, ok := typeIDs[key]; ok {
		return id, nil
	}
	if n, err := strconv.ParseUint(strings.TrimSpace(name), 0, 16); err == nil {
		return uint16(n), nil
	}
	return 0, fmt.Errorf("unknown object type %q", name)
}

// TypeNames lists the known job and role names, sorted.
func TypeNames() []string {
	names := make([]string, 0, len(typeIDs))
	for name := range typeIDs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Palette dimensions.
const (
	PaletteColumns = 8
	PaletteRows    = 7
)

// palette is indexed [row][column]; row 0 is the lightest.
var palette = [PaletteRows][PaletteColumns]stgy.Color{
	{rgb(255, 255, 255), rgb(255, 193, 203), rgb(255, 224, 208), rgb(255, 248, 181), rgb(232, 253, 224), rgb(229, 253, 251), rgb(156, 203, 235), rgb(255, 221, 255)},
	{rgb(247, 247, 249), rgb(255, 18, 45), rgb(255, 136, 26), rgb(254, 255, 5), rgb(0, 238, 0), rgb(0, 237, 213), rgb(1, 0, 253), rgb(255, 17, 255)},
	{rgb(222, 222, 225), rgb(255, 87, 107), rgb(255, 172, 121), rgb(255, 255, 180), rgb(126, 247, 0), rgb(186, 250, 231), rgb(0, 118, 233), rgb(224, 103, 167)},
	{rgb(214, 214, 217), rgb(255, 134, 150), rgb(255, 207, 183), rgb(240, 202, 118), rgb(127, 239, 77), rgb(102, 220, 235), rgb(148, 188, 250), rgb(255, 146, 216)},
	{rgb(204, 204, 207), rgb(255, 195, 205), rgb(255, 113, 29), rgb(240, 202, 118), rgb(212, 252, 122), rgb(171, 216, 223), rgb(127, 127, 254), rgb(255, 189, 234)},
	{rgb(189, 189, 191), rgb(214, 192, 198), rgb(214, 110, 128), rgb(204, 204, 105), rgb(171, 211, 67), rgb(176, 225, 223), rgb(178, 140, 255), rgb(222, 170, 198)},
	{rgb(166, 166, 168), rgb(196, 163, 169), rgb(214, 191, 178), rgb(199, 192, 162), rgb(56, 217, 151), rgb(59, 217, 202), rgb(222, 193, 250), rgb(222, 141, 247)},
}

func rgb(r, g, b uint8) stgy.Color {
	return stgy.Color{R: r, G: g, B: b}
}

// PaletteColor returns the palette entry at column x, row y.
func PaletteColor(x, y int) (stgy.Color, bool) {
	if x < 0 || x >= PaletteColumns || y < 0 || y >= PaletteRows {
		return stgy.Color{}, false
	}
	return palette[y][x], true
}

// ParseColor accepts "x,y" palette coordinates or "r,g,b" components.
func ParseColor(spec string) (stgy.Color, error) {
	parts := strings.Split(spec, ",")
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return stgy.Color{}, fmt.Errorf("color %q: %w", spec, err)
		}
		nums[i] = n
	}

	switch len(nums) {
	case 2:
		c, ok := PaletteColor(nums[0], nums[1])
		if !ok {
			return stgy.Color{}, fmt.Errorf("color %q: outside the %dx%d palette", spec, PaletteColumns, PaletteRows)
		}
		return c, nil
	case 3:
		for _, n := range nums {
			if n < 0 || n > 255 {
				return stgy.Color{}, fmt.Errorf("color %q: component %d outside 0..255", spec, n)
			}
		}
		return stgy.Color{R: uint8(nums[0]), G: uint8(nums[1]), B: uint8(nums[2])}, nil
	}
	return stgy.Color{}, fmt.Errorf("color %q: want \"x,y\" or \"r,g,b\"", spec)
}
