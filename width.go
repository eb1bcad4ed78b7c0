package termgrid

import "github.com/unilibs/uniwidth"

// WidthFunc classifies a rune as double-width (true) or single-width
// (false). The grid consults it for every non-ASCII rune it places.
type WidthFunc func(r rune) bool

// wideRanges lists the inclusive code point ranges treated as
// double-width by the default classifier: the CJK ideograph blocks,
// kana, hangul, and the common emoji ranges. Sorted by start.
var wideRanges = [...]struct{ lo, hi rune }{
	{0x1100, 0x11FF},   // Hangul Jamo
	{0x2600, 0x26FF},   // Miscellaneous Symbols
	{0x2700, 0x27BF},   // Dingbats
	{0x3040, 0x309F},   // Hiragana
	{0x30A0, 0x30FF},   // Katakana
	{0x3400, 0x4DBF},   // CJK Unified Ideographs Extension A
	{0x4E00, 0x9FFF},   // CJK Unified Ideographs
	{0xAC00, 0xD7AF},   // Hangul Syllables
	{0xF900, 0xFAFF},   // CJK Compatibility Ideographs
	{0x1F300, 0x1F9FF}, // Symbols and Pictographs, Emoticons, Transport
	{0x20000, 0x2A6DF}, // CJK Unified Ideographs Extension B
}

// IsWide reports whether r occupies two terminal cells. ASCII short
// circuits before the range scan; most terminal text never reaches
// the table.
func IsWide(r rune) bool {
	if r < 128 {
		return false
	}
	for _, rg := range wideRanges {
		if r < rg.lo {
			return false
		}
		if r <= rg.hi {
			return true
		}
	}
	return false
}

// UnicodeWidth is an alternative classifier backed by UAX #11
// East-Asian width data. Pass it to WithWidthFunc when full Unicode
// width semantics matter more than the fixed block table; the two
// disagree on ranges such as U+2600-U+26FF.
func UnicodeWidth(r rune) bool {
	return uniwidth.RuneWidth(r) == 2
}
