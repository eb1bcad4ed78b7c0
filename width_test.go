package termgrid

import (
	"testing"
)

func TestIsWide(t *testing.T) {
	tests := []struct {
		name string
		r    rune
		want bool
	}{
		{"ascii letter", 'A', false},
		{"ascii digit", '7', false},
		{"ascii space", ' ', false},
		{"ascii control", '\n', false},
		{"latin accented", 'é', false},
		{"cyrillic", 'Ж', false},
		{"cjk ideograph", '中', true},
		{"cjk ideograph high", '鿿', true},
		{"cjk extension a", '㐀', true},
		{"cjk extension b", '\U00020000', true},
		{"cjk compatibility", '豈', true},
		{"hiragana", 'ひ', true},
		{"katakana", 'カ', true},
		{"hangul syllable", '한', true},
		{"hangul jamo", 'ᄀ', true},
		{"emoji face", '\U0001F600', true},
		{"misc symbol", '☀', true},
		{"dingbat", '✀', true},
		{"past dingbats", '⟀', false},
		{"box drawing", '─', false},
		{"arrow", '→', false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWide(tt.r); got != tt.want {
				t.Errorf("IsWide(%U) = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}

func TestUnicodeWidthAgreesOnCJK(t *testing.T) {
	for _, r := range []rune{'中', 'ひ', 'カ', '한'} {
		if !UnicodeWidth(r) {
			t.Errorf("UnicodeWidth(%U) = false, want true", r)
		}
	}
	if UnicodeWidth('A') {
		t.Error("UnicodeWidth('A') = true, want false")
	}
}

func TestGridWithWidthFunc(t *testing.T) {
	// A classifier that treats nothing as wide turns CJK into
	// single-cell characters.
	g := New(WithSize(10, 2), WithWidthFunc(func(r rune) bool { return false }))
	g.Write("中中")

	ch, err := g.GetChar(0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ch != '中' {
		t.Errorf("expected second ideograph in cell 1, got %q", ch)
	}
}
