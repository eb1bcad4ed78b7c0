package termgrid

import (
	"image"
	"image/color"
	"io"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ScreenshotConfig controls how the grid is rendered to an image.
type ScreenshotConfig struct {
	// Font face to use. If nil, uses basicfont.Face7x13.
	Font font.Face

	// CellWidth and CellHeight override the cell dimensions.
	// If zero, derived from font metrics.
	CellWidth  int
	CellHeight int

	// Palette overrides the 16-colour palette. If nil, uses Palette.
	Palette *[16]color.RGBA

	// ShowCursor controls whether the cursor cell is drawn inverted.
	// Default true.
	ShowCursor *bool
}

// LoadFont loads a TrueType or OpenType font from a file path.
func LoadFont(path string, size float64) (font.Face, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadFontFromReader(f, size)
}

// LoadFontFromReader loads a TrueType or OpenType font from an io.Reader.
func LoadFontFromReader(r io.Reader, size float64) (font.Face, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return LoadFontFromBytes(data, size)
}

// LoadFontFromBytes loads a TrueType or OpenType font from raw bytes.
func LoadFontFromBytes(data []byte, size float64) (font.Face, error) {
	ft, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}

	return opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Screenshot renders the grid to an RGBA image with default settings.
func (g *Grid) Screenshot() *image.RGBA {
	return g.ScreenshotWithConfig(&ScreenshotConfig{})
}

// ScreenshotWithConfig renders the visible screen to an RGBA image.
// Each cell maps to a CellWidth x CellHeight block; the base cell of a
// wide character paints the background of both its columns and draws
// the glyph across them. The cursor cell is drawn inverted.
func (g *Grid) ScreenshotWithConfig(cfg *ScreenshotConfig) *image.RGBA {
	face := cfg.Font
	if face == nil {
		face = basicfont.Face7x13
	}

	cellWidth := cfg.CellWidth
	cellHeight := cfg.CellHeight
	if cellWidth == 0 {
		adv, _ := face.GlyphAdvance('M')
		cellWidth = adv.Ceil()
		if cellWidth == 0 {
			cellWidth = 7
		}
	}
	if cellHeight == 0 {
		cellHeight = face.Metrics().Height.Ceil()
	}

	palette := cfg.Palette
	if palette == nil {
		palette = &Palette
	}

	showCursor := true
	if cfg.ShowCursor != nil {
		showCursor = *cfg.ShowCursor
	}

	imgWidth := g.width * cellWidth
	imgHeight := g.height * cellHeight
	img := image.NewRGBA(image.Rect(0, 0, imgWidth, imgHeight))

	metrics := face.Metrics()

	for row := 0; row < g.height; row++ {
		line := g.screenLine(row)
		for col := 0; col < g.width; col++ {
			ch := line.Char(col)
			attr := line.Attr(col)

			x := col * cellWidth
			y := row * cellHeight

			fg := paletteColor(palette, attr, true)
			bg := paletteColor(palette, attr, false)

			// The placeholder cell is the trailing half of a wide
			// character; its background and glyph were drawn from the
			// base cell, and painting it again would cut the glyph.
			if ch == WidePlaceholder && col > 0 && g.isWide(line.Char(col-1)) {
				continue
			}

			span := cellWidth
			if g.isWide(ch) && col+1 < g.width {
				span = cellWidth * 2
			}
			for py := 0; py < cellHeight; py++ {
				for px := 0; px < span; px++ {
					img.Set(x+px, y+py, bg)
				}
			}

			if ch == WidePlaceholder || ch == ' ' {
				continue
			}

			baseline := y + metrics.Ascent.Ceil()
			d := &font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(fg),
				Face: face,
				Dot:  fixed.P(x, baseline),
			}
			d.DrawString(string(ch))

			if attr.HasStyle(StyleUnderline) {
				underlineY := baseline + 2
				for px := 0; px < span; px++ {
					if x+px < imgWidth && underlineY < imgHeight {
						img.Set(x+px, underlineY, fg)
					}
				}
			}
		}
	}

	if showCursor {
		cursorX := g.cursor.Col() * cellWidth
		cursorY := g.cursor.Row() * cellHeight
		for py := 0; py < cellHeight; py++ {
			for px := 0; px < cellWidth; px++ {
				cx, cy := cursorX+px, cursorY+py
				if cx < imgWidth && cy < imgHeight {
					existing := img.RGBAAt(cx, cy)
					img.Set(cx, cy, color.RGBA{
						R: 255 - existing.R,
						G: 255 - existing.G,
						B: 255 - existing.B,
						A: 255,
					})
				}
			}
		}
	}

	return img
}

// paletteColor resolves one side of an attribute word against a custom
// palette, with bold brightening the standard foreground colours.
func paletteColor(palette *[16]color.RGBA, attr Attributes, fg bool) color.RGBA {
	if fg {
		idx := int(attr.Fg())
		if attr.HasStyle(StyleBold) && idx < 8 {
			idx += 8
		}
		return palette[idx]
	}
	return palette[attr.Bg()]
}
