package termgrid

import "image/color"

// Palette is the fixed 16-entry colour palette attribute words index
// into: 8 standard colours followed by their bright variants.
var Palette = [16]color.RGBA{
	{0, 0, 0, 255},       // Black
	{205, 49, 49, 255},   // Red
	{13, 188, 121, 255},  // Green
	{229, 229, 16, 255},  // Yellow
	{36, 114, 200, 255},  // Blue
	{188, 63, 188, 255},  // Magenta
	{17, 168, 205, 255},  // Cyan
	{229, 229, 229, 255}, // White
	{102, 102, 102, 255}, // Gray (bright black)
	{241, 76, 76, 255},   // Bright Red
	{35, 209, 139, 255},  // Bright Green
	{245, 245, 67, 255},  // Bright Yellow
	{59, 142, 234, 255},  // Bright Blue
	{214, 112, 214, 255}, // Bright Magenta
	{41, 184, 219, 255},  // Bright Cyan
	{255, 255, 255, 255}, // Bright White
}

// ResolveColor maps one side of an attribute word to a concrete RGBA
// value. Bold brightens the foreground of the standard colours, the
// common terminal treatment of SGR 1.
func ResolveColor(attrs Attributes, fg bool) color.RGBA {
	if fg {
		idx := int(attrs.Fg())
		if attrs.HasStyle(StyleBold) && idx < 8 {
			idx += 8
		}
		return Palette[idx]
	}
	return Palette[attrs.Bg()]
}
