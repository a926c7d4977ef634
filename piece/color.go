package piece

// Color identifies the display color of a cell. The zero value is ColorNone,
// which marks an empty cell.
type Color uint8

const (
	ColorNone Color = iota
	ColorCyan
	ColorYellow
	ColorPurple
	ColorGreen
	ColorRed
	ColorBlue
	ColorOrange
)

// Colors lists every opaque color in declaration order.
var Colors = [...]Color{
	ColorCyan,
	ColorYellow,
	ColorPurple,
	ColorGreen,
	ColorRed,
	ColorBlue,
	ColorOrange,
}

// Opaque reports whether c is one of the seven drawable colors.
func (c Color) Opaque() bool {
	return c >= ColorCyan && c <= ColorOrange
}

func (c Color) String() string {
	switch c {
	case ColorNone:
		return "none"
	case ColorCyan:
		return "cyan"
	case ColorYellow:
		return "yellow"
	case ColorPurple:
		return "purple"
	case ColorGreen:
		return "green"
	case ColorRed:
		return "red"
	case ColorBlue:
		return "blue"
	case ColorOrange:
		return "orange"
	default:
		return "?"
	}
}
