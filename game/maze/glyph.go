package maze

// Glyphs for cells whose type overrides the connection-based track symbol.
var typeGlyphs = map[CellType]string{
	Start:    "⌂",
	Station:  "◎",
	Junction: "╋",
	Buffer:   "■",
	Tunnel:   "∩",
	Bridge:   "≡",
}

// Track glyphs keyed by the exact connection set.
var trackGlyphs = map[Direction]string{
	Left | Right: "═",
	Up | Down:    "║",
	Right | Down: "╔",
	Left | Down:  "╗",
	Right | Up:   "╚",
	Left | Up:    "╝",
	Left:         "═",
	Right:        "═",
	Up:           "║",
	Down:         "║",
}

const (
	crossingGlyph = "╬"
	blankGlyph    = "·"
)

// Glyph returns the symbol a renderer should draw for c.
func Glyph(c Cell) string {
	if g, ok := typeGlyphs[c.Type]; ok {
		return g
	}
	if c.Degree() >= 3 {
		return crossingGlyph
	}
	if g, ok := trackGlyphs[c.Connections]; ok {
		return g
	}
	return blankGlyph
}
