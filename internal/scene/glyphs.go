package scene

import (
	"fmt"
	"unicode"

	"crtsim/internal/geom"
)

// Glyph strokes live on a 4-wide, 6-tall cell with y growing downward and
// the baseline at y=6. Each stroke is one open polyline; dots (like the
// tittle of '!') are single-point strokes and render as flashes in vector
// mode.
type gpt = [2]float64

var glyphStrokes = map[rune][][]gpt{
	'A': {{{0, 6}, {2, 0}, {4, 6}}, {{1, 3}, {3, 3}}},
	'B': {{{0, 6}, {0, 0}, {3, 0}, {4, 1}, {4, 2}, {3, 3}, {0, 3}}, {{3, 3}, {4, 4}, {4, 5}, {3, 6}, {0, 6}}},
	'C': {{{4, 1}, {3, 0}, {1, 0}, {0, 1}, {0, 5}, {1, 6}, {3, 6}, {4, 5}}},
	'D': {{{0, 6}, {0, 0}, {3, 0}, {4, 2}, {4, 4}, {3, 6}, {0, 6}}},
	'E': {{{4, 0}, {0, 0}, {0, 6}, {4, 6}}, {{0, 3}, {3, 3}}},
	'F': {{{4, 0}, {0, 0}, {0, 6}}, {{0, 3}, {3, 3}}},
	'G': {{{4, 1}, {3, 0}, {1, 0}, {0, 1}, {0, 5}, {1, 6}, {3, 6}, {4, 5}, {4, 3}, {2, 3}}},
	'H': {{{0, 0}, {0, 6}}, {{4, 0}, {4, 6}}, {{0, 3}, {4, 3}}},
	'I': {{{1, 0}, {3, 0}}, {{2, 0}, {2, 6}}, {{1, 6}, {3, 6}}},
	'J': {{{4, 0}, {4, 5}, {3, 6}, {1, 6}, {0, 5}}},
	'K': {{{0, 0}, {0, 6}}, {{4, 0}, {0, 3}, {4, 6}}},
	'L': {{{0, 0}, {0, 6}, {4, 6}}},
	'M': {{{0, 6}, {0, 0}, {2, 3}, {4, 0}, {4, 6}}},
	'N': {{{0, 6}, {0, 0}, {4, 6}, {4, 0}}},
	'O': {{{1, 0}, {3, 0}, {4, 1}, {4, 5}, {3, 6}, {1, 6}, {0, 5}, {0, 1}, {1, 0}}},
	'P': {{{0, 6}, {0, 0}, {3, 0}, {4, 1}, {4, 2}, {3, 3}, {0, 3}}},
	'Q': {{{1, 0}, {3, 0}, {4, 1}, {4, 5}, {3, 6}, {1, 6}, {0, 5}, {0, 1}, {1, 0}}, {{2, 4}, {4, 6}}},
	'R': {{{0, 6}, {0, 0}, {3, 0}, {4, 1}, {4, 2}, {3, 3}, {0, 3}}, {{1, 3}, {4, 6}}},
	'S': {{{4, 1}, {3, 0}, {1, 0}, {0, 1}, {0, 2}, {1, 3}, {3, 3}, {4, 4}, {4, 5}, {3, 6}, {1, 6}, {0, 5}}},
	'T': {{{0, 0}, {4, 0}}, {{2, 0}, {2, 6}}},
	'U': {{{0, 0}, {0, 5}, {1, 6}, {3, 6}, {4, 5}, {4, 0}}},
	'V': {{{0, 0}, {2, 6}, {4, 0}}},
	'W': {{{0, 0}, {1, 6}, {2, 3}, {3, 6}, {4, 0}}},
	'X': {{{0, 0}, {4, 6}}, {{4, 0}, {0, 6}}},
	'Y': {{{0, 0}, {2, 3}, {4, 0}}, {{2, 3}, {2, 6}}},
	'Z': {{{0, 0}, {4, 0}, {0, 6}, {4, 6}}},
	'0': {{{1, 0}, {3, 0}, {4, 1}, {4, 5}, {3, 6}, {1, 6}, {0, 5}, {0, 1}, {1, 0}}, {{3, 1}, {1, 5}}},
	'1': {{{1, 1}, {2, 0}, {2, 6}}, {{1, 6}, {3, 6}}},
	'2': {{{0, 1}, {1, 0}, {3, 0}, {4, 1}, {4, 2}, {0, 6}, {4, 6}}},
	'3': {{{0, 0}, {3, 0}, {4, 1}, {4, 2}, {3, 3}, {1, 3}}, {{3, 3}, {4, 4}, {4, 5}, {3, 6}, {0, 6}}},
	'4': {{{3, 6}, {3, 0}, {0, 4}, {4, 4}}},
	'5': {{{4, 0}, {0, 0}, {0, 3}, {3, 3}, {4, 4}, {4, 5}, {3, 6}, {0, 6}}},
	'6': {{{3, 0}, {1, 0}, {0, 2}, {0, 5}, {1, 6}, {3, 6}, {4, 5}, {4, 4}, {3, 3}, {0, 3}}},
	'7': {{{0, 0}, {4, 0}, {1, 6}}},
	'8': {{{1, 0}, {3, 0}, {4, 1}, {4, 2}, {3, 3}, {1, 3}, {0, 2}, {0, 1}, {1, 0}}, {{1, 3}, {0, 4}, {0, 5}, {1, 6}, {3, 6}, {4, 5}, {4, 4}, {3, 3}}},
	'9': {{{1, 6}, {3, 6}, {4, 4}, {4, 1}, {3, 0}, {1, 0}, {0, 1}, {0, 2}, {1, 3}, {4, 3}}},
	'.': {{{2, 6}}},
	'-': {{{1, 3}, {3, 3}}},
	'!': {{{2, 0}, {2, 4}}, {{2, 6}}},
	'?': {{{0, 1}, {1, 0}, {3, 0}, {4, 1}, {4, 2}, {2, 3}, {2, 4}}, {{2, 6}}},
	':': {{{2, 2}}, {{2, 5}}},
}

// Glyphs is the built-in glyph generator: a line-segment vector font.
// spacing is the per-character advance in logical units; the glyph body
// fills four fifths of it. Runes without a glyph are skipped silently,
// spaces only advance the pen.
func Glyphs(text string, baselineY, startX, spacing float64) ([]geom.Shape, error) {
	if spacing <= 0 {
		return nil, fmt.Errorf("glyphs: spacing must be positive, got %g", spacing)
	}
	scale := spacing / 5.0
	x := startX
	var shapes []geom.Shape
	for i, r := range text {
		if r == ' ' {
			x += spacing
			continue
		}
		strokes, ok := glyphStrokes[unicode.ToUpper(r)]
		if !ok {
			x += spacing
			continue
		}
		for j, st := range strokes {
			pts := make([]geom.Point, len(st))
			for k, c := range st {
				pts[k] = geom.Point{
					X: x + c[0]*scale,
					Y: baselineY + (c[1]-6)*scale,
				}
			}
			shapes = append(shapes, geom.Shape{
				ID:     fmt.Sprintf("glyph-%d-%d", i, j),
				Points: pts,
			})
		}
		x += spacing
	}
	return shapes, nil
}
