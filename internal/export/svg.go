package export

import (
	"fmt"
	"strings"

	"crtsim/internal/crt"
	"crtsim/internal/geom"
	"crtsim/internal/viz"
)

const svgMargin = 20.0

// FrameToSVG renders one engine frame as a standalone SVG snapshot: grid,
// strokes with their afterglow opacity, and the beam or scanline marker
// if one is active. Colors come from the named phosphor theme.
func FrameToSVG(f crt.Frame, width, height int, theme viz.Theme) string {
	vp := geom.Viewport{W: float64(width), H: float64(height)}
	if !vp.Valid() {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, theme.Background))

	writeGrid(&sb, vp, theme)

	sb.WriteString(fmt.Sprintf(`<g fill="none" stroke="%s" stroke-width="2" stroke-linecap="round">
`, theme.Primary))
	for _, s := range f.Strokes {
		writeStroke(&sb, s, vp, theme)
	}
	sb.WriteString("</g>\n")

	if f.Scan != nil {
		left := device(geom.Point{X: 0, Y: *f.Scan}, vp)
		right := device(geom.Point{X: geom.LogicalMax, Y: *f.Scan}, vp)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2" stroke-opacity="0.8"/>
`, left.X, left.Y, right.X, right.Y, theme.Secondary))
	}

	if f.Beam != nil {
		b := device(*f.Beam, vp)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="8" fill="%s" fill-opacity="0.15"/>
<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>
`, b.X, b.Y, theme.Primary, b.X, b.Y, theme.Secondary))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func device(p geom.Point, vp geom.Viewport) geom.Point {
	return geom.ToDevice(p, vp, svgMargin)
}

func writeGrid(sb *strings.Builder, vp geom.Viewport, theme viz.Theme) {
	sb.WriteString(fmt.Sprintf(`<g stroke="%s" stroke-width="0.5" stroke-opacity="0.35" stroke-dasharray="2,4">
`, theme.Muted))
	for v := 0.0; v <= geom.LogicalMax; v += crt.GridStep {
		top := device(geom.Point{X: v, Y: 0}, vp)
		bottom := device(geom.Point{X: v, Y: geom.LogicalMax}, vp)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, top.X, top.Y, bottom.X, bottom.Y))

		left := device(geom.Point{X: 0, Y: v}, vp)
		right := device(geom.Point{X: geom.LogicalMax, Y: v}, vp)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, left.X, left.Y, right.X, right.Y))
	}
	sb.WriteString("</g>\n")
}

func writeStroke(sb *strings.Builder, s crt.Stroke, vp geom.Viewport, theme viz.Theme) {
	if len(s.Points) == 0 || s.Opacity <= 0 {
		return
	}
	if len(s.Points) == 1 {
		p := device(s.Points[0], vp)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="2.5" fill="%s" stroke="none" fill-opacity="%.3f"/>
`, p.X, p.Y, theme.Primary, s.Opacity))
		return
	}

	sb.WriteString(`<polyline points="`)
	for i, lp := range s.Points {
		d := device(lp, vp)
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(fmt.Sprintf("%.1f,%.1f", d.X, d.Y))
	}
	sb.WriteString(fmt.Sprintf(`" stroke-opacity="%.3f"`, s.Opacity))
	if s.Dashed {
		sb.WriteString(` stroke-dasharray="6,5"`)
	}
	sb.WriteString("/>\n")
}
