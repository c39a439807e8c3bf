// Package render draws traces as SVG line plots.
package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/mzhv/oscil/internal/motion"
)

const (
	background  = "#0a0a0a"
	strokeX     = "#00ff00"
	strokeV     = "#ffaf00"
	strokePhase = "#00d7ff"
)

// Line is one polyline in a plot.
type Line struct {
	Xs     []float64
	Ys     []float64
	Stroke string
}

// SVG renders lines into a shared coordinate frame with 10% padding around
// the joint bounds.
func SVG(lines []Line, width, height int) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("plot size must be positive, got %dx%d", width, height)
	}
	if len(lines) == 0 {
		return "", fmt.Errorf("nothing to plot")
	}

	first := true
	var minX, maxX, minY, maxY float64
	for _, ln := range lines {
		if len(ln.Xs) != len(ln.Ys) {
			return "", fmt.Errorf("line series lengths differ: %d vs %d", len(ln.Xs), len(ln.Ys))
		}
		if len(ln.Xs) < 2 {
			return "", fmt.Errorf("need at least 2 points per line, got %d", len(ln.Xs))
		}
		for i := range ln.Xs {
			if first {
				minX, maxX = ln.Xs[i], ln.Xs[i]
				minY, maxY = ln.Ys[i], ln.Ys[i]
				first = false
				continue
			}
			if ln.Xs[i] < minX {
				minX = ln.Xs[i]
			}
			if ln.Xs[i] > maxX {
				maxX = ln.Xs[i]
			}
			if ln.Ys[i] < minY {
				minY = ln.Ys[i]
			}
			if ln.Ys[i] > maxY {
				maxY = ln.Ys[i]
			}
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))

	for _, ln := range lines {
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, ln.Stroke))
		for i := range ln.Xs {
			px := (ln.Xs[i] - minX) / rangeX * float64(width)
			py := float64(height) - (ln.Ys[i]-minY)/rangeY*float64(height)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", px, py))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px, py))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String(), nil
}

// SeriesSVG plots position and velocity against time.
func SeriesSVG(trace *motion.Trace, width, height int) (string, error) {
	return SVG([]Line{
		{Xs: trace.Times, Ys: trace.Positions, Stroke: strokeX},
		{Xs: trace.Times, Ys: trace.Velocities, Stroke: strokeV},
	}, width, height)
}

// PhaseSVG plots the phase portrait, velocity against position.
func PhaseSVG(trace *motion.Trace, width, height int) (string, error) {
	return SVG([]Line{
		{Xs: trace.Positions, Ys: trace.Velocities, Stroke: strokePhase},
	}, width, height)
}

// WriteFile writes rendered SVG to a file.
func WriteFile(path, svg string) error {
	return os.WriteFile(path, []byte(svg), 0644)
}
