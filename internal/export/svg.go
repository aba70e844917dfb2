package export

import (
	"fmt"
	"strings"

	"github.com/CodesByChris/resilience-lifecycle-dashboard/internal/solve"
)

// Line colors of the original dashboard.
const (
	ColorRobustness = "#2E5EAA"
	ColorAdaptivity = "#FBB13C"
)

type point struct{ x, y float64 }

// PhaseSVG renders the robustness/adaptivity plane as a single path.
func PhaseSVG(tr *solve.Trajectory, width, height int) string {
	pts := finitePoints(tr, func(i int) point {
		return point{tr.Robustness[i], tr.Adaptivity[i]}
	})
	var sb strings.Builder
	header(&sb, width, height)
	writePath(&sb, pts, width, height, "black")
	sb.WriteString("</svg>\n")
	return sb.String()
}

// TimeseriesSVG renders both variables against time, one path each, in
// the dashboard's colors.
func TimeseriesSVG(tr *solve.Trajectory, width, height int) string {
	rob := finitePoints(tr, func(i int) point {
		return point{tr.Times[i], tr.Robustness[i]}
	})
	ada := finitePoints(tr, func(i int) point {
		return point{tr.Times[i], tr.Adaptivity[i]}
	})

	// Shared bounds so the two curves stay comparable.
	all := append(append([]point(nil), rob...), ada...)
	minX, maxX, minY, maxY := bounds(all)

	var sb strings.Builder
	header(&sb, width, height)
	writeScaledPath(&sb, rob, width, height, minX, maxX, minY, maxY, ColorRobustness)
	writeScaledPath(&sb, ada, width, height, minX, maxX, minY, maxY, ColorAdaptivity)
	sb.WriteString("</svg>\n")
	return sb.String()
}

func finitePoints(tr *solve.Trajectory, at func(int) point) []point {
	n := tr.FiniteUntil()
	if n < 0 {
		n = tr.Len()
	}
	pts := make([]point, 0, n)
	for i := 0; i < n; i++ {
		pts = append(pts, at(i))
	}
	return pts
}

func header(sb *strings.Builder, width, height int) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, width, height, width, height)
}

func bounds(pts []point) (minX, maxX, minY, maxY float64) {
	if len(pts) == 0 {
		return 0, 1, 0, 1
	}
	minX, maxX = pts[0].x, pts[0].x
	minY, maxY = pts[0].y, pts[0].y
	for _, p := range pts {
		if p.x < minX {
			minX = p.x
		}
		if p.x > maxX {
			maxX = p.x
		}
		if p.y < minY {
			minY = p.y
		}
		if p.y > maxY {
			maxY = p.y
		}
	}
	if maxX == minX {
		maxX = minX + 1
	}
	if maxY == minY {
		maxY = minY + 1
	}
	// Padding keeps the stroke off the border.
	padX := (maxX - minX) * 0.05
	padY := (maxY - minY) * 0.05
	return minX - padX, maxX + padX, minY - padY, maxY + padY
}

func writePath(sb *strings.Builder, pts []point, width, height int, stroke string) {
	minX, maxX, minY, maxY := bounds(pts)
	writeScaledPath(sb, pts, width, height, minX, maxX, minY, maxY, stroke)
}

func writeScaledPath(sb *strings.Builder, pts []point, width, height int, minX, maxX, minY, maxY float64, stroke string) {
	if len(pts) < 2 {
		return
	}
	fmt.Fprintf(sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke)
	for i, p := range pts {
		x := (p.x - minX) / (maxX - minX) * float64(width)
		y := float64(height) - (p.y-minY)/(maxY-minY)*float64(height)
		if i == 0 {
			fmt.Fprintf(sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString("\"/>\n")
}
