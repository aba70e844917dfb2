package analysis

import (
	"strings"

	"github.com/CodesByChris/resilience-lifecycle-dashboard/internal/solve"
)

// PhaseASCII renders the phase-plane view of a trajectory (robustness
// on x, adaptivity on y) as a rune canvas. Non-finite samples are
// skipped so a diverged tail does not blank the plot. Returns "" when
// nothing is drawable.
func PhaseASCII(tr *solve.Trajectory, width, height int) string {
	if tr == nil || tr.Len() == 0 || width < 2 || height < 2 {
		return ""
	}

	// Bounds over the finite prefix.
	n := tr.FiniteUntil()
	if n < 0 {
		n = tr.Len()
	}
	if n == 0 {
		return ""
	}

	minX, maxX := tr.Robustness[0], tr.Robustness[0]
	minY, maxY := tr.Adaptivity[0], tr.Adaptivity[0]
	for i := 1; i < n; i++ {
		x, y := tr.Robustness[i], tr.Adaptivity[i]
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
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

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for i := 0; i < n; i++ {
		col := int((tr.Robustness[i] - minX) / rangeX * float64(width-1))
		row := height - 1 - int((tr.Adaptivity[i]-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	// Axes, where they cross the visible area.
	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
