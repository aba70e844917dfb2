package viz

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/CodesByChris/resilience-lifecycle-dashboard/internal/analysis"
	"github.com/CodesByChris/resilience-lifecycle-dashboard/internal/config"
	"github.com/CodesByChris/resilience-lifecycle-dashboard/internal/export"
	"github.com/CodesByChris/resilience-lifecycle-dashboard/internal/model"
	"github.com/CodesByChris/resilience-lifecycle-dashboard/internal/solve"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(11)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).Padding(0, 2)
	chartStyle = lipgloss.NewStyle().Padding(0, 1)
)

// nudge step per key press; the dashboard sliders all move in 0.01
// increments, the integration controls are coarser.
func nudgeStep(key string) float64 {
	switch key {
	case "t_max":
		return 1.0
	default:
		return 0.01
	}
}

// Explorer is the interactive dashboard: a parameter list on the left,
// the phase plane and timeseries on the right. Every parameter change
// triggers a complete fresh solve of the full horizon; no solver state
// survives between keystrokes.
type Explorer struct {
	params  *model.ParameterSet
	initial model.State
	solver  *solve.Solver

	traj      *solve.Trajectory
	solveErr  error
	solveTime time.Duration

	keys      []string
	cursor    int
	editing   bool
	editBuf   string
	statusMsg string

	presetIdx int

	width, height int
	showHelp      bool
}

// NewExplorer solves once with the given configuration and returns the
// ready-to-run UI model.
func NewExplorer(p *model.ParameterSet, initial model.State, stepper solve.Stepper) Explorer {
	e := Explorer{
		params:    p,
		initial:   initial,
		solver:    solve.New(stepper),
		keys:      p.Keys(),
		presetIdx: -1,
		width:     100,
		height:    30,
	}
	e.resolve()
	return e
}

// Run starts the explorer as a bubbletea program.
func Run(p *model.ParameterSet, initial model.State, stepper solve.Stepper) error {
	prog := tea.NewProgram(NewExplorer(p, initial, stepper))
	_, err := prog.Run()
	return err
}

// resolve re-integrates the whole horizon from the fixed initial state.
func (e *Explorer) resolve() {
	start := time.Now()
	e.traj, e.solveErr = e.solver.Solve(e.params, e.initial)
	e.solveTime = time.Since(start)
}

func (e Explorer) Init() tea.Cmd { return nil }

func (e Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		e.width, e.height = msg.Width, msg.Height
		return e, nil
	case tea.KeyMsg:
		return e.handleKey(msg)
	}
	return e, nil
}

func (e Explorer) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if e.editing {
		return e.handleEditKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return e, tea.Quit
	case "up", "k":
		if e.cursor > 0 {
			e.cursor--
		}
	case "down", "j":
		if e.cursor < len(e.keys)-1 {
			e.cursor++
		}
	case "left", "h":
		e.nudge(-1)
	case "right", "l":
		e.nudge(1)
	case "shift+left", "H":
		e.nudge(-10)
	case "shift+right", "L":
		e.nudge(10)
	case "enter":
		key := e.keys[e.cursor]
		v, _ := e.params.Get(key)
		e.editing = true
		e.editBuf = fmt.Sprintf("%g", v)
	case "p":
		e.cyclePreset()
	case "v":
		e.switchVariant()
	case "s":
		e.switchStepper()
	case "e":
		e.exportSVG()
	case "?":
		e.showHelp = !e.showHelp
	}
	return e, nil
}

func (e Explorer) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		var v float64
		if _, err := fmt.Sscanf(e.editBuf, "%g", &v); err == nil {
			if err := e.params.Set(e.keys[e.cursor], v); err != nil {
				e.statusMsg = err.Error()
			} else {
				e.resolve()
			}
		}
		e.editing, e.editBuf = false, ""
	case "esc", "escape":
		e.editing, e.editBuf = false, ""
	case "backspace":
		if len(e.editBuf) > 0 {
			e.editBuf = e.editBuf[:len(e.editBuf)-1]
		}
	default:
		s := msg.String()
		if len(s) == 1 && strings.ContainsAny(s, "0123456789.-e+") {
			e.editBuf += s
		}
	}
	return e, nil
}

func (e *Explorer) nudge(mult float64) {
	key := e.keys[e.cursor]
	v, err := e.params.Get(key)
	if err != nil {
		return
	}
	if err := e.params.Set(key, v+mult*nudgeStep(key)); err != nil {
		e.statusMsg = err.Error()
		return
	}
	e.statusMsg = ""
	e.resolve()
}

func (e *Explorer) cyclePreset() {
	names := config.ListPresets(e.params.Variant())
	if len(names) == 0 {
		return
	}
	e.presetIdx = (e.presetIdx + 1) % len(names)
	preset := config.GetPreset(e.params.Variant(), names[e.presetIdx])
	if err := e.params.ApplyPreset(preset); err != nil {
		e.statusMsg = err.Error()
		return
	}
	e.statusMsg = "preset: " + names[e.presetIdx]
	e.resolve()
}

func (e *Explorer) switchVariant() {
	var p *model.ParameterSet
	if e.params.Variant() == model.Baseline {
		p = model.NewSaturating()
	} else {
		p = model.NewBaseline()
	}
	p.TMax = e.params.TMax
	p.StepSize = e.params.StepSize
	e.params = p
	e.keys = p.Keys()
	if e.cursor >= len(e.keys) {
		e.cursor = len(e.keys) - 1
	}
	e.presetIdx = -1
	e.statusMsg = "variant: " + p.Variant().String()
	e.resolve()
}

func (e *Explorer) switchStepper() {
	if e.solver.Stepper().Name() == "euler" {
		e.solver = solve.New(solve.NewRK4())
	} else {
		e.solver = solve.New(solve.NewEuler())
	}
	e.statusMsg = "stepper: " + e.solver.Stepper().Name()
	e.resolve()
}

func (e *Explorer) exportSVG() {
	if e.traj == nil {
		return
	}
	if err := os.WriteFile("dashboard_timeseries.svg", []byte(export.TimeseriesSVG(e.traj, 500, 300)), 0644); err != nil {
		e.statusMsg = err.Error()
		return
	}
	if err := os.WriteFile("dashboard_phase.svg", []byte(export.PhaseSVG(e.traj, 500, 500)), 0644); err != nil {
		e.statusMsg = err.Error()
		return
	}
	e.statusMsg = "wrote dashboard_timeseries.svg, dashboard_phase.svg"
}

func (e Explorer) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("resilience dashboard · %s · %s",
		e.params.Variant(), e.solver.Stepper().Name())))
	b.WriteString("\n")

	left := panelStyle.Render(e.paramPanel())
	right := chartStyle.Render(e.chartPanel())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	b.WriteString("\n")

	if e.statusMsg != "" {
		b.WriteString(dimStyle.Render(e.statusMsg))
		b.WriteString("\n")
	}
	if e.showHelp {
		b.WriteString(dimStyle.Render("↑/↓ select · ←/→ adjust (shift: coarse) · enter: type value · p: preset · v: variant · s: stepper · e: svg · q: quit"))
	} else {
		b.WriteString(dimStyle.Render("? for keys"))
	}
	return b.String()
}

func (e Explorer) paramPanel() string {
	var b strings.Builder
	for i, key := range e.keys {
		v, _ := e.params.Get(key)
		line := fmt.Sprintf("%s %s", labelStyle.Render(key), valueStyle.Render(fmt.Sprintf("%8.3f", v)))
		if i == e.cursor {
			if e.editing {
				line = fmt.Sprintf("%s %s", labelStyle.Render(key), activeStyle.Render(e.editBuf+"▌"))
			} else {
				line = activeStyle.Render(fmt.Sprintf("%-11s %8.3f ◂▸", key, v))
			}
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (e Explorer) chartPanel() string {
	if e.solveErr != nil {
		return warnStyle.Render("solve failed: " + e.solveErr.Error())
	}
	if e.traj == nil || e.traj.Len() == 0 {
		return dimStyle.Render("no data")
	}

	chartWidth := e.width - 40
	if chartWidth < 30 {
		chartWidth = 30
	}

	// Plot only the finite prefix; a diverged tail would swallow the
	// autoscaling.
	n := e.traj.FiniteUntil()
	diverged := n >= 0
	if !diverged {
		n = e.traj.Len()
	}

	var b strings.Builder
	if n >= 2 {
		series := [][]float64{e.traj.Robustness[:n], e.traj.Adaptivity[:n]}
		b.WriteString(asciigraph.PlotMany(series,
			asciigraph.Height(10),
			asciigraph.Width(chartWidth),
			asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Yellow),
			asciigraph.Caption("robustness (blue) / adaptivity (yellow) vs time"),
		))
		b.WriteString("\n\n")
		b.WriteString(analysis.PhaseASCII(e.traj, chartWidth, 12))
	}
	if diverged {
		t := 0.0
		if n > 0 {
			t = e.traj.Times[n-1]
		}
		b.WriteString(warnStyle.Render(fmt.Sprintf("⚠ trajectory diverges past t=%.1f", t)))
		b.WriteString("\n")
	}

	period := analysis.EstimatePeriod(e.traj)
	stats := fmt.Sprintf("samples %d · solve %s · finite %.0f%%",
		e.traj.Len(), e.solveTime.Round(time.Microsecond), 100*analysis.FiniteFraction(e.traj))
	if period > 0 {
		stats += fmt.Sprintf(" · cycle ≈ %.1f", period)
	}
	b.WriteString(dimStyle.Render(stats))
	return b.String()
}
