package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/CodesByChris/resilience-lifecycle-dashboard/internal/analysis"
	"github.com/CodesByChris/resilience-lifecycle-dashboard/internal/config"
	"github.com/CodesByChris/resilience-lifecycle-dashboard/internal/export"
	"github.com/CodesByChris/resilience-lifecycle-dashboard/internal/model"
	"github.com/CodesByChris/resilience-lifecycle-dashboard/internal/solve"
	"github.com/CodesByChris/resilience-lifecycle-dashboard/internal/storage"
	"github.com/CodesByChris/resilience-lifecycle-dashboard/internal/viz"
)

var (
	dataDir    string
	configFile string
	variant    string
	stepper    string
	preset     string
	tMax       float64
	stepSize   float64
	paramFlags []string
	initR      float64
	initA      float64
	svgOut     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "resdash",
		Short: "interactive explorer for the robustness/adaptivity equation system",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, initial, st, err := buildRun(cmd)
			if err != nil {
				return err
			}
			return viz.Run(p, initial, st)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".resdash", "data directory")
	addRunFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
		cmd.Flags().StringVar(&variant, "variant", "baseline", "model variant (baseline, saturating)")
		cmd.Flags().StringVar(&stepper, "stepper", "euler", "integration scheme (euler, rk4)")
		cmd.Flags().StringVar(&preset, "preset", "", "preset parameter bundle")
		cmd.Flags().Float64Var(&tMax, "t-max", 0, "integration horizon (0 = default)")
		cmd.Flags().Float64Var(&stepSize, "step", 0, "step size (0 = default)")
		cmd.Flags().StringArrayVar(&paramFlags, "param", nil, "parameter override, e.g. --param gamma_r0=1.5")
		cmd.Flags().Float64Var(&initR, "init-r", 0, "initial robustness override")
		cmd.Flags().Float64Var(&initA, "init-a", 0, "initial adaptivity override")
	}
	addRunFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "solve once and store the trajectory",
		RunE:  runSolve,
	}
	addRunFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run as a terminal timeseries",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase-plane plot of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  phaseRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "cycle and frequency analysis of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [variant]",
		Short: "list preset parameter bundles",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "baseline"
			if len(args) > 0 {
				name = args[0]
			}
			v, err := model.ParseVariant(name)
			if err != nil {
				return err
			}
			fmt.Printf("presets for %s:\n", v)
			for _, p := range config.ListPresets(v) {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a stored run to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a stored run as SVG plots",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", ".", "output directory")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare euler and rk4 on the same parameters",
		RunE:  compareSteppers,
	}
	addRunFlags(compareCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark solve latency across horizons and step sizes",
		RunE:  benchSolve,
	}
	addRunFlags(benchCmd)

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, phaseCmd, analyzeCmd, presetsCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, compareCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildRun assembles (params, initial, stepper) from config file, preset
// and flags, flags winning.
func buildRun(cmd *cobra.Command) (*model.ParameterSet, model.State, solve.Stepper, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, model.State{}, nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("variant") || cfg.Variant == "" {
		cfg.Variant = variant
	}
	if cmd.Flags().Changed("stepper") || cfg.Stepper == "" {
		cfg.Stepper = stepper
	}
	if cmd.Flags().Changed("preset") {
		cfg.Preset = preset
	}
	if cmd.Flags().Changed("t-max") {
		cfg.TMax = tMax
	}
	if cmd.Flags().Changed("step") {
		cfg.StepSize = stepSize
	}
	if cmd.Flags().Changed("init-r") {
		r := initR
		cfg.Initial.Robustness = &r
	}
	if cmd.Flags().Changed("init-a") {
		a := initA
		cfg.Initial.Adaptivity = &a
	}
	if cfg.Params == nil {
		cfg.Params = make(map[string]float64)
	}
	for _, kv := range paramFlags {
		name, raw, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, model.State{}, nil, fmt.Errorf("malformed --param %q, want name=value", kv)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, model.State{}, nil, fmt.Errorf("malformed --param %q: %w", kv, err)
		}
		cfg.Params[name] = v
	}

	p, initial, err := cfg.Build()
	if err != nil {
		return nil, model.State{}, nil, err
	}
	st, ok := solve.NewStepper(cfg.Stepper)
	if !ok {
		return nil, model.State{}, nil, fmt.Errorf("unknown stepper: %s", cfg.Stepper)
	}
	return p, initial, st, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	p, initial, st, err := buildRun(cmd)
	if err != nil {
		return err
	}

	sv := solve.New(st)
	start := time.Now()
	tr, err := sv.Solve(p, initial)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	finite := analysis.FiniteFraction(tr)
	runID, err := store.Save(p, initial, st.Name(), tr, finite)
	if err != nil {
		return err
	}

	_, final := tr.Final()
	fmt.Printf("solved %s/%s in %v\n", p.Variant(), st.Name(), elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", tr.Len())
	fmt.Printf("finite: %.0f%%\n", 100*finite)
	if finite == 1.0 {
		fmt.Printf("final state: r=%.6f a=%.6f\n", final.R, final.A)
	}
	if period := analysis.EstimatePeriod(tr); period > 0 {
		fmt.Printf("cycle period: ~%.2f\n", period)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tVARIANT\tSTEPPER\tTIME\tT_MAX\tSTEP\tSAMPLES\tFINITE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f\t%.3f\t%d\t%.0f%%\n",
			run.ID, run.Variant, run.Stepper,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.TMax, run.StepSize, run.Samples, 100*run.FiniteFraction)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := store.LoadSamples(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s (%s/%s)\n\n", meta.ID, meta.Variant, meta.Stepper)

	n := tr.FiniteUntil()
	if n < 0 {
		n = tr.Len()
	}
	if n < 2 {
		return fmt.Errorf("nothing finite to plot")
	}

	fmt.Println(asciigraph.PlotMany(
		[][]float64{tr.Robustness[:n], tr.Adaptivity[:n]},
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Yellow),
		asciigraph.Caption("robustness (blue) / adaptivity (yellow)"),
	))
	if n < tr.Len() {
		fmt.Printf("\ntrajectory diverges past t=%.1f\n", tr.Times[n-1])
	}
	return nil
}

func phaseRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := store.LoadSamples(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("phase plane: %s\n", meta.ID)
	fmt.Printf("x: robustness, y: adaptivity\n\n")
	out := analysis.PhaseASCII(tr, 70, 22)
	if out == "" {
		return fmt.Errorf("nothing finite to plot")
	}
	fmt.Print(out)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := store.LoadSamples(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("analysis: %s\n\n", meta.ID)

	n := tr.FiniteUntil()
	if n < 0 {
		n = tr.Len()
	}
	if n < 4 {
		return fmt.Errorf("not enough finite samples")
	}

	ps := analysis.PowerSpectrum(tr.Robustness[:n])
	cut := len(ps) / 4
	if cut <= 1 {
		cut = len(ps)
	}
	plotData := ps[1:cut]
	fmt.Println(asciigraph.Plot(plotData,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (robustness)"),
	))
	fmt.Println()

	if period := analysis.DominantPeriod(tr.Robustness[:n], meta.StepSize); period > 0 {
		fmt.Printf("dominant period: %.2f time units\n", period)
	}
	if period := analysis.EstimatePeriod(tr); period > 0 {
		fmt.Printf("mean-crossing period: %.2f time units\n", period)
	} else {
		fmt.Println("no cycle detected (fixed point or divergence)")
	}
	fmt.Printf("finite fraction: %.2f\n", analysis.FiniteFraction(tr))
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	tr, err := storage.New(dataDir).LoadSamples(args[0])
	if err != nil {
		return err
	}
	return storage.WriteCSV(os.Stdout, tr)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := store.LoadSamples(args[0])
	if err != nil {
		return err
	}

	out := struct {
		*storage.RunMetadata
		Time       []float64 `json:"time"`
		Robustness []float64 `json:"robustness"`
		Adaptivity []float64 `json:"adaptivity"`
	}{meta, tr.Times, tr.Robustness, tr.Adaptivity}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	tr, err := storage.New(dataDir).LoadSamples(args[0])
	if err != nil {
		return err
	}

	tsPath := svgOut + "/" + args[0] + "_timeseries.svg"
	phPath := svgOut + "/" + args[0] + "_phase.svg"
	if err := os.WriteFile(tsPath, []byte(export.TimeseriesSVG(tr, 500, 300)), 0644); err != nil {
		return err
	}
	if err := os.WriteFile(phPath, []byte(export.PhaseSVG(tr, 500, 500)), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\nwrote %s\n", tsPath, phPath)
	return nil
}

func compareSteppers(cmd *cobra.Command, args []string) error {
	p, initial, _, err := buildRun(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("comparing steppers (%s, t_max=%.1f, step=%.3f)\n\n", p.Variant(), p.TMax, p.StepSize)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEPPER\tFINAL_R\tFINAL_A\tFINITE\tTIME")

	for _, st := range []solve.Stepper{solve.NewEuler(), solve.NewRK4()} {
		start := time.Now()
		tr, err := solve.New(st).Solve(p, initial)
		elapsed := time.Since(start)
		if err != nil {
			return err
		}
		_, final := tr.Final()
		fmt.Fprintf(w, "%s\t%.6f\t%.6f\t%.0f%%\t%v\n",
			st.Name(), final.R, final.A, 100*analysis.FiniteFraction(tr), elapsed)
	}
	return w.Flush()
}

func benchSolve(cmd *cobra.Command, args []string) error {
	p, initial, st, err := buildRun(cmd)
	if err != nil {
		return err
	}
	sv := solve.New(st)

	horizons := []float64{10, 100, 1000}
	steps := []float64{0.01, 0.1}

	fmt.Printf("solve latency (%s/%s)\n\n", p.Variant(), st.Name())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "T_MAX\tSTEP\tSAMPLES\tTIME\tSAMPLES/SEC")

	for _, h := range horizons {
		for _, s := range steps {
			q := p.Clone()
			q.TMax = h
			q.StepSize = s

			start := time.Now()
			tr, err := sv.Solve(q, initial)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)
			fmt.Fprintf(w, "%.0f\t%.3f\t%d\t%v\t%.0f\n",
				h, s, tr.Len(), elapsed, float64(tr.Len())/elapsed.Seconds())
		}
	}
	return w.Flush()
}
