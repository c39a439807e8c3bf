package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/mzhv/oscil/internal/analysis"
	"github.com/mzhv/oscil/internal/config"
	"github.com/mzhv/oscil/internal/force"
	"github.com/mzhv/oscil/internal/logging"
	"github.com/mzhv/oscil/internal/metrics"
	"github.com/mzhv/oscil/internal/motion"
	"github.com/mzhv/oscil/internal/render"
	"github.com/mzhv/oscil/internal/scenario"
	"github.com/mzhv/oscil/internal/store"
	"github.com/mzhv/oscil/internal/tui"
)

var (
	dataDir  string
	logLevel string
	logger   *slog.Logger

	horizon float64
	step    float64
	x0      float64
	v0      float64

	forceKind string
	springK   float64
	accel     float64
	driveAmp  float64
	driveFreq float64
	gravity   float64
	pendLen   float64
	wellB     float64

	configFile string
	preset     string

	svgOut    string
	svgPhase  bool
	svgWidth  int
	svgHeight int

	tolerance float64

	sweepFrom  float64
	sweepTo    float64
	sweepSteps int

	mcTrials  int
	mcPerturb float64
	mcBound   float64
	mcSeed    int64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "oscil",
		Short: "fixed-step propagation of second-order scalar systems",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.New(logging.ParseLevel(logLevel))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".oscil", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a propagation and store the trace",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPropagation,
	}
	addSetupFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase portrait of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render a stored run to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  renderSVG,
	}
	svgCmd.Flags().StringVar(&svgOut, "out", "", "output path (default <run_id>.svg)")
	svgCmd.Flags().BoolVar(&svgPhase, "phase", false, "render the phase portrait instead of time series")
	svgCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	svgCmd.Flags().IntVar(&svgHeight, "height", 400, "image height")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [scenario] [h1] [h2] ...",
		Short: "compare step sizes on the same scenario",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareSteps,
	}

	tuneCmd := &cobra.Command{
		Use:   "tune [scenario] [h1] [h2] ...",
		Short: "find the largest step size within tolerance",
		Args:  cobra.MinimumNArgs(2),
		RunE:  tuneScenario,
	}
	tuneCmd.Flags().Float64Var(&tolerance, "tol", 1e-2, "terminal error tolerance")

	benchCmd := &cobra.Command{
		Use:   "bench [scenario]",
		Short: "benchmark propagation throughput",
		Args:  cobra.ExactArgs(1),
		RunE:  benchScenario,
	}

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "watch a propagation live",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSetupFlags(liveCmd)
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list builtin scenarios",
		RunE:  listScenarios,
	}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "check every scenario against its closed form",
		RunE:  validateScenarios,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [force] [param]",
		Short: "sweep one force parameter and chart the response",
		Args:  cobra.ExactArgs(2),
		RunE:  sweepParam,
	}
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0.5, "first parameter value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 2.0, "last parameter value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 16, "number of parameter values")
	sweepCmd.Flags().Float64Var(&horizon, "time", config.DefaultTMax, "horizon")
	sweepCmd.Flags().Float64Var(&step, "step", config.DefaultH, "step size")
	sweepCmd.Flags().Float64Var(&x0, "x0", 1.0, "initial position")
	sweepCmd.Flags().Float64Var(&v0, "v0", 0.0, "initial velocity")

	batchCmd := &cobra.Command{
		Use:   "batch [plan.yaml]",
		Short: "run a scripted plan of propagations",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	trialsCmd := &cobra.Command{
		Use:   "trials [scenario]",
		Short: "monte carlo over perturbed initial conditions",
		Args:  cobra.ExactArgs(1),
		RunE:  runTrials,
	}
	trialsCmd.Flags().IntVar(&mcTrials, "n", 100, "number of trials")
	trialsCmd.Flags().Float64Var(&mcPerturb, "perturb", 0.1, "half-width of the initial condition jitter")
	trialsCmd.Flags().Float64Var(&mcBound, "bound", 10.0, "position magnitude that counts as an escape")
	trialsCmd.Flags().Int64Var(&mcSeed, "seed", 0, "random seed (0 = from clock)")

	presetsCmd := &cobra.Command{
		Use:   "presets [family]",
		Short: "list available presets for a force family",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for family: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, phaseCmd, svgCmd, exportCmd,
		exportJSONCmd, exportCSVCmd, analyzeCmd, compareCmd, tuneCmd, benchCmd,
		liveCmd, scenariosCmd, validateCmd, sweepCmd, batchCmd, trialsCmd,
		presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSetupFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&horizon, "time", config.DefaultTMax, "horizon")
	cmd.Flags().Float64Var(&step, "step", config.DefaultH, "step size")
	cmd.Flags().Float64Var(&x0, "x0", 1.0, "initial position")
	cmd.Flags().Float64Var(&v0, "v0", 0.0, "initial velocity")
	cmd.Flags().StringVar(&forceKind, "force", "", "force kind (zero, uniform, hooke, sine, pendulum, doublewell)")
	cmd.Flags().Float64Var(&springK, "k", 1.0, "spring stiffness (hooke)")
	cmd.Flags().Float64Var(&accel, "a", 1.0, "acceleration (uniform) or well depth (doublewell)")
	cmd.Flags().Float64Var(&driveAmp, "amp", 1.0, "drive amplitude (sine)")
	cmd.Flags().Float64Var(&driveFreq, "omega", 1.0, "drive frequency (sine)")
	cmd.Flags().Float64Var(&gravity, "gravity", 9.81, "gravity (pendulum)")
	cmd.Flags().Float64Var(&pendLen, "length", 1.0, "length (pendulum)")
	cmd.Flags().Float64Var(&wellB, "b", 1.0, "well separation (doublewell)")
}

// forceParamsFromFlags collects only the parameters the user actually set,
// so Build keeps its own defaults for the rest.
func forceParamsFromFlags(cmd *cobra.Command) map[string]float64 {
	params := make(map[string]float64)
	set := func(flag, key string, val float64) {
		if cmd.Flags().Changed(flag) {
			params[key] = val
		}
	}
	set("k", "k", springK)
	set("a", "a", accel)
	set("amp", "amp", driveAmp)
	set("omega", "omega", driveFreq)
	set("gravity", "gravity", gravity)
	set("length", "length", pendLen)
	set("b", "b", wellB)
	return params
}

// resolveSetup builds the run setup from, in increasing precedence: the
// defaults, a scenario argument, a preset, a config file, and the flags the
// user changed.
func resolveSetup(cmd *cobra.Command, args []string) (string, force.Field, motion.Params, error) {
	base := config.DefaultConfig()
	name := base.Force.Kind
	params := base.Params()
	fld, err := base.Field()
	if err != nil {
		return "", nil, motion.Params{}, err
	}

	if len(args) == 1 {
		s, err := scenario.NewRegistry().Get(args[0])
		if err != nil {
			return "", nil, motion.Params{}, err
		}
		name = s.Name
		fld = s.Field
		params = s.Params
	}

	if preset != "" {
		cfg := config.GetPreset(name, preset)
		if cfg == nil {
			return "", nil, motion.Params{}, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(name))
		}
		fld, err = cfg.Field()
		if err != nil {
			return "", nil, motion.Params{}, err
		}
		params = cfg.Params()
	}

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return "", nil, motion.Params{}, fmt.Errorf("failed to load config: %w", err)
		}
		if !cmd.Flags().Changed("force") {
			fld, err = cfg.Field()
			if err != nil {
				return "", nil, motion.Params{}, err
			}
			name = cfg.Force.Kind
		}
		if !cmd.Flags().Changed("time") {
			params.TMax = cfg.TMax
		}
		if !cmd.Flags().Changed("step") {
			params.H = cfg.H
		}
		if !cmd.Flags().Changed("x0") {
			params.X0 = cfg.X0
		}
		if !cmd.Flags().Changed("v0") {
			params.V0 = cfg.V0
		}
	}

	if cmd.Flags().Changed("force") {
		fld, err = force.Build(forceKind, forceParamsFromFlags(cmd))
		if err != nil {
			return "", nil, motion.Params{}, err
		}
		name = forceKind
	}

	if cmd.Flags().Changed("time") {
		params.TMax = horizon
	}
	if cmd.Flags().Changed("step") {
		params.H = step
	}
	if cmd.Flags().Changed("x0") {
		params.X0 = x0
	}
	if cmd.Flags().Changed("v0") {
		params.V0 = v0
	}

	return name, fld, params, nil
}

func runPropagation(cmd *cobra.Command, args []string) error {
	name, fld, params, err := resolveSetup(cmd, args)
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ext := metrics.NewExtremes()
	prop := motion.New(fld.Accel)
	prop.AddMetric(ext)

	var drift *metrics.EnergyDrift
	if c, ok := fld.(force.Conservative); ok {
		drift = metrics.NewEnergyDrift(c.Energy)
		prop.AddMetric(drift)
	}

	rec := motion.NewRecorder(0)
	prop.AddObserver(rec)

	fmt.Printf("running %s...\n", name)
	start := time.Now()

	res, err := prop.Run(params)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if !res.IsFinite() {
		return fmt.Errorf("%w after %d steps", motion.ErrNonFinite, res.Steps)
	}

	metricVals := map[string]float64{
		"peak_x": ext.Value(),
		"peak_v": ext.PeakSpeed(),
	}
	if drift != nil {
		metricVals["energy_drift"] = drift.Value()
	}

	runID, err := st.Save(name, params, res, rec.Trace(), metricVals)
	if err != nil {
		return err
	}
	logger.Debug("run stored", "id", runID, "elapsed", elapsed)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", res.Steps)
	fmt.Printf("final: x = %.6f, v = %.6f\n", res.X, res.V)
	fmt.Println("\nmetrics:")
	for mname, val := range metricVals {
		fmt.Printf("  %s: %.6f\n", mname, val)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tTMAX\tH\tSTEPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4g\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.TMax,
			run.H,
			run.Steps,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}
	if trace.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", trace.Len())

	for _, series := range []struct {
		data    []float64
		caption string
	}{
		{trace.Positions, "position"},
		{trace.Velocities, "velocity"},
	} {
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}
	if trace.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("phase portrait: %s\n", meta.ID)
	fmt.Printf("x-axis: position, y-axis: velocity\n\n")

	xData, yData := trace.Positions, trace.Velocities

	xMin, xMax := analysis.Bounds(xData)
	yMin, yMax := analysis.Bounds(yData)
	xRange := xMax - xMin
	yRange := yMax - yMin
	if xRange == 0 {
		xRange = 1
	}
	if yRange == 0 {
		yRange = 1
	}

	const width, height = 70, 20
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for i := range xData {
		px := int(float64(width-1) * (xData[i] - xMin) / xRange)
		py := int(float64(height-1) * (yData[i] - yMin) / yRange)
		py = height - 1 - py
		if px >= 0 && px < width && py >= 0 && py < height {
			switch {
			case i < len(xData)/3:
				canvas[py][px] = '.'
			case i < 2*len(xData)/3:
				canvas[py][px] = 'o'
			default:
				canvas[py][px] = '●'
			}
		}
	}

	fmt.Printf("  %.2f ┌%s┐\n", yMax, strings.Repeat("─", width))
	for i := range canvas {
		if i == height/2 {
			fmt.Printf("  %.2f │", (yMax+yMin)/2)
		} else {
			fmt.Print("       │")
		}
		fmt.Print(string(canvas[i]))
		fmt.Println("│")
	}
	fmt.Printf("  %.2f └%s┘\n", yMin, strings.Repeat("─", width))
	fmt.Printf("       %.2f%s%.2f\n", xMin, strings.Repeat(" ", width-20), xMax)
	fmt.Println("\nLegend: . = early, o = middle, ● = late")

	return nil
}

func renderSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	var svg string
	if svgPhase {
		svg, err = render.PhaseSVG(trace, svgWidth, svgHeight)
	} else {
		svg, err = render.SeriesSVG(trace, svgWidth, svgHeight)
	}
	if err != nil {
		return err
	}

	out := svgOut
	if out == "" {
		out = runID + ".svg"
	}
	if err := render.WriteFile(out, svg); err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", out)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}
	return store.ExportJSONTo(os.Stdout, *meta, trace)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	trace, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	if trace.Len() == 0 {
		return fmt.Errorf("no data to export")
	}
	return store.WriteCSV(os.Stdout, trace)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n\n", meta.ID)

	freqs, amps, err := analysis.Spectrum(trace.Positions, meta.H)
	if err != nil {
		return err
	}

	plotData := amps
	if len(plotData) > 4 {
		plotData = plotData[:len(plotData)/4]
	}

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("amplitude spectrum (0 to %.2f hz)", freqs[len(plotData)-1])),
	)
	fmt.Println(graph)
	fmt.Println()

	dom, err := analysis.DominantFrequency(trace.Positions, meta.H)
	if err != nil {
		return err
	}
	fmt.Printf("dominant frequency: %.4f hz\n", dom)
	if dom > 0 {
		fmt.Printf("period: %.4f s\n", 1.0/dom)
	}

	return nil
}

func compareSteps(cmd *cobra.Command, args []string) error {
	s, err := scenario.NewRegistry().Get(args[0])
	if err != nil {
		return err
	}

	hs, err := parseSteps(args[1:])
	if err != nil {
		return err
	}

	var metricsFor func() []motion.Metric
	if c, ok := s.Field.(force.Conservative); ok {
		metricsFor = func() []motion.Metric {
			return []motion.Metric{metrics.NewEnergyDrift(c.Energy)}
		}
	}

	fmt.Printf("comparing step sizes on %s (tmax=%.2fs)\n\n", s.Name, s.Params.TMax)

	start := time.Now()
	runs := motion.Sweep(s.Field.Accel, s.Params, hs, metricsFor)
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "H\tSTEPS\tFINAL_X\tFINAL_V\tENERGY_DRIFT")
	for _, run := range runs {
		if run.Err != nil {
			fmt.Fprintf(w, "%.6g\terror: %v\n", run.H, run.Err)
			continue
		}
		driftCol := "-"
		if d, ok := run.Metrics["energy_drift"]; ok {
			driftCol = fmt.Sprintf("%.2e", d)
		}
		fmt.Fprintf(w, "%.6g\t%d\t%.6f\t%.6f\t%s\n",
			run.H, run.Result.Steps, run.Result.X, run.Result.V, driftCol)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	logger.Debug("sweep complete", "runs", len(runs), "elapsed", elapsed)
	return nil
}

func tuneScenario(cmd *cobra.Command, args []string) error {
	s, err := scenario.NewRegistry().Get(args[0])
	if err != nil {
		return err
	}
	if s.Exact == nil {
		return fmt.Errorf("scenario %s has no closed form to tune against", s.Name)
	}

	hs, err := parseSteps(args[1:])
	if err != nil {
		return err
	}

	best, evals, tuneErr := analysis.TuneStep(s.Field.Accel, s.Params, hs, s.Exact, tolerance)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "H\tERROR\tWITHIN_TOL")
	for _, ev := range evals {
		fmt.Fprintf(w, "%.6g\t%.3e\t%v\n", ev.H, ev.Err, ev.OK)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if tuneErr != nil {
		return tuneErr
	}
	fmt.Printf("\nlargest step within %.2g: %.6g\n", tolerance, best)
	return nil
}

func benchScenario(cmd *cobra.Command, args []string) error {
	s, err := scenario.NewRegistry().Get(args[0])
	if err != nil {
		return err
	}

	horizons := []float64{1.0, 5.0, 10.0}
	steps := []float64{0.001, 0.01, 0.1}

	fmt.Printf("benchmarking %s\n\n", s.Name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TMAX\tH\tSTEPS\tTIME\tSTEPS/SEC")

	for _, tmax := range horizons {
		for _, h := range steps {
			p := s.Params
			p.TMax = tmax
			p.H = h

			start := time.Now()
			res, err := motion.Propagate(s.Field.Accel, p)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			perSec := float64(res.Steps) / elapsed.Seconds()
			fmt.Fprintf(w, "%.1fs\t%.4g\t%d\t%v\t%.0f\n", tmax, h, res.Steps, elapsed, perSec)
		}
	}

	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	name, fld, params, err := resolveSetup(cmd, args)
	if err != nil {
		return err
	}
	if err := params.Validate(); err != nil {
		return err
	}

	m := tui.NewModel(name, fld, params)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func listScenarios(cmd *cobra.Command, args []string) error {
	reg := scenario.NewRegistry()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tABOUT\tTMAX\tH\tCLOSED_FORM")
	for _, name := range reg.Names() {
		s, err := reg.Get(name)
		if err != nil {
			return err
		}
		closed := "no"
		if s.Exact != nil {
			closed = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%.4g\t%.4g\t%s\n", s.Name, s.About, s.Params.TMax, s.Params.H, closed)
	}
	return w.Flush()
}

func validateScenarios(cmd *cobra.Command, args []string) error {
	reg := scenario.NewRegistry()

	failures := 0
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENARIO\tSTATUS\tDETAIL")

	for _, name := range reg.Names() {
		s, err := reg.Get(name)
		if err != nil {
			return err
		}

		res, err := s.Run()
		if err == nil {
			err = s.Check(res)
		}
		if err != nil {
			failures++
			fmt.Fprintf(w, "%s\tFAIL\t%v\n", name, err)
			continue
		}
		fmt.Fprintf(w, "%s\tPASS\tx = %.6f, v = %.6f after %d steps\n", name, res.X, res.V, res.Steps)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if failures > 0 {
		return fmt.Errorf("%d scenario(s) failed validation", failures)
	}
	fmt.Println("\nall scenarios within tolerance")
	return nil
}

func sweepParam(cmd *cobra.Command, args []string) error {
	kind, param := args[0], args[1]

	base := motion.Params{TMax: horizon, H: step, X0: x0, V0: v0}
	points := analysis.ParamSweep(kind, param, sweepFrom, sweepTo, sweepSteps, nil, base)
	if len(points) == 0 {
		return fmt.Errorf("empty sweep")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VALUE\tFINAL_X\tFINAL_V\tPEAK_X")
	peaks := make([]float64, 0, len(points))
	for _, pt := range points {
		if pt.Err != nil {
			return fmt.Errorf("%s = %g: %w", param, pt.Value, pt.Err)
		}
		fmt.Fprintf(w, "%.4g\t%.6f\t%.6f\t%.6f\n", pt.Value, pt.Result.X, pt.Result.V, pt.PeakX)
		peaks = append(peaks, pt.PeakX)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(peaks) > 1 {
		fmt.Println()
		graph := asciigraph.Plot(peaks,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption(fmt.Sprintf("peak |x| vs %s", param)),
		)
		fmt.Println(graph)
	}

	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	plan, err := config.LoadPlan(args[0])
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("plan: %s (%d runs)\n", plan.Name, len(plan.Runs))

	for i, run := range plan.Runs {
		var (
			name   string
			fld    force.Field
			params motion.Params
		)
		if run.Scenario != "" {
			s, err := scenario.NewRegistry().Get(run.Scenario)
			if err != nil {
				return fmt.Errorf("run %d: %w", i+1, err)
			}
			name, fld, params = s.Name, s.Field, s.Params
			if run.Force != nil {
				fld, err = force.Build(run.Force.Kind, run.Force.Params)
				if err != nil {
					return fmt.Errorf("run %d: %w", i+1, err)
				}
			}
			if run.TMax != nil {
				params.TMax = *run.TMax
			}
			if run.H != nil {
				params.H = *run.H
			}
			if run.X0 != nil {
				params.X0 = *run.X0
			}
			if run.V0 != nil {
				params.V0 = *run.V0
			}
		} else {
			cfg := run.Apply(config.DefaultConfig())
			name = cfg.Force.Kind
			params = cfg.Params()
			fld, err = cfg.Field()
			if err != nil {
				return fmt.Errorf("run %d: %w", i+1, err)
			}
		}
		if run.SaveAs != "" {
			name = run.SaveAs
		}

		fmt.Printf("running %d/%d: %s\n", i+1, len(plan.Runs), name)

		rec := motion.NewRecorder(0)
		ext := metrics.NewExtremes()
		prop := motion.New(fld.Accel)
		prop.AddObserver(rec)
		prop.AddMetric(ext)

		res, err := prop.Run(params)
		if err != nil {
			return fmt.Errorf("run %d: %w", i+1, err)
		}

		runID, err := st.Save(name, params, res, rec.Trace(), map[string]float64{
			"peak_x": ext.Value(),
			"peak_v": ext.PeakSpeed(),
		})
		if err != nil {
			return fmt.Errorf("run %d: %w", i+1, err)
		}
		fmt.Printf("  saved %s (%d steps, final x = %.4f)\n", runID, res.Steps, res.X)
	}

	return nil
}

func runTrials(cmd *cobra.Command, args []string) error {
	s, err := scenario.NewRegistry().Get(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%d trials of %s, jitter ±%g around (%g, %g)\n\n",
		mcTrials, s.Name, mcPerturb, s.Params.X0, s.Params.V0)

	start := time.Now()
	trials := analysis.MonteCarlo(s.Field, s.Params, mcPerturb, mcBound, mcTrials, mcSeed)
	elapsed := time.Since(start)

	bounded := 0
	for _, tr := range trials {
		if tr.Err != nil {
			return tr.Err
		}
		if tr.Bounded {
			bounded++
		}
	}

	fmt.Printf("bounded: %d/%d (%.1f%%)\n", bounded, len(trials), 100*analysis.BoundedShare(trials))
	fmt.Printf("elapsed: %v\n", elapsed)

	if bounded < len(trials) {
		fmt.Println("\nescaping starts:")
		shown := 0
		for _, tr := range trials {
			if tr.Bounded {
				continue
			}
			fmt.Printf("  x0 = %+.4f  v0 = %+.4f\n", tr.X0, tr.V0)
			shown++
			if shown == 5 {
				rest := len(trials) - bounded - shown
				if rest > 0 {
					fmt.Printf("  ... and %d more\n", rest)
				}
				break
			}
		}
	}

	return nil
}

func parseSteps(args []string) ([]float64, error) {
	hs := make([]float64, 0, len(args))
	for _, a := range args {
		h, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("bad step size %q: %w", a, err)
		}
		hs = append(hs, h)
	}
	return hs, nil
}
