package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/YashShettigar/Basic-Planet-Simulation/internal/analysis"
	"github.com/YashShettigar/Basic-Planet-Simulation/internal/config"
	"github.com/YashShettigar/Basic-Planet-Simulation/internal/experiment"
	"github.com/YashShettigar/Basic-Planet-Simulation/internal/export"
	"github.com/YashShettigar/Basic-Planet-Simulation/internal/gui"
	"github.com/YashShettigar/Basic-Planet-Simulation/internal/optim"
	"github.com/YashShettigar/Basic-Planet-Simulation/internal/storage"
	"github.com/YashShettigar/Basic-Planet-Simulation/internal/view"
	"github.com/YashShettigar/Basic-Planet-Simulation/internal/viz"
)

var (
	dataDir    string
	configFile string
	ticks      int
	dt         float64
	trailCap   int
	ordering   string
	scheme     string
	workers    int
	sample     int
	outPath    string
	svgWidth   int
	svgHeight  int
	presetName string
	maxPlots   int
	sweepDts   []float64
	sweepDays  float64
	metricName string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "planetsim",
		Short: "newtonian planet simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return gui.Run(config.DefaultConfig())
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".planetsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a scenario headless and save it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	scenarioFlags(runCmd)
	runCmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "number of ticks")
	runCmd.Flags().IntVar(&sample, "sample", 1, "record every n ticks")
	runCmd.Flags().IntVar(&maxPlots, "plots", 3, "distance plots to print")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run a scenario in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	scenarioFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui [preset]",
		Short: "run a scenario in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}
	scenarioFlags(guiCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot anchor distance per body",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&maxPlots, "plots", 9, "maximum number of plots")

	periodCmd := &cobra.Command{
		Use:   "period [run_id]",
		Short: "measure orbital periods",
		Args:  cobra.ExactArgs(1),
		RunE:  periodRun,
	}

	svgCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw every track as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default <run_id>.svg)")
	svgCmd.Flags().IntVar(&svgWidth, "width", config.DefaultWidth, "image width")
	svgCmd.Flags().IntVar(&svgHeight, "height", config.DefaultHeight, "image height")

	jsonCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	jsonCmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default stdout)")

	csvCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	csvCmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a scenario file to edit",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	initCmd.Flags().StringVar(&presetName, "preset", "solar", "scenario to start from")

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "compare timesteps over the same simulated span",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweepTimesteps,
	}
	scenarioFlags(sweepCmd)
	sweepCmd.Flags().Float64SliceVar(&sweepDts, "dts", []float64{3600, 21600, 86400}, "timesteps to try, seconds")
	sweepCmd.Flags().Float64Var(&sweepDays, "days", 365, "simulated span in days")
	sweepCmd.Flags().StringVar(&metricName, "metric", "energy_drift", "metric to minimise")

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, listCmd, plotCmd, periodCmd,
		svgCmd, jsonCmd, csvCmd, presetsCmd, initCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func scenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml or toml)")
	cmd.Flags().Float64Var(&dt, "dt", config.Day, "timestep in seconds")
	cmd.Flags().IntVar(&trailCap, "trail", config.DefaultTrailCap, "trail length per body, 0 for unbounded")
	cmd.Flags().StringVar(&ordering, "ordering", "snapshot", "snapshot or sequential")
	cmd.Flags().StringVar(&scheme, "scheme", "euler", "euler or leapfrog")
	cmd.Flags().IntVar(&workers, "workers", 1, "force evaluation workers")
}

// loadScenario picks the config file, the named preset or the full solar
// system, then applies any flags the user set.
func loadScenario(cmd *cobra.Command, args []string) (*config.Config, error) {
	var scn *config.Config
	switch {
	case configFile != "":
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		scn = c
	case len(args) == 1:
		scn = config.GetPreset(args[0])
		if scn == nil {
			return nil, fmt.Errorf("unknown preset %q (try: planetsim presets)", args[0])
		}
	default:
		scn = config.DefaultConfig()
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		scn.Dt = dt
	}
	if flags.Changed("trail") {
		scn.Trail.Cap = trailCap
	}
	if flags.Changed("ordering") {
		scn.Ordering = ordering
	}
	if flags.Changed("scheme") {
		scn.Scheme = scheme
	}
	if flags.Changed("workers") {
		scn.Workers = workers
	}
	if flags.Changed("ticks") {
		scn.Ticks = ticks
	}

	if err := scn.Validate(); err != nil {
		return nil, err
	}
	return scn, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	scn, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	exp := experiment.New(experiment.Config{Scenario: scn, Ticks: scn.Ticks, Sample: sample})
	if err := exp.Setup(); err != nil {
		return err
	}

	fmt.Printf("running %s: %d bodies, %d ticks of %.0fs\n", scn.Name, len(scn.Bodies), scn.Ticks, scn.Dt)
	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	colors := make([]string, len(scn.Bodies))
	masses := make([]float64, len(scn.Bodies))
	for i, b := range scn.Bodies {
		colors[i], masses[i] = b.Color, b.Mass
	}
	runID, err := st.Save(storage.RunMetadata{
		Scenario: scn.Name,
		Dt:       scn.Dt,
		Sample:   max(sample, 1),
		Ordering: scn.Ordering,
		Scheme:   scn.Scheme,
		G:        scn.G,
		Masses:   masses,
		Colors:   view.Colors(colors),
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d (%.1f days)\n\n", result.Ticks, float64(result.Ticks)*scn.Dt/config.Day)
	printMetrics(result.Metrics)
	plotDistances(result, maxPlots)

	if result.Err != nil {
		return fmt.Errorf("simulation halted: %w", result.Err)
	}
	return nil
}

func printMetrics(m map[string]float64) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Println("metrics:")
	for _, k := range keys {
		fmt.Printf("  %-28s %.6g\n", k, m[k])
	}
	fmt.Println()
}

func plotDistances(result *experiment.Result, limit int) {
	if len(result.Distances) < 2 {
		return
	}
	plotted := 0
	for i, name := range result.Names {
		if i == result.Anchor || plotted >= limit {
			continue
		}
		data := result.Distance(i)
		for j := range data {
			data[j] /= config.AU
		}
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(8),
			asciigraph.Width(70),
			asciigraph.Caption(fmt.Sprintf("%s distance to anchor (AU)", name)),
		))
		fmt.Println()
		plotted++
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	scn, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	return viz.Run(scn)
}

func runGUI(cmd *cobra.Command, args []string) error {
	scn, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	return gui.Run(scn)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tTICKS\tDT\tBODIES\tSTATUS")
	for _, run := range runs {
		status := "ok"
		if run.Error != "" {
			status = "halted"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.0fs\t%d\t%s\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.Dt,
			len(run.Bodies),
			status,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	result, err := st.LoadTracks(args[0])
	if err != nil {
		return err
	}
	if len(result.Tracks) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", args[0])
	fmt.Printf("samples: %d\n\n", len(result.Tracks))
	plotDistances(result, maxPlots)
	return nil
}

func periodRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	result, err := st.LoadTracks(args[0])
	if err != nil {
		return err
	}
	if len(result.Times) < 2 || result.Anchor < 0 {
		return fmt.Errorf("run has no anchor or too few samples")
	}

	step := result.Times[1] - result.Times[0]
	anchor := result.Track(result.Anchor)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tPERIOD\tSPECTRAL\tKEPLER\tECC")
	for i, name := range result.Names {
		if i == result.Anchor {
			continue
		}
		dists := result.Distance(i)

		measured := "-"
		if p, err := analysis.OrbitalPeriod(result.Track(i), anchor, step); err == nil {
			measured = days(p)
		}
		spectral := "-"
		if p := analysis.DominantPeriod(dists[1:], step); p > 0 {
			spectral = days(p)
		}
		kepler := "-"
		if len(meta.Masses) == len(result.Names) && meta.G > 0 {
			peri, apo := analysis.Apsides(dists)
			if apo > 0 {
				m := meta.Masses[result.Anchor] + meta.Masses[i]
				kepler = days(analysis.KeplerPeriod((peri+apo)/2, meta.G, m))
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.4f\n", name, measured, spectral, kepler, analysis.Eccentricity(dists))
	}
	return w.Flush()
}

func days(seconds float64) string {
	return fmt.Sprintf("%.2fd", seconds/config.Day)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	result, err := st.LoadTracks(args[0])
	if err != nil {
		return err
	}

	bodyTracks := make([][]r2.Vec, len(result.Names))
	for i := range bodyTracks {
		bodyTracks[i] = result.Track(i)
	}
	colors := meta.Colors
	if len(colors) != len(bodyTracks) {
		colors = view.Palette(len(bodyTracks))
	}
	svg := export.TrailsToSVG(result.Names, bodyTracks, colors, svgWidth, svgHeight)
	if svg == "" {
		return fmt.Errorf("no data to export")
	}

	path := outPath
	if path == "" {
		path = args[0] + ".svg"
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

// output returns the file named by --output, or stdout.
func output() (*os.File, func() error, error) {
	if outPath == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outPath)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	result, err := st.LoadTracks(args[0])
	if err != nil {
		return err
	}

	f, closeFn, err := output()
	if err != nil {
		return err
	}
	if err := storage.ExportJSON(f, meta.Scenario, meta.Dt, result); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	result, err := st.LoadTracks(args[0])
	if err != nil {
		return err
	}

	f, closeFn, err := output()
	if err != nil {
		return err
	}
	if err := storage.WriteCSV(f, result); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBODIES\tTICKS\tDT")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%d\t%.0fs\n", name, len(p.Bodies), p.Ticks, p.Dt)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	scn := config.GetPreset(presetName)
	if scn == nil {
		return fmt.Errorf("unknown preset %q", presetName)
	}
	if _, err := os.Stat(args[0]); err == nil {
		return fmt.Errorf("%s already exists", args[0])
	}
	if err := config.Save(args[0], scn); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}

func sweepTimesteps(cmd *cobra.Command, args []string) error {
	scn, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	build := func(params map[string]float64) (*experiment.Experiment, error) {
		c := scn.Clone()
		c.Dt = params["dt"]
		c.Workers = 1
		exp := experiment.New(experiment.Config{
			Scenario: c,
			Ticks:    int(sweepDays * config.Day / c.Dt),
			Sample:   max(int(config.Day/c.Dt), 1),
		})
		return exp, exp.Setup()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g := optim.NewGridSearch([]string{"dt"}, [][]float64{sweepDts}, max(workers, 1))
	out, searchErr := g.Search(ctx, build, metricName)
	if out == nil {
		return searchErr
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "DT\tTICKS\t%s\n", metricName)
	for _, t := range out.Trials {
		val := fmt.Sprintf("%.6g", t.Value)
		if t.Err != nil {
			val = "error: " + t.Err.Error()
		}
		fmt.Fprintf(w, "%.0fs\t%d\t%s\n", t.Params["dt"], t.Ticks, val)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if searchErr != nil {
		return searchErr
	}

	fmt.Printf("\nbest: dt=%.0fs (%s %.6g)\n", out.Best["dt"], metricName, out.Value)
	return nil
}
