package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/solosc/internal/analysis"
	"github.com/san-kum/solosc/internal/config"
	"github.com/san-kum/solosc/internal/experiment"
	"github.com/san-kum/solosc/internal/export"
	"github.com/san-kum/solosc/internal/oscil"
	"github.com/san-kum/solosc/internal/storage"
	"github.com/san-kum/solosc/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	start      float64
	end        float64
	samples    int
	flux       float64
	freqs      []float64
	ampls      []float64
	etas       []float64
	kickFactor float64
	warmupCap  int
	parallel   bool
	verbose    bool
	// export targets
	outFile    string
	sampleRate int
	plotFlux   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "solosc",
		Short: "stochastically excited damped oscillation simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".solosc", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "simulate a time series",
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().BoolVar(&parallel, "parallel", false, "evaluate modes in parallel")
	runCmd.Flags().BoolVar(&verbose, "verbose", false, "report simulation stages")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().BoolVar(&plotFlux, "flux", false, "plot the flux series instead of the signal")

	spectrumCmd := &cobra.Command{
		Use:   "spectrum [run_id]",
		Short: "power spectrum of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  spectrumRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportPNGCmd := &cobra.Command{
		Use:   "export-png [run_id]",
		Short: "export run plot to an image file",
		Args:  cobra.ExactArgs(1),
		RunE:  exportPNG,
	}
	exportPNGCmd.Flags().StringVar(&outFile, "out", "", "output path (default <run_id>.png)")
	exportPNGCmd.Flags().BoolVar(&plotFlux, "flux", false, "plot the flux series instead of the signal")

	sonifyCmd := &cobra.Command{
		Use:   "sonify [run_id]",
		Short: "export run signal as a WAV file",
		Args:  cobra.ExactArgs(1),
		RunE:  sonifyRun,
	}
	sonifyCmd.Flags().StringVar(&outFile, "out", "", "output path (default <run_id>.wav)")
	sonifyCmd.Flags().IntVar(&sampleRate, "rate", 44100, "audio sample rate")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live visualization",
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in mode tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMODES\tSPAN\tSAMPLES")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%g..%g\t%d\n",
					name, len(p.Modes), p.Time.Start, p.Time.End, p.Time.Samples)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, spectrumCmd, exportCmd,
		exportCSVCmd, exportPNGCmd, sonifyCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use a built-in mode table")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().Float64Var(&start, "start", config.DefaultStart, "grid start time")
	cmd.Flags().Float64Var(&end, "end", config.DefaultEnd, "grid end time")
	cmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "grid samples")
	cmd.Flags().Float64Var(&flux, "flux", 0, "mean flux level for the display series")
	cmd.Flags().Float64SliceVar(&freqs, "freq", nil, "mode frequencies")
	cmd.Flags().Float64SliceVar(&ampls, "ampl", nil, "mode amplitudes")
	cmd.Flags().Float64SliceVar(&etas, "eta", nil, "mode damping rates")
	cmd.Flags().Float64Var(&kickFactor, "kick-factor", config.DefaultKickFactor, "kicks per shortest damping time")
	cmd.Flags().IntVar(&warmupCap, "warmup-cap", config.DefaultMaxWarmupKicks, "maximum warm-up kicks")
}

// resolveConfig merges preset, config file and flags; flags win.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
		cfg.Modes = append([]config.ModeConfig(nil), p.Modes...)
		cfg.Time.Points = append([]float64(nil), p.Time.Points...)
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("start") {
		cfg.Time.Start = start
	}
	if cmd.Flags().Changed("end") {
		cfg.Time.End = end
	}
	if cmd.Flags().Changed("samples") {
		cfg.Time.Samples = samples
	}
	if cmd.Flags().Changed("flux") {
		cfg.Flux = flux
	}
	if cmd.Flags().Changed("kick-factor") {
		cfg.KickFactor = kickFactor
	}
	if cmd.Flags().Changed("warmup-cap") {
		cfg.MaxWarmupKicks = warmupCap
	}

	if len(freqs) > 0 {
		if len(ampls) != len(freqs) || len(etas) != len(freqs) {
			return nil, fmt.Errorf("--freq, --ampl and --eta need equal counts (%d, %d, %d)",
				len(freqs), len(ampls), len(etas))
		}
		cfg.Modes = cfg.Modes[:0]
		for i := range freqs {
			cfg.Modes = append(cfg.Modes, config.ModeConfig{Freq: freqs[i], Ampl: ampls[i], Eta: etas[i]})
		}
	}

	if len(cfg.Modes) == 0 {
		return nil, fmt.Errorf("no modes configured: use --preset, --config or --freq/--ampl/--eta")
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(cfg)
	exp.SetParallel(parallel)
	if verbose {
		exp.AddObserver(oscil.ObserverFunc(func(p oscil.Progress) {
			switch p.Stage {
			case oscil.StageDerive:
				fmt.Printf("simulating %d modes, kick timestep %g\n", p.Modes, p.KickTimestep)
			case oscil.StageWarmup:
				fmt.Printf("%d kicks for warm up\n", p.WarmupKicks)
			case oscil.StageEvolve:
				fmt.Println("kick schedules staggered, evolving")
			}
		}))
	}

	fmt.Printf("simulating %d modes...\n", len(cfg.Modes))
	startTime := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(startTime)

	meta := storage.RunMetadata{
		Seed:         cfg.Seed,
		KickFactor:   cfg.KickFactor,
		KickTimestep: result.KickTimestep,
		WarmupKicks:  result.WarmupKicks,
		Flux:         cfg.Flux,
		Metrics:      result.Metrics,
	}
	for _, m := range cfg.Modes {
		meta.Modes = append(meta.Modes, storage.ModeInfo{Freq: m.Freq, Ampl: m.Ampl, Eta: m.Eta})
	}

	runID, err := st.Save(meta, result.Times, result.Signal, result.Flux)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(result.Signal))
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6g\n", name, val)
	}

	return nil
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
	fmt.Fprintln(w, "ID\tTIME\tMODES\tSAMPLES\tSEED\tKICK STEP")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%g\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			len(run.Modes),
			run.Samples,
			run.Seed,
			run.KickTimestep,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	times, signal, flux, err := st.LoadSignal(runID)
	if err != nil {
		return err
	}
	if len(signal) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Println(viz.Header(fmt.Sprintf("run %s: %d modes", meta.ID, len(meta.Modes))))

	data, caption := signal, "oscillation signal"
	if plotFlux {
		if flux == nil {
			return fmt.Errorf("run %s has no flux series", runID)
		}
		data, caption = flux, "flux"
	}
	fmt.Println(viz.RenderSeries(data, caption))

	pairs := [][2]string{
		{"samples", fmt.Sprintf("%d", len(signal))},
		{"span", fmt.Sprintf("%g..%g", times[0], times[len(times)-1])},
	}
	for name, val := range meta.Metrics {
		pairs = append(pairs, [2]string{name, viz.FormatValue(val)})
	}
	fmt.Println(viz.RenderStats(pairs))

	return nil
}

func spectrumRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	times, signal, _, err := st.LoadSignal(runID)
	if err != nil {
		return err
	}
	if len(signal) < 2 {
		return fmt.Errorf("not enough data")
	}

	dt := (times[len(times)-1] - times[0]) / float64(len(times)-1)
	if dt <= 0 {
		return fmt.Errorf("degenerate time grid")
	}

	padded := analysis.PadPow2(signal)
	ps := analysis.PowerSpectrum(signal)

	fmt.Println(viz.Header(fmt.Sprintf("power spectrum: run %s", meta.ID)))
	fmt.Println(viz.RenderSeries(ps[1:], "power spectrum"))

	freq, power := analysis.DominantFrequency(ps, len(padded), dt)
	fmt.Printf("dominant frequency: %.4g (power %.4g)\n", freq, power)

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	times, signal, flux, err := st.LoadSignal(args[0])
	if err != nil {
		return err
	}
	if len(signal) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time", "signal"}
	if flux != nil {
		header = append(header, "flux")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for j := range signal {
		row := []string{
			strconv.FormatFloat(times[j], 'g', -1, 64),
			strconv.FormatFloat(signal[j], 'g', -1, 64),
		}
		if flux != nil {
			row = append(row, strconv.FormatFloat(flux[j], 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportPNG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	times, signal, flux, err := st.LoadSignal(runID)
	if err != nil {
		return err
	}

	data, ylabel := signal, "signal [ppm]"
	if plotFlux {
		if flux == nil {
			return fmt.Errorf("run %s has no flux series", runID)
		}
		data, ylabel = flux, "flux"
	}

	path := outFile
	if path == "" {
		path = runID + ".png"
	}

	if err := export.WritePlot(path, runID, "time", ylabel, times, data); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func sonifyRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	_, signal, _, err := st.LoadSignal(runID)
	if err != nil {
		return err
	}

	path := outFile
	if path == "" {
		path = runID + ".wav"
	}

	if err := export.WriteWAV(path, signal, sampleRate); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d samples at %d Hz)\n", path, len(signal), sampleRate)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	m, err := viz.NewModel(cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
