package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/san-kum/tixyva/internal/audio"
	"github.com/san-kum/tixyva/internal/config"
	"github.com/san-kum/tixyva/internal/live"
	"github.com/san-kum/tixyva/internal/logger"
	"github.com/san-kum/tixyva/internal/storage"
	"github.com/san-kum/tixyva/internal/viz"
	"github.com/san-kum/tixyva/internal/watch"
	"github.com/spf13/cobra"
)

var (
	configFile string
	dataDir    string
	frameRate  int
	noAudio    bool
	theme      string
	watchFile  string
	logFile    string
	logLevel   string

	scriptFile string
	frames     int
	dt         float64
	volume     float64
	save       bool
	svgFile    string
	svgScale   float64
	probeX     int
	probeY     int
	seconds    float64
	evalFrame  bool
	spectrum   bool
	force      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "tixyva",
		Short:        "live-coded 32x32 terminal animations",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runLive,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	rootCmd.Flags().BoolVar(&noAudio, "no-audio", false, "do not open the microphone")
	rootCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "colour theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	rootCmd.Flags().StringVar(&watchFile, "watch", "", "reload the script from this file when it changes")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "log file (default <data>/tixyva.log, off disables)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "debug, info, warn or error")

	patternsCmd := &cobra.Command{
		Use:   "patterns",
		Short: "list the pattern library",
		Args:  cobra.NoArgs,
		RunE:  listPatterns,
	}

	checkCmd := &cobra.Command{
		Use:   "check [script]",
		Short: "compile a script and report errors",
		RunE:  checkScript,
	}
	checkCmd.Flags().StringVarP(&scriptFile, "file", "f", "", "read the script from a file")
	checkCmd.Flags().BoolVar(&evalFrame, "eval", false, "also evaluate one frame at t=0")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [script]",
		Short: "render frames without a terminal UI",
		RunE:  renderSnapshot,
	}
	snapshotCmd.Flags().StringVarP(&scriptFile, "file", "f", "", "read the script from a file")
	snapshotCmd.Flags().IntVar(&frames, "frames", 1, "number of frames")
	snapshotCmd.Flags().Float64Var(&dt, "dt", 1.0/config.DefaultFPS, "seconds per frame")
	snapshotCmd.Flags().Float64Var(&volume, "volume", 0, "constant microphone volume")
	snapshotCmd.Flags().BoolVar(&save, "save", false, "store the snapshot in the data directory")
	snapshotCmd.Flags().StringVar(&svgFile, "svg", "", "write the final frame as svg")
	snapshotCmd.Flags().Float64Var(&svgScale, "scale", 12, "svg cell size in pixels")

	probeCmd := &cobra.Command{
		Use:   "probe [script]",
		Short: "plot one cell over time",
		RunE:  probeCell,
	}
	probeCmd.Flags().StringVarP(&scriptFile, "file", "f", "", "read the script from a file")
	probeCmd.Flags().IntVar(&probeX, "x", 0, "cell column")
	probeCmd.Flags().IntVar(&probeY, "y", 0, "cell row")
	probeCmd.Flags().Float64Var(&seconds, "seconds", 4, "duration")
	probeCmd.Flags().Float64Var(&dt, "dt", 1.0/config.DefaultFPS, "seconds per frame")
	probeCmd.Flags().Float64Var(&volume, "volume", 0, "constant microphone volume")
	probeCmd.Flags().BoolVar(&spectrum, "spectrum", false, "also plot the power spectrum")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved snapshots",
		Args:  cobra.NoArgs,
		RunE:  listSnapshots,
	}

	showCmd := &cobra.Command{
		Use:   "show [snapshot_id]",
		Short: "print a saved snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  showSnapshot,
	}
	showCmd.Flags().StringVar(&svgFile, "svg", "", "also write the snapshot as svg")
	showCmd.Flags().Float64Var(&svgScale, "scale", 12, "svg cell size in pixels")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage the config file",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [file]",
		Short: "write the default config",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(patternsCmd, checkCmd, snapshotCmd, probeCmd, listCmd, showCmd, configCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// loadConfig reads --config when given and applies the flags the user set
// on top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("data") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("no-audio") {
		cfg.Audio = !noAudio
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("watch") {
		cfg.Watch = watchFile
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, "tixyva.log")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	th, ok := viz.GetTheme(cfg.Theme)
	if !ok {
		return fmt.Errorf("unknown theme: %s (available: %v)", cfg.Theme, viz.ThemeNames())
	}

	log, closer, err := logger.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer closer.Close()
	log.Info("starting", "fps", cfg.FPS, "size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height), "theme", th.Name, "audio", cfg.Audio)

	store := storage.New(cfg.DataDir)
	if err := store.Init(); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	var meter audio.Meter = audio.Silent{}
	if cfg.Audio {
		m, stopAudio := audio.Open(log)
		defer stopAudio()
		meter = m
	}

	machine := live.New(cfg.Library(), live.WithLogger(log), live.WithSize(cfg.Width, cfg.Height))

	opts := viz.Options{
		Machine: machine,
		Meter:   meter,
		Theme:   th,
		FPS:     cfg.FPS,
		Store:   store,
		Log:     log,
	}

	if cfg.Watch != "" {
		w, err := watch.New(cfg.Watch, log)
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", cfg.Watch, err)
		}
		if u, err := w.Read(); err == nil && u.Source != "" {
			machine.Load(u.Source)
		} else if err != nil {
			log.Warn("watched file not readable yet", "path", cfg.Watch, "err", err)
		}
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		go w.Run(ctx)
		opts.Updates = w.Updates()
	}

	err = viz.Run(opts)
	log.Info("stopped", "err", err)
	return err
}
