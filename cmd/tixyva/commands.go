package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/tixyva/internal/analysis"
	"github.com/san-kum/tixyva/internal/canvas"
	"github.com/san-kum/tixyva/internal/config"
	"github.com/san-kum/tixyva/internal/export"
	"github.com/san-kum/tixyva/internal/live"
	"github.com/san-kum/tixyva/internal/script"
	"github.com/san-kum/tixyva/internal/storage"
	"github.com/san-kum/tixyva/internal/viz"
	"github.com/san-kum/tixyva/internal/watch"
	"github.com/spf13/cobra"
)

// readScript takes the script from --file or the joined arguments.
func readScript(args []string) (string, error) {
	if scriptFile != "" {
		data, err := os.ReadFile(scriptFile)
		if err != nil {
			return "", err
		}
		return watch.Normalize(string(data)), nil
	}
	if len(args) == 0 {
		return "", errors.New("no script given (pass it as an argument or with --file)")
	}
	return strings.Join(args, " "), nil
}

func listPatterns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tSOURCE")
	for i, p := range cfg.Library() {
		key := "-"
		if i < 10 {
			key = fmt.Sprint(i)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", key, p.Name, p.Source)
	}
	return w.Flush()
}

func checkScript(cmd *cobra.Command, args []string) error {
	src, err := readScript(args)
	if err != nil {
		return err
	}
	prog, err := script.Compile(src)
	if err != nil {
		return err
	}
	if evalFrame {
		if _, err := live.Advance(prog, canvas.Blank(), 0, 0); err != nil {
			return err
		}
	}
	fmt.Println("ok")
	return nil
}

// simulate runs n frames headless starting from c, calling each after
// every frame.
func simulate(prog *script.Program, c canvas.Canvas, n int, each func(frame int, t float64, c canvas.Canvas)) (canvas.Canvas, float64, error) {
	var t float64
	for f := 0; f < n; f++ {
		t = float64(f) * dt
		next, err := live.Advance(prog, c, t, volume)
		if err != nil {
			return c, t, fmt.Errorf("frame %d: %w", f, err)
		}
		c = next
		if each != nil {
			each(f, t, c)
		}
	}
	return c, t, nil
}

func renderSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	src, err := readScript(args)
	if err != nil {
		return err
	}
	prog, err := script.Compile(src)
	if err != nil {
		return err
	}
	if frames < 1 {
		return fmt.Errorf("frames must be positive, got %d", frames)
	}

	c, t, err := simulate(prog, canvas.New(cfg.Width, cfg.Height), frames, nil)
	if err != nil {
		return err
	}

	fmt.Println(viz.PlainCanvas(c))
	st := c.Stats()
	fmt.Printf("\nt=%.3fs frames=%d min=%.3f max=%.3f mean=%.3f non-finite=%d\n",
		t, frames, st.Min, st.Max, st.Mean, st.NonFinite)

	if save {
		store := storage.New(cfg.DataDir)
		if err := store.Init(); err != nil {
			return err
		}
		snap, err := store.Save(storage.Snapshot{
			Source: src,
			Time:   t,
			Frames: frames,
			Volume: volume,
		}, c)
		if err != nil {
			return err
		}
		fmt.Printf("saved %s\n", snap.ID)
	}

	if svgFile != "" {
		return writeSVG(cfg, c)
	}
	return nil
}

func writeSVG(cfg *config.Config, c canvas.Canvas) error {
	th, ok := viz.GetTheme(cfg.Theme)
	if !ok {
		return fmt.Errorf("unknown theme: %s (available: %v)", cfg.Theme, viz.ThemeNames())
	}
	if err := os.WriteFile(svgFile, []byte(export.CanvasToSVG(c, th, svgScale)), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgFile)
	return nil
}

func probeCell(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	src, err := readScript(args)
	if err != nil {
		return err
	}
	prog, err := script.Compile(src)
	if err != nil {
		return err
	}
	if probeX < 0 || probeX >= cfg.Width || probeY < 0 || probeY >= cfg.Height {
		return fmt.Errorf("cell (%d, %d) is outside the %dx%d canvas", probeX, probeY, cfg.Width, cfg.Height)
	}
	if dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g", dt)
	}

	n := int(seconds / dt)
	if n < 2 {
		n = 2
	}
	data := make([]float64, 0, n)
	skipped := 0
	_, _, err = simulate(prog, canvas.New(cfg.Width, cfg.Height), n, func(_ int, _ float64, c canvas.Canvas) {
		v := c.At(probeX, probeY)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			skipped++
			v = 0
		}
		data = append(data, v)
	})
	if err != nil {
		return err
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("cell (%d, %d) over %.1fs", probeX, probeY, float64(n)*dt)),
	)
	fmt.Println(graph)
	if skipped > 0 {
		fmt.Printf("%d non-finite values drawn as 0\n", skipped)
	}

	ps := analysis.PowerSpectrum(data)
	fmt.Printf("dominant frequency: %.3f Hz\n", analysis.Dominant(ps, dt))
	if spectrum && len(ps) > 1 {
		fmt.Println(asciigraph.Plot(ps[1:],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum"),
		))
	}
	return nil
}

func listSnapshots(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	snaps, err := storage.New(cfg.DataDir).List()
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		fmt.Println("no snapshots found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tT\tFRAMES\tSIZE\tSOURCE")
	for _, s := range snaps {
		fmt.Fprintf(w, "%s\t%s\t%.2fs\t%d\t%dx%d\t%s\n",
			s.ID,
			s.Timestamp.Format("2006-01-02 15:04:05"),
			s.Time,
			s.Frames,
			s.Width, s.Height,
			s.Source,
		)
	}
	return w.Flush()
}

func showSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store := storage.New(cfg.DataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}
	c, err := store.LoadCanvas(args[0])
	if err != nil {
		return err
	}

	th, _ := viz.GetTheme(cfg.Theme)
	fmt.Printf("%s  t=%.2fs  %s\n\n", meta.ID, meta.Time, meta.Source)
	fmt.Println(viz.RenderCanvas(c, th))

	if svgFile != "" {
		return writeSVG(cfg, c)
	}
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
