package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harfang-mgf/sundial/internal/canvas"
	"github.com/harfang-mgf/sundial/internal/config"
	"github.com/harfang-mgf/sundial/internal/dial"
	"github.com/harfang-mgf/sundial/internal/ephem"
	"github.com/harfang-mgf/sundial/internal/logger"
	"github.com/harfang-mgf/sundial/pkg/angle"
)

var (
	flagConfig      string
	flagLat         string
	flagLon         string
	flagOri         string
	flagSlope       string
	flagZone        float64
	flagStyle       float64
	flagHeight      float64
	flagShiftX      float64
	flagShiftY      float64
	flagWallWidth   float64
	flagWallHeight  float64
	flagScale       float64
	flagOut         string
	flagFullscreen  bool
	flagNocturnal   bool
	flagNoBold      bool
	flagInclude     []string
	flagExclude     []string
	flagLogLevel    string
	flagLogFile     string
	flagWriteConfig string
)

var rootCmd = &cobra.Command{
	Use:   "sundial",
	Short: "Compute and draw the geometry of a sundial",
	Long: `Computes the gnomon placement, hour lines, solstice shadow traces
and equation-of-time loops of a sundial from geographic and
wall-orientation parameters, and draws them to an interactive window
or a static output document.

Angles accept decimal degrees or sexagesimal tokens:
  sundial --lat 46:30 --lon -6:09:21 --ori 0 --slope 90
  sundial --lat 46.5 --out dial.svg
  sundial --exclude teq --exclude sha --out dial.webp`,
	Version:      "1.3",
	SilenceUsage: true,
	RunE:         runRoot,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&flagConfig, "config", "c", "", "path to config file")
	f.StringVarP(&flagLat, "lat", "l", "", "latitude (+north), e.g. 46:30:00")
	f.StringVarP(&flagLon, "lon", "g", "", "longitude (+west)")
	f.StringVarP(&flagOri, "ori", "o", "", "wall orientation (0 south, +90 west)")
	f.StringVarP(&flagSlope, "slope", "p", "", "wall slope (0 flat, 90 vertical)")
	f.Float64VarP(&flagZone, "zone", "z", 0, "time zone in hours")
	f.Float64VarP(&flagStyle, "style", "s", 0, "length of the style")
	f.Float64VarP(&flagHeight, "height", "d", 0, "perpendicular gnomon height (instead of style length)")
	f.Float64Var(&flagShiftX, "shift-x", 0, "horizontal shift of the origin")
	f.Float64Var(&flagShiftY, "shift-y", 0, "vertical shift of the origin")
	f.Float64VarP(&flagWallWidth, "wall-width", "H", 0, "width of the wall panel")
	f.Float64VarP(&flagWallHeight, "wall-height", "V", 0, "height of the wall panel")
	f.Float64VarP(&flagScale, "scale", "e", 0, "device units per dial unit")
	f.StringVarP(&flagOut, "out", "n", "", "output file (.svg or .webp); default is a window")
	f.BoolVarP(&flagFullscreen, "fullscreen", "f", false, "fullscreen window")
	f.BoolVarP(&flagNocturnal, "nocturnal", "k", false, "include nocturnal lines (transparent earth)")
	f.BoolVarP(&flagNoBold, "no-bold", "b", false, "suppress highlighted strokes")
	f.StringSliceVarP(&flagInclude, "include", "i", nil, "include a line family by name or index (txt std ext hyp teq sha)")
	f.StringSliceVarP(&flagExclude, "exclude", "x", nil, "exclude a line family by name or index")
	f.StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")
	f.StringVar(&flagLogFile, "log-file", "", "also log to this file, with rotation")
	f.StringVar(&flagWriteConfig, "write-config", "", "write the effective config to a file and exit")

	rootCmd.MarkFlagsMutuallyExclusive("style", "height")
}

// applyFlags folds flag overrides into the loaded config. Angle
// tokens are validated here, before any geometry runs.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	angles := []struct {
		name string
		raw  string
		dst  *float64
	}{
		{"lat", flagLat, &cfg.Dial.Latitude},
		{"lon", flagLon, &cfg.Dial.Longitude},
		{"ori", flagOri, &cfg.Dial.Orientation},
		{"slope", flagSlope, &cfg.Dial.Slope},
	}
	for _, a := range angles {
		if !cmd.Flags().Changed(a.name) {
			continue
		}
		deg, err := angle.Parse(a.raw)
		if err != nil {
			return fmt.Errorf("--%s: %w", a.name, err)
		}
		*a.dst = deg
	}

	if cmd.Flags().Changed("zone") {
		cfg.Dial.Zone = flagZone
	}
	if cmd.Flags().Changed("style") {
		cfg.Dial.Style = flagStyle
		cfg.Dial.Height = 0
	}
	if cmd.Flags().Changed("height") {
		cfg.Dial.Height = flagHeight
	}
	if cmd.Flags().Changed("shift-x") {
		cfg.Panel.OffsetX = flagShiftX
	}
	if cmd.Flags().Changed("shift-y") {
		cfg.Panel.OffsetY = flagShiftY
	}
	if cmd.Flags().Changed("wall-width") {
		cfg.Panel.Width = flagWallWidth
	}
	if cmd.Flags().Changed("wall-height") {
		cfg.Panel.Height = flagWallHeight
	}
	if cmd.Flags().Changed("scale") {
		cfg.Render.Scale = flagScale
	}
	if cmd.Flags().Changed("out") {
		cfg.Render.Output = flagOut
	}
	if flagFullscreen {
		cfg.Render.Fullscreen = true
	}
	if flagNocturnal {
		cfg.Dial.Nocturnal = true
	}
	if flagNoBold {
		cfg.Render.Highlight = false
	}
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}
	if flagLogFile != "" {
		cfg.Logging.LogFile = flagLogFile
	}

	for _, name := range flagExclude {
		fam, err := canvas.ParseFamily(name)
		if err != nil {
			return fmt.Errorf("--exclude: %w", err)
		}
		cfg.SetFamily(fam, false)
	}
	for _, name := range flagInclude {
		fam, err := canvas.ParseFamily(name)
		if err != nil {
			return fmt.Errorf("--include: %w", err)
		}
		cfg.SetFamily(fam, true)
	}
	return nil
}

// outputKind validates the output selection: an empty name means the
// interactive window, anything else must carry a known document
// extension.
func outputKind(output string) (string, error) {
	ext := filepath.Ext(output)
	switch {
	case output == "":
		return "", nil
	case ext == ".svg" || ext == ".webp":
		return ext, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want .svg or .webp)", output)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected argument %q", args[0])
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return err
	}
	defer logger.Sync()

	if flagWriteConfig != "" {
		return cfg.SaveTo(flagWriteConfig)
	}

	par := dial.Resolve(cfg.Input())
	logger.Debug("parameters resolved",
		zap.Float64("lam", par.Lam),
		zap.Float64("lom", par.Lom),
		zap.Float64("rot", par.Rot),
		zap.Float64("style", par.Style),
		zap.Float64("hsty", par.Hsty),
		zap.Float64("lsty", par.Lsty),
	)

	tr := cfg.Transform(par.OffsetX, par.OffsetY)
	styles := cfg.Styles()

	kind, err := outputKind(cfg.Render.Output)
	if err != nil {
		return err
	}

	var cv canvas.Canvas
	switch kind {
	case "":
		screen, err := canvas.NewScreen("Sundial", tr, styles, cfg.Render.Fullscreen)
		if err != nil {
			return err
		}
		tr = screen.Transform()
		cv = screen
	case ".svg":
		doc, err := canvas.NewDocument(cfg.Render.Output, tr, styles)
		if err != nil {
			return err
		}
		cv = doc
	case ".webp":
		snap, err := canvas.NewSnapshot(cfg.Render.Output, tr, styles)
		if err != nil {
			return err
		}
		cv = snap
	}
	defer cv.Close()

	gen := dial.NewGenerator(par, ephem.NewTable(), cv, styles, tr.ClipLimit())
	gen.Run()

	quit := cv.Wait()
	if err := cv.Close(); err != nil {
		return err
	}
	if cfg.Render.Output != "" {
		logger.Info("output written", zap.String("file", cfg.Render.Output))
	}
	if quit {
		logger.Sync()
		os.Exit(1)
	}
	return nil
}
