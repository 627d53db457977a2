package main

import (
	"fmt"
	"os"

	"github.com/benoitkugler/svgbas/bas"
	"github.com/benoitkugler/svgbas/basraster"
	"github.com/benoitkugler/svgbas/config"
	"github.com/benoitkugler/svgbas/svgdoc"
	"github.com/flanksource/commons/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const defaultInput = "test.svg"

func main() {
	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

// options are the command line flags, merged over the config file
type options struct {
	configFile string
	cfg        config.Config
	logFlags   logger.Flags
}

func newRootCommand() *cobra.Command {
	opts := options{
		cfg:      config.Default(),
		logFlags: logger.Flags{Level: "info", LogToStderr: true},
	}

	rootCmd := &cobra.Command{
		Use:   "svg2bas [input.svg]",
		Short: "Convert the paths of an SVG image into a BAS script",
		Long: `svg2bas reads the path elements of an SVG document and writes a BAS script:
one "def path" declaration per path, followed by one "set" directive per path.

Each path must have a d attribute, a #RRGGBB fill and a translate(x,y) transform.`,
		Example: `  svg2bas drawing.svg
  svg2bas drawing.svg -o scene.bas --duration 500
  svg2bas drawing.svg --config svg2bas.yaml --preview preview.png`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Configure(opts.logFlags)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			input := defaultInput
			if len(args) == 1 {
				input = args[0]
			}
			cfg, err := opts.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			return run(input, cfg)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "YAML configuration file")
	flags.StringVarP(&opts.cfg.OutputPath, "output", "o", opts.cfg.OutputPath, "Output BAS file")
	flags.IntVarP(&opts.cfg.DurationMs, "duration", "d", opts.cfg.DurationMs, "Display duration of each path, in milliseconds")
	flags.IntVar(&opts.cfg.Workers, "workers", opts.cfg.Workers, "Number of goroutines mapping the paths")
	flags.BoolVar(&opts.cfg.CheckGeometry, "check-geometry", false, "Reject paths whose d attribute does not parse")
	flags.StringVar(&opts.cfg.PreviewPath, "preview", "", "Also render the script to this PNG file")
	flags.StringVar(&opts.cfg.ZIndex, "z-index", opts.cfg.ZIndex, "Layering of the paths: uniform or stack")
	flags.BoolVar(&opts.cfg.Verify, "verify", false, "Read back the written script")

	persistent := rootCmd.PersistentFlags()
	persistent.CountVarP(&opts.logFlags.LevelCount, "loglevel", "v", "Increase logging level")
	persistent.StringVar(&opts.logFlags.Level, "log-level", "info", "Set the default log level")
	persistent.BoolVar(&opts.logFlags.JsonLogs, "json-logs", false, "Print logs in json format to stderr")

	return rootCmd
}

// resolve loads the config file, if any, and applies the flags
// explicitly set on the command line on top of it.
func (o options) resolve(flags *pflag.FlagSet) (config.Config, error) {
	if o.configFile == "" {
		return o.cfg, o.cfg.Validate()
	}
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return cfg, err
	}
	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "output":
			cfg.OutputPath = o.cfg.OutputPath
		case "duration":
			cfg.DurationMs = o.cfg.DurationMs
		case "workers":
			cfg.Workers = o.cfg.Workers
		case "check-geometry":
			cfg.CheckGeometry = o.cfg.CheckGeometry
		case "preview":
			cfg.PreviewPath = o.cfg.PreviewPath
		case "z-index":
			cfg.ZIndex = o.cfg.ZIndex
		case "verify":
			cfg.Verify = o.cfg.Verify
		}
	})
	return cfg, cfg.Validate()
}

func newEmitter(cfg config.Config) bas.Emitter {
	e := bas.Emitter{
		DurationMs:    cfg.DurationMs,
		Workers:       cfg.Workers,
		CheckGeometry: cfg.CheckGeometry,
	}
	if cfg.ZIndex == config.ZIndexStack {
		e.ZIndex = bas.StackZIndex
	}
	return e
}

func run(input string, cfg config.Config) error {
	doc, err := svgdoc.ReadDocument(input)
	if err != nil {
		return err
	}
	logger.Infof("found %d paths in %s (%sx%s)", len(doc.Paths), input, doc.ViewBox.Width, doc.ViewBox.Height)

	script, err := newEmitter(cfg).Build(doc)
	if err != nil {
		return err
	}
	if err := bas.WriteScript(cfg.OutputPath, script); err != nil {
		return err
	}
	logger.Infof("wrote %s", cfg.OutputPath)

	if cfg.Verify {
		if err := verify(cfg.OutputPath, len(doc.Paths)); err != nil {
			return err
		}
	}

	if cfg.PreviewPath != "" {
		if err := writePreview(cfg.PreviewPath, script.Paths); err != nil {
			return err
		}
		logger.Infof("wrote preview %s", cfg.PreviewPath)
	}
	return nil
}

func verify(path string, expected int) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	script, err := bas.ParseScript(f)
	if err != nil {
		return fmt.Errorf("verification of %s failed: %w", path, err)
	}
	if len(script.Paths) != expected || len(script.Directives) != expected {
		return fmt.Errorf("verification of %s failed: expected %d paths, got %d declarations and %d directives",
			path, expected, len(script.Paths), len(script.Directives))
	}
	logger.Debugf("verified %d paths in %s", expected, path)
	return nil
}

func writePreview(path string, paths []bas.PathDescriptor) error {
	img, err := basraster.Render(paths)
	if err != nil {
		return fmt.Errorf("failed to render preview: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := basraster.WritePNG(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to write preview: %w", err)
	}
	return f.Close()
}
