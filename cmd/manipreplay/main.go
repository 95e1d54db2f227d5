// Command manipreplay replays a scripted gesture against a single element
// and prints the resulting transform and any boundary feedback. Scripts are
// JSON or TOML (by extension) lists of start, delta, inertia and wait steps.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/phanxgames/manipulate"
)

type cliOpts struct {
	configPath string
	width      float64
	height     float64
	screenW    float64
	screenH    float64
	legacy     bool
	verbose    bool
	events     bool
}

func parseCLIOpts() (cliOpts, []string) {
	var opt cliOpts
	flag.StringVar(&opt.configPath, "config", "", "TOML config file (defaults are used when empty)")
	flag.Float64Var(&opt.width, "w", 100, "Element width in DIPs")
	flag.Float64Var(&opt.height, "h", 100, "Element height in DIPs")
	flag.Float64Var(&opt.screenW, "screen-w", 0, "Override the container width")
	flag.Float64Var(&opt.screenH, "screen-h", 0, "Override the container height")
	flag.BoolVar(&opt.legacy, "legacy-expansion", false, "Use the legacy expansion deceleration")
	flag.BoolVar(&opt.verbose, "v", false, "Log at debug level")
	flag.BoolVar(&opt.events, "events", false, "Print every handled manipulation event")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] script.{json,toml}\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	return opt, flag.Args()
}

func main() {
	opt, args := parseCLIOpts()
	if len(args) != 1 {
		flag.Usage()
		os.Exit(2)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "manipreplay"})
	if err := run(opt, args[0], os.Stdout, logger); err != nil {
		logger.Error("replay failed", "err", err)
		os.Exit(1)
	}
}

func run(opt cliOpts, scriptPath string, out io.Writer, logger *log.Logger) error {
	cfg := manipulate.DefaultConfig()
	if opt.configPath != "" {
		var err error
		if cfg, err = manipulate.LoadConfig(opt.configPath); err != nil {
			return err
		}
	}
	if opt.screenW > 0 {
		cfg.Screen.Width = opt.screenW
	}
	if opt.screenH > 0 {
		cfg.Screen.Height = opt.screenH
	}
	if opt.legacy {
		cfg.LegacyExpansion = true
	}
	if opt.verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	script, err := manipulate.ParseScriptFile(scriptPath, data)
	if err != nil {
		return err
	}

	el := manipulate.NewElement("replay", opt.width, opt.height)
	// The logger goes first so WithConfig sets the level on it.
	opts := []manipulate.Option{manipulate.WithLogger(logger), manipulate.WithConfig(cfg)}
	if opt.events {
		opts = append(opts, manipulate.WithSink(manipulate.SinkFunc(func(e manipulate.ManipulationEvent) {
			fmt.Fprintf(out, "%-16s inertial=%-5v transform=%v\n", e.Type, e.IsInertial, e.Transform)
		})))
	}
	b := manipulate.NewBehavior(opts...)
	b.Attach(el)

	player, err := manipulate.NewPlayer(script, el)
	if err != nil {
		return err
	}
	frames := player.Run()
	if !player.Done() {
		logger.Warn("replay hit the frame cap", "frames", frames)
	}

	m := el.Transform()
	bounds := el.Bounds()
	fmt.Fprintf(out, "frames:    %d\n", frames)
	fmt.Fprintf(out, "transform: [%g %g %g %g %g %g]\n", m[0], m[1], m[2], m[3], m[4], m[5])
	fmt.Fprintf(out, "bounds:    x=%g y=%g w=%g h=%g\n", bounds.X, bounds.Y, bounds.Width, bounds.Height)
	fmt.Fprintf(out, "feedback:  %d\n", len(player.Feedback()))
	for i, d := range player.Feedback() {
		fmt.Fprintf(out, "  [%d] translation=(%g, %g) rotation=%g scale=(%g, %g)\n",
			i, d.Translation.X, d.Translation.Y, d.Rotation, d.Scale.X, d.Scale.Y)
	}
	return nil
}
