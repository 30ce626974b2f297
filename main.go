package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/murmur/audio"
	_ "github.com/pthm-cable/murmur/audio/remote"
	"github.com/pthm-cable/murmur/config"
	"github.com/pthm-cable/murmur/terminal"
	"github.com/pthm-cable/murmur/visualizer"
)

type cliOptions struct {
	configPath  string
	headless    bool
	renderer    string
	audioKind   string
	audioFile   string
	seed        int64
	maxTicks    int64
	outputDir   string
	logStats    bool
	statsWindow float64
	logFile     string
	snapshot    string
}

func main() {
	var o cliOptions
	flag.StringVar(&o.configPath, "config", "", "Path to config.yaml (empty = use defaults)")
	flag.BoolVar(&o.headless, "headless", false, "Run without graphics")
	flag.StringVar(&o.renderer, "renderer", visualizer.RendererRaylib, "Render host: raylib or terminal")
	flag.StringVar(&o.audioKind, "audio", "", fmt.Sprintf("Loudness source %v (empty = use config)", audio.Kinds()))
	flag.StringVar(&o.audioFile, "audio-file", "", "Audio file for the file source (implies -audio file)")
	flag.Int64Var(&o.seed, "seed", 0, "RNG seed (0 = time-based)")
	flag.Int64Var(&o.maxTicks, "max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	flag.StringVar(&o.outputDir, "output-dir", "", "Output directory for CSV logs, config and snapshots")
	flag.BoolVar(&o.logStats, "log-stats", false, "Output window stats via slog")
	flag.Float64Var(&o.statsWindow, "stats-window", 0, "Stats window size in seconds (0 = use config)")
	flag.StringVar(&o.snapshot, "snapshot", "", "Snapshot JSON to resume the swarm from")
	flag.StringVar(&o.logFile, "log-file", "", "Log file for the terminal renderer (empty = discard)")
	flag.Parse()

	if err := run(o); err != nil {
		slog.Error("murmur failed", "error", err)
		os.Exit(1)
	}
}

func run(o cliOptions) error {
	if o.renderer != visualizer.RendererRaylib && o.renderer != visualizer.RendererTerminal {
		return fmt.Errorf("unknown renderer %q", o.renderer)
	}
	terminalMode := !o.headless && o.renderer == visualizer.RendererTerminal

	closeLog, err := setupLogging(terminalMode, o.logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	if err := config.Init(o.configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := config.Cfg()

	if o.audioFile != "" {
		cfg.Audio.File = o.audioFile
		if o.audioKind == "" {
			o.audioKind = "file"
		}
	}
	if o.audioKind != "" {
		cfg.Audio.Source = o.audioKind
	}

	rngSeed := o.seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Nothing is drawn until the loudness source is ready
	src, err := audio.Acquire(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := src.Close(); err != nil {
			slog.Warn("closing loudness source", "error", err)
		}
	}()

	opts := visualizer.Options{
		Seed:           rngSeed,
		Headless:       o.headless,
		Renderer:       o.renderer,
		LogStats:       o.logStats,
		StatsWindowSec: o.statsWindow,
		OutputDir:      o.outputDir,
		MaxTicks:       o.maxTicks,
		Snapshot:       o.snapshot,
	}

	switch {
	case o.headless:
		return runHeadless(ctx, opts, cfg, src)
	case terminalMode:
		return runTerminal(ctx, opts, cfg, src)
	default:
		return runWindow(ctx, opts, cfg, src)
	}
}

// setupLogging installs a JSON slog handler. The terminal renderer owns
// stdout, so it logs to a file or nowhere.
func setupLogging(terminalMode bool, path string) (func(), error) {
	var w io.Writer = os.Stdout
	closeFn := func() {}

	if terminalMode {
		w = io.Discard
		if path != "" {
			f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return nil, fmt.Errorf("opening log file: %w", err)
			}
			w = f
			closeFn = func() { f.Close() }
		}
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(w, nil)))
	return closeFn, nil
}

func runHeadless(ctx context.Context, opts visualizer.Options, cfg *config.Config, src audio.Source) error {
	v, err := visualizer.New(opts, cfg, src)
	if err != nil {
		return err
	}
	defer v.Unload()

	slog.Info("starting headless run", "seed", opts.Seed, "max_ticks", opts.MaxTicks)
	sampling := true
	for ctx.Err() == nil {
		if sampling {
			if stopped, err := audio.Stopped(src); stopped {
				if err != nil {
					return fmt.Errorf("loudness source stopped at tick %d: %w", v.Tick(), err)
				}
				slog.Info("loudness source drained, continuing on silence", "tick", v.Tick())
				sampling = false
			}
		}
		v.UpdateHeadless()
		if v.Done() {
			slog.Info("max ticks reached", "tick", v.Tick())
			return nil
		}
	}
	return nil
}

func runTerminal(ctx context.Context, opts visualizer.Options, cfg *config.Config, src audio.Source) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing terminal screen: %w", err)
	}
	defer screen.Fini()

	v, err := visualizer.New(opts, cfg, src)
	if err != nil {
		return err
	}
	defer v.Unload()

	return terminal.Run(ctx, screen, v, cfg.Screen.TargetFPS)
}

func runWindow(ctx context.Context, opts visualizer.Options, cfg *config.Config, src audio.Source) error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "murmur")
	defer rl.CloseWindow()
	if !rl.IsWindowReady() {
		return errors.New("raylib window failed to open")
	}
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	v, err := visualizer.New(opts, cfg, src)
	if err != nil {
		return err
	}
	defer v.Unload()

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		v.Update()
		v.Draw()
		if v.Done() {
			break
		}
	}
	return nil
}
