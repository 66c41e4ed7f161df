package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/glyphrain/audio"
	"github.com/lixenwraith/glyphrain/config"
	"github.com/lixenwraith/glyphrain/engine"
	"github.com/lixenwraith/glyphrain/parameter"
	"github.com/lixenwraith/glyphrain/rain"
	"github.com/lixenwraith/glyphrain/status"
	"github.com/lixenwraith/glyphrain/trail"
)

// buildLogger routes structured logs to a file; the animation owns the
// terminal, so stderr output would garble the frame
func buildLogger(path string, debug bool) (*zap.SugaredLogger, func()) {
	if path == "" {
		return zap.NewNop().Sugar(), func() {}
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		return zap.NewNop().Sugar(), func() {}
	}
	return logger.Sugar(), func() { _ = logger.Sync() }
}

func main() {
	cfgPath := flag.String("config", "", "YAML configuration file")
	fps := flag.Int("fps", 0, "frame rate cap (overrides config)")
	density := flag.Float64("density", 0, "rain column density (overrides config)")
	chars := flag.String("chars", "", "rain character set (overrides config)")
	colors := flag.String("color", "", "comma-separated rain palette, e.g. #003B00,#00FF41 (overrides config)")
	sound := flag.Bool("sound", false, "enable audio cues")
	logPath := flag.String("log", "", "log file path (empty disables logging)")
	debug := flag.Bool("debug", false, "log at debug level")
	flag.Parse()

	log, closeLog := buildLogger(*logPath, *debug)
	defer closeLog()

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
	}
	if *fps > 0 {
		cfg.Engine.FPS = *fps
	}
	if *density > 0 {
		cfg.Rain.Density = *density
	}
	if *chars != "" {
		cfg.Rain.CharSet = *chars
	}
	if *colors != "" {
		cfg.Rain.Palette = strings.Split(*colors, ",")
	}
	if *sound {
		cfg.Engine.Sound = true
	}
	cfg = cfg.Sanitized(log)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	reg := status.NewRegistry()
	ctrl, err := engine.NewController(screen, cfg.Engine, log, reg)
	if err != nil {
		screen.Fini()
		log.Errorw("initialization failed, animation disabled", "error", err)
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	rainField := rain.New(cfg.Rain, log, reg)
	pointerTrail := trail.New(cfg.Trail, log, reg)
	ctrl.Attach(rainField)
	ctrl.Attach(pointerTrail)
	ctrl.Hub().Subscribe(engine.EventPointerMove, pointerTrail.OnPointerMove)

	if cfg.Engine.Sound {
		player := audio.NewPlayer(log)
		defer player.Close()
		rainField.SetResetHook(func() { player.Tick(parameter.CueResetFreq) })
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	ctrl.Start()
	select {
	case <-ctrl.Done():
	case <-sig:
	}
	ctrl.Destroy()

	log.Infow("session ended",
		"frames", reg.Ints.Get("driver.frames").Load(),
		"drop_resets", reg.Ints.Get("rain.resets").Load(),
		"particles_spawned", reg.Ints.Get("trail.spawned").Load(),
		"particles_evicted", reg.Ints.Get("trail.evicted").Load(),
		"suspends", reg.Ints.Get("controller.suspends").Load(),
	)
}
