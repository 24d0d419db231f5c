package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/lixenwraith/brickstorm/asset"
	"github.com/lixenwraith/brickstorm/audio"
	"github.com/lixenwraith/brickstorm/config"
	"github.com/lixenwraith/brickstorm/core"
	"github.com/lixenwraith/brickstorm/engine"
	"github.com/lixenwraith/brickstorm/hazard"
	"github.com/lixenwraith/brickstorm/network"
	"github.com/lixenwraith/brickstorm/parameter"
	"github.com/lixenwraith/brickstorm/render"
	"github.com/lixenwraith/brickstorm/status"
)

var (
	configFlag      = flag.String("config", "", "TOML config file")
	debugFlag       = flag.Bool("debug", false, "Write debug logs under the log directory")
	mapFlag         = flag.String("map", "", "Map JSON file (default: built-in demo map)")
	feedFlag        = flag.String("feed", "", "Serve the websocket transform feed on this address")
	colorFlag       = flag.String("color", "", "Color mode: auto, truecolor, 256")
	muteFlag        = flag.Bool("mute", false, "Disable the capture sound")
	writeConfigFlag = flag.Bool("write-config", false, "Print the effective config as TOML and exit")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	if *writeConfigFlag {
		if err := config.Write(os.Stdout, cfg); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	logger, logFile := core.SetupLogging(cfg.Logging())
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("sandbox exited", "err", err)
		fmt.Fprintf(os.Stderr, "brickstorm: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, then applies flags on top
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configFlag != "" {
		var err error
		if cfg, err = config.Load(*configFlag); err != nil {
			return cfg, err
		}
	}
	if *debugFlag {
		cfg.Log.Debug = true
	}
	if *mapFlag != "" {
		cfg.Map = *mapFlag
	}
	if *feedFlag != "" {
		cfg.Feed.Enabled = true
		cfg.Feed.Address = *feedFlag
	}
	if *colorFlag != "" {
		cfg.Render.Color = *colorFlag
	}
	if *muteFlag {
		cfg.Audio.Enabled = false
	}
	return cfg, cfg.Validate()
}

func applyColorMode(mode string) {
	switch mode {
	case "256":
		os.Setenv("TCELL_TRUECOLOR", "disable")
	case "truecolor", "true", "24bit":
		os.Setenv("COLORTERM", "truecolor")
	}
}

func run(cfg config.Config, logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	parts, err := loadMap(cfg.Map)
	if err != nil {
		return err
	}

	applyColorMode(cfg.Render.Color)
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "terminal")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "terminal init")
	}
	core.RegisterCrashScreen(screen)
	defer screen.Fini()

	reg := status.NewRegistry()
	defer func() {
		for _, e := range reg.Snapshot() {
			logger.Debug("final metric", "key", e.Key, "value", e.Value)
		}
	}()
	clock := engine.NewPausableClock(nil)
	coord := engine.NewCoordinator(cfg.Engine(), clock, reg, logger)
	coord.Start(ctx)
	defer coord.Close()

	// Optional transform feed
	var feed *network.Feed
	if netCfg := cfg.Network(); netCfg.Enabled {
		feed = network.NewFeed(netCfg, reg, logger)
		if err := feed.Start(); err != nil {
			return err
		}
		defer feed.Close()
		coord.OnTransform(feed.PublishTransforms)
		coord.OnDispose(feed.PublishDispose)
	}

	// Audio is non-fatal: the sandbox runs silent when the speaker cannot open
	cue, err := audio.NewCaptureCue(cfg.Sound())
	if err != nil {
		logger.Warn("audio unavailable, continuing without sound", "err", err)
	}
	defer cue.Close()

	tornado := hazard.New(cfg.Hazard(uint64(time.Now().UnixNano())), coord, reg, logger)
	tornado.OnCapture(func(*engine.Facade) { cue.Play() })
	if cfg.Tornado.Enabled {
		tornado.Activate(cfg.Tornado.HalfHeight)
	}

	asset.Populate(coord, parts)
	if feed != nil {
		feed.Seed(coord.Facades())
	}
	coord.SpawnPlayer(cfg.SpawnPoint())
	logger.Info("sandbox started", "parts", len(parts), "spawn", cfg.SpawnPoint())

	return loop(ctx, cfg, screen, clock, coord, tornado, reg, logger)
}

func loadMap(path string) ([]asset.Part, error) {
	if path == "" {
		return asset.DefaultMap()
	}
	return asset.LoadMap(path)
}

// loop is the frame loop; it owns the coordinator, the tornado and the viewer
func loop(ctx context.Context, cfg config.Config, screen tcell.Screen, clock *engine.PausableClock,
	coord *engine.Coordinator, tornado *hazard.Tornado, reg *status.Registry, logger *log.Logger) error {

	viewer := render.NewViewer(screen)
	input := newControls(cfg.Player.MoveAccel, cfg.Player.JumpImpulse, cfg.Player.TurnRate)
	frameDt := cfg.Render.FrameInterval.Seconds()

	eventChan := make(chan tcell.Event, 256)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	})

	frameTicker := time.NewTicker(cfg.Render.FrameInterval)
	defer frameTicker.Stop()

	captures := reg.Ints.Get(status.KeyCaptures)
	disposals := reg.Ints.Get(status.KeyDisposals)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-eventChan:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !input.handle(ev) {
					logger.Info("quit requested")
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case <-frameTicker.C:
			if input.takePause() {
				logger.Info("pause toggled", "paused", clock.Toggle())
			}
			paused := clock.IsPaused()

			if dv, ok := input.impulse(frameDt); ok && !paused {
				if err := coord.PlayerImpulse(dv); err != nil {
					logger.Warn("player impulse dropped", "err", err)
				}
			}

			var msg string
			if err := coord.Tick(); err != nil {
				if errors.Cause(err) != engine.ErrMissingController {
					return err
				}
				msg = "no player"
			}
			if paused {
				msg = "paused"
			} else {
				tornado.Step()
			}

			eye := mgl64.Vec3(cfg.Player.Spawn)
			if pos, ok := coord.PlayerPosition(); ok {
				eye = pos
			}
			worldBusy, playerBusy := coord.InFlight()
			viewer.Draw(render.Scene{
				Camera: render.Camera{
					Position: eye.Add(mgl64.Vec3{0, parameter.EyeHeight, 0}),
					Yaw:      input.yaw,
					Pitch:    input.pitch,
				},
				Facades: coord.Facades(),
				Tornado: render.Marker{
					Active:     tornado.State() == hazard.StateActive,
					Base:       tornado.Position(),
					HalfHeight: cfg.Tornado.HalfHeight,
					Spin:       tornado.Spin(),
				},
				Stats: render.Stats{
					Bodies:         len(coord.Facades()),
					Captures:       captures.Load(),
					Disposals:      disposals.Load(),
					WorldInFlight:  worldBusy,
					PlayerInFlight: playerBusy,
					Message:        msg,
				},
			})
		}
	}
}
