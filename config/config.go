package config

import (
	"io"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/lixenwraith/brickstorm/audio"
	"github.com/lixenwraith/brickstorm/core"
	"github.com/lixenwraith/brickstorm/engine"
	"github.com/lixenwraith/brickstorm/hazard"
	"github.com/lixenwraith/brickstorm/network"
	"github.com/lixenwraith/brickstorm/parameter"
	"github.com/lixenwraith/brickstorm/physics"
)

// ErrInvalid marks a config that decoded but cannot be used
var ErrInvalid = errors.New("invalid config")

// Config is the sandbox TOML file; every field defaults from parameter
type Config struct {
	// Map is a part-record JSON file; empty loads the built-in demo map
	Map string `toml:"map"`

	World   WorldConfig   `toml:"world"`
	Player  PlayerConfig  `toml:"player"`
	Tornado TornadoConfig `toml:"tornado"`
	Render  RenderConfig  `toml:"render"`
	Feed    FeedConfig    `toml:"feed"`
	Log     LogConfig     `toml:"log"`
	Audio   AudioConfig   `toml:"audio"`
}

type WorldConfig struct {
	Gravity        float64 `toml:"gravity"`
	FixedStep      float64 `toml:"fixed_step"`
	MaxSubSteps    int     `toml:"max_sub_steps"`
	Iterations     int     `toml:"iterations"`
	Restitution    float64 `toml:"restitution"`
	Friction       float64 `toml:"friction"`
	LinearDamping  float64 `toml:"linear_damping"`
	AngularDamping float64 `toml:"angular_damping"`
	SleepSpeed     float64 `toml:"sleep_speed"`
	SleepTime      float64 `toml:"sleep_time"`
	FloorAxis      string  `toml:"floor_axis"`
	FloorThreshold float64 `toml:"floor_threshold"`
}

type PlayerConfig struct {
	Spawn       [3]float64 `toml:"spawn"`
	MoveAccel   float64    `toml:"move_accel"`
	JumpImpulse float64    `toml:"jump_impulse"`
	TurnRate    float64    `toml:"turn_rate"`
}

type TornadoConfig struct {
	Enabled         bool    `toml:"enabled"`
	Model           string  `toml:"model"` // lift or attract
	CaptureRadiusSq float64 `toml:"capture_radius_sq"`
	Step            float64 `toml:"step"`
	Jitter          float64 `toml:"jitter"`
	Lift            float64 `toml:"lift"`
	HalfHeight      float64 `toml:"half_height"`
	Seed            uint64  `toml:"seed"` // 0 seeds from the clock
}

type RenderConfig struct {
	Color         string        `toml:"color"` // auto, truecolor or 256
	FrameInterval time.Duration `toml:"frame_interval"`
}

type FeedConfig struct {
	Enabled    bool   `toml:"enabled"`
	Address    string `toml:"address"`
	Path       string `toml:"path"`
	MaxClients int    `toml:"max_clients"`
	SendQueue  int    `toml:"send_queue"`
}

type LogConfig struct {
	Debug   bool   `toml:"debug"`
	Dir     string `toml:"dir"`
	File    string `toml:"file"`
	Level   string `toml:"level"`
	MaxSize int64  `toml:"max_size"`
}

type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"`
}

// Default returns the built-in configuration
func Default() Config {
	feed := network.DefaultConfig()
	lg := core.DefaultLogConfig()
	return Config{
		World: WorldConfig{
			Gravity:        parameter.GravityY,
			FixedStep:      parameter.FixedStep,
			MaxSubSteps:    parameter.MaxSubSteps,
			Iterations:     parameter.SolverIterations,
			Restitution:    parameter.Restitution,
			Friction:       parameter.Friction,
			LinearDamping:  parameter.LinearDamping,
			AngularDamping: parameter.AngularDamping,
			SleepSpeed:     parameter.SleepSpeed,
			SleepTime:      parameter.SleepTime,
			FloorAxis:      parameter.FloorAxis,
			FloorThreshold: parameter.FloorThreshold,
		},
		Player: PlayerConfig{
			Spawn:       [3]float64{parameter.PlayerSpawnX, parameter.PlayerSpawnY, parameter.PlayerSpawnZ},
			MoveAccel:   parameter.PlayerMoveAccel,
			JumpImpulse: parameter.PlayerJumpImpulse,
			TurnRate:    parameter.PlayerTurnRate,
		},
		Tornado: TornadoConfig{
			Enabled:         true,
			Model:           hazard.ModelLift.String(),
			CaptureRadiusSq: parameter.TornadoCaptureRadiusSq,
			Step:            parameter.TornadoStep,
			Jitter:          parameter.TornadoJitter,
			Lift:            parameter.TornadoLift,
			HalfHeight:      parameter.TornadoMarkerHalfHeight,
		},
		Render: RenderConfig{
			Color:         "auto",
			FrameInterval: parameter.FrameUpdateInterval,
		},
		Feed: FeedConfig{
			Enabled:    feed.Enabled,
			Address:    feed.Address,
			Path:       feed.Path,
			MaxClients: feed.MaxClients,
			SendQueue:  feed.SendQueueSize,
		},
		Log: LogConfig{
			Debug:   lg.Debug,
			Dir:     lg.Dir,
			File:    lg.FileName,
			Level:   lg.Level,
			MaxSize: lg.MaxSize,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  parameter.CaptureCueVolume,
		},
	}
}

// Load overlays the TOML file at path on the defaults
// Unknown keys are an error so typos do not silently fall back to defaults
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrapf(err, "config %s", path)
	}
	if err := checkUndecoded(md); err != nil {
		return cfg, errors.Wrapf(err, "config %s", path)
	}
	return cfg, cfg.Validate()
}

// Decode overlays TOML text on the defaults
func Decode(text string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return cfg, errors.Wrap(err, "config")
	}
	if err := checkUndecoded(md); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func checkUndecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	sort.Strings(names)
	return errors.Wrapf(ErrInvalid, "unknown keys: %s", strings.Join(names, ", "))
}

// Write encodes cfg as TOML
func Write(w io.Writer, cfg Config) error {
	return errors.Wrap(toml.NewEncoder(w).Encode(cfg), "encode config")
}

// Validate rejects values the simulation cannot run with
func (c Config) Validate() error {
	switch c.World.FloorAxis {
	case "x", "y", "z":
	default:
		return errors.Wrapf(ErrInvalid, "world.floor_axis %q", c.World.FloorAxis)
	}
	if c.World.FixedStep <= 0 {
		return errors.Wrapf(ErrInvalid, "world.fixed_step %v", c.World.FixedStep)
	}
	if c.World.MaxSubSteps < 1 || c.World.Iterations < 1 {
		return errors.Wrap(ErrInvalid, "world.max_sub_steps and world.iterations must be positive")
	}
	if _, err := hazard.ParseModel(c.Tornado.Model); err != nil {
		return errors.Wrap(ErrInvalid, err.Error())
	}
	if c.Tornado.CaptureRadiusSq < 0 {
		return errors.Wrapf(ErrInvalid, "tornado.capture_radius_sq %v", c.Tornado.CaptureRadiusSq)
	}
	if c.Render.FrameInterval <= 0 {
		return errors.Wrapf(ErrInvalid, "render.frame_interval %v", c.Render.FrameInterval)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return errors.Wrapf(ErrInvalid, "audio.volume %v", c.Audio.Volume)
	}
	return nil
}

// Physics returns solver options for either simulation
func (c Config) Physics() physics.Options {
	o := physics.DefaultOptions()
	w := c.World
	o.Gravity = mgl64.Vec3{0, w.Gravity, 0}
	o.FixedStep = w.FixedStep
	o.MaxSubSteps = w.MaxSubSteps
	o.Iterations = w.Iterations
	o.Restitution = w.Restitution
	o.Friction = w.Friction
	o.LinearDamping = w.LinearDamping
	o.AngularDamping = w.AngularDamping
	o.SleepSpeed = w.SleepSpeed
	o.SleepTime = w.SleepTime
	return o
}

// Engine returns the coordinator configuration
func (c Config) Engine() engine.Config {
	return engine.Config{
		World:          c.Physics(),
		Player:         c.Physics(),
		FloorAxis:      c.World.FloorAxis,
		FloorThreshold: c.World.FloorThreshold,
	}
}

// Hazard returns the tornado configuration; seed 0 takes the given fallback
func (c Config) Hazard(fallbackSeed uint64) hazard.Config {
	h := hazard.DefaultConfig()
	h.Model, _ = hazard.ParseModel(c.Tornado.Model)
	h.CaptureRadiusSq = c.Tornado.CaptureRadiusSq
	h.Step = c.Tornado.Step
	h.Jitter = c.Tornado.Jitter
	h.Lift = c.Tornado.Lift
	h.Gravity = -c.World.Gravity
	h.Dt = c.Render.FrameInterval.Seconds()
	h.Seed = c.Tornado.Seed
	if h.Seed == 0 {
		h.Seed = fallbackSeed
	}
	return h
}

func (c Config) Network() network.Config {
	n := network.DefaultConfig()
	n.Enabled = c.Feed.Enabled
	n.Address = c.Feed.Address
	n.Path = c.Feed.Path
	n.MaxClients = c.Feed.MaxClients
	n.SendQueueSize = c.Feed.SendQueue
	return n
}

func (c Config) Sound() audio.Config {
	a := audio.DefaultConfig()
	a.Enabled = c.Audio.Enabled
	a.Volume = c.Audio.Volume
	return a
}

func (c Config) Logging() core.LogConfig {
	return core.LogConfig{
		Debug:    c.Log.Debug,
		Dir:      c.Log.Dir,
		FileName: c.Log.File,
		MaxSize:  c.Log.MaxSize,
		Level:    c.Log.Level,
	}
}

// SpawnPoint is the player spawn position
func (c Config) SpawnPoint() mgl64.Vec3 {
	return mgl64.Vec3(c.Player.Spawn)
}
