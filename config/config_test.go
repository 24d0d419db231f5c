package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/lixenwraith/brickstorm/hazard"
	"github.com/lixenwraith/brickstorm/parameter"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.World.FloorAxis != "z" || cfg.World.FloorThreshold != -300 {
		t.Errorf("floor = %s %v", cfg.World.FloorAxis, cfg.World.FloorThreshold)
	}
	if cfg.Tornado.CaptureRadiusSq != 102 {
		t.Errorf("capture radius² = %v, want 102", cfg.Tornado.CaptureRadiusSq)
	}
	if cfg.SpawnPoint() != (mgl64.Vec3{0, 10, 0}) {
		t.Errorf("spawn = %v", cfg.SpawnPoint())
	}
}

func TestDecodeOverlaysDefaults(t *testing.T) {
	cfg, err := Decode(`
map = "maps/city.json"

[world]
floor_axis = "y"
iterations = 8

[tornado]
model = "attract"
seed = 99

[render]
frame_interval = "33ms"

[feed]
enabled = true
address = ":9000"
`)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Map != "maps/city.json" || cfg.World.FloorAxis != "y" || cfg.World.Iterations != 8 {
		t.Errorf("overrides lost: %+v", cfg.World)
	}
	// Untouched keys keep their defaults
	if cfg.World.FixedStep != parameter.FixedStep || cfg.Player.MoveAccel != parameter.PlayerMoveAccel {
		t.Error("defaults not kept")
	}
	if cfg.Render.FrameInterval != 33*time.Millisecond {
		t.Errorf("frame interval = %v", cfg.Render.FrameInterval)
	}

	h := cfg.Hazard(7)
	if h.Model != hazard.ModelAttract || h.Seed != 99 {
		t.Errorf("hazard = %+v", h)
	}
	if n := cfg.Network(); !n.Enabled || n.Address != ":9000" || n.Path != parameter.FeedPath {
		t.Errorf("network = %+v", n)
	}
	if e := cfg.Engine(); e.FloorAxis != "y" || e.World.Iterations != 8 || e.Player.Iterations != 8 {
		t.Errorf("engine = %+v", e)
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"unknown key", "[world]\nfloor_axes = \"z\""},
		{"bad axis", "[world]\nfloor_axis = \"w\""},
		{"zero step", "[world]\nfixed_step = 0.0"},
		{"bad model", "[tornado]\nmodel = \"vortex\""},
		{"loud", "[audio]\nvolume = 2.0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.text)
			if errors.Cause(err) != ErrInvalid {
				t.Errorf("err = %v, want ErrInvalid", err)
			}
		})
	}

	if _, err := Decode("[world"); err == nil || errors.Cause(err) == ErrInvalid {
		t.Errorf("syntax error = %v", err)
	}
}

func TestWriteLoadRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Tornado.Seed = 5
	cfg.Log.Debug = true

	var buf bytes.Buffer
	if err := Write(&buf, cfg); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "sandbox.toml")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v\n%s", err, buf.String())
	}
	if got != cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "none.toml")); err == nil {
		t.Error("missing file must fail")
	}
}

func TestDerivedConfigs(t *testing.T) {
	cfg := Default()
	p := cfg.Physics()
	if p.Gravity != (mgl64.Vec3{0, parameter.GravityY, 0}) || p.FixedStep != parameter.FixedStep {
		t.Errorf("physics = %+v", p)
	}
	if h := cfg.Hazard(11); h.Seed != 11 || h.Gravity != parameter.GravityMagnitude {
		t.Errorf("hazard = %+v", h)
	}
	if l := cfg.Logging(); l.Debug || l.FileName != parameter.LogFileName {
		t.Errorf("logging = %+v", l)
	}
	if a := cfg.Sound(); !a.Enabled || a.Volume != parameter.CaptureCueVolume {
		t.Errorf("audio = %+v", a)
	}
}
