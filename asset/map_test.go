package asset

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/lixenwraith/brickstorm/engine"
	"github.com/lixenwraith/brickstorm/vmath"
)

const twoParts = `[
{"c":{"r":255,"g":0,"b":51},"s":{"x":4,"y":1,"z":2},"p":{"x":1,"y":2,"z":3},"r":{"x":0,"y":90,"z":0},"t":0.25,"a":true,"co":false},
{"c":{"r":0,"g":0,"b":0},"s":{"x":1,"y":1,"z":1},"p":{"x":0,"y":5,"z":0},"r":{"x":0,"y":0,"z":0},"t":0,"a":false,"co":true}
]`

func TestDecodeMapFields(t *testing.T) {
	parts, err := DecodeMap(strings.NewReader(twoParts))
	if err != nil {
		t.Fatal(err)
	}
	if len(parts) != 2 {
		t.Fatalf("len = %d", len(parts))
	}

	spec := parts[0].Spec()
	if spec.Position != (mgl64.Vec3{1, 2, 3}) || spec.Size != (mgl64.Vec3{4, 1, 2}) {
		t.Errorf("position/size = %v %v", spec.Position, spec.Size)
	}
	if !spec.Anchored || spec.Collide || spec.Transparency != 0.25 {
		t.Errorf("flags = %+v", spec)
	}
	if spec.Color.R != 1 || spec.Color.G != 0 || math.Abs(spec.Color.B-0.2) > 1e-12 {
		t.Errorf("color = %v", spec.Color)
	}
	// 90° yaw turns +Z toward +X
	fwd := spec.Rotation.Rotate(mgl64.Vec3{0, 0, 1})
	if !vmath.VecAlmostEqual(fwd, mgl64.Vec3{1, 0, 0}, 1e-9) {
		t.Errorf("rotated forward = %v", fwd)
	}
}

func TestDensityFollowsAnchor(t *testing.T) {
	parts, err := DecodeMap(strings.NewReader(twoParts))
	if err != nil {
		t.Fatal(err)
	}
	c := engine.NewCoordinator(engine.DefaultConfig(), nil, nil, nil)
	facades := Populate(c, parts)

	if facades[0].Mass() != 0 {
		t.Errorf("anchored mass = %v, want 0", facades[0].Mass())
	}
	if facades[1].Mass() != 1 {
		t.Errorf("dynamic mass = %v, want volume", facades[1].Mass())
	}
	if len(c.Facades()) != 2 {
		t.Error("parts not added in full")
	}
}

func TestDecodeMapErrors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		invalid bool
	}{
		{"not json", "{", false},
		{"object not array", `{"p":{}}`, false},
		{"zero size", `[{"s":{"x":0,"y":1,"z":1}}]`, true},
		{"negative size", `[{"s":{"x":1,"y":-1,"z":1}}]`, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeMap(strings.NewReader(tc.in))
			if err == nil {
				t.Fatal("expected error")
			}
			if (errors.Cause(err) == ErrInvalidPart) != tc.invalid {
				t.Errorf("err = %v", err)
			}
		})
	}
}

func TestLoadMapFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.json")
	if err := os.WriteFile(path, []byte(twoParts), 0o644); err != nil {
		t.Fatal(err)
	}
	parts, err := LoadMap(path)
	if err != nil || len(parts) != 2 {
		t.Fatalf("LoadMap = %d, %v", len(parts), err)
	}

	if _, err := LoadMap(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file must fail")
	}
}

func TestDefaultMap(t *testing.T) {
	parts, err := DefaultMap()
	if err != nil {
		t.Fatal(err)
	}
	var anchored, loose int
	for _, p := range parts {
		if p.Anchored {
			anchored++
		} else {
			loose++
		}
	}
	if anchored == 0 || loose == 0 {
		t.Errorf("anchored=%d loose=%d, want both", anchored, loose)
	}
}
