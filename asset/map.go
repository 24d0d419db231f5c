package asset

import (
	"encoding/json"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"github.com/lixenwraith/brickstorm/engine"
	"github.com/lixenwraith/brickstorm/vmath"
)

// ErrInvalidPart marks a part record that cannot become a box
var ErrInvalidPart = errors.New("invalid map part")

type xyz struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v xyz) vec() mgl64.Vec3 { return mgl64.Vec3{v.X, v.Y, v.Z} }

type rgb struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Part is one map record, keys as exported by the level editor
type Part struct {
	Position     xyz     `json:"p"`
	Rotation     xyz     `json:"r"` // Degrees, Euler order YXZ
	Size         xyz     `json:"s"`
	Color        rgb     `json:"c"` // 0-255 per channel
	Transparency float64 `json:"t"`
	Anchored     bool    `json:"a"`
	Collide      bool    `json:"co"`
}

// Spec converts the record into a coordinator part
func (p Part) Spec() engine.PartSpec {
	return engine.PartSpec{
		Position: p.Position.vec(),
		Rotation: vmath.EulerYXZToQuat(
			vmath.DegToRad(p.Rotation.X),
			vmath.DegToRad(p.Rotation.Y),
			vmath.DegToRad(p.Rotation.Z),
		),
		Size:         p.Size.vec(),
		Color:        colorful.Color{R: p.Color.R / 255, G: p.Color.G / 255, B: p.Color.B / 255}.Clamped(),
		Transparency: p.Transparency,
		Anchored:     p.Anchored,
		Collide:      p.Collide,
	}
}

func (p Part) validate() error {
	if p.Size.X <= 0 || p.Size.Y <= 0 || p.Size.Z <= 0 {
		return errors.Wrapf(ErrInvalidPart, "size %v", p.Size.vec())
	}
	return nil
}

// DecodeMap parses a JSON array of part records
func DecodeMap(r io.Reader) ([]Part, error) {
	var parts []Part
	if err := json.NewDecoder(r).Decode(&parts); err != nil {
		return nil, errors.Wrap(err, "decode map")
	}
	for i, p := range parts {
		if err := p.validate(); err != nil {
			return nil, errors.Wrapf(err, "part %d", i)
		}
	}
	return parts, nil
}

// LoadMap reads a map file from disk
func LoadMap(path string) ([]Part, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open map")
	}
	defer f.Close()
	parts, err := DecodeMap(f)
	if err != nil {
		return nil, errors.Wrapf(err, "map %s", path)
	}
	return parts, nil
}

// Adder receives parts; satisfied by the coordinator
type Adder interface {
	AddPart(spec engine.PartSpec) *engine.Facade
}

// Populate adds every part to dst in file order
func Populate(dst Adder, parts []Part) []*engine.Facade {
	out := make([]*engine.Facade, 0, len(parts))
	for _, p := range parts {
		out = append(out, dst.AddPart(p.Spec()))
	}
	return out
}
