package network

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/lixenwraith/brickstorm/engine"
)

// FrameType identifies the content of a feed frame
type FrameType string

const (
	FrameSnapshot   FrameType = "snapshot"   // Every live body, sent once on connect
	FrameTransforms FrameType = "transforms" // Bodies moved by one world batch
	FrameDispose    FrameType = "dispose"    // One body removed for good
)

// Body is one transform on the wire; Q is w, x, y, z
type Body struct {
	UUID uint64     `msgpack:"uuid"`
	P    [3]float64 `msgpack:"p"`
	Q    [4]float64 `msgpack:"q"`
}

// Frame is one binary websocket message
type Frame struct {
	Type   FrameType `msgpack:"type"`
	Seq    uint64    `msgpack:"seq"`
	Bodies []Body    `msgpack:"bodies,omitempty"`
	UUID   uint64    `msgpack:"uuid,omitempty"`
}

func bodyOf(uuid uint64, p mgl64.Vec3, q mgl64.Quat) Body {
	return Body{
		UUID: uuid,
		P:    [3]float64{p.X(), p.Y(), p.Z()},
		Q:    [4]float64{q.W, q.X(), q.Y(), q.Z()},
	}
}

// Position converts the wire position back to a vector
func (b Body) Position() mgl64.Vec3 { return mgl64.Vec3(b.P) }

// Rotation converts the wire quaternion back
func (b Body) Rotation() mgl64.Quat {
	return mgl64.Quat{W: b.Q[0], V: mgl64.Vec3{b.Q[1], b.Q[2], b.Q[3]}}
}

// BodiesFromUpdates converts a coordinator batch
func BodiesFromUpdates(updates []engine.TransformUpdate) []Body {
	out := make([]Body, len(updates))
	for i, u := range updates {
		out[i] = bodyOf(u.UUID, u.Position, u.Rotation)
	}
	return out
}

// BodiesFromFacades converts live facades, skipping disposed ones
func BodiesFromFacades(facades []*engine.Facade) []Body {
	out := make([]Body, 0, len(facades))
	for _, f := range facades {
		if f.Disposed() {
			continue
		}
		out = append(out, bodyOf(f.UUID(), f.Position(), f.Rotation()))
	}
	return out
}

// Encode serializes a frame
func (f *Frame) Encode() ([]byte, error) {
	data, err := msgpack.Marshal(f)
	if err != nil {
		return nil, errors.Wrapf(err, "encode %s frame", f.Type)
	}
	return data, nil
}

// DecodeFrame parses a frame
func DecodeFrame(data []byte) (*Frame, error) {
	var f Frame
	if err := msgpack.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "decode frame")
	}
	return &f, nil
}
