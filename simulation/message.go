// Package simulation runs the world and player rigid-body simulations as message-driven actors
package simulation

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/brickstorm/physics"
)

// Kind identifies a message on a simulation channel
type Kind uint8

const (
	KindAdd Kind = iota
	KindApplyImpulse
	KindUnanchor
	KindStep
	KindUpdate // Response only
	KindAddController
	KindAddMirror
	KindUpdateMirror
	KindRemove
)

var kindNames = [...]string{
	KindAdd:           "add",
	KindApplyImpulse:  "applyImpulse",
	KindUnanchor:      "unanchor",
	KindStep:          "step",
	KindUpdate:        "update",
	KindAddController: "addController",
	KindAddMirror:     "addMirror",
	KindUpdateMirror:  "updateMirror",
	KindRemove:        "remove",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Message is a plain value exchanged between the coordinator and a simulation
// Fields are interpreted per Kind; nothing is shared by pointer
type Message struct {
	Kind Kind
	UUID uint64 // Correlation key for add, applyImpulse, unanchor, addMirror, updateMirror, remove
	Seq  uint64 // Step sequence, echoed on the matching update

	Body physics.BodySpec // add, addController, addMirror

	Vector   mgl64.Vec3 // applyImpulse Δv, updateMirror position, player update position
	Rotation mgl64.Quat // updateMirror orientation
	Dt       float64    // step, seconds

	// World update batch; freshly allocated per step, ownership passes to the receiver
	Updates []physics.Update
}

func AddMessage(uuid uint64, spec physics.BodySpec) Message {
	return Message{Kind: KindAdd, UUID: uuid, Body: spec}
}

func ImpulseMessage(uuid uint64, dv mgl64.Vec3) Message {
	return Message{Kind: KindApplyImpulse, UUID: uuid, Vector: dv}
}

func UnanchorMessage(uuid uint64) Message {
	return Message{Kind: KindUnanchor, UUID: uuid}
}

func StepMessage(seq uint64, dt float64) Message {
	return Message{Kind: KindStep, Seq: seq, Dt: dt}
}

func RemoveMessage(uuid uint64) Message {
	return Message{Kind: KindRemove, UUID: uuid}
}

func AddControllerMessage(spec physics.BodySpec) Message {
	return Message{Kind: KindAddController, Body: spec}
}

func AddMirrorMessage(uuid uint64, spec physics.BodySpec) Message {
	return Message{Kind: KindAddMirror, UUID: uuid, Body: spec}
}

func UpdateMirrorMessage(uuid uint64, pos mgl64.Vec3, q mgl64.Quat) Message {
	return Message{Kind: KindUpdateMirror, UUID: uuid, Vector: pos, Rotation: q}
}
