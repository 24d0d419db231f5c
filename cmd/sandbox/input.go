package main

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
)

// maxPitch keeps the view short of straight up or down
const maxPitch = 1.2

// controls accumulates key presses between frames
// Terminals report no key release, so each press is one frame's worth of input
type controls struct {
	moveAccel float64
	jump      float64
	turnRate  float64

	yaw, pitch float64

	forward, strafe int
	jumps           int
	pause           bool
	quit            bool
}

func newControls(moveAccel, jump, turnRate float64) *controls {
	return &controls{moveAccel: moveAccel, jump: jump, turnRate: turnRate}
}

// handle records one key event; returns false when the event asks to quit
func (c *controls) handle(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		c.quit = true
	case tcell.KeyLeft:
		c.yaw += c.turnRate
	case tcell.KeyRight:
		c.yaw -= c.turnRate
	case tcell.KeyUp:
		c.pitch = math.Min(c.pitch+c.turnRate, maxPitch)
	case tcell.KeyDown:
		c.pitch = math.Max(c.pitch-c.turnRate, -maxPitch)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			c.quit = true
		case 'w', 'W':
			c.forward++
		case 's', 'S':
			c.forward--
		case 'a', 'A':
			c.strafe--
		case 'd', 'D':
			c.strafe++
		case ' ':
			c.jumps++
		case 'p', 'P':
			c.pause = !c.pause
		}
	}
	return !c.quit
}

// impulse drains the pending input into one player velocity change
// Movement is horizontal along the current heading, scaled by dt; jump is a flat vertical Δv
func (c *controls) impulse(dt float64) (mgl64.Vec3, bool) {
	if c.forward == 0 && c.strafe == 0 && c.jumps == 0 {
		return mgl64.Vec3{}, false
	}

	fwd := mgl64.Vec3{math.Sin(c.yaw), 0, math.Cos(c.yaw)}
	right := fwd.Cross(mgl64.Vec3{0, 1, 0})

	dv := fwd.Mul(float64(c.forward)).Add(right.Mul(float64(c.strafe)))
	if dv.LenSqr() > 0 {
		dv = dv.Normalize().Mul(c.moveAccel * dt)
	}
	if c.jumps > 0 {
		dv[1] += c.jump
	}

	c.forward, c.strafe, c.jumps = 0, 0, 0
	return dv, true
}

// takePause reports and clears a pending pause toggle
func (c *controls) takePause() bool {
	p := c.pause
	c.pause = false
	return p
}
