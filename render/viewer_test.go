package render

import (
	"io"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/brickstorm/engine"
	"github.com/lixenwraith/brickstorm/parameter"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)
	return screen
}

func rowText(screen tcell.Screen, y int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestProjectCenterAndSides(t *testing.T) {
	p := NewProjection(Camera{}, 80, 24)

	sx, sy, depth, ok := p.Project(mgl64.Vec3{0, 0, 10})
	if !ok || sx != 40 || sy != 12 || depth != 10 {
		t.Errorf("ahead = %v %v %v %v", sx, sy, depth, ok)
	}

	// Looking down +Z with Y up, screen right is -X
	if sx, _, _, _ := p.Project(mgl64.Vec3{-1, 0, 10}); sx <= 40 {
		t.Errorf("-X landed left: %v", sx)
	}
	if _, sy, _, _ := p.Project(mgl64.Vec3{0, 1, 10}); sy >= 12 {
		t.Errorf("+Y landed low: %v", sy)
	}
	if _, _, _, ok := p.Project(mgl64.Vec3{0, 0, -5}); ok {
		t.Error("point behind the camera projected")
	}
	if _, _, _, ok := p.Project(mgl64.Vec3{0, 0, parameter.FarPlane + 1}); ok {
		t.Error("point past the far plane projected")
	}
}

func TestProjectFollowsYaw(t *testing.T) {
	p := NewProjection(Camera{Yaw: math.Pi / 2}, 80, 24)
	sx, sy, depth, ok := p.Project(mgl64.Vec3{10, 0, 0})
	if !ok || math.Abs(sx-40) > 1e-9 || math.Abs(sy-12) > 1e-9 || math.Abs(depth-10) > 1e-9 {
		t.Errorf("yawed ahead = %v %v %v %v", sx, sy, depth, ok)
	}
}

func TestProjectBoxClipsToView(t *testing.T) {
	p := NewProjection(Camera{}, 80, 24)
	r, _, ok := p.ProjectBox(mgl64.Vec3{0, 0, 2}, mgl64.QuatIdent(), mgl64.Vec3{50, 50, 0.5})
	if !ok {
		t.Fatal("huge box in front must be visible")
	}
	if r.x0 != 0 || r.y0 != 0 || r.x1 != 79 || r.y1 != 23 {
		t.Errorf("rect = %+v, want full view", r)
	}

	if _, _, ok := p.ProjectBox(mgl64.Vec3{0, 0, -10}, mgl64.QuatIdent(), mgl64.Vec3{1, 1, 1}); ok {
		t.Error("box behind camera visible")
	}
}

func newCoordinator() *engine.Coordinator {
	return engine.NewCoordinator(engine.DefaultConfig(), nil, nil, log.New(io.Discard))
}

func TestViewerDrawsBoxesAndHUD(t *testing.T) {
	screen := newScreen(t)
	c := newCoordinator()
	c.AddPart(engine.PartSpec{
		Position: mgl64.Vec3{0, 0, 10},
		Size:     mgl64.Vec3{2, 2, 2},
		Color:    colorful.Color{R: 1},
		Anchored: true,
	})

	v := NewViewer(screen)
	v.Draw(Scene{
		Facades: c.Facades(),
		Stats:   Stats{Bodies: len(c.Facades()), Captures: 3, WorldInFlight: true},
	})

	r, _, style, _ := screen.GetContent(43, 11)
	if r != parameter.BoxChar {
		t.Errorf("cell = %q, want box glyph", r)
	}
	fg, _, _ := style.Decompose()
	if red, _, _ := fg.RGB(); red < 200 {
		t.Errorf("box foreground red = %d, want near 255", red)
	}

	hud := rowText(screen, 23)
	if !strings.Contains(hud, "bodies 1") || !strings.Contains(hud, "captured 3") || !strings.Contains(hud, "step busy/idle") {
		t.Errorf("hud = %q", hud)
	}
	if v.Frames() != 1 {
		t.Errorf("frames = %d", v.Frames())
	}
}

func TestViewerNearerBoxWins(t *testing.T) {
	screen := newScreen(t)
	c := newCoordinator()
	c.AddPart(engine.PartSpec{Position: mgl64.Vec3{0, 0, 30}, Size: mgl64.Vec3{8, 8, 1}, Color: colorful.Color{B: 1}, Anchored: true})
	c.AddPart(engine.PartSpec{Position: mgl64.Vec3{0, 0, 10}, Size: mgl64.Vec3{2, 2, 2}, Color: colorful.Color{R: 1}, Anchored: true})

	NewViewer(screen).Draw(Scene{Facades: c.Facades()})

	_, _, style, _ := screen.GetContent(43, 11)
	fg, _, _ := style.Decompose()
	red, _, blue := fg.RGB()
	if red < blue {
		t.Errorf("far box painted over near box: r=%d b=%d", red, blue)
	}
}

func TestTransparencyBlendsTowardBackground(t *testing.T) {
	opaque := shade(colorful.Color{R: 1}, Background, 0, 0)
	clear := shade(colorful.Color{R: 1}, Background, 1, 0)
	if opaque.DistanceRgb(colorful.Color{R: 1}) > 1e-6 {
		t.Errorf("opaque = %v", opaque)
	}
	if clear.DistanceRgb(Background) > 1e-6 {
		t.Errorf("fully transparent = %v, want background", clear)
	}
}

func TestViewerDrawsActiveTornado(t *testing.T) {
	screen := newScreen(t)
	v := NewViewer(screen)
	scene := Scene{
		Camera:  Camera{Position: mgl64.Vec3{0, 2, 0}},
		Tornado: Marker{Base: mgl64.Vec3{0, 0, 40}, HalfHeight: 6},
	}

	v.Draw(scene)
	if countRune(screen, parameter.TornadoChar) != 0 {
		t.Error("idle tornado drawn")
	}

	scene.Tornado.Active = true
	v.Draw(scene)
	if countRune(screen, parameter.TornadoChar) == 0 {
		t.Error("active tornado not drawn")
	}
}

func countRune(screen tcell.Screen, want rune) int {
	w, h := screen.Size()
	n := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if r, _, _, _ := screen.GetContent(x, y); r == want {
				n++
			}
		}
	}
	return n
}
