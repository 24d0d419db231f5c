package render

import (
	"fmt"
	"math"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/brickstorm/engine"
	"github.com/lixenwraith/brickstorm/parameter"
)

// Marker is the tornado as the viewer draws it
type Marker struct {
	Active     bool
	Base       mgl64.Vec3 // Ground position
	HalfHeight float64
	Spin       float64
}

// Stats is the HUD line content
type Stats struct {
	Bodies         int
	Captures       int64
	Disposals      int64
	WorldInFlight  bool
	PlayerInFlight bool
	Message        string
}

// Scene is everything drawn in one frame
type Scene struct {
	Camera  Camera
	Facades []*engine.Facade
	Tornado Marker
	Stats   Stats
}

// item is one projected box queued for the painter's pass
type item struct {
	r     rect
	depth float64
	style tcell.Style
	glyph rune
}

// Viewer draws the scene into a tcell screen, far to near
// Draw is called from the frame loop only
type Viewer struct {
	screen tcell.Screen
	bg     colorful.Color
	items  []item
	frames uint64
}

func NewViewer(screen tcell.Screen) *Viewer {
	return &Viewer{screen: screen, bg: Background}
}

// Draw renders one frame and shows it
func (v *Viewer) Draw(s Scene) {
	w, h := v.screen.Size()
	viewH := h - parameter.HUDRows
	if w <= 0 || viewH <= 0 {
		return
	}
	proj := NewProjection(s.Camera, w, viewH)

	v.drawBackdrop(proj)
	v.collect(proj, s.Facades)
	for _, it := range v.items {
		v.fill(it)
	}
	if s.Tornado.Active {
		v.drawTornado(proj, s.Tornado)
	}
	v.screen.SetContent(w/2, viewH/2, parameter.PlayerChar, nil, tcell.StyleDefault.Foreground(RgbCrosshair))
	v.drawHUD(w, h, s.Stats)

	v.frames++
	v.screen.Show()
}

// drawBackdrop paints sky above the horizon and ground below it
func (v *Viewer) drawBackdrop(p Projection) {
	sky := tcell.StyleDefault.Background(toTcell(v.bg))
	ground := tcell.StyleDefault.Background(toTcell(Ground.BlendLab(v.bg, 0.4)))

	// Horizon is where a level direction straight ahead lands
	horizon := float64(p.Height)/2 + math.Tan(p.Pitch)*p.Focal

	for y := 0; y < p.Height; y++ {
		style := sky
		if float64(y) >= horizon {
			style = ground
		}
		for x := 0; x < p.Width; x++ {
			v.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// collect projects every visible facade and sorts far to near
func (v *Viewer) collect(p Projection, facades []*engine.Facade) {
	v.items = v.items[:0]
	for _, f := range facades {
		if f.Disposed() {
			continue
		}
		r, depth, ok := p.ProjectBox(f.Position(), f.Rotation(), f.HalfExtents())
		if !ok {
			continue
		}
		fog := depth / p.Far
		c := shade(f.Color(), v.bg, f.Transparency(), fog*0.8)
		v.items = append(v.items, item{
			r:     r,
			depth: depth,
			style: tcell.StyleDefault.Foreground(toTcell(c)).Background(toTcell(c.BlendRgb(colorful.Color{}, 0.2))),
			glyph: glyphFor(depth),
		})
	}
	sort.SliceStable(v.items, func(i, j int) bool {
		return v.items[i].depth > v.items[j].depth
	})
}

func glyphFor(depth float64) rune {
	switch {
	case depth < 60:
		return parameter.BoxChar
	case depth < 150:
		return parameter.DimBoxChar
	default:
		return parameter.FarBoxChar
	}
}

func (v *Viewer) fill(it item) {
	for y := it.r.y0; y <= it.r.y1; y++ {
		for x := it.r.x0; x <= it.r.x1; x++ {
			v.screen.SetContent(x, y, it.glyph, nil, it.style)
		}
	}
}

var spinGlyphs = []rune{'|', '/', '-', '\\'}

// drawTornado draws the funnel as a column of spinning glyphs widening toward the top
func (v *Viewer) drawTornado(p Projection, m Marker) {
	bx, by, _, ok1 := p.Project(m.Base)
	tx, ty, _, ok2 := p.Project(m.Base.Add(mgl64.Vec3{0, 2 * m.HalfHeight, 0}))
	if !ok1 || !ok2 {
		return
	}

	y0, y1 := int(math.Floor(ty)), int(math.Floor(by))
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	span := float64(max(1, y1-y0))
	phase := int(m.Spin*float64(len(spinGlyphs))/math.Pi) & 3
	style := tcell.StyleDefault.Foreground(RgbTornado)

	for y := max(0, y0); y <= min(p.Height-1, y1); y++ {
		t := float64(y1-y) / span
		cx := bx + (tx-bx)*t
		halfW := 1 + int(t*3)
		g := spinGlyphs[(phase+y)&3]
		for x := int(cx) - halfW; x <= int(cx)+halfW; x++ {
			if x < 0 || x >= p.Width {
				continue
			}
			ch := g
			if x == int(cx) {
				ch = parameter.TornadoChar
			}
			v.screen.SetContent(x, y, ch, nil, style)
		}
	}
}

func (v *Viewer) drawHUD(w, h int, s Stats) {
	y := h - 1
	base := tcell.StyleDefault.Foreground(RgbHUD)
	for x := 0; x < w; x++ {
		v.screen.SetContent(x, y, ' ', nil, base)
	}

	line := fmt.Sprintf(" bodies %d  captured %d  disposed %d  step %s/%s",
		s.Bodies, s.Captures, s.Disposals, flag(s.WorldInFlight), flag(s.PlayerInFlight))
	x := writeStr(v.screen, 0, y, line, base)
	if s.Message != "" {
		writeStr(v.screen, x+2, y, s.Message, tcell.StyleDefault.Foreground(RgbHUDAlert))
	}
	hint := "wasd move  space jump  arrows look  p pause  q quit "
	if len(hint) < w-x-2 {
		writeStr(v.screen, w-len(hint), y, hint, tcell.StyleDefault.Foreground(RgbHUDDim))
	}
}

func flag(busy bool) string {
	if busy {
		return "busy"
	}
	return "idle"
}

// writeStr writes s from (x, y) and returns the column after it
func writeStr(screen tcell.Screen, x, y int, s string, style tcell.Style) int {
	w, _ := screen.Size()
	for _, r := range s {
		if x >= w {
			break
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

// Frames is the number of frames drawn
func (v *Viewer) Frames() uint64 { return v.frames }
