// Package beams animates the translucent light beams drawn behind the web
// pages. The field of beams is simulated server side and streamed to the
// browser, which only rasterizes the frames it receives.
package beams

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// MinimumBeams is the base beam count; the field seeds 1.5 times as many.
const MinimumBeams = 20

// recycleMargin is how far past the top edge a beam travels before it is
// reintroduced at the bottom.
const recycleMargin = 100.0

// Intensity multipliers for the three named levels.
const (
	IntensitySubtle = 0.7
	IntensityMedium = 0.85
	IntensityStrong = 1.0
)

// Multiplier maps an intensity level name to its opacity multiplier.
// Unknown names get the strong default.
func Multiplier(level string) float64 {
	switch level {
	case "subtle":
		return IntensitySubtle
	case "medium":
		return IntensityMedium
	default:
		return IntensityStrong
	}
}

// gradientOffsets are the six fixed gradient stop positions along a beam.
var gradientOffsets = [6]float64{0, 0.1, 0.4, 0.6, 0.9, 1}

// Beam is one animated translucent rectangle.
type Beam struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Length     float64 `json:"length"`
	Angle      float64 `json:"angle"`
	Speed      float64 `json:"speed"`
	Opacity    float64 `json:"opacity"`
	Hue        float64 `json:"hue"`
	Pulse      float64 `json:"pulse"`
	PulseSpeed float64 `json:"pulseSpeed"`
}

// Stop is one gradient stop of a rendered beam.
type Stop struct {
	Offset float64 `json:"offset"`
	Alpha  float64 `json:"alpha"`
}

// DrawOp is everything the canvas needs to paint one beam.
type DrawOp struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
	Angle  float64 `json:"angle"`
	Hue    float64 `json:"hue"`
	Stops  [6]Stop `json:"stops"`
}

// Frame is one rendered animation frame.
type Frame struct {
	Width  float64  `json:"width"`
	Height float64  `json:"height"`
	Beams  []DrawOp `json:"beams"`
}

type state int

const (
	stateUninitialized state = iota
	stateRunning
	stateDestroyed
)

// Field simulates a collection of beams over a viewport. All methods are
// safe for concurrent use.
type Field struct {
	mu        sync.Mutex
	width     float64
	height    float64
	intensity float64
	rng       *rand.Rand
	beams     []*Beam
	state     state
}

// NewField creates a field sized to the given viewport with the given
// intensity multiplier. The field is inert until Start is called.
func NewField(width, height, intensity float64) *Field {
	return NewFieldSeeded(width, height, intensity, time.Now().UnixNano())
}

// NewFieldSeeded is NewField with a deterministic random source.
func NewFieldSeeded(width, height, intensity float64, seed int64) *Field {
	return &Field{
		width:     width,
		height:    height,
		intensity: intensity,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// Start seeds the beams and begins the field's running phase. Starting an
// already running field is a no-op; a destroyed field stays destroyed.
func (f *Field) Start() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != stateUninitialized {
		return
	}
	f.state = stateRunning
	f.seed()
}

// Destroy permanently stops the field and drops its beams.
func (f *Field) Destroy() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = stateDestroyed
	f.beams = nil
}

// Running reports whether the field is in its running phase.
func (f *Field) Running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state == stateRunning
}

// Resize updates the viewport dimensions and reseeds the whole collection.
// Beams do not survive a resize.
func (f *Field) Resize(width, height float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.width = width
	f.height = height
	if f.state == stateRunning {
		f.seed()
	}
}

// Step advances every beam one tick and returns the frame to draw. Beams
// whose leading edge has cleared the top margin are recycled to the bottom
// before drawing. A field that is not running returns an empty frame.
func (f *Field) Step() Frame {
	f.mu.Lock()
	defer f.mu.Unlock()

	frame := Frame{Width: f.width, Height: f.height}
	if f.state != stateRunning {
		return frame
	}

	frame.Beams = make([]DrawOp, len(f.beams))
	for i, b := range f.beams {
		b.Y -= b.Speed
		b.Pulse += b.PulseSpeed
		if b.Y+b.Length < -recycleMargin {
			f.recycle(b, i)
		}
		frame.Beams[i] = f.drawOp(b)
	}
	return frame
}

// BeamCount returns the current number of beams.
func (f *Field) BeamCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.beams)
}

// seed replaces the collection with freshly generated beams scattered over
// an area 1.5x the viewport in each dimension. Callers hold f.mu.
func (f *Field) seed() {
	count := int(float64(MinimumBeams) * 1.5)
	f.beams = make([]*Beam, count)
	for i := range f.beams {
		f.beams[i] = f.newBeam()
	}
}

func (f *Field) newBeam() *Beam {
	return &Beam{
		X:          f.rng.Float64()*f.width*1.5 - f.width*0.25,
		Y:          f.rng.Float64()*f.height*1.5 - f.height*0.25,
		Width:      30 + f.rng.Float64()*60,
		Length:     f.height * 2.5,
		Angle:      -35 + (f.rng.Float64()-0.5)*20,
		Speed:      0.6 + f.rng.Float64()*1.2,
		Opacity:    0.12 + f.rng.Float64()*0.16,
		Hue:        190 + f.rng.Float64()*70,
		Pulse:      f.rng.Float64() * math.Pi * 2,
		PulseSpeed: 0.02 + f.rng.Float64()*0.03,
	}
}

// recycle repositions an off-screen beam at the bottom of the viewport in
// one of three lanes, with a hue drawn from the lane's third of the band.
func (f *Field) recycle(b *Beam, index int) {
	lane := index % 3
	spacing := f.width / 3
	laneHueBand := 70.0 / 3

	b.Y = f.height + recycleMargin
	b.X = float64(lane)*spacing + spacing/2 + (f.rng.Float64()-0.5)*spacing*0.5
	b.Width = 100 + f.rng.Float64()*100
	b.Speed = 0.5 + f.rng.Float64()*0.4
	b.Opacity = 0.2 + f.rng.Float64()*0.1
	b.Hue = 190 + float64(lane)*laneHueBand + f.rng.Float64()*laneHueBand
}

func (f *Field) drawOp(b *Beam) DrawOp {
	pulsed := b.Opacity * (0.8 + 0.2*math.Sin(b.Pulse)) * f.intensity

	var stops [6]Stop
	alphas := [6]float64{0, pulsed * 0.5, pulsed, pulsed, pulsed * 0.5, 0}
	for i := range stops {
		stops[i] = Stop{Offset: gradientOffsets[i], Alpha: alphas[i]}
	}

	return DrawOp{
		X:      b.X,
		Y:      b.Y,
		Width:  b.Width,
		Length: b.Length,
		Angle:  b.Angle,
		Hue:    b.Hue,
		Stops:  stops,
	}
}
