package manipulate

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Step actions understood by Player.
const (
	ActionStart   = "start"   // dispatch a manipulation-starting event
	ActionDelta   = "delta"   // dispatch one delta event
	ActionInertia = "inertia" // dispatch inertia-starting, then coast frame by frame
	ActionWait    = "wait"    // do nothing for Frames frames
)

const (
	defaultFrameMillis    = 1000.0 / 60.0
	defaultInertiaFrames  = 600
	defaultMaxReplayFrame = 100000
)

// ScriptStep is a single action in a replay script. A zero ScaleX or ScaleY
// means no scale change on that axis.
type ScriptStep struct {
	Action   string  `json:"action" toml:"action"`
	ScaleX   float64 `json:"scaleX,omitempty" toml:"scale_x,omitempty"`
	ScaleY   float64 `json:"scaleY,omitempty" toml:"scale_y,omitempty"`
	Rotation float64 `json:"rotation,omitempty" toml:"rotation,omitempty"`
	X        float64 `json:"x,omitempty" toml:"x,omitempty"`
	Y        float64 `json:"y,omitempty" toml:"y,omitempty"`
	Inertial bool    `json:"inertial,omitempty" toml:"inertial,omitempty"`

	// Inertia fields: release velocities in DIPs/ms and degrees/ms.
	VX      float64 `json:"vx,omitempty" toml:"vx,omitempty"`
	VY      float64 `json:"vy,omitempty" toml:"vy,omitempty"`
	Angular float64 `json:"angular,omitempty" toml:"angular,omitempty"`
	EX      float64 `json:"ex,omitempty" toml:"ex,omitempty"`
	EY      float64 `json:"ey,omitempty" toml:"ey,omitempty"`

	// Frames is the wait length, or the frame cap of an inertia step.
	Frames int `json:"frames,omitempty" toml:"frames,omitempty"`
	// FrameMillis is the simulated frame time of an inertia step.
	FrameMillis float64 `json:"frameMillis,omitempty" toml:"frame_millis,omitempty"`
}

// Delta returns the delta a "delta" step describes.
func (st ScriptStep) Delta() Delta {
	d := Delta{
		Scale:       Vec2{st.ScaleX, st.ScaleY},
		Rotation:    st.Rotation,
		Translation: Vec2{st.X, st.Y},
	}
	if d.Scale.X == 0 {
		d.Scale.X = 1
	}
	if d.Scale.Y == 0 {
		d.Scale.Y = 1
	}
	return d
}

// Script is a sequence of manipulation events to replay against an element.
type Script struct {
	Steps []ScriptStep `json:"steps" toml:"steps"`
}

// Validate checks that the script has steps and every action is known.
func (s Script) Validate() error {
	if len(s.Steps) == 0 {
		return ErrEmptyScript
	}
	for i, st := range s.Steps {
		switch st.Action {
		case ActionStart, ActionDelta, ActionInertia, ActionWait:
		default:
			return fmt.Errorf("step %d: %w %q", i, ErrUnknownStep, st.Action)
		}
	}
	return nil
}

// ParseScript parses a JSON replay script.
func ParseScript(data []byte) (Script, error) {
	var s Script
	if err := json.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("parse script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Script{}, fmt.Errorf("parse script: %w", err)
	}
	return s, nil
}

// ParseScriptTOML parses a TOML replay script ([[steps]] tables).
func ParseScriptTOML(data []byte) (Script, error) {
	var s Script
	if err := toml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("parse script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Script{}, fmt.Errorf("parse script: %w", err)
	}
	return s, nil
}

// ParseScriptFile picks the parser from the file name: .toml is TOML,
// anything else JSON.
func ParseScriptFile(name string, data []byte) (Script, error) {
	if strings.EqualFold(filepath.Ext(name), ".toml") {
		return ParseScriptTOML(data)
	}
	return ParseScript(data)
}

// Player feeds a Script into an element one frame per Step, playing the
// input layer's part: it dispatches events, coasts inertia with a Coaster,
// and records boundary feedback.
type Player struct {
	el        *Element
	steps     []ScriptStep
	cursor    int
	waitCount int
	coaster   *Coaster
	coastLeft int
	coastDT   float32
	done      bool

	feedback []Delta
	frames   int
}

// NewPlayer prepares script for replay against el.
func NewPlayer(script Script, el *Element) (*Player, error) {
	if el == nil {
		return nil, ErrNoElement
	}
	if err := script.Validate(); err != nil {
		return nil, err
	}
	return &Player{el: el, steps: script.Steps}, nil
}

// Done reports whether every step has been executed.
func (p *Player) Done() bool {
	return p.done
}

// Feedback returns every delta reported as boundary feedback so far.
func (p *Player) Feedback() []Delta {
	return p.feedback
}

// Frames returns the number of frames stepped.
func (p *Player) Frames() int {
	return p.frames
}

// Run steps until the script is done and returns the frame count.
// Replays are capped so a non-terminating script cannot hang the caller.
func (p *Player) Run() int {
	for !p.done && p.frames < defaultMaxReplayFrame {
		p.Step()
	}
	return p.frames
}

// Step advances the replay by one frame.
func (p *Player) Step() {
	if p.done {
		return
	}
	p.frames++

	// An inertial phase occupies whole frames until it comes to rest.
	if p.coaster != nil {
		p.coastLeft--
		if !p.coaster.Feed(p.el, p.coastDT) || p.coastLeft <= 0 {
			p.coaster = nil
		}
		p.checkDone()
		return
	}
	if p.waitCount > 0 {
		p.waitCount--
		p.checkDone()
		return
	}
	if p.cursor >= len(p.steps) {
		p.done = true
		return
	}

	st := p.steps[p.cursor]
	p.cursor++

	switch st.Action {
	case ActionStart:
		p.el.DispatchStarting(&StartingEvent{Source: p.el})
	case ActionDelta:
		p.el.DispatchDelta(&DeltaEvent{
			Source:           p.el,
			Delta:            st.Delta(),
			IsInertial:       st.Inertial,
			BoundaryFeedback: p.recordFeedback,
		})
	case ActionInertia:
		p.startInertia(st)
	case ActionWait:
		if st.Frames > 0 {
			p.waitCount = st.Frames - 1 // this frame counts as one
		}
	}
	p.checkDone()
}

func (p *Player) startInertia(st ScriptStep) {
	ev := &InertiaStartingEvent{
		Source: p.el,
		InitialVelocities: Velocities{
			Linear:    Vec2{st.VX, st.VY},
			Angular:   st.Angular,
			Expansion: Vec2{st.EX, st.EY},
		},
	}
	p.el.DispatchInertiaStarting(ev)
	if !ev.Handled {
		return
	}
	b := p.el.Bounds()
	p.coaster = NewCoaster(ev.Inertia, Vec2{b.Width, b.Height})
	p.coaster.OnFeedback = p.recordFeedback
	p.coastLeft = st.Frames
	if p.coastLeft <= 0 {
		p.coastLeft = defaultInertiaFrames
	}
	p.coastDT = float32(st.FrameMillis)
	if p.coastDT <= 0 {
		p.coastDT = defaultFrameMillis
	}
}

// recordFeedback is the boundary feedback consumer. Coasted phases are
// stopped by their Coaster; scripted deltas are single-shot.
func (p *Player) recordFeedback(d Delta) {
	p.feedback = append(p.feedback, d)
}

func (p *Player) checkDone() {
	if p.cursor >= len(p.steps) && p.waitCount == 0 && p.coaster == nil {
		p.done = true
	}
}
