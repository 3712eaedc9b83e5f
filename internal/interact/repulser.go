package interact

import (
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/olivierh59500/particle-links/internal/geom"
	"github.com/olivierh59500/particle-links/internal/options"
	"github.com/olivierh59500/particle-links/internal/particle"
)

// TriggerKind is the branch that produced a trigger
type TriggerKind int

const (
	TriggerHover TriggerKind = iota
	TriggerClick
	TriggerElement
)

func (k TriggerKind) String() string {
	switch k {
	case TriggerHover:
		return "hover"
	case TriggerClick:
		return "click"
	case TriggerElement:
		return "element"
	default:
		return "unknown"
	}
}

// Trigger is one force source for the current tick
type Trigger struct {
	Kind     TriggerKind
	Position r2.Vec
	Radius   float64
	Area     geom.Region
	// Div holds the per-element overrides matched for element triggers
	Div *options.RepulseDiv
}

// Repulser pushes particles away from the pointer, the last click or page elements
type Repulser struct {
	c     *Container
	click clickEpisode
}

// clickEpisode times the click it was started for. A recorded click without
// an episode repels until the next click.
type clickEpisode struct {
	at      *r2.Vec
	elapsed time.Duration
	expired bool
}

// NewRepulser creates a repulser reading from c
func NewRepulser(c *Container) *Repulser {
	return &Repulser{c: c}
}

// Init caches the pixel ratio scaled repulse distance
func (r *Repulser) Init() {
	repulse := r.c.Options.Interactivity.Modes.Repulse
	if repulse == nil {
		return
	}
	r.c.Retina.RepulseModeDistance = repulse.Distance * r.c.Retina.PixelRatio
}

// HandleClickMode starts a timed episode for the recorded click when mode is
// repulse. The episode ends after Repulse.Duration seconds.
func (r *Repulser) HandleClickMode(mode string) {
	pos := r.c.Mouse.ClickPosition
	if r.c.Options.Interactivity.Modes.Repulse == nil || mode != options.ModeRepulse || pos == nil {
		return
	}
	at := *pos
	r.click = clickEpisode{at: &at}
}

// Interact applies one tick of repulsion
func (r *Repulser) Interact(delta particle.Delta) {
	repulse := r.c.Options.Interactivity.Modes.Repulse
	if repulse == nil || r.c.Index == nil {
		return
	}
	for _, t := range r.triggers(delta) {
		r.applyForce(t, repulse)
	}
}

// IsEnabled reports whether p should take part in repulsion this tick.
// A nil particle checks the container options.
func (r *Repulser) IsEnabled(p *particle.Particle) bool {
	events := r.c.Options.Interactivity.Events
	if p != nil && p.Interactivity != nil {
		events = p.Interactivity.Events
	}
	mouse := r.c.Mouse
	divRepulse := divModeEnabled(options.ModeRepulse, events.OnDiv)
	hoverLive := events.OnHover.Enable && mouse.Position != nil
	clickLive := events.OnClick.Enable && mouse.ClickPosition != nil

	if !divRepulse && !hoverLive && !clickLive {
		return false
	}

	return (hoverLive && events.OnHover.HasMode(options.ModeRepulse)) ||
		(clickLive && events.OnClick.HasMode(options.ModeRepulse)) ||
		divRepulse
}

// Reset ends the particle's interaction episode
func (r *Repulser) Reset(p *particle.Particle) {
	p.Repulse = false
	p.NormalPosition = nil
}

// triggers selects the single live branch, hover first, then click, then elements
func (r *Repulser) triggers(delta particle.Delta) []Trigger {
	events := r.c.Options.Interactivity.Events
	mouse := r.c.Mouse

	switch {
	case mouse.Status == StatusMove && events.OnHover.Enable && events.OnHover.HasMode(options.ModeRepulse):
		return r.pointerTrigger(TriggerHover, mouse.Position)
	case events.OnClick.Enable && events.OnClick.HasMode(options.ModeRepulse) && mouse.ClickPosition != nil:
		if !r.clickLive(*mouse.ClickPosition, delta) {
			return nil
		}
		return r.pointerTrigger(TriggerClick, mouse.ClickPosition)
	default:
		return r.elementTriggers()
	}
}

// clickLive ages the episode started for pos. Clicks without an episode stay
// live; a non-positive duration never expires.
func (r *Repulser) clickLive(pos r2.Vec, delta particle.Delta) bool {
	if r.click.at == nil || *r.click.at != pos {
		return true
	}
	if r.click.expired {
		return false
	}
	r.click.elapsed += delta.Value
	duration := r.c.Options.Interactivity.Modes.Repulse.Duration
	if duration > 0 && r.click.elapsed.Seconds() > duration {
		r.click.expired = true
	}
	return true
}

func (r *Repulser) pointerTrigger(kind TriggerKind, pos *r2.Vec) []Trigger {
	radius := r.c.Retina.RepulseModeDistance
	if pos == nil || !(radius > 0) {
		return nil
	}
	return []Trigger{{
		Kind:     kind,
		Position: *pos,
		Radius:   radius,
		Area:     geom.NewCircle(pos.X, pos.Y, radius),
	}}
}

func (r *Repulser) elementTriggers() []Trigger {
	if r.c.Layout == nil {
		return nil
	}
	events := r.c.Options.Interactivity.Events
	ratio := r.c.Retina.PixelRatio

	var out []Trigger
	for _, div := range events.OnDiv {
		if !div.Enable || !div.HasMode(options.ModeRepulse) {
			continue
		}
		for _, selector := range div.Selectors {
			for _, el := range r.c.Layout.QuerySelectorAll(selector) {
				box := el.Box()
				pos := geom.Vec(
					(box.Position.X+box.Size.Width/2)*ratio,
					(box.Position.Y+box.Size.Height/2)*ratio,
				)
				radius := box.Size.Width / 2 * ratio
				if !(radius > 0) {
					continue
				}

				var area geom.Region
				if div.Type == options.DivRectangle {
					area = geom.NewRectangle(
						box.Position.X*ratio,
						box.Position.Y*ratio,
						box.Size.Width*ratio,
						box.Size.Height*ratio,
					)
				} else {
					area = geom.NewCircle(pos.X, pos.Y, radius)
				}

				out = append(out, Trigger{
					Kind:     TriggerElement,
					Position: pos,
					Radius:   radius,
					Area:     area,
					Div:      r.divOverride(el),
				})
			}
		}
	}
	return out
}

// divOverride returns the first repulse div whose selectors match el
func (r *Repulser) divOverride(el Element) *options.RepulseDiv {
	divs := r.c.Options.Interactivity.Modes.Repulse.Divs
	for i := range divs {
		for _, sel := range divs[i].Selectors {
			if el.Matches(sel) {
				return &divs[i]
			}
		}
	}
	return nil
}

// applyForce displaces every enabled particle inside the trigger area
func (r *Repulser) applyForce(t Trigger, repulse *options.Repulse) {
	if !(t.Radius > 0) || t.Area == nil {
		return
	}
	speed := repulse.Speed
	if t.Div != nil && t.Div.Speed > 0 {
		speed = t.Div.Speed
	}
	for _, p := range r.c.Index.Query(t.Area, r.IsEnabled) {
		displace(p, t, repulse, speed)
	}
}

// Displacement is the offset repulsion adds to a particle at distance d
// from a trigger of the given radius. The magnitude is clamped to
// [0, MaxSpeed], so an inverted force yields no displacement.
func Displacement(d geom.Deltas, radius float64, repulse *options.Repulse, speed float64, inverse bool) r2.Vec {
	velocity := speed * repulse.Factor
	if inverse {
		velocity = -velocity
	}
	magnitude := geom.Clamp(geom.Ease(1-d.Distance/radius, repulse.Easing)*velocity, 0, repulse.MaxSpeed)
	if math.IsNaN(magnitude) {
		return r2.Vec{}
	}
	if d.Distance == 0 {
		return r2.Vec{X: magnitude, Y: magnitude}
	}
	return r2.Vec{X: d.DX / d.Distance * magnitude, Y: d.DY / d.Distance * magnitude}
}

func displace(p *particle.Particle, t Trigger, repulse *options.Repulse, speed float64) {
	d := geom.DistanceAndDeltas(p.Position, t.Position)
	offset := Displacement(d, t.Radius, repulse, speed, false)

	switch {
	case p.NormalPosition == nil:
		np := p.Position
		p.NormalPosition = &np
	case !p.Repulse:
		// once per tick even when several triggers reach the particle
		*p.NormalPosition = r2.Add(*p.NormalPosition, p.Velocity)
	}

	p.Repulse = true
	p.Position = r2.Add(p.Position, offset)
}

func divModeEnabled(mode string, divs []options.DivEvent) bool {
	for _, d := range divs {
		if d.Enable && d.HasMode(mode) {
			return true
		}
	}
	return false
}
