package viewport

// PointerState is the drag state of the canvas
type PointerState int

const (
	// Idle means no primary-button press is active
	Idle PointerState = iota
	// Pressed means the button is down but the pointer has not left
	// the click slop yet; no pan deltas apply
	Pressed
	// Panning means a press on empty canvas travelled beyond the slop
	// and pan deltas apply
	Panning
)

// clickSlop is how far the pointer may travel (squared pixels) before
// a press stops counting as a click and becomes a drag.
const clickSlop = 9

// PointerMachine is the explicit state machine behind pan and click
// gestures. Making the state explicit keeps "am I dragging" unambiguous
// and gives pointer-leave a single place to cancel a drag.
//
// Only presses on empty canvas may pan; a press on a node either
// resolves as a click or, past the slop, as nothing.
type PointerMachine struct {
	state        PointerState
	lastX, lastY float64
	downX, downY float64
	pannable     bool
	moved        bool
}

// NewPointerMachine starts in Idle
func NewPointerMachine() *PointerMachine {
	return &PointerMachine{}
}

// State returns the current drag state
func (p *PointerMachine) State() PointerState {
	return p.state
}

// Down records a primary-button press; onNode marks a press that
// landed on a node, which arms a click but never a pan.
func (p *PointerMachine) Down(x, y float64, onNode bool) {
	p.state = Pressed
	p.lastX, p.lastY = x, y
	p.downX, p.downY = x, y
	p.pannable = !onNode
	p.moved = false
}

// Move reports the pan delta to apply for this pointer position;
// panning is false while Idle, within the slop, or when the press
// started on a node. The first delta after leaving the slop covers the
// whole travel from the press point so the canvas never loses the
// pre-slop movement.
func (p *PointerMachine) Move(x, y float64) (dx, dy float64, panning bool) {
	switch p.state {
	case Idle:
		return 0, 0, false

	case Pressed:
		tx := x - p.downX
		ty := y - p.downY
		if tx*tx+ty*ty <= clickSlop {
			return 0, 0, false
		}
		p.moved = true
		if !p.pannable {
			return 0, 0, false
		}
		p.state = Panning
		p.lastX, p.lastY = x, y
		return tx, ty, true

	default: // Panning
		dx = x - p.lastX
		dy = y - p.lastY
		p.lastX, p.lastY = x, y
		return dx, dy, true
	}
}

// Up ends a press; click is true when the pointer never left the
// click slop, meaning the press should count as a selection click.
func (p *PointerMachine) Up(x, y float64) (click bool) {
	if p.state == Idle {
		return false
	}
	p.state = Idle
	click = !p.moved
	p.moved = false
	return click
}

// Leave cancels any active press when the pointer exits the canvas
func (p *PointerMachine) Leave() {
	p.state = Idle
	p.moved = false
}
