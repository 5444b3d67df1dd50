package location

import "sync"

// Listener is notified with the new pin position after a drag or click.
type Listener func(Point)

// Pin is the draggable delivery marker. Drag and click both move it.
type Pin struct {
	mu        sync.Mutex
	position  Point
	zoom      int
	listeners []Listener
}

// NewPin centres the pin on initial, or on DefaultCenter when initial is nil.
func NewPin(initial *Point) *Pin {
	pos := DefaultCenter
	if initial != nil {
		pos = *initial
	}
	return &Pin{position: pos, zoom: DefaultZoom}
}

func (p *Pin) Subscribe(l Listener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, l)
}

func (p *Pin) OnDrag(to Point) bool {
	return p.move(to)
}

func (p *Pin) OnClick(at Point) bool {
	return p.move(at)
}

func (p *Pin) Position() Point {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.position
}

func (p *Pin) Zoom() int {
	return p.zoom
}

type MapView struct {
	Pin  Point `json:"pin"`
	Zoom int   `json:"zoom"`
}

func (p *Pin) View() MapView {
	return MapView{Pin: p.Position(), Zoom: p.zoom}
}

// move ignores out of range points and reports whether the pin moved.
func (p *Pin) move(to Point) bool {
	if !to.Valid() {
		return false
	}

	p.mu.Lock()
	p.position = to
	listeners := append([]Listener(nil), p.listeners...)
	p.mu.Unlock()

	for _, l := range listeners {
		l(to)
	}
	return true
}
