// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package serial models the open-collector serial bus linking a host
// computer to its peripheral devices. Each participant owns a Port through
// which it may pull the shared ATN, CLK and DATA lines low; a line reads
// low if any attached port is pulling it. Ports on different goroutines
// may use the bus concurrently, which is how a host CPU and a drive CPU
// running on separate goroutines exchange data.
package serial

import "sync"

// A Line identifies one of the three shared bus lines.
type Line byte

const (
	// ATN is the attention line, pulled by the host to begin a transaction.
	ATN Line = iota

	// CLK is the clock line, pulled by the sender to frame data bits.
	CLK

	// DATA is the data line, carrying one bit per clock cycle.
	DATA

	numLines
)

func (l Line) String() string {
	switch l {
	case ATN:
		return "ATN"
	case CLK:
		return "CLK"
	case DATA:
		return "DATA"
	}
	return "unknown"
}

// A Bus is a set of shared open-collector lines. Lines idle high; a
// participant may only pull a line low or release it, never drive it high,
// so the observed level of a line is the logical AND of every
// participant's released state.
type Bus struct {
	mu    sync.Mutex
	ports []*Port
}

// NewBus creates a bus with all lines released.
func NewBus() *Bus {
	return &Bus{}
}

// Port attaches a new participant to the bus and returns its port. The
// port starts with all lines released.
func (b *Bus) Port() *Port {
	b.mu.Lock()
	defer b.mu.Unlock()

	p := &Port{bus: b}
	b.ports = append(b.ports, p)
	return p
}

// IsHigh returns true if no attached port is currently pulling the line
// low.
func (b *Bus) IsHigh(l Line) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.isHigh(l)
}

// IsLow returns true if at least one attached port is pulling the line
// low.
func (b *Bus) IsLow(l Line) bool {
	return !b.IsHigh(l)
}

func (b *Bus) isHigh(l Line) bool {
	for _, p := range b.ports {
		if p.pulled[l] {
			return false
		}
	}
	return true
}

// A Port is one participant's connection to the bus. A port must not be
// used by more than one goroutine at a time; the bus itself provides the
// cross-goroutine synchronization.
type Port struct {
	bus      *Bus
	detached bool
	pulled   [numLines]bool
}

// Pull pulls the line low. Pulling an already-pulled line has no effect.
func (p *Port) Pull(l Line) {
	p.bus.mu.Lock()
	defer p.bus.mu.Unlock()

	if !p.detached {
		p.pulled[l] = true
	}
}

// Release releases the line. The line reads high only once every other
// port has released it too.
func (p *Port) Release(l Line) {
	p.bus.mu.Lock()
	defer p.bus.mu.Unlock()
	p.pulled[l] = false
}

// Set pulls the line low if 'pull' is true and releases it otherwise.
func (p *Port) Set(l Line, pull bool) {
	p.bus.mu.Lock()
	defer p.bus.mu.Unlock()

	if !p.detached {
		p.pulled[l] = pull
	}
}

// Pulling returns true if this port is itself pulling the line low,
// regardless of what the rest of the bus is doing.
func (p *Port) Pulling(l Line) bool {
	p.bus.mu.Lock()
	defer p.bus.mu.Unlock()
	return p.pulled[l]
}

// IsHigh returns true if the line currently reads high on the bus.
func (p *Port) IsHigh(l Line) bool {
	return p.bus.IsHigh(l)
}

// IsLow returns true if the line currently reads low on the bus.
func (p *Port) IsLow(l Line) bool {
	return p.bus.IsLow(l)
}

// Detach releases all of the port's lines and disconnects it from the bus.
// A detached port no longer affects line levels.
func (p *Port) Detach() {
	p.bus.mu.Lock()
	defer p.bus.mu.Unlock()

	p.detached = true
	for l := range p.pulled {
		p.pulled[l] = false
	}
	for i, q := range p.bus.ports {
		if q == p {
			p.bus.ports = append(p.bus.ports[:i], p.bus.ports[i+1:]...)
			break
		}
	}
}
