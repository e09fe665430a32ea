// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Address space landmarks. The zero page and the stack page have special
// addressing behavior; everything above them is general-purpose RAM (or
// whatever a memory handler decides to map there).
const (
	ZeroPageEnd  = 0x00ff
	StackBase    = 0x0100
	StackEnd     = 0x01ff
	AddressSpace = 64 * 1024
)

// The Memory interface presents an interface to the CPU through which all
// memory accesses occur.
type Memory interface {
	// LoadByte loads a single byte from the address and returns it.
	LoadByte(addr uint16) byte

	// LoadBytes loads multiple bytes from the address and stores them into
	// the buffer 'b'.
	LoadBytes(addr uint16, b []byte)

	// LoadAddress loads a 16-bit address value from the requested address and
	// returns it.
	LoadAddress(addr uint16) uint16

	// StoreByte stores a byte to the requested address.
	StoreByte(addr uint16, v byte)

	// StoreBytes stores multiple bytes to the requested address.
	StoreBytes(addr uint16, b []byte)

	// StoreAddress stores a 16-bit address 'v' to the requested address.
	StoreAddress(addr uint16, v uint16)
}

// RAM represents an entire 16-bit address space as a singular 64K buffer.
type RAM struct {
	b [AddressSpace]byte
}

// NewRAM creates a new, zero-filled 16-bit memory space.
func NewRAM() *RAM {
	return &RAM{}
}

// LoadByte loads a single byte from the address and returns it.
func (m *RAM) LoadByte(addr uint16) byte {
	return m.b[addr]
}

// LoadBytes loads multiple bytes from the address and stores them into the
// buffer 'b'.
func (m *RAM) LoadBytes(addr uint16, b []byte) {
	if int(addr)+len(b) <= len(m.b) {
		copy(b, m.b[addr:])
	} else {
		r0 := len(m.b) - int(addr)
		copy(b, m.b[addr:])
		copy(b[r0:], make([]byte, len(b)-r0))
	}
}

// LoadAddress loads a 16-bit address value from the requested address and
// returns it.
//
// When the address spans 2 pages (i.e., the address ends in 0xff), the high
// byte of the loaded address comes from a page-wrapped address. For example,
// LoadAddress on $12FF reads the low byte from $12FF and the high byte from
// $1200. This mimics the behavior of the NMOS 6502.
func (m *RAM) LoadAddress(addr uint16) uint16 {
	if (addr & 0xff) == 0xff {
		return uint16(m.b[addr]) | uint16(m.b[addr-0xff])<<8
	}
	return uint16(m.b[addr]) | uint16(m.b[addr+1])<<8
}

// StoreByte stores a byte at the requested address.
func (m *RAM) StoreByte(addr uint16, v byte) {
	m.b[addr] = v
}

// StoreBytes stores multiple bytes to the requested address.
func (m *RAM) StoreBytes(addr uint16, b []byte) {
	copy(m.b[addr:], b)
}

// StoreAddress stores a 16-bit address value to the requested address,
// applying the same page-wrap rule as LoadAddress.
func (m *RAM) StoreAddress(addr uint16, v uint16) {
	m.b[addr] = byte(v & 0xff)
	if (addr & 0xff) == 0xff {
		m.b[addr-0xff] = byte(v >> 8)
	} else {
		m.b[addr+1] = byte(v >> 8)
	}
}

// A Handler intercepts every byte load and store the CPU performs. It owns
// the decision of which physical storage (ROM, RAM, a register bank) answers
// a given address; the CPU has no banking logic of its own.
type Handler interface {
	Read(addr uint16) byte
	Write(addr uint16, v byte)
}

// HandlerMemory is a Memory implementation that routes every single-byte
// access through an externally supplied Handler. Multi-byte operations are
// composed from single-byte ones so the handler observes each access.
type HandlerMemory struct {
	h Handler
}

// NewHandlerMemory creates a Memory whose accesses are delegated to 'h'.
func NewHandlerMemory(h Handler) *HandlerMemory {
	return &HandlerMemory{h: h}
}

// LoadByte loads a single byte through the handler.
func (m *HandlerMemory) LoadByte(addr uint16) byte {
	return m.h.Read(addr)
}

// LoadBytes loads multiple bytes through the handler, one at a time.
func (m *HandlerMemory) LoadBytes(addr uint16, b []byte) {
	for i := range b {
		b[i] = m.h.Read(addr + uint16(i))
	}
}

// LoadAddress loads a 16-bit address through the handler, applying the NMOS
// page-wrap rule when the address ends in 0xff.
func (m *HandlerMemory) LoadAddress(addr uint16) uint16 {
	lo := m.h.Read(addr)
	var hi byte
	if (addr & 0xff) == 0xff {
		hi = m.h.Read(addr - 0xff)
	} else {
		hi = m.h.Read(addr + 1)
	}
	return uint16(lo) | uint16(hi)<<8
}

// StoreByte stores a byte through the handler.
func (m *HandlerMemory) StoreByte(addr uint16, v byte) {
	m.h.Write(addr, v)
}

// StoreBytes stores multiple bytes through the handler, one at a time.
func (m *HandlerMemory) StoreBytes(addr uint16, b []byte) {
	for i, v := range b {
		m.h.Write(addr+uint16(i), v)
	}
}

// StoreAddress stores a 16-bit address through the handler, applying the
// same page-wrap rule as LoadAddress.
func (m *HandlerMemory) StoreAddress(addr uint16, v uint16) {
	m.h.Write(addr, byte(v&0xff))
	if (addr & 0xff) == 0xff {
		m.h.Write(addr-0xff, byte(v>>8))
	} else {
		m.h.Write(addr+1, byte(v>>8))
	}
}

// Return the offset address 'addr' + 'offset'. If the offset crossed a page
// boundary, return 'pageCrossed' as true. The addition wraps modulo 64K, so
// $FFFF + $F1 yields $00F0.
func offsetAddress(addr uint16, offset byte) (newAddr uint16, pageCrossed bool) {
	newAddr = addr + uint16(offset)
	pageCrossed = ((newAddr & 0xff00) != (addr & 0xff00))
	return newAddr, pageCrossed
}

// Offset a zero-page address 'addr' by 'offset'. If the address exceeds the
// zero-page address space, wrap it. The result never leaves page zero.
func offsetZeroPage(addr uint16, offset byte) uint16 {
	addr += uint16(offset)
	if addr > ZeroPageEnd {
		addr -= 0x100
	}
	return addr
}

// Convert a 1- or 2-byte little-endian operand into an address.
func operandToAddress(operand []byte) uint16 {
	switch {
	case len(operand) == 1:
		return uint16(operand[0])
	case len(operand) == 2:
		return uint16(operand[0]) | uint16(operand[1])<<8
	}
	return 0
}

// Given a 1-byte stack pointer register, return the corresponding stack
// memory address in page 1.
func stackAddress(offset byte) uint16 {
	return StackBase + uint16(offset)
}
