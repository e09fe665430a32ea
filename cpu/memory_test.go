// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retrokit/mos65xx/cpu"
)

func TestRAMAddressPageWrap(t *testing.T) {
	m := cpu.NewRAM()

	m.StoreAddress(0x12fe, 0x1234)
	assert.Equal(t, uint16(0x1234), m.LoadAddress(0x12fe))
	assert.Equal(t, byte(0x34), m.LoadByte(0x12fe))
	assert.Equal(t, byte(0x12), m.LoadByte(0x12ff))

	// An address ending in $FF wraps its high byte to the start of the
	// same page.
	m.StoreAddress(0x13ff, 0xabcd)
	assert.Equal(t, uint16(0xabcd), m.LoadAddress(0x13ff))
	assert.Equal(t, byte(0xcd), m.LoadByte(0x13ff))
	assert.Equal(t, byte(0xab), m.LoadByte(0x1300))
	assert.Equal(t, byte(0x00), m.LoadByte(0x1400))
}

func TestRAMLoadBytesAtEnd(t *testing.T) {
	m := cpu.NewRAM()
	m.StoreByte(0xffff, 0x7f)

	b := make([]byte, 4)
	m.LoadBytes(0xffff, b)
	assert.Equal(t, []byte{0x7f, 0, 0, 0}, b)
}

// busRecorder tracks each access the CPU makes through a memory handler.
type busRecorder struct {
	mem    [cpu.AddressSpace]byte
	reads  []uint16
	writes []uint16
}

func (h *busRecorder) Read(addr uint16) byte {
	h.reads = append(h.reads, addr)
	return h.mem[addr]
}

func (h *busRecorder) Write(addr uint16, v byte) {
	h.writes = append(h.writes, addr)
	h.mem[addr] = v
}

func TestHandlerMemory(t *testing.T) {
	h := &busRecorder{}
	m := cpu.NewHandlerMemory(h)

	m.StoreBytes(0x2000, []byte{0x01, 0x02})
	assert.Equal(t, []uint16{0x2000, 0x2001}, h.writes)
	assert.Equal(t, byte(0x01), m.LoadByte(0x2000))

	// The page-wrap rule holds when accesses go through a handler.
	m.StoreAddress(0x30ff, 0x4455)
	assert.Equal(t, byte(0x55), h.mem[0x30ff])
	assert.Equal(t, byte(0x44), h.mem[0x3000])
	assert.Equal(t, uint16(0x4455), m.LoadAddress(0x30ff))
}

func TestHandlerMemoryDrivesCPU(t *testing.T) {
	h := &busRecorder{}
	c := cpu.New(cpu.NMOS6502, cpu.NewHandlerMemory(h))

	copy(h.mem[0x1000:], []byte{
		0xa9, 0x42, // LDA #$42
		0x8d, 0x00, 0xd0, // STA $D000
	})
	c.SetPC(0x1000)
	step(t, c, 2)

	assert.Equal(t, byte(0x42), h.mem[0xd000])
	assert.Equal(t, []uint16{0xd000}, h.writes)
	assert.Contains(t, h.reads, uint16(0x1000))
}

func TestSavePSRestorePS(t *testing.T) {
	var r cpu.Registers
	r.Init()
	r.Carry = true
	r.Sign = true
	r.Decimal = true

	ps := r.SavePS(false)
	assert.Equal(t, byte(cpu.CarryBit|cpu.SignBit|cpu.DecimalBit|cpu.ReservedBit), ps)
	assert.NotZero(t, r.SavePS(true)&cpu.BreakBit)

	var q cpu.Registers
	q.Init()
	// Bits 4 and 5 have no storage; RestorePS ignores them.
	q.RestorePS(ps | cpu.BreakBit)
	assert.True(t, q.Carry)
	assert.True(t, q.Sign)
	assert.True(t, q.Decimal)
	assert.False(t, q.Zero)
	assert.Zero(t, q.SavePS(false)&cpu.BreakBit)
}
