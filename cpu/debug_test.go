// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retrokit/mos65xx/cpu"
)

type breakRecorder struct {
	pcHits   []uint16
	dataHits []uint16
	values   []byte
}

func (r *breakRecorder) OnBreakpoint(c *cpu.CPU, b *cpu.Breakpoint) {
	r.pcHits = append(r.pcHits, b.Address)
}

func (r *breakRecorder) OnDataBreakpoint(c *cpu.CPU, b *cpu.DataBreakpoint) {
	r.dataHits = append(r.dataHits, b.Address)
	r.values = append(r.values, c.Mem.LoadByte(b.Address))
}

func TestBreakpoint(t *testing.T) {
	c := loadCPU(cpu.NMOS6502,
		0xea, // NOP
		0xea, // NOP      <- breakpoint
		0xea, // NOP
	)
	rec := &breakRecorder{}
	d := cpu.NewDebugger(rec)
	d.AddBreakpoint(0x1001)
	c.AttachDebugger(d)

	step(t, c, 3)
	assert.Equal(t, []uint16{0x1001}, rec.pcHits)

	// A disabled breakpoint never fires.
	c.SetPC(0x1000)
	d.GetBreakpoint(0x1001).Disabled = true
	step(t, c, 3)
	assert.Len(t, rec.pcHits, 1)
}

func TestDataBreakpoint(t *testing.T) {
	c := loadCPU(cpu.NMOS6502,
		0xa9, 0x01, // LDA #$01
		0x8d, 0x00, 0x20, // STA $2000
		0xa9, 0x02, // LDA #$02
		0x8d, 0x00, 0x20, // STA $2000
	)
	rec := &breakRecorder{}
	d := cpu.NewDebugger(rec)
	d.AddConditionalDataBreakpoint(0x2000, 0x02)
	c.AttachDebugger(d)

	step(t, c, 4)

	// Only the store of the matching value triggers.
	assert.Equal(t, []uint16{0x2000}, rec.dataHits)
	assert.Equal(t, []byte{0x02}, rec.values)
}

func TestDetachDebugger(t *testing.T) {
	c := loadCPU(cpu.NMOS6502, 0x8d, 0x00, 0x20) // STA $2000
	rec := &breakRecorder{}
	d := cpu.NewDebugger(rec)
	d.AddDataBreakpoint(0x2000)
	c.AttachDebugger(d)
	c.DetachDebugger()

	step(t, c, 1)
	assert.Empty(t, rec.dataHits)
}

func TestBreakpointOrdering(t *testing.T) {
	d := cpu.NewDebugger(nil)
	d.AddBreakpoint(0x3000)
	d.AddBreakpoint(0x1000)
	d.AddBreakpoint(0x2000)
	d.RemoveBreakpoint(0x2000)

	bps := d.GetBreakpoints()
	assert.Len(t, bps, 2)
	assert.Equal(t, uint16(0x1000), bps[0].Address)
	assert.Equal(t, uint16(0x3000), bps[1].Address)
}
