// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retrokit/mos65xx/cpu"
)

// Create a CPU of the requested variant with the machine code loaded at
// address $1000 and the PC pointing at it.
func loadCPU(v cpu.Variant, code ...byte) *cpu.CPU {
	mem := cpu.NewRAM()
	c := cpu.New(v, mem)
	mem.StoreBytes(0x1000, code)
	c.SetPC(0x1000)
	return c
}

func step(t *testing.T, c *cpu.CPU, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := c.Step()
		require.NoError(t, err)
	}
}

func TestAccumulator(t *testing.T) {
	c := loadCPU(cpu.NMOS6502,
		0xa9, 0x5e, // LDA #$5E
		0x85, 0x15, // STA $15
		0x8d, 0x00, 0x15, // STA $1500
	)
	step(t, c, 3)

	assert.Equal(t, uint16(0x1007), c.Reg.PC)
	assert.Equal(t, uint64(9), c.Cycles)
	assert.Equal(t, byte(0x5e), c.Reg.A)
	assert.Equal(t, byte(0x5e), c.Mem.LoadByte(0x15))
	assert.Equal(t, byte(0x5e), c.Mem.LoadByte(0x1500))
}

func TestStack(t *testing.T) {
	c := loadCPU(cpu.NMOS6502,
		0xa9, 0x11, 0x48, // LDA #$11 / PHA
		0xa9, 0x12, 0x48, // LDA #$12 / PHA
		0xa9, 0x13, 0x48, // LDA #$13 / PHA
		0x68, 0x8d, 0x00, 0x20, // PLA / STA $2000
		0x68, 0x8d, 0x01, 0x20, // PLA / STA $2001
		0x68, 0x8d, 0x02, 0x20, // PLA / STA $2002
	)
	step(t, c, 6)

	assert.Equal(t, byte(0xfc), c.Reg.SP)
	assert.Equal(t, byte(0x11), c.Mem.LoadByte(0x1ff))
	assert.Equal(t, byte(0x12), c.Mem.LoadByte(0x1fe))
	assert.Equal(t, byte(0x13), c.Mem.LoadByte(0x1fd))

	step(t, c, 6)
	assert.Equal(t, byte(0xff), c.Reg.SP)
	assert.Equal(t, byte(0x13), c.Mem.LoadByte(0x2000))
	assert.Equal(t, byte(0x12), c.Mem.LoadByte(0x2001))
	assert.Equal(t, byte(0x11), c.Mem.LoadByte(0x2002))
}

func TestIndexedLoadPageCross(t *testing.T) {
	c := loadCPU(cpu.NMOS6502,
		0xa2, 0x02, // LDX #$02
		0xbd, 0xff, 0x41, // LDA $41FF,X
	)
	c.Mem.StoreByte(0x4201, 0x77)
	step(t, c, 2)

	assert.Equal(t, byte(0x77), c.Reg.A)
	assert.Equal(t, uint64(7), c.Cycles) // 2 + 4 + 1 page-cross penalty
}

func TestIndexedLoadNoPageCross(t *testing.T) {
	c := loadCPU(cpu.NMOS6502,
		0xa2, 0x02, // LDX #$02
		0xbd, 0xf0, 0x41, // LDA $41F0,X
	)
	c.Mem.StoreByte(0x41f2, 0x66)
	step(t, c, 2)

	assert.Equal(t, byte(0x66), c.Reg.A)
	assert.Equal(t, uint64(6), c.Cycles)
}

func TestIndexedStoreCycles(t *testing.T) {
	// Indexed stores charge the extra cycle whether or not a page boundary
	// is crossed.
	for _, operand := range []byte{0xf0, 0xff} {
		c := loadCPU(cpu.NMOS6502,
			0xa2, 0x02, // LDX #$02
			0x9d, operand, 0x41, // STA $41xx,X
		)
		step(t, c, 2)
		assert.Equal(t, uint64(7), c.Cycles)
	}
}

func TestZeroPageWrap(t *testing.T) {
	c := loadCPU(cpu.NMOS6502,
		0xa2, 0x05, // LDX #$05
		0xb5, 0xfe, // LDA $FE,X -> wraps to $03
	)
	c.Mem.StoreByte(0x03, 0xab)
	step(t, c, 2)

	assert.Equal(t, byte(0xab), c.Reg.A)
	assert.Equal(t, uint64(6), c.Cycles)
}

func TestIndexedIndirectWrap(t *testing.T) {
	c := loadCPU(cpu.NMOS6502,
		0xa2, 0x05, // LDX #$05
		0xa1, 0xfe, // LDA ($FE,X) -> pointer at $03
	)
	c.Mem.StoreByte(0x03, 0x00)
	c.Mem.StoreByte(0x04, 0x30)
	c.Mem.StoreByte(0x3000, 0x42)
	step(t, c, 2)

	assert.Equal(t, byte(0x42), c.Reg.A)
	assert.Equal(t, uint64(8), c.Cycles)
}

func TestIndirectIndexedPageCross(t *testing.T) {
	c := loadCPU(cpu.NMOS6502,
		0xa0, 0x02, // LDY #$02
		0xb1, 0x10, // LDA ($10),Y
	)
	c.Mem.StoreAddress(0x10, 0x41ff)
	c.Mem.StoreByte(0x4201, 0x99)
	step(t, c, 2)

	assert.Equal(t, byte(0x99), c.Reg.A)
	assert.Equal(t, uint64(8), c.Cycles) // 2 + 5 + 1 page-cross penalty
}

func TestBranchTiming(t *testing.T) {
	mem := cpu.NewRAM()
	c := cpu.New(cpu.NMOS6502, mem)
	mem.StoreBytes(0x10f0, []byte{
		0x38,       // SEC
		0xa9, 0x00, // LDA #$00
		0xf0, 0x10, // BEQ +$10 -> $1105 (page cross)
	})
	c.SetPC(0x10f0)
	step(t, c, 3)

	assert.Equal(t, uint16(0x1105), c.Reg.PC)
	assert.Equal(t, uint64(8), c.Cycles) // 2 + 2 + (2+1 taken +1 cross)
	assert.True(t, c.Reg.Carry)          // branches leave the flags alone
	assert.True(t, c.Reg.Zero)
}

func TestBranchNotTaken(t *testing.T) {
	c := loadCPU(cpu.NMOS6502,
		0xa9, 0x00, // LDA #$00
		0xd0, 0x10, // BNE +$10 (not taken)
	)
	step(t, c, 2)

	assert.Equal(t, uint16(0x1004), c.Reg.PC)
	assert.Equal(t, uint64(4), c.Cycles)
}

func TestStoreLeavesFlagsAlone(t *testing.T) {
	c := loadCPU(cpu.NMOS6502,
		0x38,       // SEC
		0xa9, 0x80, // LDA #$80
		0x8d, 0x00, 0x20, // STA $2000
	)
	step(t, c, 3)

	assert.True(t, c.Reg.Carry)
	assert.True(t, c.Reg.Sign)
	assert.False(t, c.Reg.Zero)
}

func TestADCOverflow(t *testing.T) {
	c := loadCPU(cpu.NMOS6502,
		0x18,       // CLC
		0xa9, 0x7f, // LDA #$7F
		0x69, 0x01, // ADC #$01
	)
	step(t, c, 3)

	assert.Equal(t, byte(0x80), c.Reg.A)
	assert.True(t, c.Reg.Overflow)
	assert.True(t, c.Reg.Sign)
	assert.False(t, c.Reg.Carry)
	assert.False(t, c.Reg.Zero)
}

func TestDecimalADC(t *testing.T) {
	code := []byte{
		0xf8,       // SED
		0x18,       // CLC
		0xa9, 0x99, // LDA #$99
		0x69, 0x01, // ADC #$01
	}

	// NMOS: BCD 99 + 01 = 00 with carry out, no extra cycle.
	n := loadCPU(cpu.NMOS6502, code...)
	step(t, n, 4)
	assert.Equal(t, byte(0x00), n.Reg.A)
	assert.True(t, n.Reg.Carry)
	assert.True(t, n.Reg.Zero)
	assert.Equal(t, uint64(8), n.Cycles)

	// CMOS: same result, one extra cycle in decimal mode.
	m := loadCPU(cpu.CMOS65C02, code...)
	step(t, m, 4)
	assert.Equal(t, byte(0x00), m.Reg.A)
	assert.True(t, m.Reg.Carry)
	assert.Equal(t, uint64(9), m.Cycles)
}

func TestDecimalSBC(t *testing.T) {
	c := loadCPU(cpu.NMOS6502,
		0xf8,       // SED
		0x38,       // SEC
		0xa9, 0x20, // LDA #$20
		0xe9, 0x05, // SBC #$05
	)
	step(t, c, 4)

	assert.Equal(t, byte(0x15), c.Reg.A)
	assert.True(t, c.Reg.Carry)
}

func TestIndirectJMPPageWrap(t *testing.T) {
	setup := func(v cpu.Variant) *cpu.CPU {
		mem := cpu.NewRAM()
		c := cpu.New(v, mem)
		mem.StoreBytes(0x0200, []byte{0x6c, 0xff, 0x10}) // JMP ($10FF)
		mem.StoreByte(0x10ff, 0x34)
		mem.StoreByte(0x1000, 0x12) // NMOS reads the high byte here
		mem.StoreByte(0x1100, 0x56) // CMOS reads the high byte here
		c.SetPC(0x0200)
		return c
	}

	n := setup(cpu.NMOS6502)
	step(t, n, 1)
	assert.Equal(t, uint16(0x1234), n.Reg.PC)
	assert.Equal(t, uint64(5), n.Cycles)

	m := setup(cpu.CMOS65C02)
	step(t, m, 1)
	assert.Equal(t, uint16(0x5634), m.Reg.PC)
	assert.Equal(t, uint64(6), m.Cycles)
}

func TestJSRAndRTS(t *testing.T) {
	c := loadCPU(cpu.NMOS6502, 0x20, 0x00, 0x20) // JSR $2000
	c.Mem.StoreByte(0x2000, 0x60)                // RTS

	step(t, c, 1)
	assert.Equal(t, uint16(0x2000), c.Reg.PC)
	assert.Equal(t, byte(0xfd), c.Reg.SP)
	assert.Equal(t, byte(0x10), c.Mem.LoadByte(0x1ff))
	assert.Equal(t, byte(0x02), c.Mem.LoadByte(0x1fe))

	step(t, c, 1)
	assert.Equal(t, uint16(0x1003), c.Reg.PC)
	assert.Equal(t, byte(0xff), c.Reg.SP)
	assert.Equal(t, uint64(12), c.Cycles)
}

func TestBRK(t *testing.T) {
	c := loadCPU(cpu.NMOS6502, 0x00) // BRK
	c.Mem.StoreAddress(0xfffe, 0x3000)

	step(t, c, 1)

	assert.Equal(t, uint16(0x3000), c.Reg.PC)
	assert.True(t, c.Reg.InterruptDisable)
	assert.Equal(t, byte(0xfc), c.Reg.SP)
	assert.Equal(t, byte(0x10), c.Mem.LoadByte(0x1ff)) // return address $1002
	assert.Equal(t, byte(0x02), c.Mem.LoadByte(0x1fe))
	ps := c.Mem.LoadByte(0x1fd)
	assert.NotZero(t, ps&cpu.BreakBit)
	assert.NotZero(t, ps&cpu.ReservedBit)
	assert.Equal(t, uint64(7), c.Cycles)
}

type brkTrap struct {
	hits int
}

func (b *brkTrap) OnBrk(c *cpu.CPU) {
	b.hits++
	c.SetPC(c.Reg.PC + 1)
}

func TestBRKHandler(t *testing.T) {
	c := loadCPU(cpu.NMOS6502, 0x00, 0xea) // BRK / NOP
	trap := &brkTrap{}
	c.AttachBrkHandler(trap)

	step(t, c, 2)

	assert.Equal(t, 1, trap.hits)
	assert.Equal(t, uint16(0x1002), c.Reg.PC)
	assert.False(t, c.Reg.InterruptDisable) // interrupt entry was bypassed
}

func TestIRQ(t *testing.T) {
	c := loadCPU(cpu.NMOS6502, 0xea) // NOP
	c.Mem.StoreAddress(0xfffe, 0x3000)
	c.Mem.StoreByte(0x3000, 0xea) // NOP

	c.SignalIRQ()
	step(t, c, 1)

	assert.Equal(t, uint16(0x3001), c.Reg.PC)
	assert.True(t, c.Reg.InterruptDisable)
	assert.Equal(t, uint64(9), c.Cycles) // 7 interrupt entry + 2 NOP
	assert.Equal(t, byte(0x10), c.Mem.LoadByte(0x1ff))
	assert.Equal(t, byte(0x00), c.Mem.LoadByte(0x1fe))
}

func TestIRQMasked(t *testing.T) {
	c := loadCPU(cpu.NMOS6502,
		0x78, // SEI
		0xea, // NOP
		0x58, // CLI
		0xea, // NOP (never reached; IRQ fires first)
	)
	c.Mem.StoreAddress(0xfffe, 0x3000)
	c.Mem.StoreByte(0x3000, 0xea)

	step(t, c, 1) // SEI
	c.SignalIRQ()

	step(t, c, 1) // NOP executes; IRQ stays pending
	assert.Equal(t, uint16(0x1002), c.Reg.PC)

	step(t, c, 1) // CLI
	assert.Equal(t, uint16(0x1003), c.Reg.PC)

	step(t, c, 1) // pending IRQ is finally serviced
	assert.Equal(t, uint16(0x3001), c.Reg.PC)
}

func TestNMIIgnoresInterruptDisable(t *testing.T) {
	c := loadCPU(cpu.NMOS6502, 0x78) // SEI
	c.Mem.StoreAddress(0xfffa, 0x4000)
	c.Mem.StoreByte(0x4000, 0xea)

	step(t, c, 1) // SEI
	c.SignalNMI()
	step(t, c, 1)

	assert.Equal(t, uint16(0x4001), c.Reg.PC)
	assert.Equal(t, uint64(11), c.Cycles) // 2 + 7 + 2
}

func TestJamHalts(t *testing.T) {
	c := loadCPU(cpu.NMOS6502, 0x02) // JAM
	c.Mem.StoreAddress(0xfffc, 0x2000)

	cycles, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, 2, cycles)
	assert.True(t, c.Halted())
	assert.Equal(t, uint16(0x1000), c.Reg.PC) // PC rewound to the jam

	// Every subsequent step re-signals the halt.
	for i := 0; i < 3; i++ {
		_, err = c.Step()
		var halt cpu.HaltError
		require.ErrorAs(t, err, &halt)
		assert.Equal(t, byte(0x02), halt.Opcode)
	}

	// Only a reset recovers.
	c.Reset()
	assert.False(t, c.Halted())
	assert.Equal(t, uint16(0x2000), c.Reg.PC)
	assert.Equal(t, byte(0xfd), c.Reg.SP)
	assert.True(t, c.Reg.InterruptDisable)
}

func TestExecuteCycleBudget(t *testing.T) {
	c := loadCPU(cpu.NMOS6502,
		0xea, // NOP
		0x4c, 0x00, 0x10, // JMP $1000
	)

	// Each loop iteration consumes 5 cycles, so a budget of 100 is consumed
	// exactly. Budget exhaustion is not an error.
	used, err := c.Execute(100)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), used)
	assert.Equal(t, uint64(20), c.Instructions)
}

func TestExecuteInstructionBudget(t *testing.T) {
	c := loadCPU(cpu.NMOS6502,
		0xea, // NOP
		0x4c, 0x00, 0x10, // JMP $1000
	)

	used, err := c.ExecuteInstructions(10)
	require.NoError(t, err)
	assert.Equal(t, uint64(25), used)
	assert.Equal(t, uint64(10), c.Instructions)
}

func TestExecuteStopsOnJam(t *testing.T) {
	c := loadCPU(cpu.NMOS6502,
		0xea, // NOP
		0x02, // JAM
	)

	used, err := c.Execute(100)
	var halt cpu.HaltError
	require.ErrorAs(t, err, &halt)
	assert.Equal(t, uint64(4), used) // NOP + the jam itself
}

func TestIllegalLAX(t *testing.T) {
	// The same byte lands in A and X, reproducibly.
	for i := 0; i < 2; i++ {
		c := loadCPU(cpu.NMOS6502, 0xa7, 0x10) // LAX $10
		c.Mem.StoreByte(0x10, 0xc3)
		step(t, c, 1)

		assert.Equal(t, byte(0xc3), c.Reg.A)
		assert.Equal(t, byte(0xc3), c.Reg.X)
		assert.True(t, c.Reg.Sign)
		assert.False(t, c.Reg.Zero)
		assert.Equal(t, uint64(3), c.Cycles)
	}
}

func TestIllegalSLO(t *testing.T) {
	c := loadCPU(cpu.NMOS6502,
		0xa9, 0x01, // LDA #$01
		0x07, 0x10, // SLO $10
	)
	c.Mem.StoreByte(0x10, 0x81)
	step(t, c, 2)

	assert.Equal(t, byte(0x02), c.Mem.LoadByte(0x10))
	assert.Equal(t, byte(0x03), c.Reg.A)
	assert.True(t, c.Reg.Carry)
	assert.Equal(t, uint64(7), c.Cycles)
}

func TestIllegalDCP(t *testing.T) {
	c := loadCPU(cpu.NMOS6502,
		0xa9, 0x01, // LDA #$01
		0xc7, 0x10, // DCP $10
	)
	c.Mem.StoreByte(0x10, 0x02)
	step(t, c, 2)

	assert.Equal(t, byte(0x01), c.Mem.LoadByte(0x10))
	assert.True(t, c.Reg.Carry)
	assert.True(t, c.Reg.Zero)
}

func TestIllegalISC(t *testing.T) {
	c := loadCPU(cpu.NMOS6502,
		0x38,       // SEC
		0xa9, 0x10, // LDA #$10
		0xe7, 0x20, // ISC $20
	)
	c.Mem.StoreByte(0x20, 0x04)
	step(t, c, 3)

	assert.Equal(t, byte(0x05), c.Mem.LoadByte(0x20))
	assert.Equal(t, byte(0x0b), c.Reg.A)
	assert.True(t, c.Reg.Carry)
}

func TestUnstableANE(t *testing.T) {
	// With the fixed magic constant, ANE collapses to A = X & imm.
	c := loadCPU(cpu.NMOS6502,
		0xa2, 0x0f, // LDX #$0F
		0x8b, 0xaa, // ANE #$AA
	)
	step(t, c, 2)

	assert.Equal(t, byte(0x0a), c.Reg.A)
}

func TestUnstableSHA(t *testing.T) {
	c := loadCPU(cpu.NMOS6502,
		0xa9, 0x33, // LDA #$33
		0xa2, 0x55, // LDX #$55
		0xa0, 0x00, // LDY #$00
		0x9f, 0xf0, 0x20, // SHA $20F0,Y
	)
	step(t, c, 4)

	// A & X & (high byte of target + 1) = $33 & $55 & $21
	assert.Equal(t, byte(0x01), c.Mem.LoadByte(0x20f0))
	assert.Equal(t, uint64(11), c.Cycles)
}

func TestUndocumentedNOPReads(t *testing.T) {
	c := loadCPU(cpu.NMOS6502,
		0x38,       // SEC
		0x04, 0x10, // NOP $10 (undocumented)
	)
	step(t, c, 2)

	assert.Equal(t, uint16(0x1003), c.Reg.PC)
	assert.Equal(t, uint64(5), c.Cycles) // 2 + 3
	assert.True(t, c.Reg.Carry)
}

func TestCMOSDeadSlots(t *testing.T) {
	// On the 65C02, former illegal opcode slots consume their documented
	// bytes and cycles but touch no registers or flags.
	c := loadCPU(cpu.CMOS65C02,
		0x38,       // SEC
		0x02, 0x00, // dead slot: 2 bytes, 2 cycles
		0x03, // dead slot: 1 byte, 1 cycle
	)
	step(t, c, 3)

	assert.Equal(t, uint16(0x1004), c.Reg.PC)
	assert.Equal(t, uint64(5), c.Cycles)
	assert.True(t, c.Reg.Carry)
	assert.Equal(t, byte(0), c.Reg.A)
}

func TestCMOSInstructions(t *testing.T) {
	c := loadCPU(cpu.CMOS65C02,
		0xa9, 0x80, // LDA #$80
		0xda,             // PHX
		0x9c, 0x00, 0x20, // STZ $2000
		0x1a, // INC A
	)
	c.Mem.StoreByte(0x2000, 0xff)
	step(t, c, 4)

	assert.Equal(t, byte(0x81), c.Reg.A)
	assert.Equal(t, byte(0x00), c.Mem.LoadByte(0x2000))
	assert.Equal(t, byte(0xfe), c.Reg.SP)
}

func TestVariantFamilies(t *testing.T) {
	// The NMOS speed grades are behaviorally identical and share an
	// instruction set.
	a := cpu.GetInstructionSet(cpu.NMOS6502)
	b := cpu.GetInstructionSet(cpu.NMOS6502A)
	d := cpu.GetInstructionSet(cpu.NMOS6502C)
	m := cpu.GetInstructionSet(cpu.CMOS65C02)

	assert.Same(t, a, b)
	assert.Same(t, a, d)
	assert.NotSame(t, a, m)

	assert.False(t, cpu.NMOS6502A.IsCMOS())
	assert.True(t, cpu.CMOS65C02.IsCMOS())
}

func TestInstructionSetComplete(t *testing.T) {
	for _, v := range []cpu.Variant{cpu.NMOS6502, cpu.CMOS65C02} {
		set := cpu.GetInstructionSet(v)
		undocumented := 0
		for op := 0; op < 256; op++ {
			inst := set.Lookup(byte(op))
			require.NotEmpty(t, inst.Name, "opcode %02X unmapped on %v", op, v)
			require.Equal(t, byte(op), inst.Opcode)
			if inst.Undocumented {
				undocumented++
			}
		}
		switch v {
		case cpu.NMOS6502:
			assert.Equal(t, 105, undocumented)
		case cpu.CMOS65C02:
			assert.Equal(t, 78, undocumented)
		}
	}
}

func TestInstructionMetadata(t *testing.T) {
	set := cpu.GetInstructionSet(cpu.NMOS6502)

	adc := set.Lookup(0x69)
	assert.Equal(t, "ADC", adc.Name)
	assert.NotZero(t, adc.Flags&cpu.CarryBit)
	assert.NotZero(t, adc.Flags&cpu.OverflowBit)
	assert.False(t, adc.Undocumented)

	sta := set.Lookup(0x8d)
	assert.Zero(t, sta.Flags)

	assert.Len(t, set.GetInstructions("lda"), 8)
	assert.Len(t, cpu.GetInstructionSet(cpu.CMOS65C02).GetInstructions("LDA"), 9)
}

func TestSBCAlias(t *testing.T) {
	// $EB is an undocumented alias for SBC #imm on NMOS.
	c := loadCPU(cpu.NMOS6502,
		0x38,       // SEC
		0xa9, 0x10, // LDA #$10
		0xeb, 0x01, // SBC #$01 (alias)
	)
	step(t, c, 3)

	assert.Equal(t, byte(0x0f), c.Reg.A)
	assert.True(t, cpu.GetInstructionSet(cpu.NMOS6502).Lookup(0xeb).Undocumented)
}

func TestAddressSpaceWrap(t *testing.T) {
	// Index arithmetic wraps modulo 64K: $FFFF + $F1 resolves to $00F0.
	c := loadCPU(cpu.NMOS6502,
		0xa2, 0xf1, // LDX #$F1
		0xbd, 0xff, 0xff, // LDA $FFFF,X
	)
	c.Mem.StoreByte(0x00f0, 0x3c)
	step(t, c, 2)

	assert.Equal(t, byte(0x3c), c.Reg.A)
}

func TestZeroPageStoreWrap(t *testing.T) {
	c := loadCPU(cpu.NMOS6502,
		0xa9, 0x5a, // LDA #$5A
		0xa2, 0xff, // LDX #$FF
		0x95, 0x80, // STA $80,X -> wraps to $7F
	)
	step(t, c, 3)

	assert.Equal(t, byte(0x5a), c.Mem.LoadByte(0x7f))
	assert.Equal(t, byte(0x00), c.Mem.LoadByte(0x17f))
}

func TestFlagIdempotence(t *testing.T) {
	// NOP, JMP, JSR, stores and taken branches must leave the entire
	// status byte untouched.
	cases := [][]byte{
		{0xea},             // NOP
		{0x4c, 0x00, 0x20}, // JMP $2000
		{0x20, 0x00, 0x20}, // JSR $2000
		{0x8d, 0x00, 0x20}, // STA $2000
		{0x8e, 0x00, 0x20}, // STX $2000
		{0x8c, 0x00, 0x20}, // STY $2000
		{0x95, 0x10},       // STA $10,X
		{0xd0, 0x10},       // BNE +$10 (taken; Z is clear below)
	}
	for _, code := range cases {
		c := loadCPU(cpu.NMOS6502, code...)
		c.Reg.RestorePS(cpu.CarryBit | cpu.OverflowBit | cpu.SignBit)
		before := c.Reg.SavePS(false)
		step(t, c, 1)
		assert.Equal(t, before, c.Reg.SavePS(false),
			"opcode $%02X must not touch flags", code[0])
	}
}
