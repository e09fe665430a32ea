// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package disasm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retrokit/mos65xx/cpu"
	"github.com/retrokit/mos65xx/disasm"
)

func TestDisassemble(t *testing.T) {
	cases := []struct {
		code []byte
		want string
		next uint16
	}{
		{[]byte{0xa9, 0x42}, "LDA #$42", 0x1002},
		{[]byte{0x8d, 0x00, 0xd0}, "STA $D000", 0x1003},
		{[]byte{0xbd, 0xff, 0x41}, "LDA $41FF,X", 0x1003},
		{[]byte{0xb1, 0x10}, "LDA ($10),Y", 0x1002},
		{[]byte{0x6c, 0xff, 0x10}, "JMP ($10FF)", 0x1003},
		{[]byte{0xea}, "NOP ", 0x1001},
		{[]byte{0xf0, 0x10}, "BEQ $1012", 0x1002},
		{[]byte{0xd0, 0xfe}, "BNE $1000", 0x1002}, // backward branch
	}

	set := cpu.GetInstructionSet(cpu.NMOS6502)
	for _, tc := range cases {
		mem := cpu.NewRAM()
		mem.StoreBytes(0x1000, tc.code)
		line, next := disasm.Disassemble(set, mem, 0x1000)
		assert.Equal(t, tc.want, line)
		assert.Equal(t, tc.next, next)
	}
}

func TestGetInstructionBytes(t *testing.T) {
	mem := cpu.NewRAM()
	mem.StoreBytes(0x1000, []byte{0x8d, 0x00, 0xd0, 0xea})

	set := cpu.GetInstructionSet(cpu.NMOS6502)
	b := disasm.GetInstructionBytes(set, mem, 0x1000)
	assert.Equal(t, []byte{0x8d, 0x00, 0xd0}, b)
}

func TestGetRegisterString(t *testing.T) {
	var r cpu.Registers
	r.Init()
	r.A = 0x5e
	r.PC = 0x1234
	r.Carry = true
	r.Sign = true

	s := disasm.GetRegisterString(&r)
	assert.Equal(t, "A=5E X=00 Y=00 PS=[N-C---] SP=FF PC=1234", s)
}
