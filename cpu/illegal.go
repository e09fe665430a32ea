// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// The undocumented opcodes of the NMOS parts. The "stable" group performs
// deterministic combined operations and is relied on by real software; the
// "unstable" group (ane, lxa, sha, shx, shy, tas, las) depends on analog
// chip behavior that varies between dies, so a single fixed approximation
// is emulated instead.

// Value that stands in for the floating accumulator bus seen by the
// unstable opcodes. Real silicon yields chip- and temperature-dependent
// results; $FF makes ANE collapse to A = X & imm and LXA to A = X = imm.
const magic = 0xff

// Shift left, then OR into the accumulator (ASL + ORA).
func (cpu *CPU) slo(inst *Instruction, operand []byte) {
	v := cpu.load(inst.Mode, operand)
	cpu.Reg.Carry = ((v & 0x80) != 0)
	v = v << 1
	cpu.store(inst.Mode, operand, v)
	cpu.Reg.A |= v
	cpu.updateNZ(cpu.Reg.A)
}

// Rotate left, then AND into the accumulator (ROL + AND).
func (cpu *CPU) rla(inst *Instruction, operand []byte) {
	tmp := cpu.load(inst.Mode, operand)
	v := (tmp << 1) | boolToByte(cpu.Reg.Carry)
	cpu.Reg.Carry = ((tmp & 0x80) != 0)
	cpu.store(inst.Mode, operand, v)
	cpu.Reg.A &= v
	cpu.updateNZ(cpu.Reg.A)
}

// Shift right, then XOR into the accumulator (LSR + EOR).
func (cpu *CPU) sre(inst *Instruction, operand []byte) {
	v := cpu.load(inst.Mode, operand)
	cpu.Reg.Carry = ((v & 1) != 0)
	v = v >> 1
	cpu.store(inst.Mode, operand, v)
	cpu.Reg.A ^= v
	cpu.updateNZ(cpu.Reg.A)
}

// Rotate right, then add with carry (ROR + ADC). The add runs through the
// NMOS ADC core, so decimal mode applies.
func (cpu *CPU) rra(inst *Instruction, operand []byte) {
	tmp := cpu.load(inst.Mode, operand)
	v := (tmp >> 1) | (boolToByte(cpu.Reg.Carry) << 7)
	cpu.Reg.Carry = ((tmp & 1) != 0)
	cpu.store(inst.Mode, operand, v)
	cpu.adcnVal(uint32(v))
}

// Store A AND X. No flags are modified.
func (cpu *CPU) sax(inst *Instruction, operand []byte) {
	cpu.store(inst.Mode, operand, cpu.Reg.A&cpu.Reg.X)
}

// Load Accumulator and X register with the same byte (LDA + LDX).
func (cpu *CPU) lax(inst *Instruction, operand []byte) {
	v := cpu.load(inst.Mode, operand)
	cpu.Reg.A = v
	cpu.Reg.X = v
	cpu.updateNZ(v)
}

// Decrement memory, then compare to the accumulator (DEC + CMP).
func (cpu *CPU) dcp(inst *Instruction, operand []byte) {
	v := cpu.load(inst.Mode, operand) - 1
	cpu.store(inst.Mode, operand, v)
	cpu.Reg.Carry = (cpu.Reg.A >= v)
	cpu.updateNZ(cpu.Reg.A - v)
}

// Increment memory, then subtract with carry (INC + SBC). The subtract
// runs through the NMOS SBC core, so decimal mode applies.
func (cpu *CPU) isc(inst *Instruction, operand []byte) {
	v := cpu.load(inst.Mode, operand) + 1
	cpu.store(inst.Mode, operand, v)
	cpu.sbcnVal(uint32(v))
}

// AND immediate, copying the resulting sign bit into carry.
func (cpu *CPU) anc(inst *Instruction, operand []byte) {
	cpu.Reg.A &= operand[0]
	cpu.updateNZ(cpu.Reg.A)
	cpu.Reg.Carry = cpu.Reg.Sign
}

// AND immediate, then shift the accumulator right (AND + LSR).
func (cpu *CPU) alr(inst *Instruction, operand []byte) {
	v := cpu.Reg.A & operand[0]
	cpu.Reg.Carry = ((v & 1) != 0)
	cpu.Reg.A = v >> 1
	cpu.updateNZ(cpu.Reg.A)
}

// AND immediate, then rotate the accumulator right, with carry and
// overflow derived from bits 6 and 5 of the result. The decimal-mode
// fixup of real silicon is not reproduced.
func (cpu *CPU) arr(inst *Instruction, operand []byte) {
	v := cpu.Reg.A & operand[0]
	cpu.Reg.A = (v >> 1) | (boolToByte(cpu.Reg.Carry) << 7)
	cpu.updateNZ(cpu.Reg.A)
	cpu.Reg.Carry = ((cpu.Reg.A & 0x40) != 0)
	cpu.Reg.Overflow = (((cpu.Reg.A >> 6) ^ (cpu.Reg.A >> 5)) & 1) != 0
}

// Set X to (A AND X) minus the immediate, without borrow (CMP/DEX hybrid).
func (cpu *CPU) sbx(inst *Instruction, operand []byte) {
	t := cpu.Reg.A & cpu.Reg.X
	cpu.Reg.Carry = (t >= operand[0])
	cpu.Reg.X = t - operand[0]
	cpu.updateNZ(cpu.Reg.X)
}

// Unstable: A = (A | magic) & X & immediate.
func (cpu *CPU) ane(inst *Instruction, operand []byte) {
	cpu.Reg.A = (cpu.Reg.A | magic) & cpu.Reg.X & operand[0]
	cpu.updateNZ(cpu.Reg.A)
}

// Unstable: A = X = (A | magic) & immediate.
func (cpu *CPU) lxa(inst *Instruction, operand []byte) {
	v := (cpu.Reg.A | magic) & operand[0]
	cpu.Reg.A = v
	cpu.Reg.X = v
	cpu.updateNZ(v)
}

// Unstable: store A AND X AND (high byte of target address + 1).
func (cpu *CPU) sha(inst *Instruction, operand []byte) {
	addr := cpu.effectiveAddress(inst.Mode, operand)
	cpu.storeByte(cpu, addr, cpu.Reg.A&cpu.Reg.X&(byte(addr>>8)+1))
}

// Unstable: store X AND (high byte of target address + 1).
func (cpu *CPU) shx(inst *Instruction, operand []byte) {
	addr := cpu.effectiveAddress(inst.Mode, operand)
	cpu.storeByte(cpu, addr, cpu.Reg.X&(byte(addr>>8)+1))
}

// Unstable: store Y AND (high byte of target address + 1).
func (cpu *CPU) shy(inst *Instruction, operand []byte) {
	addr := cpu.effectiveAddress(inst.Mode, operand)
	cpu.storeByte(cpu, addr, cpu.Reg.Y&(byte(addr>>8)+1))
}

// Unstable: SP = A AND X, then store SP AND (high byte of target
// address + 1).
func (cpu *CPU) tas(inst *Instruction, operand []byte) {
	cpu.Reg.SP = cpu.Reg.A & cpu.Reg.X
	addr := cpu.effectiveAddress(inst.Mode, operand)
	cpu.storeByte(cpu, addr, cpu.Reg.SP&(byte(addr>>8)+1))
}

// Unstable: A, X and SP are all loaded with memory AND SP.
func (cpu *CPU) las(inst *Instruction, operand []byte) {
	v := cpu.load(inst.Mode, operand) & cpu.Reg.SP
	cpu.Reg.A = v
	cpu.Reg.X = v
	cpu.Reg.SP = v
	cpu.updateNZ(v)
}

// Undocumented NOP with an operand. The dummy operand read still happens,
// so memory handlers observe the access and indexed forms charge the
// page-cross penalty.
func (cpu *CPU) nopRead(inst *Instruction, operand []byte) {
	cpu.load(inst.Mode, operand)
}

// Wedge the CPU. The program counter is rewound to the jam instruction and
// the halt latch is set; only Reset recovers.
func (cpu *CPU) jam(inst *Instruction, operand []byte) {
	cpu.halted = true
	cpu.haltOpcode = inst.Opcode
	cpu.Reg.PC = cpu.LastPC
}
