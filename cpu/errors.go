// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import "fmt"

// An IllegalInstructionError is returned by Step when the fetched opcode has
// no handler for the CPU's variant and is not eligible for NOP degradation.
// The CPU state prior to the faulting fetch is left intact so that tooling
// can inspect and display it.
type IllegalInstructionError struct {
	Opcode  byte    // the offending opcode value
	Addr    uint16  // address the opcode was fetched from
	Variant Variant // variant that rejected the opcode
}

func (e IllegalInstructionError) Error() string {
	return fmt.Sprintf("illegal instruction $%02X at $%04X on %v", e.Opcode, e.Addr, e.Variant)
}

// A HaltError is returned by Step when the CPU has been wedged by a JAM
// opcode. The CPU remains halted, and Step keeps returning a HaltError,
// until Reset is called.
type HaltError struct {
	Opcode byte   // the JAM opcode that halted the CPU
	Addr   uint16 // address of the halting instruction
}

func (e HaltError) Error() string {
	return fmt.Sprintf("CPU halted by JAM opcode $%02X at $%04X", e.Opcode, e.Addr)
}
