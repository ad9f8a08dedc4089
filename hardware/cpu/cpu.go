// This file is part of stella2600.
//
// stella2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// stella2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with stella2600.  If not, see <https://www.gnu.org/licenses/>.

// Package cpu implements the 6507, the cost-reduced 6502 variant used in
// the console: same instruction set and same cycle timing as a stock NMOS
// 6502 (undocumented opcodes included), but with only 13 address lines
// bonded out.
package cpu

import (
	"errors"
	"fmt"

	"github.com/pixelclock/stella2600/hardware/clock"
	"github.com/pixelclock/stella2600/hardware/cpu/execution"
	"github.com/pixelclock/stella2600/hardware/cpu/instructions"
	"github.com/pixelclock/stella2600/hardware/cpu/registers"
	"github.com/pixelclock/stella2600/hardware/instance"
	"github.com/pixelclock/stella2600/hardware/memory/bus"
	"github.com/pixelclock/stella2600/logger"
)

// ErrKilled is returned by Step once a JAM/KIL opcode has locked the CPU.
// Only Reset() clears it, matching the real chip: the only way off a JAM
// state is a hardware reset.
var ErrKilled = errors.New("cpu: JAM opcode executed, cpu halted until reset")

// CPU implements the 6507. All timing flows from a single shared Clock;
// the CPU never measures wall-clock time and never runs ahead of it -
// every bus access it issues advances the clock by one CPU cycle (three
// colour clocks) before the next access is allowed to happen.
type CPU struct {
	instance *instance.Instance
	clock    *clock.Clock
	mem      bus.CPUBus

	PC     registers.ProgramCounter
	A      registers.Data
	X      registers.Data
	Y      registers.Data
	SP     registers.StackPointer
	Status registers.Status

	// LastResult describes the most recently completed instruction; used by
	// tests and by trace logging.
	LastResult execution.Result

	// Killed is true once a JAM/KIL opcode has been executed.
	Killed bool
}

// NewCPU returns a CPU wired to the given clock and memory bus, in a
// freshly reset state.
func NewCPU(inst *instance.Instance, clk *clock.Clock, mem bus.CPUBus) *CPU {
	mc := &CPU{
		instance: inst,
		clock:    clk,
		mem:      mem,
		A:        registers.NewData(0, "A"),
		X:        registers.NewData(0, "X"),
		Y:        registers.NewData(0, "Y"),
	}
	mc.Reset()
	return mc
}

func (mc *CPU) String() string {
	return fmt.Sprintf("%s=%s %s=%s %s=%s %s=%s %s=%s %s=%s",
		mc.PC.Label(), mc.PC, mc.A.Label(), mc.A, mc.X.Label(), mc.X,
		mc.Y.Label(), mc.Y, mc.SP.Label(), mc.SP, mc.Status.Label(), mc.Status)
}

// Reset reinitialises every register. If the instance is configured for
// random startup state, registers are seeded from it rather than zeroed -
// real hardware powers up with whatever the RAM cells happened to settle
// on, and a number of commercial cartridges are (in)famous for depending
// on this. PC is not loaded from the reset vector here; call
// LoadResetVector once the cartridge is plumbed in.
func (mc *CPU) Reset() {
	mc.LastResult.Reset()
	mc.Killed = false

	if mc.instance != nil && mc.instance.RandomState {
		mc.PC.Load(uint16(mc.instance.RandomByte())<<8 | uint16(mc.instance.RandomByte()))
		mc.A.Load(mc.instance.RandomByte())
		mc.X.Load(mc.instance.RandomByte())
		mc.Y.Load(mc.instance.RandomByte())
		mc.SP.Load(mc.instance.RandomByte())
	} else {
		mc.PC.Load(0)
		mc.A.Load(0)
		mc.X.Load(0)
		mc.Y.Load(0)
		mc.SP.Load(0xFF)
	}

	mc.Status = registers.NewStatus()
	mc.Status.InterruptDisable = true
}

// LoadResetVector loads PC from the cartridge's reset vector. Callers do
// this once, after Reset and after the cartridge has been plumbed into the
// memory bus.
func (mc *CPU) LoadResetVector(vector uint16) error {
	lo, err := mc.read(vector)
	if err != nil {
		return err
	}
	hi, err := mc.read(vector + 1)
	if err != nil {
		return err
	}
	mc.PC.Load(uint16(hi)<<8 | uint16(lo))
	return nil
}

// read performs one CPU-cycle memory read, advancing the clock.
func (mc *CPU) read(addr uint16) (uint8, error) {
	v, err := mc.mem.Read(addr)
	mc.clock.AdvanceCPUCycles(1)
	return v, err
}

// write performs one CPU-cycle memory write, advancing the clock.
func (mc *CPU) write(addr uint16, data uint8) error {
	err := mc.mem.Write(addr, data)
	mc.clock.AdvanceCPUCycles(1)
	return err
}

// phantom consumes one CPU cycle without touching the bus: the 6507 spends
// a cycle on most implied and accumulator-mode instructions (and on index
// calculation) even though it isn't moving data.
func (mc *CPU) phantom() {
	mc.clock.AdvanceCPUCycles(1)
}

func (mc *CPU) push(v uint8) error {
	err := mc.write(mc.SP.Address(), v)
	mc.SP.Load(mc.SP.Value() - 1)
	return err
}

func (mc *CPU) pop() (uint8, error) {
	mc.SP.Load(mc.SP.Value() + 1)
	return mc.read(mc.SP.Address())
}

func (mc *CPU) setNZ(v uint8) {
	mc.Status.Zero = v == 0
	mc.Status.Sign = v&0x80 != 0
}

// operand is the resolved source (and, for memory-based modes, destination)
// of an instruction.
type operand struct {
	accumulator bool   // value is the A register, not memory
	immediate   bool   // value was the instruction's own operand byte
	addr        uint16 // effective address, valid unless accumulator/immediate
	value       uint8  // resolved value for immediate mode
	pageCrossed bool
}

// resolve computes the effective address or immediate value for an
// instruction's addressing mode, issuing exactly the bus cycles real
// hardware would for the address-calculation portion of the instruction
// (the final read/write belonging to the operation itself is left to the
// caller).
func (mc *CPU) resolve(mode instructions.AddressingMode) (operand, error) {
	switch mode {
	case instructions.Implied:
		return operand{}, nil

	case instructions.Accumulator:
		return operand{accumulator: true}, nil

	case instructions.Immediate:
		v, err := mc.read(mc.PC.Value())
		mc.PC.Add(1)
		return operand{immediate: true, value: v}, err

	case instructions.ZeroPage:
		lo, err := mc.read(mc.PC.Value())
		mc.PC.Add(1)
		return operand{addr: uint16(lo)}, err

	case instructions.ZeroPageX:
		zp, err := mc.read(mc.PC.Value())
		mc.PC.Add(1)
		if err != nil {
			return operand{}, err
		}
		mc.phantom() // dummy read of the unindexed zero-page address
		return operand{addr: uint16(zp + mc.X.Value())}, nil

	case instructions.ZeroPageY:
		zp, err := mc.read(mc.PC.Value())
		mc.PC.Add(1)
		if err != nil {
			return operand{}, err
		}
		mc.phantom()
		return operand{addr: uint16(zp + mc.Y.Value())}, nil

	case instructions.Absolute:
		lo, err := mc.read(mc.PC.Value())
		mc.PC.Add(1)
		if err != nil {
			return operand{}, err
		}
		hi, err := mc.read(mc.PC.Value())
		mc.PC.Add(1)
		return operand{addr: uint16(hi)<<8 | uint16(lo)}, err

	case instructions.AbsoluteX, instructions.AbsoluteY:
		lo, err := mc.read(mc.PC.Value())
		mc.PC.Add(1)
		if err != nil {
			return operand{}, err
		}
		hi, err := mc.read(mc.PC.Value())
		mc.PC.Add(1)
		if err != nil {
			return operand{}, err
		}
		base := uint16(hi)<<8 | uint16(lo)
		var index uint8
		if mode == instructions.AbsoluteX {
			index = mc.X.Value()
		} else {
			index = mc.Y.Value()
		}
		addr := base + uint16(index)
		return operand{addr: addr, pageCrossed: addr&0xFF00 != base&0xFF00}, nil

	case instructions.Indirect:
		lo, err := mc.read(mc.PC.Value())
		mc.PC.Add(1)
		if err != nil {
			return operand{}, err
		}
		hi, err := mc.read(mc.PC.Value())
		mc.PC.Add(1)
		if err != nil {
			return operand{}, err
		}
		ptr := uint16(hi)<<8 | uint16(lo)
		tlo, err := mc.read(ptr)
		if err != nil {
			return operand{}, err
		}
		// the page-wrap bug (ptr's low byte 0xFF fetching the high byte
		// from ptr&0xFF00 rather than ptr+1) is not reproduced; see
		// SPEC_FULL.md.
		thi, err := mc.read(ptr + 1)
		return operand{addr: uint16(thi)<<8 | uint16(tlo)}, err

	case instructions.IndirectX:
		zp, err := mc.read(mc.PC.Value())
		mc.PC.Add(1)
		if err != nil {
			return operand{}, err
		}
		mc.phantom()
		ptr := zp + mc.X.Value()
		lo, err := mc.read(uint16(ptr))
		if err != nil {
			return operand{}, err
		}
		hi, err := mc.read(uint16(ptr + 1))
		return operand{addr: uint16(hi)<<8 | uint16(lo)}, err

	case instructions.IndirectY:
		zp, err := mc.read(mc.PC.Value())
		mc.PC.Add(1)
		if err != nil {
			return operand{}, err
		}
		lo, err := mc.read(uint16(zp))
		if err != nil {
			return operand{}, err
		}
		hi, err := mc.read(uint16(zp + 1))
		if err != nil {
			return operand{}, err
		}
		base := uint16(hi)<<8 | uint16(lo)
		addr := base + uint16(mc.Y.Value())
		return operand{addr: addr, pageCrossed: addr&0xFF00 != base&0xFF00}, nil
	}

	return operand{}, fmt.Errorf("cpu: unhandled addressing mode %s", mode)
}

// readOperand returns the value an instruction should act on, reading
// memory if the operand isn't already an immediate value or the
// accumulator.
func (mc *CPU) readOperand(op operand) (uint8, error) {
	if op.immediate {
		return op.value, nil
	}
	if op.accumulator {
		return mc.A.Value(), nil
	}
	return mc.read(op.addr)
}

// Step executes a single instruction, returning execution.Result
// describing what happened.
func (mc *CPU) Step() (execution.Result, error) {
	if mc.Killed {
		return mc.LastResult, ErrKilled
	}

	mc.LastResult.Reset()
	startAddr := mc.PC.Value()
	cyclesBefore := mc.clock.Now()

	opcode, err := mc.read(startAddr)
	if err != nil {
		return mc.LastResult, err
	}
	mc.PC.Add(1)

	defn := instructions.Lookup(opcode)
	mc.LastResult.Defn = &defn
	mc.LastResult.Address = startAddr

	if err := mc.execute(defn); err != nil {
		return mc.LastResult, err
	}

	mc.LastResult.Cycles = int((mc.clock.Now() - cyclesBefore) / clock.TicksPerCPUCycle)
	mc.LastResult.Final = true

	return mc.LastResult, nil
}

func (mc *CPU) execute(defn instructions.Definition) error {
	switch defn.Operator {
	case instructions.JAM:
		mc.Killed = true
		logger.Logf("cpu", "JAM opcode $%02X executed at $%04X", defn.OpCode, mc.LastResult.Address)
		return ErrKilled

	case instructions.BRK:
		return mc.brk()
	case instructions.RTI:
		return mc.rti()
	case instructions.JSR:
		return mc.jsr()
	case instructions.RTS:
		return mc.rts()
	case instructions.JMP:
		return mc.jmpOrBranch(defn)
	}

	if defn.IsBranch() {
		return mc.jmpOrBranch(defn)
	}

	if defn.AddressingMode == instructions.Implied {
		return mc.executeImplied(defn)
	}

	op, err := mc.resolve(defn.AddressingMode)
	if err != nil {
		return err
	}
	// Indexed addressing (absolute,X/Y and (zp),Y) costs one extra cycle
	// for the address-carry fixup. Read instructions only pay it when the
	// index actually carries into the next page (PageSensitive); write and
	// read-modify-write instructions can't finish early even when it
	// doesn't, since the CPU has already committed to the worst-case
	// timing by the time it would know - so they pay it unconditionally.
	indexed := defn.AddressingMode == instructions.AbsoluteX ||
		defn.AddressingMode == instructions.AbsoluteY ||
		defn.AddressingMode == instructions.IndirectY
	if indexed {
		if defn.PageSensitive {
			if op.pageCrossed {
				mc.phantom()
			}
		} else {
			mc.phantom()
		}
	}
	mc.LastResult.InstructionData = op.addr
	if op.immediate {
		mc.LastResult.InstructionData = uint16(op.value)
	}
	mc.LastResult.PageFault = op.pageCrossed

	switch defn.Effect {
	case instructions.Read:
		return mc.executeRead(defn, op)
	case instructions.Write:
		return mc.executeWrite(defn, op)
	case instructions.Modify:
		return mc.executeModify(defn, op)
	}

	return fmt.Errorf("cpu: opcode $%02X (%s) has no handler for effect %s", defn.OpCode, defn.Operator, defn.Effect)
}

// executeImplied handles every Implied-addressing-mode instruction: the
// flag, register-transfer, increment/decrement and stack operations, plus
// the single-byte NOP. Every other addressing mode is handled by
// executeRead/executeWrite/executeModify instead.
func (mc *CPU) executeImplied(defn instructions.Definition) error {
	switch defn.Operator {
	case instructions.PHA:
		mc.phantom() // dummy read of the next instruction byte
		return mc.push(mc.A.Value())
	case instructions.PHP:
		mc.phantom()
		return mc.push(mc.Status.Value())
	case instructions.PLA:
		mc.phantom() // dummy read of the next instruction byte
		mc.phantom() // internal increment of the stack pointer
		v, err := mc.pop()
		if err != nil {
			return err
		}
		mc.A.Load(v)
		mc.setNZ(v)
		return nil
	case instructions.PLP:
		mc.phantom() // dummy read of the next instruction byte
		mc.phantom() // internal increment of the stack pointer
		v, err := mc.pop()
		if err != nil {
			return err
		}
		mc.Status.Load(v)
		return nil
	case instructions.CLC:
		mc.Status.Carry = false
	case instructions.SEC:
		mc.Status.Carry = true
	case instructions.CLI:
		mc.Status.InterruptDisable = false
	case instructions.SEI:
		mc.Status.InterruptDisable = true
	case instructions.CLV:
		mc.Status.Overflow = false
	case instructions.CLD:
		mc.Status.DecimalMode = false
	case instructions.SED:
		mc.Status.DecimalMode = true
	case instructions.TAX:
		mc.X.Load(mc.A.Value())
		mc.setNZ(mc.X.Value())
	case instructions.TAY:
		mc.Y.Load(mc.A.Value())
		mc.setNZ(mc.Y.Value())
	case instructions.TXA:
		mc.A.Load(mc.X.Value())
		mc.setNZ(mc.A.Value())
	case instructions.TYA:
		mc.A.Load(mc.Y.Value())
		mc.setNZ(mc.A.Value())
	case instructions.TSX:
		mc.X.Load(mc.SP.Value())
		mc.setNZ(mc.X.Value())
	case instructions.TXS:
		mc.SP.Load(mc.X.Value())
	case instructions.DEX:
		mc.X.Load(mc.X.Value() - 1)
		mc.setNZ(mc.X.Value())
	case instructions.DEY:
		mc.Y.Load(mc.Y.Value() - 1)
		mc.setNZ(mc.Y.Value())
	case instructions.INX:
		mc.X.Load(mc.X.Value() + 1)
		mc.setNZ(mc.X.Value())
	case instructions.INY:
		mc.Y.Load(mc.Y.Value() + 1)
		mc.setNZ(mc.Y.Value())
	case instructions.NOP:
		// implied-mode NOP (0xEA); the undocumented multi-byte NOPs go
		// through executeRead below so their operand fetch still happens.
	default:
		return fmt.Errorf("cpu: opcode $%02X (%s) has no implied-mode handler", defn.OpCode, defn.Operator)
	}

	mc.phantom()
	return nil
}

// executeRead handles every instruction whose only effect is to consult a
// value and update registers/flags - LDA/CMP/BIT/ADC and their
// undocumented LAX/ANC/ALR/ARR/AXS/ANE/LAS cousins, plus the many
// addressing-mode variants of NOP.
func (mc *CPU) executeRead(defn instructions.Definition, op operand) error {
	v, err := mc.readOperand(op)
	if err != nil {
		return err
	}

	switch defn.Operator {
	case instructions.NOP:
		// undocumented NOP: operand fetched and discarded.
	case instructions.LDA:
		mc.A.Load(v)
		mc.setNZ(v)
	case instructions.LDX:
		mc.X.Load(v)
		mc.setNZ(v)
	case instructions.LDY:
		mc.Y.Load(v)
		mc.setNZ(v)
	case instructions.LAX:
		mc.A.Load(v)
		mc.X.Load(v)
		mc.setNZ(v)
	case instructions.AND:
		mc.A.AND(v)
		mc.setNZ(mc.A.Value())
	case instructions.ORA:
		mc.A.ORA(v)
		mc.setNZ(mc.A.Value())
	case instructions.EOR:
		mc.A.EOR(v)
		mc.setNZ(mc.A.Value())
	case instructions.ADC:
		if mc.Status.DecimalMode {
			carry, zero, overflow, sign := mc.A.AddDecimal(v, mc.Status.Carry)
			mc.Status.Carry = carry
			mc.Status.Overflow = overflow
			mc.Status.Zero = zero
			mc.Status.Sign = sign
		} else {
			carry, overflow := mc.A.Add(v, mc.Status.Carry)
			mc.Status.Carry = carry
			mc.Status.Overflow = overflow
			mc.setNZ(mc.A.Value())
		}
	case instructions.SBC:
		if mc.Status.DecimalMode {
			carry, zero, overflow, sign := mc.A.SubtractDecimal(v, mc.Status.Carry)
			mc.Status.Carry = carry
			mc.Status.Overflow = overflow
			mc.Status.Zero = zero
			mc.Status.Sign = sign
		} else {
			carry, overflow := mc.A.Subtract(v, mc.Status.Carry)
			mc.Status.Carry = carry
			mc.Status.Overflow = overflow
			mc.setNZ(mc.A.Value())
		}
	case instructions.CMP:
		mc.compare(mc.A.Value(), v)
	case instructions.CPX:
		mc.compare(mc.X.Value(), v)
	case instructions.CPY:
		mc.compare(mc.Y.Value(), v)
	case instructions.BIT:
		mc.Status.Zero = mc.A.Value()&v == 0
		mc.Status.Sign = v&0x80 != 0
		mc.Status.Overflow = v&0x40 != 0
	case instructions.ANC:
		mc.A.AND(v)
		mc.setNZ(mc.A.Value())
		mc.Status.Carry = mc.A.IsNegative()
	case instructions.ALR:
		mc.A.AND(v)
		carry := mc.A.LSR()
		mc.Status.Carry = carry
		mc.setNZ(mc.A.Value())
	case instructions.ARR:
		// ARR's carry/overflow behaviour depends on undocumented internal
		// adder state; this models the commonly-cited approximation (AND
		// then ROR, with C taken from the result's bit 6 and V from bits
		// 6 xor 5) rather than the exact analogue circuit.
		mc.A.AND(v)
		mc.A.ROR(mc.Status.Carry)
		r := mc.A.Value()
		mc.setNZ(r)
		mc.Status.Carry = r&0x40 != 0
		mc.Status.Overflow = (r&0x40 != 0) != (r&0x20 != 0)
	case instructions.AXS:
		result := (mc.A.Value() & mc.X.Value())
		carry := result >= v
		result -= v
		mc.X.Load(result)
		mc.setNZ(result)
		mc.Status.Carry = carry
	case instructions.ANE:
		// unstable: modelled as (A & X) & operand, the common emulator
		// approximation of this opcode's magic-constant behaviour.
		r := mc.A.Value() & mc.X.Value() & v
		mc.A.Load(r)
		mc.setNZ(r)
	case instructions.LAS:
		r := v & mc.SP.Value()
		mc.A.Load(r)
		mc.X.Load(r)
		mc.SP.Load(r)
		mc.setNZ(r)
	default:
		return fmt.Errorf("cpu: opcode $%02X (%s) has no read-mode handler", defn.OpCode, defn.Operator)
	}

	return nil
}

// executeWrite handles STA/STX/STY and their undocumented combinations.
func (mc *CPU) executeWrite(defn instructions.Definition, op operand) error {
	var v uint8
	switch defn.Operator {
	case instructions.STA:
		v = mc.A.Value()
	case instructions.STX:
		v = mc.X.Value()
	case instructions.STY:
		v = mc.Y.Value()
	case instructions.SAX:
		v = mc.A.Value() & mc.X.Value()
	case instructions.SHA:
		v = mc.A.Value() & mc.X.Value() & uint8(op.addr>>8+1)
	case instructions.SHX:
		v = mc.X.Value() & uint8(op.addr>>8+1)
	case instructions.SHY:
		v = mc.Y.Value() & uint8(op.addr>>8+1)
	case instructions.TAS:
		mc.SP.Load(mc.A.Value() & mc.X.Value())
		v = mc.SP.Value() & uint8(op.addr>>8+1)
	default:
		return fmt.Errorf("cpu: opcode $%02X (%s) has no write-mode handler", defn.OpCode, defn.Operator)
	}
	return mc.write(op.addr, v)
}

// executeModify handles every read-modify-write instruction: INC/DEC/
// ASL/LSR/ROL/ROR, both in their Accumulator form and their memory form,
// plus the undocumented combined forms (SLO, RLA, SRE, RRA, DCP, ISC).
func (mc *CPU) executeModify(defn instructions.Definition, op operand) error {
	old, err := mc.readOperand(op)
	if err != nil {
		return err
	}
	if !op.accumulator {
		// dummy write-back of the unmodified value: real RMW instructions
		// always do this before the real write.
		if err := mc.write(op.addr, old); err != nil {
			return err
		}
	}

	var result uint8
	switch defn.Operator {
	case instructions.INC:
		result = old + 1
		mc.setNZ(result)
	case instructions.DEC:
		result = old - 1
		mc.setNZ(result)
	case instructions.ASL:
		var carry bool
		result, carry = aslValue(old)
		mc.Status.Carry = carry
		mc.setNZ(result)
	case instructions.LSR:
		var carry bool
		result, carry = lsrValue(old)
		mc.Status.Carry = carry
		mc.setNZ(result)
	case instructions.ROL:
		var carry bool
		result, carry = rolValue(old, mc.Status.Carry)
		mc.Status.Carry = carry
		mc.setNZ(result)
	case instructions.ROR:
		var carry bool
		result, carry = rorValue(old, mc.Status.Carry)
		mc.Status.Carry = carry
		mc.setNZ(result)
	case instructions.SLO:
		var carry bool
		result, carry = aslValue(old)
		mc.Status.Carry = carry
		mc.A.ORA(result)
		mc.setNZ(mc.A.Value())
	case instructions.RLA:
		var carry bool
		result, carry = rolValue(old, mc.Status.Carry)
		mc.Status.Carry = carry
		mc.A.AND(result)
		mc.setNZ(mc.A.Value())
	case instructions.SRE:
		var carry bool
		result, carry = lsrValue(old)
		mc.Status.Carry = carry
		mc.A.EOR(result)
		mc.setNZ(mc.A.Value())
	case instructions.RRA:
		var carry bool
		result, carry = rorValue(old, mc.Status.Carry)
		mc.Status.Carry = carry
		if mc.Status.DecimalMode {
			addCarry, zero, overflow, sign := mc.A.AddDecimal(result, carry)
			mc.Status.Carry = addCarry
			mc.Status.Overflow = overflow
			mc.Status.Zero = zero
			mc.Status.Sign = sign
		} else {
			addCarry, overflow := mc.A.Add(result, carry)
			mc.Status.Carry = addCarry
			mc.Status.Overflow = overflow
			mc.setNZ(mc.A.Value())
		}
	case instructions.DCP:
		result = old - 1
		mc.compare(mc.A.Value(), result)
	case instructions.ISC:
		result = old + 1
		if mc.Status.DecimalMode {
			carry, zero, overflow, sign := mc.A.SubtractDecimal(result, mc.Status.Carry)
			mc.Status.Carry = carry
			mc.Status.Overflow = overflow
			mc.Status.Zero = zero
			mc.Status.Sign = sign
		} else {
			carry, overflow := mc.A.Subtract(result, mc.Status.Carry)
			mc.Status.Carry = carry
			mc.Status.Overflow = overflow
			mc.setNZ(mc.A.Value())
		}
	default:
		return fmt.Errorf("cpu: opcode $%02X (%s) has no modify-mode handler", defn.OpCode, defn.Operator)
	}

	if op.accumulator {
		mc.A.Load(result)
		mc.phantom()
		return nil
	}
	return mc.write(op.addr, result)
}

func (mc *CPU) compare(reg, v uint8) {
	mc.Status.Carry = reg >= v
	mc.setNZ(reg - v)
}

func aslValue(v uint8) (uint8, bool)       { return v << 1, v&0x80 != 0 }
func lsrValue(v uint8) (uint8, bool)       { return v >> 1, v&1 != 0 }
func rolValue(v uint8, c bool) (uint8, bool) {
	r := v << 1
	if c {
		r |= 1
	}
	return r, v&0x80 != 0
}
func rorValue(v uint8, c bool) (uint8, bool) {
	r := v >> 1
	if c {
		r |= 0x80
	}
	return r, v&1 != 0
}

// jmpOrBranch handles JMP (both addressing forms) and all eight
// conditional branches.
func (mc *CPU) jmpOrBranch(defn instructions.Definition) error {
	if defn.AddressingMode == instructions.Relative {
		offset, err := mc.read(mc.PC.Value())
		if err != nil {
			return err
		}
		mc.PC.Add(1)
		mc.LastResult.InstructionData = uint16(offset)

		taken := mc.branchTaken(defn.Operator)
		mc.LastResult.BranchSuccess = taken
		if !taken {
			return nil
		}

		mc.phantom()
		oldPC := mc.PC.Value()
		newPC := oldPC + uint16(int16(int8(offset)))
		mc.PC.Load(newPC)
		if newPC&0xFF00 != oldPC&0xFF00 {
			mc.phantom()
			mc.LastResult.PageFault = true
		}
		return nil
	}

	op, err := mc.resolve(defn.AddressingMode)
	if err != nil {
		return err
	}
	mc.LastResult.InstructionData = op.addr
	mc.PC.Load(op.addr)
	return nil
}

func (mc *CPU) branchTaken(op instructions.Operator) bool {
	switch op {
	case instructions.BCC:
		return !mc.Status.Carry
	case instructions.BCS:
		return mc.Status.Carry
	case instructions.BEQ:
		return mc.Status.Zero
	case instructions.BNE:
		return !mc.Status.Zero
	case instructions.BMI:
		return mc.Status.Sign
	case instructions.BPL:
		return !mc.Status.Sign
	case instructions.BVC:
		return !mc.Status.Overflow
	case instructions.BVS:
		return mc.Status.Overflow
	}
	return false
}

func (mc *CPU) jsr() error {
	lo, err := mc.read(mc.PC.Value())
	if err != nil {
		return err
	}
	mc.PC.Add(1)
	mc.phantom() // internal operation on the stack pointer
	retAddr := mc.PC.Value() // points at the high byte still to be fetched
	if err := mc.push(uint8(retAddr >> 8)); err != nil {
		return err
	}
	if err := mc.push(uint8(retAddr)); err != nil {
		return err
	}
	hi, err := mc.read(mc.PC.Value())
	if err != nil {
		return err
	}
	mc.PC.Load(uint16(hi)<<8 | uint16(lo))
	mc.LastResult.InstructionData = mc.PC.Value()
	return nil
}

func (mc *CPU) rts() error {
	mc.phantom() // dummy read of the next instruction byte
	mc.phantom() // internal increment of the stack pointer
	lo, err := mc.pop()
	if err != nil {
		return err
	}
	hi, err := mc.pop()
	if err != nil {
		return err
	}
	mc.phantom() // increment PC past the JSR operand it points at
	mc.PC.Load((uint16(hi)<<8 | uint16(lo)) + 1)
	return nil
}

func (mc *CPU) brk() error {
	mc.phantom() // BRK's second byte is a padding byte, read and discarded
	mc.PC.Add(1) // skipped on return
	if err := mc.push(uint8(mc.PC.Value() >> 8)); err != nil {
		return err
	}
	if err := mc.push(uint8(mc.PC.Value())); err != nil {
		return err
	}
	mc.Status.Break = true
	if err := mc.push(mc.Status.Value()); err != nil {
		return err
	}
	mc.Status.InterruptDisable = true
	lo, err := mc.read(0xFFFE)
	if err != nil {
		return err
	}
	hi, err := mc.read(0xFFFF)
	if err != nil {
		return err
	}
	mc.PC.Load(uint16(hi)<<8 | uint16(lo))
	return nil
}

func (mc *CPU) rti() error {
	mc.phantom() // dummy read of the next instruction byte
	mc.phantom() // internal increment of the stack pointer
	sr, err := mc.pop()
	if err != nil {
		return err
	}
	mc.Status.Load(sr)
	lo, err := mc.pop()
	if err != nil {
		return err
	}
	hi, err := mc.pop()
	if err != nil {
		return err
	}
	mc.PC.Load(uint16(hi)<<8 | uint16(lo))
	return nil
}
