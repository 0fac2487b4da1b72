package cpu

type aluFunc func(a, b uint32) uint32

func b2u(cond bool) uint32 {
	if cond {
		return 1
	}
	return 0
}

func aluAdd(a, b uint32) uint32  { return a + b }
func aluSub(a, b uint32) uint32  { return a - b }
func aluSll(a, b uint32) uint32  { return a << (b & 0x1f) }
func aluSrl(a, b uint32) uint32  { return a >> (b & 0x1f) }
func aluSra(a, b uint32) uint32  { return uint32(int32(a) >> (b & 0x1f)) }
func aluSlt(a, b uint32) uint32  { return b2u(int32(a) < int32(b)) }
func aluSltu(a, b uint32) uint32 { return b2u(a < b) }
func aluXor(a, b uint32) uint32  { return a ^ b }
func aluOr(a, b uint32) uint32   { return a | b }
func aluAnd(a, b uint32) uint32  { return a & b }

func aluMul(a, b uint32) uint32 {
	return uint32(int64(int32(a)) * int64(int32(b)))
}

// aluMulh is the high word of the signed product. MULHSU and MULHU share it.
func aluMulh(a, b uint32) uint32 {
	return uint32(uint64(int64(int32(a))*int64(int32(b))) >> 32)
}

// Divisors are non-zero; execDivide checks first.
func aluDiv(a, b uint32) uint32  { return uint32(int32(a) / int32(b)) }
func aluDivu(a, b uint32) uint32 { return a / b }
func aluRem(a, b uint32) uint32  { return uint32(int32(a) % int32(b)) }
func aluRemu(a, b uint32) uint32 { return a % b }

func execAlu(alu aluFunc) func(*Cpu, Operands) error {
	return func(cpu *Cpu, op Operands) error {
		cpu.Register[op.Rd] = alu(cpu.Register[op.Rs1], cpu.Register[op.Rs2])
		return nil
	}
}

func execAluImm(alu aluFunc) func(*Cpu, Operands) error {
	return func(cpu *Cpu, op Operands) error {
		cpu.Register[op.Rd] = alu(cpu.Register[op.Rs1], uint32(op.Imm))
		return nil
	}
}

func execDivide(alu aluFunc) func(*Cpu, Operands) error {
	return func(cpu *Cpu, op Operands) error {
		divisor := cpu.Register[op.Rs2]
		if divisor == 0 {
			return ErrDivideByZero
		}
		cpu.Register[op.Rd] = alu(cpu.Register[op.Rs1], divisor)
		return nil
	}
}

func execLoad(size int, signed bool) func(*Cpu, Operands) error {
	return func(cpu *Cpu, op Operands) (err error) {
		addr := cpu.Register[op.Rs1] + uint32(op.Imm)

		var value uint32
		switch size {
		case 1:
			var b uint8
			b, err = cpu.Memory.LoadByte(addr)
			value = uint32(b)
			if signed {
				value = uint32(int32(int8(b)))
			}
		case 2:
			var h uint16
			h, err = cpu.Memory.LoadHalf(addr)
			value = uint32(h)
			if signed {
				value = uint32(int32(int16(h)))
			}
		default:
			value, err = cpu.Memory.LoadWord(addr)
		}
		if err != nil {
			return
		}

		cpu.Register[op.Rd] = value
		return
	}
}

func execStore(size int) func(*Cpu, Operands) error {
	return func(cpu *Cpu, op Operands) (err error) {
		addr := cpu.Register[op.Rs1] + uint32(op.Imm)
		value := cpu.Register[op.Rs2]

		switch size {
		case 1:
			err = cpu.Memory.StoreByte(addr, uint8(value))
		case 2:
			err = cpu.Memory.StoreHalf(addr, uint16(value))
		default:
			err = cpu.Memory.StoreWord(addr, value)
		}
		return
	}
}

type condFunc func(a, b uint32) bool

func condEq(a, b uint32) bool  { return a == b }
func condNe(a, b uint32) bool  { return a != b }
func condLt(a, b uint32) bool  { return int32(a) < int32(b) }
func condGe(a, b uint32) bool  { return int32(a) >= int32(b) }
func condLtu(a, b uint32) bool { return a < b }
func condGeu(a, b uint32) bool { return a >= b }

func execBranch(cond condFunc) func(*Cpu, Operands) error {
	return func(cpu *Cpu, op Operands) error {
		if cond(cpu.Register[op.Rs1], cpu.Register[op.Rs2]) {
			cpu.Register[REG_PC] += uint32(op.Imm)
		} else {
			cpu.Register[REG_PC] += 4
		}
		return nil
	}
}

func execJal(cpu *Cpu, op Operands) error {
	pc := cpu.Register[REG_PC]
	cpu.Register[op.Rd] = pc + 4
	cpu.Register[REG_PC] = pc + uint32(op.Imm)
	return nil
}

// execJalr computes the target before writing rd, so rd may equal rs1.
func execJalr(cpu *Cpu, op Operands) error {
	target := cpu.Register[op.Rs1] + uint32(op.Imm)
	cpu.Register[op.Rd] = cpu.Register[REG_PC] + 4
	cpu.Register[REG_PC] = target
	return nil
}

func execLui(cpu *Cpu, op Operands) error {
	cpu.Register[op.Rd] = uint32(op.Imm) << 12
	return nil
}

func execAuipc(cpu *Cpu, op Operands) error {
	cpu.Register[op.Rd] = cpu.Register[REG_PC] + (uint32(op.Imm) << 12)
	return nil
}
