package rv32

import (
	"encoding/binary"
	"io"

	"github.com/sarchlab/cosim/image"
)

// Reg is a general purpose register number.
type Reg uint32

// ABI register names.
const (
	Zero Reg = iota
	RA
	SP
	GP
	TP
	T0
	T1
	T2
	S0
	S1
	A0
	A1
	A2
	A3
	A4
	A5
	A6
	A7
)

func rType(funct7, rs2, rs1, funct3, rd, opcode uint32) uint32 {
	return funct7<<25 | rs2<<20 | rs1<<15 | funct3<<12 | rd<<7 | opcode
}

func iType(imm int32, rs1, funct3, rd, opcode uint32) uint32 {
	return uint32(imm)&0xFFF<<20 | rs1<<15 | funct3<<12 | rd<<7 | opcode
}

func sType(imm int32, rs2, rs1, funct3 uint32) uint32 {
	u := uint32(imm)
	return u>>5&0x7F<<25 | rs2<<20 | rs1<<15 | funct3<<12 | u&0x1F<<7 |
		opcodeStore
}

func bType(offset int32, rs2, rs1, funct3 uint32) uint32 {
	u := uint32(offset)
	return u>>12&1<<31 | u>>5&0x3F<<25 | rs2<<20 | rs1<<15 | funct3<<12 |
		u>>1&0xF<<8 | u>>11&1<<7 | opcodeBranch
}

// LUI loads the upper 20 bits of imm into rd.
func LUI(rd Reg, imm uint32) uint32 {
	return imm&0xFFFFF000 | uint32(rd)<<7 | opcodeLUI
}

// AUIPC adds the upper 20 bits of imm to the pc.
func AUIPC(rd Reg, imm uint32) uint32 {
	return imm&0xFFFFF000 | uint32(rd)<<7 | opcodeAUIPC
}

// JAL jumps by offset and links into rd.
func JAL(rd Reg, offset int32) uint32 {
	u := uint32(offset)
	return u>>20&1<<31 | u>>1&0x3FF<<21 | u>>11&1<<20 | u>>12&0xFF<<12 |
		uint32(rd)<<7 | opcodeJAL
}

// JALR jumps to rs1+imm and links into rd.
func JALR(rd, rs1 Reg, imm int32) uint32 {
	return iType(imm, uint32(rs1), 0, uint32(rd), opcodeJALR)
}

// Branches compare rs1 with rs2 and jump by offset when taken.
func BEQ(rs1, rs2 Reg, offset int32) uint32 {
	return bType(offset, uint32(rs2), uint32(rs1), 0)
}

func BNE(rs1, rs2 Reg, offset int32) uint32 {
	return bType(offset, uint32(rs2), uint32(rs1), 1)
}

func BLT(rs1, rs2 Reg, offset int32) uint32 {
	return bType(offset, uint32(rs2), uint32(rs1), 4)
}

func BGE(rs1, rs2 Reg, offset int32) uint32 {
	return bType(offset, uint32(rs2), uint32(rs1), 5)
}

func BLTU(rs1, rs2 Reg, offset int32) uint32 {
	return bType(offset, uint32(rs2), uint32(rs1), 6)
}

func BGEU(rs1, rs2 Reg, offset int32) uint32 {
	return bType(offset, uint32(rs2), uint32(rs1), 7)
}

// Loads
func LB(rd, rs1 Reg, imm int32) uint32 {
	return iType(imm, uint32(rs1), 0, uint32(rd), opcodeLoad)
}

func LH(rd, rs1 Reg, imm int32) uint32 {
	return iType(imm, uint32(rs1), 1, uint32(rd), opcodeLoad)
}

func LW(rd, rs1 Reg, imm int32) uint32 {
	return iType(imm, uint32(rs1), 2, uint32(rd), opcodeLoad)
}

func LBU(rd, rs1 Reg, imm int32) uint32 {
	return iType(imm, uint32(rs1), 4, uint32(rd), opcodeLoad)
}

func LHU(rd, rs1 Reg, imm int32) uint32 {
	return iType(imm, uint32(rs1), 5, uint32(rd), opcodeLoad)
}

// Stores
func SB(rs2, rs1 Reg, imm int32) uint32 {
	return sType(imm, uint32(rs2), uint32(rs1), 0)
}

func SH(rs2, rs1 Reg, imm int32) uint32 {
	return sType(imm, uint32(rs2), uint32(rs1), 1)
}

func SW(rs2, rs1 Reg, imm int32) uint32 {
	return sType(imm, uint32(rs2), uint32(rs1), 2)
}

// Immediate arithmetic
func ADDI(rd, rs1 Reg, imm int32) uint32 {
	return iType(imm, uint32(rs1), 0, uint32(rd), opcodeOpImm)
}

func SLTI(rd, rs1 Reg, imm int32) uint32 {
	return iType(imm, uint32(rs1), 2, uint32(rd), opcodeOpImm)
}

func SLTIU(rd, rs1 Reg, imm int32) uint32 {
	return iType(imm, uint32(rs1), 3, uint32(rd), opcodeOpImm)
}

func XORI(rd, rs1 Reg, imm int32) uint32 {
	return iType(imm, uint32(rs1), 4, uint32(rd), opcodeOpImm)
}

func ORI(rd, rs1 Reg, imm int32) uint32 {
	return iType(imm, uint32(rs1), 6, uint32(rd), opcodeOpImm)
}

func ANDI(rd, rs1 Reg, imm int32) uint32 {
	return iType(imm, uint32(rs1), 7, uint32(rd), opcodeOpImm)
}

func SLLI(rd, rs1 Reg, shamt uint32) uint32 {
	return iType(int32(shamt&0x1F), uint32(rs1), 1, uint32(rd), opcodeOpImm)
}

func SRLI(rd, rs1 Reg, shamt uint32) uint32 {
	return iType(int32(shamt&0x1F), uint32(rs1), 5, uint32(rd), opcodeOpImm)
}

func SRAI(rd, rs1 Reg, shamt uint32) uint32 {
	return iType(int32(shamt&0x1F|0x400), uint32(rs1), 5, uint32(rd),
		opcodeOpImm)
}

// Register arithmetic
func ADD(rd, rs1, rs2 Reg) uint32 {
	return rType(0, uint32(rs2), uint32(rs1), 0, uint32(rd), opcodeOp)
}

func SUB(rd, rs1, rs2 Reg) uint32 {
	return rType(0x20, uint32(rs2), uint32(rs1), 0, uint32(rd), opcodeOp)
}

func SLL(rd, rs1, rs2 Reg) uint32 {
	return rType(0, uint32(rs2), uint32(rs1), 1, uint32(rd), opcodeOp)
}

func SLT(rd, rs1, rs2 Reg) uint32 {
	return rType(0, uint32(rs2), uint32(rs1), 2, uint32(rd), opcodeOp)
}

func SLTU(rd, rs1, rs2 Reg) uint32 {
	return rType(0, uint32(rs2), uint32(rs1), 3, uint32(rd), opcodeOp)
}

func XOR(rd, rs1, rs2 Reg) uint32 {
	return rType(0, uint32(rs2), uint32(rs1), 4, uint32(rd), opcodeOp)
}

func SRL(rd, rs1, rs2 Reg) uint32 {
	return rType(0, uint32(rs2), uint32(rs1), 5, uint32(rd), opcodeOp)
}

func SRA(rd, rs1, rs2 Reg) uint32 {
	return rType(0x20, uint32(rs2), uint32(rs1), 5, uint32(rd), opcodeOp)
}

func OR(rd, rs1, rs2 Reg) uint32 {
	return rType(0, uint32(rs2), uint32(rs1), 6, uint32(rd), opcodeOp)
}

func AND(rd, rs1, rs2 Reg) uint32 {
	return rType(0, uint32(rs2), uint32(rs1), 7, uint32(rd), opcodeOp)
}

// RDCYCLE reads the cycle counter.
func RDCYCLE(rd Reg) uint32 {
	return iType(csrCycle-0x1000, 0, 2, uint32(rd), opcodeSystem)
}

// RDINSTRET reads the retired instruction counter.
func RDINSTRET(rd Reg) uint32 {
	return iType(csrInstret-0x1000, 0, 2, uint32(rd), opcodeSystem)
}

// FENCE orders memory accesses. The core treats it as a no-op.
func FENCE() uint32 {
	return 0x0FF0000F
}

// ECALL halts the core.
func ECALL() uint32 {
	return opcodeSystem
}

// EBREAK halts the core.
func EBREAK() uint32 {
	return 1<<20 | opcodeSystem
}

// LI loads a 32-bit constant with LUI and ADDI.
func LI(rd Reg, v uint32) []uint32 {
	lo := int32(v<<20) >> 20
	hi := v - uint32(lo)

	if hi == 0 {
		return []uint32{ADDI(rd, Zero, lo)}
	}

	if lo == 0 {
		return []uint32{LUI(rd, hi)}
	}

	return []uint32{LUI(rd, hi), ADDI(rd, rd, lo)}
}

// Program concatenates instructions and instruction sequences.
func Program(parts ...any) []uint32 {
	var out []uint32

	for _, p := range parts {
		switch v := p.(type) {
		case uint32:
			out = append(out, v)
		case []uint32:
			out = append(out, v...)
		default:
			panic("program parts must be instructions")
		}
	}

	return out
}

// Bytes encodes instructions in little-endian order.
func Bytes(program []uint32) []byte {
	buf := make([]byte, 4*len(program))
	for i, ins := range program {
		binary.LittleEndian.PutUint32(buf[4*i:], ins)
	}

	return buf
}

// WriteImage writes the program as a hex byte image.
func WriteImage(w io.Writer, program []uint32) error {
	return image.Write(w, Bytes(program))
}
