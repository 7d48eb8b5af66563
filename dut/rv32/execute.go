package rv32

const (
	opcodeLoad   = 0x03
	opcodeMisc   = 0x0F
	opcodeOpImm  = 0x13
	opcodeAUIPC  = 0x17
	opcodeStore  = 0x23
	opcodeOp     = 0x33
	opcodeLUI    = 0x37
	opcodeBranch = 0x63
	opcodeJALR   = 0x67
	opcodeJAL    = 0x6F
	opcodeSystem = 0x73
)

// Counter CSRs readable with CSRRS.
const (
	csrCycle   = 0xC00
	csrInstret = 0xC02
)

func immI(ir uint32) uint32 {
	return uint32(int32(ir) >> 20)
}

func immS(ir uint32) uint32 {
	return uint32(int32(ir)>>25)<<5 | (ir>>7)&0x1F
}

func immB(ir uint32) uint32 {
	return uint32(int32(ir)>>31)<<12 |
		(ir>>7&1)<<11 |
		(ir>>25&0x3F)<<5 |
		(ir>>8&0xF)<<1
}

func immU(ir uint32) uint32 {
	return ir & 0xFFFFF000
}

func immJ(ir uint32) uint32 {
	return uint32(int32(ir)>>31)<<20 |
		(ir>>12&0xFF)<<12 |
		(ir>>20&1)<<11 |
		(ir>>21&0x3FF)<<1
}

func (c *Core) execute() {
	ir := c.ir
	rd := ir >> 7 & 0x1F
	rs1 := c.regs[ir>>15&0x1F]
	rs2 := c.regs[ir>>20&0x1F]
	funct3 := ir >> 12 & 0x7
	funct7 := ir >> 25

	switch ir & 0x7F {
	case opcodeLUI:
		c.writeReg(rd, immU(ir))
		c.retire(c.pc + 4)
	case opcodeAUIPC:
		c.writeReg(rd, c.pc+immU(ir))
		c.retire(c.pc + 4)
	case opcodeJAL:
		c.writeReg(rd, c.pc+4)
		c.retire(c.pc + immJ(ir))
	case opcodeJALR:
		target := (rs1 + immI(ir)) &^ 1
		c.writeReg(rd, c.pc+4)
		c.retire(target)
	case opcodeBranch:
		c.branch(funct3, rs1, rs2, immB(ir))
	case opcodeOpImm:
		c.aluImm(rd, funct3, funct7, rs1, immI(ir))
	case opcodeOp:
		c.alu(rd, funct3, funct7, rs1, rs2)
	case opcodeLoad:
		c.startLoad(funct3, rs1+immI(ir))
	case opcodeStore:
		c.startStore(funct3, rs1+immS(ir), rs2)
	case opcodeMisc:
		c.retire(c.pc + 4)
	case opcodeSystem:
		c.system(rd, funct3, ir>>20)
	default:
		c.halt()
	}
}

func (c *Core) branch(funct3, a, b, offset uint32) {
	var taken bool

	switch funct3 {
	case 0:
		taken = a == b
	case 1:
		taken = a != b
	case 4:
		taken = int32(a) < int32(b)
	case 5:
		taken = int32(a) >= int32(b)
	case 6:
		taken = a < b
	case 7:
		taken = a >= b
	default:
		c.halt()
		return
	}

	if taken {
		c.retire(c.pc + offset)
		return
	}

	c.retire(c.pc + 4)
}

func (c *Core) aluImm(rd, funct3, funct7, a, imm uint32) {
	var v uint32

	switch funct3 {
	case 0:
		v = a + imm
	case 1:
		v = a << (imm & 0x1F)
	case 2:
		v = boolToWord(int32(a) < int32(imm))
	case 3:
		v = boolToWord(a < imm)
	case 4:
		v = a ^ imm
	case 5:
		if funct7&0x20 != 0 {
			v = uint32(int32(a) >> (imm & 0x1F))
		} else {
			v = a >> (imm & 0x1F)
		}
	case 6:
		v = a | imm
	case 7:
		v = a & imm
	}

	c.writeReg(rd, v)
	c.retire(c.pc + 4)
}

func (c *Core) alu(rd, funct3, funct7, a, b uint32) {
	var v uint32

	switch funct3 {
	case 0:
		if funct7&0x20 != 0 {
			v = a - b
		} else {
			v = a + b
		}
	case 1:
		v = a << (b & 0x1F)
	case 2:
		v = boolToWord(int32(a) < int32(b))
	case 3:
		v = boolToWord(a < b)
	case 4:
		v = a ^ b
	case 5:
		if funct7&0x20 != 0 {
			v = uint32(int32(a) >> (b & 0x1F))
		} else {
			v = a >> (b & 0x1F)
		}
	case 6:
		v = a | b
	case 7:
		v = a & b
	}

	c.writeReg(rd, v)
	c.retire(c.pc + 4)
}

func (c *Core) system(rd, funct3, csr uint32) {
	if funct3 == 0 {
		// ECALL and EBREAK
		c.halt()
		return
	}

	var v uint32

	switch csr {
	case csrCycle:
		v = uint32(c.cycles)
	case csrInstret:
		v = uint32(c.retired)
	}

	c.writeReg(rd, v)
	c.retire(c.pc + 4)
}

// Loads and stores move whole words. Sub-word loads extract the low bytes of
// the word read at the effective address; sub-word stores read that word,
// merge the new bytes and write it back.
func (c *Core) startLoad(funct3, addr uint32) {
	switch funct3 {
	case 0, 1, 2, 4, 5:
	default:
		c.halt()
		return
	}

	c.op = opLoad
	c.opAddr = addr
	c.request(false, addr, 0)
	c.state = stateMemWait
}

func (c *Core) startStore(funct3, addr, v uint32) {
	c.opAddr = addr

	switch funct3 {
	case 2:
		c.op = opStore
		c.request(true, addr, v)
	case 0, 1:
		c.op = opMergeRead
		c.opData = v
		c.request(false, addr, 0)
	default:
		c.halt()
		return
	}

	c.state = stateMemWait
}

func (c *Core) completeMemOp() {
	ir := c.ir
	rd := ir >> 7 & 0x1F
	funct3 := ir >> 12 & 0x7

	switch c.op {
	case opLoad:
		c.writeReg(rd, extend(funct3, c.opData))
		c.op = opNone
		c.retire(c.pc + 4)
	case opMergeRead:
		mask := uint32(0xFF)
		if funct3 == 1 {
			mask = 0xFFFF
		}

		v := c.regs[ir>>20&0x1F]
		merged := c.opData&^mask | v&mask
		c.op = opStore
		c.request(true, c.opAddr, merged)
		c.state = stateMemWait
	case opStore:
		c.op = opNone
		c.retire(c.pc + 4)
	default:
		c.halt()
	}
}

func extend(funct3, word uint32) uint32 {
	switch funct3 {
	case 0:
		return uint32(int32(int8(word)))
	case 1:
		return uint32(int32(int16(word)))
	case 4:
		return word & 0xFF
	case 5:
		return word & 0xFFFF
	default:
		return word
	}
}

func boolToWord(b bool) uint32 {
	if b {
		return 1
	}

	return 0
}
