package ez80

// execED handles the ED-prefixed opcode space: the eZ80 extensions
// (IN0/OUT0/LEA/TST/TSTIO/MLT/STMIX/RSMIX/LD MB,A &c), the classic
// Z80 ED block (NEG/RETN/RETI/IM/LD I,A/LD A,I/LD R,A/LD A,R/RRD/RLD),
// the block-instruction matrix (bli), and a handful of eZ80-only
// literal opcodes (LD I,HL / LD HL,I / INIRX/OTIRX/INDRX/OTDRX /
// flash-sector erase) that live outside the y/z matrix entirely.
func (c *CPU) execED() {
	opcode := c.fetchByte()
	c.incrementR()
	x2, y2, z2, p2, q2 := decomposeOpcode(opcode)
	switch x2 {
	case 0:
		c.execED0(opcode, y2, z2, p2, q2)
	case 1:
		c.execED1(y2, z2, p2, q2)
	case 2:
		if !c.bli(y2, z2) {
			c.trap()
		}
	case 3:
		c.execED3(opcode)
	}
}

func (c *CPU) execED0(opcode byte, y, z, p, q byte) {
	switch z {
	case 0: // IN0 r[y],(n)
		if y == 6 {
			c.trap()
			return
		}
		n := c.fetchByte()
		v := c.in(uint16(n))
		c.writeReg(y, v)
		c.F = (c.F & FlagC) | flagSign8(v) | flagZero8(v) | flagUndef(v) | flagParity(v)
		c.tick(3)
	case 1: // OUT0 (n),r[y]
		if y == 6 {
			// LD IY,(HL) is not part of this slice of the ED table;
			// treat the gap as a trap.
			c.trap()
			return
		}
		n := c.fetchByte()
		c.out(uint16(n), c.readReg(y))
		c.tick(3)
	case 2, 3: // LEA rp3[p],IX/IY
		if q == 1 {
			c.trap()
			return
		}
		c.PREFIX = z
		addr := c.indexAddress()
		c.writeRP3(p, addr)
		c.tick(3)
	case 4: // TST A,r[y]
		v := c.A & c.readReg(y)
		c.F = flagSign8(v) | flagZero8(v) | flagUndef(v) | flagParity(v) | FlagH
		c.tick(3)
	case 6:
		if y == 7 { // LD (HL),IY
			c.writeWord(c.HL(), c.IY)
			c.tick(5)
			return
		}
		c.trap()
	case 7:
		c.PREFIX = PrefixIX
		if q == 1 {
			c.writeWord(c.HL(), c.readRP3(p))
		} else {
			c.writeRP3(p, c.readWord(c.HL()))
		}
		c.tick(5)
	default:
		c.trap()
	}
}

func (c *CPU) execED1(y, z, p, q byte) {
	switch z {
	case 0: // IN r[y],(BC)
		if y == 6 {
			c.trap()
			return
		}
		v := c.in(c.BCS())
		c.writeReg(y, v)
		c.F = (c.F & FlagC) | flagSign8(v) | flagZero8(v) | flagUndef(v) | flagParity(v)
		c.tick(3)
	case 1: // OUT (BC),r[y]
		if y == 6 {
			c.trap()
			return
		}
		c.out(c.BCS(), c.readReg(y))
		c.tick(3)
	case 2:
		old := c.maskMode(c.readIndex())
		rhs := c.readRP(p)
		wide := c.Lmode
		if q == 0 { // SBC HL,rp
			diff := int64(old) - int64(rhs) - int64(b2u8(c.Flag(FlagC)))
			res := uint32(diff) & maskFor(wide)
			c.F = flagSignW(res, wide) | flagZeroW(res, wide) | flagUndefW(res) |
				flagOverflowSubW(old, rhs, res, wide) | FlagN |
				boolFlag(diff < 0, FlagC) | flagHalfSubW(old, rhs, b2u8(c.Flag(FlagC)))
			c.writeIndex(res)
		} else { // ADC HL,rp
			sum := uint64(old) + uint64(rhs) + uint64(b2u8(c.Flag(FlagC)))
			res := uint32(sum) & maskFor(wide)
			c.F = flagSignW(res, wide) | flagZeroW(res, wide) | flagUndefW(res) |
				flagOverflowAddW(old, rhs, res, wide) |
				flagCarryAddW(uint32(sum), wide) | flagHalfAddW(old, rhs, b2u8(c.Flag(FlagC)))
			c.writeIndex(res)
		}
		c.tick(7)
	case 3:
		nn := c.fetchWord()
		if q == 0 { // LD (nn),rp
			c.writeWord(nn, c.readRP(p))
		} else { // LD rp,(nn)
			c.writeRP(p, c.readWord(nn))
		}
		c.tick(6)
	case 4:
		if q == 1 { // MLT rp[p]
			v := c.readRP(p)
			hi, lo := byte(v>>8), byte(v)
			c.writeRP(p, uint32(hi)*uint32(lo))
			c.tick(4)
			return
		}
		switch p {
		case 0: // NEG
			old := c.A
			diff := int16(0) - int16(old)
			res := byte(diff)
			c.F = flagSign8(res) | flagZero8(res) | flagUndef(res) |
				flagOverflowSub8(0, old, res) | FlagN | flagCarrySub8(diff) | flagHalfSub8(0, old, 0)
			c.A = res
			c.tick(2)
		case 1: // LEA IX,IY+d
			c.PREFIX = PrefixIY
			c.IX = c.indexAddress() & 0xFFFFFF
			c.tick(3)
		case 2: // TST A,n
			n := c.fetchByte()
			v := c.A & n
			c.F = flagSign8(v) | flagZero8(v) | flagUndef(v) | flagParity(v) | FlagH
			c.tick(3)
		case 3: // TSTIO n
			n := c.fetchByte()
			v := c.in(c.BCS()) & n
			c.F = flagSign8(v) | flagZero8(v) | flagUndef(v) | flagParity(v) | FlagH
			c.tick(3)
		}
	case 5:
		switch y {
		case 0, 1: // RETN / RETI
			c.IEF1 = c.IEF2
			c.ret()
		case 2: // LEA IY,IX+d
			c.PREFIX = PrefixIX
			c.IY = c.indexAddress() & 0xFFFFFF
			c.tick(3)
		case 4: // PEA IX+d
			c.PREFIX = PrefixIX
			c.pushWord(c.indexAddress())
			c.tick(5)
		case 5: // LD MB,A
			if c.ADL {
				c.MBASE = c.A
			}
			c.tick(2)
		case 7: // STMIX
			c.MADL = true
			c.tick(2)
		default:
			c.trap()
		}
	case 6:
		switch y {
		case 0, 2, 3:
			c.IM = y
			c.tick(2)
		case 4: // PEA IY+d
			c.PREFIX = PrefixIY
			c.pushWord(c.indexAddress())
			c.tick(5)
		case 5: // LD A,MB
			c.A = c.MBASE
			c.tick(2)
		case 6: // SLP
			c.tick(1)
		case 7: // RSMIX
			c.MADL = false
			c.tick(2)
		default:
			c.trap()
		}
	case 7:
		switch y {
		case 0: // LD I,A
			c.SetI8(c.A)
			c.tick(2)
		case 1: // LD R,A
			c.R = c.A
			c.tick(2)
		case 2: // LD A,I
			c.A = c.I8()
			c.F = (c.F & FlagC) | flagSign8(c.A) | flagZero8(c.A) | flagUndef(c.A) |
				boolFlag(c.IEF2, FlagPV)
			c.tick(2)
		case 3: // LD A,R
			c.A = c.R
			c.F = (c.F & FlagC) | flagSign8(c.A) | flagZero8(c.A) | flagUndef(c.A) |
				boolFlag(c.IEF2, FlagPV)
			c.tick(2)
		case 4: // RRD
			c.rrd()
		case 5: // RLD
			c.rld()
		default:
			c.trap()
		}
	default:
		c.trap()
	}
}

func maskFor(wide bool) uint32 {
	if wide {
		return 0xFFFFFF
	}
	return 0xFFFF
}

func (c *CPU) rrd() {
	addr := c.HL()
	m := c.readByte(addr)
	newA := (c.A & 0xF0) | (m & 0x0F)
	newM := (c.A&0x0F)<<4 | (m >> 4)
	c.writeByte(addr, newM)
	c.A = newA
	c.F = (c.F & FlagC) | flagSign8(c.A) | flagZero8(c.A) | flagUndef(c.A) | flagParity(c.A)
	c.tick(10)
}

func (c *CPU) rld() {
	addr := c.HL()
	m := c.readByte(addr)
	newM := (m<<4 & 0xF0) | (c.A & 0x0F)
	newA := (c.A & 0xF0) | (m >> 4)
	c.writeByte(addr, newM)
	c.A = newA
	c.F = (c.F & FlagC) | flagSign8(c.A) | flagZero8(c.A) | flagUndef(c.A) | flagParity(c.A)
	c.tick(10)
}

// execED3 handles the literal-opcode corner of the ED table: eZ80-only
// encodings that don't fit the y/z matrix (LD I,HL / LD HL,I / the
// *RX block movers / flash-sector erase).
func (c *CPU) execED3(opcode byte) {
	switch opcode {
	case 0xC2:
		c.inirx()
	case 0xC3:
		c.otirx()
	case 0xC7: // LD I,HL
		c.I = uint16(c.HL())
		c.tick(2)
	case 0xD7: // LD HL,I
		c.SetHL(uint32(c.I) | uint32(c.MBASE)<<16)
		c.tick(2)
	case 0xCA:
		c.indrx()
	case 0xCB:
		c.otdrx()
	case 0xEE: // flash-sector erase
		if fe, ok := c.bus.(FlashEraser); ok {
			fe.EraseFlashSector(c.HL() &^ 0x3FFF)
		}
		c.tick(2)
	default:
		c.trap()
	}
}
