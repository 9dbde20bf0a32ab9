package ez80

// indexAddress computes the effective address for register code 6
// (the indirect (HL)/(IX+d)/(IY+d) operand): the active index register,
// plus a fetched signed displacement when a DD/FD prefix is active,
// masked to the current address width.
func (c *CPU) indexAddress() uint32 {
	v := c.readIndex()
	if c.PREFIX != PrefixNone {
		v += uint32(int32(c.fetchOffset()))
	}
	return c.maskMode(v)
}

// readReg/writeReg implement the r[i] operand table: 0=B 1=C 2=D 3=E
// 4=IXH/IYH/H 5=IXL/IYL/L 6=(index address, fetching a fresh
// displacement if needed) 7=A.
func (c *CPU) readReg(i byte) byte {
	switch i {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.readIndexHigh()
	case 5:
		return c.readIndexLow()
	case 6:
		return c.readByte(c.indexAddress())
	case 7:
		return c.A
	default:
		panic("ez80: register index out of range")
	}
}

func (c *CPU) writeReg(i byte, v byte) {
	switch i {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		c.writeIndexHigh(v)
	case 5:
		c.writeIndexLow(v)
	case 6:
		c.writeByte(c.indexAddress(), v)
	case 7:
		c.A = v
	default:
		panic("ez80: register index out of range")
	}
}

// readRegPrefetched/writeRegPrefetched behave like readReg/writeReg
// except register code 6 uses a previously computed address instead of
// fetching a fresh displacement, for decodes (INC/DEC r, LD r,n,
// CB-prefixed rotates/BIT/RES/SET) that already paid for the
// displacement byte once.
func (c *CPU) readRegPrefetched(i byte, addr uint32) byte {
	if i == 6 {
		return c.readByte(addr)
	}
	return c.readReg(i)
}

func (c *CPU) writeRegPrefetched(i byte, addr uint32, v byte) {
	if i == 6 {
		c.writeByte(addr, v)
		return
	}
	c.writeReg(i, v)
}

// readWriteReg implements LD r,r'. When the destination is the
// indirect form, the PREFIX does not apply to the source read; when
// the source is the indirect form, the PREFIX does not apply to the
// destination write. This is what makes "LD (HL),H" under a DD prefix
// store H (not IXH) to (IX+d), while "LD H,(HL)" under a DD prefix
// loads (IX+d) into H, not into some garbled half-substituted pair.
func (c *CPU) readWriteReg(read, write byte) {
	old := c.PREFIX
	if write == 6 {
		c.PREFIX = PrefixNone
	}
	v := c.readReg(read)
	c.PREFIX = old
	if read == 6 {
		c.PREFIX = PrefixNone
	}
	c.writeReg(write, v)
	c.PREFIX = old
}

// readRP/writeRP implement the rp[p] table used by 16-bit loads and
// ADD/ADC/SBC HL,rr: 0=BC 1=DE 2=active index 3=SP, masked to the
// current address width.
func (c *CPU) readRP(p byte) uint32 {
	switch p {
	case 0:
		return c.maskMode(c.BC())
	case 1:
		return c.maskMode(c.DE())
	case 2:
		return c.maskMode(c.readIndex())
	case 3:
		return c.maskMode(c.readSP())
	default:
		panic("ez80: rp index out of range")
	}
}

func (c *CPU) writeRP(p byte, v uint32) {
	switch p {
	case 0:
		c.SetBC(c.maskMode(v))
	case 1:
		c.SetDE(c.maskMode(v))
	case 2:
		c.writeIndex(c.maskMode(v))
	case 3:
		c.writeSP(c.maskMode(v))
	default:
		panic("ez80: rp index out of range")
	}
}

// readRP2/writeRP2 are rp[p] with p==3 meaning AF (used by PUSH/POP),
// which is never address-width masked since it never addresses memory.
func (c *CPU) readRP2(p byte) uint32 {
	if p == 3 {
		return uint32(c.AF())
	}
	return c.readRP(p)
}

func (c *CPU) writeRP2(p byte, v uint32) {
	if p == 3 {
		c.SetAF(uint16(v))
		return
	}
	c.writeRP(p, v)
}

// readRP3/writeRP3 are rp[p] with p==2 always meaning real HL (not the
// active index register), used by LEA and the ED-prefixed
// LD rp3,(HL) / LD (HL),rp3 forms.
func (c *CPU) readRP3(p byte) uint32 {
	switch p {
	case 0:
		return c.maskMode(c.BC())
	case 1:
		return c.maskMode(c.DE())
	case 2:
		return c.maskMode(c.HL())
	case 3:
		return c.maskMode(c.readIndex())
	default:
		panic("ez80: rp3 index out of range")
	}
}

func (c *CPU) writeRP3(p byte, v uint32) {
	switch p {
	case 0:
		c.SetBC(c.maskMode(v))
	case 1:
		c.SetDE(c.maskMode(v))
	case 2:
		c.SetHL(c.maskMode(v))
	case 3:
		c.writeIndex(c.maskMode(v))
	default:
		panic("ez80: rp3 index out of range")
	}
}

// readCC evaluates one of the eight condition codes used by
// JP/JR/CALL/RET cc.
func (c *CPU) readCC(i byte) bool {
	switch i {
	case 0:
		return !c.Flag(FlagZ)
	case 1:
		return c.Flag(FlagZ)
	case 2:
		return !c.Flag(FlagC)
	case 3:
		return c.Flag(FlagC)
	case 4:
		return !c.Flag(FlagPV)
	case 5:
		return c.Flag(FlagPV)
	case 6:
		return !c.Flag(FlagS)
	case 7:
		return c.Flag(FlagS)
	default:
		panic("ez80: condition index out of range")
	}
}

// decomposeOpcode splits an opcode byte into the x/y/z/p/q fields the
// dispatch nested switches are organized around.
func decomposeOpcode(opcode byte) (x, y, z, p, q byte) {
	x = opcode >> 6
	y = (opcode >> 3) & 7
	z = opcode & 7
	p = y >> 1
	q = y & 1
	return
}
