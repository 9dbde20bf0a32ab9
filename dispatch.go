package ez80

// execOpcode decodes and runs one opcode byte already consumed by
// fetchByte, organized as the x/y/z/p/q nested switch spec §9 calls
// for rather than a 256-entry function table. It returns true when the
// opcode set PREFIX or SUFFIX and the caller should skip the
// end-of-instruction normalize step so the pending prefix/suffix
// survives into the next fetch.
func (c *CPU) execOpcode(opcode byte) bool {
	x, y, z, p, q := decomposeOpcode(opcode)
	switch x {
	case 0:
		return c.execX0(y, z, p, q)
	case 1:
		return c.execX1(y, z)
	case 2:
		c.alu(y, c.readReg(z))
		c.tick(4)
		return false
	case 3:
		return c.execX3(y, z, p, q)
	}
	return false
}

func (c *CPU) execX0(y, z, p, q byte) bool {
	switch z {
	case 0:
		switch {
		case y == 0: // NOP
			c.tick(1)
		case y == 1: // EX AF,AF'
			c.ExAF()
			c.tick(1)
		case y == 2: // DJNZ d
			c.B--
			offset := c.fetchOffset()
			if c.B != 0 {
				c.jr(offset)
			} else {
				c.tick(3)
			}
		case y == 3: // JR d
			c.jr(c.fetchOffset())
		default: // JR cc,d
			offset := c.fetchOffset()
			if c.readCC(y - 4) {
				c.jr(offset)
			} else {
				c.tick(3)
			}
		}
	case 1:
		if q == 0 {
			nn := c.fetchWord()
			c.writeRP(p, nn)
		} else {
			old := c.maskMode(c.readIndex())
			rhs := c.readRP(p)
			sum := old + rhs
			wide := c.Lmode
			c.F = (c.F & (FlagS | FlagZ | FlagPV)) | flagUndefW(sum) |
				flagHalfAddW(old, rhs, 0) | flagCarryAddW(sum, wide)
			c.writeIndex(c.maskMode(sum))
			c.tick(7)
		}
	case 2:
		switch {
		case q == 0 && p == 0: // LD (BC),A
			c.writeByte(c.BC(), c.A)
		case q == 0 && p == 1: // LD (DE),A
			c.writeByte(c.DE(), c.A)
		case q == 0 && p == 2: // LD (nn),HL
			nn := c.fetchWord()
			c.writeWord(nn, c.readIndex())
		case q == 0 && p == 3: // LD (nn),A
			nn := c.fetchWord()
			c.writeByte(nn, c.A)
		case q == 1 && p == 0: // LD A,(BC)
			c.A = c.readByte(c.BC())
		case q == 1 && p == 1: // LD A,(DE)
			c.A = c.readByte(c.DE())
		case q == 1 && p == 2: // LD HL,(nn)
			nn := c.fetchWord()
			c.writeIndex(c.readWord(nn))
		case q == 1 && p == 3: // LD A,(nn)
			nn := c.fetchWord()
			c.A = c.readByte(nn)
		}
		c.tick(4)
	case 3:
		if q == 0 {
			c.writeRP(p, c.maskMode(c.readRP(p)+1))
		} else {
			c.writeRP(p, c.maskMode(c.readRP(p)-1))
		}
		c.tick(2)
	case 4:
		addr := c.preAddr(y)
		old := c.readRegPrefetched(y, addr)
		res := old + 1
		c.writeRegPrefetched(y, addr, res)
		c.F = (c.F & FlagC) | flagSign8(res) | flagZero8(res) | flagUndef(res) |
			boolFlag(old == 0x7F, FlagPV) | flagHalfAdd8(old, 1, 0)
		c.tick(1)
	case 5:
		addr := c.preAddr(y)
		old := c.readRegPrefetched(y, addr)
		res := old - 1
		c.writeRegPrefetched(y, addr, res)
		c.F = (c.F & FlagC) | flagSign8(res) | flagZero8(res) | flagUndef(res) |
			boolFlag(old == 0x80, FlagPV) | FlagN | flagHalfSub8(old, 1, 0)
		c.tick(1)
	case 6:
		addr := c.preAddr(y)
		n := c.fetchByte()
		c.writeRegPrefetched(y, addr, n)
		c.tick(2)
	case 7:
		c.rotAcc(y)
		c.tick(1)
	}
	return false
}

// preAddr computes the indirect address for register code 6 ahead of
// time, for decodes (INC/DEC r, LD r,n) that must not fetch the
// displacement byte twice.
func (c *CPU) preAddr(reg byte) uint32 {
	if reg == 6 {
		return c.indexAddress()
	}
	return 0
}

func (c *CPU) execX1(y, z byte) bool {
	if z == y {
		switch z {
		case 0:
			c.SUFFIX, c.Lmode, c.IL = true, false, false // .SIS
			return true
		case 1:
			c.SUFFIX, c.Lmode, c.IL = true, true, false // .LIS
			return true
		case 2:
			c.SUFFIX, c.Lmode, c.IL = true, false, true // .SIL
			return true
		case 3:
			c.SUFFIX, c.Lmode, c.IL = true, true, true // .LIL
			return true
		case 6:
			c.Halted = true
			c.tick(1)
			return false
		default: // LD H,H / LD L,L / LD A,A — documented no-ops
			c.tick(1)
			return false
		}
	}
	c.readWriteReg(z, y)
	c.tick(1)
	return false
}

func (c *CPU) execX3(y, z, p, q byte) bool {
	switch z {
	case 0:
		taken := c.readCC(y)
		if taken {
			c.ret()
			c.tick(1)
		} else {
			c.tick(1)
		}
	case 1:
		if q == 0 {
			c.writeRP2(p, c.popWord())
			c.tick(3)
		} else {
			switch p {
			case 0:
				c.ret()
			case 1:
				c.Exx()
				c.tick(1)
			case 2:
				c.jp(c.readIndex())
			case 3:
				c.writeSP(c.maskMode(c.readIndex()))
				c.tick(1)
			}
		}
	case 2:
		addr := c.fetchWordNoPrefetch()
		if c.readCC(y) {
			c.jp(addr)
		} else {
			c.tick(3)
		}
	case 3:
		switch y {
		case 0: // JP nn
			addr := c.fetchWordNoPrefetch()
			c.jp(addr)
		case 1:
			return c.execCB()
		case 2: // OUT (n),A
			n := c.fetchByte()
			c.out(uint16(c.A)<<8|uint16(n), c.A)
			c.tick(3)
		case 3: // IN A,(n)
			n := c.fetchByte()
			c.A = c.in(uint16(c.A)<<8 | uint16(n))
			c.tick(3)
		case 4: // EX (SP),HL
			addr := c.readSP()
			v := c.readWord(addr)
			old := c.readIndex()
			c.writeWord(addr, old)
			c.writeIndex(v)
			c.tick(7)
		case 5: // EX DE,HL
			de := c.DE()
			c.SetDE(c.HL())
			c.SetHL(de)
			c.tick(1)
		case 6: // DI
			c.IEF1, c.IEF2 = false, false
			c.tick(1)
		case 7: // EI
			c.tick(1)
			c.IEFWait = true
			c.CycleCountDelta += int64(c.instrCycles)
			c.cycleOffset = c.CycleCountDelta + 1
			c.CycleCountDelta = -1
			c.eiJustFired = true
		}
	case 4:
		addr := c.fetchWordNoPrefetch()
		if c.readCC(y) {
			c.call(addr, c.SUFFIX)
		} else {
			c.tick(3)
		}
	case 5:
		if q == 0 {
			c.pushWord(c.readRP2(p))
			c.tick(4)
		} else {
			switch p {
			case 0: // CALL nn
				addr := c.fetchWordNoPrefetch()
				c.call(addr, c.SUFFIX)
			case 1: // DD prefix
				c.PREFIX = PrefixIX
				c.tick(1)
				return true
			case 2: // ED prefix
				c.execED()
			case 3: // FD prefix
				c.PREFIX = PrefixIY
				c.tick(1)
				return true
			}
		}
	case 6:
		n := c.fetchByte()
		c.alu(y, n)
		c.tick(3)
	case 7:
		c.rst(y << 3)
	}
	return false
}

// execCB handles the CB-prefixed rotate/BIT/RES/SET group, including
// the DD CB d/FD CB d indexed forms (where the displacement is fetched
// via indexAddress before the final opcode byte, matching memory
// layout "DD CB d op").
func (c *CPU) execCB() bool {
	addr := c.indexAddress()
	opcode := c.fetchByte()
	c.incrementR()
	x2, y2, z2, _, _ := decomposeOpcode(opcode)
	old := c.readRegPrefetched(z2, addr)
	switch x2 {
	case 0:
		if y2 == 6 {
			c.trap()
		} else {
			c.rot(y2, z2, addr, old)
			c.tick(2)
		}
	case 1:
		c.bit(y2, old)
		c.tick(2)
	case 2:
		c.writeRegPrefetched(z2, addr, res(y2, old))
		c.tick(2)
	case 3:
		c.writeRegPrefetched(z2, addr, set(y2, old))
		c.tick(2)
	}
	return false
}
