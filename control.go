package ez80

// call transfers control to address under the given mode. When mixed
// is true it uses the eZ80 mixed-mode call layout (spec §4.6): the
// upper PC byte is pushed only when the caller is in ADL mode; the low
// 16 bits go through pushByte's stack (SPL when L is set, SPS
// otherwise) when IL is set or L is set outside ADL, and to SPS
// otherwise; a trailing mode byte (MADL<<1 | ADL) always follows so
// RET can restore it. When mixed is false (SUFFIX-less, same-mode
// calls) it's an ordinary pushWord(PC).
func (c *CPU) call(address uint32, mixed bool) {
	if mixed {
		if c.ADL {
			c.pushByte(byte(c.PC >> 16))
		}
		if c.IL || (c.Lmode && !c.ADL) {
			c.pushByte(byte(c.PC >> 8))
			c.pushByte(byte(c.PC))
		} else {
			c.pushShortWord(uint16(c.PC))
		}
		c.pushByte(b2u8(c.MADL)<<1 | b2u8(c.ADL))
	} else {
		c.pushWord(c.PC)
	}
	c.tick(3)
	c.prefetchAt(address, c.IL)
}

// pushShortWord pushes a 16-bit value through the short stack pointer
// (SPS) regardless of Lmode, used by the mixed-mode call layout when
// the return address must land on the short stack even though the
// call itself executes under ADL.
func (c *CPU) pushShortWord(v uint16) {
	c.SPS--
	c.writeByte(uint32(c.SPS), byte(v>>8))
	c.SPS--
	c.writeByte(uint32(c.SPS), byte(v))
}

func (c *CPU) popShortWord() uint16 {
	lo := c.readByte(uint32(c.SPS))
	c.SPS++
	hi := c.readByte(uint32(c.SPS))
	c.SPS++
	return uint16(lo) | uint16(hi)<<8
}

// ret implements RET/RETN/RETI's mixed-mode-aware return: when SUFFIX
// is set the return address and target mode were pushed by a mixed
// call and must be unwound the same way; otherwise it's an ordinary
// popWord.
func (c *CPU) ret() {
	c.tick(1)
	mode := c.ADL
	var addr uint32
	if c.SUFFIX {
		modeByte := c.popByte()
		mode = modeByte&1 != 0
		if c.ADL {
			lo := uint32(c.popByte())
			hi := uint32(c.popByte())
			addr = lo | hi<<8
		} else {
			addr = uint32(c.popShortWord())
		}
		if mode {
			addr |= c.maskMode(uint32(c.popByte())<<16)
		}
	} else {
		addr = c.popWord()
	}
	c.prefetchAt(addr, mode)
}

// jp is an unconditional jump to address under the current L, used by
// JP nn, by JP cc,nn's taken path, and by JP (HL); DJNZ and JR go
// through jr instead. The current L propagates forward into ADL, the mechanism a
// ".LIL; JP nnnnnn" idiom uses to switch permanently into ADL mode.
func (c *CPU) jp(address uint32) {
	c.prefetchAt(address, c.Lmode)
}

// jr performs a PC-relative jump by the signed displacement already
// fetched, relative to the instruction following the displacement
// byte (i.e. the already-advanced PC).
func (c *CPU) jr(offset int8) {
	c.tick(5)
	c.prefetchAt(uint32(int32(c.PC)+int32(offset)), c.ADL)
}

// rst calls the fixed vector addr, SUFFIX selecting whether the
// mixed-mode call layout applies.
func (c *CPU) rst(addr byte) {
	c.call(uint32(addr), c.SUFFIX)
}
