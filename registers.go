package ez80

// Typed register-pair views. BC/DE/HL carry an extra upper byte
// (BCU/DEU/HLU). BC()/DE()/HL() always return all 24 bits, and
// SetBC/SetDE/SetHL write all three bytes; callers mask to the current
// width with maskMode where it matters. BCS/SetBCS and HLS/SetHLS
// below view only the low 16 bits and leave the upper byte as it is.

func (c *CPU) AF() uint16 { return uint16(c.A)<<8 | uint16(c.F) }
func (c *CPU) SetAF(v uint16) {
	c.A = byte(v >> 8)
	c.F = byte(v)
}

func (c *CPU) BC() uint32 { return uint32(c.BCU)<<16 | uint32(c.B)<<8 | uint32(c.C) }
func (c *CPU) SetBC(v uint32) {
	c.BCU = byte(v >> 16)
	c.B = byte(v >> 8)
	c.C = byte(v)
}

// BCS is the 16-bit alias of BC with no upper-byte involvement,
// used by the block-instruction families that must decrement BC
// without masking its extension byte (spec's "mode-partial" update).
func (c *CPU) BCS() uint16 { return uint16(c.B)<<8 | uint16(c.C) }
func (c *CPU) SetBCS(v uint16) {
	c.B = byte(v >> 8)
	c.C = byte(v)
}

func (c *CPU) DE() uint32 { return uint32(c.DEU)<<16 | uint32(c.D)<<8 | uint32(c.E) }
func (c *CPU) SetDE(v uint32) {
	c.DEU = byte(v >> 16)
	c.D = byte(v >> 8)
	c.E = byte(v)
}

func (c *CPU) HL() uint32 { return uint32(c.HLU)<<16 | uint32(c.H)<<8 | uint32(c.L) }
func (c *CPU) SetHL(v uint32) {
	c.HLU = byte(v >> 16)
	c.H = byte(v >> 8)
	c.L = byte(v)
}

func (c *CPU) HLS() uint16 { return uint16(c.H)<<8 | uint16(c.L) }
func (c *CPU) SetHLS(v uint16) {
	c.H = byte(v >> 8)
	c.L = byte(v)
}

// IXHigh/IXLow and IYHigh/IYLow expose the classic undocumented
// half-register views used by some ED/DD/FD decodes.
func (c *CPU) IXHigh() byte { return byte(c.IX >> 8) }
func (c *CPU) IXLow() byte  { return byte(c.IX) }
func (c *CPU) IYHigh() byte { return byte(c.IY >> 8) }
func (c *CPU) IYLow() byte  { return byte(c.IY) }

func (c *CPU) SetIXHigh(v byte) { c.IX = c.IX&0xFF00FF | uint32(v)<<8 }
func (c *CPU) SetIXLow(v byte)  { c.IX = c.IX&0xFFFF00 | uint32(v) }
func (c *CPU) SetIYHigh(v byte) { c.IY = c.IY&0xFF00FF | uint32(v)<<8 }
func (c *CPU) SetIYLow(v byte)  { c.IY = c.IY&0xFFFF00 | uint32(v) }

func (c *CPU) AF2() uint16 { return uint16(c.A2)<<8 | uint16(c.F2) }
func (c *CPU) SetAF2(v uint16) {
	c.A2 = byte(v >> 8)
	c.F2 = byte(v)
}

func (c *CPU) BC2() uint16 { return uint16(c.B2)<<8 | uint16(c.C2) }
func (c *CPU) SetBC2(v uint16) {
	c.B2 = byte(v >> 8)
	c.C2 = byte(v)
}

func (c *CPU) DE2() uint16 { return uint16(c.D2)<<8 | uint16(c.E2) }
func (c *CPU) SetDE2(v uint16) {
	c.D2 = byte(v >> 8)
	c.E2 = byte(v)
}

func (c *CPU) HL2() uint16 { return uint16(c.H2)<<8 | uint16(c.L2) }
func (c *CPU) SetHL2(v uint16) {
	c.H2 = byte(v >> 8)
	c.L2 = byte(v)
}

// ExAF swaps AF with the shadow bank's AF'.
func (c *CPU) ExAF() {
	c.A, c.A2 = c.A2, c.A
	c.F, c.F2 = c.F2, c.F
}

// Exx swaps BC/DE/HL's 16-bit halves with the shadow bank. The
// extension bytes (BCU/DEU/HLU) are untouched: EXX is defined on the
// classic 16-bit pairs only, even in ADL mode.
func (c *CPU) Exx() {
	c.B, c.B2 = c.B2, c.B
	c.C, c.C2 = c.C2, c.C
	c.D, c.D2 = c.D2, c.D
	c.E, c.E2 = c.E2, c.E
	c.H, c.H2 = c.H2, c.H
	c.L, c.L2 = c.L2, c.L
}

func (c *CPU) readIndex() uint32 {
	switch c.PREFIX {
	case PrefixIX:
		return c.IX
	case PrefixIY:
		return c.IY
	default:
		return c.HL()
	}
}

func (c *CPU) writeIndex(v uint32) {
	switch c.PREFIX {
	case PrefixIX:
		c.IX = v & 0xFFFFFF
	case PrefixIY:
		c.IY = v & 0xFFFFFF
	default:
		c.SetHL(v)
	}
}

// readOtherIndex/writeOtherIndex address IY when PREFIX selects IX and
// vice versa.
func (c *CPU) readOtherIndex() uint32 {
	if c.PREFIX == PrefixIX {
		return c.IY
	}
	return c.IX
}

func (c *CPU) writeOtherIndex(v uint32) {
	if c.PREFIX == PrefixIX {
		c.IY = v & 0xFFFFFF
	} else {
		c.IX = v & 0xFFFFFF
	}
}

func (c *CPU) readIndexHigh() byte {
	switch c.PREFIX {
	case PrefixIX:
		return c.IXHigh()
	case PrefixIY:
		return c.IYHigh()
	default:
		return c.H
	}
}

func (c *CPU) readIndexLow() byte {
	switch c.PREFIX {
	case PrefixIX:
		return c.IXLow()
	case PrefixIY:
		return c.IYLow()
	default:
		return c.L
	}
}

func (c *CPU) writeIndexHigh(v byte) {
	switch c.PREFIX {
	case PrefixIX:
		c.SetIXHigh(v)
	case PrefixIY:
		c.SetIYHigh(v)
	default:
		c.H = v
	}
}

func (c *CPU) writeIndexLow(v byte) {
	switch c.PREFIX {
	case PrefixIX:
		c.SetIXLow(v)
	case PrefixIY:
		c.SetIYLow(v)
	default:
		c.L = v
	}
}

func (c *CPU) readSP() uint32 {
	if c.Lmode {
		return c.SPL
	}
	return uint32(c.SPS)
}

func (c *CPU) writeSP(v uint32) {
	if c.Lmode {
		c.SPL = v & 0xFFFFFF
	} else {
		c.SPS = uint16(v)
	}
}

// I8 is the classic 8-bit view of the I latch (its low byte), used
// for LD A,I / LD I,A and the IM 3 vector fetch address.
func (c *CPU) I8() byte     { return byte(c.I) }
func (c *CPU) SetI8(v byte) { c.I = uint16(v) }
