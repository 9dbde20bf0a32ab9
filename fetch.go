package ez80

// prefetch implements the eZ80's one-byte-ahead fetch buffer: PC
// always points at the byte sitting in c.prefetch, and every fetch
// both returns that byte and immediately reads the next one into the
// buffer, advancing PC. This is what lets cpu_prefetch-style mode
// switches (ADL changes mid-instruction, e.g. via a suffix) take
// effect starting with the very next fetch.

func (c *CPU) prefetchAt(address uint32, mode bool) {
	c.ADL = mode
	c.PC = c.addressMode(address, mode)
	c.prefetch = c.bus.ReadByte(c.PC)
}

// fetchByte consults the debugger (if any) for an exec breakpoint at
// the current PC before consuming the prefetch buffer, then refills it
// from PC+1.
func (c *CPU) fetchByte() byte {
	if c.dbg != nil {
		if q, ok := c.bus.(BreakpointQuerier); ok {
			if q.ExecBreakpoint(c.PC) {
				c.dbg.Break(BreakExec, c.PC)
			} else if q.StepOverBreakpoint(c.PC) {
				c.dbg.Break(BreakStepOver, c.PC)
			}
		}
	}
	v := c.prefetch
	c.prefetchAt(c.PC+1, c.ADL)
	return v
}

// fetchOffset reads a signed 8-bit displacement.
func (c *CPU) fetchOffset() int8 { return int8(c.fetchByte()) }

// fetchWord reads a little-endian 16-bit word, or 24-bit when IL
// selects the wider immediate width.
func (c *CPU) fetchWord() uint32 {
	v := uint32(c.fetchByte())
	v |= uint32(c.fetchByte()) << 8
	if c.IL {
		v |= uint32(c.fetchByte()) << 16
	}
	return v
}

// fetchWordNoPrefetch reads a jump/call target. It behaves like
// fetchWord; callers that consume it always follow up with an explicit
// prefetchAt(target, ...) that overwrites PC and the prefetch buffer,
// so there is nothing to gain — and a wrong address to lose — by
// prefetching ahead of a target about to be discarded.
func (c *CPU) fetchWordNoPrefetch() uint32 { return c.fetchWord() }
