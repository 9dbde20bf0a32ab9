package ez80

// trap reports an unassigned or not-yet-actionable opcode encoding
// (spec §7): it sets IEFWait, which the next interrupt-recognition
// point resolves into exactly one instruction of extra enabled-latency,
// the same bookkeeping a real EI would produce, and notifies the
// debugger if one is attached. It never panics — an unassigned opcode
// is architecturally a no-op, not an internal invariant violation.
func (c *CPU) trap() {
	c.IEFWait = true
	if c.dbg != nil {
		c.dbg.Break(BreakTrap, c.PC)
	}
}
