package ez80

// Execute runs instructions until CycleCountDelta reaches zero or
// greater, or Exiting is set. CycleCountDelta is the externally
// managed cycle budget described on the CPU struct; a host asks for N
// T-states by setting it to -N before calling Execute.
//
// Interrupt recognition happens once per outer pass, before any
// instruction in that pass runs; the inner pass then runs opcodes
// (including any DD/FD/ED/CB prefix chain and any .SIS/.LIS/.SIL/.LIL
// suffix byte) until the instruction-boundary invariant holds again
// and the budget is spent.
func (c *CPU) Execute() {
	c.mu.Lock()
	c.running.Store(true)
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.running.Store(false)
		c.Exiting = false
		c.mu.Unlock()
	}()

	for !c.isExiting() && c.CycleCountDelta < 0 {
		c.recognizeInterrupts()
		c.cycleOffset = 0

		for !c.isExiting() && !c.Halted && (c.PREFIX != PrefixNone || c.SUFFIX || c.CycleCountDelta < 0) {
			c.instrCycles = 0
			opcode := c.fetchByte()
			c.incrementR()

			prefixContinue := c.execOpcode(opcode)

			if !prefixContinue {
				c.normalize()
			}
			if c.eiJustFired {
				c.eiJustFired = false
				continue
			}
			c.CycleCountDelta += int64(c.instrCycles)
			if c.instrCycles == 0 {
				c.CycleCountDelta++
			}
			c.InstructionCount++
			c.reportPerf()
		}

		c.CycleCountDelta += c.cycleOffset
	}
}

func (c *CPU) isExiting() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Exiting
}

// recognizeInterrupts implements spec §4.7: resolve any pending
// IEFWait latency, then service a maskable interrupt if IEF1 is set
// and the attached InterruptSource reports one pending, or burn the
// remaining budget if halted with nothing to do.
func (c *CPU) recognizeInterrupts() {
	if c.IEFWait {
		c.IEFWait = false
		c.IEF1, c.IEF2 = true, true
	}
	if c.IEF1 && c.irqs != nil && c.irqs.Pending() {
		c.IEF1, c.IEF2, c.Halted = false, false, false
		c.CycleCountDelta++
		if c.IM != 3 {
			c.call(0x38, c.MADL)
		} else {
			c.CycleCountDelta++
			vector := c.readWord(uint32(c.I8())<<8 | uint32(^c.R))
			c.call(vector, c.MADL)
		}
		return
	}
	if c.Halted {
		c.CycleCountDelta = 0
	}
}
