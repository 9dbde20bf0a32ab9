// Package ezdbg is a scriptable debugger for an ez80.CPU: exec and
// step-over breakpoints gated by an optional Lua predicate, and a
// Monitor that implements ez80.Debugger to report stops back to a
// host. Grounded on the teacher's DebugZ80 (an address-keyed
// breakpoint map behind a mutex, separate "freeze now" vs "the
// instruction loop notices on its own" paths) adapted to the narrower
// BreakpointQuerier/Debugger interfaces this core exposes.
package ezdbg

import (
	"fmt"
	"sync"

	"github.com/ez80core/ez80"
)

// breakpoint pairs an address trigger with an optional Lua predicate;
// an empty script means the breakpoint fires unconditionally.
type breakpoint struct {
	script string
}

// Breakpoints wraps a Bus with exec/step-over breakpoint bookkeeping.
// It satisfies both ez80.Bus (by embedding the wrapped one) and
// ez80.BreakpointQuerier, so a host passes a *Breakpoints to NewCPU in
// place of its plain bus and the core consults it from fetchByte
// without knowing anything about debugging.
type Breakpoints struct {
	ez80.Bus

	mu       sync.RWMutex
	exec     map[uint32]breakpoint
	stepOver map[uint32]breakpoint
	cpu      *ez80.CPU
}

// NewBreakpoints wraps bus with breakpoint bookkeeping. cpu is used
// only to evaluate Lua conditions against live register state; it may
// be set after construction via SetCPU if the CPU doesn't exist yet
// when the bus is wired up.
func NewBreakpoints(bus ez80.Bus, cpu *ez80.CPU) *Breakpoints {
	return &Breakpoints{
		Bus:      bus,
		exec:     make(map[uint32]breakpoint),
		stepOver: make(map[uint32]breakpoint),
		cpu:      cpu,
	}
}

// SetCPU attaches the CPU whose state Lua conditions snapshot.
func (b *Breakpoints) SetCPU(cpu *ez80.CPU) { b.cpu = cpu }

// SetExec arms an exec breakpoint at addr. script, if non-empty, is a
// Lua boolean expression (e.g. "cpu.BC == 0") evaluated against the
// CPU's state each time the breakpoint address is fetched; the
// breakpoint fires when it evaluates truthy, and also when the script
// fails to evaluate (the error is printed).
func (b *Breakpoints) SetExec(addr uint32, script string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.exec[addr] = breakpoint{script: script}
}

func (b *Breakpoints) ClearExec(addr uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.exec, addr)
}

// SetStepOver arms a step-over breakpoint, used by a "step" command
// that wants to run a CALL to completion rather than descend into it.
func (b *Breakpoints) SetStepOver(addr uint32, script string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stepOver[addr] = breakpoint{script: script}
}

func (b *Breakpoints) ClearStepOver(addr uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.stepOver, addr)
}

// ClearAll removes every armed breakpoint, exec and step-over alike.
func (b *Breakpoints) ClearAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.exec = make(map[uint32]breakpoint)
	b.stepOver = make(map[uint32]breakpoint)
}

// ListExec returns the addresses with an armed exec breakpoint.
func (b *Breakpoints) ListExec() []uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	addrs := make([]uint32, 0, len(b.exec))
	for addr := range b.exec {
		addrs = append(addrs, addr)
	}
	return addrs
}

func (b *Breakpoints) ExecBreakpoint(addr uint32) bool {
	return b.check(b.exec, addr)
}

func (b *Breakpoints) StepOverBreakpoint(addr uint32) bool {
	return b.check(b.stepOver, addr)
}

func (b *Breakpoints) check(set map[uint32]breakpoint, addr uint32) bool {
	b.mu.RLock()
	bp, ok := set[addr]
	b.mu.RUnlock()
	if !ok {
		return false
	}
	if bp.script == "" {
		return true
	}
	hit, err := evalCondition(bp.script, b.cpu)
	if err != nil {
		fmt.Printf("ezdbg: breakpoint condition error at 0x%06X: %v\n", addr, err)
		return true
	}
	return hit
}
