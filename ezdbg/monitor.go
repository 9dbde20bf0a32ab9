package ezdbg

import "github.com/ez80core/ez80"

// BreakEvent describes one stop reported to a host.
type BreakEvent struct {
	Reason ez80.BreakReason
	PC     uint32
}

func (e BreakEvent) String() string {
	switch e.Reason {
	case ez80.BreakExec:
		return "exec breakpoint"
	case ez80.BreakStepOver:
		return "step-over breakpoint"
	case ez80.BreakTrap:
		return "trap"
	default:
		return "break"
	}
}

// Monitor implements ez80.Debugger: it stops the core at the next safe
// point and queues the event for a host to drain, the same split the
// teacher's DebugZ80 makes between "freeze now" and "the instruction
// loop notices on its own".
type Monitor struct {
	cpu    *ez80.CPU
	events chan BreakEvent
}

// NewMonitor attaches a Monitor to cpu as its Debugger.
func NewMonitor(cpu *ez80.CPU) *Monitor {
	m := &Monitor{cpu: cpu, events: make(chan BreakEvent, 16)}
	cpu.SetDebugger(m)
	return m
}

// Break satisfies ez80.Debugger.
func (m *Monitor) Break(reason ez80.BreakReason, pc uint32) {
	m.cpu.SetRunning(false)
	select {
	case m.events <- BreakEvent{Reason: reason, PC: pc}:
	default:
	}
}

// Events returns the channel of reported breaks a host can drain.
func (m *Monitor) Events() <-chan BreakEvent { return m.events }
