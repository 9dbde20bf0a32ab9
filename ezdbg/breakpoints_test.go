package ezdbg

import (
	"testing"

	"github.com/ez80core/ez80"
)

type memBus struct{ mem [1 << 16]byte }

func (m *memBus) ReadByte(addr uint32) byte     { return m.mem[addr&0xFFFF] }
func (m *memBus) WriteByte(addr uint32, v byte) { m.mem[addr&0xFFFF] = v }

func TestUnconditionalExecBreakpointFires(t *testing.T) {
	bus := &memBus{}
	bp := NewBreakpoints(bus, nil)
	bp.SetExec(0x1234, "")
	if !bp.ExecBreakpoint(0x1234) {
		t.Fatalf("expected breakpoint to fire")
	}
	if bp.ExecBreakpoint(0x1235) {
		t.Fatalf("expected no breakpoint at a different address")
	}
}

func TestConditionalBreakpointEvaluatesAgainstCPUState(t *testing.T) {
	bus := &memBus{}
	cpu := ez80.NewCPU(bus, bus, nil)
	cpu.A = 0x10
	bp := NewBreakpoints(bus, cpu)
	bp.SetExec(0x0000, "cpu.A == 16")
	if !bp.ExecBreakpoint(0x0000) {
		t.Fatalf("expected condition to evaluate true")
	}
	cpu.A = 0x11
	if bp.ExecBreakpoint(0x0000) {
		t.Fatalf("expected condition to evaluate false once A changes")
	}
}

func TestClearExecRemovesBreakpoint(t *testing.T) {
	bus := &memBus{}
	bp := NewBreakpoints(bus, nil)
	bp.SetExec(0x0100, "")
	bp.ClearExec(0x0100)
	if bp.ExecBreakpoint(0x0100) {
		t.Fatalf("expected breakpoint cleared")
	}
}

func TestMonitorReportsBreakEvent(t *testing.T) {
	bus := &memBus{}
	cpu := ez80.NewCPU(bus, bus, nil)
	mon := NewMonitor(cpu)
	mon.Break(ez80.BreakTrap, 0x4000)
	select {
	case ev := <-mon.Events():
		if ev.PC != 0x4000 || ev.Reason != ez80.BreakTrap {
			t.Fatalf("unexpected event %+v", ev)
		}
	default:
		t.Fatalf("expected a queued event")
	}
	if !cpu.Exiting {
		t.Fatalf("expected Monitor.Break to request a stop")
	}
}
