package ez80

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Prefix values for the active index-register substitution. 0 means
// no substitution (HL), 2 means DD (IX), 3 means FD (IY). The values
// 2 and 3 also equal the z field of the ED-prefixed LEA encodings that
// select IX and IY, which execED0 assigns to PREFIX directly.
const (
	PrefixNone byte = 0
	PrefixIX   byte = 2
	PrefixIY   byte = 3
)

// CPU is an eZ80 execution core. It owns the architectural register
// file, mode bits, and the fetch/decode/execute loop; it never touches
// memory, ports, or interrupts directly, always going through the Bus,
// Ports, and InterruptSource given to NewCPU.
type CPU struct {
	mu      sync.RWMutex
	running atomic.Bool

	// Primary 8-bit registers. BC/DE/HL are split into a 16-bit pair
	// (high/low byte fields below) plus an upper byte used only while
	// ADL (or L) addresses the full 24 bits.
	A, F byte
	B, C byte
	D, E byte
	H, L byte
	BCU  byte
	DEU  byte
	HLU  byte

	// Shadow bank, swapped in by EX AF,AF' and EXX. The eZ80 shadow
	// bank is 16-bit only, same as classic Z80.
	A2, F2 byte
	B2, C2 byte
	D2, E2 byte
	H2, L2 byte

	IX, IY uint32 // 24-bit, masked on every write
	PC     uint32 // 24-bit
	SPL    uint32 // 24-bit long stack pointer
	SPS    uint16 // 16-bit short stack pointer
	I      uint16 // 16-bit latch; classic I is its low byte
	R      byte
	MBASE  byte

	// Mode bits. ADL/MADL are the architectural "always long" and
	// "mixed ADL" bits; L/IL are the per-instruction effective address
	// and immediate widths, reset to ADL at every instruction
	// boundary and only diverge from it for the duration of a
	// .SIS/.LIS/.SIL/.LIL-suffixed instruction.
	ADL, MADL bool
	PREFIX    byte
	SUFFIX    bool
	// Lmode and IL are the per-instruction effective address and
	// immediate widths. They track ADL at every instruction
	// boundary (see normalize) and only diverge from it while a
	// .SIS/.LIS/.SIL/.LIL suffix is in effect.
	Lmode, IL bool

	IEF1, IEF2, IEFWait bool
	IM                  byte
	Halted              bool

	// Exiting, when set by the host, ends both the outer and inner
	// loops of Execute at the next safe point.
	Exiting bool

	// CycleCountDelta is an externally managed signed cycle budget.
	// A host sets it negative before calling Execute to ask for that
	// many T-states; Execute adds consumed cycles to it and returns
	// once it reaches zero or greater (or Exiting is set).
	CycleCountDelta int64

	// Cycles is a running, never-reset total, useful for logging and
	// the performance counters below.
	Cycles uint64

	prefetch    byte
	instrCycles int
	cycleOffset int64
	eiJustFired bool

	bus  Bus
	io   Ports
	irqs InterruptSource
	dbg  Debugger

	PerfEnabled      bool
	InstructionCount uint64
	perfStart        time.Time
	perfLastReport   time.Time
	perfLastCount    uint64
}

// NewCPU constructs a core wired to the given collaborators. irqs may
// be nil; a nil InterruptSource never asserts. No Debugger is attached
// until SetDebugger is called.
func NewCPU(bus Bus, io Ports, irqs InterruptSource) *CPU {
	c := &CPU{bus: bus, io: io, irqs: irqs}
	c.Init()
	return c
}

// SetDebugger attaches or detaches a debugger collaborator.
func (c *CPU) SetDebugger(dbg Debugger) { c.dbg = dbg }

// Running reports whether the core is mid-Execute, safe to call from
// another goroutine.
func (c *CPU) Running() bool { return c.running.Load() }

// SetRunning lets a host request that Execute stop at its next safe
// point without needing to know about CycleCountDelta. Execute clears
// it again on return.
func (c *CPU) SetRunning(run bool) {
	if !run {
		c.mu.Lock()
		c.Exiting = true
		c.mu.Unlock()
	}
}

// lineSource is a single interrupt line whose Set lets a host toggle
// assertion from outside the instruction loop without racing it; it
// only matters when the InterruptSource given to NewCPU is this simple
// line state rather than a richer host-owned controller. Most hosts
// will implement InterruptSource themselves and never use it.
type lineSource struct{ asserted atomic.Bool }

func (l *lineSource) Pending() bool     { return l.asserted.Load() }
func (l *lineSource) Set(asserted bool) { l.asserted.Store(asserted) }

// NewLineSource returns a minimal InterruptSource a host can toggle
// from any goroutine, for cases where a fuller interrupt controller
// isn't warranted.
func NewLineSource() *lineSource { return &lineSource{} }

// Init zeroes the core and its register file, as if freshly powered
// on, and logs a banner the way the reference implementation's
// cpu_init does.
func (c *CPU) Init() {
	bus, io, irqs, dbg := c.bus, c.io, c.irqs, c.dbg
	perfEnabled := c.PerfEnabled
	*c = CPU{}
	c.bus, c.io, c.irqs, c.dbg = bus, io, irqs, dbg
	c.PerfEnabled = perfEnabled
	fmt.Println("ez80: core initialized")
}

// Reset clears architectural state and mode bits and flushes the
// prefetch buffer at address 0 in Z80 (non-ADL) mode, matching
// cpu_reset/cpu_flush in the reference implementation.
func (c *CPU) Reset() {
	c.A, c.F = 0, 0
	c.B, c.C, c.D, c.E, c.H, c.L = 0, 0, 0, 0, 0, 0
	c.BCU, c.DEU, c.HLU = 0, 0, 0
	c.A2, c.F2, c.B2, c.C2, c.D2, c.E2, c.H2, c.L2 = 0, 0, 0, 0, 0, 0, 0, 0
	c.IX, c.IY = 0, 0
	c.SPL, c.SPS = 0, 0
	c.I, c.R, c.MBASE = 0, 0, 0
	c.IEF1, c.IEF2, c.IEFWait = false, false, false
	c.IM = 0
	c.Halted = false
	c.Exiting = false
	c.CycleCountDelta = 0
	c.ADL, c.MADL = false, false
	c.Flush(0, false)
}

// Flush sets the ADL mode bit, composes PC from address under that
// mode, refills the prefetch buffer, and resets PREFIX/SUFFIX/L/IL to
// the instruction-boundary invariant (PREFIX=0, SUFFIX=false,
// L=IL=mode).
func (c *CPU) Flush(address uint32, mode bool) {
	c.ADL = mode
	c.PC = c.addressMode(address, mode)
	c.prefetch = c.bus.ReadByte(c.PC)
	c.normalize()
}

// normalize restores the instruction-boundary invariant: no pending
// index-register prefix, no pending mixed-mode suffix, and L and IL
// both equal to ADL.
func (c *CPU) normalize() {
	c.PREFIX = PrefixNone
	c.SUFFIX = false
	c.Lmode = c.ADL
	c.IL = c.ADL
}

func (c *CPU) maskMode(v uint32) uint32 {
	if c.Lmode {
		return v & 0xFFFFFF
	}
	return v & 0xFFFF
}

func (c *CPU) addressMode(addr uint32, mode bool) uint32 {
	if mode {
		return addr & 0xFFFFFF
	}
	return uint32(c.MBASE)<<16 | (addr & 0xFFFF)
}

func (c *CPU) tick(n int) {
	c.instrCycles += n
	c.Cycles += uint64(n)
}

func (c *CPU) incrementR() {
	c.R = (c.R & 0x80) | ((c.R + 1) & 0x7F)
}

func b2u8(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func boolFlag(b bool, mask byte) byte {
	if b {
		return mask
	}
	return 0
}

// reportPerf mirrors the teacher's rolling MIPS counter, reporting at
// most once a second and only when PerfEnabled.
func (c *CPU) reportPerf() {
	if !c.PerfEnabled {
		return
	}
	now := time.Now()
	if c.perfStart.IsZero() {
		c.perfStart = now
		c.perfLastReport = now
		return
	}
	if elapsed := now.Sub(c.perfLastReport); elapsed >= time.Second {
		delta := c.InstructionCount - c.perfLastCount
		mips := float64(delta) / elapsed.Seconds() / 1e6
		fmt.Printf("ez80: %.2f MIPS (%d instructions)\n", mips, c.InstructionCount)
		c.perfLastReport = now
		c.perfLastCount = c.InstructionCount
	}
}
