package ez80

import "testing"

func TestLDIMovesByteAndDecrementsBC(t *testing.T) {
	rig := newCPUTestRig()
	rig.load(0x0000, []byte{0xED, 0xA0}) // LDI
	rig.cpu.SetHL(0x2000)
	rig.cpu.SetDE(0x3000)
	rig.cpu.SetBC(0x0001)
	rig.bus.mem[0x2000] = 0x42
	rig.step()
	requireEqualU8(t, "(DE)", rig.bus.mem[0x3000], 0x42)
	requireEqualU32(t, "HL", rig.cpu.HL(), 0x2001)
	requireEqualU32(t, "DE", rig.cpu.DE(), 0x3001)
	requireEqualU32(t, "BC", rig.cpu.BC(), 0x0000)
	if rig.cpu.Flag(FlagPV) {
		t.Fatalf("expected PV clear once BC reaches zero")
	}
}

func TestLDIRRepeatsUntilBCExhausted(t *testing.T) {
	rig := newCPUTestRig()
	rig.load(0x0000, []byte{0xED, 0xB0}) // LDIR
	rig.cpu.SetHL(0x2000)
	rig.cpu.SetDE(0x3000)
	rig.cpu.SetBC(0x0003)
	copy(rig.bus.mem[0x2000:], []byte{0x11, 0x22, 0x33})
	rig.cpu.CycleCountDelta = -16 // 3 iterations: two repeats (7 each) plus a final non-repeating one (2)
	rig.cpu.Execute()
	requireEqualU8(t, "(0x3000)", rig.bus.mem[0x3000], 0x11)
	requireEqualU8(t, "(0x3001)", rig.bus.mem[0x3001], 0x22)
	requireEqualU8(t, "(0x3002)", rig.bus.mem[0x3002], 0x33)
	requireEqualU32(t, "BC", rig.cpu.BC(), 0)
	requireEqualU32(t, "HL", rig.cpu.HL(), 0x2003)
	requireEqualU32(t, "DE", rig.cpu.DE(), 0x3003)
}

// TestSuffixedLDIRRewindsPastSuffixByte exercises the "- SUFFIX" term in
// the repeat rewind: a .LIL LDIR must rewind past its own suffix byte so
// the next iteration re-arms the suffix instead of re-running a bare,
// unsuffixed ED B0.
func TestSuffixedLDIRRewindsPastSuffixByte(t *testing.T) {
	rig := newCPUTestRig()
	rig.load(0x0010, []byte{0x5B, 0xED, 0xB0}) // .LIL ; LDIR
	rig.cpu.SetHL(0x2000)
	rig.cpu.SetDE(0x3000)
	rig.cpu.SetBC(2)
	copy(rig.bus.mem[0x2000:], []byte{0xAA, 0xBB})

	rig.step()
	requireEqualU32(t, "PC rewound to the suffix byte", rig.cpu.PC, 0x0010)
	requireEqualU32(t, "BC after first iteration", rig.cpu.BC(), 1)
	requireEqualU8(t, "(0x3000)", rig.bus.mem[0x3000], 0xAA)

	rig.step()
	requireEqualU32(t, "PC once the repeat finishes", rig.cpu.PC, 0x0013)
	requireEqualU32(t, "BC after second iteration", rig.cpu.BC(), 0)
	requireEqualU8(t, "(0x3001)", rig.bus.mem[0x3001], 0xBB)
	if rig.cpu.SUFFIX {
		t.Fatalf("expected SUFFIX cleared once the repeat finishes")
	}
}

func TestCPIRFindsMatch(t *testing.T) {
	rig := newCPUTestRig()
	rig.load(0x0000, []byte{0xED, 0xB1}) // CPIR
	rig.cpu.A = 0x33
	rig.cpu.SetHL(0x2000)
	rig.cpu.SetBC(0x0003)
	copy(rig.bus.mem[0x2000:], []byte{0x11, 0x22, 0x33})
	rig.cpu.CycleCountDelta = -25 // 3 iterations: two repeats (10 each) plus the matching, non-repeating one (5)
	rig.cpu.Execute()
	if !rig.cpu.Flag(FlagZ) {
		t.Fatalf("expected Z set on match")
	}
	requireEqualU32(t, "HL", rig.cpu.HL(), 0x2003)
	requireEqualU32(t, "BC", rig.cpu.BC(), 0)
}
