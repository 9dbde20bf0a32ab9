package ez80

import "testing"

func TestNEGNegatesAccumulator(t *testing.T) {
	rig := newCPUTestRig()
	rig.load(0x0000, []byte{0xED, 0x44}) // NEG
	rig.cpu.A = 0x01
	rig.step()
	requireEqualU8(t, "A", rig.cpu.A, 0xFF)
	if !rig.cpu.Flag(FlagN) {
		t.Fatalf("expected N set")
	}
	if !rig.cpu.Flag(FlagC) {
		t.Fatalf("expected carry set: NEG of nonzero always borrows")
	}
}

func TestMLTMultipliesRegisterPairHalves(t *testing.T) {
	rig := newCPUTestRig()
	rig.load(0x0000, []byte{0xED, 0x4C}) // MLT BC
	rig.cpu.B = 6
	rig.cpu.C = 7
	rig.step()
	requireEqualU32(t, "BC", rig.cpu.BC(), 42)
}

func TestTSTAccumulatorAgainstRegister(t *testing.T) {
	rig := newCPUTestRig()
	rig.load(0x0000, []byte{0xED, 0x04}) // TST A,B
	rig.cpu.A = 0xF0
	rig.cpu.B = 0x3C
	rig.step()
	if rig.cpu.A != 0xF0 {
		t.Fatalf("TST must not modify A, got 0x%02X", rig.cpu.A)
	}
	if rig.cpu.Flag(FlagZ) {
		t.Fatalf("expected Z clear: 0xF0 & 0x3C is nonzero")
	}
}

func TestLDIA_ReflectsIFF2InPV(t *testing.T) {
	rig := newCPUTestRig()
	rig.load(0x0000, []byte{0xED, 0x57}) // LD A,I
	rig.cpu.SetI8(0x42)
	rig.cpu.IEF2 = true
	rig.step()
	requireEqualU8(t, "A", rig.cpu.A, 0x42)
	if !rig.cpu.Flag(FlagPV) {
		t.Fatalf("expected PV to mirror IFF2")
	}
}

func TestRRDRotatesDigitsThroughAccumulator(t *testing.T) {
	rig := newCPUTestRig()
	rig.load(0x0000, []byte{0xED, 0x67}) // RRD
	rig.cpu.SetHL(0x2000)
	rig.cpu.A = 0x84
	rig.bus.mem[0x2000] = 0x20
	rig.step()
	requireEqualU8(t, "A", rig.cpu.A, 0x80)
	requireEqualU8(t, "(HL)", rig.bus.mem[0x2000], 0x42)
}

func TestLEALoadsIndexPlusDisplacement(t *testing.T) {
	rig := newCPUTestRig()
	rig.load(0x0000, []byte{0xED, 0x02, 0x10}) // LEA BC,IX+16
	rig.cpu.IX = 0x3000
	rig.step()
	requireEqualU32(t, "BC", rig.cpu.BC(), 0x3010)
}
