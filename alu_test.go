package ez80

import "testing"

func TestALUAdd(t *testing.T) {
	rig := newCPUTestRig()
	rig.load(0x0000, []byte{0x80}) // ADD A,B
	rig.cpu.A = 0x0F
	rig.cpu.B = 0x01
	rig.step()
	requireEqualU8(t, "A", rig.cpu.A, 0x10)
	if !rig.cpu.Flag(FlagH) {
		t.Fatalf("expected half-carry set")
	}
}

func TestALUAddOverflow(t *testing.T) {
	rig := newCPUTestRig()
	rig.load(0x0000, []byte{0x80}) // ADD A,B
	rig.cpu.A = 0x7F
	rig.cpu.B = 0x01
	rig.step()
	requireEqualU8(t, "A", rig.cpu.A, 0x80)
	if !rig.cpu.Flag(FlagPV) {
		t.Fatalf("expected overflow set")
	}
	if !rig.cpu.Flag(FlagS) {
		t.Fatalf("expected sign set")
	}
}

func TestALUAdcWithCarry(t *testing.T) {
	rig := newCPUTestRig()
	rig.load(0x0000, []byte{0x88}) // ADC A,B
	rig.cpu.A = 0x01
	rig.cpu.B = 0x01
	rig.cpu.SetFlag(FlagC, true)
	rig.step()
	requireEqualU8(t, "A", rig.cpu.A, 0x03)
}

func TestALUSub(t *testing.T) {
	rig := newCPUTestRig()
	rig.load(0x0000, []byte{0x90}) // SUB B
	rig.cpu.A = 0x10
	rig.cpu.B = 0x01
	rig.step()
	requireEqualU8(t, "A", rig.cpu.A, 0x0F)
	if !rig.cpu.Flag(FlagN) {
		t.Fatalf("expected subtract flag set")
	}
}

func TestALUSbcWithCarry(t *testing.T) {
	rig := newCPUTestRig()
	rig.load(0x0000, []byte{0x98}) // SBC A,B
	rig.cpu.A = 0x10
	rig.cpu.B = 0x01
	rig.cpu.SetFlag(FlagC, true)
	rig.step()
	requireEqualU8(t, "A", rig.cpu.A, 0x0E)
}

func TestALUAnd(t *testing.T) {
	rig := newCPUTestRig()
	rig.load(0x0000, []byte{0xA0}) // AND B
	rig.cpu.A = 0xF0
	rig.cpu.B = 0x3C
	rig.step()
	requireEqualU8(t, "A", rig.cpu.A, 0x30)
	if !rig.cpu.Flag(FlagH) {
		t.Fatalf("expected half-carry set for AND")
	}
}

func TestALUXor(t *testing.T) {
	rig := newCPUTestRig()
	rig.load(0x0000, []byte{0xA8}) // XOR B
	rig.cpu.A = 0xFF
	rig.cpu.B = 0xFF
	rig.step()
	requireEqualU8(t, "A", rig.cpu.A, 0x00)
	if !rig.cpu.Flag(FlagZ) {
		t.Fatalf("expected zero set")
	}
	if !rig.cpu.Flag(FlagPV) {
		t.Fatalf("expected parity set for zero result")
	}
}

func TestDAAAfterBCDAdd(t *testing.T) {
	rig := newCPUTestRig()
	rig.load(0x0000, []byte{0x27}) // DAA
	// 09 + 09 = 0x12 with a half-carry out of the low BCD digit; DAA
	// should correct it to the BCD result 18.
	rig.cpu.A = 0x12
	rig.cpu.SetFlag(FlagH, true)
	rig.step()
	requireEqualU8(t, "A", rig.cpu.A, 0x18)
}
