package ez80

import "testing"

type fixedIRQ struct{ pending bool }

func (f *fixedIRQ) Pending() bool { return f.pending }

func TestIM1InterruptVectorsTo0x38(t *testing.T) {
	rig := newCPUTestRig()
	irq := &fixedIRQ{pending: true}
	rig.cpu.irqs = irq
	rig.load(0x0000, []byte{0x00}) // NOP
	rig.cpu.writeSP(0xFFF0)
	rig.cpu.IEF1, rig.cpu.IEF2 = true, true
	rig.cpu.IM = 1
	rig.step()
	requireEqualU32(t, "PC", rig.cpu.PC, 0x0038)
	if rig.cpu.IEF1 {
		t.Fatalf("expected IEF1 cleared on interrupt entry")
	}
}

func TestMaskedInterruptDoesNothing(t *testing.T) {
	rig := newCPUTestRig()
	irq := &fixedIRQ{pending: true}
	rig.cpu.irqs = irq
	rig.load(0x0000, []byte{0x00}) // NOP
	rig.cpu.IEF1, rig.cpu.IEF2 = false, false
	rig.step()
	requireEqualU32(t, "PC", rig.cpu.PC, 0x0001)
}

func TestEIDelaysInterruptRecognitionByOneInstruction(t *testing.T) {
	rig := newCPUTestRig()
	irq := &fixedIRQ{pending: true}
	rig.cpu.irqs = irq
	rig.load(0x0000, []byte{0xFB, 0x00}) // EI ; NOP
	rig.cpu.writeSP(0xFFF0)
	rig.cpu.IEF1, rig.cpu.IEF2 = false, false
	rig.cpu.IM = 1
	rig.cpu.CycleCountDelta = -3
	rig.cpu.Execute()
	requireEqualU32(t, "PC", rig.cpu.PC, 0x0038)
}

func TestHaltWithNothingPendingBurnsBudget(t *testing.T) {
	rig := newCPUTestRig()
	rig.load(0x0000, []byte{0x76}) // HALT
	rig.cpu.CycleCountDelta = -10
	rig.cpu.Execute()
	if !rig.cpu.Halted {
		t.Fatalf("expected Halted true")
	}
	if rig.cpu.CycleCountDelta < 0 {
		t.Fatalf("expected budget fully consumed while halted, got %d", rig.cpu.CycleCountDelta)
	}
	requireEqualU32(t, "PC", rig.cpu.PC, 0x0001)
}
