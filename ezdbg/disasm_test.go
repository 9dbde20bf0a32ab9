package ezdbg

import "testing"

func TestDisassembleBasicOpcodes(t *testing.T) {
	program := []byte{0x00, 0x3E, 0x42, 0xC3, 0x00, 0x10}
	read := func(addr uint32) byte { return program[addr] }
	lines := Disassemble(read, 0, 3)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0].Mnemonic != "NOP" || lines[0].Size != 1 {
		t.Fatalf("line 0 = %+v", lines[0])
	}
	if lines[1].Mnemonic != "LD A,0x42" || lines[1].Size != 2 {
		t.Fatalf("line 1 = %+v", lines[1])
	}
	if lines[2].Mnemonic != "JP 0x1000" || lines[2].Size != 3 {
		t.Fatalf("line 2 = %+v", lines[2])
	}
}

func TestDisassembleCBPrefixed(t *testing.T) {
	program := []byte{0xCB, 0x00}
	read := func(addr uint32) byte { return program[addr] }
	lines := Disassemble(read, 0, 1)
	if lines[0].Mnemonic != "RLC B" {
		t.Fatalf("got %q", lines[0].Mnemonic)
	}
}
