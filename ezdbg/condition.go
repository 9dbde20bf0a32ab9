package ezdbg

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/ez80core/ez80"
)

// evalCondition runs script as a Lua expression against a snapshot of
// cpu's architectural state, returning whether it evaluated truthy.
// Each call gets a fresh interpreter: conditional breakpoints fire
// rarely enough next to instruction dispatch that state isolation is
// worth more than reusing one *lua.LState across fetches.
func evalCondition(script string, cpu *ez80.CPU) (bool, error) {
	if cpu == nil {
		return false, nil
	}

	L := lua.NewState()
	defer L.Close()

	state := L.NewTable()
	L.SetField(state, "PC", lua.LNumber(cpu.PC))
	L.SetField(state, "SP", lua.LNumber(cpu.SPS))
	L.SetField(state, "A", lua.LNumber(cpu.A))
	L.SetField(state, "F", lua.LNumber(cpu.F))
	L.SetField(state, "B", lua.LNumber(cpu.B))
	L.SetField(state, "C", lua.LNumber(cpu.C))
	L.SetField(state, "D", lua.LNumber(cpu.D))
	L.SetField(state, "E", lua.LNumber(cpu.E))
	L.SetField(state, "H", lua.LNumber(cpu.H))
	L.SetField(state, "L", lua.LNumber(cpu.L))
	L.SetField(state, "BC", lua.LNumber(cpu.BC()))
	L.SetField(state, "DE", lua.LNumber(cpu.DE()))
	L.SetField(state, "HL", lua.LNumber(cpu.HL()))
	L.SetField(state, "IX", lua.LNumber(cpu.IX))
	L.SetField(state, "IY", lua.LNumber(cpu.IY))
	L.SetField(state, "IM", lua.LNumber(cpu.IM))
	L.SetField(state, "ADL", lua.LBool(cpu.ADL))
	L.SetField(state, "Halted", lua.LBool(cpu.Halted))
	L.SetGlobal("cpu", state)

	if err := L.DoString("__ezdbg_result = (" + script + ")"); err != nil {
		return false, err
	}
	return lua.LVAsBool(L.GetGlobal("__ezdbg_result")), nil
}
