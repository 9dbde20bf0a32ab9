// Package ez80 implements the execution core of a Zilog eZ80 CPU
// emulator: a cycle-accountable interpreter for the eZ80 instruction
// set, a Z80 superset adding 24-bit Address Data Long (ADL) addressing
// and mixed-mode .SIS/.LIS/.SIL/.LIL suffix prefixes.
//
// The core owns the architectural register file, flag computation,
// the fetch/decode/execute loop, and interrupt recognition. It never
// touches memory, I/O ports, or a display directly — those are
// supplied by the host through the Bus, Ports, and InterruptSource
// interfaces, and a Debugger may be attached to gate single-stepping.
package ez80
