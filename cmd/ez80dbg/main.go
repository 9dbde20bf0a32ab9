// Command ez80dbg loads a flat binary image and runs, single-steps,
// or disassembles it against the ez80 execution core. Shape borrowed
// from oisee-z80-optimizer's cmd/z80opt: one root cobra.Command with a
// subcommand per mode, each with its own flag set.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ez80core/ez80"
	"github.com/ez80core/ez80/ezdbg"
)

type flatBus struct {
	mem [1 << 24]byte
	io  [1 << 16]byte
}

func (b *flatBus) ReadByte(addr uint32) byte     { return b.mem[addr&0xFFFFFF] }
func (b *flatBus) WriteByte(addr uint32, v byte) { b.mem[addr&0xFFFFFF] = v }
func (b *flatBus) ReadPort(port uint16) byte     { return b.io[port] }
func (b *flatBus) WritePort(port uint16, v byte) { b.io[port] = v }

func loadImage(bus *flatBus, path string, at uint32) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	copy(bus.mem[at:], data)
	return nil
}

func main() {
	root := &cobra.Command{
		Use:   "ez80dbg",
		Short: "eZ80 execution core debugger: run, single-step, or disassemble a flat image",
	}

	var loadAddr uint32
	var startADL bool
	var cycles int64

	runCmd := &cobra.Command{
		Use:   "run [image]",
		Short: "Run an image to completion of its cycle budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bus := &flatBus{}
			if err := loadImage(bus, args[0], loadAddr); err != nil {
				return err
			}
			cpu := ez80.NewCPU(bus, bus, nil)
			cpu.Flush(loadAddr, startADL)
			cpu.CycleCountDelta = -cycles
			cpu.Execute()
			fmt.Printf("halted: PC=0x%06X A=0x%02X cycles=%d\n", cpu.PC, cpu.A, cpu.Cycles)
			return nil
		},
	}
	runCmd.Flags().Uint32Var(&loadAddr, "load-addr", 0, "address to load the image at")
	runCmd.Flags().BoolVar(&startADL, "adl", false, "start in ADL (24-bit) mode")
	runCmd.Flags().Int64Var(&cycles, "cycles", 1_000_000, "T-state budget to run")

	var stepBreak string
	stepCmd := &cobra.Command{
		Use:   "step [image]",
		Short: "Single-step interactively in a raw-mode terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bus := &flatBus{}
			if err := loadImage(bus, args[0], loadAddr); err != nil {
				return err
			}
			bp := ezdbg.NewBreakpoints(bus, nil)
			cpu := ez80.NewCPU(bp, bus, nil)
			bp.SetCPU(cpu)
			cpu.Flush(loadAddr, startADL)
			ezdbg.NewMonitor(cpu)
			if stepBreak != "" {
				addr, err := strconv.ParseUint(stepBreak, 0, 32)
				if err != nil {
					return fmt.Errorf("invalid --break address %q: %w", stepBreak, err)
				}
				bp.SetExec(uint32(addr), "")
			}
			return interactiveStep(cpu)
		},
	}
	stepCmd.Flags().Uint32Var(&loadAddr, "load-addr", 0, "address to load the image at")
	stepCmd.Flags().BoolVar(&startADL, "adl", false, "start in ADL (24-bit) mode")
	stepCmd.Flags().StringVar(&stepBreak, "break", "", "address to arm an exec breakpoint at")

	var disasmCount int
	disasmCmd := &cobra.Command{
		Use:   "disasm [image]",
		Short: "Disassemble an image starting at --load-addr",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bus := &flatBus{}
			if err := loadImage(bus, args[0], loadAddr); err != nil {
				return err
			}
			lines := ezdbg.Disassemble(bus.ReadByte, loadAddr, disasmCount)
			for _, l := range lines {
				fmt.Printf("%06X  %-12s %s\n", l.Address, l.HexBytes, l.Mnemonic)
			}
			return nil
		},
	}
	disasmCmd.Flags().Uint32Var(&loadAddr, "load-addr", 0, "address to start disassembling at")
	disasmCmd.Flags().IntVar(&disasmCount, "count", 20, "number of instructions to disassemble")

	root.AddCommand(runCmd, stepCmd, disasmCmd)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// interactiveStep puts the controlling terminal in raw mode and steps
// one instruction per keypress: space/enter to step, 'q' to quit.
func interactiveStep(cpu *ez80.CPU) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return stepNonInteractive(cpu)
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer term.Restore(fd, oldState)

	buf := make([]byte, 1)
	for {
		fmt.Printf("\r\nPC=0x%06X A=0x%02X F=0x%02X  [space: step, q: quit] ", cpu.PC, cpu.A, cpu.F)
		if _, err := os.Stdin.Read(buf); err != nil {
			return err
		}
		switch buf[0] {
		case 'q', 'Q', 3: // Ctrl-C
			return nil
		default:
			cpu.CycleCountDelta = -1
			cpu.Execute()
		}
	}
}

// stepNonInteractive drives the same loop from a pipe or script,
// reading one line per step instead of raw keypresses.
func stepNonInteractive(cpu *ez80.CPU) error {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "q" {
			return nil
		}
		cpu.CycleCountDelta = -1
		cpu.Execute()
		fmt.Printf("PC=0x%06X A=0x%02X F=0x%02X\n", cpu.PC, cpu.A, cpu.F)
	}
	return scanner.Err()
}
