// Package console is an interactive debug REPL for the terminal
// façade: step instructions, inspect registers and memory, set
// breakpoints, and dump the execution history ring. Uses a
// liner.Liner prompt loop with history and a completer, and main.go's
// getopt flag pattern for its own standalone flags.
package console

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	getopt "github.com/pborman/getopt/v2"
	"golang.org/x/term"

	"github.com/sethm/dmd-core/terminal"
)

// commandNames lists every command the completer offers.
var commandNames = []string{
	"step", "continue", "regs", "mem", "break", "clear",
	"history", "keyboard", "help", "quit",
}

// Options are the flags a standalone invocation of the console
// accepts, parsed on an independent getopt Set so they don't collide
// with any flags the host main() has already parsed from os.Args.
type Options struct {
	Attach string // optional PTY/device path for command/serialbridge
	Baud   int
}

// ParseArgs parses console-specific flags from args (not os.Args),
// e.g. when a host program wants to offer "--attach /dev/ttyUSB0" to
// the user without touching its own flag set.
func ParseArgs(args []string) Options {
	set := getopt.New()
	attach := set.StringLong("attach", 0, "", "Serial device or PTY to bridge to RS-232")
	baud := set.IntLong("baud", 0, 9600, "Initial baud rate for --attach")
	set.Parse(args)
	return Options{Attach: *attach, Baud: *baud}
}

// Console is a REPL driving one terminal.Terminal.
type Console struct {
	term  *terminal.Terminal
	breaks map[uint32]bool
}

// New constructs a Console around an already-Reset terminal.
func New(t *terminal.Terminal) *Console {
	return &Console{term: t, breaks: make(map[uint32]bool)}
}

// Run drives the prompt loop until the user quits or aborts (Ctrl-D).
func (c *Console) Run() {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(partial string) []string {
		var out []string
		for _, name := range commandNames {
			if strings.HasPrefix(name, partial) {
				out = append(out, name)
			}
		}
		sort.Strings(out)
		return out
	})

	for {
		input, err := line.Prompt("dmd> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return
			}
			slog.Error("console: read error", "error", err)
			return
		}
		line.AppendHistory(input)

		quit, err := c.dispatch(strings.TrimSpace(input))
		if err != nil {
			fmt.Println("error:", err)
		}
		if quit {
			return
		}
	}
}

func (c *Console) dispatch(input string) (quit bool, err error) {
	if input == "" {
		return false, nil
	}
	fields := strings.Fields(input)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "quit", "q", "exit":
		return true, nil
	case "help", "?":
		c.printHelp()
	case "step", "s":
		return false, c.cmdStep(args)
	case "continue", "c":
		return false, c.cmdContinue()
	case "regs", "r":
		c.cmdRegs()
	case "mem", "m":
		return false, c.cmdMem(args)
	case "break", "b":
		return false, c.cmdBreak(args)
	case "clear":
		return false, c.cmdClear(args)
	case "history", "h":
		c.cmdHistory()
	case "keyboard", "k":
		return false, c.cmdKeyboard()
	default:
		return false, fmt.Errorf("unknown command %q (try 'help')", cmd)
	}
	return false, nil
}

func (c *Console) printHelp() {
	fmt.Println("commands:")
	fmt.Println("  step [n]        execute n instructions (default 1)")
	fmt.Println("  continue        run until a breakpoint or error")
	fmt.Println("  regs            print PC and R0-R15")
	fmt.Println("  mem <addr>      read one word at addr (hex, optional 0x)")
	fmt.Println("  break <addr>    set a breakpoint")
	fmt.Println("  clear <addr>    clear a breakpoint")
	fmt.Println("  history         dump the instruction history ring")
	fmt.Println("  keyboard        bridge the controlling terminal to KeyboardRx (Ctrl-D to exit)")
	fmt.Println("  quit            exit the console")
}

func (c *Console) cmdStep(args []string) error {
	n := 1
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("step: %w", err)
		}
		n = v
	}
	did, err := c.term.StepLoop(n)
	fmt.Printf("executed %d instruction(s)\n", did)
	return err
}

func (c *Console) cmdContinue() error {
	for {
		pc := c.term.GetPC()
		if c.breaks[pc] {
			fmt.Printf("breakpoint at %#08x\n", pc)
			return nil
		}
		if err := c.term.Step(); err != nil {
			return err
		}
	}
}

func (c *Console) cmdRegs() {
	fmt.Printf("PC = %#08x\n", c.term.GetPC())
	for i := 0; i < 16; i++ {
		fmt.Printf("R%-2d = %#08x", i, c.term.GetRegister(i))
		if i%4 == 3 {
			fmt.Println()
		} else {
			fmt.Print("  ")
		}
	}
}

func (c *Console) cmdMem(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: mem <addr>")
	}
	addr, err := parseAddr(args[0])
	if err != nil {
		return err
	}
	v, err := c.term.ReadWord(addr)
	if err != nil {
		return err
	}
	fmt.Printf("[%#08x] = %#08x\n", addr, v)
	return nil
}

func (c *Console) cmdBreak(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: break <addr>")
	}
	addr, err := parseAddr(args[0])
	if err != nil {
		return err
	}
	c.breaks[addr] = true
	fmt.Printf("breakpoint set at %#08x\n", addr)
	return nil
}

func (c *Console) cmdClear(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: clear <addr>")
	}
	addr, err := parseAddr(args[0])
	if err != nil {
		return err
	}
	delete(c.breaks, addr)
	return nil
}

func (c *Console) cmdHistory() {
	for _, e := range c.term.History() {
		fmt.Printf("%#08x  %-8s op=%#04x\n", e.PC, e.Name, e.Opcode)
	}
}

// cmdKeyboard puts the controlling terminal into raw mode and
// forwards every keystroke to terminal.KeyboardRx one byte at a
// time, so firmware sees individual key presses rather than
// line-buffered input. Grounded on IntuitionAmiga-IntuitionEngine's
// terminal_host.go use of term.MakeRaw/term.Restore for the same
// pattern.
func (c *Console) cmdKeyboard() error {
	fd := int(os.Stdin.Fd())
	old, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("keyboard: %w", err)
	}
	defer term.Restore(fd, old)

	fmt.Print("-- keyboard bridge active, Ctrl-D to exit --\r\n")
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if n > 0 {
			if buf[0] == 0x04 { // Ctrl-D
				break
			}
			c.term.KeyboardRx(buf[0])
		}
		if err != nil {
			break
		}
	}
	return nil
}

func parseAddr(s string) (uint32, error) {
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("bad address %q: %w", s, err)
	}
	return uint32(v), nil
}
