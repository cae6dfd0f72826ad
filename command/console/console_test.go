package console

import (
	"testing"

	"github.com/sethm/dmd-core/terminal"
)

func newTestConsole(t *testing.T) *Console {
	t.Helper()
	term := terminal.New(0x10000)
	if err := term.Reset(2); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	return New(term)
}

func TestDispatchStepReportsHalt(t *testing.T) {
	c := newTestConsole(t)
	quit, err := c.dispatch("step")
	if quit {
		t.Fatal("dispatch(step) requested quit")
	}
	if err == nil {
		t.Fatal("dispatch(step) into placeholder HALT: want error, got nil")
	}
}

func TestDispatchBreakAndClear(t *testing.T) {
	c := newTestConsole(t)
	if _, err := c.dispatch("break 0x200"); err != nil {
		t.Fatalf("break: %v", err)
	}
	if !c.breaks[0x200] {
		t.Fatal("breakpoint not recorded at 0x200")
	}
	if _, err := c.dispatch("clear 0x200"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if c.breaks[0x200] {
		t.Fatal("breakpoint still present after clear")
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	c := newTestConsole(t)
	if _, err := c.dispatch("frobnicate"); err == nil {
		t.Fatal("dispatch(unknown command): want error, got nil")
	}
}

func TestDispatchQuit(t *testing.T) {
	c := newTestConsole(t)
	quit, err := c.dispatch("quit")
	if err != nil {
		t.Fatalf("quit: %v", err)
	}
	if !quit {
		t.Fatal("dispatch(quit) did not request quit")
	}
}

func TestDispatchMemBadAddress(t *testing.T) {
	c := newTestConsole(t)
	if _, err := c.dispatch("mem not-hex"); err == nil {
		t.Fatal("dispatch(mem not-hex): want error, got nil")
	}
}

func TestDispatchEmptyLine(t *testing.T) {
	c := newTestConsole(t)
	quit, err := c.dispatch("")
	if err != nil || quit {
		t.Fatalf("dispatch(\"\") = (%v, %v), want (false, nil)", quit, err)
	}
}
