package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.cfg")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeTemp(t, "# nothing but a comment\n\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Defaults()
	if cfg != want {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeTemp(t, `
romversion = 1
ramsize = 0x80000
console = /dev/ttyUSB0
baud = 19200
logfile = "dmd.log"
nvram = dmd.nvram
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ROMVersion != 1 {
		t.Errorf("ROMVersion = %d, want 1", cfg.ROMVersion)
	}
	if cfg.RAMSize != 0x80000 {
		t.Errorf("RAMSize = %#x, want 0x80000", cfg.RAMSize)
	}
	if cfg.ConsolePort != "/dev/ttyUSB0" {
		t.Errorf("ConsolePort = %q", cfg.ConsolePort)
	}
	if cfg.BaudRate != 19200 {
		t.Errorf("BaudRate = %d, want 19200", cfg.BaudRate)
	}
	if cfg.LogFile != "dmd.log" {
		t.Errorf("LogFile = %q, want dmd.log", cfg.LogFile)
	}
	if cfg.NVRAMFile != "dmd.nvram" {
		t.Errorf("NVRAMFile = %q, want dmd.nvram", cfg.NVRAMFile)
	}
}

func TestLoadUnknownKey(t *testing.T) {
	path := writeTemp(t, "bogus = 1\n")
	if _, err := Load(path); err == nil {
		t.Error("Load() with unknown key: want error, got nil")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.cfg")); err == nil {
		t.Error("Load() on missing file: want error, got nil")
	}
}
