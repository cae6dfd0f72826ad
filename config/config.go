// Package config parses the emulator's startup configuration file: a
// small set of scalar knobs (ROM version, RAM size, console/serial
// wiring, NVRAM persistence path), not a device registry — a line
// scanner over key/value pairs, '#'-comments, blank lines ignored.
// The bus has a fixed, closed device set (§4.2), so there is no
// model-registration content to parse here.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the handful of startup knobs the WE32100 bus and
// terminal façade need. Start from Defaults(); the zero value leaves
// ROMVersion, RAMSize and BaudRate at 0.
type Config struct {
	ROMVersion  int    // passed to terminal.Reset
	RAMSize     uint32 // bytes, §6's RAM region is up to 1 MiB
	ConsolePort string // device/PTY path for command/serialbridge, "" = none
	BaudRate    int    // initial RS-232 baud, informational only
	LogFile     string
	NVRAMFile   string
}

// Defaults returns the configuration used when no file is given or a
// key is left unset.
func Defaults() Config {
	return Config{
		ROMVersion: 2,
		RAMSize:    1024 * 1024,
		BaudRate:   9600,
	}
}

// Load reads a `key = value` configuration file. '#' starts a
// comment that runs to end of line; blank lines are ignored. Unknown
// keys are rejected so typos in a hand-edited config file are caught
// at startup rather than silently ignored.
func Load(path string) (Config, error) {
	cfg := Defaults()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := cfg.applyLine(line); err != nil {
			return cfg, fmt.Errorf("config: line %d: %w", lineNumber, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyLine(line string) error {
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return fmt.Errorf("expected 'key = value', got %q", line)
	}
	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.TrimSpace(value)
	value = strings.Trim(value, `"`)

	switch key {
	case "romversion":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("romversion: %w", err)
		}
		c.ROMVersion = n
	case "ramsize":
		n, err := strconv.ParseUint(value, 0, 32)
		if err != nil {
			return fmt.Errorf("ramsize: %w", err)
		}
		c.RAMSize = uint32(n)
	case "console":
		c.ConsolePort = value
	case "baud":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("baud: %w", err)
		}
		c.BaudRate = n
	case "logfile":
		c.LogFile = value
	case "nvram":
		c.NVRAMFile = value
	default:
		return fmt.Errorf("unknown option %q", key)
	}
	return nil
}
