// Package serialbridge pumps bytes between a real serial device (or
// PTY) and the emulator's RS-232 channel, so the DUART's port 0 can
// be wired to genuine external hardware or a host pty instead of
// only an in-process byte queue. Grounded on Daedaluz-goserial's
// Open/Read/Write/MakeRaw API (port_linux.go).
package serialbridge

import (
	"fmt"
	"sync"
	"time"

	serial "github.com/daedaluz/goserial"

	"github.com/sethm/dmd-core/terminal"
)

// pollInterval bounds how long a blocked Read can delay Stop.
const pollInterval = 50 * time.Millisecond

// Bridge couples one open serial port to one terminal.Terminal's
// RS-232 channel.
type Bridge struct {
	port *serial.Port
	term *terminal.Terminal

	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
}

// Open opens path (a device node or PTY) in raw mode and returns a
// Bridge ready to Run.
func Open(path string, t *terminal.Terminal) (*Bridge, error) {
	opts := serial.NewOptions().SetReadTimeout(pollInterval)
	port, err := serial.Open(path, opts)
	if err != nil {
		return nil, fmt.Errorf("serialbridge: open %s: %w", path, err)
	}
	if err := port.MakeRaw(); err != nil {
		port.Close()
		return nil, fmt.Errorf("serialbridge: make raw %s: %w", path, err)
	}
	return &Bridge{
		port:   port,
		term:   t,
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}, nil
}

// Run pumps bytes in both directions until Stop is called. It blocks;
// callers typically invoke it with "go bridge.Run()".
func (b *Bridge) Run() {
	defer close(b.done)
	go b.pumpOut()
	b.pumpIn()
}

// pumpIn reads from the serial port and enqueues each byte on the
// emulator's RS-232 receive queue (host -> firmware).
func (b *Bridge) pumpIn() {
	buf := make([]byte, 256)
	for {
		select {
		case <-b.stopCh:
			return
		default:
		}
		n, err := b.port.Read(buf)
		for i := 0; i < n; i++ {
			b.term.RS232Rx(buf[i])
		}
		if err != nil {
			continue // timeout or transient error; keep polling stopCh
		}
	}
}

// pumpOut drains the emulator's transmitted RS-232 bytes and writes
// them to the serial port (firmware -> host).
func (b *Bridge) pumpOut() {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-b.stopCh:
			return
		case <-ticker.C:
			for {
				c, ok := b.term.RS232Tx()
				if !ok {
					break
				}
				if _, err := b.port.Write([]byte{c}); err != nil {
					return
				}
			}
		}
	}
}

// Stop closes the serial port and waits for Run to return.
func (b *Bridge) Stop() {
	b.stopOnce.Do(func() {
		close(b.stopCh)
		b.port.Close()
	})
	<-b.done
}
