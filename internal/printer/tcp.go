package printer

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/carlaolanches/printer-server/internal/receipt"
)

const (
	defaultDialTimeout  = 5 * time.Second
	defaultWriteTimeout = 10 * time.Second
)

// TCPDevice talks to a network thermal printer over a raw socket (the
// usual port 9100 "JetDirect" listener on Epson-compatible printers).
//
// Submit only buffers; Execute dials, writes the encoded job in one
// connection and closes it. The printer keeps no session state between
// jobs, so connect-per-job is the most robust way to deal with the device
// dropping off the network between receipts.
type TCPDevice struct {
	addr string

	mu      sync.Mutex
	pending []byte // encoded bytes of the current job, set by Submit
}

var _ Device = (*TCPDevice)(nil)

func NewTCPDevice(addr string) *TCPDevice {
	return &TCPDevice{addr: addr}
}

// IsConnected probes the printer with a short dial.
func (d *TCPDevice) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", d.addr, defaultDialTimeout)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// Submit starts a fresh job, replacing anything left over from a failed
// Execute. The dispatcher re-renders on every attempt, so keeping stale
// bytes around would print the failed job again in front of the next one.
func (d *TCPDevice) Submit(ins []receipt.Instruction) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = Encode(ins)
	return nil
}

// Execute sends the buffered job to the printer.
func (d *TCPDevice) Execute() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.pending) == 0 {
		return nil
	}

	conn, err := net.DialTimeout("tcp", d.addr, defaultDialTimeout)
	if err != nil {
		return fmt.Errorf("printer: dial %s: %w", d.addr, err)
	}
	defer conn.Close()

	if err := conn.SetWriteDeadline(time.Now().Add(defaultWriteTimeout)); err != nil {
		return fmt.Errorf("printer: set deadline: %w", err)
	}
	if _, err := conn.Write(d.pending); err != nil {
		return fmt.Errorf("printer: write job: %w", err)
	}

	d.pending = nil
	return nil
}
