// Package printer is the device boundary: an interface shaped after the
// capabilities the dispatcher needs, plus the ESC/POS encoding and the
// TCP adapter for network thermal printers.
package printer

import "github.com/carlaolanches/printer-server/internal/receipt"

// Device abstracts one physical receipt printer.
//
// The device has no concurrency support; callers must serialise access.
// The dispatcher is the only component holding a Device.
type Device interface {
	// IsConnected probes reachability. Advisory only: a true result does
	// not guarantee the next Execute will succeed.
	IsConnected() bool

	// Submit buffers an instruction sequence as the next job, replacing
	// any job left over from a failed Execute. Callers re-render and
	// re-submit when they retry.
	Submit(ins []receipt.Instruction) error

	// Execute flushes the submitted job to the physical device.
	Execute() error
}
