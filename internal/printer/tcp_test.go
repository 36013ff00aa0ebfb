package printer

import (
	"bytes"
	"io"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlaolanches/printer-server/internal/receipt"
)

func TestSubmitReplacesPreviousJob(t *testing.T) {
	d := NewTCPDevice("127.0.0.1:1")

	require.NoError(t, d.Submit([]receipt.Instruction{receipt.Line("primeira via")}))
	require.NoError(t, d.Submit([]receipt.Instruction{receipt.Line("segunda via")}))

	assert.Equal(t, Encode([]receipt.Instruction{receipt.Line("segunda via")}), d.pending)
}

func TestExecuteRetrySendsReceiptOnce(t *testing.T) {
	// Reserve an address, then close the listener so the first attempt is
	// refused like an offline printer.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	d := NewTCPDevice(addr)
	job := []receipt.Instruction{receipt.Line("Total: R$ 30.00"), receipt.Cut()}

	require.NoError(t, d.Submit(job))
	require.Error(t, d.Execute())

	// Printer back online on the same address.
	ln, err = net.Listen("tcp", addr)
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			received <- nil
			return
		}
		defer conn.Close()
		data, _ := io.ReadAll(conn)
		received <- data
	}()

	require.NoError(t, d.Submit(job))
	require.NoError(t, d.Execute())

	data := <-received
	require.NotNil(t, data)
	assert.Equal(t, 1, bytes.Count(data, escFeedCut), "operator retry must emit exactly one receipt")
	assert.Equal(t, 1, bytes.Count(data, []byte("Total: R$ 30.00")))
}
