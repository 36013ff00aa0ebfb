// Package dispatch owns the exclusive right to talk to the printer.
//
// All print requests funnel through a single worker goroutine that holds
// the device: admission is FIFO over an unbuffered channel, so at most one
// print execution is in flight system-wide and requests are served in the
// order they arrive. The device's instruction stream cannot interleave.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/carlaolanches/printer-server/internal/domain"
	"github.com/carlaolanches/printer-server/internal/printer"
	"github.com/carlaolanches/printer-server/internal/receipt"
	"github.com/carlaolanches/printer-server/internal/store"
)

// ErrOrderNotFound is returned by PrintOrder for unknown ids, before the
// request ever reaches the device.
var ErrOrderNotFound = errors.New("order not found")

// PrintError reports a failed print execution with the device's reason.
// The order record is left untouched, so the operation is retryable.
type PrintError struct {
	Reason string
	cause  error
}

func (e *PrintError) Error() string { return "print failed: " + e.Reason }
func (e *PrintError) Unwrap() error { return e.cause }

// Result describes a completed print execution.
type Result struct {
	Record domain.OrderRecord

	// Reprinted is true when the receipt went to the device but the record
	// was already impresso (operator override). Status is unchanged in
	// that case: the pendente -> impresso transition happens exactly once.
	Reprinted bool
}

type printRequest struct {
	id   string
	resp chan printResponse
}

type printResponse struct {
	result Result
	err    error
}

// Dispatcher serialises access to the printer and drives one print
// attempt to completion.
type Dispatcher struct {
	store    store.OrderStore
	device   printer.Device
	requests chan printRequest
}

func New(st store.OrderStore, dev printer.Device) *Dispatcher {
	return &Dispatcher{
		store:    st,
		device:   dev,
		requests: make(chan printRequest),
	}
}

// Run consumes print requests until ctx is cancelled. It must be running
// for PrintOrder to make progress; start it once at boot:
//
//	go disp.Run(ctx)
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-d.requests:
			result, err := d.execute(ctx, req.id)
			req.resp <- printResponse{result: result, err: err}
		}
	}
}

// PrintOrder prints the order with the given id.
//
// The id is checked before the request is admitted, so a typo'd id fails
// fast with ErrOrderNotFound and never touches the device. The ctx
// deadline applies only while waiting for admission; once the worker has
// accepted the request there is no cancellation — the cut is irreversible,
// so the call blocks until the execution finishes either way.
func (d *Dispatcher) PrintOrder(ctx context.Context, id string) (Result, error) {
	if _, err := d.store.Get(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Result{}, ErrOrderNotFound
		}
		return Result{}, fmt.Errorf("store.Get: %w", err)
	}

	req := printRequest{id: id, resp: make(chan printResponse, 1)}
	select {
	case d.requests <- req:
	case <-ctx.Done():
		return Result{}, &PrintError{Reason: "timeout waiting for printer", cause: ctx.Err()}
	}

	resp := <-req.resp
	return resp.result, resp.err
}

// execute runs one print attempt. Called only from the worker goroutine,
// which is what guarantees exclusive device access. ctx here is the
// worker's lifetime context, not the caller's: a caller hanging up must
// not abort a job that already reached the device.
func (d *Dispatcher) execute(ctx context.Context, id string) (Result, error) {
	rec, err := d.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Result{}, ErrOrderNotFound
		}
		return Result{}, fmt.Errorf("store.Get: %w", err)
	}

	// Advisory probe, mirrors the behaviour operators are used to:
	// logged, never blocking — Execute is the real test.
	slog.InfoContext(ctx, "printer connectivity probe",
		"order_id", id, "connected", d.device.IsConnected())

	ins := receipt.Render(rec)
	if err := d.device.Submit(ins); err != nil {
		return Result{}, &PrintError{Reason: err.Error(), cause: err}
	}
	if err := d.device.Execute(); err != nil {
		slog.ErrorContext(ctx, "print execution failed", "order_id", id, "error", err)
		return Result{}, &PrintError{Reason: err.Error(), cause: err}
	}

	updated, err := d.store.MarkPrinted(ctx, id)
	if errors.Is(err, store.ErrAlreadyPrinted) {
		// Reprint: receipt is out, record keeps its original printed_at.
		slog.InfoContext(ctx, "order reprinted", "order_id", id)
		return Result{Record: rec, Reprinted: true}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("store.MarkPrinted: %w", err)
	}

	slog.InfoContext(ctx, "order printed", "order_id", id)
	return Result{Record: updated}, nil
}
