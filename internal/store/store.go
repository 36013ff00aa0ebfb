// Package store defines the port (interface) for the durable order
// registry. Implementations live in sub-packages (sqlite) or in this
// package (memory, used in tests and as a no-persistence fallback).
package store

import (
	"context"
	"errors"

	"github.com/carlaolanches/printer-server/internal/domain"
)

var (
	// ErrNotFound is returned when no record exists for the given id.
	ErrNotFound = errors.New("order not found")

	// ErrAlreadyPrinted is returned by MarkPrinted when the record has
	// already transitioned to impresso. It is an explicit signal, not a
	// silent no-op: the caller decides whether a reprint counts as success.
	ErrAlreadyPrinted = errors.New("order already printed")
)

// OrderStore is the single source of truth for order records.
//
// Create and MarkPrinted return only after the change is durably persisted.
// Both are atomic: two concurrent MarkPrinted calls for the same id resolve
// deterministically — one transition, one ErrAlreadyPrinted.
type OrderStore interface {
	// Create assigns a fresh id, sets status pendente, persists and
	// returns the stored record.
	Create(ctx context.Context, order domain.Order) (domain.OrderRecord, error)

	// Get returns the record for id, or ErrNotFound.
	Get(ctx context.Context, id string) (domain.OrderRecord, error)

	// List returns all records newest-first. Read-only.
	List(ctx context.Context) ([]domain.OrderRecord, error)

	// MarkPrinted transitions pendente -> impresso and stamps PrintedAt.
	// Fails with ErrNotFound for unknown ids and ErrAlreadyPrinted if the
	// transition already happened.
	MarkPrinted(ctx context.Context, id string) (domain.OrderRecord, error)
}
