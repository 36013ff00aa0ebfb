package domain

import "errors"

// Status is the lifecycle state of an order record.
//
// The transition graph is a single edge: pendente -> impresso, applied once
// by a successful print execution. A failed print leaves the record in
// StatusPending so the operator can retry. The Portuguese literals are kept
// because they are persisted and shown on the admin panel.
type Status string

const (
	StatusPending Status = "pendente"
	StatusPrinted Status = "impresso"
)

var validStatuses = map[Status]struct{}{
	StatusPending: {},
	StatusPrinted: {},
}

// ToStatus converts a persisted string back into a Status, rejecting
// anything outside the known set.
func ToStatus(s string) (Status, error) {
	status := Status(s)
	if _, ok := validStatuses[status]; ok {
		return status, nil
	}
	return "", errors.New("invalid order status")
}
