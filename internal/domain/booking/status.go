package booking

import "github.com/salonova/booking-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusIgnored   Status = "ignored"
	StatusCancelled Status = "cancelled"
	StatusDone      Status = "done"
)

func InitialStatus() Status {
	return StatusPending
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusIgnored, StatusCancelled, StatusDone:
		return true
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDone || s == StatusCancelled
}

// ===============================
// Transition table
// ===============================

var transitions = map[Status]map[Status]bool{
	StatusPending: {
		StatusAccepted:  true,
		StatusIgnored:   true,
		StatusCancelled: true,
	},
	StatusAccepted: {
		StatusDone:      true,
		StatusCancelled: true,
	},
	StatusIgnored: {
		StatusCancelled: true,
	},
}

// CanTransition validates a status change against the transition table.
// Terminal states have no outgoing edges.
func CanTransition(from, to Status) error {
	if !to.IsValid() {
		return httperr.ErrBusiness("invalid_status")
	}
	if !transitions[from][to] {
		return httperr.ErrBusiness("invalid_transition")
	}
	return nil
}

// ===============================
// Operation guards
// ===============================

// CanUpdate gates the owner's partial-update path.
func CanUpdate(current Status) error {
	if current.IsTerminal() {
		return httperr.ErrBusiness("appointment_locked")
	}
	return nil
}

func CanCancel(current Status) error {
	return CanTransition(current, StatusCancelled)
}

// CanDelete allows the hard-delete path only while no work is finished
// or in progress.
func CanDelete(current Status) error {
	if current == StatusAccepted || current == StatusDone {
		return httperr.ErrBusiness("appointment_locked")
	}
	return nil
}
