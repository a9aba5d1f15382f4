package booking

import "agencydesk/internal/domain"

// transitions is the full lifecycle graph. Cancelled, completed and no-show
// are terminal; a rescheduled booking stays occupying and behaves like a
// confirmed one that has been moved.
var transitions = map[domain.BookingStatus][]domain.BookingStatus{
	domain.BookingPending: {
		domain.BookingConfirmed,
		domain.BookingCancelled,
		domain.BookingRescheduled,
	},
	domain.BookingConfirmed: {
		domain.BookingCancelled,
		domain.BookingRescheduled,
		domain.BookingCompleted,
		domain.BookingNoShow,
	},
	domain.BookingRescheduled: {
		domain.BookingConfirmed,
		domain.BookingCancelled,
		domain.BookingRescheduled,
		domain.BookingCompleted,
		domain.BookingNoShow,
	},
}

// CanTransition reports whether from -> to is a legal lifecycle step.
func CanTransition(from, to domain.BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
