package domain

import "strings"

// Currency of every price in the system.
const Currency = "EUR"

type ScheduleStatus string

const (
	ScheduleScheduled ScheduleStatus = "scheduled"
	ScheduleInTransit ScheduleStatus = "in_transit"
	ScheduleCompleted ScheduleStatus = "completed"
	ScheduleCancelled ScheduleStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// bookingTransitions lists the allowed next states per booking status.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingConfirmed: {BookingCancelled, BookingCompleted},
	BookingCancelled: {},
	BookingCompleted: {},
}

func ParseBookingStatus(raw string) (BookingStatus, error) {
	s := BookingStatus(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := bookingTransitions[s]; !ok {
		return "", ValidationError{Field: "status", Msg: "must be one of confirmed, cancelled, completed"}
	}
	return s, nil
}

// CanTransition reports whether a booking may move from one status to another.
// Re-applying the current status is accepted as a no-op.
func CanTransition(from, to BookingStatus) bool {
	if from == to {
		return true
	}
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type InquiryStatus string

const (
	InquiryNew        InquiryStatus = "new"
	InquiryInProgress InquiryStatus = "in_progress"
	InquiryResolved   InquiryStatus = "resolved"
)

func ParseInquiryStatus(raw string) (InquiryStatus, error) {
	s := InquiryStatus(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case InquiryNew, InquiryInProgress, InquiryResolved:
		return s, nil
	}
	return "", ValidationError{Field: "status", Msg: "must be one of new, in_progress, resolved"}
}

// RequestContext carries authenticated admin info when available.
type RequestContext struct {
	Subject string `json:"sub"`
	Role    string `json:"role"`
}
