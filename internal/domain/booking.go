package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCanceled  BookingStatus = "canceled"
)

func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCanceled:
		return BookingStatus(s), true
	default:
		return "", false
	}
}

type Booking struct {
	ID           int64         `json:"id"`
	CustomerName string        `json:"customer_name"`
	Email        string        `json:"email"`
	ServiceID    string        `json:"service_id"`
	ServiceTitle string        `json:"service_title"`
	Price        string        `json:"price"`
	Date         string        `json:"date"`
	Img          string        `json:"img"`
	Status       BookingStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

type BookingCreateReq struct {
	CustomerName string `json:"customer_name"`
	Email        string `json:"email"`
	ServiceID    string `json:"service_id"`
	ServiceTitle string `json:"service_title"`
	Price        string `json:"price"`
	Date         string `json:"date"`
	Img          string `json:"img"`
}

// IsOwner reports whether email matches the booking owner. Owner equality is
// an exact, case-sensitive string match.
func (b *Booking) IsOwner(email string) bool {
	return b.Email == email
}
