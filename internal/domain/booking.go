package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BookingStatus is not a state machine; any status may follow any other.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusAccepted  BookingStatus = "accepted"
	BookingStatusDeclined  BookingStatus = "declined"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// GuestCustomerID is stored when a booking is made without a known customer.
const GuestCustomerID = "guest"

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusAccepted, BookingStatusDeclined,
		BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

type Booking struct {
	ID            string        `json:"id"`
	ProviderID    string        `json:"providerId"`
	ProviderName  string        `json:"providerName"`
	ProviderEmail string        `json:"providerEmail"`
	CustomerID    string        `json:"customerId"`
	CustomerName  string        `json:"customerName"`
	CustomerEmail string        `json:"customerEmail"`
	CustomerPhone string        `json:"customerPhone"`
	ServiceType   string        `json:"serviceType"`
	StartDate     string        `json:"startDate"`
	EndDate       string        `json:"endDate"`
	NumberOfDogs  int           `json:"numberOfDogs"`
	DogDetails    string        `json:"dogDetails,omitempty"`
	Message       string        `json:"message,omitempty"`
	Status        BookingStatus `json:"status"`
	CreatedAt     string        `json:"createdAt"`
}

// NewBooking is a booking payload before the store assigns id, status and creation time.
type NewBooking struct {
	ProviderID    string
	ProviderName  string
	ProviderEmail string
	CustomerID    string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	ServiceType   string
	StartDate     string
	EndDate       string
	NumberOfDogs  int
	DogDetails    string
	Message       string
}

// Materialize turns the payload into a pending booking stamped at now.
func (n NewBooking) Materialize(now time.Time) Booking {
	return Booking{
		ID:            NewBookingID(now),
		ProviderID:    n.ProviderID,
		ProviderName:  n.ProviderName,
		ProviderEmail: n.ProviderEmail,
		CustomerID:    n.CustomerID,
		CustomerName:  n.CustomerName,
		CustomerEmail: n.CustomerEmail,
		CustomerPhone: n.CustomerPhone,
		ServiceType:   n.ServiceType,
		StartDate:     n.StartDate,
		EndDate:       n.EndDate,
		NumberOfDogs:  n.NumberOfDogs,
		DogDetails:    n.DogDetails,
		Message:       n.Message,
		Status:        BookingStatusPending,
		CreatedAt:     now.UTC().Format(time.RFC3339Nano),
	}
}

// NewBookingID returns booking_<unix millis>_<9 random chars>.
func NewBookingID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("booking_%d_%s", now.UnixMilli(), suffix)
}
