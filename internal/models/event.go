package models

import "time"

// EventStatus is derived from dates and the cancelled flag; it is never stored.
type EventStatus string

const (
	EventUpcoming  EventStatus = "Upcoming"
	EventOngoing   EventStatus = "Ongoing"
	EventCompleted EventStatus = "Completed"
	EventCancelled EventStatus = "Cancelled"
)

// Event is the record stored at events/{id}. Dates keep the string form they
// were submitted in ("2006-01-02" or RFC3339).
type Event struct {
	ID              string     `json:"id"`
	Category        string     `json:"category"`
	Title           string     `json:"title"`
	StartDate       string     `json:"startDate"`
	EndDate         string     `json:"endDate"`
	Location        string     `json:"location"`
	Attendees       string     `json:"attendees"`
	BookingDeadline string     `json:"bookingDeadline"`
	Image           string     `json:"image"`
	IsCancelled     bool       `json:"isCancelled"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}

// EventView decorates an event with its derived status.
type EventView struct {
	Event
	Status EventStatus `json:"status"`
}

// EventFilter narrows event listings.
type EventFilter struct {
	Status   EventStatus
	Category string
}
