package dto

// CreateEventRequest creates an event. Dates are "2006-01-02" or RFC3339.
type CreateEventRequest struct {
	Category        string `json:"category" validate:"required,max=100"`
	Title           string `json:"title" validate:"required,max=200"`
	StartDate       string `json:"startDate" validate:"required,eventdate"`
	EndDate         string `json:"endDate" validate:"required,eventdate"`
	Location        string `json:"location" validate:"required,max=200"`
	Attendees       string `json:"attendees" validate:"omitempty,max=100"`
	BookingDeadline string `json:"bookingDeadline" validate:"omitempty,eventdate"`
	Image           string `json:"image" validate:"omitempty,max=500"`
}

// UpdateEventRequest partially updates an event.
type UpdateEventRequest struct {
	Category        *string `json:"category" validate:"omitempty,max=100"`
	Title           *string `json:"title" validate:"omitempty,max=200"`
	StartDate       *string `json:"startDate" validate:"omitempty,eventdate"`
	EndDate         *string `json:"endDate" validate:"omitempty,eventdate"`
	Location        *string `json:"location" validate:"omitempty,max=200"`
	Attendees       *string `json:"attendees" validate:"omitempty,max=100"`
	BookingDeadline *string `json:"bookingDeadline" validate:"omitempty,eventdate"`
	Image           *string `json:"image" validate:"omitempty,max=500"`
	IsCancelled     *bool   `json:"isCancelled"`
}
