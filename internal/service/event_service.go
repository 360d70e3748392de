package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/verluxstands/verlux-api/internal/dto"
	"github.com/verluxstands/verlux-api/internal/models"
	appErrors "github.com/verluxstands/verlux-api/pkg/errors"
	"github.com/verluxstands/verlux-api/pkg/export"
)

const dateOnly = "2006-01-02"

// ParseEventDate accepts a calendar date or an RFC3339 timestamp. A date-only
// value resolves to the start of that day in UTC, or to its last instant when
// endOfDay is set.
func ParseEventDate(raw string, endOfDay bool) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(dateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", raw)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

// DeriveEventStatus evaluates cancelled, completed, upcoming and ongoing in
// that order. Unparseable dates count as ongoing.
func DeriveEventStatus(startDate, endDate string, cancelled bool, now time.Time) models.EventStatus {
	if cancelled {
		return models.EventCancelled
	}
	if end, err := ParseEventDate(endDate, true); err == nil && end.Before(now) {
		return models.EventCompleted
	}
	if start, err := ParseEventDate(startDate, false); err == nil && start.After(now) {
		return models.EventUpcoming
	}
	return models.EventOngoing
}

var statusRank = map[models.EventStatus]int{
	models.EventUpcoming:  0,
	models.EventOngoing:   1,
	models.EventCompleted: 2,
	models.EventCancelled: 3,
}

// SortEventsForCalendar orders upcoming events by start ascending, then
// ongoing ones, then completed by end descending, then cancelled.
func SortEventsForCalendar(events []models.EventView) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if statusRank[a.Status] != statusRank[b.Status] {
			return statusRank[a.Status] < statusRank[b.Status]
		}
		switch a.Status {
		case models.EventUpcoming, models.EventOngoing:
			as, _ := ParseEventDate(a.StartDate, false)
			bs, _ := ParseEventDate(b.StartDate, false)
			return as.Before(bs)
		case models.EventCompleted:
			ae, _ := ParseEventDate(a.EndDate, true)
			be, _ := ParseEventDate(b.EndDate, true)
			return ae.After(be)
		}
		return false
	})
}

type eventRepository interface {
	Get(ctx context.Context, id string) (*models.Event, error)
	List(ctx context.Context) ([]models.Event, error)
	Exists(ctx context.Context, id string) (bool, error)
	Put(ctx context.Context, event models.Event) error
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

// EventService manages the trade show calendar.
type EventService struct {
	repo      eventRepository
	exporters map[string]export.Exporter
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewEventService constructs the events registry.
func NewEventService(repo eventRepository, validate *validator.Validate, logger *zap.Logger) *EventService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &EventService{
		repo: repo,
		exporters: map[string]export.Exporter{
			"csv": export.NewCSVExporter(),
			"pdf": export.NewPDFExporter(),
		},
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
	mustRegisterValidation(svc.validator, "eventdate", func(fl validator.FieldLevel) bool {
		_, err := ParseEventDate(fl.Field().String(), false)
		return err == nil
	})
	return svc
}

func (s *EventService) view(e models.Event) models.EventView {
	return models.EventView{Event: e, Status: DeriveEventStatus(e.StartDate, e.EndDate, e.IsCancelled, s.now())}
}

// Create stores a new event.
func (s *EventService) Create(ctx context.Context, req dto.CreateEventRequest) (*models.EventView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}
	if err := checkEventRange(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	event := models.Event{
		ID:              uuid.NewString(),
		Category:        strings.TrimSpace(req.Category),
		Title:           strings.TrimSpace(req.Title),
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Location:        strings.TrimSpace(req.Location),
		Attendees:       req.Attendees,
		BookingDeadline: req.BookingDeadline,
		Image:           req.Image,
		CreatedAt:       s.now().UTC(),
	}
	if err := s.repo.Put(ctx, event); err != nil {
		return nil, err
	}
	s.logger.Info("event created", zap.String("id", event.ID), zap.String("title", event.Title))
	v := s.view(event)
	return &v, nil
}

// Get returns one event with its status.
func (s *EventService) Get(ctx context.Context, id string) (*models.EventView, error) {
	event, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	v := s.view(*event)
	return &v, nil
}

// List returns events in calendar order, optionally filtered.
func (s *EventService) List(ctx context.Context, filter models.EventFilter) ([]models.EventView, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.EventView, 0, len(events))
	for _, e := range events {
		v := s.view(e)
		if filter.Status != "" && v.Status != filter.Status {
			continue
		}
		if filter.Category != "" && !strings.EqualFold(v.Category, filter.Category) {
			continue
		}
		out = append(out, v)
	}
	SortEventsForCalendar(out)
	return out, nil
}

// Update merges the sent fields and stamps updatedAt. id and createdAt are
// never changed.
func (s *EventService) Update(ctx context.Context, id string, req dto.UpdateEventRequest) (*models.EventView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	start, end := current.StartDate, current.EndDate
	put := func(key string, v *string) {
		if v != nil {
			fields[key] = strings.TrimSpace(*v)
		}
	}
	put("category", req.Category)
	put("title", req.Title)
	put("location", req.Location)
	put("attendees", req.Attendees)
	put("bookingDeadline", req.BookingDeadline)
	put("image", req.Image)
	if req.StartDate != nil {
		start = *req.StartDate
		fields["startDate"] = start
	}
	if req.EndDate != nil {
		end = *req.EndDate
		fields["endDate"] = end
	}
	if req.IsCancelled != nil {
		fields["isCancelled"] = *req.IsCancelled
	}
	if err := checkEventRange(start, end); err != nil {
		return nil, err
	}
	fields["updatedAt"] = s.now().UTC()

	if err := s.repo.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Cancel flags the event as cancelled.
func (s *EventService) Cancel(ctx context.Context, id string) (*models.EventView, error) {
	cancelled := true
	return s.Update(ctx, id, dto.UpdateEventRequest{IsCancelled: &cancelled})
}

// Delete removes the event.
func (s *EventService) Delete(ctx context.Context, id string) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return appErrors.Clone(appErrors.ErrNotFound, "event not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("event deleted", zap.String("id", id))
	return nil
}

// ExportResult is a rendered event export.
type ExportResult struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Export renders the calendar as csv or pdf.
func (s *EventService) Export(ctx context.Context, format string, filter models.EventFilter) (*ExportResult, error) {
	exporter, ok := s.exporters[strings.ToLower(format)]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
	events, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	headers := []string{"Title", "Category", "Start", "End", "Location", "Attendees", "Booking Deadline", "Status"}
	rows := make([]map[string]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, map[string]string{
			"Title":            e.Title,
			"Category":         e.Category,
			"Start":            e.StartDate,
			"End":              e.EndDate,
			"Location":         e.Location,
			"Attendees":        e.Attendees,
			"Booking Deadline": e.BookingDeadline,
			"Status":           string(e.Status),
		})
	}
	body, err := exporter.Render(export.Dataset{Title: "Trade Show Calendar", Headers: headers, Rows: rows})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return &ExportResult{
		Filename:    fmt.Sprintf("events-%s.%s", s.now().UTC().Format("20060102"), exporter.Extension()),
		ContentType: exporter.ContentType(),
		Body:        body,
	}, nil
}

func checkEventRange(startDate, endDate string) error {
	start, err := ParseEventDate(startDate, false)
	if err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "invalid startDate")
	}
	end, err := ParseEventDate(endDate, true)
	if err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "invalid endDate")
	}
	if end.Before(start) {
		return appErrors.Clone(appErrors.ErrValidation, "endDate must not be before startDate")
	}
	return nil
}
