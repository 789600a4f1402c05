package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"residence-hub/internal/auth"
	"residence-hub/internal/events"
	"residence-hub/internal/models"
)

// Tx is the view of storage available while the amenity is locked.
type Tx interface {
	HasConflict(ctx context.Context, s Slot) (bool, error)
	Insert(ctx context.Context, r *models.Reservation) error
}

type Store interface {
	HasConflict(ctx context.Context, s Slot) (bool, error)
	ListConfirmed(ctx context.Context, q ListQuery) ([]models.Reservation, error)

	// Serialize runs fn in one transaction holding an exclusive lock on the
	// amenity, so check and insert cannot interleave with another booking
	// for the same amenity.
	Serialize(ctx context.Context, amenityID uint, fn func(tx Tx) error) error
}

// ListQuery filters confirmed reservations. Zero values mean no bound.
type ListQuery struct {
	OwnerID uint
	From    time.Time
	To      time.Time
}

type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type AuditFunc func(userID uint, entity string, entityID uint, action, details string)

type Service struct {
	store  Store
	pub    Publisher
	audit  AuditFunc
	loc    *time.Location
	tracer trace.Tracer
}

// NewService wires the booking workflow. pub and audit may be nil.
func NewService(store Store, pub Publisher, audit AuditFunc, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		store:  store,
		pub:    pub,
		audit:  audit,
		loc:    loc,
		tracer: otel.Tracer("residence-hub/booking"),
	}
}

func (s *Service) Location() *time.Location { return s.loc }

// HasConflict reports whether slot intersects a confirmed reservation of the
// same amenity on the same date.
func (s *Service) HasConflict(ctx context.Context, slot Slot) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "booking.HasConflict", trace.WithAttributes(
		attribute.Int64("amenity.id", int64(slot.AmenityID)),
	))
	defer span.End()

	ok, err := s.store.HasConflict(ctx, slot)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return false, &StorageError{Op: "conflict check", Err: err}
	}
	return ok, nil
}

// Create validates req, then checks and inserts under the amenity lock.
func (s *Service) Create(ctx context.Context, id *auth.Identity, req Request) (*models.Reservation, error) {
	if id == nil || id.UserID == 0 {
		return nil, ErrUnauthorized
	}

	slot, err := req.Slot(s.loc)
	if err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "booking.Create", trace.WithAttributes(
		attribute.Int64("amenity.id", int64(slot.AmenityID)),
		attribute.Int64("user.id", int64(id.UserID)),
		attribute.String("date", slot.Date.Format(dateLayout)),
	))
	defer span.End()

	res := &models.Reservation{
		UserID:    id.UserID,
		AmenityID: slot.AmenityID,
		Date:      slot.Date,
		StartTime: slot.Start,
		EndTime:   slot.End,
		Status:    models.ReservationConfirmed,
	}

	err = s.store.Serialize(ctx, slot.AmenityID, func(tx Tx) error {
		conflict, err := tx.HasConflict(ctx, slot)
		if err != nil {
			return err
		}
		if conflict {
			return ErrConflict
		}
		return tx.Insert(ctx, res)
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())

		var verr *ValidationError
		if errors.Is(err, ErrConflict) || errors.As(err, &verr) {
			return nil, err
		}
		log.Printf("booking: create reservation amenity=%d user=%d: %v", slot.AmenityID, id.UserID, err)
		return nil, &StorageError{Op: "create reservation", Err: err}
	}

	if s.audit != nil {
		s.audit(id.UserID, "reservation", res.ID, "create", fmt.Sprintf("Reserva %s %s-%s (instalación %d)",
			slot.Date.Format(dateLayout), slot.Start.Format(timeLayout), slot.End.Format(timeLayout), slot.AmenityID))
	}
	if s.pub != nil {
		err := s.pub.PublishJSON(ctx, events.RKReservationCreated, events.ReservationCreated{
			ReservationID: res.ID,
			UserID:        res.UserID,
			AmenityID:     res.AmenityID,
			Start:         res.StartTime.Unix(),
			End:           res.EndTime.Unix(),
		})
		if err != nil {
			log.Printf("booking: publish reservation.created: %v", err)
		}
	}

	return res, nil
}

// ListVisible returns the confirmed reservations id may see, by date.
func (s *Service) ListVisible(ctx context.Context, id *auth.Identity, from time.Time) ([]models.Reservation, error) {
	if id == nil || id.UserID == 0 {
		return nil, ErrUnauthorized
	}

	q := ListQuery{From: from}
	if !id.Role.SeesAllReservations() {
		q.OwnerID = id.UserID
	}

	out, err := s.store.ListConfirmed(ctx, q)
	if err != nil {
		return nil, &StorageError{Op: "list reservations", Err: err}
	}
	return out, nil
}

// Occupancy lists every confirmed reservation in [from, to] regardless of owner.
func (s *Service) Occupancy(ctx context.Context, from, to time.Time) ([]models.Reservation, error) {
	out, err := s.store.ListConfirmed(ctx, ListQuery{From: from, To: to})
	if err != nil {
		return nil, &StorageError{Op: "list occupancy", Err: err}
	}
	return out, nil
}
