// Package booking implements the appointment lifecycle: command and query
// objects, handlers that run inside a database transaction, and the
// post-commit notification hookup.
package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/durendeer/petcare/internal/domain"
	"github.com/shopspring/decimal"
)

// CreateAppointmentCommand is the write intent for booking a grooming
// appointment.
type CreateAppointmentCommand struct {
	UserId      int64
	PetId       int64
	ServiceId   int64
	ScheduledAt time.Time
	TotalPrice  decimal.Decimal
	Notes       string
}

// Validate checks the command preconditions. The schedule check is
// evaluated once, here; it is not re-checked at persistence time.
func (c CreateAppointmentCommand) Validate() error {
	var msgs []string
	if c.TotalPrice.IsNegative() {
		msgs = append(msgs, "total price must be positive")
	}
	if !c.ScheduledAt.After(time.Now()) {
		msgs = append(msgs, "scheduled date must be in the future")
	}
	if len(msgs) > 0 {
		return domain.NewValidationError(msgs...)
	}
	return nil
}

// Appointment builds the row to persist, always in pending status.
func (c CreateAppointmentCommand) Appointment() *domain.Appointment {
	return &domain.Appointment{
		UserId:      c.UserId,
		PetId:       c.PetId,
		ServiceId:   c.ServiceId,
		ScheduledAt: c.ScheduledAt,
		Status:      domain.StatusPending,
		Notes:       c.Notes,
		TotalPrice:  c.TotalPrice,
	}
}

// UpdateAppointmentStatusCommand is the write intent for a status
// transition. Notes is optional; nil leaves the stored notes untouched.
type UpdateAppointmentStatusCommand struct {
	AppointmentId int64
	Status        string
	Notes         *string
}

// Validate checks that the target status is one of the five literals.
// There is no adjacency table: any status may follow any other.
func (c UpdateAppointmentStatusCommand) Validate() error {
	if !domain.ValidAppointmentStatus(c.Status) {
		return domain.NewValidationError(fmt.Sprintf(
			"invalid status %q, valid options: %s",
			c.Status, strings.Join(domain.AppointmentStatuses, ", ")))
	}
	return nil
}

// Values returns the column updates for the command.
func (c UpdateAppointmentStatusCommand) Values() map[string]interface{} {
	values := map[string]interface{}{"status": c.Status}
	if c.Notes != nil {
		values["notes"] = *c.Notes
	}
	return values
}
