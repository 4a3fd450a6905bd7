package booking

import (
	"context"

	"github.com/asaskevich/EventBus"
	"github.com/durendeer/petcare/internal/domain"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CreateAppointmentHandler persists new appointments. The write runs inside
// a transaction; the created event fires only after the commit, so a failed
// or slow notification can never roll back the row.
type CreateAppointmentHandler struct {
	db  *gorm.DB
	bus EventBus.Bus
}

func NewCreateAppointmentHandler(db *gorm.DB, bus EventBus.Bus) *CreateAppointmentHandler {
	return &CreateAppointmentHandler{db: db, bus: bus}
}

func (h *CreateAppointmentHandler) Handle(ctx context.Context, cmd CreateAppointmentCommand) (*domain.Appointment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var user domain.SysUser
	appt := cmd.Appointment()
	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, cmd.UserId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		return tx.Create(appt).Error
	})
	if err != nil {
		return nil, err
	}

	if h.bus != nil {
		h.bus.Publish(TopicAppointmentCreated, AppointmentEvent{
			Appointment: appt,
			Email:       user.Email,
		})
	}
	return appt, nil
}

// UpdateAppointmentStatusHandler applies status transitions. Validation
// happens before the transaction, so an invalid status never touches the
// stored row.
type UpdateAppointmentStatusHandler struct {
	db  *gorm.DB
	bus EventBus.Bus
}

func NewUpdateAppointmentStatusHandler(db *gorm.DB, bus EventBus.Bus) *UpdateAppointmentStatusHandler {
	return &UpdateAppointmentStatusHandler{db: db, bus: bus}
}

func (h *UpdateAppointmentStatusHandler) Handle(ctx context.Context, cmd UpdateAppointmentStatusCommand) (*domain.Appointment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var appt domain.Appointment
	var user domain.SysUser
	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&appt, cmd.AppointmentId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if err := tx.First(&user, appt.UserId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if err := tx.Model(&appt).Updates(cmd.Values()).Error; err != nil {
			return err
		}
		return tx.First(&appt, cmd.AppointmentId).Error
	})
	if err != nil {
		return nil, err
	}

	if h.bus != nil {
		h.bus.Publish(TopicAppointmentStatusChanged, AppointmentEvent{
			Appointment: &appt,
			Email:       user.Email,
		})
	}
	return &appt, nil
}
