package booking

import (
	"context"
	"time"

	"github.com/durendeer/petcare/internal/domain"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// AppointmentRepository is the persistence contract for appointments.
type AppointmentRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Appointment, error)
	FindByUser(ctx context.Context, q GetUserAppointmentsQuery) ([]domain.Appointment, error)
	FindByStatus(ctx context.Context, status string) ([]domain.Appointment, error)
	FindUpcoming(ctx context.Context, within time.Duration) ([]domain.Appointment, error)
	Create(ctx context.Context, appt *domain.Appointment) error
	Updates(ctx context.Context, id int64, values map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	CountByUser(ctx context.Context, userId int64) (int64, error)
}

// GormAppointmentRepository implements AppointmentRepository on gorm.
type GormAppointmentRepository struct {
	db *gorm.DB
}

func NewGormAppointmentRepository(db *gorm.DB) *GormAppointmentRepository {
	return &GormAppointmentRepository{db: db}
}

func (r *GormAppointmentRepository) FindByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	var appt domain.Appointment
	err := r.db.WithContext(ctx).
		Preload("User").Preload("Pet").Preload("Service").
		First(&appt, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &appt, nil
}

func (r *GormAppointmentRepository) FindByUser(ctx context.Context, q GetUserAppointmentsQuery) ([]domain.Appointment, error) {
	tx := r.db.WithContext(ctx).
		Preload("Pet").Preload("Service").
		Where("user_id = ?", q.UserId)
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	var appts []domain.Appointment
	err := tx.Order(q.OrderClause()).Find(&appts).Error
	return appts, err
}

func (r *GormAppointmentRepository) FindByStatus(ctx context.Context, status string) ([]domain.Appointment, error) {
	var appts []domain.Appointment
	err := r.db.WithContext(ctx).
		Preload("User").Preload("Pet").Preload("Service").
		Where("status = ?", status).
		Order("scheduled_at ASC").
		Find(&appts).Error
	return appts, err
}

// FindUpcoming returns confirmed appointments scheduled inside the next
// `within` window, used by the reminder job.
func (r *GormAppointmentRepository) FindUpcoming(ctx context.Context, within time.Duration) ([]domain.Appointment, error) {
	now := time.Now()
	var appts []domain.Appointment
	err := r.db.WithContext(ctx).
		Preload("User").Preload("Pet").Preload("Service").
		Where("status = ?", domain.StatusConfirmed).
		Where("scheduled_at > ? AND scheduled_at <= ?", now, now.Add(within)).
		Order("scheduled_at ASC").
		Find(&appts).Error
	return appts, err
}

func (r *GormAppointmentRepository) Create(ctx context.Context, appt *domain.Appointment) error {
	return r.db.WithContext(ctx).Create(appt).Error
}

func (r *GormAppointmentRepository) Updates(ctx context.Context, id int64, values map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Appointment{}).
		Where("id = ?", id).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormAppointmentRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Appointment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormAppointmentRepository) CountByUser(ctx context.Context, userId int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Appointment{}).
		Where("user_id = ?", userId).
		Count(&count).Error
	return count, err
}
