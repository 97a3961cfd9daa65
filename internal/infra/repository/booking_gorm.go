package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/salonova/booking-api/internal/domain/booking"
	"github.com/salonova/booking-api/internal/models"
)

const (
	// ApplicationNumberCounter names the row backing the booking sequence.
	ApplicationNumberCounter = "application_number"

	applicationNumberPrefix = "APP"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Directory
// --------------------------------------------------

func (r *BookingGormRepository) ResolveSchedule(
	ctx context.Context,
	scheduleID uint,
) (*models.Schedule, error) {

	var schedule models.Schedule
	if err := r.db.WithContext(ctx).First(&schedule, scheduleID).Error; err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *BookingGormRepository) SalonExists(
	ctx context.Context,
	salonID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Salon{}).
		Where("id = ?", salonID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Application number
// --------------------------------------------------

// nextApplicationNumber advances the booking counter with a single
// in-database increment and formats the reference. The UPDATE takes the
// row lock, so the read-back inside the same transaction is stable even
// under concurrent callers. Never read-then-write this counter.
func nextApplicationNumber(tx *gorm.DB) (string, error) {

	res := tx.Model(&models.BookingCounter{}).
		Where("name = ?", ApplicationNumberCounter).
		Update("value", gorm.Expr("value + 1"))
	if res.Error != nil {
		return "", res.Error
	}

	if res.RowsAffected == 0 {
		counter := models.BookingCounter{Name: ApplicationNumberCounter, Value: 1}
		if err := tx.Create(&counter).Error; err != nil {
			return "", err
		}
		return fmt.Sprintf("%s%06d", applicationNumberPrefix, counter.Value), nil
	}

	var counter models.BookingCounter
	if err := tx.Where("name = ?", ApplicationNumberCounter).
		First(&counter).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("%s%06d", applicationNumberPrefix, counter.Value), nil
}

// --------------------------------------------------
// Appointment (create)
// --------------------------------------------------

func (r *BookingGormRepository) CreateWithNumber(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		number, err := nextApplicationNumber(tx)
		if err != nil {
			return err
		}

		ap.ApplicationNumber = number
		return tx.Create(ap).Error
	})
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *BookingGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Schedule").
		Preload("Schedule.Salon").
		Preload("Employee").
		First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

// FindAppointment loads the bare row, without associations. Mutation
// paths go through this so a later Save only writes appointment columns.
func (r *BookingGormRepository) FindAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

// FindAppointmentByNumber resolves the human-facing booking reference,
// used by the payment-completion callback.
func (r *BookingGormRepository) FindAppointmentByNumber(
	ctx context.Context,
	number string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("application_number = ?", number).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *BookingGormRepository) ListAppointments(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Appointment, int64, error) {

	filter.Normalize()

	q := r.db.WithContext(ctx).Model(&models.Appointment{})

	if filter.SalonID != 0 {
		q = q.Joins("JOIN schedules ON schedules.id = appointments.schedule_id").
			Where("schedules.salon_id = ?", filter.SalonID)
	}

	if filter.UserID != 0 {
		q = q.Where("appointments.user_id = ?", filter.UserID)
	}

	if filter.Status != "" {
		q = q.Where("appointments.status = ?", filter.Status)
	}

	if filter.EmployeeID != 0 {
		q = q.Where("appointments.employee_id = ?", filter.EmployeeID)
	}

	if filter.Date != "" {
		q = q.Where("appointments.application_date = ?", filter.Date)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var aps []models.Appointment
	if err := q.
		Preload("User").
		Preload("Schedule").
		Preload("Employee").
		Order("appointments.created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&aps).Error; err != nil {
		return nil, 0, err
	}

	return aps, total, nil
}

// --------------------------------------------------
// Appointment (write)
// --------------------------------------------------

func (r *BookingGormRepository) SaveAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *BookingGormRepository) UpdateAppointmentFields(
	ctx context.Context,
	id uint,
	fields map[string]any,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *BookingGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).
		Delete(&models.Appointment{}, id).Error
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
