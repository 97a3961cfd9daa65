package auth

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/salonova/booking-api/internal/domain/booking"
	"github.com/salonova/booking-api/internal/models"
)

// ErrPrincipalNotFound covers absent, deactivated, and role-mismatched
// records alike. Callers must not distinguish those cases to the client.
var ErrPrincipalNotFound = errors.New("principal not found")

// CredentialStore resolves principal ids against the physical credential
// tables. Which table is queried depends on the declared role:
// superadmin/admin live in admins, employees in employees, end-users in
// users. Every lookup applies the is_active filter.
type CredentialStore struct {
	db *gorm.DB
}

func NewCredentialStore(db *gorm.DB) *CredentialStore {
	return &CredentialStore{db: db}
}

func (s *CredentialStore) FindPrincipal(
	ctx context.Context,
	id uint,
	declaredRole domain.Role,
) (*domain.Principal, error) {

	switch declaredRole {

	case domain.RoleSuperadmin, domain.RoleAdmin:
		var admin models.Admin
		err := s.db.WithContext(ctx).
			Where("id = ? AND role = ? AND is_active = ?", id, string(declaredRole), true).
			First(&admin).Error
		if err != nil {
			return nil, ErrPrincipalNotFound
		}
		return &domain.Principal{
			ID:      admin.ID,
			Role:    domain.Role(admin.Role),
			Name:    admin.Name,
			SalonID: admin.SalonID,
		}, nil

	case domain.RoleEmployee:
		var employee models.Employee
		err := s.db.WithContext(ctx).
			Where("id = ? AND is_active = ?", id, true).
			First(&employee).Error
		if err != nil {
			return nil, ErrPrincipalNotFound
		}
		salonID := employee.SalonID
		return &domain.Principal{
			ID:      employee.ID,
			Role:    domain.RoleEmployee,
			Name:    employee.Name,
			SalonID: &salonID,
		}, nil

	case domain.RoleUser:
		var user models.User
		err := s.db.WithContext(ctx).
			Where("id = ? AND is_active = ?", id, true).
			First(&user).Error
		if err != nil {
			return nil, ErrPrincipalNotFound
		}
		return &domain.Principal{
			ID:   user.ID,
			Role: domain.RoleUser,
			Name: user.Name,
		}, nil
	}

	return nil, ErrPrincipalNotFound
}
