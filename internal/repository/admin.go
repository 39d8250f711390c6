package repository

import (
	"context"

	"gorm.io/gorm"

	"petition-backend/internal/models"
	"petition-backend/internal/storage"
)

type AdminRepository struct {
	db *storage.Postgres
}

func NewAdminRepository(db *storage.Postgres) *AdminRepository {
	return &AdminRepository{db: db}
}

// Inserts a new admin user into the database
func (r *AdminRepository) Create(ctx context.Context, user *models.AdminUser) error {
	return r.db.DB.WithContext(ctx).Create(user).Error
}

// Retrieves an admin user by email
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var user models.AdminUser
	err := r.db.DB.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error

	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}

	return &user, err
}
