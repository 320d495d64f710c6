package repository

import (
	"context"
	"errors"

	"docuserve/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID        int64  `gorm:"column:id;primaryKey"`
	BrowserID string `gorm:"column:browser_id;uniqueIndex"`
	Nickname  string `gorm:"column:nickname"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	return &domain.User{
		ID:        m.ID,
		BrowserID: m.BrowserID,
		Nickname:  m.Nickname,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := userModel{
		ID:        u.ID,
		BrowserID: u.BrowserID,
		Nickname:  u.Nickname,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByNickname(ctx context.Context, nickname string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).Where("nickname = ?", nickname).First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByBrowserID(ctx context.Context, browserID string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).Where("browser_id = ?", browserID).First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

// Migrate creates the users table if it does not exist.
func (r *UserRepository) Migrate() error {
	return r.db.AutoMigrate(&userModel{})
}
