package app

import (
	"time"

	"github.com/durendeer/petcare/internal/domain"
	"github.com/durendeer/petcare/pkg/common"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func (a *Application) checkSuper() {
	const superEmail = "admin@petcare.local"
	const defaultPassword = "petcare"

	var admin domain.SysUser
	err := a.gormDB.Where("email = ?", superEmail).First(&admin).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		hashed, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
		if err != nil {
			zap.L().Error("failed to hash default admin password", zap.Error(err))
			return
		}
		if err := a.gormDB.Create(&domain.SysUser{
			ID:        common.UUIDint64(),
			Name:      "administrator",
			Email:     superEmail,
			Password:  string(hashed),
			Level:     "admin",
			Remark:    "default admin",
			LastLogin: time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to create default admin", zap.Error(err))
		} else {
			zap.L().Info("initialized default admin account", zap.String("email", superEmail))
		}
	case err != nil:
		zap.L().Error("failed to query default admin", zap.Error(err))
	}
}

// checkCategories initializes the default catalog categories
func (a *Application) checkCategories() {
	defaultCategories := []domain.Category{
		{Name: "Food", Description: "Dry and wet food for all species", Active: true},
		{Name: "Toys", Description: "Interactive and chew toys", Active: true},
		{Name: "Hygiene", Description: "Shampoos, brushes and dental care", Active: true},
		{Name: "Accessories", Description: "Collars, leashes, beds and bowls", Active: true},
		{Name: "Medicine", Description: "Over the counter pet medicine", Active: true},
	}

	for _, c := range defaultCategories {
		var count int64
		a.gormDB.Model(&domain.Category{}).Where("name = ?", c.Name).Count(&count)
		if count == 0 {
			c.ID = common.UUIDint64()
			if err := a.gormDB.Create(&c).Error; err != nil {
				zap.L().Error("failed to create default category", zap.String("name", c.Name), zap.Error(err))
			} else {
				zap.L().Info("initialized default category", zap.String("name", c.Name))
			}
		}
	}
}

// checkGroomServices initializes the default grooming services
func (a *Application) checkGroomServices() {
	defaultServices := []domain.GroomService{
		{Name: "Bath", Description: "Bath with neutral shampoo and drying",
			Price: decimal.RequireFromString("40.00"), DurationMinutes: 60, Active: true},
		{Name: "Full Grooming", Description: "Bath, haircut, nail trim and ear cleaning",
			Price: decimal.RequireFromString("80.00"), DurationMinutes: 120, Active: true},
		{Name: "Nail Trim", Description: "Nail clipping and filing",
			Price: decimal.RequireFromString("15.00"), DurationMinutes: 20, Active: true},
		{Name: "Teeth Brushing", Description: "Dental hygiene session",
			Price: decimal.RequireFromString("20.00"), DurationMinutes: 20, Active: true},
	}

	for _, s := range defaultServices {
		var count int64
		a.gormDB.Model(&domain.GroomService{}).Where("name = ?", s.Name).Count(&count)
		if count == 0 {
			s.ID = common.UUIDint64()
			if err := a.gormDB.Create(&s).Error; err != nil {
				zap.L().Error("failed to create default service", zap.String("name", s.Name), zap.Error(err))
			} else {
				zap.L().Info("initialized default service", zap.String("name", s.Name))
			}
		}
	}
}
