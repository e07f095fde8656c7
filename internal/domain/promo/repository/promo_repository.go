package repository

import (
	"errors"
	"time"

	"lms_commerce/internal/domain/promo/model"

	"gorm.io/gorm"
)

type PromoRepository interface {
	Create(code *model.DiscountCode) error
	GetByID(id string) (*model.DiscountCode, error)
	GetByCode(code string) (*model.DiscountCode, error)
	DecreaseStock(discountID string) error
	CreateUserDiscount(userDiscount *model.UserDiscount) error
	GetUnusedUserDiscount(userID, discountID string) (*model.UserDiscount, error)
	MarkUsed(userDiscountID string) error
}

type promoRepository struct {
	db *gorm.DB
}

func NewPromoRepository(db *gorm.DB) PromoRepository {
	return &promoRepository{db: db}
}

func (r *promoRepository) Create(code *model.DiscountCode) error {
	return r.db.Create(code).Error
}

func (r *promoRepository) GetByID(id string) (*model.DiscountCode, error) {
	var code model.DiscountCode
	if err := r.db.Where("id = ?", id).First(&code).Error; err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *promoRepository) GetByCode(code string) (*model.DiscountCode, error) {
	var dc model.DiscountCode
	if err := r.db.Where("code = ?", code).First(&dc).Error; err != nil {
		return nil, err
	}
	return &dc, nil
}

// DecreaseStock decrements with an optimistic guard on remaining stock.
func (r *promoRepository) DecreaseStock(discountID string) error {
	result := r.db.Model(&model.DiscountCode{}).
		Where("id = ? AND stock > 0", discountID).
		UpdateColumn("stock", gorm.Expr("stock - 1"))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("insufficient stock")
	}
	return nil
}

func (r *promoRepository) CreateUserDiscount(userDiscount *model.UserDiscount) error {
	return r.db.Create(userDiscount).Error
}

func (r *promoRepository) GetUnusedUserDiscount(userID, discountID string) (*model.UserDiscount, error) {
	var ud model.UserDiscount
	err := r.db.Where("user_id = ? AND discount_id = ? AND status = ?",
		userID, discountID, model.UserDiscountUnused).First(&ud).Error
	if err != nil {
		return nil, err
	}
	return &ud, nil
}

func (r *promoRepository) MarkUsed(userDiscountID string) error {
	now := time.Now()
	return r.db.Model(&model.UserDiscount{}).
		Where("id = ?", userDiscountID).
		Updates(map[string]interface{}{
			"status":  model.UserDiscountUsed,
			"used_at": &now,
		}).Error
}
