package database

import (
	"errors"
	"time"

	"residence-hub/internal/models"

	"gorm.io/gorm"
)

var ErrAlreadyCheckedOut = errors.New("visitor already checked out")

// CheckOutVisitor отмечает выход посетителя. Обновление условное по статусу,
// поэтому из двух одновременных запросов проходит только один.
func CheckOutVisitor(db *gorm.DB, id uint, at time.Time) (models.Visitor, error) {
	var v models.Visitor
	res := db.Model(&models.Visitor{}).
		Where("id = ? AND status = ?", id, models.VisitorCheckIn).
		Updates(map[string]any{
			"status":         models.VisitorCheckOut,
			"check_out_time": at,
		})
	if res.Error != nil {
		return v, res.Error
	}
	if err := db.First(&v, id).Error; err != nil {
		return v, err
	}
	if res.RowsAffected == 0 {
		return v, ErrAlreadyCheckedOut
	}
	return v, nil
}
