package database

import "residence-hub/internal/models"

// helper для записи в журнал аудита
func CreateAuditLog(userID uint, entity string, entityID uint, action, details string) {
	if DB == nil {
		return
	}
	record := models.AuditLog{
		UserID:   userID,
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Details:  details,
	}
	_ = DB.Create(&record).Error
}

// RecentAuditLogs: последние записи журнала вместе с пользователем
func RecentAuditLogs(limit int) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := DB.Preload("User").
		Order("created_at desc").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
