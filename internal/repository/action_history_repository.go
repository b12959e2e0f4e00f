package repository

import (
	"fate_gm_helper/internal/models"
	"fate_gm_helper/internal/storage"
)

type ActionHistoryRepository interface {
	Create(history *models.ActionHistory) error
	FindByCampaignID(campaignID uint) ([]models.ActionHistory, error)
}

type actionHistoryRepository struct {
	db *storage.PostgresDB
}

func NewActionHistoryRepository(db *storage.PostgresDB) ActionHistoryRepository {
	return &actionHistoryRepository{db: db}
}

func (r *actionHistoryRepository) Create(history *models.ActionHistory) error {
	return r.db.Create(history).Error
}

// FindByCampaignID 查詢戰役的所有歷史快照，回合編號大的在前
func (r *actionHistoryRepository) FindByCampaignID(campaignID uint) ([]models.ActionHistory, error) {
	var histories []models.ActionHistory
	err := r.db.
		Where("campaign_id = ?", campaignID).
		Order("turn_number DESC").
		Find(&histories).Error
	return histories, err
}
