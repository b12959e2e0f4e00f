package repository

import (
	"fate_gm_helper/internal/models"
	"fate_gm_helper/internal/storage"
)

type CampaignRepository interface {
	Create(campaign *models.Campaign) error
	FindByID(id uint) (*models.Campaign, error)
	FindAll() ([]models.Campaign, error)
	Delete(id uint) error
}

type campaignRepository struct {
	db *storage.PostgresDB
}

func NewCampaignRepository(db *storage.PostgresDB) CampaignRepository {
	return &campaignRepository{db: db}
}

func (r *campaignRepository) Create(campaign *models.Campaign) error {
	return r.db.Create(campaign).Error
}

func (r *campaignRepository) FindByID(id uint) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.db.First(&campaign, id).Error
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

// FindAll 查詢所有戰役，最新建立的在前
func (r *campaignRepository) FindAll() ([]models.Campaign, error) {
	var campaigns []models.Campaign
	err := r.db.Order("created_at DESC").Find(&campaigns).Error
	return campaigns, err
}

func (r *campaignRepository) Delete(id uint) error {
	return r.db.Delete(&models.Campaign{}, id).Error
}
