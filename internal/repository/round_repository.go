package repository

import (
	"fate_gm_helper/internal/models"
	"fate_gm_helper/internal/storage"
)

type RoundRepository interface {
	Create(round *models.Round) error
	Update(round *models.Round) error
	FindByID(id uint) (*models.Round, error)
	FindOpenByCampaignID(campaignID uint) (*models.Round, error)
	MaxTurnNumber(campaignID uint) (int, error)
	CountByCampaignID(campaignID uint) (int64, error)
}

type roundRepository struct {
	db *storage.PostgresDB
}

func NewRoundRepository(db *storage.PostgresDB) RoundRepository {
	return &roundRepository{db: db}
}

func (r *roundRepository) Create(round *models.Round) error {
	return r.db.Create(round).Error
}

func (r *roundRepository) Update(round *models.Round) error {
	return r.db.Save(round).Error
}

func (r *roundRepository) FindByID(id uint) (*models.Round, error) {
	var round models.Round
	err := r.db.First(&round, id).Error
	if err != nil {
		return nil, err
	}
	return &round, nil
}

// FindOpenByCampaignID 查詢戰役目前開放中的回合，找不到時回傳 gorm.ErrRecordNotFound
func (r *roundRepository) FindOpenByCampaignID(campaignID uint) (*models.Round, error) {
	var round models.Round
	err := r.db.
		Where("campaign_id = ? AND status = ?", campaignID, models.RoundStatusOpen).
		Order("turn_number DESC").
		First(&round).Error
	if err != nil {
		return nil, err
	}
	return &round, nil
}

// MaxTurnNumber 查詢戰役目前最大的回合編號，沒有任何回合時回傳 0
func (r *roundRepository) MaxTurnNumber(campaignID uint) (int, error) {
	var max int
	err := r.db.Model(&models.Round{}).
		Where("campaign_id = ?", campaignID).
		Select("COALESCE(MAX(turn_number), 0)").
		Scan(&max).Error
	return max, err
}

func (r *roundRepository) CountByCampaignID(campaignID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Round{}).
		Where("campaign_id = ?", campaignID).
		Count(&count).Error
	return count, err
}
