package repository

import (
	"gorm.io/gorm"

	"fate_gm_helper/internal/models"
	"fate_gm_helper/internal/storage"
)

type ActionSubmissionRepository interface {
	CreateCurrent(submission *models.ActionSubmission) error
	FindCurrentByCampaignID(campaignID uint) ([]models.ActionSubmission, error)
	FindCurrentBySlot(roundID uint, servantClass string, actionType models.ActionType) ([]models.ActionSubmission, error)
}

type actionSubmissionRepository struct {
	db *storage.PostgresDB
}

func NewActionSubmissionRepository(db *storage.PostgresDB) ActionSubmissionRepository {
	return &actionSubmissionRepository{db: db}
}

// CreateCurrent 在同一筆交易內先清掉相同欄位舊提交的 Current 旗標，再寫入新提交，
// 保證同一 (回合, 階職, 行動類型) 之下至多只有一筆 Current 為 true
func (r *actionSubmissionRepository) CreateCurrent(submission *models.ActionSubmission) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.ActionSubmission{}).
			Where("round_id = ? AND servant_class = ? AND action_type = ? AND is_current = ?",
				submission.RoundID, submission.ServantClass, submission.ActionType, true).
			Update("is_current", false).Error
		if err != nil {
			return err
		}
		return tx.Create(submission).Error
	})
}

// FindCurrentByCampaignID 查詢戰役內所有 Current 為 true 的提交
// 唯一性約束是以回合為範圍，已關閉回合的提交對其所屬回合仍維持 Current
func (r *actionSubmissionRepository) FindCurrentByCampaignID(campaignID uint) ([]models.ActionSubmission, error) {
	var submissions []models.ActionSubmission
	err := r.db.
		Where("campaign_id = ? AND is_current = ?", campaignID, true).
		Order("created_at ASC").
		Find(&submissions).Error
	return submissions, err
}

func (r *actionSubmissionRepository) FindCurrentBySlot(roundID uint, servantClass string, actionType models.ActionType) ([]models.ActionSubmission, error) {
	var submissions []models.ActionSubmission
	err := r.db.
		Where("round_id = ? AND servant_class = ? AND action_type = ? AND is_current = ?",
			roundID, servantClass, actionType, true).
		Find(&submissions).Error
	return submissions, err
}
