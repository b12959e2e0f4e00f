package service

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"fate_gm_helper/internal/models"
	"fate_gm_helper/internal/repository"
)

// HistoryPayload 回合關閉時由呼叫端附帶的快照負載，三個欄位皆可省略
type HistoryPayload struct {
	ActionOrder    []map[string]interface{} `json:"actionOrder"`
	ServantActions []string                 `json:"servantActions"`
	MasterActions  []string                 `json:"masterActions"`
}

// HistoryService 保存回合關閉後的不可變歷史快照
type HistoryService struct {
	historyRepo  repository.ActionHistoryRepository
	campaignRepo repository.CampaignRepository
	logger       *logrus.Logger
}

func NewHistoryService(historyRepo repository.ActionHistoryRepository,
	campaignRepo repository.CampaignRepository, logger *logrus.Logger) *HistoryService {
	return &HistoryService{
		historyRepo:  historyRepo,
		campaignRepo: campaignRepo,
		logger:       logger,
	}
}

// Archive 為指定回合寫入一筆歷史快照，只做追加、不覆寫既有紀錄
// 負載欄位各自編碼，編碼失敗的欄位記錄日誌後存空，不會讓整次保存失敗
func (s *HistoryService) Archive(campaignID uint, turnNumber int, closedAt *time.Time, payload *HistoryPayload) (*models.ActionHistory, error) {
	if _, err := s.campaignRepo.FindByID(campaignID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}

	history := &models.ActionHistory{
		CampaignID: campaignID,
		TurnNumber: turnNumber,
		ClosedAt:   closedAt,
	}
	if payload != nil {
		history.ActionOrder = s.encodeField("actionOrder", payload.ActionOrder)
		history.ServantActions = s.encodeField("servantActions", payload.ServantActions)
		history.MasterActions = s.encodeField("masterActions", payload.MasterActions)
	}

	if err := s.historyRepo.Create(history); err != nil {
		return nil, err
	}
	return history, nil
}

// ListByCampaign 列出戰役的所有歷史快照，回合編號大的在前
func (s *HistoryService) ListByCampaign(campaignID uint) ([]models.ActionHistory, error) {
	return s.historyRepo.FindByCampaignID(campaignID)
}

// encodeField 把單一負載欄位編碼成 JSON 文字，省略的欄位存空字串
func (s *HistoryService) encodeField(name string, value interface{}) string {
	switch v := value.(type) {
	case []map[string]interface{}:
		if v == nil {
			return ""
		}
	case []string:
		if v == nil {
			return ""
		}
	}

	data, err := json.Marshal(value)
	if err != nil {
		s.logger.WithError(err).WithField("field", name).Warn("歷史快照欄位編碼失敗，以空值保存")
		return ""
	}
	return string(data)
}
