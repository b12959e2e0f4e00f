package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"fate_gm_helper/internal/models"
	"fate_gm_helper/internal/repository"
)

// SubmitActionInput 一次行動提交的輸入
type SubmitActionInput struct {
	CampaignID   uint
	ServantClass string
	ActionType   models.ActionType
	Content      string
	SubmittedBy  string
}

// ActionSubmissionService 記錄回合內各欄位的行動提交
type ActionSubmissionService struct {
	submissionRepo repository.ActionSubmissionRepository
	campaignRepo   repository.CampaignRepository
	roundService   *RoundService
	hub            *NotificationHub
	locker         *campaignLocker
}

func NewActionSubmissionService(submissionRepo repository.ActionSubmissionRepository,
	campaignRepo repository.CampaignRepository, roundService *RoundService,
	hub *NotificationHub, locker *campaignLocker) *ActionSubmissionService {
	return &ActionSubmissionService{
		submissionRepo: submissionRepo,
		campaignRepo:   campaignRepo,
		roundService:   roundService,
		hub:            hub,
		locker:         locker,
	}
}

// Submit 提交一筆行動：解析戰役開放中的回合（沒有則自動開啟），
// 在同一筆交易內清掉相同欄位舊提交的 Current 旗標並寫入新提交，
// 最後把結果交給通知中心廣播。廣播失敗不影響提交結果
func (s *ActionSubmissionService) Submit(input SubmitActionInput) (*models.ActionSubmission, error) {
	if strings.TrimSpace(input.ServantClass) == "" {
		return nil, ErrEmptyServantClass
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, ErrEmptyContent
	}
	if !input.ActionType.Valid() {
		return nil, ErrInvalidActionType
	}
	if _, err := s.campaignRepo.FindByID(input.CampaignID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}

	unlock := s.locker.Lock(input.CampaignID)
	defer unlock()

	round, err := s.roundService.getOrCreateOpenRoundLocked(input.CampaignID)
	if err != nil {
		return nil, err
	}

	submission := &models.ActionSubmission{
		RoundID:      round.ID,
		CampaignID:   input.CampaignID,
		TurnNumber:   round.TurnNumber,
		ServantClass: input.ServantClass,
		ActionType:   input.ActionType,
		Content:      input.Content,
		SubmittedBy:  input.SubmittedBy,
		Current:      true,
	}
	if err := s.submissionRepo.CreateCurrent(submission); err != nil {
		return nil, err
	}

	// 在戰役鎖內廣播，確保事件順序與提交的寫入順序一致；
	// Publish 對每個訂閱者都是有界的非阻塞送出，不會卡住提交路徑
	s.hub.Publish(submission)

	return submission, nil
}

// ListCurrent 列出戰役內所有 Current 為 true 的提交
func (s *ActionSubmissionService) ListCurrent(campaignID uint) ([]models.ActionSubmission, error) {
	if _, err := s.campaignRepo.FindByID(campaignID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	return s.submissionRepo.FindCurrentByCampaignID(campaignID)
}
