package service

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"fate_gm_helper/internal/models"
	"fate_gm_helper/internal/repository"
)

// RoundService 管理戰役回合的生命週期
// 所有會改變回合狀態的操作都在戰役鎖內執行，
// 確保同一戰役在任何時刻至多只有一個開放中的回合
type RoundService struct {
	roundRepo      repository.RoundRepository
	campaignRepo   repository.CampaignRepository
	historyService *HistoryService
	locker         *campaignLocker
	logger         *logrus.Logger
}

func NewRoundService(roundRepo repository.RoundRepository, campaignRepo repository.CampaignRepository,
	historyService *HistoryService, locker *campaignLocker, logger *logrus.Logger) *RoundService {
	return &RoundService{
		roundRepo:      roundRepo,
		campaignRepo:   campaignRepo,
		historyService: historyService,
		locker:         locker,
		logger:         logger,
	}
}

// FindOpenRound 回傳戰役目前開放中的回合，沒有時回傳 nil
func (s *RoundService) FindOpenRound(campaignID uint) (*models.Round, error) {
	round, err := s.roundRepo.FindOpenByCampaignID(campaignID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return round, nil
}

// GetOrCreateOpenRound 回傳戰役開放中的回合，沒有時自動建立下一回合
func (s *RoundService) GetOrCreateOpenRound(campaignID uint) (*models.Round, error) {
	unlock := s.locker.Lock(campaignID)
	defer unlock()

	return s.getOrCreateOpenRoundLocked(campaignID)
}

// CloseOpenRound 關閉戰役目前開放中的回合
// 沒有開放中的回合時回傳 ErrNoOpenRound，既有回合不受影響
func (s *RoundService) CloseOpenRound(campaignID uint) (*models.Round, error) {
	unlock := s.locker.Lock(campaignID)
	defer unlock()

	return s.closeOpenRoundLocked(campaignID)
}

// OpenNextRound 建立下一個回合
// 若仍有開放中的回合會先將其關閉，維持單一開放回合的約束
func (s *RoundService) OpenNextRound(campaignID uint) (*models.Round, error) {
	unlock := s.locker.Lock(campaignID)
	defer unlock()

	open, err := s.FindOpenRound(campaignID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		if _, err := s.closeOpenRoundLocked(campaignID); err != nil {
			return nil, err
		}
	}

	return s.createNextRoundLocked(campaignID)
}

// CloseCurrentRound 關閉目前的回合，並在呼叫端附帶負載時保存歷史快照
// 快照保存失敗只記錄日誌，不會回退已完成的回合關閉
func (s *RoundService) CloseCurrentRound(campaignID uint, payload *HistoryPayload) (*models.Round, *models.ActionHistory, error) {
	unlock := s.locker.Lock(campaignID)
	defer unlock()

	round, err := s.closeOpenRoundLocked(campaignID)
	if err != nil {
		return nil, nil, err
	}

	if payload == nil {
		return round, nil, nil
	}

	history, err := s.historyService.Archive(campaignID, round.TurnNumber, round.ClosedAt, payload)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"campaignId": campaignID,
			"turnNumber": round.TurnNumber,
		}).Error("保存回合歷史快照失敗")
		return round, nil, nil
	}

	return round, history, nil
}

func (s *RoundService) getOrCreateOpenRoundLocked(campaignID uint) (*models.Round, error) {
	round, err := s.FindOpenRound(campaignID)
	if err != nil {
		return nil, err
	}
	if round != nil {
		return round, nil
	}
	return s.createNextRoundLocked(campaignID)
}

func (s *RoundService) closeOpenRoundLocked(campaignID uint) (*models.Round, error) {
	round, err := s.FindOpenRound(campaignID)
	if err != nil {
		return nil, err
	}
	if round == nil {
		return nil, ErrNoOpenRound
	}

	now := time.Now()
	round.Status = models.RoundStatusClosed
	round.ClosedAt = &now

	if err := s.roundRepo.Update(round); err != nil {
		return nil, err
	}
	return round, nil
}

func (s *RoundService) createNextRoundLocked(campaignID uint) (*models.Round, error) {
	if _, err := s.campaignRepo.FindByID(campaignID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}

	maxTurn, err := s.roundRepo.MaxTurnNumber(campaignID)
	if err != nil {
		return nil, err
	}

	round := &models.Round{
		CampaignID: campaignID,
		TurnNumber: maxTurn + 1,
		Status:     models.RoundStatusOpen,
	}
	if err := s.roundRepo.Create(round); err != nil {
		return nil, err
	}
	return round, nil
}
