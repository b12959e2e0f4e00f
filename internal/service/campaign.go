package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"fate_gm_helper/internal/models"
	"fate_gm_helper/internal/repository"
)

// CampaignService 提供戰役的查詢與基本管理
// 回合、提交與歷史都以戰役為範圍，這裡只保留最小的建立、查詢與刪除
type CampaignService struct {
	campaignRepo repository.CampaignRepository
}

func NewCampaignService(campaignRepo repository.CampaignRepository) *CampaignService {
	return &CampaignService{campaignRepo: campaignRepo}
}

func (s *CampaignService) List() ([]models.Campaign, error) {
	return s.campaignRepo.FindAll()
}

func (s *CampaignService) Get(id uint) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCampaignNotFound
	}
	if err != nil {
		return nil, err
	}
	return campaign, nil
}

func (s *CampaignService) Create(name, description string) (*models.Campaign, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyCampaignName
	}

	campaign := &models.Campaign{
		Name:        name,
		Description: description,
	}
	if err := s.campaignRepo.Create(campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

func (s *CampaignService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.campaignRepo.Delete(id)
}
