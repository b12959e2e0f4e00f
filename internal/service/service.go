package service

import (
	"github.com/sirupsen/logrus"

	"fate_gm_helper/internal/repository"
)

type Services struct {
	Campaign   *CampaignService
	Round      *RoundService
	History    *HistoryService
	Submission *ActionSubmissionService
	Hub        *NotificationHub
	Logger     *logrus.Logger
}

func NewServices(repos *repository.Repositories, logger *logrus.Logger) *Services {
	hub := NewNotificationHub(logger)
	locker := newCampaignLocker()

	historyService := NewHistoryService(repos.ActionHistory, repos.Campaign, logger)
	roundService := NewRoundService(repos.Round, repos.Campaign, historyService, locker, logger)
	submissionService := NewActionSubmissionService(repos.ActionSubmission, repos.Campaign, roundService, hub, locker)
	campaignService := NewCampaignService(repos.Campaign)

	return &Services{
		Campaign:   campaignService,
		Round:      roundService,
		History:    historyService,
		Submission: submissionService,
		Hub:        hub,
		Logger:     logger,
	}
}
