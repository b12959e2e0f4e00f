package repository

import "fate_gm_helper/internal/storage"

type Repositories struct {
	Campaign         CampaignRepository
	Round            RoundRepository
	ActionSubmission ActionSubmissionRepository
	ActionHistory    ActionHistoryRepository
}

func NewRepositories(db *storage.PostgresDB) *Repositories {
	return &Repositories{
		Campaign:         NewCampaignRepository(db),
		Round:            NewRoundRepository(db),
		ActionSubmission: NewActionSubmissionRepository(db),
		ActionHistory:    NewActionHistoryRepository(db),
	}
}
