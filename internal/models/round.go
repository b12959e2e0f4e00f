package models

import "time"

// RoundStatus 定義回合狀態的類型
type RoundStatus string

const (
	RoundStatusOpen   RoundStatus = "OPEN"
	RoundStatusClosed RoundStatus = "CLOSED"
)

// Round 表示戰役中的一個回合
// 同一戰役在任何時刻至多只有一個回合處於 OPEN 狀態，
// 回合只會由 OPEN 單向轉為 CLOSED，不會被刪除
type Round struct {
	ID         uint        `json:"id" gorm:"primarykey"`
	CampaignID uint        `json:"campaignId" gorm:"index;not null"`
	TurnNumber int         `json:"turnNumber" gorm:"not null"`
	Status     RoundStatus `json:"status" gorm:"type:varchar(20);not null"`
	CreatedAt  time.Time   `json:"createdAt"`
	ClosedAt   *time.Time  `json:"closedAt"`
}
