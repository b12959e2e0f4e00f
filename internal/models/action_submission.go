package models

import "time"

// ActionType 定義行動提交的類型
type ActionType string

const (
	ActionTypeServant ActionType = "SERVANT_ACTION"
	ActionTypeMaster  ActionType = "MASTER_ACTION"
)

// Valid 回報是否為已知的行動類型
func (t ActionType) Valid() bool {
	return t == ActionTypeServant || t == ActionTypeMaster
}

// ActionSubmission 表示回合內某個欄位（階職 + 行動類型）的一次行動提交
// 同一 (回合, 階職, 行動類型) 之下至多只有一筆 Current 為 true，
// 舊的提交被取代時只會清掉 Current 旗標，不會被刪除
type ActionSubmission struct {
	ID           uint       `json:"id" gorm:"primarykey"`
	RoundID      uint       `json:"roundId" gorm:"index;not null"`
	CampaignID   uint       `json:"campaignId" gorm:"index;not null"`
	TurnNumber   int        `json:"turnNumber" gorm:"not null"`
	ServantClass string     `json:"servantClass" gorm:"type:varchar(50);not null"`
	ActionType   ActionType `json:"actionType" gorm:"type:varchar(20);not null"`
	Content      string     `json:"content" gorm:"type:text;not null"`
	SubmittedBy  string     `json:"submittedBy"`
	Current      bool       `json:"current" gorm:"column:is_current;not null"`
	CreatedAt    time.Time  `json:"createdAt"`
}
