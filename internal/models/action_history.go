package models

import "time"

// ActionHistory 表示某回合關閉時留下的不可變快照
// 三個負載欄位各自存放一段 JSON 文字，允許個別為空；
// 每次回合關閉至多寫入一筆，寫入後不再更動
type ActionHistory struct {
	ID             uint       `json:"id" gorm:"primarykey"`
	CampaignID     uint       `json:"campaignId" gorm:"index;not null"`
	TurnNumber     int        `json:"turnNumber" gorm:"not null"`
	ClosedAt       *time.Time `json:"closedAt"`
	ActionOrder    string     `json:"-" gorm:"type:text"`
	ServantActions string     `json:"-" gorm:"type:text"`
	MasterActions  string     `json:"-" gorm:"type:text"`
	CreatedAt      time.Time  `json:"createdAt"`
}
