package models

import "time"

// Campaign 表示一場戰役，是回合、行動提交與歷史紀錄的最上層範圍
type Campaign struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"createdAt"`
}
