package service

import "errors"

var (
	// ErrCampaignNotFound 指定的戰役不存在
	ErrCampaignNotFound = errors.New("找不到指定的戰役")
	// ErrNoOpenRound 戰役目前沒有開放中的回合
	ErrNoOpenRound = errors.New("目前沒有開放中的回合")
	// ErrInvalidActionType 行動類型不在允許的範圍內
	ErrInvalidActionType = errors.New("無效的行動類型")
	// ErrEmptyServantClass 階職為必填欄位
	ErrEmptyServantClass = errors.New("階職不可為空")
	// ErrEmptyContent 行動內容為必填欄位
	ErrEmptyContent = errors.New("行動內容不可為空")
	// ErrEmptyCampaignName 戰役名稱為必填欄位
	ErrEmptyCampaignName = errors.New("戰役名稱不可為空")
)
