package service

import "sync"

// campaignLocker 以戰役為單位的互斥鎖集合
// 回合的建立與關閉、提交時的「清舊換新」都必須以戰役為範圍序列化，
// 否則並發呼叫可能同時建立兩個開放回合或留下兩筆 Current 提交
type campaignLocker struct {
	locks sync.Map // campaignID -> *sync.Mutex
}

func newCampaignLocker() *campaignLocker {
	return &campaignLocker{}
}

// Lock 取得指定戰役的鎖，回傳對應的解鎖函式
func (l *campaignLocker) Lock(campaignID uint) func() {
	v, _ := l.locks.LoadOrStore(campaignID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
