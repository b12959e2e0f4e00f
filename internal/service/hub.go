package service

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"fate_gm_helper/internal/models"
)

const (
	// EventTypeConnected 訂閱建立後送出的第一個事件，讓呼叫端確認連線存活
	EventTypeConnected = "connected"
	// EventTypeSubmission 每筆被接受的行動提交對應一個事件
	EventTypeSubmission = "submission"

	// 單一訂閱者的事件緩衝大小，寫滿代表訂閱者已經跟不上，直接移除
	subscriberBufferSize = 256
)

// Event 推送給訂閱者的單一事件
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// Subscriber 代表一條針對單一戰役的即時訂閱
// 訂閱是純程序內狀態，行程重啟後所有訂閱者必須重新連線
type Subscriber struct {
	ID         string
	CampaignID uint
	events     chan Event
}

// Events 回傳事件通道，訂閱被移除時通道會被關閉
func (s *Subscriber) Events() <-chan Event {
	return s.events
}

// NotificationHub 管理各戰役的即時訂閱並廣播新的行動提交
type NotificationHub struct {
	subscribers map[uint]map[*Subscriber]bool // campaignID -> subscriber 集合
	mu          sync.Mutex                    // 保護 subscribers 與通道關閉
	logger      *logrus.Logger
}

func NewNotificationHub(logger *logrus.Logger) *NotificationHub {
	return &NotificationHub{
		subscribers: make(map[uint]map[*Subscriber]bool),
		logger:      logger,
	}
}

// Subscribe 註冊一個新的訂閱者
// connected 事件在註冊前先入列，保證它一定是訂閱者收到的第一個事件
func (h *NotificationHub) Subscribe(campaignID uint) *Subscriber {
	sub := &Subscriber{
		ID:         uuid.NewString(),
		CampaignID: campaignID,
		events:     make(chan Event, subscriberBufferSize),
	}
	sub.events <- Event{Type: EventTypeConnected, Data: "connected"}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subscribers[campaignID] == nil {
		h.subscribers[campaignID] = make(map[*Subscriber]bool)
	}
	h.subscribers[campaignID][sub] = true

	return sub
}

// Unsubscribe 移除訂閱者並關閉其事件通道，可安全地重複呼叫
func (h *NotificationHub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeLocked(sub)
}

// Publish 把提交廣播給其戰役下所有訂閱者，盡力而為
// 對每個訂閱者都是非阻塞送出，緩衝已滿的訂閱者視為失效並立即移除，
// 單一訂閱者的失敗不影響其他訂閱者，也永遠不會回報給提交方
func (h *NotificationHub) Publish(submission *models.ActionSubmission) {
	event := Event{Type: EventTypeSubmission, Data: submission}

	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subscribers[submission.CampaignID] {
		select {
		case sub.events <- event:
		default:
			h.logger.WithFields(logrus.Fields{
				"campaignId":   submission.CampaignID,
				"subscriberId": sub.ID,
			}).Warn("訂閱者事件緩衝已滿，移除訂閱")
			h.removeLocked(sub)
		}
	}
}

// SubscriberCount 回傳指定戰役目前的訂閱者數量
func (h *NotificationHub) SubscriberCount(campaignID uint) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.subscribers[campaignID])
}

func (h *NotificationHub) removeLocked(sub *Subscriber) {
	subs := h.subscribers[sub.CampaignID]
	if subs == nil || !subs[sub] {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.subscribers, sub.CampaignID)
	}
	close(sub.events)
}
