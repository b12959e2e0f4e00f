package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"fate_gm_helper/internal/service"
)

// StreamHandler 提供行動提交的即時推送端點
type StreamHandler struct {
	hub *service.NotificationHub
}

func NewStreamHandler(hub *service.NotificationHub) *StreamHandler {
	return &StreamHandler{hub: hub}
}

// Stream 以 text/event-stream 持續推送戰役的行動提交
// 連線建立後先收到一個 connected 事件，之後每筆被接受的提交對應一個
// submission 事件；伺服器不主動逾時，連線只因客戶端斷線或錯誤而結束
func (h *StreamHandler) Stream(c *gin.Context) {
	campaignID, ok := parseCampaignID(c)
	if !ok {
		return
	}

	sub := h.hub.Subscribe(campaignID)
	defer h.hub.Unsubscribe(sub)

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-sub.Events():
			if !ok {
				return false
			}
			c.SSEvent(event.Type, event.Data)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
