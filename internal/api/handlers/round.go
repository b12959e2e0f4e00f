package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fate_gm_helper/internal/models"
	"fate_gm_helper/internal/service"
)

// RoundHandler 處理回合生命週期相關的請求
type RoundHandler struct {
	roundService   *service.RoundService
	historyService *service.HistoryService
}

func NewRoundHandler(roundService *service.RoundService, historyService *service.HistoryService) *RoundHandler {
	return &RoundHandler{
		roundService:   roundService,
		historyService: historyService,
	}
}

// Current 回傳戰役目前開放中的回合，沒有時自動建立
func (h *RoundHandler) Current(c *gin.Context) {
	campaignID, ok := parseCampaignID(c)
	if !ok {
		return
	}

	round, err := h.roundService.GetOrCreateOpenRound(campaignID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"round": round})
}

// Next 手動推進到下一回合
func (h *RoundHandler) Next(c *gin.Context) {
	campaignID, ok := parseCampaignID(c)
	if !ok {
		return
	}

	round, err := h.roundService.OpenNextRound(campaignID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"round": round})
}

// CloseCurrent 關閉目前的回合，請求本體可附帶要存入歷史的快照負載
func (h *RoundHandler) CloseCurrent(c *gin.Context) {
	campaignID, ok := parseCampaignID(c)
	if !ok {
		return
	}

	var payload *service.HistoryPayload
	if c.Request.ContentLength > 0 {
		payload = &service.HistoryPayload{}
		if err := c.ShouldBindJSON(payload); err != nil {
			respondBindingError(c, err)
			return
		}
	}

	round, history, err := h.roundService.CloseCurrentRound(campaignID, payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := gin.H{"round": round}
	if history != nil {
		out["history"] = newActionHistoryResponse(history)
	}
	c.JSON(http.StatusOK, out)
}

// History 列出戰役已封存的回合快照，最新回合在前
func (h *RoundHandler) History(c *gin.Context) {
	campaignID, ok := parseCampaignID(c)
	if !ok {
		return
	}

	histories, err := h.historyService.ListByCampaign(campaignID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]actionHistoryResponse, 0, len(histories))
	for i := range histories {
		out = append(out, newActionHistoryResponse(&histories[i]))
	}
	c.JSON(http.StatusOK, out)
}

// actionHistoryResponse 把存成文字的快照負載還原為 JSON 回傳
type actionHistoryResponse struct {
	ID             uint            `json:"id"`
	CampaignID     uint            `json:"campaignId"`
	TurnNumber     int             `json:"turnNumber"`
	ClosedAt       *time.Time      `json:"closedAt"`
	ActionOrder    json.RawMessage `json:"actionOrder"`
	ServantActions json.RawMessage `json:"servantActions"`
	MasterActions  json.RawMessage `json:"masterActions"`
	CreatedAt      time.Time       `json:"createdAt"`
}

func newActionHistoryResponse(history *models.ActionHistory) actionHistoryResponse {
	return actionHistoryResponse{
		ID:             history.ID,
		CampaignID:     history.CampaignID,
		TurnNumber:     history.TurnNumber,
		ClosedAt:       history.ClosedAt,
		ActionOrder:    rawOrNull(history.ActionOrder),
		ServantActions: rawOrNull(history.ServantActions),
		MasterActions:  rawOrNull(history.MasterActions),
		CreatedAt:      history.CreatedAt,
	}
}

func rawOrNull(s string) json.RawMessage {
	if s == "" {
		return json.RawMessage("null")
	}
	return json.RawMessage(s)
}
