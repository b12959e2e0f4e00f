package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fate_gm_helper/internal/models"
	"fate_gm_helper/internal/service"
)

// SubmissionHandler 處理行動提交相關的請求
type SubmissionHandler struct {
	submissionService *service.ActionSubmissionService
}

func NewSubmissionHandler(submissionService *service.ActionSubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

// Submit 處理提交行動的請求
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var input struct {
		CampaignID   uint   `json:"campaignId" binding:"required"`
		ServantClass string `json:"servantClass" binding:"required"`
		ActionType   string `json:"actionType" binding:"required,oneof=SERVANT_ACTION MASTER_ACTION"`
		Content      string `json:"content" binding:"required"`
		SubmittedBy  string `json:"submittedBy"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}

	submission, err := h.submissionService.Submit(service.SubmitActionInput{
		CampaignID:   input.CampaignID,
		ServantClass: input.ServantClass,
		ActionType:   models.ActionType(input.ActionType),
		Content:      input.Content,
		SubmittedBy:  input.SubmittedBy,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, submission)
}

// ListCurrent 列出戰役目前有效的行動提交
func (h *SubmissionHandler) ListCurrent(c *gin.Context) {
	campaignID, ok := parseCampaignID(c)
	if !ok {
		return
	}

	submissions, err := h.submissionService.ListCurrent(campaignID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, submissions)
}
