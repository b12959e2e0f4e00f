package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"fate_gm_helper/internal/service"
)

// parseCampaignID 從查詢字串解析 campaignId
func parseCampaignID(c *gin.Context) (uint, bool) {
	campaignID, err := strconv.ParseUint(c.Query("campaignId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的戰役ID"})
		return 0, false
	}
	return uint(campaignID), true
}

// respondBindingError 把請求繫結失敗轉成帶逐欄位訊息的回應
func respondBindingError(c *gin.Context, err error) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		fieldErrors := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			fieldErrors[fe.Field()] = validationMessage(fe)
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":       "Validation failed",
			"fieldErrors": fieldErrors,
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "必填欄位"
	case "oneof":
		return "不在允許的值範圍內"
	default:
		return "欄位格式不正確"
	}
}

// respondServiceError 把服務層錯誤對應到 HTTP 狀態碼
// 已知的客戶端錯誤回 400，其餘一律回通用的伺服器錯誤
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCampaignNotFound),
		errors.Is(err, service.ErrNoOpenRound),
		errors.Is(err, service.ErrInvalidActionType),
		errors.Is(err, service.ErrEmptyServantClass),
		errors.Is(err, service.ErrEmptyContent),
		errors.Is(err, service.ErrEmptyCampaignName):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "內部伺服器錯誤"})
	}
}
