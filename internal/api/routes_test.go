package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"fate_gm_helper/internal/models"
	"fate_gm_helper/internal/repository"
	"fate_gm_helper/internal/service"
	"fate_gm_helper/internal/storage"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("開啟測試資料庫失敗: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("取得底層連線失敗: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&models.Campaign{}, &models.Round{}, &models.ActionSubmission{}, &models.ActionHistory{})
	if err != nil {
		t.Fatalf("遷移測試資料庫失敗: %v", err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	repos := repository.NewRepositories(&storage.PostgresDB{DB: db})
	services := service.NewServices(repos, logger)

	r := gin.New()
	SetupRoutes(r, services)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("編碼請求本體失敗: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("解析回應失敗: %v (body=%s)", err, w.Body.String())
	}
	return out
}

func createTestCampaign(t *testing.T, r *gin.Engine) uint {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/campaigns", gin.H{"name": "測試戰役"})
	if w.Code != http.StatusCreated {
		t.Fatalf("建立戰役應回 201，得到 %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	return uint(body["id"].(float64))
}

func TestSubmitCloseHistoryFlow(t *testing.T) {
	r := newTestRouter(t)
	campaignID := createTestCampaign(t, r)

	// 提交行動：沒有回合時自動開啟第 1 回合
	w := doJSON(t, r, http.MethodPost, "/api/action-submissions", gin.H{
		"campaignId":   campaignID,
		"servantClass": "弓",
		"actionType":   "SERVANT_ACTION",
		"content":      "attack",
		"submittedBy":  "alice",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("提交應回 200，得到 %d: %s", w.Code, w.Body.String())
	}
	submission := decodeBody(t, w)
	if submission["turnNumber"].(float64) != 1 {
		t.Errorf("提交應落在第 1 回合，得到 %v", submission["turnNumber"])
	}
	if submission["current"] != true {
		t.Error("新提交的 current 應為 true")
	}

	// 列出目前有效的提交
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/action-submissions?campaignId=%d", campaignID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("查詢應回 200，得到 %d", w.Code)
	}
	var listed []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("解析回應失敗: %v", err)
	}
	if len(listed) != 1 || listed[0]["content"] != "attack" {
		t.Errorf("應回傳一筆 attack，得到 %+v", listed)
	}

	// 關閉回合並附帶快照負載
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/rounds/close-current?campaignId=%d", campaignID), gin.H{
		"actionOrder":    []gin.H{{"servantClass": "弓", "order": 1}},
		"servantActions": []string{"attack"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("關閉回合應回 200，得到 %d: %s", w.Code, w.Body.String())
	}
	closed := decodeBody(t, w)
	round := closed["round"].(map[string]interface{})
	if round["status"] != string(models.RoundStatusClosed) {
		t.Errorf("回合狀態應為 CLOSED，得到 %v", round["status"])
	}
	history, ok := closed["history"].(map[string]interface{})
	if !ok {
		t.Fatalf("附帶負載時應回傳 history，得到 %+v", closed)
	}
	if history["masterActions"] != nil {
		t.Errorf("省略的 masterActions 應為 null，得到 %v", history["masterActions"])
	}

	// 歷史快照列表
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/rounds/history?campaignId=%d", campaignID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("歷史查詢應回 200，得到 %d", w.Code)
	}
	var histories []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &histories); err != nil {
		t.Fatalf("解析回應失敗: %v", err)
	}
	if len(histories) != 1 {
		t.Fatalf("應有 1 筆快照，得到 %d 筆", len(histories))
	}

	// 關閉後查詢目前回合會自動開啟第 2 回合
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/rounds/current?campaignId=%d", campaignID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("查詢目前回合應回 200，得到 %d", w.Code)
	}
	current := decodeBody(t, w)["round"].(map[string]interface{})
	if current["turnNumber"].(float64) != 2 {
		t.Errorf("新回合編號應為 2，得到 %v", current["turnNumber"])
	}
}

func TestSubmitValidationResponse(t *testing.T) {
	r := newTestRouter(t)
	campaignID := createTestCampaign(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/action-submissions", gin.H{
		"campaignId":   campaignID,
		"servantClass": "弓",
		"actionType":   "SERVANT_ACTION",
		// content 缺漏
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("缺少必填欄位應回 400，得到 %d", w.Code)
	}
	body := decodeBody(t, w)
	fieldErrors, ok := body["fieldErrors"].(map[string]interface{})
	if !ok {
		t.Fatalf("回應應包含 fieldErrors，得到 %+v", body)
	}
	if _, ok := fieldErrors["content"]; !ok {
		t.Errorf("fieldErrors 應包含 content，得到 %+v", fieldErrors)
	}
}

func TestCloseCurrentWithoutOpenRound(t *testing.T) {
	r := newTestRouter(t)
	campaignID := createTestCampaign(t, r)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/rounds/close-current?campaignId=%d", campaignID), nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("沒有開放回合時應回 400，得到 %d: %s", w.Code, w.Body.String())
	}
}

func TestNextRoundEndpoint(t *testing.T) {
	r := newTestRouter(t)
	campaignID := createTestCampaign(t, r)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/rounds/next?campaignId=%d", campaignID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("推進回合應回 200，得到 %d", w.Code)
	}
	first := decodeBody(t, w)["round"].(map[string]interface{})
	if first["turnNumber"].(float64) != 1 {
		t.Errorf("第一個回合編號應為 1，得到 %v", first["turnNumber"])
	}

	// 再推進一次：前一個回合被關閉，新回合編號 +1
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/rounds/next?campaignId=%d", campaignID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("推進回合應回 200，得到 %d", w.Code)
	}
	second := decodeBody(t, w)["round"].(map[string]interface{})
	if second["turnNumber"].(float64) != 2 {
		t.Errorf("第二個回合編號應為 2，得到 %v", second["turnNumber"])
	}
}

func TestUnknownCampaignSubmission(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/action-submissions", gin.H{
		"campaignId":   9999,
		"servantClass": "弓",
		"actionType":   "SERVANT_ACTION",
		"content":      "attack",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("不存在的戰役應回 400，得到 %d", w.Code)
	}
}
