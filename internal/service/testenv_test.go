package service

import (
	"io"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"fate_gm_helper/internal/models"
	"fate_gm_helper/internal/repository"
	"fate_gm_helper/internal/storage"
)

type testEnv struct {
	services *Services
	repos    *repository.Repositories
}

// newTestEnv 以記憶體資料庫建立一組完整的服務
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("開啟測試資料庫失敗: %v", err)
	}

	// 每條新連線都會開出一個全新的 :memory: 資料庫，必須限制為單一連線
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
	return &testEnv{
		services: NewServices(repos, logger),
		repos:    repos,
	}
}

func (e *testEnv) createCampaign(t *testing.T, name string) *models.Campaign {
	t.Helper()

	campaign, err := e.services.Campaign.Create(name, "")
	if err != nil {
		t.Fatalf("建立測試戰役失敗: %v", err)
	}
	return campaign
}
