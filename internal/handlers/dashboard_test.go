package handlers

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"

	"residence-hub/internal/database"
	"residence-hub/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// базу на закрытом порту: соединение откроется лениво, запросы упадут
func unreachableDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(postgres.Open("host=127.0.0.1 port=1 user=x dbname=x sslmode=disable connect_timeout=1"),
		&gorm.Config{DisableAutomaticPing: true, Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
}

func TestDashboardQueriesLogErrors(t *testing.T) {
	unreachableDB(t)

	var logs bytes.Buffer
	log.SetOutput(&logs)
	defer log.SetOutput(os.Stderr)

	if n := countRows(&models.Visitor{}, "visitors"); n != 0 {
		t.Errorf("visitors: %d", n)
	}
	if n := countRows(&models.Notice{}, "notices"); n != 0 {
		t.Errorf("notices: %d", n)
	}
	if got := latestNotices(5); len(got) != 0 {
		t.Errorf("latest notices: %v", got)
	}

	out := logs.String()
	for _, want := range []string{"count visitors", "count notices", "latest notices"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q: %s", want, out)
		}
	}
}
