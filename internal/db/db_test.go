package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/zulandar/chalkline/internal/models"
)

func TestConnectAndMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")

	gdb, err := Connect(path)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if err := Migrate(gdb); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	sub := models.Submission{
		ID:              "su-1",
		StudentName:     "Sevannah",
		AssignmentTitle: "Refutation",
		MessageCount:    6,
		TranscriptChars: 4200,
		AssessmentChars: 900,
		NotionPageID:    "page-1",
		CreatedAt:       time.Now(),
	}
	if err := gdb.Create(&sub).Error; err != nil {
		t.Fatalf("insert: %v", err)
	}

	var got models.Submission
	if err := gdb.First(&got, "id = ?", "su-1").Error; err != nil {
		t.Fatalf("query: %v", err)
	}
	if got.MessageCount != 6 {
		t.Errorf("MessageCount = %d, want 6", got.MessageCount)
	}
	if got.StudentName != "Sevannah" {
		t.Errorf("StudentName = %q, want Sevannah", got.StudentName)
	}
}
