package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/zulandar/chalkline/internal/db"
	"github.com/zulandar/chalkline/internal/models"
)

func TestSubmissions_Empty(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"submissions", "--config", writeDoctorConfig(t)})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("submissions failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No submissions recorded.") {
		t.Errorf("output = %q, want empty notice", buf.String())
	}
}

func TestSubmissions_ListsNewestFirst(t *testing.T) {
	configPath := writeDoctorConfig(t)

	archivePath := strings.Replace(configPath, "chalkline.yaml", "archive.db", 1)
	gdb, err := db.Connect(archivePath)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	older := models.Submission{
		ID: "older", StudentName: "Sevannah", AssignmentTitle: "Refutation",
		MessageCount: 4, CreatedAt: time.Now().Add(-48 * time.Hour),
	}
	newer := models.Submission{
		ID: "newer", StudentName: "Sevannah", AssignmentTitle: "Refutation",
		MessageCount: 9, CreatedAt: time.Now(),
	}
	if err := gdb.Create(&older).Error; err != nil {
		t.Fatal(err)
	}
	if err := gdb.Create(&newer).Error; err != nil {
		t.Fatal(err)
	}

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"submissions", "--config", configPath})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("submissions failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "STUDENT") {
		t.Fatalf("missing table header:\n%s", out)
	}
	nine := strings.Index(out, "\t9\t")
	four := strings.Index(out, "\t4\t")
	if nine == -1 || four == -1 {
		// tabwriter expands tabs; fall back to column text.
		nine = strings.Index(out, " 9 ")
		four = strings.Index(out, " 4 ")
	}
	if nine == -1 || four == -1 {
		t.Fatalf("missing message counts:\n%s", out)
	}
	if nine > four {
		t.Errorf("newest submission not listed first:\n%s", out)
	}
}
