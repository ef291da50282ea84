package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const doctorYAML = `
assignment:
  student_name: Sevannah
  title: Refutation
  tutor_prompt: Be Socratic.
  opening_message: Hi!
  notion_page_id: 312bd7e4-f82c-8132-8f5c-d67762583bcb
archive:
  path: %s
`

func writeDoctorConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "chalkline.yaml")
	yaml := strings.ReplaceAll(doctorYAML, "%s", filepath.Join(dir, "archive.db"))
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDoctor_AllChecksPass(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("NOTION_API_KEY", "test-key")

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"doctor", "--config", writeDoctorConfig(t)})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("doctor failed: %v\n%s", err, buf.String())
	}

	out := buf.String()
	if strings.Contains(out, "[FAIL]") {
		t.Errorf("unexpected failure:\n%s", out)
	}
	if !strings.Contains(out, "[PASS] Notion page id") {
		t.Errorf("missing page id pass:\n%s", out)
	}
	if !strings.Contains(out, "0 failed") {
		t.Errorf("summary missing 0 failed:\n%s", out)
	}
}

func TestDoctor_MissingKeysFail(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("NOTION_API_KEY", "")

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"doctor", "--config", writeDoctorConfig(t)})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected doctor to fail without API keys")
	}
	out := buf.String()
	if !strings.Contains(out, "[FAIL] GEMINI_API_KEY: not set") {
		t.Errorf("missing gemini failure:\n%s", out)
	}
	if !strings.Contains(out, "[FAIL] NOTION_API_KEY: not set") {
		t.Errorf("missing notion failure:\n%s", out)
	}
}

func TestDoctor_MalformedPageIDWarns(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("NOTION_API_KEY", "k")

	dir := t.TempDir()
	path := filepath.Join(dir, "chalkline.yaml")
	yaml := strings.ReplaceAll(doctorYAML, "312bd7e4-f82c-8132-8f5c-d67762583bcb", "not-a-page-id")
	yaml = strings.ReplaceAll(yaml, "%s", filepath.Join(dir, "archive.db"))
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"doctor", "--config", path})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("warn should not fail doctor: %v", err)
	}
	if !strings.Contains(buf.String(), "[WARN] Notion page id") {
		t.Errorf("missing page id warning:\n%s", buf.String())
	}
}
