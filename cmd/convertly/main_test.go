package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"convertly/internal/convert"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	output, err := runCommand(t, "config", "init", "--output", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(output, target) {
		t.Errorf("output missing target path: %q", output)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "base_url") {
		t.Errorf("sample missing base_url: %q", string(data))
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(target, []byte("keep me"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCommand(t, "config", "init", "--output", target); err == nil {
		t.Fatal("expected error for existing file")
	}
	data, _ := os.ReadFile(target)
	if string(data) != "keep me" {
		t.Errorf("existing file was overwritten")
	}
}

func TestRenderTaskTableShowsProgressAndStatus(t *testing.T) {
	rendered := renderTaskTable([]convert.Task{
		{
			ID:         "f1",
			FileName:   "report.pdf",
			FromFormat: "pdf",
			ToFormat:   "docx",
			FileSize:   "2.4 MB",
			Progress:   100,
			Status:     convert.StatusCompleted,
		},
		{
			ID:         "f2",
			FileName:   "song.wav",
			FromFormat: "wav",
			ToFormat:   "mp3",
			Progress:   30,
			Status:     convert.StatusError,
			Message:    "Network error",
		},
	})

	for _, want := range []string{"report.pdf", "PDF", "DOCX", "100%", "completed", "error (Network error)"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("table missing %q:\n%s", want, rendered)
		}
	}
}

func TestSplitTags(t *testing.T) {
	tags := splitTags(" pdf, conversion ,, docs ")
	if len(tags) != 3 || tags[0] != "pdf" || tags[2] != "docs" {
		t.Errorf("tags = %v", tags)
	}
	if splitTags("  ") != nil {
		t.Error("blank input should yield no tags")
	}
}

func TestUnknownCommandFails(t *testing.T) {
	if _, err := runCommand(t, "definitely-not-a-command"); err == nil {
		t.Fatal("expected error for unknown command")
	}
}
