// ABOUTME: Tests for the skill command.
// ABOUTME: Validates embedded content, confirmation, and installation into a temp home.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSkillFSReadEmbeddedContent(t *testing.T) {
	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		t.Fatalf("Failed to read embedded skill/SKILL.md: %v", err)
	}

	contentStr := string(content)
	if !strings.HasPrefix(contentStr, "---") {
		t.Error("Expected SKILL.md to start with YAML frontmatter (---)")
	}
	for _, marker := range []string{"name: gymtrack", "description:", "## When to use gymtrack"} {
		if !strings.Contains(contentStr, marker) {
			t.Errorf("Expected SKILL.md to contain %q", marker)
		}
	}
}

func TestSkillReferencesEveryTool(t *testing.T) {
	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		t.Fatalf("Failed to read embedded skill: %v", err)
	}

	tools := []string{
		"list_exercises", "create_exercise", "start_workout", "start_suggested_workout",
		"active_workout", "add_exercise", "add_set", "complete_set", "delete_set",
		"remove_exercise", "complete_workout", "discard_workout", "list_workouts",
		"get_workout", "exercise_history", "personal_records",
		"list_programs", "start_program_day", "skip_program_day",
	}
	for _, tool := range tools {
		if !strings.Contains(string(content), "mcp__gymtrack__"+tool) {
			t.Errorf("Expected embedded SKILL.md to reference %q", tool)
		}
	}
}

func TestInstallSkillWithConfirmFlag(t *testing.T) {
	home := t.TempDir()
	skillSkipConfirm = true
	t.Cleanup(func() { skillSkipConfirm = false })

	var out bytes.Buffer
	if err := installSkill(&out, strings.NewReader(""), home); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}

	skillPath := filepath.Join(home, ".claude", "skills", "gymtrack", "SKILL.md")
	written, err := os.ReadFile(skillPath)
	if err != nil {
		t.Fatalf("Skill file not created: %v", err)
	}
	embedded, _ := skillFS.ReadFile("skill/SKILL.md")
	if !bytes.Equal(written, embedded) {
		t.Error("Installed skill does not match embedded content")
	}
	if !strings.Contains(out.String(), "Installed gymtrack skill") {
		t.Errorf("Expected success message, got:\n%s", out.String())
	}

	info, err := os.Stat(skillPath)
	if err != nil {
		t.Fatalf("Failed to stat skill file: %v", err)
	}
	if info.Mode().Perm()&0600 != 0600 {
		t.Errorf("Expected file to be rw for owner, got %v", info.Mode())
	}
}

func TestInstallSkillPrompt(t *testing.T) {
	tests := []struct {
		name        string
		answer      string
		wantInstall bool
	}{
		{"yes", "y\n", true},
		{"yes spelled out", "YES\n", true},
		{"no", "n\n", false},
		{"empty answer", "\n", false},
		{"no input", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := t.TempDir()
			skillSkipConfirm = false

			var out bytes.Buffer
			if err := installSkill(&out, strings.NewReader(tt.answer), home); err != nil {
				t.Fatalf("installSkill failed: %v", err)
			}

			_, err := os.Stat(filepath.Join(home, ".claude", "skills", "gymtrack", "SKILL.md"))
			if installed := err == nil; installed != tt.wantInstall {
				t.Errorf("installed = %v, want %v\n%s", installed, tt.wantInstall, out.String())
			}
			if !tt.wantInstall && !strings.Contains(out.String(), "Installation canceled.") {
				t.Errorf("Expected cancel message, got:\n%s", out.String())
			}
		})
	}
}

func TestInstallSkillOverwritesExistingFile(t *testing.T) {
	home := t.TempDir()
	skillDir := filepath.Join(home, ".claude", "skills", "gymtrack")
	skillPath := filepath.Join(skillDir, "SKILL.md")

	if err := os.MkdirAll(skillDir, 0755); err != nil {
		t.Fatalf("Failed to create skill directory: %v", err)
	}
	if err := os.WriteFile(skillPath, []byte("# Old Skill\nstale content"), 0644); err != nil {
		t.Fatalf("Failed to write old skill file: %v", err)
	}

	skillSkipConfirm = true
	t.Cleanup(func() { skillSkipConfirm = false })

	var out bytes.Buffer
	if err := installSkill(&out, strings.NewReader(""), home); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}
	if !strings.Contains(out.String(), "already exists") {
		t.Errorf("Expected overwrite notice, got:\n%s", out.String())
	}

	data, err := os.ReadFile(skillPath)
	if err != nil {
		t.Fatalf("Failed to read skill file: %v", err)
	}
	if strings.Contains(string(data), "stale content") {
		t.Error("Old content should have been replaced")
	}
}

func TestSkillCommandSkipsSetup(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dataDir := filepath.Join(t.TempDir(), "unused")

	out, err := runCLI(t, dataDir, "skill", "--yes")
	if err != nil {
		t.Fatalf("skill failed: %v\n%s", err, out)
	}
	if _, err := os.Stat(dataDir); !os.IsNotExist(err) {
		t.Errorf("skill should not create the data directory, stat err = %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".claude", "skills", "gymtrack", "SKILL.md")); err != nil {
		t.Errorf("Skill file not created: %v", err)
	}
}
