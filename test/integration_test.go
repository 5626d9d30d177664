// ABOUTME: Integration tests for crumb CLI.
// ABOUTME: Builds the binary and runs a full logging workflow against SQLite.
package test

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestFullWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the crumb binary")
	}

	// Build the binary
	projectRoot, _ := filepath.Abs("..")
	crumbBinary := filepath.Join(t.TempDir(), "crumb")

	buildCmd := exec.Command("go", "build", "-o", crumbBinary, "./cmd/crumb")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}

	// Isolated XDG layout
	tmpDir := t.TempDir()
	env := append(os.Environ(),
		"XDG_DATA_HOME="+filepath.Join(tmpDir, "data"),
		"XDG_CONFIG_HOME="+filepath.Join(tmpDir, "config"),
		"CRUMB_BACKEND=sqlite",
		"CRUMB_USER_ID=",
		"CRUMB_LOG_LEVEL=error",
		"NO_COLOR=1",
	)

	run := func(args ...string) (string, error) {
		cmd := exec.Command(crumbBinary, args...)
		cmd.Dir = tmpDir
		cmd.Env = env
		output, err := cmd.Output()
		return string(output), err
	}

	// Init creates a user id
	output, err := run("init")
	if err != nil {
		t.Fatalf("Failed to init: %v\n%s", err, output)
	}
	if !strings.Contains(output, "user id:") {
		t.Errorf("Expected 'user id:' in output, got: %s", output)
	}

	// First meal unlocks the starter achievements
	output, err = run("log", "calorie", "520", "--item", "rice", "--item", "salmon")
	if err != nil {
		t.Fatalf("Failed to log meal: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Clean Plate Rookie") {
		t.Errorf("Expected 'Clean Plate Rookie' in output, got: %s", output)
	}

	// Before/after meal with leftovers
	output, err = run("log", "before-after", "700", "120", "-n", "protein=30", "-n", "sugar=4")
	if err != nil {
		t.Fatalf("Failed to log before/after meal: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Logged before_after meal") {
		t.Errorf("Expected 'Logged before_after meal' in output, got: %s", output)
	}

	// Stats reflect both meals
	output, err = run("stats", "--json")
	if err != nil {
		t.Fatalf("Failed to get stats: %v\n%s", err, output)
	}
	var st struct {
		TotalMealsLogged    int   `json:"total_meals_logged"`
		ZeroWasteMealsCount int   `json:"zero_waste_meals_count"`
		ZeroWasteStreak     int   `json:"zero_waste_streak"`
		DailyLogStreak      int   `json:"daily_log_streak"`
		TotalXP             int64 `json:"total_xp"`
	}
	if err := json.Unmarshal([]byte(output), &st); err != nil {
		t.Fatalf("stats --json is not JSON: %v\n%s", err, output)
	}
	if st.TotalMealsLogged != 2 {
		t.Errorf("TotalMealsLogged = %d, want 2", st.TotalMealsLogged)
	}
	if st.ZeroWasteMealsCount != 1 || st.ZeroWasteStreak != 0 {
		t.Errorf("zero waste count/streak = %d/%d, want 1/0", st.ZeroWasteMealsCount, st.ZeroWasteStreak)
	}
	if st.DailyLogStreak != 1 {
		t.Errorf("DailyLogStreak = %d, want 1", st.DailyLogStreak)
	}
	// 10 + 15 for the meals, 50 + 30 for the starter achievements.
	if st.TotalXP != 105 {
		t.Errorf("TotalXP = %d, want 105", st.TotalXP)
	}

	// Board and level
	output, err = run("achievements", "--unlocked")
	if err != nil {
		t.Fatalf("Failed to list achievements: %v\n%s", err, output)
	}
	if !strings.Contains(output, "First Entry") {
		t.Errorf("Expected 'First Entry' in achievements, got: %s", output)
	}

	output, err = run("level")
	if err != nil {
		t.Fatalf("Failed to show level: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Level 2") {
		t.Errorf("Expected 'Level 2' in level output, got: %s", output)
	}

	// Export round trip
	output, err = run("export", "markdown")
	if err != nil {
		t.Fatalf("Failed to export: %v\n%s", err, output)
	}
	if !strings.Contains(output, "First Entry") {
		t.Errorf("Expected achievement titles in markdown export, got: %s", output)
	}
}
