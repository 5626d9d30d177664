// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Runs commands end to end against a SQLite store in a temp XDG layout.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	_ "time/tzdata"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/harperreed/crumb/internal/config"
	"github.com/harperreed/crumb/internal/models"
	"github.com/harperreed/crumb/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const testUserID = "cli-user"

// resetFlags restores every flag to its default so commands can run again.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// setupTestCLI points XDG data and config dirs at a temp directory and sets
// the acting user. It returns the temp directory.
func setupTestCLI(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmpDir, "data"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	t.Setenv("CRUMB_BACKEND", config.BackendSQLite)
	t.Setenv("CRUMB_USER_ID", testUserID)
	t.Setenv("CRUMB_DATA_DIR", "")
	t.Setenv("CRUMB_TIMEZONE", "")
	t.Setenv("CRUMB_LOG_LEVEL", "error")

	color.NoColor = true
	resetFlags(rootCmd)
	t.Cleanup(func() {
		_ = closeStore()
		resetFlags(rootCmd)
	})
	return tmpDir
}

// runCLI executes the root command with args and returns its stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	_ = closeStore()
	resetFlags(rootCmd)
	return buf.String(), err
}

// openTestDB opens the SQLite database the CLI wrote to.
func openTestDB(t *testing.T) *storage.DB {
	t.Helper()

	db, err := storage.Open(storage.DefaultDBPath())
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func getStats(t *testing.T) *models.UserStats {
	t.Helper()

	db := openTestDB(t)
	st, err := db.GetStats(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if st == nil {
		t.Fatal("Expected stats to be stored")
	}
	_ = db.Close()
	return st
}

func TestRootCmdFlags(t *testing.T) {
	if rootCmd.Use != "crumb" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "crumb")
	}
	if rootCmd.Short == "" {
		t.Error("Expected rootCmd.Short to be non-empty")
	}
	for _, name := range []string{"verbose", "user", "backend"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Expected --%s persistent flag", name)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{
		"init", "log", "stats", "achievements", "level", "export", "import",
		"migrate", "serve", "mcp", "sync", "install-skill",
	}

	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, name := range want {
		if !names[name] {
			t.Errorf("Expected %q command to be registered", name)
		}
	}
}

func TestLogCmdSubcommandsAndFlags(t *testing.T) {
	subs := make(map[string]bool)
	for _, cmd := range logCmd.Commands() {
		subs[cmd.Name()] = true
	}
	if !subs["calorie"] || !subs["before-after"] {
		t.Errorf("log subcommands = %v, want calorie and before-after", subs)
	}

	for _, name := range []string{"nutrient", "item", "waste-grams", "xp"} {
		if logCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Expected --%s flag on log command", name)
		}
	}
}

func TestSkipsStore(t *testing.T) {
	tests := []struct {
		cmd  *cobra.Command
		want bool
	}{
		{initCmd, true},
		{levelCmd, true},
		{levelTableCmd, true},
		{migrateCmd, true},
		{syncStatusCmd, true},
		{installSkillCmd, true},
		{statsCmd, false},
		{logCalorieCmd, false},
		{exportCmd, false},
		{serveCmd, false},
	}

	for _, tt := range tests {
		t.Run(tt.cmd.Name(), func(t *testing.T) {
			if got := skipsStore(tt.cmd); got != tt.want {
				t.Errorf("skipsStore(%s) = %v, want %v", tt.cmd.Name(), got, tt.want)
			}
		})
	}
}

func TestParseNutrients(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    map[string]float64
		wantErr bool
	}{
		{"none", nil, nil, false},
		{"names", []string{"protein=25", "sugar=4.5"}, map[string]float64{models.NutrientProtein: 25, models.NutrientSugar: 4.5}, false},
		{"codes", []string{"FIBTG=6"}, map[string]float64{models.NutrientFiber: 6}, false},
		{"repeated adds up", []string{"fat=3", "fat=2"}, map[string]float64{models.NutrientFat: 5}, false},
		{"missing equals", []string{"protein"}, nil, true},
		{"bad number", []string{"protein=lots"}, nil, true},
		{"unknown nutrient", []string{"vitamin-q=1"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseNutrients(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseNutrients(%v) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseNutrients(%v) unexpected error: %v", tt.input, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseNutrients(%v) = %v, want %v", tt.input, got, tt.want)
			}
			for code, grams := range tt.want {
				if got[code] != grams {
					t.Errorf("%s = %v, want %v", code, got[code], grams)
				}
			}
		})
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		fraction float64
		want     string
	}{
		{0, "[░░░░░░░░░░]"},
		{0.5, "[█████░░░░░]"},
		{1, "[██████████]"},
		{-1, "[░░░░░░░░░░]"},
		{2, "[██████████]"},
	}

	for _, tt := range tests {
		if got := progressBar(tt.fraction, 10); got != tt.want {
			t.Errorf("progressBar(%v) = %q, want %q", tt.fraction, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"", 5, ""},
	}

	for _, tt := range tests {
		if got := truncate(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input  string
		length int
		want   string
	}{
		{"abc", 6, "abc   "},
		{"abcdef", 3, "abcdef"},
		{"", 2, "  "},
	}

	for _, tt := range tests {
		if got := padRight(tt.input, tt.length); got != tt.want {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.length, got, tt.want)
		}
	}
}

func TestInitCmd(t *testing.T) {
	setupTestCLI(t)

	out, err := runCLI(t, "init", "--timezone", "Asia/Tokyo")
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(out, "Config saved") {
		t.Errorf("output = %q, want confirmation", out)
	}

	cfgFile, err := config.LoadFile()
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if _, err := uuid.Parse(cfgFile.UserID); err != nil {
		t.Errorf("UserID = %q, want a UUID: %v", cfgFile.UserID, err)
	}
	if cfgFile.Timezone != "Asia/Tokyo" {
		t.Errorf("Timezone = %q, want Asia/Tokyo", cfgFile.Timezone)
	}
	// Environment overrides are not persisted.
	if cfgFile.Backend != "" {
		t.Errorf("Backend = %q, want empty", cfgFile.Backend)
	}
	first := cfgFile.UserID

	if _, err := runCLI(t, "init"); err != nil {
		t.Fatalf("second init failed: %v", err)
	}
	cfgFile, _ = config.LoadFile()
	if cfgFile.UserID != first {
		t.Errorf("UserID changed to %q, want %q kept", cfgFile.UserID, first)
	}

	if _, err := runCLI(t, "init", "--new-user"); err != nil {
		t.Fatalf("init --new-user failed: %v", err)
	}
	cfgFile, _ = config.LoadFile()
	if cfgFile.UserID == first {
		t.Error("Expected --new-user to replace the user id")
	}
}

func TestInitCmdRejectsBadInput(t *testing.T) {
	setupTestCLI(t)

	if _, err := runCLI(t, "init", "--backend", "mongo"); err == nil {
		t.Error("Expected error for unknown backend")
	}
	if _, err := runCLI(t, "init", "--timezone", "Mars/Olympus"); err == nil {
		t.Error("Expected error for unknown timezone")
	}
	if _, err := os.Stat(config.GetConfigPath()); !os.IsNotExist(err) {
		t.Error("Expected no config file after rejected init")
	}
}

func TestLogCalorieCmd(t *testing.T) {
	setupTestCLI(t)

	out, err := runCLI(t, "log", "calorie", "450", "--item", "Rice", "-i", "salmon")
	if err != nil {
		t.Fatalf("log calorie failed: %v", err)
	}
	for _, want := range []string{"Logged calorie meal", "Clean Plate Rookie", "First Entry"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	st := getStats(t)
	if st.TotalMealsLogged != 1 {
		t.Errorf("TotalMealsLogged = %d, want 1", st.TotalMealsLogged)
	}
	if st.TotalCalories != 450 {
		t.Errorf("TotalCalories = %v, want 450", st.TotalCalories)
	}
	if st.UniqueFoodItemsCount != 2 || st.UniqueFoodItems[0] != "rice" {
		t.Errorf("UniqueFoodItems = %v, want [rice salmon]", st.UniqueFoodItems)
	}
	// 10 for the meal plus 50 and 30 for the first-meal achievements.
	if st.TotalXP != 90 {
		t.Errorf("TotalXP = %d, want 90", st.TotalXP)
	}
}

func TestLogBeforeAfterCmd(t *testing.T) {
	setupTestCLI(t)

	_, err := runCLI(t, "log", "before-after", "600", "0",
		"-n", "protein=25", "-n", "fiber=6", "-n", "sugar=5", "--waste-grams", "0")
	if err != nil {
		t.Fatalf("log before-after failed: %v", err)
	}

	st := getStats(t)
	if st.ZeroWasteMealsCount != 1 || st.ZeroWasteStreak != 1 {
		t.Errorf("zero waste = %d/%d, want 1/1", st.ZeroWasteMealsCount, st.ZeroWasteStreak)
	}
	if st.LowSugarMealsCount != 1 {
		t.Errorf("LowSugarMealsCount = %d, want 1", st.LowSugarMealsCount)
	}
	if st.BalancedMealsCount != 1 {
		t.Errorf("BalancedMealsCount = %d, want 1", st.BalancedMealsCount)
	}
	if st.TotalProtein != 25 {
		t.Errorf("TotalProtein = %v, want 25", st.TotalProtein)
	}
}

func TestLogCmdCustomXP(t *testing.T) {
	setupTestCLI(t)

	if _, err := runCLI(t, "log", "before-after", "500", "120", "--xp", "0"); err != nil {
		t.Fatalf("log failed: %v", err)
	}

	// Leftovers mean no clean-plate award; only the first-log award applies.
	st := getStats(t)
	if st.ZeroWasteMealsCount != 0 {
		t.Errorf("ZeroWasteMealsCount = %d, want 0", st.ZeroWasteMealsCount)
	}
	if st.TotalXP != 30 {
		t.Errorf("TotalXP = %d, want 30", st.TotalXP)
	}
}

func TestLogCmdInvalidInput(t *testing.T) {
	setupTestCLI(t)

	tests := []struct {
		name string
		args []string
	}{
		{"bad calories", []string{"log", "calorie", "lots"}},
		{"negative calories", []string{"log", "calorie", "-5"}},
		{"missing after", []string{"log", "before-after", "500"}},
		{"bad after", []string{"log", "before-after", "500", "x"}},
		{"unknown nutrient", []string{"log", "calorie", "300", "-n", "vitamin-q=1"}},
		{"negative waste", []string{"log", "calorie", "300", "--waste-grams", "-1"}},
		{"nan after", []string{"log", "before-after", "500", "NaN"}},
		{"infinite calories", []string{"log", "calorie", "Inf"}},
		{"infinite nutrient", []string{"log", "calorie", "300", "-n", "sugar=Inf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runCLI(t, tt.args...); err == nil {
				t.Errorf("Expected error for %v", tt.args)
			}
		})
	}

	db := openTestDB(t)
	st, err := db.GetStats(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if st != nil {
		t.Errorf("Expected no stats after rejected logs, got %+v", st)
	}
}

func TestLogCmdRequiresUser(t *testing.T) {
	setupTestCLI(t)
	t.Setenv("CRUMB_USER_ID", "")

	_, err := runCLI(t, "log", "calorie", "300")
	if err == nil || !strings.Contains(err.Error(), "crumb init") {
		t.Errorf("err = %v, want hint to run crumb init", err)
	}
}

func TestUserFlagOverridesConfig(t *testing.T) {
	setupTestCLI(t)

	if _, err := runCLI(t, "log", "calorie", "300", "--user", "someone-else"); err != nil {
		t.Fatalf("log failed: %v", err)
	}

	db := openTestDB(t)
	other, err := db.GetStats(context.Background(), "someone-else")
	if err != nil || other == nil {
		t.Fatalf("GetStats(someone-else) = %v, %v", other, err)
	}
	mine, _ := db.GetStats(context.Background(), testUserID)
	if mine != nil {
		t.Error("Expected no stats for the configured user")
	}
}

func TestStatsCmd(t *testing.T) {
	setupTestCLI(t)

	out, err := runCLI(t, "stats")
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if !strings.Contains(out, "daily logging") {
		t.Errorf("output missing streak section:\n%s", out)
	}

	if _, err := runCLI(t, "log", "calorie", "300", "-i", "oats"); err != nil {
		t.Fatalf("log failed: %v", err)
	}

	out, err = runCLI(t, "stats", "--json")
	if err != nil {
		t.Fatalf("stats --json failed: %v", err)
	}
	var st models.UserStats
	if err := json.Unmarshal([]byte(out), &st); err != nil {
		t.Fatalf("stats --json is not JSON: %v\n%s", err, out)
	}
	if st.TotalMealsLogged != 1 || st.DailyLogStreak != 1 {
		t.Errorf("stats = %+v, want one meal and a 1-day streak", st)
	}
}

func TestAchievementsCmd(t *testing.T) {
	setupTestCLI(t)

	if _, err := runCLI(t, "log", "calorie", "300"); err != nil {
		t.Fatalf("log failed: %v", err)
	}

	out, err := runCLI(t, "achievements")
	if err != nil {
		t.Fatalf("achievements failed: %v", err)
	}
	if !strings.Contains(out, "2/28 unlocked") {
		t.Errorf("output missing summary:\n%s", out)
	}

	out, err = runCLI(t, "achievements", "--unlocked")
	if err != nil {
		t.Fatalf("achievements --unlocked failed: %v", err)
	}
	if !strings.Contains(out, "Clean Plate Rookie") {
		t.Errorf("output missing unlocked achievement:\n%s", out)
	}
	if strings.Contains(out, "0/") {
		t.Errorf("--unlocked printed locked progress:\n%s", out)
	}

	out, err = runCLI(t, "achievements", "check")
	if err != nil {
		t.Fatalf("achievements check failed: %v", err)
	}
	if !strings.Contains(out, "No new achievements.") {
		t.Errorf("output = %q, want no new achievements", out)
	}
}

func TestLevelCmd(t *testing.T) {
	setupTestCLI(t)

	tests := []struct {
		xp   string
		want string
	}{
		{"0", "Level 1"},
		{"100", "Level 1"},
		{"100.5", "Level 2"},
	}

	for _, tt := range tests {
		t.Run(tt.xp, func(t *testing.T) {
			out, err := runCLI(t, "level", tt.xp)
			if err != nil {
				t.Fatalf("level %s failed: %v", tt.xp, err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}

	if _, err := runCLI(t, "level", "-3"); err == nil {
		t.Error("Expected error for negative xp")
	}
	if _, err := runCLI(t, "level", "abc"); err == nil {
		t.Error("Expected error for non-numeric xp")
	}
	for _, xp := range []string{"Inf", "NaN", "1e300"} {
		if _, err := runCLI(t, "level", xp); err == nil {
			t.Errorf("Expected error for xp %s", xp)
		}
	}
}

func TestLevelCmdUsesOwnXP(t *testing.T) {
	setupTestCLI(t)

	for i := 0; i < 3; i++ {
		if _, err := runCLI(t, "log", "calorie", "300"); err != nil {
			t.Fatalf("log failed: %v", err)
		}
	}

	out, err := runCLI(t, "level")
	if err != nil {
		t.Fatalf("level failed: %v", err)
	}
	// 90 + 10 + 10 = 110 XP.
	if !strings.Contains(out, "Level 2") {
		t.Errorf("output missing level 2:\n%s", out)
	}
}

func TestLevelTableCmd(t *testing.T) {
	setupTestCLI(t)

	out, err := runCLI(t, "level", "table", "--rows", "3")
	if err != nil {
		t.Fatalf("level table failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header plus 3:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[1], "100.5") {
		t.Errorf("level 1 row = %q, want cost 100.5", lines[1])
	}

	if _, err := runCLI(t, "level", "table", "--rows", "0"); err == nil {
		t.Error("Expected error for zero rows")
	}
	if _, err := runCLI(t, "level", "table", "--rows", "10001"); err == nil {
		t.Error("Expected error for rows past the last level")
	}
}

func TestExportCmdValidArgs(t *testing.T) {
	expected := map[string]bool{"json": true, "yaml": true, "markdown": true}
	for _, arg := range exportCmd.ValidArgs {
		if !expected[arg] {
			t.Errorf("Unexpected valid arg: %s", arg)
		}
		delete(expected, arg)
	}
	for arg := range expected {
		t.Errorf("Missing valid arg: %s", arg)
	}
}

func TestExportCmdFormats(t *testing.T) {
	setupTestCLI(t)

	if _, err := runCLI(t, "log", "calorie", "300"); err != nil {
		t.Fatalf("log failed: %v", err)
	}

	tests := []struct {
		format string
		want   string
	}{
		{"json", `"tool": "crumb"`},
		{"yaml", "user_id: " + testUserID},
		{"markdown", "Clean Plate Rookie"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := runCLI(t, "export", tt.format)
			if err != nil {
				t.Fatalf("export %s failed: %v", tt.format, err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("export %s missing %q:\n%s", tt.format, tt.want, out)
			}
		})
	}

	if _, err := runCLI(t, "export", "csv"); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	tmpDir := setupTestCLI(t)

	if _, err := runCLI(t, "log", "calorie", "300", "-i", "apple"); err != nil {
		t.Fatalf("log failed: %v", err)
	}

	backup := filepath.Join(tmpDir, "backup.json")
	out, err := runCLI(t, "export", "json", "-o", backup)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(out, "Exported to") {
		t.Errorf("output = %q, want export confirmation", out)
	}

	// Fresh data directory.
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmpDir, "data2"))

	out, err = runCLI(t, "import", backup)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if !strings.Contains(out, "stats: 1  achievements: 2  skipped: 0") {
		t.Errorf("import summary = %q", out)
	}

	out, err = runCLI(t, "import", backup)
	if err != nil {
		t.Fatalf("second import failed: %v", err)
	}
	if !strings.Contains(out, "skipped: 2") {
		t.Errorf("second import summary = %q, want 2 skipped", out)
	}

	st := getStats(t)
	if st.TotalXP != 90 || st.UniqueFoodItemsCount != 1 {
		t.Errorf("imported stats = %+v", st)
	}

	if _, err := runCLI(t, "import", filepath.Join(tmpDir, "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestMigrateCmdValidation(t *testing.T) {
	setupTestCLI(t)

	tests := []struct {
		name string
		args []string
	}{
		{"missing flags", []string{"migrate"}},
		{"missing to", []string{"migrate", "--from", "sqlite"}},
		{"same backend", []string{"migrate", "--from", "sqlite", "--to", "sqlite"}},
		{"unknown source", []string{"migrate", "--from", "mongo", "--to", "sqlite"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runCLI(t, tt.args...); err == nil {
				t.Errorf("Expected error for %v", tt.args)
			}
		})
	}
}

func TestMigrateCmdDryRun(t *testing.T) {
	setupTestCLI(t)

	if _, err := runCLI(t, "log", "calorie", "300"); err != nil {
		t.Fatalf("log failed: %v", err)
	}

	out, err := runCLI(t, "migrate", "--from", "sqlite", "--to", "postgres", "--dry-run")
	if err != nil {
		t.Fatalf("migrate --dry-run failed: %v", err)
	}
	if !strings.Contains(out, "would copy 1 stats row(s) and 2 achievement(s)") {
		t.Errorf("dry run output = %q", out)
	}
}

func TestServeCmdFlags(t *testing.T) {
	addr := serveCmd.Flags().Lookup("addr")
	if addr == nil {
		t.Fatal("Expected --addr flag on serve command")
	}
	if addr.DefValue != ":8080" {
		t.Errorf("default addr = %s, want :8080", addr.DefValue)
	}
	if serveCmd.Flags().Lookup("cors") == nil {
		t.Error("Expected --cors flag on serve command")
	}
}

func TestSyncCmdSubcommands(t *testing.T) {
	want := []string{"link", "unlink", "status", "now", "repair", "reset", "wipe"}

	names := make(map[string]bool)
	for _, cmd := range syncCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, name := range want {
		if !names[name] {
			t.Errorf("Missing sync subcommand %q", name)
		}
	}
}

func TestSyncStatusNonCharmBackend(t *testing.T) {
	setupTestCLI(t)

	if _, err := runCLI(t, "sync", "status"); err != nil {
		t.Errorf("sync status on sqlite failed: %v", err)
	}
}
