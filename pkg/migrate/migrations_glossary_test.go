package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ccoppo/AcronymLookupTool/pkg/migrate"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration file matching %q", pattern)
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestGlossaryMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_abbreviations.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS abbreviations",
		"CREATE TABLE IF NOT EXISTS abbreviation_projects",
		"CREATE TABLE IF NOT EXISTS personal_abbreviations",
		"UNIQUE (abbreviation_id, project_id)",
		"FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE",
		"CHECK (length(trim(key)) > 0)",
		"DROP TABLE IF EXISTS abbreviations",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestRequestsMigrationGuardsEnums(t *testing.T) {
	content := readMigration(t, "*_create_term_requests.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS term_requests",
		"CHECK (kind IN ('promote', 'add', 'edit', 'delete'))",
		"CHECK (status IN ('pending', 'approved', 'rejected'))",
		"FOREIGN KEY (reviewed_by_user_id) REFERENCES users(id) ON DELETE SET NULL",
		"DROP TABLE IF EXISTS term_requests",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMembershipMigrationEnforcesSinglePair(t *testing.T) {
	content := readMigration(t, "*_create_projects.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS projects",
		"CREATE TABLE IF NOT EXISTS project_members",
		"UNIQUE (project_id, user_id)",
		"CHECK (role IN ('viewer', 'editor', 'admin', 'owner'))",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
