package migrations

import (
	"reflect"
	"strings"
	"testing"
	"testing/fstest"
)

func TestMigrationFilesSortedAndFiltered(t *testing.T) {
	fsys := fstest.MapFS{
		"sql/010_later.sql":  {Data: []byte("SELECT 1;")},
		"sql/001_init.sql":   {Data: []byte("SELECT 1;")},
		"sql/README.md":      {Data: []byte("notes")},
		"sql/002_extra.sql":  {Data: []byte("SELECT 1;")},
		"sql/nested/003.sql": {Data: []byte("SELECT 1;")},
	}

	got, err := migrationFiles(fsys, "sql")
	if err != nil {
		t.Fatalf("migrationFiles: %v", err)
	}
	want := []string{"001_init.sql", "002_extra.sql", "010_later.sql"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("migrationFiles = %v, want %v", got, want)
	}
}

func TestMigrationFilesMissingDir(t *testing.T) {
	if _, err := migrationFiles(fstest.MapFS{}, "sql"); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestVersionOf(t *testing.T) {
	tests := map[string]string{
		"001_init.sql":           "001",
		"002_add_course_idx.sql": "002",
		"noversion.sql":          "noversion.sql",
	}
	for name, want := range tests {
		if got := versionOf(name); got != want {
			t.Errorf("versionOf(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestEmbeddedSchema(t *testing.T) {
	files, err := migrationFiles(Files, "sql")
	if err != nil {
		t.Fatalf("embedded migrations: %v", err)
	}
	if len(files) == 0 || files[0] != "001_init.sql" {
		t.Fatalf("embedded migrations = %v", files)
	}

	content, err := Files.ReadFile("sql/001_init.sql")
	if err != nil {
		t.Fatalf("read init migration: %v", err)
	}
	schema := string(content)
	for _, fragment := range []string{
		"CREATE TABLE IF NOT EXISTS students",
		"CREATE TABLE IF NOT EXISTS admins",
		"CREATE TABLE IF NOT EXISTS courses",
		"CREATE TABLE IF NOT EXISTS enrollments",
		"REFERENCES students(id) ON DELETE CASCADE",
		"REFERENCES courses(id) ON DELETE CASCADE",
		"CONSTRAINT enrollments_student_course_key UNIQUE (student_id, course_id)",
	} {
		if !strings.Contains(schema, fragment) {
			t.Errorf("schema missing %q", fragment)
		}
	}
}
