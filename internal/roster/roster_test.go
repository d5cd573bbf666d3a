package roster

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeCSV(t, "code,name,sector\n7203.T,トヨタ自動車,自動車\n8306.T,三菱UFJフィナンシャル・グループ,銀行\n")

	refs, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %d", len(refs))
	}
	if refs[0].Code != "7203.T" || refs[0].Name != "トヨタ自動車" || refs[0].Sector != "自動車" {
		t.Errorf("unexpected first ref: %+v", refs[0])
	}
	if refs[1].Code != "8306.T" {
		t.Error("file order must be preserved")
	}
}

func TestLoad_ReorderedColumns(t *testing.T) {
	path := writeCSV(t, "name,sector,code\nトヨタ自動車,自動車,7203.T\n")

	refs, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if refs[0].Code != "7203.T" || refs[0].Sector != "自動車" {
		t.Errorf("columns must be matched by header name: %+v", refs[0])
	}
}

func TestLoad_BOMHeader(t *testing.T) {
	path := writeCSV(t, "\ufeffcode,name,sector\n7203.T,トヨタ自動車,自動車\n")

	if _, err := Load(path); err != nil {
		t.Fatalf("BOM header must be accepted: %v", err)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing column", "code,name\n7203.T,トヨタ自動車\n"},
		{"ragged row", "code,name,sector\n7203.T,トヨタ自動車\n"},
		{"header only", "code,name,sector\n"},
		{"empty file", ""},
	}
	for _, tt := range tests {
		path := writeCSV(t, tt.content)
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected configuration error", tt.name)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("expected error for missing roster file")
	}
}
