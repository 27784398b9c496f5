package model

import "testing"

func TestNewFetchPlan(t *testing.T) {
	tests := []struct {
		baseURL   string
		contentID string
		name      string
		wantURL   string
		wantPath  string
	}{
		{"https://cdn.example/", "abc123", "a.bin", "https://cdn.example/abc123/a.bin", "abc123/a.bin"},
		{"https://cdn.example/assets/", "abc123", "sc/ui.sc", "https://cdn.example/assets/abc123/sc/ui.sc", "abc123/sc/ui.sc"},
		{"http://localhost:8080/", "0f", "csv_logic/cards.csv", "http://localhost:8080/0f/csv_logic/cards.csv", "0f/csv_logic/cards.csv"},
	}

	for _, test := range tests {
		plan := NewFetchPlan(test.baseURL, test.contentID, FileDescriptor{RelativeName: test.name})
		if plan.URL != test.wantURL {
			t.Errorf("NewFetchPlan(%q, %q, %q).URL = %s, expected %s", test.baseURL, test.contentID, test.name, plan.URL, test.wantURL)
		}
		if plan.Path != test.wantPath {
			t.Errorf("NewFetchPlan(%q, %q, %q).Path = %s, expected %s", test.baseURL, test.contentID, test.name, plan.Path, test.wantPath)
		}
		if plan.Name != test.name {
			t.Errorf("NewFetchPlan name = %s, expected %s", plan.Name, test.name)
		}
	}
}

func TestNewFetchPlan_Deterministic(t *testing.T) {
	fd := FileDescriptor{RelativeName: "sfx/menu.ogg"}
	first := NewFetchPlan("https://cdn.example/", "abc123", fd)

	for i := 0; i < 100; i++ {
		if got := NewFetchPlan("https://cdn.example/", "abc123", fd); got != first {
			t.Fatalf("plan changed between calls: %+v vs %+v", got, first)
		}
	}
}

func TestManifest_Plans(t *testing.T) {
	m := &Manifest{
		ContentID: "abc123",
		Files: []FileDescriptor{
			{RelativeName: "a.bin"},
			{RelativeName: "b/c.bin"},
		},
	}

	plans := m.Plans("https://cdn.example/")
	if len(plans) != 2 {
		t.Fatalf("Expected 2 plans, got %d", len(plans))
	}
	if plans[0].Path != "abc123/a.bin" || plans[1].Path != "abc123/b/c.bin" {
		t.Errorf("Plans not in manifest order: %+v", plans)
	}
	if m.IsEmpty() {
		t.Error("Manifest with files should not be empty")
	}

	empty := &Manifest{ContentID: "abc123"}
	if !empty.IsEmpty() || len(empty.Plans("https://cdn.example/")) != 0 {
		t.Error("Manifest without files should produce no plans")
	}
}
