package task

import "testing"

func TestSlug(t *testing.T) {
	tests := []struct {
		id    int
		title string
		want  string
	}{
		{1, "Write docs", "001-write-docs"},
		{12, "Fix: the  login bug!!", "012-fix-the-login-bug"},
		{7, "Café au lait", "007-cafe-au-lait"},
		{3, "  --leading and trailing--  ", "003-leading-and-trailing"},
		{42, "v2.0 release", "042-v2-0-release"},
		{1000, "x", "1000-x"},
		{5, "!!!", "005-task"},
		{9, "alpha beta gamma delta epsilon zeta eta theta iota kappa", "009-alpha-beta-gamma-delta-epsilon-zeta-eta-theta"},
		{10, "日本語 タスク", "010-日本語-タスク"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Slug(tt.id, tt.title); got != tt.want {
				t.Errorf("Slug(%d, %q) = %q, want %q", tt.id, tt.title, got, tt.want)
			}
		})
	}
}

func TestSlugIsStable(t *testing.T) {
	first := Slug(4, "Ship the release")
	for i := 0; i < 3; i++ {
		if got := Slug(4, "Ship the release"); got != first {
			t.Fatalf("Slug not stable: %q vs %q", got, first)
		}
	}
}

func TestParseFileID(t *testing.T) {
	tests := []struct {
		name   string
		want   int
		wantOK bool
	}{
		{"001-write-docs.yml", 1, true},
		{"1000-x.yml", 1000, true},
		{"042.yml", 42, true},
		{"000-zero.yml", 0, false},
		{"abc-write.yml", 0, false},
		{"001-write-docs.yaml", 0, false},
		{"-write.yml", 0, false},
		{"notes.txt", 0, false},
		{".yml", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFileID(tt.name)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseFileID(%q) = (%d, %v), want (%d, %v)", tt.name, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSlugRoundTripsThroughFileName(t *testing.T) {
	slug := Slug(17, "Refactor parser")
	id, ok := ParseFileID(slug + ".yml")
	if !ok || id != 17 {
		t.Errorf("ParseFileID(%q) = (%d, %v), want (17, true)", slug+".yml", id, ok)
	}
}
