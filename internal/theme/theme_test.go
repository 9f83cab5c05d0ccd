package theme

import "testing"

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != 3 {
		t.Fatalf("Names() returned %d names, want 3", len(names))
	}
	if names[0] != "Classic" || names[1] != "Nightfox" || names[2] != "Slate" {
		t.Fatalf("Names() = %v, want [Classic Nightfox Slate]", names)
	}

	names[0] = "mutated"
	if Names()[0] != "Classic" {
		t.Fatal("Names() should return a copy")
	}
}

func TestNext(t *testing.T) {
	tests := []struct{ current, want string }{
		{"Classic", "Nightfox"},
		{"Nightfox", "Slate"},
		{"Slate", "Classic"},
		{"Unknown", "Classic"},
	}
	for _, tt := range tests {
		if got := Next(tt.current); got != tt.want {
			t.Fatalf("Next(%q) = %q, want %q", tt.current, got, tt.want)
		}
	}
}

func TestGet(t *testing.T) {
	if got := Get("slate").Name; got != "Slate" {
		t.Fatalf("Get(slate).Name = %q, want Slate", got)
	}
	if got := Get("  Nightfox ").Name; got != "Nightfox" {
		t.Fatalf("Get(Nightfox).Name = %q, want Nightfox", got)
	}
	if got := Get("Unknown").Name; got != "Classic" {
		t.Fatalf("Get(Unknown).Name = %q, want Classic fallback", got)
	}
}

func TestThemesHaveAllColors(t *testing.T) {
	for _, name := range Names() {
		th := Get(name)
		for field, value := range map[string]string{
			"Background": th.Background,
			"Border":     th.Border,
			"Focus":      th.Focus,
			"Text":       th.Text,
			"Muted":      th.Muted,
			"Accent":     th.Accent,
			"Title":      th.Title,
			"Success":    th.Success,
			"Warning":    th.Warning,
			"Danger":     th.Danger,
		} {
			if value == "" {
				t.Fatalf("theme %s has empty %s", name, field)
			}
		}
	}
}
