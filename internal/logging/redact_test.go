package logging

import "testing"

func TestShouldMask(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"Authorization", true},
		{"X-Api-Key", true},
		{"ACCESS_TOKEN", true},
		{"mcpAccessKey", true},
		{"DB_PASSWORD", true},
		{"PATH", false},
		{"Content-Type", false},
		{"timeout", false},
	}

	for _, tt := range tests {
		if got := ShouldMask(tt.key); got != tt.want {
			t.Errorf("ShouldMask(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestMaskValue(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"abc", "********"},
		{"abcd", "********"},
		{"abcdefgh", "****efgh"},
	}

	for _, tt := range tests {
		if got := MaskValue(tt.value); got != tt.want {
			t.Errorf("MaskValue(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestMaskSecrets(t *testing.T) {
	env := map[string]string{
		"GITHUB_TOKEN": "ghp_1234567890",
		"PLAIN":        "visible",
		"SNEAKY":       "sk-hidden-key",
	}

	masked := MaskSecrets(env)

	if masked["GITHUB_TOKEN"] == env["GITHUB_TOKEN"] {
		t.Error("GITHUB_TOKEN not masked")
	}
	if masked["PLAIN"] != "visible" {
		t.Errorf("PLAIN should pass through, got %q", masked["PLAIN"])
	}
	if masked["SNEAKY"] == env["SNEAKY"] {
		t.Error("token-prefixed value not masked")
	}
}

func TestMaskSecretsNil(t *testing.T) {
	if MaskSecrets(nil) != nil {
		t.Error("MaskSecrets(nil) should return nil")
	}
}
