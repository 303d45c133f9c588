package logging

import "testing"

func TestMaskUserID(t *testing.T) {
	tests := []struct {
		name    string
		userID  string
		enabled bool
		want    string
	}{
		{
			name:    "Email with masking enabled",
			userID:  "alice@example.com",
			enabled: true,
			want:    "al***@example.com",
		},
		{
			name:    "Email with masking disabled",
			userID:  "alice@example.com",
			enabled: false,
			want:    "alice@example.com",
		},
		{
			name:    "Short local part",
			userID:  "al@example.com",
			enabled: true,
			want:    "al@example.com",
		},
		{
			name:    "Non-email identifier",
			userID:  "device-user",
			enabled: true,
			want:    "de********r",
		},
		{
			name:    "Empty",
			userID:  "",
			enabled: true,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaskUserID(tt.userID, tt.enabled)
			if got != tt.want {
				t.Errorf("MaskUserID(%q, %v) = %q, want %q", tt.userID, tt.enabled, got, tt.want)
			}
		})
	}
}

func TestMaskPartial(t *testing.T) {
	tests := []struct {
		name       string
		s          string
		keepPrefix int
		keepSuffix int
		maskChar   rune
		want       string
	}{
		{"Standard masking", "1234567890", 3, 2, '*', "123*****90"},
		{"Different mask character", "abcdefghij", 2, 3, 'X', "abXXXXXhij"},
		{"String too short", "abc", 2, 2, '*', "abc"},
		{"Exact length", "abcd", 2, 2, '*', "abcd"},
		{"One character to mask", "abcde", 2, 2, '*', "ab*de"},
		{"Empty string", "", 2, 2, '*', ""},
		{"Unicode string", "あいうえおかきく", 2, 2, '＊', "あい＊＊＊＊きく"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaskPartial(tt.s, tt.keepPrefix, tt.keepSuffix, tt.maskChar)
			if got != tt.want {
				t.Errorf("MaskPartial(%q, %d, %d, %q) = %q, want %q",
					tt.s, tt.keepPrefix, tt.keepSuffix, string(tt.maskChar), got, tt.want)
			}
		})
	}
}

func TestMasker(t *testing.T) {
	t.Run("Masking enabled", func(t *testing.T) {
		m := NewMasker(true)
		if !m.IsEnabled() {
			t.Error("IsEnabled() = false, want true")
		}
		if got := m.UserID("bob.smith@example.com"); got != "bo*******@example.com" {
			t.Errorf("UserID() = %q, want %q", got, "bo*******@example.com")
		}
	})

	t.Run("Masking disabled", func(t *testing.T) {
		m := NewMasker(false)
		if m.IsEnabled() {
			t.Error("IsEnabled() = true, want false")
		}
		if got := m.UserID("bob.smith@example.com"); got != "bob.smith@example.com" {
			t.Errorf("UserID() = %q, want %q", got, "bob.smith@example.com")
		}
	})
}
