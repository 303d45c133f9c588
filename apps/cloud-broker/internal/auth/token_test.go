package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	testingclock "k8s.io/utils/clock/testing"
)

func TestVerifier_RoundTrip(t *testing.T) {
	clk := testingclock.NewFakePassiveClock(time.UnixMilli(1700000000000))
	v := NewVerifier("secret", clk)

	token, err := v.Issue("user@example.com", time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	got, err := v.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if got != "user@example.com" {
		t.Errorf("Verify() = %q, want user@example.com", got)
	}
}

func TestVerifier_Rejections(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	clk := testingclock.NewFakePassiveClock(now)
	v := NewVerifier("secret", clk)

	expired, _ := v.Issue("user@example.com", time.Minute)
	other, _ := NewVerifier("other-secret", clk).Issue("user@example.com", time.Hour)
	noSubject, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString([]byte("secret"))
	wrongAlg, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, CoreClaims{
		Email: "user@example.com",
	}).SignedString([]byte("secret"))

	clk.SetTime(now.Add(2 * time.Minute))

	tests := []struct {
		name  string
		token string
	}{
		{"expired", expired},
		{"wrong secret", other},
		{"no subject", noSubject},
		{"wrong algorithm", wrongAlg},
		{"garbage", "not-a-jwt"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := v.Verify(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestVerifier_SubjectFallback(t *testing.T) {
	clk := testingclock.NewFakePassiveClock(time.UnixMilli(1700000000000))
	v := NewVerifier("secret", clk)
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "u-123",
	}).SignedString([]byte("secret"))

	got, err := v.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if got != "u-123" {
		t.Errorf("Verify() = %q, want u-123", got)
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{"Bearer abc.def", "abc.def", false},
		{"bearer abc", "abc", false},
		{"Basic abc", "", true},
		{"Bearer ", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := BearerToken(tt.header)
		if (err != nil) != tt.wantErr {
			t.Errorf("BearerToken(%q) error = %v, wantErr %v", tt.header, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("BearerToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
