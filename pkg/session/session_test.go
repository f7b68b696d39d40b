package session

import (
	"context"
	"testing"
)

const testSecret = "unit-test-secret"

func TestIssueAndParse(t *testing.T) {
	original := &Session{
		StaffID:             "staff-42",
		Name:                "Dana Reyes",
		Role:                "manager",
		CampgroundID:        "cg-1",
		CanApproveOverrides: true,
	}

	token, err := Issue(original, testSecret)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	parsed, err := Parse("Bearer "+token, testSecret)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if parsed.StaffID != original.StaffID {
		t.Errorf("StaffID = %q, want %q", parsed.StaffID, original.StaffID)
	}
	if parsed.Role != original.Role {
		t.Errorf("Role = %q, want %q", parsed.Role, original.Role)
	}
	if !parsed.CanApproveOverrides {
		t.Errorf("CanApproveOverrides should survive the round trip")
	}
}

func TestParse_Rejections(t *testing.T) {
	goodToken, err := Issue(&Session{StaffID: "staff-1"}, testSecret)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"empty token", "", testSecret},
		{"garbage token", "Bearer not.a.jwt", testSecret},
		{"wrong secret", "Bearer " + goodToken, "other-secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.token, tt.secret); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}

func TestContextRoundTrip(t *testing.T) {
	s := &Session{StaffID: "staff-7"}
	ctx := WithContext(context.Background(), s)

	if got := FromContext(ctx); got == nil || got.StaffID != "staff-7" {
		t.Errorf("FromContext = %+v, want staff-7", got)
	}
	if got := FromContext(context.Background()); got != nil {
		t.Errorf("FromContext on empty context should be nil, got %+v", got)
	}
}
