package auth

import "testing"

func TestSession_IsGuest(t *testing.T) {
	s := Session{Role: RoleGuest}
	if !s.IsGuest() {
		t.Fatalf("expected guest")
	}
	if (Session{Role: RolePartner}).IsGuest() {
		t.Fatalf("did not expect guest")
	}
	if !(Session{Role: RoleAdmin}).IsAdmin() {
		t.Fatalf("expected admin")
	}
}

func TestRole_AtLeast(t *testing.T) {
	tests := []struct {
		have, need Role
		want       bool
	}{
		{RoleAdmin, RoleAdmin, true},
		{RoleAdmin, RolePartner, true},
		{RolePartner, RolePartner, true},
		{RolePartner, RoleAdmin, false},
		{RoleGuest, RolePartner, false},
		{Role("unknown"), RoleGuest, true},
		{Role("unknown"), RolePartner, false},
	}
	for _, tt := range tests {
		if got := tt.have.AtLeast(tt.need); got != tt.want {
			t.Errorf("%s.AtLeast(%s) = %v, want %v", tt.have, tt.need, got, tt.want)
		}
	}
}
