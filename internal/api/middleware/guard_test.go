package middleware

import (
	"testing"

	"showfolio/internal/database"
	"showfolio/internal/session"
)

func TestEvaluate(t *testing.T) {
	student := &database.Profile{Role: database.RoleStudent}
	recruiter := &database.Profile{Role: database.RoleRecruiter}

	tests := []struct {
		name         string
		snap         session.Snapshot
		requiredRole string
		want         Decision
	}{
		{
			name: "loading renders nothing",
			snap: session.Snapshot{},
			want: DecisionLoading,
		},
		{
			name: "unauthenticated goes to login",
			snap: session.Snapshot{State: session.StateUnauthenticated},
			want: DecisionRedirectLogin,
		},
		{
			name: "authenticated without profile goes to login",
			snap: session.Snapshot{State: session.StateAuthenticated},
			want: DecisionRedirectLogin,
		},
		{
			name: "authenticated with no role requirement",
			snap: session.Snapshot{State: session.StateAuthenticated, Profile: recruiter},
			want: DecisionAllow,
		},
		{
			name:         "matching role allowed",
			snap:         session.Snapshot{State: session.StateAuthenticated, Profile: student},
			requiredRole: database.RoleStudent,
			want:         DecisionAllow,
		},
		{
			name:         "role mismatch goes to dashboard",
			snap:         session.Snapshot{State: session.StateAuthenticated, Profile: recruiter},
			requiredRole: database.RoleStudent,
			want:         DecisionRedirectDashboard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.snap, tt.requiredRole); got != tt.want {
				t.Fatalf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}
