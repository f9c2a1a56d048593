package guard

import "testing"

type checker bool

func (c checker) Authenticated() bool { return bool(c) }

func TestPolicies(t *testing.T) {
	tests := []struct {
		name          string
		policy        Policy
		authenticated bool
		wantAllowed   bool
		wantRedirect  Target
	}{
		{"authenticated route, logged in", RequireAuthenticated{}, true, true, TargetNone},
		{"authenticated route, logged out", RequireAuthenticated{}, false, false, TargetSignIn},
		{"anonymous route, logged out", RequireAnonymous{}, false, true, TargetNone},
		{"anonymous route, logged in", RequireAnonymous{}, true, false, TargetHome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.policy.Evaluate(checker(tt.authenticated))
			if d.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", d.Allowed, tt.wantAllowed)
			}
			if d.RedirectTo != tt.wantRedirect {
				t.Errorf("RedirectTo = %v, want %v", d.RedirectTo, tt.wantRedirect)
			}
		})
	}
}

// Guard decisions must track session changes, not cache the first answer.
func TestReEvaluationAfterSessionChange(t *testing.T) {
	var p Policy = RequireAuthenticated{}

	if d := p.Evaluate(checker(true)); !d.Allowed {
		t.Fatal("expected allow while authenticated")
	}
	// Session cleared (e.g. logout or a 401): the same policy now redirects.
	if d := p.Evaluate(checker(false)); d.Allowed || d.RedirectTo != TargetSignIn {
		t.Fatalf("expected sign-in redirect after clear, got %+v", d)
	}
}
