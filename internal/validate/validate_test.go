package validate

import "testing"

// =========================================================================
// UserInput TESTS
// =========================================================================

func TestUserInput_ValidInput(t *testing.T) {
	errs := UserInput("Juan Pérez", "juan@test.com", "password123")
	if len(errs) != 0 {
		t.Errorf("UserInput() = %v, want no errors", errs)
	}
}

func TestUserInput_AllRulesFail(t *testing.T) {
	// Short name, bad email, short password: all three must be reported,
	// not just the first.
	errs := UserInput("A", "invalid-email", "123")
	if len(errs) != 3 {
		t.Fatalf("UserInput() returned %d errors, want 3: %v", len(errs), errs)
	}
}

func TestUserInput_IsPure(t *testing.T) {
	// Same input, same output, no hidden state.
	first := UserInput("A", "invalid", "12")
	second := UserInput("A", "invalid", "12")
	if len(first) != len(second) {
		t.Errorf("UserInput() not deterministic: %v vs %v", first, second)
	}
}

func TestUserInput_Username(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"single char", "A", true},
		{"whitespace only", "   ", true},
		{"padded single char", "  B  ", true},
		{"two chars", "Al", false},
		{"padded valid name", "  Juan Pérez  ", false},
		{"two runes non-ascii", "Ñá", false}, // rune count, not byte count
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := UserInput(tt.username, "valid@test.com", "password123")
			if tt.wantErr && !contains(errs, MsgNameTooShort) {
				t.Errorf("UserInput(%q) missing %q in %v", tt.username, MsgNameTooShort, errs)
			}
			if !tt.wantErr && contains(errs, MsgNameTooShort) {
				t.Errorf("UserInput(%q) unexpectedly failed name rule", tt.username)
			}
		})
	}
}

func TestUserInput_Email(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"no at sign", "invalid-email", true},
		{"empty", "", true},
		{"no dot after at", "user@invalid", true},
		{"dot before at only", "user.name@invalid", true},
		{"empty local part", "@test.com", true},
		{"trailing dot", "user@test.", true},
		{"dot right after at", "user@.com", true},
		{"double at", "user@@test.com", true},
		{"interior space", "user name@test.com", true},
		{"plain address", "juan@test.com", false},
		{"subdomain", "user@mail.example.org", false},
		{"surrounding whitespace trimmed", "  JUAN@TEST.COM  ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := UserInput("Valid Name", tt.email, "password123")
			if tt.wantErr && !contains(errs, MsgInvalidEmail) {
				t.Errorf("UserInput(email=%q) missing %q in %v", tt.email, MsgInvalidEmail, errs)
			}
			if !tt.wantErr && contains(errs, MsgInvalidEmail) {
				t.Errorf("UserInput(email=%q) unexpectedly failed email rule", tt.email)
			}
		})
	}
}

func TestUserInput_Password(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"three chars", "123", true},
		{"five chars", "12345", true},
		{"empty", "", true},
		{"exactly six", "123456", false},
		{"long", "password123", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := UserInput("Valid Name", "valid@test.com", tt.password)
			if tt.wantErr && !contains(errs, MsgPasswordTooShort) {
				t.Errorf("UserInput(password=%q) missing %q in %v", tt.password, MsgPasswordTooShort, errs)
			}
			if !tt.wantErr && contains(errs, MsgPasswordTooShort) {
				t.Errorf("UserInput(password=%q) unexpectedly failed password rule", tt.password)
			}
		})
	}
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
