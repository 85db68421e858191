// Package validate checks raw registration input against the account rules.
//
// WHY A SEPARATE PACKAGE?
// Validation is a pure function: same input, same output, no database, no
// clock, no logger. Keeping it free of dependencies means every caller
// (HTTP handler, CLI import tool, tests) shares exactly one set of rules,
// and the tests need no setup at all.
package validate

import "strings"

// Account rules. Passwords shorter than MinPasswordLength bytes are
// rejected.
const (
	MinUsernameLength = 2
	MinPasswordLength = 6
)

// Messages for each rule, shared with the tests and rendered verbatim on
// the registration form.
const (
	MsgNameTooShort     = "name must be at least 2 characters"
	MsgInvalidEmail     = "email address is not valid"
	MsgPasswordTooShort = "password must be at least 6 characters"
)

// UserInput checks a registration submission and returns one message per
// failed rule. An empty slice means the input passed every check.
//
// All rules are evaluated: a submission with a short name AND a bad email
// AND a short password gets three messages, not just the first. The form
// can then show everything that needs fixing in one round trip.
func UserInput(username, email, password string) []string {
	var errs []string

	if len([]rune(strings.TrimSpace(username))) < MinUsernameLength {
		errs = append(errs, MsgNameTooShort)
	}
	if !emailShape(strings.TrimSpace(email)) {
		errs = append(errs, MsgInvalidEmail)
	}
	if len(password) < MinPasswordLength {
		errs = append(errs, MsgPasswordTooShort)
	}

	return errs
}

// emailShape checks the basic "local@domain-with-dot" shape.
//
// This is intentionally NOT a full RFC 5322 parser. The rule is: non-empty
// local part, exactly the shape something@domain.tld, a dot somewhere after
// the @ (not immediately after, not at the end), and no whitespace anywhere.
// Deliverability can only be proven by sending mail, so anything stricter
// just rejects real addresses.
func emailShape(email string) bool {
	if email == "" || strings.ContainsAny(email, " \t\n") {
		return false
	}

	at := strings.Index(email, "@")
	if at <= 0 || at != strings.LastIndex(email, "@") {
		return false // missing @, empty local part, or more than one @
	}

	domain := email[at+1:]
	dot := strings.LastIndex(domain, ".")
	if dot <= 0 || dot == len(domain)-1 {
		return false // no dot after @, dot leads the domain, or empty TLD
	}

	return true
}
