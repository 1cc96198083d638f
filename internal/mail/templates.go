package mail

import (
	"strings"
)

// Templates renders the account mails with links rooted at BaseURL.
type Templates struct {
	BaseURL string
}

func NewTemplates(baseURL string) Templates {
	return Templates{BaseURL: strings.TrimRight(baseURL, "/")}
}

func (t Templates) VerificationLink(token string) string {
	return t.BaseURL + "/verify/" + token
}

func (t Templates) PasswordResetLink(token string) string {
	return t.BaseURL + "/reset-password/" + token
}

// Verification returns the subject and body of the address verification mail.
func (t Templates) Verification(token string) (string, string) {
	return "Verify your email",
		"Please verify your email by clicking the link: " + t.VerificationLink(token)
}

// PasswordReset returns the subject and body of the password reset mail.
func (t Templates) PasswordReset(token string) (string, string) {
	return "Reset your password",
		"Click the link to reset your password: " + t.PasswordResetLink(token)
}
