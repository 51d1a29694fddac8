package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
)

func link(baseURL, path string, query url.Values) string {
	u := strings.TrimRight(baseURL, "/") + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func verificationMessage(baseURL string, a domain.Account) Message {
	return Message{
		To:      a.Email,
		Subject: "Thank you for registering",
		Body: "To complete your registration, please confirm your email address.\n" +
			link(baseURL, "/v1/accounts/verify", url.Values{"code": {a.VerificationCode}}),
	}
}

func emailChangeMessage(baseURL string, a domain.Account) Message {
	return Message{
		To:      a.PendingEmail,
		Subject: "Confirm your new email address",
		Body: "You asked to change the email address on your account. Please confirm it.\n" +
			link(baseURL, "/v1/accounts/email/confirm", url.Values{"code": {a.VerificationCode}}),
	}
}

func invitationMessage(baseURL string, inviter domain.Account, email string) Message {
	return Message{
		To:      email,
		Subject: "You have been invited",
		Body: fmt.Sprintf("You have been invited by %s to register. Follow the link to sign up:\n%s",
			inviter.Username, link(baseURL, "/v1/accounts/signup", nil)),
	}
}
