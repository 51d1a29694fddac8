package mail

import (
	"bytes"
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/identity/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestLogMailer(t *testing.T) {
	var buf bytes.Buffer
	logger := slogx.New(slogx.Config{Service: "identity", Format: "json", Output: &buf})

	require.NoError(t, LogMailer{Logger: logger}.Deliver(context.Background(), "a@x.com", "Hello", "body"))
	require.Contains(t, buf.String(), `"to":"a@x.com"`)
	require.Contains(t, buf.String(), `"subject":"Hello"`)
}

func TestSMTPMailer(t *testing.T) {
	m, err := NewSMTPMailer(SMTPConfig{Host: "smtp.test", Username: "user", Password: "pw", From: "noreply@x.com"})
	require.NoError(t, err)
	m.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	var gotAuth smtp.Auth
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotAuth, gotFrom, gotTo, gotMsg = addr, a, from, to, msg
		return nil
	}

	require.NoError(t, m.Deliver(context.Background(), "a@x.com", "Verify", "line one\nline two"))
	require.Equal(t, "smtp.test:587", gotAddr)
	require.NotNil(t, gotAuth)
	require.Equal(t, "noreply@x.com", gotFrom)
	require.Equal(t, []string{"a@x.com"}, gotTo)

	msg := string(gotMsg)
	require.True(t, strings.HasPrefix(msg, "From: noreply@x.com\r\nTo: a@x.com\r\nSubject: Verify\r\n"))
	require.Contains(t, msg, "\r\n\r\nline one\r\nline two")

	t.Run("relay errors surface", func(t *testing.T) {
		m.send = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("421 busy") }
		require.ErrorContains(t, m.Deliver(context.Background(), "a@x.com", "s", "b"), "421 busy")
	})

	t.Run("header injection", func(t *testing.T) {
		require.Error(t, m.Deliver(context.Background(), "a@x.com\r\nBcc: evil@x.com", "s", "b"))
	})
}

func TestSMTPMailerRequiresHost(t *testing.T) {
	_, err := NewSMTPMailer(SMTPConfig{From: "a@x.com"})
	require.Error(t, err)
}
