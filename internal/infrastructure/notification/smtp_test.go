package notification

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tsmit_os/internal/domain/entities"
	"tsmit_os/internal/infrastructure/config"
)

func TestSMTPNotifier_SendsToContactFirst(t *testing.T) {
	n := NewSMTPNotifier(config.SMTPOptions{Host: "smtp.local", Port: 2525, From: "os@tsmit.com.br"})

	var gotAddr string
	var gotTo []string
	var gotMsg string
	n.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, string(msg)
		assert.Equal(t, "os@tsmit.com.br", from)
		return nil
	}

	note := notificationFor("so-1")
	note.Order.Contact = entities.Contact{Name: "Bruno", Email: " bruno@acme.com "}
	note.Order.ContractedServices = []entities.ContractedService{{ServiceID: "s1", Name: "Backup"}}
	require.NoError(t, n.Notify(context.Background(), note))

	assert.Equal(t, "smtp.local:2525", gotAddr)
	assert.Equal(t, []string{"bruno@acme.com"}, gotTo)
	assert.Contains(t, gotMsg, "Subject: OS #7 - Entregue\r\n")
	assert.Contains(t, gotMsg, "Olá Bruno,")
	assert.Contains(t, gotMsg, "  - Backup\r\n")
}

func TestSMTPNotifier_FallsBackToClient(t *testing.T) {
	n := NewSMTPNotifier(config.SMTPOptions{Host: "smtp.local", Port: 25, User: "u", Password: "p"})
	require.NotNil(t, n.auth)

	var gotTo []string
	n.sendMail = func(_ string, _ smtp.Auth, _ string, to []string, _ []byte) error {
		gotTo = to
		return nil
	}
	require.NoError(t, n.Notify(context.Background(), notificationFor("so-1")))
	assert.Equal(t, []string{"os@acme.com"}, gotTo)
}

func TestSMTPNotifier_Errors(t *testing.T) {
	n := NewSMTPNotifier(config.SMTPOptions{Host: "smtp.local", Port: 25})
	n.sendMail = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("421 busy") }

	note := notificationFor("so-1")
	err := n.Notify(context.Background(), note)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "421 busy")

	note.Order.ClientSnapshot.Email = ""
	assert.ErrorIs(t, n.Notify(context.Background(), note), ErrNoRecipient)
}

func TestSMTPNotifier_ContextTimeout(t *testing.T) {
	n := NewSMTPNotifier(config.SMTPOptions{Host: "smtp.local", Port: 25})
	release := make(chan struct{})
	defer close(release)
	n.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		<-release
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, n.Notify(ctx, notificationFor("so-1")), context.DeadlineExceeded)
}

func TestBuildMessage_TechnicalSolution(t *testing.T) {
	note := notificationFor("so-1")
	note.Order.TechnicalSolution = "Troca do HD"
	msg := string(BuildMessage("a@b", "c@d", note, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)))

	assert.True(t, strings.HasPrefix(msg, "From: a@b\r\nTo: c@d\r\n"))
	assert.Contains(t, msg, "Olá ACME,")
	assert.Contains(t, msg, "Solução técnica: Troca do HD")
	assert.NotContains(t, msg, "Serviços realizados")
}

func TestLogNotifier(t *testing.T) {
	assert.NoError(t, LogNotifier{}.Notify(context.Background(), notificationFor("so-1")))
}
