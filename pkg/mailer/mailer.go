package mailer

import (
	"net/mail"

	"quizdesk_backend/internal/config"
)

// Message is a single outbound email.
type Message struct {
	To       []mail.Address
	Subject  string
	TextBody string
	HTMLBody string
}

func (m *Message) HasRecipients() bool {
	return len(m.To) > 0
}

// Result is the outcome of one delivery attempt. Failures are terminal:
// the dispatcher logs them and moves on, callers of the triggering
// business operation never see them.
type Result struct {
	Delivered bool
	Err       error
}

func Delivered() Result {
	return Result{Delivered: true}
}

func Failed(err error) Result {
	return Result{Err: err}
}

// Mailer is any transport that can deliver a message.
type Mailer interface {
	Send(msg *Message) Result
}

// New picks the transport backend from config. Anything other than
// "sendgrid" falls back to the console backend.
func New(cfg *config.MailConfig) Mailer {
	if cfg.Backend == "sendgrid" {
		return NewSendgridMailer(cfg)
	}
	return NewConsoleMailer(cfg)
}
