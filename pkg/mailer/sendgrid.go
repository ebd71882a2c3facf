package mailer

import (
	"fmt"
	"net/http"
	"net/mail"

	"quizdesk_backend/internal/config"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

var (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

type SendgridMailer struct {
	key        string
	from       *sgmail.Email
	subjPrefix string
}

var _ Mailer = (*SendgridMailer)(nil)

func NewSendgridMailer(cfg *config.MailConfig) *SendgridMailer {
	return &SendgridMailer{
		key:        cfg.SendgridKey,
		from:       sgmail.NewEmail(cfg.FromName, cfg.FromAddress),
		subjPrefix: cfg.SubjPrefix,
	}
}

func (m *SendgridMailer) Send(msg *Message) Result {
	req := sendgrid.GetRequest(m.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m.prepare(msg))

	res, err := sendgrid.API(req)
	if err != nil {
		return Failed(err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return Failed(fmt.Errorf("sendgrid: status %d: %s", res.StatusCode, res.Body))
	}
	return Delivered()
}

func (m *SendgridMailer) prepare(msg *Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = m.subjPrefix + msg.Subject
	for _, to := range msg.To {
		p.AddTos(m.sgEmail(to))
	}

	v3 := sgmail.NewV3Mail()
	v3.SetFrom(m.from)
	v3.AddPersonalizations(p)
	v3.AddContent(
		sgmail.NewContent("text/plain", msg.TextBody),
		sgmail.NewContent("text/html", msg.HTMLBody),
	)
	return v3
}

func (m *SendgridMailer) sgEmail(addr mail.Address) *sgmail.Email {
	return sgmail.NewEmail(addr.Name, addr.Address)
}
