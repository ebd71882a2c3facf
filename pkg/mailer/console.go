package mailer

import (
	"fmt"
	"log"
	"net/mail"
	"strings"
	"sync"
	"time"

	"quizdesk_backend/internal/config"
)

// ConsoleMailer writes messages to the process log instead of sending
// them. Used in development and as the fallback backend.
type ConsoleMailer struct {
	from       mail.Address
	subjPrefix string
}

var _ Mailer = (*ConsoleMailer)(nil)

func NewConsoleMailer(cfg *config.MailConfig) *ConsoleMailer {
	return &ConsoleMailer{
		from:       mail.Address{Name: cfg.FromName, Address: cfg.FromAddress},
		subjPrefix: cfg.SubjPrefix,
	}
}

func (m *ConsoleMailer) Send(msg *Message) Result {
	body := new(strings.Builder)
	fmt.Fprintf(body, "From: %s\r\n", m.from.String())
	fmt.Fprintf(body, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	fmt.Fprintf(body, "Subject: %s\r\n", m.subjPrefix+msg.Subject)
	fmt.Fprintf(body, "To: %s\r\n", joinAddresses(msg.To))
	fmt.Fprintf(body, "\r\n%s\r\n", msg.TextBody)

	log.Println(body.String())
	return Delivered()
}

func joinAddresses(addrs []mail.Address) string {
	toJoin := make([]string, 0, len(addrs))
	for _, a := range addrs {
		toJoin = append(toJoin, a.String())
	}
	return strings.Join(toJoin, ", ")
}

// RecorderMailer captures sent messages for assertions in tests.
type RecorderMailer struct {
	mu       sync.Mutex
	Messages []Message

	// FailWith, when set, makes every Send report a failed delivery.
	FailWith error
}

var _ Mailer = (*RecorderMailer)(nil)

func (m *RecorderMailer) Send(msg *Message) Result {
	m.mu.Lock()
	m.Messages = append(m.Messages, *msg)
	m.mu.Unlock()

	if m.FailWith != nil {
		return Failed(m.FailWith)
	}
	return Delivered()
}

func (m *RecorderMailer) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.Messages))
	copy(out, m.Messages)
	return out
}
