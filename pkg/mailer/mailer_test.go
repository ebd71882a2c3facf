package mailer

import (
	"errors"
	"net/mail"
	"testing"

	"quizdesk_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(backend string) *config.MailConfig {
	return &config.MailConfig{
		Backend:     backend,
		FromName:    "QuizDesk",
		FromAddress: "no-reply@quizdesk.example",
		SubjPrefix:  "[QuizDesk] ",
	}
}

func TestNewPicksBackend(t *testing.T) {
	tests := []struct {
		backend string
		want    interface{}
	}{
		{backend: "sendgrid", want: (*SendgridMailer)(nil)},
		{backend: "console", want: (*ConsoleMailer)(nil)},
		{backend: "", want: (*ConsoleMailer)(nil)},
		{backend: "bogus", want: (*ConsoleMailer)(nil)},
	}
	for _, tt := range tests {
		t.Run("backend="+tt.backend, func(t *testing.T) {
			m := New(testConfig(tt.backend))
			assert.IsType(t, tt.want, m)
		})
	}
}

func TestConsoleMailerDelivers(t *testing.T) {
	m := NewConsoleMailer(testConfig("console"))

	res := m.Send(&Message{
		To:       []mail.Address{{Name: "Ada", Address: "ada@example.com"}},
		Subject:  "Hello",
		TextBody: "Body",
	})
	assert.True(t, res.Delivered)
	assert.NoError(t, res.Err)
}

func TestRecorderMailerCaptures(t *testing.T) {
	m := &RecorderMailer{}

	res := m.Send(&Message{Subject: "one"})
	assert.True(t, res.Delivered)

	m.Send(&Message{Subject: "two"})

	sent := m.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, "one", sent[0].Subject)
	assert.Equal(t, "two", sent[1].Subject)
}

func TestRecorderMailerFailure(t *testing.T) {
	wantErr := errors.New("transport down")
	m := &RecorderMailer{FailWith: wantErr}

	res := m.Send(&Message{Subject: "doomed"})
	assert.False(t, res.Delivered)
	assert.ErrorIs(t, res.Err, wantErr)

	// the attempt is still recorded
	assert.Len(t, m.Sent(), 1)
}

func TestMessageHasRecipients(t *testing.T) {
	assert.False(t, (&Message{}).HasRecipients())
	assert.True(t, (&Message{To: []mail.Address{{Address: "a@b.c"}}}).HasRecipients())
}

func TestResultConstructors(t *testing.T) {
	ok := Delivered()
	assert.True(t, ok.Delivered)
	assert.NoError(t, ok.Err)

	err := errors.New("boom")
	failed := Failed(err)
	assert.False(t, failed.Delivered)
	assert.ErrorIs(t, failed.Err, err)
}
