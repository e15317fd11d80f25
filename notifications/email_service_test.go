package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrevoSend(t *testing.T) {
	var got brevoPayload
	var apiKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	svc := NewBrevoService("key-123", "noreply@skillswap.test", "SkillSwap")
	svc.URL = srv.URL

	err := svc.Send(context.Background(), "bob@example.com", "", "Hello", "<p>hi</p>")
	require.NoError(t, err)

	assert.Equal(t, "key-123", apiKey)
	assert.Equal(t, "noreply@skillswap.test", got.Sender["email"])
	require.Len(t, got.To, 1)
	assert.Equal(t, "bob@example.com", got.To[0]["email"])
	assert.Equal(t, "bob", got.To[0]["name"])
	assert.Equal(t, "Hello", got.Subject)
}

func TestBrevoSendRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"invalid_parameter"}`))
	}))
	defer srv.Close()

	svc := NewBrevoService("key", "noreply@skillswap.test", "SkillSwap")
	svc.URL = srv.URL

	err := svc.Send(context.Background(), "bob@example.com", "Bob", "Hello", "<p>hi</p>")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "invalid_parameter")

	assert.Error(t, svc.Send(context.Background(), "not-an-email", "", "s", "b"))
}

func TestInitEmailServiceWithoutConfig(t *testing.T) {
	t.Setenv("BREVO_API_KEY", "")
	t.Setenv("EMAIL_SENDER", "")
	InitEmailService()
	assert.Nil(t, EmailClient)

	// a nil client makes SendEmail a no-op
	SendEmail("Bob", "bob@example.com", "s", "b")
}

func TestTemplatesEscapeInput(t *testing.T) {
	mail := SwapRequested("Bob", "<script>", "Guitar", "Photography")
	assert.Contains(t, mail.Subject, "<script>")
	assert.NotContains(t, mail.HTML, "<script>")
	assert.Contains(t, mail.HTML, "&lt;script&gt;")

	link := "https://meet.jit.si/skillswap-abc"
	at := time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)
	reminder := SessionReminder("Alice", "Chords 101", at, &link)
	assert.Contains(t, reminder.HTML, link)
	assert.Contains(t, reminder.HTML, "13:00 on Mar 1")

	noLink := SessionReminder("Alice", "Chords 101", at, nil)
	assert.Contains(t, noLink.HTML, "shared by your partner")

	assert.Contains(t, SwapAccepted("Alice", "Bob").Subject, "Bob accepted")
}
