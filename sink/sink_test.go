package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/sns"
	"github.com/aws/aws-sdk-go/service/sns/snsiface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarryhill/logway/core"
)

func errorRecord() *core.Record {
	return &core.Record{
		Time:    time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		Level:   core.ErrorLevel,
		Name:    "job.nightly",
		Machine: "host01",
		Message: "boom",
	}
}

func TestKind_EmailCapability(t *testing.T) {
	for _, k := range []Kind{KindSMTP, KindMandrill} {
		assert.True(t, k.Email(), "%s must be email-capable", k)
	}
	for _, k := range []Kind{KindConsole, KindFile, KindSyslog, KindTLSSyslog, KindWebhook, KindSNS} {
		assert.False(t, k.Email(), "%s must not be email-capable", k)
	}
}

func TestConsoleSink_Send(t *testing.T) {
	var buf bytes.Buffer
	s := NewConsoleSink(&buf)
	defer s.Close()

	require.NoError(t, s.Send(context.Background(), []byte("payload\n"), errorRecord()))
	assert.Equal(t, "payload\n", buf.String())
}

func TestFileSink_Send(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	s, err := NewFileSink(FileConfig{Path: path})
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Send(context.Background(), []byte("line one\n"), errorRecord()))
	require.NoError(t, s.Send(context.Background(), []byte("line two\n"), errorRecord()))
	require.NoError(t, s.Close())

	data, err := io.ReadAll(mustOpen(t, path))
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", string(data))
}

func TestFileSink_RequiresPath(t *testing.T) {
	_, err := NewFileSink(FileConfig{})
	var cfgErr *core.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "file", cfgErr.Component)
}

func TestSyslogSink_ConfigValidation(t *testing.T) {
	var cfgErr *core.ConfigError

	_, err := NewSyslogSink(SyslogConfig{Port: 514})
	require.ErrorAs(t, err, &cfgErr)

	_, err = NewSyslogSink(SyslogConfig{Host: "log.internal", Port: -1})
	require.ErrorAs(t, err, &cfgErr)

	_, err = NewTLSSyslogSink(SyslogConfig{Host: "log.internal", Port: 6514, CertsDir: t.TempDir()})
	require.ErrorAs(t, err, &cfgErr, "empty certs dir must fail at configuration time")
}

func TestSyslogSink_UnreachableIsTransportError(t *testing.T) {
	// TCP+TLS to a port nothing listens on: the lazy dial fails inside
	// Send and must surface as TransportError, never panic or block.
	s, err := NewTLSSyslogSink(SyslogConfig{Host: "127.0.0.1", Port: 1})
	require.NoError(t, err)
	defer s.Close()

	err = s.Send(context.Background(), []byte("msg"), errorRecord())
	var te *core.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "tls-syslog", te.Sink)
}

func TestSyslogSink_CanceledContextAbortsBeforeDial(t *testing.T) {
	// At shutdown the queue context is canceled; Send must bail out
	// before dialing so drain cancellation takes effect between
	// retries even though srslog itself has no deadline hook.
	s, err := NewTLSSyslogSink(SyslogConfig{Host: "203.0.113.1", Port: 6514})
	require.NoError(t, err)
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err = s.Send(ctx, []byte("msg"), errorRecord())
	var te *core.TransportError
	require.ErrorAs(t, err, &te)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second, "no dial attempt on a canceled context")
}

func TestSMTPSink_ConfigValidation(t *testing.T) {
	var cfgErr *core.ConfigError

	_, err := NewSMTPSink(SMTPConfig{From: "a@b.c", To: []string{"d@e.f"}})
	require.ErrorAs(t, err, &cfgErr)

	_, err = NewSMTPSink(SMTPConfig{Host: "mail.internal"})
	require.ErrorAs(t, err, &cfgErr)
}

func TestMandrillSink_Send(t *testing.T) {
	var got struct {
		Key     string `json:"key"`
		Message struct {
			FromEmail string         `json:"from_email"`
			To        []mandrillAddr `json:"to"`
			Subject   string         `json:"subject"`
			HTML      string         `json:"html"`
			Images    []mandrillFile `json:"images"`
		} `json:"message"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s, err := NewMandrillSink(MandrillConfig{
		APIKey: "key-123",
		From:   "alerts@example.com",
		To:     []string{"ops@example.com"},
		URL:    srv.URL,
	})
	require.NoError(t, err)
	defer s.Close()

	rec := errorRecord().WithAttachment(&core.Attachment{
		Name:        "screenshot.png",
		ContentType: "image/png",
		Data:        []byte{0x89, 'P', 'N', 'G'},
	})
	require.NoError(t, s.Send(context.Background(), []byte("<html>body</html>"), rec))

	assert.Equal(t, "key-123", got.Key)
	assert.Equal(t, "alerts@example.com", got.Message.FromEmail)
	assert.Equal(t, []mandrillAddr{{Email: "ops@example.com"}}, got.Message.To)
	assert.Equal(t, "host01 job.nightly ERROR", got.Message.Subject)
	assert.Equal(t, "<html>body</html>", got.Message.HTML)
	require.Len(t, got.Message.Images, 1)
	assert.Equal(t, "screenshot.png", got.Message.Images[0].Name)
}

func TestMandrillSink_APIFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	s, err := NewMandrillSink(MandrillConfig{
		APIKey: "bad", From: "a@b.c", To: []string{"d@e.f"}, URL: srv.URL,
	})
	require.NoError(t, err)

	err = s.Send(context.Background(), []byte("<html/>"), errorRecord())
	var te *core.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "mandrill", te.Sink)
}

func TestWebhookSink_Send(t *testing.T) {
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	s, err := NewWebhookSink(WebhookConfig{URL: srv.URL})
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Send(context.Background(), []byte("the line\n"), errorRecord()))
	assert.Equal(t, "the line\n", string(body))
}

func TestWebhookSink_Non2xxIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	s, err := NewWebhookSink(WebhookConfig{URL: srv.URL})
	require.NoError(t, err)

	err = s.Send(context.Background(), []byte("x"), errorRecord())
	var te *core.TransportError
	require.ErrorAs(t, err, &te)
}

type fakeSNS struct {
	snsiface.SNSAPI
	input *sns.PublishInput
}

func (f *fakeSNS) PublishWithContext(_ aws.Context, in *sns.PublishInput, _ ...request.Option) (*sns.PublishOutput, error) {
	f.input = in
	return &sns.PublishOutput{}, nil
}

func TestSNSSink_Send(t *testing.T) {
	fake := &fakeSNS{}
	s, err := NewSNSSink(SNSConfig{
		TopicARN: "arn:aws:sns:us-east-1:123456789012:alerts",
		Client:   fake,
	})
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Send(context.Background(), []byte("the line"), errorRecord()))
	require.NotNil(t, fake.input)
	assert.Equal(t, "arn:aws:sns:us-east-1:123456789012:alerts", aws.StringValue(fake.input.TopicArn))
	assert.Equal(t, "the line", aws.StringValue(fake.input.Message))
	assert.Equal(t, "job.nightly:ERROR", aws.StringValue(fake.input.Subject))
}

func TestSNSSink_SubjectCap(t *testing.T) {
	fake := &fakeSNS{}
	s, err := NewSNSSink(SNSConfig{TopicARN: "arn:aws:sns:us-east-1:1:t", Client: fake})
	require.NoError(t, err)

	rec := errorRecord()
	rec.Name = strings.Repeat("verylongsegment.", 20)
	require.NoError(t, s.Send(context.Background(), []byte("x"), rec))
	assert.Len(t, aws.StringValue(fake.input.Subject), 99)
}

func TestSNSSink_MalformedARN(t *testing.T) {
	_, err := NewSNSSink(SNSConfig{TopicARN: "not-an-arn"})
	var cfgErr *core.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func mustOpen(t *testing.T, path string) *os.File {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}
