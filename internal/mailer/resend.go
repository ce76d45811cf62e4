package mailer

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
)

// ResendMailer implements Mailer using the Resend transactional email API.
type ResendMailer struct {
	client *resend.Client
}

// NewResendMailer creates a Resend-backed mailer.
func NewResendMailer(cfg ResendConfig) (*ResendMailer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}
	hc := &http.Client{Transport: &statusTransport{base: http.DefaultTransport}}
	client := resend.NewCustomClient(hc, strings.TrimSpace(cfg.APIKey))
	if cfg.BaseURL != "" {
		base := cfg.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("parse resend base URL: %w", err)
		}
		client.BaseURL = u
	}
	return &ResendMailer{client: client}, nil
}

func (m *ResendMailer) Send(ctx context.Context, msg Message) (*Receipt, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	params := &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		ReplyTo: msg.ReplyTo,
		Tags:    resendTags(msg.Tags),
	}

	var status responseStatus
	sent, err := m.client.Emails.SendWithContext(context.WithValue(ctx, responseStatusKey{}, &status), params)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, classifyResendError(status, err)
	}

	return &Receipt{ID: sent.Id, Provider: m.Name()}, nil
}

// Name returns "resend".
func (m *ResendMailer) Name() string {
	return "resend"
}

// classifyResendError maps the HTTP status of a failed call to the
// mailer's error types. The Resend client only reports message text.
func classifyResendError(status responseStatus, err error) error {
	switch status.code {
	case http.StatusTooManyRequests:
		return &ErrRateLimit{RetryAfter: status.retryAfter, Err: err}
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusUnprocessableEntity:
		return &ErrRejected{StatusCode: status.code, Err: err}
	default:
		return &ErrProviderUnavailable{StatusCode: status.code, Err: err}
	}
}

type responseStatusKey struct{}

// responseStatus is filled in by statusTransport for the request whose
// context carries it.
type responseStatus struct {
	code       int
	retryAfter time.Duration
}

// statusTransport records the status code and Retry-After header of each
// response into the responseStatus found in the request context.
type statusTransport struct {
	base http.RoundTripper
}

func (t *statusTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if st, ok := req.Context().Value(responseStatusKey{}).(*responseStatus); ok {
		st.code = resp.StatusCode
		st.retryAfter = parseRetryAfter(resp.Header.Get("Retry-After"), time.Now())
	}
	return resp, nil
}

// parseRetryAfter accepts delay-seconds or an HTTP date. Anything else is 0.
func parseRetryAfter(v string, now time.Time) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}

func resendTags(tags map[string]string) []resend.Tag {
	if len(tags) == 0 {
		return nil
	}
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]resend.Tag, 0, len(keys))
	for _, k := range keys {
		out = append(out, resend.Tag{Name: k, Value: tags[k]})
	}
	return out
}
