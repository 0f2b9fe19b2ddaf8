package nameless

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/cockroachdb/errors"

	"github.com/namelessmc/go-nameless/apierror"
	"github.com/namelessmc/go-nameless/internal/middleware"
	"github.com/namelessmc/go-nameless/observability"
)

// MaxResponseBytes caps the size of a response body.
const MaxResponseBytes = 8 << 20

// ErrResponseTooLarge is the cause of a TransportError for bodies over MaxResponseBytes.
var ErrResponseTooLarge = errors.New("response body exceeds size limit")

// RawResult is an HTTP response whose status is worth decoding.
type RawResult struct {
	StatusCode int
	Body       []byte
}

// Transport performs exactly one HTTP round trip per call. Identifying headers,
// logging and rate limiting are applied by the middleware of its http.Client.
type Transport struct {
	client    *http.Client
	logger    observability.Logger
	logBodies bool
}

// NewTransport wraps client. A nil logger disables body logging.
func NewTransport(client *http.Client, logger observability.Logger, logBodies bool) *Transport {
	if logger == nil {
		logger = observability.NoopLogger()
	}
	return &Transport{client: client, logger: logger, logBodies: logBodies}
}

// Send calls action on the website behind endpoint.
//
// It fails with *apierror.TransportError when no decodable response arrives: the
// connection, TLS handshake or client timeout failed, redirects were exhausted, the
// body could not be read, or the status is outside 2xx and 4xx. When ctx is done
// the error matches apierror.ErrCanceled and ctx.Err() instead.
func (t *Transport) Send(ctx context.Context, endpoint Endpoint, action Action, params []Param) (RawResult, error) {
	target := endpoint.URL(action)

	var body io.Reader = http.NoBody
	var payload []byte
	if action.HasBody() {
		payload = encodeBody(params)
		body = bytes.NewReader(payload)
	} else if len(params) > 0 {
		query, err := encodeQuery(params)
		if err != nil {
			return RawResult{}, err
		}
		if target.RawQuery != "" {
			target.RawQuery += "&"
		}
		target.RawQuery += query
	}

	req, err := http.NewRequestWithContext(middleware.WithCaller(ctx), action.Method(), target.String(), body)
	if err != nil {
		return RawResult{}, errors.Wrapf(err, "build %s request", action)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
		if t.logBodies {
			t.logger.Debug("api request body",
				observability.Action(action.Route()),
				observability.F("body", string(payload)),
			)
		}
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return RawResult{}, t.failure(ctx, endpoint, action, target, 0, redactURLError(err, endpoint))
	}
	defer resp.Body.Close()

	if !decodableStatus(resp.StatusCode) {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, MaxResponseBytes))
		return RawResult{}, t.failure(ctx, endpoint, action, target, resp.StatusCode, nil)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes+1))
	if err != nil {
		return RawResult{}, t.failure(ctx, endpoint, action, target, 0, errors.Wrap(err, "read response body"))
	}
	if len(data) > MaxResponseBytes {
		return RawResult{}, t.failure(ctx, endpoint, action, target, 0, ErrResponseTooLarge)
	}

	if t.logBodies {
		t.logger.Debug("api response body",
			observability.Action(action.Route()),
			observability.F("status", resp.StatusCode),
			observability.F("body", string(data)),
		)
	}

	return RawResult{StatusCode: resp.StatusCode, Body: data}, nil
}

func (t *Transport) failure(ctx context.Context, endpoint Endpoint, action Action, target *url.URL, status int, cause error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return canceled(action, ctxErr)
	}
	return &apierror.TransportError{
		Action:     action.Route(),
		URL:        endpoint.Redact(target.String()),
		StatusCode: status,
		Err:        cause,
	}
}

func canceled(action Action, cause error) error {
	return errors.Mark(errors.Wrapf(cause, "call %s", action), apierror.ErrCanceled)
}

// decodableStatus reports whether the website may have put an envelope in the body.
// Application errors come back as 2xx or 4xx depending on the website version.
func decodableStatus(code int) bool {
	return (code >= 200 && code <= 299) || (code >= 400 && code <= 499)
}

// redactURLError scrubs the API key that net/http puts in *url.Error messages.
func redactURLError(err error, endpoint Endpoint) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	scrubbed := *urlErr
	scrubbed.URL = endpoint.Redact(urlErr.URL)
	return &scrubbed
}
