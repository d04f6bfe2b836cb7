package common

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/johanforsgren/lgtmthreads/internal/logger"
	"github.com/rs/zerolog"
)

const maxLoggedBody = 10000

var sensitiveHeaders = map[string]bool{
	"authorization": true,
	"x-api-key":     true,
	"api-key":       true,
	"x-auth-token":  true,
	"cookie":        true,
	"set-cookie":    true,
}

// LoggingTransport logs every provider request. Bodies are only logged
// at trace level.
type LoggingTransport struct {
	Transport http.RoundTripper
}

func NewLoggingTransport(transport http.RoundTripper) *LoggingTransport {
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &LoggingTransport{Transport: transport}
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	log := logger.Get()

	event := log.Trace()
	if event.Enabled() {
		event.Dict("headers", headerDict(req.Header)).
			Str("body", peekBody(&req.Body, req.ContentLength)).
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Msg("http request")
	}

	resp, err := t.Transport.RoundTrip(req)
	duration := time.Since(start)
	if err != nil {
		logger.LogError("HTTP "+req.Method, req.URL.Path, err)
		return nil, err
	}

	logger.Log("HTTP: %s %s - %s (%v)", req.Method, req.URL.Path, resp.Status, duration.Round(time.Millisecond))
	event = log.Trace()
	if event.Enabled() {
		event.Int("status", resp.StatusCode).
			Str("body", peekBody(&resp.Body, resp.ContentLength)).
			Str("url", req.URL.String()).
			Msg("http response")
	}
	return resp, nil
}

func headerDict(h http.Header) *zerolog.Event {
	dict := zerolog.Dict()
	for name, values := range h {
		if sensitiveHeaders[strings.ToLower(name)] {
			dict.Str(name, "[REDACTED]")
			continue
		}
		dict.Strs(name, values)
	}
	return dict
}

// peekBody reads a small body and puts an equivalent reader back.
func peekBody(body *io.ReadCloser, length int64) string {
	if *body == nil || length == 0 || length > maxLoggedBody {
		return ""
	}
	data, err := io.ReadAll(io.LimitReader(*body, maxLoggedBody+1))
	if err != nil {
		return ""
	}
	rest := *body
	*body = readCloser{Reader: io.MultiReader(bytes.NewReader(data), rest), Closer: rest}
	if len(data) > maxLoggedBody {
		return "(too large to log)"
	}
	return string(data)
}

type readCloser struct {
	io.Reader
	io.Closer
}
