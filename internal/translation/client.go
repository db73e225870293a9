// Package translation translates free text through the MyMemory API, caches
// the results and keeps the learner's saved translations.
package translation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"
)

//go:generate mockgen -source=client.go -destination=../mocks/translation/mock_client.go -package=mock_translation

// Client translates text from one language code to another.
type Client interface {
	Translate(ctx context.Context, text, from, to string) (string, error)
}

// ErrTranslationFailed is returned when the API answers without a usable
// translation.
var ErrTranslationFailed = errors.New("translation failed")

type MyMemoryClient struct {
	httpClient       *resty.Client
	email            string
	maxRetryAttempts uint
	retryDelay       time.Duration
}

// NewMyMemoryClient returns a client for the MyMemory API at baseURL. The
// email, when set, raises the anonymous daily quota.
func NewMyMemoryClient(baseURL, email string, retryAttempts uint) *MyMemoryClient {
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	client.SetHeader("Accept", "application/json")
	client.SetTimeout(15 * time.Second)

	return &MyMemoryClient{
		httpClient:       client,
		email:            email,
		maxRetryAttempts: retryAttempts,
		retryDelay:       500 * time.Millisecond,
	}
}

func (client *MyMemoryClient) Close() error {
	return client.httpClient.Close()
}

type myMemoryResponse struct {
	ResponseData struct {
		TranslatedText string  `json:"translatedText"`
		Match          float64 `json:"match"`
	} `json:"responseData"`
	ResponseStatus  any    `json:"responseStatus"`
	ResponseDetails string `json:"responseDetails"`
}

// status returns responseStatus, which the API sends as a number or a
// string.
func (r myMemoryResponse) status() int {
	switch v := r.ResponseStatus.(type) {
	case float64:
		return int(v)
	case string:
		var status int
		if _, err := fmt.Sscanf(v, "%d", &status); err == nil {
			return status
		}
	}
	return 0
}

// isRetryableError reports whether err is worth another attempt: network
// failures, rate limiting and server errors.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	var statusErr *statusError
	if errors.As(err, &statusErr) {
		return statusErr.code == http.StatusTooManyRequests || statusErr.code >= 500
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "i/o timeout") ||
		strings.Contains(errStr, "EOF")
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("response error %d: %s", e.code, e.body)
}

// Translate implements Client.
func (client *MyMemoryClient) Translate(ctx context.Context, text, from, to string) (string, error) {
	var result string
	if err := retry.Do(
		func() error {
			translated, err := client.translate(ctx, text, from, to)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				slog.Default().WarnContext(ctx, "retrying translation",
					slog.String("langpair", from+"|"+to),
					slog.Any("error", err),
				)
				return err
			}
			result = translated
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.Delay(client.retryDelay),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return "", err
	}
	return result, nil
}

func (client *MyMemoryClient) translate(ctx context.Context, text, from, to string) (string, error) {
	request := client.httpClient.R().
		SetContext(ctx).
		SetQueryParam("q", text).
		SetQueryParam("langpair", from+"|"+to).
		SetResult(&myMemoryResponse{})
	if client.email != "" {
		request.SetQueryParam("de", client.email)
	}

	response, err := request.Get("/get")
	if err != nil {
		return "", fmt.Errorf("httpClient.Get > %w", err)
	}
	if response.IsError() {
		return "", &statusError{code: response.StatusCode(), body: response.String()}
	}

	body, ok := response.Result().(*myMemoryResponse)
	if !ok || body == nil {
		return "", fmt.Errorf("%w: unexpected response %s", ErrTranslationFailed, response.String())
	}
	if status := body.status(); status != http.StatusOK {
		if status == http.StatusTooManyRequests || status >= 500 {
			return "", &statusError{code: status, body: body.ResponseDetails}
		}
		return "", fmt.Errorf("%w: status %d: %s", ErrTranslationFailed, status, body.ResponseDetails)
	}
	if body.ResponseData.TranslatedText == "" {
		return "", fmt.Errorf("%w: empty translation", ErrTranslationFailed)
	}
	slog.Default().DebugContext(ctx, "mymemory response",
		slog.String("langpair", from+"|"+to),
		slog.Float64("match", body.ResponseData.Match),
	)
	return body.ResponseData.TranslatedText, nil
}
