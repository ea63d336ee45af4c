package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/model"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/port"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/valueobject"
)

var _ port.BehavioralDataProvider = (*CDPClient)(nil)

// ---------------------------------------------------------------------------
// CDP analytics client
// ---------------------------------------------------------------------------

// CDPConfig holds configuration for the customer-data-platform client.
type CDPConfig struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	// RetryBackoff is the base delay; attempt n waits RetryBackoff*2^(n-1)
	// plus up to 50% jitter.
	RetryBackoff time.Duration
}

// behavioralSchema guards the scorer against malformed CDP payloads. Money
// values arrive as decimal strings or numbers; retention_rate is a fraction
// in [0, 1].
const behavioralSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"definitions": {
		"money": {
			"oneOf": [
				{"type": "number", "minimum": 0},
				{"type": "string", "pattern": "^[0-9]+(\\.[0-9]+)?$"}
			]
		},
		"ratio": {
			"oneOf": [
				{"type": "number", "minimum": 0, "maximum": 1},
				{"type": "string", "pattern": "^(0(\\.[0-9]+)?|1(\\.0+)?)$"}
			]
		}
	},
	"properties": {
		"account_created_at": {"type": "string", "format": "date-time"},
		"retention_rate": {"$ref": "#/definitions/ratio"},
		"ltv": {"$ref": "#/definitions/money"},
		"cac": {"$ref": "#/definitions/money"},
		"revenue_history": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["period", "amount"],
				"properties": {
					"period": {"type": "string", "format": "date-time"},
					"amount": {"$ref": "#/definitions/money"}
				}
			}
		},
		"transactions": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["amount", "paid_on_time"],
				"properties": {
					"amount": {"$ref": "#/definitions/money"},
					"paid_on_time": {"type": "boolean"}
				}
			}
		}
	}
}`

var compiledSchema = func() *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(behavioralSchema))
	if err != nil {
		panic(fmt.Sprintf("adapter: invalid behavioral schema: %v", err))
	}
	return s
}()

// ErrInvalidPayload is returned when the CDP answers with a document that
// does not match the behavioural schema. It is not retried.
var ErrInvalidPayload = errors.New("invalid CDP payload")

// retryableError marks failures worth another attempt.
type retryableError struct{ err error }

func (e retryableError) Error() string { return e.err.Error() }
func (e retryableError) Unwrap() error { return e.err }

// CDPClient fetches behavioural signals over HTTP from
// GET {BaseURL}/v1/customers/{id}/behavioral-signals.
type CDPClient struct {
	config CDPConfig
	http   *http.Client
	logger *slog.Logger
}

// NewCDPClient creates a client. A nil httpClient gets one with
// config.Timeout.
func NewCDPClient(config CDPConfig, httpClient *http.Client, logger *slog.Logger) *CDPClient {
	if config.RetryBackoff <= 0 {
		config.RetryBackoff = 200 * time.Millisecond
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}
	return &CDPClient{config: config, http: httpClient, logger: logger}
}

// FetchBehavioralInput implements port.BehavioralDataProvider. A 404 maps
// to model.ErrUnknownCustomer.
func (c *CDPClient) FetchBehavioralInput(ctx context.Context, customerID string) (valueobject.BehavioralInput, error) {
	if customerID == "" {
		return valueobject.BehavioralInput{}, errors.New("customer ID is required")
	}

	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.config.RetryBackoff * time.Duration(1<<uint(attempt-1))
			jitter := time.Duration(rand.Int63n(int64(backoff)/2 + 1))
			select {
			case <-ctx.Done():
				return valueobject.BehavioralInput{}, ctx.Err()
			case <-time.After(backoff + jitter):
			}
		}

		input, err := c.fetch(ctx, customerID)
		if err == nil {
			return input, nil
		}
		var retryable retryableError
		if !errors.As(err, &retryable) {
			return valueobject.BehavioralInput{}, err
		}
		lastErr = retryable.err
		c.logger.WarnContext(ctx, "cdp request failed, retrying",
			"customer_id", customerID,
			"attempt", attempt+1,
			"error", lastErr,
		)
	}
	return valueobject.BehavioralInput{}, fmt.Errorf("cdp: giving up after %d attempts: %w", c.config.MaxRetries+1, lastErr)
}

func (c *CDPClient) fetch(ctx context.Context, customerID string) (valueobject.BehavioralInput, error) {
	endpoint := strings.TrimRight(c.config.BaseURL, "/") + "/v1/customers/" + url.PathEscape(customerID) + "/behavioral-signals"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return valueobject.BehavioralInput{}, fmt.Errorf("cdp: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return valueobject.BehavioralInput{}, ctx.Err()
		}
		return valueobject.BehavioralInput{}, retryableError{fmt.Errorf("cdp: request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return valueobject.BehavioralInput{}, retryableError{fmt.Errorf("cdp: read body: %w", err)}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return valueobject.BehavioralInput{}, fmt.Errorf("%w: %s", model.ErrUnknownCustomer, customerID)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return valueobject.BehavioralInput{}, retryableError{fmt.Errorf("cdp: status %d", resp.StatusCode)}
	case resp.StatusCode != http.StatusOK:
		return valueobject.BehavioralInput{}, fmt.Errorf("cdp: unexpected status %d", resp.StatusCode)
	}

	return decodeBehavioralInput(body)
}

func decodeBehavioralInput(body []byte) (valueobject.BehavioralInput, error) {
	result, err := compiledSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return valueobject.BehavioralInput{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return valueobject.BehavioralInput{}, fmt.Errorf("%w: %s", ErrInvalidPayload, strings.Join(msgs, "; "))
	}

	var input valueobject.BehavioralInput
	if err := json.Unmarshal(body, &input); err != nil {
		return valueobject.BehavioralInput{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return input, nil
}
