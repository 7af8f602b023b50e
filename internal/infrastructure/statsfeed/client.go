package statsfeed

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"

	"github.com/pondside/fantasy-hockey/internal/domain/gameday"
	"github.com/pondside/fantasy-hockey/internal/domain/statline"
	"github.com/pondside/fantasy-hockey/internal/platform/logging"
	"github.com/pondside/fantasy-hockey/internal/platform/resilience"
	"github.com/pondside/fantasy-hockey/internal/usecase"
)

const defaultTimeout = 10 * time.Second

var errStatsFeedTransient = crerr.New("stats feed transient failure")

type ClientConfig struct {
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the external NHL stats feed. It satisfies
// statline.Provider, so the scoring path cannot tell it apart from the
// locally ingested store.
type Client struct {
	httpClient     *fasthttp.Client
	baseURL        string
	apiKey         string
	timeout        time.Duration
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     &fasthttp.Client{ReadTimeout: timeout, WriteTimeout: timeout},
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:         strings.TrimSpace(cfg.APIKey),
		timeout:        timeout,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type statLinePayload struct {
	PlayerID string `json:"player_id"`
	Date     string `json:"date"`

	Goals             int `json:"goals"`
	Assists           int `json:"assists"`
	PowerPlayPoints   int `json:"power_play_points"`
	ShortHandedPoints int `json:"short_handed_points"`
	ShotsOnGoal       int `json:"shots_on_goal"`
	Blocks            int `json:"blocks"`
	Hits              int `json:"hits"`
	PenaltyMinutes    int `json:"penalty_minutes"`
	PlusMinus         int `json:"plus_minus"`

	Wins         int `json:"wins"`
	Saves        int `json:"saves"`
	Shutouts     int `json:"shutouts"`
	GoalsAgainst int `json:"goals_against"`
}

type gameDayPayload struct {
	Date          string `json:"date"`
	GamesComplete bool   `json:"games_complete"`
}

func (c *Client) GetDailyStatLine(ctx context.Context, playerID string, date gameday.Date) (statline.StatLine, bool, error) {
	path := fmt.Sprintf("/v1/players/%s/statlines/%s", playerID, date)

	var payload statLinePayload
	found, err := c.getJSON(ctx, path, &payload)
	if err != nil {
		return statline.StatLine{}, false, fmt.Errorf("fetch stat line player=%s date=%s: %w", playerID, date, err)
	}
	if !found {
		return statline.StatLine{}, false, nil
	}

	return statline.StatLine{
		PlayerID:          payload.PlayerID,
		Date:              gameday.Date(payload.Date),
		Goals:             payload.Goals,
		Assists:           payload.Assists,
		PowerPlayPoints:   payload.PowerPlayPoints,
		ShortHandedPoints: payload.ShortHandedPoints,
		ShotsOnGoal:       payload.ShotsOnGoal,
		Blocks:            payload.Blocks,
		Hits:              payload.Hits,
		PenaltyMinutes:    payload.PenaltyMinutes,
		PlusMinus:         payload.PlusMinus,
		Wins:              payload.Wins,
		Saves:             payload.Saves,
		Shutouts:          payload.Shutouts,
		GoalsAgainst:      payload.GoalsAgainst,
	}, true, nil
}

func (c *Client) AreGamesComplete(ctx context.Context, date gameday.Date) (bool, error) {
	path := fmt.Sprintf("/v1/days/%s", date)

	var payload gameDayPayload
	found, err := c.getJSON(ctx, path, &payload)
	if err != nil {
		return false, fmt.Errorf("fetch game day %s: %w", date, err)
	}
	if !found {
		// The feed has not opened the day yet, so its games cannot be done.
		return false, nil
	}

	return payload.GamesComplete, nil
}

// getJSON fetches and decodes one feed resource. Returns found=false on 404.
// Concurrent fetches of the same path collapse into one request.
func (c *Client) getJSON(ctx context.Context, path string, target any) (bool, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "stats feed circuit breaker rejected request", "state", c.breaker.State())
			return false, fmt.Errorf("%w: stats feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isTransient(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		if stderrors.Is(err, errNotFoundStatus) {
			return false, nil
		}
		return false, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return false, fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return false, fmt.Errorf("decode stats feed payload: %w", err)
	}
	return true, nil
}

var errNotFoundStatus = crerr.New("stats feed resource not found")

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, status, err := c.doOnce(fullURL)
		switch {
		case err != nil:
			lastErr = fmt.Errorf("%w: send request: %v", errStatsFeedTransient, err)
		case status == fasthttp.StatusNotFound:
			return nil, errNotFoundStatus
		case status >= 200 && status < 300:
			return raw, nil
		case isRetryableStatus(status):
			lastErr = fmt.Errorf("%w: feed status=%d", errStatsFeedTransient, status)
		default:
			return nil, fmt.Errorf("feed status=%d body=%s", status, abbreviateBody(raw))
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * 500 * time.Millisecond
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("stats feed request failed")
	}
	c.logger.WarnContext(ctx, "stats feed request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) doOnce(fullURL string) ([]byte, int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	if err := c.httpClient.DoTimeout(req, resp, c.timeout); err != nil {
		return nil, 0, err
	}

	// The response buffer is pooled; copy before release.
	raw := append([]byte(nil), resp.Body()...)
	return raw, resp.StatusCode(), nil
}

func isTransient(err error) bool {
	return stderrors.Is(err, errStatsFeedTransient)
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= 500
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	if len(raw) <= limit {
		return string(raw)
	}
	return string(raw[:limit]) + "..."
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
