package govdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"apt-sync-service/internal/constants"
	"apt-sync-service/internal/contextkeys"
	"apt-sync-service/internal/core/domain"
	"apt-sync-service/internal/core/port"
)

// ErrServiceKey re-exports the port sentinel so call sites inside the adapter
// stay short.
var ErrServiceKey = port.ErrServiceKey

// Config holds the portal client settings.
type Config struct {
	BaseURL    string // "https://apis.data.go.kr"
	ServiceKey string // decoded credential, encoded on the wire by the client

	Timeout      time.Duration // per-request timeout
	MaxRetries   int           // attempts per call, including the first
	RetryBackoff time.Duration // linear: attempt * backoff

	// MinRequestInterval is the minimum spacing between outbound requests.
	// The portal enforces a per-second quota, so the client throttles itself
	// instead of leaving it to every caller.
	MinRequestInterval time.Duration

	PageSize int // numOfRows for list endpoints
}

// Client talks to the government data portal. It implements port.GovAPIPort.
type Client struct {
	cfg        Config
	httpClient *http.Client

	mu          sync.Mutex
	nextAllowed time.Time
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.ServiceKey == "" {
		return nil, fmt.Errorf("govdata: service key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://apis.data.go.kr"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 500 * time.Millisecond
	}
	if cfg.MinRequestInterval <= 0 {
		cfg.MinRequestInterval = 200 * time.Millisecond
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 1000
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// throttle reserves the next send slot and sleeps until it, honoring ctx.
func (c *Client) throttle(ctx context.Context) error {
	c.mu.Lock()
	now := time.Now()
	slot := c.nextAllowed
	if slot.Before(now) {
		slot = now
	}
	c.nextAllowed = slot.Add(c.cfg.MinRequestInterval)
	c.mu.Unlock()

	wait := time.Until(slot)
	if wait <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// getEnvelope performs one logical call with the retry policy: transport
// errors, bad HTTP statuses, decode failures and soft business codes all
// consume attempts; after the budget is spent the call degrades to "no data"
// (nil envelope, nil error). Only context cancellation and auth-class result
// codes surface as errors.
func (c *Client) getEnvelope(ctx context.Context, path string, params url.Values) (*envelope, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "GovDataClient",
		"path":      path,
	})

	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 1 {
			backoff := time.Duration(attempt-1) * c.cfg.RetryBackoff
			timer := time.NewTimer(backoff)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}

		env, err := c.doOnce(ctx, path, params)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			logger.Warn("Portal request failed, will retry", port.Fields{
				"attempt": attempt, "max_retries": c.cfg.MaxRetries, "error": err.Error(),
			})
			continue
		}

		if env.success() {
			return env, nil
		}

		if _, fatal := constants.AuthErrorCodes[env.ResultCode]; fatal {
			logger.Error("Portal rejected service key, aborting", ErrServiceKey, port.Fields{
				"result_code": env.ResultCode, "result_msg": env.ResultMsg,
			})
			return nil, fmt.Errorf("result code %s (%s): %w", env.ResultCode, env.ResultMsg, ErrServiceKey)
		}

		lastErr = fmt.Errorf("result code %s (%s)", env.ResultCode, env.ResultMsg)
		logger.Warn("Portal returned business error, will retry", port.Fields{
			"attempt": attempt, "result_code": env.ResultCode, "result_msg": env.ResultMsg,
		})
	}

	// Retry budget spent: this call is "no data", the batch moves on.
	logger.Warn("Retries exhausted, treating call as empty", port.Fields{
		"max_retries": c.cfg.MaxRetries,
		"last_error":  fmt.Sprintf("%v", lastErr),
	})
	return nil, nil
}

func (c *Client) doOnce(ctx context.Context, path string, params url.Values) (*envelope, error) {
	if err := c.throttle(ctx); err != nil {
		return nil, err
	}

	query := url.Values{}
	for key, vals := range params {
		for _, v := range vals {
			query.Add(key, v)
		}
	}
	query.Set("serviceKey", c.cfg.ServiceKey)

	reqURL := c.cfg.BaseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/xml, text/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return decodeEnvelope(body)
}

// --- typed operations (port.GovAPIPort) ---

// FetchComplexList returns one page of the sigungu complex list.
func (c *Client) FetchComplexList(ctx context.Context, sigunguCode string, page int) (*port.ComplexPage, error) {
	params := url.Values{}
	params.Set("sigunguCode", sigunguCode)
	params.Set("pageNo", strconv.Itoa(page))
	params.Set("numOfRows", strconv.Itoa(c.cfg.PageSize))

	env, err := c.getEnvelope(ctx, constants.PathComplexList, params)
	if err != nil {
		return nil, err
	}
	if env == nil {
		return &port.ComplexPage{}, nil
	}

	result := &port.ComplexPage{TotalCount: env.TotalCount}
	for _, rec := range env.Items {
		if summary, ok := mapComplexSummary(rec); ok {
			result.Summaries = append(result.Summaries, summary)
		}
	}
	return result, nil
}

// FetchComplexBasic returns the basic-info record of one complex.
func (c *Client) FetchComplexBasic(ctx context.Context, kaptCode string) (*domain.ApartmentComplex, error) {
	params := url.Values{}
	params.Set("kaptCode", kaptCode)

	env, err := c.getEnvelope(ctx, constants.PathComplexBasic, params)
	if err != nil {
		return nil, err
	}
	if env == nil {
		return nil, nil
	}
	rec := env.firstItem()
	if rec == nil {
		return nil, nil
	}
	apt := mapComplexBasic(rec)
	apt.KaptCode = kaptCode
	return apt, nil
}

// FetchComplexDetail returns the detail-info record of one complex.
func (c *Client) FetchComplexDetail(ctx context.Context, kaptCode string) (*domain.ApartmentComplex, error) {
	params := url.Values{}
	params.Set("kaptCode", kaptCode)

	env, err := c.getEnvelope(ctx, constants.PathComplexDetail, params)
	if err != nil {
		return nil, err
	}
	if env == nil {
		return nil, nil
	}
	rec := env.firstItem()
	if rec == nil {
		return nil, nil
	}
	apt := mapComplexDetail(rec)
	apt.KaptCode = kaptCode
	return apt, nil
}

// FetchTrades returns all trade transactions of one region and month,
// walking pages in increasing order (the upstream cursor is positional).
func (c *Client) FetchTrades(ctx context.Context, lawdCd, yearMonth string) ([]domain.TradeTransaction, error) {
	var trades []domain.TradeTransaction
	err := c.walkPages(ctx, constants.PathTrades, lawdCd, yearMonth, func(rec RawRecord) {
		if trade, ok := mapTrade(rec, lawdCd); ok {
			trades = append(trades, trade)
		}
	})
	return trades, err
}

// FetchRents returns all rent transactions of one region and month.
func (c *Client) FetchRents(ctx context.Context, lawdCd, yearMonth string) ([]domain.RentTransaction, error) {
	var rents []domain.RentTransaction
	err := c.walkPages(ctx, constants.PathRents, lawdCd, yearMonth, func(rec RawRecord) {
		if rent, ok := mapRent(rec, lawdCd); ok {
			rents = append(rents, rent)
		}
	})
	return rents, err
}

func (c *Client) walkPages(ctx context.Context, path, lawdCd, yearMonth string, visit func(RawRecord)) error {
	seen := 0
	for page := 1; ; page++ {
		params := url.Values{}
		params.Set("LAWD_CD", lawdCd)
		params.Set("DEAL_YMD", yearMonth)
		params.Set("pageNo", strconv.Itoa(page))
		params.Set("numOfRows", strconv.Itoa(c.cfg.PageSize))

		env, err := c.getEnvelope(ctx, path, params)
		if err != nil {
			return err
		}
		if env == nil || len(env.Items) == 0 {
			return nil
		}

		for _, rec := range env.Items {
			visit(rec)
		}
		seen += len(env.Items)
		if env.TotalCount > 0 && seen >= env.TotalCount {
			return nil
		}
		if len(env.Items) < c.cfg.PageSize {
			return nil
		}
	}
}

// FetchFeeItem returns the monthly amount of one fee sub-category, or nil
// when the complex reported nothing for that category and month.
func (c *Client) FetchFeeItem(ctx context.Context, kaptCode, yearMonth string, category constants.FeeCategory) (*int64, error) {
	params := url.Values{}
	params.Set("kaptCode", kaptCode)
	params.Set("searchDate", yearMonth)

	env, err := c.getEnvelope(ctx, category.Service+"/"+category.Op, params)
	if err != nil {
		return nil, err
	}
	if env == nil {
		return nil, nil
	}
	rec := env.firstItem()
	if rec == nil {
		return nil, nil
	}
	return getInt64Ptr(rec[category.AmountField]), nil
}
