// Package pricingapi is the HTTP client for the moving-quote backend.
package pricingapi

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"quote-wizard/internal/model"
)

const (
	apiPrefix = "/api/v1"

	pathCalculate       = apiPrefix + "/quote/calculate"
	pathSubmit          = apiPrefix + "/quote/submit"
	pathTemplates       = apiPrefix + "/quote/inventory/templates"
	pathSmartPrediction = apiPrefix + "/smart/smart-prediction"
	pathQuickAdjustment = apiPrefix + "/smart/quick-adjustment"

	defaultTimeout = 10 * time.Second
)

var ErrNotConfigured = errors.New("pricing api url is not configured")

type Client struct {
	baseURL string
	timeout time.Duration
	http    *fasthttp.Client
	logger  *zap.Logger
}

type Option func(*Client)

// WithDial replaces the network dialer, e.g. with an in-memory listener.
func WithDial(dial fasthttp.DialFunc) Option {
	return func(c *Client) { c.http.Dial = dial }
}

func New(baseURL string, timeout time.Duration, logger *zap.Logger, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		logger:  logger,
		http: &fasthttp.Client{
			Name:                "quote-wizard",
			MaxConnsPerHost:     100,
			MaxIdleConnDuration: 90 * time.Second,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) Calculate(ctx context.Context, req model.CalculateRequest) (*model.QuoteResult, error) {
	var out model.QuoteResult
	if err := c.do(ctx, fasthttp.MethodPost, pathCalculate, req, &out); err != nil {
		return nil, fmt.Errorf("calculate quote: %w", err)
	}
	return &out, nil
}

func (c *Client) Submit(ctx context.Context, req model.SubmitRequest) (*model.SubmittedQuote, error) {
	var out model.SubmittedQuote
	if err := c.do(ctx, fasthttp.MethodPost, pathSubmit, req, &out); err != nil {
		return nil, fmt.Errorf("submit quote: %w", err)
	}
	return &out, nil
}

// ItemTemplates lists the catalog, optionally filtered by category.
func (c *Client) ItemTemplates(ctx context.Context, category string) ([]model.ItemTemplate, error) {
	path := pathTemplates
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}
	var out []model.ItemTemplate
	if err := c.do(ctx, fasthttp.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("item templates: %w", err)
	}
	if out == nil {
		out = []model.ItemTemplate{}
	}
	return out, nil
}

func (c *Client) SmartPrediction(ctx context.Context, profile model.SmartProfile) (*model.Prediction, error) {
	var out model.Prediction
	if err := c.do(ctx, fasthttp.MethodPost, pathSmartPrediction, profile, &out); err != nil {
		return nil, fmt.Errorf("smart prediction: %w", err)
	}
	return &out, nil
}

func (c *Client) QuickAdjustment(ctx context.Context, adj model.QuickAdjustment) (*model.Adjustment, error) {
	var out model.Adjustment
	if err := c.do(ctx, fasthttp.MethodPost, pathQuickAdjustment, adj, &out); err != nil {
		return nil, fmt.Errorf("quick adjustment: %w", err)
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	if c.baseURL == "" {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		req.Header.SetContentType("application/json")
		req.SetBodyRaw(b)
	}

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	start := time.Now()
	err := c.http.DoDeadline(req, resp, deadline)
	c.logger.Debug("pricing api call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode()),
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(err),
	)
	if err != nil {
		return err
	}

	status := resp.StatusCode()
	if status < 200 || status > 299 {
		return newAPIError(status, resp.Body())
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
