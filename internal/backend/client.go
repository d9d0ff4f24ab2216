package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/MrJamesThe3rd/buku/internal/entry"
)

const maxResponseBytes = 10 << 20

type resource struct {
	path    string
	listKey string
	// updateMethod defaults to PUT.
	updateMethod string
}

var resources = map[entry.Kind]resource{
	entry.KindIncome:    {path: "income", listKey: "incomes"},
	entry.KindExpense:   {path: "spend", listKey: "spends"},
	entry.KindAsset:     {path: "assets", updateMethod: http.MethodPatch},
	entry.KindLiability: {path: "liability"},
	entry.KindEquity:    {path: "equity"},
}

type Options struct {
	BaseURL string
	// Token is used when the request context carries none.
	Token   string
	Timeout time.Duration
	// RPS throttles outbound requests; zero disables throttling.
	RPS        float64
	HTTPClient *http.Client
}

// Client talks to the remote bookkeeping API and implements entry.Repository.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter

	mu    sync.RWMutex
	token string
}

func New(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}

		hc = &http.Client{Timeout: timeout}
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RPS), max(1, int(opts.RPS)))
	}

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    hc,
		limiter: limiter,
		token:   opts.Token,
	}
}

// SetToken replaces the fallback bearer token.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.token = token
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.token
}

func (c *Client) ListEntries(ctx context.Context, kind entry.Kind) ([]entry.Entry, error) {
	res, ok := resources[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", entry.ErrInvalidKind, kind)
	}

	body, err := c.do(ctx, http.MethodGet, "/"+res.path, nil)
	if err != nil {
		return nil, err
	}

	var entries []entry.Entry

	switch kind {
	case entry.KindIncome:
		entries, err = convert[incomeRecord](body, res.listKey)
	case entry.KindExpense:
		entries, err = convert[spendRecord](body, res.listKey)
	case entry.KindAsset:
		entries, err = convert[assetRecord](body, res.listKey)
	case entry.KindLiability:
		entries, err = convert[liabilityRecord](body, res.listKey)
	case entry.KindEquity:
		entries, err = convert[equityRecord](body, res.listKey)
	}

	if err != nil {
		return nil, fmt.Errorf("decoding %s list: %w", kind, err)
	}

	return entries, nil
}

func (c *Client) CreateEntry(ctx context.Context, params entry.CreateParams) (*entry.Entry, error) {
	res, ok := resources[params.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", entry.ErrInvalidKind, params.Kind)
	}

	body, err := c.do(ctx, http.MethodPost, "/"+res.path, createBody(params))
	if err != nil {
		return nil, err
	}

	return fromParams(createdID(body), params), nil
}

// UpdateEntry replaces the fields of an existing record with params.
func (c *Client) UpdateEntry(ctx context.Context, id string, params entry.CreateParams) (*entry.Entry, error) {
	res, ok := resources[params.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", entry.ErrInvalidKind, params.Kind)
	}

	method := res.updateMethod
	if method == "" {
		method = http.MethodPut
	}

	if _, err := c.do(ctx, method, "/"+res.path+"/"+url.PathEscape(id), createBody(params)); err != nil {
		return nil, err
	}

	return fromParams(id, params), nil
}

func fromParams(id string, p entry.CreateParams) *entry.Entry {
	return &entry.Entry{
		ID:          id,
		Kind:        p.Kind,
		Amount:      p.Amount,
		OccurredOn:  p.OccurredOn,
		Category:    p.Category,
		TaxPercent:  p.TaxPercent,
		Name:        p.Name,
		Description: p.Description,
	}
}

func (c *Client) DeleteEntry(ctx context.Context, kind entry.Kind, id string) error {
	res, ok := resources[kind]
	if !ok {
		return fmt.Errorf("%w: %q", entry.ErrInvalidKind, kind)
	}

	_, err := c.do(ctx, http.MethodDelete, "/"+res.path+"/"+url.PathEscape(id), nil)

	return err
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	var reader io.Reader

	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}

		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token := c.tokenFor(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	slog.Debug("backend request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Message: errorMessage(body, resp.Status)}
	}

	return body, nil
}

func (c *Client) tokenFor(ctx context.Context) string {
	if token, ok := TokenFromContext(ctx); ok {
		return token
	}

	return c.Token()
}

func convert[T interface{ toEntry() entry.Entry }](body []byte, key string) ([]entry.Entry, error) {
	records, err := decodeList[T](body, key)
	if err != nil {
		return nil, err
	}

	entries := make([]entry.Entry, len(records))
	for i, r := range records {
		entries[i] = r.toEntry()
	}

	return entries, nil
}

func errorMessage(body []byte, fallback string) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}

	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}

		if payload.Error != "" {
			return payload.Error
		}
	}

	return fallback
}

// createdID extracts the identifier from a create response, which is either
// the record itself or the record under "data".
func createdID(body []byte) string {
	var payload struct {
		ID   recordID `json:"id"`
		Data struct {
			ID recordID `json:"id"`
		} `json:"data"`
	}

	// A type mismatch elsewhere in the body still leaves the ids decoded.
	_ = json.Unmarshal(body, &payload)

	if payload.Data.ID != "" {
		return string(payload.Data.ID)
	}

	return string(payload.ID)
}

var fixedAssets = map[string]bool{
	"bangunan":        true,
	"mesin":           true,
	"kendaraan":       true,
	"peralatan":       true,
	"investasi_tetap": true,
}

func createBody(p entry.CreateParams) map[string]any {
	amount := json.Number(p.Amount.String())
	on := p.OccurredOn.UTC().Format(time.RFC3339)

	switch p.Kind {
	case entry.KindIncome:
		return map[string]any{
			"type":        p.Category,
			"amount":      amount,
			"tax":         json.Number(p.TaxPercent.String()),
			"description": p.Description,
			"incomeDate":  on,
		}
	case entry.KindExpense:
		return map[string]any{
			"spendingType": p.Category,
			"amount":       amount,
			"description":  p.Description,
			"spendDate":    on,
		}
	case entry.KindAsset:
		assetType := "current"
		if fixedAssets[p.Category] {
			assetType = "fixed"
		}

		return map[string]any{
			"assetName":        p.Name,
			"assetValue":       amount,
			"assetType":        assetType,
			"assetCategory":    p.Category,
			"assetDate":        on,
			"assetDescription": p.Description,
		}
	case entry.KindLiability:
		liabilityType := "short-term"
		if p.Category == "bank_loan" {
			liabilityType = "long-term"
		}

		body := map[string]any{
			"liabilityName":        p.Name,
			"liabilityAmount":      amount,
			"liabilityType":        liabilityType,
			"liabilityCategory":    p.Category,
			"liabilityDate":        on,
			"liabilityDescription": p.Description,
		}
		if p.DueDate != nil {
			body["dueDate"] = p.DueDate.UTC().Format(time.RFC3339)
		}

		return body
	case entry.KindEquity:
		return map[string]any{
			"equityName":  p.Name,
			"equityType":  p.Category,
			"amount":      amount,
			"description": p.Description,
			"equityDate":  on,
		}
	}

	return nil
}
