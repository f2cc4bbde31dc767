package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

type GameSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price any    `json:"price,omitempty"`
}

type SearchResult struct {
	Items []GameSummary `json:"items"`
	Total int           `json:"total"`
}

// CollectRequest mirrors the collect pipeline options.
type CollectRequest struct {
	AppID         int64  `json:"app_id"`
	EnableRewrite bool   `json:"enable_rewrite"`
	EnableAnalyze bool   `json:"enable_analyze"`
	RewriteStyle  string `json:"rewrite_style,omitempty"`
	PostStatus    string `json:"post_status,omitempty"`
}

type CollectResult struct {
	AppID    int64  `json:"app_id"`
	Action   string `json:"action"`
	PostID   int64  `json:"post_id,omitempty"`
	Error    string `json:"error,omitempty"`
	RecordID int64  `json:"record_id,omitempty"`
}

type EnqueueResult struct {
	JobID string `json:"job_id"`
	AppID int64  `json:"app_id"`
}

type BatchEnqueueResult struct {
	Count int             `json:"count"`
	Jobs  []EnqueueResult `json:"jobs"`
}

type RecordStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Running   int `json:"running"`
	Failed    int `json:"failed"`
	Pending   int `json:"pending"`
}

type Record struct {
	ID        int64  `json:"id"`
	AppID     int64  `json:"app_id"`
	GameName  string `json:"game_name"`
	Action    string `json:"action"`
	Status    string `json:"status"`
	PostID    int64  `json:"post_id,omitempty"`
	Error     string `json:"error,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

type RecordsPage struct {
	Total int      `json:"total"`
	Items []Record `json:"items"`
}

type RecordsQuery struct {
	Status string
	Limit  int
	Offset int
}

type Settings struct {
	AIProvider        string  `json:"ai_provider"`
	AIModel           string  `json:"ai_model"`
	WPURL             string  `json:"wp_url"`
	WPUsername        string  `json:"wp_username"`
	SteamRequestDelay float64 `json:"steam_request_delay"`
	DefaultPostStatus string  `json:"default_post_status"`
	EnableAIRewrite   bool    `json:"enable_ai_rewrite"`
	EnableAIAnalyze   bool    `json:"enable_ai_analyze"`
	RewriteStyle      string  `json:"rewrite_style"`
}

type ConnectionTestResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type ActivityPage struct {
	Items []Record `json:"items"`
}

type TrendPoint struct {
	Day       string `json:"day"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
	Failed    int    `json:"failed"`
}

type TrendPage struct {
	Items []TrendPoint `json:"items"`
}

func (c *Client) SearchGames(ctx context.Context, query string, limit int) (SearchResult, error) {
	values := url.Values{}
	values.Set("q", query)
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}

	var result SearchResult
	if err := c.get(ctx, "/api/steam/search", values, &result); err != nil {
		return SearchResult{}, err
	}

	return result, nil
}

// AppDetails returns the raw Steam store payload; the shape varies per app
// so it is passed through undecoded.
func (c *Client) AppDetails(ctx context.Context, appID int64) (json.RawMessage, error) {
	var result json.RawMessage
	if err := c.get(ctx, fmt.Sprintf("/api/steam/app/%d", appID), nil, &result); err != nil {
		return nil, err
	}

	return result, nil
}

func (c *Client) Collect(ctx context.Context, req CollectRequest) (CollectResult, error) {
	var result CollectResult
	if err := c.post(ctx, "/api/collect", req, &result); err != nil {
		return CollectResult{}, err
	}

	return result, nil
}

func (c *Client) Preview(ctx context.Context, req CollectRequest) (json.RawMessage, error) {
	var result json.RawMessage
	if err := c.post(ctx, "/api/collect/preview", req, &result); err != nil {
		return nil, err
	}

	return result, nil
}

func (c *Client) Enqueue(ctx context.Context, appID int64, options map[string]any) (EnqueueResult, error) {
	var result EnqueueResult
	payload := map[string]any{"app_id": appID}
	if options != nil {
		payload["options"] = options
	}
	if err := c.post(ctx, "/api/queue/enqueue", payload, &result); err != nil {
		return EnqueueResult{}, err
	}

	return result, nil
}

func (c *Client) EnqueueBatch(ctx context.Context, appIDs []int64, options map[string]any) (BatchEnqueueResult, error) {
	var result BatchEnqueueResult
	payload := map[string]any{"app_ids": appIDs}
	if options != nil {
		payload["options"] = options
	}
	if err := c.post(ctx, "/api/queue/enqueue/batch", payload, &result); err != nil {
		return BatchEnqueueResult{}, err
	}

	return result, nil
}

func (c *Client) RecordStats(ctx context.Context) (RecordStats, error) {
	var result RecordStats
	if err := c.get(ctx, "/api/history/records/stats", nil, &result); err != nil {
		return RecordStats{}, err
	}

	return result, nil
}

func (c *Client) Records(ctx context.Context, query RecordsQuery) (RecordsPage, error) {
	values := url.Values{}
	if query.Status != "" {
		values.Set("status", query.Status)
	}
	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Offset > 0 {
		values.Set("offset", strconv.Itoa(query.Offset))
	}

	var result RecordsPage
	if err := c.get(ctx, "/api/history/records", values, &result); err != nil {
		return RecordsPage{}, err
	}

	return result, nil
}

func (c *Client) Record(ctx context.Context, id int64) (Record, error) {
	var result Record
	if err := c.get(ctx, fmt.Sprintf("/api/history/records/%d", id), nil, &result); err != nil {
		return Record{}, err
	}

	return result, nil
}

func (c *Client) DeleteRecord(ctx context.Context, id int64) error {
	return c.del(ctx, fmt.Sprintf("/api/history/records/%d", id))
}

func (c *Client) Settings(ctx context.Context) (Settings, error) {
	var result Settings
	if err := c.get(ctx, "/api/settings", nil, &result); err != nil {
		return Settings{}, err
	}

	return result, nil
}

func (c *Client) UpdateSettings(ctx context.Context, settings Settings) (Settings, error) {
	var result Settings
	if err := c.put(ctx, "/api/settings", settings, &result); err != nil {
		return Settings{}, err
	}

	return result, nil
}

// TestConnection probes one of the backend's outbound integrations; kind is
// "wp" or "ai".
func (c *Client) TestConnection(ctx context.Context, kind string) (ConnectionTestResult, error) {
	var result ConnectionTestResult
	if err := c.post(ctx, "/api/settings/test-"+kind, nil, &result); err != nil {
		return ConnectionTestResult{}, err
	}

	return result, nil
}

func (c *Client) DashboardTrend(ctx context.Context, days int) (TrendPage, error) {
	values := url.Values{}
	if days > 0 {
		values.Set("days", strconv.Itoa(days))
	}

	var result TrendPage
	if err := c.get(ctx, "/api/dashboard/trend", values, &result); err != nil {
		return TrendPage{}, err
	}

	return result, nil
}

func (c *Client) DashboardActivity(ctx context.Context, limit int) (ActivityPage, error) {
	values := url.Values{}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}

	var result ActivityPage
	if err := c.get(ctx, "/api/dashboard/activity", values, &result); err != nil {
		return ActivityPage{}, err
	}

	return result, nil
}
