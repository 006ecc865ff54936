package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Abdullah-1719/ChaletF/internal/calendar"
)

// Client はChaletF APIのHTTPクライアント
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient は指定したベースURLのクライアントを作成する
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Reservation はAPIが返す予約レコード
type Reservation struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Listing は日付→予約者名のマッピング
type Listing map[string]struct {
	Name string `json:"name"`
}

type reservationBody struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// Calendar は指定した年月のカレンダーグリッドを取得する
// year / month が0の場合はサーバー側の現在月になる
func (c *Client) Calendar(ctx context.Context, year, month int) (*calendar.Month, error) {
	q := url.Values{}
	if year != 0 {
		q.Set("year", strconv.Itoa(year))
	}
	if month != 0 {
		q.Set("month", strconv.Itoa(month))
	}
	path := "/api/calendar"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var grid calendar.Month
	if err := c.do(ctx, http.MethodGet, path, nil, &grid); err != nil {
		return nil, err
	}
	return &grid, nil
}

// List は全予約を取得する
func (c *Client) List(ctx context.Context) (Listing, error) {
	var listing Listing
	if err := c.do(ctx, http.MethodGet, "/api/reservations", nil, &listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// Book は新しい予約を作成する
func (c *Client) Book(ctx context.Context, name, date string) (*Reservation, error) {
	var res Reservation
	if err := c.do(ctx, http.MethodPost, "/api/reservations", &reservationBody{Name: name, Date: date}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Search は名前の部分一致で予約を検索する
func (c *Client) Search(ctx context.Context, name string) (Listing, error) {
	var listing Listing
	path := "/api/reservations/search?name=" + url.QueryEscape(name)
	if err := c.do(ctx, http.MethodGet, path, nil, &listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// Edit は指定日の予約の名前と日付を変更する
func (c *Client) Edit(ctx context.Context, date, newName, newDate string) (*Reservation, error) {
	var res Reservation
	path := "/api/reservations/" + url.PathEscape(date)
	if err := c.do(ctx, http.MethodPut, path, &reservationBody{Name: newName, Date: newDate}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Cancel は指定日の予約を削除する
func (c *Client) Cancel(ctx context.Context, date string) error {
	path := "/api/reservations/" + url.PathEscape(date)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// do はリクエストを実行し、2xx以外はエラーボディをエラーとして返す
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// apiError はサーバーの {"error": "..."} ボディをエラーに変換する
func apiError(status int, body []byte) error {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return errors.New(e.Error)
	}
	return fmt.Errorf("server returned status %d", status)
}
