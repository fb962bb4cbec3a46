// Package supabase はSupabase StorageのオブジェクトAPI（REST）クライアント
package supabase

import (
	"assetup/internal/service/common"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// エラーレスポンスのボディは先頭だけ読む
const maxErrorBody = 4 << 10

// Config はクライアントの設定
type Config struct {
	BaseURL    string // 例: https://xxx.supabase.co/storage/v1/object
	Bucket     string
	ServiceKey string
	Timeout    time.Duration
}

// Client はバケットに対してHEAD/PUTを発行する
type Client struct {
	httpClient *http.Client
	baseURL    string
	bucket     string
	serviceKey string
}

// NewClient は新しいClientを作成
func NewClient(cfg Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		bucket:     cfg.Bucket,
		serviceKey: cfg.ServiceKey,
	}
}

// Close はキープアライブ中の接続を解放する
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// ObjectURL は {base}/{bucket}/{key} 形式のURLを返す
// キーの各セグメントはエスケープし、"/" はそのまま残す
func (c *Client) ObjectURL(key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return c.baseURL + "/" + url.PathEscape(c.bucket) + "/" + strings.Join(segments, "/")
}

// Exists はHEADリクエストでオブジェクトの存在を確認する
// 200なら存在、404なら不在、それ以外はStatusErrorを返す
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.ObjectURL(key), nil)
	if err != nil {
		return false, err
	}
	c.setAuthHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("head %s: %w", key, err)
	}
	defer drainAndClose(resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	}
	return false, &common.StatusError{
		Op:         "head",
		Key:        key,
		StatusCode: resp.StatusCode,
		Body:       readErrorBody(resp.Body),
	}
}

// Put はファイル全体をPUTでアップロードする（x-upsert: true で上書き）
// 400以上のステータスはStatusErrorを返す
func (c *Client) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.ObjectURL(key), body)
	if err != nil {
		return err
	}
	c.setAuthHeaders(req)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")
	if size >= 0 {
		req.ContentLength = size
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return &common.StatusError{
			Op:         "put",
			Key:        key,
			StatusCode: resp.StatusCode,
			Body:       readErrorBody(resp.Body),
		}
	}
	return nil
}

func (c *Client) setAuthHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("apikey", c.serviceKey)
}

func readErrorBody(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	return string(b)
}

// drainAndClose は接続を再利用できるようボディを読み切ってから閉じる
func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, maxErrorBody))
	_ = body.Close()
}
