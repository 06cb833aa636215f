// Package scraper は ScrapingDog API を使った LinkedIn プロフィール取得を担います。
package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/shouni/go-career-manga/pkg/domain"
)

// DefaultBaseURL は ScrapingDog LinkedIn API のエンドポイントです。
const DefaultBaseURL = "https://api.scrapingdog.com/linkedin/"

// Client は ScrapingDog API のクライアントです。
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option は Client の構成を変更します。
type Option func(*Client)

// WithBaseURL はエンドポイントを差し替えます。テストでのスタブ差し込みに使うのだ。
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient は HTTP クライアントを差し替えます。
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New は ScrapingDog クライアントを生成します。
func New(apiKey string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchProfile は指定された LinkedIn URL のプロフィールを取得し、正規化して返します。
// URL検証に失敗した場合はネットワーク呼び出しを一切行いません。
func (c *Client) FetchProfile(ctx context.Context, profileURL string) (domain.Profile, error) {
	linkID, err := domain.ExtractLinkID(profileURL)
	if err != nil {
		return domain.Profile{}, domain.NewStageError(
			domain.StageScrape, domain.ErrorKindValidation, err.Error(), err)
	}

	if c.apiKey == "" {
		return domain.Profile{}, domain.NewStageError(
			domain.StageScrape, domain.ErrorKindValidation,
			"SCRAPINGDOG_API_KEY が設定されていません", nil)
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("type", "profile")
	params.Set("linkId", linkID)

	endpoint := c.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Profile{}, domain.NewStageError(
			domain.StageScrape, domain.ErrorKindTransport, "リクエストの構築に失敗しました", err)
	}
	req.Header.Set("Accept", "application/json")

	slog.Info("プロフィールの取得を開始するのだ", "link_id", linkID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Profile{}, domain.NewStageError(
			domain.StageScrape, domain.ErrorKindTransport, "ScrapingDog APIに到達できません", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// 上流のステータスコードをメッセージに残し、呼び出し元が原因を判別できるようにする
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.Profile{}, domain.NewStageError(
			domain.StageScrape, domain.ErrorKindTransport,
			fmt.Sprintf("ScrapingDog APIエラー: status %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
			fmt.Errorf("upstream response: %s", string(body)))
	}

	var records []domain.ProviderRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return domain.Profile{}, domain.NewStageError(
			domain.StageScrape, domain.ErrorKindShape, "応答JSONのデコードに失敗しました", err)
	}

	if len(records) == 0 {
		return domain.Profile{}, domain.NewStageError(
			domain.StageScrape, domain.ErrorKindShape,
			"プロフィールデータが返されませんでした", nil)
	}

	profile := domain.NormalizeProfile(records[0], profileURL)
	slog.Info("プロフィールの取得に成功したのだ",
		"name", profile.Name,
		"experience", len(profile.Experience),
		"education", len(profile.Education))
	return profile, nil
}
