package config

import (
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultModel       = "gemini-3-flash-preview"
	DefaultImageModel  = "gemini-3-pro-image-preview"
	DefaultHTTPTimeout = 30 * time.Second
	DefaultPanelCount  = 8
	DefaultRateLimit   = 10 * time.Second
	DefaultOutputDir   = "output"
	DefaultPort        = "8080"
	// ScrapingDog の LinkedIn プロフィールAPIのエンドポイントなのだ
	DefaultScrapingDogBaseURL = "https://api.scrapingdog.com/linkedin"
	DefaultStyleSuffix        = ""
)

// Config はアプリケーション全体の環境設定（APIキーや接続先）を保持する構造体なのだ。
type Config struct {
	GeminiAPIKey       string
	ScrapingDogAPIKey  string
	GeminiModel        string
	GeminiImageModel   string
	ScrapingDogBaseURL string
	ImagePromptSuffix  string
	Port               string

	// MockProfilePath が設定されている場合、ScrapingDog の代わりに
	// ローカルJSONからプロフィールを読むのだ（APIクレジットの節約用）。
	MockProfilePath string

	Options GenerateOptions
}

// LoadConfig は .env と環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	// .env はあれば読む。無くてもエラーにはしないのだ。
	if err := godotenv.Load(); err == nil {
		slog.Debug(".env を読み込んだのだ")
	}

	cfg := &Config{
		GeminiAPIKey:       envutil.GetEnv("GEMINI_API_KEY", ""),
		ScrapingDogAPIKey:  envutil.GetEnv("SCRAPINGDOG_API_KEY", ""),
		GeminiModel:        envutil.GetEnv("GEMINI_MODEL", DefaultModel),
		GeminiImageModel:   envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
		ScrapingDogBaseURL: envutil.GetEnv("SCRAPINGDOG_BASE_URL", DefaultScrapingDogBaseURL),
		ImagePromptSuffix:  envutil.GetEnv("IMAGE_PROMPT_SUFFIX", DefaultStyleSuffix),
		Port:               envutil.GetEnv("PORT", DefaultPort),
		MockProfilePath:    envutil.GetEnv("MOCK_PROFILE_PATH", ""),
	}
	return cfg
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// ソース入力関連
	ProfileURL string // --profile-url
	OutputDir  string // --output-dir
	PanelCount int    // --panel-count

	// AI挙動設定
	AIModel    string // --model: テキスト生成用のGeminiモデル
	ImageModel string // --image-model: 画像生成用のGeminiモデル

	// 実行制御
	HTTPTimeout  time.Duration // --http-timeout
	RateInterval time.Duration // --rate-interval
	MockProfile  string        // --mock-profile: ローカルJSONでのドライラン
}
