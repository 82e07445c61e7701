package workflow

import (
	"time"
)

// デフォルト値の定義なのだ
const (
	DefaultGeminiModel  = "gemini-3-pro-preview"
	DefaultImageModel   = "gemini-3-pro-image-preview"
	DefaultRateInterval = 10 * time.Second
	DefaultStyleSuffix  = "master-grade digital watercolor illustration, vibrant colors, charming and friendly personality. 4K resolution, publishing quality."
)

// Config は Go Ehon Kit の各工程を動作させるための基本設定なのだ。
type Config struct {
	// --- AI Model Settings ---
	GeminiAPIKey string
	GeminiModel  string
	ImageModel   string

	// --- Generation Settings ---
	StyleSuffix  string
	RateInterval time.Duration

	// --- Storage & Output Settings ---
	GCSBucket  string
	ServiceURL string

	// --- Timeout & Retries ---
	RequestTimeout time.Duration
}

// NewConfig はデフォルト値で初期化された Config を作成し、必要最小限の値をセットして返すのだ。
func NewConfig(apiKey string) Config {
	cfg := DefaultConfig()
	cfg.GeminiAPIKey = apiKey
	return cfg
}

// DefaultConfig は推奨されるデフォルト設定を返すヘルパー関数なのだ。
func DefaultConfig() Config {
	return Config{
		GeminiModel:    DefaultGeminiModel,
		ImageModel:     DefaultImageModel,
		StyleSuffix:    DefaultStyleSuffix,
		RateInterval:   DefaultRateInterval,
		RequestTimeout: 5 * time.Minute,
	}
}
