package config

import (
	"time"

	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultModel             = "gemini-3-pro-preview"
	DefaultImageModel        = "gemini-3-pro-image-preview"
	DefaultHTTPTimeout       = 30 * time.Second
	DefaultLocalBookDir      = "output/book" // パブリッシャーで使用するデフォルト保存先なのだ
	DefaultImagePromptSuffix = "master-grade digital watercolor illustration, vibrant colors, charming and friendly personality. 4K resolution, publishing quality."
)

// Config はアプリケーション全体の環境設定（APIキーやクラウド設定）を保持する構造体なのだ。
type Config struct {
	ProjectID         string
	LocationID        string
	GeminiAPIKey      string
	GeminiModel       string
	GeminiImageModel  string
	ImagePromptSuffix string

	Options GenerateOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	cfg := &Config{
		ProjectID:         envutil.GetEnv("PROJECT_ID", ""),
		LocationID:        envutil.GetEnv("REGION", ""),
		GeminiAPIKey:      envutil.GetEnv("GEMINI_API_KEY", ""),
		GeminiModel:       envutil.GetEnv("GEMINI_MODEL", DefaultModel),
		GeminiImageModel:  envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
		ImagePromptSuffix: envutil.GetEnv("IMAGE_PROMPT_SUFFIX", DefaultImagePromptSuffix),
	}
	return cfg
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// ソース入力関連
	PromptText    string // --prompt: 物語のアイデア（直接指定）
	PromptFile    string // --prompt-file: 物語のアイデアを書いたローカル/GCSファイル
	PromptURL     string // --prompt-url: 物語のアイデアを抽出するWebページ
	CharacterFile string // --character-file: 確定済みキャラクターのJSONパス
	BookFile      string // --book-file: 組み立て済みブックのJSONパス

	// 物語の条件
	AgeRange          string // --age-range
	Genre             string // --genre
	PageCount         int    // --pages
	PrimaryLanguage   string // --language
	SecondaryLanguage string // --secondary-language

	// キャラクター関連
	CharacterDescription string // --character: キャラクターの外見説明
	SelectCandidate      int    // --select: 採用する候補番号（0始まり）

	// ページ編集関連
	PageNumber        int    // --page: 編集対象のページ番号（1始まり）
	PageText          string // --text: 主テキストの差し替え
	PageTextSecondary string // --secondary-text: 副テキストの差し替え
	ClearSecondary    bool   // --clear-secondary: 副テキストの削除
	PageLayout        string // --layout: レイアウトの差し替え

	// 出力関連
	OutputDir  string // --output-dir
	ExportKind string // --export-kind: print / ppt / kindle

	// AI挙動設定
	AIModel    string // --model: テキスト生成用のGeminiモデル
	ImageModel string // --image-model: 画像生成用のGeminiモデル

	// 実行制御
	HTTPTimeout time.Duration // --http-timeout
}
