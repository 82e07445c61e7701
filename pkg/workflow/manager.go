package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	imagekit "github.com/shouni/gemini-image-kit/pkg/generator"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/shouni/go-text-format/pkg/builder"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/shouni/go-ehon-kit/pkg/exporter"
	"github.com/shouni/go-ehon-kit/pkg/gateway"
	"github.com/shouni/go-ehon-kit/pkg/pipeline"
	"github.com/shouni/go-ehon-kit/pkg/prompts"
	"github.com/shouni/go-ehon-kit/pkg/publisher"
)

const (
	defaultGeminiTemperature = float32(0.1)
	defaultRateBurst         = 2

	defaultCacheExpiration = 5 * time.Minute
	cacheCleanupInterval   = 15 * time.Minute
	defaultTTL             = 5 * time.Minute
)

// ManagerArgs は Manager の初期化に必要な依存関係なのだ。
type ManagerArgs struct {
	Config     Config
	HTTPClient httpkit.ClientInterface
	Reader     remoteio.InputReader
	Writer     remoteio.OutputWriter
}

// Manager は、絵本作成ワークフローの各工程を構築・管理します。
type Manager struct {
	cfg        Config
	httpClient httpkit.ClientInterface
	reader     remoteio.InputReader
	writer     remoteio.OutputWriter
	aiClient   gemini.GenerativeModel
	gateway    *gateway.GeminiGateway
}

// New は、設定と依存関係を基に新しい Manager を初期化します。
func New(ctx context.Context, args ManagerArgs) (*Manager, error) {
	if args.HTTPClient == nil {
		return nil, fmt.Errorf("httpClient は必須です")
	}
	if args.Reader == nil {
		return nil, fmt.Errorf("InputReader は必須です")
	}
	if args.Writer == nil {
		return nil, fmt.Errorf("OutputWriter は必須です")
	}

	aiClient, err := initializeAIClient(ctx, args.Config.GeminiAPIKey)
	if err != nil {
		return nil, err
	}

	gw, err := buildGateway(args.Config, args.HTTPClient, aiClient, args.Reader)
	if err != nil {
		return nil, fmt.Errorf("コンテンツゲートウェイの初期化に失敗しました: %w", err)
	}

	return &Manager{
		cfg:        args.Config,
		httpClient: args.HTTPClient,
		reader:     args.Reader,
		writer:     args.Writer,
		aiClient:   aiClient,
		gateway:    gw,
	}, nil
}

// BuildPipeline は、絵本作成の各工程を統括する Pipeline を作成します。
func (m *Manager) BuildPipeline() (*pipeline.Pipeline, error) {
	limiter := rate.NewLimiter(rate.Every(m.cfg.RateInterval), defaultRateBurst)
	return pipeline.New(m.gateway, limiter)
}

// BuildPublisher は、成果物のパブリッシュを担当する BookPublisher を作成します。
func (m *Manager) BuildPublisher() (*publisher.BookPublisher, error) {
	htmlCfg := builder.BuilderConfig{
		EnableHardWraps: true,
	}
	md2htmlBuilder, err := builder.NewBuilder(htmlCfg)
	if err != nil {
		return nil, fmt.Errorf("md2htmlBuilder の初期化に失敗しました: %w", err)
	}
	md2htmlRunner, err := md2htmlBuilder.BuildRunner()
	if err != nil {
		return nil, fmt.Errorf("md2htmlRunner の初期化に失敗しました: %w", err)
	}

	return publisher.NewBookPublisher(m.writer, md2htmlRunner, exporter.NewRenderer()), nil
}

// initializeAIClient は gemini クライアントを初期化します。
func initializeAIClient(ctx context.Context, apiKey string) (gemini.GenerativeModel, error) {
	clientConfig := gemini.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(defaultGeminiTemperature),
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}

// buildGateway は画像生成エンジンとプロンプトビルダーを束ねた GeminiGateway を初期化します。
func buildGateway(
	cfg Config,
	httpClient httpkit.ClientInterface,
	aiClient gemini.GenerativeModel,
	reader remoteio.InputReader,
) (*gateway.GeminiGateway, error) {
	core, err := initializeCore(reader, httpClient, aiClient)
	if err != nil {
		return nil, fmt.Errorf("画像生成エンジンの初期化に失敗しました: %w", err)
	}
	imageGenerator, err := imagekit.NewGeminiGenerator(cfg.ImageModel, core)
	if err != nil {
		return nil, fmt.Errorf("ImageGeneratorの初期化に失敗しました: %w", err)
	}

	textPrompts, err := prompts.NewTextPromptBuilder()
	if err != nil {
		return nil, fmt.Errorf("TextPromptBuilder の新規作成に失敗しました: %w", err)
	}
	imagePrompts := prompts.NewImagePromptBuilder(cfg.StyleSuffix)

	return gateway.NewGeminiGateway(
		gateway.Config{TextModel: cfg.GeminiModel, ImageModel: cfg.ImageModel},
		gateway.NewGeminiTextGenerator(aiClient),
		imageGenerator,
		core,
		textPrompts,
		imagePrompts,
	)
}

// initializeCore 提供された依存関係で構成された GeminiImageCore インスタンスを初期化して返します。
func initializeCore(reader remoteio.InputReader, httpClient httpkit.ClientInterface, aiClient gemini.GenerativeModel) (*imagekit.GeminiImageCore, error) {
	imgCache := cache.New(defaultCacheExpiration, cacheCleanupInterval)
	core, err := imagekit.NewGeminiImageCore(
		aiClient,
		reader,
		httpClient,
		imgCache,
		defaultTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("GeminiImageCore の初期化に失敗しました: %w", err)
	}

	return core, nil
}
