package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/shouni/go-ehon-kit/internal/config"
	"github.com/shouni/go-ehon-kit/pkg/domain"
	"github.com/shouni/go-ehon-kit/pkg/pipeline"
	"github.com/shouni/go-ehon-kit/pkg/publisher"
	"github.com/shouni/go-ehon-kit/pkg/workflow"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/shouni/go-web-exact/v2/pkg/extract"
)

// AppContext は、各コマンドの実行に必要な共有コンポーネントをまとめた入れ物なのだ。
type AppContext struct {
	Cfg        *config.Config
	HTTPClient httpkit.ClientInterface
	Reader     remoteio.InputReader
	Writer     remoteio.OutputWriter
	Pipeline   *pipeline.Pipeline
	Publisher  *publisher.BookPublisher
}

// setupAppContext は、提供された設定と共有コンポーネントを使用して、アプリケーションコンテキストを初期化して返すのだ。
// 初期化中にエラーが発生した場合は、AppContext のポインタとエラーを返すのだ。
func setupAppContext(ctx context.Context, cfg *config.Config) (*AppContext, error) {
	timeout := cfg.Options.HTTPTimeout
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}
	httpClient := httpkit.New(timeout)

	gcsFactory, err := gcsfactory.NewGCSClientFactory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client factory: %w", err)
	}

	reader, err := gcsFactory.NewInputReader()
	if err != nil {
		return nil, err
	}
	writer, err := gcsFactory.NewOutputWriter()
	if err != nil {
		return nil, err
	}

	wfCfg := workflow.DefaultConfig()
	wfCfg.GeminiAPIKey = cfg.GeminiAPIKey
	wfCfg.GeminiModel = cfg.GeminiModel
	wfCfg.ImageModel = cfg.GeminiImageModel
	wfCfg.StyleSuffix = cfg.ImagePromptSuffix

	manager, err := workflow.New(ctx, workflow.ManagerArgs{
		Config:     wfCfg,
		HTTPClient: httpClient,
		Reader:     reader,
		Writer:     writer,
	})
	if err != nil {
		return nil, fmt.Errorf("ワークフローマネージャーの初期化に失敗したのだ: %w", err)
	}

	pipe, err := manager.BuildPipeline()
	if err != nil {
		return nil, fmt.Errorf("パイプラインの構築に失敗したのだ: %w", err)
	}
	pub, err := manager.BuildPublisher()
	if err != nil {
		return nil, fmt.Errorf("パブリッシャーの構築に失敗したのだ: %w", err)
	}

	return &AppContext{
		Cfg:        cfg,
		HTTPClient: httpClient,
		Reader:     reader,
		Writer:     writer,
		Pipeline:   pipe,
		Publisher:  pub,
	}, nil
}

// loadBook は、JSONファイル（ローカル or GCS）から組み立て済みのブックを読み込むのだ。
func loadBook(ctx context.Context, reader remoteio.InputReader, path string) (*domain.Book, error) {
	rc, err := reader.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("ブックファイル '%s' の読み込みに失敗しました: %w", path, err)
	}
	defer rc.Close()

	var book domain.Book
	if err := json.NewDecoder(rc).Decode(&book); err != nil {
		return nil, fmt.Errorf("ブックファイル '%s' のデコードに失敗しました: %w", path, err)
	}
	return &book, nil
}

// loadCharacter は、JSONファイルから確定済みのキャラクターを読み込むのだ。
func loadCharacter(ctx context.Context, reader remoteio.InputReader, path string) (*domain.Character, error) {
	rc, err := reader.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("キャラクターファイル '%s' の読み込みに失敗しました: %w", path, err)
	}
	defer rc.Close()

	var char domain.Character
	if err := json.NewDecoder(rc).Decode(&char); err != nil {
		return nil, fmt.Errorf("キャラクターファイル '%s' のデコードに失敗しました: %w", path, err)
	}
	return &char, nil
}

// readPromptContent は、URL・ファイル・直接指定のいずれかから物語のアイデア文を取得するのだ。
func readPromptContent(ctx context.Context, appCtx *AppContext) (string, error) {
	opts := appCtx.Cfg.Options

	if opts.PromptText != "" {
		return opts.PromptText, nil
	}

	// URLが指定されている場合は、Webページから本文を抽出するのだ
	if opts.PromptURL != "" {
		extractor, err := extract.NewExtractor(appCtx.HTTPClient)
		if err != nil {
			return "", fmt.Errorf("extractor の初期化に失敗しました: %w", err)
		}
		text, _, err := extractor.FetchAndExtractText(ctx, opts.PromptURL)
		if err != nil {
			return "", fmt.Errorf("Webページの本文抽出に失敗したのだ: %w", err)
		}
		return text, nil
	}

	if opts.PromptFile == "" {
		return "", fmt.Errorf("物語のアイデア（--prompt / --prompt-file / --prompt-url）を指定してほしいのだ: %w", domain.ErrInputIncomplete)
	}

	// '-' は標準入力から読むのだ
	if opts.PromptFile == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("標準入力の読み込みに失敗しました: %w", err)
		}
		return string(data), nil
	}

	rc, err := appCtx.Reader.Open(ctx, opts.PromptFile)
	if err != nil {
		return "", fmt.Errorf("アイデアファイル '%s' の読み込みに失敗しました: %w", opts.PromptFile, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
