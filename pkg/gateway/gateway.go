package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
	"golang.org/x/sync/singleflight"

	"github.com/shouni/go-ehon-kit/pkg/asset"
	"github.com/shouni/go-ehon-kit/pkg/domain"
	"github.com/shouni/go-ehon-kit/pkg/prompts"
)

const (
	// CharacterAspectRatio はキャラクター候補画像のアスペクト比です。
	CharacterAspectRatio = "1:1"
	// PageAspectRatio はページ挿絵のアスペクト比です。
	PageAspectRatio = "16:9"
)

// Config は GeminiGateway が使用するモデル名の設定です。
type Config struct {
	TextModel  string
	ImageModel string
}

// GeminiGateway は ContentGateway の Gemini 実装です。
// キャラクター参照画像の File API アップロードを内部でキャッシュし、
// 同一キャラクターに対する重複アップロードを singleflight で集約します。
type GeminiGateway struct {
	cfg          Config
	text         TextGenerator
	images       ImageSynthesizer
	assets       AssetUploader
	textPrompts  prompts.PromptBuilder
	imagePrompts *prompts.ImagePromptBuilder

	mu          sync.RWMutex
	refURICache map[string]string // CharacterID -> FileAPIURI
	uploadGroup singleflight.Group
}

// NewGeminiGateway は依存関係を検証して GeminiGateway を初期化します。
func NewGeminiGateway(
	cfg Config,
	text TextGenerator,
	images ImageSynthesizer,
	assets AssetUploader,
	textPrompts prompts.PromptBuilder,
	imagePrompts *prompts.ImagePromptBuilder,
) (*GeminiGateway, error) {
	if text == nil {
		return nil, fmt.Errorf("TextGenerator は必須です")
	}
	if images == nil {
		return nil, fmt.Errorf("ImageSynthesizer は必須です")
	}
	if textPrompts == nil {
		return nil, fmt.Errorf("PromptBuilder は必須です")
	}
	if imagePrompts == nil {
		return nil, fmt.Errorf("ImagePromptBuilder は必須です")
	}

	return &GeminiGateway{
		cfg:          cfg,
		text:         text,
		images:       images,
		assets:       assets,
		textPrompts:  textPrompts,
		imagePrompts: imagePrompts,
		refURICache:  make(map[string]string),
	}, nil
}

// SynthesizeCharacter はキャラクター候補画像を 1 枚生成し、data URL を返します。
// 同じ説明文からは同じシード系列が導出されるため、候補は再現可能です。
func (g *GeminiGateway) SynthesizeCharacter(ctx context.Context, description string, variant int) (string, error) {
	if strings.TrimSpace(description) == "" {
		return "", domain.NewGenerationError(domain.StageCharacter,
			fmt.Errorf("キャラクターの説明が指定されていません: %w", domain.ErrInputIncomplete))
	}

	prompt := g.imagePrompts.BuildCharacterPrompt(description, variant)
	seed := domain.SeedFromDescription(description) + int64(variant)

	logger := slog.With("variant", variant, "model", g.cfg.ImageModel)
	logger.Info("キャラクター候補の生成を開始するのだ")

	startTime := time.Now()
	resp, err := g.images.GenerateMangaPanel(ctx, imagedom.ImageGenerationRequest{
		Prompt:      prompt,
		Seed:        &seed,
		AspectRatio: CharacterAspectRatio,
	})
	if err != nil {
		return "", domain.NewGenerationError(domain.StageCharacter,
			fmt.Errorf("キャラクター候補 %d の生成に失敗しました: %w", variant, err))
	}
	if len(resp.Data) == 0 {
		return "", domain.NewGenerationError(domain.StageCharacter,
			fmt.Errorf("キャラクター候補 %d の応答に画像が含まれていません", variant))
	}

	logger.Info("キャラクター候補の生成が完了したのだ", "duration", time.Since(startTime).Round(time.Millisecond))
	return asset.EncodeDataURL(resp.Data, resp.MimeType), nil
}

// SynthesizeStory は条件に従った物語を合成します。
// 応答のページ数が要求と一致しない場合は全体を失敗として扱います。
func (g *GeminiGateway) SynthesizeStory(ctx context.Context, cfg domain.StoryConfig) (domain.StoryResponse, error) {
	if err := cfg.Validate(); err != nil {
		return domain.StoryResponse{}, err
	}

	finalPrompt, err := g.textPrompts.Build(prompts.ModeStory, prompts.StoryTemplateData{
		Prompt:               cfg.Prompt,
		AgeRange:             string(cfg.AgeRange),
		Genre:                string(cfg.Genre),
		PrimaryLanguage:      cfg.PrimaryLanguage,
		SecondaryLanguage:    cfg.SecondaryLanguage,
		CharacterDescription: cfg.CharacterDescription,
		PageCount:            cfg.PageCount,
	})
	if err != nil {
		return domain.StoryResponse{}, fmt.Errorf("プロンプト生成に失敗: %w", err)
	}

	slog.Info("物語の合成を開始するのだ", "model", g.cfg.TextModel, "pages", cfg.PageCount)
	raw, err := g.text.Generate(ctx, finalPrompt, g.cfg.TextModel)
	if err != nil {
		return domain.StoryResponse{}, domain.NewGenerationError(domain.StageStory,
			fmt.Errorf("物語の合成に失敗しました: %w", err))
	}

	var story domain.StoryResponse
	if err := parseJSONResponse(raw, &story); err != nil {
		return domain.StoryResponse{}, domain.NewGenerationError(domain.StageStory, err)
	}

	if err := validateStory(story, cfg.PageCount); err != nil {
		return domain.StoryResponse{}, domain.NewGenerationError(domain.StageStory, err)
	}

	slog.Info("物語の合成が完了したのだ", "title", story.Title, "pages", len(story.Pages))
	return story, nil
}

// validateStory は合成された物語が要求された形を満たしているか検証します。
func validateStory(story domain.StoryResponse, wantPages int) error {
	if strings.TrimSpace(story.Title) == "" {
		return fmt.Errorf("物語のタイトルが空です")
	}
	if len(story.Pages) != wantPages {
		return fmt.Errorf("ページ数が条件と一致しません: 要求 %d, 実際 %d", wantPages, len(story.Pages))
	}
	for i, page := range story.Pages {
		if strings.TrimSpace(page.TextPrimary) == "" {
			return fmt.Errorf("ページ %d の本文が空です", i+1)
		}
		if strings.TrimSpace(page.ImagePrompt) == "" {
			return fmt.Errorf("ページ %d の挿絵指示が空です", i+1)
		}
	}
	return nil
}

// SynthesizePageImage は確定済みキャラクターを参照アンカーとして挿絵を生成します。
func (g *GeminiGateway) SynthesizePageImage(ctx context.Context, scenePrompt string, character *domain.Character) (string, error) {
	if character == nil || !character.Locked {
		return "", domain.NewGenerationError(domain.StagePageImage,
			fmt.Errorf("キャラクターが確定されていません: %w", domain.ErrInputIncomplete))
	}
	if strings.TrimSpace(scenePrompt) == "" {
		return "", domain.NewGenerationError(domain.StagePageImage,
			fmt.Errorf("挿絵のシーン指示が空です: %w", domain.ErrInputIncomplete))
	}

	// 参照画像は File API に集約アップロードし、失敗時は URL 参照にフォールバック
	fileURI := g.prepareCharacterResource(ctx, character)

	userPrompt := g.imagePrompts.BuildPagePrompt(scenePrompt)
	systemPrompt := g.imagePrompts.BuildPageSystemPrompt()
	seed := domain.SeedFromDescription(character.Description)

	startTime := time.Now()
	resp, err := g.images.GenerateMangaPanel(ctx, imagedom.ImageGenerationRequest{
		Prompt:       userPrompt,
		SystemPrompt: systemPrompt,
		Seed:         &seed,
		FileAPIURI:   fileURI,
		ReferenceURL: character.ImageURL,
		AspectRatio:  PageAspectRatio,
	})
	if err != nil {
		return "", domain.NewGenerationError(domain.StagePageImage,
			fmt.Errorf("挿絵の生成に失敗しました: %w", err))
	}
	if len(resp.Data) == 0 {
		return "", domain.NewGenerationError(domain.StagePageImage,
			fmt.Errorf("挿絵の応答に画像が含まれていません"))
	}

	slog.Info("挿絵の生成が完了したのだ",
		"character_id", character.ID,
		"use_file_api", fileURI != "",
		"duration", time.Since(startTime).Round(time.Millisecond))
	return asset.EncodeDataURL(resp.Data, resp.MimeType), nil
}

// prepareCharacterResource はキャラクター参照画像を File API にアップロードし、URI を返します。
// 同じキャラクターへの並行アップロードは singleflight により 1 回に集約されます。
// アップロードに失敗した場合は空文字を返し、呼び出し側は URL 参照にフォールバックします。
func (g *GeminiGateway) prepareCharacterResource(ctx context.Context, character *domain.Character) string {
	if g.assets == nil || character.ImageURL == "" {
		return ""
	}

	g.mu.RLock()
	uri, ok := g.refURICache[character.ID]
	g.mu.RUnlock()
	if ok {
		return uri
	}

	val, err, _ := g.uploadGroup.Do(character.ID, func() (interface{}, error) {
		// singleflight で待機中に他のゴルーチンが完了させている可能性があるため再確認
		g.mu.RLock()
		existingURI, ok := g.refURICache[character.ID]
		g.mu.RUnlock()
		if ok {
			return existingURI, nil
		}

		uploadedURI, uploadErr := g.assets.UploadFile(ctx, character.ImageURL)
		if uploadErr != nil {
			return nil, uploadErr
		}

		g.mu.Lock()
		g.refURICache[character.ID] = uploadedURI
		g.mu.Unlock()

		return uploadedURI, nil
	})
	if err != nil {
		slog.Warn("参照画像のアップロードに失敗したため URL 参照にフォールバックするのだ",
			"character_id", character.ID, "error", err)
		return ""
	}

	uri, ok = val.(string)
	if !ok {
		return ""
	}
	return uri
}

// SynthesizeWorksheet は完成したブックの本文から学習ワークシートの素材を合成します。
func (g *GeminiGateway) SynthesizeWorksheet(ctx context.Context, book *domain.Book) (domain.WorksheetContent, error) {
	if book == nil || len(book.Pages) == 0 {
		return domain.WorksheetContent{}, domain.NewGenerationError(domain.StageWorksheet,
			fmt.Errorf("ワークシートの元になるブックが空です: %w", domain.ErrInputIncomplete))
	}

	finalPrompt, err := g.textPrompts.Build(prompts.ModeWorksheet, prompts.WorksheetTemplateData{
		StoryText:          book.Transcript(),
		AgeRange:           string(book.AgeRange),
		ComprehensionCount: domain.WorksheetComprehensionCount,
		VocabularyCount:    domain.WorksheetVocabularyCount,
	})
	if err != nil {
		return domain.WorksheetContent{}, fmt.Errorf("プロンプト生成に失敗: %w", err)
	}

	slog.Info("ワークシートの合成を開始するのだ", "model", g.cfg.TextModel, "book_title", book.Title)
	raw, err := g.text.Generate(ctx, finalPrompt, g.cfg.TextModel)
	if err != nil {
		return domain.WorksheetContent{}, domain.NewGenerationError(domain.StageWorksheet,
			fmt.Errorf("ワークシートの合成に失敗しました: %w", err))
	}

	var content domain.WorksheetContent
	if err := parseJSONResponse(raw, &content); err != nil {
		return domain.WorksheetContent{}, domain.NewGenerationError(domain.StageWorksheet, err)
	}

	return content, nil
}
