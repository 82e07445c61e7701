package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-ehon-kit/internal/config"
	"github.com/shouni/go-ehon-kit/pkg/domain"
	"github.com/shouni/go-ehon-kit/pkg/publisher"
)

// ExecuteStory は、確定済みキャラクターと物語のアイデアから絵本1冊を組み立てる中核ステージなのだ。
// 物語の合成、全ページの挿絵生成、成果物の保存までを一気に実行するのだよ。
func ExecuteStory(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	// 1. 確定済みキャラクターの読み込み
	char, err := loadCharacter(ctx, appCtx.Reader, cfg.Options.CharacterFile)
	if err != nil {
		return err
	}
	if !char.Locked {
		return fmt.Errorf("キャラクターが未確定なのだ。先に character --select で確定してほしいのだ: %w", domain.ErrInputIncomplete)
	}

	// 2. 物語のアイデア文の取得（URL / ファイル / 直接指定）
	prompt, err := readPromptContent(ctx, appCtx)
	if err != nil {
		return err
	}

	storyCfg := domain.StoryConfig{
		Prompt:            prompt,
		AgeRange:          domain.AgeRange(cfg.Options.AgeRange),
		Genre:             domain.Genre(cfg.Options.Genre),
		PrimaryLanguage:   cfg.Options.PrimaryLanguage,
		SecondaryLanguage: cfg.Options.SecondaryLanguage,
		PageCount:         cfg.Options.PageCount,
	}
	if err := storyCfg.Validate(); err != nil {
		return err
	}

	slog.Info("絵本の組み立てを開始するのだ！",
		"age_range", storyCfg.AgeRange,
		"genre", storyCfg.Genre,
		"pages", storyCfg.PageCount,
		"character_id", char.ID)

	// 3. 物語の合成と挿絵の並列生成
	book, err := appCtx.Pipeline.AssembleBook(ctx, storyCfg, char)
	if err != nil {
		return fmt.Errorf("絵本の組み立てに失敗したのだ: %w", err)
	}

	// 4. 成果物の保存
	result, err := appCtx.Publisher.Publish(ctx, book, publisher.Options{OutputDir: cfg.Options.OutputDir})
	if err != nil {
		return fmt.Errorf("成果物の保存に失敗したのだ: %w", err)
	}

	slog.Info("絵本が完成したのだ！",
		"title", book.Title,
		"pages", len(book.Pages),
		"book_json", result.BookJSONPath,
		"print_html", result.PrintPath)
	return nil
}
