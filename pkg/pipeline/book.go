package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/shouni/go-ehon-kit/pkg/domain"
)

// AssembleBook は物語を合成し、全ページの挿絵を並列生成して 1 冊に組み立てます。
//
// 物語の合成に失敗した場合はブックを作らずエラーを返します。
// 挿絵は 1 ページの失敗で全体を止めず、そのページだけ代替画像参照に差し替えます。
// ページの並び順とページ数は台本と厳密に一致します。
func (p *Pipeline) AssembleBook(ctx context.Context, cfg domain.StoryConfig, character *domain.Character) (*domain.Book, error) {
	if character == nil || !character.Locked {
		return nil, fmt.Errorf("キャラクターが確定されるまで物語は開始できません: %w", domain.ErrInputIncomplete)
	}
	if cfg.CharacterDescription == "" {
		cfg.CharacterDescription = character.Description
	}

	// 1. 物語の合成（失敗は全体の失敗）
	story, err := p.gateway.SynthesizeStory(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// 2. ページの骨格を先に確定する。ID とテキストは挿絵の成否に影響されない。
	pages := make([]domain.BookPage, len(story.Pages))
	for i, sp := range story.Pages {
		pages[i] = domain.BookPage{
			ID:            uuid.NewString(),
			TextPrimary:   sp.TextPrimary,
			TextSecondary: sp.TextSecondary,
			Layout:        domain.LayoutFullOverlay,
		}
	}

	// 3. 挿絵の並列生成。インデックス書き込みで台本の並び順を保存する。
	eg, egCtx := errgroup.WithContext(ctx)
	for i, sp := range story.Pages {
		i, sp := i, sp
		eg.Go(func() error {
			if err := p.limiter.Wait(egCtx); err != nil {
				return err
			}

			logger := slog.With("page_index", i+1, "book_title", story.Title)
			logger.Info("挿絵の生成を開始するのだ")

			startTime := time.Now()
			url, err := p.gateway.SynthesizePageImage(egCtx, sp.ImagePrompt, character)
			if err != nil {
				// ページ単位の失敗は代替画像で回復し、全体を止めない
				logger.Warn("挿絵の生成に失敗したため代替画像を使用するのだ", "error", err)
				pages[i].ImageURL = domain.FallbackPageImageURL(i)
				return nil
			}

			logger.Info("挿絵の生成が完了したのだ", "duration", time.Since(startTime).Round(time.Millisecond))
			pages[i].ImageURL = url
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, domain.NewGenerationError(domain.StagePageImage, err)
	}

	book := &domain.Book{
		ID:                uuid.NewString(),
		Title:             story.Title,
		AgeRange:          cfg.AgeRange,
		Genre:             cfg.Genre,
		PrimaryLanguage:   cfg.PrimaryLanguage,
		SecondaryLanguage: cfg.SecondaryLanguage,
		Character:         character,
		Pages:             pages,
	}

	slog.Info("ブックの組み立てが完了したのだ", "book_id", book.ID, "title", book.Title, "pages", len(book.Pages))
	return book, nil
}
