package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-ehon-kit/internal/config"
	"github.com/shouni/go-ehon-kit/pkg/domain"
	"github.com/shouni/go-ehon-kit/pkg/publisher"
)

// ExecuteEdit は、組み立て済みのブックを読み込んでページ単位の編集を適用し、再保存するのだ。
// 編集できるのはテキストとレイアウトだけで、画像とページの並び順には触れないのだよ。
func ExecuteEdit(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	book, err := loadBook(ctx, appCtx.Reader, cfg.Options.BookFile)
	if err != nil {
		return err
	}

	if err := applyPageEdits(book, cfg.Options); err != nil {
		return err
	}

	result, err := appCtx.Publisher.Publish(ctx, book, publisher.Options{OutputDir: cfg.Options.OutputDir})
	if err != nil {
		return fmt.Errorf("編集結果の保存に失敗したのだ: %w", err)
	}

	slog.Info("ページの編集が完了したのだ！",
		"page", cfg.Options.PageNumber,
		"book_json", result.BookJSONPath)
	return nil
}

// applyPageEdits は、指定ページへのテキスト・レイアウト編集をブックに適用するのだ。
// --secondary-text の未指定は「現状維持」、--clear-secondary は「削除」を意味する。
func applyPageEdits(book *domain.Book, opts config.GenerateOptions) error {
	// ページ番号は1始まりで受け取るのだ
	index := opts.PageNumber - 1
	if index < 0 || index >= len(book.Pages) {
		return fmt.Errorf("ページ番号 %d は範囲外です (総ページ数: %d)", opts.PageNumber, len(book.Pages))
	}

	edited := false

	if opts.PageText != "" || opts.PageTextSecondary != "" || opts.ClearSecondary {
		primary := opts.PageText
		if primary == "" {
			primary = book.Pages[index].TextPrimary
		}
		secondary := book.Pages[index].TextSecondary
		if opts.PageTextSecondary != "" {
			secondary = opts.PageTextSecondary
		}
		if opts.ClearSecondary {
			secondary = ""
		}
		if err := book.UpdatePageText(index, primary, secondary); err != nil {
			return fmt.Errorf("テキストの編集に失敗したのだ: %w", err)
		}
		edited = true
	}

	if opts.PageLayout != "" {
		if err := book.SetPageLayout(index, domain.PageLayout(opts.PageLayout)); err != nil {
			return fmt.Errorf("レイアウトの変更に失敗したのだ: %w", err)
		}
		edited = true
	}

	if !edited {
		return fmt.Errorf("編集内容（--text / --secondary-text / --clear-secondary / --layout）を指定してほしいのだ: %w", domain.ErrInputIncomplete)
	}
	return nil
}
