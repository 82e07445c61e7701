package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-ehon-kit/internal/config"
)

// ExecuteWorksheet は、完成した絵本の本文から学習ワークシートを導出して保存するのだ。
func ExecuteWorksheet(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	book, err := loadBook(ctx, appCtx.Reader, cfg.Options.BookFile)
	if err != nil {
		return err
	}

	slog.Info("ワークシートの導出を開始するのだ", "title", book.Title)

	ws, err := appCtx.Pipeline.DeriveWorksheet(ctx, book)
	if err != nil {
		return fmt.Errorf("ワークシートの導出に失敗したのだ: %w", err)
	}

	path, err := appCtx.Publisher.PublishWorksheet(ctx, ws, cfg.Options.OutputDir)
	if err != nil {
		return err
	}

	slog.Info("ワークシートが完成したのだ！授業で使ってほしいのだよ",
		"title", ws.Title,
		"path", path)
	return nil
}
