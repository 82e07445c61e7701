package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-ehon-kit/internal/config"
	"github.com/shouni/go-ehon-kit/pkg/exporter"
)

// exportKindPrint は印刷用 HTML を指す変換種別なのだ。
// 可搬マニフェスト（ppt / kindle）と違い、こちらは単体で完結するファイルになる。
const exportKindPrint = "print"

// ExecuteExport は、完成した絵本を配布・印刷用の形式に変換して保存するのだ。
func ExecuteExport(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	book, err := loadBook(ctx, appCtx.Reader, cfg.Options.BookFile)
	if err != nil {
		return err
	}
	if err := book.ValidateComplete(); err != nil {
		return fmt.Errorf("エクスポートできる状態ではないのだ: %w", err)
	}

	kind := cfg.Options.ExportKind
	switch kind {
	case exportKindPrint:
		path, err := appCtx.Publisher.PublishPrintable(ctx, book, cfg.Options.OutputDir)
		if err != nil {
			return fmt.Errorf("印刷用 HTML の生成に失敗したのだ: %w", err)
		}
		slog.Info("印刷用 HTML が完成したのだ！ブラウザで開いて印刷するのだよ", "path", path)
		return nil

	case string(exporter.KindSlides), string(exporter.KindEbook):
		path, err := appCtx.Publisher.PublishManifest(ctx, book, exporter.ExportKind(kind), cfg.Options.OutputDir)
		if err != nil {
			return fmt.Errorf("マニフェストの生成に失敗したのだ: %w", err)
		}
		slog.Info("可搬マニフェストが完成したのだ！", "kind", kind, "path", path)
		return nil

	default:
		return fmt.Errorf("不正な変換種別なのだ: %q (print / ppt / kindle のいずれかを指定してほしいのだ)", kind)
	}
}
