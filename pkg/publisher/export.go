package publisher

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-ehon-kit/pkg/asset"
	"github.com/shouni/go-ehon-kit/pkg/domain"
	"github.com/shouni/go-ehon-kit/pkg/exporter"
)

// PublishWorksheet はワークシートを配布用 HTML として保存し、そのパスを返します。
func (p *BookPublisher) PublishWorksheet(ctx context.Context, ws *domain.Worksheet, outputDir string) (string, error) {
	if p.renderer == nil {
		return "", fmt.Errorf("renderer が設定されていません")
	}

	doc, err := p.renderer.RenderWorksheetDocument(ws)
	if err != nil {
		return "", err
	}

	fullPath, err := asset.ResolveOutputPath(outputDir, asset.DefaultWorksheetFileName)
	if err != nil {
		return "", fmt.Errorf("出力パスの解決に失敗しました: %w", err)
	}
	if err := p.writer.Write(ctx, fullPath, bytes.NewReader(doc), "text/html; charset=utf-8"); err != nil {
		return "", fmt.Errorf("ワークシートの書き込みに失敗しました: %w", err)
	}

	slog.Info("ワークシートを保存したのだ", "path", fullPath)
	return fullPath, nil
}

// PublishPrintable は印刷用 HTML を単体で保存し、そのパスを返します。
// 画像は data URL のまま埋め込まれるため、ファイル1つで完結します。
func (p *BookPublisher) PublishPrintable(ctx context.Context, book *domain.Book, outputDir string) (string, error) {
	if p.renderer == nil {
		return "", fmt.Errorf("renderer が設定されていません")
	}

	doc, err := p.renderer.RenderPrintableDocument(book)
	if err != nil {
		return "", err
	}

	fullPath, err := asset.ResolveOutputPath(outputDir, asset.DefaultPrintFileName)
	if err != nil {
		return "", fmt.Errorf("出力パスの解決に失敗しました: %w", err)
	}
	if err := p.writer.Write(ctx, fullPath, bytes.NewReader(doc), "text/html; charset=utf-8"); err != nil {
		return "", fmt.Errorf("印刷用 HTML の書き込みに失敗しました: %w", err)
	}

	slog.Info("印刷用 HTML を保存したのだ", "path", fullPath)
	return fullPath, nil
}

// PublishManifest は可搬マニフェストを保存し、そのパスを返します。
// ファイル名はブックのタイトルと変換種別から導出されます。
func (p *BookPublisher) PublishManifest(ctx context.Context, book *domain.Book, kind exporter.ExportKind, outputDir string) (string, error) {
	if p.renderer == nil {
		return "", fmt.Errorf("renderer が設定されていません")
	}

	manifest, err := p.renderer.RenderPortableManifest(book, kind)
	if err != nil {
		return "", err
	}
	data, err := exporter.EncodeManifest(manifest)
	if err != nil {
		return "", err
	}

	fullPath, err := asset.ResolveOutputPath(outputDir, exporter.ManifestFileName(book.Title, kind))
	if err != nil {
		return "", fmt.Errorf("出力パスの解決に失敗しました: %w", err)
	}
	if err := p.writer.Write(ctx, fullPath, bytes.NewReader(data), "application/json; charset=utf-8"); err != nil {
		return "", fmt.Errorf("マニフェストの書き込みに失敗しました: %w", err)
	}

	slog.Info("マニフェストを保存したのだ", "path", fullPath, "kind", kind)
	return fullPath, nil
}
