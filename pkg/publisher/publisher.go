package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/shouni/go-text-format/pkg/md2htmlrunner"

	"github.com/shouni/go-ehon-kit/pkg/asset"
	"github.com/shouni/go-ehon-kit/pkg/domain"
	"github.com/shouni/go-ehon-kit/pkg/exporter"
)

// Options はパブリッシュ動作を制御する設定項目です。
type Options struct {
	OutputDir string
}

// PublishResult はパブリッシュ処理の結果として生成されたファイルの情報を保持します。
type PublishResult struct {
	BookJSONPath string   // 生成された book.json のパス
	MarkdownPath string   // 生成された book.md のパス
	HTMLPath     string   // 生成された HTML のパス
	PrintPath    string   // 生成された印刷用 HTML のパス
	ImagePaths   []string // 保存された全画像のパスリスト
}

// BookPublisher は完成したブックの永続化とフォーマット変換を担います。
// 出力先は remoteio の抽象化によりローカルと GCS のどちらにも対応します。
type BookPublisher struct {
	writer     remoteio.OutputWriter
	htmlRunner md2htmlrunner.Runner
	renderer   *exporter.Renderer
}

// NewBookPublisher は BookPublisher を初期化します。
func NewBookPublisher(writer remoteio.OutputWriter, htmlRunner md2htmlrunner.Runner, renderer *exporter.Renderer) *BookPublisher {
	return &BookPublisher{
		writer:     writer,
		htmlRunner: htmlRunner,
		renderer:   renderer,
	}
}

// Publish は画像の保存、JSON・Markdown の構築、HTML 変換を一括して実行し、生成されたファイル情報を返却するのだ！
func (p *BookPublisher) Publish(ctx context.Context, book *domain.Book, opts Options) (PublishResult, error) {
	result := PublishResult{}
	if book == nil || len(book.Pages) == 0 {
		return result, fmt.Errorf("パブリッシュするページがありません: %w", domain.ErrInputIncomplete)
	}

	// 1. 出力パスの解決
	imgDir, err := asset.ResolveOutputPath(opts.OutputDir, asset.DefaultImageDir)
	if err != nil {
		return result, err
	}

	// 2. 画像の保存。data URL のページだけをファイルに展開し、参照を相対パスへ書き換える。
	published := *book
	published.Pages = make([]domain.BookPage, len(book.Pages))
	copy(published.Pages, book.Pages)

	for i := range published.Pages {
		page := &published.Pages[i]
		if !asset.IsDataURL(page.ImageURL) {
			continue
		}

		data, mimeType, err := asset.DecodeDataURL(page.ImageURL)
		if err != nil {
			return result, fmt.Errorf("ページ %d の画像デコードに失敗しました: %w", i+1, err)
		}

		name := fmt.Sprintf("page_%d%s", i+1, asset.ExtForMimeType(mimeType))
		fullPath, err := asset.ResolveOutputPath(imgDir, name)
		if err != nil {
			return result, fmt.Errorf("出力パスの解決に失敗しました: %w", err)
		}
		if err := p.writer.Write(ctx, fullPath, bytes.NewReader(data), mimeType); err != nil {
			return result, fmt.Errorf("画像の書き込みに失敗しました %s: %w", fullPath, err)
		}

		page.ImageURL = path.Join(asset.DefaultImageDir, name)
		result.ImagePaths = append(result.ImagePaths, fullPath)
	}

	// 3. ブック JSON の書き出し
	jsonPath, err := asset.ResolveOutputPath(opts.OutputDir, asset.DefaultBookJson)
	if err != nil {
		return result, err
	}
	bookJSON, err := json.MarshalIndent(&published, "", "  ")
	if err != nil {
		return result, fmt.Errorf("ブック JSON の整形に失敗しました: %w", err)
	}
	if err := p.writer.Write(ctx, jsonPath, bytes.NewReader(bookJSON), "application/json; charset=utf-8"); err != nil {
		return result, fmt.Errorf("ブック JSON の書き込みに失敗しました: %w", err)
	}
	result.BookJSONPath = jsonPath

	// 4. Markdown の構築と書き出し
	mdPath, err := asset.ResolveOutputPath(opts.OutputDir, asset.DefaultBookName)
	if err != nil {
		return result, err
	}
	content := p.buildMarkdown(&published)
	if err := p.writer.Write(ctx, mdPath, strings.NewReader(content), "text/markdown; charset=utf-8"); err != nil {
		return result, fmt.Errorf("markdownファイルの書き込みに失敗しました: %w", err)
	}
	result.MarkdownPath = mdPath

	// 5. HTML 変換と保存
	if p.htmlRunner != nil {
		slog.Info("ブックを HTML に変換するのだ", "title", book.Title)
		htmlBuffer, err := p.htmlRunner.Run(ctx, book.Title, []byte(content))
		if err != nil {
			return result, fmt.Errorf("HTMLの変換に失敗しました: %w", err)
		}

		htmlPath := strings.TrimSuffix(mdPath, filepath.Ext(mdPath)) + ".html"
		if err := p.writer.Write(ctx, htmlPath, htmlBuffer, "text/html; charset=utf-8"); err != nil {
			return result, fmt.Errorf("HTMLファイルの書き込みに失敗しました: %w", err)
		}
		result.HTMLPath = htmlPath
	}

	// 6. 印刷用 HTML の保存。data URL を埋め込んだまま自己完結の1ファイルにする。
	if p.renderer != nil {
		printDoc, err := p.renderer.RenderPrintableDocument(book)
		if err != nil {
			return result, fmt.Errorf("印刷用ドキュメントの生成に失敗しました: %w", err)
		}
		printPath, err := asset.ResolveOutputPath(opts.OutputDir, asset.DefaultPrintFileName)
		if err != nil {
			return result, err
		}
		if err := p.writer.Write(ctx, printPath, bytes.NewReader(printDoc), "text/html; charset=utf-8"); err != nil {
			return result, fmt.Errorf("印刷用ドキュメントの書き込みに失敗しました: %w", err)
		}
		result.PrintPath = printPath
	}

	return result, nil
}

// buildMarkdown はブック本文を go-text-format が解釈可能な Markdown 文字列に変換します。
func (p *BookPublisher) buildMarkdown(book *domain.Book) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", book.Title))

	for i, page := range book.Pages {
		sb.WriteString(fmt.Sprintf("## Page %d\n\n", i+1))
		sb.WriteString(fmt.Sprintf("![Page %d](%s)\n\n", i+1, page.ImageURL))
		sb.WriteString(page.TextPrimary)
		sb.WriteString("\n")
		if page.TextSecondary != "" {
			sb.WriteString(fmt.Sprintf("\n*%s*\n", page.TextSecondary))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
