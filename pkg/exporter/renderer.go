package exporter

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/shouni/go-ehon-kit/pkg/domain"
)

// Renderer は完成したブックとワークシートを配布用の成果物に変換します。
// 時刻源を注入できるため、同じ入力と時刻からは常に同じバイト列が得られます。
type Renderer struct {
	now func() time.Time
}

// NewRenderer は実時刻を使う Renderer を返します。
func NewRenderer() *Renderer {
	return &Renderer{now: time.Now}
}

// NewRendererWithClock は時刻源を固定した Renderer を返します。テストや再現可能なビルド用です。
func NewRendererWithClock(now func() time.Time) *Renderer {
	return &Renderer{now: now}
}

// printTemplate は A4 横向きの印刷に最適化された自己完結 HTML です。
// 外部 CSS には依存せず、1ページごとに改ページが入ります。
var printTemplate = template.Must(template.New("print").Parse(`<html>
  <head>
    <title>{{.Title}} | Ehon Export</title>
    <link href="https://fonts.googleapis.com/css2?family=Playfair+Display:wght@700&family=Inter:wght@400;700&display=swap" rel="stylesheet">
    <style>
      body { margin: 0; padding: 0; font-family: 'Inter', sans-serif; background: #000; }
      @page { size: A4 landscape; margin: 0; }
      .page {
        width: 297mm; height: 210mm;
        position: relative; overflow: hidden;
        page-break-after: always;
        background: #000;
      }
      img { width: 100%; height: 100%; object-fit: cover; }
      .overlay {
        position: absolute; bottom: 0; left: 0; right: 0;
        padding: 60px 40px 40px;
        background: linear-gradient(to top, rgba(0,0,0,0.95) 0%, rgba(0,0,0,0) 100%);
        color: white;
      }
      h1 { font-family: 'Playfair Display', serif; font-size: 36pt; margin: 0; line-height: 1.2; text-shadow: 0 4px 10px rgba(0,0,0,0.5); }
      h2 { font-size: 20pt; font-weight: 400; font-style: italic; opacity: 0.8; margin-top: 20px; border-top: 1px solid rgba(255,255,255,0.2); padding-top: 20px; }
    </style>
  </head>
  <body>
{{- range .Pages}}
    <div class="page">
      <img src="{{.ImageSrc}}" />
      <div class="overlay">
        <h1>{{.TextPrimary}}</h1>
        {{- if .TextSecondary}}
        <h2>{{.TextSecondary}}</h2>
        {{- end}}
      </div>
    </div>
{{- end}}
  </body>
</html>
`))

// printPageView は印刷テンプレートに渡す1ページ分のビューです。
// 画像参照は検証済みの template.URL として保持します。html/template の
// URL サニタイザは data: スキームを #ZgotmplZ に置き換えてしまうため、
// 素の文字列のままでは base64 埋め込み画像が全滅してしまうのです。
type printPageView struct {
	ImageSrc      template.URL
	TextPrimary   string
	TextSecondary string
}

type printView struct {
	Title string
	Pages []printPageView
}

// printableImageSrc は画像参照を検証し、テンプレートに信頼済みとして渡せる形にします。
// 許可するのは base64 埋め込み画像（data:image/...;base64,）、http(s) URL、
// スキームを持たない相対パスの3種類だけです。
func printableImageSrc(ref string) (template.URL, error) {
	switch {
	case strings.HasPrefix(ref, "data:image/") && strings.Contains(ref, ";base64,"):
		return template.URL(ref), nil
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return template.URL(ref), nil
	}
	// 相対パス（公開済みの images/page_N.png 参照）はコロンを含まない
	if !strings.Contains(ref, ":") {
		return template.URL(ref), nil
	}
	return "", fmt.Errorf("印刷用ドキュメントに埋め込めない画像参照です: %q", ref)
}

// RenderPrintableDocument はブック全体を印刷用の単一 HTML に変換します。
// ページの並び順はブックの読み順のまま保存されます。
func (r *Renderer) RenderPrintableDocument(book *domain.Book) ([]byte, error) {
	if book == nil || len(book.Pages) == 0 {
		return nil, fmt.Errorf("印刷するページがありません: %w", domain.ErrInputIncomplete)
	}

	view := printView{
		Title: book.Title,
		Pages: make([]printPageView, len(book.Pages)),
	}
	for i, page := range book.Pages {
		src, err := printableImageSrc(page.ImageURL)
		if err != nil {
			return nil, fmt.Errorf("ページ %d: %w", i+1, err)
		}
		view.Pages[i] = printPageView{
			ImageSrc:      src,
			TextPrimary:   page.TextPrimary,
			TextSecondary: page.TextSecondary,
		}
	}

	var buf bytes.Buffer
	if err := printTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("印刷用ドキュメントの生成に失敗しました: %w", err)
	}
	return buf.Bytes(), nil
}
