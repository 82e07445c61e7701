package exporter

import (
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/shouni/go-ehon-kit/pkg/domain"
)

// ExportKind は可搬マニフェストの変換先の種別です。
type ExportKind string

const (
	// KindSlides はプレゼンテーション形式への変換用マニフェストです。
	KindSlides ExportKind = "ppt"
	// KindEbook は電子書籍形式への変換用マニフェストです。
	KindEbook ExportKind = "kindle"
)

// Valid は定義済みの変換種別かどうかを判定します。
func (k ExportKind) Valid() bool {
	switch k {
	case KindSlides, KindEbook:
		return true
	}
	return false
}

// ManifestPage はマニフェストに含まれる 1 ページ分の内容です。
type ManifestPage struct {
	Text1 string `json:"text1"`
	Text2 string `json:"text2,omitempty"`
	Image string `json:"image"`
}

// Manifest は外部ツールに渡す中間交換フォーマットです。
// ページの本文と画像参照を読み順のまま保持します。
type Manifest struct {
	BookTitle  string         `json:"bookTitle"`
	ExportType ExportKind     `json:"exportType"`
	Timestamp  string         `json:"timestamp"`
	Content    []ManifestPage `json:"content"`
}

// RenderPortableManifest はブックを可搬マニフェストに変換します。
func (r *Renderer) RenderPortableManifest(book *domain.Book, kind ExportKind) (Manifest, error) {
	if book == nil || len(book.Pages) == 0 {
		return Manifest{}, fmt.Errorf("変換するページがありません: %w", domain.ErrInputIncomplete)
	}
	if !kind.Valid() {
		return Manifest{}, fmt.Errorf("不正な変換種別です: %q", kind)
	}

	content := make([]ManifestPage, len(book.Pages))
	for i, page := range book.Pages {
		content[i] = ManifestPage{
			Text1: page.TextPrimary,
			Text2: page.TextSecondary,
			Image: page.ImageURL,
		}
	}

	return Manifest{
		BookTitle:  book.Title,
		ExportType: kind,
		Timestamp:  r.now().UTC().Format(time.RFC3339),
		Content:    content,
	}, nil
}

// EncodeManifest はマニフェストを 2 スペースインデントの JSON に整形します。
func EncodeManifest(m Manifest) ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("マニフェストの整形に失敗しました: %w", err)
	}
	return data, nil
}

var whitespaceRegex = regexp.MustCompile(`\s+`)

// ManifestFileName はタイトルと変換種別からダウンロード用のファイル名を導出します。
// 例: "The Fox", KindSlides -> "Ehon_The_Fox_ppt.json"
func ManifestFileName(title string, kind ExportKind) string {
	return fmt.Sprintf("Ehon_%s_%s.json", whitespaceRegex.ReplaceAllString(title, "_"), kind)
}
