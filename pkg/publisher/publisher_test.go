package publisher

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shouni/go-ehon-kit/pkg/asset"
	"github.com/shouni/go-ehon-kit/pkg/domain"
	"github.com/shouni/go-ehon-kit/pkg/exporter"
	"github.com/shouni/go-ehon-kit/pkg/pipeline"
)

// fakeWriter は書き込まれた内容をメモリに記録するテスト用 OutputWriter です。
type fakeWriter struct {
	mu    sync.Mutex
	files map[string][]byte
	mimes map[string]string
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{files: make(map[string][]byte), mimes: make(map[string]string)}
}

func (w *fakeWriter) Write(_ context.Context, path string, data io.Reader, mimeType string) error {
	content, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[path] = content
	w.mimes[path] = mimeType
	return nil
}

func (w *fakeWriter) find(t *testing.T, suffix string) []byte {
	t.Helper()
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, content := range w.files {
		if strings.HasSuffix(path, suffix) {
			return content
		}
	}
	t.Fatalf("'%s' で終わるファイルが書き込まれていません。書き込み済み: %v", suffix, paths(w.files))
	return nil
}

func paths(files map[string][]byte) []string {
	out := make([]string, 0, len(files))
	for p := range files {
		out = append(out, p)
	}
	return out
}

func fixedRenderer() *exporter.Renderer {
	return exporter.NewRendererWithClock(func() time.Time {
		return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	})
}

func publishableBook() *domain.Book {
	char := &domain.Character{ID: "char-1", Description: "a small orange fox", ImageURL: asset.EncodeDataURL([]byte{9}, "image/png")}
	char.Lock()
	return &domain.Book{
		ID:              "book-1",
		Title:           "The Fox and the Lantern",
		AgeRange:        domain.Age4to6,
		Genre:           domain.GenreAdventure,
		PrimaryLanguage: "English",
		Character:       char,
		Pages: []domain.BookPage{
			{ID: "p1", TextPrimary: "Once upon a time.", ImageURL: asset.EncodeDataURL([]byte{1, 2}, "image/png"), Layout: domain.LayoutFullOverlay},
			{ID: "p2", TextPrimary: "The fox walked on.", ImageURL: domain.FallbackPageImageURL(1), Layout: domain.LayoutFullOverlay},
		},
	}
}

func TestBookPublisher_Publish(t *testing.T) {
	writer := newFakeWriter()
	pub := NewBookPublisher(writer, nil, fixedRenderer())

	result, err := pub.Publish(context.Background(), publishableBook(), Options{OutputDir: "output/book"})
	if err != nil {
		t.Fatalf("パブリッシュに失敗しました: %v", err)
	}

	t.Run("data URL のページだけが画像ファイルに展開されること", func(t *testing.T) {
		if len(result.ImagePaths) != 1 {
			t.Fatalf("期待値 1 画像, 実際の値 %d", len(result.ImagePaths))
		}
		if !strings.HasSuffix(result.ImagePaths[0], "page_1.png") {
			t.Errorf("画像ファイル名が不正です: %s", result.ImagePaths[0])
		}
	})

	t.Run("book.json の画像参照が相対パスに書き換わること", func(t *testing.T) {
		bookJSON := string(writer.find(t, asset.DefaultBookJson))
		if !strings.Contains(bookJSON, "images/page_1.png") {
			t.Error("保存済み画像への相対パスが含まれていません")
		}
		if strings.Contains(bookJSON, "base64") {
			t.Error("book.json に data URL が残っています")
		}
		if !strings.Contains(bookJSON, domain.FallbackPageImageURL(1)) {
			t.Error("代替画像の URL 参照が保存されていません")
		}
	})

	t.Run("Markdown が全ページを含むこと", func(t *testing.T) {
		md := string(writer.find(t, asset.DefaultBookName))
		for _, want := range []string{
			"# The Fox and the Lantern",
			"## Page 1",
			"![Page 1](images/page_1.png)",
			"Once upon a time.",
			"## Page 2",
			"The fox walked on.",
		} {
			if !strings.Contains(md, want) {
				t.Errorf("Markdown に '%s' が含まれていません", want)
			}
		}
	})

	t.Run("印刷用 HTML は data URL を埋め込んだままであること", func(t *testing.T) {
		printHTML := string(writer.find(t, asset.DefaultPrintFileName))
		if !strings.Contains(printHTML, "data:image/png;base64,") {
			t.Error("印刷用ドキュメントが自己完結になっていません")
		}
		if !strings.Contains(printHTML, "@page { size: A4 landscape; margin: 0; }") {
			t.Error("印刷設定が含まれていません")
		}
	})

	t.Run("htmlRunner が無い場合は HTML 変換がスキップされること", func(t *testing.T) {
		if result.HTMLPath != "" {
			t.Errorf("htmlRunner なしで HTML パスが設定されています: %s", result.HTMLPath)
		}
	})
}

func TestBookPublisher_PublishCharacterCandidates(t *testing.T) {
	writer := newFakeWriter()
	pub := NewBookPublisher(writer, nil, fixedRenderer())

	candidates := []pipeline.CharacterCandidate{
		{Variant: 0, ImageURL: asset.EncodeDataURL([]byte{1}, "image/png")},
		{Variant: 1, ImageURL: asset.EncodeDataURL([]byte{2}, "image/png")},
	}

	saved, err := pub.PublishCharacterCandidates(context.Background(), candidates, "output/characters")
	if err != nil {
		t.Fatalf("候補の保存に失敗しました: %v", err)
	}
	if len(saved) != 2 {
		t.Fatalf("期待値 2 ファイル, 実際の値 %d", len(saved))
	}
	if !strings.HasSuffix(saved[0], "character_1.png") || !strings.HasSuffix(saved[1], "character_2.png") {
		t.Errorf("候補ファイルの連番が不正です: %v", saved)
	}

	t.Run("空の候補リストは拒否されること", func(t *testing.T) {
		if _, err := pub.PublishCharacterCandidates(context.Background(), nil, "output"); err == nil {
			t.Error("空の候補でエラーが発生しませんでした")
		}
	})
}

func TestBookPublisher_PublishWorksheet(t *testing.T) {
	writer := newFakeWriter()
	pub := NewBookPublisher(writer, nil, fixedRenderer())

	ws := &domain.Worksheet{
		ID:     "ws-1",
		BookID: "book-1",
		Title:  "The Fox and the Lantern",
		Content: domain.WorksheetContent{
			Comprehension: []string{"Q1?", "Q2?", "Q3?"},
			Vocabulary:    []string{"lantern: a small light", "fox: an animal", "bridge: a crossing"},
			WritingPrompt: "Write your own ending.",
		},
	}

	savedPath, err := pub.PublishWorksheet(context.Background(), ws, "output/book")
	if err != nil {
		t.Fatalf("ワークシートの保存に失敗しました: %v", err)
	}
	if !strings.HasSuffix(savedPath, asset.DefaultWorksheetFileName) {
		t.Errorf("保存先ファイル名が不正です: %s", savedPath)
	}
	html := string(writer.find(t, asset.DefaultWorksheetFileName))
	if !strings.Contains(html, "Lesson Plan: The Fox and the Lantern") {
		t.Error("ワークシートのタイトルが含まれていません")
	}
}

func TestBookPublisher_PublishManifest(t *testing.T) {
	writer := newFakeWriter()
	pub := NewBookPublisher(writer, nil, fixedRenderer())

	savedPath, err := pub.PublishManifest(context.Background(), publishableBook(), exporter.KindSlides, "output/book")
	if err != nil {
		t.Fatalf("マニフェストの保存に失敗しました: %v", err)
	}
	if !strings.HasSuffix(savedPath, "Ehon_The_Fox_and_the_Lantern_ppt.json") {
		t.Errorf("マニフェストのファイル名が不正です: %s", savedPath)
	}

	content := string(writer.find(t, "Ehon_The_Fox_and_the_Lantern_ppt.json"))
	if !strings.Contains(content, `"exportType": "ppt"`) {
		t.Error("変換種別が記録されていません")
	}
	if !strings.Contains(content, `"timestamp": "2026-03-14T09:26:53Z"`) {
		t.Error("注入された時刻が使われていません")
	}
}
