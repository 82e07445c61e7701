package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/shouni/go-ehon-kit/pkg/domain"
)

// fakeGateway はパイプラインのテスト用 ContentGateway 実装です。
// シーン指示や候補番号ごとに失敗や遅延を仕込めます。
type fakeGateway struct {
	mu sync.Mutex

	characterErrs map[int]error
	storyResp     domain.StoryResponse
	storyErr      error
	pageErrs      map[string]error
	pageDelays    map[string]time.Duration
	worksheet     domain.WorksheetContent
	worksheetErr  error

	storyCalls int
	pageCalls  int
}

func (f *fakeGateway) SynthesizeCharacter(_ context.Context, description string, variant int) (string, error) {
	if err := f.characterErrs[variant]; err != nil {
		return "", err
	}
	return fmt.Sprintf("data:image/png;base64,candidate-%d", variant), nil
}

func (f *fakeGateway) SynthesizeStory(_ context.Context, cfg domain.StoryConfig) (domain.StoryResponse, error) {
	f.mu.Lock()
	f.storyCalls++
	f.mu.Unlock()
	if f.storyErr != nil {
		return domain.StoryResponse{}, f.storyErr
	}
	return f.storyResp, nil
}

func (f *fakeGateway) SynthesizePageImage(ctx context.Context, scenePrompt string, _ *domain.Character) (string, error) {
	f.mu.Lock()
	f.pageCalls++
	f.mu.Unlock()

	if d, ok := f.pageDelays[scenePrompt]; ok {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if err := f.pageErrs[scenePrompt]; err != nil {
		return "", err
	}
	return "data:image/png;base64," + scenePrompt, nil
}

func (f *fakeGateway) SynthesizeWorksheet(_ context.Context, _ *domain.Book) (domain.WorksheetContent, error) {
	if f.worksheetErr != nil {
		return domain.WorksheetContent{}, f.worksheetErr
	}
	return f.worksheet, nil
}

func newTestPipeline(t *testing.T, gw *fakeGateway) *Pipeline {
	t.Helper()
	p, err := New(gw, rate.NewLimiter(rate.Inf, 1))
	if err != nil {
		t.Fatalf("パイプラインの初期化に失敗しました: %v", err)
	}
	return p
}

func storyOf(pageCount int) domain.StoryResponse {
	pages := make([]domain.StoryPage, pageCount)
	for i := range pages {
		pages[i] = domain.StoryPage{
			TextPrimary: fmt.Sprintf("Page %d text.", i+1),
			ImagePrompt: fmt.Sprintf("scene-%d", i+1),
		}
	}
	return domain.StoryResponse{Title: "The Fox and the Lantern", Pages: pages}
}

func testStoryConfig(pageCount int) domain.StoryConfig {
	return domain.StoryConfig{
		Prompt:          "A brave fox",
		AgeRange:        domain.Age4to6,
		Genre:           domain.GenreAdventure,
		PrimaryLanguage: "English",
		PageCount:       pageCount,
	}
}

func newLockedCharacter() *domain.Character {
	c := &domain.Character{ID: "char-1", Description: "a small orange fox", ImageURL: "data:image/png;base64,ref"}
	c.Lock()
	return c
}

func TestPipeline_CharacterCandidates(t *testing.T) {
	t.Run("2つの候補が生成されること", func(t *testing.T) {
		p := newTestPipeline(t, &fakeGateway{})

		candidates, err := p.CharacterCandidates(context.Background(), "a fox")
		if err != nil {
			t.Fatalf("候補生成に失敗しました: %v", err)
		}
		if len(candidates) != CharacterCandidateCount {
			t.Fatalf("期待値 %d 候補, 実際の値 %d", CharacterCandidateCount, len(candidates))
		}
		if candidates[0].Variant != 0 || candidates[1].Variant != 1 {
			t.Error("候補のバリエーション番号が保存されていません")
		}
	})

	t.Run("片方が失敗しても残りの候補で成功すること", func(t *testing.T) {
		gw := &fakeGateway{characterErrs: map[int]error{1: fmt.Errorf("quota exceeded")}}
		p := newTestPipeline(t, gw)

		candidates, err := p.CharacterCandidates(context.Background(), "a fox")
		if err != nil {
			t.Fatalf("部分成功が全体の失敗になっています: %v", err)
		}
		if len(candidates) != 1 {
			t.Fatalf("期待値 1 候補, 実際の値 %d", len(candidates))
		}
		if candidates[0].Variant != 0 {
			t.Errorf("成功した候補のバリエーションが保存されていません: %d", candidates[0].Variant)
		}
	})

	t.Run("全候補が失敗した場合のみエラーになること", func(t *testing.T) {
		gw := &fakeGateway{characterErrs: map[int]error{
			0: fmt.Errorf("quota exceeded"),
			1: fmt.Errorf("quota exceeded"),
		}}
		p := newTestPipeline(t, gw)

		_, err := p.CharacterCandidates(context.Background(), "a fox")
		var genErr *domain.GenerationError
		if !errors.As(err, &genErr) || genErr.Stage != domain.StageCharacter {
			t.Errorf("キャラクター工程のエラーとして分類されていません: %v", err)
		}
	})

	t.Run("説明が空の場合は入力不備エラーになること", func(t *testing.T) {
		p := newTestPipeline(t, &fakeGateway{})
		if _, err := p.CharacterCandidates(context.Background(), " "); !errors.Is(err, domain.ErrInputIncomplete) {
			t.Errorf("期待値 ErrInputIncomplete, 実際の値 %v", err)
		}
	})
}

func TestPipeline_LockCharacter(t *testing.T) {
	p := newTestPipeline(t, &fakeGateway{})

	t.Run("採用候補から確定済みキャラクターが作られること", func(t *testing.T) {
		char, err := p.LockCharacter("a fox", CharacterCandidate{Variant: 1, ImageURL: "data:image/png;base64,xx"})
		if err != nil {
			t.Fatalf("確定に失敗しました: %v", err)
		}
		if !char.Locked {
			t.Error("キャラクターが確定状態になっていません")
		}
		if char.ID == "" {
			t.Error("キャラクター ID が割り当てられていません")
		}
		if err := char.SetDescription("changed"); err == nil {
			t.Error("確定後の説明変更が拒否されませんでした")
		}
	})

	t.Run("候補画像なしでは確定できないこと", func(t *testing.T) {
		if _, err := p.LockCharacter("a fox", CharacterCandidate{}); !errors.Is(err, domain.ErrInputIncomplete) {
			t.Errorf("期待値 ErrInputIncomplete, 実際の値 %v", err)
		}
	})
}

func TestPipeline_AssembleBook(t *testing.T) {
	t.Run("全ページが揃ったブックが組み立てられること", func(t *testing.T) {
		gw := &fakeGateway{storyResp: storyOf(5)}
		p := newTestPipeline(t, gw)

		book, err := p.AssembleBook(context.Background(), testStoryConfig(5), newLockedCharacter())
		if err != nil {
			t.Fatalf("組み立てに失敗しました: %v", err)
		}
		if len(book.Pages) != 5 {
			t.Fatalf("期待値 5 ページ, 実際の値 %d", len(book.Pages))
		}
		if book.Title != "The Fox and the Lantern" {
			t.Errorf("タイトルが一致しません: %s", book.Title)
		}
		for i, page := range book.Pages {
			if page.TextPrimary != fmt.Sprintf("Page %d text.", i+1) {
				t.Errorf("ページ %d のテキストが台本の並び順と一致しません: %s", i+1, page.TextPrimary)
			}
			if page.ImageURL == "" {
				t.Errorf("ページ %d の画像参照が空です", i+1)
			}
			if page.Layout != domain.LayoutFullOverlay {
				t.Errorf("ページ %d の初期レイアウトが不正です: %s", i+1, page.Layout)
			}
		}
	})

	t.Run("完了順が前後してもページの並び順は台本と一致するのだ", func(t *testing.T) {
		// 先頭ページほど遅く完了させ、書き込み順と読み順が食い違う状況を作る
		gw := &fakeGateway{
			storyResp: storyOf(3),
			pageDelays: map[string]time.Duration{
				"scene-1": 60 * time.Millisecond,
				"scene-2": 30 * time.Millisecond,
				"scene-3": 0,
			},
		}
		p := newTestPipeline(t, gw)

		book, err := p.AssembleBook(context.Background(), testStoryConfig(3), newLockedCharacter())
		if err != nil {
			t.Fatalf("組み立てに失敗しました: %v", err)
		}
		for i, page := range book.Pages {
			want := fmt.Sprintf("data:image/png;base64,scene-%d", i+1)
			if page.ImageURL != want {
				t.Errorf("ページ %d の挿絵が並び順と一致しません: %s", i+1, page.ImageURL)
			}
		}
	})

	t.Run("1ページの挿絵失敗は代替画像で回復し他ページに影響しないこと", func(t *testing.T) {
		gw := &fakeGateway{
			storyResp: storyOf(3),
			pageErrs:  map[string]error{"scene-2": fmt.Errorf("image generation failed")},
		}
		p := newTestPipeline(t, gw)

		book, err := p.AssembleBook(context.Background(), testStoryConfig(3), newLockedCharacter())
		if err != nil {
			t.Fatalf("ページ単位の失敗が全体の失敗になっています: %v", err)
		}
		if len(book.Pages) != 3 {
			t.Fatalf("期待値 3 ページ, 実際の値 %d", len(book.Pages))
		}
		if book.Pages[1].ImageURL != domain.FallbackPageImageURL(1) {
			t.Errorf("失敗ページに代替画像が設定されていません: %s", book.Pages[1].ImageURL)
		}
		if book.Pages[0].ImageURL == domain.FallbackPageImageURL(0) {
			t.Error("成功ページまで代替画像になっています")
		}
		if book.Pages[1].TextPrimary != "Page 2 text." {
			t.Error("失敗ページのテキストが失われています")
		}
	})

	t.Run("物語の合成失敗ではブックを作らないこと", func(t *testing.T) {
		gw := &fakeGateway{storyErr: domain.NewGenerationError(domain.StageStory, fmt.Errorf("model unavailable"))}
		p := newTestPipeline(t, gw)

		book, err := p.AssembleBook(context.Background(), testStoryConfig(5), newLockedCharacter())
		if err == nil {
			t.Fatal("物語の失敗でエラーが発生しませんでした")
		}
		if book != nil {
			t.Error("失敗時にブックが返されています")
		}
		if gw.pageCalls != 0 {
			t.Errorf("物語の失敗後に挿絵が生成されています: %d 回", gw.pageCalls)
		}
	})

	t.Run("未確定キャラクターでは開始できないこと", func(t *testing.T) {
		gw := &fakeGateway{storyResp: storyOf(3)}
		p := newTestPipeline(t, gw)

		draft := &domain.Character{ID: "draft", Description: "a fox"}
		if _, err := p.AssembleBook(context.Background(), testStoryConfig(3), draft); !errors.Is(err, domain.ErrInputIncomplete) {
			t.Errorf("期待値 ErrInputIncomplete, 実際の値 %v", err)
		}
		if gw.storyCalls != 0 {
			t.Error("未確定キャラクターで物語の合成が呼ばれています")
		}
	})

	t.Run("ページIDが一意であること", func(t *testing.T) {
		gw := &fakeGateway{storyResp: storyOf(10)}
		p := newTestPipeline(t, gw)

		book, err := p.AssembleBook(context.Background(), testStoryConfig(10), newLockedCharacter())
		if err != nil {
			t.Fatalf("組み立てに失敗しました: %v", err)
		}
		seen := make(map[string]bool, len(book.Pages))
		for _, page := range book.Pages {
			if page.ID == "" || seen[page.ID] {
				t.Fatalf("ページ ID が一意ではありません: %q", page.ID)
			}
			seen[page.ID] = true
		}
	})
}

func TestPipeline_DeriveWorksheet(t *testing.T) {
	book := &domain.Book{
		ID:       "book-1",
		Title:    "The Fox and the Lantern",
		AgeRange: domain.Age7to9,
		Pages: []domain.BookPage{
			{ID: "p1", TextPrimary: "Once upon a time.", ImageURL: "img"},
		},
	}

	t.Run("応答が揺らいでも3問・3語・1題に正規化されること", func(t *testing.T) {
		gw := &fakeGateway{worksheet: domain.WorksheetContent{
			Comprehension: []string{"Q1"},
			Vocabulary:    []string{"lantern: a light", "fox", "bridge: ", "extra: word", "more: words"},
			WritingPrompt: "",
		}}
		p := newTestPipeline(t, gw)

		ws, err := p.DeriveWorksheet(context.Background(), book)
		if err != nil {
			t.Fatalf("ワークシートの導出に失敗しました: %v", err)
		}
		if len(ws.Content.Comprehension) != domain.WorksheetComprehensionCount {
			t.Errorf("期待値 %d 問, 実際の値 %d", domain.WorksheetComprehensionCount, len(ws.Content.Comprehension))
		}
		if len(ws.Content.Vocabulary) != domain.WorksheetVocabularyCount {
			t.Errorf("期待値 %d 語, 実際の値 %d", domain.WorksheetVocabularyCount, len(ws.Content.Vocabulary))
		}
		if strings.TrimSpace(ws.Content.WritingPrompt) == "" {
			t.Error("作文課題が空のままです")
		}
		if ws.BookID != book.ID {
			t.Error("ワークシートが元のブックに紐づいていません")
		}
	})

	t.Run("空のブックは拒否されること", func(t *testing.T) {
		p := newTestPipeline(t, &fakeGateway{})
		if _, err := p.DeriveWorksheet(context.Background(), &domain.Book{}); !errors.Is(err, domain.ErrInputIncomplete) {
			t.Errorf("期待値 ErrInputIncomplete, 実際の値 %v", err)
		}
	})

	t.Run("合成失敗が伝播すること", func(t *testing.T) {
		gw := &fakeGateway{worksheetErr: domain.NewGenerationError(domain.StageWorksheet, fmt.Errorf("model unavailable"))}
		p := newTestPipeline(t, gw)

		_, err := p.DeriveWorksheet(context.Background(), book)
		var genErr *domain.GenerationError
		if !errors.As(err, &genErr) || genErr.Stage != domain.StageWorksheet {
			t.Errorf("ワークシート工程のエラーとして分類されていません: %v", err)
		}
	})
}
