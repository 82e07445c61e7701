package runner

import (
	"errors"
	"testing"

	"github.com/shouni/go-ehon-kit/internal/config"
	"github.com/shouni/go-ehon-kit/pkg/domain"
)

func editableBook() *domain.Book {
	return &domain.Book{
		ID:    "book-1",
		Title: "The Fox and the Lantern",
		Pages: []domain.BookPage{
			{ID: "p1", TextPrimary: "Once upon a time.", TextSecondary: "むかしむかし。", ImageURL: "images/page_1.png", Layout: domain.LayoutFullOverlay},
			{ID: "p2", TextPrimary: "The fox walked on.", ImageURL: "images/page_2.png", Layout: domain.LayoutFullOverlay},
		},
	}
}

func TestApplyPageEdits(t *testing.T) {
	t.Run("主テキストだけの編集では副テキストが維持されること", func(t *testing.T) {
		book := editableBook()
		opts := config.GenerateOptions{PageNumber: 1, PageText: "A long time ago."}

		if err := applyPageEdits(book, opts); err != nil {
			t.Fatalf("編集に失敗しました: %v", err)
		}
		if book.Pages[0].TextPrimary != "A long time ago." {
			t.Errorf("主テキストが差し替わっていません: %s", book.Pages[0].TextPrimary)
		}
		if book.Pages[0].TextSecondary != "むかしむかし。" {
			t.Errorf("副テキストが維持されていません: %s", book.Pages[0].TextSecondary)
		}
	})

	t.Run("副テキストだけを差し替えられること", func(t *testing.T) {
		book := editableBook()
		opts := config.GenerateOptions{PageNumber: 1, PageTextSecondary: "ずっとむかし。"}

		if err := applyPageEdits(book, opts); err != nil {
			t.Fatalf("編集に失敗しました: %v", err)
		}
		if book.Pages[0].TextPrimary != "Once upon a time." {
			t.Error("主テキストまで変わっています")
		}
		if book.Pages[0].TextSecondary != "ずっとむかし。" {
			t.Errorf("副テキストが差し替わっていません: %s", book.Pages[0].TextSecondary)
		}
	})

	t.Run("clear-secondary で副テキストを削除できること", func(t *testing.T) {
		book := editableBook()
		opts := config.GenerateOptions{PageNumber: 1, ClearSecondary: true}

		if err := applyPageEdits(book, opts); err != nil {
			t.Fatalf("編集に失敗しました: %v", err)
		}
		if book.Pages[0].TextSecondary != "" {
			t.Errorf("副テキストが削除されていません: %s", book.Pages[0].TextSecondary)
		}
		if book.Pages[0].TextPrimary != "Once upon a time." {
			t.Error("主テキストまで変わっています")
		}
	})

	t.Run("レイアウトを差し替えられること", func(t *testing.T) {
		book := editableBook()
		opts := config.GenerateOptions{PageNumber: 2, PageLayout: string(domain.LayoutImageLeft)}

		if err := applyPageEdits(book, opts); err != nil {
			t.Fatalf("編集に失敗しました: %v", err)
		}
		if book.Pages[1].Layout != domain.LayoutImageLeft {
			t.Errorf("レイアウトが差し替わっていません: %s", book.Pages[1].Layout)
		}
	})

	t.Run("編集内容が無い場合は拒否されること", func(t *testing.T) {
		book := editableBook()
		opts := config.GenerateOptions{PageNumber: 1}

		if err := applyPageEdits(book, opts); !errors.Is(err, domain.ErrInputIncomplete) {
			t.Errorf("期待値 ErrInputIncomplete, 実際の値 %v", err)
		}
	})

	t.Run("範囲外のページ番号は拒否されること", func(t *testing.T) {
		book := editableBook()
		opts := config.GenerateOptions{PageNumber: 3, PageText: "x"}

		if err := applyPageEdits(book, opts); err == nil {
			t.Error("範囲外のページ番号でエラーが発生しませんでした")
		}
	})
}
