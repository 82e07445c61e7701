package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/shouni/go-ehon-kit/pkg/domain"
)

// DeriveWorksheet は完成したブックの本文から学習ワークシートを導出します。
// AI 応答の設問数が揺らいでも、正規化により必ず読解 3 問、語彙 3 語、作文 1 題になります。
func (p *Pipeline) DeriveWorksheet(ctx context.Context, book *domain.Book) (*domain.Worksheet, error) {
	if book == nil || len(book.Pages) == 0 {
		return nil, fmt.Errorf("ワークシートの元になるブックが空です: %w", domain.ErrInputIncomplete)
	}

	content, err := p.gateway.SynthesizeWorksheet(ctx, book)
	if err != nil {
		return nil, err
	}
	content.Normalize()

	ws := &domain.Worksheet{
		ID:      uuid.NewString(),
		BookID:  book.ID,
		Title:   book.Title,
		Content: content,
	}

	slog.Info("ワークシートの導出が完了したのだ",
		"book_id", book.ID,
		"comprehension", len(ws.Content.Comprehension),
		"vocabulary", len(ws.Content.Vocabulary))
	return ws, nil
}
