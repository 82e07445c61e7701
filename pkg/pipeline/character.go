package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/shouni/go-ehon-kit/pkg/domain"
)

// CharacterCandidate はキャラクター候補 1 枚分の結果です。
// Variant はプロンプトのバリエーション番号（0 が正面向き）を保持します。
type CharacterCandidate struct {
	Variant  int    `json:"variant"`
	ImageURL string `json:"image_url"`
}

// CharacterCandidates は同じ説明文から複数のキャラクター候補を並列生成します。
// 一部の候補が失敗しても、少なくとも 1 枚成功していれば成功として扱います。
// 全候補が失敗した場合のみキャラクター工程のエラーを返します。
func (p *Pipeline) CharacterCandidates(ctx context.Context, description string) ([]CharacterCandidate, error) {
	if strings.TrimSpace(description) == "" {
		return nil, domain.NewGenerationError(domain.StageCharacter,
			fmt.Errorf("キャラクターの説明が指定されていません: %w", domain.ErrInputIncomplete))
	}

	urls := make([]string, CharacterCandidateCount)
	failures := make([]error, CharacterCandidateCount)
	eg, egCtx := errgroup.WithContext(ctx)

	for variant := 0; variant < CharacterCandidateCount; variant++ {
		variant := variant
		eg.Go(func() error {
			if err := p.limiter.Wait(egCtx); err != nil {
				return err
			}

			url, err := p.gateway.SynthesizeCharacter(egCtx, description, variant)
			if err != nil {
				// 片方の候補失敗では全体を止めない
				slog.Warn("キャラクター候補の生成に失敗したのだ", "variant", variant, "error", err)
				failures[variant] = err
				return nil
			}
			urls[variant] = url
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, domain.NewGenerationError(domain.StageCharacter, err)
	}

	candidates := make([]CharacterCandidate, 0, CharacterCandidateCount)
	for variant, url := range urls {
		if url != "" {
			candidates = append(candidates, CharacterCandidate{Variant: variant, ImageURL: url})
		}
	}
	if len(candidates) == 0 {
		return nil, domain.NewGenerationError(domain.StageCharacter,
			fmt.Errorf("全てのキャラクター候補の生成に失敗しました: %w", firstError(failures)))
	}
	return candidates, nil
}

// LockCharacter は採用された候補からキャラクターを確定します。
// 確定後のキャラクターは説明文と画像を変更できません。
func (p *Pipeline) LockCharacter(description string, candidate CharacterCandidate) (*domain.Character, error) {
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("キャラクターの説明が指定されていません: %w", domain.ErrInputIncomplete)
	}
	if candidate.ImageURL == "" {
		return nil, fmt.Errorf("採用する候補画像が指定されていません: %w", domain.ErrInputIncomplete)
	}

	char := &domain.Character{
		ID:          uuid.NewString(),
		Description: description,
		ImageURL:    candidate.ImageURL,
	}
	char.Lock()

	slog.Info("キャラクターを確定したのだ", "character_id", char.ID, "variant", candidate.Variant)
	return char, nil
}

func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return fmt.Errorf("原因不明の失敗")
}
