package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shouni/go-ehon-kit/pkg/asset"
	"github.com/shouni/go-ehon-kit/pkg/domain"
	"github.com/shouni/go-ehon-kit/pkg/pipeline"
)

// characterFileName は確定済みキャラクターの保存ファイル名です。
const characterFileName = "character.json"

// PublishCharacterCandidates はキャラクター候補画像を連番ファイルとして保存し、パスの一覧を返します。
// ファイル名の連番は候補のバリエーション番号に 1 を足したものです。
func (p *BookPublisher) PublishCharacterCandidates(ctx context.Context, candidates []pipeline.CharacterCandidate, outputDir string) ([]string, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("保存する候補がありません: %w", domain.ErrInputIncomplete)
	}

	paths := make([]string, 0, len(candidates))
	for _, c := range candidates {
		data, mimeType, err := asset.DecodeDataURL(c.ImageURL)
		if err != nil {
			return nil, fmt.Errorf("候補 %d の画像デコードに失敗しました: %w", c.Variant, err)
		}

		name := fmt.Sprintf("character_%d%s", c.Variant+1, asset.ExtForMimeType(mimeType))
		fullPath, err := asset.ResolveOutputPath(outputDir, name)
		if err != nil {
			return nil, fmt.Errorf("出力パスの解決に失敗しました: %w", err)
		}
		if err := p.writer.Write(ctx, fullPath, bytes.NewReader(data), mimeType); err != nil {
			return nil, fmt.Errorf("候補画像の書き込みに失敗しました %s: %w", fullPath, err)
		}
		paths = append(paths, fullPath)
	}

	slog.Info("キャラクター候補を保存したのだ", "count", len(paths), "output_dir", outputDir)
	return paths, nil
}

// PublishCharacter は確定済みキャラクターを JSON として保存し、そのパスを返します。
func (p *BookPublisher) PublishCharacter(ctx context.Context, char *domain.Character, outputDir string) (string, error) {
	if char == nil {
		return "", fmt.Errorf("保存するキャラクターがありません: %w", domain.ErrInputIncomplete)
	}

	data, err := json.MarshalIndent(char, "", "  ")
	if err != nil {
		return "", fmt.Errorf("キャラクター JSON の整形に失敗しました: %w", err)
	}

	fullPath, err := asset.ResolveOutputPath(outputDir, characterFileName)
	if err != nil {
		return "", fmt.Errorf("出力パスの解決に失敗しました: %w", err)
	}
	if err := p.writer.Write(ctx, fullPath, bytes.NewReader(data), "application/json; charset=utf-8"); err != nil {
		return "", fmt.Errorf("キャラクター JSON の書き込みに失敗しました: %w", err)
	}
	return fullPath, nil
}
