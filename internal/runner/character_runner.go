package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/shouni/go-ehon-kit/internal/config"
	"github.com/shouni/go-ehon-kit/pkg/asset"
	"github.com/shouni/go-ehon-kit/pkg/domain"
	"github.com/shouni/go-ehon-kit/pkg/pipeline"
)

// candidatesFileName は候補セットの保存ファイル名なのだ。
// 採用ステップが data URL を復元できるよう、画像は候補のまま保持する。
const candidatesFileName = "candidates.json"

// candidateSet は、候補画像とその元になった説明文をひとまとめにした保存形式なのだ。
type candidateSet struct {
	Description string                        `json:"description"`
	Candidates  []pipeline.CharacterCandidate `json:"candidates"`
}

// ExecuteCharacterCandidates は、説明文からキャラクター候補を生成して保存する第1ステージなのだ。
func ExecuteCharacterCandidates(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	desc := cfg.Options.CharacterDescription
	if desc == "" {
		return fmt.Errorf("キャラクターの説明文（--character）を指定してほしいのだ: %w", domain.ErrInputIncomplete)
	}

	candidates, err := appCtx.Pipeline.CharacterCandidates(ctx, desc)
	if err != nil {
		return fmt.Errorf("キャラクター候補の生成に失敗したのだ: %w", err)
	}

	paths, err := appCtx.Publisher.PublishCharacterCandidates(ctx, candidates, cfg.Options.OutputDir)
	if err != nil {
		return err
	}

	// 採用ステップに引き継ぐため、候補セットも保存するのだ
	if err := saveCandidateSet(ctx, appCtx, candidateSet{Description: desc, Candidates: candidates}); err != nil {
		return err
	}

	slog.Info("キャラクター候補が完成したのだ！気に入った方を --select で採用するのだよ",
		"count", len(candidates),
		"images", paths)
	return nil
}

// ExecuteCharacterLock は、保存済みの候補セットから1体を採用して確定する第2ステージなのだ。
func ExecuteCharacterLock(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	set, err := loadCandidateSet(ctx, appCtx)
	if err != nil {
		return err
	}

	idx := cfg.Options.SelectCandidate
	if idx < 0 || idx >= len(set.Candidates) {
		return fmt.Errorf("候補番号 %d は範囲外なのだ (候補数: %d)", idx, len(set.Candidates))
	}

	// 説明文はコマンドラインでの上書きを許可するのだ
	desc := set.Description
	if cfg.Options.CharacterDescription != "" {
		desc = cfg.Options.CharacterDescription
	}

	char, err := appCtx.Pipeline.LockCharacter(desc, set.Candidates[idx])
	if err != nil {
		return fmt.Errorf("キャラクターの確定に失敗したのだ: %w", err)
	}

	path, err := appCtx.Publisher.PublishCharacter(ctx, char, cfg.Options.OutputDir)
	if err != nil {
		return err
	}

	slog.Info("キャラクターが確定したのだ！もう後戻りはできないのだよ",
		"character_id", char.ID,
		"path", path)
	return nil
}

func saveCandidateSet(ctx context.Context, appCtx *AppContext, set candidateSet) error {
	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("候補セットの整形に失敗しました: %w", err)
	}
	fullPath, err := asset.ResolveOutputPath(appCtx.Cfg.Options.OutputDir, candidatesFileName)
	if err != nil {
		return fmt.Errorf("出力パスの解決に失敗しました: %w", err)
	}
	if err := appCtx.Writer.Write(ctx, fullPath, bytes.NewReader(data), "application/json; charset=utf-8"); err != nil {
		return fmt.Errorf("候補セットの書き込みに失敗しました: %w", err)
	}
	return nil
}

func loadCandidateSet(ctx context.Context, appCtx *AppContext) (candidateSet, error) {
	var set candidateSet

	fullPath, err := asset.ResolveOutputPath(appCtx.Cfg.Options.OutputDir, candidatesFileName)
	if err != nil {
		return set, fmt.Errorf("出力パスの解決に失敗しました: %w", err)
	}

	rc, err := appCtx.Reader.Open(ctx, fullPath)
	if err != nil {
		return set, fmt.Errorf("候補セット '%s' の読み込みに失敗しました。先に候補を生成してほしいのだ: %w", fullPath, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return set, err
	}
	if err := json.Unmarshal(data, &set); err != nil {
		return set, fmt.Errorf("候補セット '%s' のデコードに失敗しました: %w", fullPath, err)
	}
	return set, nil
}
