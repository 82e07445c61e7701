package domain

import (
	"errors"
	"fmt"
)

// Stage は生成パイプラインの工程を識別します。
type Stage string

const (
	StageCharacter Stage = "character"
	StageStory     Stage = "story"
	StagePageImage Stage = "page-image"
	StageWorksheet Stage = "worksheet"
)

// ErrInputIncomplete は必須の入力が欠けていることを表します。
// 本来はコマンド境界で弾かれるため、実行時に現れるのは防御的な検証のみです。
var ErrInputIncomplete = errors.New("必須の入力がありません")

// ErrExportEnvironment は出力先の準備に失敗したことを表します。
// 利用者への案内と共に報告し、自動リトライは行いません。
var ErrExportEnvironment = errors.New("出力環境を準備できませんでした")

// GenerationError は外部生成サービスが利用可能な応答を返さなかったことを表します。
// character / story / worksheet の各工程では致命的で、部分的な結果は返されません。
// page-image 工程ではページ単位で回復され、呼び出し元には伝播しません。
type GenerationError struct {
	Stage Stage
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("生成に失敗しました (stage: %s): %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// NewGenerationError は工程名を付与した GenerationError を生成します。
func NewGenerationError(stage Stage, err error) *GenerationError {
	return &GenerationError{Stage: stage, Err: err}
}

// IsGenerationFailure は err が生成失敗に由来するかどうかを判定します。
func IsGenerationFailure(err error) bool {
	var ge *GenerationError
	return errors.As(err, &ge)
}
