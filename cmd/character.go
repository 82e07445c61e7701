package cmd

import (
	"log/slog"

	"github.com/shouni/go-ehon-kit/internal/config"
	"github.com/shouni/go-ehon-kit/internal/runner"

	"github.com/spf13/cobra"
)

// characterCmd は、絵本の主人公を作る最初のステージなのだ。
// 候補生成と確定の2段構えで、確定した後は一切変更できなくなるのだよ。
var characterCmd = &cobra.Command{
	Use:   "character",
	Short: "キャラクター候補の生成と確定を行うのだ。",
	Long: `説明文から2枚のキャラクター候補画像を並列生成するのだ。
--select で候補番号を指定すると、その候補を主人公として確定するのだ。
確定は一方向の操作で、以降のすべての挿絵がこのキャラクターを参照するのだよ。`,
	Example: `  ap-ehon-go character -c "A brave little fox with a red scarf"
  ap-ehon-go character --select 0`,
	RunE: characterCommand,
}

func init() {
}

// characterCommand は、character サブコマンドの実行ロジック本体なのだ。
func characterCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 1. 環境変数等から基本設定をロードするのだ
	cfg := config.LoadConfig()
	cfg.GeminiModel = opts.AIModel
	cfg.GeminiImageModel = opts.ImageModel
	cfg.Options = opts

	// 2. --select が指定されていれば確定モード、なければ候補生成モードなのだ
	if cmd.Flags().Changed("select") {
		slog.Info("キャラクターの確定を開始するのだ", "select", opts.SelectCandidate)
		return runner.ExecuteCharacterLock(ctx, cfg)
	}

	slog.Info("キャラクター候補の生成を開始するのだ！",
		"image_model", cfg.GeminiImageModel,
		"output_dir", opts.OutputDir)
	return runner.ExecuteCharacterCandidates(ctx, cfg)
}
