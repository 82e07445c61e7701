package cmd

import (
	"log/slog"

	"github.com/shouni/go-ehon-kit/internal/config"
	"github.com/shouni/go-ehon-kit/internal/runner"

	"github.com/spf13/cobra"
)

// worksheetCmd は、完成した絵本から学習ワークシートを導出する教育ステージなのだ。
var worksheetCmd = &cobra.Command{
	Use:   "worksheet",
	Short: "絵本の本文から学習ワークシートを生成するのだ。",
	Long: `完成した絵本の本文を読み取り、読解問題・語彙リスト・作文課題からなる
学習ワークシートをAIに導出させて、配布用のHTMLとして保存するのだ。`,
	Example: "  ap-ehon-go worksheet --book-file output/book/book.json",
	RunE:    worksheetCommand,
}

func init() {
}

// worksheetCommand は、worksheet サブコマンドの実行ロジック本体なのだ。
func worksheetCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg := config.LoadConfig()
	cfg.GeminiModel = opts.AIModel
	cfg.Options = opts

	slog.Info("ワークシート生成を起動するのだ！",
		"book_file", opts.BookFile,
		"text_model", cfg.GeminiModel)

	return runner.ExecuteWorksheet(ctx, cfg)
}
