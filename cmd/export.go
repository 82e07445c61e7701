package cmd

import (
	"log/slog"

	"github.com/shouni/go-ehon-kit/internal/config"
	"github.com/shouni/go-ehon-kit/internal/runner"

	"github.com/spf13/cobra"
)

// exportCmd は、完成した絵本を配布・印刷用の形式に変換する最終ステージなのだ！
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "完成した絵本を印刷用HTMLや可搬マニフェストに変換するのだ！",
	Long: `book.json を読み込み、指定された形式に変換して保存するのだ。
print はA4横向きの印刷用HTML、ppt と kindle は外部ツールに取り込める
可搬マニフェスト（JSON）になるのだよ。`,
	Example: `  ap-ehon-go export -k print
  ap-ehon-go export -k kindle --book-file output/book/book.json`,
	RunE: exportCommand,
}

func init() {
}

// exportCommand は、export サブコマンドの実行ロジック本体なのだ。
func exportCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg := config.LoadConfig()
	cfg.Options = opts

	slog.Info("エクスポートを開始するのだ！",
		"book_file", opts.BookFile,
		"kind", opts.ExportKind)

	if err := runner.ExecuteExport(ctx, cfg); err != nil {
		return err
	}

	slog.Info("エクスポート完了なのだ！これでボクの絵本も立派な出版物なのだよ。")
	return nil
}
