package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-ehon-kit/internal/config"
	"github.com/shouni/go-ehon-kit/internal/runner"

	"github.com/spf13/cobra"
)

// editCmd は、組み立て済みのブックに対してページ単位の手直しを行うステージなのだ。
var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "完成した絵本のテキストとレイアウトを手直しするのだ。",
	Long: `book.json を読み込み、指定ページのテキストやレイアウトを差し替えて再保存するのだ。
画像とページの並び順は変わらないのだよ。AIは呼ばないので、API利用コストもかからないのだ。`,
	Example: `  ap-ehon-go edit --page 2 --text "The fox jumped over the river."
  ap-ehon-go edit --page 1 --layout image-left`,
	RunE: editCommand,
}

func init() {
}

// editCommand は、edit サブコマンドの実行ロジック本体なのだ。
func editCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 必須チェック（念のためなのだ）
	if opts.PageNumber <= 0 {
		return fmt.Errorf("編集対象のページ番号（--page、1始まり）を指定してほしいのだ")
	}

	cfg := config.LoadConfig()
	cfg.Options = opts

	slog.Info("ページの編集を開始するのだ",
		"book_file", opts.BookFile,
		"page", opts.PageNumber)

	return runner.ExecuteEdit(ctx, cfg)
}
