package cmd

import (
	"github.com/shouni/go-ehon-kit/internal/config"
	"github.com/shouni/go-ehon-kit/internal/runner"

	"github.com/spf13/cobra"
)

// libraryCmd は、これまでに作った絵本を一覧する本棚コマンドなのだ。
var libraryCmd = &cobra.Command{
	Use:     "library",
	Short:   "出力ディレクトリ配下の完成済み絵本を一覧するのだ。",
	Example: "  ap-ehon-go library -o output",
	RunE:    libraryCommand,
}

func init() {
}

// libraryCommand は、library サブコマンドの実行ロジック本体なのだ。
func libraryCommand(cmd *cobra.Command, args []string) error {
	cfg := config.LoadConfig()
	cfg.Options = opts

	return runner.ExecuteLibrary(cmd.Context(), cfg)
}
