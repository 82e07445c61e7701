package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/shouni/go-ehon-kit/internal/config"
	"github.com/shouni/go-ehon-kit/internal/runner"

	"github.com/spf13/cobra"
)

// storyCmd は、確定済みキャラクターとアイデアから絵本1冊を錬成する中核ステージなのだ！
var storyCmd = &cobra.Command{
	Use:   "story",
	Short: "アイデアから物語と挿絵を生成して、絵本1冊を組み立てるのだ！",
	Long: `確定済みのキャラクターと物語のアイデアを基に、AIが台本を合成し、
全ページの挿絵を並列生成して1冊の絵本に組み立てるのだ。
挿絵が一部失敗してもそのページだけ代替画像になり、絵本は必ず完成するのだよ。`,
	Example: `  ap-ehon-go story -p "A journey to the moon" --age-range 4-6 --pages 5
  ap-ehon-go story -u https://example.com/folk-tale --genre Fantasy`,
	RunE: storyCommand,
}

func init() {
}

// storyCommand は、story サブコマンドの実行ロジック本体なのだ。
func storyCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 1. 入力ソースの必須チェック
	if opts.PromptText == "" && opts.PromptFile == "" && opts.PromptURL == "" && !isStdin() {
		return fmt.Errorf("物語のアイデア（--prompt / --prompt-file / --prompt-url）を指定してほしいのだ")
	}
	if opts.PromptText == "" && opts.PromptFile == "" && opts.PromptURL == "" {
		opts.PromptFile = "-"
	}

	// 2. 環境変数等から基本設定をロードするのだ
	cfg := config.LoadConfig()
	cfg.GeminiModel = opts.AIModel
	cfg.GeminiImageModel = opts.ImageModel
	cfg.Options = opts

	slog.Info("絵本生成パイプラインを起動するのだ！",
		"text_model", cfg.GeminiModel,
		"image_model", cfg.GeminiImageModel,
		"pages", opts.PageCount,
		"output_dir", opts.OutputDir)

	// 3. 更新した config を考慮しつつパイプラインを実行するのだ
	if err := runner.ExecuteStory(ctx, cfg); err != nil {
		return fmt.Errorf("パイプライン実行中にエラーが発生したのだ: %w", err)
	}

	slog.Info("すべての生成工程が完了したのだ！")
	return nil
}

func isStdin() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}
