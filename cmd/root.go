package cmd

import (
	"fmt"
	"os"

	"github.com/shouni/go-ehon-kit/internal/config"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"
)

// opts は全コマンドで共有される実行時パラメータなのだ。
var opts config.GenerateOptions

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- ソース入力関連 ---
	rootCmd.PersistentFlags().StringVarP(&opts.PromptText, "prompt", "p", "", "物語のアイデアを直接指定するのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.PromptFile, "prompt-file", "f", "", "アイデアを書いたファイルのパス（'-'で標準入力なのだ）。")
	rootCmd.PersistentFlags().StringVarP(&opts.PromptURL, "prompt-url", "u", "", "Webページから本文を抽出してアイデアにするURLなのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.CharacterFile, "character-file", "output/book/character.json", "確定済みキャラクターJSONのパス（ローカル or gs://...）なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.BookFile, "book-file", "output/book/book.json", "組み立て済みブックJSONのパス（ローカル or gs://...）なのだ。")

	// --- 生成結果の出力設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputDir, "output-dir", "o", config.DefaultLocalBookDir, "成果物の保存先ディレクトリ（ローカル or gs://...）なのだ。")

	// --- 物語の条件 ---
	rootCmd.PersistentFlags().StringVar(&opts.AgeRange, "age-range", "4-6", "対象年齢層（4-6 / 7-9 / 9-11）なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.Genre, "genre", "Adventure", "物語のジャンルなのだ。")
	rootCmd.PersistentFlags().IntVar(&opts.PageCount, "pages", 5, "絵本のページ数（3 / 5 / 8 / 10）なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.PrimaryLanguage, "language", "Japanese", "本文の主言語なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.SecondaryLanguage, "secondary-language", "", "併記する副言語（バイリンガル絵本用）なのだ。")

	// --- AIモデル・挙動設定 ---
	rootCmd.PersistentFlags().StringVar(&opts.AIModel, "model", config.DefaultModel, "テキスト生成に使う Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", config.DefaultImageModel, "画像生成に使う Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "Webリクエストのタイムアウトなのだ。")

	// --- コマンド固有フラグ ---
	characterCmd.Flags().StringVarP(&opts.CharacterDescription, "character", "c", "", "キャラクターの外見・性格の説明文なのだ。")
	characterCmd.Flags().IntVarP(&opts.SelectCandidate, "select", "s", -1, "採用する候補番号（0始まり）なのだ。指定すると確定モードになるのだよ。")
	editCmd.Flags().IntVar(&opts.PageNumber, "page", 0, "編集対象のページ番号（1始まり）なのだ。")
	editCmd.Flags().StringVar(&opts.PageText, "text", "", "差し替える主テキストなのだ。")
	editCmd.Flags().StringVar(&opts.PageTextSecondary, "secondary-text", "", "差し替える副テキストなのだ。")
	editCmd.Flags().BoolVar(&opts.ClearSecondary, "clear-secondary", false, "副テキストを削除するのだ。")
	editCmd.Flags().StringVar(&opts.PageLayout, "layout", "", "差し替えるレイアウト（image-left / image-right / full-image-text-overlay）なのだ。")
	exportCmd.Flags().StringVarP(&opts.ExportKind, "export-kind", "k", "print", "変換種別（print / ppt / kindle）なのだ。")
}

// preRunAppE は、コマンド実行前に環境変数などの必須チェックを行うのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	// library はローカル走査しかしないので API キーは不要なのだ
	if cmd.Name() == libraryCmd.Name() {
		return nil
	}

	// Gemini APIを利用するため、APIキーの存在チェックは欠かせないのだ！
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須なのだ")
	}

	return nil
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	clibase.Execute(
		"ap-ehon-go",
		addAppFlags,
		preRunAppE,
		characterCmd,
		storyCmd,
		editCmd,
		worksheetCmd,
		exportCmd,
		libraryCmd,
	)
}
