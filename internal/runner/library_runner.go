package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/shouni/go-ehon-kit/internal/config"
	"github.com/shouni/go-ehon-kit/pkg/asset"
	"github.com/shouni/go-ehon-kit/pkg/domain"
)

// ExecuteLibrary は、出力ディレクトリ配下の完成済みブックを一覧表示するのだ。
// 一覧はローカルのファイルシステムだけを対象にする（GCS のリスト操作は行わない）。
func ExecuteLibrary(ctx context.Context, cfg *config.Config) error {
	root := cfg.Options.OutputDir
	if strings.HasPrefix(root, "gs://") {
		return fmt.Errorf("ライブラリ一覧はローカルディレクトリのみ対応なのだ: %s", root)
	}

	found := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != asset.DefaultBookJson {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		var book domain.Book
		if err := json.Unmarshal(data, &book); err != nil {
			// ブック以外のJSONは静かにスキップするのだ
			return nil
		}
		if book.Title == "" || len(book.Pages) == 0 {
			return nil
		}

		found++
		character := "(未確定)"
		if book.Character != nil && book.Character.Locked {
			character = book.Character.Description
		}
		fmt.Printf("%2d. %s\n    対象年齢: %s / ジャンル: %s / %dページ\n    キャラクター: %s\n    %s\n",
			found, book.Title, book.AgeRange, book.Genre, len(book.Pages), character, path)
		return nil
	})
	if os.IsNotExist(err) {
		fmt.Printf("ライブラリはまだ空なのだ: %s\n", root)
		return nil
	}
	if err != nil {
		return fmt.Errorf("ライブラリの走査に失敗したのだ: %w", err)
	}

	if found == 0 {
		fmt.Printf("ライブラリはまだ空なのだ: %s\n", root)
	} else {
		fmt.Printf("\n合計 %d 冊なのだ。\n", found)
	}
	return nil
}
