package asset

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/shouni/go-utils/urlpath"
)

const (
	// DefaultImageDir は生成された画像を格納するデフォルトのディレクトリ名です。
	DefaultImageDir = "images"
	// DefaultBookJson は組み立て済みブックのデフォルト JSON ファイル名です。
	DefaultBookJson = "book.json"
	// DefaultBookName はブック本文のデフォルト Markdown ファイル名です。
	DefaultBookName = "book.md"
	// DefaultPageFileName はページ挿絵の共通のベースファイル名です。
	DefaultPageFileName = "page.png"
	// DefaultCharacterFileName はキャラクター候補画像の共通のベースファイル名です。
	DefaultCharacterFileName = "character.png"
	// DefaultPrintFileName は印刷用 HTML のデフォルトファイル名です。
	DefaultPrintFileName = "print.html"
	// DefaultWorksheetFileName はワークシート HTML のデフォルトファイル名です。
	DefaultWorksheetFileName = "worksheet.html"
)

var (
	// PageFileRegex はページ挿絵 (page_1.png 等) に一致します
	PageFileRegex = createIndexedRegex(DefaultPageFileName)
	// CharacterFileRegex はキャラクター候補画像 (character_1.png 等) に一致します
	CharacterFileRegex = createIndexedRegex(DefaultCharacterFileName)
)

// ResolveOutputPath は、ベースとなるディレクトリパスとファイル名から、
// GCS/ローカルを考慮した最終的な出力パスを生成します。
func ResolveOutputPath(baseDir, fileName string) (string, error) {
	return urlpath.ResolveOutputPath(baseDir, fileName)
}

// ResolveBaseURL は、入力パス（URLまたはローカルパス）から
// 親ディレクトリのパスを解決し、末尾がセパレータで終わるように正規化します。
func ResolveBaseURL(rawPath string) string {
	return urlpath.ResolveBaseURL(rawPath)
}

// GenerateIndexedPath は、指定されたベースパスの拡張子の前に連番を挿入し、
// 新しいパス文字列を生成します。index は1以上の整数である必要があります。
// 例: "path/to/page.png", 1 -> "path/to/page_1.png"
func GenerateIndexedPath(basePath string, index int) (string, error) {
	return urlpath.GenerateIndexedPath(basePath, index)
}

// createIndexedRegex は、ファイル名に基づきインデックス付きファイル用の正規表現を生成します。
// 例: "page.png" -> ^page_\d+\.png$
func createIndexedRegex(fileName string) *regexp.Regexp {
	ext := filepath.Ext(fileName)
	baseName := strings.TrimSuffix(fileName, ext)

	pattern := fmt.Sprintf(`^%s_\d+%s$`, regexp.QuoteMeta(baseName), regexp.QuoteMeta(ext))
	return regexp.MustCompile(pattern)
}
