package domain

import (
	"fmt"
	"strings"
)

// AgeRange は対象年齢層を表します。
type AgeRange string

const (
	Age4to6  AgeRange = "4-6"
	Age7to9  AgeRange = "7-9"
	Age9to11 AgeRange = "9-11"
)

// Valid は定義済みの年齢層かどうかを判定します。
func (a AgeRange) Valid() bool {
	switch a {
	case Age4to6, Age7to9, Age9to11:
		return true
	}
	return false
}

// Genre は物語のジャンルを表します。
type Genre string

const (
	GenreAdventure Genre = "Adventure"
	GenreMoral     Genre = "Moral Story"
	GenreLearning  Genre = "Learning-based"
	GenreFantasy   Genre = "Fantasy"
)

// Valid は定義済みのジャンルかどうかを判定します。
func (g Genre) Valid() bool {
	switch g {
	case GenreAdventure, GenreMoral, GenreLearning, GenreFantasy:
		return true
	}
	return false
}

// PageLayout は1ページの画像とテキストの配置方法を表します。
type PageLayout string

const (
	LayoutImageLeft   PageLayout = "image-left"
	LayoutImageRight  PageLayout = "image-right"
	LayoutFullOverlay PageLayout = "full-image-text-overlay"
)

// Valid は定義済みのレイアウトかどうかを判定します。
func (l PageLayout) Valid() bool {
	switch l {
	case LayoutImageLeft, LayoutImageRight, LayoutFullOverlay:
		return true
	}
	return false
}

// AllowedPageCounts は1冊あたりに選択できるページ数の一覧です。
var AllowedPageCounts = []int{3, 5, 8, 10}

// ValidPageCount は要求されたページ数が許可された値かどうかを判定します。
func ValidPageCount(n int) bool {
	for _, c := range AllowedPageCounts {
		if n == c {
			return true
		}
	}
	return false
}

// BookPage は絵本の1ページを表します。
// ImageURL は常に空でないことが不変条件です。画像生成に失敗した場合でも、
// ページ番号から決定論的に導かれる代替画像参照が必ず設定されます。
type BookPage struct {
	ID            string     `json:"id"`
	TextPrimary   string     `json:"text_primary"`
	TextSecondary string     `json:"text_secondary,omitempty"`
	ImageURL      string     `json:"image_url"`
	Layout        PageLayout `json:"layout"`
}

// Book は作成中または完成した絵本1冊を表します。
// Pages の並び順が正式な読み順であり、全工程を通じて保存されます。
// ページの ID は一度割り当てられた後は変化せず、再利用もされません。
type Book struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	AgeRange          AgeRange   `json:"age_range"`
	Genre             Genre      `json:"genre"`
	PrimaryLanguage   string     `json:"primary_language"`
	SecondaryLanguage string     `json:"secondary_language,omitempty"`
	Character         *Character `json:"character,omitempty"`
	Pages             []BookPage `json:"pages"`
}

// Transcript は全ページの主テキストを読み順のまま改行で連結して返します。
// ワークシート生成の入力として使用します。
func (b *Book) Transcript() string {
	texts := make([]string, 0, len(b.Pages))
	for _, p := range b.Pages {
		texts = append(texts, p.TextPrimary)
	}
	return strings.Join(texts, "\n")
}

// FallbackPageImageURL はページ番号から決定論的に導かれる代替画像参照を返します。
// 同じ番号に対しては常に同じ参照が得られます。
func FallbackPageImageURL(index int) string {
	return fmt.Sprintf("https://picsum.photos/seed/%d/800/450", index)
}

// StoryConfig は物語生成のリクエスト設定です。
type StoryConfig struct {
	Prompt               string
	AgeRange             AgeRange
	Genre                Genre
	PrimaryLanguage      string
	SecondaryLanguage    string
	CharacterDescription string
	PageCount            int
}

// Validate は設定値の妥当性を検証します。
// プロンプトが空の場合は ErrInputIncomplete を返します。
func (c StoryConfig) Validate() error {
	if strings.TrimSpace(c.Prompt) == "" {
		return fmt.Errorf("物語のプロンプトが指定されていません: %w", ErrInputIncomplete)
	}
	if !c.AgeRange.Valid() {
		return fmt.Errorf("不正な年齢層です: %q", c.AgeRange)
	}
	if !c.Genre.Valid() {
		return fmt.Errorf("不正なジャンルです: %q", c.Genre)
	}
	if strings.TrimSpace(c.PrimaryLanguage) == "" {
		return fmt.Errorf("主言語が指定されていません: %w", ErrInputIncomplete)
	}
	if !ValidPageCount(c.PageCount) {
		return fmt.Errorf("ページ数は %v のいずれかを指定してください (指定値: %d)", AllowedPageCounts, c.PageCount)
	}
	return nil
}

// StoryPage は AI から返される台本1ページ分の構造です。
type StoryPage struct {
	TextPrimary   string `json:"text1"`
	TextSecondary string `json:"text2,omitempty"`
	ImagePrompt   string `json:"imgPrompt"`
}

// StoryResponse は AI から返される台本全体の構造です。
// Pages の数は要求ページ数と正確に一致している必要があります。
type StoryResponse struct {
	Title string      `json:"title"`
	Pages []StoryPage `json:"pages"`
}
