package domain

import "strings"

const (
	// WorksheetComprehensionCount はワークシートに含める読解問題の数です。
	WorksheetComprehensionCount = 3
	// WorksheetVocabularyCount はワークシートに含める語彙の数です。
	WorksheetVocabularyCount = 3

	// DefaultVocabularyDefinition は語彙に定義部分が欠けていた場合の代替文です。
	DefaultVocabularyDefinition = "Contextual meaning from the story."
)

// WorksheetContent は AI から返されるワークシートの内容です。
// Vocabulary の各要素は "term: definition" 形式のテキストです。
type WorksheetContent struct {
	Comprehension []string `json:"comprehension"`
	Vocabulary    []string `json:"vocabulary"`
	WritingPrompt string   `json:"writingPrompt"`
}

// Normalize は内容を規定の形（読解3問・語彙3語・作文1題）に整えます。
// 外部サービスはプロンプトで数を指示されているだけで保証はないため、
// 超過分は切り捨て、不足分は汎用の項目で補います。
func (c *WorksheetContent) Normalize() {
	c.Comprehension = padOrTruncate(c.Comprehension, WorksheetComprehensionCount, defaultComprehension)
	c.Vocabulary = padOrTruncate(c.Vocabulary, WorksheetVocabularyCount, defaultVocabulary)
	if strings.TrimSpace(c.WritingPrompt) == "" {
		c.WritingPrompt = "Write your own ending for the story."
	}
}

var defaultComprehension = []string{
	"What happened at the beginning of the story?",
	"How did the main character feel, and why?",
	"What happened at the end of the story?",
}

var defaultVocabulary = []string{
	"story: " + DefaultVocabularyDefinition,
	"character: " + DefaultVocabularyDefinition,
	"adventure: " + DefaultVocabularyDefinition,
}

func padOrTruncate(items []string, want int, fallback []string) []string {
	out := make([]string, 0, want)
	for _, it := range items {
		if strings.TrimSpace(it) == "" {
			continue
		}
		out = append(out, it)
		if len(out) == want {
			return out
		}
	}
	for i := len(out); i < want; i++ {
		out = append(out, fallback[i%len(fallback)])
	}
	return out
}

// VocabularyEntry は語彙1語を用語と定義に分解したものです。
type VocabularyEntry struct {
	Term       string
	Definition string
}

// ParseVocabularyEntry は "term: definition" 形式のテキストを分解します。
// 区切りの ":" が無い、または定義が空の場合は代替文を設定します。
// 表示側はこの結果に依存するため、定義が空文字列になることはありません。
func ParseVocabularyEntry(raw string) VocabularyEntry {
	term, def, found := strings.Cut(raw, ":")
	entry := VocabularyEntry{
		Term:       strings.TrimSpace(term),
		Definition: strings.TrimSpace(def),
	}
	if !found || entry.Definition == "" {
		entry.Definition = DefaultVocabularyDefinition
	}
	return entry
}

// Worksheet は絵本の本文から派生する読み取り専用の教材です。
// BookID は由来の参照であり、所有関係ではありません。Book 側を変更することはありません。
type Worksheet struct {
	ID      string           `json:"id"`
	BookID  string           `json:"book_id"`
	Title   string           `json:"title"`
	Content WorksheetContent `json:"content"`
}
