package prompts

import (
	_ "embed"
)

const (
	ModeStory     = "story"
	ModeWorksheet = "worksheet"
)

// StoryTemplateData は物語生成テンプレートに渡すデータ構造です。
type StoryTemplateData struct {
	Prompt               string
	AgeRange             string
	Genre                string
	PrimaryLanguage      string
	SecondaryLanguage    string
	CharacterDescription string
	PageCount            int
}

// WorksheetTemplateData はワークシート生成テンプレートに渡すデータ構造です。
type WorksheetTemplateData struct {
	StoryText          string
	AgeRange           string
	ComprehensionCount int
	VocabularyCount    int
}

var (
	//go:embed story.md
	StoryPrompt string
	//go:embed worksheet.md
	WorksheetPrompt string
)

// allTemplates はモードとテンプレート文字列を紐づけるマップなのだ。
var allTemplates = map[string]string{
	ModeStory:     StoryPrompt,
	ModeWorksheet: WorksheetPrompt,
}
