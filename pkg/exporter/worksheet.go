package exporter

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/shouni/go-ehon-kit/pkg/domain"
)

// worksheetTemplate は教室配布用のワークシート HTML です。
// 読解・語彙・作文の 3 セクション構成で、記入欄の罫線を含みます。
var worksheetTemplate = template.Must(template.New("worksheet").Parse(`<html>
  <head>
    <title>{{.Title}} | Ehon Worksheet</title>
    <style>
      body { margin: 0; padding: 48px; font-family: 'Georgia', serif; color: #1a2e4c; background: #fff; }
      @page { size: A4 portrait; margin: 15mm; }
      h1 { text-align: center; font-size: 24pt; border-bottom: 1px solid #e2e8f0; padding-bottom: 24px; margin-bottom: 48px; }
      h3 { font-size: 11pt; text-transform: uppercase; letter-spacing: 0.2em; border-left: 4px solid #1a2e4c; padding-left: 12px; margin: 48px 0 32px; }
      ol.questions { padding-left: 24px; }
      ol.questions li { margin-bottom: 40px; font-weight: bold; font-size: 13pt; }
      .answer-line { border-bottom: 1px solid #cbd5e0; height: 36px; margin-top: 16px; }
      .vocab { border: 2px solid #f1f5f9; border-radius: 12px; padding: 20px; margin-bottom: 16px; background: #fcfcfc; }
      .vocab .term { font-weight: bold; font-size: 13pt; margin: 0 0 8px; }
      .vocab .definition { font-style: italic; color: #4a5568; margin: 0; }
      .writing { background: #f8fafc; border: 1px solid #e2e8f0; border-radius: 12px; padding: 28px; }
      .writing p { font-weight: bold; font-size: 13pt; margin: 0 0 28px; }
      footer { margin-top: 72px; padding-top: 32px; border-top: 1px solid #e2e8f0; display: flex; justify-content: space-between; font-size: 8pt; font-style: italic; color: #a0aec0; text-transform: uppercase; }
    </style>
  </head>
  <body>
    <h1>{{.Title}}</h1>
    <section>
      <h3>I. Comprehension Check</h3>
      <ol class="questions">
{{- range .Comprehension}}
        <li>{{.}}
          <div class="answer-line"></div>
          <div class="answer-line"></div>
        </li>
{{- end}}
      </ol>
    </section>
    <section>
      <h3>II. Vocabulary Expansion</h3>
{{- range .Vocabulary}}
      <div class="vocab">
        <p class="term">{{.Term}}</p>
        <p class="definition">{{.Definition}}</p>
      </div>
{{- end}}
    </section>
    <section>
      <h3>III. Creative Corner</h3>
      <div class="writing">
        <p>{{.WritingPrompt}}</p>
{{- range .WritingLines}}
        <div class="answer-line"></div>
{{- end}}
      </div>
    </section>
    <footer>
      <span>&copy; Ehon Educational Publishing</span>
      <span>Classroom Copy Permitted</span>
    </footer>
  </body>
</html>
`))

// worksheetWritingLines は作文セクションに印刷する記入欄の行数です。
const worksheetWritingLines = 7

type worksheetView struct {
	Title         string
	Comprehension []string
	Vocabulary    []domain.VocabularyEntry
	WritingPrompt string
	WritingLines  []struct{}
}

// RenderWorksheetDocument はワークシートを配布用の単一 HTML に変換します。
// 語彙は "term: definition" 形式から分解され、定義が欠けた語には代替文が入ります。
func (r *Renderer) RenderWorksheetDocument(ws *domain.Worksheet) ([]byte, error) {
	if ws == nil || len(ws.Content.Comprehension) == 0 {
		return nil, fmt.Errorf("出力するワークシートがありません: %w", domain.ErrInputIncomplete)
	}

	view := worksheetView{
		Title:         fmt.Sprintf("Lesson Plan: %s", ws.Title),
		Comprehension: ws.Content.Comprehension,
		WritingPrompt: ws.Content.WritingPrompt,
		WritingLines:  make([]struct{}, worksheetWritingLines),
	}
	for _, raw := range ws.Content.Vocabulary {
		view.Vocabulary = append(view.Vocabulary, domain.ParseVocabularyEntry(raw))
	}

	var buf bytes.Buffer
	if err := worksheetTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("ワークシートの生成に失敗しました: %w", err)
	}
	return buf.Bytes(), nil
}
