package prompts

import (
	"fmt"
	"strings"
)

// キャラクター候補のバリエーション指示です。候補 0 は正面向き、それ以外は動きのあるポーズを要求します。
const (
	variantFacingFront = "facing front"
	variantDynamicPose = "in a dynamic pose"
)

// ImagePromptBuilder は、キャラクターの説明と画風サフィックスを考慮して画像プロンプトを構築します。
type ImagePromptBuilder struct {
	styleSuffix string // "master-grade digital watercolor illustration" 等の共通サフィックス
}

// NewImagePromptBuilder は新しい ImagePromptBuilder を生成します。
func NewImagePromptBuilder(styleSuffix string) *ImagePromptBuilder {
	return &ImagePromptBuilder{styleSuffix: styleSuffix}
}

// BuildCharacterPrompt は、キャラクター候補 1 枚分のユーザープロンプトを生成します。
// variant が 0 のとき正面向き、それ以外は動的なポーズのバリエーションになります。
func (pb *ImagePromptBuilder) BuildCharacterPrompt(description string, variant int) string {
	variation := variantDynamicPose
	if variant == 0 {
		variation = variantFacingFront
	}

	var sb strings.Builder
	sb.WriteString("High-end professional character design for a premium children's book. ")
	sb.WriteString(fmt.Sprintf("Character: %s. %s. ", strings.TrimSpace(description), variation))
	sb.WriteString("Full body, isolated on clean white background, ")
	sb.WriteString(pb.styleSuffix)
	return sb.String()
}

// BuildPagePrompt は、確定済みキャラクターの参照画像を前提とした挿絵プロンプトを生成します。
// 参照画像そのものはリクエストの参照フィールドで渡すため、ここではテキスト指示のみを構築します。
func (pb *ImagePromptBuilder) BuildPagePrompt(scenePrompt string) string {
	var sb strings.Builder
	sb.WriteString("Consistent children's book illustration. ")
	sb.WriteString(fmt.Sprintf("Scene: %s. ", strings.TrimSpace(scenePrompt)))
	sb.WriteString("MUST use the character provided in the image part. ")
	sb.WriteString("High-quality, detailed, watercolor style, soft lighting, 4K resolution.")
	return sb.String()
}

// BuildPageSystemPrompt は、挿絵生成のシステムプロンプトを生成します。
func (pb *ImagePromptBuilder) BuildPageSystemPrompt() string {
	var sb strings.Builder
	sb.WriteString("You are a professional children's book illustrator. Create a single warm, story-driven scene.")
	if pb.styleSuffix != "" {
		sb.WriteString("\n\n")
		sb.WriteString(fmt.Sprintf("### GLOBAL VISUAL STYLE ###\n%s", pb.styleSuffix))
	}
	return sb.String()
}
