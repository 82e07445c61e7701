package gateway

import (
	"context"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"

	"github.com/shouni/go-ehon-kit/pkg/domain"
)

// ContentGateway は、絵本の生成に必要な AI 呼び出しを 1 箇所に集約する契約です。
// パイプライン層はこのインターフェースのみに依存し、Gemini の詳細を知りません。
type ContentGateway interface {
	// SynthesizeCharacter はキャラクター候補画像を 1 枚生成し、data URL を返します。
	// variant が 0 のとき正面向き、それ以外は動的なポーズのバリエーションになります。
	SynthesizeCharacter(ctx context.Context, description string, variant int) (string, error)

	// SynthesizeStory は条件に従った物語を合成し、タイトルとページ群を返します。
	// 返却されるページ数は cfg.PageCount と厳密に一致します。
	SynthesizeStory(ctx context.Context, cfg domain.StoryConfig) (domain.StoryResponse, error)

	// SynthesizePageImage は確定済みキャラクターを参照アンカーとして挿絵を 1 枚生成し、data URL を返します。
	SynthesizePageImage(ctx context.Context, scenePrompt string, character *domain.Character) (string, error)

	// SynthesizeWorksheet は完成したブックの本文から学習ワークシートの素材を合成します。
	SynthesizeWorksheet(ctx context.Context, book *domain.Book) (domain.WorksheetContent, error)
}

// TextGenerator はテキスト生成モデルの呼び出しを抽象化します。
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, model string) (string, error)
}

// ImageSynthesizer は画像生成モデルの呼び出しを抽象化します。
// gemini-image-kit の ImageGenerator がこの契約を満たします。
type ImageSynthesizer interface {
	GenerateMangaPanel(ctx context.Context, req imagedom.ImageGenerationRequest) (*imagedom.ImageResponse, error)
}

// AssetUploader は参照画像の File API アップロードを抽象化します。
// gemini-image-kit の AssetManager がこの契約を満たします。
type AssetUploader interface {
	UploadFile(ctx context.Context, url string) (string, error)
}
