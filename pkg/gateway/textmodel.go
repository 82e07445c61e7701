package gateway

import (
	"context"

	"github.com/shouni/go-gemini-client/pkg/gemini"
)

// geminiTextGenerator は go-gemini-client の GenerativeModel を TextGenerator に適合させます。
type geminiTextGenerator struct {
	client gemini.GenerativeModel
}

// NewGeminiTextGenerator は Gemini クライアントを包む TextGenerator を返します。
func NewGeminiTextGenerator(client gemini.GenerativeModel) TextGenerator {
	return &geminiTextGenerator{client: client}
}

func (g *geminiTextGenerator) Generate(ctx context.Context, prompt string, model string) (string, error) {
	resp, err := g.client.GenerateContent(ctx, prompt, model)
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}
