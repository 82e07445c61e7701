package pipeline

import (
	"fmt"

	"golang.org/x/time/rate"

	"github.com/shouni/go-ehon-kit/pkg/gateway"
)

// CharacterCandidateCount は1回のキャラクター生成で作る候補画像の数です。
const CharacterCandidateCount = 2

// Pipeline は絵本作成の各工程（キャラクター、物語、挿絵、ワークシート）を統括します。
// 挿絵の並列生成はレートリミッターで流量制御されます。
type Pipeline struct {
	gateway gateway.ContentGateway
	limiter *rate.Limiter
}

// New は Pipeline を初期化します。limiter が nil の場合はエラーです。
func New(gw gateway.ContentGateway, limiter *rate.Limiter) (*Pipeline, error) {
	if gw == nil {
		return nil, fmt.Errorf("ContentGateway は必須です")
	}
	if limiter == nil {
		return nil, fmt.Errorf("RateLimiter は必須です")
	}
	return &Pipeline{gateway: gw, limiter: limiter}, nil
}
