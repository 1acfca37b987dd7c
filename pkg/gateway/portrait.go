package gateway

import (
	"context"
	"fmt"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
	imagekit "github.com/shouni/gemini-image-kit/pkg/generator"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
)

// ImageKitPortraits は gemini-image-kit の生成コア（キャッシュ付き）を
// PortraitGenerator として使うためのアダプターなのだ。
type ImageKitPortraits struct {
	gen imagekit.ImageGenerator
}

// NewImageKitPortraits はアダプターを初期化します。
func NewImageKitPortraits(gen imagekit.ImageGenerator) *ImageKitPortraits {
	return &ImageKitPortraits{gen: gen}
}

// GeneratePortrait はテキスト指示からポートレート 1 枚を生成します。
// 応答に画像データが無い場合は失敗として扱います。
func (p *ImageKitPortraits) GeneratePortrait(ctx context.Context, req PortraitRequest) (*domain.ImageData, error) {
	resp, err := p.gen.GenerateMangaPanel(ctx, imagedom.ImageGenerationRequest{
		Prompt:         req.Prompt,
		NegativePrompt: req.NegativePrompt,
		AspectRatio:    req.AspectRatio,
	})
	if err != nil {
		return nil, err
	}
	if resp == nil || len(resp.Data) == 0 {
		return nil, fmt.Errorf("応答に画像データが含まれていません")
	}
	return &domain.ImageData{MimeType: resp.MimeType, Data: resp.Data}, nil
}
