package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/gateway"
)

// GenerateImage は順序付きパート列（参照画像 + テキスト指示）から画像を生成するのだ。
// 応答に画像パートが含まれない場合は、エラーコードではなく失敗として扱うのだ。
func (c *Client) GenerateImage(ctx context.Context, parts []gateway.ImagePart) (*domain.ImageData, error) {
	gparts := make([]*genai.Part, 0, len(parts))
	for _, p := range parts {
		if p.Image != nil {
			gparts = append(gparts, genai.NewPartFromBytes(p.Image.Data, p.Image.MimeType))
			continue
		}
		gparts = append(gparts, genai.NewPartFromText(p.Text))
	}

	contents := []*genai.Content{genai.NewContentFromParts(gparts, genai.RoleUser)}

	resp, err := c.genai.Models.GenerateContent(ctx, c.imageModel, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("画像生成リクエストに失敗しました: %w", err)
	}

	if img := firstInlineImage(resp); img != nil {
		return img, nil
	}
	return nil, fmt.Errorf("応答に画像パートが含まれていません")
}

// GeneratePortrait は PortraitGenerator の genai 実装です。
// アスペクト比の指定はテキスト指示として埋め込みます。
func (c *Client) GeneratePortrait(ctx context.Context, req gateway.PortraitRequest) (*domain.ImageData, error) {
	prompt := fmt.Sprintf("%s The image must have a strict aspect ratio of %s.", req.Prompt, req.AspectRatio)
	return c.GenerateImage(ctx, []gateway.ImagePart{gateway.TextPart(prompt)})
}

// firstInlineImage は候補の中から最初のインライン画像パートを探すのだ。
func firstInlineImage(resp *genai.GenerateContentResponse) *domain.ImageData {
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return &domain.ImageData{
					MimeType: part.InlineData.MIMEType,
					Data:     part.InlineData.Data,
				}
			}
		}
	}
	return nil
}
