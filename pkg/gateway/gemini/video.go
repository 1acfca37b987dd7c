package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/shouni/go-storyboard-kit/pkg/gateway"
)

// videoOperation は genai の LRO ハンドルを包む不透明オペレーションなのだ。
type videoOperation struct {
	op *genai.GenerateVideosOperation
}

func (o *videoOperation) Done() bool {
	return o.op.Done
}

func (o *videoOperation) ResultURI() (string, bool) {
	if o.op.Response == nil || len(o.op.Response.GeneratedVideos) == 0 {
		return "", false
	}
	video := o.op.Response.GeneratedVideos[0].Video
	if video == nil || video.URI == "" {
		return "", false
	}
	return video.URI, true
}

// StartVideo は静止画を種にした動画生成を開始し、LRO ハンドルを返します。
func (c *Client) StartVideo(ctx context.Context, req gateway.VideoRequest) (gateway.VideoOperation, error) {
	op, err := c.genai.Models.GenerateVideos(ctx, c.videoModel, req.Prompt,
		&genai.Image{
			ImageBytes: req.Image.Data,
			MIMEType:   req.Image.MimeType,
		},
		&genai.GenerateVideosConfig{
			NumberOfVideos: 1,
			Resolution:     "720p",
			AspectRatio:    req.AspectRatio,
		})
	if err != nil {
		return nil, fmt.Errorf("動画生成リクエストに失敗しました: %w", err)
	}
	return &videoOperation{op: op}, nil
}

// PollVideo はオペレーションの最新状態を 1 回取得します。
// ポーリング間隔の制御は呼び出し側（runner）の責務です。
func (c *Client) PollVideo(ctx context.Context, op gateway.VideoOperation) (gateway.VideoOperation, error) {
	current, ok := op.(*videoOperation)
	if !ok {
		return nil, fmt.Errorf("このクライアントが発行したオペレーションではありません: %T", op)
	}

	latest, err := c.genai.Operations.GetVideosOperation(ctx, current.op, nil)
	if err != nil {
		return nil, fmt.Errorf("オペレーション状態の取得に失敗しました: %w", err)
	}
	return &videoOperation{op: latest}, nil
}
