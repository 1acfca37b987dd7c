package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
)

// analysisSchema は物語解析レスポンスの構造をモデル側に強制するスキーマなのだ。
// それでも応答は信頼できない外部入力として、domain.ParseStoryAnalysis で
// もう一度完全な構造検証を通すのだ。
var analysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"characters": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":        {Type: genai.TypeString},
					"description": {Type: genai.TypeString},
				},
				Required: []string{"name", "description"},
			},
		},
		"scenes": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"sceneNumber": {Type: genai.TypeInteger},
					"prompt":      {Type: genai.TypeString},
				},
				Required: []string{"sceneNumber", "prompt"},
			},
		},
	},
	Required: []string{"characters", "scenes"},
}

// AnalyzeStory は物語の構造化解析を 1 回のゲートウェイ呼び出しで実行します。
func (c *Client) AnalyzeStory(ctx context.Context, instruction string) (domain.StoryAnalysis, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   analysisSchema,
	}

	resp, err := c.genai.Models.GenerateContent(ctx, c.textModel, genai.Text(instruction), config)
	if err != nil {
		return domain.StoryAnalysis{}, fmt.Errorf("解析リクエストに失敗しました: %w", err)
	}

	return domain.ParseStoryAnalysis(resp.Text())
}
