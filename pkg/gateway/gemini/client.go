// Package gemini は gateway インターフェース群の google.golang.org/genai 実装なのだ。
// 物語解析（スキーマ制約付き JSON）、マルチモーダル画像生成、Veo の
// 長時間実行オペレーション（LRO）をこの 1 クライアントで担うのだ。
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Config は gemini クライアントの接続設定です。
type Config struct {
	APIKey     string
	TextModel  string // 物語解析用
	ImageModel string // シーン画像生成用
	VideoModel string // 動画生成用
}

// Client は genai SDK を包むゲートウェイ実装です。
type Client struct {
	genai      *genai.Client
	textModel  string
	imageModel string
	videoModel string
}

// New はクライアントを初期化します。APIKey は必須です。
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("APIKey は必須です")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genai クライアントの初期化に失敗しました: %w", err)
	}

	return &Client{
		genai:      client,
		textModel:  cfg.TextModel,
		imageModel: cfg.ImageModel,
		videoModel: cfg.VideoModel,
	}, nil
}
