// Package gateway は、リモート生成サービス（テキスト解析・画像生成・動画生成）
// との境界を定義するのだ。オーケストレーターはこのインターフェースだけに依存し、
// 実装の差し替え（テストのフェイク含む）を可能にするのだ。
package gateway

import (
	"context"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
)

// ImagePart は画像生成リクエストを構成する順序付きパートです。
// Image が非 nil なら参照画像のインラインバイト列、nil ならテキスト指示です。
type ImagePart struct {
	Text  string
	Image *domain.ImageData
}

// TextPart はテキストパートを作るのだ。
func TextPart(text string) ImagePart {
	return ImagePart{Text: text}
}

// ReferencePart は参照画像パートを作るのだ。
func ReferencePart(img *domain.ImageData) ImagePart {
	return ImagePart{Image: img}
}

// StoryAnalyzer は物語テキストの構造化解析を行います。
// 応答はスキーマ検証済みの StoryAnalysis で、検証に通らない応答は失敗扱いです。
type StoryAnalyzer interface {
	AnalyzeStory(ctx context.Context, instruction string) (domain.StoryAnalysis, error)
}

// ImageGenerator は順序付きパート列から 0 または 1 枚の画像を生成します。
// 応答に画像パートが無いことはエラーコードではなく「失敗」として扱われます。
type ImageGenerator interface {
	GenerateImage(ctx context.Context, parts []ImagePart) (*domain.ImageData, error)
}

// PortraitRequest はキャラクターポートレート 1 枚分の生成指示です。
type PortraitRequest struct {
	Prompt         string
	NegativePrompt string
	AspectRatio    string // "W:H"
}

// PortraitGenerator はテキスト指示のみからポートレートを生成します。
type PortraitGenerator interface {
	GeneratePortrait(ctx context.Context, req PortraitRequest) (*domain.ImageData, error)
}

// VideoRequest は静止画 1 枚を種にした動画生成の指示です。
// AspectRatio は縦型か横型の二値（domain.AspectRatio.VideoRatio で丸め済み）です。
type VideoRequest struct {
	Prompt      string
	Image       domain.ImageData
	AspectRatio string
}

// VideoOperation は長時間実行オペレーション（LRO）の不透明ハンドルです。
// 完了はポーリングで発見されます。
type VideoOperation interface {
	// Done はオペレーションが終了したかどうかを返す
	Done() bool
	// ResultURI は完了後の再生用 URI を返す。取得できない場合は false
	ResultURI() (string, bool)
}

// VideoGenerator は動画生成の開始とポーリングを行います。
type VideoGenerator interface {
	StartVideo(ctx context.Context, req VideoRequest) (VideoOperation, error)
	PollVideo(ctx context.Context, op VideoOperation) (VideoOperation, error)
}

// CredentialGate は動画生成に必要な資格情報の外部認可ステップです。
// Select はユーザーが選択フローを完了するまでブロックします。
type CredentialGate interface {
	Has(ctx context.Context) (bool, error)
	Select(ctx context.Context) error
	// Key は現在有効な資格情報（API キー）を返す。動画 URI の合成に使う
	Key() string
}
