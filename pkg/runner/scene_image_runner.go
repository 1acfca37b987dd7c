package runner

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/gateway"
	"github.com/shouni/go-storyboard-kit/pkg/prompts"
	"github.com/shouni/go-storyboard-kit/pkg/store"
)

// SceneImageRunner はシーン画像の合成生成を管理します。
// シーン画像はキャラクターポートレートを参照画像として添えたうえで、
// そのシーン固有のアスペクト比で生成されます。
type SceneImageRunner struct {
	store   *store.Store
	images  gateway.ImageGenerator
	limiter *rate.Limiter
}

// NewSceneImageRunner は、依存関係を注入して初期化します。
func NewSceneImageRunner(st *store.Store, images gateway.ImageGenerator, interval time.Duration) *SceneImageRunner {
	return &SceneImageRunner{
		store:   st,
		images:  images,
		limiter: rate.NewLimiter(rate.Every(interval), 2),
	}
}

// Generate は 1 シーンの画像を合成生成するのだ。
// 参照画像は「画像を持つキャラクター」だけを、キャラクター一覧の並び順の
// まま先に並べ、最後にテキスト指示を置くのだ。
func (r *SceneImageRunner) Generate(ctx context.Context, index int) error {
	scene, err := r.store.Scene(index)
	if err != nil {
		return err
	}

	if err := r.store.UpdateScene(index, func(s domain.Scene) domain.Scene {
		s.ImageLoading = true
		return s
	}); err != nil {
		return err
	}

	img, genErr := r.generateOne(ctx, scene)

	// 失敗時は既存の画像に触れない。videoRef もここでは変更しない
	if err := r.store.UpdateScene(index, func(s domain.Scene) domain.Scene {
		s.ImageLoading = false
		if genErr == nil {
			s.Image = img
		}
		return s
	}); err != nil {
		return err
	}
	return genErr
}

// GenerateAll は全シーンの画像を順に生成します。
// 個別の失敗は記録するだけで残りのシーンの生成は続行します。
func (r *SceneImageRunner) GenerateAll(ctx context.Context) error {
	var lastErr error
	for i := 0; i < r.store.SceneCount(); i++ {
		if err := r.Generate(ctx, i); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// DeleteImage はシーンの画像を破棄するのだ。
// 画像から作られた動画参照も必ず一緒に破棄するのが不変条件なのだ。
func (r *SceneImageRunner) DeleteImage(index int) error {
	return r.store.UpdateScene(index, func(s domain.Scene) domain.Scene {
		return s.ClearImage()
	})
}

// UpdatePrompt はシーンのプロンプト文だけを書き換えます。
func (r *SceneImageRunner) UpdatePrompt(index int, prompt string) error {
	return r.store.UpdateScene(index, func(s domain.Scene) domain.Scene {
		s.Prompt = prompt
		return s
	})
}

// SetAspectRatio はシーン固有のアスペクト比を書き換えます。
// 既存の画像・動画には影響しません（次回生成から反映されます）。
func (r *SceneImageRunner) SetAspectRatio(index int, ratio domain.AspectRatio) error {
	return r.store.UpdateScene(index, func(s domain.Scene) domain.Scene {
		s.AspectRatio = ratio
		return s
	})
}

func (r *SceneImageRunner) generateOne(ctx context.Context, scene domain.Scene) (*domain.ImageData, error) {
	target := strconv.Itoa(scene.SceneNumber)

	if err := r.limiter.Wait(ctx); err != nil {
		return nil, &domain.GenerationError{Kind: "scene", Target: target, Err: err}
	}

	parts := r.referenceParts()
	parts = append(parts, gateway.TextPart(prompts.SceneInstruction(scene)))

	start := time.Now()
	img, err := r.images.GenerateImage(ctx, parts)
	if err != nil {
		slog.WarnContext(ctx, "シーン画像の生成に失敗しました", "scene", scene.SceneNumber, "error", err)
		return nil, &domain.GenerationError{Kind: "scene", Target: target, Err: err}
	}

	slog.InfoContext(ctx, "シーン画像を生成しました",
		"scene", scene.SceneNumber,
		"references", len(parts)-1,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return img, nil
}

// referenceParts は画像を持つキャラクターのポートレートを一覧順に集めるのだ。
func (r *SceneImageRunner) referenceParts() []gateway.ImagePart {
	var parts []gateway.ImagePart
	for i := 0; i < r.store.CharacterCount(); i++ {
		char, err := r.store.Character(i)
		if err != nil {
			continue
		}
		if char.HasImage() {
			parts = append(parts, gateway.ReferencePart(char.Image))
		}
	}
	return parts
}
