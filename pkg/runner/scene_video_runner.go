package runner

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/gateway"
	"github.com/shouni/go-storyboard-kit/pkg/prompts"
	"github.com/shouni/go-storyboard-kit/pkg/store"
)

// credentialFailureMarker は資格情報の失効をエラーメッセージから見分ける
// ためのマーカーです。リモート側が専用のエラーコードを返さないためです。
const credentialFailureMarker = "Requested entity was not found"

// SleepFunc はポーリング間隔の待機を差し替えるためのフックなのだ。
// テストでは即時 return するフェイクを注入するのだ。
type SleepFunc func(ctx context.Context, d time.Duration) error

// defaultSleep は context キャンセルに応答する待機です。
func defaultSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// SceneVideoRunner はシーン静止画からの動画生成と LRO ポーリングを管理します。
// 1 回の呼び出し内でポーリングは厳密に直列ですが、別シーンへの呼び出し同士は
// 並行に走って構いません。
type SceneVideoRunner struct {
	store        *store.Store
	videos       gateway.VideoGenerator
	gate         gateway.CredentialGate
	pollInterval time.Duration
	sleep        SleepFunc
}

// NewSceneVideoRunner は、依存関係を注入して初期化します。
func NewSceneVideoRunner(st *store.Store, videos gateway.VideoGenerator, gate gateway.CredentialGate, pollInterval time.Duration) *SceneVideoRunner {
	return &SceneVideoRunner{
		store:        st,
		videos:       videos,
		gate:         gate,
		pollInterval: pollInterval,
		sleep:        defaultSleep,
	}
}

// Generate は 1 シーンの動画を生成するのだ。状態遷移は
// idle → requesting → polling → {done | failed} で、失敗しても同じ
// シーンに対して再度呼び直せるのだ（再入可能、スティッキーではない）。
func (r *SceneVideoRunner) Generate(ctx context.Context, index int) error {
	scene, err := r.store.Scene(index)
	if err != nil {
		return err
	}
	target := strconv.Itoa(scene.SceneNumber)

	// 静止画が無ければネットワークには一切触れない
	if !scene.HasImage() {
		return &domain.PreconditionError{Reason: "動画を生成する前に、まずシーンの画像を生成してください"}
	}

	// 資格情報ゲート。未選択なら選択フローの完了までブロックする
	hasKey, err := r.gate.Has(ctx)
	if err != nil {
		return &domain.CredentialError{Err: err}
	}
	if !hasKey {
		if err := r.gate.Select(ctx); err != nil {
			return &domain.CredentialError{Err: err}
		}
	}

	if err := r.store.UpdateScene(index, func(s domain.Scene) domain.Scene {
		s.VideoLoading = true
		return s
	}); err != nil {
		return err
	}

	uri, genErr := r.run(ctx, scene)

	if err := r.store.UpdateScene(index, func(s domain.Scene) domain.Scene {
		s.VideoLoading = false
		if genErr == nil {
			s.VideoRef = uri
		}
		return s
	}); err != nil {
		return err
	}

	if genErr == nil {
		return nil
	}

	// 2 段階の失敗処理: 資格情報の失効だけは専用エラーにして
	// 選択フローへ誘導し、それ以外はシーンスコープの失敗にする
	if strings.Contains(genErr.Error(), credentialFailureMarker) {
		slog.WarnContext(ctx, "API キーが無効です。再選択フローを開始します", "scene", scene.SceneNumber)
		if selErr := r.gate.Select(ctx); selErr != nil {
			return &domain.CredentialError{Err: selErr}
		}
		return &domain.CredentialError{Err: genErr}
	}
	return &domain.GenerationError{Kind: "video", Target: target, Err: genErr}
}

// run は開始からポーリング完了までを 1 回分実行するのだ。
func (r *SceneVideoRunner) run(ctx context.Context, scene domain.Scene) (string, error) {
	req := gateway.VideoRequest{
		Prompt:      prompts.AnimationPrompt(scene),
		Image:       *scene.Image,
		AspectRatio: scene.AspectRatio.VideoRatio(),
	}

	slog.InfoContext(ctx, "動画生成を開始します",
		"scene", scene.SceneNumber,
		"aspect_ratio", req.AspectRatio,
	)

	op, err := r.videos.StartVideo(ctx, req)
	if err != nil {
		return "", err
	}

	start := time.Now()
	for !op.Done() {
		if err := r.sleep(ctx, r.pollInterval); err != nil {
			return "", err
		}
		op, err = r.videos.PollVideo(ctx, op)
		if err != nil {
			return "", err
		}
	}

	uri, ok := op.ResultURI()
	if !ok {
		return "", fmt.Errorf("動画リンクを取得できませんでした")
	}

	slog.InfoContext(ctx, "動画生成が完了しました",
		"scene", scene.SceneNumber,
		"duration", time.Since(start).Round(time.Second),
	)

	// ダウンロードリンク単体では認可が通らないため、URI には
	// 現在有効なキーを合成して独立して取得可能な形にする
	return uri + "&key=" + r.gate.Key(), nil
}
