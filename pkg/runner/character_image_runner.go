package runner

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/gateway"
	"github.com/shouni/go-storyboard-kit/pkg/imaging"
	"github.com/shouni/go-storyboard-kit/pkg/prompts"
	"github.com/shouni/go-storyboard-kit/pkg/store"
)

// characterResult はファンアウトの 1 件分の結果なのだ。
// 直列化ループがこれを受け取り、インデックス指定でストアに反映するのだ。
type characterResult struct {
	index int
	image *domain.ImageData
	err   error
}

// CharacterImageRunner はキャラクターポートレートの並列生成を管理します。
// 1 件の失敗は兄弟に波及せず、失敗したレコードだけが画像なしで確定します。
type CharacterImageRunner struct {
	store     *store.Store
	portraits gateway.PortraitGenerator
	limiter   *rate.Limiter
}

// NewCharacterImageRunner は、依存関係を注入して初期化します。
func NewCharacterImageRunner(st *store.Store, portraits gateway.PortraitGenerator, interval time.Duration) *CharacterImageRunner {
	return &CharacterImageRunner{
		store:     st,
		portraits: portraits,
		limiter:   rate.NewLimiter(rate.Every(interval), 2),
	}
}

// RunAll はストア上の全キャラクターのポートレートを並列生成するのだ。
// 生成ゴルーチンはエラーを返さず、結果を (index, result) でチャネルに流し、
// ストアへの反映は単一の消費ループが直列に行うのだ。
func (r *CharacterImageRunner) RunAll(ctx context.Context) error {
	count := r.store.CharacterCount()
	if count == 0 {
		return nil
	}

	slog.InfoContext(ctx, "キャラクターポートレートの並列生成を開始します", "count", count)

	results := make(chan characterResult, count)
	eg, egCtx := errgroup.WithContext(ctx)

	for i := 0; i < count; i++ {
		index := i
		eg.Go(func() error {
			img, err := r.generateOne(egCtx, index)
			results <- characterResult{index: index, image: img, err: err}
			// 個別の失敗は兄弟を止めない（join-all）
			return nil
		})
	}

	go func() {
		_ = eg.Wait()
		close(results)
	}()

	var failures []error
	for res := range results {
		res := res
		applyErr := r.store.UpdateCharacter(res.index, func(c domain.Character) domain.Character {
			c.Loading = false
			// 失敗したレコードは画像なし（nil）で確定する
			c.Image = res.image
			return c
		})
		if applyErr != nil {
			failures = append(failures, applyErr)
			continue
		}
		if res.err != nil {
			failures = append(failures, res.err)
		}
	}

	if len(failures) > 0 {
		slog.WarnContext(ctx, "一部のポートレート生成に失敗しました", "failed", len(failures), "total", count)
		return errors.Join(failures...)
	}

	slog.InfoContext(ctx, "全ポートレートの生成が完了しました", "count", count)
	return nil
}

// Regenerate は 1 キャラクターのポートレートを作り直します。
// 失敗した場合、既存の画像は保持せず画像なしで確定します。
// 同一インデックスへの並行要求は直列化せず、後勝ち（last-write-wins）です。
func (r *CharacterImageRunner) Regenerate(ctx context.Context, index int) error {
	if err := r.store.UpdateCharacter(index, func(c domain.Character) domain.Character {
		c.Loading = true
		return c
	}); err != nil {
		return err
	}

	img, genErr := r.generateOne(ctx, index)

	if err := r.store.UpdateCharacter(index, func(c domain.Character) domain.Character {
		c.Loading = false
		// 失敗時は img が nil なので、以前の画像ごと破棄される
		c.Image = img
		return c
	}); err != nil {
		return err
	}
	return genErr
}

// Upload はユーザー持ち込みの画像バイト列でポートレートを置き換えます。
// 復号中は loading を立て、完了後に必ず落とします。
// 復号できないデータは DecodeError で拒否し、既存画像は保持されます。
func (r *CharacterImageRunner) Upload(index int, data []byte) error {
	if err := r.store.UpdateCharacter(index, func(c domain.Character) domain.Character {
		c.Loading = true
		return c
	}); err != nil {
		return err
	}

	img, decErr := imaging.Sniff(data)

	if err := r.store.UpdateCharacter(index, func(c domain.Character) domain.Character {
		c.Loading = false
		if decErr == nil {
			c.Image = img
		}
		return c
	}); err != nil {
		return err
	}
	return decErr
}

// generateOne はレートリミッターを通して 1 件のポートレートを生成するのだ。
func (r *CharacterImageRunner) generateOne(ctx context.Context, index int) (*domain.ImageData, error) {
	char, err := r.store.Character(index)
	if err != nil {
		return nil, err
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return nil, &domain.GenerationError{Kind: "character", Target: char.Name, Err: err}
	}

	prompt := prompts.PortraitPrompt(char, r.store.StoryStyle(), r.store.AspectRatio())

	start := time.Now()
	img, err := r.portraits.GeneratePortrait(ctx, gateway.PortraitRequest{
		Prompt:      prompt,
		AspectRatio: r.store.AspectRatio().Value,
	})
	if err != nil {
		slog.WarnContext(ctx, "ポートレート生成に失敗しました", "name", char.Name, "error", err)
		return nil, &domain.GenerationError{Kind: "character", Target: char.Name, Err: err}
	}

	slog.InfoContext(ctx, "ポートレートを生成しました",
		"name", char.Name,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return img, nil
}
