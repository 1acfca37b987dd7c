package workflow

import (
	"fmt"
	"time"

	"github.com/shouni/go-web-exact/v2/pkg/extract"

	"github.com/shouni/go-storyboard-kit/internal/config"
	"github.com/shouni/go-storyboard-kit/pkg/runner"
)

// BuildAnalyzeRunner は物語解析とポートレートのファンアウトを担う Runner を作成するのだ。
func (b *Builder) BuildAnalyzeRunner() *runner.AnalyzeRunner {
	return runner.NewAnalyzeRunner(b.store, b.gwClient, b.BuildCharacterImageRunner())
}

// BuildCharacterImageRunner はポートレート生成を担う Runner を作成するのだ。
func (b *Builder) BuildCharacterImageRunner() *runner.CharacterImageRunner {
	return runner.NewCharacterImageRunner(b.store, b.portraits, b.rateInterval())
}

// BuildSceneImageRunner はシーン画像の合成生成を担う Runner を作成するのだ。
func (b *Builder) BuildSceneImageRunner() *runner.SceneImageRunner {
	return runner.NewSceneImageRunner(b.store, b.gwClient, b.rateInterval())
}

// BuildSceneVideoRunner はシーン動画の生成とポーリングを担う Runner を作成するのだ。
func (b *Builder) BuildSceneVideoRunner() *runner.SceneVideoRunner {
	interval := b.cfg.Options.PollInterval
	if interval <= 0 {
		interval = config.DefaultPollInterval
	}
	return runner.NewSceneVideoRunner(b.store, b.gwClient, b.gate, interval)
}

// BuildStoryRunner は物語テキストの調達（執筆・抽出・読み込み）を担う Runner を作成するのだ。
func (b *Builder) BuildStoryRunner() (*runner.StoryRunner, error) {
	extractor, err := extract.NewExtractor(b.httpClient)
	if err != nil {
		return nil, fmt.Errorf("エクストラクタの初期化に失敗しました: %w", err)
	}
	return runner.NewStoryRunner(b.store, b.aiClient, b.cfg.StoryModel, extractor, b.reader), nil
}

// BuildRenderRunner は成果物の書き出しを担う Runner を作成するのだ。
func (b *Builder) BuildRenderRunner() *runner.RenderRunner {
	return runner.NewRenderRunner(b.store, b.writer)
}

// BuildImportRunner はプロジェクト文書の復元を担う Runner を作成するのだ。
func (b *Builder) BuildImportRunner() *runner.ImportRunner {
	return runner.NewImportRunner(b.store, b.reader)
}

// BuildVideoDownloadRunner は生成済み動画の取得を担う Runner を作成するのだ。
func (b *Builder) BuildVideoDownloadRunner() *runner.VideoDownloadRunner {
	return runner.NewVideoDownloadRunner(b.store, b.HTTPClient(), b.writer)
}

// rateInterval は画像生成リクエストの発行間隔なのだ。
func (b *Builder) rateInterval() time.Duration {
	return config.DefaultRateInterval
}
