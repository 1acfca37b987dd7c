package runner

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/gateway"
	"github.com/shouni/go-storyboard-kit/pkg/prompts"
	"github.com/shouni/go-storyboard-kit/pkg/store"
)

// AnalyzeRunner は物語テキストの構造化解析と、その結果によるバッチ全置換を
// 管理します。解析が成功するとポートレートのファンアウトが自動で始まります。
type AnalyzeRunner struct {
	store      *store.Store
	analyzer   gateway.StoryAnalyzer
	characters *CharacterImageRunner
}

// NewAnalyzeRunner は、依存関係を注入して初期化します。
func NewAnalyzeRunner(st *store.Store, analyzer gateway.StoryAnalyzer, characters *CharacterImageRunner) *AnalyzeRunner {
	return &AnalyzeRunner{
		store:      st,
		analyzer:   analyzer,
		characters: characters,
	}
}

// Run は解析パイプラインを実行するのだ。手順は必ずこの順なのだ:
// 入力検証 → バッチのクリア → ゲートウェイ呼び出し → バッチ全置換 →
// ポートレートのファンアウト。クリアは呼び出しの前に行うので、
// 解析が失敗しても古いバッチが残ることはないのだ。
func (r *AnalyzeRunner) Run(ctx context.Context) error {
	snapshot := r.store.Snapshot()

	if strings.TrimSpace(snapshot.StoryText) == "" {
		return &domain.ValidationError{Reason: "物語テキストが空です"}
	}

	r.store.Clear()

	slog.InfoContext(ctx, "物語の解析を開始します",
		"num_scenes", snapshot.NumScenes,
		"style", snapshot.StoryStyle.ID,
	)

	instruction := prompts.AnalysisInstruction(
		snapshot.StoryText,
		snapshot.Notes,
		snapshot.NumScenes,
		snapshot.StoryStyle,
	)

	analysis, err := r.analyzer.AnalyzeStory(ctx, instruction)
	if err != nil {
		slog.ErrorContext(ctx, "物語の解析に失敗しました", "error", err)
		return &domain.AnalysisError{Err: err}
	}

	r.store.ReplaceBatch(analysis, r.store.AspectRatio())

	slog.InfoContext(ctx, "解析が完了しました",
		"characters", len(analysis.Characters),
		"scenes", len(analysis.Scenes),
	)

	return r.characters.RunAll(ctx)
}
