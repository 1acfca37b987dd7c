package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-storyboard-kit/pkg/runner"

	"github.com/spf13/cobra"
)

// analyzeCmd は、解析とポートレート生成までを実行して文書化するのだ。
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "物語を解析してキャラクターとシーンの構成案を作るのだ。",
	Long: `物語本文をシーン構成に分解し、キャラクターのポートレートを並列生成するのだ。
シーン画像の生成は行わず、結果はプロジェクト文書（project.json）として保存されるのだ。
あとから image / video コマンドで個別に肉付けできるのだよ。`,
	Example: "  ap-storyboard-go analyze -f story.txt -n 5 -o output",
	RunE:    analyzeCommand,
}

func analyzeCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	b, err := newSession(cmd)
	if err != nil {
		return err
	}
	if err := loadStoryText(cmd, b); err != nil {
		return err
	}

	slog.Info("物語の解析を開始するのだ！", "scenes", opts.NumScenes, "style", opts.StyleID)

	if err := b.BuildAnalyzeRunner().Run(ctx); err != nil {
		return fmt.Errorf("解析工程でエラーが発生したのだ: %w", err)
	}

	if err := b.BuildRenderRunner().Run(ctx, runner.RenderOptions{OutputDir: opts.OutputDir}); err != nil {
		return fmt.Errorf("プロジェクト文書の保存に失敗したのだ: %w", err)
	}

	snap := b.Store().Snapshot()
	slog.Info("解析が完了したのだ！",
		"characters", len(snap.Characters),
		"scenes", len(snap.Scenes),
		"output", opts.OutputDir)
	return nil
}
