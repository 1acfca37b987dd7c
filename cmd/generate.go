package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-storyboard-kit/pkg/runner"

	"github.com/spf13/cobra"
)

// generateCmd は、解析から画像生成・書き出しまでの全工程を一気に実行するのだ。
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "物語を解析し、キャラクターとシーンの画像まで一括生成するのだ。",
	Long: `物語本文を読み込んで構造化解析を行い、キャラクターポートレートの並列生成、
全シーン画像の合成生成、成果物一式の書き出しまでを通しで実行するのだ。
動画の生成は含まれないのだよ（video コマンドを使うのだ）。`,
	Example: "  ap-storyboard-go generate -f story.txt -n 5 --style ghibli -o output",
	RunE:    generateCommand,
}

func generateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	b, err := newSession(cmd)
	if err != nil {
		return err
	}
	if err := loadStoryText(cmd, b); err != nil {
		return err
	}

	slog.Info("ストーリーボード生成パイプラインを起動するのだ！",
		"scenes", opts.NumScenes,
		"style", opts.StyleID,
		"ratio", opts.AspectRatio,
		"output", opts.OutputDir)

	if err := b.BuildAnalyzeRunner().Run(ctx); err != nil {
		return fmt.Errorf("解析工程でエラーが発生したのだ: %w", err)
	}

	if err := b.BuildSceneImageRunner().GenerateAll(ctx); err != nil {
		// 個別シーンの失敗は書き出しを妨げない
		slog.Warn("一部のシーン画像生成に失敗したのだ", "error", err)
	}

	if err := b.BuildRenderRunner().Run(ctx, runner.RenderOptions{
		OutputDir:   opts.OutputDir,
		JPEG:        opts.JPEG,
		JPEGQuality: opts.JPEGQuality,
	}); err != nil {
		return fmt.Errorf("成果物の書き出しに失敗したのだ: %w", err)
	}

	slog.Info("すべての生成工程が完了したのだ！", "output", opts.OutputDir)
	return nil
}
