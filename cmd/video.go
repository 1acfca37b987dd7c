package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-storyboard-kit/pkg/runner"

	"github.com/spf13/cobra"
)

var (
	videoSceneIndex int
	videoDownload   bool
)

// videoCmd は、シーン静止画を種に動画を生成するのだ。
var videoCmd = &cobra.Command{
	Use:   "video",
	Short: "シーンの静止画から動画を生成するのだ。",
	Long: `指定したシーンの静止画を種に、長時間実行オペレーションで動画を生成するのだ。
完了までポーリングで待ち、再生用の URI をプロジェクト文書に記録するのだよ。
--download を付けると動画ファイル本体も保存するのだ。`,
	Example: `  ap-storyboard-go video -p output/project.json --scene 0
  ap-storyboard-go video -p output/project.json --scene 0 --download`,
	RunE: videoCommand,
}

func init() {
	videoCmd.Flags().IntVar(&videoSceneIndex, "scene", -1, "動画を生成するシーンのインデックス（0始まり）なのだ。")
	videoCmd.Flags().BoolVar(&videoDownload, "download", false, "生成した動画ファイルも保存するのだ。")
}

func videoCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if opts.ProjectFile == "" {
		return fmt.Errorf("プロジェクト文書（--project）を指定してほしいのだ")
	}
	if videoSceneIndex < 0 {
		return fmt.Errorf("対象シーン（--scene）を指定してほしいのだ")
	}

	b, err := newSession(cmd)
	if err != nil {
		return err
	}

	slog.Info("動画生成を開始するのだ！", "scene", videoSceneIndex, "poll_interval", opts.PollInterval)

	if err := b.BuildSceneVideoRunner().Generate(ctx, videoSceneIndex); err != nil {
		return fmt.Errorf("動画生成に失敗したのだ: %w", err)
	}

	if videoDownload {
		if err := b.BuildVideoDownloadRunner().Run(ctx, videoSceneIndex, opts.OutputDir); err != nil {
			return fmt.Errorf("動画のダウンロードに失敗したのだ: %w", err)
		}
	}

	if err := b.BuildRenderRunner().Run(ctx, runner.RenderOptions{OutputDir: opts.OutputDir}); err != nil {
		return fmt.Errorf("プロジェクト文書の更新に失敗したのだ: %w", err)
	}

	slog.Info("動画生成が完了したのだ！", "scene", videoSceneIndex, "output", opts.OutputDir)
	return nil
}
