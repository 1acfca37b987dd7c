package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-storyboard-kit/pkg/runner"

	"github.com/spf13/cobra"
)

// renderCmd は、プロジェクト文書を読み込んで成果物一式を書き出し直すのだ。
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "プロジェクト文書から成果物一式を書き出すのだ。",
	Long: `保存済みのプロジェクト文書を読み込み、ポートレートはグローバル比への
パディング、シーン画像はシーン固有比へのクロップを通して書き出し直すのだ。
--jpeg で JPEG 変換もできるのだよ。ネットワークには一切触れないのだ。`,
	Example: `  ap-storyboard-go render -p output/project.json -o publish --jpeg --jpeg-quality 80`,
	RunE:    renderCommand,
}

func renderCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if opts.ProjectFile == "" {
		return fmt.Errorf("プロジェクト文書（--project）を指定してほしいのだ")
	}

	b, err := newSession(cmd)
	if err != nil {
		return err
	}

	if err := b.BuildRenderRunner().Run(ctx, runner.RenderOptions{
		OutputDir:   opts.OutputDir,
		JPEG:        opts.JPEG,
		JPEGQuality: opts.JPEGQuality,
	}); err != nil {
		return fmt.Errorf("成果物の書き出しに失敗したのだ: %w", err)
	}

	slog.Info("書き出しが完了したのだ！", "output", opts.OutputDir)
	return nil
}
