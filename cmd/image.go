package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/shouni/go-storyboard-kit/pkg/runner"

	"github.com/spf13/cobra"
)

var (
	imageSceneIndex     int
	imageCharacterIndex int
	imageUploadFile     string
	imageAllScenes      bool
)

// imageCmd は、プロジェクト文書を起点に個別の画像を再生成・差し替えするのだ。
var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "シーン画像やポートレートを個別に再生成するのだ。",
	Long: `保存済みのプロジェクト文書を読み込み、指定した 1 件だけを対象に画像を
作り直すのだ。兄弟のレコードには一切触れないのだよ。
--upload を使うと、手持ちの画像ファイルでポートレートを差し替えられるのだ。`,
	Example: `  ap-storyboard-go image -p output/project.json --scene 2
  ap-storyboard-go image -p output/project.json --character 0 --upload face.png
  ap-storyboard-go image -p output/project.json --all-scenes`,
	RunE: imageCommand,
}

func init() {
	imageCmd.Flags().IntVar(&imageSceneIndex, "scene", -1, "再生成するシーンのインデックス（0始まり）なのだ。")
	imageCmd.Flags().IntVar(&imageCharacterIndex, "character", -1, "再生成するキャラクターのインデックス（0始まり）なのだ。")
	imageCmd.Flags().StringVar(&imageUploadFile, "upload", "", "ポートレートを差し替える画像ファイルのパスなのだ。")
	imageCmd.Flags().BoolVar(&imageAllScenes, "all-scenes", false, "全シーンの画像をまとめて生成するのだ。")
}

func imageCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if opts.ProjectFile == "" {
		return fmt.Errorf("プロジェクト文書（--project）を指定してほしいのだ")
	}

	b, err := newSession(cmd)
	if err != nil {
		return err
	}

	switch {
	case imageAllScenes:
		if err := b.BuildSceneImageRunner().GenerateAll(ctx); err != nil {
			slog.Warn("一部のシーン画像生成に失敗したのだ", "error", err)
		}

	case imageSceneIndex >= 0:
		if err := b.BuildSceneImageRunner().Generate(ctx, imageSceneIndex); err != nil {
			return fmt.Errorf("シーン画像の生成に失敗したのだ: %w", err)
		}

	case imageCharacterIndex >= 0 && imageUploadFile != "":
		data, err := os.ReadFile(imageUploadFile)
		if err != nil {
			return fmt.Errorf("アップロード画像を読み込めないのだ: %w", err)
		}
		if err := b.BuildCharacterImageRunner().Upload(imageCharacterIndex, data); err != nil {
			return fmt.Errorf("ポートレートの差し替えに失敗したのだ: %w", err)
		}

	case imageCharacterIndex >= 0:
		if err := b.BuildCharacterImageRunner().Regenerate(ctx, imageCharacterIndex); err != nil {
			return fmt.Errorf("ポートレートの再生成に失敗したのだ: %w", err)
		}

	default:
		return fmt.Errorf("対象（--scene / --character / --all-scenes）を指定してほしいのだ")
	}

	if err := b.BuildRenderRunner().Run(ctx, runner.RenderOptions{
		OutputDir:   opts.OutputDir,
		JPEG:        opts.JPEG,
		JPEGQuality: opts.JPEGQuality,
	}); err != nil {
		return fmt.Errorf("成果物の書き出しに失敗したのだ: %w", err)
	}

	slog.Info("画像の更新が完了したのだ！", "output", opts.OutputDir)
	return nil
}
