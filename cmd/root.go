package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/shouni/go-storyboard-kit/internal/config"
	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/store"
	"github.com/shouni/go-storyboard-kit/pkg/workflow"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"
)

var opts config.GenerateOptions

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- ソース入力関連 ---
	rootCmd.PersistentFlags().StringVarP(&opts.StoryURL, "story-url", "u", "", "Webページから物語本文を取得するためのURLなのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.StoryFile, "story-file", "f", "", "物語テキストファイルのパス（'-'で標準入力なのだ）。")
	rootCmd.PersistentFlags().StringVarP(&opts.ProjectFile, "project", "p", "", "読み込むプロジェクト文書（project.json）のパスなのだ。")

	// --- 生成結果の出力設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputDir, "output-dir", "o", config.DefaultOutputDir, "成果物の保存先ディレクトリ（ローカル or gs://...）なのだ。")
	rootCmd.PersistentFlags().BoolVar(&opts.JPEG, "jpeg", false, "画像を JPEG に変換して保存するのだ。")
	rootCmd.PersistentFlags().IntVar(&opts.JPEGQuality, "jpeg-quality", 0, "JPEG 変換時の品質（1-100）なのだ。")

	// --- 生成パラメータ ---
	rootCmd.PersistentFlags().IntVarP(&opts.NumScenes, "scenes", "n", config.DefaultNumScenes, "分割するシーン数（目安）なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.StyleID, "style", domain.StoryStyles[0].ID, "画風のID（pixar, ghibli, anime など）なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.AspectRatio, "ratio", domain.AspectRatios[0].Value, "画像のアスペクト比（1:1, 9:16, 16:9, 21:9）なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.Notes, "notes", "", "解析に添える補足メモなのだ。")

	// --- 実行制御 ---
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "Webリクエストのタイムアウトなのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.PollInterval, "poll-interval", config.DefaultPollInterval, "動画生成のポーリング間隔なのだ。")
}

// preRunAppE は、コマンド実行前に環境変数などの必須チェックを行うのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須なのだ")
	}
	return nil
}

// newSession は設定・ストア・Builder を組み立て、--project 指定があれば
// プロジェクト文書を復元した状態で返すのだ。
func newSession(cmd *cobra.Command) (*workflow.Builder, error) {
	ctx := cmd.Context()

	cfg := config.LoadConfig()
	cfg.Options = opts

	st := store.New(domain.FindStoryStyle(opts.StyleID), domain.FindAspectRatio(opts.AspectRatio))

	b, err := workflow.NewBuilder(ctx, workflow.BuilderArgs{
		Config:    cfg,
		Store:     st,
		PromptIn:  os.Stdin,
		PromptOut: os.Stderr,
	})
	if err != nil {
		return nil, err
	}

	if opts.ProjectFile != "" {
		if err := b.BuildImportRunner().Run(ctx, opts.ProjectFile); err != nil {
			return nil, err
		}
		// フラグで明示された設定は文書の値より優先する
		if cmd.Flags().Changed("style") {
			st.SetStoryStyle(domain.FindStoryStyle(opts.StyleID))
		}
		if cmd.Flags().Changed("ratio") {
			st.SetAspectRatio(domain.FindAspectRatio(opts.AspectRatio))
		}
	}

	return b, nil
}

// loadStoryText は --story-url / --story-file / 標準入力のいずれかから
// 物語本文をストアに読み込むのだ。
func loadStoryText(cmd *cobra.Command, b *workflow.Builder) error {
	ctx := cmd.Context()

	storyRunner, err := b.BuildStoryRunner()
	if err != nil {
		return err
	}

	switch {
	case opts.StoryURL != "":
		_, err = storyRunner.LoadFromURL(ctx, opts.StoryURL)
	case opts.StoryFile != "" && opts.StoryFile != "-":
		_, err = storyRunner.LoadFromFile(ctx, opts.StoryFile)
	case opts.StoryFile == "-" || isStdin():
		var data []byte
		data, err = io.ReadAll(os.Stdin)
		if err == nil {
			snap := b.Store().Snapshot()
			b.Store().SetStory(string(data), snap.Notes, snap.NumScenes)
		}
	default:
		// --project からの復元で本文が既にある場合はそのまま使う
		if b.Store().Snapshot().StoryText == "" {
			return fmt.Errorf("ソース（--story-url / --story-file / --project）を指定してほしいのだ")
		}
		return nil
	}
	if err != nil {
		return err
	}

	snap := b.Store().Snapshot()
	b.Store().SetStory(snap.StoryText, opts.Notes, opts.NumScenes)
	return nil
}

func isStdin() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	clibase.Execute(
		"ap-storyboard-go",
		addAppFlags,
		preRunAppE,
		generateCmd,
		analyzeCmd,
		storyCmd,
		imageCmd,
		videoCmd,
		renderCmd,
	)
}
