package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-storyboard-kit/pkg/asset"
	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/prompts"

	"github.com/spf13/cobra"
)

var (
	storyGenre   string
	storyWriting string
	storyLength  int
)

// storyCmd は、アイデアから物語本文そのものを AI に執筆させるのだ。
var storyCmd = &cobra.Command{
	Use:   "story [アイデア]",
	Short: "アイデアから物語本文を執筆するのだ。",
	Long: `短いアイデアを渡すと、指定したジャンルと文体で起承転結のある物語を執筆するのだ。
生成された本文は出力ディレクトリに story.txt として保存され、そのまま
generate / analyze コマンドの入力に使えるのだよ。`,
	Example: `  ap-storyboard-go story "灯台守とクジラの友情" --genre fantasy --writing-style poetic`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    storyCommand,
}

func init() {
	storyCmd.Flags().StringVar(&storyGenre, "genre", domain.StoryGenres[0].ID, "物語のジャンルIDなのだ。")
	storyCmd.Flags().StringVar(&storyWriting, "writing-style", domain.WritingStyles[0].ID, "文体のIDなのだ。")
	storyCmd.Flags().IntVar(&storyLength, "length", 1500, "物語のおおよその文字数なのだ。")
}

func storyCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	b, err := newSession(cmd)
	if err != nil {
		return err
	}
	storyRunner, err := b.BuildStoryRunner()
	if err != nil {
		return err
	}

	idea := strings.Join(args, " ")
	slog.Info("物語の執筆を開始するのだ！", "genre", storyGenre, "writing_style", storyWriting)

	text, err := storyRunner.Write(ctx, prompts.StoryRequest{
		Idea:         idea,
		Genre:        domain.FindStoryGenre(storyGenre),
		WritingStyle: domain.FindWritingStyle(storyWriting),
		Length:       storyLength,
	})
	if err != nil {
		return fmt.Errorf("物語の執筆中にエラーが発生したのだ: %w", err)
	}

	path, err := asset.ResolveOutputPath(asset.ResolveBaseURL(opts.OutputDir), "story.txt")
	if err != nil {
		return fmt.Errorf("出力パスの解決に失敗したのだ: %w", err)
	}
	if err := b.Writer().Write(ctx, path, strings.NewReader(text), "text/plain; charset=utf-8"); err != nil {
		return fmt.Errorf("物語の保存に失敗したのだ: %w", err)
	}

	slog.Info("物語の執筆が完了したのだ！", "path", path, "chars", len([]rune(text)))
	fmt.Println(text)
	return nil
}
