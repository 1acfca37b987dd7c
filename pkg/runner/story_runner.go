package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/shouni/go-web-exact/v2/pkg/extract"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/prompts"
	"github.com/shouni/go-storyboard-kit/pkg/store"
)

// StoryRunner は物語テキストそのものの調達を担うのだ。
// 執筆（アイデアから AI に書かせる）、Web ページからの抽出、
// ローカル/GCS ファイルの読み込みの 3 経路があるのだ。
type StoryRunner struct {
	store     *store.Store
	aiClient  gemini.GenerativeModel
	model     string
	extractor *extract.Extractor
	reader    remoteio.InputReader
}

// NewStoryRunner は、依存関係を注入して初期化します。
func NewStoryRunner(
	st *store.Store,
	ai gemini.GenerativeModel,
	model string,
	ext *extract.Extractor,
	r remoteio.InputReader,
) *StoryRunner {
	return &StoryRunner{
		store:     st,
		aiClient:  ai,
		model:     model,
		extractor: ext,
		reader:    r,
	}
}

// Write はアイデアから物語を執筆し、ストアに設定して本文を返します。
// 文字数は目安であり、モデルの裁量に任せます。
func (r *StoryRunner) Write(ctx context.Context, req prompts.StoryRequest) (string, error) {
	if strings.TrimSpace(req.Idea) == "" {
		return "", &domain.ValidationError{Reason: "物語のアイデアが空です"}
	}

	instruction, err := prompts.StoryInstruction(req)
	if err != nil {
		return "", err
	}

	slog.InfoContext(ctx, "物語の執筆を開始します",
		"genre", req.Genre.ID,
		"writing_style", req.WritingStyle.ID,
		"length", req.Length,
	)

	resp, err := r.aiClient.GenerateContent(ctx, instruction, r.model)
	if err != nil {
		return "", fmt.Errorf("物語の執筆に失敗しました: %w", err)
	}

	story := strings.TrimSpace(resp.Text)
	if story == "" {
		return "", fmt.Errorf("モデルが空の物語を返しました")
	}

	r.setStory(story)
	return story, nil
}

// LoadFromURL は Web ページから本文を抽出し、物語テキストとして設定します。
func (r *StoryRunner) LoadFromURL(ctx context.Context, url string) (string, error) {
	text, _, err := r.extractor.FetchAndExtractText(ctx, url)
	if err != nil {
		return "", fmt.Errorf("本文の抽出に失敗しました (url: %s): %w", url, err)
	}
	r.setStory(text)
	return text, nil
}

// LoadFromFile はローカルまたは GCS のファイルを物語テキストとして読み込みます。
func (r *StoryRunner) LoadFromFile(ctx context.Context, path string) (string, error) {
	rc, err := r.reader.Open(ctx, path)
	if err != nil {
		return "", fmt.Errorf("入力ファイルを開けませんでした (path: %s): %w", path, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("入力ファイルの読み込みに失敗しました: %w", err)
	}

	text := string(data)
	r.setStory(text)
	return text, nil
}

// setStory は既存のメモ・シーン数設定を保ったまま本文だけ差し替えるのだ。
func (r *StoryRunner) setStory(text string) {
	snap := r.store.Snapshot()
	r.store.SetStory(text, snap.Notes, snap.NumScenes)
}
