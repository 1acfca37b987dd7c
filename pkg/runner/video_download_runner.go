package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/shouni/go-remote-io/pkg/remoteio"

	"github.com/shouni/go-storyboard-kit/pkg/asset"
	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/store"
)

// VideoDownloadRunner は生成済み動画の取得と保存を担うのだ。
// videoRef は資格情報を合成済みの URI なので、そのまま GET できるのだ。
type VideoDownloadRunner struct {
	store      *store.Store
	httpClient *http.Client
	writer     remoteio.OutputWriter
}

// NewVideoDownloadRunner は、依存関係を注入して初期化します。
func NewVideoDownloadRunner(st *store.Store, httpClient *http.Client, writer remoteio.OutputWriter) *VideoDownloadRunner {
	return &VideoDownloadRunner{
		store:      st,
		httpClient: httpClient,
		writer:     writer,
	}
}

// Run は 1 シーンの動画をダウンロードして保存します。
// 動画が未生成のシーンには PreconditionError を返します。
func (r *VideoDownloadRunner) Run(ctx context.Context, index int, outputDir string) error {
	scene, err := r.store.Scene(index)
	if err != nil {
		return err
	}
	if !scene.HasVideo() {
		return &domain.PreconditionError{Reason: "このシーンにはまだ動画がありません。先に動画を生成してください"}
	}

	basePath, err := asset.ResolveOutputPath(asset.ResolveBaseURL(outputDir), asset.DefaultVideoFileName)
	if err != nil {
		return fmt.Errorf("出力パスの解決に失敗しました: %w", err)
	}
	path, err := asset.GenerateIndexedPath(basePath, index+1)
	if err != nil {
		return fmt.Errorf("出力パスの生成に失敗しました: %w", err)
	}

	slog.InfoContext(ctx, "動画をダウンロードしています", "scene", scene.SceneNumber)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, scene.VideoRef, nil)
	if err != nil {
		return fmt.Errorf("ダウンロードリクエストの作成に失敗しました: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("動画のダウンロードに失敗しました: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("動画のダウンロードに失敗しました: HTTP %d: %s", resp.StatusCode, string(body))
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "video/mp4"
	}

	if err := r.writer.Write(ctx, path, resp.Body, contentType); err != nil {
		return fmt.Errorf("動画の保存に失敗しました (path: %s): %w", path, err)
	}

	slog.InfoContext(ctx, "動画を保存しました", "scene", scene.SceneNumber, "path", path)
	return nil
}
