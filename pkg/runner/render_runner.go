package runner

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-remote-io/pkg/remoteio"

	"github.com/shouni/go-storyboard-kit/pkg/asset"
	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/imaging"
	"github.com/shouni/go-storyboard-kit/pkg/project"
	"github.com/shouni/go-storyboard-kit/pkg/store"
)

// RenderOptions は成果物書き出しの挙動を制御します。
type RenderOptions struct {
	// OutputDir は書き出し先ディレクトリ（ローカルパスまたは gs:// URL）
	OutputDir string
	// JPEG が真なら画像を JPEG に変換して書き出す（既定は PNG のまま）
	JPEG bool
	// JPEGQuality は JPEG 変換時の品質。0 以下なら既定値
	JPEGQuality int
}

// RenderRunner はストアの現在状態を成果物一式として書き出すのだ。
// ポートレートはグローバル比へのパディング、シーン画像はシーン固有比への
// クロップを通してから保存するのだ。
type RenderRunner struct {
	store  *store.Store
	writer remoteio.OutputWriter
}

// NewRenderRunner は、依存関係を注入して初期化します。
func NewRenderRunner(st *store.Store, writer remoteio.OutputWriter) *RenderRunner {
	return &RenderRunner{store: st, writer: writer}
}

// Run はプロジェクト文書と全画像を書き出します。
// 画像を持たないレコードは黙ってスキップします（未生成は異常ではありません）。
func (r *RenderRunner) Run(ctx context.Context, opts RenderOptions) error {
	snapshot := r.store.Snapshot()
	baseDir := asset.ResolveBaseURL(opts.OutputDir)

	if err := r.writeProject(ctx, baseDir, snapshot); err != nil {
		return err
	}
	if err := r.writeCharacters(ctx, baseDir, snapshot, opts); err != nil {
		return err
	}
	return r.writeScenes(ctx, baseDir, snapshot, opts)
}

func (r *RenderRunner) writeProject(ctx context.Context, baseDir string, snapshot domain.Project) error {
	data, err := project.Export(snapshot)
	if err != nil {
		return err
	}

	path, err := asset.ResolveOutputPath(baseDir, asset.DefaultProjectJSON)
	if err != nil {
		return fmt.Errorf("出力パスの解決に失敗しました: %w", err)
	}

	slog.InfoContext(ctx, "プロジェクト文書を保存しています", "path", path)
	if err := r.writer.Write(ctx, path, bytes.NewReader(data), "application/json"); err != nil {
		return fmt.Errorf("プロジェクト文書の保存に失敗しました (path: %s): %w", path, err)
	}
	return nil
}

func (r *RenderRunner) writeCharacters(ctx context.Context, baseDir string, snapshot domain.Project, opts RenderOptions) error {
	fileName := asset.DefaultCharacterFileName
	if opts.JPEG {
		fileName = asset.DefaultCharacterJPEGFileName
	}
	basePath, err := asset.ResolveOutputPath(baseDir, fileName)
	if err != nil {
		return fmt.Errorf("出力パスの解決に失敗しました: %w", err)
	}

	for i, char := range snapshot.Characters {
		if !char.HasImage() {
			continue
		}

		// ポートレートは引き伸ばさず、余白を足してグローバル比に合わせる
		img, err := imaging.Pad(char.Image, snapshot.AspectRatio)
		if err != nil {
			return fmt.Errorf("%s のパディングに失敗しました: %w", char.Name, err)
		}

		if err := r.writeImage(ctx, basePath, i+1, img, opts); err != nil {
			return fmt.Errorf("%s の保存に失敗しました: %w", char.Name, err)
		}
	}
	return nil
}

func (r *RenderRunner) writeScenes(ctx context.Context, baseDir string, snapshot domain.Project, opts RenderOptions) error {
	fileName := asset.DefaultSceneFileName
	if opts.JPEG {
		fileName = asset.DefaultSceneJPEGFileName
	}
	basePath, err := asset.ResolveOutputPath(baseDir, fileName)
	if err != nil {
		return fmt.Errorf("出力パスの解決に失敗しました: %w", err)
	}

	for i, scene := range snapshot.Scenes {
		if !scene.HasImage() {
			continue
		}

		// シーン画像は余白ではなく中央クロップで比率を揃える
		img, err := imaging.Crop(scene.Image, scene.AspectRatio)
		if err != nil {
			return fmt.Errorf("シーン %d のクロップに失敗しました: %w", scene.SceneNumber, err)
		}

		if err := r.writeImage(ctx, basePath, i+1, img, opts); err != nil {
			return fmt.Errorf("シーン %d の保存に失敗しました: %w", scene.SceneNumber, err)
		}
	}
	return nil
}

// writeImage は連番パスを生成して 1 枚書き出すのだ。
func (r *RenderRunner) writeImage(ctx context.Context, basePath string, index int, img *domain.ImageData, opts RenderOptions) error {
	if opts.JPEG {
		quality := opts.JPEGQuality
		if quality <= 0 {
			quality = imaging.DefaultJPEGQuality
		}
		converted, err := imaging.ToJPEG(img, quality)
		if err != nil {
			return err
		}
		img = converted
	}

	path, err := asset.GenerateIndexedPath(basePath, index)
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "画像を保存しています", "index", index, "path", path)
	return r.writer.Write(ctx, path, bytes.NewReader(img.Data), img.MimeType)
}
