package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/shouni/go-remote-io/pkg/remoteio"

	"github.com/shouni/go-storyboard-kit/pkg/project"
	"github.com/shouni/go-storyboard-kit/pkg/store"
)

// ImportRunner はプロジェクト文書の読み込みとストアの復元を担います。
// インポートは全か無かで、検証に失敗した場合ストアは一切変更されません。
type ImportRunner struct {
	store  *store.Store
	reader remoteio.InputReader
}

// NewImportRunner は、依存関係を注入して初期化します。
func NewImportRunner(st *store.Store, reader remoteio.InputReader) *ImportRunner {
	return &ImportRunner{store: st, reader: reader}
}

// Run はローカルまたは GCS のプロジェクト文書を読み込んで復元するのだ。
func (r *ImportRunner) Run(ctx context.Context, path string) error {
	rc, err := r.reader.Open(ctx, path)
	if err != nil {
		return fmt.Errorf("プロジェクト文書を開けませんでした (path: %s): %w", path, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return fmt.Errorf("プロジェクト文書の読み込みに失敗しました: %w", err)
	}

	doc, err := project.Import(data)
	if err != nil {
		return err
	}

	r.store.Restore(doc)

	slog.InfoContext(ctx, "プロジェクトを復元しました",
		"characters", len(doc.Characters),
		"scenes", len(doc.Scenes),
	)
	return nil
}
