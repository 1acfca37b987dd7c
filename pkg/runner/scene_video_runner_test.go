package runner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/gateway"
	"github.com/shouni/go-storyboard-kit/pkg/store"
)

func storeWithSceneImage(t *testing.T) *store.Store {
	t.Helper()
	st := newTestStore()
	st.ReplaceBatch(sampleAnalysis(), st.AspectRatio())
	if err := st.UpdateScene(0, func(s domain.Scene) domain.Scene {
		s.Image = &domain.ImageData{MimeType: "image/png", Data: []byte("still")}
		return s
	}); err != nil {
		t.Fatalf("準備に失敗しました: %v", err)
	}
	return st
}

func newVideoRunner(st *store.Store, videos gateway.VideoGenerator, gate gateway.CredentialGate) *SceneVideoRunner {
	r := NewSceneVideoRunner(st, videos, gate, 10*time.Second)
	r.sleep = func(_ context.Context, _ time.Duration) error { return nil }
	return r
}

func TestSceneVideoRunner(t *testing.T) {
	ctx := context.Background()

	t.Run("静止画の無いシーンは PreconditionError になりネットワークに触れないこと", func(t *testing.T) {
		st := newTestStore()
		st.ReplaceBatch(sampleAnalysis(), st.AspectRatio())
		videos := &fakeVideoGen{startErr: errors.New("must not be called")}
		r := newVideoRunner(st, videos, &fakeGate{has: true, key: "KEY"})

		err := r.Generate(ctx, 0)
		var pe *domain.PreconditionError
		if !errors.As(err, &pe) {
			t.Fatalf("PreconditionError を期待しましたが: %v", err)
		}
		if videos.lastReq.Prompt != "" {
			t.Error("前提条件違反なのにリクエストが発行されています")
		}
	})

	t.Run("資格情報が未選択なら先に選択フローが走ること", func(t *testing.T) {
		st := storeWithSceneImage(t)
		gate := &fakeGate{has: false, key: "KEY"}
		videos := &fakeVideoGen{initial: &fakeVideoOp{done: true, uri: "https://dl.example/v1?alt=media"}}
		r := newVideoRunner(st, videos, gate)

		if err := r.Generate(ctx, 0); err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if gate.selects != 1 {
			t.Errorf("選択フローの回数: 期待値 1, 実際 %d", gate.selects)
		}
	})

	t.Run("完了までポーリングし URI にキーを合成して保存すること", func(t *testing.T) {
		st := storeWithSceneImage(t)
		videos := &fakeVideoGen{
			initial: &fakeVideoOp{done: false},
			sequence: []gateway.VideoOperation{
				&fakeVideoOp{done: false},
				&fakeVideoOp{done: true, uri: "https://dl.example/v1?alt=media"},
			},
		}
		r := newVideoRunner(st, videos, &fakeGate{has: true, key: "SECRET"})

		if err := r.Generate(ctx, 0); err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}

		if videos.polls != 2 {
			t.Errorf("ポーリング回数: 期待値 2, 実際 %d", videos.polls)
		}
		sc, _ := st.Scene(0)
		want := "https://dl.example/v1?alt=media&key=SECRET"
		if sc.VideoRef != want {
			t.Errorf("videoRef: 期待値 %s, 実際 %s", want, sc.VideoRef)
		}
		if sc.VideoLoading {
			t.Error("完了後も videoLoading が立ったままです")
		}
	})

	t.Run("アスペクト比は縦型以外すべて横型に丸められること", func(t *testing.T) {
		st := storeWithSceneImage(t)
		_ = st.UpdateScene(0, func(s domain.Scene) domain.Scene {
			s.AspectRatio = domain.AspectRatio{Label: "シネマ", Value: "21:9"}
			return s
		})
		videos := &fakeVideoGen{initial: &fakeVideoOp{done: true, uri: "https://dl.example/v1?x=1"}}
		r := newVideoRunner(st, videos, &fakeGate{has: true, key: "K"})

		if err := r.Generate(ctx, 0); err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if videos.lastReq.AspectRatio != domain.VideoRatioLandscape {
			t.Errorf("21:9 が横型に丸められていません: %s", videos.lastReq.AspectRatio)
		}
	})

	t.Run("資格情報エラーは CredentialError になり再選択が走ること", func(t *testing.T) {
		st := storeWithSceneImage(t)
		gate := &fakeGate{has: true, key: "K"}
		videos := &fakeVideoGen{startErr: errors.New("Requested entity was not found.")}
		r := newVideoRunner(st, videos, gate)

		err := r.Generate(ctx, 0)
		var ce *domain.CredentialError
		if !errors.As(err, &ce) {
			t.Fatalf("CredentialError を期待しましたが: %v", err)
		}
		if gate.selects != 1 {
			t.Errorf("再選択フローの回数: 期待値 1, 実際 %d", gate.selects)
		}
		sc, _ := st.Scene(0)
		if sc.VideoLoading {
			t.Error("失敗後も videoLoading が立ったままです")
		}
	})

	t.Run("その他の失敗はシーンスコープの GenerationError になること", func(t *testing.T) {
		st := storeWithSceneImage(t)
		videos := &fakeVideoGen{startErr: errors.New("resource exhausted")}
		r := newVideoRunner(st, videos, &fakeGate{has: true, key: "K"})

		err := r.Generate(ctx, 0)
		var ge *domain.GenerationError
		if !errors.As(err, &ge) {
			t.Fatalf("GenerationError を期待しましたが: %v", err)
		}
		if ge.Kind != "video" {
			t.Errorf("エラー種別: 期待値 video, 実際 %s", ge.Kind)
		}
		sc, _ := st.Scene(0)
		if sc.VideoRef != "" {
			t.Error("失敗したのに videoRef が設定されています")
		}
	})

	t.Run("失敗後に同じシーンへ再実行できること", func(t *testing.T) {
		st := storeWithSceneImage(t)
		gate := &fakeGate{has: true, key: "K"}
		failing := &fakeVideoGen{startErr: errors.New("transient")}
		r := newVideoRunner(st, failing, gate)
		if err := r.Generate(ctx, 0); err == nil {
			t.Fatal("失敗を期待しましたが成功しました")
		}

		succeeding := &fakeVideoGen{initial: &fakeVideoOp{done: true, uri: "https://dl.example/v2?x=1"}}
		r2 := newVideoRunner(st, succeeding, gate)
		if err := r2.Generate(ctx, 0); err != nil {
			t.Fatalf("再実行が失敗しました: %v", err)
		}
		sc, _ := st.Scene(0)
		if sc.VideoRef == "" {
			t.Error("再実行の結果が保存されていません")
		}
	})
}
