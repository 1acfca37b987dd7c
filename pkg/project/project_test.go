package project

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
)

func sampleProject() domain.Project {
	return domain.Project{
		StoryText:   "昔々あるところに、小さなロボットがいました。",
		Notes:       "主人公は臆病な性格",
		NumScenes:   2,
		StoryStyle:  domain.StoryStyles[0],
		AspectRatio: domain.AspectRatios[2],
		Characters: []domain.Character{
			{
				Name:        "ロボ",
				Description: "丸い目の小型ロボット",
				Image:       &domain.ImageData{MimeType: "image/png", Data: []byte{0x89, 0x50}},
				Loading:     true,
			},
		},
		Scenes: []domain.Scene{
			{
				SceneNumber:  1,
				Prompt:       "A small robot wakes up in a junkyard",
				AspectRatio:  domain.AspectRatios[2],
				ImageLoading: true,
				VideoLoading: true,
			},
			{
				SceneNumber: 2,
				Prompt:      "The robot finds a flower",
				AspectRatio: domain.AspectRatios[1],
			},
		},
	}
}

func TestExport(t *testing.T) {
	t.Run("ロード中フラグを落として書き出すこと", func(t *testing.T) {
		data, err := Export(sampleProject())
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}

		var doc map[string]any
		if err := json.Unmarshal(data, &doc); err != nil {
			t.Fatalf("出力が JSON として読めません: %v", err)
		}

		chars := doc["characters"].([]any)
		if chars[0].(map[string]any)["isLoading"].(bool) {
			t.Error("キャラクターの isLoading が落ちていません")
		}
		scenes := doc["scenes"].([]any)
		first := scenes[0].(map[string]any)
		if first["isLoading"].(bool) || first["isVideoLoading"].(bool) {
			t.Error("シーンのロード中フラグが落ちていません")
		}
	})

	t.Run("画像が data URI として埋め込まれること", func(t *testing.T) {
		data, err := Export(sampleProject())
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if !strings.Contains(string(data), `"data:image/png;base64,`) {
			t.Error("data URI 形式の画像が見つかりません")
		}
	})

	t.Run("元のスナップショットを書き換えないこと", func(t *testing.T) {
		p := sampleProject()
		if _, err := Export(p); err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if !p.Characters[0].Loading {
			t.Error("呼び出し元のスナップショットが書き換えられています")
		}
	})
}

func TestImport(t *testing.T) {
	t.Run("エクスポートした文書を読み戻せること", func(t *testing.T) {
		data, err := Export(sampleProject())
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}

		got, err := Import(data)
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if got.StoryText != sampleProject().StoryText {
			t.Errorf("storyText が一致しません: %s", got.StoryText)
		}
		if got.NumScenes != 2 || len(got.Scenes) != 2 {
			t.Errorf("シーン構成が一致しません: numScenes=%d scenes=%d", got.NumScenes, len(got.Scenes))
		}
		if got.Characters[0].Image == nil || got.Characters[0].Image.MimeType != "image/png" {
			t.Error("キャラクター画像が復元されていません")
		}
	})

	t.Run("storyText 欠落は ImportError になること", func(t *testing.T) {
		_, err := Import([]byte(`{"numScenes": 3}`))
		var ie *domain.ImportError
		if !errors.As(err, &ie) {
			t.Fatalf("ImportError を期待しましたが: %v", err)
		}
	})

	t.Run("numScenes 欠落は ImportError になること", func(t *testing.T) {
		_, err := Import([]byte(`{"storyText": "物語"}`))
		var ie *domain.ImportError
		if !errors.As(err, &ie) {
			t.Fatalf("ImportError を期待しましたが: %v", err)
		}
	})

	t.Run("壊れた JSON は ImportError になること", func(t *testing.T) {
		_, err := Import([]byte(`{storyText`))
		var ie *domain.ImportError
		if !errors.As(err, &ie) {
			t.Fatalf("ImportError を期待しましたが: %v", err)
		}
	})

	t.Run("欠落フィールドはデフォルトで補われること", func(t *testing.T) {
		raw := `{
			"storyText": "物語",
			"numScenes": 1,
			"scenes": [{"sceneNumber": 1, "prompt": "p", "isVideoLoading": true}]
		}`
		got, err := Import([]byte(raw))
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if got.StoryStyle.ID != domain.StoryStyles[0].ID {
			t.Errorf("画風のデフォルトが適用されていません: %+v", got.StoryStyle)
		}
		if got.AspectRatio != domain.AspectRatios[0] {
			t.Errorf("アスペクト比のデフォルトが適用されていません: %+v", got.AspectRatio)
		}
		if got.Scenes[0].AspectRatio != domain.AspectRatios[0] {
			t.Errorf("シーンのアスペクト比フォールバックが適用されていません: %+v", got.Scenes[0].AspectRatio)
		}
		if got.Scenes[0].VideoLoading {
			t.Error("動画ロード中フラグがリセットされていません")
		}
	})

	t.Run("シーンのアスペクト比は文書全体の設定を継承すること", func(t *testing.T) {
		raw := `{
			"storyText": "物語",
			"numScenes": 1,
			"aspectRatio": {"label": "縦型", "value": "9:16"},
			"scenes": [{"sceneNumber": 1, "prompt": "p"}]
		}`
		got, err := Import([]byte(raw))
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if got.Scenes[0].AspectRatio.Value != "9:16" {
			t.Errorf("文書全体のアスペクト比が継承されていません: %+v", got.Scenes[0].AspectRatio)
		}
	})
}
