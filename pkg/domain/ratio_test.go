package domain

import "testing"

func TestAspectRatio_Dims(t *testing.T) {
	t.Run("正常な W:H 形式を分解できるのだ", func(t *testing.T) {
		r := AspectRatio{Label: "横型", Value: "16:9"}
		w, h, err := r.Dims()
		if err != nil {
			t.Fatalf("エラーが発生しました: %v", err)
		}
		if w != 16 || h != 9 {
			t.Errorf("期待値 16:9, 実際の値 %d:%d", w, h)
		}
	})

	t.Run("不正な形式はエラーになること", func(t *testing.T) {
		for _, value := range []string{"", "16x9", "16:", ":9", "0:9", "-1:2", "a:b"} {
			r := AspectRatio{Value: value}
			if _, _, err := r.Dims(); err == nil {
				t.Errorf("値 %q でエラーが発生しませんでした", value)
			}
		}
	})
}

func TestAspectRatio_VideoRatio(t *testing.T) {
	// 動画は縦型か横型の二択。縦型ちょうど以外はすべて横型に丸める
	cases := []struct {
		value string
		want  string
	}{
		{"9:16", VideoRatioPortrait},
		{"16:9", VideoRatioLandscape},
		{"1:1", VideoRatioLandscape},
		{"21:9", VideoRatioLandscape},
		{"3:4", VideoRatioLandscape},
	}
	for _, c := range cases {
		got := AspectRatio{Value: c.value}.VideoRatio()
		if got != c.want {
			t.Errorf("%s: 期待値 %s, 実際の値 %s", c.value, c.want, got)
		}
	}
}

func TestFindAspectRatio(t *testing.T) {
	t.Run("カタログにある値はそのまま返ること", func(t *testing.T) {
		r := FindAspectRatio("9:16")
		if r.Value != "9:16" {
			t.Errorf("期待値 9:16, 実際の値 %s", r.Value)
		}
	})

	t.Run("未知の値はデフォルト（先頭）にフォールバックすること", func(t *testing.T) {
		r := FindAspectRatio("5:4")
		if r.Value != AspectRatios[0].Value {
			t.Errorf("期待値 %s, 実際の値 %s", AspectRatios[0].Value, r.Value)
		}
	})
}
