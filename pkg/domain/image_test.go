package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func TestImageData_JSON(t *testing.T) {
	t.Run("data URI 形式で往復変換できるのだ", func(t *testing.T) {
		img := &ImageData{MimeType: "image/png", Data: []byte{0x89, 0x50, 0x4e, 0x47}}

		data, err := json.Marshal(img)
		if err != nil {
			t.Fatalf("Marshal失敗なのだ: %v", err)
		}
		if !bytes.Contains(data, []byte("data:image/png;base64,")) {
			t.Errorf("data URI 形式になっていません: %s", data)
		}

		var decoded ImageData
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("Unmarshal失敗なのだ: %v", err)
		}
		if decoded.MimeType != img.MimeType || !bytes.Equal(decoded.Data, img.Data) {
			t.Errorf("変換前後でデータが一致しないのだ。期待: %+v, 実際: %+v", img, decoded)
		}
	})

	t.Run("nil ポインタは null として直列化されること", func(t *testing.T) {
		c := Character{Name: "A"}
		data, err := json.Marshal(c)
		if err != nil {
			t.Fatalf("Marshal失敗なのだ: %v", err)
		}
		if !bytes.Contains(data, []byte(`"image":null`)) {
			t.Errorf("image が null になっていません: %s", data)
		}
	})
}

func TestParseDataURI(t *testing.T) {
	t.Run("不正な入力は DecodeError になること", func(t *testing.T) {
		for _, uri := range []string{"", "http://example.com/a.png", "data:image/png;base64", "data:image/png;base64,@@@"} {
			_, err := ParseDataURI(uri)
			if err == nil {
				t.Errorf("値 %q でエラーが発生しませんでした", uri)
				continue
			}
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Errorf("値 %q: DecodeError ではありません: %T", uri, err)
			}
		}
	})
}
