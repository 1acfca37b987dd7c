package imaging

import (
	"bytes"
	"fmt"
	"image/jpeg"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
)

// DefaultJPEGQuality はダウンロード用 JPEG の既定品質なのだ。
const DefaultJPEGQuality = 80

// ToJPEG は画像を指定品質の JPEG に変換します。
// アルファチャンネルは JPEG が持てないため白地に合成されず黒になる点に注意が必要ですが、
// クロップ済みシーン画像（不透明）での利用を想定しています。
func ToJPEG(img *domain.ImageData, quality int) (*domain.ImageData, error) {
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	src, err := decode(img)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("JPEG エンコードに失敗しました: %w", err)
	}
	return &domain.ImageData{MimeType: "image/jpeg", Data: buf.Bytes()}, nil
}
