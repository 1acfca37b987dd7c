// Package imaging は表示・エクスポート用の純粋な画像変換を提供するのだ。
// パディング（キャラクター用、切り捨てない）とクロップ（シーン用、枠いっぱい）
// の 2 種類で、どちらも保存済みのソース画像そのものは変更しないのだ。
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	_ "image/gif"
	_ "image/jpeg"

	"golang.org/x/image/draw"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
)

// padBackground は元テーマの base-300 相当の半透明グレーなのだ。
var padBackground = color.NRGBA{R: 75, G: 85, B: 99, A: 178}

// Sniff はアップロードされた任意の画像バイト列を検証し、正準形式
// （元バイト列 + 判定された MIME タイプ）に変換します。
// 復号できない入力は DecodeError になります。
func Sniff(data []byte) (*domain.ImageData, error) {
	_, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &domain.DecodeError{Reason: "画像として認識できません", Err: err}
	}
	return &domain.ImageData{MimeType: "image/" + format, Data: data}, nil
}

// Pad はソース画像のピクセルを一切失わずに、指定比率のキャンバスへ
// 中央配置で「拡張」します。不足している側の寸法だけを伸ばし、
// 余白は半透明のニュートラルグレーで塗ります。決定的かつ無状態です。
func Pad(img *domain.ImageData, ratio domain.AspectRatio) (*domain.ImageData, error) {
	src, err := decode(img)
	if err != nil {
		return nil, err
	}
	rw, rh, err := ratio.Dims()
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	// 伸ばすのはどちらか一方だけ。縮めることは決してしない
	canvasW, canvasH := w, h
	if w*rh > h*rw {
		// ソースの方が横長: 幅に合わせて高さを伸ばす
		canvasH = w * rh / rw
	} else {
		// ソースの方が縦長（または一致）: 高さに合わせて幅を伸ばす
		canvasW = h * rw / rh
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, canvasW, canvasH))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(padBackground), image.Point{}, draw.Src)

	offset := image.Pt((canvasW-w)/2, (canvasH-h)/2)
	draw.Draw(canvas, image.Rectangle{Min: offset, Max: offset.Add(image.Pt(w, h))}, src, bounds.Min, draw.Over)

	return encodePNG(canvas)
}

// Crop はソースから指定比率の最大中央矩形を切り出します。
// 比率がすでに一致している場合は再エンコードを強制せず、元のバイト列を
// そのまま返すのだ（no-op）。
func Crop(img *domain.ImageData, ratio domain.AspectRatio) (*domain.ImageData, error) {
	src, err := decode(img)
	if err != nil {
		return nil, err
	}
	rw, rh, err := ratio.Dims()
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w*rh == h*rw {
		return img, nil
	}

	cropW, cropH := w, h
	if w*rh > h*rw {
		// ソースの方が横長: 左右を切り落とす
		cropW = h * rw / rh
	} else {
		// ソースの方が縦長: 上下を切り落とす
		cropH = w * rh / rw
	}

	origin := image.Pt(bounds.Min.X+(w-cropW)/2, bounds.Min.Y+(h-cropH)/2)
	rect := image.Rect(0, 0, cropW, cropH)
	cropped := image.NewNRGBA(rect)
	draw.Draw(cropped, rect, src, origin, draw.Src)

	return encodePNG(cropped)
}

func decode(img *domain.ImageData) (image.Image, error) {
	if img == nil || len(img.Data) == 0 {
		return nil, &domain.DecodeError{Reason: "画像データが空です"}
	}
	src, _, err := image.Decode(bytes.NewReader(img.Data))
	if err != nil {
		return nil, &domain.DecodeError{Reason: "画像の復号に失敗しました", Err: err}
	}
	return src, nil
}

func encodePNG(img image.Image) (*domain.ImageData, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("PNG エンコードに失敗しました: %w", err)
	}
	return &domain.ImageData{MimeType: "image/png", Data: buf.Bytes()}, nil
}
