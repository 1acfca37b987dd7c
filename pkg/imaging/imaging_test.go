package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
)

// makeSolidPNG は単色の検証用 PNG を生成するヘルパーなのだ。
func makeSolidPNG(t *testing.T, w, h int, c color.Color) *domain.ImageData {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("テスト画像の生成に失敗したのだ: %v", err)
	}
	return &domain.ImageData{MimeType: "image/png", Data: buf.Bytes()}
}

func decodeDims(t *testing.T, img *domain.ImageData) (int, int, image.Image) {
	t.Helper()
	decoded, _, err := image.Decode(bytes.NewReader(img.Data))
	if err != nil {
		t.Fatalf("出力画像の復号に失敗したのだ: %v", err)
	}
	b := decoded.Bounds()
	return b.Dx(), b.Dy(), decoded
}

func TestPad(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}

	t.Run("非正方形を 1:1 にパディングすると正方形になるのだ", func(t *testing.T) {
		src := makeSolidPNG(t, 200, 100, red)
		out, err := Pad(src, domain.AspectRatio{Value: "1:1"})
		if err != nil {
			t.Fatalf("Pad 失敗なのだ: %v", err)
		}
		w, h, decoded := decodeDims(t, out)
		if w != h {
			t.Errorf("正方形になっていません: %dx%d", w, h)
		}
		if w*h < 200*100 {
			t.Errorf("出力面積が入力より小さいのだ: %d < %d", w*h, 200*100)
		}

		// 中央は不透明なソースのピクセル、上端余白は半透明の背景のはず
		r, _, _, ca := decoded.At(w/2, h/2).RGBA()
		if r>>8 != 255 || ca>>8 != 255 {
			t.Errorf("中央がソース画像ではありません: R=%d A=%d", r>>8, ca>>8)
		}
		_, _, _, ma := decoded.At(w/2, 5).RGBA()
		if ma>>8 != uint32(padBackground.A) {
			t.Errorf("余白が半透明背景ではありません: A=%d", ma>>8)
		}
	})

	t.Run("縦長ソースは幅側が伸びること", func(t *testing.T) {
		src := makeSolidPNG(t, 90, 160, red)
		out, err := Pad(src, domain.AspectRatio{Value: "16:9"})
		if err != nil {
			t.Fatalf("Pad 失敗なのだ: %v", err)
		}
		w, h, _ := decodeDims(t, out)
		if h != 160 {
			t.Errorf("高さが変わってしまったのだ: %d", h)
		}
		if w*9 != h*16 {
			t.Errorf("目標比率になっていません: %dx%d", w, h)
		}
	})

	t.Run("復号できない入力は DecodeError になること", func(t *testing.T) {
		_, err := Pad(&domain.ImageData{MimeType: "image/png", Data: []byte("broken")}, domain.AspectRatio{Value: "1:1"})
		var decodeErr *domain.DecodeError
		if !errors.As(err, &decodeErr) {
			t.Errorf("DecodeError ではありません: %v", err)
		}
	})
}

func TestCrop(t *testing.T) {
	blue := color.NRGBA{B: 255, A: 255}

	t.Run("比率が一致している場合は元のバイト列をそのまま返すのだ", func(t *testing.T) {
		src := makeSolidPNG(t, 160, 90, blue)
		out, err := Crop(src, domain.AspectRatio{Value: "16:9"})
		if err != nil {
			t.Fatalf("Crop 失敗なのだ: %v", err)
		}
		if !bytes.Equal(out.Data, src.Data) {
			t.Error("no-op のはずが再エンコードされているのだ")
		}
	})

	t.Run("横長ソースを 1:1 にすると左右が切り落とされること", func(t *testing.T) {
		src := makeSolidPNG(t, 200, 100, blue)
		out, err := Crop(src, domain.AspectRatio{Value: "1:1"})
		if err != nil {
			t.Fatalf("Crop 失敗なのだ: %v", err)
		}
		w, h, _ := decodeDims(t, out)
		if w != 100 || h != 100 {
			t.Errorf("期待値 100x100, 実際の値 %dx%d", w, h)
		}
	})

	t.Run("縦長ソースを 16:9 にすると上下が切り落とされること", func(t *testing.T) {
		src := makeSolidPNG(t, 160, 200, blue)
		out, err := Crop(src, domain.AspectRatio{Value: "16:9"})
		if err != nil {
			t.Fatalf("Crop 失敗なのだ: %v", err)
		}
		w, h, _ := decodeDims(t, out)
		if w != 160 || h != 90 {
			t.Errorf("期待値 160x90, 実際の値 %dx%d", w, h)
		}
	})
}

func TestSniff(t *testing.T) {
	t.Run("PNG バイト列は image/png と判定されること", func(t *testing.T) {
		src := makeSolidPNG(t, 4, 4, color.NRGBA{A: 255})
		sniffed, err := Sniff(src.Data)
		if err != nil {
			t.Fatalf("Sniff 失敗なのだ: %v", err)
		}
		if sniffed.MimeType != "image/png" {
			t.Errorf("期待値 image/png, 実際の値 %s", sniffed.MimeType)
		}
		if !bytes.Equal(sniffed.Data, src.Data) {
			t.Error("元バイト列が保持されていません")
		}
	})

	t.Run("画像でないバイト列は DecodeError になること", func(t *testing.T) {
		_, err := Sniff([]byte("これは画像ではないのだ"))
		var decodeErr *domain.DecodeError
		if !errors.As(err, &decodeErr) {
			t.Errorf("DecodeError ではありません: %v", err)
		}
	})
}

func TestToJPEG(t *testing.T) {
	src := makeSolidPNG(t, 32, 32, color.NRGBA{G: 255, A: 255})
	out, err := ToJPEG(src, 80)
	if err != nil {
		t.Fatalf("ToJPEG 失敗なのだ: %v", err)
	}
	if out.MimeType != "image/jpeg" {
		t.Errorf("期待値 image/jpeg, 実際の値 %s", out.MimeType)
	}
	if _, _, err := image.Decode(bytes.NewReader(out.Data)); err != nil {
		t.Errorf("JPEG として復号できません: %v", err)
	}
}
