package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// AspectRatio は「W:H」形式のアスペクト比を表す不変の値オブジェクトなのだ。
// シーン生成時に現在のグローバル設定から「コピー」されて保持されるため、
// 後からグローバル設定を変えても既存シーンには影響しないのだ。
type AspectRatio struct {
	Label string `json:"label"`
	Value string `json:"value"` // 例: "16:9"
}

// 動画生成がサポートするのは縦型と横型の二択だけなのだ。
const (
	VideoRatioLandscape = "16:9"
	VideoRatioPortrait  = "9:16"
)

// Dims は "W:H" 文字列を正の整数ペアに分解します。
// 不正な形式の場合はエラーを返します。
func (a AspectRatio) Dims() (int, int, error) {
	w, h, found := strings.Cut(a.Value, ":")
	if !found {
		return 0, 0, fmt.Errorf("アスペクト比 '%s' は W:H 形式ではありません", a.Value)
	}

	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil {
		return 0, 0, fmt.Errorf("アスペクト比 '%s' の幅が整数ではありません: %w", a.Value, err)
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return 0, 0, fmt.Errorf("アスペクト比 '%s' の高さが整数ではありません: %w", a.Value, err)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("アスペクト比 '%s' は正の整数である必要があります", a.Value)
	}
	return width, height, nil
}

// Ratio は幅/高さの比率を float64 で返します。
func (a AspectRatio) Ratio() (float64, error) {
	w, h, err := a.Dims()
	if err != nil {
		return 0, err
	}
	return float64(w) / float64(h), nil
}

// VideoRatio は保存されている比率を、動画フォーマットが許す二値
// （縦型 9:16 か横型 16:9）のどちらかに丸めるのだ。
// 縦型ちょうどの場合だけ縦型になり、それ以外はすべて横型にフォールバックするのだ。
func (a AspectRatio) VideoRatio() string {
	if a.Value == VideoRatioPortrait {
		return VideoRatioPortrait
	}
	return VideoRatioLandscape
}

// IsZero は未設定の AspectRatio かどうかを判定します。
func (a AspectRatio) IsZero() bool {
	return a.Label == "" && a.Value == ""
}

// String は "ラベル (W:H)" 形式の表示用文字列を返すのだ。
func (a AspectRatio) String() string {
	if a.Label == "" {
		return a.Value
	}
	return fmt.Sprintf("%s (%s)", a.Label, a.Value)
}
