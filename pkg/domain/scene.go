package domain

// Scene は 1 シーン分の生成状態を保持します。
// 不変条件: Image が nil のとき VideoRef は必ず空文字列です
// （動画は常に静止画から派生するため）。静止画を消すときは動画参照も一緒に消えます。
type Scene struct {
	SceneNumber  int         `json:"sceneNumber"` // 解析時に割り当てられる安定番号。リスト位置と一致するとは限らない
	Prompt       string      `json:"prompt"`
	Image        *ImageData  `json:"image"`
	VideoRef     string      `json:"videoUri,omitempty"` // 資格情報込みで単独フェッチ可能な URI
	AspectRatio  AspectRatio `json:"aspectRatio"`        // 作成時点のグローバル比率のコピー。以後は独立
	ImageLoading bool        `json:"isLoading"`
	VideoLoading bool        `json:"isVideoLoading"`
}

// HasImage は静止画が確定済みかどうかを返すのだ。
func (s Scene) HasImage() bool {
	return s.Image != nil
}

// HasVideo は動画参照が確定済みかどうかを返すのだ。
func (s Scene) HasVideo() bool {
	return s.VideoRef != ""
}

// ClearImage は静止画と動画参照を一緒にクリアした新しい Scene を返します。
// 片方だけ消すことは不変条件が許さないのだ。
func (s Scene) ClearImage() Scene {
	s.Image = nil
	s.VideoRef = ""
	return s
}
