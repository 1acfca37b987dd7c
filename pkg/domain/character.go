package domain

import "fmt"

// Character は物語に登場するキャラクターの視覚定義を保持します。
// 同一性は順序付きリスト内の位置で決まり、解析が完了したセッション内では安定です。
type Character struct {
	Name        string     `json:"name"`
	Description string     `json:"description"` // ユーザー編集可能な自由記述。編集しても画像は無効化されない
	Image       *ImageData `json:"image"`
	Loading     bool       `json:"isLoading"`
}

// HasImage はポートレートが確定済みかどうかを返すのだ。
func (c Character) HasImage() bool {
	return c.Image != nil
}

// String はキャラクターの情報を文字列で返すのだ。
func (c Character) String() string {
	state := "no image"
	if c.HasImage() {
		state = c.Image.MimeType
	}
	return fmt.Sprintf("%s [%s]", c.Name, state)
}
