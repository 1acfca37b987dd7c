package domain

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// ImageData は生成・アップロードされた画像の生バイト列と MIME タイプを保持します。
// プロジェクト文書（JSON）上では元アプリ互換の data URI 文字列
// （data:<mime>;base64,....）として永続化されます。
type ImageData struct {
	MimeType string
	Data     []byte
}

// DataURI は data URI 形式の文字列表現を返すのだ。
func (img *ImageData) DataURI() string {
	return fmt.Sprintf("data:%s;base64,%s", img.MimeType, base64.StdEncoding.EncodeToString(img.Data))
}

// MarshalJSON は data URI 文字列として直列化します。
func (img ImageData) MarshalJSON() ([]byte, error) {
	return json.Marshal(img.DataURI())
}

// UnmarshalJSON は data URI 文字列から復元します。
func (img *ImageData) UnmarshalJSON(data []byte) error {
	var uri string
	if err := json.Unmarshal(data, &uri); err != nil {
		return fmt.Errorf("画像フィールドが文字列ではありません: %w", err)
	}
	parsed, err := ParseDataURI(uri)
	if err != nil {
		return err
	}
	*img = *parsed
	return nil
}

// ParseDataURI は "data:<mime>;base64,<payload>" 形式の文字列を ImageData に変換するのだ。
// 形式が崩れている場合は DecodeError を返すのだ。
func ParseDataURI(uri string) (*ImageData, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, &DecodeError{Reason: fmt.Sprintf("data URI ではありません (先頭: %q)", truncate(uri, 16))}
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, &DecodeError{Reason: "data URI にカンマ区切りのペイロードがありません"}
	}
	mime := strings.TrimSuffix(meta, ";base64")

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, &DecodeError{Reason: "base64 ペイロードの復号に失敗しました", Err: err}
	}
	return &ImageData{MimeType: mime, Data: raw}, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
