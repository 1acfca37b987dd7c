// Package project はプロジェクト文書（JSON）の入出力を担うのだ。
// 文書はオリジナルの Web 版と互換のキー名を持ち、画像は data URI として
// 埋め込まれるのだ。インポートは全か無かで、検証を通らない文書は
// 既存状態に一切触れずに拒否するのだ。
package project

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
)

// Export はスナップショットをインデント付き JSON に直列化します。
// ロード中フラグは一時状態なので、書き出す前に必ず落とします。
func Export(p domain.Project) ([]byte, error) {
	doc := p.Clone()
	for i := range doc.Characters {
		doc.Characters[i].Loading = false
	}
	for i := range doc.Scenes {
		doc.Scenes[i].ImageLoading = false
		doc.Scenes[i].VideoLoading = false
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("プロジェクトの直列化に失敗しました: %w", err)
	}
	return data, nil
}

// Import は JSON 文書を検証付きで読み込みます。
// storyText と numScenes は必須で、どちらかが欠けた文書は全体が拒否されます。
// 古い文書に無いフィールドはデフォルト値で補います（前方互換）。
func Import(data []byte) (domain.Project, error) {
	var doc domain.Project
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.Project{}, &domain.ImportError{Reason: "JSON の構文が不正です", Err: err}
	}

	if strings.TrimSpace(doc.StoryText) == "" {
		return domain.Project{}, &domain.ImportError{Reason: "storyText がありません"}
	}
	if doc.NumScenes <= 0 {
		return domain.Project{}, &domain.ImportError{Reason: "numScenes がありません"}
	}

	applyDefaults(&doc)
	return doc, nil
}

// applyDefaults は欠落フィールドをカタログのデフォルトで補うのだ。
// シーン固有のアスペクト比が無い場合は、文書全体の設定 → カタログ先頭の
// 順でフォールバックするのだ。
func applyDefaults(doc *domain.Project) {
	if doc.StoryStyle.ID == "" {
		doc.StoryStyle = domain.StoryStyles[0]
	}
	if doc.AspectRatio.IsZero() {
		doc.AspectRatio = domain.AspectRatios[0]
	}

	for i := range doc.Characters {
		doc.Characters[i].Loading = false
	}
	for i := range doc.Scenes {
		s := &doc.Scenes[i]
		s.ImageLoading = false
		s.VideoLoading = false
		if s.AspectRatio.IsZero() {
			s.AspectRatio = doc.AspectRatio
		}
	}
}
