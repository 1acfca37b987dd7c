package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// StoryAnalysis は物語解析の構造化レスポンスです。
// 生成 AI からの応答は信頼できない外部入力として、
// フィールドを使う前に必ず構造検証を通します。
type StoryAnalysis struct {
	Characters []AnalyzedCharacter `json:"characters"`
	Scenes     []AnalyzedScene     `json:"scenes"`
}

// AnalyzedCharacter は解析結果中のキャラクター断片です。
type AnalyzedCharacter struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AnalyzedScene は解析結果中のシーン断片です。
type AnalyzedScene struct {
	SceneNumber int    `json:"sceneNumber"`
	Prompt      string `json:"prompt"`
}

var jsonBlockRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(.*\\S)\\s*```")

// ParseStoryAnalysis は AI 応答の生テキストから JSON を抽出し、
// スキーマ検証済みの StoryAnalysis を返すのだ。
// 検証に失敗したモードごとに理由を変えてエラーを返すのだ。
func ParseStoryAnalysis(raw string) (StoryAnalysis, error) {
	rawJSON := extractJSON(raw)

	// 欠落フィールドと型違いを区別するため、ポインタ経由で受けるのだ
	var doc struct {
		Characters *[]struct {
			Name        *string `json:"name"`
			Description *string `json:"description"`
		} `json:"characters"`
		Scenes *[]struct {
			SceneNumber *int    `json:"sceneNumber"`
			Prompt      *string `json:"prompt"`
		} `json:"scenes"`
	}
	if err := json.Unmarshal([]byte(rawJSON), &doc); err != nil {
		return StoryAnalysis{}, fmt.Errorf("応答 JSON の解析に失敗しました (抜粋: %q): %w", truncate(raw, 200), err)
	}

	if doc.Characters == nil {
		return StoryAnalysis{}, fmt.Errorf("応答に characters フィールドがありません")
	}
	if doc.Scenes == nil {
		return StoryAnalysis{}, fmt.Errorf("応答に scenes フィールドがありません")
	}
	if len(*doc.Scenes) == 0 {
		return StoryAnalysis{}, fmt.Errorf("応答のシーンが 0 件です")
	}

	var analysis StoryAnalysis
	for i, c := range *doc.Characters {
		if c.Name == nil || strings.TrimSpace(*c.Name) == "" {
			return StoryAnalysis{}, fmt.Errorf("キャラクター %d 件目に name がありません", i+1)
		}
		if c.Description == nil {
			return StoryAnalysis{}, fmt.Errorf("キャラクター %q に description がありません", *c.Name)
		}
		analysis.Characters = append(analysis.Characters, AnalyzedCharacter{
			Name:        *c.Name,
			Description: *c.Description,
		})
	}
	for i, s := range *doc.Scenes {
		if s.SceneNumber == nil || *s.SceneNumber <= 0 {
			return StoryAnalysis{}, fmt.Errorf("シーン %d 件目の sceneNumber が正の整数ではありません", i+1)
		}
		if s.Prompt == nil || strings.TrimSpace(*s.Prompt) == "" {
			return StoryAnalysis{}, fmt.Errorf("シーン %d に prompt がありません", *s.SceneNumber)
		}
		analysis.Scenes = append(analysis.Scenes, AnalyzedScene{
			SceneNumber: *s.SceneNumber,
			Prompt:      *s.Prompt,
		})
	}

	return analysis, nil
}

// extractJSON は AI が付けがちな Markdown コードブロックを取り除くのだ。
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)

	if matches := jsonBlockRegex.FindStringSubmatch(raw); len(matches) > 1 {
		return matches[1]
	}

	// フォールバック: 最外周の JSON オブジェクトを探す
	first := strings.Index(raw, "{")
	last := strings.LastIndex(raw, "}")
	if first != -1 && last > first {
		return raw[first : last+1]
	}
	return raw
}
