package domain

// Project はセッション状態全体の永続化形（スナップショット）です。
// 前方互換が要件で、古い文書に無いフィールドは拒否せずデフォルト値で補います。
// 表示用の派生状態（パディング／クロップ済みプレビュー）は一切含みません。
type Project struct {
	StoryText   string      `json:"storyText"`
	Notes       string      `json:"notes,omitempty"`
	NumScenes   int         `json:"numScenes"`
	StoryStyle  StoryStyle  `json:"storyStyle"`
	AspectRatio AspectRatio `json:"aspectRatio"`
	Characters  []Character `json:"characters"`
	Scenes      []Scene     `json:"scenes"`
}

// Clone はスナップショットの深いコピーを返すのだ。
// スライスの共有による意図しない書き換えを防ぐためなのだ。
func (p Project) Clone() Project {
	cloned := p
	cloned.Characters = make([]Character, len(p.Characters))
	copy(cloned.Characters, p.Characters)
	cloned.Scenes = make([]Scene, len(p.Scenes))
	copy(cloned.Scenes, p.Scenes)
	return cloned
}
