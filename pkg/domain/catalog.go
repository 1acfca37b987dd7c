package domain

// StoryStyle は画風（絵柄）のカタログ項目です。
type StoryStyle struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// StoryGenre は物語生成で選べるジャンルです。
type StoryGenre struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// WritingStyle は物語生成の文体です。
type WritingStyle struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// StoryStyles は選択可能な画風の一覧なのだ。先頭がデフォルトなのだ。
var StoryStyles = []StoryStyle{
	{ID: "pixar", Label: "Pixar"},
	{ID: "realistic", Label: "Realistic"},
	{ID: "disney", Label: "Disney"},
	{ID: "ghibli", Label: "Ghibli"},
	{ID: "anime", Label: "Anime"},
	{ID: "cyberpunk", Label: "Cyberpunk"},
	{ID: "fantasy", Label: "Fantasy Art"},
}

// AspectRatios は選択可能なアスペクト比の一覧なのだ。先頭がデフォルトなのだ。
var AspectRatios = []AspectRatio{
	{Label: "正方形", Value: "1:1"},
	{Label: "縦型", Value: "9:16"},
	{Label: "横型", Value: "16:9"},
	{Label: "シネマ", Value: "21:9"},
}

// StoryGenres は物語生成で選択可能なジャンルの一覧です。
var StoryGenres = []StoryGenre{
	{ID: "drama", Label: "ドラマ"},
	{ID: "fantasy", Label: "ファンタジー"},
	{ID: "sci-fi", Label: "SF"},
	{ID: "romance", Label: "恋愛"},
	{ID: "crime", Label: "クライム"},
	{ID: "horror", Label: "ホラー"},
	{ID: "comedy", Label: "コメディ"},
	{ID: "adventure", Label: "冒険"},
}

// WritingStyles は物語生成で選択可能な文体の一覧です。
var WritingStyles = []WritingStyle{
	{ID: "cartoonish", Label: "コミカル"},
	{ID: "realistic", Label: "リアル"},
	{ID: "cinematic", Label: "シネマティック"},
	{ID: "poetic", Label: "詩的"},
	{ID: "journalistic", Label: "ルポ風"},
}

// FindStoryStyle は ID から画風を検索します。見つからない場合はデフォルト（先頭）を返します。
func FindStoryStyle(id string) StoryStyle {
	for _, s := range StoryStyles {
		if s.ID == id {
			return s
		}
	}
	return StoryStyles[0]
}

// FindAspectRatio は "W:H" 値からアスペクト比を検索します。
// 見つからない場合はデフォルト（先頭）を返します。
func FindAspectRatio(value string) AspectRatio {
	for _, r := range AspectRatios {
		if r.Value == value {
			return r
		}
	}
	return AspectRatios[0]
}

// FindStoryGenre は ID からジャンルを検索します。見つからない場合はデフォルトを返します。
func FindStoryGenre(id string) StoryGenre {
	for _, g := range StoryGenres {
		if g.ID == id {
			return g
		}
	}
	return StoryGenres[0]
}

// FindWritingStyle は ID から文体を検索します。見つからない場合はデフォルトを返します。
func FindWritingStyle(id string) WritingStyle {
	for _, w := range WritingStyles {
		if w.ID == id {
			return w
		}
	}
	return WritingStyles[0]
}
