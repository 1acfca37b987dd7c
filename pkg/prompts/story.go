package prompts

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
)

//go:embed story.md
var storyPromptSource string

var storyPromptTmpl = template.Must(template.New("story").Parse(storyPromptSource))

// StoryRequest は物語執筆の指示文に埋め込むパラメータです。
type StoryRequest struct {
	Idea         string
	Genre        domain.StoryGenre
	WritingStyle domain.WritingStyle
	Length       int
}

// StoryInstruction は物語執筆の指示文をテンプレートから構築します。
func StoryInstruction(req StoryRequest) (string, error) {
	data := struct {
		Genre        string
		WritingStyle string
		Length       int
		Idea         string
	}{
		Genre:        req.Genre.Label,
		WritingStyle: req.WritingStyle.Label,
		Length:       req.Length,
		Idea:         req.Idea,
	}

	var sb strings.Builder
	if err := storyPromptTmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("物語テンプレートの展開に失敗しました: %w", err)
	}
	return sb.String(), nil
}
