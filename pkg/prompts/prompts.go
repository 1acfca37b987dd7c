// Package prompts は各ジェネレーターに渡す AI 指示文の組み立てを担うのだ。
// 指示文そのものはモデルの得意な英語で記述し、呼び出し側の構造
// （シーン数・画風・メモ・物語本文）だけを埋め込むのだ。
package prompts

import (
	"fmt"
	"strings"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
)

// AnalysisInstruction は物語解析の指示文を構築します。
// シーン数は配分の指示であり、生成されるプロンプトの末尾には
// 必ず画風ラベルを付けるようモデルに要求します。
func AnalysisInstruction(storyText, notes string, numScenes int, style domain.StoryStyle) string {
	var sb strings.Builder

	sb.WriteString("Read the following story carefully. Your tasks are:\n")
	sb.WriteString("1. Identify the main characters and provide a detailed visual description of each, suitable for image generation.\n")
	sb.WriteString(fmt.Sprintf("2. Divide the story into %d key scenes.\n", numScenes))
	sb.WriteString("3. For each scene, write a detailed and creative prompt for generating an artistic image. ")
	sb.WriteString("The prompt must include a description of the location, the action, the characters present, ")
	sb.WriteString("a cinematic camera angle, and the type of lighting. ")
	sb.WriteString(fmt.Sprintf("Every prompt must end with the phrase %q.\n", "in the style of "+style.Label))

	if notes != "" {
		sb.WriteString("\nImportant additional notes:\n")
		sb.WriteString(notes)
		sb.WriteString("\n")
	}

	sb.WriteString("\nThe story:\n---\n")
	sb.WriteString(storyText)
	sb.WriteString("\n---\n")

	return sb.String()
}

// PortraitPrompt はキャラクターポートレート生成の指示文を構築します。
// アスペクト比はモデルへのテキスト指示として埋め込みます。
func PortraitPrompt(c domain.Character, style domain.StoryStyle, ratio domain.AspectRatio) string {
	return fmt.Sprintf("Portrait of %s, %s, in the style of %s. Generate the image with an aspect ratio of %s.",
		c.Name, c.Description, style.Label, ratio.Value)
}

// SceneInstruction はシーン画像合成のテキスト指示を構築します。
// グローバル設定ではなく、そのシーン自身のアスペクト比を使うのだ。
func SceneInstruction(scene domain.Scene) string {
	return fmt.Sprintf("Important instruction: the final image MUST be generated with a strict aspect ratio of %s. The image content is: %s",
		scene.AspectRatio.Value, scene.Prompt)
}

// AnimationPrompt は静止画から動画を起こす際の演出指示を構築します。
func AnimationPrompt(scene domain.Scene) string {
	return fmt.Sprintf("Animate the characters in this scene with natural, fluid movements. Make them blink, move their heads, or perform subtle actions matching the scene context: %s. Keep the background consistent.",
		scene.Prompt)
}
