// Package store は、キャラクターとシーンのセッション状態を保持する
// Entity State Store を提供するのだ。UI 表示とエクスポートの唯一の情報源であり、
// 変更はすべて「インデックスで特定した 1 レコードの置き換え」として行われるのだ。
package store

import (
	"fmt"
	"sync"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
)

// Store はインメモリのエンティティ状態ストアです。
// ゴルーチンからの並行更新に備えて mutex で保護します。
// バッチの構成員（どのキャラクター／シーンが存在するか）が変わるのは
// ReplaceBatch（解析成功）と Restore（インポート）の全置換だけです。
type Store struct {
	mu          sync.RWMutex
	storyText   string
	notes       string
	numScenes   int
	storyStyle  domain.StoryStyle
	aspectRatio domain.AspectRatio
	characters  []domain.Character
	scenes      []domain.Scene
}

// New はデフォルトの画風・アスペクト比で空のストアを作るのだ。
func New(style domain.StoryStyle, ratio domain.AspectRatio) *Store {
	return &Store{
		numScenes:   3,
		storyStyle:  style,
		aspectRatio: ratio,
	}
}

// SetStory は物語テキストと補足メモ、希望シーン数を設定します。
func (s *Store) SetStory(text, notes string, numScenes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.storyText = text
	s.notes = notes
	s.numScenes = numScenes
}

// SetStoryStyle はグローバルな画風を設定します。
func (s *Store) SetStoryStyle(style domain.StoryStyle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.storyStyle = style
}

// SetAspectRatio はグローバルなアスペクト比を設定します。
// 既存シーンには影響しません（シーンは作成時のコピーを保持するため）。
func (s *Store) SetAspectRatio(ratio domain.AspectRatio) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aspectRatio = ratio
}

// AspectRatio は現在のグローバルなアスペクト比を返します。
func (s *Store) AspectRatio() domain.AspectRatio {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.aspectRatio
}

// StoryStyle は現在のグローバルな画風を返します。
func (s *Store) StoryStyle() domain.StoryStyle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.storyStyle
}

// Clear はキャラクターとシーンのバッチを空にするのだ。
// 解析はゲートウェイ呼び出しの前にまずクリアするのが決まりなのだ。
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.characters = nil
	s.scenes = nil
}

// ReplaceBatch は解析結果でバッチ全体を置き換えます（増分マージはしません）。
// キャラクターは image=nil, loading=true で、シーンは両フラグ false かつ
// 渡されたアスペクト比のコピー付きで作られます。
func (s *Store) ReplaceBatch(analysis domain.StoryAnalysis, ratio domain.AspectRatio) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.characters = make([]domain.Character, 0, len(analysis.Characters))
	for _, c := range analysis.Characters {
		s.characters = append(s.characters, domain.Character{
			Name:        c.Name,
			Description: c.Description,
			Image:       nil,
			Loading:     true,
		})
	}

	s.scenes = make([]domain.Scene, 0, len(analysis.Scenes))
	for _, sc := range analysis.Scenes {
		s.scenes = append(s.scenes, domain.Scene{
			SceneNumber: sc.SceneNumber,
			Prompt:      sc.Prompt,
			AspectRatio: ratio, // 値コピー。以後グローバル設定から独立
		})
	}
}

// CharacterCount は現在のキャラクター数を返します。
func (s *Store) CharacterCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.characters)
}

// SceneCount は現在のシーン数を返します。
func (s *Store) SceneCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.scenes)
}

// Character は指定インデックスのキャラクターのコピーを返します。
func (s *Store) Character(index int) (domain.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.characters) {
		return domain.Character{}, fmt.Errorf("キャラクター番号 %d は範囲外です (全 %d 件)", index, len(s.characters))
	}
	return s.characters[index], nil
}

// Scene は指定インデックスのシーンのコピーを返します。
func (s *Store) Scene(index int) (domain.Scene, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.scenes) {
		return domain.Scene{}, fmt.Errorf("シーン番号 %d は範囲外です (全 %d 件)", index, len(s.scenes))
	}
	return s.scenes[index], nil
}

// UpdateCharacter は指定インデックスのレコードだけを関数適用で置き換えるのだ。
// 他のレコードには一切触れないのが不変条件なのだ。
func (s *Store) UpdateCharacter(index int, fn func(domain.Character) domain.Character) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.characters) {
		return fmt.Errorf("キャラクター番号 %d は範囲外です (全 %d 件)", index, len(s.characters))
	}
	s.characters[index] = fn(s.characters[index])
	return nil
}

// UpdateScene は指定インデックスのシーンだけを関数適用で置き換えるのだ。
func (s *Store) UpdateScene(index int, fn func(domain.Scene) domain.Scene) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.scenes) {
		return fmt.Errorf("シーン番号 %d は範囲外です (全 %d 件)", index, len(s.scenes))
	}
	s.scenes[index] = fn(s.scenes[index])
	return nil
}

// Snapshot は現在の状態全体の深いコピーをスナップショットとして返します。
func (s *Store) Snapshot() domain.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Project{
		StoryText:   s.storyText,
		Notes:       s.notes,
		NumScenes:   s.numScenes,
		StoryStyle:  s.storyStyle,
		AspectRatio: s.aspectRatio,
		Characters:  s.characters,
		Scenes:      s.scenes,
	}.Clone()
}

// Restore はスナップショットで状態全体を置き換えます（インポート用）。
func (s *Store) Restore(p domain.Project) {
	cloned := p.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.storyText = cloned.StoryText
	s.notes = cloned.Notes
	s.numScenes = cloned.NumScenes
	s.storyStyle = cloned.StoryStyle
	s.aspectRatio = cloned.AspectRatio
	s.characters = cloned.Characters
	s.scenes = cloned.Scenes
}
