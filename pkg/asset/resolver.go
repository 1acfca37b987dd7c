// Package asset は成果物（プロジェクト文書・画像・動画）の出力パス解決を
// 担うのだ。GCS とローカルの判別は go-utils/urlpath に委譲するのだ。
package asset

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/shouni/go-utils/urlpath"
)

const (
	// DefaultProjectJSON はプロジェクト文書のデフォルトのファイル名です。
	DefaultProjectJSON = "project.json"
	// DefaultCharacterFileName はキャラクターポートレートの共通ベースファイル名です。
	DefaultCharacterFileName = "character.png"
	// DefaultSceneFileName はシーン画像の共通ベースファイル名です。
	DefaultSceneFileName = "scene.png"
	// DefaultCharacterJPEGFileName は JPEG 書き出し時のポートレートのベースファイル名です。
	DefaultCharacterJPEGFileName = "character.jpg"
	// DefaultSceneJPEGFileName は JPEG 書き出し時のシーン画像のベースファイル名です。
	DefaultSceneJPEGFileName = "scene.jpg"
	// DefaultVideoFileName はシーン動画の共通ベースファイル名です。
	DefaultVideoFileName = "scene.mp4"
)

var (
	// CharacterFileRegex はポートレート画像 (character_1.png 等) に一致します
	CharacterFileRegex = createIndexedRegex(DefaultCharacterFileName)
	// SceneFileRegex はシーン画像 (scene_1.png 等) に一致します
	SceneFileRegex = createIndexedRegex(DefaultSceneFileName)
)

// ResolveOutputPath は、ベースとなるディレクトリパスとファイル名から、
// GCS/ローカルを考慮した最終的な出力パスを生成します。
func ResolveOutputPath(baseDir, fileName string) (string, error) {
	return urlpath.ResolveOutputPath(baseDir, fileName)
}

// ResolveBaseURL は、入力パス（URLまたはローカルパス）から
// 親ディレクトリのパスを解決し、末尾がセパレータで終わるように正規化します。
func ResolveBaseURL(rawPath string) string {
	return urlpath.ResolveBaseURL(rawPath)
}

// GenerateIndexedPath は、指定されたベースパスの拡張子の前に連番を挿入します。
// 例: "out/scene.png", 1 -> "out/scene_1.png"
func GenerateIndexedPath(basePath string, index int) (string, error) {
	return urlpath.GenerateIndexedPath(basePath, index)
}

// createIndexedRegex は、ファイル名に基づきインデックス付きファイル用の正規表現を生成します。
func createIndexedRegex(fileName string) *regexp.Regexp {
	ext := filepath.Ext(fileName)
	baseName := strings.TrimSuffix(fileName, ext)

	pattern := fmt.Sprintf(`^%s_\d+%s$`, regexp.QuoteMeta(baseName), regexp.QuoteMeta(ext))
	return regexp.MustCompile(pattern)
}
