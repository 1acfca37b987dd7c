package config

import (
	"time"

	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultTextModel    = "gemini-3-pro-preview"
	DefaultStoryModel   = "gemini-2.5-pro"
	DefaultImageModel   = "gemini-2.5-flash-image"
	DefaultVideoModel   = "veo-3.1-fast-generate-preview"
	DefaultHTTPTimeout  = 30 * time.Second
	DefaultPollInterval = 10 * time.Second
	DefaultRateInterval = 10 * time.Second
	DefaultNumScenes    = 3
	DefaultOutputDir    = "output"
)

// Config はアプリケーション全体の環境設定（APIキーやモデル名）を保持する構造体なのだ。
type Config struct {
	GeminiAPIKey string
	TextModel    string // 物語解析用
	StoryModel   string // 物語執筆用
	ImageModel   string // 画像生成用
	VideoModel   string // 動画生成用

	Options GenerateOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	return &Config{
		GeminiAPIKey: envutil.GetEnv("GEMINI_API_KEY", ""),
		TextModel:    envutil.GetEnv("GEMINI_MODEL", DefaultTextModel),
		StoryModel:   envutil.GetEnv("STORY_GEMINI_MODEL", DefaultStoryModel),
		ImageModel:   envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
		VideoModel:   envutil.GetEnv("VIDEO_GEMINI_MODEL", DefaultVideoModel),
	}
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// ソース入力関連
	StoryURL    string // --story-url
	StoryFile   string // --story-file
	ProjectFile string // --project
	OutputDir   string // --output-dir

	// 生成パラメータ
	NumScenes   int    // --scenes
	StyleID     string // --style
	AspectRatio string // --ratio
	Notes       string // --notes

	// 出力形式
	JPEG        bool // --jpeg
	JPEGQuality int  // --jpeg-quality

	// 実行制御
	HTTPTimeout  time.Duration // --http-timeout
	PollInterval time.Duration // --poll-interval
}
