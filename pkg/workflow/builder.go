// Package workflow は、各工程を担う Runner 群の構築と依存関係の束ねを
// 担うのだ。CLI からはこの Builder だけを見れば全工程を組み立てられるのだ。
package workflow

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
	imageKit "github.com/shouni/gemini-image-kit/pkg/generator"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"google.golang.org/genai"

	"github.com/shouni/go-storyboard-kit/internal/config"
	"github.com/shouni/go-storyboard-kit/pkg/gateway"
	gwgemini "github.com/shouni/go-storyboard-kit/pkg/gateway/gemini"
	"github.com/shouni/go-storyboard-kit/pkg/store"
)

const (
	defaultGeminiTemperature = float32(0.7)
	defaultCacheExpiration   = 5 * time.Minute
	cacheCleanupInterval     = 15 * time.Minute
	defaultTTL               = 5 * time.Minute
)

// Builder はワークフローの各工程を担う Runner 群を構築・管理するのだ。
type Builder struct {
	cfg        *config.Config
	store      *store.Store
	httpClient httpkit.ClientInterface
	aiClient   gemini.GenerativeModel
	gwClient   *gwgemini.Client
	portraits  gateway.PortraitGenerator
	gate       gateway.CredentialGate
	reader     remoteio.InputReader
	writer     remoteio.OutputWriter
}

// BuilderArgs は Builder の組み立てに必要な外部依存なのだ。
// 資格情報の選択フローは端末の種類で変わるため、入出力を注入可能にするのだ。
type BuilderArgs struct {
	Config    *config.Config
	Store     *store.Store
	PromptIn  io.Reader // 資格情報の選択プロンプト入力（通常は os.Stdin）
	PromptOut io.Writer // 同・出力（通常は os.Stderr）
}

// NewBuilder は共有コンポーネントを初期化して Builder を作成するのだ。
func NewBuilder(ctx context.Context, args BuilderArgs) (*Builder, error) {
	cfg := args.Config
	if cfg == nil {
		return nil, fmt.Errorf("Config は必須です")
	}
	if args.Store == nil {
		return nil, fmt.Errorf("Store は必須です")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY が設定されていません")
	}

	timeout := cfg.Options.HTTPTimeout
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}
	httpClient := httpkit.New(timeout)

	aiClient, err := initializeAIClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, err
	}

	gwClient, err := gwgemini.New(ctx, gwgemini.Config{
		APIKey:     cfg.GeminiAPIKey,
		TextModel:  cfg.TextModel,
		ImageModel: cfg.ImageModel,
		VideoModel: cfg.VideoModel,
	})
	if err != nil {
		return nil, err
	}

	portraits, err := initializePortraitGenerator(httpClient, aiClient, cfg.ImageModel)
	if err != nil {
		return nil, err
	}

	gcsFactory, err := gcsfactory.NewGCSClientFactory(ctx)
	if err != nil {
		return nil, fmt.Errorf("GCS クライアントファクトリの初期化に失敗しました: %w", err)
	}
	reader, err := gcsFactory.NewInputReader()
	if err != nil {
		return nil, err
	}
	writer, err := gcsFactory.NewOutputWriter()
	if err != nil {
		return nil, err
	}

	return &Builder{
		cfg:        cfg,
		store:      args.Store,
		httpClient: httpClient,
		aiClient:   aiClient,
		gwClient:   gwClient,
		portraits:  portraits,
		gate:       gateway.NewStdinCredentialGate(cfg.GeminiAPIKey, args.PromptIn, args.PromptOut),
		reader:     reader,
		writer:     writer,
	}, nil
}

// Store は束ねているエンティティストアを返します。
func (b *Builder) Store() *store.Store {
	return b.store
}

// Writer は成果物の書き出しに使う共有ライターを返します。
func (b *Builder) Writer() remoteio.OutputWriter {
	return b.writer
}

// HTTPClient は動画ダウンロードなどに使う素の HTTP クライアントを返します。
func (b *Builder) HTTPClient() *http.Client {
	timeout := b.cfg.Options.HTTPTimeout
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
}

// initializeAIClient は go-gemini-client のクライアントを初期化します。
func initializeAIClient(ctx context.Context, apiKey string) (gemini.GenerativeModel, error) {
	clientConfig := gemini.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(defaultGeminiTemperature),
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}

// initializePortraitGenerator はキャッシュ付きの画像生成コアを組み立てて
// ポートレート生成ゲートウェイとして返すのだ。
func initializePortraitGenerator(httpClient httpkit.ClientInterface, aiClient gemini.GenerativeModel, model string) (gateway.PortraitGenerator, error) {
	imgCache := cache.New(defaultCacheExpiration, cacheCleanupInterval)
	core, err := imageKit.NewGeminiImageCore(httpClient, imgCache, defaultTTL)
	if err != nil {
		return nil, fmt.Errorf("GeminiImageCoreの初期化に失敗しました: %w", err)
	}

	imgGen, err := imageKit.NewGeminiGenerator(core, aiClient, model)
	if err != nil {
		return nil, fmt.Errorf("GeminiGeneratorの初期化に失敗しました: %w", err)
	}

	return gateway.NewImageKitPortraits(imgGen), nil
}
