package runner

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/gateway"
)

// fakeAnalyzer は固定の解析結果またはエラーを返すのだ。
type fakeAnalyzer struct {
	analysis domain.StoryAnalysis
	err      error
}

func (f *fakeAnalyzer) AnalyzeStory(_ context.Context, _ string) (domain.StoryAnalysis, error) {
	if f.err != nil {
		return domain.StoryAnalysis{}, f.err
	}
	return f.analysis, nil
}

// fakePortraits はプロンプト中の名前で失敗を切り替えるポートレート生成器なのだ。
type fakePortraits struct {
	mu       sync.Mutex
	calls    []string
	failFor  map[string]bool
	imageFor func(prompt string) *domain.ImageData
}

func (f *fakePortraits) GeneratePortrait(_ context.Context, req gateway.PortraitRequest) (*domain.ImageData, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req.Prompt)
	f.mu.Unlock()

	for name, fail := range f.failFor {
		if fail && bytes.Contains([]byte(req.Prompt), []byte(name)) {
			return nil, fmt.Errorf("generation failed for %s", name)
		}
	}
	if f.imageFor != nil {
		return f.imageFor(req.Prompt), nil
	}
	return &domain.ImageData{MimeType: "image/png", Data: []byte("fake")}, nil
}

func (f *fakePortraits) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// fakeImageGen は受け取ったパート列を記録する画像生成器なのだ。
type fakeImageGen struct {
	mu        sync.Mutex
	lastParts []gateway.ImagePart
	err       error
	image     *domain.ImageData
}

func (f *fakeImageGen) GenerateImage(_ context.Context, parts []gateway.ImagePart) (*domain.ImageData, error) {
	f.mu.Lock()
	f.lastParts = parts
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	if f.image != nil {
		return f.image, nil
	}
	return &domain.ImageData{MimeType: "image/png", Data: []byte("scene")}, nil
}

// fakeVideoOp は Done/ResultURI を固定値で返すのだ。
type fakeVideoOp struct {
	done bool
	uri  string
}

func (o *fakeVideoOp) Done() bool { return o.done }

func (o *fakeVideoOp) ResultURI() (string, bool) {
	if o.uri == "" {
		return "", false
	}
	return o.uri, true
}

// fakeVideoGen は StartVideo で初期状態を、PollVideo で後続状態を順に返すのだ。
type fakeVideoGen struct {
	startErr error
	pollErr  error
	initial  gateway.VideoOperation
	sequence []gateway.VideoOperation
	polls    int
	lastReq  gateway.VideoRequest
}

func (f *fakeVideoGen) StartVideo(_ context.Context, req gateway.VideoRequest) (gateway.VideoOperation, error) {
	f.lastReq = req
	if f.startErr != nil {
		return nil, f.startErr
	}
	return f.initial, nil
}

func (f *fakeVideoGen) PollVideo(_ context.Context, _ gateway.VideoOperation) (gateway.VideoOperation, error) {
	if f.pollErr != nil {
		return nil, f.pollErr
	}
	op := f.sequence[f.polls]
	f.polls++
	return op, nil
}

// fakeGate は資格情報の有無と Select 呼び出し回数を記録するのだ。
type fakeGate struct {
	has     bool
	key     string
	selects int
}

func (g *fakeGate) Has(_ context.Context) (bool, error) { return g.has, nil }

func (g *fakeGate) Select(_ context.Context) error {
	g.selects++
	g.has = true
	return nil
}

func (g *fakeGate) Key() string { return g.key }

// testPNG は 1 枚の有効な PNG バイト列を作るヘルパーなのだ。
func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("テスト用 PNG の生成に失敗しました: %v", err)
	}
	return buf.Bytes()
}
