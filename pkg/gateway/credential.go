package gateway

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// StdinCredentialGate は対話型の資格情報選択フローなのだ。
// 環境変数等から受け取った初期キーを使い、欠落・失効時には
// 標準入力からの再入力を促すのだ。
type StdinCredentialGate struct {
	mu  sync.Mutex
	key string
	in  io.Reader
	out io.Writer
}

// NewStdinCredentialGate は初期キーと入出力を指定してゲートを作ります。
func NewStdinCredentialGate(initialKey string, in io.Reader, out io.Writer) *StdinCredentialGate {
	return &StdinCredentialGate{key: initialKey, in: in, out: out}
}

// Has は利用可能なキーが選択済みかどうかを返します。
func (g *StdinCredentialGate) Has(ctx context.Context) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.key != "", nil
}

// Select はユーザーにキーの入力を求め、入力が完了するまでブロックするのだ。
func (g *StdinCredentialGate) Select(ctx context.Context) error {
	fmt.Fprint(g.out, "Gemini API キーを入力してほしいのだ: ")

	scanner := bufio.NewScanner(g.in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("キーの読み取りに失敗しました: %w", err)
		}
		return fmt.Errorf("キーが入力されませんでした")
	}

	key := strings.TrimSpace(scanner.Text())
	if key == "" {
		return fmt.Errorf("空のキーは選択できません")
	}

	g.mu.Lock()
	g.key = key
	g.mu.Unlock()
	return nil
}

// Key は現在選択されているキーを返します。
func (g *StdinCredentialGate) Key() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.key
}
