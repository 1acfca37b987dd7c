package domain

import "fmt"

// エラー分類なのだ。個別アイテムの失敗は兄弟に波及させず、
// バッチ全体の失敗（解析・インポート）だけがストアを巻き戻すのだ。

// ValidationError はローカル入力の不備です。ネットワーク呼び出し前に検出されます。
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("入力が不正です: %s", e.Reason)
}

// AnalysisError は物語解析（ゲートウェイ呼び出し・スキーマ検証）の失敗です。
// 発生時点でストアは空にクリア済みであり、巻き戻す対象はありません。
type AnalysisError struct {
	Err error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("物語の解析に失敗しました: %v", e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }

// GenerationError は個別アイテム（キャラクター／シーン）の生成失敗です。
// 対象アイテムだけに影響し、兄弟の処理は続行されます。
type GenerationError struct {
	Kind   string // "character" / "scene" / "video"
	Target string // 対象の名前またはシーン番号
	Err    error
}

func (e *GenerationError) Error() string {
	switch e.Kind {
	case "character":
		return fmt.Sprintf("%s の画像生成に失敗しました: %v", e.Target, e.Err)
	case "video":
		return fmt.Sprintf("シーン %s の動画生成に失敗しました: %v", e.Target, e.Err)
	default:
		return fmt.Sprintf("シーン %s の画像生成に失敗しました: %v", e.Target, e.Err)
	}
}

func (e *GenerationError) Unwrap() error { return e.Err }

// PreconditionError は依存関係が満たされる前に操作が呼ばれたことを表します。
// 例: 静止画が無いシーンへの動画生成要求。
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string { return e.Reason }

// CredentialError は認証情報の欠落・失効です。
// 行き止まりではなく、資格情報の再選択フローへ誘導されます。
type CredentialError struct {
	Err error
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("API キーに問題があります。有効なキーを選択してください: %v", e.Err)
}

func (e *CredentialError) Unwrap() error { return e.Err }

// ImportError はプロジェクト文書の構造不正です。インポートは全か無かで、
// 失敗時に既存のストア状態は一切変更されません。
type ImportError struct {
	Reason string
	Err    error
}

func (e *ImportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("プロジェクトのインポートに失敗しました (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("プロジェクトのインポートに失敗しました: %s", e.Reason)
}

func (e *ImportError) Unwrap() error { return e.Err }

// DecodeError は画像バイト列の復号失敗です。呼び出し側は直前の状態、
// または未変換のオリジナル表示にフォールバックします。
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("画像データの復号に失敗しました (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("画像データの復号に失敗しました: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }
