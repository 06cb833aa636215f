package domain

import (
	"errors"
	"fmt"
)

// Stage はパイプラインの工程名です。
type Stage string

const (
	StageScrape  Stage = "scrape"
	StageOutline Stage = "outline"
	StageScript  Stage = "script"
	StageRender  Stage = "render"
)

// ErrorKind は失敗の分類です。呼び出し元が
// 「入力が悪い」「上流に届かない」「届いたが中身が使えない」を区別できるようにします。
type ErrorKind string

const (
	// ErrorKindValidation は入力検証の失敗（不正URL、参照写真の欠落など）です。
	ErrorKindValidation ErrorKind = "validation_error"
	// ErrorKindTransport は上流APIへの到達失敗（非2xx、ネットワーク例外）です。
	ErrorKindTransport ErrorKind = "transport_error"
	// ErrorKindShape は上流の応答が期待スキーマを満たさない失敗です。
	ErrorKindShape ErrorKind = "shape_error"
	// ErrorKindRender はパネル描画バッチ全体、または成果物の書き出しの失敗です。
	ErrorKindRender ErrorKind = "render_error"
)

// StageError はパイプライン各工程の失敗を一様な形で運ぶエラー型です。
// どの工程も生の例外を境界の外へ投げず、必ずこの型に包んで返すのが契約なのだ。
type StageError struct {
	Stage   Stage
	Kind    ErrorKind
	Message string
	Err     error
}

// Error は error インターフェースを実装します。
func (e *StageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Stage, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Stage, e.Message)
}

// Unwrap はエラーチェーンを辿れるようにします。
func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError は StageError を生成します。
func NewStageError(stage Stage, kind ErrorKind, message string, err error) *StageError {
	return &StageError{Stage: stage, Kind: kind, Message: message, Err: err}
}

// AsStageError は err から StageError を取り出します。
// 包まれていない場合は、指定工程の処理エラーとして包み直します。
func AsStageError(stage Stage, err error) *StageError {
	var se *StageError
	if errors.As(err, &se) {
		return se
	}
	return NewStageError(stage, ErrorKindTransport, err.Error(), err)
}

// PipelineResult はオーケストレーション1回ぶんの最終結果です。
// 成功か、最初に失敗した工程のどちらかを表し、返却後は変更しません。
type PipelineResult struct {
	Success     bool            `json:"success"`
	Profile     *Profile        `json:"profile,omitempty"`
	Outline     *StoryOutline   `json:"outline,omitempty"`
	Scripts     []PanelScript   `json:"scripts,omitempty"`
	Panels      []RenderedPanel `json:"panels,omitempty"`
	PanelErrors []PanelFailure  `json:"panel_errors,omitempty"`
	GalleryPath string          `json:"gallery_path,omitempty"`
	FailedStage Stage           `json:"failed_stage,omitempty"`
	ErrorKind   ErrorKind       `json:"error_kind,omitempty"`
	Message     string          `json:"message,omitempty"`
}

// FailureResult は StageError から失敗結果を構築します。
func FailureResult(err *StageError) PipelineResult {
	return PipelineResult{
		Success:     false,
		FailedStage: err.Stage,
		ErrorKind:   err.Kind,
		Message:     err.Message,
	}
}
