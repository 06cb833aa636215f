package runner

import (
	"context"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
)

// TextGenerator は構造化テキストを返す生成AIへの細い契約です。
// 実装はクライアントのラッパーとして internal/builder で注入されます。
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, model string) (string, error)
}

// PanelImageGenerator は1パネルぶんの画像生成への細い契約です。
// gemini-image-kit の ImageGenerator がそのままこれを満たします。
type PanelImageGenerator interface {
	GenerateMangaPanel(ctx context.Context, req imagedom.ImageGenerationRequest) (*imagedom.ImageResponse, error)
}
