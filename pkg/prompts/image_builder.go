package prompts

import (
	"fmt"
	"strings"

	"github.com/shouni/go-career-manga/pkg/domain"
)

const (
	// MangaStyleBase は全パネル共通の画風指示です。
	// 参照写真の人物の顔立ちを保ったまま、白黒の青年漫画スタイルへ変換させるのだ。
	MangaStyleBase = `Transform the person in the reference image into a black and white manga comic panel. Retain their exact face, hairstyle, and unique features so they remain instantly recognizable, but render them in authentic manga style line art. Use bold ink outlines, screentone shading, and high-contrast black/white textures. The style should feel like seinen manga — detailed, expressive, and realistic, not cartoonish.`

	// CinematicTags はクオリティ向上のための共通タグです。
	CinematicTags = "cinematic composition, high contrast, sharp clean lineart, screentone shading"

	// NegativePanelPrompt はパネル用のネガティブプロンプトです。
	// 吹き出しはポジティブ側で1個だけ明示的に要求するため、ここでは乱立と崩れだけを抑止します。
	NegativePanelPrompt = "multiple overlapping speech bubbles, illegible text, misspelled words, watermark, signature, username, low quality, distorted, bad anatomy, deformed face, color"
)

// ImagePrompt は、画像生成用プロンプトを構築する契約です。
type ImagePrompt interface {
	// BuildPanel は、1パネルぶんの統合プロンプトを生成します。
	BuildPanel(script domain.PanelScript) string
}

// ImagePromptBuilder はパネル画像プロンプトの組み立てを担う実体です。
type ImagePromptBuilder struct {
	styleBase   string
	styleSuffix string
}

// NewImagePromptBuilder は ImagePromptBuilder を初期化します。
// styleSuffix は設定から注入される追加の画風指定で、空でも構いません。
func NewImagePromptBuilder(styleSuffix string) *ImagePromptBuilder {
	return &ImagePromptBuilder{
		styleBase:   MangaStyleBase,
		styleSuffix: styleSuffix,
	}
}

// BuildPanel は、画風・シーン・キャプション描画指示を結合したプロンプトを生成するのだ。
// キャプションは1個の吹き出しとして、被写体の顔から離れた位置に描かせます。
func (pb *ImagePromptBuilder) BuildPanel(script domain.PanelScript) string {
	var sb strings.Builder

	sb.WriteString(pb.styleBase)
	sb.WriteString("\n")
	sb.WriteString(CinematicTags)
	if pb.styleSuffix != "" {
		sb.WriteString("\n")
		sb.WriteString(pb.styleSuffix)
	}

	sb.WriteString("\n\nSCENE: ")
	sb.WriteString(script.ImagePrompt)
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("IMPORTANT: Include this EXACT text in clear, readable English: %q\n", script.Caption))
	sb.WriteString(`
TEXT BUBBLE REQUIREMENTS:
- Use ONE clean speech bubble only (not multiple overlapping bubbles)
- Place the bubble in empty space (top corner or side) away from the character's face
- Large, clear font that is easy to read
- Proper spelling with no typos
- White background with black text for maximum contrast
- DO NOT overlap the bubble with the character or important scene elements`)

	return sb.String()
}
