package publisher

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/shouni/go-utils/urlpath"

	"github.com/shouni/go-career-manga/pkg/domain"
)

// Options はパブリッシュ動作を制御する設定項目です。
type Options struct {
	OutputDir string
}

// PublishResult はパブリッシュ処理の結果として生成されたファイルの情報を保持します。
type PublishResult struct {
	MarkdownPath string                 // 生成された story.md のパス
	Panels       []domain.RenderedPanel // 保存された全パネルのパスリスト（パネル番号つき）
}

const (
	defaultStoryName    = "story.md"
	defaultImageDirName = "images"
	// パネル画像のベース名。連番は拡張子の前に挿入されるのだ（panel_3.png 等）
	defaultPanelFileName = "panel.png"
)

// MangaPublisher は成果物の永続化とギャラリー構築を担います。
type MangaPublisher struct{}

// NewMangaPublisher creates and returns a new instance of MangaPublisher.
func NewMangaPublisher() *MangaPublisher {
	return &MangaPublisher{}
}

// Publish は画像の保存とギャラリーMarkdownの構築を一括して実行し、生成されたファイル情報を返却するのだ！
// ファイル名はパネル番号で決まるため、描画に失敗したパネルがあっても番号がずれることはありません。
func (p *MangaPublisher) Publish(profile domain.Profile, scripts domain.PanelScripts, images []domain.PanelImage, opts Options) (PublishResult, error) {
	result := PublishResult{}

	// 1. 出力パスの解決
	storyPath, err := urlpath.ResolveOutputPath(opts.OutputDir, defaultStoryName)
	if err != nil {
		return result, err
	}
	result.MarkdownPath = storyPath

	imgDir, err := urlpath.ResolveOutputPath(opts.OutputDir, defaultImageDirName)
	if err != nil {
		return result, err
	}

	// 2. 画像の保存
	saved, err := p.savePanels(images, imgDir)
	if err != nil {
		return result, fmt.Errorf("画像の書き込みに失敗しました: %w", err)
	}
	result.Panels = saved

	// 3. ギャラリーMarkdownの構築と書き出し
	content := p.buildMarkdown(profile, scripts, saved)
	if err := os.WriteFile(storyPath, []byte(content), 0o644); err != nil {
		return result, fmt.Errorf("markdownファイルの書き込みに失敗しました: %w", err)
	}

	slog.Info("成果物を公開したのだ", "story", storyPath, "panels", len(saved))
	return result, nil
}

// savePanels はパネル画像をパネル番号つきのファイル名で保存し、参照のリストを返します。
func (p *MangaPublisher) savePanels(images []domain.PanelImage, imgDir string) ([]domain.RenderedPanel, error) {
	if err := os.MkdirAll(imgDir, 0o755); err != nil {
		return nil, fmt.Errorf("画像ディレクトリの作成に失敗しました: %w", err)
	}

	basePath, err := urlpath.ResolveOutputPath(imgDir, defaultPanelFileName)
	if err != nil {
		return nil, fmt.Errorf("出力パスの解決に失敗しました: %w", err)
	}

	var panels []domain.RenderedPanel
	for _, img := range images {
		if len(img.Data) == 0 {
			continue
		}
		fullPath, err := urlpath.GenerateIndexedPath(basePath, img.PanelNumber)
		if err != nil {
			return nil, fmt.Errorf("出力パスの解決に失敗しました: %w", err)
		}

		if err := os.WriteFile(fullPath, img.Data, 0o644); err != nil {
			return nil, fmt.Errorf("画像の書き込みに失敗しました %s: %w", fullPath, err)
		}
		panels = append(panels, domain.RenderedPanel{
			PanelNumber: img.PanelNumber,
			Path:        fullPath,
		})
	}
	return panels, nil
}

// buildMarkdown returns the gallery Markdown content for the rendered story.
func (p *MangaPublisher) buildMarkdown(profile domain.Profile, scripts domain.PanelScripts, panels []domain.RenderedPanel) string {
	byNumber := make(map[int]string, len(panels))
	for _, panel := range panels {
		// story.md から見た相対パスに変換するのだ
		byNumber[panel.PanelNumber] = path.Join(defaultImageDirName, filepath.Base(panel.Path))
	}

	name := profile.Name
	if name == "" {
		name = "A Professional"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s: The Manga\n\n", name))
	if profile.Headline != "" {
		sb.WriteString(fmt.Sprintf("> %s\n\n", profile.Headline))
	}

	for _, script := range scripts.SortByNumber() {
		sb.WriteString(fmt.Sprintf("## Panel %d\n\n", script.PanelNumber))

		if img, ok := byNumber[script.PanelNumber]; ok {
			sb.WriteString(fmt.Sprintf("![%s](%s)\n\n", script.Caption, img))
		} else {
			sb.WriteString("*(this panel could not be rendered)*\n\n")
		}

		if script.Caption != "" {
			sb.WriteString(fmt.Sprintf("**%s**\n\n", script.Caption))
		}
		if script.StoryDescription != "" {
			sb.WriteString(script.StoryDescription + "\n\n")
		}
	}
	return sb.String()
}
