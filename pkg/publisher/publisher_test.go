package publisher

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shouni/go-career-manga/pkg/domain"
)

func TestMangaPublisher_Publish(t *testing.T) {
	dir := t.TempDir()
	pub := NewMangaPublisher()

	profile := domain.Profile{Name: "Sarah Chen", Headline: "Staff Engineer at Acme"}
	scripts := domain.PanelScripts{
		{PanelNumber: 1, Caption: "Day one", StoryDescription: "Nervous but excited"},
		{PanelNumber: 2, Caption: "It works!", StoryDescription: "First deploy lands"},
	}
	images := []domain.PanelImage{
		{PanelNumber: 1, Data: []byte("png-1"), MimeType: "image/png"},
		{PanelNumber: 2, Data: []byte("png-2"), MimeType: "image/png"},
	}

	result, err := pub.Publish(profile, scripts, images, Options{OutputDir: dir})
	if err != nil {
		t.Fatalf("公開に失敗したのだ: %v", err)
	}

	// パネル番号つきのファイル名で保存されること
	for _, want := range []string{"panel_1.png", "panel_2.png"} {
		if _, err := os.Stat(filepath.Join(dir, "images", want)); err != nil {
			t.Errorf("%s が保存されていないのだ: %v", want, err)
		}
	}
	if len(result.Panels) != 2 {
		t.Fatalf("保存されたパネル数が想定と違うのだ: %d", len(result.Panels))
	}
	if result.Panels[0].PanelNumber != 1 {
		t.Errorf("パネル番号が引き継がれていないのだ: %d", result.Panels[0].PanelNumber)
	}

	raw, err := os.ReadFile(result.MarkdownPath)
	if err != nil {
		t.Fatalf("story.md が読めないのだ: %v", err)
	}
	content := string(raw)

	for _, want := range []string{
		"# Sarah Chen: The Manga",
		"> Staff Engineer at Acme",
		"![Day one](images/panel_1.png)",
		"**It works!**",
		"First deploy lands",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("story.md に %q が含まれていないのだ", want)
		}
	}
}

func TestMangaPublisher_SkipsMissingPanels(t *testing.T) {
	// 描画に失敗したパネルは番号を保ったまま欠番として扱うこと
	dir := t.TempDir()
	pub := NewMangaPublisher()

	scripts := domain.PanelScripts{
		{PanelNumber: 1, Caption: "a"},
		{PanelNumber: 2, Caption: "b"},
		{PanelNumber: 3, Caption: "c"},
	}
	images := []domain.PanelImage{
		{PanelNumber: 1, Data: []byte("png-1")},
		{PanelNumber: 3, Data: []byte("png-3")},
	}

	result, err := pub.Publish(domain.Profile{Name: "X"}, scripts, images, Options{OutputDir: dir})
	if err != nil {
		t.Fatalf("公開に失敗したのだ: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "images", "panel_3.png")); err != nil {
		t.Errorf("パネル3は panel_3.png として保存されるべきなのだ: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "images", "panel_2.png")); err == nil {
		t.Error("欠番のパネル2が保存されているのだ")
	}

	raw, _ := os.ReadFile(result.MarkdownPath)
	if !strings.Contains(string(raw), "could not be rendered") {
		t.Error("欠番パネルへの注記がギャラリーに無いのだ")
	}
}

func TestMangaPublisher_EmptyData(t *testing.T) {
	dir := t.TempDir()
	pub := NewMangaPublisher()

	images := []domain.PanelImage{{PanelNumber: 1, Data: nil}}
	result, err := pub.Publish(domain.Profile{}, domain.PanelScripts{}, images, Options{OutputDir: dir})
	if err != nil {
		t.Fatalf("空データでも公開自体は成功するべきなのだ: %v", err)
	}
	if len(result.Panels) != 0 {
		t.Errorf("中身のない画像は保存しないべきなのだ: %d", len(result.Panels))
	}
}
