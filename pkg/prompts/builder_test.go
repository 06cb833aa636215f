package prompts

import (
	"strings"
	"testing"

	"github.com/shouni/go-career-manga/pkg/domain"
)

func testProfile() domain.Profile {
	return domain.Profile{
		Name:     "Sarah Chen",
		Location: "San Francisco Bay Area",
		About:    "Builder of things.",
		Experience: []domain.Experience{
			{Title: "Staff Engineer", Company: "Acme"},
			{Title: "Engineer", Company: "Initech"},
		},
		Education:    []domain.Education{{School: "MIT", Degree: "CS"}},
		Skills:       []string{},
		ProfileURL:   "https://www.linkedin.com/in/sarah-chen",
		ProfilePhoto: "https://x/y.jpg",
	}
}

func TestTextPromptBuilder_Outline(t *testing.T) {
	builder, err := NewTextPromptBuilder()
	if err != nil {
		t.Fatalf("ビルダーの初期化に失敗したのだ: %v", err)
	}

	data := NewTemplateData(testProfile(), 8)
	prompt, err := builder.Build(ModeOutline, data)
	if err != nil {
		t.Fatalf("プロンプト生成に失敗したのだ: %v", err)
	}

	for _, want := range []string{
		"Sarah Chen",
		"MIT (CS)",
		"Acme (Staff Engineer) → Initech (Engineer)",
		"San Francisco Bay Area",
		"exactly 8 entries",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("プロンプトに %q が含まれていないのだ", want)
		}
	}
}

func TestTextPromptBuilder_Panels(t *testing.T) {
	builder, err := NewTextPromptBuilder()
	if err != nil {
		t.Fatalf("ビルダーの初期化に失敗したのだ: %v", err)
	}

	outline := domain.StoryOutline{Outline: []domain.OutlineBeat{
		{Stage: "Ordinary World", PlotPoint: "A film student in a small town"},
	}}
	data := NewTemplateData(testProfile(), 8).WithOutline(outline)

	prompt, err := builder.Build(ModePanels, data)
	if err != nil {
		t.Fatalf("プロンプト生成に失敗したのだ: %v", err)
	}

	if !strings.Contains(prompt, "Ordinary World") {
		t.Error("アウトラインがプロンプトに埋め込まれていないのだ")
	}
	if !strings.Contains(prompt, `"panelNumber": 1`) {
		t.Error("出力スキーマの指示が欠けているのだ")
	}
	if !strings.Contains(prompt, "numbered 1 through 8") {
		t.Error("パネル番号の指示が欠けているのだ")
	}
}

func TestTextPromptBuilder_UnknownMode(t *testing.T) {
	builder, err := NewTextPromptBuilder()
	if err != nil {
		t.Fatalf("ビルダーの初期化に失敗したのだ: %v", err)
	}
	if _, err := builder.Build("unknown", TemplateData{}); err == nil {
		t.Error("不明なモードでエラーが発生しませんでした")
	}
}

func TestNewTemplateData_EmptyProfile(t *testing.T) {
	// 空プロフィールでもテンプレートが破綻しない汎用値に倒れること
	data := NewTemplateData(domain.Profile{}, 8)

	if data.Name != "The Hero" {
		t.Errorf("空の名前は汎用値に倒すべきなのだ: %q", data.Name)
	}
	if data.Location != "Unknown Location" {
		t.Errorf("空の所在地は汎用値に倒すべきなのだ: %q", data.Location)
	}
	if data.EducationSummary != "College" {
		t.Errorf("空の学歴は汎用値に倒すべきなのだ: %q", data.EducationSummary)
	}
	if data.PanelCount != 8 {
		t.Errorf("パネル数が引き継がれていないのだ: %d", data.PanelCount)
	}
}

func TestImagePromptBuilder_BuildPanel(t *testing.T) {
	pb := NewImagePromptBuilder("extra style suffix")
	script := domain.PanelScript{
		PanelNumber: 3,
		Caption:     "Why did I say yes to this?",
		ImagePrompt: "Manga style. Sarah Chen staring at a failing deploy pipeline",
	}

	prompt := pb.BuildPanel(script)

	if !strings.Contains(prompt, `"Why did I say yes to this?"`) {
		t.Error("キャプションが原文のままプロンプトに含まれるべきなのだ")
	}
	if !strings.Contains(prompt, "ONE clean speech bubble") {
		t.Error("吹き出しの指示が欠けているのだ")
	}
	if !strings.Contains(prompt, script.ImagePrompt) {
		t.Error("シーン指示が欠けているのだ")
	}
	if !strings.Contains(prompt, "black and white manga") {
		t.Error("画風指示が含まれるべきなのだ")
	}
	if !strings.Contains(prompt, "extra style suffix") {
		t.Error("追加の画風指定が反映されていないのだ")
	}
}
