package prompts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shouni/go-career-manga/pkg/domain"
)

const (
	// ModeOutline は物語アウトライン生成用のテンプレートです。
	ModeOutline = "outline"
	// ModePanels はパネル台本生成用のテンプレートです。
	ModePanels = "panels"
)

var (
	//go:embed outline.md
	OutlinePrompt string
	//go:embed panels.md
	PanelsPrompt string
)

// allTemplates はモードとテンプレート文字列を紐づけるマップなのだ。
var allTemplates = map[string]string{
	ModeOutline: OutlinePrompt,
	ModePanels:  PanelsPrompt,
}

// TemplateData はプロンプトテンプレートに渡すデータ構造です。
// すべて正規化済み Profile から導出されるため、未定義値が混入することはありません。
type TemplateData struct {
	Name             string
	Headline         string
	Location         string
	About            string
	CurrentRole      string
	CurrentCompany   string
	FirstSchool      string
	EducationSummary string // 例: "MIT (CS), Stanford (MBA)"
	CareerSummary    string // 例: "Acme (Engineer) → Initech (Manager)"
	CompanyChain     string // 例: "Acme → Initech"
	PanelCount       int
	ProfileJSON      string // プロフィール全体のJSONダンプ
	OutlineJSON      string // panels モードのみ: アウトラインのJSONダンプ
}

// NewTemplateData はプロフィールからテンプレート用のデータを組み立てるのだ。
// 空のフィールドにはプロンプトが破綻しない程度の汎用値を補います。
func NewTemplateData(profile domain.Profile, panelCount int) TemplateData {
	data := TemplateData{
		Name:             profile.Name,
		Headline:         profile.Headline,
		Location:         profile.Location,
		About:            profile.About,
		CurrentRole:      profile.CurrentRole(),
		CurrentCompany:   profile.CurrentCompany(),
		EducationSummary: summarizeEducation(profile.Education),
		CareerSummary:    summarizeCareer(profile.Experience),
		CompanyChain:     companyChain(profile.Experience),
		PanelCount:       panelCount,
	}

	if len(profile.Education) > 0 {
		data.FirstSchool = profile.Education[0].School
	}
	if data.Name == "" {
		data.Name = "The Hero"
	}
	if data.Location == "" {
		data.Location = "Unknown Location"
	}
	if data.About == "" {
		data.About = "Professional"
	}
	if data.CurrentRole == "" {
		data.CurrentRole = "Professional"
	}
	if data.CurrentCompany == "" {
		data.CurrentCompany = "Their Company"
	}

	if raw, err := json.MarshalIndent(profile, "", "  "); err == nil {
		data.ProfileJSON = string(raw)
	}
	return data
}

// WithOutline はアウトラインのJSONダンプを添えた複製を返します（panels モード用）。
func (d TemplateData) WithOutline(outline domain.StoryOutline) TemplateData {
	if raw, err := json.MarshalIndent(outline, "", "  "); err == nil {
		d.OutlineJSON = string(raw)
	}
	return d
}

// summarizeEducation は学歴を "MIT (CS), Stanford (MBA)" 形式に要約します。
func summarizeEducation(edus []domain.Education) string {
	if len(edus) == 0 {
		return "College"
	}
	parts := make([]string, 0, len(edus))
	for _, e := range edus {
		if e.Degree != "" {
			parts = append(parts, fmt.Sprintf("%s (%s)", e.School, e.Degree))
		} else {
			parts = append(parts, e.School)
		}
	}
	return strings.Join(parts, ", ")
}

// summarizeCareer は職歴の新しい順を "Acme (Engineer) → Initech (Manager)" 形式に要約します。
func summarizeCareer(exps []domain.Experience) string {
	if len(exps) == 0 {
		return "An unwritten career"
	}
	// プロンプトが長くなりすぎないよう、直近5件までに制限する
	limit := len(exps)
	if limit > 5 {
		limit = 5
	}
	parts := make([]string, 0, limit)
	for _, e := range exps[:limit] {
		if e.Title != "" {
			parts = append(parts, fmt.Sprintf("%s (%s)", e.Company, e.Title))
		} else {
			parts = append(parts, e.Company)
		}
	}
	return strings.Join(parts, " → ")
}

// companyChain は所属企業名だけを "Acme → Initech" 形式で連結します。
func companyChain(exps []domain.Experience) string {
	parts := make([]string, 0, len(exps))
	for _, e := range exps {
		if e.Company != "" {
			parts = append(parts, e.Company)
		}
	}
	return strings.Join(parts, " → ")
}
