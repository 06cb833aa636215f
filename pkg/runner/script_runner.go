package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shouni/go-career-manga/pkg/domain"
	"github.com/shouni/go-career-manga/pkg/prompts"
)

// PanelScriptRunner は、アウトラインをパネル単位の台本に展開する実体です。
// 各パネルにキャプション・あらすじ・画像プロンプトを持たせるのだ。
type PanelScriptRunner struct {
	promptBuilder prompts.ScriptPrompt
	aiClient      TextGenerator
	model         string
	panelCount    int
}

// NewPanelScriptRunner は依存関係を注入して初期化します。
func NewPanelScriptRunner(pb prompts.ScriptPrompt, ai TextGenerator, model string, panelCount int) *PanelScriptRunner {
	return &PanelScriptRunner{
		promptBuilder: pb,
		aiClient:      ai,
		model:         model,
		panelCount:    panelCount,
	}
}

// Run はアウトラインの進行順を保ったままパネル台本のバッチを生成します。
func (sr *PanelScriptRunner) Run(ctx context.Context, profile domain.Profile, outline domain.StoryOutline) (domain.PanelScripts, error) {
	templateData := prompts.NewTemplateData(profile, sr.panelCount).WithOutline(outline)
	finalPrompt, err := sr.promptBuilder.Build(prompts.ModePanels, templateData)
	if err != nil {
		return nil, domain.NewStageError(domain.StageScript, domain.ErrorKindValidation,
			"台本用プロンプトの生成に失敗しました", err)
	}

	slog.Info("ScriptRunner: Calling Gemini API", "model", sr.model, "panels", sr.panelCount)
	raw, err := sr.aiClient.Generate(ctx, finalPrompt, sr.model)
	if err != nil {
		return nil, domain.NewStageError(domain.StageScript, domain.ErrorKindTransport,
			"台本生成の呼び出しに失敗しました", err)
	}

	scripts, err := sr.parseResponse(raw)
	if err != nil {
		return nil, domain.NewStageError(domain.StageScript, domain.ErrorKindShape,
			"台本応答の解析に失敗しました", err)
	}

	if err := scripts.Validate(); err != nil {
		return nil, domain.NewStageError(domain.StageScript, domain.ErrorKindShape,
			"台本バッチが期待する形になっていません", err)
	}

	slog.Info("ScriptRunner: panel scripts generated", "count", len(scripts))
	return scripts, nil
}

func (sr *PanelScriptRunner) parseResponse(raw string) (domain.PanelScripts, error) {
	rawJSON := extractJSONPayload(raw)

	var resp domain.PanelScriptResponse
	if err := json.Unmarshal([]byte(rawJSON), &resp); err != nil {
		return nil, fmt.Errorf("AIからの応答に含まれるJSONの解析に失敗しました (応答抜粋: %q): %w", truncateString(raw, 200), err)
	}
	return domain.PanelScripts(resp.Panels), nil
}
