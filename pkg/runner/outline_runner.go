package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shouni/go-career-manga/pkg/domain"
	"github.com/shouni/go-career-manga/pkg/prompts"
)

// StoryOutlineRunner は、正規化済みプロフィールから物語アウトラインを生成する実体です。
// ヒーローズ・ジャーニーの各段階を実際のキャリア転機に対応づけるのだ。
type StoryOutlineRunner struct {
	promptBuilder prompts.ScriptPrompt
	aiClient      TextGenerator
	model         string
	panelCount    int
}

// NewStoryOutlineRunner は依存関係を注入して初期化します。
func NewStoryOutlineRunner(pb prompts.ScriptPrompt, ai TextGenerator, model string, panelCount int) *StoryOutlineRunner {
	return &StoryOutlineRunner{
		promptBuilder: pb,
		aiClient:      ai,
		model:         model,
		panelCount:    panelCount,
	}
}

// Run はプロフィールを物語アウトラインに変換します。
func (sr *StoryOutlineRunner) Run(ctx context.Context, profile domain.Profile) (domain.StoryOutline, error) {
	templateData := prompts.NewTemplateData(profile, sr.panelCount)
	finalPrompt, err := sr.promptBuilder.Build(prompts.ModeOutline, templateData)
	if err != nil {
		return domain.StoryOutline{}, domain.NewStageError(domain.StageOutline, domain.ErrorKindValidation,
			"アウトライン用プロンプトの生成に失敗しました", err)
	}

	slog.Info("OutlineRunner: Calling Gemini API", "model", sr.model, "subject", profile.Name)
	raw, err := sr.aiClient.Generate(ctx, finalPrompt, sr.model)
	if err != nil {
		return domain.StoryOutline{}, domain.NewStageError(domain.StageOutline, domain.ErrorKindTransport,
			"アウトライン生成の呼び出しに失敗しました", err)
	}

	outline, err := sr.parseResponse(raw)
	if err != nil {
		return domain.StoryOutline{}, domain.NewStageError(domain.StageOutline, domain.ErrorKindShape,
			"アウトライン応答の解析に失敗しました", err)
	}

	if err := outline.Validate(sr.panelCount); err != nil {
		return domain.StoryOutline{}, domain.NewStageError(domain.StageOutline, domain.ErrorKindShape,
			"アウトラインが期待する形になっていません", err)
	}

	slog.Info("OutlineRunner: outline generated", "beats", len(outline.Outline))
	return outline, nil
}

func (sr *StoryOutlineRunner) parseResponse(raw string) (domain.StoryOutline, error) {
	rawJSON := extractJSONPayload(raw)

	var outline domain.StoryOutline
	if err := json.Unmarshal([]byte(rawJSON), &outline); err != nil {
		return domain.StoryOutline{}, fmt.Errorf("AIからの応答に含まれるJSONの解析に失敗しました (応答抜粋: %q): %w", truncateString(raw, 200), err)
	}
	return outline, nil
}
