package builder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-career-manga/internal/config"
	"github.com/shouni/go-career-manga/pkg/generator"
	"github.com/shouni/go-career-manga/pkg/prompts"
	"github.com/shouni/go-career-manga/pkg/publisher"
	"github.com/shouni/go-career-manga/pkg/runner"
	"github.com/shouni/go-career-manga/pkg/scraper"
	"github.com/shouni/go-career-manga/pkg/workflow"
)

// geminiTextAdapter は gemini クライアントを Runner 側の細い契約に合わせるアダプターなのだ。
type geminiTextAdapter struct {
	appCtx *AppContext
}

func (a *geminiTextAdapter) Generate(ctx context.Context, prompt string, model string) (string, error) {
	resp, err := a.appCtx.aiClient.GenerateContent(ctx, prompt, model)
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// BuildScraper はプロフィール取得クライアントを構築します。
// モックのパスが指定されている場合は、APIを呼ばないローカル実装を返すのだ。
func BuildScraper(appCtx *AppContext) workflow.ProfileScraper {
	mockPath := appCtx.Options.MockProfile
	if mockPath == "" {
		mockPath = appCtx.Config.MockProfilePath
	}
	if mockPath != "" {
		slog.Info("モックプロフィールを使用するのだ", "path", mockPath)
		return scraper.NewMockClient(mockPath)
	}

	timeout := appCtx.Options.HTTPTimeout
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}
	return scraper.New(
		appCtx.Config.ScrapingDogAPIKey,
		timeout,
		scraper.WithBaseURL(appCtx.Config.ScrapingDogBaseURL),
	)
}

// BuildOutlineRunner は物語アウトライン生成の Runner を構築します。
func BuildOutlineRunner(appCtx *AppContext) (workflow.OutlineRunner, error) {
	pb, err := prompts.NewTextPromptBuilder()
	if err != nil {
		return nil, fmt.Errorf("TextPromptBuilder の新規作成に失敗しました: %w", err)
	}
	return runner.NewStoryOutlineRunner(
		pb,
		&geminiTextAdapter{appCtx: appCtx},
		resolveModel(appCtx),
		resolvePanelCount(appCtx),
	), nil
}

// BuildScriptRunner はパネル台本生成の Runner を構築します。
func BuildScriptRunner(appCtx *AppContext) (workflow.ScriptRunner, error) {
	pb, err := prompts.NewTextPromptBuilder()
	if err != nil {
		return nil, fmt.Errorf("TextPromptBuilder の新規作成に失敗しました: %w", err)
	}
	return runner.NewPanelScriptRunner(
		pb,
		&geminiTextAdapter{appCtx: appCtx},
		resolveModel(appCtx),
		resolvePanelCount(appCtx),
	), nil
}

// BuildRenderRunner はパネル描画の Runner を構築します。
func BuildRenderRunner(appCtx *AppContext) (workflow.RenderRunner, error) {
	imageModel := appCtx.Options.ImageModel
	if imageModel == "" {
		imageModel = appCtx.Config.GeminiImageModel
	}

	imgGen, err := generator.InitializeImageGenerator(appCtx.httpClient, appCtx.aiClient, imageModel)
	if err != nil {
		return nil, fmt.Errorf("GeminiGeneratorの初期化に失敗したのだ: %w", err)
	}

	rateInterval := appCtx.Options.RateInterval
	if rateInterval <= 0 {
		rateInterval = config.DefaultRateLimit
	}

	return runner.NewPanelRenderRunner(
		imgGen,
		prompts.NewImagePromptBuilder(appCtx.Config.ImagePromptSuffix),
		rateInterval,
	), nil
}

// BuildManager はパイプライン全工程を束ねた Manager を構築するのだ。
func BuildManager(appCtx *AppContext) (*workflow.Manager, error) {
	outlineRunner, err := BuildOutlineRunner(appCtx)
	if err != nil {
		return nil, err
	}
	scriptRunner, err := BuildScriptRunner(appCtx)
	if err != nil {
		return nil, err
	}
	renderRunner, err := BuildRenderRunner(appCtx)
	if err != nil {
		return nil, err
	}

	return workflow.New(workflow.ManagerArgs{
		Scraper:   BuildScraper(appCtx),
		Outline:   outlineRunner,
		Script:    scriptRunner,
		Render:    renderRunner,
		Publisher: publisher.NewMangaPublisher(),
	})
}

func resolveModel(appCtx *AppContext) string {
	if appCtx.Options.AIModel != "" {
		return appCtx.Options.AIModel
	}
	return appCtx.Config.GeminiModel
}

func resolvePanelCount(appCtx *AppContext) int {
	if appCtx.Options.PanelCount > 0 {
		return appCtx.Options.PanelCount
	}
	return config.DefaultPanelCount
}
