package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-career-manga/pkg/domain"
	"github.com/shouni/go-career-manga/pkg/progress"
	"github.com/shouni/go-career-manga/pkg/publisher"
)

// ProfileScraper はプロフィール取得工程への契約です。
// 本物の ScrapingDog クライアントとローカルのモック実装がこれを満たします。
type ProfileScraper interface {
	FetchProfile(ctx context.Context, profileURL string) (domain.Profile, error)
}

// OutlineRunner は物語アウトライン生成工程への契約です。
type OutlineRunner interface {
	Run(ctx context.Context, profile domain.Profile) (domain.StoryOutline, error)
}

// ScriptRunner はパネル台本生成工程への契約です。
type ScriptRunner interface {
	Run(ctx context.Context, profile domain.Profile, outline domain.StoryOutline) (domain.PanelScripts, error)
}

// RenderRunner はパネル描画工程への契約です。
type RenderRunner interface {
	Run(ctx context.Context, profile domain.Profile, scripts domain.PanelScripts) ([]domain.PanelImage, []domain.PanelFailure, error)
}

// Publisher は成果物の永続化工程への契約です。
type Publisher interface {
	Publish(profile domain.Profile, scripts domain.PanelScripts, images []domain.PanelImage, opts publisher.Options) (publisher.PublishResult, error)
}

// Manager は、キャリア漫画パイプラインの各工程を順に実行するオーケストレーターです。
// 工程は scrape → outline → script → render → publish の固定順で、
// 最初に失敗した工程でパイプラインを停止するのだ。
type Manager struct {
	scraper   ProfileScraper
	outline   OutlineRunner
	script    ScriptRunner
	render    RenderRunner
	publisher Publisher
}

// ManagerArgs は Manager の構築に必要な依存一式です。
type ManagerArgs struct {
	Scraper   ProfileScraper
	Outline   OutlineRunner
	Script    ScriptRunner
	Render    RenderRunner
	Publisher Publisher
}

// New は各工程の Runner を束ねた Manager を初期化します。
func New(args ManagerArgs) (*Manager, error) {
	if args.Scraper == nil {
		return nil, fmt.Errorf("ProfileScraper は必須です")
	}
	if args.Outline == nil {
		return nil, fmt.Errorf("OutlineRunner は必須です")
	}
	if args.Script == nil {
		return nil, fmt.Errorf("ScriptRunner は必須です")
	}
	if args.Render == nil {
		return nil, fmt.Errorf("RenderRunner は必須です")
	}
	if args.Publisher == nil {
		return nil, fmt.Errorf("Publisher は必須です")
	}

	return &Manager{
		scraper:   args.Scraper,
		outline:   args.Outline,
		script:    args.Script,
		render:    args.Render,
		publisher: args.Publisher,
	}, nil
}

// Run はプロフィールURLから漫画一式を生成するメインロジックなのだ。
// tracker は nil でもよく、その場合は進捗の配信を行いません。
func (m *Manager) Run(ctx context.Context, profileURL, outputDir string, tracker *progress.Tracker) domain.PipelineResult {
	report := func(stage domain.Stage, pct int, msg string) {
		if tracker != nil {
			tracker.UpdateProgress(string(stage), pct, msg)
		}
	}

	// 1. プロフィールの取得と正規化
	report(domain.StageScrape, 5, "LinkedInプロフィールを取得中...")
	profile, err := m.scraper.FetchProfile(ctx, profileURL)
	if err != nil {
		return m.fail(tracker, domain.StageScrape, err)
	}
	report(domain.StageScrape, 25, "プロフィールを取得したのだ")

	// 2. 物語アウトラインの生成
	report(domain.StageOutline, 30, "物語アウトラインを構成中...")
	outline, err := m.outline.Run(ctx, profile)
	if err != nil {
		return m.fail(tracker, domain.StageOutline, err)
	}
	report(domain.StageOutline, 50, "アウトラインが完成したのだ")

	// 3. パネル台本への展開
	report(domain.StageScript, 55, "パネル台本を執筆中...")
	scripts, err := m.script.Run(ctx, profile, outline)
	if err != nil {
		return m.fail(tracker, domain.StageScript, err)
	}
	report(domain.StageScript, 75, "台本が完成したのだ")

	// 4. パネル描画（個別失敗は許容する）
	report(domain.StageRender, 80, "パネルを描画中...")
	images, panelFailures, err := m.render.Run(ctx, profile, scripts)
	if err != nil {
		return m.fail(tracker, domain.StageRender, err)
	}

	// 5. 成果物の公開（書き出しの失敗は render として分類する）
	pubResult, err := m.publisher.Publish(profile, scripts, images, publisher.Options{OutputDir: outputDir})
	if err != nil {
		return m.fail(tracker, domain.StageRender, domain.NewStageError(
			domain.StageRender, domain.ErrorKindRender, "成果物の書き出しに失敗しました", err))
	}

	if tracker != nil {
		tracker.Complete("漫画が完成したのだ！")
	}
	slog.Info("パイプラインが完了したのだ",
		"subject", profile.Name,
		"panels", len(pubResult.Panels),
		"failed_panels", len(panelFailures),
	)

	return domain.PipelineResult{
		Success:     true,
		Profile:     &profile,
		Outline:     &outline,
		Scripts:     scripts,
		Panels:      pubResult.Panels,
		PanelErrors: panelFailures,
		GalleryPath: pubResult.MarkdownPath,
	}
}

// fail は工程の失敗を記録し、一様な失敗結果に変換します。
func (m *Manager) fail(tracker *progress.Tracker, stage domain.Stage, err error) domain.PipelineResult {
	stageErr := domain.AsStageError(stage, err)
	slog.Error("パイプラインが停止したのだ",
		"stage", stageErr.Stage,
		"kind", stageErr.Kind,
		"error", stageErr,
	)
	if tracker != nil {
		tracker.Fail(stageErr.Message)
	}
	return domain.FailureResult(stageErr)
}
