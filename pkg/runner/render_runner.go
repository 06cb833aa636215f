package runner

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
	"github.com/shouni/go-career-manga/pkg/domain"
	"github.com/shouni/go-career-manga/pkg/prompts"
)

const (
	// defaultRateBurst により、開始直後に2枚までは同時にリクエストを開始できるのだ
	defaultRateBurst = 2

	// PanelAspectRatio は全パネル共通の縦横比です。ギャラリーのグリッドに揃えます。
	PanelAspectRatio = "1:1"
)

// PanelRenderRunner は、主人公の一貫性を保ちながら並列でパネル画像を生成する実体。
// 1枚の失敗でバッチ全体を落とさず、失敗パネルだけを個別に報告するのだ。
type PanelRenderRunner struct {
	imageGenerator PanelImageGenerator // 画像生成AI（Gemini）へのアダプター
	promptBuilder  prompts.ImagePrompt // 画風とシーンを合成するビルダー
	rateInterval   time.Duration       // APIリクエストの最小間隔
}

// NewPanelRenderRunner は、PanelRenderRunnerの新しいインスタンスを生成して返す。
func NewPanelRenderRunner(gen PanelImageGenerator, pb prompts.ImagePrompt, rateInterval time.Duration) *PanelRenderRunner {
	return &PanelRenderRunner{
		imageGenerator: gen,
		promptBuilder:  pb,
		rateInterval:   rateInterval,
	}
}

// Run は並列処理を用いて、各パネルの画像を生成するメインロジックなのだ。
// プロフィール写真が無い場合は、APIを一度も呼ばずに検証エラーで停止します。
func (rr *PanelRenderRunner) Run(ctx context.Context, profile domain.Profile, scripts domain.PanelScripts) ([]domain.PanelImage, []domain.PanelFailure, error) {
	if profile.ProfilePhoto == "" {
		return nil, nil, domain.NewStageError(domain.StageRender, domain.ErrorKindValidation,
			"プロフィール写真がないため描画できません", nil)
	}

	sorted := scripts.SortByNumber()

	// 全パネルで同じシードを使い、主人公の顔立ちを固定するのだ
	seed := domain.SeedFromName(profile.Name)

	images := make([]*domain.PanelImage, len(sorted))
	failures := make([]*domain.PanelFailure, len(sorted))
	eg, egCtx := errgroup.WithContext(ctx)

	// 設定された間隔で、レートリミット（流量制限）をかけるのだ
	limiter := rate.NewLimiter(rate.Every(rr.rateInterval), defaultRateBurst)
	slog.Info("並列パネル生成を開始するのだ", "count", len(sorted), "interval", rr.rateInterval)

	for i, script := range sorted {
		i, script := i, script // ゴルーチンのクロージャ対策なのだ

		eg.Go(func() error {
			// 1. レートリミットに従って、自分の番が来るまで待機するのだ
			if err := limiter.Wait(egCtx); err != nil {
				return err
			}

			// 2. 画風、シーン、キャプション描画指示を組み合わせてプロンプトを作るのだ
			prompt := rr.promptBuilder.BuildPanel(script)

			slog.Info("パネルを生成中...", "panel", script.PanelNumber, "subject", profile.Name)

			resp, err := rr.imageGenerator.GenerateMangaPanel(egCtx, imagedom.ImageGenerationRequest{
				Prompt:         prompt,
				NegativePrompt: prompts.NegativePanelPrompt,
				Seed:           &seed,
				ReferenceURL:   profile.ProfilePhoto,
				AspectRatio:    PanelAspectRatio,
			})
			if err != nil {
				// 1枚の失敗ではバッチを止めず、失敗として記録して続行するのだ
				slog.Error("パネル生成に失敗したのだ", "panel", script.PanelNumber, "error", err)
				failures[i] = &domain.PanelFailure{
					PanelNumber: script.PanelNumber,
					Message:     err.Error(),
				}
				return nil
			}

			images[i] = &domain.PanelImage{
				PanelNumber: script.PanelNumber,
				Data:        resp.Data,
				MimeType:    resp.MimeType,
			}
			slog.Info("パネル生成に成功したのだ", "panel", script.PanelNumber)
			return nil
		})
	}

	// すべての並列処理が完了するのを待つのだ
	// ここに届くエラーはコンテキスト中断だけで、個別パネルの失敗は含まれないのだ
	if err := eg.Wait(); err != nil {
		return nil, nil, domain.NewStageError(domain.StageRender, domain.ErrorKindTransport,
			"パネル生成が中断されました", err)
	}

	var rendered []domain.PanelImage
	var failed []domain.PanelFailure
	for i := range sorted {
		if images[i] != nil {
			rendered = append(rendered, *images[i])
		}
		if failures[i] != nil {
			failed = append(failed, *failures[i])
		}
	}

	if len(rendered) == 0 {
		return nil, failed, domain.NewStageError(domain.StageRender, domain.ErrorKindRender,
			"すべてのパネルの描画に失敗しました", nil)
	}

	slog.Info("パネル生成が完了したのだ", "rendered", len(rendered), "failed", len(failed))
	return rendered, failed, nil
}
