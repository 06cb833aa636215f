package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-career-manga/internal/builder"

	"github.com/spf13/cobra"
)

// generateCmd は、1件のプロフィールからキャリア漫画を生成するのだ。
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "プロフィールURLからキャリア漫画を一括生成しますなのだ。",
	Long: `LinkedInのプロフィールURLを取得・正規化し、物語アウトライン、パネル台本、
パネル画像、そしてギャラリー（story.md）を出力ディレクトリに生成するのだよ。`,
	RunE: generateCommand,
}

func init() {
	generateCmd.Flags().StringVarP(&opts.ProfileURL, "profile-url", "u", "", "変換するLinkedInプロフィールのURLなのだ。")
}

func generateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 1. 必須チェック
	if opts.ProfileURL == "" {
		return fmt.Errorf("プロフィール（--profile-url）を指定してほしいのだ")
	}

	// 2. 環境変数等から基本設定をロードし、CLIフラグを重ねるのだ
	cfg := loadRunConfig(cmd)

	if cfg.ScrapingDogAPIKey == "" && opts.MockProfile == "" && cfg.MockProfilePath == "" {
		return fmt.Errorf("エラー: 環境変数 SCRAPINGDOG_API_KEY が設定されていません。--mock-profile を使えばAPIなしでも試せるのだ")
	}

	slog.Info("キャリア漫画パイプラインを起動するのだ！",
		"profile_url", opts.ProfileURL,
		"text_model", cfg.GeminiModel,
		"image_model", cfg.GeminiImageModel,
		"output", opts.OutputDir)

	// 3. 依存一式を組み立ててパイプラインを実行するのだ
	appCtx, err := builder.NewAppContext(ctx, cfg)
	if err != nil {
		return fmt.Errorf("アプリケーションの初期化に失敗したのだ: %w", err)
	}
	manager, err := builder.BuildManager(appCtx)
	if err != nil {
		return fmt.Errorf("パイプラインの構築に失敗したのだ: %w", err)
	}

	result := manager.Run(ctx, opts.ProfileURL, opts.OutputDir, nil)
	if !result.Success {
		return fmt.Errorf("パイプラインが %s 工程で失敗したのだ (%s): %s",
			result.FailedStage, result.ErrorKind, result.Message)
	}

	slog.Info("すべての生成工程が完了したのだ！",
		"gallery", result.GalleryPath,
		"panels", len(result.Panels),
		"failed_panels", len(result.PanelErrors))
	fmt.Printf("📖 ギャラリー: %s\n", result.GalleryPath)
	for _, failure := range result.PanelErrors {
		fmt.Printf("⚠️  パネル %d は描画できなかったのだ: %s\n", failure.PanelNumber, failure.Message)
	}
	return nil
}
