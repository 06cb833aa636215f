package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-career-manga/internal/builder"
	"github.com/shouni/go-career-manga/internal/server"
	"github.com/shouni/go-career-manga/pkg/progress"

	"github.com/spf13/cobra"
)

// serveCmd は、漫画生成のWeb APIサーバーを起動するのだ。
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "漫画生成のHTTP APIサーバーを起動しますなのだ。",
	Long: `ジョブの投入（POST /api/jobs）、状態の確認（GET /api/jobs/:id）、
WebSocketでの進捗購読（GET /api/jobs/:id/ws）を提供するのだよ。
生成されたパネルとギャラリーは /output 以下で配信されるのだ。`,
	RunE: serveCommand,
}

func serveCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg := loadRunConfig(cmd)

	if cfg.ScrapingDogAPIKey == "" && opts.MockProfile == "" && cfg.MockProfilePath == "" {
		return fmt.Errorf("エラー: 環境変数 SCRAPINGDOG_API_KEY が設定されていません。--mock-profile を使えばAPIなしでも試せるのだ")
	}

	appCtx, err := builder.NewAppContext(ctx, cfg)
	if err != nil {
		return fmt.Errorf("アプリケーションの初期化に失敗したのだ: %w", err)
	}
	manager, err := builder.BuildManager(appCtx)
	if err != nil {
		return fmt.Errorf("パイプラインの構築に失敗したのだ: %w", err)
	}

	handler := server.NewHandler(manager, progress.NewService(), server.NewJobStore(), opts.OutputDir)
	router := server.NewRouter(handler)

	addr := ":" + cfg.Port
	slog.Info("APIサーバーを起動するのだ！", "addr", addr, "output", opts.OutputDir)
	if err := router.Run(addr); err != nil {
		return fmt.Errorf("サーバーの起動に失敗したのだ: %w", err)
	}
	return nil
}
