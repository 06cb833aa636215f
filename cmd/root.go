package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shouni/go-career-manga/internal/config"

	"github.com/spf13/cobra"
)

// opts は CLI フラグの値を集約する実行時パラメータなのだ。
var opts config.GenerateOptions

var rootCmd = &cobra.Command{
	Use:   "career-manga",
	Short: "LinkedInのプロフィールを8コマのキャリア漫画に変換するのだ。",
	Long: `LinkedInのプロフィールURLから経歴を取得し、ヒーローズ・ジャーニー構成の
物語アウトライン、パネル台本、そして白黒漫画パネルを生成するのだよ。`,
	PersistentPreRunE: preRunAppE,
	SilenceUsage:      true,
}

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(cmd *cobra.Command) {
	// --- 生成結果の出力設定 ---
	cmd.PersistentFlags().StringVarP(&opts.OutputDir, "output-dir", "o", config.DefaultOutputDir, "パネル画像とギャラリーの保存先ディレクトリなのだ。")

	// --- AIモデル・挙動設定 ---
	cmd.PersistentFlags().StringVar(&opts.AIModel, "model", config.DefaultModel, "テキスト生成に使う Gemini モデル名なのだ。")
	cmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", config.DefaultImageModel, "画像生成に使う Gemini モデル名なのだ。")
	cmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "Webリクエストのタイムアウトなのだ。")
	cmd.PersistentFlags().DurationVar(&opts.RateInterval, "rate-interval", config.DefaultRateLimit, "画像生成リクエストの最小間隔なのだ。")

	// --- パネル設定 ---
	cmd.PersistentFlags().IntVarP(&opts.PanelCount, "panel-count", "p", config.DefaultPanelCount, "生成する漫画パネルの数を指定するのだ。")

	// --- 開発用 ---
	cmd.PersistentFlags().StringVar(&opts.MockProfile, "mock-profile", "", "ScrapingDog の代わりに読むローカルJSONのパスなのだ（APIクレジット節約用）。")
}

// loadRunConfig は環境変数由来の設定にCLIフラグを重ねた実行時設定を返すのだ。
// モデル系フラグは明示指定されたときだけ GEMINI_MODEL / IMAGE_GEMINI_MODEL を上書きする。
// フラグ既定値で環境変数を潰さないように、未指定なら環境変数側の値を採用するのだよ。
func loadRunConfig(cmd *cobra.Command) *config.Config {
	cfg := config.LoadConfig()
	cfg.Options = opts

	if cmd.Flags().Changed("model") {
		cfg.GeminiModel = opts.AIModel
	}
	cfg.Options.AIModel = cfg.GeminiModel

	if cmd.Flags().Changed("image-model") {
		cfg.GeminiImageModel = opts.ImageModel
	}
	cfg.Options.ImageModel = cfg.GeminiImageModel

	return cfg
}

// preRunAppE は、コマンド実行前に環境変数などの必須チェックを行うのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	// Gemini APIを利用するため、APIキーの存在チェックは欠かせないのだ！
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須なのだ")
	}

	return nil
}

func init() {
	addAppFlags(rootCmd)
	rootCmd.AddCommand(generateCmd, serveCmd)
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
// Ctrl-C (SIGINT) や SIGTERM でコマンドのコンテキストをキャンセルし、
// 実行中のパイプラインを途中で止められるようにしている。
func Execute() {
	ctx, stop := signalContext()
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// signalContext は割り込みシグナルでキャンセルされるコンテキストを返すのだ。
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
