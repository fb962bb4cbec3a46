package cmd

import (
	"assetup/internal/config"
	"assetup/internal/logger"
	"assetup/internal/service/common"
	"assetup/internal/service/upload"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// AppName はコマンド名
const AppName = "assetup"

var (
	bucket         string
	assetsRoot     string
	targets        []string
	backend        string
	timeout        time.Duration
	dryRun         bool
	noSkipExisting bool
	sniff          bool
	showProgress   bool
	verbose        bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   AppName,
	Short: "画像アセットをストレージバケットに一括アップロードする",
	Long: `ローカルの画像アセットをSupabase Storageのバケットにアップロードします。
アセットルートからの相対パスをそのままオブジェクトキーにします。
例: public/images/4613-grp-a/02-DFD-2.jpg → 4613-grp-a/02-DFD-2.jpg

x-upsert: true でアップロードするため、何度実行しても安全です。
デフォルトでは既に存在するオブジェクトはスキップします（HEADで確認）。

必要な環境変数:
  SUPABASE_URL               SupabaseプロジェクトのURL
  SUPABASE_SERVICE_ROLE_KEY  サービスロールキー
任意:
  PROJECT_BUCKET             バケット名（デフォルト: ` + config.DefaultBucket + `）
  ASSETS_ROOT                アセットルート（デフォルト: ` + config.DefaultAssetsRoot + `）

例:
  ` + AppName + `                      # アップロード
  ` + AppName + ` --dry-run            # 対象を表示するだけ
  ` + AppName + ` --no-skip-existing   # 既存オブジェクトも上書き
  ` + AppName + ` -b my-bucket -t "gallery/*.jpg"`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runUpload,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	RootCmd.Flags().StringVarP(&bucket, "bucket", "b", "", "バケット名（デフォルト: 環境変数 PROJECT_BUCKET または "+config.DefaultBucket+"）")
	RootCmd.Flags().StringVarP(&assetsRoot, "root", "r", "", "アセットのルートディレクトリ（デフォルト: 環境変数 ASSETS_ROOT または "+config.DefaultAssetsRoot+"）")
	RootCmd.Flags().StringSliceVarP(&targets, "target", "t", nil, "アップロード対象のパターン（ルートからの相対パス、複数指定可）")
	RootCmd.Flags().StringVar(&backend, "backend", backendREST, "ストレージAPI (rest|s3)")
	RootCmd.Flags().DurationVar(&timeout, "timeout", 0, "1リクエストあたりのタイムアウト（デフォルト: 環境変数 UPLOAD_TIMEOUT または 60s）")
	RootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "アップロードせずに対象ファイルを表示する")
	RootCmd.Flags().BoolVar(&noSkipExisting, "no-skip-existing", false, "既存オブジェクトの確認をせず常にアップロードする")
	RootCmd.Flags().BoolVar(&sniff, "sniff", false, "拡張子で判定できない場合にファイルの中身からContent-Typeを推定する")
	RootCmd.Flags().BoolVar(&showProgress, "progress", false, "プログレスバーを標準エラーに表示する")
	RootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "デバッグログを表示する")
}

func runUpload(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if verbose {
		logger.SetLevel("debug")
	} else {
		logger.SetLevel(cfg.LogLevel)
	}

	// 認証情報がなければ列挙やリクエストの前に中断する
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s エラー: %w", common.ErrorIcon, err)
	}

	if err := resolveSettings(cmd, cfg); err != nil {
		return fmt.Errorf("%s エラー: %w", common.ErrorIcon, err)
	}

	patterns := targets
	if len(patterns) == 0 {
		patterns = upload.DefaultTargets
	}
	assets, err := upload.FindTargets(assetsRoot, patterns)
	if err != nil {
		if errors.Is(err, upload.ErrNoTargets) {
			return fmt.Errorf("%s %w: %s 配下に対象ファイルがあるか確認してください", common.ErrorIcon, err, assetsRoot)
		}
		return fmt.Errorf("%s 対象ファイルの列挙に失敗: %w", common.ErrorIcon, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s Found %d files to upload to bucket '%s'.\n", common.SearchIcon, len(assets), bucket)

	opts := upload.Options{
		Bucket:       bucket,
		DryRun:       dryRun,
		SkipExisting: !noSkipExisting,
		Sniff:        sniff,
		Timeout:      timeout,
	}
	if showProgress {
		opts.Progress = cmd.ErrOrStderr()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// ドライランではクライアントを作らない（リクエストは一切発行しない）
	var store upload.ObjectStore
	if dryRun {
		fmt.Fprintf(out, "%s ドライランモード: アップロードは行いません\n", common.InfoIcon)
	} else {
		s, closeStore, err := newObjectStore(ctx, backend, cfg)
		if err != nil {
			return fmt.Errorf("%s ストレージクライアントの作成に失敗: %w", common.ErrorIcon, err)
		}
		defer closeStore()
		store = s
	}

	upload.NewRunner(store, opts, out).Run(ctx, assets)
	return nil
}
