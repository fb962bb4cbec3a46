package cmd

import (
	internalaws "assetup/internal/aws"
	"assetup/internal/config"
	"assetup/internal/logger"
	s3svc "assetup/internal/service/s3"
	"assetup/internal/service/supabase"
	"assetup/internal/service/upload"
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

// ストレージAPIの種類
const (
	backendREST = "rest"
	backendS3   = "s3"
)

// resolveSettings はフラグ未指定の項目を環境変数（またはデフォルト値）で埋める
func resolveSettings(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("bucket") && bucket != "" {
		logger.Log.Debug().Str("bucket", bucket).Msg("-bオプションで指定されたバケットを使用します")
	} else {
		bucket = cfg.Bucket
	}
	if !cmd.Flags().Changed("root") || assetsRoot == "" {
		assetsRoot = cfg.AssetsRoot
	}
	if !cmd.Flags().Changed("timeout") {
		timeout = cfg.Timeout
	} else if timeout <= 0 {
		return fmt.Errorf("--timeout: %w: %s", config.ErrInvalidTimeout, timeout)
	}
	return nil
}

// newObjectStore は指定されたバックエンドのObjectStoreと後始末用の関数を返す
func newObjectStore(ctx context.Context, kind string, cfg *config.Config) (upload.ObjectStore, func(), error) {
	switch kind {
	case backendREST:
		client := supabase.NewClient(supabase.Config{
			BaseURL:    cfg.StorageURL(),
			Bucket:     bucket,
			ServiceKey: cfg.ServiceKey,
			Timeout:    timeout,
		})
		return client, client.Close, nil

	case backendS3:
		httpClient := &http.Client{Timeout: timeout}
		clients, err := internalaws.NewAwsClients(ctx, &internalaws.Context{
			Profile:    cfg.AwsProfile,
			Region:     cfg.AwsRegion,
			Endpoint:   cfg.S3URL(),
			HTTPClient: httpClient,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("AWS設定の読み込みに失敗: %w", err)
		}
		logger.Log.Debug().Str("endpoint", cfg.S3URL()).Msg("S3互換APIを使用します")
		return s3svc.NewObjectStore(clients.S3(), bucket), httpClient.CloseIdleConnections, nil

	default:
		return nil, nil, fmt.Errorf("不明なバックエンドです: %s (rest または s3 を指定してください)", kind)
	}
}
