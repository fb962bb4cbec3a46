package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Clients はAWS設定とサービスクライアントを管理
type Clients struct {
	cfg      aws.Config
	endpoint string

	// 遅延初期化されるクライアント
	s3 *s3.Client
}

// NewAwsClients は認証情報からAWS設定を読み込んでクライアント管理構造体を作成
func NewAwsClients(ctx context.Context, awsCtx *Context) (*Clients, error) {
	cfg, err := awsCtx.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	return &Clients{cfg: cfg, endpoint: awsCtx.Endpoint}, nil
}

// S3 は遅延初期化でS3クライアントを取得
// エンドポイント指定時はS3互換ストレージ向けにパス形式でアクセスする
func (c *Clients) S3() *s3.Client {
	if c.s3 == nil {
		c.s3 = s3.NewFromConfig(c.cfg, func(o *s3.Options) {
			if c.endpoint != "" {
				o.BaseEndpoint = aws.String(c.endpoint)
				o.UsePathStyle = true
			}
		})
	}
	return c.s3
}
