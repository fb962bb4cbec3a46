package aws

import (
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// Context AwsContext は認証情報と接続先を保持
type Context struct {
	Profile  string
	Region   string
	Endpoint string // S3互換エンドポイント（空ならAWS標準）

	// SDKが使うHTTPクライアント（nilならSDKのデフォルト）
	HTTPClient *http.Client

	config *aws.Config // AWS設定のキャッシュ（非公開）
}
