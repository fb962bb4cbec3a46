package aws

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateAwsEnv はホストの ~/.aws や認証情報の影響を受けないようにする
func isolateAwsEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "credentials"))
	t.Setenv("AWS_PROFILE", "")
	t.Setenv("AWS_ENDPOINT_URL", "")
	t.Setenv("AWS_ENDPOINT_URL_S3", "")
	t.Setenv("AWS_ACCESS_KEY_ID", "test-access-key")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test-secret-key")
}

func TestLoadAwsConfig(t *testing.T) {
	isolateAwsEnv(t)
	httpClient := &http.Client{Timeout: time.Second}

	cfg, err := LoadAwsConfig(context.Background(), Context{Region: "ap-northeast-1", HTTPClient: httpClient})
	require.NoError(t, err)

	assert.Equal(t, "ap-northeast-1", cfg.Region)
	assert.Same(t, httpClient, cfg.HTTPClient)

	creds, err := cfg.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test-access-key", creds.AccessKeyID)
}

func TestGetConfig_Caches(t *testing.T) {
	isolateAwsEnv(t)
	awsCtx := &Context{Region: "us-east-1"}

	first, err := awsCtx.GetConfig(context.Background())
	require.NoError(t, err)
	require.NotNil(t, awsCtx.config)

	// キャッシュ済みなら設定を変えても再読み込みしない
	awsCtx.Region = "eu-west-1"
	second, err := awsCtx.GetConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.Region, second.Region)
}

func TestClients_S3(t *testing.T) {
	isolateAwsEnv(t)

	clients, err := NewAwsClients(context.Background(), &Context{
		Region:   "us-east-1",
		Endpoint: "https://x.supabase.co/storage/v1/s3",
	})
	require.NoError(t, err)

	client := clients.S3()
	assert.Same(t, client, clients.S3())

	opts := client.Options()
	assert.True(t, opts.UsePathStyle)
	assert.Equal(t, "https://x.supabase.co/storage/v1/s3", aws.ToString(opts.BaseEndpoint))
}

func TestClients_S3_DefaultEndpoint(t *testing.T) {
	isolateAwsEnv(t)

	clients, err := NewAwsClients(context.Background(), &Context{Region: "us-east-1"})
	require.NoError(t, err)

	opts := clients.S3().Options()
	assert.False(t, opts.UsePathStyle)
	assert.Nil(t, opts.BaseEndpoint)
}
