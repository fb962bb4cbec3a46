package config

import (
	"assetup/internal/logger"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// 環境変数名
const (
	EnvSupabaseURL = "SUPABASE_URL"
	EnvServiceKey  = "SUPABASE_SERVICE_ROLE_KEY"
	EnvBucket      = "PROJECT_BUCKET"
	EnvAssetsRoot  = "ASSETS_ROOT"
	EnvTimeout     = "UPLOAD_TIMEOUT"
	EnvLogLevel    = "LOG_LEVEL"
	EnvS3Endpoint  = "AWS_ENDPOINT_URL_S3"
	EnvAwsRegion   = "AWS_REGION"
	EnvAwsProfile  = "AWS_PROFILE"
)

// デフォルト値
const (
	DefaultBucket     = "project-assets"
	DefaultAssetsRoot = "public/images"
	DefaultTimeout    = 60 * time.Second
	DefaultLogLevel   = "info"
	DefaultAwsRegion  = "us-east-1"
)

// ErrMissingEnv は必須の環境変数が未設定の場合のエラー
var ErrMissingEnv = errors.New("missing required env var")

// Config は実行時に一度だけ読み込まれる設定
type Config struct {
	SupabaseURL string
	ServiceKey  string
	Bucket      string
	AssetsRoot  string
	Timeout     time.Duration
	LogLevel    string

	// s3 バックエンド用
	S3Endpoint string
	AwsRegion  string
	AwsProfile string
}

// Load は .env と環境変数から設定を読み込む
// .env より実際の環境変数が優先される
func Load() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault(EnvBucket, DefaultBucket)
	v.SetDefault(EnvAssetsRoot, DefaultAssetsRoot)
	v.SetDefault(EnvLogLevel, DefaultLogLevel)
	v.SetDefault(EnvAwsRegion, DefaultAwsRegion)
	v.AutomaticEnv()

	return &Config{
		SupabaseURL: strings.TrimSpace(v.GetString(EnvSupabaseURL)),
		ServiceKey:  strings.TrimSpace(v.GetString(EnvServiceKey)),
		Bucket:      v.GetString(EnvBucket),
		AssetsRoot:  v.GetString(EnvAssetsRoot),
		Timeout:     loadTimeout(v.GetString(EnvTimeout)),
		LogLevel:    v.GetString(EnvLogLevel),
		S3Endpoint:  v.GetString(EnvS3Endpoint),
		AwsRegion:   v.GetString(EnvAwsRegion),
		AwsProfile:  v.GetString(EnvAwsProfile),
	}
}

// Validate は必須の環境変数がそろっているか確認する
func (c *Config) Validate() error {
	if c.SupabaseURL == "" {
		return fmt.Errorf("%w: %s", ErrMissingEnv, EnvSupabaseURL)
	}
	if c.ServiceKey == "" {
		return fmt.Errorf("%w: %s", ErrMissingEnv, EnvServiceKey)
	}
	return nil
}

// StorageURL はオブジェクトAPIのベースURLを返す
func (c *Config) StorageURL() string {
	return strings.TrimRight(c.SupabaseURL, "/") + "/storage/v1/object"
}

// S3URL はS3互換エンドポイントを返す
// AWS_ENDPOINT_URL_S3 が未設定なら Supabase のS3エンドポイントを使う
func (c *Config) S3URL() string {
	if c.S3Endpoint != "" {
		return c.S3Endpoint
	}
	return strings.TrimRight(c.SupabaseURL, "/") + "/storage/v1/s3"
}

// ErrInvalidTimeout は正の時間として解釈できないタイムアウト値のエラー
var ErrInvalidTimeout = errors.New("timeout must be a positive duration")

// ParseTimeout はタイムアウト値を解釈する
// 単位のない整数は秒として扱う（"60" → 60s）
func ParseTimeout(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	var d time.Duration
	if n, err := strconv.Atoi(raw); err == nil {
		d = time.Duration(n) * time.Second
	} else if d, err = time.ParseDuration(raw); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeout, raw)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeout, raw)
	}
	return d, nil
}

// loadTimeout は UPLOAD_TIMEOUT を解釈し、不正な値ならデフォルト値に戻す
func loadTimeout(raw string) time.Duration {
	if strings.TrimSpace(raw) == "" {
		return DefaultTimeout
	}
	d, err := ParseTimeout(raw)
	if err != nil {
		logger.Log.Warn().Err(err).Str("env", EnvTimeout).Dur("default", DefaultTimeout).
			Msg("invalid timeout, using default")
		return DefaultTimeout
	}
	return d
}
