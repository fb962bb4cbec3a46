package s3

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// API はObjectStoreが使うS3クライアントのメソッド
type API interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var _ API = (*s3.Client)(nil)
