package s3

import (
	"assetup/internal/service/common"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// ObjectStore はS3互換APIでバケットにアクセスする
type ObjectStore struct {
	client API
	bucket string
}

// NewObjectStore は新しいObjectStoreを作成
func NewObjectStore(client API, bucket string) *ObjectStore {
	return &ObjectStore{client: client, bucket: bucket}
}

// Exists はHeadObjectでオブジェクトの存在を確認する
// 404 (NotFound) なら不在、それ以外のエラーはStatusErrorにして返す
func (s *ObjectStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}

	// HTTPレスポンスエラーからステータスコードを取得
	if statusCode := responseStatus(err); statusCode != 0 {
		return false, &common.StatusError{Op: "head", Key: key, StatusCode: statusCode, Body: err.Error()}
	}
	return false, fmt.Errorf("head %s: %w", key, err)
}

// Put はPutObjectでアップロードする（S3のPutObjectは常に上書き）
func (s *ObjectStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if size >= 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		if statusCode := responseStatus(err); statusCode != 0 {
			return &common.StatusError{Op: "put", Key: key, StatusCode: statusCode, Body: err.Error()}
		}
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// isNotFound はHeadObjectの「存在しない」エラーかどうかを判定する
func isNotFound(err error) bool {
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return true
		}
	}
	return responseStatus(err) == http.StatusNotFound
}

func responseStatus(err error) int {
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		return respErr.HTTPStatusCode()
	}
	return 0
}
