package aws

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/diillson/aws-iam-access-report-go/internal/domain/repository"
)

// S3API é o subconjunto do cliente S3 usado no upload do relatório.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3RepositoryImpl implementa o StorageRepository.
type S3RepositoryImpl struct {
	session *Session
	s3      S3API
}

// NewS3Repository cria um StorageRepository que obtém o cliente da Session.
func NewS3Repository(session *Session) repository.StorageRepository {
	return &S3RepositoryImpl{session: session}
}

// NewS3RepositoryWithClient usa um cliente já construído.
func NewS3RepositoryWithClient(client S3API) *S3RepositoryImpl {
	return &S3RepositoryImpl{s3: client}
}

func (r *S3RepositoryImpl) client(ctx context.Context) (S3API, error) {
	if r.s3 != nil {
		return r.s3, nil
	}
	client, err := r.session.getServiceClient(ctx, "s3")
	if err != nil {
		return nil, err
	}
	r.s3 = client.(*s3.Client)
	return r.s3, nil
}

// Upload envia o arquivo local para s3://bucket/key e retorna a URI final.
func (r *S3RepositoryImpl) Upload(ctx context.Context, localPath, bucket, key string) (string, error) {
	client, err := r.client(ctx)
	if err != nil {
		return "", err
	}

	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("error opening report file: %w", err)
	}
	defer file.Close()

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentTypeFor(key)),
	})
	if err != nil {
		return "", fmt.Errorf("error uploading report to s3://%s/%s: %w", bucket, key, err)
	}

	return fmt.Sprintf("s3://%s/%s", bucket, key), nil
}

func contentTypeFor(key string) string {
	switch ext := extension(key); ext {
	case "csv":
		return "text/csv"
	case "json":
		return "application/json"
	case "yaml":
		return "application/yaml"
	case "xml":
		return "application/xml"
	case "pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

func extension(key string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(key), "."))
}
