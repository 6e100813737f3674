package usecase

import (
	"fmt"
	"strings"

	"github.com/diillson/aws-iam-access-report-go/internal/shared/types"
)

// S3Location é o destino de upload do relatório.
type S3Location struct {
	Bucket string
	Prefix string
}

// ParseS3URI interpreta s3://bucket[/prefix].
func ParseS3URI(uri string) (S3Location, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(uri), "s3://")
	if !ok {
		return S3Location{}, fmt.Errorf("%w: %q", types.ErrInvalidS3URI, uri)
	}
	bucket, prefix, _ := strings.Cut(rest, "/")
	if bucket == "" {
		return S3Location{}, fmt.Errorf("%w: %q", types.ErrInvalidS3URI, uri)
	}
	return S3Location{Bucket: bucket, Prefix: strings.Trim(prefix, "/")}, nil
}
