package types

import "errors"

var (
	ErrMissingUserName   = errors.New("an IAM user name is required")
	ErrJobTimedOut       = errors.New("service last accessed job did not finish within the polling limit")
	ErrEmptyReport       = errors.New("no data to export")
	ErrUnsupportedFormat = errors.New("report format is not available")
	ErrInvalidS3URI      = errors.New("invalid S3 URI, expected s3://bucket[/prefix]")
)
