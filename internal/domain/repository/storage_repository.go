package repository

import "context"

// StorageRepository envia um relatório já gravado para armazenamento remoto.
type StorageRepository interface {
	Upload(ctx context.Context, localPath, bucket, key string) (string, error)
}
