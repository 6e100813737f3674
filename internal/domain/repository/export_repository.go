package repository

import (
	"github.com/diillson/aws-iam-access-report-go/internal/domain/entity"
)

// ExportRepository grava o relatório em um único arquivo <filename>.<format>.
type ExportRepository interface {
	Export(records []entity.AccessRecord, format, filename, outputDir string) (string, error)
	Supports(format string) bool
	Formats() []string
}
