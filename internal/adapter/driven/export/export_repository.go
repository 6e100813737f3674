package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/diillson/aws-iam-access-report-go/internal/domain/entity"
	"github.com/diillson/aws-iam-access-report-go/internal/domain/repository"
	"github.com/diillson/aws-iam-access-report-go/internal/shared/types"
)

const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatXML  = "xml"
	FormatPDF  = "pdf"
)

// encoderFunc serializa o relatório inteiro em memória; o arquivo só é criado se der certo.
type encoderFunc func(buf *bytes.Buffer, records []entity.AccessRecord) error

// builtinEncoders lista os formatos suportados na ordem de exibição.
var builtinEncoders = []struct {
	name   string
	encode encoderFunc
}{
	{FormatCSV, encodeCSV},
	{FormatJSON, encodeJSON},
	{FormatYAML, encodeYAML},
	{FormatXML, encodeXML},
	{FormatPDF, encodePDF},
}

// ExportRepositoryImpl implementa o ExportRepository com um registro de formatos
// decidido na construção.
type ExportRepositoryImpl struct {
	encoders map[string]encoderFunc
	order    []string
}

// Option customiza o ExportRepositoryImpl.
type Option func(*ExportRepositoryImpl)

// WithFormats restringe o registro aos formatos informados.
func WithFormats(formats ...string) Option {
	return func(r *ExportRepositoryImpl) {
		allowed := make(map[string]bool, len(formats))
		for _, f := range formats {
			allowed[normalizeFormat(f)] = true
		}
		order := r.order[:0]
		for _, name := range r.order {
			if allowed[name] {
				order = append(order, name)
			} else {
				delete(r.encoders, name)
			}
		}
		r.order = order
	}
}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository(opts ...Option) repository.ExportRepository {
	r := &ExportRepositoryImpl{encoders: make(map[string]encoderFunc)}
	for _, e := range builtinEncoders {
		r.encoders[e.name] = e.encode
		r.order = append(r.order, e.name)
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Formats retorna os formatos disponíveis.
func (r *ExportRepositoryImpl) Formats() []string {
	return append([]string(nil), r.order...)
}

// Supports indica se o formato está registrado.
func (r *ExportRepositoryImpl) Supports(format string) bool {
	_, ok := r.encoders[normalizeFormat(format)]
	return ok
}

// Export grava <outputDir>/<filename>.<format> e retorna o caminho absoluto.
// CSV sem registros não gera arquivo e retorna types.ErrEmptyReport.
func (r *ExportRepositoryImpl) Export(records []entity.AccessRecord, format, filename, outputDir string) (string, error) {
	format = normalizeFormat(format)

	encode, ok := r.encoders[format]
	if !ok {
		return "", fmt.Errorf("%w: %q (available: %s)", types.ErrUnsupportedFormat, format, strings.Join(r.order, ", "))
	}

	if format == FormatCSV && len(records) == 0 {
		return "", fmt.Errorf("%w to CSV", types.ErrEmptyReport)
	}

	var buf bytes.Buffer
	if err := encode(&buf, records); err != nil {
		return "", fmt.Errorf("error encoding %s report: %w", strings.ToUpper(format), err)
	}

	outputFilename, err := generateFilename(filename, outputDir, format)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(outputFilename, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("error writing %s file: %w", strings.ToUpper(format), err)
	}

	return filepath.Abs(outputFilename)
}

// --- Funções Auxiliares ---

// generateFilename monta <dir>/<base>.<ext> e garante que o diretório exista.
func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	return filepath.Join(dir, fmt.Sprintf("%s.%s", base, ext)), nil
}

func normalizeFormat(format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "yml" {
		return FormatYAML
	}
	return format
}

// nonNil evita que um relatório vazio seja serializado como null.
func nonNil(records []entity.AccessRecord) []entity.AccessRecord {
	if records == nil {
		return []entity.AccessRecord{}
	}
	return records
}
