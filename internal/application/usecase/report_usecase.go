package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/diillson/aws-iam-access-report-go/internal/domain/entity"
	"github.com/diillson/aws-iam-access-report-go/internal/domain/repository"
	"github.com/diillson/aws-iam-access-report-go/internal/shared/types"
	"github.com/diillson/aws-iam-access-report-go/pkg/console"
)

const (
	DefaultPollInterval    = time.Second
	DefaultMaxPollAttempts = 300
)

// ReportUseCase gera o relatório de último acesso por ação de um usuário IAM.
type ReportUseCase struct {
	iamRepo     repository.IAMRepository
	exportRepo  repository.ExportRepository
	storageRepo repository.StorageRepository
	console     types.ConsoleInterface
	logger      *slog.Logger

	pollInterval    time.Duration
	maxPollAttempts int
	sortPolicies    bool

	wait func(ctx context.Context, d time.Duration) error
}

// Option customiza o ReportUseCase.
type Option func(*ReportUseCase)

// WithPollInterval define o intervalo fixo entre consultas ao job.
func WithPollInterval(d time.Duration) Option {
	return func(uc *ReportUseCase) { uc.pollInterval = d }
}

// WithMaxPollAttempts limita o número de consultas por job. Zero usa o padrão.
func WithMaxPollAttempts(n int) Option {
	return func(uc *ReportUseCase) {
		if n > 0 {
			uc.maxPollAttempts = n
		}
	}
}

// WithPolicySorting ordena as ARNs das policies antes da agregação.
func WithPolicySorting(enabled bool) Option {
	return func(uc *ReportUseCase) { uc.sortPolicies = enabled }
}

// WithLogger define o logger de depuração.
func WithLogger(logger *slog.Logger) Option {
	return func(uc *ReportUseCase) {
		if logger != nil {
			uc.logger = logger
		}
	}
}

// NewReportUseCase creates a new report use case.
func NewReportUseCase(
	iamRepo repository.IAMRepository,
	exportRepo repository.ExportRepository,
	storageRepo repository.StorageRepository,
	console types.ConsoleInterface,
	opts ...Option,
) *ReportUseCase {
	uc := &ReportUseCase{
		iamRepo:         iamRepo,
		exportRepo:      exportRepo,
		storageRepo:     storageRepo,
		console:         console,
		logger:          slog.New(slog.DiscardHandler),
		pollInterval:    DefaultPollInterval,
		maxPollAttempts: DefaultMaxPollAttempts,
		sortPolicies:    true,
		wait:            sleepContext,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// RunReport executa o fluxo completo: resolução, jobs, agregação e exportação.
func (uc *ReportUseCase) RunReport(ctx context.Context, args *types.CLIArgs) error {
	if strings.TrimSpace(args.UserName) == "" {
		return types.ErrMissingUserName
	}

	// Valida formato e destino antes de qualquer chamada à AWS
	if !uc.exportRepo.Supports(args.Format) {
		return fmt.Errorf("%w: %q (available: %s)", types.ErrUnsupportedFormat, args.Format, strings.Join(uc.exportRepo.Formats(), ", "))
	}
	var upload *S3Location
	if args.Upload != "" {
		loc, err := ParseS3URI(args.Upload)
		if err != nil {
			return err
		}
		upload = &loc
	}

	accountID, err := uc.iamRepo.GetAccountID(ctx)
	if err != nil {
		uc.logger.Debug("caller identity unavailable", "error", err)
		accountID = "Unknown"
	}

	uc.console.LogInfo("Generating action-level access report for user %s (account %s)", args.UserName, accountID)

	records, summaries, err := uc.Aggregate(ctx, args.UserName)
	if err != nil {
		return err
	}

	if len(summaries) > 0 {
		uc.console.Print(uc.summaryTable(summaries).Render())
		uc.console.Println()
	}
	uc.console.LogInfo("Collected %d records from %d policies", len(records), len(summaries))

	outputPath, err := uc.exportRepo.Export(records, args.Format, args.Output, args.Dir)
	if err != nil {
		if errors.Is(err, types.ErrEmptyReport) {
			uc.console.LogWarning("No data to export to CSV.")
			return nil
		}
		return fmt.Errorf("failed to export report: %w", err)
	}
	uc.console.LogSuccess("%s report written to %s", strings.ToUpper(strings.TrimPrefix(filepath.Ext(outputPath), ".")), outputPath)

	if upload != nil {
		key := path.Join(upload.Prefix, filepath.Base(outputPath))
		uri, err := uc.storageRepo.Upload(ctx, outputPath, upload.Bucket, key)
		if err != nil {
			return err
		}
		uc.console.LogSuccess("Report uploaded to %s", uri)
	}

	return nil
}

func (uc *ReportUseCase) summaryTable(summaries []entity.PolicySummary) types.TableInterface {
	table := uc.console.CreateTable()
	table.AddColumn("Policy")
	table.AddColumn("Services")
	table.AddColumn("Actions")
	table.AddColumn("Never Used")
	table.AddColumn("Job Status")

	for _, s := range summaries {
		status := string(s.JobStatus)
		if s.JobStatus == entity.JobStatusFailed {
			status = console.BoldRed(status)
		}
		table.AddRow(
			console.BrightMagenta(s.PolicyName),
			s.Services,
			s.Actions,
			s.NeverUsed,
			status,
		)
	}
	return table
}

// sleepContext espera d ou até o contexto ser cancelado.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
