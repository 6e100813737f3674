package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/diillson/aws-iam-access-report-go/internal/adapter/driven/aws"
	"github.com/diillson/aws-iam-access-report-go/internal/adapter/driven/config"
	"github.com/diillson/aws-iam-access-report-go/internal/adapter/driven/export"
	"github.com/diillson/aws-iam-access-report-go/internal/adapter/driving/cli"
	"github.com/diillson/aws-iam-access-report-go/internal/application/usecase"
	"github.com/diillson/aws-iam-access-report-go/internal/shared/types"
	"github.com/diillson/aws-iam-access-report-go/pkg/console"
	"github.com/diillson/aws-iam-access-report-go/pkg/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version, config.NewConfigRepository(), newReportRunner)

	err := app.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newReportRunner inicializa os repositórios e o caso de uso a partir das flags.
func newReportRunner(args *types.CLIArgs) (cli.ReportRunner, error) {
	logger := console.NewLogger(args.Debug)

	sessionOpts := []aws.SessionOption{
		aws.WithProfile(args.Profile),
		aws.WithRegion(args.Region),
	}
	if args.Debug {
		sessionOpts = append(sessionOpts, aws.WithLogger(console.SDKLogger(logger)))
	}
	session := aws.NewSession(sessionOpts...)

	return usecase.NewReportUseCase(
		aws.NewIAMRepository(session),
		export.NewExportRepository(),
		aws.NewS3Repository(session),
		console.NewConsole(),
		usecase.WithPollInterval(args.PollInterval),
		usecase.WithMaxPollAttempts(args.MaxPollAttempts),
		usecase.WithPolicySorting(args.SortPolicies),
		usecase.WithLogger(logger),
	), nil
}
