package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/smithy-go"
	"github.com/spf13/cobra"

	"github.com/diillson/aws-iam-access-report-go/internal/application/usecase"
	"github.com/diillson/aws-iam-access-report-go/internal/domain/repository"
	"github.com/diillson/aws-iam-access-report-go/internal/shared/types"
	"github.com/diillson/aws-iam-access-report-go/pkg/version"
)

// DefaultReportPrefix é o prefixo do nome padrão do relatório, seguido de MM-DD-YYYY.
const DefaultReportPrefix = "iam-user-access-action-level-report-"

// ReportRunner executa o relatório para os argumentos já resolvidos.
type ReportRunner interface {
	RunReport(ctx context.Context, args *types.CLIArgs) error
}

// RunnerFactory monta o ReportRunner depois da leitura das flags,
// já que perfil, região e debug só são conhecidos nesse momento.
type RunnerFactory func(args *types.CLIArgs) (ReportRunner, error)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd    *cobra.Command
	configRepo repository.ConfigRepository
	factory    RunnerFactory
	version    string
	out        io.Writer
	now        func() time.Time
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string, configRepo repository.ConfigRepository, factory RunnerFactory) *CLIApp {
	app := &CLIApp{
		configRepo: configRepo,
		factory:    factory,
		version:    versionStr,
		out:        os.Stdout,
		now:        time.Now,
	}

	rootCmd := &cobra.Command{
		Use:   "iam-access-report USERNAME",
		Short: "Action-level last-accessed report for an IAM user",
		Long: `Resolves every managed policy attached to an IAM user (directly or through
groups), runs an ACTION_LEVEL service last-accessed job for each one and
exports one record per service action.`,
		Version:       version.FormatVersion(),
		Args:          cobra.ExactArgs(1),
		RunE:          app.runCommand,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.SetVersionTemplate(`{{printf "AWS IAM Access Report version: %s\n" .Version}}`)

	flags := rootCmd.Flags()
	flags.StringP("format", "f", "csv", "Output format: csv, json, yaml, xml, pdf")
	flags.StringP("output", "o", "", "Base name for the report file, without extension (default: "+DefaultReportPrefix+"MM-DD-YYYY)")
	flags.StringP("dir", "d", "", "Directory to save the report file (default: current directory)")
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	flags.StringP("profile", "p", "", "AWS profile to use")
	flags.StringP("region", "r", "", "AWS region for the API clients")
	flags.Duration("poll-interval", usecase.DefaultPollInterval, "Interval between job status checks")
	flags.Int("max-poll-attempts", usecase.DefaultMaxPollAttempts, "Maximum status checks per policy job before giving up")
	flags.Bool("no-sort", false, "Keep policies in resolution order instead of sorting by ARN")
	flags.String("upload", "", "Upload the report to S3, e.g. s3://bucket/prefix")
	flags.Bool("debug", false, "Enable debug logging, including AWS SDK requests")
	flags.Bool("no-banner", false, "Do not print the welcome banner")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// ExecuteContext roda a aplicação com um contexto cancelável (ex.: SIGINT).
func (app *CLIApp) ExecuteContext(ctx context.Context) error {
	return app.rootCmd.ExecuteContext(ctx)
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs(cmd *cobra.Command, positional []string) (*types.CLIArgs, error) {
	flags := cmd.Flags()
	format, _ := flags.GetString("format")
	output, _ := flags.GetString("output")
	dir, _ := flags.GetString("dir")
	configFile, _ := flags.GetString("config-file")
	profile, _ := flags.GetString("profile")
	region, _ := flags.GetString("region")
	pollInterval, _ := flags.GetDuration("poll-interval")
	maxPollAttempts, _ := flags.GetInt("max-poll-attempts")
	noSort, _ := flags.GetBool("no-sort")
	upload, _ := flags.GetString("upload")
	debug, _ := flags.GetBool("debug")
	noBanner, _ := flags.GetBool("no-banner")

	args := &types.CLIArgs{
		UserName:        strings.TrimSpace(positional[0]),
		ConfigFile:      configFile,
		Profile:         profile,
		Region:          region,
		Format:          strings.ToLower(format),
		Output:          output,
		Dir:             dir,
		PollInterval:    pollInterval,
		MaxPollAttempts: maxPollAttempts,
		SortPolicies:    !noSort,
		Upload:          upload,
		Debug:           debug,
		NoBanner:        noBanner,
	}

	if args.ConfigFile != "" {
		cfg, err := app.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg.MergeInto(args, flags.Changed)
		args.Format = strings.ToLower(args.Format)
	}

	if args.Output == "" {
		args.Output = DefaultReportPrefix + app.now().Format("01-02-2006")
	}

	// Set default directory to current working directory if not specified
	if args.Dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		args.Dir = cwd
	} else {
		absDir, err := filepath.Abs(args.Dir)
		if err != nil {
			return nil, err
		}
		args.Dir = absDir
	}

	return args, nil
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, positional []string) error {
	cliArgs, err := app.parseArgs(cmd, positional)
	if err != nil {
		return err
	}

	if !cliArgs.NoBanner {
		displayWelcomeBanner(app.out)
		go version.CheckLatestVersion(app.version)
	}

	runner, err := app.factory(cliArgs)
	if err != nil {
		return err
	}

	return withHint(runner.RunReport(cmd.Context(), cliArgs))
}

// withHint acrescenta uma dica aos erros de API mais comuns.
func withHint(err error) error {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.ErrorCode() {
	case "NoSuchEntity":
		return fmt.Errorf("%w (check that the IAM user exists in this account)", err)
	case "AccessDenied", "AccessDeniedException":
		return fmt.Errorf("%w (the caller needs iam:ListAttachedUserPolicies, iam:ListGroupsForUser, "+
			"iam:ListAttachedGroupPolicies, iam:GetPolicy, iam:GenerateServiceLastAccessedDetails "+
			"and iam:GetServiceLastAccessedDetails)", err)
	}
	return err
}
