package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/diillson/aws-iam-access-report-go/pkg/version"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(w io.Writer) {
	banner := `
   ___    _    __  __      _                          ___                       _
  |_ _|  /_\  |  \/  |    /_\  __ __ ___ ______ ___  | _ \ ___ _ __  ___  _ _ | |_
   | |  / _ \ | |\/| |   / _ \/ _/ _/ -_|_-<_-<      |   // -_) '_ \/ _ \| '_||  _|
  |___|/_/ \_\|_|  |_|  /_/ \_\__\__\___/__/__/      |_|_\\___| .__/\___/|_|   \__|
                                                              |_|
        `
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Fprintln(w, red(banner))
	fmt.Fprintln(w, blue(fmt.Sprintf("AWS IAM Access Report CLI (v%s)", version.FormatVersion())))
}
