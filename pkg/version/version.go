package version

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

const devVersion = "0.0.0-dev"

// Preenchidos por -ldflags; quando vazios, vêm do build info do módulo.
var (
	Version   = devVersion
	Commit    = ""
	BuildTime = ""
)

func init() {
	if Version != "" && Version != devVersion {
		return
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		applyBuildSettings(bi.Settings)
	}
}

// applyBuildSettings lê vcs.revision, vcs.time, vcs.modified e vcs.tag.
func applyBuildSettings(settings []debug.BuildSetting) {
	vcs := make(map[string]string, len(settings))
	for _, s := range settings {
		vcs[s.Key] = s.Value
	}

	if rev := vcs["vcs.revision"]; Commit == "" && len(rev) >= 7 {
		Commit = rev[:7]
	}
	if BuildTime == "" {
		if ts, err := time.Parse(time.RFC3339, vcs["vcs.time"]); err == nil {
			BuildTime = ts.UTC().Format(time.RFC3339)
		}
	}
	if tag := strings.TrimPrefix(vcs["vcs.tag"], "v"); tag != "" {
		Version = tag
		if strings.EqualFold(vcs["vcs.modified"], "true") {
			Version += "-dirty"
		}
	}
}

// releasesURL aponta para a última release publicada no GitHub.
var releasesURL = "https://api.github.com/repos/diillson/aws-iam-access-report-go/releases/latest"

// CheckLatestVersion avisa em stderr quando existe uma release mais nova.
func CheckLatestVersion(currentVersion string) {
	if latest, ok := latestRelease(currentVersion); ok {
		warn := pterm.Warning.WithWriter(os.Stderr)
		warn.Println(fmt.Sprintf("A new version of aws-iam-access-report is available: %s", latest))
		warn.Println("Please update using: go install github.com/diillson/aws-iam-access-report-go/cmd/iam-access-report@latest")
	}
}

// latestRelease consulta releasesURL e devolve a tag mais nova, se houver.
func latestRelease(currentVersion string) (string, bool) {
	if strings.HasSuffix(currentVersion, "-dev") {
		return "", false
	}

	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get(releasesURL)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.Unmarshal(body, &release); err != nil {
		return "", false
	}

	latestVersion := strings.TrimPrefix(release.TagName, "v")
	// Comparação lexicográfica, suficiente para tags x.y.z do mesmo tamanho
	if latestVersion > currentVersion {
		return latestVersion, true
	}
	return "", false
}

// FormatVersion monta a string de --version, ex.:
// "1.2.3 (commit: abc1234, built at: 2025-10-23T10:20:30Z)".
func FormatVersion() string {
	ver := Version
	if ver == "" {
		ver = devVersion
	}
	if Commit == "" && BuildTime == "" {
		return ver + " (development)"
	}

	details := []string{"commit: " + Commit}
	if Commit == "" {
		details[0] = "commit: development"
	}
	if BuildTime != "" {
		details = append(details, "built at: "+BuildTime)
	}
	return fmt.Sprintf("%s (%s)", ver, strings.Join(details, ", "))
}
