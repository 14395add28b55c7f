package commands

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/xmoney-go/internal/constants"
)

// VersionInfo describes the CLI build.
type VersionInfo struct {
	Version   string `json:"version"   yaml:"version"`
	Commit    string `json:"commit"    yaml:"commit"`
	Built     string `json:"built"     yaml:"built"`
	UserAgent string `json:"userAgent" yaml:"userAgent"`
	GoVersion string `json:"goVersion" yaml:"goVersion"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  "Display detailed version information about the xMoney CLI",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := VersionInfo{
				Version:   version,
				Commit:    commit,
				Built:     date,
				UserAgent: constants.DefaultUserAgent,
				GoVersion: runtime.Version(),
			}

			return render(cmd.OutOrStdout(), info, propertyTable([][]string{
				{"Version", info.Version},
				{"Commit", info.Commit},
				{"Built", info.Built},
				{"User Agent", info.UserAgent},
				{"Go Version", info.GoVersion},
			}))
		},
	}
}
