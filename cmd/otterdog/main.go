// Command otterdog drives GitHub organization configuration (§6): it
// loads the top-level engine configuration, resolves credentials per
// organization, and runs validate/show/plan/apply/import and the other
// operations §6 names.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/otterdog-go/otterdog/pkg/logger"
)

var version = "dev"

func main() {
	root := newRootCommand()

	if err := root.Execute(); err != nil {
		printErr(err)
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	root := &cobra.Command{
		Use:     "otterdog",
		Short:   "GitHub organization configuration engine",
		Version: version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "otterdog.yml", "path to the top-level configuration file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: trace|debug|info|warn|error")

	env := &environment{configPathFlag: &configPath, logLevelFlag: &logLevel}

	root.AddCommand(
		newValidateCommand(env),
		newShowCommand(env),
		newPlanCommand(env),
		newLocalPlanCommand(env),
		newApplyCommand(env),
		newImportCommand(env),
		newCanonicalDiffCommand(env),
		newFetchConfigCommand(env),
		newPushConfigCommand(env),
		newCheckStatusCommand(env),
		newCheckTokenPermissionsCommand(env),
		newListBlueprintsCommand(env),
		newApproveBlueprintsCommand(env),
		newSyncTemplateCommand(env),
		newGenerateSchemaCommand(env),
		newListMembersCommand(env),
		newListAdvisoriesCommand(env),
		newListAppsCommand(env),
		newDispatchWorkflowCommand(env),
		newDeleteFileCommand(env),
		newOpenPullRequestCommand(env),
		newWebLoginCommand(env),
		newInstallAppCommand(env),
		newUninstallAppCommand(env),
		newReviewAppPermissionsCommand(env),
	)

	return root
}

// environment threads the resolved flags every subcommand needs without
// each one redeclaring --config/--log-level, following the teacher's
// getPersistentStringFlagWithEnvFallback pattern (cmd/dotsync/main.go).
type environment struct {
	configPathFlag *string
	logLevelFlag   *string
}

func (e *environment) logger() *logger.Logger {
	return logger.New(*e.logLevelFlag)
}

func (e *environment) configPath() string {
	return *e.configPathFlag
}

func exitCodeForError(err error) int {
	if err == nil {
		return 0
	}

	return 1
}

func printErr(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
}
