package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

// App holds the process-level collaborators of the command line
type App struct {
	Version     string
	Out         io.Writer   // status lines and summary
	Err         io.Writer   // logs
	Prompter    Prompter    // asks for missing inputs
	Interactive func() bool // reports whether prompting is possible
}

// NewApp creates an App bound to the process stdio
func NewApp(version string) *App {
	return &App{
		Version:     version,
		Out:         os.Stdout,
		Err:         os.Stderr,
		Prompter:    NewSurveyPrompter(),
		Interactive: stdinIsTerminal,
	}
}

// NewRootCommand builds the asset-fetcher command tree. Running the root
// command without a subcommand performs a fetch.
func NewRootCommand(app *App) *cobra.Command {
	opts := &fetchOptions{}

	rootCmd := &cobra.Command{
		Use:   "asset-fetcher",
		Short: "Mirror the files listed in a fingerprint manifest",
		Long: `asset-fetcher reads a fingerprint manifest (a local file or <base URL><sha>/fingerprint.json)
and downloads every file it lists into <out>/<sha>/<file>, several at a time.
Files already present on disk are skipped, so an interrupted run can simply be repeated.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, app, opts)
		},
	}
	rootCmd.SetOut(app.Out)
	rootCmd.SetErr(app.Err)

	opts.bindFlags(rootCmd)

	rootCmd.AddCommand(newFetchCommand(app, opts))
	rootCmd.AddCommand(newVersionCommand(app))

	return rootCmd
}

// Execute runs the command line and returns the process exit code
func Execute(version string) int {
	if err := NewRootCommand(NewApp(version)).Execute(); err != nil {
		return 1
	}
	return 0
}
