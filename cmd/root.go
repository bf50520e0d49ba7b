package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/fewebahr/gogctl/internal/auth"
	"github.com/fewebahr/gogctl/internal/logging"
	"github.com/fewebahr/gogctl/internal/profile"
)

var (
	flagProfile string
	flagJSON    bool
	flagVerbose bool
)

// rootCmd represents the base command for the gogctl application
var rootCmd = &cobra.Command{
	Use:   "gogctl",
	Short: "Operate Gmail, Calendar and Drive from the command line",
	Long: `gogctl is a command-line client for Gmail, Google Calendar and Google
Drive. Credentials live in named profiles, each an isolated OAuth namespace,
so one machine can act for several Google accounts.

Select the active profile with --profile, the ` + profile.EnvProfile + `
environment variable, or a stored default ('gogctl profile set-default').`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(flagVerbose)
	},
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "gogctl version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "", "Profile to act as (overrides "+profile.EnvProfile+" and the stored default)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Emit JSON instead of tables")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newProfileCmd())
	rootCmd.AddCommand(newGmailCmd())
	rootCmd.AddCommand(newCalendarCmd())
	rootCmd.AddCommand(newDriveCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// configStore returns the on-disk profile store used by all commands.
func configStore() profile.Store {
	return profile.DefaultFileStore()
}

// resolveSession resolves the active profile and hands out an authenticated
// session for it.
func resolveSession(ctx context.Context) (*auth.Session, error) {
	store := configStore()
	name, err := profile.ResolveActive(store, flagProfile)
	if err != nil {
		return nil, err
	}
	return auth.NewProvider(store).Session(ctx, name)
}
