package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fewebahr/gogctl/internal/auth"
	"github.com/fewebahr/gogctl/internal/profile"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage credential profiles",
	}
	cmd.AddCommand(newProfileAddCmd())
	cmd.AddCommand(newProfileListCmd())
	cmd.AddCommand(newProfileRemoveCmd())
	cmd.AddCommand(newProfileSetDefaultCmd())
	cmd.AddCommand(newProfileCurrentCmd())
	cmd.AddCommand(newProfileWhoamiCmd())
	return cmd
}

func newProfileAddCmd() *cobra.Command {
	var clientFile, clientID, clientSecret string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Authorize a new profile via the browser",
		Long: `Run the one-time OAuth authorization for a new profile. A browser window
opens on the Google consent screen; the granted tokens are stored under the
profile name.

Supply the OAuth client either as a client_secret.json downloaded from the
Google Cloud Console (--client-file) or as an explicit id/secret pair.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if clientFile != "" {
				if clientID != "" || clientSecret != "" {
					return fmt.Errorf("--client-file and --client-id/--client-secret are mutually exclusive")
				}
				var err error
				clientID, clientSecret, err = auth.ReadClientFile(clientFile)
				if err != nil {
					return err
				}
			}
			if clientID == "" || clientSecret == "" {
				return fmt.Errorf("an OAuth client is required: pass --client-file or both --client-id and --client-secret")
			}

			flow := auth.NewFlow(configStore())
			if err := flow.Authorize(cmd.Context(), name, clientID, clientSecret); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile %q authorized.\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&clientFile, "client-file", "", "Path to a client_secret.json from the Google Cloud Console")
	cmd.Flags().StringVar(&clientID, "client-id", "", "OAuth client ID")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "OAuth client secret")
	return cmd
}

func newProfileListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := configStore()
			names, err := store.List()
			if err != nil {
				return err
			}
			def, err := store.Default()
			if err != nil {
				return err
			}

			type row struct {
				Name      string    `json:"name"`
				Default   bool      `json:"default"`
				Email     string    `json:"email,omitempty"`
				CreatedAt time.Time `json:"createdAt,omitempty"`
			}
			var rows []row
			for _, name := range names {
				r := row{Name: name, Default: name == def}
				if cfg, err := store.LoadConfig(name); err == nil && cfg != nil {
					r.Email = cfg.Email
					r.CreatedAt = cfg.CreatedAt
				}
				rows = append(rows, r)
			}

			if flagJSON {
				return writeJSON(cmd.OutOrStdout(), rows)
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No profiles configured. Run 'gogctl profile add <name>' to create one.")
				return nil
			}

			w, flush := tableWriter(cmd.OutOrStdout())
			defer flush()
			printRow(w, "NAME", "DEFAULT", "EMAIL", "CREATED")
			for _, r := range rows {
				marker := ""
				if r.Default {
					marker = "*"
				}
				created := ""
				if !r.CreatedAt.IsZero() {
					created = r.CreatedAt.Format("2006-01-02")
				}
				printRow(w, r.Name, marker, r.Email, created)
			}
			return nil
		},
	}
}

func newProfileRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a profile and its stored credentials",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			removed, err := configStore().Remove(name)
			if err != nil {
				return err
			}
			if !removed {
				return &profile.UnknownProfileError{Name: name}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile %q removed.\n", name)
			return nil
		},
	}
}

func newProfileSetDefaultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-default <name>",
		Short: "Mark a profile as the default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := configStore().SetDefault(name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Default profile set to %q.\n", name)
			return nil
		},
	}
}

func newProfileCurrentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show the profile that would be used",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := profile.ResolveActive(configStore(), flagProfile)
			if err != nil {
				return err
			}
			if flagJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"profile": name})
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}
}

func newProfileWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the email of the active profile's account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := resolveSession(cmd.Context())
			if err != nil {
				return err
			}
			email, err := session.Email(cmd.Context())
			if err != nil {
				return err
			}
			if flagJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]string{
					"profile": session.Profile(),
					"email":   email,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), email)
			return nil
		},
	}
}
