package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/fewebahr/gogctl/internal/drive"
)

func newDriveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drive",
		Short: "Browse and download Drive files",
	}
	cmd.AddCommand(newDriveListCmd())
	cmd.AddCommand(newDriveGetCmd())
	cmd.AddCommand(newDriveDownloadCmd())
	return cmd
}

func driveClient(cmd *cobra.Command) (*drive.Client, error) {
	session, err := resolveSession(cmd.Context())
	if err != nil {
		return nil, err
	}
	return drive.NewClient(cmd.Context(), session)
}

func newDriveListCmd() *cobra.Command {
	var query string
	var max int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List files, optionally filtered by a Drive search query",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := driveClient(cmd)
			if err != nil {
				return err
			}
			files, err := client.ListFiles(cmd.Context(), query, max)
			if err != nil {
				return err
			}

			if flagJSON {
				return writeJSON(cmd.OutOrStdout(), files)
			}
			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No files")
				return nil
			}
			w, flush := tableWriter(cmd.OutOrStdout())
			defer flush()
			printRow(w, "ID", "NAME", "TYPE", "MODIFIED")
			for _, f := range files {
				kind := f.MimeType
				if f.IsFolder() {
					kind = "folder"
				}
				modified := ""
				if !f.ModifiedTime.IsZero() {
					modified = f.ModifiedTime.Format("2006-01-02 15:04")
				}
				printRow(w, f.ID, f.Name, kind, modified)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Drive search query (e.g. \"name contains 'report'\")")
	cmd.Flags().Int64Var(&max, "max", 25, "Max results")
	return cmd
}

func newDriveGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <fileID>",
		Short: "Show file metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := driveClient(cmd)
			if err != nil {
				return err
			}
			file, err := client.GetFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if flagJSON {
				return writeJSON(cmd.OutOrStdout(), file)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:       %s\n", file.ID)
			fmt.Fprintf(out, "Name:     %s\n", file.Name)
			fmt.Fprintf(out, "Type:     %s\n", file.MimeType)
			fmt.Fprintf(out, "Size:     %d\n", file.Size)
			fmt.Fprintf(out, "Modified: %s\n", file.ModifiedTime.Format("2006-01-02 15:04"))
			fmt.Fprintf(out, "Link:     %s\n", file.WebViewLink)
			return nil
		},
	}
}

func newDriveDownloadCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "download <fileID>",
		Short: "Download a file's content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := driveClient(cmd)
			if err != nil {
				return err
			}
			body, err := client.DownloadFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer body.Close()

			var dst io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", outPath, err)
				}
				defer f.Close()
				dst = f
			}
			if _, err := io.Copy(dst, body); err != nil {
				return fmt.Errorf("failed to write file content: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to a file instead of stdout")
	return cmd
}
