package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fewebahr/gogctl/internal/gmail"
)

func newGmailCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gmail",
		Short: "Read, send and organize Gmail messages",
	}
	cmd.AddCommand(newGmailListCmd())
	cmd.AddCommand(newGmailGetCmd())
	cmd.AddCommand(newGmailSendCmd())
	cmd.AddCommand(newGmailArchiveCmd())
	cmd.AddCommand(newGmailTrashCmd())
	cmd.AddCommand(newGmailModifyCmd())
	cmd.AddCommand(newGmailLabelsCmd())
	return cmd
}

func gmailClient(cmd *cobra.Command) (*gmail.Client, error) {
	session, err := resolveSession(cmd.Context())
	if err != nil {
		return nil, err
	}
	return gmail.NewClient(cmd.Context(), session)
}

func newGmailListCmd() *cobra.Command {
	var query string
	var max int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List messages, optionally filtered by a Gmail search query",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := gmailClient(cmd)
			if err != nil {
				return err
			}
			messages, err := client.ListMessages(query, max)
			if err != nil {
				return err
			}

			if flagJSON {
				return writeJSON(cmd.OutOrStdout(), messages)
			}
			if len(messages) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No messages")
				return nil
			}
			w, flush := tableWriter(cmd.OutOrStdout())
			defer flush()
			printRow(w, "ID", "FROM", "SUBJECT", "DATE")
			for _, m := range messages {
				printRow(w, m.ID, m.From, m.Subject, m.Date)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Gmail search query (e.g. 'in:inbox is:unread')")
	cmd.Flags().Int64Var(&max, "max", 25, "Max results")
	return cmd
}

func newGmailGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <messageID>",
		Short: "Show a message including its plain-text body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := gmailClient(cmd)
			if err != nil {
				return err
			}
			msg, err := client.GetMessage(args[0])
			if err != nil {
				return err
			}

			if flagJSON {
				return writeJSON(cmd.OutOrStdout(), msg)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "From:    %s\n", msg.From)
			fmt.Fprintf(out, "To:      %s\n", msg.To)
			fmt.Fprintf(out, "Date:    %s\n", msg.Date)
			fmt.Fprintf(out, "Subject: %s\n\n", msg.Subject)
			fmt.Fprintln(out, msg.Body)
			return nil
		},
	}
}

func newGmailSendCmd() *cobra.Command {
	msg := &gmail.OutgoingMessage{}

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send an email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := gmailClient(cmd)
			if err != nil {
				return err
			}
			id, err := client.SendMessage(msg)
			if err != nil {
				return err
			}
			if flagJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"id": id})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sent message %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&msg.To, "to", nil, "Recipient (repeatable)")
	cmd.Flags().StringSliceVar(&msg.Cc, "cc", nil, "Cc recipient (repeatable)")
	cmd.Flags().StringSliceVar(&msg.Bcc, "bcc", nil, "Bcc recipient (repeatable)")
	cmd.Flags().StringVar(&msg.Subject, "subject", "", "Subject line")
	cmd.Flags().StringVar(&msg.Body, "body", "", "Plain-text body")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("body")
	return cmd
}

func newGmailArchiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <threadID>",
		Short: "Archive a thread (remove it from the inbox)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := gmailClient(cmd)
			if err != nil {
				return err
			}
			if err := client.ArchiveThread(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived thread %s\n", args[0])
			return nil
		},
	}
}

func newGmailTrashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trash <messageID>",
		Short: "Move a message to the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := gmailClient(cmd)
			if err != nil {
				return err
			}
			if err := client.TrashMessage(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Trashed message %s\n", args[0])
			return nil
		},
	}
}

func newGmailModifyCmd() *cobra.Command {
	var addLabels, removeLabels []string

	cmd := &cobra.Command{
		Use:   "modify <messageID>",
		Short: "Add or remove labels on a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(addLabels) == 0 && len(removeLabels) == 0 {
				return fmt.Errorf("nothing to do: pass --add and/or --remove")
			}
			client, err := gmailClient(cmd)
			if err != nil {
				return err
			}
			if err := client.ModifyMessage(args[0], addLabels, removeLabels); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Modified message %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&addLabels, "add", nil, "Label ID to add (repeatable, e.g. UNREAD)")
	cmd.Flags().StringSliceVar(&removeLabels, "remove", nil, "Label ID to remove (repeatable)")
	return cmd
}

func newGmailLabelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "labels",
		Short: "List labels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := gmailClient(cmd)
			if err != nil {
				return err
			}
			labels, err := client.ListLabels()
			if err != nil {
				return err
			}

			if flagJSON {
				return writeJSON(cmd.OutOrStdout(), labels)
			}
			w, flush := tableWriter(cmd.OutOrStdout())
			defer flush()
			printRow(w, "ID", "NAME", "TYPE")
			for _, l := range labels {
				printRow(w, l.ID, l.Name, l.Type)
			}
			return nil
		},
	}
}
