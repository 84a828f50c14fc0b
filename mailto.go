package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Sreeharips1/portfolio/internal/config"
	"github.com/Sreeharips1/portfolio/internal/contact"
)

var mailtoFlags struct {
	form contact.Form
	copy bool
}

var mailtoCmd = &cobra.Command{
	Use:   "mailto",
	Short: "Print the mailto link the contact form would open",
	Example: `  portfolio mailto --name "Jane Doe" --email jane@x.com --message Hello
  portfolio mailto --name "Jane Doe" --email jane@x.com --message Hello --copy`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.FromEnv()
		if err != nil {
			return err
		}
		uri, err := contact.MailtoURI(cfg.ContactAddress, mailtoFlags.form)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), uri)

		if mailtoFlags.copy {
			if err := clipboard.WriteAll(uri); err != nil {
				return errors.Wrap(err, "copy to clipboard")
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "Copied to clipboard")
		}
		return nil
	},
}

func init() {
	mailtoCmd.Flags().StringVar(&mailtoFlags.form.Name, "name", "", "sender name")
	mailtoCmd.Flags().StringVar(&mailtoFlags.form.Email, "email", "", "sender email")
	mailtoCmd.Flags().StringVar(&mailtoFlags.form.Message, "message", "", "message body")
	mailtoCmd.Flags().BoolVar(&mailtoFlags.copy, "copy", false, "copy the link to the clipboard")
	rootCmd.AddCommand(mailtoCmd)
}
