package commands

import (
	"errors"
	"fmt"

	"reliableteam-site/internal/inquiryform"

	"github.com/spf13/cobra"
)

func (c *CLI) newSubmitCmd() *cobra.Command {
	var draft inquiryform.Draft

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Send an inquiry without opening the UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			flow := inquiryform.New(c.backend(), func(n inquiryform.Notification) {
				_, _ = fmt.Fprintf(out, "%s %s\n", n.Title, n.Description)
			}, nil)
			for _, f := range inquiryform.Fields {
				flow.SetField(f, draft.Get(f))
			}

			err := flow.Submit(cmd.Context())
			if errors.Is(err, inquiryform.ErrIncomplete) {
				return fmt.Errorf("name, email, company and requirements are all required")
			}
			return err
		},
	}
	cmd.Flags().StringVar(&draft.Name, "name", "", "Your name")
	cmd.Flags().StringVar(&draft.Email, "email", "", "Work e-mail")
	cmd.Flags().StringVar(&draft.Company, "company", "", "Company")
	cmd.Flags().StringVar(&draft.Requirements, "requirements", "", "AI role needs")
	return cmd
}
