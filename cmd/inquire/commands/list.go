package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"reliableteam-site/internal/domain"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var errNoToken = errors.New("a staff token is required (--token or ADMIN_TOKEN)")

func (c *CLI) newListCmd() *cobra.Command {
	var statuses []string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List received inquiries (staff)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			backend := c.backend()
			if !backend.HasToken() {
				return errNoToken
			}

			filter := make([]domain.InquiryStatus, 0, len(statuses))
			for _, s := range statuses {
				filter = append(filter, domain.InquiryStatus(s))
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), c.cfg.RequestTimeout)
			defer cancel()
			inquiries, err := backend.ListInquiries(ctx, filter, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(inquiries) == 0 {
				_, _ = fmt.Fprintln(out, "No inquiries.")
				return nil
			}
			_, _ = fmt.Fprintln(out, inquiryTable(inquiries))
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&statuses, "status", nil, "Only these statuses (new, contacted, closed)")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum rows")
	return cmd
}

func inquiryTable(inquiries []domain.Inquiry) string {
	rows := make([][]string, 0, len(inquiries))
	for _, inq := range inquiries {
		rows = append(rows, []string{
			inq.ID.String(),
			inq.CreatedAt.Local().Format("2006-01-02 15:04"),
			string(inq.Status),
			inq.Name,
			inq.Email,
			inq.Company,
			truncate(inq.Requirements, 40),
		})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "RECEIVED", "STATUS", "NAME", "EMAIL", "COMPANY", "AI ROLE NEEDS").
		Rows(rows...).
		String()
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func (c *CLI) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <inquiry-id> <new|contacted|closed>",
		Short: "Set the follow-up status of an inquiry (staff)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid inquiry id: %w", err)
			}
			backend := c.backend()
			if !backend.HasToken() {
				return errNoToken
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), c.cfg.RequestTimeout)
			defer cancel()
			inq, err := backend.UpdateStatus(ctx, id, domain.InquiryStatus(args[1]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", inq.ID, inq.Status)
			return nil
		},
	}
}
