// ABOUTME: CLI command for the contact form.
// ABOUTME: Validates and sends a message; identical resubmissions are refused for five minutes.
package main

import (
	"github.com/fatih/color"
	"github.com/harperreed/fitforge/internal/models"
	"github.com/spf13/cobra"
)

var contactMsg models.ContactMessage

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Send a message to FitForge support",
	Long: `Send a message to FitForge support.

All fields are required and the message must be at least 10 characters.
Sending the same subject from the same email again within five minutes is
refused.

EXAMPLE:

  fitforge contact --name Ada --email ada@example.com \
    --subject "Billing" --message "I was charged twice this month."`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := contactForm().Submit(cmdContext(cmd), contactMsg); err != nil {
			return err
		}
		color.Green("✓ Message sent. We'll get back to you at %s", contactMsg.Email)
		return nil
	},
}

func init() {
	contactCmd.Flags().StringVar(&contactMsg.Name, "name", "", "your name")
	contactCmd.Flags().StringVar(&contactMsg.Email, "email", "", "reply-to email address")
	contactCmd.Flags().StringVar(&contactMsg.Subject, "subject", "", "subject")
	contactCmd.Flags().StringVarP(&contactMsg.Message, "message", "m", "", "message body")
	rootCmd.AddCommand(contactCmd)
}
