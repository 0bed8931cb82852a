// ABOUTME: User-facing rendering of command failures.
// ABOUTME: Network, server, and auth failures get dedicated messages; anything else a generic one.
package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fitforge/internal/api"
	"github.com/harperreed/fitforge/internal/contact"
	"github.com/harperreed/fitforge/internal/models"
)

// errorMessage turns err into the line shown to the user.
func errorMessage(err error) string {
	switch api.Classify(err) {
	case api.KindValidation:
		var verr *models.ValidationError
		errors.As(err, &verr)
		return fmt.Sprintf("Please check %s: %s.", verr.Field, verr.Message)
	case api.KindNetwork:
		return "Can't reach FitForge. Check your internet connection and try again."
	case api.KindAuth:
		return "You're not signed in, or your session has expired. Run 'fitforge login --token <token>'."
	case api.KindServer:
		var aerr *api.APIError
		errors.As(err, &aerr)
		if aerr.Status >= 500 {
			return "FitForge is having trouble right now. Please try again in a few minutes."
		}
		if aerr.Message != "" {
			return fmt.Sprintf("Request was rejected: %s", aerr.Message)
		}
		return fmt.Sprintf("Request was rejected (%d).", aerr.Status)
	default:
		if errors.Is(err, contact.ErrDuplicate) {
			return "This message was already sent. Please wait a few minutes before sending it again."
		}
		msg := err.Error()
		if strings.HasPrefix(msg, "unknown command") || strings.Contains(msg, "arg(s)") || strings.Contains(msg, "flag") {
			return msg
		}
		return "Something went wrong: " + msg
	}
}

func renderError(w io.Writer, err error) {
	color.New(color.FgRed).Fprintln(w, "✗ "+errorMessage(err))
}
