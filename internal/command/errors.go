package command

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"
)

// Error kinds a command can end in. Wrap with %w and test with errors.Is.
var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrRateLimited      = errors.New("rate limited")
	ErrHTTPFailure      = errors.New("http failure")
	ErrValidation       = errors.New("validation failed")
)

// Classify wraps a Discord API error with the kind it represents, keeping the
// original error reachable through errors.As.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range []error{ErrPermissionDenied, ErrForbidden, ErrNotFound, ErrRateLimited, ErrHTTPFailure, ErrValidation} {
		if errors.Is(err, kind) {
			return err
		}
	}

	var rl *discordgo.RateLimitError
	if errors.As(err, &rl) {
		return fmt.Errorf("%w: %w", ErrRateLimited, err)
	}

	var rest *discordgo.RESTError
	if errors.As(err, &rest) && rest.Response != nil {
		switch rest.Response.StatusCode {
		case http.StatusForbidden:
			return fmt.Errorf("%w: %w", ErrForbidden, err)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %w", ErrNotFound, err)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %w", ErrRateLimited, err)
		}
	}
	return fmt.Errorf("%w: %w", ErrHTTPFailure, err)
}

// Describe turns a classified error into the sentence shown to the user.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrPermissionDenied):
		return "You do not have permission to use this command."
	case errors.Is(err, ErrForbidden):
		return "I do not have permission to do that here."
	case errors.Is(err, ErrNotFound):
		return "That user, channel or server could not be found."
	case errors.Is(err, ErrRateLimited):
		return "Discord is rate limiting me. Please try again in a moment."
	case errors.Is(err, ErrValidation):
		return err.Error()
	default:
		return fmt.Sprintf("An error occurred: %v", err)
	}
}
