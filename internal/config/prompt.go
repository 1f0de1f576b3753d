package config

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// PromptSecret reads the password or login key from the terminal with echo
// suppressed. Used when no secret was supplied by flag, file or environment.
func PromptSecret() (string, error) {
	fmt.Fprint(os.Stderr, "Password or Login Key: ")
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading secret: %w", err)
	}
	return string(secret), nil
}
