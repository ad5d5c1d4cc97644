package cli

import (
	"github.com/charmbracelet/huh"
)

// promptCredentials asks for the missing pieces of a login
// interactively.
func promptCredentials(identifier string) (string, string, error) {
	var password string
	fields := []huh.Field{}
	if identifier == "" {
		fields = append(fields, huh.NewInput().
			Title("Account id or email").
			Value(&identifier))
	}
	fields = append(fields, huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(&password))

	form := huh.NewForm(huh.NewGroup(fields...))
	if err := form.Run(); err != nil {
		return "", "", err
	}
	return identifier, password, nil
}

// promptSignup collects signup details interactively. An empty email
// creates a trial account.
func promptSignup() (email, userName, password string, err error) {
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Email (leave empty for a trial account)").
			Value(&email),
		huh.NewInput().
			Title("User name").
			Value(&userName),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&password),
	))
	if err := form.Run(); err != nil {
		return "", "", "", err
	}
	return email, userName, password, nil
}
