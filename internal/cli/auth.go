package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/legalease/docchat-go/internal/auth"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var signupFullName string

var signinCmd = &cobra.Command{
	Use:   "signin <email>",
	Short: "Sign in and store the session",
	Long: `Sign in to the LegalEase service. The password is read from the
terminal without echo. On success the access token is stored and used
by all other commands until you sign out.

Examples:
  docchat signin jane@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runSignin,
}

var signupCmd = &cobra.Command{
	Use:   "signup <email>",
	Short: "Create an account and sign in",
	Long: `Create a new account. The password is read twice from the terminal
without echo and must match. On success you are signed in immediately.

Examples:
  docchat signup jane@example.com --name "Jane Doe"`,
	Args: cobra.ExactArgs(1),
	RunE: runSignup,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and discard the stored session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user and active document",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	signupCmd.Flags().StringVarP(&signupFullName, "name", "n", "", "full name for the new account")
}

func runSignin(cmd *cobra.Command, args []string) error {
	password, err := promptPassword("Password")
	if err != nil {
		return err
	}

	creds := auth.SignInCredentials{Email: args[0], Password: password}
	if err := authSvc.SignIn(context.Background(), creds); err != nil {
		return err
	}

	user, _ := store.User()
	fmt.Printf("Signed in as %s (%s)\n", user.FullName, user.Email)
	return nil
}

func runSignup(cmd *cobra.Command, args []string) error {
	password, err := promptPassword("Password")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("Confirm password")
	if err != nil {
		return err
	}

	creds := auth.SignUpCredentials{
		Email:           args[0],
		Password:        password,
		ConfirmPassword: confirm,
		FullName:        signupFullName,
	}
	if err := authSvc.SignUp(context.Background(), creds); err != nil {
		return err
	}

	user, _ := store.User()
	fmt.Printf("Account created. Signed in as %s (%s)\n", user.FullName, user.Email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	if err := authSvc.SignOut(); err != nil {
		return err
	}
	fmt.Println("Signed out.")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	user, ok := store.User()
	if !ok {
		fmt.Println("Not signed in.")
		return nil
	}

	fmt.Printf("%s (%s)\n", user.FullName, user.Email)
	if doc, ok := store.Document(); ok {
		fmt.Printf("Active document: %s (%s)\n", doc.Filename, doc.DocumentID)
	} else {
		fmt.Println("No active document.")
	}
	return nil
}

// promptPassword reads a password from the terminal without echo.
func promptPassword(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}
