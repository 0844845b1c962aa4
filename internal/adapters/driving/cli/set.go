package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var setCmd = &cobra.Command{
	Use:   "set [service] [account]",
	Short: "Store a credential",
	Long: `Stores a credential for a service and account pair.

The secret is read from stdin when piped, or prompted for without echo on
a terminal:
  echo -n "hunter2" | keybridge set registry.example.com alice

Secrets stored for the managed account are wrapped in a fresh cache record,
so a later get serves them until the record expires.`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	secret, err := readSecret(cmd)
	if err != nil {
		return err
	}

	p, err := newPipeline()
	if err != nil {
		return err
	}
	defer p.close()

	if err := p.service.Set(cmd.Context(), args[0], args[1], secret); err != nil {
		return err
	}

	cmd.Printf("Stored credential for %s/%s\n", args[0], args[1])
	return nil
}

// readSecret takes the secret from piped stdin when available, otherwise
// prompts without echo. Trailing newlines are stripped so shell pipes and
// here-strings behave; interior newlines are kept.
func readSecret(cmd *cobra.Command) (string, error) {
	if stdin, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(stdin.Fd())) {
		cmd.Print("Secret: ")
		secret, err := term.ReadPassword(int(stdin.Fd()))
		cmd.Println()
		if err != nil {
			return "", fmt.Errorf("read secret: %w", err)
		}
		return string(secret), nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read secret: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}
