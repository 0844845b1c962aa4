package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get [service] [account]",
	Short: "Look up a credential",
	Long: `Looks up the credential for a service and account pair.

For managed accounts the result is a Google Cloud access token: the cached
token when it is still fresh, otherwise a newly minted one. For every other
account the stored secret is returned as-is.

The credential is printed to stdout so it can be piped:
  keybridge get europe-west1-docker.pkg.dev oauth2accesstoken | docker login -u oauth2accesstoken --password-stdin europe-west1-docker.pkg.dev`,
	Args: cobra.ExactArgs(2),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	p, err := newPipeline()
	if err != nil {
		return err
	}
	defer p.close()

	credential, err := p.service.Get(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}

	// The credential is the command's only stdout output; cmd.Print and
	// friends go to stderr.
	fmt.Fprintln(cmd.OutOrStdout(), credential)
	return nil
}
