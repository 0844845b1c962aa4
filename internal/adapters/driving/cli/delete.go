package cli

import (
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [service] [account]",
	Short: "Remove a credential",
	Long: `Removes the credential for a service and account pair.

Removal always reaches the store directly, managed account or not.
Deleting a credential that does not exist is not an error.`,
	Args: cobra.ExactArgs(2),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	p, err := newPipeline()
	if err != nil {
		return err
	}
	defer p.close()

	if err := p.service.Delete(cmd.Context(), args[0], args[1]); err != nil {
		return err
	}

	cmd.Printf("Deleted credential for %s/%s\n", args[0], args[1])
	return nil
}
