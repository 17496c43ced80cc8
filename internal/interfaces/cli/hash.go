package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	domxr "github.com/jhoicas/xrechnung-api/internal/domain/xrechnung"
	"github.com/jhoicas/xrechnung-api/internal/infrastructure/xrechnung"
)

func newHashCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash [file.xml]",
		Short: "SHA-256 de un XML archivado (bytes y, opcional, forma canónica)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("leer %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", domxr.Digest(string(data)), args[0])

			if canonical, _ := cmd.Flags().GetBool("canonical"); canonical {
				sum, err := xrechnung.CanonicalDigest(string(data))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s (c14n)\n", sum, args[0])
			}
			return nil
		},
	}
	cmd.Flags().Bool("canonical", false, "también el hash de la forma C14N")
	return cmd
}
