package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [specifiers...]",
		Short: "Resolve specifiers to loadable module ids",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}

			configPath, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}
			importer, err := cmd.Flags().GetString("importer")
			if err != nil {
				return err
			}

			results, err := c.app.Resolve(cmd.Context(), configPath, importer, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, r := range results {
				switch {
				case r.Module == nil:
					_, _ = fmt.Fprintf(out, "%s\texternal\n", r.Specifier)
				case r.Module.IsEmptyStub():
					_, _ = fmt.Fprintf(out, "%s\tempty stub\n", r.Specifier)
				default:
					_, _ = fmt.Fprintf(out, "%s\t%s\tsideEffects=%s\tdigest=%s\n",
						r.Specifier, r.Module.ID, r.Module.SideEffects, r.Digest)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringP("importer", "i", "", "Path of the importing module (empty marks a graph root)")
	return cmd
}
