package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewCategoriesCmd(source Source) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the product categories available for filtering",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, c := range source.Dashboard().Categories() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), c); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
