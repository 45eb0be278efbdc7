package commands

import (
	"fmt"
	"interview-harvest/lib/warehouse"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(setupCmd)
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Creates the warehouse table if it does not exist and verifies it can be read.",
	RunE: func(cmd *cobra.Command, args []string) error {
		wc, err := warehouseConfig()
		if err != nil {
			return err
		}
		store, err := warehouse.Open(cmd.Context(), wc)
		if err != nil {
			return err
		}
		defer store.Close()

		err = store.Setup(cmd.Context())
		if err != nil {
			return err
		}
		count, err := store.Count(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("table %s ready on %s with %d rows\n", store.Table(), store.Driver(), count)
		return nil
	},
}
