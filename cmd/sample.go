package cmd

import (
	"bytes"
	"fmt"

	"github.com/KaramelBytes/datachat-cli/internal/dataset"
	"github.com/KaramelBytes/datachat-cli/internal/utils"
	"github.com/spf13/cobra"
)

var sampleCmd = &cobra.Command{
	Use:   "sample [path]",
	Short: "Write a demo sales dataset as CSV",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "sample_sales.csv"
		if len(args) == 1 {
			path = args[0]
		}
		ds := dataset.Sample()
		var buf bytes.Buffer
		if err := ds.WriteCSV(&buf); err != nil {
			return err
		}
		if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %d rows to %s\n", ds.RowCount(), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)
}
