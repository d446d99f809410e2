package cmd

import (
	"fmt"
	"os"

	"github.com/KaramelBytes/datachat-cli/internal/datacontext"
	"github.com/KaramelBytes/datachat-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	ovSheetName  string
	ovSheetIndex int
	ovMaxRows    int
	ovOutputPath string
)

var overviewCmd = &cobra.Command{
	Use:   "overview <file>",
	Short: "Print the data context built from a CSV/XLSX file",
	Long: `Overview ingests the file and prints the exact textual summary that ask
would send to the model: row samples plus per-column statistics and
frequency tables. Useful for checking what the model will actually see.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args[0], ovSheetName, ovSheetIndex, ovMaxRows)
		if err != nil {
			return err
		}

		builder := datacontext.NewBuilder()
		if cfg != nil {
			builder.SampleThreshold = cfg.SampleThreshold
			builder.WindowSize = cfg.SampleWindow
		}
		text := builder.Build(ds).Render()

		if debug {
			fmt.Fprintf(os.Stderr, "context size: %d chars, ~%d tokens\n",
				len(text), utils.CountTokens(text))
		}
		if ovOutputPath != "" {
			if err := utils.SafeWriteFile(ovOutputPath, []byte(text)); err != nil {
				return err
			}
			fmt.Printf("✓ Wrote data context to %s\n", ovOutputPath)
			return nil
		}
		fmt.Print(text)
		return nil
	},
}

func init() {
	overviewCmd.Flags().StringVar(&ovSheetName, "sheet-name", "", "XLSX sheet name (default first sheet)")
	overviewCmd.Flags().IntVar(&ovSheetIndex, "sheet-index", 0, "XLSX sheet index, 1-based")
	overviewCmd.Flags().IntVar(&ovMaxRows, "max-rows", 0, "cap ingested rows (default from config)")
	overviewCmd.Flags().StringVar(&ovOutputPath, "output", "", "write the context to a file instead of stdout")
	rootCmd.AddCommand(overviewCmd)
}
