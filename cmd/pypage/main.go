// Package main is the entry point for the pypage command-line tool.
// It preprocesses a document by executing the code within <python> and <py>
// tags and replacing the tags with the content passed to write() calls.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-pypage/pypage/pkg/pypage"
)

var (
	version  = "0.1.0"
	verbose  bool
	prettify bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "pypage <input-file>",
		Short:   "pypage - generate documents by executing embedded <python> and <py> tags",
		Version: version,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFile := args[0]

			if verbose {
				pypage.GetLogger().Info("preprocessing file %s", inputFile)
			}

			result, err := pypage.RenderFile(inputFile)
			if err != nil {
				return err
			}

			if prettify {
				result = pypage.Prettify(result)
			}

			fmt.Print(result)
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print a short message before preprocessing")
	rootCmd.Flags().BoolVarP(&prettify, "prettify", "p", false, "prettify the resulting HTML")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
