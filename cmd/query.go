package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/treepat/treepat/internal/treeio"
)

var queryPath string

var queryCmd = &cobra.Command{
	Use:   "query [tree files...]",
	Short: "Run an attribute-matcher query against type declarations",
	Run: func(cmd *cobra.Command, args []string) {
		if queryPath == "" {
			fmt.Println("error: Please provide a query file with --query")
			os.Exit(1)
		}
		if len(args) == 0 {
			fmt.Println("error: Please provide tree file paths")
			os.Exit(1)
		}

		matcher, err := treeio.LoadQuery(queryPath)
		if err != nil {
			logger.Fatal("Failed to load query", zap.Error(err))
		}

		matched := 0
		for _, path := range args {
			node, err := treeio.LoadTree(path)
			if err != nil {
				logger.Error("Error loading tree", zap.String("path", path), zap.Error(err))
				os.Exit(1)
			}
			if matcher.Matches(node) {
				fmt.Println(path)
				matched++
			}
		}
		if matched == 0 {
			os.Exit(1)
		}
	},
}

func init() {
	queryCmd.Flags().StringVarP(&queryPath, "query", "q", "", "Attribute query file")
}
