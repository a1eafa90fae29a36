package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	templatesPath string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:              "treepat",
	Short:            "treepat - structural pattern matching for resolved source trees",
	TraverseChildren: true,
	Run: func(cmd *cobra.Command, args []string) {
		// no subcommand
		if len(args) == 0 {
			_ = cmd.Help()
			return
		}
		// treepat [path1 path2 ...] behaves like the match subcommand
		matchCmd.Run(matchCmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&templatesPath, "templates", "t", "templates.yaml", "Template catalogue file")

	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(queryCmd)

	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		panic(err)
	}
}
