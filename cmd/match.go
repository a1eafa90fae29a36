package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/treepat/treepat/formatter"
	"github.com/treepat/treepat/match"
)

var (
	matchJSONOutput bool
	outPath         string
)

var matchCmd = &cobra.Command{
	Use:   "match [paths...]",
	Short: "Match candidate tree files against the template catalogue",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide tree file or directory paths")
			os.Exit(1)
		}

		reg, err := match.New(templatesPath)
		if err != nil {
			logger.Fatal("Failed to load template catalogue", zap.Error(err))
		}

		results, err := match.ProcessFiles(context.Background(), logger, reg, args)
		if err != nil {
			logger.Error("Error processing files", zap.Error(err))
			os.Exit(1)
		}

		printResults(results, matchJSONOutput, outPath)
	},
}

func init() {
	matchCmd.Flags().BoolVar(&matchJSONOutput, "json", false, "Output matches in JSON format")
	matchCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
}

// jsonMatch is the JSON shape of one result; captured subtrees are
// rendered as s-expressions.
type jsonMatch struct {
	Filename      string            `json:"filename"`
	Template      string            `json:"template"`
	Root          string            `json:"root"`
	Params        map[string]string `json:"params,omitempty"`
	Substitutions map[string]string `json:"substitutions,omitempty"`
	TypeVars      map[string]string `json:"typeVars,omitempty"`
}

func printResults(results []match.Result, isJSON bool, jsonOutput string) {
	if !isJSON {
		fmt.Print(formatter.Format(results))
		fmt.Printf("%d match(es) found.\n", len(results))
		return
	}

	out := make([]jsonMatch, 0, len(results))
	for _, r := range results {
		jm := jsonMatch{
			Filename: r.Filename,
			Template: r.Template,
			Root:     r.Root.String(),
			TypeVars: r.TypeVars,
		}
		if len(r.Params) > 0 {
			jm.Params = make(map[string]string, len(r.Params))
			for k, v := range r.Params {
				jm.Params[k] = v.String()
			}
		}
		if len(r.Substitutions) > 0 {
			jm.Substitutions = make(map[string]string, len(r.Substitutions))
			for k, v := range r.Substitutions {
				jm.Substitutions[k] = v.String()
			}
		}
		out = append(out, jm)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		logger.Error("Error marshaling results to JSON", zap.Error(err))
		os.Exit(1)
	}

	if jsonOutput == "" {
		fmt.Println(string(data))
		return
	}
	if err := os.WriteFile(jsonOutput, data, 0o644); err != nil {
		logger.Error("Error writing JSON output file", zap.Error(err))
		os.Exit(1)
	}
}
