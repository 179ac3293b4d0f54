package main

import (
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write sitemap.xml for every HTML page under the site root",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		defer logger.Close()

		output := sitePath(cfg.Generator.Output)
		logger.LogInfo("Collecting pages under %s", cfg.Site.Root)

		gen := newGenerator()
		result, err := gen.Generate(logger.Tee(stdout(cmd)), output)
		if err != nil {
			logger.LogError("Generate failed: %v", err)
			return err
		}

		record(cmd.Context(), logger, result.Run(cfg.Site.Root))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
