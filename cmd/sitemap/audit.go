package main

import (
	"github.com/spf13/cobra"

	"github.com/grupomymce/sitemap-tools/internal/audit"
)

var auditOut string

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Report missing titles, descriptions, h1s, alt text and canonical mismatches",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		defer logger.Close()

		report, err := audit.NewAuditor(generatorCollector(), cfg.Domain()).Audit()
		if err != nil {
			logger.LogError("Audit failed: %v", err)
			return err
		}
		report.Print(logger.Tee(stdout(cmd)))

		if auditOut != "" {
			if err := report.WriteJSON(auditOut); err != nil {
				return err
			}
			logger.LogInfo("Audit report saved to %s", auditOut)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)

	auditCmd.Flags().StringVarP(&auditOut, "out", "o", "", "write the full JSON report to this file")
}
