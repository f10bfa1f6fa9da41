package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccoppo/AcronymLookupTool/internal/importer"
	"github.com/ccoppo/AcronymLookupTool/internal/terms"
)

var importCmd = &cobra.Command{
	Use:   "import [file.csv]",
	Short: "Import terms into the personal glossary",
	Long: `Import a CSV of key,definition[,category[,notes]] rows into the
personal glossary. Rows whose key already exists are skipped; malformed
rows are reported and do not stop the import.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		rt, err := newRuntime(ctx)
		if err != nil {
			fatal("startup failed", err)
		}
		defer rt.Close()

		if err := rt.signIn(ctx); err != nil {
			fatal("sign in failed", err)
		}

		file, err := os.Open(args[0])
		if err != nil {
			fatal("opening file", err)
		}
		defer file.Close()

		imp, err := importer.NewImporter(terms.NewPersonalStore(rt.db.DB()), rt.logg)
		if err != nil {
			fatal("startup failed", err)
		}

		summary, err := imp.ImportPersonal(ctx, file, rt.session.UserID)
		if err != nil {
			fatal("import failed", err)
		}

		fmt.Printf("imported %d, skipped %d, failed %d\n", summary.Imported, summary.Skipped, summary.Failed)
		for _, issue := range summary.Issues {
			if issue.Key != "" {
				fmt.Fprintf(os.Stderr, "  line %d (%s): %s\n", issue.Line, issue.Key, issue.Reason)
			} else {
				fmt.Fprintf(os.Stderr, "  line %d: %s\n", issue.Line, issue.Reason)
			}
		}
		if summary.Failed > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
