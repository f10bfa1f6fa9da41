package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccoppo/AcronymLookupTool/internal/capture"
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Look up whatever is on the clipboard",
	Long: `Read the system clipboard, validate it as an acronym key, and look it
up. This is the one-shot equivalent of the desktop hotkey flow.`,
	Args: cobra.NoArgs,
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

		clip := capture.SystemClipboard{}
		text, err := clip.ReadText()
		if err != nil {
			fatal("reading clipboard", err)
		}

		outcome := capture.ValidateKey(text, rt.cfg.Capture.MaxKeyLength)
		if !outcome.OK() {
			fmt.Fprintf(os.Stderr, "clipboard text rejected: %s\n", outcome.Reason)
			os.Exit(1)
		}

		result, err := rt.search.Search(ctx, outcome.Key, rt.session.Filter, rt.session.UserID)
		if err != nil {
			fatal("lookup failed", err)
		}
		rt.sessions.RecordResult(rt.session, result)

		printResult(result)
		if result.Empty() {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(captureCmd)
}
