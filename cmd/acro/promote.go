package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var promoteProject string

var promoteCmd = &cobra.Command{
	Use:   "promote [key]",
	Short: "Share a personal term with a project",
	Long: `Copy a term from the personal glossary into a project glossary. The
personal copy stays. Members without write access get a change request
queued instead of a direct copy.`,
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

		membership, err := rt.membershipByRef(promoteProject)
		if err != nil {
			fatal("bad project", err)
		}

		outcome, err := rt.requests.Promote(ctx, rt.session.UserID, args[0], *membership)
		if err != nil {
			fatal("promote failed", err)
		}

		if outcome.Promoted {
			fmt.Printf("promoted %s into %s\n", args[0], membership.ProjectCode)
			return
		}
		fmt.Printf("queued promotion request %s for approval\n", outcome.Request.ID)
	},
}

func init() {
	rootCmd.AddCommand(promoteCmd)
	promoteCmd.Flags().StringVarP(&promoteProject, "project", "p", "", "target project (code, name, or id)")
	_ = promoteCmd.MarkFlagRequired("project")
}
