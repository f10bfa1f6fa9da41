package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ccoppo/AcronymLookupTool/internal/terms"
)

var (
	addProject  string
	addCategory string
	addNotes    string
)

var addCmd = &cobra.Command{
	Use:   "add [key] [definition]",
	Short: "Add a term",
	Long: `Add a term to the personal glossary, or with --project to a shared
project glossary. Project additions by members without write access are
queued as change requests for an approver.`,
	Args: cobra.ExactArgs(2),
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

		var projectID *uuid.UUID
		if addProject != "" {
			membership, err := rt.membershipByRef(addProject)
			if err != nil {
				fatal("bad project", err)
			}
			projectID = &membership.ProjectID
		}

		outcome, err := rt.terms.Add(ctx, rt.session.UserID, terms.AddInput{
			Key:        args[0],
			Definition: args[1],
			Category:   addCategory,
			Notes:      addNotes,
			ProjectID:  projectID,
		})
		if err != nil {
			fatal("add failed", err)
		}

		if outcome.Applied {
			fmt.Println("added", args[0])
			return
		}
		fmt.Printf("queued change request %s for approval\n", outcome.Request.ID)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addProject, "project", "p", "", "target project (code, name, or id)")
	addCmd.Flags().StringVar(&addCategory, "category", "", "category tag")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "free form notes")
}
