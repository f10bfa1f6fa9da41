package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccoppo/AcronymLookupTool/internal/search"
)

var (
	lookupProject   string
	lookupPersonal  bool
	lookupSubstring bool
)

var lookupCmd = &cobra.Command{
	Use:   "lookup [term]",
	Short: "Look up an acronym",
	Long: `Look up an acronym across the personal glossary and every project
the acting user belongs to. Personal definitions are listed first.`,
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

		scope, err := lookupScope(rt)
		if err != nil {
			fatal("bad scope", err)
		}

		var result search.Result
		if lookupSubstring {
			result, err = rt.search.Browse(ctx, args[0], scope, rt.session.UserID)
		} else {
			result, err = rt.search.Search(ctx, args[0], scope, rt.session.UserID)
		}
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

func lookupScope(rt *runtime) (search.Scope, error) {
	switch {
	case lookupPersonal:
		if err := rt.sessions.SetFilter(rt.session, search.ScopePersonal()); err != nil {
			return search.Scope{}, err
		}
	case lookupProject != "":
		membership, err := rt.membershipByRef(lookupProject)
		if err != nil {
			return search.Scope{}, err
		}
		scope, err := search.ScopeForProject(*membership)
		if err != nil {
			return search.Scope{}, err
		}
		if err := rt.sessions.SetFilter(rt.session, scope); err != nil {
			return search.Scope{}, err
		}
	}
	return rt.session.Filter, nil
}

func printResult(result search.Result) {
	if asJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			fatal("encoding result", err)
		}
		return
	}

	if result.Empty() {
		fmt.Printf("no definition found for %q\n", result.Term)
		return
	}
	for _, hit := range result.Hits {
		line := fmt.Sprintf("%s: %s [%s]", hit.Record.Key, hit.Record.Definition, hit.Source)
		if hit.Record.Category != "" {
			line += " (" + hit.Record.Category + ")"
		}
		fmt.Println(line)
		if hit.Record.Notes != "" {
			fmt.Println("  " + hit.Record.Notes)
		}
	}
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.Flags().StringVarP(&lookupProject, "project", "p", "", "limit to one project (code, name, or id)")
	lookupCmd.Flags().BoolVar(&lookupPersonal, "personal", false, "limit to the personal glossary")
	lookupCmd.Flags().BoolVar(&lookupSubstring, "substring", false, "match keys containing the term instead of exact keys")
}
