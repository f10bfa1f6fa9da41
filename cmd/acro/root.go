package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/ccoppo/AcronymLookupTool/internal/memberships"
	"github.com/ccoppo/AcronymLookupTool/internal/permissions"
	"github.com/ccoppo/AcronymLookupTool/internal/promotion"
	"github.com/ccoppo/AcronymLookupTool/internal/search"
	"github.com/ccoppo/AcronymLookupTool/internal/session"
	"github.com/ccoppo/AcronymLookupTool/internal/terms"
	"github.com/ccoppo/AcronymLookupTool/internal/users"
	"github.com/ccoppo/AcronymLookupTool/pkg/config"
	"github.com/ccoppo/AcronymLookupTool/pkg/db"
	"github.com/ccoppo/AcronymLookupTool/pkg/logger"
	"github.com/ccoppo/AcronymLookupTool/pkg/metrics"
)

var (
	userRef string
	asJSON  bool
)

var rootCmd = &cobra.Command{
	Use:   "acro",
	Short: "Look up, manage, and share acronym definitions",
	Long: `acro is the command line surface of the acronym lookup service.
It talks straight to the glossary database and applies the same
permission rules as the desktop popup.`,
}

// Execute runs the root command. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&userRef, "user", "u", "", "acting user (email or id, defaults to $ACRO_USER)")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print machine readable output")
}

// runtime carries the wired service graph for one CLI invocation.
type runtime struct {
	cfg      *config.Config
	logg     *logger.Logger
	db       *db.Client
	users    *users.Repository
	members  *memberships.Repository
	resolver *permissions.Resolver
	search   *search.Orchestrator
	terms    terms.Service
	requests promotion.Service
	sessions *session.Manager
	session  *session.Session
}

func newRuntime(ctx context.Context) (*runtime, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logg := logger.New(logger.Options{
		ServiceName: "acro",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return nil, err
	}

	rt := &runtime{
		cfg:     cfg,
		logg:    logg,
		db:      dbClient,
		users:   users.NewRepository(dbClient.DB()),
		members: memberships.NewRepository(dbClient.DB()),
	}

	personalStore := terms.NewPersonalStore(dbClient.DB())
	projectStore := terms.NewProjectStore(dbClient.DB())
	requestRepo := promotion.NewRepository(dbClient.DB())
	lookupMetrics := metrics.NewLookupMetrics(prometheus.NewRegistry())

	rt.resolver, err = permissions.NewResolver(rt.users, rt.members, logg)
	if err != nil {
		rt.Close()
		return nil, err
	}

	rt.search, err = search.NewOrchestrator(personalStore, projectStore, rt.members, lookupMetrics, logg)
	if err != nil {
		rt.Close()
		return nil, err
	}

	rt.terms, err = terms.NewService(terms.ServiceParams{
		Personal: personalStore,
		Project:  projectStore,
		Requests: requestRepo,
		Resolver: rt.resolver,
		Metrics:  lookupMetrics,
		Logger:   logg,
	})
	if err != nil {
		rt.Close()
		return nil, err
	}

	rt.requests, err = promotion.NewService(promotion.ServiceParams{
		Personal: personalStore,
		Project:  projectStore,
		Requests: requestRepo,
		Resolver: rt.resolver,
		Metrics:  lookupMetrics,
		Logger:   logg,
	})
	if err != nil {
		rt.Close()
		return nil, err
	}

	rt.sessions, err = session.NewManager(rt.users, rt.members, rt.resolver, logg)
	if err != nil {
		rt.Close()
		return nil, err
	}

	return rt, nil
}

// signIn resolves the acting user and opens a session for this invocation.
func (rt *runtime) signIn(ctx context.Context) error {
	ref := userRef
	if ref == "" {
		ref = os.Getenv("ACRO_USER")
	}
	if ref == "" {
		return fmt.Errorf("no acting user: pass --user or set ACRO_USER")
	}

	userID, err := uuid.Parse(ref)
	if err != nil {
		user, lookupErr := rt.users.FindByEmail(ctx, ref)
		if lookupErr != nil {
			return lookupErr
		}
		if user == nil {
			return fmt.Errorf("unknown user %q", ref)
		}
		userID = user.ID
	}

	sess, err := rt.sessions.Begin(ctx, userID)
	if err != nil {
		return err
	}
	rt.session = sess
	return nil
}

func (rt *runtime) Close() {
	if rt.session != nil {
		rt.sessions.End(rt.session)
	}
	if rt.db != nil {
		if err := rt.db.Close(); err != nil {
			rt.logg.Error(context.Background(), "error closing database", err)
		}
	}
}

// membershipByRef matches a project reference (code, name, or id) against the
// session's membership list.
func (rt *runtime) membershipByRef(ref string) (*memberships.MembershipWithProject, error) {
	for i := range rt.session.Memberships {
		m := &rt.session.Memberships[i]
		if strings.EqualFold(m.ProjectCode, ref) ||
			strings.EqualFold(m.ProjectName, ref) ||
			m.ProjectID.String() == strings.ToLower(ref) {
			return m, nil
		}
	}
	return nil, fmt.Errorf("no membership in project %q", ref)
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}
