package promotion

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ccoppo/AcronymLookupTool/pkg/db/models"
	"github.com/ccoppo/AcronymLookupTool/pkg/enums"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.TermRequest{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func seedRequest(t *testing.T, repo *Repository, projectID uuid.UUID, key string, createdAt time.Time) *models.TermRequest {
	t.Helper()
	request := &models.TermRequest{
		Kind:              enums.RequestKindPromote,
		ProjectID:         projectID,
		Key:               key,
		Definition:        key + " definition",
		RequestedByUserID: uuid.New(),
		Status:            enums.RequestStatusPending,
		CreatedAt:         createdAt,
	}
	if err := repo.Create(context.Background(), request); err != nil {
		t.Fatalf("create request: %v", err)
	}
	return request
}

func TestRepositoryCreateAssignsID(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	request := seedRequest(t, repo, uuid.New(), "API", time.Now().UTC())
	if request.ID == uuid.Nil {
		t.Fatal("expected assigned id")
	}

	found, err := repo.FindByID(context.Background(), request.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found == nil || found.Key != "API" {
		t.Fatalf("unexpected row: %+v", found)
	}
}

func TestRepositoryFindByIDMissIsNil(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	found, err := repo.FindByID(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found != nil {
		t.Fatalf("expected nil on miss, got %+v", found)
	}
}

func TestRepositoryFindPendingByKeyScopesToProjectAndKind(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	projectID := uuid.New()
	seedRequest(t, repo, projectID, "API", time.Now().UTC())

	found, err := repo.FindPendingByKey(context.Background(), projectID, enums.RequestKindPromote, "API")
	if err != nil {
		t.Fatalf("find pending: %v", err)
	}
	if found == nil {
		t.Fatal("expected pending row")
	}

	otherProject, err := repo.FindPendingByKey(context.Background(), uuid.New(), enums.RequestKindPromote, "API")
	if err != nil {
		t.Fatalf("find pending: %v", err)
	}
	if otherProject != nil {
		t.Fatal("pending lookup must not cross projects")
	}

	otherKind, err := repo.FindPendingByKey(context.Background(), projectID, enums.RequestKindDelete, "API")
	if err != nil {
		t.Fatalf("find pending: %v", err)
	}
	if otherKind != nil {
		t.Fatal("pending lookup must not cross kinds")
	}
}

func TestRepositoryListPendingOldestFirst(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	projectID := uuid.New()
	base := time.Now().UTC().Add(-time.Hour)
	seedRequest(t, repo, projectID, "SECOND", base.Add(time.Minute))
	seedRequest(t, repo, projectID, "FIRST", base)

	list, err := repo.ListPending(context.Background(), projectID)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(list) != 2 || list[0].Key != "FIRST" || list[1].Key != "SECOND" {
		t.Fatalf("unexpected order: %+v", list)
	}
}

func TestRepositoryMarkReviewedClosesRequest(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	projectID := uuid.New()
	request := seedRequest(t, repo, projectID, "API", time.Now().UTC())
	reviewerID := uuid.New()

	err := repo.MarkReviewed(context.Background(), request.ID, enums.RequestStatusRejected, reviewerID, "covered elsewhere")
	if err != nil {
		t.Fatalf("mark reviewed: %v", err)
	}

	found, err := repo.FindByID(context.Background(), request.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.Status != enums.RequestStatusRejected || found.ReviewNote != "covered elsewhere" {
		t.Fatalf("unexpected row: %+v", found)
	}
	if found.ReviewedByUserID == nil || *found.ReviewedByUserID != reviewerID {
		t.Fatal("reviewer must be recorded")
	}
	if found.ReviewedAt == nil {
		t.Fatal("review time must be recorded")
	}

	pending, err := repo.ListPending(context.Background(), projectID)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("reviewed request still pending: %+v", pending)
	}
}
