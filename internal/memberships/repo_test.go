package memberships

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ccoppo/AcronymLookupTool/pkg/db/models"
	"github.com/ccoppo/AcronymLookupTool/pkg/enums"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := conn.AutoMigrate(&models.User{}, &models.Project{}, &models.ProjectMember{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func TestRepositoryMembershipFlow(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	user := &models.User{
		ID:          uuid.New(),
		Email:       fmt.Sprintf("acro_test_%s@example.com", uuid.NewString()),
		DisplayName: "Test Member",
		IsActive:    true,
	}
	if err := conn.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	project := &models.Project{
		ID:       uuid.New(),
		Name:     "Avionics",
		Code:     "AVX",
		IsActive: true,
	}
	if err := conn.Create(project).Error; err != nil {
		t.Fatalf("create project: %v", err)
	}

	membership, err := repo.CreateMembership(ctx, project.ID, user.ID, enums.MemberRoleEditor, enums.MembershipStatusActive)
	if err != nil {
		t.Fatalf("create membership: %v", err)
	}

	list, err := repo.ListUserProjects(ctx, user.ID)
	if err != nil {
		t.Fatalf("list user projects: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 project, got %d", len(list))
	}
	if list[0].ProjectName != project.Name {
		t.Fatalf("expected project name %s, got %s", project.Name, list[0].ProjectName)
	}
	if list[0].ProjectCode != "AVX" {
		t.Fatalf("expected project code AVX, got %s", list[0].ProjectCode)
	}
	if list[0].Role != enums.MemberRoleEditor {
		t.Fatalf("unexpected role %s", list[0].Role)
	}

	exists, err := repo.UserHasRole(ctx, user.ID, project.ID, enums.MemberRoleEditor)
	if err != nil {
		t.Fatalf("check role: %v", err)
	}
	if !exists {
		t.Fatal("expected user to have role editor")
	}

	other, err := repo.UserHasRole(ctx, user.ID, project.ID, enums.MemberRoleAdmin)
	if err != nil {
		t.Fatalf("check other role: %v", err)
	}
	if other {
		t.Fatal("expected user to not have admin role")
	}

	fetched, err := repo.GetMembership(ctx, user.ID, project.ID)
	if err != nil {
		t.Fatalf("get membership: %v", err)
	}
	if fetched == nil || fetched.ID != membership.ID {
		t.Fatalf("expected membership %s, got %+v", membership.ID, fetched)
	}

	missing, err := repo.GetMembership(ctx, uuid.New(), project.ID)
	if err != nil {
		t.Fatalf("get missing membership: %v", err)
	}
	if missing != nil {
		t.Fatal("expected nil for missing membership")
	}

	if _, err := repo.CreateMembership(ctx, project.ID, user.ID, enums.MemberRoleAdmin, enums.MembershipStatusActive); err == nil {
		t.Fatal("expected duplicate membership to fail")
	}
}

func TestUserHasRoleIgnoresInactiveMemberships(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	project := &models.Project{ID: uuid.New(), Name: "Ground", Code: "GND", IsActive: true}
	if err := conn.Create(project).Error; err != nil {
		t.Fatalf("create project: %v", err)
	}
	userID := uuid.New()
	if _, err := repo.CreateMembership(ctx, project.ID, userID, enums.MemberRoleAdmin, enums.MembershipStatusInactive); err != nil {
		t.Fatalf("create membership: %v", err)
	}

	has, err := repo.UserHasRole(ctx, userID, project.ID, enums.MemberRoleAdmin)
	if err != nil {
		t.Fatalf("check role: %v", err)
	}
	if has {
		t.Fatal("expected inactive membership to grant nothing")
	}

	if err := repo.SetStatus(ctx, project.ID, userID, enums.MembershipStatusActive); err != nil {
		t.Fatalf("set status: %v", err)
	}
	has, err = repo.UserHasRole(ctx, userID, project.ID, enums.MemberRoleAdmin)
	if err != nil {
		t.Fatalf("check role after reactivation: %v", err)
	}
	if !has {
		t.Fatal("expected reactivated membership to grant the role")
	}
}
