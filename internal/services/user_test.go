package services

import (
	"net/http"
	"testing"

	"github.com/planboard/planboard/internal/authz"
	"github.com/planboard/planboard/internal/models"
)

func TestUserList_RoleGate(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db, newTestEngine(db))

	admin := seedUser(t, db, "admin@example.com", authz.RoleAdmin)
	manager := seedUser(t, db, "pm@example.com", authz.RoleProjectManager)
	member := seedUser(t, db, "member@example.com", authz.RoleTeamMember)

	for _, actor := range []*models.User{admin, manager} {
		list, err := users.List(actorFor(actor))
		if err != nil {
			t.Fatalf("%s List failed: %v", actor.Role, err)
		}
		if len(list) != 3 {
			t.Errorf("%s sees %d users, expected 3", actor.Role, len(list))
		}
	}

	_, err := users.List(actorFor(member))
	if e := appErr(t, err); e.HTTPStatus != http.StatusForbidden {
		t.Errorf("member list status = %d, expected 403", e.HTTPStatus)
	}
}

func TestUserDelete_CleansReferences(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db, newTestEngine(db))

	admin := seedUser(t, db, "admin@example.com", authz.RoleAdmin)
	member := seedUser(t, db, "member@example.com", authz.RoleTeamMember)
	client := seedClient(t, db, "Acme")
	project := seedProject(t, db, "Website", client.ID)
	seedAssignment(t, db, project.ID, member.ID)
	task := seedTask(t, db, "Design", project.ID, &member.ID)

	if err := users.Delete(actorFor(admin), member.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	var assignments int64
	db.Model(&models.ProjectAssignment{}).Where("user_id = ?", member.ID).Count(&assignments)
	if assignments != 0 {
		t.Errorf("assignments = %d, expected 0", assignments)
	}

	// The task survives, unassigned.
	var reloaded models.Task
	if err := db.First(&reloaded, task.ID).Error; err != nil {
		t.Fatalf("task should survive user deletion: %v", err)
	}
	if reloaded.AssignedTo != nil {
		t.Error("task assignee should be cleared")
	}
}

func TestUserDelete_Gates(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db, newTestEngine(db))

	admin := seedUser(t, db, "admin@example.com", authz.RoleAdmin)
	manager := seedUser(t, db, "pm@example.com", authz.RoleProjectManager)
	member := seedUser(t, db, "member@example.com", authz.RoleTeamMember)

	err := users.Delete(actorFor(manager), member.ID)
	if e := appErr(t, err); e.HTTPStatus != http.StatusForbidden {
		t.Errorf("manager delete status = %d, expected 403", e.HTTPStatus)
	}

	err = users.Delete(actorFor(admin), admin.ID)
	if e := appErr(t, err); e.HTTPStatus != http.StatusConflict {
		t.Errorf("self delete status = %d, expected 409", e.HTTPStatus)
	}

	err = users.Delete(actorFor(admin), 999)
	if e := appErr(t, err); e.HTTPStatus != http.StatusNotFound {
		t.Errorf("missing user status = %d, expected 404", e.HTTPStatus)
	}
}
