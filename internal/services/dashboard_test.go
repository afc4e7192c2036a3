package services

import (
	"testing"

	"github.com/planboard/planboard/internal/authz"
	"github.com/planboard/planboard/internal/models"
)

func seedDashboardData(t *testing.T) (*DashboardService, map[string]*models.User) {
	t.Helper()
	db := newTestDB(t)
	svc := NewDashboardService(db, newTestEngine(db))

	admin := seedUser(t, db, "admin@example.com", authz.RoleAdmin)
	manager := seedUser(t, db, "pm@example.com", authz.RoleProjectManager)
	member := seedUser(t, db, "member@example.com", authz.RoleTeamMember)

	acme := seedClient(t, db, "Acme")
	globex := seedClient(t, db, "Globex")

	website := seedProject(t, db, "Website", acme.ID)
	app := seedProject(t, db, "App", globex.ID)
	if err := db.Model(app).Update("status", models.ProjectStatusCompleted).Error; err != nil {
		t.Fatalf("update status failed: %v", err)
	}

	seedAssignment(t, db, website.ID, manager.ID)
	seedAssignment(t, db, website.ID, member.ID)

	done := seedTask(t, db, "Done task", website.ID, &member.ID)
	if err := db.Model(done).Update("status", models.TaskStatusDone).Error; err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	seedTask(t, db, "Open task", website.ID, nil)
	seedTask(t, db, "Other task", app.ID, nil)

	return svc, map[string]*models.User{
		"admin":   admin,
		"manager": manager,
		"member":  member,
	}
}

func TestDashboardStats_Admin(t *testing.T) {
	svc, users := seedDashboardData(t)

	stats, err := svc.Stats(actorFor(users["admin"]))
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalClients != 2 {
		t.Errorf("TotalClients = %d, expected 2", stats.TotalClients)
	}
	if stats.TotalProjects != 2 {
		t.Errorf("TotalProjects = %d, expected 2", stats.TotalProjects)
	}
	if stats.CompletedProjects != 1 {
		t.Errorf("CompletedProjects = %d, expected 1", stats.CompletedProjects)
	}
	if stats.TotalTasks != 3 {
		t.Errorf("TotalTasks = %d, expected 3", stats.TotalTasks)
	}
	if stats.CompletedTasks != 1 {
		t.Errorf("CompletedTasks = %d, expected 1", stats.CompletedTasks)
	}
	if stats.OpenTasks != 2 {
		t.Errorf("OpenTasks = %d, expected 2", stats.OpenTasks)
	}
}

func TestDashboardStats_Manager(t *testing.T) {
	svc, users := seedDashboardData(t)

	stats, err := svc.Stats(actorFor(users["manager"]))
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	// Only the assigned project, its client and its tasks are counted.
	if stats.TotalClients != 1 {
		t.Errorf("TotalClients = %d, expected 1", stats.TotalClients)
	}
	if stats.TotalProjects != 1 {
		t.Errorf("TotalProjects = %d, expected 1", stats.TotalProjects)
	}
	if stats.TotalTasks != 2 {
		t.Errorf("TotalTasks = %d, expected 2", stats.TotalTasks)
	}
}

func TestDashboardStats_Member(t *testing.T) {
	svc, users := seedDashboardData(t)

	stats, err := svc.Stats(actorFor(users["member"]))
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	// A member counts only tasks assigned to them.
	if stats.TotalTasks != 1 {
		t.Errorf("TotalTasks = %d, expected 1", stats.TotalTasks)
	}
	if stats.CompletedTasks != 1 {
		t.Errorf("CompletedTasks = %d, expected 1", stats.CompletedTasks)
	}
	if stats.TotalProjects != 1 {
		t.Errorf("TotalProjects = %d, expected 1", stats.TotalProjects)
	}
}
