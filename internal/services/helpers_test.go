package services

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/planboard/planboard/internal/authz"
	"github.com/planboard/planboard/internal/models"
)

// newTestDB opens a fresh in-memory database with the full schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// Each pooled connection would get its own in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access connection pool: %v", err)
	}
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func newTestEngine(db *gorm.DB) *authz.Engine {
	return authz.NewEngine(NewMembershipIndex(db))
}

func seedUser(t *testing.T, db *gorm.DB, email string, role authz.Role) *models.User {
	t.Helper()
	user := &models.User{
		FullName: email,
		Email:    email,
		Role:     string(role),
		AuthType: "local",
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", email, err)
	}
	return user
}

func seedClient(t *testing.T, db *gorm.DB, name string) *models.Client {
	t.Helper()
	client := &models.Client{Name: name}
	if err := db.Create(client).Error; err != nil {
		t.Fatalf("failed to seed client %s: %v", name, err)
	}
	return client
}

func seedProject(t *testing.T, db *gorm.DB, name string, clientID uint) *models.Project {
	t.Helper()
	project := &models.Project{
		Name:     name,
		Status:   models.ProjectStatusNotStarted,
		ClientID: clientID,
	}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("failed to seed project %s: %v", name, err)
	}
	return project
}

func seedTask(t *testing.T, db *gorm.DB, title string, projectID uint, assignedTo *uint) *models.Task {
	t.Helper()
	task := &models.Task{
		Title:      title,
		Status:     models.TaskStatusToDo,
		ProjectID:  projectID,
		AssignedTo: assignedTo,
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to seed task %s: %v", title, err)
	}
	return task
}

func seedAssignment(t *testing.T, db *gorm.DB, projectID, userID uint) *models.ProjectAssignment {
	t.Helper()
	assignment := &models.ProjectAssignment{ProjectID: projectID, UserID: userID}
	if err := db.Create(assignment).Error; err != nil {
		t.Fatalf("failed to seed assignment: %v", err)
	}
	return assignment
}

func actorFor(user *models.User) authz.Actor {
	return authz.Actor{UserID: user.ID, Role: authz.Role(user.Role)}
}
