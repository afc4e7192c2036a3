package services

import (
	"net/http"
	"testing"

	"github.com/planboard/planboard/internal/authz"
)

func TestClientCRUD(t *testing.T) {
	db := newTestDB(t)
	clients := NewClientService(db, newTestEngine(db))

	manager := seedUser(t, db, "pm@example.com", authz.RoleProjectManager)
	member := seedUser(t, db, "member@example.com", authz.RoleTeamMember)

	created, err := clients.Create(actorFor(manager), &CreateClientRequest{
		Name:        "Acme",
		ContactInfo: "acme@example.com",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err = clients.Create(actorFor(member), &CreateClientRequest{Name: "Globex"})
	if e := appErr(t, err); e.HTTPStatus != http.StatusForbidden {
		t.Errorf("member create status = %d, expected 403", e.HTTPStatus)
	}

	got, err := clients.GetByID(actorFor(manager), created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Acme" {
		t.Errorf("name = %q, expected Acme", got.Name)
	}

	contact := "sales@acme.example.com"
	if _, err := clients.Update(actorFor(manager), created.ID, &UpdateClientRequest{ContactInfo: &contact}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	list, err := clients.List(actorFor(manager))
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("clients = %d, expected 1", len(list))
	}

	_, err = clients.List(actorFor(member))
	if e := appErr(t, err); e.HTTPStatus != http.StatusForbidden {
		t.Errorf("member list status = %d, expected 403", e.HTTPStatus)
	}
}

func TestClientDelete(t *testing.T) {
	db := newTestDB(t)
	clients := NewClientService(db, newTestEngine(db))

	admin := seedUser(t, db, "admin@example.com", authz.RoleAdmin)
	manager := seedUser(t, db, "pm@example.com", authz.RoleProjectManager)
	withProjects := seedClient(t, db, "Acme")
	empty := seedClient(t, db, "Globex")
	seedProject(t, db, "Website", withProjects.ID)

	err := clients.Delete(actorFor(manager), empty.ID)
	if e := appErr(t, err); e.HTTPStatus != http.StatusForbidden {
		t.Errorf("manager delete status = %d, expected 403", e.HTTPStatus)
	}

	// A client with projects cannot be removed.
	err = clients.Delete(actorFor(admin), withProjects.ID)
	if e := appErr(t, err); e.HTTPStatus != http.StatusConflict {
		t.Errorf("delete with projects status = %d, expected 409", e.HTTPStatus)
	}

	if err := clients.Delete(actorFor(admin), empty.ID); err != nil {
		t.Fatalf("delete empty client failed: %v", err)
	}

	err = clients.Delete(actorFor(admin), 999)
	if e := appErr(t, err); e.HTTPStatus != http.StatusNotFound {
		t.Errorf("missing client status = %d, expected 404", e.HTTPStatus)
	}
}
