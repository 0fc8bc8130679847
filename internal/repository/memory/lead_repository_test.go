package memory

import (
	"testing"
	"time"

	"monarch-crm-be/internal/model"

	"github.com/google/uuid"
)

func makeLead(name, email string, status model.LeadStatus) *model.Lead {
	return &model.Lead{
		Id:        uuid.New(),
		Name:      name,
		Email:     email,
		Phone:     "N/A",
		Status:    status,
		CreatedAt: time.Now(),
	}
}

func TestLeadRepositoryCreatePrepends(t *testing.T) {
	repo := NewLeadRepository()
	first := makeLead("Alice Sterling", "alice@estates.com", model.LeadStatusNew)
	second := makeLead("Bob Whitmore", "bob@estates.com", model.LeadStatusNew)

	repo.Create(first)
	repo.Create(second)

	leads := repo.List("", "")
	if len(leads) != 2 {
		t.Fatalf("got %d leads, want 2", len(leads))
	}
	if leads[0].Id != second.Id {
		t.Error("newest lead should be first")
	}
	if repo.Len() != 2 {
		t.Errorf("Len() = %d, want 2", repo.Len())
	}
}

func TestLeadRepositoryGetReturnsCopy(t *testing.T) {
	repo := NewLeadRepository()
	lead := makeLead("Alice Sterling", "alice@estates.com", model.LeadStatusNew)
	repo.Create(lead)

	got, ok := repo.Get(lead.Id)
	if !ok {
		t.Fatal("lead not found")
	}
	got.Name = "mutated"

	again, _ := repo.Get(lead.Id)
	if again.Name != "Alice Sterling" {
		t.Error("repository handed out a shared pointer")
	}
}

func TestLeadRepositoryUpdateMergesFields(t *testing.T) {
	repo := NewLeadRepository()
	lead := makeLead("Alice Sterling", "alice@estates.com", model.LeadStatusNew)
	repo.Create(lead)

	status := model.LeadStatusReady
	phone := "(713) 555-0100"
	updated, ok := repo.Update(lead.Id, LeadPatch{Status: &status, Phone: &phone})
	if !ok {
		t.Fatal("update failed")
	}
	if updated.Status != model.LeadStatusReady || updated.Phone != phone {
		t.Errorf("patched fields not applied: %+v", updated)
	}
	if updated.Name != "Alice Sterling" || updated.Email != "alice@estates.com" {
		t.Error("unpatched fields were disturbed")
	}
}

func TestLeadRepositoryUpdateMissingIsNoop(t *testing.T) {
	repo := NewLeadRepository()
	name := "Ghost"
	if _, ok := repo.Update(uuid.New(), LeadPatch{Name: &name}); ok {
		t.Error("update on missing id should report failure")
	}
}

func TestLeadRepositoryDelete(t *testing.T) {
	repo := NewLeadRepository()
	lead := makeLead("Alice Sterling", "alice@estates.com", model.LeadStatusNew)
	repo.Create(lead)

	if !repo.Delete(lead.Id) {
		t.Fatal("delete failed")
	}
	if _, ok := repo.Get(lead.Id); ok {
		t.Error("lead still present after delete")
	}
	if repo.Delete(lead.Id) {
		t.Error("second delete should report failure")
	}
}

func TestLeadRepositoryList(t *testing.T) {
	repo := NewLeadRepository()
	repo.Create(makeLead("Victoria Langford", "victoria@estates.com", model.LeadStatusNew))
	repo.Create(makeLead("Preston Whitmore", "preston@capital.com", model.LeadStatusReady))
	repo.Create(makeLead("Isabella Marchetti", "bella@VICTORIAN.com", model.LeadStatusSent))

	tests := []struct {
		name      string
		search    string
		status    string
		wantCount int
	}{
		{"no filters", "", "", 3},
		{"status All matches everything", "", "All", 3},
		{"search matches name case-insensitively", "victoria", "", 2}, // name + email domain
		{"search matches email", "capital", "", 1},
		{"exact status", "", string(model.LeadStatusReady), 1},
		{"search and status combined", "victoria", string(model.LeadStatusNew), 1},
		{"no match", "nobody", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repo.List(tt.search, tt.status)
			if len(got) != tt.wantCount {
				t.Errorf("got %d leads, want %d", len(got), tt.wantCount)
			}
		})
	}
}
