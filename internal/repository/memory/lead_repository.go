package memory

import (
	"strings"
	"sync"

	"monarch-crm-be/internal/model"

	"github.com/google/uuid"
)

// LeadPatch carries a partial field update. Nil pointers leave the field
// untouched; merges are last-write-wins per field.
type LeadPatch struct {
	Name             *string
	Email            *string
	Phone            *string
	Status           *model.LeadStatus
	EmailSubject     *string
	EmailBody        *string
	EmailSent        *bool
	WebsiteGenerated *bool
	WebsiteURL       *string
	HTMLContent      *string
	SelectedTemplate *model.WebsiteTemplate
}

// LeadRepository is the ordered in-memory lead store. Newest leads come
// first (Create prepends), matching the dashboard ordering.
type LeadRepository struct {
	mu    sync.RWMutex
	leads []*model.Lead
	index map[uuid.UUID]*model.Lead
}

func NewLeadRepository() *LeadRepository {
	return &LeadRepository{
		index: make(map[uuid.UUID]*model.Lead),
	}
}

// Create prepends the lead. The caller supplies a fully-populated record,
// id included. No dedup check.
func (r *LeadRepository) Create(lead *model.Lead) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.leads = append([]*model.Lead{lead}, r.leads...)
	r.index[lead.Id] = lead
}

// Get returns the live record for id.
func (r *LeadRepository) Get(id uuid.UUID) (*model.Lead, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lead, ok := r.index[id]
	if !ok {
		return nil, false
	}
	snapshot := *lead
	return &snapshot, true
}

// Update merges the non-nil patch fields into the record. No-op when the id
// is absent. Returns the merged record so observers holding a "currently
// selected" reference can be refreshed rather than kept stale.
func (r *LeadRepository) Update(id uuid.UUID, patch LeadPatch) (*model.Lead, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lead, ok := r.index[id]
	if !ok {
		return nil, false
	}

	if patch.Name != nil {
		lead.Name = *patch.Name
	}
	if patch.Email != nil {
		lead.Email = *patch.Email
	}
	if patch.Phone != nil {
		lead.Phone = *patch.Phone
	}
	if patch.Status != nil {
		lead.Status = *patch.Status
	}
	if patch.EmailSubject != nil {
		lead.EmailSubject = *patch.EmailSubject
	}
	if patch.EmailBody != nil {
		lead.EmailBody = *patch.EmailBody
	}
	if patch.EmailSent != nil {
		lead.EmailSent = *patch.EmailSent
	}
	if patch.WebsiteGenerated != nil {
		lead.WebsiteGenerated = *patch.WebsiteGenerated
	}
	if patch.WebsiteURL != nil {
		lead.WebsiteURL = *patch.WebsiteURL
	}
	if patch.HTMLContent != nil {
		lead.HTMLContent = *patch.HTMLContent
	}
	if patch.SelectedTemplate != nil {
		lead.SelectedTemplate = *patch.SelectedTemplate
	}

	snapshot := *lead
	return &snapshot, true
}

// Delete removes the record. Returns false when the id was absent.
func (r *LeadRepository) Delete(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[id]; !ok {
		return false
	}
	delete(r.index, id)

	for i, lead := range r.leads {
		if lead.Id == id {
			r.leads = append(r.leads[:i], r.leads[i+1:]...)
			break
		}
	}
	return true
}

// List filters with a case-insensitive substring match on name OR email
// combined with an exact status match ("" or "All" matches every status).
// Store order is preserved.
func (r *LeadRepository) List(search string, status string) []*model.Lead {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := strings.ToLower(search)
	matchAll := status == "" || strings.EqualFold(status, "All")

	result := make([]*model.Lead, 0, len(r.leads))
	for _, lead := range r.leads {
		matchesSearch := query == "" ||
			strings.Contains(strings.ToLower(lead.Name), query) ||
			strings.Contains(strings.ToLower(lead.Email), query)
		matchesStatus := matchAll || string(lead.Status) == status

		if matchesSearch && matchesStatus {
			snapshot := *lead
			result = append(result, &snapshot)
		}
	}
	return result
}

// Len returns the number of stored leads.
func (r *LeadRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.leads)
}
