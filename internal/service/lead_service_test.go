package service

import (
	"context"
	"testing"

	"monarch-crm-be/internal/dto"
	"monarch-crm-be/internal/model"
	"monarch-crm-be/internal/repository/memory"
	"monarch-crm-be/pkg/events"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type recordingPublisher struct {
	published []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, evt events.Event) error {
	p.published = append(p.published, evt)
	return nil
}

type recordingMailer struct {
	sent []string
	err  error
}

func (m *recordingMailer) SendCampaign(toEmail, _, _, _ string) error {
	m.sent = append(m.sent, toEmail)
	return m.err
}

func newLeadServiceForTest() (ILeadService, *memory.LeadRepository, *recordingPublisher, *recordingMailer) {
	repo := memory.NewLeadRepository()
	pub := &recordingPublisher{}
	mail := &recordingMailer{}
	return NewLeadService(repo, mail, pub, nopLogger{}), repo, pub, mail
}

func TestLeadServiceCreateAppliesDefaults(t *testing.T) {
	svc, _, _, _ := newLeadServiceForTest()

	res, err := svc.Create(context.Background(), &dto.CreateLeadRequest{
		Name:  "Victoria Langford",
		Email: "victoria@estates.com",
	})
	require.NoError(t, err)

	assert.Equal(t, model.LeadStatusNew, res.Status)
	assert.Equal(t, "N/A", res.Phone)
	assert.Equal(t, "Luxury Portfolio: Exclusive Update for Victoria Langford", res.EmailSubject)
	assert.Contains(t, res.EmailBody, "Hi Victoria Langford,")
	assert.Contains(t, res.EmailBody, "Kashmir Cortave")
	assert.False(t, res.EmailSent)
	assert.False(t, res.WebsiteGenerated)
}

func TestLeadServiceCreateKeepsProvidedPhone(t *testing.T) {
	svc, _, _, _ := newLeadServiceForTest()

	res, err := svc.Create(context.Background(), &dto.CreateLeadRequest{
		Name:  "Grant Sterling",
		Email: "grant@sterling.com",
		Phone: "(832) 555-0107",
	})
	require.NoError(t, err)
	assert.Equal(t, "(832) 555-0107", res.Phone)
}

func TestLeadServiceShowMissing(t *testing.T) {
	svc, _, _, _ := newLeadServiceForTest()

	_, err := svc.Show(context.Background(), uuid.New())
	require.Error(t, err)
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)
}

func TestLeadServiceCycleStatusWraps(t *testing.T) {
	svc, _, _, _ := newLeadServiceForTest()
	created, err := svc.Create(context.Background(), &dto.CreateLeadRequest{
		Name:  "Victoria Langford",
		Email: "victoria@estates.com",
	})
	require.NoError(t, err)

	want := []model.LeadStatus{
		model.LeadStatusReady,
		model.LeadStatusSent,
		model.LeadStatusResponded,
		model.LeadStatusConverted,
		model.LeadStatusNew,
	}
	for _, status := range want {
		res, err := svc.CycleStatus(context.Background(), created.Id)
		require.NoError(t, err)
		assert.Equal(t, status, res.Status)
	}
}

func TestLeadServiceUpdateRejectsUnknownStatus(t *testing.T) {
	svc, _, _, _ := newLeadServiceForTest()
	created, _ := svc.Create(context.Background(), &dto.CreateLeadRequest{
		Name:  "Victoria Langford",
		Email: "victoria@estates.com",
	})

	bad := model.LeadStatus("Archived")
	_, err := svc.Update(context.Background(), &dto.UpdateLeadRequest{Id: created.Id, Status: &bad})
	require.Error(t, err)
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
}

func TestLeadServiceStats(t *testing.T) {
	svc, repo, _, _ := newLeadServiceForTest()
	seedStatuses := []model.LeadStatus{
		model.LeadStatusNew, model.LeadStatusNew,
		model.LeadStatusReady,
		model.LeadStatusSent, model.LeadStatusSent, model.LeadStatusSent,
		model.LeadStatusConverted,
	}
	for _, status := range seedStatuses {
		repo.Create(&model.Lead{Id: uuid.New(), Name: "Lead", Email: "l@x.com", Status: status})
	}

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, stats.TotalLeads)
	assert.Equal(t, 2, stats.NewLeads)
	assert.Equal(t, 1, stats.ReadyLeads)
	assert.Equal(t, 3, stats.EmailsSent)
}

func TestLeadServicePriorityCapsAtFive(t *testing.T) {
	svc, repo, _, _ := newLeadServiceForTest()
	for i := 0; i < 7; i++ {
		repo.Create(&model.Lead{Id: uuid.New(), Name: "New Lead", Email: "n@x.com", Status: model.LeadStatusNew})
	}
	repo.Create(&model.Lead{Id: uuid.New(), Name: "Converted", Email: "c@x.com", Status: model.LeadStatusConverted})

	res, err := svc.Priority(context.Background())
	require.NoError(t, err)
	assert.Len(t, res, 5)
	for _, lead := range res {
		assert.Equal(t, model.LeadStatusNew, lead.Status)
	}
}

func TestLeadServiceExecuteCampaign(t *testing.T) {
	svc, _, pub, mail := newLeadServiceForTest()
	created, _ := svc.Create(context.Background(), &dto.CreateLeadRequest{
		Name:  "Victoria Langford",
		Email: "victoria@estates.com",
	})

	res, err := svc.ExecuteCampaign(context.Background(), &dto.ExecuteCampaignRequest{
		Id:        created.Id,
		EmailBody: "Final polished body",
	})
	require.NoError(t, err)

	assert.Equal(t, model.LeadStatusSent, res.Status)
	assert.True(t, res.EmailSent)
	assert.Equal(t, "Final polished body", res.EmailBody)

	require.Len(t, mail.sent, 1)
	assert.Equal(t, "victoria@estates.com", mail.sent[0])

	require.Len(t, pub.published, 1)
	assert.Equal(t, events.TypeCampaignSent, pub.published[0].EventType())
}

func TestLeadServiceCampaignSurvivesMailerFailure(t *testing.T) {
	svc, _, _, mail := newLeadServiceForTest()
	mail.err = assert.AnError
	created, _ := svc.Create(context.Background(), &dto.CreateLeadRequest{
		Name:  "Victoria Langford",
		Email: "victoria@estates.com",
	})

	res, err := svc.ExecuteCampaign(context.Background(), &dto.ExecuteCampaignRequest{
		Id:        created.Id,
		EmailBody: "Body",
	})
	require.NoError(t, err)
	assert.True(t, res.EmailSent)
	assert.Equal(t, model.LeadStatusSent, res.Status)
}
