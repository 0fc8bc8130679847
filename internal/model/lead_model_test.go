package model

import "testing"

func TestLeadStatusNext(t *testing.T) {
	tests := []struct {
		current LeadStatus
		want    LeadStatus
	}{
		{LeadStatusNew, LeadStatusReady},
		{LeadStatusReady, LeadStatusSent},
		{LeadStatusSent, LeadStatusResponded},
		{LeadStatusResponded, LeadStatusConverted},
		{LeadStatusConverted, LeadStatusNew}, // wraps
	}

	for _, tt := range tests {
		if got := tt.current.Next(); got != tt.want {
			t.Errorf("%s.Next() = %s, want %s", tt.current, got, tt.want)
		}
	}
}

func TestLeadStatusValid(t *testing.T) {
	for _, s := range PipelineOrder {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if LeadStatus("Archived").Valid() {
		t.Error("unknown status should be invalid")
	}
}
