package protocol

import (
	"testing"

	"github.com/Innovation-Code-SN/companysphere-go/pkg/models"
)

func TestGroupConversions(t *testing.T) {
	listShape := GroupDTO{ID: 1, Name: "IT", Manager: "Awa", MemberCount: 4}
	detailShape := GroupDTO{ID: 1, Name: "IT", Manager: "Awa", Members: []models.Employee{
		{ID: 10, FullName: "Awa Diop"},
		{ID: 11, FullName: "Moussa Fall"},
	}}

	summary := GroupSummaryFromDTO(listShape)
	if summary.MemberCount != 4 {
		t.Errorf("summary MemberCount = %d, want 4", summary.MemberCount)
	}

	// Detail shape without an explicit count derives it from members.
	detail := GroupDetailFromDTO(detailShape)
	if detail.MemberCount != 2 {
		t.Errorf("detail MemberCount = %d, want 2", detail.MemberCount)
	}
	if len(detail.Members) != 2 {
		t.Errorf("detail Members = %d, want 2", len(detail.Members))
	}

	// The summary projection never carries members.
	summaries := GroupSummariesFromDTO([]GroupDTO{listShape, detailShape})
	if len(summaries) != 2 {
		t.Fatalf("summaries = %d, want 2", len(summaries))
	}
}
