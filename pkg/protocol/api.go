// Package protocol defines the backend request/response types.
//
// Every JSON endpoint wraps its payload in the same envelope:
//
//	{ "success": bool, "data": T, "message": string }
//
// The gateway decodes the envelope and hands the data to conversion
// functions here, so the rest of the code only sees pkg/models types.
package protocol

import "github.com/Innovation-Code-SN/companysphere-go/pkg/models"

// Envelope is the response wrapper used by the backend.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

// GroupDTO is the wire shape of a group. The backend serves two
// projections from the same resource: list endpoints omit Members,
// detail endpoints include them. Conversion into the two distinct
// model types happens at this boundary.
type GroupDTO struct {
	ID          int64             `json:"id"`
	Name        string            `json:"nom"`
	Description string            `json:"description"`
	Manager     string            `json:"responsable"`
	MemberCount int               `json:"nombreMembres"`
	Members     []models.Employee `json:"membres,omitempty"`
}

// GroupSummaryFromDTO converts a wire group into the list projection.
func GroupSummaryFromDTO(d GroupDTO) models.GroupSummary {
	count := d.MemberCount
	if count == 0 && len(d.Members) > 0 {
		count = len(d.Members)
	}
	return models.GroupSummary{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Manager:     d.Manager,
		MemberCount: count,
	}
}

// GroupDetailFromDTO converts a wire group into the detail projection.
// Members may be empty when the backend sent the list shape.
func GroupDetailFromDTO(d GroupDTO) models.GroupDetail {
	return models.GroupDetail{
		GroupSummary: GroupSummaryFromDTO(d),
		Members:      d.Members,
	}
}

// GroupSummariesFromDTO converts a slice of wire groups.
func GroupSummariesFromDTO(ds []GroupDTO) []models.GroupSummary {
	out := make([]models.GroupSummary, 0, len(ds))
	for _, d := range ds {
		out = append(out, GroupSummaryFromDTO(d))
	}
	return out
}

// LoginRequest is the body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"motDePasse"`
}

// LoginData is the payload of a successful login envelope.
type LoginData struct {
	Token    string          `json:"token"`
	Employee models.Employee `json:"employe"`
}

// ChangePasswordRequest is the body for PUT /api/auth/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"ancienMotDePasse"`
	NewPassword     string `json:"nouveauMotDePasse"`
}

// RespondRequest is the body for
// PUT /api/reunions/{id}/participants/employe/{employeeId}/reponse.
type RespondRequest struct {
	Response models.ResponseStatus `json:"reponse"`
}
