// Package models contains the domain entities shared across packages.
package models

import "time"

// Visibility classifies who may see a folder.
type Visibility string

const (
	VisibilityPublic   Visibility = "PUBLIC"
	VisibilityServices Visibility = "SERVICES"
	VisibilityManagers Visibility = "RESPONSABLES"
)

// Document is a file stored on the backend. Clients only read and
// download documents, never mutate them.
type Document struct {
	ID          int64     `json:"id"`
	Name        string    `json:"nom"`
	Path        string    `json:"chemin"`
	Size        int64     `json:"taille"`
	ContentType string    `json:"typeMime"`
	Tags        []string  `json:"tags,omitempty"`
	FolderID    int64     `json:"dossierId"`
	CreatedAt   time.Time `json:"dateCreation"`
	UpdatedAt   time.Time `json:"dateModification"`
}

// Folder is a node in the document tree. A folder owns its declared
// sub-folders and documents in the snapshot fetched from the backend;
// ParentID is a weak back-reference (zero for roots).
type Folder struct {
	ID          int64      `json:"id"`
	Name        string     `json:"nom"`
	Description string     `json:"description,omitempty"`
	ParentID    int64      `json:"parentId,omitempty"`
	Visibility  Visibility `json:"visibilite"`
	SubFolders  []*Folder  `json:"sousDossiers,omitempty"`
	Documents   []Document `json:"documents,omitempty"`
	CreatedAt   time.Time  `json:"dateCreation"`
	UpdatedAt   time.Time  `json:"dateModification"`
}

// CacheEntry describes one locally cached file.
type CacheEntry struct {
	Name      string    `json:"name"`
	LocalPath string    `json:"local_path"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// Employee is a member of a group or a meeting participant.
type Employee struct {
	ID       int64  `json:"id"`
	FullName string `json:"nomComplet"`
	Email    string `json:"email"`
	Position string `json:"poste,omitempty"`
}

// GroupSummary is the list projection of a team/group.
type GroupSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"nom"`
	Description string `json:"description"`
	Manager     string `json:"responsable"`
	MemberCount int    `json:"nombreMembres"`
}

// GroupDetail is the detailed projection of a team/group, including
// its member list. It is a distinct type from GroupSummary: the two
// backend shapes are never merged into one optional-field struct.
type GroupDetail struct {
	GroupSummary
	Members []Employee `json:"membres"`
}

// ResponseStatus is a participant's answer to a meeting invitation.
type ResponseStatus string

const (
	ResponsePending   ResponseStatus = "EN_ATTENTE"
	ResponseAccepted  ResponseStatus = "ACCEPTEE"
	ResponseDeclined  ResponseStatus = "REFUSEE"
	ResponseTentative ResponseStatus = "PROVISOIRE"
)

// ParseResponseStatus maps user-facing names onto backend status values.
func ParseResponseStatus(s string) (ResponseStatus, bool) {
	switch s {
	case "pending", string(ResponsePending):
		return ResponsePending, true
	case "accept", "accepted", string(ResponseAccepted):
		return ResponseAccepted, true
	case "decline", "declined", string(ResponseDeclined):
		return ResponseDeclined, true
	case "tentative", string(ResponseTentative):
		return ResponseTentative, true
	}
	return "", false
}

// Meeting is a read-only projection of backend meeting data.
type Meeting struct {
	ID          int64          `json:"id"`
	Title       string         `json:"titre"`
	Description string         `json:"description,omitempty"`
	Location    string         `json:"lieu,omitempty"`
	StartTime   time.Time      `json:"dateDebut"`
	EndTime     time.Time      `json:"dateFin"`
	MyResponse  ResponseStatus `json:"maReponse"`
}

// Participant is one invitee of a meeting with their response.
type Participant struct {
	Employee Employee       `json:"employe"`
	Response ResponseStatus `json:"reponse"`
}
