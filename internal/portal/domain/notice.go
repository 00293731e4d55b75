package domain

import "time"

// Notice is an announcement published on the notice board. Auto notices are
// generated by the system (e.g. when a resident is approved) rather than
// written by a person.
type Notice struct {
	ID        string
	Title     string
	Summary   string
	Category  string // e.g. "General", "Maintenance", "Meeting"
	Date      string // ISO date shown on the board
	FileURL   string
	FileType  string
	IsAuto    bool
	CreatedBy string
	CreatedAt time.Time
}

// Message is an entry in the residents' internal message board.
type Message struct {
	ID         string
	SenderID   string
	SenderName string
	Message    string
	CreatedAt  time.Time
}

// Document is an uploaded association document (minutes, bylaws, circulars).
type Document struct {
	ID          string
	Title       string
	Category    string // "public" or a restricted category
	FileURL     string
	FileType    string
	Description string
	UploadedBy  string
	CreatedAt   time.Time
}
