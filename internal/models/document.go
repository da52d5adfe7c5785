package models

// Document is the aggregate persisted as a whole by the document store.
type Document struct {
	Users      []User          `json:"users"`
	Goals      []Goal          `json:"goals"`
	Activities []ActivityEntry `json:"activities"`
}

// NewDocument returns an empty document whose collections encode as [] rather than null.
func NewDocument() *Document {
	return &Document{
		Users:      []User{},
		Goals:      []Goal{},
		Activities: []ActivityEntry{},
	}
}

// Normalize replaces nil collections with empty ones.
func (d *Document) Normalize() {
	if d.Users == nil {
		d.Users = []User{}
	}
	if d.Goals == nil {
		d.Goals = []Goal{}
	}
	if d.Activities == nil {
		d.Activities = []ActivityEntry{}
	}
}

// Clone returns a copy that shares no slices with d.
func (d *Document) Clone() *Document {
	out := &Document{
		Users:      make([]User, len(d.Users)),
		Goals:      make([]Goal, len(d.Goals)),
		Activities: make([]ActivityEntry, len(d.Activities)),
	}
	copy(out.Users, d.Users)
	copy(out.Goals, d.Goals)
	copy(out.Activities, d.Activities)
	return out
}

// Sanitized returns a copy with user credential hashes removed, for dumps and exports.
func (d *Document) Sanitized() SanitizedDocument {
	users := make([]PublicUser, 0, len(d.Users))
	for _, u := range d.Users {
		users = append(users, u.Public())
	}
	c := d.Clone()
	return SanitizedDocument{
		Users:      users,
		Goals:      c.Goals,
		Activities: c.Activities,
	}
}

// SanitizedDocument is a Document whose users carry no password hashes.
type SanitizedDocument struct {
	Users      []PublicUser    `json:"users"`
	Goals      []Goal          `json:"goals"`
	Activities []ActivityEntry `json:"activities"`
}
