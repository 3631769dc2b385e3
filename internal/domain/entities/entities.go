package entities

import (
	"encoding/json"
	"errors"
	"strconv"
)

// Common errors
var (
	ErrInvalidEntityType  = errors.New("invalid data type")
	ErrItemNotFound       = errors.New("item not found")
	ErrInvalidItem        = errors.New("invalid item data")
	ErrNoFile             = errors.New("no file uploaded")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// EntityType names one of the record collections persisted by the store.
type EntityType string

const (
	EntityTypeWork        EntityType = "work"
	EntityTypeSkills      EntityType = "skills"
	EntityTypeContact     EntityType = "contact"
	EntityTypeSocialLinks EntityType = "social_links"
)

// EntityTypes lists every known collection in a stable order.
var EntityTypes = []EntityType{
	EntityTypeWork,
	EntityTypeSkills,
	EntityTypeContact,
	EntityTypeSocialLinks,
}

// PhoneSentinelPlatform marks the legacy social link row that carried the agency phone number.
const PhoneSentinelPlatform = "__PHONE__"

// UserRoleAdmin is the only role issued by the login endpoint.
const UserRoleAdmin = "admin"

// ParseEntityType checks s against the allow-list.
func ParseEntityType(s string) (EntityType, error) {
	t := EntityType(s)
	if !t.IsValid() {
		return "", ErrInvalidEntityType
	}
	return t, nil
}

func (t EntityType) IsValid() bool {
	switch t {
	case EntityTypeWork, EntityTypeSkills, EntityTypeContact, EntityTypeSocialLinks:
		return true
	default:
		return false
	}
}

func (t EntityType) String() string {
	return string(t)
}

// Record is one stored JSON object. Fields outside the typed views are kept as-is.
type Record map[string]any

// ID returns the raw id value and whether it counts as assigned.
// Absent, null, zero and empty ids are treated as unassigned.
func (r Record) ID() (any, bool) {
	v, ok := r["id"]
	if !ok || v == nil {
		return nil, false
	}
	switch id := v.(type) {
	case string:
		return v, id != ""
	case json.Number:
		f, err := id.Float64()
		if err == nil && f == 0 {
			return v, false
		}
		return v, id.String() != ""
	case float64:
		return v, id != 0
	case int64:
		return v, id != 0
	case int:
		return v, id != 0
	case bool:
		return v, id
	}
	return v, true
}

// Merge copies every field of patch over r except the id, which stays fixed.
func (r Record) Merge(patch Record) Record {
	merged := make(Record, len(r)+len(patch))
	for k, v := range r {
		merged[k] = v
	}
	for k, v := range patch {
		if k == "id" {
			continue
		}
		merged[k] = v
	}
	return merged
}

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	return r.Merge(nil)
}

// IDEquals compares a stored id with a requested one loosely, so the numeric id
// 1700000000000 matches the path segment "1700000000000". String ids only match
// the exact same text.
func IDEquals(stored any, requested string) bool {
	s, ok := idString(stored)
	if !ok {
		return false
	}
	if s == requested {
		return true
	}
	if _, isString := stored.(string); isString {
		return false
	}
	a, errA := strconv.ParseFloat(s, 64)
	b, errB := strconv.ParseFloat(requested, 64)
	return errA == nil && errB == nil && a == b
}

func idString(v any) (string, bool) {
	switch id := v.(type) {
	case string:
		return id, true
	case json.Number:
		return id.String(), true
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), true
	case int64:
		return strconv.FormatInt(id, 10), true
	case int:
		return strconv.Itoa(id), true
	}
	return "", false
}

// WorkItem is a portfolio entry.
type WorkItem struct {
	ID          any    `json:"id,omitempty"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Image       string `json:"image" validate:"max=1000"`
	Category    string `json:"category,omitempty" validate:"max=100"`
}

// Skill is a service offered by the agency.
type Skill struct {
	ID          any    `json:"id,omitempty"`
	Name        string `json:"name" validate:"required,max=200"`
	Category    string `json:"category" validate:"required,max=100"`
	Description string `json:"description,omitempty" validate:"max=2000"`
	Image       string `json:"image,omitempty" validate:"max=1000"`
}

// ContactMessage is a message left through the public contact form.
type ContactMessage struct {
	ID      any    `json:"id,omitempty"`
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=5000"`
	Date    string `json:"date"`
}

// SocialLink is one entry of the social links page.
type SocialLink struct {
	ID        any    `json:"id,omitempty"`
	Platform  string `json:"platform" validate:"required,max=100"`
	URL       string `json:"url" validate:"required,max=1000"`
	Icon      string `json:"icon" validate:"max=100"`
	BgColor   string `json:"bgColor" validate:"max=50"`
	TextColor string `json:"textColor" validate:"max=50"`
}

// Settings holds site-wide singleton values.
type Settings struct {
	Phone string `json:"phone" validate:"max=40"`
}

// NewView returns an empty typed view for t, suitable for decoding a Record into.
func NewView(t EntityType) any {
	switch t {
	case EntityTypeWork:
		return &WorkItem{}
	case EntityTypeSkills:
		return &Skill{}
	case EntityTypeContact:
		return &ContactMessage{}
	case EntityTypeSocialLinks:
		return &SocialLink{}
	}
	return nil
}

// DecodeView decodes r into the typed view of t.
func DecodeView(t EntityType, r Record) (any, error) {
	view := NewView(t)
	if view == nil {
		return nil, ErrInvalidEntityType
	}
	raw, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, view); err != nil {
		return nil, err
	}
	return view, nil
}
