package audit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Entry records one mutating admin request
type Entry struct {
	ID uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`

	// Action details
	Action   string `json:"action" gorm:"type:text;not null;index"` // update_status, resend_receipt, create, update, delete
	Entity   string `json:"entity" gorm:"type:text;not null;index"` // order, voucher
	EntityID string `json:"entity_id" gorm:"type:text;index"`

	// Outcome
	Status  int            `json:"status" gorm:"not null"`
	Payload datatypes.JSON `json:"payload,omitempty" gorm:"type:jsonb"`

	// Request metadata
	RequestID string `json:"request_id,omitempty" gorm:"type:text"`
	IPAddress string `json:"ip_address,omitempty" gorm:"type:text"`
	UserAgent string `json:"user_agent,omitempty" gorm:"type:text"`
	Method    string `json:"method" gorm:"type:text"`
	Endpoint  string `json:"endpoint" gorm:"type:text"`
	Duration  int64  `json:"duration_ms" gorm:"column:duration_ms"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (Entry) TableName() string {
	return "audit_log"
}

// Succeeded reports whether the audited request returned a 2xx status
func (e *Entry) Succeeded() bool {
	return e.Status >= 200 && e.Status < 300
}

// Filter narrows an audit log query
type Filter struct {
	Action   string
	Entity   string
	EntityID string
	Since    *time.Time
	Page     int
	PageSize int
}

// Page is one page of audit entries, newest first
type Page struct {
	Entries    []Entry `json:"entries"`
	TotalCount int64   `json:"total_count"`
	Page       int     `json:"page"`
	PageSize   int     `json:"page_size"`
	TotalPages int     `json:"total_pages"`
}

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// Normalize clamps paging to sane bounds
func (f *Filter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = defaultPageSize
	}
	if f.PageSize > maxPageSize {
		f.PageSize = maxPageSize
	}
}

// NewPage assembles a page and its page count
func NewPage(entries []Entry, total int64, f Filter) *Page {
	if entries == nil {
		entries = []Entry{}
	}
	pages := int(total) / f.PageSize
	if int(total)%f.PageSize > 0 {
		pages++
	}
	return &Page{
		Entries:    entries,
		TotalCount: total,
		Page:       f.Page,
		PageSize:   f.PageSize,
		TotalPages: pages,
	}
}
