package models

import (
	"time"

	"github.com/google/uuid"
)

type RunKind string

const (
	RunGenerate RunKind = "generate"
	RunVerify   RunKind = "verify"
)

// Run is one recorded generate or verify invocation.
type Run struct {
	ID        uuid.UUID `json:"id"`
	Kind      RunKind   `json:"kind"`
	SiteRoot  string    `json:"site_root"`
	PageCount int       `json:"page_count"`
	Missing   []string  `json:"missing,omitempty"`
	Extra     []string  `json:"extra,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRun creates a run with a generated UUID and timestamp
func NewRun(kind RunKind, siteRoot string) *Run {
	return &Run{
		ID:        uuid.New(),
		Kind:      kind,
		SiteRoot:  siteRoot,
		CreatedAt: time.Now(),
	}
}

// InSync reports whether a verify run found no differences.
func (r *Run) InSync() bool {
	return len(r.Missing) == 0 && len(r.Extra) == 0
}
