package types

import (
	"encoding/json"
	"fmt"
)

const ContextRequestIDKey = "request_id"

const RequestIDHeader = "X-Request-ID"

type Role string

const (
	RoleLead   Role = "lead"
	RoleMember Role = "member"
)

func (r Role) Valid() bool {
	switch r {
	case RoleLead, RoleMember:
		return true
	}
	return false
}

func (r *Role) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, r, "role")
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func (p *Priority) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, p, "priority")
}

// Status is the task lifecycle stage. It is tracked independently of the
// task's completed flag.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusApproved   Status = "approved"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusApproved:
		return true
	}
	return false
}

func (s *Status) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, s, "status")
}

type enum interface {
	~string
	Valid() bool
}

func unmarshalEnum[T enum](data []byte, dst *T, kind string) error {
	var raw string

	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%s must be a string", kind)
	}

	v := T(raw)

	if !v.Valid() {
		return fmt.Errorf("invalid %s %q", kind, raw)
	}

	*dst = v
	return nil
}
