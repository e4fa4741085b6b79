package types

import (
	"encoding/json"
	"strings"
)

// ControlKind is the normalized kind of an interactive form control.
type ControlKind string

const (
	KindText     ControlKind = "text"
	KindEmail    ControlKind = "email"
	KindTel      ControlKind = "tel"
	KindURL      ControlKind = "url"
	KindSelect   ControlKind = "select"
	KindTextarea ControlKind = "textarea"
	KindHidden   ControlKind = "hidden"
	KindOther    ControlKind = "other"
)

// ParseControlKind maps an element tag and its type attribute to a ControlKind.
// Inputs without a type are text inputs; unrecognized input types map to KindOther.
func ParseControlKind(tag, inputType string) ControlKind {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "textarea":
		return KindTextarea
	case "select":
		return KindSelect
	case "input", "":
	default:
		return KindOther
	}

	switch strings.ToLower(strings.TrimSpace(inputType)) {
	case "", "text", "search":
		return KindText
	case "email":
		return KindEmail
	case "tel":
		return KindTel
	case "url":
		return KindURL
	case "hidden":
		return KindHidden
	default:
		return KindOther
	}
}

// FieldDescriptor is the normalized, immutable representation of one form control
// used as classifier input.
type FieldDescriptor struct {
	// ControlRef is an opaque handle owned by the caller.
	ControlRef string      `json:"control_ref" validate:"required"`
	Kind       ControlKind `json:"kind" validate:"required,oneof=text email tel url select textarea hidden other"`
	// Signature is the lower-cased name/id/placeholder/label/aria-label text.
	Signature string `json:"signature"`
}

// FieldRole is a semantic category a form control can be classified into.
type FieldRole string

const (
	RoleFirstName   FieldRole = "firstName"
	RoleLastName    FieldRole = "lastName"
	RoleFullName    FieldRole = "fullName"
	RoleEmail       FieldRole = "email"
	RolePhone       FieldRole = "phone"
	RoleLocation    FieldRole = "location"
	RolePortfolio   FieldRole = "portfolio"
	RoleLinkedIn    FieldRole = "linkedin"
	RoleCoverLetter FieldRole = "coverLetter"
	RoleSummary     FieldRole = "summary"
)

// RolePriority lists every role in the fixed order predicates are evaluated.
var RolePriority = []FieldRole{
	RoleFirstName,
	RoleLastName,
	RoleFullName,
	RoleEmail,
	RolePhone,
	RoleLocation,
	RolePortfolio,
	RoleLinkedIn,
	RoleCoverLetter,
	RoleSummary,
}

// RoleAssignment maps each role to at most one descriptor.
// The zero value is an empty assignment.
type RoleAssignment struct {
	byRole map[FieldRole]FieldDescriptor
}

// NewRoleAssignment returns an empty assignment.
func NewRoleAssignment() RoleAssignment {
	return RoleAssignment{byRole: make(map[FieldRole]FieldDescriptor)}
}

// Assign records d for role unless the role is already filled.
// It reports whether the assignment happened.
func (a *RoleAssignment) Assign(role FieldRole, d FieldDescriptor) bool {
	if a.byRole == nil {
		a.byRole = make(map[FieldRole]FieldDescriptor)
	}
	if _, filled := a.byRole[role]; filled {
		return false
	}
	a.byRole[role] = d
	return true
}

// Get returns the descriptor assigned to role.
func (a RoleAssignment) Get(role FieldRole) (FieldDescriptor, bool) {
	d, ok := a.byRole[role]
	return d, ok
}

// Has reports whether role is filled.
func (a RoleAssignment) Has(role FieldRole) bool {
	_, ok := a.byRole[role]
	return ok
}

// Len returns the number of filled roles.
func (a RoleAssignment) Len() int {
	return len(a.byRole)
}

// Roles returns the filled roles in priority order.
func (a RoleAssignment) Roles() []FieldRole {
	roles := make([]FieldRole, 0, len(a.byRole))
	for _, r := range RolePriority {
		if _, ok := a.byRole[r]; ok {
			roles = append(roles, r)
		}
	}
	return roles
}

// MarshalJSON encodes the assignment as an object keyed by role name.
func (a RoleAssignment) MarshalJSON() ([]byte, error) {
	out := make(map[FieldRole]FieldDescriptor, len(a.byRole))
	for r, d := range a.byRole {
		out[r] = d
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes an object keyed by role name.
func (a *RoleAssignment) UnmarshalJSON(data []byte) error {
	var in map[FieldRole]FieldDescriptor
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	a.byRole = make(map[FieldRole]FieldDescriptor, len(in))
	for r, d := range in {
		a.byRole[r] = d
	}
	return nil
}

// Fill is the profile value to enter into the control assigned to a role.
type Fill struct {
	Role       FieldRole `json:"role"`
	ControlRef string    `json:"control_ref"`
	Value      string    `json:"value"`
}
