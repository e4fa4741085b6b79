// Package classify assigns semantic roles to form fields using ordered keyword rules.
package classify

import (
	"fmt"
	"strings"

	"github.com/jonathan/apply-assistant/internal/textmatch"
	"github.com/jonathan/apply-assistant/internal/types"
)

// HiddenPolicy controls how hidden controls take part in classification.
type HiddenPolicy string

const (
	// HiddenCompatible excludes hidden controls from the name and location roles
	// only; email, phone, portfolio and linkedin may still claim them.
	HiddenCompatible HiddenPolicy = "compatible"
	// HiddenExcluded never assigns a role to a hidden control.
	HiddenExcluded HiddenPolicy = "excluded"
)

// ParseHiddenPolicy maps a configuration value to a HiddenPolicy.
// An empty value selects HiddenCompatible.
func ParseHiddenPolicy(s string) (HiddenPolicy, error) {
	switch HiddenPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", HiddenCompatible:
		return HiddenCompatible, nil
	case HiddenExcluded:
		return HiddenExcluded, nil
	default:
		return "", fmt.Errorf("unknown hidden policy %q (want %q or %q)", s, HiddenCompatible, HiddenExcluded)
	}
}

// rule is the predicate for one role.
type rule struct {
	role     types.FieldRole
	keywords *textmatch.Matcher
	// kinds match regardless of the signature
	kinds []types.ControlKind
	// requireKind restricts the rule to one control kind
	requireKind types.ControlKind
	// exclude rejects a signature containing any of these keywords
	exclude *textmatch.Matcher
	// allowHidden lets the rule claim hidden controls under HiddenCompatible
	allowHidden bool
}

func (r *rule) matches(d types.FieldDescriptor) bool {
	if r.requireKind != "" && d.Kind != r.requireKind {
		return false
	}
	if r.exclude != nil && r.exclude.Any(d.Signature) {
		return false
	}
	for _, k := range r.kinds {
		if d.Kind == k {
			return true
		}
	}
	return r.keywords.Any(d.Signature)
}

// Classifier maps field descriptors to roles. It holds only compiled rules
// and is safe for concurrent use.
type Classifier struct {
	rules  []rule
	hidden HiddenPolicy
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithHiddenPolicy sets how hidden controls are treated.
func WithHiddenPolicy(p HiddenPolicy) Option {
	return func(c *Classifier) {
		c.hidden = p
	}
}

// New builds a Classifier with rules in role priority order.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		hidden: HiddenCompatible,
		rules:  defaultRules(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HiddenPolicy returns the policy in effect.
func (c *Classifier) HiddenPolicy() HiddenPolicy {
	return c.hidden
}

func defaultRules() []rule {
	return []rule{
		{
			role:     types.RoleFirstName,
			keywords: textmatch.New("first", "fname", "firstname", "given"),
		},
		{
			role:     types.RoleLastName,
			keywords: textmatch.New("last", "lname", "lastname", "surname", "family"),
		},
		{
			role:     types.RoleFullName,
			keywords: textmatch.New("fullname", "full name", "name"),
			exclude:  textmatch.New("first", "last"),
		},
		{
			role:        types.RoleEmail,
			keywords:    textmatch.New("email", "e-mail"),
			kinds:       []types.ControlKind{types.KindEmail},
			allowHidden: true,
		},
		{
			role:        types.RolePhone,
			keywords:    textmatch.New("phone", "mobile", "telephone", "contact"),
			kinds:       []types.ControlKind{types.KindTel},
			allowHidden: true,
		},
		{
			role:     types.RoleLocation,
			keywords: textmatch.New("location", "city", "address", "where"),
		},
		{
			role:        types.RolePortfolio,
			keywords:    textmatch.New("portfolio", "website", "personal site"),
			allowHidden: true,
		},
		{
			role:        types.RoleLinkedIn,
			keywords:    textmatch.New("linkedin", "profile url"),
			allowHidden: true,
		},
		{
			role:        types.RoleCoverLetter,
			keywords:    textmatch.New("cover", "letter", "why", "interest", "message"),
			requireKind: types.KindTextarea,
		},
		{
			role:        types.RoleSummary,
			keywords:    textmatch.New("summary", "about", "bio", "yourself"),
			requireKind: types.KindTextarea,
		},
	}
}

// Classify scans descriptors in order and assigns each one at most one role:
// the first role in priority order whose rule matches and that is still empty.
// A filled role is never reassigned to a later descriptor.
func (c *Classifier) Classify(descriptors []types.FieldDescriptor) types.RoleAssignment {
	assignment := types.NewRoleAssignment()

	for _, d := range descriptors {
		if assignment.Len() == len(c.rules) {
			break
		}
		for i := range c.rules {
			r := &c.rules[i]
			if assignment.Has(r.role) || !c.hiddenAllowed(r, d) {
				continue
			}
			if r.matches(d) {
				assignment.Assign(r.role, d)
				break
			}
		}
	}

	return assignment
}

func (c *Classifier) hiddenAllowed(r *rule, d types.FieldDescriptor) bool {
	if d.Kind != types.KindHidden {
		return true
	}
	return c.hidden == HiddenCompatible && r.allowHidden
}

var defaultClassifier = New()

// Classify runs the default Classifier.
func Classify(descriptors []types.FieldDescriptor) types.RoleAssignment {
	return defaultClassifier.Classify(descriptors)
}
