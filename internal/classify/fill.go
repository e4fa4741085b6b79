package classify

import (
	"strings"

	"github.com/jonathan/apply-assistant/internal/types"
)

// FillValues pairs every assigned role with the profile value for it, in role
// priority order. Roles whose value is empty are left out, so len of the result
// is the number of controls that would be filled. The cover letter and summary
// textareas both take the personal summary. A nil profile fills nothing.
func FillValues(a types.RoleAssignment, p *types.Profile) []types.Fill {
	if p == nil {
		return nil
	}

	var fills []types.Fill
	for _, role := range a.Roles() {
		value := strings.TrimSpace(profileValue(role, p.PersonalInfo))
		if value == "" {
			continue
		}
		d, _ := a.Get(role)
		fills = append(fills, types.Fill{
			Role:       role,
			ControlRef: d.ControlRef,
			Value:      value,
		})
	}
	return fills
}

func profileValue(role types.FieldRole, info types.PersonalInfo) string {
	switch role {
	case types.RoleFirstName:
		return info.FirstName
	case types.RoleLastName:
		return info.LastName
	case types.RoleFullName:
		return info.FullName()
	case types.RoleEmail:
		return info.Email
	case types.RolePhone:
		return info.Phone
	case types.RoleLocation:
		return info.Location
	case types.RolePortfolio:
		return info.Portfolio
	case types.RoleLinkedIn:
		return info.LinkedIn
	case types.RoleCoverLetter, types.RoleSummary:
		return info.Summary
	default:
		return ""
	}
}
