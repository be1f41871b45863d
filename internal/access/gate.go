// Package access decides whether a page renders or redirects for the current identity.
package access

import "github.com/noah-isme/uks-api/internal/models"

// LoginPath is where anonymous visitors are sent.
const LoginPath = "/login"

// Outcome names the gate decisions.
type Outcome string

const (
	OutcomeRender Outcome = "render"
	OutcomeLogin  Outcome = "login"
	OutcomeHome   Outcome = "home"
)

// Decision is the result of evaluating a page for an identity.
type Decision struct {
	Outcome  Outcome
	Location string
}

// Redirect reports whether the page must not render.
func (d Decision) Redirect() bool {
	return d.Outcome != OutcomeRender
}

// HomeFor returns the dashboard root of a role.
func HomeFor(role models.UserRole) string {
	switch role {
	case models.RoleStudent:
		return "/siswa"
	case models.RoleTeacher:
		return "/guru"
	case models.RoleAdmin:
		return "/admin"
	default:
		return LoginPath
	}
}

// Decide evaluates a page's allowed roles against the identity. A nil identity is
// unauthenticated. An empty allowed set admits any identity, authenticated or not.
func Decide(identity *models.UserInfo, allowed []models.UserRole) Decision {
	if len(allowed) == 0 {
		return Decision{Outcome: OutcomeRender}
	}
	if identity == nil {
		return Decision{Outcome: OutcomeLogin, Location: LoginPath}
	}
	for _, role := range allowed {
		if identity.Role == role {
			return Decision{Outcome: OutcomeRender}
		}
	}
	return Decision{Outcome: OutcomeHome, Location: HomeFor(identity.Role)}
}
