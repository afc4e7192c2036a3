package services

import (
	"github.com/planboard/planboard/internal/authz"
	"github.com/planboard/planboard/pkg/response"
)

// authorize evaluates one operation for one actor and converts a denial into
// the API's forbidden error. The returned Decision carries list scopes.
func authorize(e *authz.Engine, actor authz.Actor, op authz.Operation, res authz.Resource) (authz.Decision, error) {
	decision, err := e.Decide(actor, op, res)
	if err != nil {
		return decision, response.NewServerError("authorization check failed")
	}
	if !decision.Allowed() {
		return decision, response.NewForbidden(decision.Reason)
	}
	return decision, nil
}
