package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uks-api/internal/access"
	"github.com/noah-isme/uks-api/pkg/response"
)

// GateRecorder counts gate outcomes.
type GateRecorder interface {
	RecordGateDecision(outcome string)
}

// PageGate redirects page navigations the current identity may not render.
// Requests for unrouted paths pass through to the not-found handler.
func PageGate(recorder GateRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, ok := access.Lookup(c.Request.URL.Path)
		if !ok {
			c.Next()
			return
		}

		decision := access.Evaluate(page, CurrentIdentity(c))
		if recorder != nil {
			recorder.RecordGateDecision(string(decision.Outcome))
		}
		if decision.Redirect() {
			response.Redirect(c, decision.Location)
			c.Abort()
			return
		}
		c.Next()
	}
}
