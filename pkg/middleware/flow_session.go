package middleware

import (
	"github.com/gin-gonic/gin"
	"log"

	"hoho/pkg/utils"
)

const (
	FlowCookieName = "hoho_flow"
	flowCookieAge  = 60 * 60 * 24 // one day; multi-step flows are short-lived
)

// FlowSessionMiddleware guarantees every browser session carries an opaque
// flow token. The token only keys flow state in the session store; it grants
// no authentication on its own.
func FlowSessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(FlowCookieName)
		if err != nil || token == "" {
			token, err = utils.GenerateSecureToken(32)
			if err != nil {
				log.Printf("flow session: token generation failed: %v", err)
				c.Next()
				return
			}
			c.SetCookie(FlowCookieName, token, flowCookieAge, "/", "", false, true)
		}
		c.Set("flow_session", token)
		c.Next()
	}
}
