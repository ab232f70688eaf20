package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adnan-khan/minishop-api/session"
)

// SessionKey is the gin context key holding the resolved *session.Session.
const SessionKey = "session"

// RequireSession resolves the session cookie against the store and aborts
// with a redirect to /login when there is no authenticated session.
func RequireSession(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(session.CookieName)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		// Anonymous sessions only carry pre-login notices; they do not grant
		// access to the shop.
		sess, ok := store.Get(id)
		if !ok || !sess.Authenticated() {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(SessionKey, sess)
		c.Next()
	}
}

// CurrentSession pulls the session set by RequireSession.
func CurrentSession(c *gin.Context) *session.Session {
	return c.MustGet(SessionKey).(*session.Session)
}
