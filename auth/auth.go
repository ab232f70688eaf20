package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/adnan-khan/minishop-api/models"
	"github.com/adnan-khan/minishop-api/session"
)

var (
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type CredentialsInput struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// SignupUser creates an account. It pre-checks the username and still maps a
// store-level uniqueness violation to ErrDuplicateUsername, so two racing
// signups cannot both succeed.
func SignupUser(db *gorm.DB, username, password string) (*models.User, error) {
	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateUsername
	}

	user := models.User{Username: username}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}
	return &user, nil
}

// LoginUser authenticates by username and password. Unknown user and wrong
// password are indistinguishable to the caller.
func LoginUser(db *gorm.DB, username, password string) (*models.User, error) {
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// POST /signup
func SignupHandler(db *gorm.DB, store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CredentialsInput
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		username := strings.TrimSpace(input.Username)
		password := strings.TrimSpace(input.Password)
		if username == "" || password == "" {
			flashTo(c, store, "danger", "Enter username and password", "/signup")
			return
		}

		if _, err := SignupUser(db, username, password); err != nil {
			if errors.Is(err, ErrDuplicateUsername) {
				flashTo(c, store, "danger", "Username already taken", "/signup")
				return
			}
			log.Error().Err(err).Msg("signup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
			return
		}

		// No auto-login: the new user signs in explicitly.
		flashTo(c, store, "success", "Account created. Please login.", "/login")
	}
}

// POST /login
func LoginHandler(db *gorm.DB, store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CredentialsInput
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		user, err := LoginUser(db, strings.TrimSpace(input.Username), strings.TrimSpace(input.Password))
		if err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				flashTo(c, store, "danger", "Invalid username or password", "/login")
				return
			}
			log.Error().Err(err).Msg("login failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
			return
		}

		// Re-login in the same browser keeps the cart: the prior session is
		// promoted under a fresh id and its store entry dropped.
		prevID, _ := c.Cookie(session.CookieName)
		sess := store.Promote(prevID, user.ID, user.Username)
		c.SetCookie(session.CookieName, sess.ID, 0, "/", "", false, true)
		c.Redirect(http.StatusFound, "/products")
	}
}

// GET /logout
func LogoutHandler(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, err := c.Cookie(session.CookieName); err == nil {
			store.Delete(id)
		}
		c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
		c.Redirect(http.StatusFound, "/login")
	}
}

// RootHandler sends authenticated users to the catalog, everyone else to login.
func RootHandler(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, err := c.Cookie(session.CookieName); err == nil {
			if sess, ok := store.Get(id); ok && sess.Authenticated() {
				c.Redirect(http.StatusFound, "/products")
				return
			}
		}
		c.Redirect(http.StatusFound, "/login")
	}
}

// PageHandler backs GET /login and GET /signup. Rendering is out of scope;
// the endpoint exists so redirects land somewhere and notices drain.
func PageHandler(store *session.Store, page string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"page": page, "notices": drainFlashes(c, store)})
	}
}

// flashTo records a notice and redirects. Signup/login run unauthenticated,
// so a visitor without a session gets an anonymous one to carry the notice
// across the redirect.
func flashTo(c *gin.Context, store *session.Store, level, message, target string) {
	noticeSession(c, store).AddFlash(level, message)
	c.Redirect(http.StatusFound, target)
}

func noticeSession(c *gin.Context, store *session.Store) *session.Session {
	if id, err := c.Cookie(session.CookieName); err == nil {
		if sess, ok := store.Get(id); ok {
			return sess
		}
	}
	sess := store.Anonymous()
	c.SetCookie(session.CookieName, sess.ID, 0, "/", "", false, true)
	return sess
}

func drainFlashes(c *gin.Context, store *session.Store) []session.Flash {
	if id, err := c.Cookie(session.CookieName); err == nil {
		if sess, ok := store.Get(id); ok {
			return sess.Flashes()
		}
	}
	return nil
}
