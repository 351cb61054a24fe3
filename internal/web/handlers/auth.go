// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/mirrorapp/mirror/internal/middleware"
)

func (h *Handler) LoginViewHandler(c *gin.Context) {
	if _, loggedIn := h.CurrentUser(c); loggedIn {
		c.Redirect(http.StatusFound, "/feed")
		return
	}

	c.HTML(http.StatusOK, "login.html", gin.H{"title": "Login"})
}

func (h *Handler) LoginSubmitHandler(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	if err := h.Login.Submit(username, password); err != nil {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"title":  "Login",
			"notice": h.notice(err),
		})
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.SessionUserKey, username)
	session.Save()

	c.Redirect(http.StatusFound, "/feed")
}

func (h *Handler) LogoutHandler(c *gin.Context) {
	if username, loggedIn := h.CurrentUser(c); loggedIn {
		h.dropControllers(username)
	}

	session := sessions.Default(c)
	session.Clear()
	session.Save()

	c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) SignupViewHandler(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{"title": "Create account"})
}

func (h *Handler) SignupSubmitHandler(c *gin.Context) {
	err := h.Signup.Submit(
		c.PostForm("username"),
		c.PostForm("email"),
		c.PostForm("password"),
		c.PostForm("confirm_password"),
	)
	if err != nil {
		c.HTML(http.StatusOK, "signup.html", gin.H{
			"title":  "Create account",
			"notice": h.notice(err),
		})
		return
	}

	c.HTML(http.StatusOK, "login.html", gin.H{
		"title":  "Login",
		"notice": "Your account was created. You can log in now.",
	})
}

// SignupCheckHandler feeds a keystroke into the debounced availability
// checker for one field and reports the field's current state. The browser
// polls; the checker decides if and when the server actually gets asked.
func (h *Handler) SignupCheckHandler(c *gin.Context) {
	field := c.PostForm("field")
	value := c.PostForm("value")

	switch field {
	case "username":
		h.Signup.Username.Set(value)
		c.JSON(http.StatusOK, gin.H{"state": h.Signup.Username.State()})
	case "email":
		h.Signup.Email.Set(value)
		c.JSON(http.StatusOK, gin.H{"state": h.Signup.Email.State()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown field"})
	}
}

func (h *Handler) ForgotViewHandler(c *gin.Context) {
	c.HTML(http.StatusOK, "forgot.html", gin.H{
		"title":     "Reset password",
		"code_sent": h.Forgot.CodeSent(),
	})
}

func (h *Handler) ForgotSendHandler(c *gin.Context) {
	if err := h.Forgot.SendCode(c.PostForm("email")); err != nil {
		c.HTML(http.StatusOK, "forgot.html", gin.H{
			"title":     "Reset password",
			"code_sent": h.Forgot.CodeSent(),
			"notice":    h.notice(err),
		})
		return
	}

	c.HTML(http.StatusOK, "forgot.html", gin.H{
		"title":     "Reset password",
		"code_sent": true,
		"notice":    "A verification code was sent to your e-mail address.",
	})
}

func (h *Handler) ForgotResetHandler(c *gin.Context) {
	err := h.Forgot.Reset(
		c.PostForm("code"),
		c.PostForm("new_password"),
		c.PostForm("confirm_password"),
	)
	if err != nil {
		c.HTML(http.StatusOK, "forgot.html", gin.H{
			"title":     "Reset password",
			"code_sent": h.Forgot.CodeSent(),
			"notice":    h.notice(err),
		})
		return
	}

	c.HTML(http.StatusOK, "login.html", gin.H{
		"title":  "Login",
		"notice": "Your password was reset. You can log in now.",
	})
}
