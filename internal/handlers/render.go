package handlers

import (
	"encoding/gob"

	"residence-hub/internal/booking"
	"residence-hub/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

func init() {
	// flash хранится в cookie-сессии через gob
	gob.Register(booking.Result{})
}

// render: обёртка над c.HTML, которая во все шаблоны прокидывает CurrentUser, меню и flash.
func render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	if uVal, ok := c.Get("CurrentUser"); ok {
		if u, ok := uVal.(models.User); ok {
			data["CurrentUser"] = u
			data["CurrentUserName"] = u.Name
			data["CurrentUserRole"] = u.Role
			data["Menu"] = MenuFor(u.Role)
		}
	}

	if flash, ok := popFlash(c); ok {
		data["Flash"] = flash
	}

	c.HTML(status, tmpl, data)
}

// setFlash: результат действия показывается после redirect
func setFlash(c *gin.Context, res booking.Result) {
	sess := sessions.Default(c)
	sess.AddFlash(res)
	_ = sess.Save()
}

func popFlash(c *gin.Context) (booking.Result, bool) {
	sess := sessions.Default(c)
	flashes := sess.Flashes()
	if len(flashes) == 0 {
		return booking.Result{}, false
	}
	_ = sess.Save()
	res, ok := flashes[len(flashes)-1].(booking.Result)
	return res, ok
}

func failure(msg string) booking.Result {
	return booking.Result{Message: msg}
}

func success(msg string) booking.Result {
	return booking.Result{Success: true, Message: msg}
}
