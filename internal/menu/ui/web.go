package ui

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/beanboard/menu-service/internal/menu"
	"github.com/beanboard/menu-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

// PageCookie carries the visitor's page id.
const PageCookie = "menu_page"

// afterAction is where every POST redirects. The marker tells GET / to render
// the cached state instead of loading again, so an action's outcome stays visible.
const afterAction = "/?done=1"

const ctrlKey = "menu.controller"

// RegisterRoutes mounts the browser-facing menu page on r. Each visitor gets
// its own page state; opening the page loads the list afresh.
func RegisterRoutes(r gin.IRouter, pages *Pages) {
	g := r.Group("/", visitor(pages))

	g.GET("/", func(c *gin.Context) {
		ctrl := controller(c)
		if c.Query("done") == "" || ctrl.State().Phase == PhaseLoading {
			_ = ctrl.Load(c.Request.Context())
		}
		html(c, http.StatusOK, func(w *strings.Builder) error { return Render(w, ctrl.State()) })
	})

	g.POST("/notice/dismiss", func(c *gin.Context) {
		controller(c).DismissNotice()
		c.Redirect(http.StatusSeeOther, afterAction)
	})

	g.POST("/items", func(c *gin.Context) {
		ctrl := controller(c)
		ctrl.SetDraft(itemFromForm(c))
		_ = ctrl.Add(c.Request.Context())
		c.Redirect(http.StatusSeeOther, afterAction)
	})

	g.POST("/items/:id/toggle", func(c *gin.Context) {
		if err := controller(c).Toggle(c.Request.Context(), c.Param("id")); errors.Is(err, menu.ErrNotFound) {
			c.String(http.StatusNotFound, "menu item not found")
			return
		}
		c.Redirect(http.StatusSeeOther, afterAction)
	})

	g.GET("/items/:id/edit", func(c *gin.Context) {
		ctrl := controller(c)
		if err := ctrl.BeginEdit(c.Param("id")); err != nil {
			c.String(http.StatusNotFound, "menu item not found")
			return
		}
		html(c, http.StatusOK, func(w *strings.Builder) error { return Render(w, ctrl.State()) })
	})

	g.POST("/items/:id/edit", func(c *gin.Context) {
		ctrl := controller(c)
		s := ctrl.State()
		if s.Editing == nil || s.Editing.ID != c.Param("id") {
			if err := ctrl.BeginEdit(c.Param("id")); err != nil {
				c.String(http.StatusNotFound, "menu item not found")
				return
			}
		}
		ctrl.UpdateEditing(itemFromForm(c))
		_ = ctrl.SaveEdit(c.Request.Context())
		c.Redirect(http.StatusSeeOther, afterAction)
	})

	g.POST("/edit/cancel", func(c *gin.Context) {
		controller(c).CancelEdit()
		c.Redirect(http.StatusSeeOther, afterAction)
	})

	g.GET("/items/:id/delete", func(c *gin.Context) {
		item, ok := controller(c).find(c.Param("id"))
		if !ok {
			c.String(http.StatusNotFound, "menu item not found")
			return
		}
		html(c, http.StatusOK, func(w *strings.Builder) error { return RenderConfirm(w, item) })
	})

	g.POST("/items/:id/delete", func(c *gin.Context) {
		answer := ConfirmFunc(func(string) bool { return c.PostForm("confirm") == "yes" })
		if err := controller(c).Delete(c.Request.Context(), c.Param("id"), answer); errors.Is(err, menu.ErrNotFound) {
			c.String(http.StatusNotFound, "menu item not found")
			return
		}
		c.Redirect(http.StatusSeeOther, afterAction)
	})
}

// visitor attaches the caller's Controller, issuing a page cookie when needed.
func visitor(pages *Pages) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, _ := c.Cookie(PageCookie)
		id, ctrl := pages.Get(current)
		if id != current {
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     PageCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		c.Set(ctrlKey, ctrl)
		c.Next()
	}
}

func controller(c *gin.Context) *Controller {
	return c.MustGet(ctrlKey).(*Controller)
}

func html(c *gin.Context, status int, render func(w *strings.Builder) error) {
	var b strings.Builder
	if err := render(&b); err != nil {
		logger.Errorf("menu page: render: %v", err)
		c.String(http.StatusInternalServerError, "render failed")
		return
	}
	c.Data(status, "text/html; charset=utf-8", []byte(b.String()))
}

// itemFromForm reads the add/edit form. An unparsable price becomes 0 and is
// then rejected by validation.
func itemFromForm(c *gin.Context) menu.MenuItem {
	price, _ := strconv.ParseFloat(strings.TrimSpace(c.PostForm("menuPrice")), 64)
	return menu.MenuItem{
		Name:      strings.TrimSpace(c.PostForm("menuName")),
		Price:     price,
		Category:  strings.TrimSpace(c.PostForm("menuCategory")),
		Available: c.PostForm("menuAvailable") != "",
	}
}
