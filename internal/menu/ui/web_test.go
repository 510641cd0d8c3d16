package ui

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/beanboard/menu-service/internal/menu"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newPage(api API) (*gin.Engine, *Pages) {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	pages := NewPages(api, DefaultPageTTL)
	RegisterRoutes(g, pages)
	return g, pages
}

// browser keeps the page cookie between requests like a real browser would.
type browser struct {
	t      *testing.T
	g      http.Handler
	pages  *Pages
	cookie *http.Cookie
}

func newBrowser(t *testing.T, g http.Handler, pages *Pages) *browser {
	return &browser{t: t, g: g, pages: pages}
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}
	w := httptest.NewRecorder()
	b.g.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == PageCookie {
			b.cookie = ck
		}
	}
	return w
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

// submit posts a form and follows the redirect, returning the rendered page.
func (b *browser) submit(path string, form url.Values) string {
	w := b.post(path, form)
	require.Equal(b.t, http.StatusSeeOther, w.Code, path)
	return b.get(w.Header().Get("Location")).Body.String()
}

func (b *browser) ctrl() *Controller {
	require.NotNil(b.t, b.cookie, "no page cookie yet")
	ctrl, ok := b.pages.lookup(b.cookie.Value)
	require.True(b.t, ok)
	return ctrl
}

func TestPage_EmptyMenuShowsPlaceholderRow(t *testing.T) {
	g, pages := newPage(newFakeAPI())
	w := newBrowser(t, g, pages).get("/")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "text/html")
	require.Contains(t, w.Body.String(), `<td colspan="5">no items</td>`)
}

func TestPage_LoadErrorSuppressesUI(t *testing.T) {
	api := newFakeAPI()
	api.fail["list"] = errors.New("menu api: status 500: menu store failure")
	g, pages := newPage(api)

	w := newBrowser(t, g, pages).get("/")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, "menu api: status 500: menu store failure")
	require.NotContains(t, body, "<table>")
	require.NotContains(t, body, `action="/items"`)
}

func TestPage_OpeningThePageLoadsAgain(t *testing.T) {
	api := newFakeAPI()
	g, pages := newPage(api)
	b := newBrowser(t, g, pages)

	require.Contains(t, b.get("/").Body.String(), "no items")

	// another API caller adds an item
	_, err := api.Create(context.Background(), latte)
	require.NoError(t, err)

	body := b.get("/").Body.String()
	require.Equal(t, 2, api.calls["list"])
	require.Contains(t, body, "Latte")
	require.NotContains(t, body, "no items")
}

func TestPage_RedirectAfterActionRendersCache(t *testing.T) {
	api := newFakeAPI()
	g, pages := newPage(api)
	b := newBrowser(t, g, pages)
	b.get("/")

	body := b.submit("/items", url.Values{"menuName": {"Latte"}, "menuPrice": {"65"}, "menuCategory": {"Coffee"}, "menuAvailable": {"on"}})
	require.Contains(t, body, "Latte")
	require.Equal(t, 1, api.calls["list"], "add must not re-fetch the list")

	api.fail["update"] = errors.New("store down")
	id := b.ctrl().State().Items[0].ID
	body = b.submit("/items/"+id+"/toggle", nil)
	require.Contains(t, body, "store down", "the recorded error survives the redirect")
	require.Equal(t, 1, api.calls["list"])
}

func TestPage_VisitorsDoNotShareState(t *testing.T) {
	api := newFakeAPI(latte)
	g, pages := newPage(api)
	alice := newBrowser(t, g, pages)
	bob := newBrowser(t, g, pages)
	alice.get("/")
	bob.get("/")
	require.NotEqual(t, alice.cookie.Value, bob.cookie.Value)
	require.Equal(t, 2, pages.Len())

	body := alice.submit("/items", url.Values{"menuName": {"Mocha"}, "menuPrice": {"0"}, "menuCategory": {"Coffee"}})
	require.Contains(t, body, `role="alert"`)
	alice.get("/items/latte/edit")

	body = bob.get("/").Body.String()
	require.NotContains(t, body, `role="alert"`)
	require.NotContains(t, body, "Mocha")
	require.NotContains(t, body, `class="editor"`)
	require.Empty(t, bob.ctrl().State().Notice)
	require.Nil(t, bob.ctrl().State().Editing)
}

func TestPage_UnknownCookieGetsFreshPage(t *testing.T) {
	g, pages := newPage(newFakeAPI())
	b := newBrowser(t, g, pages)
	b.cookie = &http.Cookie{Name: PageCookie, Value: "stale"}

	b.get("/")
	require.NotEqual(t, "stale", b.cookie.Value)
	_, ok := pages.lookup("stale")
	require.False(t, ok)
}

func TestPage_AddToggleEditDelete(t *testing.T) {
	api := newFakeAPI()
	g, pages := newPage(api)
	b := newBrowser(t, g, pages)
	b.get("/")

	w := b.post("/items", url.Values{"menuName": {"Latte"}, "menuPrice": {"65"}, "menuCategory": {"Coffee"}, "menuAvailable": {"on"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/?done=1", w.Header().Get("Location"))
	body := b.get("/?done=1").Body.String()
	require.Contains(t, body, "Latte")
	require.NotContains(t, body, "no items")

	ctrl := b.ctrl()
	id := ctrl.State().Items[0].ID
	b.post("/items/"+id+"/toggle", nil)
	require.False(t, ctrl.State().Items[0].Available)

	w = b.get("/items/" + id + "/edit")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `action="/items/`+id+`/edit"`)
	b.post("/items/"+id+"/edit", url.Values{"menuName": {"Flat White"}, "menuPrice": {"70"}, "menuCategory": {"Coffee"}})
	s := ctrl.State()
	require.Nil(t, s.Editing)
	require.Equal(t, "Flat White", s.Items[0].Name)

	w = b.get("/items/" + id + "/delete")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Delete Flat White?")

	b.post("/items/"+id+"/delete", url.Values{"confirm": {"no"}})
	require.Len(t, ctrl.State().Items, 1)
	require.Zero(t, api.calls["delete"])

	body = b.submit("/items/"+id+"/delete", url.Values{"confirm": {"yes"}})
	require.Empty(t, ctrl.State().Items)
	require.Contains(t, body, "no items")
}

func TestPage_InvalidAddShowsNotice(t *testing.T) {
	api := newFakeAPI()
	g, pages := newPage(api)
	b := newBrowser(t, g, pages)
	b.get("/")

	body := b.submit("/items", url.Values{"menuName": {"Latte"}, "menuPrice": {"abc"}, "menuCategory": {"Coffee"}})
	require.Zero(t, api.calls["create"])
	require.Contains(t, body, `role="alert"`)
	require.Contains(t, body, "menuPrice must be greater than 0")

	b.post("/notice/dismiss", nil)
	require.Empty(t, b.ctrl().State().Notice)
}

func TestPage_UnknownItemIs404(t *testing.T) {
	g, pages := newPage(newFakeAPI(latte))
	b := newBrowser(t, g, pages)
	b.get("/")
	require.Equal(t, http.StatusNotFound, b.post("/items/nope/toggle", nil).Code)
	require.Equal(t, http.StatusNotFound, b.get("/items/nope/edit").Code)
	require.Equal(t, http.StatusNotFound, b.get("/items/nope/delete").Code)
	require.Equal(t, http.StatusNotFound, b.post("/items/nope/delete", url.Values{"confirm": {"yes"}}).Code)
}

func TestRender_EscapesItemText(t *testing.T) {
	var b strings.Builder
	s := Reduce(InitialState(), LoadSucceeded{Items: []menu.MenuItem{{ID: "x", Name: "<b>Latte</b>", Price: 4.5, Category: "Coffee"}}})
	require.NoError(t, Render(&b, s))
	require.Contains(t, b.String(), "&lt;b&gt;Latte&lt;/b&gt;")
	require.Contains(t, b.String(), "<td>4.5</td>")
}
