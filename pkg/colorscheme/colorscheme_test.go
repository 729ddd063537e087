package colorscheme

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	s, err := Parse(" Dark ")
	require.NoError(t, err)
	assert.Equal(t, Dark, s)

	_, err = Parse("sepia")
	assert.ErrorIs(t, err, ErrUnknownScheme)
}

func TestToggle(t *testing.T) {
	assert.Equal(t, Dark, Light.Toggle())
	assert.Equal(t, Light, Dark.Toggle())
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := FromRequest(r)
	assert.False(t, ok)

	r.AddCookie(&http.Cookie{Name: CookieName, Value: "bogus"})
	_, ok = FromRequest(r)
	assert.False(t, ok)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "dark"})
	s, ok := FromRequest(r)
	assert.True(t, ok)
	assert.Equal(t, Dark, s)
}

func toggle(t *testing.T, cookie *http.Cookie, ret string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"return": {ret}}
	r := httptest.NewRequest(http.MethodPost, "/theme", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		r.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	ToggleHandler(Light).ServeHTTP(w, r)
	return w
}

func TestToggleHandler(t *testing.T) {
	w := toggle(t, nil, "/blog")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/blog", w.Header().Get("Location"))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "dark", cookies[0].Value)

	w = toggle(t, cookies[0], "/")
	cookies = w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "light", cookies[0].Value)
}

func TestToggleHandlerRejectsForeignRedirects(t *testing.T) {
	for _, ret := range []string{"https://evil.example", "//evil.example", "", "blog"} {
		w := toggle(t, nil, ret)
		assert.Equal(t, "/", w.Header().Get("Location"), ret)
	}
}
