package main

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sreeharips1/portfolio/internal/catalog"
	"github.com/Sreeharips1/portfolio/internal/clock"
	"github.com/Sreeharips1/portfolio/internal/config"
	"github.com/Sreeharips1/portfolio/internal/content"
	"github.com/Sreeharips1/portfolio/internal/view"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

type testApp struct {
	srv     *server
	router  *gin.Engine
	clock   *clock.Fake
	content *content.Content
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, err := content.Load()
	require.NoError(t, err)
	cat, err := catalog.Open(c)
	require.NoError(t, err)
	t.Cleanup(func() { cat.Close() })

	cfg := config.Default()
	cfg.AssetsDir = t.TempDir()

	clk := clock.NewFake(epoch)
	settings := viewSettings(cfg, c, cat)
	settings.Clock = clk
	views := view.NewRegistry(settings, cfg.ViewTTL)
	t.Cleanup(views.Close)

	s, err := newServer(cfg, c, cat, views)
	require.NoError(t, err)
	return &testApp{srv: s, router: s.router(), clock: clk, content: c}
}

func (a *testApp) newView(t *testing.T) *view.View {
	t.Helper()
	v, err := a.srv.views.Create()
	require.NoError(t, err)
	return v
}

func (a *testApp) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) writeAsset(t *testing.T, rel string, data string) {
	t.Helper()
	path := filepath.Join(a.srv.cfg.AssetsDir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

var viewIDPattern = regexp.MustCompile(`sse-connect="/views/([0-9a-f-]+)/events"`)

func TestIndexCreatesView(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "SREEHARI P SHAIJU")
	assert.Contains(t, body, `id="certification-panel"`)
	assert.Contains(t, body, `hx-post="/views/`)
	assert.Contains(t, body, "Latest")

	m := viewIDPattern.FindStringSubmatch(body)
	require.Len(t, m, 2)
	_, err := app.srv.views.Get(m[1])
	assert.NoError(t, err)
	assert.Equal(t, 1, app.srv.views.Len())
}

func TestUnknownViewAsksForReload(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/views/missing/contact", nil)
	req.Header.Set("HX-Request", "true")
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusGone, w.Code)
	assert.Equal(t, "true", w.Header().Get("HX-Refresh"))

	w = app.do(http.MethodPost, "/views/missing/scene", nil)
	assert.Equal(t, http.StatusGone, w.Code)
	assert.Empty(t, w.Header().Get("HX-Refresh"))
}

func TestUnknownViewStreamReloads(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodGet, "/views/missing/events", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/event-stream")
	assert.Contains(t, w.Body.String(), "event:session")
	assert.Contains(t, w.Body.String(), "window.location.reload()")
}

func TestUnmountedViewIsRevived(t *testing.T) {
	app := newTestApp(t)
	v := app.newView(t)
	require.NoError(t, v.Carousel.Select(3))
	v.Unmount()

	w := app.do(http.MethodPost, "/views/"+v.ID+"/certifications/4", nil)
	require.Equal(t, http.StatusOK, w.Code)

	revived, err := app.srv.views.Get(v.ID)
	require.NoError(t, err)
	assert.NotSame(t, v, revived)
	assert.False(t, revived.Closed())
	assert.Equal(t, 4, revived.Carousel.Active())
	assert.Equal(t, 3, v.Carousel.Active())
}

func TestSectionRevealsOnce(t *testing.T) {
	app := newTestApp(t)
	v := app.newView(t)
	path := "/views/" + v.ID + "/sections/about"

	below := url.Values{"top": {"900"}, "bottom": {"1500"}, "viewport": {"1000"}}
	w := app.do(http.MethodPost, path, below)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	inView := url.Values{"top": {"700"}, "bottom": {"1300"}, "viewport": {"1000"}}
	w = app.do(http.MethodPost, path, inView)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `id="about"`)
	assert.Contains(t, w.Body.String(), `class="reveal `)
	assert.NotContains(t, w.Body.String(), "hx-trigger")

	// The latch holds even if the section scrolls away again.
	w = app.do(http.MethodPost, path, below)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, v.Revealed(view.SectionAbout))
}

func TestSectionErrors(t *testing.T) {
	app := newTestApp(t)
	v := app.newView(t)

	w := app.do(http.MethodPost, "/views/"+v.ID+"/sections/footer",
		url.Values{"top": {"0"}, "bottom": {"10"}, "viewport": {"100"}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(http.MethodPost, "/views/"+v.ID+"/sections/experience",
		url.Values{"top": {"abc"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIntersectionSections(t *testing.T) {
	app := newTestApp(t)
	v := app.newView(t)

	for _, section := range []string{view.SectionExperience, view.SectionCertifications} {
		path := "/views/" + v.ID + "/sections/" + section

		// 5% of a 1000px section visible.
		w := app.do(http.MethodPost, path, url.Values{"top": {"950"}, "bottom": {"1950"}, "viewport": {"1000"}})
		assert.Equal(t, http.StatusNoContent, w.Code, section)

		w = app.do(http.MethodPost, path, url.Values{"top": {"800"}, "bottom": {"1800"}, "viewport": {"1000"}})
		require.Equal(t, http.StatusOK, w.Code, section)
		assert.Contains(t, w.Body.String(), `id="`+section+`"`)
	}
}

func TestSelectCertification(t *testing.T) {
	app := newTestApp(t)
	v := app.newView(t)
	base := "/views/" + v.ID + "/certifications/"

	w := app.do(http.MethodPost, base+"2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, v.Carousel.Active())
	assert.Contains(t, w.Body.String(), "/certifications/2/download")

	assert.Equal(t, http.StatusNotFound, app.do(http.MethodPost, base+"9", nil).Code)
	assert.Equal(t, http.StatusBadRequest, app.do(http.MethodPost, base+"x", nil).Code)
	assert.Equal(t, 2, v.Carousel.Active())
}

func TestCertificationPanelSwapsDoNotReplayReveal(t *testing.T) {
	app := newTestApp(t)
	v := app.newView(t)

	hidden, err := app.srv.renderEvent(v, view.Event{Kind: view.EventCertification})
	require.NoError(t, err)
	assert.Contains(t, hidden, "reveal-hidden")
	assert.NotContains(t, hidden, "animation-delay")

	w := app.do(http.MethodPost, "/views/"+v.ID+"/sections/certifications",
		url.Values{"top": {"100"}, "bottom": {"900"}, "viewport": {"1000"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "animation-delay")

	tick, err := app.srv.renderEvent(v, view.Event{Kind: view.EventCertification})
	require.NoError(t, err)
	assert.Contains(t, tick, "reveal-settled")
	assert.NotContains(t, tick, `class="reveal `)
	assert.NotContains(t, tick, "animation-delay")

	w = app.do(http.MethodPost, "/views/"+v.ID+"/certifications/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "reveal-settled")
	assert.NotContains(t, w.Body.String(), `class="reveal `)
	assert.NotContains(t, w.Body.String(), "animation-delay")
}

func TestProjectModal(t *testing.T) {
	app := newTestApp(t)
	v := app.newView(t)

	w := app.do(http.MethodGet, "/views/"+v.ID+"/projects/agriculture", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Multipurpose Agriculture Machine")
	assert.Contains(t, body, "https://wa.me/9526308646?text=I%27m%20interested%20in%20your%20Agriculture%20Machine%20project")
	assert.Contains(t, body, "Download Report")
	assert.True(t, v.Modal.IsOpen("agriculture"))

	// Opening another project replaces the first.
	w = app.do(http.MethodGet, "/views/"+v.ID+"/projects/petcare", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "View Code")
	assert.False(t, v.Modal.IsOpen("agriculture"))

	w = app.do(http.MethodDelete, "/views/"+v.ID+"/projects", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	_, open := v.Modal.Active()
	assert.False(t, open)

	w = app.do(http.MethodGet, "/views/"+v.ID+"/projects/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestContactSubmit(t *testing.T) {
	app := newTestApp(t)
	v := app.newView(t)
	path := "/views/" + v.ID + "/contact"

	w := app.do(http.MethodPost, path, url.Values{
		"name":    {"Jane Doe"},
		"email":   {"jane@x.com"},
		"message": {"Hello"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var trigger map[string]string
	require.NoError(t, json.Unmarshal([]byte(w.Header().Get("HX-Trigger")), &trigger))
	assert.Equal(t,
		"mailto:sreehariwsree@gmail.com?subject=Message%20from%20Jane%20Doe&body=Hello%0A%0AFrom%3A%20Jane%20Doe%0AEmail%3A%20jane%40x.com",
		trigger["mailto"])
	assert.Contains(t, w.Body.String(), "Your message has been sent successfully")
	assert.NotContains(t, w.Body.String(), `value="Jane Doe"`)
}

func TestContactSubmitMissingField(t *testing.T) {
	app := newTestApp(t)
	v := app.newView(t)

	w := app.do(http.MethodPost, "/views/"+v.ID+"/contact", url.Values{
		"name":    {"Jane Doe"},
		"message": {"Hello"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("HX-Trigger"))
	assert.Contains(t, w.Body.String(), "Something went wrong")
	assert.Contains(t, w.Body.String(), `value="Jane Doe"`)
}

func TestSceneLoadedStartsTagline(t *testing.T) {
	app := newTestApp(t)
	v := app.newView(t)

	w := app.do(http.MethodPost, "/views/"+v.ID+"/scene", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `id="hero-content"`)
	assert.Contains(t, w.Body.String(), `class="reveal `)
	assert.True(t, v.IsSceneLoaded())
	assert.Equal(t, 1, app.clock.Waiters())

	// A second load signal does not start another typewriter.
	w = app.do(http.MethodPost, "/views/"+v.ID+"/scene", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, app.clock.Waiters())
}

func TestResumeDownload(t *testing.T) {
	app := newTestApp(t)
	app.writeAsset(t, "pdf/resume.pdf", "%PDF-1.4")

	w := app.do(http.MethodGet, "/resume", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="Sreehari_P_Shaiju_Resume.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.4", w.Body.String())
}

func TestCertificationDownload(t *testing.T) {
	app := newTestApp(t)
	cert := app.content.Certifications[0]
	app.writeAsset(t, cert.ImagePath, "jpeg")

	w := app.do(http.MethodGet, "/certifications/0/download", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="`+cert.DownloadName()+`"`, w.Header().Get("Content-Disposition"))

	assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, "/certifications/99/download", nil).Code)
}

func TestMissingAssetIsNotFound(t *testing.T) {
	app := newTestApp(t)
	w := app.do(http.MethodGet, "/photos/image1.jpg", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEmbeddedStatic(t *testing.T) {
	app := newTestApp(t)
	w := app.do(http.MethodGet, "/static/css/portfolio.css", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "@keyframes reveal")
}

func TestEventsStreamCarouselTicks(t *testing.T) {
	app := newTestApp(t)
	v := app.newView(t)

	ts := httptest.NewServer(app.router)
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/views/"+v.ID+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	require.Eventually(t, v.Mounted, time.Second, 5*time.Millisecond)

	// A second stream for the same view is refused.
	second := httptest.NewRecorder()
	app.router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/views/"+v.ID+"/events", nil))
	assert.Equal(t, http.StatusConflict, second.Code)

	app.clock.Advance(app.srv.cfg.CarouselInterval)

	lines := bufio.NewScanner(resp.Body)
	var event string
	var data strings.Builder
	for lines.Scan() {
		line := lines.Text()
		if line == "" && event != "" {
			break
		}
		if name, ok := strings.CutPrefix(line, "event:"); ok {
			event = strings.TrimSpace(name)
		}
		if d, ok := strings.CutPrefix(line, "data:"); ok {
			data.WriteString(d)
		}
	}
	assert.Equal(t, "certification", event)
	assert.Contains(t, data.String(), "/certifications/1/download")
	assert.Equal(t, 1, v.Carousel.Active())

	cancel()
	require.Eventually(t, func() bool { return app.clock.Waiters() == 0 }, time.Second, 5*time.Millisecond)
	assert.True(t, v.Closed())
	assert.Equal(t, 1, app.srv.views.Len())
}

func (a *testApp) openStream(t *testing.T, ts *httptest.Server, id string) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/views/"+id+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	t.Cleanup(func() { resp.Body.Close() })
	return cancel
}

func TestControlsWorkAfterStreamDrops(t *testing.T) {
	app := newTestApp(t)
	v := app.newView(t)

	ts := httptest.NewServer(app.router)
	defer ts.Close()

	cancel := app.openStream(t, ts, v.ID)
	require.Eventually(t, v.Mounted, time.Second, 5*time.Millisecond)
	app.do(http.MethodGet, "/views/"+v.ID+"/projects/petcare", nil)
	cancel()
	require.Eventually(t, v.Closed, time.Second, 5*time.Millisecond)

	w := app.do(http.MethodPost, "/views/"+v.ID+"/contact", url.Values{
		"name":    {"Jane Doe"},
		"email":   {"jane@x.com"},
		"message": {"Hello"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("HX-Trigger"))
	assert.Contains(t, w.Body.String(), "Your message has been sent successfully")

	// The page's reconnect mounts the revived view.
	revived, err := app.srv.views.Get(v.ID)
	require.NoError(t, err)
	assert.True(t, revived.Modal.IsOpen("petcare"))
	cancel = app.openStream(t, ts, v.ID)
	defer cancel()
	require.Eventually(t, revived.Mounted, time.Second, 5*time.Millisecond)
}
