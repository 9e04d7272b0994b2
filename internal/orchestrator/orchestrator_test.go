package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aleister1102/linkcheck/internal/checker"
	"github.com/aleister1102/linkcheck/internal/config"
	"github.com/aleister1102/linkcheck/internal/extractor"
	"github.com/aleister1102/linkcheck/internal/httpclient"
	"github.com/aleister1102/linkcheck/internal/models"
	"github.com/aleister1102/linkcheck/internal/notifier"
	"github.com/aleister1102/linkcheck/internal/urlhandler"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingNotifier struct {
	messages []notifier.Message
}

func (c *capturingNotifier) Send(ctx context.Context, webhookURL string, msg notifier.Message) error {
	c.messages = append(c.messages, msg)
	return nil
}

type stubFetcher struct {
	result *httpclient.FetchContentResult
	err    error
	calls  int
}

func (s *stubFetcher) FetchContent(ctx context.Context, rawURL string) (*httpclient.FetchContentResult, error) {
	s.calls++
	return s.result, s.err
}

type stubChecker struct {
	broken []string
	calls  int
}

func (s *stubChecker) CheckAll(ctx context.Context, urls []string) []string {
	s.calls++
	return s.broken
}

type harness struct {
	orchestrator *Orchestrator
	notifier     *capturingNotifier
}

func newHarness(t *testing.T, cfg *config.GlobalConfig, fetcher PageFetcher, linkChecker LinkChecker) *harness {
	t.Helper()
	n := &capturingNotifier{}
	helper := notifier.NewNotificationHelper(n, cfg.NotificationConfig, zerolog.Nop())
	return &harness{
		orchestrator: NewOrchestrator(cfg, fetcher, linkChecker, helper, zerolog.Nop()),
		notifier:     n,
	}
}

func newLiveHarness(t *testing.T, cfg *config.GlobalConfig, timeout time.Duration) *harness {
	t.Helper()
	client, err := httpclient.NewHTTPClientBuilder(zerolog.Nop()).WithTimeout(timeout).Build()
	require.NoError(t, err)
	c, err := checker.NewChecker(client, cfg.CheckerConfig, zerolog.Nop())
	require.NoError(t, err)
	return newHarness(t, cfg, client, c)
}

func testConfig(target string) *config.GlobalConfig {
	cfg := config.NewDefaultGlobalConfig()
	cfg.TargetConfig.TargetURL = target
	cfg.NotificationConfig.WebhookURL = "https://hooks.example.com/T/B/X"
	cfg.NotificationConfig.Channel = "#links"
	return cfg
}

func refusedAddr(t *testing.T) string {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())
	return addr
}

func TestRun_AllReachable_IsSilent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/page/sub", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><script src="/app.js"></script><link rel="stylesheet" href="css/site.css"></head>
<body><img src="/logo.png"></body></html>`)
	})
	mux.HandleFunc("/app.js", func(w http.ResponseWriter, r *http.Request) { fmt.Fprint(w, "ok") })
	mux.HandleFunc("/css/site.css", func(w http.ResponseWriter, r *http.Request) { fmt.Fprint(w, "ok") })
	mux.HandleFunc("/logo.png", func(w http.ResponseWriter, r *http.Request) { fmt.Fprint(w, "ok") })
	server := httptest.NewServer(mux)
	defer server.Close()

	h := newLiveHarness(t, testConfig(server.URL+"/page/sub"), 2*time.Second)

	outcome := h.orchestrator.Run(context.Background())

	assert.Equal(t, models.RunStatusClean, outcome.Status)
	assert.Equal(t, 3, outcome.TotalResources)
	assert.Empty(t, outcome.BrokenURLs)
	assert.False(t, outcome.Notified)
	assert.Empty(t, h.notifier.messages)
}

func TestRun_OneTimeout_ReportsExactlyThatURL(t *testing.T) {
	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<script src="/fast.js"></script><link href="/fast.css"><img src="/slow.png">`)
	})
	mux.HandleFunc("/fast.js", func(w http.ResponseWriter, r *http.Request) { fmt.Fprint(w, "ok") })
	mux.HandleFunc("/fast.css", func(w http.ResponseWriter, r *http.Request) { fmt.Fprint(w, "ok") })
	mux.HandleFunc("/slow.png", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	defer close(release)

	target := server.URL + "/"
	h := newLiveHarness(t, testConfig(target), 300*time.Millisecond)

	outcome := h.orchestrator.Run(context.Background())

	assert.Equal(t, models.RunStatusBrokenFound, outcome.Status)
	assert.Equal(t, 3, outcome.TotalResources)
	assert.Equal(t, []string{server.URL + "/slow.png"}, outcome.BrokenURLs)
	assert.True(t, outcome.Notified)
	require.Len(t, h.notifier.messages, 1)
	assert.Equal(t, notifier.FormatBrokenLinksMessage(target, 3, []string{server.URL + "/slow.png"}), h.notifier.messages[0].Text)
	assert.Contains(t, h.notifier.messages[0].Text, "*3* links on "+target+" were checked.")
	assert.Equal(t, "#links", h.notifier.messages[0].Channel)
}

func TestRun_FetchFailure_SendsSingleErrorNotification(t *testing.T) {
	target := "http://" + refusedAddr(t) + "/"
	cfg := testConfig(target)
	fetcher, err := httpclient.NewHTTPClientBuilder(zerolog.Nop()).WithTimeout(2 * time.Second).Build()
	require.NoError(t, err)
	linkChecker := &stubChecker{}
	h := newHarness(t, cfg, fetcher, linkChecker)

	outcome := h.orchestrator.Run(context.Background())

	assert.Equal(t, models.RunStatusFailed, outcome.Status)
	assert.Equal(t, models.RunStageFetch, outcome.FailedStage)
	assert.Equal(t, httpclient.CodeConnectionRefused, outcome.ErrorCode)
	assert.Zero(t, linkChecker.calls, "check must not run after a failed fetch")
	require.Len(t, h.notifier.messages, 1)
	assert.Equal(t, notifier.FormatErrorMessage(target, httpclient.CodeConnectionRefused), h.notifier.messages[0].Text)
}

func TestRun_FetchDNSFailure(t *testing.T) {
	fetcher := &stubFetcher{err: httpclient.NewNetworkError("https://nx.invalid/", "HTTP request failed",
		&net.DNSError{Err: "no such host", Name: "nx.invalid", IsNotFound: true})}
	linkChecker := &stubChecker{}
	h := newHarness(t, testConfig("https://nx.invalid/"), fetcher, linkChecker)

	outcome := h.orchestrator.Run(context.Background())

	assert.Equal(t, models.RunStageFetch, outcome.FailedStage)
	assert.Zero(t, linkChecker.calls)
	require.Len(t, h.notifier.messages, 1)
	assert.Equal(t, ":skull: :bug: :skull: - Error occurred when accessing https://nx.invalid/ - ErrorCode: ENOTFOUND - :bug: :skull: :bug:", h.notifier.messages[0].Text)
}

func TestRun_TargetHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	h := newLiveHarness(t, testConfig(server.URL), 2*time.Second)

	outcome := h.orchestrator.Run(context.Background())

	assert.Equal(t, models.RunStageFetch, outcome.FailedStage)
	assert.Equal(t, "HTTP_500", outcome.ErrorCode)
	require.Len(t, h.notifier.messages, 1)
}

func TestRun_MissingTarget_Aborts(t *testing.T) {
	fetcher := &stubFetcher{}
	h := newHarness(t, testConfig("  "), fetcher, &stubChecker{})

	outcome := h.orchestrator.Run(context.Background())

	assert.Equal(t, models.RunStatusAborted, outcome.Status)
	assert.Equal(t, models.RunStageConfig, outcome.FailedStage)
	assert.ErrorIs(t, outcome.Err, config.ErrTargetMissing)
	assert.Zero(t, fetcher.calls)
	assert.Empty(t, h.notifier.messages)
}

func TestRun_MissingWebhook_StillChecks(t *testing.T) {
	cfg := testConfig("https://site.com/")
	cfg.NotificationConfig.WebhookURL = ""
	fetcher := &stubFetcher{result: &httpclient.FetchContentResult{Content: []byte(`<img src="/gone.png">`)}}
	linkChecker := &stubChecker{broken: []string{"https://site.com/gone.png"}}
	h := newHarness(t, cfg, fetcher, linkChecker)

	outcome := h.orchestrator.Run(context.Background())

	assert.Equal(t, models.RunStatusBrokenFound, outcome.Status)
	assert.Equal(t, 1, linkChecker.calls)
	assert.False(t, outcome.Notified)
	assert.Empty(t, h.notifier.messages)
}

func TestRun_ExtractFailure_UsesGenericErrorNotification(t *testing.T) {
	fetcher := &stubFetcher{result: &httpclient.FetchContentResult{Content: []byte(`<script src="%zz"></script>`)}}
	linkChecker := &stubChecker{}
	h := newHarness(t, testConfig("https://site.com/"), fetcher, linkChecker)

	outcome := h.orchestrator.Run(context.Background())

	assert.Equal(t, models.RunStatusFailed, outcome.Status)
	assert.Equal(t, models.RunStageExtract, outcome.FailedStage)
	var malformed *urlhandler.MalformedReferenceError
	assert.True(t, errors.As(outcome.Err, &malformed))
	assert.Zero(t, linkChecker.calls)
	require.Len(t, h.notifier.messages, 1)
	assert.Equal(t, notifier.FormatErrorMessage("https://site.com/", CodeInvalidURL), h.notifier.messages[0].Text)
}

func TestRun_CancelledDuringCheck(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	fetcher := &stubFetcher{result: &httpclient.FetchContentResult{Content: []byte(`<img src="/a.png">`)}}
	linkChecker := &cancellingChecker{cancel: cancel}
	h := newHarness(t, testConfig("https://site.com/"), fetcher, linkChecker)

	outcome := h.orchestrator.Run(ctx)

	assert.Equal(t, models.RunStageCheck, outcome.FailedStage)
	assert.Equal(t, httpclient.CodeCanceled, outcome.ErrorCode)
	require.Len(t, h.notifier.messages, 1)
}

type cancellingChecker struct {
	cancel context.CancelFunc
}

func (c *cancellingChecker) CheckAll(ctx context.Context, urls []string) []string {
	c.cancel()
	return urls
}

func TestRun_FailureNotificationsDisabled(t *testing.T) {
	cfg := testConfig("https://nx.invalid/")
	cfg.NotificationConfig.NotifyOnFailure = false
	h := newHarness(t, cfg, &stubFetcher{err: errors.New("boom")}, &stubChecker{})

	outcome := h.orchestrator.Run(context.Background())

	assert.Equal(t, models.RunStatusFailed, outcome.Status)
	assert.False(t, outcome.Notified)
	assert.Empty(t, h.notifier.messages)
}

func TestHandle_AlwaysReturnsOK(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.GlobalConfig
		fetcher PageFetcher
	}{
		{name: "missing target", cfg: testConfig(""), fetcher: &stubFetcher{}},
		{name: "fetch failure", cfg: testConfig("https://site.com/"), fetcher: &stubFetcher{err: errors.New("boom")}},
		{name: "broken links", cfg: testConfig("https://site.com/"), fetcher: &stubFetcher{result: &httpclient.FetchContentResult{Content: []byte(`<img src="/x.png">`)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.cfg, tt.fetcher, &stubChecker{broken: []string{"https://site.com/x.png"}})

			assert.Equal(t, Response{StatusCode: 200, Body: "{}"}, h.orchestrator.Handle(context.Background()))
		})
	}
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, CodeInvalidURL, ErrorCode(&urlhandler.MalformedReferenceError{Raw: "%zz", Err: errors.New("bad")}))
	assert.Equal(t, CodeParse, ErrorCode(&extractor.ParseError{Err: errors.New("eof")}))
	assert.Equal(t, "HTTP_404", ErrorCode(httpclient.NewHTTPErrorWithURL(404, "", "https://site.com")))
	assert.Equal(t, httpclient.CodeUnknown, ErrorCode(errors.New("boom")))

	_, err := urlhandler.ParseTargetURL("ftp://site.com")
	assert.Equal(t, CodeInvalidURL, ErrorCode(err))
}
