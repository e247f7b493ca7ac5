package main

import (
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/baditaflorin/l"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_guess_similarity/pkg/guess"
	"github.com/baditaflorin/go_guess_similarity/pkg/points"
)

func newTestHandler(t *testing.T) *handler {
	t.Helper()

	logger, err := l.NewStandardFactory().CreateLogger(l.Config{
		Output:      io.Discard,
		JsonFormat:  true,
		BufferSize:  1024,
		MaxFileSize: 1024 * 1024,
		MaxBackups:  1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = logger.Close() })

	scorer, err := guess.New(guess.WithLogger(logger))
	require.NoError(t, err)
	calc, err := points.New()
	require.NoError(t, err)

	return &handler{
		scorer:       scorer,
		points:       calc,
		logger:       logger,
		scoreTimeout: time.Second,
		metrics: func(ctx *fasthttp.RequestCtx) {
			ctx.SetBodyString("guess_scores_total 1\n")
		},
	}
}

func do(h *handler, method, path, body string) *fasthttp.RequestCtx {
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	ctx.Request.SetBodyString(body)
	h.handle(&ctx)
	return &ctx
}

func TestScoreEndpoint(t *testing.T) {
	h := newTestHandler(t)

	ctx := do(h, fasthttp.MethodPost, "/score", `{"guess":"A Cat!","prompt":"a cat"}`)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var v guess.Verdict
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &v))
	assert.True(t, v.IsCorrect)
	assert.Equal(t, guess.MethodExact, v.Method)
	assert.Nil(t, v.Breakdown)
}

func TestScoreEndpointCombinedIncludesBreakdown(t *testing.T) {
	h := newTestHandler(t)

	ctx := do(h, fasthttp.MethodPost, "/score", `{"guess":"big happy purple lizard","prompt":"big happy purple dragon"}`)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var v guess.Verdict
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &v))
	assert.Equal(t, guess.MethodCombined, v.Method)
	require.NotNil(t, v.Breakdown)
	assert.Equal(t, 0.75, v.Breakdown.Coverage)
}

func TestBreakdownEndpoint(t *testing.T) {
	h := newTestHandler(t)

	ctx := do(h, fasthttp.MethodPost, "/breakdown", `{"guess":"cat","prompt":"cat"}`)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var b guess.Breakdown
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &b))
	assert.Equal(t, 1.0, b.Coverage)
	assert.InDelta(t, 0.7, b.Combined, 1e-12)
}

func TestPointsEndpoint(t *testing.T) {
	h := newTestHandler(t)

	ctx := do(h, fasthttp.MethodPost, "/points", `{"semantic_score":1,"elapsed_ms":5000,"is_human":true}`)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var r points.Result
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &r))
	assert.Equal(t, 180, r.FinalScore)
}

func TestErrorResponses(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"unknown path", fasthttp.MethodGet, "/nope", "", fasthttp.StatusNotFound},
		{"score needs POST", fasthttp.MethodGet, "/score", "", fasthttp.StatusMethodNotAllowed},
		{"points needs POST", fasthttp.MethodGet, "/points", "", fasthttp.StatusMethodNotAllowed},
		{"health needs GET", fasthttp.MethodPost, "/health", "", fasthttp.StatusMethodNotAllowed},
		{"malformed JSON", fasthttp.MethodPost, "/score", "{", fasthttp.StatusBadRequest},
		{"missing prompt", fasthttp.MethodPost, "/score", `{"guess":"cat"}`, fasthttp.StatusBadRequest},
		{"malformed points", fasthttp.MethodPost, "/points", `{"elapsed_ms":"soon"}`, fasthttp.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := do(h, tc.method, tc.path, tc.body)

			assert.Equal(t, tc.status, ctx.Response.StatusCode())
			var e ErrorResponse
			require.NoError(t, json.Unmarshal(ctx.Response.Body(), &e))
			assert.NotEmpty(t, e.Error)
		})
	}
}

func TestHealthAndMetrics(t *testing.T) {
	h := newTestHandler(t)

	ctx := do(h, fasthttp.MethodGet, "/health", "")
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), `"status":"ok"`)

	ctx = do(h, fasthttp.MethodGet, "/metrics", "")
	assert.Contains(t, string(ctx.Response.Body()), "guess_scores_total")
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{port: 8080, maxRequestSize: 1024, embedProvider: ProviderNone, maxTimeSeconds: 60}
	}

	assert.NoError(t, valid().validate())

	c := valid()
	c.port = 0
	assert.Error(t, c.validate())

	c = valid()
	c.embedProvider = ProviderOpenAI
	assert.Error(t, c.validate(), "openai without a key")
	c.openAIKey = "sk-test"
	assert.NoError(t, c.validate())

	c = valid()
	c.embedProvider = "cohere"
	assert.Error(t, c.validate())

	c = valid()
	c.maxTimeSeconds = 0
	assert.Error(t, c.validate())
}

func TestNewCmdReadsEnvironment(t *testing.T) {
	t.Setenv("GUESS_PORT", "9191")
	t.Setenv("GUESS_EMBED_PROVIDER", "openai")

	cfg := &Config{}
	newCmd(cfg)

	assert.Equal(t, 9191, cfg.port)
	assert.Equal(t, ProviderOpenAI, cfg.embedProvider)
	assert.Equal(t, DefaultScoreTimeout, cfg.scoreTimeout)
}
