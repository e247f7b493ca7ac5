package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/baditaflorin/l"
	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_guess_similarity/pkg/guess"
	"github.com/baditaflorin/go_guess_similarity/pkg/points"
)

// GuessRequest asks whether guess matches prompt.
type GuessRequest struct {
	Guess  string `json:"guess"`
	Prompt string `json:"prompt"`
}

// PointsRequest asks for the point award of a guess.
type PointsRequest struct {
	SemanticScore float64 `json:"semantic_score"`
	ElapsedMs     int64   `json:"elapsed_ms"`
	IsHuman       bool    `json:"is_human"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

type handler struct {
	scorer       *guess.Scorer
	points       *points.Calculator
	logger       l.Logger
	scoreTimeout time.Duration
	metrics      fasthttp.RequestHandler
}

// handle is the main fasthttp request handler
func (h *handler) handle(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	switch string(ctx.Path()) {
	case "/health":
		h.handleHealthCheck(ctx)
	case "/score":
		h.handleScore(ctx)
	case "/breakdown":
		h.handleBreakdown(ctx)
	case "/points":
		h.handlePoints(ctx)
	case "/metrics":
		h.handleMetrics(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		h.writeJSONError(ctx, "Not found")
	}

	h.logger.Info("Request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", time.Since(startTime),
	)
}

func (h *handler) handleHealthCheck(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		h.writeJSONError(ctx, "Method not allowed")
		return
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	h.writeJSONResponse(ctx, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (h *handler) handleMetrics(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		h.writeJSONError(ctx, "Method not allowed")
		return
	}
	h.metrics(ctx)
}

func (h *handler) handleScore(ctx *fasthttp.RequestCtx) {
	req, ok := h.parseGuessRequest(ctx)
	if !ok {
		return
	}

	c, cancel := context.WithTimeout(context.Background(), h.scoreTimeout)
	defer cancel()

	ctx.SetStatusCode(fasthttp.StatusOK)
	h.writeJSONResponse(ctx, h.scorer.ScoreGuess(c, req.Guess, req.Prompt))
}

func (h *handler) handleBreakdown(ctx *fasthttp.RequestCtx) {
	req, ok := h.parseGuessRequest(ctx)
	if !ok {
		return
	}

	c, cancel := context.WithTimeout(context.Background(), h.scoreTimeout)
	defer cancel()

	ctx.SetStatusCode(fasthttp.StatusOK)
	h.writeJSONResponse(ctx, h.scorer.Breakdown(c, req.Guess, req.Prompt))
}

func (h *handler) handlePoints(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		h.writeJSONError(ctx, "Method not allowed")
		return
	}

	var req PointsRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		h.writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	h.writeJSONResponse(ctx, h.points.ComputeFinalScore(req.SemanticScore, req.ElapsedMs, req.IsHuman))
}

// parseGuessRequest decodes a POSTed GuessRequest, writing the error response
// itself when it returns false.
func (h *handler) parseGuessRequest(ctx *fasthttp.RequestCtx) (GuessRequest, bool) {
	var req GuessRequest
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		h.writeJSONError(ctx, "Method not allowed")
		return req, false
	}

	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		h.writeJSONError(ctx, "Invalid request: "+err.Error())
		return req, false
	}

	if req.Prompt == "" {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		h.writeJSONError(ctx, "prompt is required")
		return req, false
	}
	return req, true
}

// writeJSONResponse writes a JSON response to the context
func (h *handler) writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		h.logger.Error("Error marshaling JSON response", "error", err)
		h.writeJSONError(ctx, "Internal server error")
		return
	}

	ctx.SetContentType("application/json")
	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context
func (h *handler) writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	response, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		h.logger.Error("Error marshaling JSON error response", "error", err)
		response = []byte(`{"error":"Internal server error"}`)
	}

	ctx.SetContentType("application/json")
	ctx.SetBody(response)
}
