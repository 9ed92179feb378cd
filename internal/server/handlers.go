package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/termynus/termynus/internal/eval"
	"github.com/termynus/termynus/internal/parser"
)

// HTTP Handlers

type evaluateRequest struct {
	Expression string                 `json:"expression"`
	Variables  map[string]interface{} `json:"variables"`
}

type renderRequest struct {
	Template  string                 `json:"template"`
	Variables map[string]interface{} `json:"variables"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// errorKind classifies an evaluation failure for API clients.
func errorKind(err error) string {
	var (
		lexErr  *parser.LexError
		synErr  *parser.SyntaxError
		dateErr *parser.DateFormatError
		nameErr *eval.NameError
		typeErr *eval.TypeError
		mathErr *eval.ArithmeticError
	)
	switch {
	case errors.As(err, &lexErr):
		return "lex"
	case errors.As(err, &synErr):
		return "syntax"
	case errors.As(err, &dateErr):
		return "date_format"
	case errors.As(err, &nameErr):
		return "name"
	case errors.As(err, &typeErr):
		return "type"
	case errors.As(err, &mathErr):
		return "arithmetic"
	default:
		return "internal"
	}
}

// errorStatus maps an error kind to an HTTP status. Malformed expressions
// are the client's fault at the syntax level, runtime failures at the
// semantic level.
func errorStatus(kind string) int {
	switch kind {
	case "lex", "syntax", "date_format":
		return http.StatusBadRequest
	case "name", "type", "arithmetic":
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	kind := errorKind(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(errorStatus(kind))
	_ = json.NewEncoder(w).Encode(errorResponse{Error: err.Error(), Kind: kind})
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// evaluateExpression parses and evaluates a single expression
func (s *Server) evaluateExpression(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Expression == "" {
		http.Error(w, "expression is required", http.StatusBadRequest)
		return
	}

	start := time.Now()
	node, err := parser.Parse(req.Expression)
	if err != nil {
		s.metrics.observe("parse_error", time.Since(start))
		s.writeError(w, err)
		return
	}

	value, err := eval.Evaluate(node, eval.NewEnv(req.Variables))
	if err != nil {
		s.metrics.observe("eval_error", time.Since(start))
		s.writeError(w, err)
		return
	}

	s.metrics.observe("ok", time.Since(start))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"result": value.GoValue(),
		"type":   value.Type(),
	})
}

// parseExpression parses an expression and returns its AST
func (s *Server) parseExpression(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Expression == "" {
		http.Error(w, "expression is required", http.StatusBadRequest)
		return
	}

	node, err := parser.Parse(req.Expression)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"ast": node,
	})
}

// renderTemplate interpolates ${{ }} placeholders in a template string
func (s *Server) renderTemplate(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	start := time.Now()
	result, err := eval.RenderTemplate(req.Template, eval.NewEnv(req.Variables))
	if err != nil {
		s.metrics.observe("render_error", time.Since(start))
		s.writeError(w, err)
		return
	}

	s.metrics.observe("ok", time.Since(start))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"result": result,
	})
}

// listFunctions returns the names of all builtin functions
func (s *Server) listFunctions(w http.ResponseWriter, r *http.Request) {
	names := eval.BuiltinNames()
	log.Debug().Int("count", len(names)).Msg("Listing builtin functions")

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"functions": names,
		"count":     len(names),
	})
}

// healthCheck returns server health status
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "healthy",
		"functions": len(eval.BuiltinNames()),
		"timestamp": time.Now(),
	})
}
