// Package server exposes the inbound HTTP surface: the REST chat endpoint,
// health and discovery endpoints, and the task API specialists are reachable
// under when another orchestrator delegates to this process remotely.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/a2a"
	orchestratorx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/agents/orchestrator"
	contractx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/contract"
	"github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/task"
	toolx "github.com/hilalTortumluoglu/ecommerce-a2a-agents/agent/tool"
)

const maxRequestBodyBytes = 1 << 20

type Config struct {
	Addr        string `envconfig:"ADDR" split_words:"true" default:":8080"`
	ServiceName string `envconfig:"SERVICE_NAME" split_words:"true" default:"ecommerce-orchestrator"`
	Version     string `envconfig:"VERSION" split_words:"true" default:"1.0.0"`
}

// MessageHandler answers one chat message. *orchestrator.Orchestrator is the
// production implementation.
type MessageHandler interface {
	HandleMessage(ctx context.Context, sessionID string, text string) (orchestratorx.Reply, error)
}

type Server struct {
	handler   MessageHandler
	directory contractx.Directory
	transport contractx.Transport
	tracker   *task.Tracker

	service string
	version string
}

func New(handler MessageHandler, directory contractx.Directory, transport contractx.Transport, tracker *task.Tracker, cfg Config) (*Server, error) {
	if handler == nil {
		return nil, errors.New("message handler is required")
	}
	if directory == nil {
		return nil, errors.New("specialist directory is required")
	}
	if transport == nil {
		return nil, errors.New("task transport is required")
	}
	if tracker == nil {
		return nil, errors.New("task tracker is required")
	}

	service := strings.TrimSpace(cfg.ServiceName)
	if service == "" {
		service = "ecommerce-orchestrator"
	}
	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		version = "1.0.0"
	}

	return &Server{
		handler:   handler,
		directory: directory,
		transport: transport,
		tracker:   tracker,
		service:   service,
		version:   version,
	}, nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/agents", s.handleAgents)
	mux.HandleFunc("GET /.well-known/agent.json", s.handleOrchestratorCard)

	mux.HandleFunc("GET /api/tasks/{id}", s.handleTaskGet)
	mux.HandleFunc("POST /api/tasks/{id}/cancel", s.handleTaskCancel)

	// Remote delegation surface: a2a clients address one specialist of this
	// process as {base}/agents/{specialist} and append the task API paths.
	mux.HandleFunc("POST /agents/{specialist}/api/tasks", s.handleTaskCreate)
	mux.HandleFunc("GET /agents/{specialist}/api/tasks/{id}", s.handleTaskGet)
	mux.HandleFunc("GET /agents/{specialist}/.well-known/agent.json", s.handleSpecialistCard)

	return requestLogger(mux)
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

type chatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message field is required")
		return
	}

	reply, err := s.handler.HandleMessage(r.Context(), req.SessionID, req.Message)
	if err != nil {
		if errors.Is(err, orchestratorx.ErrInvalidMessage) {
			writeError(w, http.StatusBadRequest, "message field is required")
			return
		}
		log.Error().Str("session_id", req.SessionID).Err(err).Msg("chat request failed")
		writeError(w, http.StatusInternalServerError, "message could not be processed")
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Response: reply.Text, SessionID: reply.SessionID})
}

type healthResponse struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	Version     string `json:"version"`
	Specialists int    `json:"specialists"`
	Tools       int    `json:"tools"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:      "healthy",
		Service:     s.service,
		Version:     s.version,
		Specialists: len(s.directory.List()),
		Tools:       len(toolx.Names()),
	})
}

type agentEntry struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Endpoint string        `json:"endpoint"`
	Intents  []string      `json:"intents"`
	Card     a2a.AgentCard `json:"card"`
}

type agentsResponse struct {
	Agents []agentEntry `json:"agents"`
}

func (s *Server) handleAgents(w http.ResponseWriter, _ *http.Request) {
	specialists := s.directory.List()
	entries := make([]agentEntry, 0, len(specialists))
	for _, sp := range specialists {
		entries = append(entries, agentEntry{
			ID:       sp.ID,
			Name:     sp.DisplayName,
			Endpoint: sp.Endpoint,
			Intents:  sp.Intents,
			Card:     a2a.CardFor(sp),
		})
	}
	writeJSON(w, http.StatusOK, agentsResponse{Agents: entries})
}

func (s *Server) handleOrchestratorCard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.orchestratorCard())
}

func (s *Server) orchestratorCard() a2a.AgentCard {
	return a2a.AgentCard{
		Name:               "E-Commerce Shopping Assistant",
		Description:        "Akıllı e-ticaret asistanı. Ürün arama, sipariş takibi, fiyat karşılaştırması ve kişiselleştirilmiş öneriler için birden fazla uzman ajana yönlendirme yapar.",
		URL:                "/",
		Version:            s.version,
		DefaultInputModes:  []string{"text"},
		DefaultOutputModes: []string{"text"},
		Capabilities:       a2a.CardCapabilities{Streaming: false},
		Skills: []a2a.CardSkill{
			{
				ID:          "shopping_assistant",
				Name:        "Alışveriş Asistanı",
				Description: "Ürün, sipariş ve araştırma için genel asistan",
				Tags:        []string{"alışveriş", "yardım", "asistan"},
				Examples: []string{
					"İyi bir kulaklık önerir misin?",
					"Siparişim nerede?",
					"Sony WH-1000XM5 fiyatı ne kadar?",
					"Son siparişlerimi göster",
				},
			},
		},
	}
}

func (s *Server) handleSpecialistCard(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("specialist")
	for _, sp := range s.directory.List() {
		if sp.ID == id {
			writeJSON(w, http.StatusOK, a2a.CardFor(sp))
			return
		}
	}
	writeError(w, http.StatusNotFound, fmt.Sprintf("unknown specialist %q", id))
}

func (s *Server) handleTaskCreate(w http.ResponseWriter, r *http.Request) {
	specialist := r.PathValue("specialist")

	var req contractx.TaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text field is required")
		return
	}

	// The delegated work outlives this HTTP exchange; the caller polls the
	// task API for progress.
	handle, err := s.transport.SendTask(context.WithoutCancel(r.Context()), specialist, req)
	if err != nil {
		if errors.Is(err, contractx.ErrUnknownSpecialist) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("unknown specialist %q", specialist))
			return
		}
		log.Error().Str("specialist", specialist).Err(err).Msg("task create failed")
		writeError(w, http.StatusInternalServerError, "task could not be created")
		return
	}

	snap, err := s.tracker.Get(handle.TaskID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "task could not be read back")
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

func (s *Server) handleTaskGet(w http.ResponseWriter, r *http.Request) {
	snap, err := s.tracker.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

type cancelRequest struct {
	Reason string `json:"reason,omitempty"`
}

func (s *Server) handleTaskCancel(w http.ResponseWriter, r *http.Request) {
	taskID := r.PathValue("id")

	var req cancelRequest
	if r.ContentLength != 0 {
		if !decodeJSON(w, r, &req) {
			return
		}
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = "canceled by caller"
	}

	if err := s.tracker.Cancel(taskID, reason); err != nil {
		switch {
		case errors.Is(err, task.ErrTaskNotFound):
			writeError(w, http.StatusNotFound, "task not found")
		case errors.Is(err, task.ErrInvalidTransition):
			writeError(w, http.StatusConflict, "task already finished")
		default:
			writeError(w, http.StatusInternalServerError, "task could not be canceled")
		}
		return
	}

	snap, err := s.tracker.Get(taskID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "task could not be read back")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return false
	}
	return true
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("response encode failed")
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("took", time.Since(started)).
			Msg("http request")
	})
}
