package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"intake/internal/model"
	"intake/internal/service"
	"intake/internal/session"
	logx "intake/pkg/logger"
)

// IntakeHandler handles intake-related HTTP requests
type IntakeHandler struct {
	orchestrator *service.TurnOrchestrator
	sessions     *session.Store
}

// NewIntakeHandler creates a new intake handler. sessions may be nil;
// turns then run stateless with caller-carried state.
func NewIntakeHandler(orchestrator *service.TurnOrchestrator, sessions *session.Store) *IntakeHandler {
	return &IntakeHandler{orchestrator: orchestrator, sessions: sessions}
}

// Turn handles POST /api/v1/intake/turn
func (h *IntakeHandler) Turn(c *gin.Context) {
	var req model.TurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	ctx := c.Request.Context()

	// With a session id and a configured store, the server carries
	// state and history between turns instead of the caller.
	useSession := h.sessions != nil && req.SessionID != ""
	if useSession {
		rec, err := h.sessions.Load(ctx, req.SessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Session load failed: " + err.Error()})
			return
		}
		if rec != nil {
			req.State = &rec.State
			req.History = rec.History
		}
	}

	resp, err := h.orchestrator.Run(ctx, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Turn failed: " + err.Error()})
		return
	}

	if useSession {
		history := append(req.History,
			model.ChatMessage{Role: "user", Content: req.Message},
			model.ChatMessage{Role: "assistant", Content: resp.AssistantMessage},
		)
		err := h.sessions.Save(ctx, req.SessionID, session.Record{State: resp.State, History: history})
		if err != nil {
			// The caller still gets the full state back, so a failed
			// session write degrades to stateless operation.
			logx.Warn().Err(err).Str("session_id", req.SessionID).Msg("failed to save session")
		}
	}

	c.JSON(http.StatusOK, resp)
}

// GetLead handles GET /api/v1/leads/:id
func (h *IntakeHandler) GetLead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lead ID"})
		return
	}

	lead, err := h.orchestrator.Lead(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get lead: " + err.Error()})
		return
	}
	if lead == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		return
	}

	c.JSON(http.StatusOK, lead)
}
