package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mioraralevason/suivi-backend/internal/config"
	"github.com/mioraralevason/suivi-backend/internal/middleware"
	"github.com/mioraralevason/suivi-backend/internal/model"
	"github.com/mioraralevason/suivi-backend/internal/scoring"
	"github.com/mioraralevason/suivi-backend/internal/service"
	ws "github.com/mioraralevason/suivi-backend/internal/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler handles WebSocket assessment and dashboard streaming.
type WSHandler struct {
	rdb               *redis.Client
	assessmentService *service.AssessmentService
	log               zerolog.Logger
	upgrader          websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rdb *redis.Client, assessmentService *service.AssessmentService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rdb:               rdb,
		assessmentService: assessmentService,
		log:               log.With().Str("component", "ws_handler").Logger(),
		upgrader:          buildUpgrader(allowedOrigins),
	}
}

// AssessmentStream godoc
// WS /ws/v1/institution/assessment
// Upgrades to WebSocket for real-time answer autosave and submission.
func (h *WSHandler) AssessmentStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil || claims.InstitutionID == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "institution access only"})
		return
	}
	institutionID := *claims.InstitutionID

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().
		Str("institution_id", institutionID.String()).
		Logger()

	wsLog.Info().Msg("Institution connected")

	for {
		var raw json.RawMessage
		if err := ws.ReadJSON(conn, &raw); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			break
		}

		var envelope ws.RequestEnvelope
		if err := json.Unmarshal(raw, &envelope); err != nil {
			ws.WriteError(conn, "malformed message")
			continue
		}

		switch envelope.Action {
		case ws.ActionAutosave:
			h.handleAutosave(conn, wsLog, institutionID, raw)
		case ws.ActionSubmit:
			h.handleSubmit(conn, wsLog, institutionID)
		case ws.ActionPing:
			ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
		default:
			wsLog.Warn().Str("action", string(envelope.Action)).Msg("Unknown action")
			ws.WriteError(conn, "unknown action: "+string(envelope.Action))
		}
	}
}

// handleAutosave validates an answer and buffers it for the answer worker.
func (h *WSHandler) handleAutosave(conn *websocket.Conn, wsLog zerolog.Logger, institutionID uuid.UUID, raw json.RawMessage) {
	ctx := context.Background()

	var req ws.AutosaveRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		ws.WriteError(conn, "malformed autosave payload")
		return
	}
	if req.QuestionID == uuid.Nil || len(req.Value) == 0 {
		ws.WriteError(conn, "question_id and value are required")
		return
	}

	err := h.assessmentService.Autosave(ctx, institutionID, &model.UpsertAnswerRequest{
		QuestionID:    req.QuestionID,
		Value:         req.Value,
		Justification: req.Justification,
		Comment:       req.Comment,
	})
	if err != nil {
		var valErr *scoring.ValidationError
		if errors.As(err, &valErr) {
			ws.WriteError(conn, valErr.Message)
			return
		}
		wsLog.Error().Err(err).Msg("Autosave error")
		ws.WriteError(conn, "save failed")
		return
	}

	ws.WriteTyped(conn, ws.AutosaveResponse{Event: ws.EventSuccess, Status: "saved"})
}

// handleSubmit freezes the assessment and returns the classification.
func (h *WSHandler) handleSubmit(conn *websocket.Conn, wsLog zerolog.Logger, institutionID uuid.UUID) {
	ctx := context.Background()

	assessment, err := h.assessmentService.Submit(ctx, institutionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAssessmentIncomplete):
			ws.WriteError(conn, "assessment is incomplete")
		case errors.Is(err, service.ErrNoThresholds):
			ws.WriteError(conn, "no risk thresholds configured")
		default:
			wsLog.Error().Err(err).Msg("Submit error")
			ws.WriteError(conn, "submission failed")
		}
		return
	}

	wsLog.Info().
		Float64("score", assessment.TotalScore).
		Str("risk_level", string(assessment.RiskLevel)).
		Msg("Assessment submitted and classified")

	ws.WriteTyped(conn, ws.GradedResponse{
		Event:     ws.EventGraded,
		Status:    "completed",
		Score:     assessment.TotalScore,
		RiskLevel: assessment.RiskLevel,
		RiskLabel: assessment.RiskLabel,
	})
}

// DashboardStream godoc
// WS /ws/v1/admin/dashboard
// Relays risk classification changes to supervision dashboards via the
// Redis pub/sub channel.
func (h *WSHandler) DashboardStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil || claims.Role == model.RoleInstitution {
		c.JSON(http.StatusForbidden, gin.H{"error": "staff access only"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := h.rdb.Subscribe(ctx, config.CacheKey.RiskUpdatesChannel())
	defer sub.Close()

	wsLog := h.log.With().Str("user_id", claims.UserID.String()).Logger()
	wsLog.Info().Msg("Dashboard subscriber connected")

	// Read pump: the client only ever pings; any read error tears the
	// stream down.
	go func() {
		defer cancel()
		for {
			var raw json.RawMessage
			if err := ws.ReadJSON(conn, &raw); err != nil {
				return
			}
			var envelope ws.RequestEnvelope
			if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Action == ws.ActionPing {
				ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
			}
		}
	}()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			wsLog.Debug().Msg("Dashboard subscriber disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var event service.RiskUpdateEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				wsLog.Warn().Err(err).Msg("Malformed risk update payload")
				continue
			}
			ws.WriteTyped(conn, ws.RiskUpdateResponse{
				Event:         ws.EventRiskUpdate,
				InstitutionID: event.InstitutionID,
				Score:         event.Score,
				RiskLevel:     event.RiskLevel,
				RiskLabel:     event.RiskLabel,
				Submitted:     event.Submitted,
			})
		}
	}
}
