package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-streak-engine/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-streak-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-streak-engine/internal/core/services"
)

type HabitHandler struct {
	svc *services.HabitService
}

func NewHabitHandler(svc *services.HabitService) *HabitHandler {
	return &HabitHandler{
		svc: svc,
	}
}

type createHabitRequest struct {
	Name      string `json:"name" binding:"required" example:"Water"`
	Kind      string `json:"kind" binding:"required" example:"count"`
	Frequency string `json:"frequency" example:"daily"`
	Target    int    `json:"target" binding:"required" example:"8"`
	Unit      string `json:"unit" example:"glasses"`
}

type progressRequest struct {
	Action string `json:"action" binding:"required" example:"add_count"`
	Amount int    `json:"amount" binding:"max=1000000" example:"1"`
}

type habitResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Kind          string  `json:"kind"`
	Frequency     string  `json:"frequency"`
	Target        int     `json:"target"`
	Unit          string  `json:"unit,omitempty"`
	Current       string  `json:"current"`
	Progress      float64 `json:"progress"`
	ProgressLabel string  `json:"progress_label"`
	Streak        int     `json:"streak"`
	IsCompleted   bool    `json:"is_completed"`
	LastUpdated   string  `json:"last_updated"`
	Period        string  `json:"period"`
}

func toResponse(h *domain.Habit) habitResponse {
	return habitResponse{
		ID:            h.ID,
		Name:          h.Name,
		Kind:          h.Kind.String(),
		Frequency:     h.Frequency.String(),
		Target:        h.Target(),
		Unit:          h.Unit(),
		Current:       h.Value.Serialize(),
		Progress:      h.Value.ProgressFraction(),
		ProgressLabel: h.Value.ProgressLabel(),
		Streak:        h.Streak,
		IsCompleted:   h.IsCompleted,
		LastUpdated:   domain.FormatDate(h.LastUpdated),
		Period:        domain.PeriodKey(h.LastUpdated, h.Frequency),
	}
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("", h.Create)
		habits.GET("", h.List)
		habits.GET("/summary", h.Summary)
		habits.GET("/:id", h.Get)
		habits.POST("/:id/progress", h.RecordProgress)
		habits.DELETE("/:id", h.Delete)
	}
}

func ownerFrom(c *gin.Context) (int64, bool) {
	ownerID, ok := middleware.GetOwnerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "owner context missing"})
	}
	return ownerID, ok
}

func habitIDFrom(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid habit id"})
		return 0, false
	}
	return id, true
}

// Create godoc
// @Summary      Create a habit
// @Tags         habits
// @Accept       json
// @Produce      json
// @Param        habit  body      createHabitRequest  true  "New habit"
// @Success      201    {object}  habitResponse
// @Failure      400    {object}  errorResponse
// @Failure      503    {object}  errorResponse
// @Security     BearerAuth
// @Router       /habits [post]
func (h *HabitHandler) Create(c *gin.Context) {
	ownerID, ok := ownerFrom(c)
	if !ok {
		return
	}

	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	kind, err := domain.ParseKind(req.Kind)
	if err != nil {
		respondError(c, err)
		return
	}
	freq, err := domain.ParseFrequency(req.Frequency)
	if err != nil {
		respondError(c, err)
		return
	}

	habit, err := h.svc.Create(c.Request.Context(), services.CreateHabitInput{
		OwnerID:       ownerID,
		Name:          req.Name,
		Kind:          kind,
		Frequency: freq,
		Target:        req.Target,
		Unit:          req.Unit,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toResponse(habit))
}

// List godoc
// @Summary      List habits as of today
// @Description  Habits whose period ended are rolled over and written back before they are returned.
// @Tags         habits
// @Produce      json
// @Success      200  {array}   habitResponse
// @Failure      500  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Security     BearerAuth
// @Router       /habits [get]
func (h *HabitHandler) List(c *gin.Context) {
	ownerID, ok := ownerFrom(c)
	if !ok {
		return
	}

	habits, err := h.svc.ListForOwner(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]habitResponse, 0, len(habits))
	for _, habit := range habits {
		out = append(out, toResponse(habit))
	}
	c.JSON(http.StatusOK, out)
}

// Summary godoc
// @Summary      Owner statistics
// @Tags         habits
// @Produce      json
// @Success      200  {object}  domain.Summary
// @Failure      503  {object}  errorResponse
// @Security     BearerAuth
// @Router       /habits/summary [get]
func (h *HabitHandler) Summary(c *gin.Context) {
	ownerID, ok := ownerFrom(c)
	if !ok {
		return
	}

	summary, err := h.svc.Summary(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Get godoc
// @Summary      Get one habit
// @Tags         habits
// @Produce      json
// @Param        id   path      int  true  "Habit ID"
// @Success      200  {object}  habitResponse
// @Failure      404  {object}  errorResponse
// @Security     BearerAuth
// @Router       /habits/{id} [get]
func (h *HabitHandler) Get(c *gin.Context) {
	ownerID, ok := ownerFrom(c)
	if !ok {
		return
	}
	id, ok := habitIDFrom(c)
	if !ok {
		return
	}

	habit, err := h.svc.Get(c.Request.Context(), id, ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(habit))
}

// RecordProgress godoc
// @Summary      Record progress
// @Description  Actions: add_count, add_minutes, set_elapsed, complete_session.
// @Tags         habits
// @Accept       json
// @Produce      json
// @Param        id        path      int              true  "Habit ID"
// @Param        progress  body      progressRequest  true  "Progress action"
// @Success      200       {object}  habitResponse
// @Failure      400       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Security     BearerAuth
// @Router       /habits/{id}/progress [post]
func (h *HabitHandler) RecordProgress(c *gin.Context) {
	ownerID, ok := ownerFrom(c)
	if !ok {
		return
	}
	id, ok := habitIDFrom(c)
	if !ok {
		return
	}

	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	action, err := domain.ParseActionType(req.Action)
	if err != nil {
		respondError(c, err)
		return
	}

	habit, err := h.svc.RecordProgress(c.Request.Context(), services.RecordProgressInput{
		HabitID: id,
		OwnerID: ownerID,
		Action:        domain.ProgressAction{Type: action, Amount: req.Amount},
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(habit))
}

// Delete godoc
// @Summary      Delete a habit
// @Tags         habits
// @Param        id   path  int  true  "Habit ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Security     BearerAuth
// @Router       /habits/{id} [delete]
func (h *HabitHandler) Delete(c *gin.Context) {
	ownerID, ok := ownerFrom(c)
	if !ok {
		return
	}
	id, ok := habitIDFrom(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, ownerID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
