package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"musicroombooking/internal/delivery/http/helpers"
	"musicroombooking/internal/domain"
)

// CreateParticipantRequest is the request body for POST /participants.
type CreateParticipantRequest struct {
	Alias string `json:"alias"`
}

// Validate implements helpers.Validator.
func (c CreateParticipantRequest) Validate() []string {
	if strings.TrimSpace(c.Alias) == "" {
		return []string{"alias is required"}
	}
	return nil
}

// ChangeStatusRequest is the request body for PUT /participants/{participantID}/status.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// Validate implements helpers.Validator.
func (c ChangeStatusRequest) Validate() []string {
	if !domain.ValidStatus(domain.ParticipantStatus(c.Status)) {
		return []string{"status must be one of pending, active, suspended"}
	}
	return nil
}

// ParticipantSuccessResponse is the success response envelope for participant endpoints.
type ParticipantSuccessResponse struct {
	Data  *domain.Participant `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

type ParticipantController struct {
	Logger  *slog.Logger
	Service domain.ParticipantService
}

func NewParticipantController(logger *slog.Logger, svc domain.ParticipantService) *ParticipantController {
	return &ParticipantController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateParticipant godoc
// @Summary Register a participant
// @Description Creates a participant in pending status. An administrator must activate the participant before they can book.
// @Tags participants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param participant body CreateParticipantRequest true "Participant alias"
// @Success 201 {object} controllers.ParticipantSuccessResponse "data contains the created participant"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /participants [post]
func (c *ParticipantController) CreateParticipant(w http.ResponseWriter, r *http.Request) {
	var req CreateParticipantRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	participant, err := c.Service.Create(r.Context(), req.Alias)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, participant)
}

// GetParticipant godoc
// @Summary Fetch a participant
// @Tags participants
// @Produce json
// @Param participantID path int true "Participant ID"
// @Success 200 {object} controllers.ParticipantSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /participants/{participantID} [get]
func (c *ParticipantController) GetParticipant(w http.ResponseWriter, r *http.Request) {
	participantID, ok := helpers.ParseIDPathValue(r, "participantID")
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid participantID")
		return
	}

	participant, err := c.Service.GetByID(r.Context(), participantID)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, participant)
}

// ChangeStatus godoc
// @Summary Change a participant's status
// @Description Moves a participant between pending, active, and suspended. Only active participants may book; suspending a participant keeps their booking history.
// @Tags participants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param participantID path int true "Participant ID"
// @Param status body ChangeStatusRequest true "New status"
// @Success 200 {object} controllers.ParticipantSuccessResponse "data contains the updated participant"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /participants/{participantID}/status [put]
func (c *ParticipantController) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	participantID, ok := helpers.ParseIDPathValue(r, "participantID")
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid participantID")
		return
	}
	var req ChangeStatusRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	participant, err := c.Service.ChangeStatus(r.Context(), participantID, domain.ParticipantStatus(req.Status))
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, participant)
}
