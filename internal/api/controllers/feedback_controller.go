package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"feedbackflow/internal/models/request_models"
	"feedbackflow/internal/services"
	"feedbackflow/pkg/utils"
)

const (
	msgSubmitted    = "Feedback submitted successfully!"
	msgSubmitFailed = "Failed to save feedback. Please try again later."
	msgListFailed   = "Failed to retrieve feedbacks. Please try again later."
)

type FeedbackController struct {
	feedbackService services.FeedbackServiceInterface
}

func NewFeedbackController(feedbackService services.FeedbackServiceInterface) *FeedbackController {
	return &FeedbackController{feedbackService: feedbackService}
}

// SubmitFeedback godoc
// @Summary Submit feedback
// @Description Store a name/email/message triple
// @Tags Feedback
// @Accept json
// @Produce json
// @Param request body request_models.SubmitFeedbackRequest true "Feedback payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /submit [post]
func (f *FeedbackController) SubmitFeedback(c *gin.Context) {
	// A body that is not JSON, or no body at all, carries no fields; the service
	// then reports missing_field.
	var req request_models.SubmitFeedbackRequest
	if c.ContentType() == binding.MIMEJSON {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			utils.RespondError(c, http.StatusBadRequest, utils.ErrKindInvalidPayload, "Invalid request payload")
			return
		}
	}

	err := f.feedbackService.SubmitFeedback(c.Request.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		utils.HandleServiceError(c, err, msgSubmitFailed)
		return
	}

	utils.RespondSuccess(c, nil, msgSubmitted)
}

// ListFeedbacks godoc
// @Summary List feedback
// @Description All stored feedback, ascending by id
// @Tags Feedback
// @Produce json
// @Success 200 {array} db_models.Feedback
// @Failure 500 {object} utils.APIResponse
// @Router /feedbacks [get]
func (f *FeedbackController) ListFeedbacks(c *gin.Context) {
	feedbacks, err := f.feedbackService.ListFeedbacks(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err, msgListFailed)
		return
	}

	c.JSON(http.StatusOK, feedbacks)
}
