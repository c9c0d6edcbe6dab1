// HTML page handlers.
//
// This file exposes the browser-facing routes:
//   - GET  /            (submission form)
//   - POST /            (submit; redirects to the new record's detail page)
//   - GET  /chat/{id}   (recipe detail view)
//   - GET  /history     (all submissions, newest first)
//
// Handlers are transport-thin: they parse the form, call the recipe service,
// and render templates or redirect.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foodlens/recipe-chat/internal/domain"
	"github.com/foodlens/recipe-chat/internal/http/middleware"
	"github.com/foodlens/recipe-chat/internal/services"
	"github.com/foodlens/recipe-chat/internal/utils"
)

// emptySubmissionMsg is shown on the form when neither input was provided.
const emptySubmissionMsg = "Please enter a food item or upload an image."

// RecipeService defines the application operations consumed by HTTP handlers.
//
// Implementations must be safe for concurrent use and honor the provided
// context for cancellation and timeouts.
type RecipeService interface {
	// Submit runs one submission end to end and returns the stored record.
	Submit(ctx context.Context, foodName string, file *services.Upload) (*services.SubmitOutcome, error)
	// Get fetches a record by id, returning services.ErrChatNotFound when missing.
	Get(ctx context.Context, id int64) (*domain.ChatRecord, error)
	// History returns all records, newest first.
	History(ctx context.Context) ([]domain.ChatRecord, error)
	// ListPage returns a page of records and the total count.
	ListPage(ctx context.Context, page, pageSize int) ([]domain.ChatRecord, int64, error)
}

// Handlers groups the HTML page and JSON API endpoints.
type Handlers struct {
	svc RecipeService
}

// New constructs a Handlers instance bound to the given service.
func New(svc RecipeService) *Handlers {
	return &Handlers{svc: svc}
}

// historyItem is the view model for one row of the history page.
type historyItem struct {
	ID        int64
	Title     string
	Timestamp string
	HasImage  bool
}

// GetIndex renders the submission form.
func (h *Handlers) GetIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "add", gin.H{})
}

// PostSubmit handles a form submission with an optional image upload.
//
// On success it redirects (303) to the new record's detail page. An empty
// submission re-renders the form with a validation message; any other failure
// is a server error rendered on the form.
func (h *Handlers) PostSubmit(c *gin.Context) {
	foodName := c.PostForm("food_name")

	var upload *services.Upload
	if fh, err := c.FormFile("food_image"); err == nil && fh != nil && fh.Filename != "" {
		f, err := fh.Open()
		if err != nil {
			c.HTML(http.StatusBadRequest, "add", gin.H{"Error": "Could not read the uploaded file."})
			return
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			c.HTML(http.StatusBadRequest, "add", gin.H{"Error": "Could not read the uploaded file."})
			return
		}
		upload = &services.Upload{
			Filename: fh.Filename,
			MIMEType: fh.Header.Get("Content-Type"),
			Data:     data,
		}
	}

	outcome, err := h.svc.Submit(c.Request.Context(), foodName, upload)
	if err != nil {
		if errors.Is(err, services.ErrEmptySubmission) {
			c.HTML(http.StatusBadRequest, "add", gin.H{"Error": emptySubmissionMsg})
			return
		}
		middleware.LoggerFrom(c).Error().Err(err).Msg("submission failed")
		c.HTML(http.StatusInternalServerError, "add", gin.H{
			"Error": "Something went wrong. Please try again.",
		})
		return
	}

	if outcome.Warning != "" {
		middleware.LoggerFrom(c).Warn().
			Int64("chat_id", outcome.Chat.ID).
			Msg(outcome.Warning)
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/chat/%d", outcome.Chat.ID))
}

// GetChatPage renders the detail view for one record. A non-numeric id is a
// 404; a well-formed id with no record renders the page without a chat.
func (h *Handlers) GetChatPage(c *gin.Context) {
	id, okID := utils.ParseID(c.Param("id"))
	if !okID {
		c.String(http.StatusNotFound, "404 page not found")
		return
	}

	rec, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrChatNotFound) {
			c.HTML(http.StatusOK, "view", gin.H{"Chat": nil})
			return
		}
		middleware.LoggerFrom(c).Error().Err(err).Int64("chat_id", id).Msg("load chat failed")
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	c.HTML(http.StatusOK, "view", gin.H{
		"Chat":  rec,
		"Title": services.DisplayTitle(*rec),
	})
}

// GetHistory renders all submissions, newest first.
func (h *Handlers) GetHistory(c *gin.Context) {
	recs, err := h.svc.History(c.Request.Context())
	if err != nil {
		middleware.LoggerFrom(c).Error().Err(err).Msg("load history failed")
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	items := make([]historyItem, 0, len(recs))
	for _, r := range recs {
		items = append(items, historyItem{
			ID:        r.ID,
			Title:     services.DisplayTitle(r),
			Timestamp: r.Timestamp.Format("2006-01-02 15:04"),
			HasImage:  r.HasImage(),
		})
	}

	c.HTML(http.StatusOK, "history", gin.H{"Items": items})
}
