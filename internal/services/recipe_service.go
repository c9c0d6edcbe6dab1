// Package services – RecipeService
//
// This file implements RecipeService, the application-level component that
// owns the submission flow: it normalizes and validates input, stores the
// uploaded image, asks the AI gateway to classify it, builds the recipe
// prompt, requests the generated text, and persists the resulting chat
// record. Provider failures never abort a submission — they are encoded into
// the stored result text so the user is still redirected to a detail view.
//
// Observability: public methods are OpenTelemetry-instrumented; spans include
// record identifiers and input shape where applicable.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/foodlens/recipe-chat/internal/ai"
	"github.com/foodlens/recipe-chat/internal/domain"
	"github.com/foodlens/recipe-chat/internal/uploads"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// geminiErrPrefix is the literal prefix stored in Result when a provider
	// call fails. Browsing code and tests rely on this exact string.
	geminiErrPrefix = "Gemini API Error: "

	// Warning texts computed during submission. At most one is active per
	// submission; the "not recognized" warning always wins over the mismatch
	// warning.
	warnUnrecognized = "Warning: Uploaded image is not recognized as fruit, meal, snack, or juice."
	warnMismatch     = "Warning: Uploaded image category differs from entered text."
)

// ChatRepo defines the repository contract required by RecipeService.
type ChatRepo interface {
	// InsertChat persists a new record and returns it with the assigned id.
	InsertChat(ctx context.Context, db *gorm.DB, foodName string, imageFilename *string, result string) (*domain.ChatRecord, error)

	// GetChat fetches a record by id, returning gorm.ErrRecordNotFound when missing.
	GetChat(ctx context.Context, db *gorm.DB, id int64) (*domain.ChatRecord, error)

	// ListChats returns all records, newest (highest id) first.
	ListChats(ctx context.Context, db *gorm.DB) ([]domain.ChatRecord, error)

	// CountChats returns the total number of records for pagination.
	CountChats(ctx context.Context, db *gorm.DB) (int64, error)

	// ListChatsPage returns a page of records, newest first.
	ListChatsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.ChatRecord, error)
}

// Upload is an in-memory copy of a user-submitted file.
type Upload struct {
	Filename string
	MIMEType string
	Data     []byte
}

// SubmitOutcome is the result of a successful submission: the persisted
// record plus the classification warning, if one was computed. The warning
// is informational only; per current behavior it is not carried across the
// post-submit redirect.
type SubmitOutcome struct {
	Chat    *domain.ChatRecord
	Warning string
}

// RecipeService coordinates the submission flow and record retrieval.
type RecipeService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the chat record repository used by this service.
	Repo ChatRepo
	// Gateway is the AI provider boundary (classification + generation).
	Gateway ai.Gateway
	// Uploads persists user-submitted images.
	Uploads *uploads.Store
}

// NewRecipeService constructs a RecipeService with its dependencies. The
// gateway's availability is decided at construction time by the caller
// (ai.NewGateway); no global state is consulted.
func NewRecipeService(db *gorm.DB, repo ChatRepo, gw ai.Gateway, store *uploads.Store) *RecipeService {
	return &RecipeService{DB: db, Repo: repo, Gateway: gw, Uploads: store}
}

// Submit runs one submission end to end.
//
// Policy, in order:
//  1. The food name is lower-cased; empty means "not provided".
//  2. When both the name and a usable file are absent, ErrEmptySubmission is
//     returned with zero side effects. A file whose name sanitizes to ""
//     counts as absent.
//  3. An uploaded file is saved under its sanitized name (silent overwrite on
//     collision) and classified. Category "other" produces the unrecognized
//     warning; otherwise a category that is not a substring of the entered
//     name produces the mismatch warning.
//  4. Exactly one of three prompt templates is built from the present inputs.
//  5. The generation call runs with the prompt and, when present, the image.
//  6. A generation failure is captured as "Gemini API Error: {message}" and
//     stored as the result — the submission still succeeds.
//  7. The record is inserted and returned with its assigned id.
func (s *RecipeService) Submit(ctx context.Context, foodName string, file *Upload) (*SubmitOutcome, error) {
	tr := otel.Tracer("services/RecipeService")
	ctx, span := tr.Start(ctx, "Submit",
		trace.WithAttributes(
			attribute.Bool("has_file", file != nil),
		),
	)
	defer span.End()

	foodName = strings.ToLower(foodName)

	var sanitized string
	if file != nil && file.Filename != "" {
		sanitized = uploads.SanitizeFilename(file.Filename)
	}

	if foodName == "" && sanitized == "" {
		return nil, ErrEmptySubmission
	}

	var (
		warning  string
		category ai.Category
	)
	if sanitized != "" {
		if _, err := s.Uploads.Save(sanitized, file.Data); err != nil {
			return nil, err
		}

		category = s.Gateway.ClassifyImage(ctx, file.Data, mimeOrDefault(file.MIMEType))
		if category == ai.CategoryOther {
			warning = warnUnrecognized
		} else if foodName != "" && !strings.Contains(foodName, string(category)) {
			warning = warnMismatch
		}
		span.SetAttributes(attribute.String("image.category", string(category)))
	}

	prompt := buildPrompt(foodName, sanitized != "", category)

	var image *ai.ImagePart
	if sanitized != "" {
		image = &ai.ImagePart{MIMEType: mimeOrDefault(file.MIMEType), Data: file.Data}
	}

	result, err := s.Gateway.GenerateText(ctx, prompt, image)
	if err != nil {
		result = geminiErrPrefix + err.Error()
	}

	var imageName *string
	if sanitized != "" {
		imageName = &sanitized
	}
	rec, err := s.Repo.InsertChat(ctx, s.DB, foodName, imageName, result)
	if err != nil {
		return nil, err
	}
	return &SubmitOutcome{Chat: rec, Warning: warning}, nil
}

// Get returns a single record by id, or ErrChatNotFound.
func (s *RecipeService) Get(ctx context.Context, id int64) (*domain.ChatRecord, error) {
	rec, err := s.Repo.GetChat(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}
	return rec, nil
}

// History returns all records, newest first.
func (s *RecipeService) History(ctx context.Context) ([]domain.ChatRecord, error) {
	return s.Repo.ListChats(ctx, s.DB)
}

// ListPage returns a page of records and the total count. It applies
// defaults for invalid page/pageSize.
func (s *RecipeService) ListPage(ctx context.Context, page, pageSize int) ([]domain.ChatRecord, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := s.Repo.CountChats(ctx, s.DB)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.ChatRecord{}, 0, nil
	}

	items, err := s.Repo.ListChatsPage(ctx, s.DB, offset, pageSize)
	return items, total, err
}

// DisplayTitle derives a human-readable caption for a record, used by the
// history listing: the title-cased food name when present, otherwise the
// uploaded image's filename, otherwise a generic fallback.
func DisplayTitle(rec domain.ChatRecord) string {
	if name := strings.TrimSpace(rec.FoodName); name != "" {
		return cases.Title(language.English).String(name)
	}
	if rec.HasImage() {
		return *rec.ImageFilename
	}
	return "Untitled submission"
}

// mimeOrDefault falls back to image/jpeg when the browser supplied no
// content type for the uploaded part.
func mimeOrDefault(mime string) string {
	if mime == "" {
		return "image/jpeg"
	}
	return mime
}
