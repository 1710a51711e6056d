package handlers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ecosort/waste-api/internal/model"
	"github.com/ecosort/waste-api/internal/preprocess"
	"github.com/ecosort/waste-api/internal/waste"
)

// Engine is the inference handle shared read-only by all requests.
type Engine interface {
	Predict(input []float32) ([]float32, error)
}

// ErrNoFile tags requests that carry no usable upload. The other pipeline
// causes (decode, preprocess, inference) are wrapped with distinct prefixes
// so they stay apart in logs, but all of them surface to the caller as a
// 400 embedding the underlying text.
var ErrNoFile = errors.New("no file uploaded, use 'file' as the form field name")

type Handler struct {
	engine    Engine
	staticDir string
}

type Dependencies struct {
	Engine    Engine
	StaticDir string
}

func New(deps Dependencies) *Handler {
	return &Handler{
		engine:    deps.Engine,
		staticDir: deps.StaticDir,
	}
}

// Index serves the upload UI. A missing document degrades to an inline
// error page instead of taking the process down.
func (h *Handler) Index(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)

	page, err := os.ReadFile(filepath.Join(h.staticDir, "index.html"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("<h1>Error: index.html not found</h1>")
	}
	return c.Send(page)
}

// Predict classifies an uploaded waste image and reports the target bin
// with its servo angle.
func (h *Handler) Predict(c *fiber.Ctx) error {
	if h.engine == nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Model not loaded")
	}

	requestID := uuid.NewString()

	input, err := h.readImage(c)
	if err != nil {
		log.Warn().Err(err).Str("request_id", requestID).Msg("Rejected upload")
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Error processing image: %v", err))
	}

	probs, err := h.engine.Predict(input)
	if err != nil {
		log.Error().Err(err).Str("request_id", requestID).Msg("Inference failed")
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Error processing image: %v", err))
	}

	idx := model.Argmax(probs)
	category, err := waste.Label(idx)
	if err != nil {
		log.Error().Err(err).Str("request_id", requestID).Msg("Label lookup failed")
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Error processing image: %v", err))
	}

	bin, angle := waste.Classify(category)

	log.Info().
		Str("request_id", requestID).
		Str("class", category).
		Float32("confidence", probs[idx]).
		Str("bin", bin).
		Msg("Prediction served")

	return c.JSON(PredictionResponse{
		PredictedClass: category,
		Confidence:     probs[idx],
		Bin:            bin,
		ServoAngle:     angle,
	})
}

// Health reports whether the model handle is initialized. Always 200.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:      "healthy",
		ModelLoaded: h.engine != nil,
	})
}

// readImage extracts the uploaded file and converts it into model input.
func (h *Handler) readImage(c *fiber.Ctx) ([]float32, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, ErrNoFile
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	img, err := preprocess.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return preprocess.Normalize(img), nil
}
