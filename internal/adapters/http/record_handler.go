package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/unimedia/agencysite/internal/domain/entities"
	"github.com/unimedia/agencysite/internal/infrastructure/logger"
	"github.com/unimedia/agencysite/internal/ports"
)

// RecordHandler handles the generic collection routes
type RecordHandler struct {
	recordService ports.RecordService
	logger        *logger.Logger
}

// NewRecordHandler creates a new record handler
func NewRecordHandler(recordService ports.RecordService, logger *logger.Logger) *RecordHandler {
	return &RecordHandler{
		recordService: recordService,
		logger:        logger,
	}
}

// ListRecords godoc
// @Summary List records
// @Description Return every record of a collection in stored order
// @Tags records
// @Produce json
// @Param type path string true "Entity type" Enums(work, skills, contact, social_links)
// @Success 200 {array} object
// @Failure 404 {object} ports.ErrorResponse
// @Router /{type} [get]
func (h *RecordHandler) ListRecords(c echo.Context) error {
	entityType, err := entities.ParseEntityType(c.Param("type"))
	if err != nil {
		return httpError(h.logger, err)
	}

	records, err := h.recordService.List(c.Request().Context(), entityType)
	if err != nil {
		return httpError(h.logger, err)
	}

	return c.JSON(http.StatusOK, records)
}

// CreateRecord godoc
// @Summary Create a record
// @Description Append a record to a collection, assigning a millisecond timestamp id when none is given
// @Tags records
// @Accept json
// @Produce json
// @Param type path string true "Entity type" Enums(work, skills, contact, social_links)
// @Param request body object true "Record"
// @Success 200 {object} ports.ItemResponse
// @Failure 400 {object} ports.ErrorResponse
// @Failure 404 {object} ports.ErrorResponse
// @Failure 500 {object} ports.ErrorResponse
// @Router /{type} [post]
func (h *RecordHandler) CreateRecord(c echo.Context) error {
	entityType, err := entities.ParseEntityType(c.Param("type"))
	if err != nil {
		return httpError(h.logger, err)
	}

	record, err := decodeRecord(c.Request().Body)
	if err != nil {
		return httpError(h.logger, err)
	}

	item, err := h.recordService.Create(c.Request().Context(), entityType, record)
	if err != nil {
		return httpError(h.logger, err)
	}

	return c.JSON(http.StatusOK, ports.ItemResponse{
		Success: true,
		Item:    item,
		Message: "Item added successfully",
	})
}

// UpdateRecord godoc
// @Summary Update a record
// @Description Shallow-merge the given fields into the record with the given id
// @Tags records
// @Accept json
// @Produce json
// @Param type path string true "Entity type" Enums(work, skills, contact, social_links)
// @Param id path string true "Record ID"
// @Param request body object true "Fields to change"
// @Success 200 {object} ports.ItemResponse
// @Failure 400 {object} ports.ErrorResponse
// @Failure 404 {object} ports.ErrorResponse
// @Router /{type}/{id} [put]
func (h *RecordHandler) UpdateRecord(c echo.Context) error {
	entityType, err := entities.ParseEntityType(c.Param("type"))
	if err != nil {
		return httpError(h.logger, err)
	}

	// A bad body is only reported once the id is known to exist, so a missing
	// record is a 404 whatever was sent.
	patch, decodeErr := decodePatch(c.Request().Body)

	item, err := h.recordService.Update(c.Request().Context(), entityType, c.Param("id"), patch)
	if err != nil {
		if decodeErr != nil && errors.Is(err, entities.ErrInvalidItem) {
			return httpError(h.logger, decodeErr)
		}
		return httpError(h.logger, err)
	}

	return c.JSON(http.StatusOK, ports.ItemResponse{
		Success: true,
		Item:    item,
		Message: "Item updated successfully",
	})
}

// DeleteRecord godoc
// @Summary Delete a record
// @Tags records
// @Produce json
// @Param type path string true "Entity type" Enums(work, skills, contact, social_links)
// @Param id path string true "Record ID"
// @Success 200 {object} ports.MessageResponse
// @Failure 404 {object} ports.ErrorResponse
// @Router /{type}/{id} [delete]
func (h *RecordHandler) DeleteRecord(c echo.Context) error {
	entityType, err := entities.ParseEntityType(c.Param("type"))
	if err != nil {
		return httpError(h.logger, err)
	}

	if err := h.recordService.Delete(c.Request().Context(), entityType, c.Param("id")); err != nil {
		return httpError(h.logger, err)
	}

	return c.JSON(http.StatusOK, ports.MessageResponse{
		Success: true,
		Message: "Item deleted successfully",
	})
}

var errEmptyBody = fmt.Errorf("%w: empty body", entities.ErrInvalidItem)

// decodeRecord reads a JSON object body. Anything else, including an empty body, is invalid.
func decodeRecord(body io.Reader) (entities.Record, error) {
	if body == nil {
		return nil, errEmptyBody
	}

	dec := json.NewDecoder(body)
	dec.UseNumber()

	var payload interface{}
	if err := dec.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errEmptyBody
		}
		return nil, invalidJSONError{err: err}
	}

	obj, ok := payload.(map[string]interface{})
	if !ok || obj == nil {
		return nil, entities.ErrInvalidItem
	}

	return entities.Record(obj), nil
}

// decodePatch is decodeRecord for updates, where an empty body is an empty patch
func decodePatch(body io.Reader) (entities.Record, error) {
	patch, err := decodeRecord(body)
	if errors.Is(err, errEmptyBody) {
		return entities.Record{}, nil
	}
	return patch, err
}

type invalidJSONError struct {
	err error
}

func (e invalidJSONError) Error() string {
	return "invalid JSON body: " + e.err.Error()
}

func (e invalidJSONError) Unwrap() error {
	return entities.ErrInvalidItem
}
