package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"qa-review-system.com/qa-review-system/internal/constants"
	dto "qa-review-system.com/qa-review-system/internal/data_models"
	apperrors "qa-review-system.com/qa-review-system/internal/errors"
	"qa-review-system.com/qa-review-system/internal/http/validators"
	"qa-review-system.com/qa-review-system/internal/services"
)

type Handler struct {
	links         *services.LinkService
	tasks         *services.TaskService
	accounts      *services.AccountService
	reference     *services.ReferenceService
	resourceLinks map[string]string
}

func NewHandler(
	links *services.LinkService,
	tasks *services.TaskService,
	accounts *services.AccountService,
	reference *services.ReferenceService,
	resourceLinks map[string]string,
) *Handler {
	return &Handler{
		links:         links,
		tasks:         tasks,
		accounts:      accounts,
		reference:     reference,
		resourceLinks: resourceLinks,
	}
}

// appError maps service errors onto HTTP responses via the exception's
// status code.
func appError(err error) error {
	return echo.NewHTTPError(apperrors.StatusCode(err), err.Error())
}

func (h *Handler) AddLink(c echo.Context) error {
	var req dto.AddLinkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateAddLinkRequest(&req); err != nil {
		return err
	}

	link, err := h.links.Ingest(
		c.Request().Context(),
		req.URL,
		req.Title,
		constants.Priority(req.Priority),
	)
	if err != nil {
		return appError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"drive_link": link})
}

func (h *Handler) BulkImportLinks(c echo.Context) error {
	var req dto.BulkImportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateBulkImportRequest(&req); err != nil {
		return err
	}

	priority := constants.Priority(req.DefaultPriority)
	outcome := h.links.BulkIngest(c.Request().Context(), req.URLs, priority)

	return c.JSON(http.StatusOK, outcome)
}

func (h *Handler) ListLinks(c echo.Context) error {
	excludeCompleted := c.QueryParam("exclude_completed") == "true"

	links, err := h.links.List(c.Request().Context(), excludeCompleted)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list drive links")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":       len(links),
		"drive_links": links,
	})
}

func (h *Handler) UpdateLink(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateLinkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	fields := services.UpdateFields{
		Title:      req.Title,
		AssignedTo: req.AssignedTo,
	}
	if req.Status != nil {
		status := constants.LinkStatus(*req.Status)
		fields.Status = &status
	}
	if req.Priority != nil {
		priority := constants.Priority(*req.Priority)
		fields.Priority = &priority
	}

	link, err := h.links.Update(c.Request().Context(), id, fields)
	if err != nil {
		return appError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"drive_link": link})
}

func (h *Handler) DeleteLink(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.links.Delete(c.Request().Context(), id); err != nil {
		return appError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"deleted": id})
}

func (h *Handler) ListAccounts(c echo.Context) error {
	accounts, err := h.accounts.ListReviewable(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list accounts")
	}

	return c.JSON(http.StatusOK, echo.Map{"accounts": accounts})
}

func (h *Handler) ReferencePreview(c echo.Context) error {
	accountID, err := strconv.ParseUint(c.QueryParam("account"), 10, 32)
	if err != nil || accountID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "missing account parameter")
	}

	ref, err := h.reference.Resolve(c.Request().Context(), uint(accountID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to resolve reference video")
	}

	// A missing reference is an empty state for the UI, not an error.
	return c.JSON(http.StatusOK, echo.Map{"preview": ref})
}

func (h *Handler) ClaimTask(c echo.Context) error {
	var req dto.ClaimRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateClaimRequest(&req); err != nil {
		return err
	}

	task, err := h.tasks.Claim(c.Request().Context(), req.AccountID, req.URL)
	if err != nil {
		return appError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"task": task})
}

func (h *Handler) SubmitStep(c echo.Context) error {
	var req dto.SubmitStepRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateSubmitStepRequest(&req); err != nil {
		return err
	}

	err := h.tasks.SubmitStep(
		c.Request().Context(),
		req.TaskID,
		req.Step,
		req.Checks,
		req.Comments,
	)
	if err != nil {
		return appError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"saved": true})
}

func (h *Handler) FinalizeTask(c echo.Context) error {
	var req dto.FinalizeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateFinalizeRequest(&req); err != nil {
		return err
	}

	task, err := h.tasks.Finalize(
		c.Request().Context(),
		req.TaskID,
		req.FinalNotes,
		req.CompletedBy,
	)
	if err != nil {
		return appError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"task": task})
}

func (h *Handler) ListTasks(c echo.Context) error {
	list, err := h.tasks.ListTasks(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list qa tasks")
	}

	return c.JSON(http.StatusOK, list)
}

func (h *Handler) DownloadReport(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	filename, body, err := h.tasks.Report(c.Request().Context(), id)
	if err != nil {
		return appError(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}

func (h *Handler) QAConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"config": h.resourceLinks})
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}
