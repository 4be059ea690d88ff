package validators

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "qa-review-system.com/qa-review-system/internal/data_models"
)

func ValidateAddLinkRequest(r *dto.AddLinkRequest) error {
	if r.URL == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "url is required")
	}
	return nil
}

func ValidateBulkImportRequest(r *dto.BulkImportRequest) error {
	if len(r.URLs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "urls array is required")
	}
	return nil
}

func ValidateClaimRequest(r *dto.ClaimRequest) error {
	if r.AccountID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "please select an account")
	}
	if r.URL == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "please select a drive video")
	}
	return nil
}

func ValidateSubmitStepRequest(r *dto.SubmitStepRequest) error {
	if r.TaskID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "task id is required")
	}
	if r.Step <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "step must be a positive step number")
	}
	if r.Checks == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "checks must be a key to boolean mapping")
	}
	return nil
}

func ValidateFinalizeRequest(r *dto.FinalizeRequest) error {
	if r.TaskID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "task id is required")
	}
	return nil
}
