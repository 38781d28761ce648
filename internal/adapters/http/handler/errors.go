package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ngocxb/caseflow/internal/core/cases"
	"github.com/ngocxb/caseflow/internal/core/customer"
	"github.com/ngocxb/caseflow/internal/core/employee"
	"github.com/ngocxb/caseflow/internal/core/evaluation"
	"github.com/ngocxb/caseflow/internal/core/taxonomy"
	"github.com/sirupsen/logrus"
)

type errorResponse struct {
	Error string `json:"error"`
}

var badRequestErrors = []error{
	cases.ErrInvalidID,
	cases.ErrInvalidKind,
	cases.ErrInvalidTitle,
	cases.ErrInvalidDescription,
	cases.ErrInvalidRequester,
	cases.ErrInvalidHandler,
	cases.ErrInvalidCaseType,
	cases.ErrInvalidStatus,
	cases.ErrDateOrder,
	cases.ErrCaseTypeInactive,
	evaluation.ErrInvalidRole,
	evaluation.ErrInvalidCategory,
	evaluation.ErrIncompleteAssessment,
	employee.ErrInvalidID,
	employee.ErrInvalidFullName,
	employee.ErrInvalidEmail,
	employee.ErrInvalidStatus,
	customer.ErrInvalidID,
	customer.ErrInvalidName,
	customer.ErrInvalidCode,
	customer.ErrInvalidStatus,
	taxonomy.ErrInvalidID,
	taxonomy.ErrInvalidKind,
	taxonomy.ErrInvalidName,
}

var notFoundErrors = []error{
	cases.ErrCaseNotFound,
	cases.ErrEmployeeNotFound,
	cases.ErrCustomerNotFound,
	cases.ErrCaseTypeNotFound,
	employee.ErrEmployeeNotFound,
	customer.ErrCustomerNotFound,
	taxonomy.ErrTypeNotFound,
}

var conflictErrors = []error{
	cases.ErrAlreadyClosed,
	employee.ErrEmailAlreadyExists,
	customer.ErrCodeAlreadyExists,
	taxonomy.ErrNameAlreadyExists,
}

// respondError maps domain errors to HTTP statuses. Unrecognized errors are
// logged and reported as 500 without leaking their message.
func respondError(c *gin.Context, log *logrus.Entry, err error) {
	for _, known := range badRequestErrors {
		if errors.Is(err, known) {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}
	for _, known := range notFoundErrors {
		if errors.Is(err, known) {
			c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
			return
		}
	}
	for _, known := range conflictErrors {
		if errors.Is(err, known) {
			c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
			return
		}
	}

	log.WithError(err).Error("unhandled error")
	c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: message})
}
