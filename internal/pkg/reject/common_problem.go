package reject

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

const (
	genericUnexpectedError string = "error.generic.unexpected"
	cannotParseParams      string = "error.generic.cannot-parse-params"
	invalidRequest         string = "error.generic.invalid-request-payload"
	cannotParseBody        string = "error.generic.cannot-parse-payload"
	genericNotFound        string = "error.generic.not-found"
	genericValidation      string = "error.generic.validation"
	genericForbidden       string = "error.generic.forbidden"
	genericNoUpdates       string = "error.generic.no-updates"
	genericConflict        string = "error.generic.conflict"
	upstreamUnavailable    string = "error.upstream.unavailable"
)

func RequestValidationProblem() Problem {
	return NewProblem().
		WithTitle("Invalid request payload").
		WithStatus(http.StatusBadRequest).
		WithCode(invalidRequest).
		Build()
}

func RequestParamsProblem() Problem {
	return NewProblem().
		WithTitle("Invalid request parameters").
		WithStatus(http.StatusBadRequest).
		WithCode(cannotParseParams).
		Build()
}

func BodyParseProblem() Problem {
	return NewProblem().
		WithTitle("Cannot read payload").
		WithStatus(http.StatusBadRequest).
		WithCode(cannotParseBody).
		Build()
}

func NotFoundProblem() Problem {
	return NewProblem().
		WithTitle("Record not found").
		WithStatus(http.StatusNotFound).
		WithCode(genericNotFound).
		Build()
}

// ValidationProblem names the offending field or constraint in its detail.
func ValidationProblem(detail string) Problem {
	return NewProblem().
		WithTitle("Validation failed").
		WithStatus(http.StatusBadRequest).
		WithCode(genericValidation).
		WithDetail(detail).
		Build()
}

func ForbiddenProblem(detail string) Problem {
	return NewProblem().
		WithTitle("Operation not allowed").
		WithStatus(http.StatusForbidden).
		WithCode(genericForbidden).
		WithDetail(detail).
		Build()
}

func NoUpdatesProblem() Problem {
	return NewProblem().
		WithTitle("No updates provided").
		WithStatus(http.StatusBadRequest).
		WithCode(genericNoUpdates).
		Build()
}

func ConflictProblem(detail string) Problem {
	return NewProblem().
		WithTitle("Conflicting state").
		WithStatus(http.StatusConflict).
		WithCode(genericConflict).
		WithDetail(detail).
		Build()
}

// UpstreamProblem reports a collaborator failure (mail relay, image search)
// as a class distinct from core validation failures.
func UpstreamProblem(err error) Problem {
	log.Warn().Err(err).Msg("Upstream collaborator failure while handling request")
	return NewProblem().
		WithTitle("Upstream service unavailable").
		WithStatus(http.StatusBadGateway).
		WithCode(upstreamUnavailable).
		Build()
}

func UnexpectedProblem(err error) Problem {
	log.Warn().Err(err).Msg("Unexpected error while handling request: " + err.Error())
	return NewProblem().
		WithTitle("Unexpected error").
		WithStatus(http.StatusInternalServerError).
		WithCode(genericUnexpectedError).
		Build()
}
