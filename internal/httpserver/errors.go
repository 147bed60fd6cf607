package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/minishop/internal/service"
	"github.com/Skotchmaster/minishop/internal/transport"
)

const internalErrorMessage = "internal server error"

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Error: msg})
}

// fail maps a service error onto a status and writes the error body. Only
// sentinel-wrapped errors carry their text to the client.
func fail(c echo.Context, l *slog.Logger, event string, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		l.Warn(event, "status", http.StatusBadRequest, "error", err)
		return badRequest(c, clientMessage(err, service.ErrValidation))
	case errors.Is(err, service.ErrConflict):
		l.Warn(event, "status", http.StatusBadRequest, "error", err)
		return badRequest(c, clientMessage(err, service.ErrConflict))
	case errors.Is(err, service.ErrInvalidCredentials):
		l.Warn(event, "status", http.StatusUnauthorized, "error", err)
		return c.JSON(http.StatusUnauthorized, transport.ErrorResponse{Error: clientMessage(err, nil)})
	default:
		l.Error(event, "status", http.StatusInternalServerError, "error", err)
		return c.JSON(http.StatusInternalServerError, transport.ErrorResponse{Error: internalErrorMessage})
	}
}

// clientMessage drops the trailing sentinel text and capitalizes the rest.
func clientMessage(err, sentinel error) string {
	msg := err.Error()
	if sentinel != nil {
		msg = strings.TrimSuffix(msg, ": "+sentinel.Error())
	}
	r, size := utf8.DecodeRuneInString(msg)
	if r == utf8.RuneError {
		return msg
	}
	return string(unicode.ToUpper(r)) + msg[size:]
}
