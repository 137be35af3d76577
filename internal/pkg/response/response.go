// Package response shapes every HTTP reply of the API. Handlers and the
// error middleware both emit the same flat envelope, so clients decode one
// shape regardless of outcome.
package response

import "github.com/gofiber/fiber/v3"

// SemanticResponse is the wire envelope. Status repeats the HTTP status code
// so the body stays meaningful when a proxy rewrites headers.
type SemanticResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

const (
	MessageOK                  = "ok"
	MessageBadRequest          = "bad request"
	MessageUnauthorized        = "unauthorized"
	MessageForbidden           = "forbidden"
	MessageNotFound            = "not found"
	MessageConflict            = "conflict"
	MessageUnprocessableEntity = "unprocessable entity"
	MessageInternalServerError = "internal server error"
	MessageError               = "error"
)

var defaultMessages = map[int]string{
	fiber.StatusOK:                  MessageOK,
	fiber.StatusCreated:             MessageOK,
	fiber.StatusBadRequest:          MessageBadRequest,
	fiber.StatusUnauthorized:        MessageUnauthorized,
	fiber.StatusForbidden:           MessageForbidden,
	fiber.StatusNotFound:            MessageNotFound,
	fiber.StatusConflict:            MessageConflict,
	fiber.StatusUnprocessableEntity: MessageUnprocessableEntity,
}

// Success writes a 2xx envelope. Data may be nil for acknowledgement-only
// endpoints such as skill deletion.
func Success(c fiber.Ctx, status int, message string, data any) error {
	return send(c, status, message, data)
}

// Error writes a non-2xx envelope. Data carries machine-readable detail when
// there is any, for example per-field validation errors.
func Error(c fiber.Ctx, status int, message string, data any) error {
	return send(c, status, message, data)
}

func send(c fiber.Ctx, status int, message string, data any) error {
	if status < 100 || status > 599 {
		status = fiber.StatusInternalServerError
	}
	if message == "" {
		message = messageFor(status)
	}
	return c.Status(status).JSON(SemanticResponse{Status: status, Message: message, Data: data})
}

func messageFor(status int) string {
	if msg, ok := defaultMessages[status]; ok {
		return msg
	}
	if status >= 500 {
		return MessageInternalServerError
	}
	return MessageError
}
