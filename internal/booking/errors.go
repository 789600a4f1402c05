package booking

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized = errors.New("not authorized")
	ErrConflict     = errors.New("slot already booked")
)

// ValidationError is returned before any storage access.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

// StorageError wraps failures of the conflict query or the insert.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }

// Result: единый ответ для формы: успех + сообщение пользователю
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Outcome converts an error from Create into the result shown to the user.
func Outcome(err error) Result {
	if err == nil {
		return Result{Success: true, Message: "Reserva creada exitosamente"}
	}

	var verr *ValidationError
	switch {
	case errors.Is(err, ErrUnauthorized):
		return Result{Message: "No autorizado"}
	case errors.As(err, &verr):
		return Result{Message: verr.Msg}
	case errors.Is(err, ErrConflict):
		return Result{Message: "Ya existe una reserva en ese horario"}
	default:
		return Result{Message: "Error al crear la reserva"}
	}
}
