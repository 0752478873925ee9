package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&ErrEmailAlreadyExists{Email: "a@b.c"}, http.StatusConflict},
		{&ErrInvalidCredentials{}, http.StatusUnauthorized},
		{&ErrPasswordMismatch{}, http.StatusUnauthorized},
		{&ErrUserNotFound{UserID: uuid.New()}, http.StatusNotFound},
		{&ErrValidation{Field: "Email", Message: "email"}, http.StatusBadRequest},
		{fmt.Errorf("handler: %w", &ErrValidation{Message: "x"}), http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestPublicMessage_HidesInternalErrors(t *testing.T) {
	assert.Equal(t, "internal server error", publicMessage(errors.New("pq: connection refused")))
	assert.Equal(t, "invalid email or password", publicMessage(&ErrInvalidCredentials{}))
}
