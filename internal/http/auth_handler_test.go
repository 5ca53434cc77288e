package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogin_Success(t *testing.T) {
	handler := NewAuthHandler(factoryFor(&fakeAPI{}))

	recorder := httptest.NewRecorder()
	handler.Login(recorder, newRequest(http.MethodPost, "/api/v1/auth/login", LoginRequestDTO{
		Email:    "shopper@example.com",
		Password: "hunter2",
	}))

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestLogin_MissingFields(t *testing.T) {
	handler := NewAuthHandler(factoryFor(&fakeAPI{}))

	recorder := httptest.NewRecorder()
	handler.Login(recorder, newRequest(http.MethodPost, "/api/v1/auth/login", LoginRequestDTO{
		Email: "shopper@example.com",
	}))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestLogin_BadCredentials(t *testing.T) {
	handler := NewAuthHandler(factoryFor(&fakeAPI{loginErr: errors.New("nope")}))

	recorder := httptest.NewRecorder()
	handler.Login(recorder, newRequest(http.MethodPost, "/api/v1/auth/login", LoginRequestDTO{
		Email:    "shopper@example.com",
		Password: "wrong",
	}))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestLogout(t *testing.T) {
	handler := NewAuthHandler(factoryFor(&fakeAPI{}))

	recorder := httptest.NewRecorder()
	handler.Logout(recorder, newRequest(http.MethodPost, "/api/v1/auth/logout", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
}
