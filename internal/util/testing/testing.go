package test_utils

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskhive/internal/util/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type TestResponse struct {
	Code int
	Body []byte
}

func MakeAPIRequest(
	router *gin.Engine,
	method string,
	path string,
	authHeader string,
	body any,
) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func MakeRequest(
	t *testing.T,
	router *gin.Engine,
	method string,
	path string,
	authHeader string,
	body any,
	expectedStatus int,
) TestResponse {
	t.Helper()

	w := MakeAPIRequest(router, method, path, authHeader, body)
	require.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())

	return TestResponse{Code: w.Code, Body: w.Body.Bytes()}
}

func MakeGetRequest(
	t *testing.T,
	router *gin.Engine,
	path string,
	authHeader string,
	expectedStatus int,
) TestResponse {
	t.Helper()
	return MakeRequest(t, router, http.MethodGet, path, authHeader, nil, expectedStatus)
}

func MakePostRequest(
	t *testing.T,
	router *gin.Engine,
	path string,
	authHeader string,
	body any,
	expectedStatus int,
) TestResponse {
	t.Helper()
	return MakeRequest(t, router, http.MethodPost, path, authHeader, body, expectedStatus)
}

// UnmarshalData decodes the uniform envelope and re-decodes its data
// payload into target.
func UnmarshalData(t *testing.T, body []byte, target any) {
	t.Helper()

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(body, &envelope))

	data, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, target))
}

func MakeGetRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	path string,
	authHeader string,
	expectedStatus int,
	target any,
) {
	t.Helper()

	resp := MakeGetRequest(t, router, path, authHeader, expectedStatus)
	UnmarshalData(t, resp.Body, target)
}

func MakePostRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	path string,
	authHeader string,
	body any,
	expectedStatus int,
	target any,
) {
	t.Helper()

	resp := MakePostRequest(t, router, path, authHeader, body, expectedStatus)
	UnmarshalData(t, resp.Body, target)
}
