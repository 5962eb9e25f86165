package envelope

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonCT = "application/json; charset=utf-8"

type payload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestInspect(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		want        Shape
	}{
		{"coded", jsonCT, `{"code":200,"status":"OK","data":{"id":"1"}}`, ShapeCoded},
		{"coded with null data", jsonCT, `{"code":409,"status":"CONFLICT","data":null,"error":"dup"}`, ShapeCoded},
		{"code without data is unknown", jsonCT, `{"code":200}`, ShapeUnknown},
		{"string code is unknown", jsonCT, `{"code":"200","data":{}}`, ShapeUnknown},
		{"canonical", jsonCT, `{"success":false,"error":{"code":"X","message":"Y"}}`, ShapeCanonical},
		{"boolean success wins over code", jsonCT, `{"success":true,"code":500,"data":{}}`, ShapeCanonical},
		{"array", jsonCT, `[1,2]`, ShapeUnknown},
		{"empty body", jsonCT, ``, ShapeEmpty},
		{"invalid json", jsonCT, `{"code":`, ShapeEmpty},
		{"not json", "text/plain", `{"success":true}`, ShapeEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Inspect(tt.contentType, []byte(tt.body)).Shape)
		})
	}
}

func TestNormalize_CodedSuccess(t *testing.T) {
	// success follows the body code, not the transport status
	env, err := Normalize[payload](http.StatusOK, jsonCT, []byte(`{"code":201,"status":"CREATED","data":{"id":"u1","name":"Ada"}}`))
	require.NoError(t, err)

	assert.True(t, env.Success)
	require.NotNil(t, env.Data)
	assert.Equal(t, payload{ID: "u1", Name: "Ada"}, *env.Data)
	assert.Nil(t, env.Error)
}

func TestNormalize_CodedFailureOn2xx(t *testing.T) {
	env, err := Normalize[payload](http.StatusOK, jsonCT, []byte(`{"code":409,"data":null,"error":{"code":"DUP","message":"exists"}}`))
	require.NoError(t, err)

	assert.False(t, env.Success)
	assert.Nil(t, env.Data)
	require.NotNil(t, env.Error)
	assert.Equal(t, "DUP", env.Error.Code)
	assert.Equal(t, "exists", env.Error.Message)
}

func TestNormalize_CodedErrorFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode string
		wantMsg  string
	}{
		{"nested without message uses status", `{"code":422,"status":"ALREADY_INACTIVE","data":null,"error":{"code":"AI"}}`, "AI", "ALREADY_INACTIVE"},
		{"nested without code uses body code", `{"code":422,"status":"X","data":null,"error":{"message":"gone"}}`, "422", "gone"},
		{"numeric nested code", `{"code":400,"data":null,"error":{"code":4001,"message":"m"}}`, "4001", "m"},
		{"string error", `{"code":409,"status":"CONFLICT","data":null,"error":"Email already exists"}`, "409", "Email already exists"},
		{"nothing usable", `{"code":500,"data":null,"error":{}}`, "500", "Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := Normalize[payload](http.StatusOK, jsonCT, []byte(tt.body))
			require.NoError(t, err)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
			assert.Equal(t, tt.wantMsg, env.Error.Message)
		})
	}
}

func TestNormalize_CanonicalPassThrough(t *testing.T) {
	env, err := Normalize[payload](http.StatusOK, jsonCT, []byte(`{"success":false,"error":{"code":"X","message":"Y"}}`))
	require.NoError(t, err)

	assert.Equal(t, Envelope[payload]{Success: false, Error: &Error{Code: "X", Message: "Y"}}, env)
}

func TestNormalize_UnknownShapeBecomesPayload(t *testing.T) {
	env, err := Normalize[[]int](http.StatusOK, jsonCT, []byte(`[1,2,3]`))
	require.NoError(t, err)

	assert.True(t, env.Success)
	require.NotNil(t, env.Data)
	assert.Equal(t, []int{1, 2, 3}, *env.Data)
}

func TestNormalize_EmptyBodyOnSuccess(t *testing.T) {
	for _, ct := range []string{jsonCT, "text/html", ""} {
		env, err := Normalize[payload](http.StatusCreated, ct, nil)
		require.NoError(t, err)
		assert.True(t, env.Success)
		assert.Nil(t, env.Data)
	}
}

func TestNormalize_Non2xx(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		wantMsg     string
	}{
		{"nested message", http.StatusConflict, jsonCT, `{"success":false,"error":{"code":"DUP","message":"exists"}}`, "exists"},
		{"string error", http.StatusConflict, jsonCT, `{"code":409,"status":"CONFLICT","error":"Email taken"}`, "Email taken"},
		{"top level message", http.StatusBadRequest, jsonCT, `{"message":"bad input"}`, "bad input"},
		{"status line", http.StatusBadGateway, "text/html", `<html>`, "502 Bad Gateway"},
		{"coded 2xx body still fails", http.StatusInternalServerError, jsonCT, `{"code":200,"data":{}}`, "500 Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize[payload](tt.status, tt.contentType, []byte(tt.body))
			require.Error(t, err)

			var reqErr *RequestError
			require.True(t, errors.As(err, &reqErr))
			assert.Equal(t, tt.status, reqErr.Status)
			assert.Equal(t, tt.wantMsg, reqErr.Message)
		})
	}
}

func TestNormalize_PayloadTypeMismatch(t *testing.T) {
	_, err := Normalize[payload](http.StatusOK, jsonCT, []byte(`{"code":200,"data":[1]}`))
	assert.Error(t, err)
}

func TestTransport(t *testing.T) {
	cause := errors.New("connection refused")
	err := Transport(cause)

	assert.Equal(t, "connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Zero(t, err.Status)
}
