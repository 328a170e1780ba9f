package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestConfigHandlerGetDefaults(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewConfigHandler()
	req, _ := http.NewRequest(http.MethodGet, "/configurations", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Get(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"min_credits":12`)
	require.Contains(t, w.Body.String(), `"max_credits":18`)
}

func TestConfigHandlerPutRoundTrips(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewConfigHandler()
	payload := []byte(`{"min_credits":9,"max_credits":15,"required":[{"name":"Core"}]}`)
	putReq, _ := http.NewRequest(http.MethodPut, "/configurations", bytes.NewReader(payload))
	putW := httptest.NewRecorder()
	putC, _ := gin.CreateTestContext(putW)
	putC.Request = putReq

	handler.Put(putC)
	require.Equal(t, http.StatusOK, putW.Code)

	getReq, _ := http.NewRequest(http.MethodGet, "/configurations", nil)
	getW := httptest.NewRecorder()
	getC, _ := gin.CreateTestContext(getW)
	getC.Request = getReq

	handler.Get(getC)
	require.Equal(t, http.StatusOK, getW.Code)
	require.Contains(t, getW.Body.String(), `"min_credits":9`)
	require.Contains(t, getW.Body.String(), `"Core"`)
}

func TestConfigHandlerPutInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewConfigHandler()
	req, _ := http.NewRequest(http.MethodPut, "/configurations", bytes.NewReader([]byte(`{"min_credits":`)))
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Put(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
