package rpc

import (
	"bytes"
	"context"
	stderr "errors"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oasislabs/sui-gateway/errors"
	"github.com/oasislabs/sui-gateway/log"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

var logger = log.NewLogrus(log.LogrusLoggerProperties{
	Level:  logrus.DebugLevel,
	Output: ioutil.Discard,
})

func mapEntityFactory() EntityFactory {
	return EntityFactoryFunc(func() interface{} { m := make(map[string]string); return &m })
}

func simpleHandlerFactory(factory EntityFactory, handler Handler) HttpMiddleware {
	return HttpMiddlewareRelay{handler: handler}
}

type HandlerEcho struct{}

func (m HandlerEcho) Handle(ctx context.Context, v interface{}) (interface{}, error) {
	return v, nil
}

type HttpMiddlewareRelay struct {
	handler Handler
}

func (m HttpMiddlewareRelay) ServeHTTP(req *http.Request) (interface{}, error) {
	return m.handler.Handle(req.Context(), nil)
}

type HttpMiddlewareOK struct {
	body interface{}
}

func (m HttpMiddlewareOK) ServeHTTP(req *http.Request) (interface{}, error) {
	return m.body, nil
}

type HttpMiddlewarePanic struct{}

func (m HttpMiddlewarePanic) ServeHTTP(req *http.Request) (interface{}, error) {
	panic("error")
}

type HttpMiddlewareErr struct {
	err error
}

func (m HttpMiddlewareErr) ServeHTTP(req *http.Request) (interface{}, error) {
	return nil, m.err
}

func setupRouter() *HttpRouter {
	return &HttpRouter{
		encoder: &JsonEncoder{},
		mux: map[string]*HttpRoute{
			"/path": NewHttpRoute(HttpRouteProps{
				Logger:  logger,
				Encoder: JsonEncoder{},
				Handlers: MethodHandlers{
					"GET": HttpMiddlewareOK{body: map[string]string{"result": "ok"}},
					"PUT": HttpMiddlewareOK{body: nil},
				},
			}),
			"/panic": NewHttpRoute(HttpRouteProps{
				Logger:   logger,
				Encoder:  JsonEncoder{},
				Handlers: MethodHandlers{"GET": HttpMiddlewarePanic{}},
			}),
			"/client": NewHttpRoute(HttpRouteProps{
				Logger:  logger,
				Encoder: JsonEncoder{},
				Handlers: MethodHandlers{"GET": HttpMiddlewareErr{
					err: errors.New(errors.ErrBadBase64TxBytes, stderr.New("illegal base64 data at input byte 3")),
				}},
			}),
			"/internal": NewHttpRoute(HttpRouteProps{
				Logger:  logger,
				Encoder: JsonEncoder{},
				Handlers: MethodHandlers{"GET": HttpMiddlewareErr{
					err: errors.New(errors.ErrSubmitTransaction, stderr.New("connection refused")),
				}},
			}),
			"/plain": NewHttpRoute(HttpRouteProps{
				Logger:   logger,
				Encoder:  JsonEncoder{},
				Handlers: MethodHandlers{"GET": HttpMiddlewareErr{err: stderr.New("secret")}},
			}),
		},
		logger: logger,
	}
}

func TestHttpRouterServeHTTPNoRoute(t *testing.T) {
	router := setupRouter()

	recorder := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/unknown", nil)

	router.ServeHTTP(recorder, req)

	s, err := ioutil.ReadAll(recorder.Body)

	assert.Nil(t, err)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "", string(s))
}

func TestHttpRouterServeHTTPNoMethod(t *testing.T) {
	router := setupRouter()

	recorder := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/path", nil)

	router.ServeHTTP(recorder, req)

	s, err := ioutil.ReadAll(recorder.Body)

	assert.Nil(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
	assert.Equal(t, "", string(s))
}

func TestHttpRouterServeHTTPOKNoBody(t *testing.T) {
	router := setupRouter()

	recorder := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/path", nil)

	router.ServeHTTP(recorder, req)

	s, err := ioutil.ReadAll(recorder.Body)

	assert.Nil(t, err)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "", string(s))
}

func TestHttpRouterServeHTTPOKWithBody(t *testing.T) {
	router := setupRouter()

	recorder := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/path", nil)

	router.ServeHTTP(recorder, req)

	s, err := ioutil.ReadAll(recorder.Body)

	assert.Nil(t, err)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "{\"result\":\"ok\"}\n", string(s))
}

func TestHttpRouterServeHTTPPanic(t *testing.T) {
	router := setupRouter()

	recorder := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/panic", nil)

	router.ServeHTTP(recorder, req)

	s, err := ioutil.ReadAll(recorder.Body)

	assert.Nil(t, err)
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, "{\"errorCode\":1000,\"category\":\"InternalError\",\"description\":\"Internal Error. Please check the status of the service.\"}\n", string(s))
}

func TestHttpRouterServeHTTPClientError(t *testing.T) {
	router := setupRouter()

	recorder := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/client", nil)
	req.Header.Add(HttpHeaderTraceID, "trace-1")

	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "trace-1", recorder.Header().Get(HttpHeaderTraceID))
	assert.JSONEq(t, `{
		"errorCode": 2001,
		"category": "ClientError",
		"description": "bad base64 for transaction bytes: illegal base64 data at input byte 3"
	}`, recorder.Body.String())
}

func TestHttpRouterServeHTTPInternalError(t *testing.T) {
	router := setupRouter()

	recorder := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/internal", nil)

	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotEmpty(t, recorder.Header().Get(HttpHeaderTraceID))
	assert.JSONEq(t, `{
		"errorCode": 1001,
		"category": "InternalError",
		"description": "submission failed: connection refused"
	}`, recorder.Body.String())
}

func TestHttpRouterServeHTTPPlainError(t *testing.T) {
	router := setupRouter()

	recorder := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/plain", nil)

	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "secret")
}

func TestHttpRouterStats(t *testing.T) {
	router := setupRouter()

	recorder := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/path", nil)
	router.ServeHTTP(recorder, req)

	s := router.Stats()
	assert.Contains(t, s, "/path")
	assert.True(t, router.HasRoute("/path"))
	assert.True(t, router.HasHandler("/path", "GET"))
	assert.False(t, router.HasHandler("/path", "POST"))
}

func TestHttpBinderBuildRouterNoEncoder(t *testing.T) {
	assert.Panics(t, func() {
		NewHttpBinder(HttpBinderProperties{
			Logger:         logger,
			HandlerFactory: HttpHandlerFactoryFunc(simpleHandlerFactory),
		})
	})
}

func TestHttpBinderBuildRouterNoLogger(t *testing.T) {
	assert.Panics(t, func() {
		NewHttpBinder(HttpBinderProperties{
			Encoder:        JsonEncoder{},
			HandlerFactory: HttpHandlerFactoryFunc(simpleHandlerFactory),
		})
	})
}

func TestHttpBinderBuildRouterNoFactory(t *testing.T) {
	assert.Panics(t, func() {
		NewHttpBinder(HttpBinderProperties{
			Encoder: JsonEncoder{},
			Logger:  logger,
		})
	})
}

func TestHttpBinderBuildRouter(t *testing.T) {
	binder := NewHttpBinder(HttpBinderProperties{
		Encoder:        JsonEncoder{},
		Logger:         logger,
		HandlerFactory: HttpHandlerFactoryFunc(simpleHandlerFactory),
	})

	binder.Bind("GET", "/path", HandlerEcho{}, nil)
	router := binder.Build()

	recorder := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/path", nil)

	router.ServeHTTP(recorder, req)

	s, err := ioutil.ReadAll(recorder.Body)

	assert.Nil(t, err)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "", string(s))
}

func TestHttpJsonHandlerContentLengthMissing(t *testing.T) {
	handler := NewHttpJsonHandler(HttpJsonHandlerProperties{
		Limit:   1024,
		Handler: HandlerEcho{},
		Logger:  logger,
		Factory: mapEntityFactory(),
	})

	req, _ := http.NewRequest("GET", "/path", nil)
	req.ContentLength = -1

	v, err := handler.ServeHTTP(req)

	assert.Equal(t, "[2005] error code ClientError with desc Content-length header missing from request.", err.Error())
	assert.Nil(t, v)
}

func TestHttpJsonHandlerContentLengthExceedsLimit(t *testing.T) {
	handler := NewHttpJsonHandler(HttpJsonHandlerProperties{
		Limit:   1024,
		Handler: HandlerEcho{},
		Logger:  logger,
		Factory: mapEntityFactory(),
	})

	req, _ := http.NewRequest("GET", "/path", bytes.NewBufferString(""))
	req.ContentLength = 2048

	v, err := handler.ServeHTTP(req)

	assert.Equal(t, "[2006] error code ClientError with desc Content-length exceeds request limit.", err.Error())
	assert.Nil(t, v)
}

func TestHttpJsonHandlerContentMissing(t *testing.T) {
	handler := NewHttpJsonHandler(HttpJsonHandlerProperties{
		Limit:   1024,
		Handler: HandlerEcho{},
		Logger:  logger,
		Factory: mapEntityFactory(),
	})

	req, _ := http.NewRequest("GET", "/path",
		bytes.NewBufferString("{\"hamburger\":\"rare\",\"potato\":\"fried\"}\n"))
	req.ContentLength = 38

	v, err := handler.ServeHTTP(req)

	assert.Equal(t, "[2007] error code ClientError with desc Content-type should be application/json.", err.Error())
	assert.Nil(t, v)
}

func TestHttpJsonHandlerOK(t *testing.T) {
	handler := NewHttpJsonHandler(HttpJsonHandlerProperties{
		Limit:   1024,
		Handler: HandlerEcho{},
		Logger:  logger,
		Factory: mapEntityFactory(),
	})

	req, _ := http.NewRequest("GET", "/path",
		bytes.NewBufferString("{\"hamburger\":\"rare\",\"potato\":\"fried\"}\n"))
	req.ContentLength = 38
	req.Header.Add("Content-type", "application/json")

	v, err := handler.ServeHTTP(req)
	m := *v.(*map[string]string)
	assert.Nil(t, err)
	assert.Equal(t, map[string]string{"hamburger": "rare", "potato": "fried"}, m)
}

func TestHttpJsonHandlerBadJSON(t *testing.T) {
	handler := NewHttpJsonHandler(HttpJsonHandlerProperties{
		Limit:   1024,
		Handler: HandlerEcho{},
		Logger:  logger,
		Factory: mapEntityFactory(),
	})

	req, _ := http.NewRequest("POST", "/path", bytes.NewBufferString("{\"hamburger\":"))
	req.Header.Add("Content-type", "application/json")

	v, err := handler.ServeHTTP(req)

	assert.Equal(t, "[2008] error code ClientError with desc Failed to deserialize body as JSON.", err.Error())
	assert.Nil(t, v)
}

func TestHttpCorsPreProcessorOptions(t *testing.T) {
	preProcessor := NewHttpCorsPreProcessor(HttpCorsPreProcessorProps{
		Enabled:        true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST"},
	})

	recorder := httptest.NewRecorder()
	req, _ := http.NewRequest("OPTIONS", "/path", nil)
	req.Header.Add("Origin", "http://localhost")
	req.Header.Add("Access-Control-Request-Method", "POST")

	next, _ := preProcessor.ServeHTTP(recorder, req)

	assert.False(t, next)
	assert.NotEmpty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
}

func TestHttpCorsPreProcessorDisabled(t *testing.T) {
	preProcessor := NewHttpCorsPreProcessor(HttpCorsPreProcessorProps{Enabled: false})

	req, _ := http.NewRequest("GET", "/path", nil)
	next, nextReq := preProcessor.ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, next)
	assert.Equal(t, req, nextReq)
}
