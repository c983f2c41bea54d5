package shopping_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	shopping "github.com/goliatone/go-shopping"
	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockContext mocks router.Context. Request inputs are stubbed through
// testify expectations; locals and the response side are stateful so tests
// can assert on what a handler produced.
type MockContext struct {
	mock.Mock
	NextCalled bool

	LocalsMock map[string]any

	StatusCode int
	JSONBody   any
	SentString string

	stdCtx context.Context
}

func NewMockContext() *MockContext {
	return &MockContext{
		LocalsMock: map[string]any{},
		stdCtx:     context.Background(),
	}
}

func (m *MockContext) Next() error {
	m.NextCalled = true
	return nil
}

func (m *MockContext) Context() context.Context {
	return m.stdCtx
}

func (m *MockContext) SetContext(ctx context.Context) {
	m.stdCtx = ctx
}

func (m *MockContext) Path() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) Method() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) Body() []byte {
	args := m.Called()
	return args.Get(0).([]byte)
}

func (m *MockContext) Status(code int) router.Context {
	m.StatusCode = code
	return m
}

func (m *MockContext) SendString(s string) error {
	m.SentString = s
	return nil
}

func (m *MockContext) Send(b []byte) error {
	m.SentString = string(b)
	return nil
}

func (m *MockContext) JSON(code int, val any) error {
	m.StatusCode = code
	m.JSONBody = val
	return nil
}

func (m *MockContext) NoContent(code int) error {
	m.StatusCode = code
	return nil
}

func (m *MockContext) Render(name string, bind any, layout ...string) error {
	if len(layout) > 0 {
		args := m.Called(name, bind, layout[0])
		return args.Error(0)
	}
	args := m.Called(name, bind)
	return args.Error(0)
}

func (m *MockContext) Redirect(path string, status ...int) error {
	if len(status) > 0 {
		args := m.Called(path, status)
		return args.Error(0)
	}
	args := m.Called(path)
	return args.Error(0)
}

func (m *MockContext) RedirectToRoute(name string, data router.ViewContext, status ...int) error {
	if len(status) > 0 {
		args := m.Called(name, data, status[0])
		return args.Error(0)
	}
	args := m.Called(name, data)
	return args.Error(0)
}

func (m *MockContext) RedirectBack(fallback string, status ...int) error {
	if len(status) > 0 {
		args := m.Called(fallback, status)
		return args.Error(0)
	}
	args := m.Called(fallback)
	return args.Error(0)
}

func (m *MockContext) SetHeader(key, val string) router.Context {
	m.Called(key, val)
	return m
}

func (m *MockContext) Header(key string) string {
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) Get(key string, defaultValue any) any {
	args := m.Called(key, defaultValue)
	return args.Get(0)
}

func (m *MockContext) GetBool(key string, defaultValue bool) bool {
	args := m.Called(key, defaultValue)
	return args.Bool(0)
}

func (m *MockContext) GetInt(key string, def int) int {
	args := m.Called(key, def)
	return args.Int(0)
}

func (m *MockContext) Set(key string, val any) {
	m.Called(key, val)
}

func (m *MockContext) Bind(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) BindJSON(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) BindXML(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) BindQuery(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) CookieParser(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) Cookie(cookie *router.Cookie) {
	m.Called(cookie)
}

func (m *MockContext) Cookies(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		args := m.Called(key, defaultValue[0])
		return args.String(0)
	}
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) Param(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		args := m.Called(key, defaultValue[0])
		return args.String(0)
	}
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) ParamsInt(key string, defaultValue int) int {
	args := m.Called(key, defaultValue)
	return args.Int(0)
}

func (m *MockContext) Query(key string, defaultValue string) string {
	args := m.Called(key, defaultValue)
	return args.String(0)
}

func (m *MockContext) QueryInt(key string, defaultValue int) int {
	args := m.Called(key, defaultValue)
	return args.Int(0)
}

func (m *MockContext) Queries() map[string]string {
	args := m.Called()
	return args.Get(0).(map[string]string)
}

func (m *MockContext) GetString(key string, defaultValue string) string {
	args := m.Called(key, defaultValue)
	return args.String(0)
}

func (m *MockContext) Locals(key any, value ...any) any {
	name, _ := key.(string)
	if len(value) > 0 {
		m.LocalsMock[name] = value[0]
		return value[0]
	}
	val, ok := m.LocalsMock[name]
	if !ok {
		return nil
	}
	return val
}

func (m *MockContext) LocalsMerge(key string, value map[string]any) map[string]any {
	existing, _ := m.LocalsMock[key].(map[string]any)
	if existing == nil {
		existing = map[string]any{}
	}
	for k, v := range value {
		existing[k] = v
	}
	m.LocalsMock[key] = existing
	return existing
}

func (m *MockContext) OriginalURL() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) OnNext(callback func() error) {
	m.Called(callback)
}

func (m *MockContext) Referer() string {
	args := m.Called()
	return args.String(0)
}

// fakeRouteInfo records the route name; nothing else on the RouteInfo
// surface is touched during registration.
type fakeRouteInfo struct {
	router.RouteInfo
	name string
}

func (f *fakeRouteInfo) SetName(name string) router.RouteInfo {
	f.name = name
	return f
}

type registeredRoute struct {
	handler router.HandlerFunc
	mw      []router.MiddlewareFunc
	info    *fakeRouteInfo
}

// call runs the handler with its middleware applied, the way the router
// dispatches a mounted route.
func (r registeredRoute) call(ctx router.Context) error {
	h := r.handler
	for i := len(r.mw) - 1; i >= 0; i-- {
		h = r.mw[i](h)
	}
	return h(ctx)
}

// fakeRegistrar records what RegisterUserRoutes/RegisterCartRoutes mount so
// tests can drive the registered composition, middleware included.
type fakeRegistrar struct {
	routes map[string]registeredRoute
}

func newFakeRegistrar() *fakeRegistrar {
	return &fakeRegistrar{routes: map[string]registeredRoute{}}
}

var _ shopping.RouteRegistrar = (*fakeRegistrar)(nil)

func (f *fakeRegistrar) mount(method, path string, h router.HandlerFunc, mw []router.MiddlewareFunc) router.RouteInfo {
	info := &fakeRouteInfo{}
	f.routes[method+" "+path] = registeredRoute{handler: h, mw: mw, info: info}
	return info
}

func (f *fakeRegistrar) Get(path string, h router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	return f.mount(http.MethodGet, path, h, mw)
}

func (f *fakeRegistrar) Post(path string, h router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	return f.mount(http.MethodPost, path, h, mw)
}

func (f *fakeRegistrar) Put(path string, h router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	return f.mount(http.MethodPut, path, h, mw)
}

func (f *fakeRegistrar) Delete(path string, h router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	return f.mount(http.MethodDelete, path, h, mw)
}

func (f *fakeRegistrar) route(t *testing.T, method, path string) registeredRoute {
	t.Helper()

	r, ok := f.routes[method+" "+path]
	require.True(t, ok, "route %s %s is not mounted", method, path)
	return r
}

// bindPayload copies src into the Bind destination via JSON, the closest
// stand-in for the adapter's body decoding.
func bindPayload(dst, src any) {
	data, err := json.Marshal(src)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		panic(err)
	}
}

// stubIdentity is a plain Identity value for tests
type stubIdentity struct {
	id    string
	email string
	name  string
}

func (s stubIdentity) ID() string    { return s.id }
func (s stubIdentity) Email() string { return s.email }
func (s stubIdentity) Name() string  { return s.name }

var _ shopping.Identity = stubIdentity{}
