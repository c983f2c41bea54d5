package shopping

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// UserControllerRoutes are the paths the controller mounts its handlers on
type UserControllerRoutes struct {
	Users     string
	Me        string
	UserByID  string
	Login     string
	Logout    string
	Recommend string
}

// UserController serves the user account surface: registration, lookup,
// login, logout, and product recommendations.
type UserController struct {
	Debug        bool
	Logger       Logger
	Repo         RepositoryManager
	Auther       *Auther
	Recommender  Recommender
	Routes       *UserControllerRoutes
	ErrorHandler func(router.Context, error) error
}

type UserControllerOption func(*UserController) *UserController

// WithControllerLogger sets the controller logger
func WithControllerLogger(logger Logger) UserControllerOption {
	return func(c *UserController) *UserController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

// WithRepositoryManager sets the repository manager
func WithRepositoryManager(repo RepositoryManager) UserControllerOption {
	return func(c *UserController) *UserController {
		c.Repo = repo
		return c
	}
}

// WithAuther sets the authenticator
func WithAuther(auther *Auther) UserControllerOption {
	return func(c *UserController) *UserController {
		c.Auther = auther
		return c
	}
}

// WithRecommender sets the recommendation client
func WithRecommender(recommender Recommender) UserControllerOption {
	return func(c *UserController) *UserController {
		c.Recommender = recommender
		return c
	}
}

// WithControllerDebug toggles payload dumping
func WithControllerDebug(debug bool) UserControllerOption {
	return func(c *UserController) *UserController {
		c.Debug = debug
		return c
	}
}

// WithErrorHandler overrides the error renderer
func WithErrorHandler(handler func(router.Context, error) error) UserControllerOption {
	return func(c *UserController) *UserController {
		if handler != nil {
			c.ErrorHandler = handler
		}
		return c
	}
}

// NewUserController builds a controller; Repo and Auther are required
func NewUserController(opts ...UserControllerOption) *UserController {
	c := &UserController{
		Logger:       defLogger{},
		ErrorHandler: DefaultErrorHandler,
		Routes: &UserControllerRoutes{
			Users:     "/users",
			Me:        "/users/me",
			UserByID:  "/users/:userId",
			Login:     "/users/login",
			Logout:    "/users/logout",
			Recommend: "/users/:userId/recommend",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in user controller...")
	}

	if c.Auther == nil {
		panic("Missing Auther in user controller...")
	}

	return c
}

// RouteRegistrar captures the router methods used to mount controllers.
type RouteRegistrar interface {
	Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Put(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Delete(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
}

// RegisterUserRoutes mounts the user endpoints. The literal /users/me route
// goes on before /users/:userId so the parameterized route can't shadow it.
// User lookup by id is public; only /users/me needs an authenticated caller.
func RegisterUserRoutes(app RouteRegistrar, resolver *StrategyResolver, opts ...UserControllerOption) *UserController {
	controller := NewUserController(opts...)

	jwtMeta := &AuthenticationMetadata{Strategy: JWTStrategyName}

	app.Post(controller.Routes.Users, controller.Create).
		SetName("users.create")

	app.Post(controller.Routes.Login, controller.Login).
		SetName("users.login")

	app.Post(controller.Routes.Logout, controller.Logout,
		OptionalRoute(resolver, jwtMeta),
	).SetName("users.logout")

	app.Get(controller.Routes.Me, controller.PrintCurrentUser,
		ProtectedRoute(resolver, jwtMeta, controller.ErrorHandler),
	).SetName("users.me")

	app.Get(controller.Routes.UserByID, controller.FindByID).
		SetName("users.get")

	app.Get(controller.Routes.Recommend, controller.ProductRecommendations).
		SetName("users.recommend")

	return controller
}

// CreateUserPayload is the registration request body
type CreateUserPayload struct {
	Email     string `form:"email" json:"email"`
	Password  string `form:"password" json:"password"`
	FirstName string `form:"firstName" json:"firstName"`
	Surname   string `form:"surname" json:"surname"`
}

// Validate will run validation rules
func (r CreateUserPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, EmailRule()),
		validation.Field(&r.Password, validation.Required, PasswordLengthRule()),
		validation.Field(&r.FirstName, validation.Length(0, 200)),
		validation.Field(&r.Surname, validation.Length(0, 200)),
	)
}

// Create handles POST /users
func (a *UserController) Create(ctx router.Context) error {
	if !hasJSONContentType(ctx) {
		return ctx.JSON(fiber.StatusUnsupportedMediaType, map[string]any{
			"error": "unsupported media type, expected application/json",
		})
	}

	payload := new(CreateUserPayload)
	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("create user parse payload: %v", err)
		return a.ErrorHandler(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse request body"))
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("create user validate payload: %v", err)
		return a.ErrorHandler(ctx, WrapValidationError(err))
	}

	if a.Debug {
		fmt.Println("======= USER CREATE =======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("===========================")
	}

	var created *User
	msg := RegisterUserMessage{
		Email:     payload.Email,
		Password:  payload.Password,
		FirstName: payload.FirstName,
		Surname:   payload.Surname,
		OnResponse: func(u *User) {
			created = u
		},
	}

	registerUser := RegisterUserHandler{repo: a.Repo}
	if err := registerUser.Execute(ctx.Context(), msg); err != nil {
		a.Logger.Error("create user execute: %v", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(fiber.StatusOK, created)
}

// FindByID handles GET /users/:userId
func (a *UserController) FindByID(ctx router.Context) error {
	rawID := ctx.Param("userId", "")

	id, err := uuid.Parse(rawID)
	if err != nil {
		return a.ErrorHandler(ctx, goerrors.New("invalid user id", goerrors.CategoryBadInput).
			WithMetadata(map[string]any{"userId": rawID}))
	}

	user, err := a.Repo.Users().GetProfileByID(ctx.Context(), id)
	if err != nil {
		a.Logger.Error("find user by id: %v", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(fiber.StatusOK, user)
}

// UserProfile is the reduced identity view returned by /users/me
type UserProfile struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// PrintCurrentUser handles GET /users/me. The identity comes from the
// request context set by the authentication middleware; the handler never
// decodes tokens itself.
func (a *UserController) PrintCurrentUser(ctx router.Context) error {
	identity, ok := CurrentUser(ctx)
	if !ok || IsAnonymous(identity) {
		return a.ErrorHandler(ctx, ErrNoUserLoggedIn)
	}

	return ctx.JSON(fiber.StatusOK, UserProfile{
		ID:    identity.ID(),
		Email: identity.Email(),
		Name:  identity.Name(),
	})
}

// Logout handles POST /users/logout. Auth here is optional: a valid token
// resolves to that user, no token is an error. Logging out twice fails the
// second time because the first call left the anonymous marker behind.
func (a *UserController) Logout(ctx router.Context) error {
	identity, ok := CurrentUser(ctx)
	if !ok || IsAnonymous(identity) {
		return a.ErrorHandler(ctx, ErrNoUserLoggedIn)
	}

	SetCurrentUser(ctx, AnonymousIdentity())
	ctx.SetContext(WithCurrentUser(ctx.Context(), AnonymousIdentity()))

	return ctx.JSON(fiber.StatusOK, map[string]any{
		"success": true,
	})
}

// ProductRecommendations handles GET /users/:userId/recommend
func (a *UserController) ProductRecommendations(ctx router.Context) error {
	userID := ctx.Param("userId", "")

	products, err := a.Recommender.GetProductRecommendations(ctx.Context(), userID)
	if err != nil {
		a.Logger.Error("product recommendations for %s: %v", userID, err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(fiber.StatusOK, products)
}

// LoginPayload is the login request body
type LoginPayload struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, EmailRule()),
		validation.Field(&r.Password, validation.Required, PasswordLengthRule()),
	)
}

// Login handles POST /users/login. A match returns the signed token as
// text/plain; credentials that match no user produce an empty 200 body
// rather than an error.
func (a *UserController) Login(ctx router.Context) error {
	payload := new(LoginPayload)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("login parse payload: %v", err)
		return a.ErrorHandler(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse request body"))
	}

	if err := payload.Validate(); err != nil {
		return a.ErrorHandler(ctx, WrapValidationError(err))
	}

	token, err := a.Auther.Login(ctx.Context(), payload.Email, payload.Password)
	if err != nil {
		if goerrors.Is(err, ErrMismatchedHashAndPassword) || goerrors.IsNotFound(err) {
			return ctx.Status(fiber.StatusOK).SendString("")
		}

		a.Logger.Error("login failed: %v", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).SendString(token)
}

func hasJSONContentType(ctx router.Context) bool {
	ct := ctx.GetString("Content-Type", "")
	return strings.Contains(strings.ToLower(ct), "application/json")
}

// DefaultErrorHandler renders rich errors as JSON with the mapped status.
// Validation failures carry their per-field details in the payload.
func DefaultErrorHandler(ctx router.Context, err error) error {
	status := StatusForError(err)

	body := map[string]any{
		"error": err.Error(),
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		body["error"] = richErr.Message
		if len(richErr.Metadata) > 0 {
			body["details"] = richErr.Metadata
		}
	}

	return ctx.JSON(status, body)
}
