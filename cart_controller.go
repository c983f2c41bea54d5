package shopping

import (
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// CartControllerRoutes are the paths the cart endpoints mount on
type CartControllerRoutes struct {
	CartByUser string
}

// CartController serves the per-user shopping cart surface
type CartController struct {
	Logger       Logger
	Store        *CartStore
	Routes       *CartControllerRoutes
	ErrorHandler func(router.Context, error) error
}

type CartControllerOption func(*CartController) *CartController

// WithCartStore sets the backing store
func WithCartStore(store *CartStore) CartControllerOption {
	return func(c *CartController) *CartController {
		c.Store = store
		return c
	}
}

// WithCartControllerLogger sets the controller logger
func WithCartControllerLogger(logger Logger) CartControllerOption {
	return func(c *CartController) *CartController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

// NewCartController builds a cart controller; Store is required
func NewCartController(opts ...CartControllerOption) *CartController {
	c := &CartController{
		Logger:       defLogger{},
		ErrorHandler: DefaultErrorHandler,
		Routes: &CartControllerRoutes{
			CartByUser: "/shoppingCarts/:userId",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Store == nil {
		panic("Missing CartStore in cart controller...")
	}

	return c
}

// RegisterCartRoutes mounts the shopping cart endpoints
func RegisterCartRoutes(app RouteRegistrar, opts ...CartControllerOption) *CartController {
	controller := NewCartController(opts...)

	app.Put(controller.Routes.CartByUser, controller.Replace).
		SetName("carts.replace")

	app.Get(controller.Routes.CartByUser, controller.Find).
		SetName("carts.get")

	app.Delete(controller.Routes.CartByUser, controller.Remove).
		SetName("carts.delete")

	return controller
}

// Replace handles PUT /shoppingCarts/:userId
func (a *CartController) Replace(ctx router.Context) error {
	userID := ctx.Param("userId", "")

	cart := &ShoppingCart{}
	if err := ctx.Bind(cart); err != nil {
		a.Logger.Error("cart parse payload: %v", err)
		return a.ErrorHandler(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse request body"))
	}

	if cart.UserID != "" && cart.UserID != userID {
		return a.ErrorHandler(ctx, goerrors.New("cart user does not match path", goerrors.CategoryBadInput).
			WithMetadata(map[string]any{
				"path_user_id": userID,
				"cart_user_id": cart.UserID,
			}))
	}

	cart.UserID = userID

	if err := a.Store.Set(ctx.Context(), cart); err != nil {
		a.Logger.Error("cart store: %v", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.NoContent(fiber.StatusNoContent)
}

// Find handles GET /shoppingCarts/:userId
func (a *CartController) Find(ctx router.Context) error {
	userID := ctx.Param("userId", "")

	cart, err := a.Store.Get(ctx.Context(), userID)
	if err != nil {
		if goerrors.Is(err, ErrCartNotFound) {
			return a.ErrorHandler(ctx, ErrCartNotFound)
		}
		a.Logger.Error("cart get: %v", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(fiber.StatusOK, cart)
}

// Remove handles DELETE /shoppingCarts/:userId
func (a *CartController) Remove(ctx router.Context) error {
	userID := ctx.Param("userId", "")

	deleted, err := a.Store.Delete(ctx.Context(), userID)
	if err != nil {
		a.Logger.Error("cart delete: %v", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(fiber.StatusOK, map[string]any{
		"deleted": deleted,
	})
}
