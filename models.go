package shopping

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the user model. PasswordHash is excluded from JSON so a serialized
// user can never leak the stored credential.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID    `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Email         string       `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string       `bun:"password_hash" json:"-"`
	FirstName     string       `bun:"firstname" json:"firstname,omitempty"`
	Surname       string       `bun:"surname" json:"surname,omitempty"`
	Orders        []*Order     `bun:"rel:has-many,join:id=user_id" json:"orders,omitempty"`
	AccessToken   *AccessToken `bun:"rel:has-one,join:id=user_id" json:"access_token,omitempty"`
	CreatedAt     *time.Time   `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time   `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time   `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// FullName joins the optional name parts
func (u *User) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.Surname))
}

// Order is a purchase placed by a user
type Order struct {
	bun.BaseModel `bun:"table:orders,alias:ord"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID        uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	User          *User      `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	Total         float64    `bun:"total,notnull" json:"total"`
	Date          *time.Time `bun:"date,nullzero,default:current_timestamp" json:"date,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// AccessToken mirrors the original schema's one-to-one token record. No flow
// reads or writes it; sessions are stateless.
type AccessToken struct {
	bun.BaseModel `bun:"table:access_tokens,alias:atk"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID        uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	Token         string     `bun:"token,notnull" json:"token,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

// Product is the recommendation payload. Products are owned by the external
// recommender, never persisted here.
type Product struct {
	ProductID   string  `json:"productId,omitempty"`
	Name        string  `json:"name,omitempty"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

// ShoppingCart is the redis-backed cart payload
type ShoppingCart struct {
	UserID string             `json:"user_id"`
	Items  []ShoppingCartItem `json:"items"`
}

// ShoppingCartItem is a single cart line
type ShoppingCartItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name,omitempty"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}
