package shopping

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
)

type authIdentity struct {
	id    string
	email string
	name  string
}

func (a authIdentity) ID() string    { return a.id }
func (a authIdentity) Email() string { return a.email }
func (a authIdentity) Name() string  { return a.name }

// NewIdentity builds an Identity value from its parts
func NewIdentity(id, email, name string) Identity {
	return authIdentity{id: id, email: email, name: name}
}

// UserGetter is the slice of the user store the provider needs
type UserGetter interface {
	GetByIdentifier(ctx context.Context, identifier string, criteria ...repository.SelectCriteria) (*User, error)
}

// UserProvider resolves identities against the user store
type UserProvider struct {
	repo   UserGetter
	logger Logger
}

// NewUserProvider creates an identity provider backed by the given store
func NewUserProvider(repo UserGetter) *UserProvider {
	return &UserProvider{
		repo:   repo,
		logger: defLogger{},
	}
}

// WithProviderLogger sets the provider logger
func (p *UserProvider) WithProviderLogger(logger Logger) *UserProvider {
	if logger != nil {
		p.logger = logger
	}
	return p
}

// VerifyIdentity checks the given credentials against the stored password
// hash. A missing user and a wrong password both return
// ErrMismatchedHashAndPassword so callers can't probe for accounts.
func (p *UserProvider) VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error) {
	user, err := p.repo.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrMismatchedHashAndPassword
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load user")
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, err
	}

	return authIdentity{
		id:    user.ID.String(),
		email: user.Email,
		name:  user.FullName(),
	}, nil
}

// FindIdentityByIdentifier resolves an identity without checking credentials
func (p *UserProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error) {
	user, err := p.repo.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrIdentityNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load user")
	}

	return authIdentity{
		id:    user.ID.String(),
		email: user.Email,
		name:  user.FullName(),
	}, nil
}
