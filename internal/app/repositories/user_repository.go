package repositories

import (
	"context"
	"strings"

	"github.com/yigit/gradebook/internal/app/models"
	"github.com/yigit/gradebook/internal/pkg/apperrors"
)

// UserRepository is the registry of users of every role
type UserRepository struct {
	store *Store
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// entityForRole names the population a role-restricted lookup searched
func entityForRole(role models.Role) string {
	switch role {
	case models.RoleStudent:
		return apperrors.EntityStudent
	case models.RoleFaculty:
		return apperrors.EntityFaculty
	default:
		return apperrors.EntityUser
	}
}

// CreateUser allocates the next user id and stores the record
func (r *UserRepository) CreateUser(ctx context.Context, name, email string, role models.Role) (*models.User, error) {
	var created models.User
	err := r.store.update(ctx, func(st *state) error {
		u := &userRecord{
			id:    st.nextUserID,
			name:  name,
			email: email,
			role:  role,
		}
		st.nextUserID++
		st.users[u.id] = u
		created = st.userView(u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetUserByID retrieves a user of any role
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var found models.User
	err := r.store.view(ctx, func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return apperrors.NewEntityNotFoundError(apperrors.EntityUser, id)
		}
		found = st.userView(u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

// ListUsers returns every user in creation order
func (r *UserRepository) ListUsers(ctx context.Context) ([]*models.User, error) {
	return r.list(ctx, func(*userRecord) bool { return true })
}

// ListUsersByRole returns the users holding role, in creation order
func (r *UserRepository) ListUsersByRole(ctx context.Context, role models.Role) ([]*models.User, error) {
	return r.list(ctx, func(u *userRecord) bool { return u.role == role })
}

func (r *UserRepository) list(ctx context.Context, keep func(*userRecord) bool) ([]*models.User, error) {
	users := []*models.User{}
	err := r.store.view(ctx, func(st *state) error {
		for _, id := range sortedKeys(st.users) {
			u := st.users[id]
			if !keep(u) {
				continue
			}
			view := st.userView(u)
			users = append(users, &view)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// FindUser resolves a user within role's population. The id is tried
// first when given; the email is tried only if the id did not match.
// Emails are not unique, so the earliest created match wins.
func (r *UserRepository) FindUser(ctx context.Context, role models.Role, id *int64, email string) (*models.User, error) {
	var found models.User
	err := r.store.view(ctx, func(st *state) error {
		if u, ok := st.findUser(role, id, email); ok {
			found = st.userView(u)
			return nil
		}
		entity := entityForRole(role)
		if strings.TrimSpace(email) == "" && id != nil {
			return apperrors.NewEntityNotFoundError(entity, *id)
		}
		return apperrors.NewLookupNotFoundError(entity, "email", email)
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (st *state) findUser(role models.Role, id *int64, email string) (*userRecord, bool) {
	if id != nil {
		if u, ok := st.users[*id]; ok && u.role == role {
			return u, true
		}
	}
	if email == "" {
		return nil, false
	}
	for _, uid := range sortedKeys(st.users) {
		u := st.users[uid]
		if u.role == role && u.email == email {
			return u, true
		}
	}
	return nil, false
}

// userWithRole resolves id restricted to one role
func (st *state) userWithRole(id int64, role models.Role) (*userRecord, error) {
	u, ok := st.users[id]
	if !ok || u.role != role {
		return nil, apperrors.NewEntityNotFoundError(entityForRole(role), id)
	}
	return u, nil
}
