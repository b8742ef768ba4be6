package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	appModels "github.com/yigit/gradebook/internal/app/models"
	appRepos "github.com/yigit/gradebook/internal/app/repositories"
)

type demoUser struct {
	name  string
	email string
	role  appModels.Role
}

// The store hands out ids from zero, so on an empty store these become
// users 0, 1 and 2.
var demoUsers = []demoUser{
	{name: "zero", email: "zero@example.com", role: appModels.RoleAdmin},
	{name: "one", email: "one@example.com", role: appModels.RoleStudent},
	{name: "prof", email: "admin@example.com", role: appModels.RoleFaculty},
}

// CreateDefaultData registers the demo users if the store has none yet.
func CreateDefaultData(ctx context.Context, repos *appRepos.Repositories, lgr zerolog.Logger) error {
	stats, err := repos.Store.Stats(ctx)
	if err != nil {
		return err
	}
	if stats.Users > 0 {
		lgr.Info().Int("users", stats.Users).Msg("Store already has users, skipping demo data")
		return nil
	}

	lgr.Info().Msg("Creating demo users...")
	var finalErr error // To collect potential errors without stopping the process
	for _, u := range demoUsers {
		created, err := repos.UserRepository.CreateUser(ctx, u.name, u.email, u.role)
		if err != nil {
			lgr.Error().Err(err).Str("email", u.email).Msg("Error creating demo user")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		lgr.Debug().Int64("userID", created.ID).Str("role", string(created.Role)).Msg("Demo user created")
	}

	if finalErr == nil {
		lgr.Info().Int("users", len(demoUsers)).Msg("Demo users created")
	}
	return finalErr
}
