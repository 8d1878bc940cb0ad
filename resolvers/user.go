package resolvers

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/writewithwrabit/journal/auth"
	wrabitDB "github.com/writewithwrabit/journal/db"
	"github.com/writewithwrabit/journal/models"
)

const userColumns = "id, firebase_id, first_name, last_name, email, word_goal, created_at, updated_at"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.FirebaseID, &user.FirstName, &user.LastName, &user.Email, &user.WordGoal, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *mutationResolver) CreateUser(ctx context.Context, input models.NewUser) (*models.User, error) {
	email := strings.TrimSpace(input.Email)
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email %q", ErrBadInput, input.Email)
	}
	if strings.TrimSpace(input.FirstName) == "" {
		return nil, fmt.Errorf("%w: first name is required", ErrBadInput)
	}

	res := wrabitDB.LogAndQueryRow(ctx, r.db, "INSERT INTO users (first_name, last_name, email) VALUES ($1, $2, $3) RETURNING "+userColumns, input.FirstName, input.LastName, email)

	return scanUser(res)
}

// CompleteUserSignup links a users row to the signed in Firebase account and
// sends the welcome mail.
func (r *mutationResolver) CompleteUserSignup(ctx context.Context, input models.SignedUpUser) (*models.User, error) {
	token := auth.ForContext(ctx)
	if token == nil || token.Subject != input.FirebaseID {
		return nil, ErrAccessDenied
	}

	res := wrabitDB.LogAndQueryRow(ctx, r.db, "UPDATE users SET firebase_id = $1, updated_at = now() WHERE id = $2 AND (firebase_id IS NULL OR firebase_id = $1) RETURNING "+userColumns, input.FirebaseID, input.ID)
	user, err := scanUser(res)
	if err != nil {
		return nil, err
	}

	if err := r.mailer.SendWelcome(ctx, user.Email); err != nil {
		log.Printf("welcome mail to %s failed: %v", user.Email, err)
	}

	return user, nil
}

func (r *mutationResolver) UpdateUser(ctx context.Context, input models.UpdatedUser) (*models.User, error) {
	token := auth.ForContext(ctx)
	if token == nil {
		return nil, ErrAccessDenied
	}

	res := wrabitDB.LogAndQueryRow(ctx, r.db, "SELECT "+userColumns+" FROM users WHERE firebase_id = $1", token.Subject)
	user, err := scanUser(res)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}

	if input.LastName != nil {
		user.LastName = input.LastName
	}

	if input.Email != nil {
		if !emailPattern.MatchString(*input.Email) {
			return nil, fmt.Errorf("%w: invalid email %q", ErrBadInput, *input.Email)
		}
		user.Email = *input.Email
	}

	if input.WordGoal != nil {
		if *input.WordGoal <= 0 {
			return nil, fmt.Errorf("%w: word goal must be positive", ErrBadInput)
		}
		user.WordGoal = *input.WordGoal
	}

	res = wrabitDB.LogAndQueryRow(ctx, r.db, "UPDATE users SET first_name = $1, last_name = $2, email = $3, word_goal = $4, updated_at = now() WHERE firebase_id = $5 RETURNING "+userColumns, user.FirstName, user.LastName, user.Email, user.WordGoal, token.Subject)

	return scanUser(res)
}

func (r *queryResolver) Me(ctx context.Context) (*models.User, error) {
	token := auth.ForContext(ctx)
	if token == nil {
		return nil, ErrAccessDenied
	}

	res := wrabitDB.LogAndQueryRow(ctx, r.db, "SELECT "+userColumns+" FROM users WHERE firebase_id = $1", token.Subject)

	return scanUser(res)
}
