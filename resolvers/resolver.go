package resolvers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/writewithwrabit/journal/ai"
	"github.com/writewithwrabit/journal/cryptopasta"
	"github.com/writewithwrabit/journal/mail"
	"github.com/writewithwrabit/journal/models"
	"github.com/writewithwrabit/journal/stats"
)

var (
	ErrAccessDenied = errors.New("Access denied")
	ErrNotFound     = errors.New("Not found")
	ErrBadInput     = errors.New("Bad input")
	ErrUnavailable  = errors.New("AI assistant is not configured")
)

// Assistant is implemented by *ai.Client.
type Assistant interface {
	GeneratePrompt(ctx context.Context, content string) (string, error)
	AnalyzeEntry(ctx context.Context, content string) (*ai.Analysis, error)
	Chat(ctx context.Context, userName string, history []*models.ChatMessage, message string) (string, error)
}

type QueryResolver interface {
	Me(ctx context.Context) (*models.User, error)
	Entries(ctx context.Context, startDate *string, endDate *string) ([]*models.Entry, error)
	Entry(ctx context.Context, id string) (*models.Entry, error)
	EntriesByMonth(ctx context.Context, year int, month int, tz *string) ([]*models.Entry, error)
	DailyEntry(ctx context.Context, date string) (*models.Entry, error)
	Stats(ctx context.Context, tz *string) (*models.UserStats, error)
	WordGoal(ctx context.Context, tz *string) (*models.WordGoal, error)
	Insights(ctx context.Context, entryID string) ([]*models.Insight, error)
}

type MutationResolver interface {
	CreateUser(ctx context.Context, input models.NewUser) (*models.User, error)
	CompleteUserSignup(ctx context.Context, input models.SignedUpUser) (*models.User, error)
	UpdateUser(ctx context.Context, input models.UpdatedUser) (*models.User, error)
	CreateEntry(ctx context.Context, input models.NewEntry) (*models.Entry, error)
	UpdateEntry(ctx context.Context, id string, input models.ExistingEntry) (*models.Entry, error)
	DeleteEntry(ctx context.Context, id string) (*models.Entry, error)
	AnalyzeEntry(ctx context.Context, id string) (*models.Insight, error)
	Prompt(ctx context.Context, content string) (*models.Prompt, error)
	Chat(ctx context.Context, input models.ChatRequest) (*models.ChatReply, error)
}

// Options are the collaborators a Resolver needs besides the database. A nil
// Assistant disables the AI endpoints; a nil Mailer discards mail.
type Options struct {
	EncryptionKey   string
	Assistant       Assistant
	Mailer          mail.Mailer
	DefaultTimezone *time.Location
	Now             func() time.Time
}

type Resolver struct {
	db     *sql.DB
	key    *[32]byte
	ai     Assistant
	mailer mail.Mailer
	loc    *time.Location
	now    func() time.Time
}

func New(db *sql.DB, o Options) *Resolver {
	r := &Resolver{
		db:     db,
		ai:     o.Assistant,
		mailer: o.Mailer,
		loc:    o.DefaultTimezone,
		now:    o.Now,
	}

	// An empty key would silently encrypt with all zero bytes.
	if o.EncryptionKey != "" {
		r.key = cryptopasta.KeyFromString(o.EncryptionKey)
	}

	if r.mailer == nil {
		r.mailer = mail.Discard{}
	}

	return r
}

func (r *Resolver) Mutation() MutationResolver {
	return &mutationResolver{r}
}

func (r *Resolver) Query() QueryResolver {
	return &queryResolver{r}
}

type mutationResolver struct{ *Resolver }

type queryResolver struct{ *Resolver }

func scanNotFound(err error) error {
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	return err
}

func (r *Resolver) clock() time.Time {
	if r.now == nil {
		return time.Now()
	}
	return r.now()
}

// location resolves the caller's zone, falling back to the server default.
func (r *Resolver) location(tz *string) (*time.Location, error) {
	name := ""
	if tz != nil {
		name = *tz
	}

	loc, err := stats.LoadLocation(name, r.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadInput, err)
	}

	return loc, nil
}
