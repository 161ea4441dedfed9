package reviewboard

import (
	"context"

	"github.com/anjiri1684/review_board/logger"
	"github.com/anjiri1684/review_board/models"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// AuthRoute is where ungated visitors are sent.
const AuthRoute = "/auth"

const (
	NoticeFetchFailed    = "reviews.fetch_failed"
	NoticeFieldsRequired = "reviews.fields_required"
	NoticeCreateFailed   = "reviews.create_failed"
	NoticeRatingInvalid  = "reviews.rating_invalid"
	NoticeCreated        = "reviews.created"
	NoticeLoggedOut      = "auth.logged_out"
	NoticeLogoutFailed   = "auth.logout_failed"
)

type Identity interface {
	CurrentUser(ctx context.Context, token string) (*models.User, error)
	SignOut(ctx context.Context, token string) error
}

type Reviews interface {
	ListReviews(ctx context.Context) ([]models.Review, error)
	InsertReview(ctx context.Context, review *models.Review) error
}

// Publisher is told about every review that was stored.
type Publisher interface {
	ReviewCreated(review models.Review)
}

type ReviewInput struct {
	CustomerName string `json:"customer_name" form:"customer_name" validate:"required"`
	Country      string `json:"country" form:"country" validate:"required"`
	Rating       int    `json:"rating" form:"rating" validate:"required"`
}

type Board struct {
	identity   Identity
	reviews    Reviews
	publishers []Publisher
	validate   *validator.Validate
	log        *logger.Logger
}

func New(identity Identity, reviews Reviews, log *logger.Logger, publishers ...Publisher) *Board {
	return &Board{
		identity:   identity,
		reviews:    reviews,
		publishers: publishers,
		validate:   validator.New(),
		log:        log,
	}
}

// Gate resolves the current identity. An absent identity, or a failure to
// resolve one, sends the view to the auth route with nothing else set.
func (b *Board) Gate(ctx context.Context, token string) *View {
	user, err := b.identity.CurrentUser(ctx, token)
	if err != nil {
		b.log.Error("failed to resolve current user", zap.Error(err))
		user = nil
	}
	if user == nil {
		return &View{Redirect: AuthRoute}
	}
	return &View{User: user, Loading: true}
}

// Open gates the view and, once gated, loads the review list a single time.
func (b *Board) Open(ctx context.Context, token string) *View {
	v := b.Gate(ctx, token)
	if v.Gated() {
		b.List(ctx, v)
	}
	return v
}

// List replaces the view's reviews with the backend's ordering. On failure
// the previous list is left alone.
func (b *Board) List(ctx context.Context, v *View) {
	defer func() { v.Loading = false }()

	reviews, err := b.reviews.ListReviews(ctx)
	if err != nil {
		b.log.Error("failed to fetch reviews", zap.Error(err))
		v.notify(LevelError, NoticeFetchFailed)
		return
	}
	v.Reviews = reviews
}

// Reject keeps the dialog open with the submitted values and an error notice
// for input that never reaches the backend.
func (b *Board) Reject(v *View, in ReviewInput, key string) {
	v.Form = in
	v.DialogOpen = true
	v.notify(LevelError, key)
}

// Create stores a review owned by the view's user and refreshes the list.
// It returns true when the review was stored.
func (b *Board) Create(ctx context.Context, v *View, in ReviewInput) bool {
	v.Form = in
	if err := b.validate.Struct(in); err != nil {
		v.DialogOpen = true
		v.notify(LevelError, NoticeFieldsRequired)
		return false
	}

	review := models.Review{
		CustomerName: in.CustomerName,
		Country:      in.Country,
		Rating:       in.Rating,
		UserID:       v.User.ID,
	}
	if err := b.reviews.InsertReview(ctx, &review); err != nil {
		b.log.Error("failed to create review", zap.Error(err), zap.Stringer("user_id", v.User.ID))
		v.DialogOpen = true
		v.notify(LevelError, NoticeCreateFailed)
		return false
	}

	v.notify(LevelSuccess, NoticeCreated)
	v.Form = ReviewInput{}
	v.DialogOpen = false
	for _, p := range b.publishers {
		p.ReviewCreated(review)
	}
	b.List(ctx, v)
	return true
}

// Logout ends the session and always sends the view to the auth route.
func (b *Board) Logout(ctx context.Context, v *View, token string) {
	v.Redirect = AuthRoute
	if err := b.identity.SignOut(ctx, token); err != nil {
		b.log.Error("error logging out", zap.Error(err))
		v.notify(LevelError, NoticeLogoutFailed)
		return
	}
	v.notify(LevelSuccess, NoticeLoggedOut)
}
