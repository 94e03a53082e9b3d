// Package inventory holds the list and detail controllers. They translate
// user actions into repository calls and push results to a view. Views,
// the mail composer and the image loader are supplied by the caller.
package inventory

import (
	"context"

	"github.com/erazemk/inventory/internal/loader"
	"github.com/erazemk/inventory/internal/model"
)

// Repository is the data-access facade used for writes.
type Repository interface {
	Insert(ctx context.Context, item model.Item) (model.Item, error)
	Update(ctx context.Context, item model.Item) (bool, error)
	Delete(ctx context.Context, item model.Item) (bool, error)
}

// Loader runs the list query on a background worker.
type Loader interface {
	Load(ctx context.Context) <-chan loader.Result
}

// Mailer opens an e-mail draft.
type Mailer interface {
	Compose(to, subject string) error
}

// ImageLoader resolves a local image reference to displayable bytes.
type ImageLoader interface {
	Load(ref string) ([]byte, error)
}

// Deps are the collaborators shared by both controllers.
// Mailer and Images may be nil.
type Deps struct {
	Repo   Repository
	Loader Loader
	Mailer Mailer
	Images ImageLoader
}
