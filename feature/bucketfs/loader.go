package bucketfs

import (
	"github.com/gofiber/fiber/v2"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	store   *Store
	handler *Handler
}

// NewFeature creates the filesystem feature on top of store.
func NewFeature(store *Store) *Feature {
	return &Feature{store: store, handler: NewHandler(store)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "bucketfs"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
