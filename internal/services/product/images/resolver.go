package images

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/tumbleweedd/pineapple_store/storefront_service/pkg/logger"
)

var (
	ErrEmptyImage     = errors.New("product image is empty")
	ErrNoObjectSource = errors.New("no object storage configured for relative image")
)

type objectURLBuilder interface {
	PublicObjectURL(bucket, objectPath string) (string, error)
}

type urlCache interface {
	Get(key string) (value string, ok bool)
	Add(key string, value string) (evicted bool)
}

// Resolver turns a catalog image reference into a fully qualified URL.
type Resolver struct {
	log     logger.Logger
	builder objectURLBuilder
	cache   urlCache
	bucket  string
	prefix  string
}

// New returns a Resolver. builder and cache may be nil.
func New(log logger.Logger, builder objectURLBuilder, cache urlCache, bucket, prefix string) *Resolver {
	return &Resolver{
		log:     log,
		builder: builder,
		cache:   cache,
		bucket:  bucket,
		prefix:  strings.Trim(prefix, "/"),
	}
}

func (r *Resolver) Resolve(image string) (string, error) {
	const op = "services.product.images.Resolve"

	image = strings.TrimSpace(image)
	if image == "" {
		return "", ErrEmptyImage
	}

	if isAbsoluteURL(image) {
		return image, nil
	}

	if r.cache != nil {
		if resolved, ok := r.cache.Get(image); ok {
			return resolved, nil
		}
	}

	if r.builder == nil {
		return "", fmt.Errorf("%s: %s: %w", op, image, ErrNoObjectSource)
	}

	resolved, err := r.builder.PublicObjectURL(r.bucket, path.Join(r.prefix, image))
	if err != nil {
		r.log.Error(op, logger.String("image", image), logger.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if r.cache != nil {
		r.cache.Add(image, resolved)
	}

	return resolved, nil
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
