package list

import (
	"context"

	"github.com/tumbleweedd/pineapple_store/storefront_service/internal/domain/models"
	"github.com/tumbleweedd/pineapple_store/storefront_service/pkg/logger"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -destination=mocks/mocks.go -package=mocks . Catalog,ImageResolver

type Catalog interface {
	Products(ctx context.Context) ([]models.Product, error)
}

type ImageResolver interface {
	Resolve(image string) (string, error)
}

type servedRecorder interface {
	ProductsServed(source models.ProductSource)
}

const resolveConcurrency = 8

type ProductListService struct {
	log logger.Logger

	catalog  Catalog
	resolver ImageResolver
	recorder servedRecorder
}

// New builds the product source. A nil catalog means fallback-only mode.
func New(log logger.Logger, catalog Catalog, resolver ImageResolver, recorder servedRecorder) *ProductListService {
	return &ProductListService{
		log:      log,
		catalog:  catalog,
		resolver: resolver,
		recorder: recorder,
	}
}

// List never fails: any problem with the primary catalog yields the fallback list.
func (s *ProductListService) List(ctx context.Context) ([]models.Product, models.ProductSource) {
	const op = "services.product.List"

	if s.catalog == nil {
		s.log.InfoContext(ctx, op, logger.String("message", "primary catalog not configured"))
		return s.served(ctx, op, models.FallbackProducts(), models.SourceFallback)
	}

	products, err := s.primary(ctx)
	if err != nil {
		s.log.WarnContext(ctx, op,
			logger.String("message", "primary catalog failed, serving fallback"),
			logger.Err(err),
		)
		return s.served(ctx, op, models.FallbackProducts(), models.SourceFallback)
	}

	return s.served(ctx, op, products, models.SourcePrimary)
}

func (s *ProductListService) primary(ctx context.Context) ([]models.Product, error) {
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, err
	}

	var g errgroup.Group
	g.SetLimit(resolveConcurrency)

	for i := range products {
		i := i
		g.Go(func() error {
			resolved, err := s.resolver.Resolve(products[i].Image)
			if err != nil {
				return err
			}
			products[i].Image = resolved
			return nil
		})
	}

	if err = g.Wait(); err != nil {
		return nil, err
	}

	return products, nil
}

func (s *ProductListService) served(
	ctx context.Context,
	op string,
	products []models.Product,
	source models.ProductSource,
) ([]models.Product, models.ProductSource) {
	if s.recorder != nil {
		s.recorder.ProductsServed(source)
	}

	s.log.InfoContext(ctx, op,
		logger.String("message", "products served"),
		logger.String("source", string(source)),
		logger.Int("count", len(products)),
	)

	return products, source
}
