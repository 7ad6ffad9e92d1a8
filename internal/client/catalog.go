package client

import (
	internalhttp "github.com/fivetwenty-io/storefront/internal/http"
	"github.com/fivetwenty-io/storefront/pkg/storefront"
)

// Collection paths.
const (
	productsPath   = "/products"
	brandsPath     = "/brands"
	categoriesPath = "/categories"
	servicesPath   = "/services"
	coursesPath    = "/courses"
	bookingsPath   = "/bookings"
)

// ProductsClient implements storefront.ProductsClient.
type ProductsClient struct {
	*resourceClient[storefront.Product, storefront.ProductList, storefront.ProductCreateRequest, storefront.ProductUpdateRequest]
}

// NewProductsClient creates a new products client. Catalog reads are public.
func NewProductsClient(httpClient *internalhttp.Client) *ProductsClient {
	return &ProductsClient{
		resourceClient: newResourceClient[storefront.Product, storefront.ProductList, storefront.ProductCreateRequest, storefront.ProductUpdateRequest](
			httpClient, productsPath, "product", "products", false),
	}
}

// BrandsClient implements storefront.BrandsClient.
type BrandsClient struct {
	*resourceClient[storefront.Brand, storefront.BrandList, storefront.BrandCreateRequest, storefront.BrandUpdateRequest]
}

// NewBrandsClient creates a new brands client.
func NewBrandsClient(httpClient *internalhttp.Client) *BrandsClient {
	return &BrandsClient{
		resourceClient: newResourceClient[storefront.Brand, storefront.BrandList, storefront.BrandCreateRequest, storefront.BrandUpdateRequest](
			httpClient, brandsPath, "brand", "brands", false),
	}
}

// CategoriesClient implements storefront.CategoriesClient.
type CategoriesClient struct {
	*resourceClient[storefront.Category, storefront.CategoryList, storefront.CategoryCreateRequest, storefront.CategoryUpdateRequest]
}

// NewCategoriesClient creates a new categories client.
func NewCategoriesClient(httpClient *internalhttp.Client) *CategoriesClient {
	return &CategoriesClient{
		resourceClient: newResourceClient[storefront.Category, storefront.CategoryList, storefront.CategoryCreateRequest, storefront.CategoryUpdateRequest](
			httpClient, categoriesPath, "category", "categories", false),
	}
}
