package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/storefront/internal/constants"
	"github.com/fivetwenty-io/storefront/pkg/storefront"
)

// NewProductsCommand creates the products command group.
func NewProductsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product", "p"},
		Short:   "Manage catalog products",
		Long:    "List, view, create, update, and delete catalog products",
	}

	cmd.AddCommand(newProductsListCommand())
	cmd.AddCommand(newProductsGetCommand())
	cmd.AddCommand(newProductsCreateCommand())
	cmd.AddCommand(newProductsUpdateCommand())
	cmd.AddCommand(newProductsDeleteCommand())

	return cmd
}

func newProductsListCommand() *cobra.Command {
	var (
		flags    listFlags
		brand    string
		category string
		tags     []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Long:  "List catalog products, optionally filtered by brand, category, or tag",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cleanup, err := CreateClient(commandContext(cmd))
			if err != nil {
				return err
			}
			defer cleanup()

			params := flags.params()
			if brand != "" {
				params = params.WithFilter("brand", brand)
			}

			if category != "" {
				params = params.WithFilter("category", category)
			}

			if len(tags) > 0 {
				params = params.WithFilter("tags", tags)
			}

			products, pagination, err := fetchList[storefront.Product](commandContext(cmd), client.Products().List, params, flags.allPages)
			if err != nil {
				return fmt.Errorf("failed to list products: %w", err)
			}

			return render(cmd, products, func(out io.Writer) error {
				return renderProductTable(out, products, pagination, flags.allPages)
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&brand, "brand", "", "filter by brand slug")
	cmd.Flags().StringVar(&category, "category", "", "filter by category slug")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "filter by tag (repeatable)")

	return cmd
}

func renderProductTable(out io.Writer, products []storefront.Product, pagination storefront.Pagination, allPages bool) error {
	if len(products) == 0 {
		_, _ = io.WriteString(out, "No products found\n")

		return nil
	}

	table := newTable(out, "ID", "Name", "Brand", "Category", "Price", "Stock", "Active")

	for _, product := range products {
		price := formatPrice(product.Price, product.Currency)
		if product.DiscountPrice != nil {
			price = formatPrice(*product.DiscountPrice, product.Currency) + " (was " + price + ")"
		}

		_ = table.Append(product.ID, product.Name, orNone(product.Brand), orNone(product.Category),
			price, strconv.Itoa(product.Stock), formatBool(product.IsActive))
	}

	err := renderTable(table)
	if err != nil {
		return err
	}

	writePageHint(out, pagination, allPages)

	return nil
}

func newProductsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PRODUCT_ID",
		Short: "Get product details",
		Long:  "Display detailed information about a specific product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cleanup, err := CreateClient(commandContext(cmd))
			if err != nil {
				return err
			}
			defer cleanup()

			product, err := client.Products().Get(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to get product: %w", err)
			}

			return render(cmd, product, func(out io.Writer) error {
				return renderProductDetails(out, product)
			})
		},
	}
}

func renderProductDetails(out io.Writer, product *storefront.Product) error {
	table := newTable(out, "Property", "Value")
	_ = table.Append("ID", product.ID)
	_ = table.Append("Name", product.Name)
	_ = table.Append("Slug", orNone(product.Slug))
	_ = table.Append("Description", orNone(product.Description))
	_ = table.Append("Price", formatPrice(product.Price, product.Currency))

	if product.DiscountPrice != nil {
		_ = table.Append("Discount Price", formatPrice(*product.DiscountPrice, product.Currency))
	}

	_ = table.Append("Stock", strconv.Itoa(product.Stock))
	_ = table.Append("Brand", orNone(product.Brand))
	_ = table.Append("Category", orNone(product.Category))
	_ = table.Append("Tags", orNone(strings.Join(product.Tags, ", ")))
	_ = table.Append("Active", formatBool(product.IsActive))
	_ = table.Append("Created", formatTime(product.CreatedAt))
	_ = table.Append("Updated", formatTime(product.UpdatedAt))

	return renderTable(table)
}

func newProductsCreateCommand() *cobra.Command {
	var request storefront.ProductCreateRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Long:  "Create a new catalog product (requires an admin session)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if request.Name == "" {
				return constants.ErrNameRequired
			}

			if !cmd.Flags().Changed("price") {
				return constants.ErrPriceRequired
			}

			client, cleanup, err := CreateClient(commandContext(cmd))
			if err != nil {
				return err
			}
			defer cleanup()

			err = requireSession(client)
			if err != nil {
				return err
			}

			product, err := client.Products().Create(commandContext(cmd), &request)
			if err != nil {
				return fmt.Errorf("failed to create product: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created product %s (%s)\n", product.Name, product.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&request.Name, "name", "n", "", "product name (required)")
	cmd.Flags().Float64Var(&request.Price, "price", 0, "product price (required)")
	cmd.Flags().StringVar(&request.Slug, "slug", "", "URL slug")
	cmd.Flags().StringVar(&request.Description, "description", "", "product description")
	cmd.Flags().StringVar(&request.Currency, "currency", "", "price currency")
	cmd.Flags().IntVar(&request.Stock, "stock", 0, "units in stock")
	cmd.Flags().StringVar(&request.Brand, "brand", "", "brand slug")
	cmd.Flags().StringVar(&request.Category, "category", "", "category slug")
	cmd.Flags().StringSliceVar(&request.Tags, "tag", nil, "tag (repeatable)")

	return cmd
}

func newProductsUpdateCommand() *cobra.Command {
	var (
		name        string
		description string
		price       float64
		discount    float64
		stock       int
		active      bool
		tags        []string
	)

	cmd := &cobra.Command{
		Use:   "update PRODUCT_ID",
		Short: "Update a product",
		Long:  "Update fields of an existing product; only the given flags are changed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var request storefront.ProductUpdateRequest

			flags := cmd.Flags()
			if flags.Changed("name") {
				request.Name = &name
			}

			if flags.Changed("description") {
				request.Description = &description
			}

			if flags.Changed("price") {
				request.Price = &price
			}

			if flags.Changed("discount-price") {
				request.DiscountPrice = &discount
			}

			if flags.Changed("stock") {
				request.Stock = &stock
			}

			if flags.Changed("active") {
				request.IsActive = &active
			}

			if flags.Changed("tag") {
				request.Tags = tags
			}

			client, cleanup, err := CreateClient(commandContext(cmd))
			if err != nil {
				return err
			}
			defer cleanup()

			err = requireSession(client)
			if err != nil {
				return err
			}

			product, err := client.Products().Update(commandContext(cmd), args[0], &request)
			if err != nil {
				return fmt.Errorf("failed to update product: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated product %s (%s)\n", product.Name, product.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "new product name")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().Float64Var(&price, "price", 0, "new price")
	cmd.Flags().Float64Var(&discount, "discount-price", 0, "discounted price")
	cmd.Flags().IntVar(&stock, "stock", 0, "units in stock")
	cmd.Flags().BoolVar(&active, "active", true, "whether the product is listed")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "replace tags (repeatable)")

	return cmd
}

func newProductsDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete PRODUCT_ID",
		Short: "Delete a product",
		Long:  "Remove a product from the catalog (requires an admin session)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force && !confirm(cmd, fmt.Sprintf("Really delete product %s?", args[0])) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Delete cancelled")

				return nil
			}

			client, cleanup, err := CreateClient(commandContext(cmd))
			if err != nil {
				return err
			}
			defer cleanup()

			err = requireSession(client)
			if err != nil {
				return err
			}

			err = client.Products().Delete(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to delete product: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted product %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")

	return cmd
}
