package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/storefront/pkg/storefront"
)

// NewBrandsCommand creates the brands command group.
func NewBrandsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "brands",
		Aliases: []string{"brand"},
		Short:   "Browse brands",
		Long:    "List the brands sold in the storefront",
	}

	cmd.AddCommand(newBrandsListCommand())

	return cmd
}

func newBrandsListCommand() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List brands",
		Long:  "List all brands",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cleanup, err := CreateClient(commandContext(cmd))
			if err != nil {
				return err
			}
			defer cleanup()

			brands, pagination, err := fetchList[storefront.Brand](commandContext(cmd), client.Brands().List, flags.params(), flags.allPages)
			if err != nil {
				return fmt.Errorf("failed to list brands: %w", err)
			}

			return render(cmd, brands, func(out io.Writer) error {
				if len(brands) == 0 {
					_, _ = io.WriteString(out, "No brands found\n")

					return nil
				}

				table := newTable(out, "ID", "Name", "Slug", "Website", "Active")
				for _, brand := range brands {
					_ = table.Append(brand.ID, brand.Name, brand.Slug, orNone(brand.Website), formatBool(brand.IsActive))
				}

				err := renderTable(table)
				if err != nil {
					return err
				}

				writePageHint(out, pagination, flags.allPages)

				return nil
			})
		},
	}

	flags.register(cmd)

	return cmd
}

// NewCategoriesCommand creates the categories command group.
func NewCategoriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "Browse product categories",
		Long:    "List the categories products are grouped into",
	}

	cmd.AddCommand(newCategoriesListCommand())

	return cmd
}

func newCategoriesListCommand() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Long:  "List all product categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cleanup, err := CreateClient(commandContext(cmd))
			if err != nil {
				return err
			}
			defer cleanup()

			categories, pagination, err := fetchList[storefront.Category](commandContext(cmd), client.Categories().List, flags.params(), flags.allPages)
			if err != nil {
				return fmt.Errorf("failed to list categories: %w", err)
			}

			return render(cmd, categories, func(out io.Writer) error {
				if len(categories) == 0 {
					_, _ = io.WriteString(out, "No categories found\n")

					return nil
				}

				table := newTable(out, "ID", "Name", "Slug", "Parent")
				for _, category := range categories {
					parent := none
					if category.Parent != nil {
						parent = *category.Parent
					}

					_ = table.Append(category.ID, category.Name, category.Slug, parent)
				}

				err := renderTable(table)
				if err != nil {
					return err
				}

				writePageHint(out, pagination, flags.allPages)

				return nil
			})
		},
	}

	flags.register(cmd)

	return cmd
}
