package commands_test

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/storefront/cmd/storefront/commands"
)

func TestCommandGroups(t *testing.T) {
	tests := []struct {
		name        string
		cmd         *cobra.Command
		use         string
		aliases     []string
		subcommands []string
	}{
		{
			name:        "products",
			cmd:         commands.NewProductsCommand(),
			use:         "products",
			aliases:     []string{"product", "p"},
			subcommands: []string{"list", "get", "create", "update", "delete"},
		},
		{name: "brands", cmd: commands.NewBrandsCommand(), use: "brands", aliases: []string{"brand"}, subcommands: []string{"list"}},
		{name: "categories", cmd: commands.NewCategoriesCommand(), use: "categories", aliases: []string{"category"}, subcommands: []string{"list"}},
		{name: "services", cmd: commands.NewServicesCommand(), use: "services", aliases: []string{"service", "svc"}, subcommands: []string{"list", "get"}},
		{name: "courses", cmd: commands.NewCoursesCommand(), use: "courses", aliases: []string{"course"}, subcommands: []string{"list", "get"}},
		{name: "bookings", cmd: commands.NewBookingsCommand(), use: "bookings", aliases: []string{"booking", "bk"}, subcommands: []string{"list", "create", "cancel"}},
		{name: "config", cmd: commands.NewConfigCommand(), use: "config", subcommands: []string{"show", "set"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.Equal(t, tt.aliases, tt.cmd.Aliases)
			assert.NotEmpty(t, tt.cmd.Short)
			assert.Len(t, tt.cmd.Commands(), len(tt.subcommands))

			for _, name := range tt.subcommands {
				sub := findSubcommand(tt.cmd, name)
				require.NotNil(t, sub, "missing subcommand %s", name)
				assert.NotNil(t, sub.RunE)
			}
		})
	}
}

func TestListCommandFlags(t *testing.T) {
	groups := []*cobra.Command{
		commands.NewProductsCommand(),
		commands.NewBrandsCommand(),
		commands.NewCategoriesCommand(),
		commands.NewServicesCommand(),
		commands.NewCoursesCommand(),
		commands.NewBookingsCommand(),
	}

	for _, group := range groups {
		list := findSubcommand(group, "list")
		require.NotNil(t, list)

		for _, flag := range []string{"all", "page", "per-page", "sort", "search"} {
			assert.NotNil(t, list.Flags().Lookup(flag), "%s list should have --%s", group.Name(), flag)
		}

		assert.Equal(t, "20", list.Flags().Lookup("per-page").DefValue)
	}
}

func TestProductsCommandFlags(t *testing.T) {
	products := commands.NewProductsCommand()

	get := findSubcommand(products, "get")
	assert.Equal(t, "get PRODUCT_ID", get.Use)
	assert.NotNil(t, get.Args)

	create := findSubcommand(products, "create")
	for _, flag := range []string{"name", "price", "slug", "description", "currency", "stock", "brand", "category", "tag"} {
		assert.NotNil(t, create.Flags().Lookup(flag), "Flag %s should exist", flag)
	}

	update := findSubcommand(products, "update")
	assert.Equal(t, "update PRODUCT_ID", update.Use)
	assert.NotNil(t, update.Flags().Lookup("discount-price"))

	forceFlag := findSubcommand(products, "delete").Flags().Lookup("force")
	require.NotNil(t, forceFlag)
	assert.Equal(t, "f", forceFlag.Shorthand)
	assert.Equal(t, "false", forceFlag.DefValue)
}

func TestSessionCommands(t *testing.T) {
	login := commands.NewLoginCommand()
	assert.Equal(t, "login", login.Use)
	assert.Equal(t, "e", login.Flags().Lookup("email").Shorthand)
	assert.Equal(t, "p", login.Flags().Lookup("password").Shorthand)

	assert.Equal(t, "logout", commands.NewLogoutCommand().Use)
	assert.Equal(t, "whoami", commands.NewWhoamiCommand().Use)

	version := commands.NewVersionCommand("1.2.3", "abc", "today")
	assert.Equal(t, "version", version.Use)
}
