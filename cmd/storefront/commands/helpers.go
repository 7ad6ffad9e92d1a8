package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/storefront/internal/auth"
	"github.com/fivetwenty-io/storefront/internal/constants"
	"github.com/fivetwenty-io/storefront/pkg/sfclient"
	"github.com/fivetwenty-io/storefront/pkg/storefront"
)

const (
	defaultJSONIndent = 2

	// Masked replaces secrets in output.
	Masked = "***"

	none = "-"
)

// CreateClient builds a client from the current configuration. The session
// token is read from the config file and every change to it (login, logout)
// is written back. The returned cleanup func must be called when done.
func CreateClient(ctx context.Context) (storefront.Client, func(), error) {
	config := loadConfig()
	if config.API == "" {
		return nil, nil, constants.ErrNoAPIConfigured
	}

	logger := newLogger(viper.GetBool("verbose"))
	store := auth.NewPersistentSessionStore(auth.NewSessionStore(config.Token), NewConfigPersister(), logger)

	clientConfig := &storefront.Config{
		APIEndpoint: config.API,
		Debug:       viper.GetBool("verbose"),
		Logger:      logger,
		Timeout:     constants.DefaultHTTPTimeout,
	}

	if config.Retries > 0 {
		clientConfig.RetryMax = config.Retries
		clientConfig.RetryWaitMin = constants.DefaultRetryWaitMin
		clientConfig.RetryWaitMax = constants.DefaultRetryWaitMax
	}

	switch storefront.CacheType(config.Cache) {
	case storefront.CacheTypeMemory:
		clientConfig.Cache = storefront.DefaultCacheConfig()
	case storefront.CacheTypeNATS:
		clientConfig.Cache = storefront.NewCacheBuilder().
			WithType(storefront.CacheTypeNATS).
			WithMemoryConfig(constants.DefaultCacheSize).
			WithNATSConfig(&storefront.NATSKVConfig{URL: config.NATSURL}).
			Config()
	}

	if config.Brand != "" {
		chain := storefront.NewInterceptorChain()
		chain.AddRequestInterceptor(storefront.BrandInterceptor(config.Brand))
		clientConfig.Interceptors = chain
	}

	sfClient, err := sfclient.NewWithSession(ctx, clientConfig, store)
	if err != nil {
		store.Close()

		return nil, nil, err
	}

	cleanup := func() {
		err := sfClient.Close()
		if err != nil {
			logger.Warn("closing client", map[string]interface{}{"error": err.Error()})
		}

		store.Close()
		_ = logger.Sync()
	}

	return sfClient, cleanup, nil
}

func newLogger(verbose bool) *storefront.ZapLogger {
	if !verbose {
		return storefront.NewZapLogger(nil)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return storefront.NewZapLogger(nil)
	}

	return storefront.NewZapLogger(logger)
}

func requireSession(client storefront.Client) error {
	if !client.Session().Authenticated() {
		return constants.ErrNotAuthenticated
	}

	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}

// StandardJSONRenderer writes data as indented JSON.
func StandardJSONRenderer[T any](out io.Writer, data T) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer writes data as YAML.
func StandardYAMLRenderer[T any](out io.Writer, data T) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(defaultJSONIndent)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return encoder.Close()
}

// render writes data in the configured output format. table renders the
// default format.
func render[T any](cmd *cobra.Command, data T, table func(out io.Writer) error) error {
	out := cmd.OutOrStdout()

	switch viper.GetString("output") {
	case constants.OutputFormatJSON:
		return StandardJSONRenderer(out, data)
	case constants.OutputFormatYAML:
		return StandardYAMLRenderer(out, data)
	default:
		return table(out)
	}
}

func newTable(out io.Writer, headers ...any) *tablewriter.Table {
	table := tablewriter.NewWriter(out)
	table.Header(headers...)

	return table
}

func renderTable(table *tablewriter.Table) error {
	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func writePageHint(out io.Writer, pagination storefront.Pagination, allPages bool) {
	if !allPages && pagination.TotalPages > 1 {
		_, _ = fmt.Fprintf(out, "\nShowing page %d of %d. Use --all to fetch all pages.\n",
			pagination.Page, pagination.TotalPages)
	}
}

// listFlags are shared by every list command.
type listFlags struct {
	allPages bool
	page     int
	perPage  int
	sort     string
	search   string
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&f.page, "page", 1, "page to fetch")
	cmd.Flags().IntVar(&f.perPage, "per-page", constants.StandardPageSize, "results per page")
	cmd.Flags().StringVar(&f.sort, "sort", "", "sort field, prefix with - for descending")
	cmd.Flags().StringVar(&f.search, "search", "", "free text search")
}

func (f *listFlags) params() storefront.QueryParams {
	params := storefront.NewQueryParams().WithPage(f.page).WithLimit(f.perPage)

	if f.sort != "" {
		params = params.WithSort(f.sort)
	}

	if f.search != "" {
		params = params.WithSearch(f.search)
	}

	return params
}

// fetchList fetches one page, or every page when allPages is set.
func fetchList[T any, L storefront.Page[T]](
	ctx context.Context,
	list func(ctx context.Context, params storefront.QueryParams) (*L, error),
	params storefront.QueryParams,
	allPages bool,
) ([]T, storefront.Pagination, error) {
	if allPages {
		items, err := storefront.FetchAllPages(ctx, storefront.ListPages[T, L](list), params)
		if err != nil {
			return nil, storefront.Pagination{}, err
		}

		return items, storefront.Pagination{Total: len(items)}, nil
	}

	page, err := list(ctx, params)
	if err != nil {
		return nil, storefront.Pagination{}, err
	}

	return (*page).Items(), (*page).PageInfo(), nil
}

// confirm asks a yes/no question on the command's input.
func confirm(cmd *cobra.Command, question string) bool {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (y/N): ", question)

	answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))

	return answer == "y" || answer == "yes"
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return none
	}

	return t.Local().Format(constants.DisplayTimeFormat)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return none
	}

	return formatTime(*t)
}

func formatPrice(price float64, currency string) string {
	formatted := strconv.FormatFloat(price, 'f', 2, 64)
	if currency == "" {
		return formatted
	}

	return formatted + " " + currency
}

func formatBool(value bool) string {
	if value {
		return "yes"
	}

	return "no"
}

func orNone(value string) string {
	if value == "" {
		return none
	}

	return value
}
