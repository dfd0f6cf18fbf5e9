package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tdpro/backend/internal/catalog"
	"github.com/tdpro/backend/internal/domain"
	"github.com/tdpro/backend/internal/infrastructure/logging"
	"github.com/tdpro/backend/internal/infrastructure/receipt"
	"github.com/tdpro/backend/internal/infrastructure/storage"
	"github.com/tdpro/backend/internal/usecase"
)

// localSession scopes every key the CLI writes
const localSession = "local"

var (
	home    string
	verbose bool
	appCtx  *app
)

type app struct {
	catalog         *catalog.Index
	carts           *usecase.CartStore
	prefs           *usecase.PreferencesService
	recommendations *usecase.RecommendationService
	logger          *zap.Logger
}

func (a *app) checkout(forwardURL string) *usecase.CheckoutService {
	var sender domain.ReceiptSender
	if forwardURL != "" {
		sender = receipt.NewClient(forwardURL, 0, a.logger)
	}
	return usecase.NewCheckoutService(a.carts, sender, usecase.CheckoutConfig{TaxRate: 0.07, FlatShipping: 9.99}, nil, a.logger)
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tdcart",
		Short:         "Disc golf storefront cart from the terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".tdpro")
			}

			logger := zap.NewNop()
			if verbose {
				l, err := logging.New("development", "debug")
				if err != nil {
					return err
				}
				logger = l
			}

			fs, err := storage.NewFileStore(home)
			if err != nil {
				return err
			}

			index := catalog.Default()
			carts := usecase.NewCartStore(fs, index, nil, nil, logger)
			prefs := usecase.NewPreferencesService(fs, nil, "US", logger)
			appCtx = &app{
				catalog:         index,
				carts:           carts,
				prefs:           prefs,
				recommendations: usecase.NewRecommendationService(carts, prefs, nil),
				logger:          logger,
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "data dir (default ~/.tdpro)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")

	root.AddCommand(
		catalogCmd(),
		addCmd(),
		showCmd(),
		clearCmd(),
		recommendCmd(),
		regionCmd(),
		distanceCmd(),
		formatCmd(),
		checkoutCmd(),
	)
	return root
}

// Execute runs the CLI with os.Args
func Execute() error {
	return NewRootCmd().Execute()
}
