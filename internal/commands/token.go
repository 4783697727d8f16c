package commands

import (
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/cobra"

	"github.com/mikeseventeen/coverflex-downloader/internal/capture"
	"github.com/mikeseventeen/coverflex-downloader/internal/config"
	"github.com/mikeseventeen/coverflex-downloader/internal/token"
)

func newTokenCommand(configPath *string, verbose *bool) *cobra.Command {
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the captured Coverflex bearer token",
	}
	tokenCmd.AddCommand(newTokenSetCommand(configPath, verbose))
	tokenCmd.AddCommand(newTokenShowCommand(configPath, verbose))
	tokenCmd.AddCommand(newTokenClearCommand(configPath, verbose))
	tokenCmd.AddCommand(newTokenImportStorageCommand(configPath, verbose))
	tokenCmd.AddCommand(newTokenImportHARCommand(configPath, verbose))
	return tokenCmd
}

func openStore(configPath string, verbose bool) (*config.Config, token.Store, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, token.NewFileStore(cfg.Token.Path, newLogger(verbose)), nil
}

func newTokenSetCommand(configPath *string, verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "set <token>",
		Short: "Store a bearer token directly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := openStore(*configPath, *verbose)
			if err != nil {
				return err
			}
			store.Set(args[0])
			fmt.Println("Token stored")
			return nil
		},
	}
}

func newTokenShowCommand(configPath *string, verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := openStore(*configPath, *verbose)
			if err != nil {
				return err
			}
			tok, ok := store.Get()
			if !ok {
				return fmt.Errorf("no token stored")
			}
			fmt.Println(tok)
			return nil
		},
	}
}

func newTokenClearCommand(configPath *string, verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := openStore(*configPath, *verbose)
			if err != nil {
				return err
			}
			store.Clear()
			fmt.Println("Token cleared")
			return nil
		},
	}
}

func newTokenImportStorageCommand(configPath *string, verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "import-storage <file>",
		Short: "Capture the token from a localStorage JSON export",
		Long: "Reads a JSON object exported from the Coverflex web app's localStorage\n" +
			"(devtools > Application > Local Storage, copy as JSON) and stores the\n" +
			"session token found under the " + capture.StorageKey + " key.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := openStore(*configPath, *verbose)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening export: %w", err)
			}
			defer f.Close()

			tok, err := capture.FromStorageExport(f)
			if err != nil {
				return err
			}
			store.Set(tok)
			fmt.Println("Token captured from storage export")
			return nil
		},
	}
}

func newTokenImportHARCommand(configPath *string, verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "import-har <file>",
		Short: "Capture the token from a browser HAR capture",
		Long: "Scans a HAR file (devtools > Network > export HAR) for requests to the\n" +
			"Coverflex API carrying an Authorization header and stores the newest\n" +
			"bearer token observed.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := openStore(*configPath, *verbose)
			if err != nil {
				return err
			}

			base, err := url.Parse(cfg.API.BaseURL)
			if err != nil {
				return fmt.Errorf("parsing API base URL: %w", err)
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening HAR: %w", err)
			}
			defer f.Close()

			tok, err := capture.FromHAR(f, base.Host)
			if err != nil {
				return err
			}
			store.Set(tok)
			fmt.Println("Token captured from HAR")
			return nil
		},
	}
}
