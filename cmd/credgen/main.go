// Command credgen provisions a new client credential. It generates a
// random client id and secret, prints them once, and emits the secret's
// hash in a form ready for the credential store. The plaintext secret is
// never stored anywhere; hand it to the client and keep only the hash.
//
// Usage:
//
//	credgen -company 42 -home-page https://widget.example.com
//	credgen -company 42 -home-page https://widget.example.com -format sql
//	credgen -company 42 -home-page https://widget.example.com -format yaml
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/torii-gw/torii/pkg/credential"
)

func main() {
	if err := run(); err != nil {
		slog.Error("credgen failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	companyID := flag.Int64("company", 0, "tenant id the credential is bound to (required)")
	homePage := flag.String("home-page", "", "registered origin for the client (required)")
	format := flag.String("format", "plain", "output format: plain, sql, or yaml")
	flag.Parse()

	if *companyID <= 0 {
		return fmt.Errorf("-company must be a positive tenant id")
	}
	if *homePage == "" {
		return fmt.Errorf("-home-page is required")
	}

	g, err := credential.Generate()
	if err != nil {
		return fmt.Errorf("generating credential: %w", err)
	}

	switch *format {
	case "plain":
		// client_id, secret, hash on one line, in that order.
		fmt.Printf("%s %s %s\n", g.ClientID, g.Secret, g.SecretHash)

	case "sql":
		fmt.Printf("-- client secret (share with the client, then discard): %s\n", g.Secret)
		fmt.Printf("INSERT INTO auth_clients (client_id, company_id, secret_hash, active, home_page, created_at)\n")
		fmt.Printf("VALUES ('%s', %d, '%s', TRUE, '%s', now());\n", g.ClientID, *companyID, g.SecretHash, *homePage)

	case "yaml":
		fmt.Printf("# client secret (share with the client, then discard): %s\n", g.Secret)
		fmt.Printf("- client_id: %s\n", g.ClientID)
		fmt.Printf("  company_id: %d\n", *companyID)
		fmt.Printf("  secret_hash: %s\n", g.SecretHash)
		fmt.Printf("  home_page: %s\n", *homePage)

	default:
		return fmt.Errorf("unknown -format %q (want plain, sql, or yaml)", *format)
	}

	return nil
}
