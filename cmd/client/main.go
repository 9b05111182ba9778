// Command client is the marketplace's terminal front end: it restores the
// persisted session on startup, browses the catalog, and signs users in
// and out against a running API server.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/client"
	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/config"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: client [flags] <command> [args]

Commands:
  status             show session state
  register           create an account
  login              sign in and persist the session token
  logout             sign out and clear the session token
  me                 show the signed-in profile
  products           list the catalog
  product <id>       show one product
  search <query>     full-text product search

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	defaultStore := filepath.Join(os.Getenv("HOME"), ".spd-marketplace", "session.db")

	serverURL := flag.String("server", config.EnvDefault("SPD_SERVER_URL", "http://localhost:8080"), "API server base URL")
	storePath := flag.String("store", config.EnvDefault("SPD_SESSION_STORE", defaultStore), "session store path")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	if err := os.MkdirAll(filepath.Dir(*storePath), 0o700); err != nil {
		fmt.Fprintf(os.Stderr, "cannot prepare session store: %v\n", err)
		os.Exit(1)
	}
	store, err := client.OpenStore(*storePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	session := client.NewSessionManager(store)
	if _, err := session.Restore(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	api := client.NewClient(*serverURL, session)
	ctx := context.Background()

	if err := run(ctx, api, session, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		if errors.Is(err, client.ErrUnauthorized) {
			fmt.Fprintln(os.Stderr, "run `client login` to sign in")
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, api *client.Client, session *client.SessionManager, args []string) error {
	switch args[0] {
	case "status":
		fmt.Println("session:", session.State())
		return nil

	case "register":
		reader := bufio.NewReader(os.Stdin)
		name, err := readLine(reader, "Name")
		if err != nil {
			return err
		}
		email, err := readLine(reader, "Email")
		if err != nil {
			return err
		}
		password, err := readPassword()
		if err != nil {
			return err
		}
		user, err := api.Register(ctx, name, email, password)
		if err != nil {
			return err
		}
		fmt.Printf("registered %s (%s)\n", user.Name, user.Email)
		return nil

	case "login":
		reader := bufio.NewReader(os.Stdin)
		email, err := readLine(reader, "Email")
		if err != nil {
			return err
		}
		password, err := readPassword()
		if err != nil {
			return err
		}
		if err := api.Login(ctx, email, password); err != nil {
			return err
		}
		fmt.Println("logged in")
		return nil

	case "logout":
		if err := session.SignOut(); err != nil {
			return err
		}
		fmt.Println("logged out")
		return nil

	case "me":
		user, err := api.Me(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%s <%s>\n", user.Name, user.Email)
		return nil

	case "products":
		view := client.NewProductListView(api)
		view.Load(ctx)
		state, products, err := view.State()
		if state == client.ScreenErrored {
			return err
		}
		if len(products) == 0 {
			fmt.Println("no products yet")
			return nil
		}
		for _, p := range products {
			fmt.Printf("[%s] %-30s %10.2f  %s  (%s)\n",
				client.ProductIcon(p.Name, p.Category), p.Name, p.Price, p.Category, p.ID)
		}
		return nil

	case "product":
		if len(args) < 2 {
			return errors.New("usage: client product <id>")
		}
		view := client.NewProductDetailView(api, args[1])
		view.Load(ctx)
		state, product, err := view.State()
		if state == client.ScreenErrored {
			return err
		}
		fmt.Printf("[%s] %s\n", client.ProductIcon(product.Name, product.Category), product.Name)
		fmt.Printf("price:    %.2f\n", product.Price)
		fmt.Printf("category: %s\n", product.Category)
		if product.Description != "" {
			fmt.Printf("\n%s\n", product.Description)
		}
		return nil

	case "search":
		if len(args) < 2 {
			return errors.New("usage: client search <query>")
		}
		products, err := api.SearchProducts(ctx, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		if len(products) == 0 {
			fmt.Println("no matches")
			return nil
		}
		for _, p := range products {
			fmt.Printf("[%s] %-30s %10.2f  %s  (%s)\n",
				client.ProductIcon(p.Name, p.Category), p.Name, p.Price, p.Category, p.ID)
		}
		return nil

	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func readLine(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Printf("%s: ", prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func readPassword() (string, error) {
	fmt.Print("Password: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pw), nil
}
