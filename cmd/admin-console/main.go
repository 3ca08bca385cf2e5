// Command admin-console is a terminal front-end for the Shopora store
// backend: browse and mutate orders and users, and view store totals.
//
// Usage:
//
//	admin-console login -email a@b.c -password secret
//	admin-console logout
//	admin-console dashboard
//	admin-console orders [-search q] [-page n] [-date thisWeek|thisMonth|thisYear] [-status Pending|Completed]
//	admin-console order -id ID
//	admin-console order-status -id ID -status Shipped
//	admin-console order-delete -id ID [-yes]
//	admin-console users [-search q] [-page n]
//	admin-console user -id ID
//	admin-console user-delete -id ID [-yes]
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/shopora/admin_console/internal/api"
	"github.com/shopora/admin_console/internal/config"
	"github.com/shopora/admin_console/internal/console"
	"github.com/shopora/admin_console/internal/credential"
	"github.com/shopora/admin_console/internal/listquery"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "admin-console:", err)
		if api.IsUnauthenticated(err) {
			fmt.Fprintln(os.Stderr, "admin-console: sign in with: admin-console login -email ... -password ...")
		}
		os.Exit(1)
	}
}

type env struct {
	client *api.Client
	store  credential.Store
	log    zerolog.Logger
}

func run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing command; see the package comment for usage")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("parse ADMIN_LOG_LEVEL: %w", err)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	store, err := credentialStore(cfg)
	if err != nil {
		return err
	}

	client, err := api.New(api.Config{
		BaseURL:     cfg.API.BaseURL,
		Credentials: store,
		HTTPClient:  &http.Client{Timeout: cfg.API.Timeout},
		Limiter:     rate.NewLimiter(rate.Limit(cfg.API.RequestsPerSecond), cfg.API.Burst),
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	e := env{client: client, store: store, log: logger}
	ctx := context.Background()
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "login":
		return runLogin(ctx, e, rest)
	case "logout":
		return console.SignOut(e.store)
	case "dashboard":
		return runDashboard(ctx, e)
	case "orders":
		return runOrders(ctx, e, rest)
	case "order":
		return runOrderDetail(ctx, e, rest)
	case "order-status":
		return runOrderStatus(ctx, e, rest)
	case "order-delete":
		return runOrderDelete(ctx, e, rest)
	case "users":
		return runUsers(ctx, e, rest)
	case "user":
		return runUserDetail(ctx, e, rest)
	case "user-delete":
		return runUserDelete(ctx, e, rest)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func credentialStore(cfg config.Config) (credential.Store, error) {
	switch cfg.Credential.Backend {
	case "keyring":
		return credential.NewKeyringStore(), nil
	case "file":
		return credential.NewFileStore(cfg.Credential.File)
	default:
		return nil, fmt.Errorf("unknown credential backend %q", cfg.Credential.Backend)
	}
}

func runLogin(ctx context.Context, e env, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("login requires -email and -password")
	}

	session, err := console.SignIn(ctx, e.client.Auth(), e.store, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("signed in as %s (%s)\n", *email, session.Role)
	return nil
}

func runDashboard(ctx context.Context, e env) error {
	stats, err := console.NewDashboard(e.client.Orders()).Load(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Orders\t%d\n", stats.OrderCount)
	fmt.Fprintf(w, "Revenue\t%.2f\n", stats.Revenue)
	fmt.Fprintf(w, "Customers\t%d\n", stats.NewCustomers)
	return w.Flush()
}

func runOrders(ctx context.Context, e env, args []string) error {
	fs := flag.NewFlagSet("orders", flag.ContinueOnError)
	search := fs.String("search", "", "search term")
	page := fs.Int("page", 1, "page number")
	date := fs.String("date", "", "date filter: thisWeek, thisMonth or thisYear")
	status := fs.String("status", "", "status filter: Pending or Completed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	list := console.NewOrdersList(e.client.Orders(), stdinConfirmer(false), e.log)
	if *search != "" {
		if err := list.Search(ctx, *search); err != nil {
			return err
		}
	}
	if *date != "" {
		if err := list.ToggleDate(ctx, listquery.DateFilter(*date)); err != nil {
			return err
		}
	}
	if *status != "" {
		if err := list.ToggleStatus(ctx, listquery.StatusFilter(*status)); err != nil {
			return err
		}
	}
	if *search == "" && *date == "" && *status == "" {
		if err := list.Refresh(ctx); err != nil {
			return err
		}
	}
	if *page > 1 {
		if err := list.GoToPage(ctx, *page); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCUSTOMER\tSTATUS\tTOTAL")
	for _, o := range list.Items() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\n", o.ID, o.Name, o.Status, o.TotalPrice)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("page %d of %d (%d orders)\n", list.Query().Page, list.TotalPages(), list.TotalCount())
	return nil
}

func runOrderDetail(ctx context.Context, e env, args []string) error {
	fs := flag.NewFlagSet("order", flag.ContinueOnError)
	id := fs.String("id", "", "order id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	detail := console.NewOrderDetail(e.client.Orders(), stdinConfirmer(false))
	if err := detail.Load(ctx, *id); err != nil {
		return err
	}
	o, _ := detail.Order()
	return printOrder(o)
}

func printOrder(o api.Order) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "ID\t%s\n", o.ID)
	fmt.Fprintf(w, "Customer\t%s <%s>\n", o.Name, o.Email)
	fmt.Fprintf(w, "Address\t%s\n", o.StreetAddress)
	fmt.Fprintf(w, "Phone\t%s\n", o.PhoneNumber)
	fmt.Fprintf(w, "Status\t%s\n", o.Status)
	fmt.Fprintf(w, "Payment\t%s\n", o.Payment)
	fmt.Fprintf(w, "Total\t%.2f\n", o.TotalPrice)
	if err := w.Flush(); err != nil {
		return err
	}
	for _, item := range o.Items {
		fmt.Printf("  %d x %s @ %.2f\n", item.Quantity, item.Name, item.Price)
	}
	return nil
}

func runOrderStatus(ctx context.Context, e env, args []string) error {
	fs := flag.NewFlagSet("order-status", flag.ContinueOnError)
	id := fs.String("id", "", "order id")
	status := fs.String("status", "", "new status: "+strings.Join(statusNames(), ", "))
	if err := fs.Parse(args); err != nil {
		return err
	}

	detail := console.NewOrderDetail(e.client.Orders(), stdinConfirmer(false))
	if err := detail.Load(ctx, *id); err != nil {
		return err
	}
	if err := detail.UpdateStatus(ctx, api.Status(*status)); err != nil {
		return err
	}
	o, _ := detail.Order()
	fmt.Printf("order %s is now %s\n", o.ID, o.Status)
	return nil
}

func runOrderDelete(ctx context.Context, e env, args []string) error {
	fs := flag.NewFlagSet("order-delete", flag.ContinueOnError)
	id := fs.String("id", "", "order id")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}

	detail := console.NewOrderDetail(e.client.Orders(), stdinConfirmer(*yes))
	if err := detail.Load(ctx, *id); err != nil {
		return err
	}
	deleted, err := detail.Delete(ctx)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Println("aborted")
		return nil
	}
	fmt.Printf("order %s deleted\n", strings.TrimSpace(*id))
	return nil
}

func runUsers(ctx context.Context, e env, args []string) error {
	fs := flag.NewFlagSet("users", flag.ContinueOnError)
	search := fs.String("search", "", "search term")
	page := fs.Int("page", 1, "page number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	list := console.NewUsersList(e.client.Users(), stdinConfirmer(false), e.log)
	if *search != "" {
		if err := list.Search(ctx, *search); err != nil {
			return err
		}
	} else if err := list.Refresh(ctx); err != nil {
		return err
	}
	if *page > 1 {
		if err := list.GoToPage(ctx, *page); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE")
	for _, u := range list.Items() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("page %d of %d\n", list.Query().Page, list.TotalPages())
	return nil
}

func runUserDetail(ctx context.Context, e env, args []string) error {
	fs := flag.NewFlagSet("user", flag.ContinueOnError)
	id := fs.String("id", "", "user id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	detail := console.NewUserDetail(e.client.Users(), e.client.Orders(), stdinConfirmer(false))
	if err := detail.Load(ctx, *id); err != nil {
		return err
	}
	u, _ := detail.User()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "ID\t%s\n", u.ID)
	fmt.Fprintf(w, "Name\t%s\n", u.Name)
	fmt.Fprintf(w, "Email\t%s\n", u.Email)
	fmt.Fprintf(w, "Role\t%s\n", u.Role)
	fmt.Fprintf(w, "Total paid\t%.2f\n", detail.TotalPaid())
	if err := w.Flush(); err != nil {
		return err
	}
	for _, o := range detail.Orders() {
		fmt.Printf("  %s  %s  %.2f\n", o.ID, o.Status, o.TotalPrice)
	}
	return nil
}

func runUserDelete(ctx context.Context, e env, args []string) error {
	fs := flag.NewFlagSet("user-delete", flag.ContinueOnError)
	id := fs.String("id", "", "user id")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}

	detail := console.NewUserDetail(e.client.Users(), e.client.Orders(), stdinConfirmer(*yes))
	if err := detail.Load(ctx, *id); err != nil {
		return err
	}
	deleted, err := detail.Delete(ctx)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Println("aborted")
		return nil
	}
	fmt.Printf("user %s deleted\n", strings.TrimSpace(*id))
	return nil
}

func statusNames() []string {
	all := api.Statuses()
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = string(s)
	}
	return names
}

// stdinConfirmer prompts on stdin. With yes set it approves everything,
// for scripted use.
func stdinConfirmer(yes bool) console.Confirmer {
	return console.ConfirmerFunc(func(prompt string) bool {
		if yes {
			return true
		}
		fmt.Printf("%s [y/N] ", prompt)
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	})
}
