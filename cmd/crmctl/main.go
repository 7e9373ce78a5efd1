// crmctl is a small terminal client for the CRM API. It keeps the issued
// token under the user config dir, so a login survives between runs.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"golang.org/x/term"

	"github.com/asclegal/crm-api/internal/client"
)

func main() {
	server := flag.String("server", "http://localhost:8080", "CRM API base URL")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	session := client.NewSession(*server, client.NewFileTokenStore(tokenPath()))
	ctx := context.Background()

	var err error
	switch cmd := flag.Arg(0); cmd {
	case "register":
		err = runRegister(ctx, session)
	case "login":
		err = runLogin(ctx, session)
	case "logout":
		err = session.Logout()
	case "profile":
		err = printJSON(func() (any, error) { return session.Profile(ctx) })
	case "customers":
		err = printJSON(func() (any, error) { return session.Customers(ctx) })
	case "customer":
		if flag.NArg() < 2 {
			err = fmt.Errorf("usage: crmctl customer <id>")
			break
		}
		err = printJSON(func() (any, error) { return session.Customer(ctx, flag.Arg(1)) })
	case "history":
		if flag.NArg() < 2 {
			err = fmt.Errorf("usage: crmctl history <id>")
			break
		}
		err = printJSON(func() (any, error) { return session.CustomerHistory(ctx, flag.Arg(1)) })
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: crmctl [-server URL] <command>

commands:
  register              create an account and sign in
  login                 sign in with email and password
  logout                drop the stored session
  profile               show the authenticated profile
  customers             list customers
  customer <id>         show one customer
  history <id>          show a customer's history timeline`)
}

func tokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "crmctl", "session.json")
}

func runLogin(ctx context.Context, session *client.Session) error {
	email := prompt("Email: ")
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	user, err := session.Login(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s (%s)\n", user.Name, user.Email)
	return nil
}

func runRegister(ctx context.Context, session *client.Session) error {
	in := client.RegisterInput{
		Name:     prompt("Name: "),
		Email:    prompt("Email: "),
		Phone:    prompt("Phone: "),
		Timezone: prompt("Timezone: "),
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}
	in.Password = password

	user, err := session.Register(ctx, in)
	if err != nil {
		return err
	}
	fmt.Printf("registered %s (%s)\n", user.Name, user.Email)
	return nil
}

func prompt(label string) string {
	fmt.Print(label)
	var value string
	fmt.Scanln(&value)
	return value
}

func promptPassword(label string) (string, error) {
	fmt.Print(label)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func printJSON(fetch func() (any, error)) error {
	value, err := fetch()
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
