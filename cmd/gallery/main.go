// Package main is a terminal gallery browser. It logs into a running
// API and pages through images the same way the web client does.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/pictor/pictor/internal/gallery"
)

func main() {
	var (
		baseURL  = flag.String("base-url", "http://localhost:8000", "API base URL")
		username = flag.String("username", "", "username")
		password = flag.String("password", "", "password")
		register = flag.Bool("register", false, "register instead of logging in")
		keyword  = flag.String("keyword", "", "initial keyword filter")
		limit    = flag.Int("limit", gallery.DefaultLimit, "page size")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: gallery -username <name> -password <pass> [-register] [-base-url URL] [-keyword KW] [-limit N]")
		os.Exit(2)
	}

	ctx := context.Background()
	client := gallery.NewClient(*baseURL, gallery.WithLimit(*limit), gallery.WithLogger(logger))

	var err error
	if *register {
		err = client.Register(ctx, *username, *password)
	} else {
		err = client.Login(ctx, *username, *password)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *keyword != "" {
		client.SetKeyword(ctx, *keyword)
	}

	shown := render(client.State(), 0)
	repl(ctx, client, shown)
}

// repl reads commands from stdin until EOF or quit.
func repl(ctx context.Context, client *gallery.Client, shown int) {
	fmt.Println(`commands: [m]ore, [f]ilter <keyword>, [l]imit <n>, [q]uit`)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		switch cmd {
		case "m", "more", "":
			client.FetchMore(ctx)
		case "f", "filter":
			client.SetKeyword(ctx, strings.TrimSpace(arg))
			shown = 0
		case "l", "limit":
			n, err := strconv.Atoi(strings.TrimSpace(arg))
			if err != nil {
				fmt.Println("limit wants a number")
				continue
			}
			client.SetLimit(ctx, n)
			shown = 0
		case "q", "quit", "exit":
			return
		default:
			fmt.Printf("unknown command %q\n", cmd)
			continue
		}

		shown = render(client.State(), shown)
	}
}

// render prints items not shown yet and returns the new shown count.
func render(s gallery.State, shown int) int {
	if s.Phase == gallery.PhaseErrored {
		fmt.Printf("error: %s\n", s.Message)
		return shown
	}

	if shown > len(s.Items) {
		shown = 0
	}
	for _, item := range s.Items[shown:] {
		fmt.Printf("%s  %4dx%-4d  %-40s  %s\n",
			item.ID, item.Width, item.Height, item.URL, strings.Join(item.Keywords, ","))
	}

	if s.HasMore {
		fmt.Printf("-- %d shown, more available --\n", len(s.Items))
	} else {
		fmt.Printf("-- %d shown, end of listing --\n", len(s.Items))
	}
	return len(s.Items)
}
