// SPDX-License-Identifier: AGPL-3.0-only
// mirrorcli is a headless Mirror client for quick checks from a terminal:
// it logs in, pulls the image feed page by page, and prints it.
package main

import (
	"flag"
	"fmt"
	"log"
	"syscall"

	"golang.org/x/term"

	"github.com/mirrorapp/mirror/internal/api"
	"github.com/mirrorapp/mirror/internal/config"
	"github.com/mirrorapp/mirror/internal/feed"
)

func main() {
	server := flag.String("server", "", "base URL of the Mirror server (falls back to MIRROR_SERVER_ADDRESS)")
	username := flag.String("user", "", "username to log in as")
	pages := flag.Int("pages", 3, "maximum number of feed pages to print")
	flag.Parse()

	if *username == "" {
		log.Fatal("--user is required")
	}

	address := *server
	if address == "" {
		cfg, err := config.Load()
		if err != nil {
			log.Fatalln(err)
		}
		address = cfg.ServerAddress
	}

	fmt.Printf("Password for %s: ", *username)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		log.Fatalf("\nFailed to read password: %v", err)
	}
	fmt.Println()

	client := api.NewClient(address, config.RequestTimeout)

	if err := client.Login(*username, string(bytePassword)); err != nil {
		if detail := api.Detail(err); detail != "" {
			log.Fatalf("Login failed: %s", detail)
		}
		log.Fatalf("Login failed: %v", err)
	}

	ctrl := feed.NewController(client, *username)
	if err := ctrl.LoadInitial(); err != nil {
		log.Fatalf("Failed to load the feed: %v", err)
	}
	for i := 1; i < *pages && !ctrl.Exhausted(); i++ {
		if err := ctrl.TriggerLoadMore(); err != nil {
			log.Printf("Page %d skipped: %v", ctrl.Cursor(), err)
		}
	}

	posts := ctrl.Posts()
	if len(posts) == 0 {
		fmt.Println("The feed is empty.")
		return
	}

	for _, p := range posts {
		fmt.Printf("@%s: %s\n", p.Username, p.Text)
		fmt.Printf("  media: %s\n", client.FileURL(p.MediaPath))
		fmt.Printf("  likes: %d, comments: %d\n", len(p.Likes), len(p.Comments))
		for _, comment := range p.Comments {
			fmt.Printf("    %s: %s\n", comment.Username, comment.Text)
		}
	}
}
