// worldfetch downloads a world pack (saves plus manifests) from any
// go-getter-supported source (git, http, s3, local dir) into the engine's
// data directory.
package main

import (
	"flag"
	"log"
	"path/filepath"

	get "github.com/hashicorp/go-getter"
)

func main() {
	var (
		src     = flag.String("src", "", "source URL, e.g. git::https://example.com/packs.git//worlds/classic")
		dataDir = flag.String("data-dir", "data", "engine data directory")
		name    = flag.String("name", "", "subdirectory under saves/ to place the pack in (default: flat)")
	)
	flag.Parse()

	if *src == "" {
		log.Fatal("source URL required (-src)")
	}

	dst := filepath.Join(*dataDir, "saves")
	if *name != "" {
		dst = filepath.Join(dst, *name)
	}

	log.Printf("fetching world pack %s -> %s", *src, dst)
	if err := get.Get(dst, *src); err != nil {
		log.Fatalf("fetch failed: %v", err)
	}
	log.Printf("done fetching world pack %s", dst)
}
