// Command galeria is the CLI client for the gallery server: batch photo
// upload (direct or proxied), gallery listing with pagination, and
// zip-on-demand export of every image.
//
// Usage:
//
//	galeria -server http://localhost:8080 upload [-proxied] FILE...
//	galeria -server http://localhost:8080 list [-page N] [-page-size N]
//	galeria -server http://localhost:8080 export [-o archive.zip]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"galeria/internal/client"
	"galeria/internal/export"
	"galeria/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	server := flag.String("server", "http://localhost:8080", "gallery server base URL")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		return fmt.Errorf("usage: galeria [-server URL] <upload|list|export> ...")
	}

	api := client.New(*server, nil)
	ctx := context.Background()

	switch args[0] {
	case "upload":
		return runUpload(ctx, api, args[1:])
	case "list":
		return runList(ctx, api, args[1:])
	case "export":
		return runExport(ctx, api, args[1:])
	default:
		return fmt.Errorf("unknown command %q (expected upload, list or export)", args[0])
	}
}

func runUpload(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	proxied := fs.Bool("proxied", false, "stream bytes through the server instead of uploading directly to storage")
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("upload: no files given")
	}

	var tasks []*client.UploadTask
	for _, path := range fs.Args() {
		t, err := client.NewTask(path)
		if err != nil {
			return fmt.Errorf("upload: reading %s: %w", path, err)
		}
		tasks = append(tasks, t)
	}

	mode := client.ModeDirect
	if *proxied {
		mode = client.ModeProxied
	}

	log.Printf("uploading %d file(s) in %s mode", len(tasks), mode)
	client.NewUploader(api, mode).Run(ctx, tasks)

	failed := 0
	for _, t := range tasks {
		switch t.Status {
		case client.StatusSuccess:
			fmt.Printf("ok    %s -> %s\n", t.Name, t.ViewURL)
		case client.StatusError:
			failed++
			fmt.Printf("fail  %s: %s\n", t.Name, t.Err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("upload: %d of %d file(s) failed", failed, len(tasks))
	}
	return nil
}

func runList(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	page := fs.Int("page", 1, "page to show")
	pageSize := fs.Int("page-size", 20, "images per page")
	_ = fs.Parse(args)

	images, err := api.ListImages(ctx)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}

	pageImages := service.Paginate(images, *page, *pageSize)
	for _, img := range pageImages {
		fmt.Printf("%s  %8d  %s\n", img.LastModified.Format("2006-01-02 15:04"), img.Size, img.Name)
	}
	fmt.Printf("page %d (%d of %d images)\n", *page, len(pageImages), len(images))
	return nil
}

func runExport(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("o", "galeria.zip", "output archive path")
	_ = fs.Parse(args)

	images, err := api.ListImages(ctx)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if len(images) == 0 {
		return fmt.Errorf("export: gallery is empty")
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := export.New(nil).Build(ctx, images, f); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	log.Printf("wrote %d image(s) to %s", len(images), *out)
	return nil
}
