package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dgallion1/docnav/internal/api"
	"github.com/dgallion1/docnav/internal/build"
	"github.com/dgallion1/docnav/internal/config"
	"github.com/dgallion1/docnav/internal/loader"
	"github.com/dgallion1/docnav/internal/navtree"
	"github.com/dgallion1/docnav/internal/notify"
	"github.com/dgallion1/docnav/internal/orderconfig"
	"github.com/dgallion1/docnav/internal/resolver"
	"github.com/fatih/color"
	cli "github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

func main() {
	app := &cli.Command{
		Name:        "docnav",
		Usage:       "Documentation navigation resolver",
		Description: "Builds ordered navigation trees from docs directories and sidebar configs. Run 'docnav serve' for the HTTP API.",
		Commands: []*cli.Command{
			resolveCmd(),
			checkCmd(),
			initCmd(),
			serveCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("error:"), err)
		os.Exit(1)
	}
}

func resolveCmd() *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "Resolve and print the navigation tree for a docs directory",
		ArgsUsage: "[dir]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "sidebar", Usage: "Sidebar config file (default: probe inside the docs dir)"},
			&cli.StringFlag{Name: "policy", Usage: "Unknown-key policy: warn, strict, or silent"},
			&cli.StringFlag{Name: "out", Usage: "Write the manifest to this directory"},
			&cli.BoolFlag{Name: "json", Usage: "Print the manifest as JSON instead of a tree"},
			&cli.BoolFlag{Name: "verbose", Usage: "Show library logging"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			root, err := rootFromArg(cmd.Args().First())
			if err != nil {
				return err
			}
			policy, err := policyFlag(cmd)
			if err != nil {
				return err
			}

			runner := build.NewRunner(cmd.String("sidebar"), policy, cliLogger(cmd))
			res, err := runner.Build(ctx, root)
			if err != nil {
				return err
			}

			if cmd.Bool("json") {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(build.ManifestFor(res)); err != nil {
					return err
				}
			} else {
				printTree(res.Tree)
			}
			printFindings(res.Report)

			if out := cmd.String("out"); out != "" {
				path, err := build.WriteManifest(out, build.ManifestFor(res))
				if err != nil {
					return err
				}
				fmt.Fprintf(os.Stderr, "manifest written to %s\n", path)
			}
			return nil
		},
	}
}

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Validate a docs directory against its sidebar config",
		ArgsUsage: "[dir]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "sidebar", Usage: "Sidebar config file (default: probe inside the docs dir)"},
			&cli.StringFlag{Name: "policy", Usage: "Unknown-key policy: warn, strict, or silent"},
			&cli.BoolFlag{Name: "strict", Usage: "Exit non-zero when any warning is found"},
			&cli.BoolFlag{Name: "verbose", Usage: "Show library logging"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			root, err := rootFromArg(cmd.Args().First())
			if err != nil {
				return err
			}

			tree, err := loader.Dir(ctx, root.Dir, loader.WithLogger(cliLogger(cmd)))
			if err != nil {
				return err
			}

			cfgPath := cmd.String("sidebar")
			if cfgPath == "" {
				cfgPath = orderconfig.Find(root.Dir)
			}
			cfg := orderconfig.Empty()
			if cfgPath != "" {
				if cfg, err = orderconfig.Load(cfgPath); err != nil {
					return err
				}
			}
			policy, err := policyFlag(cmd)
			if err != nil {
				return err
			}
			if policy != "" {
				cfg = cfg.WithPolicy(policy)
			}

			resolved, report, err := resolver.Resolve(tree, cfg)
			if err != nil {
				return err
			}

			// Config entries addressing no category are stale: they order
			// nothing and usually point at a renamed or deleted directory.
			categories := make(map[string]bool)
			docs := 0
			resolved.Walk(func(n *navtree.Node) error {
				switch n.Kind {
				case navtree.KindCategory:
					categories[n.PathString()] = true
				case navtree.KindDocument:
					docs++
				}
				return nil
			})
			var stale []string
			for _, p := range cfg.Paths() {
				if !categories[p] {
					stale = append(stale, p)
				}
			}

			printFindings(report)
			for _, p := range stale {
				fmt.Fprintf(os.Stderr, "%s sidebar entry %q matches no category\n", color.YellowString("warning:"), p)
			}

			fmt.Printf("checked %d documents in %d categories\n", docs, len(categories)-1)
			problems := len(report.Warnings) + len(stale)
			if problems == 0 {
				fmt.Println(color.GreenString("✓") + " no problems found")
				return nil
			}
			if cmd.Bool("strict") {
				return fmt.Errorf("%d problems found", problems)
			}
			fmt.Printf("%d problems found\n", problems)
			return nil
		},
	}
}

func initCmd() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Generate a sidebar.yaml capturing the current order",
		ArgsUsage: "[dir]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "sidebar", Usage: "Output file (default: sidebar.yaml inside the docs dir)"},
			&cli.BoolFlag{Name: "force", Usage: "Overwrite an existing sidebar config"},
			&cli.BoolFlag{Name: "verbose", Usage: "Show library logging"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			root, err := rootFromArg(cmd.Args().First())
			if err != nil {
				return err
			}

			tree, err := loader.Dir(ctx, root.Dir, loader.WithLogger(cliLogger(cmd)))
			if err != nil {
				return err
			}

			path := cmd.String("sidebar")
			if path == "" {
				path = filepath.Join(root.Dir, "sidebar.yaml")
			}
			if !cmd.Bool("force") {
				if existing := orderconfig.Find(root.Dir); existing != "" {
					return fmt.Errorf("sidebar config already exists: %s (use --force to overwrite)", existing)
				}
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("sidebar config already exists: %s (use --force to overwrite)", path)
				}
			}

			// Snapshot the loader order as explicit entries, so editing a
			// single list is all it takes to reorder a level.
			order := make(map[string][]string)
			tree.Walk(func(n *navtree.Node) error {
				if n.Kind == navtree.KindCategory && len(n.Children) > 0 {
					order[n.PathString()] = n.ChildKeys()
				}
				return nil
			})
			if len(order) == 0 {
				return fmt.Errorf("no orderable children found in %s", root.Dir)
			}

			data, err := yaml.Marshal(struct {
				Order map[string][]string `yaml:"order"`
			}{Order: order})
			if err != nil {
				return fmt.Errorf("marshal sidebar config: %w", err)
			}

			var buf bytes.Buffer
			buf.WriteString("# Sidebar ordering for this docs tree.\n")
			buf.WriteString("# Keys are category paths (\".\" is the root); values list children in\n")
			buf.WriteString("# display order. Children left out are appended in file order.\n")
			buf.Write(data)
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}

			fmt.Printf("\n%s Created %s with %d entries\n\n", color.GreenString("✓"), color.CyanString(path), len(order))
			fmt.Printf("  Next steps:\n")
			fmt.Printf("    1. Edit %s to reorder entries\n", color.CyanString(path))
			fmt.Printf("    2. Run %s to validate\n", color.CyanString("docnav check "+root.Dir))
			fmt.Printf("    3. Run %s to print the tree\n\n", color.CyanString("docnav resolve "+root.Dir))
			return nil
		},
	}
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the docnav HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Usage: "Listen port (overrides PORT)"},
			&cli.StringFlag{Name: "roots", Usage: "Docs roots spec (overrides DOCNAV_DOCS_ROOTS)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

			cfg := config.Load()
			if v := cmd.String("port"); v != "" {
				cfg.Port = v
			}
			if v := cmd.String("roots"); v != "" {
				cfg.DocsRoots = v
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			roots, err := build.ParseRoots(cfg.DocsRoots)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			webhook := notify.NewWebhook(cfg.WebhookURL, cfg.WebhookTimeout, log)
			runner := build.NewRunner(cfg.SidebarFile, cfg.Policy(), log)
			orch := build.NewOrchestrator(cfg, roots, runner, webhook, log)
			orch.Start(ctx)

			// Build everything once at startup so the API has trees to serve.
			if _, err := orch.Submit(nil); err != nil {
				log.Warn("initial build not queued", "error", err)
			}

			srv := api.NewServer(orch, log, cfg)

			httpServer := &http.Server{
				Addr:         ":" + cfg.Port,
				Handler:      srv,
				ReadTimeout:  30 * time.Second,
				WriteTimeout: 120 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			// Graceful shutdown.
			go func() {
				sigCh := make(chan os.Signal, 1)
				signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
				<-sigCh
				log.Info("shutting down...")

				orch.Stop()

				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer shutdownCancel()
				httpServer.Shutdown(shutdownCtx)

				webhook.Close()
			}()

			log.Info("starting docnav", "port", cfg.Port, "roots", len(roots))
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}
}

// rootFromArg turns a single CLI argument into a build root. The
// argument accepts the same "name=dir" form as DOCNAV_DOCS_ROOTS.
func rootFromArg(arg string) (build.Root, error) {
	if arg == "" {
		arg = "docs"
	}
	roots, err := build.ParseRoots(arg)
	if err != nil {
		return build.Root{}, err
	}
	if len(roots) != 1 {
		return build.Root{}, fmt.Errorf("expected a single docs directory, got %d", len(roots))
	}
	return roots[0], nil
}

func policyFlag(cmd *cli.Command) (orderconfig.Policy, error) {
	v := cmd.String("policy")
	if v == "" {
		return "", nil
	}
	return orderconfig.ParsePolicy(v)
}

// cliLogger returns the logger handed to the library layers. It stays
// quiet unless --verbose is set; the CLI prints findings itself.
func cliLogger(cmd *cli.Command) *slog.Logger {
	level := slog.LevelError
	if cmd.Bool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func printTree(root *navtree.Node) {
	title := root.Title
	if title == "" {
		title = loader.DefaultRootTitle
	}
	fmt.Println(color.New(color.Bold).Sprint(title))
	printChildren(root.Children, "")
}

func printChildren(nodes []*navtree.Node, prefix string) {
	for i, n := range nodes {
		connector, childPrefix := "├── ", prefix+"│   "
		if i == len(nodes)-1 {
			connector, childPrefix = "└── ", prefix+"    "
		}
		label := n.Title
		if n.Kind == navtree.KindCategory {
			label = color.CyanString(n.Title) + "/"
		}
		fmt.Println(prefix + connector + label)
		printChildren(n.Children, childPrefix)
	}
}

func printFindings(report *resolver.Report) {
	for _, f := range report.Warnings {
		fmt.Fprintf(os.Stderr, "%s %s: configured key %q matches no child\n", color.YellowString("warning:"), f.Path, f.Key)
	}
	for _, f := range report.Notices {
		fmt.Fprintf(os.Stderr, "%s %s: %q not mentioned in sidebar config\n", color.CyanString("notice:"), f.Path, f.Key)
	}
}
