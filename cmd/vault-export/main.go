// Command vault-export converts an Obsidian-style vault into AsciiDoc.
// It either writes the converted tree to a target directory (export) or
// serves the streaming HTTP endpoint (serve).
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-vault-export"
	"github.com/goliatone/go-vault-export/internal/logging/gologger"
	"github.com/goliatone/go-vault-export/pkg/interfaces"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "export":
		err = runExport(os.Args[2:])
	case "serve":
		err = runServe(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("vault-export: %v", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: vault-export <export|serve> [flags]")
}

func runExport(args []string) error {
	fs := flag.NewFlagSet("vault-export export", flag.ExitOnError)
	vaultRoot := fs.String("vault", ".", "Path to the vault root")
	target := fs.String("target", "", "Export destination (relative targets land beside the vault)")
	includeAssets := fs.Bool("assets", true, "Copy non-document assets")
	configPath := fs.String("config", "", "Optional YAML configuration file")
	logLevel := fs.String("log-level", "info", "Log level (trace..fatal)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := buildConfig(*configPath, *vaultRoot)
	if err != nil {
		return err
	}
	if *target != "" {
		cfg.Export.TargetLocation = *target
	}
	cfg.Export.IncludeAssets = *includeAssets
	cfg.Logging.Level = *logLevel

	module, err := buildModule(cfg)
	if err != nil {
		return err
	}

	report, err := module.Exporter().Export(context.Background(), interfaces.ExportSettings{
		TargetLocation:        cfg.Export.TargetLocation,
		IncludeAssets:         cfg.Export.IncludeAssets,
		PreserveDiagramSource: !cfg.Export.RenderDiagrams,
		Format:                interfaces.FormatAsciiDoc,
	})
	if err != nil {
		return err
	}

	fmt.Printf("exported %d documents and %d assets to %s (%d skipped)\n",
		report.Documents, report.Assets, report.Target, report.Skipped)
	return nil
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("vault-export serve", flag.ExitOnError)
	vaultRoot := fs.String("vault", ".", "Path to the vault root")
	host := fs.String("host", "127.0.0.1", "Listen host")
	port := fs.Int("port", 8989, "Listen port")
	configPath := fs.String("config", "", "Optional YAML configuration file")
	logLevel := fs.String("log-level", "info", "Log level (trace..fatal)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := buildConfig(*configPath, *vaultRoot)
	if err != nil {
		return err
	}
	cfg.Server.Enabled = true
	cfg.Server.Host = *host
	cfg.Server.Port = *port
	cfg.Logging.Level = *logLevel

	module, err := buildModule(cfg)
	if err != nil {
		return err
	}

	srv, err := module.Server()
	if err != nil {
		return err
	}
	if err := srv.Start(); err != nil {
		return err
	}
	fmt.Printf("export server listening on %s\n", srv.Addr())

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	return srv.Stop(context.Background())
}

func buildConfig(configPath, vaultRoot string) (vaultexport.Config, error) {
	if configPath != "" {
		return vaultexport.LoadConfigFile(configPath)
	}
	cfg := vaultexport.DefaultConfig()
	cfg.VaultRoot = vaultRoot
	return cfg, nil
}

func buildModule(cfg vaultexport.Config) (*vaultexport.Module, error) {
	provider, err := gologger.NewProvider(gologger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return nil, err
	}
	return vaultexport.New(cfg, vaultexport.WithLoggerProvider(provider))
}
