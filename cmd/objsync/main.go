package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/cubbit/objsync/internal/logger"
	"github.com/cubbit/objsync/pkg/config"
	"github.com/cubbit/objsync/pkg/metrics"
	"github.com/cubbit/objsync/pkg/mirror"
	"github.com/cubbit/objsync/pkg/remote"
	"github.com/cubbit/objsync/pkg/share"
)

// version is overridden at build time via -ldflags "-X main.version=...".
var version = "dev"

const usageText = `objsync - keep a local file in step with an object in S3-compatible storage

Usage:
  objsync sync -key KEY [-dest PATH] [flags]    Mirror a remote object into a local file
  objsync share -key KEY [-expiry SECONDS] [flags]  Print a presigned download link
  objsync init [-force]                         Write a starter configuration file
  objsync version                               Print the version

Flags for sync and share:
  -config PATH     Configuration file (default: search standard locations)
  -bucket NAME     Override the configured bucket
  -log-level LEVEL Override the configured log level (DEBUG, INFO, WARN, ERROR)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}

	switch os.Args[1] {
	case "sync":
		runSync(os.Args[2:])
	case "share":
		runShare(os.Args[2:])
	case "init":
		runInit(os.Args[2:])
	case "version", "-version", "--version":
		fmt.Printf("objsync %s\n", version)
	case "help", "-h", "-help", "--help":
		fmt.Print(usageText)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}
}

// commonFlags are shared by the sync and share subcommands.
type commonFlags struct {
	configPath string
	bucket     string
	logLevel   string
}

func registerCommon(fs *flag.FlagSet) *commonFlags {
	c := &commonFlags{}
	fs.StringVar(&c.configPath, "config", "", "Path to configuration file")
	fs.StringVar(&c.bucket, "bucket", "", "Override the configured bucket")
	fs.StringVar(&c.logLevel, "log-level", "", "Override the configured log level")
	return c
}

func runSync(args []string) {
	fs := flag.NewFlagSet("sync", flag.ExitOnError)
	common := registerCommon(fs)
	key := fs.String("key", "", "Object key to mirror (required)")
	dest := fs.String("dest", "", "Destination path (default: <sync.local_dir>/<key>)")
	fs.Parse(args)

	if *key == "" {
		log.Fatalf("sync: -key is required")
	}

	cfg := loadConfig(common)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handle := buildHandle(ctx, cfg, *key)

	localPath := *dest
	if localPath == "" {
		localPath = filepath.Join(cfg.Sync.LocalDir, filepath.FromSlash(*key))
	}

	syncer := mirror.NewSyncer(os.FileMode(cfg.Sync.DirMode), os.FileMode(cfg.Sync.FileMode))
	outcome := syncer.SyncFile(ctx, handle, localPath)

	fmt.Printf("exists:     %v\n", outcome.Exists)
	fmt.Printf("up-to-date: %v\n", outcome.UpToDate)
	fmt.Printf("copied:     %v\n", outcome.Copied)

	logMetricsSummary(cfg)
}

func runShare(args []string) {
	fs := flag.NewFlagSet("share", flag.ExitOnError)
	common := registerCommon(fs)
	key := fs.String("key", "", "Object key to link to (required)")
	expiry := fs.Int("expiry", 0, "Link lifetime in seconds (default: share.default_expiry_seconds)")
	fs.Parse(args)

	if *key == "" {
		log.Fatalf("share: -key is required")
	}

	cfg := loadConfig(common)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handle := buildHandle(ctx, cfg, *key)

	svc := share.NewService(time.Duration(cfg.Share.DefaultExpirySeconds) * time.Second)
	url, ok := svc.DownloadLink(ctx, handle, time.Duration(*expiry)*time.Second)

	logMetricsSummary(cfg)

	if !ok {
		logger.Error("No download link available for %s", handle.Ref())
		os.Exit(1)
	}

	fmt.Println(url)
}

func runInit(args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	force := fs.Bool("force", false, "Overwrite an existing configuration file")
	fs.Parse(args)

	path, err := config.InitConfig(*force)
	if err != nil {
		log.Fatalf("Failed to write configuration: %v", err)
	}

	fmt.Printf("Configuration written to %s\n", path)
}

// loadConfig loads and validates the configuration, applies command-line
// overrides and configures logging. Any failure here is fatal: a broken
// configuration makes every subsequent operation meaningless.
func loadConfig(common *commonFlags) *config.Config {
	cfg, err := config.Load(common.configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if common.bucket != "" {
		cfg.Storage.S3["bucket"] = common.bucket
	}
	if common.logLevel != "" {
		cfg.Logging.Level = strings.ToUpper(common.logLevel)
	}

	if err := logger.Configure(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output); err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}

	return cfg
}

// buildHandle constructs the remote object handle, wiring in metrics when
// enabled. Construction failures are fatal; per-object operations after
// this point never are.
func buildHandle(ctx context.Context, cfg *config.Config, key string) *remote.Handle {
	var opts []remote.Option
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		if m := metrics.NewRemoteMetrics(); m != nil {
			opts = append(opts, remote.WithMetrics(m))
		}
	}

	handle, err := config.CreateRemoteHandle(ctx, &cfg.Storage, key, opts...)
	if err != nil {
		log.Fatalf("Failed to create storage handle: %v", err)
	}

	return handle
}

// logMetricsSummary logs the collected metric families at debug level.
// A one-shot command has no scrape endpoint, so this is the only place
// the counters become visible.
func logMetricsSummary(cfg *config.Config) {
	if !cfg.Metrics.Enabled || !metrics.IsEnabled() {
		return
	}

	families, err := metrics.GetRegistry().Gather()
	if err != nil {
		logger.Warn("Failed to gather metrics: %v", err)
		return
	}

	for _, family := range families {
		logger.Debug("metric %s: %d series", family.GetName(), len(family.GetMetric()))
	}
}
