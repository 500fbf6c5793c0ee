package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bgentry/speakeasy"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"kachaka-map-exporter/internal/config"
	"kachaka-map-exporter/internal/exporter"
	"kachaka-map-exporter/internal/logging"
	"kachaka-map-exporter/internal/relay"
)

func NewExportCmd() *cobra.Command {
	var configPath string
	var robots []string
	var output string
	var logDir string
	var edgeHost string
	var edgeUser string
	var edgeMapDir string
	var identityFile string
	var localOnly bool
	var concurrency int
	var runID string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Fetch the current map from each robot and relay it to the edge PC",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if len(robots) > 0 {
				cfg.Robots = robots
			}
			if output != "" {
				cfg.OutputDir = output
			}
			if logDir != "" {
				cfg.LogDir = logDir
			}
			if edgeHost != "" {
				cfg.EdgePC.Host = edgeHost
			}
			if edgeUser != "" {
				cfg.EdgePC.User = edgeUser
			}
			if edgeMapDir != "" {
				cfg.EdgePC.MapDir = edgeMapDir
			}
			if concurrency > 0 {
				cfg.Concurrency = concurrency
			}
			if len(cfg.Robots) == 0 {
				return errors.New("no robot addresses configured (use --robot or a config file)")
			}

			if runID == "" {
				runID = uuid.NewString()
			}

			logPath, closeLog, err := logging.Setup(cfg.LogDir)
			if err != nil {
				return err
			}
			defer closeLog()

			ctx := context.Background()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			var rly *relay.Relay
			if !localOnly {
				creds, err := resolveCredentials(identityFile)
				if err != nil {
					return err
				}
				rly = relay.New(cfg.EdgePC.Host, cfg.EdgePC.User, cfg.EdgePC.MapDir, creds, relay.NewExecRunner())
			}

			res, err := exporter.Run(ctx, exporter.Options{
				Targets:     cfg.Robots,
				OutputDir:   cfg.OutputDir,
				Relay:       rly,
				Concurrency: cfg.Concurrency,
				RunID:       runID,
				StartedAt:   time.Now().UTC(),
			})
			if err != nil {
				return err
			}

			fmt.Printf("run=%s log=%s robots=%d succeeded=%d failed=%d artifacts=%d\n",
				res.RunID, logPath, len(cfg.Robots), res.Succeeded, res.Failed, len(res.Artifacts))
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "YAML config file")
	cmd.Flags().StringArrayVar(&robots, "robot", nil, "Robot API endpoint host:port (repeatable, overrides config)")
	cmd.Flags().StringVar(&output, "output", "", "Local output directory (default from config)")
	cmd.Flags().StringVar(&logDir, "log-dir", "", "Run log directory (default from config)")
	cmd.Flags().StringVar(&edgeHost, "edge-host", "", "Edge PC host (default from config)")
	cmd.Flags().StringVar(&edgeUser, "edge-user", "", "Edge PC SSH user (default from config)")
	cmd.Flags().StringVar(&edgeMapDir, "edge-map-dir", "", "Map root directory on the edge PC (default from config)")
	cmd.Flags().StringVar(&identityFile, "identity-file", "", "SSH identity file (skips the password prompt)")
	cmd.Flags().BoolVar(&localOnly, "local-only", false, "Write map files locally without transferring to the edge PC")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Max robots exported in parallel (0 = all at once)")
	cmd.Flags().StringVar(&runID, "run-id", "", "Run ID (default: random UUID)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Overall run timeout (0 = none)")
	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// resolveCredentials picks SSH authentication for the relay: an identity
// file when one is given, otherwise a single interactive password prompt
// shared by every remote operation in the run.
func resolveCredentials(identityFile string) (relay.Credentials, error) {
	if identityFile != "" {
		return relay.KeyCredentials{IdentityFile: identityFile}, nil
	}
	password, err := speakeasy.Ask("Enter your SSH password: ")
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	return relay.PasswordCredentials{Password: password}, nil
}
