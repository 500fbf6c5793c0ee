package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"kachaka-map-exporter/internal/kachaka"
	"kachaka-map-exporter/internal/relay"
)

// NewCheckCmd probes every configured endpoint without writing anything,
// so an operator can validate fleet config before a real export.
func NewCheckCmd() *cobra.Command {
	var configPath string
	var robots []string
	var edgeHost string
	var edgeUser string
	var edgeMapDir string
	var identityFile string
	var localOnly bool
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Probe robot and edge PC connectivity without exporting",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if len(robots) > 0 {
				cfg.Robots = robots
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
			if localOnly && len(cfg.Robots) == 0 {
				return errors.New("nothing to check (no robots configured)")
			}

			ctx := context.Background()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			failed := 0

			if !localOnly {
				creds, err := resolveCredentials(identityFile)
				if err != nil {
					return err
				}
				rly := relay.New(cfg.EdgePC.Host, cfg.EdgePC.User, cfg.EdgePC.MapDir, creds, relay.NewExecRunner())
				if err := rly.CheckConnection(ctx); err != nil {
					fmt.Printf("edge %s@%s: FAILED: %v\n", cfg.EdgePC.User, cfg.EdgePC.Host, err)
					failed++
				} else {
					fmt.Printf("edge %s@%s: OK\n", cfg.EdgePC.User, cfg.EdgePC.Host)
				}
			}

			for _, target := range cfg.Robots {
				client := kachaka.NewClient(target)
				serial, err := client.GetRobotSerialNumber(ctx)
				if err != nil {
					fmt.Printf("robot %s: FAILED: %v\n", target, err)
					failed++
					continue
				}
				fmt.Printf("robot %s: OK (serial %s)\n", target, serial)
			}

			if failed > 0 {
				return fmt.Errorf("%d check(s) failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "YAML config file")
	cmd.Flags().StringArrayVar(&robots, "robot", nil, "Robot API endpoint host:port (repeatable, overrides config)")
	cmd.Flags().StringVar(&edgeHost, "edge-host", "", "Edge PC host (default from config)")
	cmd.Flags().StringVar(&edgeUser, "edge-user", "", "Edge PC SSH user (default from config)")
	cmd.Flags().StringVar(&edgeMapDir, "edge-map-dir", "", "Map root directory on the edge PC (default from config)")
	cmd.Flags().StringVar(&identityFile, "identity-file", "", "SSH identity file (skips the password prompt)")
	cmd.Flags().BoolVar(&localOnly, "local-only", false, "Skip the edge PC check, probe robots only")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Overall check timeout (0 = none)")
	return cmd
}
