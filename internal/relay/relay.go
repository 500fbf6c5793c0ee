package relay

import (
	"context"
	"fmt"
	"path"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Relay copies fetched map artifacts onto the central edge PC. It shells
// out to the system ssh and scp, so the host's known_hosts and ssh config
// apply unchanged.
type Relay struct {
	Host   string
	User   string
	MapDir string

	creds  Credentials
	runner Runner
}

// New returns a Relay for the edge PC at host, writing under mapDir.
func New(host, user, mapDir string, creds Credentials, runner Runner) *Relay {
	return &Relay{
		Host:   host,
		User:   user,
		MapDir: mapDir,
		creds:  creds,
		runner: runner,
	}
}

func (r *Relay) dest() string {
	return r.User + "@" + r.Host
}

func (r *Relay) run(ctx context.Context, argv []string) ([]byte, error) {
	argv = r.creds.Wrap(argv)
	return r.runner.Run(ctx, argv[0], argv[1:]...)
}

// CheckConnection verifies that the edge PC accepts our credentials by
// running a trivial remote command.
func (r *Relay) CheckConnection(ctx context.Context) error {
	out, err := r.run(ctx, []string{"ssh", r.dest(), "echo 'SSH connection successful'"})
	if err != nil {
		return fmt.Errorf("ssh connection to %s failed: %w: %s", r.dest(), err, trimOutput(out))
	}
	log.Info("SSH connection successful")
	return nil
}

// EnsureRemoteDir creates the per-robot directory under the edge PC's map
// root. mkdir -p makes this idempotent across runs.
func (r *Relay) EnsureRemoteDir(ctx context.Context, robotDir string) error {
	remote := path.Join(r.MapDir, robotDir)
	out, err := r.run(ctx, []string{"ssh", r.dest(), "mkdir -p " + remote})
	if err != nil {
		return fmt.Errorf("create directory %s on edge PC: %w: %s", remote, err, trimOutput(out))
	}
	log.Infof("Successfully created directory %s on edge PC", remote)
	return nil
}

// CopyFile copies one local artifact into the robot's directory on the
// edge PC.
func (r *Relay) CopyFile(ctx context.Context, localPath, robotDir string) error {
	remote := path.Join(r.MapDir, robotDir) + "/"
	out, err := r.run(ctx, []string{"scp", localPath, r.dest() + ":" + remote})
	if err != nil {
		return fmt.Errorf("transfer %s to %s: %w: %s", localPath, remote, err, trimOutput(out))
	}
	log.Infof("Successfully transferred %s to %s", localPath, remote)
	return nil
}

func trimOutput(b []byte) string {
	return strings.TrimSpace(string(b))
}
