package exporter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"kachaka-map-exporter/internal/kachaka"
	"kachaka-map-exporter/internal/mapfile"
	"kachaka-map-exporter/internal/relay"
)

// ErrNoTargets is returned when a run is started with no robot addresses.
var ErrNoTargets = errors.New("no robot targets configured")

type Options struct {
	// Targets are robot service endpoints, host:port.
	Targets   []string
	OutputDir string

	// Relay transfers each robot's files to the edge PC after the local
	// write. Nil keeps the run local-only.
	Relay *relay.Relay

	// Concurrency caps the number of robots exported at once. Zero or
	// negative runs all targets at the same time.
	Concurrency int

	RunID     string
	StartedAt time.Time
}

type Result struct {
	RunID     string
	Succeeded int
	Failed    int
	Artifacts []Artifact
}

// Run exports the current map from every target concurrently, one unit of
// work per robot, and waits for all of them. A failing robot is logged and
// counted; it never stops the others. When a relay is configured, its
// connectivity check gates the whole run: no robot is contacted unless the
// edge PC is reachable first.
func Run(ctx context.Context, opts Options) (Result, error) {
	if len(opts.Targets) == 0 {
		return Result{}, ErrNoTargets
	}

	if opts.Relay != nil {
		if err := opts.Relay.CheckConnection(ctx); err != nil {
			log.Error("Failed to establish SSH connection. Exiting.")
			return Result{}, err
		}
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return Result{}, err
	}

	var sem chan struct{}
	if opts.Concurrency > 0 {
		sem = make(chan struct{}, opts.Concurrency)
	}

	var (
		mu        sync.Mutex
		artifacts []Artifact
		failed    int
	)

	var wg sync.WaitGroup
	for _, target := range opts.Targets {
		wg.Add(1)
		go func(target string) {
			defer wg.Done()
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}

			arts, err := exportOne(ctx, target, opts)

			mu.Lock()
			artifacts = append(artifacts, arts...)
			if err != nil {
				failed++
			}
			mu.Unlock()

			if err != nil {
				log.Errorf("Error exporting map from %s: %v", target, err)
			}
		}(target)
	}
	wg.Wait()

	meta := map[string]string{
		"targets": fmt.Sprintf("%d", len(opts.Targets)),
		"failed":  fmt.Sprintf("%d", failed),
	}
	if !opts.StartedAt.IsZero() {
		meta["started_at"] = opts.StartedAt.UTC().Format(time.RFC3339Nano)
	}

	m := Manifest{
		RunID:     opts.RunID,
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
		Artifacts: artifacts,
		Metadata:  meta,
	}
	if err := WriteManifest(opts.OutputDir, m); err != nil {
		return Result{}, err
	}

	log.Info("Map transfer process completed")

	return Result{
		RunID:     opts.RunID,
		Succeeded: len(opts.Targets) - failed,
		Failed:    failed,
		Artifacts: artifacts,
	}, nil
}

// exportOne fetches one robot's map and writes the three artifact files,
// then hands them to the relay when one is configured. Artifacts written
// before a failure are still returned so the manifest records them.
func exportOne(ctx context.Context, target string, opts Options) ([]Artifact, error) {
	client := kachaka.NewClient(target)

	serial, err := client.GetRobotSerialNumber(ctx)
	if err != nil {
		return nil, err
	}
	log.Infof("---------- serial number (%s): %s ----------", target, serial)

	mapID, err := client.GetCurrentMapId(ctx)
	if err != nil {
		return nil, err
	}
	log.Infof("---------- map id (%s): %s ----------", target, mapID)

	version, err := client.GetRobotVersion(ctx)
	if err != nil {
		return nil, err
	}
	log.Infof("---------- robot version (%s): %s ----------", target, version)

	m, cursor, err := client.GetPngMap(ctx)
	if err != nil {
		return nil, err
	}
	log.Infof("---------- map (%s): %q %dx%d ----------", target, m.Name, m.Width, m.Height)

	name := mapfile.Sanitize(m.Name)
	pngName := name + ".png"
	yamlName := name + "_metadata.yaml"
	binName := name + "_metadata.bin"

	robotDir := "Kachaka_" + serial
	localDir := filepath.Join(opts.OutputDir, robotDir)
	if err := os.MkdirAll(localDir, 0o755); err != nil {
		return nil, err
	}
	log.Infof("Successfully created local directory: %s", localDir)

	var artifacts []Artifact
	record := func(fileName string) error {
		p := filepath.Join(localDir, fileName)
		sha, size, err := SHA256File(p)
		if err != nil {
			return err
		}
		artifacts = append(artifacts, Artifact{
			RelativePath: filepath.ToSlash(filepath.Join(robotDir, fileName)),
			Robot:        serial,
			Target:       target,
			CollectedAt:  time.Now().UTC().Format(time.RFC3339Nano),
			SizeBytes:    size,
			SHA256:       sha,
		})
		return nil
	}

	if err := mapfile.WriteFileAtomic(filepath.Join(localDir, pngName), m.Data, 0o644); err != nil {
		return artifacts, err
	}
	log.Infof("Successfully saved %s locally.", pngName)
	if err := record(pngName); err != nil {
		return artifacts, err
	}

	meta := mapfile.Metadata{
		Name:       m.Name,
		Resolution: m.Resolution,
		Width:      m.Width,
		Height:     m.Height,
		Origin: mapfile.Origin{
			X:     m.Origin.X,
			Y:     m.Origin.Y,
			Theta: m.Origin.Theta,
		},
	}
	log.Infof("Extracted map metadata (%s): %+v", target, meta)

	if err := mapfile.WriteMetadataFile(filepath.Join(localDir, yamlName), meta); err != nil {
		return artifacts, err
	}
	log.Infof("Successfully saved %s locally.", yamlName)
	if err := record(yamlName); err != nil {
		return artifacts, err
	}

	binPath := filepath.Join(localDir, binName)
	if err := mapfile.WriteCursorFile(binPath, cursor); err != nil {
		return artifacts, err
	}
	log.Infof("Successfully saved %s locally.", binName)
	if err := record(binName); err != nil {
		return artifacts, err
	}

	// Self-check: re-read the cursor we just wrote and log it. The value
	// is only logged, never compared against what the robot sent.
	readBack, err := mapfile.ReadCursorFile(binPath)
	if err != nil {
		return artifacts, err
	}
	log.Infof("Read cursor value (%s): %d", target, readBack)

	if opts.Relay != nil {
		if err := opts.Relay.EnsureRemoteDir(ctx, robotDir); err != nil {
			return artifacts, err
		}
		for _, f := range []string{pngName, yamlName, binName} {
			if err := opts.Relay.CopyFile(ctx, filepath.Join(localDir, f), robotDir); err != nil {
				return artifacts, err
			}
		}
	}

	return artifacts, nil
}
