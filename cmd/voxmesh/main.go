// Command voxmesh feeds chunk fragments through a meshing worker and records
// the resulting meshes.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/xlab/closer"

	"voxmesh/internal/config"
	"voxmesh/internal/feed"
	"voxmesh/internal/meshing"
	"voxmesh/internal/meshlog"
	"voxmesh/internal/profiling"
	"voxmesh/internal/registry"
)

var (
	configPath = flag.String("c", "", "YAML config file")
	scriptPath = flag.String("script", "", "scripted feed, overrides the config")
	radius     = flag.Int("radius", 0, "terrain radius in chunks, overrides the config")
	seed       = flag.Int64("seed", 0, "terrain seed, overrides the config")
	outDir     = flag.String("out", "", "directory for the mesh log, overrides the config")
	vertices   = flag.Bool("vertices", false, "store vertex data in the mesh log")
)

func main() {
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true, FullTimestamp: true})

	go func() {
		if err := run(log); err != nil {
			log.WithError(err).Error("voxmesh failed")
			closer.Exit(closer.ExitCodeErr)
		}
		closer.Close()
	}()
	closer.Hold()
}

func run(log *logrus.Logger) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log.SetLevel(cfg.Level())
	policy, err := cfg.SinkPolicy()
	if err != nil {
		return err
	}

	reg := registry.Default()
	if cfg.Registry != "" {
		if reg, err = registry.Load(cfg.Registry); err != nil {
			return err
		}
	}

	msgs, err := messages(cfg, reg)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"messages":   len(msgs),
		"chunk_size": cfg.ChunkSize,
		"blocks":     reg.Len(),
	}).Info("feed ready")

	var out *meshlog.Writer
	if cfg.Output != "" {
		if out, err = meshlog.Create(cfg.Output); err != nil {
			return err
		}
		closer.Bind(func() {
			if err := out.Close(); err != nil {
				log.WithError(err).Warn("closing mesh log")
			}
		})
	}

	prof := profiling.NewRecorder()
	in := make(chan meshing.Message, cfg.InboundQueue)
	sink := meshing.NewChannelSink(cfg.OutboundQueue)
	w := meshing.NewWorker(in, sink, reg, meshing.FaceMesher{}, meshing.Options{
		Size:         cfg.ChunkSize,
		Logger:       log.WithField("component", "meshing"),
		OnClosedSink: policy,
		Profiler:     prof,
	})

	start := time.Now()
	w.Start()
	go func() {
		defer close(in)
		for _, m := range msgs {
			in <- m
		}
	}()

	var quads int
	var writeErr error
	for buf := range sink.C() {
		quads += buf.Mesh.Quads()
		if out == nil || writeErr != nil {
			continue
		}
		if writeErr = out.Write(meshlog.NewRecord(buf, *vertices)); writeErr != nil {
			log.WithError(writeErr).Error("writing mesh log")
		}
	}
	w.Wait()

	summary(w.Stats().Snapshot(), quads, time.Since(start), prof)
	if out != nil && writeErr == nil {
		log.WithField("records", out.Count()).Infof("mesh log written to %s", cfg.Output)
	}
	return writeErr
}

func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return cfg, err
		}
	}
	if *scriptPath != "" {
		cfg.Feed.Script = *scriptPath
	}
	if *radius > 0 {
		cfg.Feed.Terrain.Radius = *radius
	}
	if *seed != 0 {
		cfg.Feed.Terrain.Seed = *seed
	}
	if *outDir != "" {
		cfg.Output = *outDir
	}
	cfg.Normalize()
	return cfg, cfg.Validate()
}

func messages(cfg config.Config, reg *registry.Registry) ([]meshing.Message, error) {
	if cfg.Feed.Script != "" {
		s, err := feed.LoadScript(cfg.Feed.Script)
		if err != nil {
			return nil, err
		}
		return s.Messages(cfg.ChunkSize, reg)
	}
	return feed.NewTerrain(cfg.Feed.Terrain, cfg.ChunkSize).Messages(), nil
}

func summary(s meshing.StatsSnapshot, quads int, elapsed time.Duration, prof *profiling.Recorder) {
	head := color.New(color.FgCyan, color.Bold).SprintFunc()
	good := color.New(color.FgGreen).SprintFunc()
	warn := color.New(color.FgYellow).SprintFunc()

	count := func(n int64) string {
		if n == 0 {
			return fmt.Sprint(n)
		}
		return warn(n)
	}

	fmt.Fprintln(os.Stdout, head("voxmesh"), "finished in", elapsed.Round(time.Millisecond))
	fmt.Fprintf(os.Stdout, "  messages  %d\n", s.Messages)
	fmt.Fprintf(os.Stdout, "  fragments %d\n", s.Fragments)
	fmt.Fprintf(os.Stdout, "  passes    %d\n", s.Passes)
	fmt.Fprintf(os.Stdout, "  meshed    %s (%s sent, %d quads)\n", good(s.Meshed), good(s.Sent), quads)
	fmt.Fprintf(os.Stdout, "  tracked   %d\n", s.Tracked)
	fmt.Fprintf(os.Stdout, "  dropped   %s\n", count(s.Dropped))
	fmt.Fprintf(os.Stdout, "  discarded %s\n", count(s.Discarded))
	fmt.Fprintf(os.Stdout, "  rejected  %s\n", count(s.Rejected))
	if top := prof.TopN(4); top != "" {
		fmt.Fprintln(os.Stdout, head("timing"), top)
	}
}
