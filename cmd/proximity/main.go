// Command proximity clusters weighted 2-D points read from a CSV file.
//
//	proximity --in points.csv --method kmeans --clusters 9 --iterations 5
//
// Settings come from an optional YAML file (--config) and are overridden by
// flags. The output clusters are written as CSV to --out or stdout.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	arg "github.com/alexflint/go-arg"
	"go.uber.org/zap"

	"github.com/TrevorS/proximity"
	"github.com/TrevorS/proximity/internal/dataset"
	"github.com/TrevorS/proximity/internal/runconfig"
)

type args struct {
	In         string  `arg:"required" help:"input CSV with columns id,x,y,weight[,risk]"`
	Out        string  `help:"output CSV (default stdout)"`
	Config     string  `help:"YAML run configuration"`
	Method     *string `help:"hierarchical or kmeans"`
	Clusters   *int    `help:"number of output clusters"`
	Iterations *int    `help:"k-means rounds"`
	Algorithm  *string `help:"closest-pair strategy: divide_conquer or brute"`
	Workers    *int    `help:"goroutines for parallel stages (0 = all CPUs)"`
	LogLevel   *string `arg:"--log-level" help:"debug, info, warn or error"`
}

func (args) Description() string {
	return "Cluster weighted 2-D points by closest-pair merging or k-means."
}

func main() {
	var a args
	arg.MustParse(&a)

	if err := run(a, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// settings merges the YAML file (if any) with the flags.
func settings(a args) (runconfig.File, error) {
	f := runconfig.Default()
	if a.Config != "" {
		var err error
		if f, err = runconfig.Load(a.Config); err != nil {
			return f, err
		}
	}
	if a.Method != nil {
		f.Method = *a.Method
	}
	if a.Clusters != nil {
		f.Clusters = *a.Clusters
	}
	if a.Iterations != nil {
		f.Iterations = *a.Iterations
	}
	if a.Algorithm != nil {
		f.Algorithm = *a.Algorithm
	}
	if a.Workers != nil {
		f.Workers = *a.Workers
	}
	if a.LogLevel != nil {
		f.LogLevel = *a.LogLevel
	}
	return f, nil
}

func newLogger(f runconfig.File) (*zap.Logger, error) {
	level, err := f.Level()
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func run(a args, stdout io.Writer) error {
	f, err := settings(a)
	if err != nil {
		return err
	}

	logger, err := newLogger(f)
	if err != nil {
		return err
	}
	defer logger.Sync()

	clusters, err := dataset.LoadFile(a.In)
	if err != nil {
		return err
	}
	logger.Info("loaded points", zap.String("path", a.In), zap.Int("count", len(clusters)))

	result, err := proximity.Run(clusters, f.Config(logger))
	if err != nil {
		return err
	}

	return writeClusters(a.Out, stdout, result.Clusters)
}

// writeClusters writes the clusters CSV to path, or to stdout when path is
// empty.
func writeClusters(path string, stdout io.Writer, clusters []*proximity.Cluster) (err error) {
	if path == "" {
		if err := dataset.Write(stdout, clusters); err != nil {
			return fmt.Errorf("write stdout: %w", err)
		}
		return nil
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := dataset.Write(file, clusters); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
