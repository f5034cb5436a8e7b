package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TrevorS/proximity"
)

func ptr[T any](v T) *T { return &v }

func TestRun_Hierarchical(t *testing.T) {
	a := args{
		In:       "testdata/points.csv",
		Clusters: ptr(2),
		LogLevel: ptr("error"),
	}

	var buf bytes.Buffer
	require.NoError(t, run(a, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "cluster,x,y,weight,risk,size,members", lines[0])
	assert.Equal(t, "0,0,0.5,2,0.2,2,a;b", lines[1])
	assert.Equal(t, "1,10,0.5,2,0.30000000000000004,2,c;d", lines[2])
}

func TestRun_KMeansToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "clusters.csv")
	a := args{
		In:         "testdata/points.csv",
		Out:        out,
		Method:     ptr("kmeans"),
		Clusters:   ptr(2),
		Iterations: ptr(3),
		Workers:    ptr(2),
		LogLevel:   ptr("error"),
	}

	var buf bytes.Buffer
	require.NoError(t, run(a, &buf))
	assert.Empty(t, buf.String())

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)
	// Seeded at c and d, the rows split horizontally and stay that way.
	assert.Equal(t, "0,5,0,2,0.15000000000000002,2,a;c", lines[1])
	assert.Equal(t, "1,5,1,2,0.35,2,b;d", lines[2])
}

func TestSettings_FlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("method: kmeans\nclusters: 5\niterations: 2\n"), 0o644))

	f, err := settings(args{Config: cfg, Clusters: ptr(3)})
	require.NoError(t, err)
	assert.Equal(t, "kmeans", f.Method)
	assert.Equal(t, 3, f.Clusters)
	assert.Equal(t, 2, f.Iterations)
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		a    args
	}{
		{"missing input", args{In: "testdata/missing.csv", LogLevel: ptr("error")}},
		{"too many clusters", args{In: "testdata/points.csv", Clusters: ptr(9), LogLevel: ptr("error")}},
		{"bad method", args{In: "testdata/points.csv", Method: ptr("dbscan"), LogLevel: ptr("error")}},
		{"bad log level", args{In: "testdata/points.csv", LogLevel: ptr("chatty")}},
		{"missing config", args{In: "testdata/points.csv", Config: "testdata/missing.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.Error(t, run(tt.a, &buf))
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteClusters_StdoutError(t *testing.T) {
	clusters := []*proximity.Cluster{proximity.NewCluster([]string{"a"}, 0, 0, 1, 0)}
	err := writeClusters("", failingWriter{}, clusters)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write stdout")
	assert.Contains(t, err.Error(), "disk full")
}

func TestWriteClusters_File(t *testing.T) {
	out := filepath.Join(t.TempDir(), "clusters.csv")
	clusters := []*proximity.Cluster{proximity.NewCluster([]string{"a"}, 1, 2, 3, 0.5)}
	require.NoError(t, writeClusters(out, failingWriter{}, clusters))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "cluster,x,y,weight,risk,size,members\n0,1,2,3,0.5,1,a\n", string(raw))
}

func TestWriteClusters_BadPath(t *testing.T) {
	out := filepath.Join(t.TempDir(), "missing", "clusters.csv")
	assert.Error(t, writeClusters(out, &bytes.Buffer{}, nil))
}
