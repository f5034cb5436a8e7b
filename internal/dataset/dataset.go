// Package dataset reads input points from CSV and writes clustering results
// back out as CSV.
//
// Input rows have the columns id,x,y,weight,risk; risk may be omitted. Every
// row becomes a singleton cluster whose only member is the row's id.
package dataset

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/TrevorS/proximity"
)

// Record is one input point.
type Record struct {
	ID     string  `csv:"id"`
	X      float64 `csv:"x"`
	Y      float64 `csv:"y"`
	Weight float64 `csv:"weight"`
	Risk   float64 `csv:"risk"`
}

// ClusterRecord is one output cluster.
type ClusterRecord struct {
	Cluster int     `csv:"cluster"`
	X       float64 `csv:"x"`
	Y       float64 `csv:"y"`
	Weight  float64 `csv:"weight"`
	Risk    float64 `csv:"risk"`
	Size    int     `csv:"size"`
	Members string  `csv:"members"`
}

// memberSeparator joins member ids in the members column.
const memberSeparator = ";"

// Load reads records from r and returns one singleton cluster per record, in
// file order. Empty or duplicate ids and negative weights are rejected.
func Load(r io.Reader) ([]*proximity.Cluster, error) {
	var records []*Record
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("dataset: parse csv: %w", err)
	}

	seen := make(map[string]int, len(records))
	clusters := make([]*proximity.Cluster, 0, len(records))
	for i, rec := range records {
		line := i + 2 // header is line 1
		id := strings.TrimSpace(rec.ID)
		if id == "" {
			return nil, fmt.Errorf("dataset: line %d: empty id", line)
		}
		if prev, ok := seen[id]; ok {
			return nil, fmt.Errorf("dataset: line %d: duplicate id %q (first seen on line %d)", line, id, prev)
		}
		if rec.Weight < 0 {
			return nil, fmt.Errorf("dataset: line %d: negative weight %g", line, rec.Weight)
		}
		seen[id] = line
		clusters = append(clusters, proximity.NewCluster([]string{id}, rec.X, rec.Y, rec.Weight, rec.Risk))
	}
	return clusters, nil
}

// LoadFile is Load on the named file.
func LoadFile(path string) ([]*proximity.Cluster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Write emits one row per cluster, numbered in slice order.
func Write(w io.Writer, clusters []*proximity.Cluster) error {
	records := make([]*ClusterRecord, len(clusters))
	for i, c := range clusters {
		records[i] = &ClusterRecord{
			Cluster: i,
			X:       c.X(),
			Y:       c.Y(),
			Weight:  c.Weight(),
			Risk:    c.Risk(),
			Size:    c.Len(),
			Members: strings.Join(c.Members(), memberSeparator),
		}
	}
	if err := gocsv.Marshal(&records, w); err != nil {
		return fmt.Errorf("dataset: write csv: %w", err)
	}
	return nil
}
