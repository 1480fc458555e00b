package bikeinfra

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type OSMScanner interface {
	Scan() bool
	Close() error
	Err() error
	Object() osm.Object
}

// wayData is tagged way waiting for its nodes' coordinates
type wayData struct {
	ID    osm.WayID
	Nodes []osm.NodeID
	Tags  Tags
}

// newScanner guesses file format by extension
func newScanner(ctx context.Context, filename string, file io.Reader) (OSMScanner, error) {
	ext := filepath.Ext(filename)
	switch ext {
	case ".osm", ".xml":
		return osmxml.New(ctx, file), nil
	case ".pbf":
		return osmpbf.New(ctx, file, 4), nil
	default:
		return nil, fmt.Errorf("File extension '%s' for file '%s' is not handled yet", ext, filename)
	}
}

// ReadOSM scans OSM file and calls emit for every tagged node and every tagged way.
// Relations (multipolygons included) are skipped and only counted.
// Ways are scanned first so only nodes referenced by them are kept in memory.
// Processing stops on the first error returned by emit.
func ReadOSM(ctx context.Context, filename string, logger *zap.Logger, emit func(feature SourceFeature) error) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("Opening file", zap.String("filename", filename))
	file, err := os.Open(filename)
	if err != nil {
		return errors.Wrap(err, "File open")
	}
	defer file.Close()

	/* Process ways */
	st := time.Now()
	ways := []wayData{}
	nodesSeen := make(map[osm.NodeID]struct{})
	relationsSkipped := 0
	{
		scannerWays, err := newScanner(ctx, filename, file)
		if err != nil {
			return err
		}
		for scannerWays.Scan() {
			obj := scannerWays.Object()
			switch obj.ObjectID().Type() {
			case osm.TypeWay:
			case osm.TypeRelation:
				relationsSkipped++
				continue
			default:
				continue
			}
			way := obj.(*osm.Way)
			if len(way.Tags) == 0 || len(way.Nodes) < 2 {
				continue
			}
			prepared := wayData{
				ID:    way.ID,
				Nodes: make([]osm.NodeID, 0, len(way.Nodes)),
				Tags:  TagsFromOSM(way.Tags),
			}
			for _, node := range way.Nodes {
				nodesSeen[node.ID] = struct{}{}
				prepared.Nodes = append(prepared.Nodes, node.ID)
			}
			ways = append(ways, prepared)
		}
		scanErr := scannerWays.Err()
		// Decoder goroutines must be stopped before seeking
		scannerWays.Close()
		if scanErr != nil {
			return errors.Wrap(scanErr, "Scanner error on ways")
		}
	}
	logger.Info("Ways scanned", zap.Int("ways", len(ways)), zap.Duration("elapsed", time.Since(st)))
	if relationsSkipped > 0 {
		// Multipolygons are not assembled: their members are handled as separate ways only
		logger.Info("Relations skipped", zap.Int("relations", relationsSkipped))
	}

	// Seek file to start
	_, err = file.Seek(0, io.SeekStart)
	if err != nil {
		return errors.Wrap(err, "Can't repeat seeking after ways scanning")
	}

	/* Process nodes */
	st = time.Now()
	coordinates := make(map[osm.NodeID]orb.Point, len(nodesSeen))
	taggedNodes := 0
	{
		scannerNodes, err := newScanner(ctx, filename, file)
		if err != nil {
			return err
		}
		defer scannerNodes.Close()
		for scannerNodes.Scan() {
			obj := scannerNodes.Object()
			if obj.ObjectID().Type() != osm.TypeNode {
				continue
			}
			node := obj.(*osm.Node)
			pt := orb.Point{node.Lon, node.Lat}
			if _, ok := nodesSeen[node.ID]; ok {
				delete(nodesSeen, node.ID)
				coordinates[node.ID] = pt
			}
			if len(node.Tags) == 0 {
				continue
			}
			taggedNodes++
			feature := NewSourceFeature(int64(node.ID), osm.TypeNode, CAN_BE_POINT, TagsFromOSM(node.Tags))
			feature.Geometry = pt
			if err := emit(feature); err != nil {
				return err
			}
		}
		if err := scannerNodes.Err(); err != nil {
			return errors.Wrap(err, "Scanner error on nodes")
		}
	}
	logger.Info("Nodes scanned", zap.Int("tagged_nodes", taggedNodes), zap.Int("way_nodes", len(coordinates)), zap.Duration("elapsed", time.Since(st)))

	/* Emit ways */
	st = time.Now()
	skipped := 0
	for _, way := range ways {
		feature, ok := prepareWayFeature(way, coordinates)
		if !ok {
			skipped++
			logger.Debug("Way has missing nodes or degenerate geometry, skipping it", zap.Int64("way_id", int64(way.ID)))
			continue
		}
		if err := emit(feature); err != nil {
			return err
		}
	}
	logger.Info("Ways emitted", zap.Int("ways", len(ways)-skipped), zap.Int("skipped", skipped), zap.Duration("elapsed", time.Since(st)))
	return nil
}

// wayCapabilities returns geometry capabilities for the way: closed ways could be polygons
// unless `area=no` and stay lines unless `area=yes`
func wayCapabilities(nodes []osm.NodeID, tags Tags) GeometryCapability {
	capabilities := GeometryCapability(0)
	closed := len(nodes) >= 4 && nodes[0] == nodes[len(nodes)-1]
	if len(nodes) >= 2 && !(closed && tags.HasTag("area", "yes")) {
		capabilities |= CAN_BE_LINE
	}
	if closed && !tags.HasTag("area", "no") {
		capabilities |= CAN_BE_POLYGON
	}
	return capabilities
}

func prepareWayFeature(way wayData, coordinates map[osm.NodeID]orb.Point) (SourceFeature, bool) {
	capabilities := wayCapabilities(way.Nodes, way.Tags)
	if capabilities == 0 {
		return SourceFeature{}, false
	}
	line := make(orb.LineString, 0, len(way.Nodes))
	for _, nodeID := range way.Nodes {
		pt, ok := coordinates[nodeID]
		if !ok {
			return SourceFeature{}, false
		}
		line = append(line, pt)
	}
	feature := NewSourceFeature(int64(way.ID), osm.TypeWay, capabilities, way.Tags)
	if capabilities.Has(CAN_BE_POLYGON) {
		feature.Geometry = orb.Polygon{orb.Ring(line)}
	} else {
		feature.Geometry = line
	}
	return feature, true
}
