package container

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/arloliu/sparsepix/errs"
	"github.com/arloliu/sparsepix/format"
	"github.com/arloliu/sparsepix/internal/logging"
	"github.com/arloliu/sparsepix/sparse"
)

// Version is the metadata version written by this package.
const Version = 1

const metadataEntry = "_metadata"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Metadata is the content of the "_metadata" entry.
type Metadata struct {
	Version  int    `json:"version"`
	Format   string `json:"format"`
	Shape    []int  `json:"shape"`
	DType    string `json:"dtype"`
	Channels int    `json:"channels"`
}

// rawMetadata distinguishes absent fields from zero values.
type rawMetadata struct {
	Version  *int   `json:"version"`
	Format   string `json:"format"`
	Shape    []int  `json:"shape"`
	DType    string `json:"dtype"`
	Channels *int   `json:"channels"`
}

func newMetadata(a *Archive, valueType string) Metadata {
	shape := a.PlaneShape()

	return Metadata{
		Version:  Version,
		Format:   a.Kind.String(),
		Shape:    []int{shape.Height, shape.Width},
		DType:    valueType,
		Channels: len(a.Channels),
	}
}

// parseMetadata decodes and validates a metadata entry, filling in the
// defaults of legacy archives.
func parseMetadata(data []byte) (Metadata, error) {
	var raw rawMetadata
	if err := json.Unmarshal(data, &raw); err != nil {
		return Metadata{}, fmt.Errorf("%w: %s entry: %w", errs.ErrBadMagic, metadataEntry, err)
	}

	md := Metadata{Format: raw.Format, Shape: raw.Shape, DType: raw.DType, Channels: 1}

	if raw.Version == nil {
		logging.Logger().Warn("container metadata has no version, reading as legacy archive")
	} else {
		md.Version = *raw.Version
	}

	if md.Version > Version {
		return Metadata{}, fmt.Errorf("%w: %d, this reader supports up to %d",
			errs.ErrUnsupportedVersion, md.Version, Version)
	}

	if raw.Channels == nil {
		logging.Logger().Warn("container metadata has no channel count, assuming 1")
	} else {
		md.Channels = *raw.Channels
	}

	if md.Channels != 1 && md.Channels != 3 {
		return Metadata{}, fmt.Errorf("%w: metadata declares %d channels", errs.ErrInvalidShape, md.Channels)
	}

	if md.DType == "" {
		md.DType = format.ValueTypeUint8
	}

	return md, nil
}

// Kind returns the representation recorded in the metadata.
func (md Metadata) Kind() (format.Kind, error) {
	return format.ParseKind(md.Format)
}

// PlaneShape returns the single-channel shape of every stored plane. The
// metadata shape is [h,w]; a trailing 1 is tolerated.
func (md Metadata) PlaneShape() (sparse.Shape, error) {
	switch {
	case len(md.Shape) == 2, len(md.Shape) == 3 && md.Shape[2] == 1:
		return sparse.NewShape(md.Shape[0], md.Shape[1], 1)
	default:
		return sparse.Shape{}, fmt.Errorf("%w: metadata shape %v", errs.ErrInvalidShape, md.Shape)
	}
}
