package io

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/geodesynet/gravann/geom"
)

// GridHeader describes an integration grid file. The file layout is an
// int32 endianness flag, an int32 header size, the header and then Count
// points as (x, y, z) float64 triples.
type GridHeader struct {
	Width   int64
	Count   int64
	Spacing float64
	Noise   float64
}

var gridHeaderSize = int32(binary.Size(GridHeader{}))

func endianness(flag int32) binary.ByteOrder {
	if flag == 0 {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

func endiannessFlag(order binary.ByteOrder) int32 {
	if order == binary.LittleEndian {
		return 0
	}
	return -1
}

// WriteGrid writes grid to file. noise is recorded so that readers can tell
// whether the grid was jittered.
func WriteGrid(file string, grid *geom.IntegrationGrid, noise float64) error {
	if grid.N*grid.N*grid.N != len(grid.Points) {
		return fmt.Errorf("Grid width %d does not match point count %d.",
			grid.N, len(grid.Points))
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}

	order := binary.LittleEndian
	hd := &GridHeader{
		Width: int64(grid.N), Count: int64(len(grid.Points)),
		Spacing: grid.H, Noise: noise,
	}

	blocks := []interface{}{
		endiannessFlag(order), gridHeaderSize, hd, grid.Points,
	}
	for _, block := range blocks {
		if err = binary.Write(f, order, block); err != nil {
			f.Close()
			return errors.Wrapf(err, "writing grid file '%s'", file)
		}
	}

	return f.Close()
}

// ReadGridHeader reads the header of a grid file.
func ReadGridHeader(file string) (*GridHeader, error) {
	hd := &GridHeader{}
	f, _, err := readGridHeaderAt(file, hd)
	if err != nil {
		return nil, err
	}
	if err = f.Close(); err != nil {
		return nil, err
	}
	return hd, nil
}

// ReadGrid reads a grid file. The result can be passed to
// integrator.WithGrid.
func ReadGrid(file string) (*geom.IntegrationGrid, error) {
	hd := &GridHeader{}
	f, order, err := readGridHeaderAt(file, hd)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if hd.Count < 0 || hd.Width*hd.Width*hd.Width != hd.Count {
		return nil, fmt.Errorf("Header width %d of grid file %s doesn't "+
			"match count %d.", hd.Width, file, hd.Count)
	}

	points := make([]r3.Vec, hd.Count)
	if err := binary.Read(f, order, points); err != nil {
		return nil, errors.Wrapf(err, "reading grid file '%s'", file)
	}

	return geom.IntegrationGridFromPoints(points, hd.Spacing)
}

func readGridHeaderAt(
	file string, hd *GridHeader,
) (*os.File, binary.ByteOrder, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, nil, err
	}

	// Flags read the same in either order.
	var flag, size int32
	if err = binary.Read(f, binary.LittleEndian, &flag); err != nil {
		f.Close()
		return nil, nil, errors.Wrapf(err, "reading grid file '%s'", file)
	}
	order := endianness(flag)

	if err = binary.Read(f, order, &size); err != nil {
		f.Close()
		return nil, nil, errors.Wrapf(err, "reading grid file '%s'", file)
	} else if size != gridHeaderSize {
		f.Close()
		return nil, nil, fmt.Errorf("Expected GridHeader size of %d in %s, "+
			"found %d.", gridHeaderSize, file, size)
	}

	if err = binary.Read(f, order, hd); err != nil {
		f.Close()
		return nil, nil, errors.Wrapf(err, "reading grid file '%s'", file)
	}
	return f, order, nil
}
