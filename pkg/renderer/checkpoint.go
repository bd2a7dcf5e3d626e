package renderer

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/klauspost/compress/zstd"
)

// checkpointMagic identifies checkpoint streams
var checkpointMagic = [4]byte{'R', 'T', 'C', 'K'}

// CheckpointVersion is the current checkpoint format version
const CheckpointVersion uint32 = 1

// ErrCheckpointFormat is returned for streams that are not valid checkpoints
var ErrCheckpointFormat = errors.New("invalid checkpoint format")

// ErrCheckpointSize is returned when a checkpoint does not match the image size
var ErrCheckpointSize = errors.New("checkpoint size mismatch")

// checkpointRowPrealloc caps the row slice capacity reserved from the header
const checkpointRowPrealloc = 1024

// checkpointHeader precedes the pixel records
type checkpointHeader struct {
	Magic   [4]byte
	Version uint32
	Width   uint32
	Height  uint32
}

// checkpointPixel is the on-disk form of PixelStats
type checkpointPixel struct {
	R, G, B     float64
	Luminance   float64
	LuminanceSq float64
	SampleCount uint32
}

// WriteCheckpoint writes the pixel accumulators as a zstd-compressed little-endian stream
func WriteCheckpoint(w io.Writer, pixelStats [][]PixelStats) error {
	height := len(pixelStats)
	width := 0
	if height > 0 {
		width = len(pixelStats[0])
	}

	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("failed to create zstd writer: %w", err)
	}

	buf := bufio.NewWriter(enc)
	header := checkpointHeader{Magic: checkpointMagic, Version: CheckpointVersion, Width: uint32(width), Height: uint32(height)}
	if err := binary.Write(buf, binary.LittleEndian, header); err != nil {
		enc.Close()
		return fmt.Errorf("failed to write checkpoint header: %w", err)
	}

	for y := 0; y < height; y++ {
		if len(pixelStats[y]) != width {
			enc.Close()
			return fmt.Errorf("row %d has %d pixels, expected %d", y, len(pixelStats[y]), width)
		}
		for x := 0; x < width; x++ {
			ps := pixelStats[y][x]
			pixel := checkpointPixel{
				R: ps.ColorAccum.X, G: ps.ColorAccum.Y, B: ps.ColorAccum.Z,
				Luminance:   ps.LuminanceAccum,
				LuminanceSq: ps.LuminanceSqAccum,
				SampleCount: uint32(ps.SampleCount),
			}
			if err := binary.Write(buf, binary.LittleEndian, pixel); err != nil {
				enc.Close()
				return fmt.Errorf("failed to write pixel (%d,%d): %w", x, y, err)
			}
		}
	}

	if err := buf.Flush(); err != nil {
		enc.Close()
		return fmt.Errorf("failed to flush checkpoint: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finish zstd stream: %w", err)
	}
	return nil
}

// ReadCheckpoint reads pixel accumulators written by WriteCheckpoint. The stream
// must hold a width x height image; any other size fails with ErrCheckpointSize
// before pixel memory is allocated.
func ReadCheckpoint(r io.Reader, width, height int) ([][]PixelStats, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	defer dec.Close()

	buf := bufio.NewReader(dec)
	var header checkpointHeader
	if err := binary.Read(buf, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCheckpointFormat, err)
	}
	if header.Magic != checkpointMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrCheckpointFormat, header.Magic[:])
	}
	if header.Version != CheckpointVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCheckpointFormat, header.Version)
	}
	if header.Width > math.MaxInt16 || header.Height > math.MaxInt16 {
		return nil, fmt.Errorf("%w: image size %dx%d too large", ErrCheckpointFormat, header.Width, header.Height)
	}
	if int(header.Width) != width || int(header.Height) != height {
		return nil, fmt.Errorf("%w: checkpoint is %dx%d, expected %dx%d", ErrCheckpointSize, header.Width, header.Height, width, height)
	}

	// Rows are allocated as they are read so a short stream fails early
	pixelStats := make([][]PixelStats, 0, min(height, checkpointRowPrealloc))
	for y := 0; y < height; y++ {
		row := make([]PixelStats, width)
		for x := range row {
			var pixel checkpointPixel
			if err := binary.Read(buf, binary.LittleEndian, &pixel); err != nil {
				return nil, fmt.Errorf("%w: pixel (%d,%d): %v", ErrCheckpointFormat, x, y, err)
			}
			row[x] = PixelStats{
				ColorAccum:       core.NewVec3(pixel.R, pixel.G, pixel.B),
				LuminanceAccum:   pixel.Luminance,
				LuminanceSqAccum: pixel.LuminanceSq,
				SampleCount:      int(pixel.SampleCount),
			}
		}
		pixelStats = append(pixelStats, row)
	}

	return pixelStats, nil
}

// SaveCheckpoint writes the current accumulators to a file
func (pr *ProgressiveRaytracer) SaveCheckpoint(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create checkpoint %s: %w", filename, err)
	}
	if err := WriteCheckpoint(file, pr.pixelStats); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// ResumeFrom loads accumulators from a checkpoint file. Passes then only add the
// samples each pixel is still missing. Tile samplers are reseeded so resumed
// samples do not repeat the ones already taken.
func (pr *ProgressiveRaytracer) ResumeFrom(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open checkpoint %s: %w", filename, err)
	}
	defer file.Close()

	pixelStats, err := ReadCheckpoint(file, pr.width, pr.height)
	if err != nil {
		return fmt.Errorf("checkpoint %s: %w", filename, err)
	}

	total := 0
	for y := range pixelStats {
		for x := range pixelStats[y] {
			total += pixelStats[y][x].SampleCount
		}
	}

	pr.pixelStats = pixelStats
	pr.tiles = NewSeededTileGrid(pr.width, pr.height, pr.config.TileSize, pr.config.Seed+int64(total))
	pr.logger.Printf("Resumed from %s (%d samples)\n", filename, total)
	return nil
}
