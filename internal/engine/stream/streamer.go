// Package stream moves the per-frame simulation output from CPU memory into
// the two device-local textures the water shader samples.
//
// The path is: tightly packed CPU fields -> pixel-unpack staging buffer ->
// displacement texture (unit 2) and normal texture (unit 3). A GL sync
// object gates reuse of the staging buffer, so the CPU never overwrites
// bytes the GPU is still reading. On APIs with explicit queue families the
// upload would additionally need an ownership transfer barrier; a single GL
// context has no such distinction.
package stream

import (
	"fmt"
	"math/bits"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// Texture units the two maps live on; the shader's samplers are bound to
// match.
const (
	DisplacementUnit = 2
	NormalUnit       = 3
)

// texelBytes is the byte size of one RGBA32F texel.
const texelBytes = 16

// Config controls texture layout.
type Config struct {
	TileSize int

	// Mipmapping regenerates a full mip chain after every upload.
	Mipmapping bool

	// DoubleBuffer alternates between two texture pairs so a frame never
	// writes the pair the previous frame still samples.
	DoubleBuffer bool
}

// Streamer owns the staging buffer and the texture pair(s).
type Streamer struct {
	log *zap.Logger
	cfg Config

	pbo   uint32
	pairs int
	cur   int
	// tex[pair][0] is the displacement map, tex[pair][1] the normal map.
	tex [2][2]uint32

	fence uintptr
}

// New allocates the staging buffer and textures for cfg.TileSize.
func New(cfg Config, log *zap.Logger) (*Streamer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Streamer{
		log:   log.Named("stream"),
		cfg:   cfg,
		pairs: 1,
	}
	if cfg.DoubleBuffer {
		s.pairs = 2
	}

	gl.GenBuffers(1, &s.pbo)
	for p := 0; p < s.pairs; p++ {
		gl.GenTextures(2, &s.tex[p][0])
	}

	if err := s.Resize(cfg.TileSize); err != nil {
		s.Destroy()
		return nil, err
	}
	return s, nil
}

// StagingSize returns the staging buffer size in bytes for grid side n:
// two fields of four floats per cell.
func StagingSize(n int) int {
	return 2 * n * n * texelBytes
}

// MipLevels returns the mip chain length for grid side n: log2(n)+1 when
// mipmapping is enabled, otherwise 1.
func (s *Streamer) MipLevels() int {
	if !s.cfg.Mipmapping {
		return 1
	}
	return mipLevels(s.cfg.TileSize)
}

func mipLevels(n int) int {
	return bits.Len(uint(n))
}

// Resize reallocates the staging buffer and textures for a new grid side.
// Allocation failure is fatal to the caller; the streamer is unusable
// afterwards.
func (s *Streamer) Resize(n int) error {
	s.cfg.TileSize = n

	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, s.pbo)
	gl.BufferData(gl.PIXEL_UNPACK_BUFFER, StagingSize(n), nil, gl.STREAM_DRAW)
	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, 0)

	minFilter := int32(gl.LINEAR)
	if s.cfg.Mipmapping {
		minFilter = gl.LINEAR_MIPMAP_LINEAR
	}

	for p := 0; p < s.pairs; p++ {
		for _, tex := range s.tex[p] {
			gl.BindTexture(gl.TEXTURE_2D, tex)
			gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA32F, int32(n), int32(n), 0,
				gl.RGBA, gl.FLOAT, nil)
			gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minFilter)
			gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
			gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
			gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
		}
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if errCode := gl.GetError(); errCode == gl.OUT_OF_MEMORY {
		return fmt.Errorf("allocating %d byte staging buffer and %dx%d RGBA32F textures: GL_OUT_OF_MEMORY",
			StagingSize(n), n, n)
	}

	s.log.Info("streaming resources allocated",
		zap.Int("tileSize", n),
		zap.Int("stagingBytes", StagingSize(n)),
		zap.Int("texturePairs", s.pairs),
		zap.Int("mipLevels", s.MipLevels()),
	)
	return nil
}

// Stage copies the two fields into the staging buffer back-to-back:
// displacement at offset 0, normals at n*n*16. It blocks until the GPU has
// finished reading the buffer contents of the previous frame.
func (s *Streamer) Stage(displacement, normal []float32) error {
	n := s.cfg.TileSize
	fieldBytes := n * n * texelBytes
	if len(displacement)*4 != fieldBytes || len(normal)*4 != fieldBytes {
		return fmt.Errorf("staging field size mismatch: got %d and %d floats, want %d each",
			len(displacement), len(normal), fieldBytes/4)
	}

	s.waitFence()

	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, s.pbo)
	gl.BufferSubData(gl.PIXEL_UNPACK_BUFFER, 0, fieldBytes, gl.Ptr(displacement))
	gl.BufferSubData(gl.PIXEL_UNPACK_BUFFER, fieldBytes, fieldBytes, gl.Ptr(normal))
	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, 0)
	return nil
}

// Upload records the buffer-to-texture copies for the current frame's pair
// and regenerates mipmaps when enabled, leaving both textures ready for
// sampling. With double buffering the target pair alternates each call.
func (s *Streamer) Upload() {
	s.cur = (s.cur + 1) % s.pairs
	n := int32(s.cfg.TileSize)
	fieldBytes := int(n) * int(n) * texelBytes

	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, s.pbo)
	for i, tex := range s.tex[s.cur] {
		gl.BindTexture(gl.TEXTURE_2D, tex)
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, n, n, gl.RGBA, gl.FLOAT,
			gl.PtrOffset(i*fieldBytes))
		if s.cfg.Mipmapping {
			gl.GenerateMipmap(gl.TEXTURE_2D)
		}
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, 0)

	if s.fence != 0 {
		gl.DeleteSync(s.fence)
	}
	s.fence = gl.FenceSync(gl.SYNC_GPU_COMMANDS_COMPLETE, 0)
}

// Bind points texture units 2 and 3 at the most recently uploaded pair.
func (s *Streamer) Bind() {
	gl.ActiveTexture(gl.TEXTURE0 + DisplacementUnit)
	gl.BindTexture(gl.TEXTURE_2D, s.tex[s.cur][0])
	gl.ActiveTexture(gl.TEXTURE0 + NormalUnit)
	gl.BindTexture(gl.TEXTURE_2D, s.tex[s.cur][1])
}

// waitFence blocks until the previous frame's GPU reads of the staging
// buffer have completed. The timeout is effectively infinite, taken in one
// second slices so a wedged driver surfaces in the log.
func (s *Streamer) waitFence() {
	if s.fence == 0 {
		return
	}
	const sliceNs = uint64(1e9)
	for {
		switch gl.ClientWaitSync(s.fence, gl.SYNC_FLUSH_COMMANDS_BIT, sliceNs) {
		case gl.ALREADY_SIGNALED, gl.CONDITION_SATISFIED:
			return
		case gl.WAIT_FAILED:
			s.log.Warn("fence wait failed; continuing")
			return
		default:
			s.log.Warn("staging fence still unsignalled after 1s")
		}
	}
}

// Destroy releases the staging buffer, textures and fence.
func (s *Streamer) Destroy() {
	if s.fence != 0 {
		gl.DeleteSync(s.fence)
		s.fence = 0
	}
	if s.pbo != 0 {
		gl.DeleteBuffers(1, &s.pbo)
		s.pbo = 0
	}
	for p := 0; p < s.pairs; p++ {
		if s.tex[p][0] != 0 {
			gl.DeleteTextures(2, &s.tex[p][0])
			s.tex[p][0], s.tex[p][1] = 0, 0
		}
	}
}
